package systemd

import (
	"errors"
	"io"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/coreos/go-systemd/v22/journal"
	"github.com/rs/zerolog/journald"
)

// ErrNoJournal is returned when the systemd journal socket is not reachable.
var ErrNoJournal = errors.New("systemd: journal not available")

// JournalWriter returns a zerolog writer that sends each entry to the
// journal with its level mapped to a syslog priority.
func JournalWriter() (io.Writer, error) {
	if !journal.Enabled() {
		return nil, ErrNoJournal
	}
	return journald.NewJournalDWriter(), nil
}

// StderrIsJournal reports whether stderr is connected to the journal, as
// it is for a service started from a systemd timer.
func StderrIsJournal() bool {
	ok, err := journal.StderrIsJournalStream()
	return err == nil && ok
}

// Status publishes a one-line status for `systemctl status`. It is a no-op
// outside a unit with a notify socket.
func Status(status string) (bool, error) {
	return daemon.SdNotify(false, "STATUS="+status)
}
