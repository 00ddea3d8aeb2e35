package redis

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goodtune/gatesheet/internal/storage"
	"github.com/goodtune/gatesheet/internal/timesheet"
)

// keySpace builds the keys for one archive prefix.
type keySpace struct {
	prefix string
}

// index is the sorted set of "{date}:{seq}" members scored by date.
func (k keySpace) index() string {
	return k.prefix + ":days"
}

func (k keySpace) dayPrefix() string {
	return k.prefix + ":day:"
}

func (k keySpace) day(member string) string {
	return k.dayPrefix() + member
}

// seqString formats the member suffix. Zero padding keeps rows of one date
// in sequence order under lexicographic tie-breaking.
func seqString(seq int) string {
	return fmt.Sprintf("%03d", seq)
}

// dateScore converts a 2006-01-02 date into its sorted set score.
func dateScore(date string) (int64, error) {
	t, err := time.Parse(timesheet.DateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.Unix(), nil
}

// parseDayReport converts a Redis hash to DayReport
func parseDayReport(data map[string]string) (*storage.DayReport, error) {
	if len(data) == 0 {
		return nil, storage.ErrNotFound
	}

	seq, err := strconv.Atoi(data["seq"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse seq: %w", err)
	}

	workSeconds, err := strconv.ParseInt(data["work_seconds"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse work_seconds: %w", err)
	}

	weekClosed, err := strconv.ParseBool(data["week_closed"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse week_closed: %w", err)
	}

	weekWorked, err := strconv.ParseInt(data["week_worked_seconds"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week_worked_seconds: %w", err)
	}

	weekBalance, err := strconv.ParseInt(data["week_balance_seconds"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week_balance_seconds: %w", err)
	}

	processedAt, err := time.Parse(time.RFC3339Nano, data["processed_at"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse processed_at: %w", err)
	}

	return &storage.DayReport{
		Date:               data["date"],
		Seq:                seq,
		WorkSeconds:        workSeconds,
		Flags:              storage.ParseFlags(data["flags"]),
		WeekClosed:         weekClosed,
		WeekWorkedSeconds:  weekWorked,
		WeekBalanceSeconds: weekBalance,
		Source:             data["source"],
		ProcessedAt:        processedAt,
	}, nil
}
