package attendance

import (
	"errors"
	"fmt"
)

// Sentinel errors for every way a load can fail. A *LoadError wraps exactly
// one of them.
var (
	ErrIO        = errors.New("attendance: file unreadable")
	ErrEmptyFile = errors.New("attendance: no header line")
	ErrHeader    = errors.New("attendance: invalid header")
	ErrFormat    = errors.New("attendance: invalid date")
	ErrEvent     = errors.New("attendance: invalid event")
	ErrOther     = errors.New("attendance: unexpected failure")
)

// ErrorKind classifies a load failure.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindIO
	KindEmptyFile
	KindHeader
	KindFormat
	KindEvent
)

var kindSentinels = map[ErrorKind]error{
	KindOther:     ErrOther,
	KindIO:        ErrIO,
	KindEmptyFile: ErrEmptyFile,
	KindHeader:    ErrHeader,
	KindFormat:    ErrFormat,
	KindEvent:     ErrEvent,
}

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindEmptyFile:
		return "empty_file"
	case KindHeader:
		return "header"
	case KindFormat:
		return "format"
	case KindEvent:
		return "event"
	default:
		return "other"
	}
}

// Message is the single line shown to a user when a load fails.
func (k ErrorKind) Message() string {
	switch k {
	case KindIO:
		return "File reading error"
	case KindEmptyFile:
		return "File empty"
	case KindHeader:
		return "Wrong header format"
	case KindFormat:
		return "Wrong data format"
	case KindEvent:
		return "Wrong event format"
	default:
		return "Other error"
	}
}

// LoadError describes why an input file was rejected.
type LoadError struct {
	Kind  ErrorKind
	Path  string
	Line  int    // 1-based, zero when not tied to a line
	Value string // offending value, if any
	Err   error  // underlying cause, if any
}

func (e *LoadError) Error() string {
	msg := kindSentinels[e.Kind].Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s: line %d", msg, e.Line)
	}
	if e.Value != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Value)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is matches the sentinel for the error's kind.
func (e *LoadError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or KindOther for errors that did
// not come from the loader.
func KindOf(err error) ErrorKind {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Kind
	}
	return KindOther
}
