package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record is missing from storage.
var ErrNotFound = errors.New("storage: record not found")

// Store represents the root storage interface.
type Store interface {
	Close() error
	Reports() ReportStore
}

// ReportStore archives computed timesheet days.
//
// Dates are calendar days formatted as 2006-01-02. Saving a set of days
// replaces everything previously stored for those dates, so re-running a
// report on the same input leaves the archive unchanged.
type ReportStore interface {
	SaveDays(ctx context.Context, days []DayReport) error
	GetDay(ctx context.Context, date string) ([]DayReport, error)
	ListDays(ctx context.Context, filter DayFilter) ([]DayReport, error)
	DeleteDaysBefore(ctx context.Context, cutoffDate string) (int, error)
}

// DayFilter bounds a ListDays query. Empty bounds are open.
type DayFilter struct {
	From string // inclusive
	To   string // inclusive
}
