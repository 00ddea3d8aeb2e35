package timesheet

import (
	"strings"
	"time"
)

// Flag marks an anomaly on a report row.
type Flag string

const (
	FlagInconclusive Flag = "i"  // pairing was not entry followed by exit
	FlagOvertime     Flag = "ot" // longer than Rules.Overtime
	FlagUndertime    Flag = "ut" // shorter than Rules.Undertime
	FlagWeekend      Flag = "w"  // started on a Saturday or Sunday
)

// DateLayout is the calendar date format used in report rows.
const DateLayout = "2006-01-02"

// WeekTotals is the rollup attached to the last processed row of an ISO week.
type WeekTotals struct {
	Worked  time.Duration
	Balance time.Duration // Worked minus the expected time for each row
}

// Row is one processed day.
type Row struct {
	Date  time.Time
	Work  time.Duration
	Flags []Flag
	Week  *WeekTotals
}

// Has reports whether the row carries flag.
func (r Row) Has(flag Flag) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Fields returns the report columns:
// "Day" date "Work" work [flags...] [worked balance]
func (r Row) Fields() []string {
	fields := make([]string, 0, 4+len(r.Flags)+2)
	fields = append(fields, "Day", r.Date.Format(DateLayout), "Work", FormatDuration(r.Work))
	for _, f := range r.Flags {
		fields = append(fields, string(f))
	}
	if r.Week != nil {
		fields = append(fields, FormatTotal(r.Week.Worked), FormatTotal(r.Week.Balance))
	}
	return fields
}

// String renders the row as a single report line without the newline.
func (r Row) String() string {
	return strings.Join(r.Fields(), " ")
}
