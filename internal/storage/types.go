package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodtune/gatesheet/internal/timesheet"
)

// DayReport is an archived report row.
type DayReport struct {
	Date               string    `json:"date"`
	Seq                int       `json:"seq"` // position among rows sharing a date
	WorkSeconds        int64     `json:"work_seconds"`
	Flags              []string  `json:"flags"`
	WeekClosed         bool      `json:"week_closed"`
	WeekWorkedSeconds  int64     `json:"week_worked_seconds"`
	WeekBalanceSeconds int64     `json:"week_balance_seconds"`
	Source             string    `json:"source"`
	ProcessedAt        time.Time `json:"processed_at"`
}

// NewDayReports converts report rows for archiving. Rows sharing a date get
// increasing sequence numbers.
func NewDayReports(rows []timesheet.Row, source string, processedAt time.Time) []DayReport {
	days := make([]DayReport, 0, len(rows))
	seq := make(map[string]int)

	for _, row := range rows {
		date := row.Date.Format(timesheet.DateLayout)

		flags := make([]string, len(row.Flags))
		for i, f := range row.Flags {
			flags[i] = string(f)
		}

		day := DayReport{
			Date:        date,
			Seq:         seq[date],
			WorkSeconds: int64(row.Work / time.Second),
			Flags:       flags,
			Source:      source,
			ProcessedAt: processedAt.UTC(),
		}
		if row.Week != nil {
			day.WeekClosed = true
			day.WeekWorkedSeconds = int64(row.Week.Worked / time.Second)
			day.WeekBalanceSeconds = int64(row.Week.Balance / time.Second)
		}

		seq[date]++
		days = append(days, day)
	}
	return days
}

// Row converts the archived day back into a report row.
func (d DayReport) Row() (timesheet.Row, error) {
	date, err := time.Parse(timesheet.DateLayout, d.Date)
	if err != nil {
		return timesheet.Row{}, fmt.Errorf("invalid archived date %q: %w", d.Date, err)
	}

	row := timesheet.Row{
		Date:  date,
		Work:  time.Duration(d.WorkSeconds) * time.Second,
		Flags: make([]timesheet.Flag, len(d.Flags)),
	}
	for i, f := range d.Flags {
		row.Flags[i] = timesheet.Flag(f)
	}
	if d.WeekClosed {
		row.Week = &timesheet.WeekTotals{
			Worked:  time.Duration(d.WeekWorkedSeconds) * time.Second,
			Balance: time.Duration(d.WeekBalanceSeconds) * time.Second,
		}
	}
	return row, nil
}

// FlagString joins the flags with spaces, as stored in Redis hashes.
func (d DayReport) FlagString() string {
	return strings.Join(d.Flags, " ")
}

// ParseFlags splits a stored flag string.
func ParseFlags(s string) []string {
	return strings.Fields(s)
}
