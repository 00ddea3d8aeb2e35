package timesheet

import (
	"time"

	"github.com/goodtune/gatesheet/internal/attendance"
	"github.com/rs/zerolog"
)

const (
	// DefaultExpected is the time a regular day is expected to last.
	DefaultExpected = 8 * time.Hour

	// DefaultUndertime is the duration below which a day is flagged ut.
	DefaultUndertime = 6 * time.Hour

	// DefaultOvertime is the duration above which a day is flagged ot.
	DefaultOvertime = 9 * time.Hour
)

// Rules holds the thresholds used to classify a day.
type Rules struct {
	Expected  time.Duration
	Undertime time.Duration
	Overtime  time.Duration
}

// DefaultRules returns the standard 8h day with a 6h-9h tolerance band.
func DefaultRules() Rules {
	return Rules{
		Expected:  DefaultExpected,
		Undertime: DefaultUndertime,
		Overtime:  DefaultOvertime,
	}
}

// Stats counts what cleaning did to a log.
type Stats struct {
	Loaded            int
	CentralRemoved    int
	DuplicatesRemoved int
}

// Result is the outcome of processing one log.
type Result struct {
	Rows    []Row
	Cleaned attendance.Log // swipes left after cleaning, in order
	Stats   Stats
}

// Processor turns an attendance log into report rows.
type Processor struct {
	rules  Rules
	logger zerolog.Logger
}

// NewProcessor creates a processor. Zero thresholds fall back to defaults.
func NewProcessor(rules Rules, logger zerolog.Logger) *Processor {
	if rules.Expected == 0 {
		rules.Expected = DefaultExpected
	}
	if rules.Undertime == 0 {
		rules.Undertime = DefaultUndertime
	}
	if rules.Overtime == 0 {
		rules.Overtime = DefaultOvertime
	}

	return &Processor{
		rules:  rules,
		logger: logger.With().Str("component", "processor").Logger(),
	}
}

// Rules returns the thresholds in effect.
func (p *Processor) Rules() Rules {
	return p.rules
}

// Process cleans the log and computes its report rows.
func (p *Processor) Process(records attendance.Log) Result {
	central := RemoveCentral(records)
	cleaned := RemoveRepetitions(central)

	stats := Stats{
		Loaded:            len(records),
		CentralRemoved:    len(records) - len(central),
		DuplicatesRemoved: len(central) - len(cleaned),
	}

	p.logger.Debug().
		Int("loaded", stats.Loaded).
		Int("central_removed", stats.CentralRemoved).
		Int("duplicates_removed", stats.DuplicatesRemoved).
		Msg("Cleaned attendance log")

	return Result{
		Rows:    p.Compute(cleaned),
		Cleaned: cleaned,
		Stats:   stats,
	}
}

// Compute pairs consecutive swipes of a cleaned log into daily rows and
// attaches weekly totals to the last row of every ISO week.
func (p *Processor) Compute(records attendance.Log) []Row {
	rows := make([]Row, 0)
	q := newQueue(records)

	var weekWorked, weekBalance time.Duration
	for q.Len() > 0 {
		start := q.Pop()
		end := start
		if next, ok := q.Peek(0); ok && next.SameDay(start) {
			end = q.Pop()
		}

		work := end.Timestamp.Sub(start.Timestamp)
		weekWorked += work
		weekBalance += work - p.rules.Expected

		row := Row{
			Date:  start.Date(),
			Work:  work,
			Flags: p.classify(start, end, work),
		}

		next, hasNext := q.Peek(0)
		if !hasNext || lastInWeek(start.Date(), next.Date()) {
			row.Week = &WeekTotals{Worked: weekWorked, Balance: weekBalance}

			p.logger.Debug().
				Str("week_ending", row.Date.Format(DateLayout)).
				Dur("worked", weekWorked).
				Dur("balance", weekBalance).
				Msg("Closed week")

			weekWorked, weekBalance = 0, 0
		}

		rows = append(rows, row)
	}

	p.logger.Debug().Int("rows", len(rows)).Msg("Computed timesheet")
	return rows
}

func (p *Processor) classify(start, end attendance.Record, work time.Duration) []Flag {
	flags := make([]Flag, 0, 3)
	if start.Kind != attendance.Entry || end.Kind != attendance.Exit {
		flags = append(flags, FlagInconclusive)
	}
	switch {
	case work > p.rules.Overtime:
		flags = append(flags, FlagOvertime)
	case work < p.rules.Undertime:
		flags = append(flags, FlagUndertime)
	}
	if isWeekend(start.Timestamp.Weekday()) {
		flags = append(flags, FlagWeekend)
	}
	return flags
}

func isWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}

// weekdayIndex numbers days from Monday = 0 to Sunday = 6.
func weekdayIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}

// lastInWeek reports whether next falls after the Sunday closing day's week.
func lastInWeek(day, next time.Time) bool {
	sunday := day.AddDate(0, 0, 6-weekdayIndex(day.Weekday()))
	return next.After(sunday)
}
