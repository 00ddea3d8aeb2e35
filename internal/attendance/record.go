package attendance

import (
	"fmt"
	"time"
)

// EventKind is the direction of a gate swipe.
type EventKind int

const (
	Entry EventKind = iota
	Exit
)

// String returns the lowercase name used in logs and check output.
func (k EventKind) String() string {
	switch k {
	case Entry:
		return "entry"
	case Exit:
		return "exit"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Record is a single swipe at a gate.
type Record struct {
	Timestamp time.Time
	Kind      EventKind
	Gate      string
}

// Date returns the calendar day of the swipe at midnight.
func (r Record) Date() time.Time {
	y, m, d := r.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Timestamp.Location())
}

// SameDay reports whether both swipes fall on the same calendar date.
func (r Record) SameDay(other Record) bool {
	y1, m1, d1 := r.Timestamp.Date()
	y2, m2, d2 := other.Timestamp.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s %s", r.Timestamp.Format(TimestampLayout), r.Kind, r.Gate)
}

// Log is a chronologically ordered sequence of swipes.
type Log []Record

// Len, Less and Swap let the loader stable-sort a Log by timestamp.
func (l Log) Len() int           { return len(l) }
func (l Log) Less(i, j int) bool { return l[i].Timestamp.Before(l[j].Timestamp) }
func (l Log) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

// Days returns the distinct calendar dates in the log, in order.
func (l Log) Days() []time.Time {
	days := make([]time.Time, 0)
	for i, rec := range l {
		if i > 0 && rec.SameDay(l[i-1]) {
			continue
		}
		days = append(days, rec.Date())
	}
	return days
}
