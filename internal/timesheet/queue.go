package timesheet

import "github.com/goodtune/gatesheet/internal/attendance"

// queue consumes a log from the front without mutating the backing slice.
type queue struct {
	records attendance.Log
	head    int
}

func newQueue(records attendance.Log) *queue {
	return &queue{records: records}
}

func (q *queue) Len() int {
	return len(q.records) - q.head
}

// Peek returns the record n positions past the front.
func (q *queue) Peek(n int) (attendance.Record, bool) {
	i := q.head + n
	if n < 0 || i >= len(q.records) {
		return attendance.Record{}, false
	}
	return q.records[i], true
}

// Pop removes and returns the front record. It panics on an empty queue.
func (q *queue) Pop() attendance.Record {
	rec := q.records[q.head]
	q.head++
	return rec
}
