package timesheet

import "github.com/goodtune/gatesheet/internal/attendance"

// RemoveCentral drops intermediate swipes of busy days. Scanning left to
// right, while the record two places after the current one is on the current
// record's date, the record right after it is dropped. Each position is
// visited once, so only the cluster starting at a position collapses to its
// first and last swipe. The input is not modified.
func RemoveCentral(records attendance.Log) attendance.Log {
	if len(records) == 0 {
		return attendance.Log{}
	}

	out := make(attendance.Log, 0, len(records))
	out = append(out, records[0])
	for next := 1; next < len(records); next++ {
		current := out[len(out)-1]
		for next+1 < len(records) && current.SameDay(records[next+1]) {
			next++
		}
		out = append(out, records[next])
	}
	return out
}

// RemoveRepetitions drops records whose timestamp equals the one kept before
// them, e.g. a badge read twice in the same second.
func RemoveRepetitions(records attendance.Log) attendance.Log {
	out := make(attendance.Log, 0, len(records))
	for _, rec := range records {
		if n := len(out); n > 0 && out[n-1].Timestamp.Equal(rec.Timestamp) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Clean applies RemoveCentral then RemoveRepetitions.
func Clean(records attendance.Log) attendance.Log {
	return RemoveRepetitions(RemoveCentral(records))
}
