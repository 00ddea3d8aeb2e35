package attendance

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// TimestampLayout is the only accepted format of the Date column.
const TimestampLayout = "2006-01-02 15:04:05"

// Column names required in the header, in any order.
const (
	ColumnDate  = "Date"
	ColumnGate  = "Gate"
	ColumnEvent = "Event"
)

const delimiter = ';'

var errFractionalSeconds = errors.New("fractional seconds are not allowed")

// Load reads and validates the attendance log at path. The returned Log is
// sorted by timestamp. On any error no records are returned.
func Load(path string) (Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Kind: KindIO, Path: path, Err: err}
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return records, nil
}

// Parse reads a semicolon-delimited attendance log from r.
func Parse(r io.Reader) (Log, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Kind: KindEmptyFile}
		}
		return nil, readError(err)
	}

	headerLine, _ := reader.FieldPos(0)
	columns, err := parseHeader(header, headerLine)
	if err != nil {
		return nil, err
	}

	records := make(Log, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(err)
		}

		line, _ := reader.FieldPos(0)
		if isBlank(row) {
			continue
		}

		rec, err := parseRow(row, columns, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	sort.Stable(records)
	return records, nil
}

// parseHeader validates the header and returns the position of each column.
func parseHeader(fields []string, line int) (map[string]int, error) {
	columns := make(map[string]int, len(fields))
	for i, field := range fields {
		columns[strings.TrimSpace(field)] = i
	}

	_, hasDate := columns[ColumnDate]
	_, hasGate := columns[ColumnGate]
	_, hasEvent := columns[ColumnEvent]
	if len(columns) != 3 || !hasDate || !hasGate || !hasEvent {
		return nil, &LoadError{
			Kind:  KindHeader,
			Line:  line,
			Value: strings.Join(fields, string(delimiter)),
		}
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int, line int) (Record, error) {
	dateValue := field(row, columns[ColumnDate])
	ts, err := parseTimestamp(dateValue)
	if err != nil {
		return Record{}, &LoadError{Kind: KindFormat, Line: line, Value: dateValue, Err: err}
	}

	eventValue := field(row, columns[ColumnEvent])
	kind, ok := classifyEvent(eventValue)
	if !ok {
		return Record{}, &LoadError{Kind: KindEvent, Line: line, Value: eventValue}
	}

	return Record{
		Timestamp: ts,
		Kind:      kind,
		Gate:      field(row, columns[ColumnGate]),
	}, nil
}

// parseTimestamp parses a whole-second timestamp. time.Parse accepts a
// fractional second after the seconds field even when the layout has none.
func parseTimestamp(value string) (time.Time, error) {
	if strings.ContainsAny(value, ".,") {
		return time.Time{}, errFractionalSeconds
	}
	return time.Parse(TimestampLayout, value)
}

// classifyEvent matches "entry" before "exit", case-insensitively.
func classifyEvent(value string) (EventKind, bool) {
	lower := strings.ToLower(value)
	switch {
	case strings.Contains(lower, "entry"):
		return Entry, true
	case strings.Contains(lower, "exit"):
		return Exit, true
	default:
		return 0, false
	}
}

// field returns the trimmed value at index i; short rows read as empty.
func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func readError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &LoadError{Kind: KindOther, Line: parseErr.Line, Err: err}
	}
	return &LoadError{Kind: KindIO, Err: err}
}
