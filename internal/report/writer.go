package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goodtune/gatesheet/internal/timesheet"
)

// DefaultOutputPath is the well-known file the report is written to.
const DefaultOutputPath = "result"

// Write renders one line per row, fields separated by a single space.
func Write(w io.Writer, rows []timesheet.Row) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := bw.WriteString(strings.Join(row.Fields(), " ") + "\n"); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// WriteFile replaces the contents of path with the rendered rows.
func WriteFile(path string, rows []timesheet.Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close report: %w", closeErr)
		}
	}()

	return Write(f, rows)
}
