package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goodtune/gatesheet/internal/attendance"
	"github.com/goodtune/gatesheet/internal/config"
	"github.com/goodtune/gatesheet/internal/timesheet"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] INPUT",
	Short: "Inspect how a swipe log is cleaned and paired",
	Long: `Load a gate swipe log and show, day by day, which swipes survive cleaning
and which report rows they produce. Nothing is written or archived.`,
	Example: `  gatesheet check swipes.csv
  gatesheet -c gatesheet.yaml check swipes.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rules, err := rulesFromConfig(cfg.Workday)
	if err != nil {
		return err
	}

	// Create a quiet logger for check mode
	logger := setupLogger(config.LoggingConfig{Level: "error", Format: cfg.Logging.Format})

	return checkLog(cmd.OutOrStdout(), args[0], rules, logger)
}

// checkLog prints the per-day breakdown of one input file
func checkLog(out io.Writer, path string, rules timesheet.Rules, logger zerolog.Logger) error {
	records, err := attendance.Load(path)
	if err != nil {
		printLoadError(out, err)
		return err
	}

	result := timesheet.NewProcessor(rules, logger).Process(records)

	printCheckResult(out, path, records, result)
	return nil
}

// printLoadError prints the load failure with whatever detail is known
func printLoadError(out io.Writer, err error) {
	cyan := color.New(color.FgCyan, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	kind := attendance.KindOf(err)

	fmt.Fprintln(out)
	_, _ = red.Fprintf(out, "❌ %s\n", kind.Message())

	var loadErr *attendance.LoadError
	if !errors.As(err, &loadErr) {
		fmt.Fprintf(out, "   %v\n\n", err)
		return
	}

	_, _ = cyan.Fprint(out, "   Kind:  ")
	fmt.Fprintln(out, loadErr.Kind)
	if loadErr.Path != "" {
		_, _ = cyan.Fprint(out, "   File:  ")
		fmt.Fprintln(out, loadErr.Path)
	}
	if loadErr.Line > 0 {
		_, _ = cyan.Fprint(out, "   Line:  ")
		fmt.Fprintln(out, loadErr.Line)
	}
	if loadErr.Value != "" {
		_, _ = cyan.Fprint(out, "   Value: ")
		fmt.Fprintf(out, "%q\n", loadErr.Value)
	}
	if loadErr.Err != nil {
		_, _ = cyan.Fprint(out, "   Cause: ")
		fmt.Fprintln(out, loadErr.Err)
	}
	fmt.Fprintln(out)
}

// printCheckResult prints raw and kept swipes with the rows of every day
func printCheckResult(out io.Writer, path string, records attendance.Log, result timesheet.Result) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow, color.Bold)
	red := color.New(color.FgRed)

	kept := keptSwipes(records, result.Cleaned)

	rowsByDate := make(map[string][]timesheet.Row)
	for _, row := range result.Rows {
		date := row.Date.Format(timesheet.DateLayout)
		rowsByDate[date] = append(rowsByDate[date], row)
	}

	fmt.Fprintln(out)
	_, _ = cyan.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	_, _ = cyan.Fprintf(out, "SWIPE LOG CHECK: %s\n", path)
	_, _ = cyan.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	i := 0
	for _, day := range records.Days() {
		date := day.Format(timesheet.DateLayout)

		fmt.Fprintln(out)
		_, _ = cyan.Fprintf(out, "%s (%s)\n", date, day.Weekday())

		for ; i < len(records) && records[i].Date().Equal(day); i++ {
			rec := records[i]
			line := fmt.Sprintf("%s %-5s %s", rec.Timestamp.Format("15:04:05"), rec.Kind, rec.Gate)
			if kept[i] {
				_, _ = green.Fprintf(out, "  ✓ %s\n", line)
			} else {
				_, _ = red.Fprintf(out, "  ✗ %s  (removed)\n", line)
			}
		}

		for _, row := range rowsByDate[date] {
			if len(row.Flags) > 0 || row.Week != nil {
				_, _ = yellow.Fprintf(out, "  → %s\n", row)
			} else {
				_, _ = green.Fprintf(out, "  → %s\n", row)
			}
		}
	}

	stats := result.Stats
	fmt.Fprintln(out)
	_, _ = cyan.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(out, "Swipes loaded:      %d\n", stats.Loaded)
	fmt.Fprintf(out, "Central removed:    %d\n", stats.CentralRemoved)
	fmt.Fprintf(out, "Duplicates removed: %d\n", stats.DuplicatesRemoved)
	fmt.Fprintf(out, "Swipes kept:        %d\n", len(result.Cleaned))
	fmt.Fprintf(out, "Report rows:        %d\n", len(result.Rows))
	_, _ = cyan.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(out)
}

// keptSwipes marks the records that survived cleaning. The cleaned log is an
// ordered subsequence of records.
func keptSwipes(records, cleaned attendance.Log) []bool {
	kept := make([]bool, len(records))
	j := 0
	for i, rec := range records {
		if j < len(cleaned) && rec == cleaned[j] {
			kept[i] = true
			j++
		}
	}
	return kept
}
