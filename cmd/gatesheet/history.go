package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/goodtune/gatesheet/internal/config"
	"github.com/goodtune/gatesheet/internal/storage"
	"github.com/goodtune/gatesheet/internal/timesheet"
	"github.com/spf13/cobra"
)

var (
	historyFrom string
	historyTo   string
	historyDate string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived timesheet days",
	Long:  `List the days archived by earlier report runs, oldest first.`,
	Example: `  gatesheet -c gatesheet.yaml history
  gatesheet -c gatesheet.yaml history --from 2019-02-04 --to 2019-02-10
  gatesheet -c gatesheet.yaml history --date 2019-02-05`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "First date to list (YYYY-MM-DD, inclusive)")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "Last date to list (YYYY-MM-DD, inclusive)")
	historyCmd.Flags().StringVar(&historyDate, "date", "", "Show a single archived date (YYYY-MM-DD)")
	historyCmd.MarkFlagsMutuallyExclusive("date", "from")
	historyCmd.MarkFlagsMutuallyExclusive("date", "to")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	filter := storage.DayFilter{From: historyFrom, To: historyTo}
	if err := validateFilter(filter); err != nil {
		return err
	}
	if historyDate != "" {
		if _, err := time.Parse(timesheet.DateLayout, historyDate); err != nil {
			return fmt.Errorf("invalid --date: %s", historyDate)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := openStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	if historyDate != "" {
		return showDay(cmd.Context(), cmd.OutOrStdout(), store.Reports(), historyDate)
	}
	return listHistory(cmd.Context(), cmd.OutOrStdout(), store.Reports(), filter)
}

// validateFilter checks the date bounds before any connection is made
func validateFilter(filter storage.DayFilter) error {
	var from, to time.Time
	var err error

	if filter.From != "" {
		if from, err = time.Parse(timesheet.DateLayout, filter.From); err != nil {
			return fmt.Errorf("invalid --from date: %s", filter.From)
		}
	}
	if filter.To != "" {
		if to, err = time.Parse(timesheet.DateLayout, filter.To); err != nil {
			return fmt.Errorf("invalid --to date: %s", filter.To)
		}
	}
	if filter.From != "" && filter.To != "" && to.Before(from) {
		return fmt.Errorf("--to (%s) is before --from (%s)", filter.To, filter.From)
	}
	return nil
}

// listHistory prints archived days in report format
func listHistory(ctx context.Context, out io.Writer, reports storage.ReportStore, filter storage.DayFilter) error {
	days, err := reports.ListDays(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list archived days: %w", err)
	}

	if len(days) == 0 {
		fmt.Fprintln(out, "No archived days")
		return nil
	}

	return printDays(out, days)
}

// showDay prints every archived row of one date
func showDay(ctx context.Context, out io.Writer, reports storage.ReportStore, date string) error {
	days, err := reports.GetDay(ctx, date)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(out, "No archived rows for %s\n", date)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get archived day: %w", err)
	}

	return printDays(out, days)
}

func printDays(out io.Writer, days []storage.DayReport) error {
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	for _, day := range days {
		row, err := day.Row()
		if err != nil {
			return err
		}

		c := green
		if len(row.Flags) > 0 || row.Week != nil {
			c = yellow
		}
		_, _ = c.Fprint(out, row.String())
		_, _ = faint.Fprintf(out, "  [%s %s]\n", day.Source, day.ProcessedAt.Local().Format("2006-01-02 15:04"))
	}

	return nil
}
