package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/goodtune/gatesheet/internal/attendance"
	"github.com/goodtune/gatesheet/internal/config"
	"github.com/goodtune/gatesheet/internal/metrics"
	"github.com/goodtune/gatesheet/internal/report"
	"github.com/goodtune/gatesheet/internal/storage"
	"github.com/goodtune/gatesheet/internal/storage/redis"
	"github.com/goodtune/gatesheet/internal/systemd"
	"github.com/goodtune/gatesheet/internal/timesheet"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportOutput string
	reportStdout bool
)

var reportCmd = &cobra.Command{
	Use:   "report [flags] INPUT",
	Short: "Write the timesheet report for a swipe log",
	Long: `Load a gate swipe log, compute the daily timesheet and write it to the
configured output file. When storage or metrics are configured the computed
days are archived and run metrics exported afterwards.

A malformed input file produces a single line describing the problem and no
report.`,
	Example: `  gatesheet report swipes.csv
  gatesheet -c gatesheet.yaml report -o timesheet.txt swipes.csv
  gatesheet report --stdout swipes.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	addReportFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Report output path (overrides report.output_path)")
	cmd.Flags().BoolVar(&reportStdout, "stdout", false, "Write the report to stdout instead of a file")
}

// reportOptions carries the per-invocation choices of the report command
type reportOptions struct {
	Input  string
	Output string // overrides cfg.Report.OutputPath when set
	Stdout bool
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	log.Logger = logger

	opts := reportOptions{
		Input:  args[0],
		Output: reportOutput,
		Stdout: reportStdout,
	}

	return generateReport(cmd.Context(), cfg, opts, cmd.OutOrStdout(), logger)
}

// generateReport runs the whole pipeline for one input file. Load failures
// are reported to the user as one line on out and are not returned.
func generateReport(ctx context.Context, cfg *config.Config, opts reportOptions, out io.Writer, logger zerolog.Logger) error {
	records, err := attendance.Load(opts.Input)
	if err != nil {
		kind := attendance.KindOf(err)
		logger.Debug().Err(err).Str("kind", kind.String()).Msg("Failed to load attendance log")
		metrics.ObserveLoadError(kind)
		fmt.Fprintln(out, kind.Message())
		return exportMetrics(ctx, cfg.Metrics, logger)
	}

	logger.Debug().
		Str("input", opts.Input).
		Int("records", len(records)).
		Msg("Attendance log loaded")

	rules, err := rulesFromConfig(cfg.Workday)
	if err != nil {
		return err
	}

	result := timesheet.NewProcessor(rules, logger).Process(records)

	if opts.Stdout {
		if err := report.Write(out, result.Rows); err != nil {
			return err
		}
	} else {
		path := cfg.Report.OutputPath
		if opts.Output != "" {
			path = opts.Output
		}
		if err := report.WriteFile(path, result.Rows); err != nil {
			return err
		}
		logger.Info().
			Str("path", path).
			Int("rows", len(result.Rows)).
			Msg("Report written")
	}

	if _, err := systemd.Status(fmt.Sprintf("Report written: %d rows", len(result.Rows))); err != nil {
		logger.Debug().Err(err).Msg("Failed to notify systemd")
	}

	metrics.ObserveResult(result)

	// The report is complete at this point; later failures are logged and
	// returned without touching it
	if err := archiveRows(ctx, cfg.Storage, result.Rows, opts.Input, logger); err != nil {
		logger.Error().Err(err).Msg("Failed to archive report")
		return err
	}

	if err := exportMetrics(ctx, cfg.Metrics, logger); err != nil {
		return err
	}

	return nil
}

// rulesFromConfig converts the workday thresholds into processor rules
func rulesFromConfig(cfg config.WorkdayConfig) (timesheet.Rules, error) {
	expected, undertime, overtime, err := cfg.Thresholds()
	if err != nil {
		return timesheet.Rules{}, err
	}
	return timesheet.Rules{
		Expected:  expected,
		Undertime: undertime,
		Overtime:  overtime,
	}, nil
}

// archiveRows saves the computed rows to the configured store and applies
// the retention window
func archiveRows(ctx context.Context, cfg config.StorageConfig, rows []timesheet.Row, source string, logger zerolog.Logger) error {
	if cfg.Type == "" || cfg.Type == "none" {
		return nil
	}

	store, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	now := time.Now()
	days := storage.NewDayReports(rows, filepath.Base(source), now)
	if err := store.Reports().SaveDays(ctx, days); err != nil {
		return fmt.Errorf("failed to archive days: %w", err)
	}

	logger.Info().
		Str("storage", cfg.Type).
		Int("days", len(days)).
		Msg("Report archived")

	if cfg.Redis.RetentionDays > 0 {
		cutoff := now.AddDate(0, 0, -cfg.Redis.RetentionDays).Format(timesheet.DateLayout)
		deleted, err := store.Reports().DeleteDaysBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("failed to prune archive: %w", err)
		}
		if deleted > 0 {
			logger.Info().
				Str("cutoff", cutoff).
				Int("deleted", deleted).
				Msg("Pruned archived days")
		}
	}

	return nil
}

// openStorage opens the configured report archive
func openStorage(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Type {
	case "redis":
		return redis.Open(cfg.Redis)
	case "", "none":
		return nil, fmt.Errorf("storage is disabled (set storage.type to 'redis')")
	default:
		return nil, fmt.Errorf("unsupported storage type: %s (only 'redis' is supported)", cfg.Type)
	}
}

// exportMetrics writes and pushes run metrics when configured
func exportMetrics(ctx context.Context, cfg config.MetricsConfig, logger zerolog.Logger) error {
	if cfg.TextfilePath != "" {
		if err := metrics.WriteTextfile(cfg.TextfilePath); err != nil {
			logger.Error().Err(err).Str("path", cfg.TextfilePath).Msg("Failed to write metrics")
			return err
		}
		logger.Debug().Str("path", cfg.TextfilePath).Msg("Metrics written")
	}

	if cfg.PushgatewayURL != "" {
		ctx, cancel := context.WithTimeout(ctx, parseDuration(cfg.PushTimeout, 10*time.Second))
		defer cancel()

		if err := metrics.Push(ctx, cfg.PushgatewayURL, cfg.Job); err != nil {
			logger.Error().Err(err).Str("url", cfg.PushgatewayURL).Msg("Failed to push metrics")
			return err
		}
		logger.Debug().Str("url", cfg.PushgatewayURL).Msg("Metrics pushed")
	}

	return nil
}
