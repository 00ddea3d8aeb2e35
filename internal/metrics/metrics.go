package metrics

import (
	"context"
	"fmt"

	"github.com/goodtune/gatesheet/internal/attendance"
	"github.com/goodtune/gatesheet/internal/timesheet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	// Load metrics
	RecordsLoaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gatesheet_records_loaded_total",
			Help: "Total attendance records read from input files",
		},
	)

	RecordsRemoved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatesheet_records_removed_total",
			Help: "Attendance records dropped while cleaning the log",
		},
		[]string{"reason"},
	)

	LoadErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatesheet_load_errors_total",
			Help: "Input files rejected by the loader",
		},
		[]string{"kind"},
	)

	// Report metrics
	RowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gatesheet_rows_total",
			Help: "Total report rows produced",
		},
	)

	FlagsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatesheet_flags_total",
			Help: "Report rows carrying each flag",
		},
		[]string{"flag"},
	)

	DayWorkSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gatesheet_day_work_seconds",
			Help:    "Worked time per report row in seconds",
			Buckets: []float64{0, 3600, 2 * 3600, 4 * 3600, 6 * 3600, 7 * 3600, 8 * 3600, 9 * 3600, 10 * 3600, 12 * 3600},
		},
	)

	WeekBalanceSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gatesheet_last_week_balance_seconds",
			Help: "Balance of the most recent closed week in seconds",
		},
	)
)

// Removal reasons
const (
	ReasonCentral   = "central"
	ReasonDuplicate = "duplicate"
)

func init() {
	// Register all metrics
	prometheus.MustRegister(
		RecordsLoaded,
		RecordsRemoved,
		LoadErrors,
		RowsTotal,
		FlagsTotal,
		DayWorkSeconds,
		WeekBalanceSeconds,
	)
}

// ObserveResult records the outcome of one processed log.
func ObserveResult(result timesheet.Result) {
	RecordsLoaded.Add(float64(result.Stats.Loaded))
	RecordsRemoved.WithLabelValues(ReasonCentral).Add(float64(result.Stats.CentralRemoved))
	RecordsRemoved.WithLabelValues(ReasonDuplicate).Add(float64(result.Stats.DuplicatesRemoved))
	RowsTotal.Add(float64(len(result.Rows)))

	for _, row := range result.Rows {
		DayWorkSeconds.Observe(row.Work.Seconds())
		for _, f := range row.Flags {
			FlagsTotal.WithLabelValues(string(f)).Inc()
		}
		if row.Week != nil {
			WeekBalanceSeconds.Set(row.Week.Balance.Seconds())
		}
	}
}

// ObserveLoadError counts a rejected input file.
func ObserveLoadError(kind attendance.ErrorKind) {
	LoadErrors.WithLabelValues(kind.String()).Inc()
}

// WriteTextfile writes the registry in text exposition format, for node
// exporter's textfile collector. The file is replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Push sends the registry to a Prometheus pushgateway under job.
func Push(ctx context.Context, url, job string) error {
	err := push.New(url, job).
		Gatherer(prometheus.DefaultGatherer).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
