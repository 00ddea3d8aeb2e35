package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goodtune/gatesheet/internal/attendance"
	"github.com/goodtune/gatesheet/internal/timesheet"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func sampleResult() timesheet.Result {
	day := time.Date(2019, 2, 9, 0, 0, 0, 0, time.UTC)
	return timesheet.Result{
		Rows: []timesheet.Row{
			{Date: day, Work: time.Hour, Flags: []timesheet.Flag{timesheet.FlagUndertime, timesheet.FlagWeekend}},
			{
				Date:  day.AddDate(0, 0, 1),
				Work:  10 * time.Hour,
				Flags: []timesheet.Flag{timesheet.FlagOvertime, timesheet.FlagWeekend},
				Week:  &timesheet.WeekTotals{Worked: 11 * time.Hour, Balance: -5 * time.Hour},
			},
		},
		Stats: timesheet.Stats{Loaded: 10, CentralRemoved: 4, DuplicatesRemoved: 2},
	}
}

func TestObserveResult(t *testing.T) {
	loaded := testutil.ToFloat64(RecordsLoaded)
	central := testutil.ToFloat64(RecordsRemoved.WithLabelValues(ReasonCentral))
	dups := testutil.ToFloat64(RecordsRemoved.WithLabelValues(ReasonDuplicate))
	rows := testutil.ToFloat64(RowsTotal)
	weekend := testutil.ToFloat64(FlagsTotal.WithLabelValues("w"))
	overtime := testutil.ToFloat64(FlagsTotal.WithLabelValues("ot"))

	ObserveResult(sampleResult())

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"loaded", testutil.ToFloat64(RecordsLoaded) - loaded, 10},
		{"central", testutil.ToFloat64(RecordsRemoved.WithLabelValues(ReasonCentral)) - central, 4},
		{"duplicates", testutil.ToFloat64(RecordsRemoved.WithLabelValues(ReasonDuplicate)) - dups, 2},
		{"rows", testutil.ToFloat64(RowsTotal) - rows, 2},
		{"weekend flags", testutil.ToFloat64(FlagsTotal.WithLabelValues("w")) - weekend, 2},
		{"overtime flags", testutil.ToFloat64(FlagsTotal.WithLabelValues("ot")) - overtime, 1},
		{"week balance", testutil.ToFloat64(WeekBalanceSeconds), -5 * 3600},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}
}

func TestObserveLoadError(t *testing.T) {
	before := testutil.ToFloat64(LoadErrors.WithLabelValues("header"))

	ObserveLoadError(attendance.KindHeader)
	ObserveLoadError(attendance.KindHeader)

	if got := testutil.ToFloat64(LoadErrors.WithLabelValues("header")) - before; got != 2 {
		t.Errorf("Expected 2 header errors, got %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	ObserveResult(sampleResult())

	path := filepath.Join(t.TempDir(), "gatesheet.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}

	for _, name := range []string{
		"gatesheet_records_loaded_total",
		"gatesheet_rows_total",
		"gatesheet_day_work_seconds_bucket",
		"gatesheet_last_week_balance_seconds",
	} {
		if !strings.Contains(string(data), name) {
			t.Errorf("Expected textfile to contain %s", name)
		}
	}
}

func TestWriteTextfile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "gatesheet.prom")
	if err := WriteTextfile(path); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestPush(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ObserveResult(sampleResult())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Push(ctx, srv.URL, "gatesheet"); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("Expected PUT, got %s", gotMethod)
	}
	if gotPath != "/metrics/job/gatesheet" {
		t.Errorf("Expected /metrics/job/gatesheet, got %s", gotPath)
	}
}

func TestPush_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if err := Push(context.Background(), srv.URL, "gatesheet"); err == nil {
		t.Error("Expected error from failing gateway")
	}
}
