package attendance

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestLoadSample(t *testing.T) {
	records, err := Load(filepath.Join("testdata", "sample.csv"))
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}

	if len(records) != 22 {
		t.Fatalf("expected 22 records, got %d", len(records))
	}

	want := Record{
		Timestamp: time.Date(2019, 2, 4, 9, 5, 58, 0, time.UTC),
		Kind:      Entry,
		Gate:      "E/0/KD1/7-9",
	}
	if records[0] != want {
		t.Errorf("first record = %v, want %v", records[0], want)
	}

	last := records[len(records)-1]
	if last.Gate != "E/0/KD1/7-8" {
		t.Errorf("expected trimmed gate, got %q", last.Gate)
	}
	if last.Kind != Exit {
		t.Errorf("expected last record to be an exit, got %s", last.Kind)
	}

	for i := 1; i < len(records); i++ {
		if records[i].Timestamp.Before(records[i-1].Timestamp) {
			t.Fatalf("records not sorted at %d: %v before %v", i, records[i], records[i-1])
		}
	}

	if days := records.Days(); len(days) != 4 {
		t.Errorf("expected 4 distinct days, got %d", len(days))
	}
}

func TestParseColumnOrder(t *testing.T) {
	input := " Gate ; Event;Date \n" +
		"G1;Main ENTRY;2019-02-04 09:00:00\n" +
		"G1;Main Exit;2019-02-04 17:00:00\n"

	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Kind != Entry || records[1].Kind != Exit {
		t.Errorf("unexpected kinds: %s, %s", records[0].Kind, records[1].Kind)
	}
	if records[0].Gate != "G1" {
		t.Errorf("expected gate G1, got %q", records[0].Gate)
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	input := "\n\nDate;Gate;Event\n" +
		"\n" +
		"   \n" +
		" ; ; \n" +
		"2019-02-04 09:00:00;G1;entry\n" +
		"\n"

	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestParseEventClassification(t *testing.T) {
	tests := []struct {
		event string
		want  EventKind
	}{
		{"Reader entry", Entry},
		{"ENTRY", Entry},
		{"exit", Exit},
		{"Turnstile EXIT 2", Exit},
		{"entry then exit", Entry},
		{"exit before entry", Entry},
	}

	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			input := "Date;Gate;Event\n2019-02-04 09:00:00;G1;" + tt.event + "\n"
			records, err := Parse(strings.NewReader(input))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if records[0].Kind != tt.want {
				t.Errorf("kind = %s, want %s", records[0].Kind, tt.want)
			}
		})
	}
}

func TestParseStableSort(t *testing.T) {
	input := "Date;Gate;Event\n" +
		"2019-02-04 17:00:00;late;exit\n" +
		"2019-02-04 09:00:00;first;entry\n" +
		"2019-02-04 09:00:00;second;entry\n"

	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	gates := []string{records[0].Gate, records[1].Gate, records[2].Gate}
	want := []string{"first", "second", "late"}
	for i := range want {
		if gates[i] != want[i] {
			t.Fatalf("order = %v, want %v", gates, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     error
		wantKind ErrorKind
		wantLine int
	}{
		{
			name:     "wrong header",
			input:    "Gate;Date;Wrong\n2019-02-04 09:00:00;G1;entry\n",
			want:     ErrHeader,
			wantKind: KindHeader,
			wantLine: 1,
		},
		{
			name:     "extra header column",
			input:    "Date;Gate;Event;Note\n",
			want:     ErrHeader,
			wantKind: KindHeader,
			wantLine: 1,
		},
		{
			name:     "empty file",
			input:    "",
			want:     ErrEmptyFile,
			wantKind: KindEmptyFile,
		},
		{
			name:     "only blank lines",
			input:    "\n\n\n",
			want:     ErrEmptyFile,
			wantKind: KindEmptyFile,
		},
		{
			name:     "bad date",
			input:    "Date;Gate;Event\n2019-02-04 09:00:00;G1;entry\n04.02.2019 17:00;G1;exit\n",
			want:     ErrFormat,
			wantKind: KindFormat,
			wantLine: 3,
		},
		{
			name:     "fractional seconds",
			input:    "Date;Event;Gate\n2019-02-04 09:05:58.5;entry;G\n",
			want:     ErrFormat,
			wantKind: KindFormat,
			wantLine: 2,
		},
		{
			name:     "zero fractional seconds",
			input:    "Date;Event;Gate\n2019-02-04 09:00:00;entry;G\n2019-02-04 17:00:00,000;exit;G\n",
			want:     ErrFormat,
			wantKind: KindFormat,
			wantLine: 3,
		},
		{
			name:     "missing date",
			input:    "Date;Gate;Event\n;G1;entry\n",
			want:     ErrFormat,
			wantKind: KindFormat,
			wantLine: 2,
		},
		{
			name:     "unknown event",
			input:    "Date;Gate;Event\n2019-02-04 09:00:00;G1;Badge Scan\n",
			want:     ErrEvent,
			wantKind: KindEvent,
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("expected error, got %d records", len(records))
			}
			if records != nil {
				t.Errorf("expected no records on error, got %d", len(records))
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if kind := KindOf(err); kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", kind, tt.wantKind)
			}

			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *LoadError, got %T", err)
			}
			if loadErr.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", loadErr.Line, tt.wantLine)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := Load(path)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("error = %v, want ErrIO", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected underlying not-exist error, got %v", err)
	}
	if msg := KindOf(err).Message(); msg != "File reading error" {
		t.Errorf("message = %q", msg)
	}
}

func TestLoadErrorIncludesPath(t *testing.T) {
	path := writeLog(t, "Gate;Date;Wrong\n")

	_, err := Load(path)
	if !errors.Is(err, ErrHeader) {
		t.Fatalf("error = %v, want ErrHeader", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected path in error message, got %q", err.Error())
	}
}

func TestKindOfForeignError(t *testing.T) {
	if kind := KindOf(errors.New("boom")); kind != KindOther {
		t.Errorf("kind = %s, want other", kind)
	}
	if msg := KindOther.Message(); msg != "Other error" {
		t.Errorf("message = %q", msg)
	}
}
