package caliper

import (
	"errors"
	"strings"
	"testing"

	"github.com/cloud-bulldozer/bench-combine/pkg/config"
	"github.com/cloud-bulldozer/bench-combine/pkg/frame"
)

func TestReadTiming(t *testing.T) {
	cfg := config.Default()
	f, err := ReadTiming("testdata/report_none.json", "none", cfg)
	if err != nil {
		t.Fatalf("ReadTiming: %v", err)
	}
	want := []string{"sample", "name", "execution_time", "jre.version", "jre.availableProcessors", "os.name", "os.version", "mode"}
	if !frame.SameColumns(f.Columns, want) {
		t.Fatalf("columns: got %v, want %v", f.Columns, want)
	}
	if f.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", f.Len())
	}
	expected := [][]string{
		{"0", "foo", "10"},
		{"1", "foo", "12"},
		{"0", "bar", "7.25"},
	}
	for i, e := range expected {
		got := f.Rows[i][:3]
		for j := range e {
			if got[j] != e[j] {
				t.Errorf("row %d: got %v, want %v", i, got, e)
				break
			}
		}
	}
	// environment facts are broadcast to every row of the report
	for i := range f.Rows {
		if f.Value(i, "jre.version") != "1.8.0_292" || f.Value(i, "jre.availableProcessors") != "8" ||
			f.Value(i, "os.name") != "Linux" || f.Value(i, "os.version") != "5.15.0-91-generic" {
			t.Errorf("row %d: unexpected environment facts %v", i, f.Rows[i])
		}
		if f.Value(i, "mode") != "none" {
			t.Errorf("row %d: expected mode none, got %q", i, f.Value(i, "mode"))
		}
	}
}

func TestReadTimingNumericProperty(t *testing.T) {
	f, err := ReadTiming("testdata/report_naive.json", "naive", config.Default())
	if err != nil {
		t.Fatalf("ReadTiming: %v", err)
	}
	if f.Len() != 1 {
		t.Fatalf("expected 1 sample, got %d", f.Len())
	}
	if f.Value(0, "jre.availableProcessors") != "4" {
		t.Errorf("expected numeric property rendered as 4, got %q", f.Value(0, "jre.availableProcessors"))
	}
	if f.Value(0, "execution_time") != "20" {
		t.Errorf("expected execution_time 20, got %q", f.Value(0, "execution_time"))
	}
}

func TestReadTimingWithoutModeColumn(t *testing.T) {
	cfg := config.Default()
	none := ""
	cfg.ModeColumn = &none
	f, err := ReadTiming("testdata/report_naive.json", "naive", cfg)
	if err != nil {
		t.Fatalf("ReadTiming: %v", err)
	}
	if f.Has("mode") {
		t.Errorf("mode column should be disabled, got %v", f.Columns)
	}
}

func TestReadTimingEmptyMeasurements(t *testing.T) {
	f, err := ReadTiming("testdata/empty_measurements.json", "none", config.Default())
	if err != nil {
		t.Fatalf("ReadTiming: %v", err)
	}
	if f.Len() != 0 {
		t.Errorf("expected no samples, got %d", f.Len())
	}
	if !f.Has("name") || !f.Has("execution_time") {
		t.Errorf("empty timing frame should still carry its columns, got %v", f.Columns)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		file string
		kind error
		path string
	}{
		{"testdata/does_not_exist.json", frame.ErrIO, ""},
		{"testdata", frame.ErrIO, ""},
		{"testdata/truncated.json", frame.ErrFormat, ""},
		{"testdata/trailing_garbage.json", frame.ErrFormat, ""},
		{"testdata/trailing_document.json", frame.ErrFormat, "unexpected data after the report"},
		{"testdata/missing_env_key.json", frame.ErrFormat, "environment.propertyMap.jre.availableProcessors"},
		{"testdata/missing_run.json", frame.ErrFormat, "run.measurements"},
		{"testdata/missing_benchmark.json", frame.ErrFormat, "run.measurements[0].k.variables.benchmark"},
		{"testdata/missing_time.json", frame.ErrFormat, "run.measurements[0].v.measurementSetMap.TIME"},
		{"testdata/missing_processed.json", frame.ErrFormat, "measurements[1].processed"},
	}
	for _, tc := range tests {
		_, err := Parse(tc.file, config.DefaultEnvironmentKeys)
		if !errors.Is(err, tc.kind) {
			t.Errorf("%s: expected %v, got %v", tc.file, tc.kind, err)
			continue
		}
		if tc.path != "" && !strings.Contains(err.Error(), tc.path) {
			t.Errorf("%s: expected error to name %q, got %v", tc.file, tc.path, err)
		}
	}
}

func TestDecodeTrailingContent(t *testing.T) {
	doc := `{"environment":{"propertyMap":{}},"run":{"measurements":[]}}`
	if _, err := Decode(strings.NewReader(doc+" this is not json"), nil); !errors.Is(err, frame.ErrFormat) {
		t.Errorf("expected ErrFormat for trailing text, got %v", err)
	}
	if _, err := Decode(strings.NewReader(doc+"\n\t \n"), nil); err != nil {
		t.Errorf("trailing whitespace must be accepted, got %v", err)
	}
}

func TestDecodeProperties(t *testing.T) {
	doc := `{"environment": {"propertyMap": {"a": "x", "b": 16, "c": true, "d": null}}, "run": {"measurements": []}}`
	r, err := Decode(strings.NewReader(doc), []string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := r.Facts([]string{"a", "b", "c", "d"})
	want := []string{"x", "16", "true", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fact %d: got %q, want %q", i, got[i], want[i])
		}
	}

	_, err = Decode(strings.NewReader(`{"environment": {"propertyMap": {"a": {"nested": 1}}}}`), nil)
	if !errors.Is(err, frame.ErrFormat) {
		t.Errorf("expected ErrFormat for object property, got %v", err)
	}
}
