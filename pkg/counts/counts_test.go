package counts_test

import (
	"errors"
	"testing"

	"github.com/cloud-bulldozer/bench-combine/pkg/counts"
	"github.com/cloud-bulldozer/bench-combine/pkg/frame"
)

func TestLoad(t *testing.T) {
	f, err := counts.Load("testdata/counts.csv", "name")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"name", "weight", "branches"}
	if !frame.SameColumns(f.Columns, want) {
		t.Errorf("columns: got %v, want %v", f.Columns, want)
	}
	if f.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", f.Len())
	}
	if f.Value(1, "name") != "bar" || f.Value(1, "weight") != "5" {
		t.Errorf("unexpected second row %v", f.Rows[1])
	}
}

func TestLoadUnnamedIndex(t *testing.T) {
	f, err := counts.Load("testdata/unnamed-index.csv", "name")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Columns[0] != "name" {
		t.Errorf("expected blank index header to become 'name', got %q", f.Columns[0])
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		file string
		kind error
	}{
		{"testdata/missing.csv", frame.ErrIO},
		{"testdata", frame.ErrIO},
		{"testdata/empty.csv", frame.ErrFormat},
		{"testdata/ragged.csv", frame.ErrFormat},
		{"testdata/bad-quote.csv", frame.ErrFormat},
	}
	for _, tc := range tests {
		_, err := counts.Load(tc.file, "name")
		if !errors.Is(err, tc.kind) {
			t.Errorf("%s: expected %v, got %v", tc.file, tc.kind, err)
		}
	}
}
