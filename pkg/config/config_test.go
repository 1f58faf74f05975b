package config

import (
	"testing"
)

// TestDefault Ensure the defaults match the Caliper layout
func TestDefault(t *testing.T) {
	c := Default()
	if c.Key != "name" || c.TimeColumn != "execution_time" || c.SampleColumn != "sample" {
		t.Fatalf("unexpected column defaults: %+v", c)
	}
	if c.Mode() != "mode" {
		t.Errorf("expected mode column 'mode', got %q", c.Mode())
	}
	if len(c.Modes) != 2 || c.Modes[0] != "none" || c.Modes[1] != "naive" {
		t.Errorf("unexpected modes %v", c.Modes)
	}
	if c.Header != HeaderOnce {
		t.Errorf("expected header %q, got %q", HeaderOnce, c.Header)
	}
	if !c.SchemaChecked() {
		t.Error("expected schema check enabled by default")
	}
	if ok, err := validConfig(c); !ok {
		t.Fatalf("default config invalid: %v", err)
	}
}

// TestParseConf Test for success. Overrides are applied, the rest defaulted
func TestParseConf(t *testing.T) {
	c, err := ParseConf("testdata/always.yml")
	if err != nil {
		t.Fatalf("Parsing config file failed: %v", err)
	}
	if c.Header != HeaderAlways {
		t.Errorf("expected header always, got %q", c.Header)
	}
	if c.Mode() != "tracking" {
		t.Errorf("expected mode column tracking, got %q", c.Mode())
	}
	if len(c.Modes) != 3 {
		t.Errorf("expected 3 modes, got %v", c.Modes)
	}
	if len(c.EnvironmentKeys) != 4 {
		t.Errorf("expected default environment keys, got %v", c.EnvironmentKeys)
	}
}

// TestParseConfDisableMode Test an explicitly empty mode column disables it
func TestParseConfDisableMode(t *testing.T) {
	c, err := ParseConf("testdata/no-mode.yml")
	if err != nil {
		t.Fatalf("Parsing config file failed: %v", err)
	}
	if c.Mode() != "" {
		t.Errorf("expected mode column disabled, got %q", c.Mode())
	}
	if c.SchemaChecked() {
		t.Error("expected schema check disabled")
	}
}

// TestBadParseConf Testing for failure.
func TestBadParseConf(t *testing.T) {
	for _, file := range []string{
		"testdata/bad-header.yml",
		"testdata/bad-duplicate.yml",
		"testdata/bad-yaml.yml",
		"testdata/missing.yml",
	} {
		if _, err := ParseConf(file); err == nil {
			t.Errorf("Parsing %s should have failed but succeeded", file)
		}
	}
}

// TestTextColumns Ensure identifying columns follow the configuration
func TestTextColumns(t *testing.T) {
	c := Default()
	want := []string{"name", "jre.version", "jre.availableProcessors", "os.name", "os.version", "mode"}
	got := c.TextColumns()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d: got %q, want %q", i, got[i], want[i])
		}
	}
	none := ""
	c.ModeColumn = &none
	if len(c.TextColumns()) != 5 {
		t.Errorf("mode column should be left out when disabled, got %v", c.TextColumns())
	}
}
