package config

import (
	"fmt"
	"os"

	log "github.com/cloud-bulldozer/bench-combine/pkg/logging"
	"gopkg.in/yaml.v3"
)

// Header policies for appending to an existing output file.
const (
	// HeaderOnce writes the header only when the output file is created.
	HeaderOnce = "once"
	// HeaderAlways re-emits the header on every append.
	HeaderAlways = "always"
)

// Config describes how the counts and the timing reports are combined
type Config struct {
	Key             string   `yaml:"key,omitempty"`
	TimeColumn      string   `yaml:"timeColumn,omitempty"`
	SampleColumn    string   `yaml:"sampleColumn,omitempty"`
	ModeColumn      *string  `yaml:"modeColumn,omitempty"`
	Modes           []string `yaml:"modes,omitempty"`
	EnvironmentKeys []string `yaml:"environmentKeys,omitempty"`
	Header          string   `yaml:"header,omitempty"`
	CheckSchema     *bool    `yaml:"checkSchema,omitempty"`
}

// DefaultEnvironmentKeys are the Caliper environment properties copied onto every sample.
var DefaultEnvironmentKeys = []string{"jre.version", "jre.availableProcessors", "os.name", "os.version"}

// DefaultModes are the tracking modes, one timing report per mode.
var DefaultModes = []string{"none", "naive"}

// Default returns the configuration used when no file is given.
func Default() Config {
	c := Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Key == "" {
		c.Key = "name"
	}
	if c.TimeColumn == "" {
		c.TimeColumn = "execution_time"
	}
	if c.SampleColumn == "" {
		c.SampleColumn = "sample"
	}
	if c.ModeColumn == nil {
		mode := "mode"
		c.ModeColumn = &mode
	}
	if len(c.Modes) == 0 {
		c.Modes = append([]string(nil), DefaultModes...)
	}
	if len(c.EnvironmentKeys) == 0 {
		c.EnvironmentKeys = append([]string(nil), DefaultEnvironmentKeys...)
	}
	if c.Header == "" {
		c.Header = HeaderOnce
	}
	if c.CheckSchema == nil {
		check := true
		c.CheckSchema = &check
	}
}

// Mode returns the tracking-mode column name, "" when the column is disabled.
func (c Config) Mode() string {
	if c.ModeColumn == nil {
		return ""
	}
	return *c.ModeColumn
}

// TextColumns are the columns that identify a row rather than measure it:
// the join key, the environment facts and the tracking mode.
func (c Config) TextColumns() []string {
	cols := append([]string{c.Key}, c.EnvironmentKeys...)
	if m := c.Mode(); m != "" {
		cols = append(cols, m)
	}
	return cols
}

// SchemaChecked reports whether appends verify the existing header.
func (c Config) SchemaChecked() bool {
	return c.CheckSchema == nil || *c.CheckSchema
}

func validConfig(cfg Config) (bool, error) {
	if cfg.Header != HeaderOnce && cfg.Header != HeaderAlways {
		return false, fmt.Errorf("header must be %q or %q", HeaderOnce, HeaderAlways)
	}
	seen := map[string]bool{}
	for _, m := range cfg.Modes {
		if m == "" {
			return false, fmt.Errorf("modes must not be empty strings")
		}
		if seen[m] {
			return false, fmt.Errorf("duplicate mode %q", m)
		}
		seen[m] = true
	}
	cols := map[string]bool{}
	for _, c := range append([]string{cfg.Key, cfg.TimeColumn, cfg.SampleColumn, cfg.Mode()}, cfg.EnvironmentKeys...) {
		if c == "" {
			continue
		}
		if cols[c] {
			return false, fmt.Errorf("column %q is configured twice", c)
		}
		cols[c] = true
	}
	return true, nil
}

// ParseConf will read in the combine configuration file.
// Unset fields take the values of Default.
func ParseConf(fn string) (Config, error) {
	log.Infof("📒 Reading %s file. ", fn)
	var c Config
	buf, err := os.ReadFile(fn)
	if err != nil {
		return c, err
	}
	err = yaml.Unmarshal(buf, &c)
	if err != nil {
		return c, fmt.Errorf("in file %q: %v", fn, err)
	}
	c.applyDefaults()
	if ok, err := validConfig(c); !ok {
		return c, fmt.Errorf("in file %q: %v", fn, err)
	}
	return c, nil
}

// Show Display the combine config
func Show(c Config) {
	log.Infof("🗒️  Joining on %q, modes %v, header %s, schema check %t", c.Key, c.Modes, c.Header, c.SchemaChecked())
}
