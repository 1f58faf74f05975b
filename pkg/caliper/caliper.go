package caliper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cloud-bulldozer/bench-combine/pkg/config"
	"github.com/cloud-bulldozer/bench-combine/pkg/frame"
	log "github.com/cloud-bulldozer/bench-combine/pkg/logging"
	"github.com/cloud-bulldozer/bench-combine/pkg/sample"
)

const (
	// BenchmarkVariable is the scenario variable carrying the benchmark name.
	BenchmarkVariable = "benchmark"
	// TimeMeasurement is the measurement set holding execution times.
	TimeMeasurement = "TIME"
)

// Parse reads and validates the Caliper report at path. envKeys are the
// environment properties that must be present.
func Parse(path string, envKeys []string) (*Report, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening report %s: %w", frame.ErrIO, path, err)
	}
	defer fp.Close()
	r, err := Decode(fp, envKeys)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", path, err)
	}
	return r, nil
}

// Decode reads one report from rd and validates it.
func Decode(rd io.Reader, envKeys []string) (*Report, error) {
	var r Report
	dec := json.NewDecoder(rd)
	if err := dec.Decode(&r); err != nil {
		return nil, decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, decodeError(err)
		}
		return nil, fmt.Errorf("%w: unexpected data after the report", frame.ErrFormat)
	}
	if err := r.Validate(envKeys); err != nil {
		return nil, err
	}
	return &r, nil
}

func decodeError(err error) error {
	var perr *os.PathError
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: %w", frame.ErrIO, err)
	}
	return fmt.Errorf("%w: %w", frame.ErrFormat, err)
}

// Validate checks that every path read later exists, so that extraction
// cannot fail halfway through a report.
func (r *Report) Validate(envKeys []string) error {
	if r.Environment == nil || r.Environment.PropertyMap == nil {
		return missing("environment.propertyMap")
	}
	for _, k := range envKeys {
		if _, ok := r.Environment.PropertyMap[k]; !ok {
			return missing("environment.propertyMap." + k)
		}
	}
	if r.Run == nil || r.Run.Measurements == nil {
		return missing("run.measurements")
	}
	for i, m := range r.Run.Measurements {
		if _, ok := m.K.Variables[BenchmarkVariable]; !ok {
			return missing(fmt.Sprintf("run.measurements[%d].k.variables.%s", i, BenchmarkVariable))
		}
		set := m.V.MeasurementSetMap[TimeMeasurement]
		if set == nil {
			return missing(fmt.Sprintf("run.measurements[%d].v.measurementSetMap.%s", i, TimeMeasurement))
		}
		if set.Measurements == nil {
			return missing(fmt.Sprintf("run.measurements[%d].v.measurementSetMap.%s.measurements", i, TimeMeasurement))
		}
		for j, v := range set.Measurements {
			if v.Processed == nil {
				return missing(fmt.Sprintf("run.measurements[%d].v.measurementSetMap.%s.measurements[%d].processed", i, TimeMeasurement, j))
			}
		}
	}
	return nil
}

func missing(path string) error {
	return fmt.Errorf("%w: missing %s", frame.ErrFormat, path)
}

// Samples flattens the time measurements in document order.
func (r *Report) Samples() []sample.Sample {
	var samples []sample.Sample
	for _, m := range r.Run.Measurements {
		name := m.K.Variables[BenchmarkVariable]
		for i, v := range m.V.MeasurementSetMap[TimeMeasurement].Measurements {
			samples = append(samples, sample.Sample{Name: name, Index: i, Time: *v.Processed})
		}
	}
	return samples
}

// Facts returns the environment properties named by keys, in order.
func (r *Report) Facts(keys []string) []string {
	facts := make([]string, 0, len(keys))
	for _, k := range keys {
		facts = append(facts, string(r.Environment.PropertyMap[k]))
	}
	return facts
}

// Frame returns one row per time sample. The environment facts, and the
// tracking mode when cfg names a mode column, are repeated on every row.
func (r *Report) Frame(mode string, cfg config.Config) *frame.Frame {
	columns := []string{cfg.SampleColumn, cfg.Key, cfg.TimeColumn}
	columns = append(columns, cfg.EnvironmentKeys...)
	modeColumn := cfg.Mode()
	if modeColumn != "" {
		columns = append(columns, modeColumn)
	}
	f := frame.New(columns...)
	facts := r.Facts(cfg.EnvironmentKeys)
	for _, s := range r.Samples() {
		row := make([]string, 0, len(columns))
		row = append(row, strconv.Itoa(s.Index), s.Name, strconv.FormatFloat(s.Time, 'f', -1, 64))
		row = append(row, facts...)
		if modeColumn != "" {
			row = append(row, mode)
		}
		f.Rows = append(f.Rows, row)
	}
	return f
}

// ReadTiming parses the report at path and flattens it for mode.
func ReadTiming(path, mode string, cfg config.Config) (*frame.Frame, error) {
	r, err := Parse(path, cfg.EnvironmentKeys)
	if err != nil {
		return nil, err
	}
	f := r.Frame(mode, cfg)
	log.Debugf("Read %d samples from %d benchmarks in %s", f.Len(), len(r.Run.Measurements), path)
	return f, nil
}
