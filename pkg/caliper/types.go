package caliper

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Report is the subset of a Caliper JSON result this tool reads.
type Report struct {
	Environment *Environment `json:"environment"`
	Run         *Run         `json:"run"`
}

// Environment holds the machine and runtime properties of the run.
type Environment struct {
	PropertyMap map[string]Property `json:"propertyMap"`
}

// Run lists one measurement entry per benchmark scenario.
type Run struct {
	Measurements []Measurement `json:"measurements"`
}

// Measurement is a scenario key and the values measured for it.
type Measurement struct {
	K Scenario `json:"k"`
	V Results  `json:"v"`
}

// Scenario identifies a measurement; the benchmark name lives in Variables.
type Scenario struct {
	Variables map[string]string `json:"variables"`
}

// Results maps a measurement type (TIME, memory, ...) to its values.
type Results struct {
	MeasurementSetMap map[string]*MeasurementSet `json:"measurementSetMap"`
}

// MeasurementSet is the ordered list of values of one measurement type.
type MeasurementSet struct {
	UnitNames    map[string]int `json:"unitNames,omitempty"`
	Measurements []Value        `json:"measurements"`
}

// Value is one sample. Processed is the per-rep value Caliper derives from Raw.
type Value struct {
	Processed   *float64   `json:"processed"`
	Raw         *Magnitude `json:"raw,omitempty"`
	Weight      float64    `json:"weight,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Magnitude is a raw measured quantity.
type Magnitude struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

// Property is an environment property value. Caliper writes strings, other
// producers write numbers for counts such as jre.availableProcessors.
type Property string

// UnmarshalJSON accepts JSON strings, numbers and booleans.
func (p *Property) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("empty property")
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Property(s)
		return nil
	case '{', '[':
		return fmt.Errorf("property must be a scalar, got %s", b)
	case 'n':
		*p = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*p = Property(n.String())
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Property(fmt.Sprint(v))
	return nil
}
