package style

import (
	"encoding/json"
)

// Trace captures how a variable lookup walked the ancestor chain.
type Trace struct {
	Name  string       `json:"name"`
	Value string       `json:"value,omitempty"`
	Found bool         `json:"found"`
	Steps []Provenance `json:"steps"`
}

// Provenance records one key probed in one style's variable table.
type Provenance struct {
	Owner string        `json:"owner"`
	Depth int           `json:"depth"`
	Key   string        `json:"key"`
	Scope VariableScope `json:"scope"`
	Value string        `json:"value,omitempty"`
	Found bool          `json:"found"`
}

// Source returns the step that produced the resolved value.
func (t Trace) Source() (Provenance, bool) {
	for _, step := range t.Steps {
		if step.Found {
			return step, true
		}
	}
	return Provenance{}, false
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
