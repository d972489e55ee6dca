package variant

import (
	"encoding/json"
	"strings"
)

// Trace captures how a path lookup walked a value tree, one step per
// segment, so callers can log or transport an explanation of why a lookup
// resolved or came up empty.
type Trace struct {
	Path  string `json:"path"`
	Steps []Step `json:"steps"`
	Found bool   `json:"found"`
}

// Step details how a single path segment resolved against the node it was
// applied to.
type Step struct {
	Segment string `json:"segment"`
	Kind    string `json:"kind"`
	Value   string `json:"value,omitempty"`
	Found   bool   `json:"found"`
}

// AtTrace behaves like At but also reports the walk itself. The trace is
// complete even when the lookup fails partway: later segments simply do not
// appear.
func (v *Value[S]) AtTrace(path ...string) (*Value[S], Trace) {
	trace := Trace{Path: strings.Join(path, ".")}
	node := v
	for _, name := range path {
		step := Step{Segment: name, Kind: node.Kind().String()}
		if node.Kind() != KindObject {
			trace.Steps = append(trace.Steps, step)
			return nil, trace
		}
		entry, ok := node.obj[name]
		if !ok {
			trace.Steps = append(trace.Steps, step)
			return nil, trace
		}
		node = orNull(entry)
		step.Found = true
		step.Value = node.String()
		trace.Steps = append(trace.Steps, step)
	}
	trace.Found = true
	return orNull(node), trace
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
