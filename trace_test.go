package variant

import (
	"encoding/json"
	"testing"
)

func TestAtTraceRecordsWalk(t *testing.T) {
	tree := obj(map[string]*Value[tscalar]{
		"a": obj(map[string]*Value[tscalar]{
			"b": num(1),
		}),
	})

	got, trace := tree.AtTrace("a", "b")
	if !trace.Found {
		t.Fatalf("expected found trace, got %+v", trace)
	}
	if !got.Equal(num(1)) {
		t.Fatalf("expected 1, got %s", got)
	}
	if trace.Path != "a.b" {
		t.Fatalf("expected path a.b, got %q", trace.Path)
	}
	if len(trace.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(trace.Steps))
	}
	if !trace.Steps[0].Found || trace.Steps[0].Segment != "a" || trace.Steps[0].Kind != "object" {
		t.Fatalf("unexpected first step: %+v", trace.Steps[0])
	}
	if !trace.Steps[1].Found || trace.Steps[1].Value != "1" {
		t.Fatalf("unexpected second step: %+v", trace.Steps[1])
	}
}

func TestAtTraceStopsAtFirstMiss(t *testing.T) {
	tree := obj(map[string]*Value[tscalar]{
		"a": num(1),
	})

	_, trace := tree.AtTrace("a", "b", "c")
	if trace.Found {
		t.Fatalf("expected miss, got %+v", trace)
	}
	if len(trace.Steps) != 2 {
		t.Fatalf("walk should stop where descent fails, got %d steps", len(trace.Steps))
	}
	last := trace.Steps[len(trace.Steps)-1]
	if last.Found || last.Kind != "scalar" {
		t.Fatalf("final step should record the blocking node, got %+v", last)
	}
}

func TestTraceJSONRoundTrip(t *testing.T) {
	tree := obj(map[string]*Value[tscalar]{
		"feature": obj(map[string]*Value[tscalar]{"enabled": num(1)}),
	})
	_, trace := tree.AtTrace("feature", "enabled")

	raw, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !json.Valid(raw) {
		t.Fatalf("expected valid json, got %s", raw)
	}
	restore, err := TraceFromJSON(raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restore.Path != trace.Path || len(restore.Steps) != len(trace.Steps) || restore.Found != trace.Found {
		t.Fatalf("round trip mismatch: %+v vs %+v", restore, trace)
	}
}
