// Package treetest provides test fixtures and assertions for variant trees:
// YAML documents load as basic trees, and structural diffs report every path
// where two trees disagree instead of a bare boolean.
package treetest

import (
	"fmt"
	"os"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-variant"
	"github.com/goliatone/go-variant/basic"
)

// FromYAML parses one YAML document into a basic tree. Mappings become
// objects, sequences arrays, and scalars map onto the basic vocabulary;
// timestamps in RFC 3339 form come back as time leaves.
func FromYAML(data []byte) (*basic.Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("treetest: parse yaml: %w", err)
	}
	tree, err := basic.FromNative(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("treetest: convert yaml: %w", err)
	}
	return tree, nil
}

// ToYAML renders a basic tree as a YAML document, the inverse of FromYAML.
func ToYAML(v *basic.Value) ([]byte, error) {
	data, err := yaml.Marshal(basic.ToNative(v))
	if err != nil {
		return nil, fmt.Errorf("treetest: render yaml: %w", err)
	}
	return data, nil
}

// Load reads a YAML fixture from disk, failing the test on any error.
func Load(t testing.TB, path string) *basic.Value {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("treetest: read fixture: %v", err)
	}
	tree, err := FromYAML(data)
	if err != nil {
		t.Fatalf("treetest: fixture %s: %v", path, err)
	}
	return tree
}

// normalize rewrites the decoder's output into the shapes basic.FromNative
// accepts. yaml.v3 produces map[string]any for string-keyed mappings and
// map[any]any otherwise; non-string keys are rendered with fmt.Sprint.
func normalize(x any) any {
	switch v := x.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, entry := range v {
			out[key] = normalize(entry)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, entry := range v {
			out[fmt.Sprint(key)] = normalize(entry)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = normalize(entry)
		}
		return out
	default:
		return x
	}
}

// Diff reports every path where two trees disagree, one line per finding.
// An empty result means the trees are structurally equal.
func Diff(want, got *basic.Value) []string {
	var diffs []string
	diffValue("$", want, got, &diffs)
	return diffs
}

// RequireEqual fails the test with the full diff when the trees disagree.
func RequireEqual(t testing.TB, want, got *basic.Value) {
	t.Helper()
	diffs := Diff(want, got)
	if len(diffs) == 0 {
		return
	}
	msg := "trees differ:"
	for _, d := range diffs {
		msg += "\n  " + d
	}
	t.Fatal(msg)
}

func diffValue(path string, want, got *basic.Value, out *[]string) {
	if want.Kind() != got.Kind() {
		*out = append(*out, fmt.Sprintf("%s: want %s, got %s", path, describe(want), describe(got)))
		return
	}
	switch want.Kind() {
	case variant.KindNull:
	case variant.KindScalar:
		ws, _ := want.Scalar()
		gs, _ := got.Scalar()
		if !ws.Equal(gs) {
			*out = append(*out, fmt.Sprintf("%s: want %s, got %s", path, want, got))
		}
	case variant.KindArray:
		if want.Len() != got.Len() {
			*out = append(*out, fmt.Sprintf("%s: want %d elements, got %d", path, want.Len(), got.Len()))
			return
		}
		for i := 0; i < want.Len(); i++ {
			we, _ := want.Index(i)
			ge, _ := got.Index(i)
			diffValue(fmt.Sprintf("%s[%d]", path, i), we, ge, out)
		}
	case variant.KindObject:
		for _, key := range want.Keys() {
			we, _ := want.Key(key)
			ge, err := got.Key(key)
			if err != nil {
				*out = append(*out, fmt.Sprintf("%s.%s: want %s, got nothing", path, key, describe(we)))
				continue
			}
			diffValue(path+"."+key, we, ge, out)
		}
		for _, key := range got.Keys() {
			if _, err := want.Key(key); err != nil {
				ge, _ := got.Key(key)
				*out = append(*out, fmt.Sprintf("%s.%s: want nothing, got %s", path, key, describe(ge)))
			}
		}
	}
}

// describe renders a node compactly for diff lines: scalars by payload,
// containers by shape.
func describe(v *basic.Value) string {
	switch v.Kind() {
	case variant.KindNull:
		return "null"
	case variant.KindScalar:
		return fmt.Sprintf("%s(%s)", v.ScalarKind(), v)
	case variant.KindArray:
		return fmt.Sprintf("array[%d]", v.Len())
	default:
		return fmt.Sprintf("object{%d}", v.Len())
	}
}
