package variant

import (
	"errors"
	"testing"
)

func TestReaderMirrorsBuilder(t *testing.T) {
	r := NewReader(recordTree())

	if err := r.BeginObject(); err != nil {
		t.Fatalf("begin object failed: %v", err)
	}

	if !r.BeginObjectEntry("id") {
		t.Fatal("id entry should be present")
	}
	id, err := r.ReadScalar()
	if err != nil {
		t.Fatalf("read id failed: %v", err)
	}
	if id.n != 7 {
		t.Fatalf("expected id 7, got %d", id.n)
	}
	r.EndObjectEntry("id")

	if !r.BeginObjectEntry("tags") {
		t.Fatal("tags entry should be present")
	}
	n, err := r.BeginArray()
	if err != nil {
		t.Fatalf("begin array failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 elements, got %d", n)
	}
	for i := 0; i < n; i++ {
		if err := r.BeginArrayEntry(i); err != nil {
			t.Fatalf("element %d failed: %v", i, err)
		}
		if _, err := r.ReadScalar(); err != nil {
			t.Fatalf("element %d read failed: %v", i, err)
		}
		r.EndArrayEntry(i)
	}
	r.EndArray()
	r.EndObjectEntry("tags")

	if !r.BeginObjectEntry("meta") {
		t.Fatal("meta entry should be present")
	}
	if err := r.BeginObject(); err != nil {
		t.Fatalf("begin nested object failed: %v", err)
	}
	if !r.BeginObjectEntry("note") {
		t.Fatal("note entry should be present")
	}
	if !r.IsNull() {
		t.Fatal("note should read as null")
	}
	r.EndObjectEntry("note")
	r.EndObject()
	r.EndObjectEntry("meta")

	r.EndObject()
	if r.Depth() != 0 {
		t.Fatalf("balanced walk should close every composite, depth %d", r.Depth())
	}
}

func TestReaderAbsentEntry(t *testing.T) {
	r := NewReader(recordTree())
	if err := r.BeginObject(); err != nil {
		t.Fatalf("begin object failed: %v", err)
	}
	if r.BeginObjectEntry("missing") {
		t.Fatal("absent entry must report false")
	}
	if !r.BeginObjectEntry("id") {
		t.Fatal("reader should stay usable after an absent entry")
	}
}

func TestReaderEntries(t *testing.T) {
	r := NewReader(recordTree())
	if err := r.BeginObject(); err != nil {
		t.Fatalf("begin object failed: %v", err)
	}
	got := r.Entries()
	want := []string{"id", "meta", "tags"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestReaderShapeMismatch(t *testing.T) {
	if err := NewReader(num(1)).BeginObject(); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if _, err := NewReader(obj(nil)).BeginArray(); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if _, err := NewReader(arr()).ReadScalar(); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if _, err := NewReader(Null[tscalar]()).ReadScalar(); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch for null, got %v", err)
	}

	r := NewReader(arr(num(1)))
	if _, err := r.BeginArray(); err != nil {
		t.Fatalf("begin array failed: %v", err)
	}
	if err := r.BeginArrayEntry(3); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch past the end, got %v", err)
	}
}

func TestReaderReadValueDetaches(t *testing.T) {
	tree := recordTree()
	r := NewReader(tree)
	if err := r.BeginObject(); err != nil {
		t.Fatalf("begin object failed: %v", err)
	}
	if !r.BeginObjectEntry("tags") {
		t.Fatal("tags entry should be present")
	}
	lifted := r.ReadValue()

	original, _ := tree.Key("tags")
	original.Append(str("c"))
	if lifted.Len() != 2 {
		t.Fatalf("ReadValue must return a detached copy, len %d", lifted.Len())
	}
}

func TestReaderUnbalancedCallsPanic(t *testing.T) {
	mustPanic(t, "EndObject without BeginObject", func() {
		NewReader(recordTree()).EndObject()
	})
	mustPanic(t, "EndArray inside object", func() {
		r := NewReader(recordTree())
		if err := r.BeginObject(); err != nil {
			t.Fatalf("begin object failed: %v", err)
		}
		r.EndArray()
	})
	mustPanic(t, "BeginArrayEntry inside object", func() {
		r := NewReader(recordTree())
		if err := r.BeginObject(); err != nil {
			t.Fatalf("begin object failed: %v", err)
		}
		_ = r.BeginArrayEntry(0)
	})
}
