package variant

import "testing"

// buildRecord drives the builder the way a reflection layer would when
// serializing a small record with a scalar, an array field, and a nested
// object field.
func buildRecord(b *Builder[tscalar]) {
	b.BeginObject()

	b.BeginObjectEntry("id")
	b.WriteScalar(tscalar{kind: kindNum, n: 7})
	b.EndObjectEntry("id")

	b.BeginObjectEntry("tags")
	b.BeginArray(2)
	b.BeginArrayEntry(0)
	b.WriteScalar(tscalar{kind: kindStr, s: "a"})
	b.EndArrayEntry(0)
	b.BeginArrayEntry(1)
	b.WriteScalar(tscalar{kind: kindStr, s: "b"})
	b.EndArrayEntry(1)
	b.EndArray()
	b.EndObjectEntry("tags")

	b.BeginObjectEntry("meta")
	b.BeginObject()
	b.BeginObjectEntry("note")
	b.WriteNull()
	b.EndObjectEntry("note")
	b.EndObject()
	b.EndObjectEntry("meta")

	b.EndObject()
}

func recordTree() *Value[tscalar] {
	return obj(map[string]*Value[tscalar]{
		"id":   num(7),
		"tags": arr(str("a"), str("b")),
		"meta": obj(map[string]*Value[tscalar]{"note": Null[tscalar]()}),
	})
}

func TestBuilderAssemblesTree(t *testing.T) {
	b := NewBuilder[tscalar]()
	buildRecord(b)

	if b.Depth() != 0 {
		t.Fatalf("balanced build should leave no open composites, depth %d", b.Depth())
	}
	got := b.Result()
	if !got.Equal(recordTree()) {
		t.Fatalf("expected %s, got %s", recordTree(), got)
	}
}

func TestBuilderReusableAfterResult(t *testing.T) {
	b := NewBuilder[tscalar]()
	buildRecord(b)
	first := b.Result()

	b.WriteScalar(tscalar{kind: kindNum, n: 1})
	second := b.Result()
	if !second.Equal(num(1)) {
		t.Fatalf("builder should reset after Result, got %s", second)
	}
	if !first.Equal(recordTree()) {
		t.Fatalf("second build corrupted the first result: %s", first)
	}
}

func TestBuilderResultDefaultsToNull(t *testing.T) {
	b := NewBuilder[tscalar]()
	if got := b.Result(); !got.IsNull() {
		t.Fatalf("empty builder should produce null, got %s", got)
	}
}

func TestBuilderWriteValueTakesOwnership(t *testing.T) {
	source := arr(num(1))
	b := NewBuilder[tscalar]()
	b.WriteValue(source)
	got := b.Result()

	source.Append(num(2))
	if got.Len() != 2 {
		t.Fatalf("WriteValue hands over the node itself, expected the mutation to show, len %d", got.Len())
	}
}

func TestBuilderWriteValueCloneDetaches(t *testing.T) {
	source := arr(num(1))
	b := NewBuilder[tscalar]()
	b.WriteValueClone(source)
	got := b.Result()

	source.Append(num(2))
	if got.Len() != 1 {
		t.Fatalf("WriteValueClone must detach from the source, len %d", got.Len())
	}
}

func TestBuilderNegativeSizeHint(t *testing.T) {
	b := NewBuilder[tscalar]()
	b.BeginArray(-5)
	b.EndArray()
	if got := b.Result(); !got.IsArray() || got.Len() != 0 {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestBuilderUnbalancedCallsPanic(t *testing.T) {
	mustPanic(t, "EndObject without BeginObject", func() {
		NewBuilder[tscalar]().EndObject()
	})
	mustPanic(t, "EndArray without BeginArray", func() {
		NewBuilder[tscalar]().EndArray()
	})
	mustPanic(t, "EndObjectEntry inside array", func() {
		b := NewBuilder[tscalar]()
		b.BeginArray(0)
		b.WriteNull()
		b.EndObjectEntry("x")
	})
	mustPanic(t, "EndArrayEntry inside object", func() {
		b := NewBuilder[tscalar]()
		b.BeginObject()
		b.WriteNull()
		b.EndArrayEntry(0)
	})
	mustPanic(t, "Result with open composite", func() {
		b := NewBuilder[tscalar]()
		b.BeginObject()
		b.Result()
	})
}
