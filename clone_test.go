package variant

import "testing"

func TestCloneEqualsOriginal(t *testing.T) {
	tree := obj(map[string]*Value[tscalar]{
		"name": str("Monagle"),
		"tags": arr(str("a"), str("b")),
		"meta": obj(map[string]*Value[tscalar]{"depth": num(2), "note": Null[tscalar]()}),
	})

	dup := tree.Clone()
	if !dup.Equal(tree) {
		t.Fatalf("clone should be structurally equal:\n  original %s\n  clone    %s", tree, dup)
	}
}

func TestCloneSharesNothing(t *testing.T) {
	tree := obj(map[string]*Value[tscalar]{
		"tags": arr(str("a")),
		"meta": obj(map[string]*Value[tscalar]{"depth": num(2)}),
	})
	dup := tree.Clone()

	tags, _ := tree.Key("tags")
	if err := tags.Append(str("extra")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	meta, _ := tree.Key("meta")
	if err := meta.Set("depth", num(99)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	dupTags, _ := dup.Key("tags")
	if dupTags.Len() != 1 {
		t.Fatalf("mutating original reached the clone: tags len %d", dupTags.Len())
	}
	dupDepth, ok := dup.At("meta", "depth")
	if !ok || !dupDepth.Equal(num(2)) {
		t.Fatalf("mutating original reached the clone: depth %s", dupDepth)
	}

	dupTags.Append(str("other"))
	originalTags, _ := tree.Key("tags")
	if originalTags.Len() != 2 {
		t.Fatalf("mutating clone reached the original: tags len %d", originalTags.Len())
	}
}

func TestCloneNilAndNull(t *testing.T) {
	var nilValue *Value[tscalar]
	if got := nilValue.Clone(); !got.IsNull() {
		t.Fatalf("clone of nil should be null, got %s", got)
	}
	if got := Null[tscalar]().Clone(); !got.IsNull() {
		t.Fatalf("clone of null should be null, got %s", got)
	}
}

func TestEqualStructural(t *testing.T) {
	a := obj(map[string]*Value[tscalar]{"x": num(1), "y": arr(num(2))})
	b := obj(map[string]*Value[tscalar]{"y": arr(num(2)), "x": num(1)})
	if !a.Equal(b) {
		t.Fatal("object equality should not depend on entry order")
	}

	if arr(num(1), num(2)).Equal(arr(num(2), num(1))) {
		t.Fatal("array equality must be order sensitive")
	}
	if a.Equal(obj(map[string]*Value[tscalar]{"x": num(1)})) {
		t.Fatal("objects with different entry sets must not be equal")
	}
	if num(1).Equal(str("1")) {
		t.Fatal("scalars of different parameter kinds must not be equal")
	}
	if num(1).Equal(Null[tscalar]()) {
		t.Fatal("scalar and null must not be equal")
	}

	var nilValue *Value[tscalar]
	if !nilValue.Equal(Null[tscalar]()) {
		t.Fatal("nil and explicit null should be equal")
	}
	if !nilValue.Equal(nil) {
		t.Fatal("nil and nil should be equal")
	}
}
