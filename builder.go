package variant

import "fmt"

// Builder assembles a value tree from the begin/end/write call sequence a
// reflection layer produces while walking a record. It keeps the value under
// construction plus a stack of open composites; the stack must be empty
// exactly at the start and end of a full serialization.
//
// Unbalanced begin/end calls indicate a broken reflection-layer integration,
// not bad input data, and panic rather than returning an error.
type Builder[S Scalar[S]] struct {
	current *Value[S]
	stack   []*Value[S]
}

// NewBuilder returns an empty builder ready for one serialization pass.
func NewBuilder[S Scalar[S]]() *Builder[S] {
	return &Builder[S]{}
}

// BeginObject opens a fresh object composite.
func (b *Builder[S]) BeginObject() {
	b.stack = append(b.stack, &Value[S]{kind: KindObject, obj: map[string]*Value[S]{}})
}

// BeginObjectEntry marks the start of the named entry. It exists to complete
// the visitor wire contract; the entry value is captured by EndObjectEntry.
func (b *Builder[S]) BeginObjectEntry(name string) {
	_ = name
}

// EndObjectEntry stores the current value under name in the open object.
func (b *Builder[S]) EndObjectEntry(name string) {
	top := b.top("EndObjectEntry")
	if top.kind != KindObject {
		panic(fmt.Sprintf("variant: EndObjectEntry %q inside open %s", name, top.kind))
	}
	top.obj[name] = b.take()
}

// EndObject closes the open object, which becomes the current value.
func (b *Builder[S]) EndObject() {
	top := b.top("EndObject")
	if top.kind != KindObject {
		panic(fmt.Sprintf("variant: EndObject closes open %s", top.kind))
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.current = top
}

// BeginArray opens a fresh array composite. A negative size hint is treated
// as zero.
func (b *Builder[S]) BeginArray(sizeHint int) {
	if sizeHint < 0 {
		sizeHint = 0
	}
	b.stack = append(b.stack, &Value[S]{kind: KindArray, arr: make([]*Value[S], 0, sizeHint)})
}

// BeginArrayEntry marks the start of the i-th element. Like
// BeginObjectEntry, it is a protocol hook with no effect.
func (b *Builder[S]) BeginArrayEntry(i int) {
	_ = i
}

// EndArrayEntry appends the current value to the open array.
func (b *Builder[S]) EndArrayEntry(i int) {
	top := b.top("EndArrayEntry")
	if top.kind != KindArray {
		panic(fmt.Sprintf("variant: EndArrayEntry %d inside open %s", i, top.kind))
	}
	top.arr = append(top.arr, b.take())
}

// EndArray closes the open array, which becomes the current value.
func (b *Builder[S]) EndArray() {
	top := b.top("EndArray")
	if top.kind != KindArray {
		panic(fmt.Sprintf("variant: EndArray closes open %s", top.kind))
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.current = top
}

// WriteScalar sets the current value to a scalar leaf.
func (b *Builder[S]) WriteScalar(s S) {
	b.current = ScalarOf(s)
}

// WriteNull sets the current value to a null leaf.
func (b *Builder[S]) WriteNull() {
	b.current = Null[S]()
}

// WriteValue sets the current value to v, taking ownership: the caller must
// not use v afterwards. Use WriteValueClone when the source stays live.
func (b *Builder[S]) WriteValue(v *Value[S]) {
	b.current = orNull(v)
}

// WriteValueClone sets the current value to a deep copy of v, leaving the
// source untouched and unaliased.
func (b *Builder[S]) WriteValueClone(v *Value[S]) {
	b.current = v.Clone()
}

// Depth reports how many composites are open. Zero means the builder is
// balanced and Result may be called.
func (b *Builder[S]) Depth() int {
	return len(b.stack)
}

// Result returns the completed tree and resets the builder for reuse. It
// panics when composites are still open.
func (b *Builder[S]) Result() *Value[S] {
	if len(b.stack) != 0 {
		panic(fmt.Sprintf("variant: Result with %d open composites", len(b.stack)))
	}
	return b.take()
}

func (b *Builder[S]) top(op string) *Value[S] {
	if len(b.stack) == 0 {
		panic("variant: " + op + " without matching Begin call")
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder[S]) take() *Value[S] {
	cur := b.current
	b.current = nil
	return orNull(cur)
}
