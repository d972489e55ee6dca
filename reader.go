package variant

import "fmt"

// Reader walks an existing value tree with the same begin/end call shape the
// Builder accepts, so one reflection layer can drive both directions. When
// the tree's shape disagrees with the caller's expectation, such as a scalar
// node where an object was announced, the call reports ErrSchemaMismatch and
// reconstruction can stop cleanly.
//
// As with the Builder, unbalanced begin/end calls are a broken integration
// and panic.
type Reader[S Scalar[S]] struct {
	current *Value[S]
	stack   []*Value[S]
}

// NewReader returns a reader positioned at the root of v.
func NewReader[S Scalar[S]](v *Value[S]) *Reader[S] {
	return &Reader[S]{current: orNull(v)}
}

// Kind reports the kind of the node the next read call would consume.
func (r *Reader[S]) Kind() Kind {
	return r.current.Kind()
}

// IsNull reports whether the pending node is null.
func (r *Reader[S]) IsNull() bool {
	return r.current.IsNull()
}

// BeginObject enters the pending node as an object.
func (r *Reader[S]) BeginObject() error {
	if !r.current.IsObject() {
		return fmt.Errorf("%w: expected object, found %s", ErrSchemaMismatch, r.current.Kind())
	}
	r.stack = append(r.stack, r.current)
	r.current = nil
	return nil
}

// BeginObjectEntry positions the reader at the named entry of the open
// object. It reports false when the entry is absent, letting the caller
// skip optional fields without treating absence as failure.
func (r *Reader[S]) BeginObjectEntry(name string) bool {
	top := r.top("BeginObjectEntry")
	if top.kind != KindObject {
		panic(fmt.Sprintf("variant: BeginObjectEntry %q inside open %s", name, top.kind))
	}
	entry, ok := top.obj[name]
	if !ok {
		return false
	}
	r.current = orNull(entry)
	return true
}

// EndObjectEntry finishes the named entry.
func (r *Reader[S]) EndObjectEntry(name string) {
	top := r.top("EndObjectEntry")
	if top.kind != KindObject {
		panic(fmt.Sprintf("variant: EndObjectEntry %q inside open %s", name, top.kind))
	}
	r.current = nil
}

// Entries returns the sorted entry names of the open object, for callers
// that discover shape from the tree instead of announcing it.
func (r *Reader[S]) Entries() []string {
	top := r.top("Entries")
	if top.kind != KindObject {
		panic(fmt.Sprintf("variant: Entries inside open %s", top.kind))
	}
	return top.Keys()
}

// EndObject leaves the open object.
func (r *Reader[S]) EndObject() {
	top := r.top("EndObject")
	if top.kind != KindObject {
		panic(fmt.Sprintf("variant: EndObject closes open %s", top.kind))
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.current = nil
}

// BeginArray enters the pending node as an array and reports its length.
func (r *Reader[S]) BeginArray() (int, error) {
	if !r.current.IsArray() {
		return 0, fmt.Errorf("%w: expected array, found %s", ErrSchemaMismatch, r.current.Kind())
	}
	r.stack = append(r.stack, r.current)
	n := len(r.current.arr)
	r.current = nil
	return n, nil
}

// BeginArrayEntry positions the reader at the i-th element of the open
// array.
func (r *Reader[S]) BeginArrayEntry(i int) error {
	top := r.top("BeginArrayEntry")
	if top.kind != KindArray {
		panic(fmt.Sprintf("variant: BeginArrayEntry %d inside open %s", i, top.kind))
	}
	if i < 0 || i >= len(top.arr) {
		return fmt.Errorf("%w: element %d of %d", ErrSchemaMismatch, i, len(top.arr))
	}
	r.current = orNull(top.arr[i])
	return nil
}

// EndArrayEntry finishes the i-th element.
func (r *Reader[S]) EndArrayEntry(i int) {
	top := r.top("EndArrayEntry")
	if top.kind != KindArray {
		panic(fmt.Sprintf("variant: EndArrayEntry %d inside open %s", i, top.kind))
	}
	r.current = nil
}

// EndArray leaves the open array.
func (r *Reader[S]) EndArray() {
	top := r.top("EndArray")
	if top.kind != KindArray {
		panic(fmt.Sprintf("variant: EndArray closes open %s", top.kind))
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.current = nil
}

// ReadScalar consumes the pending node as a scalar leaf.
func (r *Reader[S]) ReadScalar() (S, error) {
	if !r.current.IsScalar() {
		var zero S
		return zero, fmt.Errorf("%w: expected scalar, found %s", ErrSchemaMismatch, r.current.Kind())
	}
	return r.current.scalar, nil
}

// ReadValue consumes the pending node as a detached deep copy, for callers
// that hand whole subtrees to another decoder.
func (r *Reader[S]) ReadValue() *Value[S] {
	return r.current.Clone()
}

// Depth reports how many composites are open.
func (r *Reader[S]) Depth() int {
	return len(r.stack)
}

func (r *Reader[S]) top(op string) *Value[S] {
	if len(r.stack) == 0 {
		panic("variant: " + op + " without matching Begin call")
	}
	return r.stack[len(r.stack)-1]
}
