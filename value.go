// Package variant implements a recursive, dynamically-typed value tree: a
// tagged union over a deployment-chosen set of scalar kinds plus arrays and
// string-keyed objects. The tree carries value semantics (structural
// equality, deep copy with no shared ownership) and total path lookup, and is
// the interchange shape between records, snapshots and partial updates.
//
// The scalar vocabulary is a type parameter, not a hard-coded kind list; see
// Scalar and the basic package for the stock vocabulary.
package variant

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the node families a Value can hold.
type Kind uint8

const (
	// KindNull is the absent-value leaf. The zero Value is null.
	KindNull Kind = iota
	// KindScalar is a leaf holding one vocabulary scalar.
	KindScalar
	// KindArray is an ordered sequence of child nodes.
	KindArray
	// KindObject is a string-keyed mapping of child nodes with unique keys.
	KindObject
)

// String renders the kind name for diagnostics and error text.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is one node of a value tree. A node holds exactly one kind at a time;
// the fields are private and only constructors and write operations change
// them. A nil *Value behaves as a null node for all read-only accessors.
//
// Nodes are single-owner: an array or object owns its children outright.
// Clone is the only sanctioned way to move a subtree across an ownership
// boundary.
type Value[S Scalar[S]] struct {
	kind   Kind
	scalar S
	arr    []*Value[S]
	obj    map[string]*Value[S]
}

// Null returns a fresh null node.
func Null[S Scalar[S]]() *Value[S] {
	return &Value[S]{}
}

// ScalarOf wraps a vocabulary scalar in a leaf node.
func ScalarOf[S Scalar[S]](s S) *Value[S] {
	return &Value[S]{kind: KindScalar, scalar: s}
}

// NewArray returns an array node owning the given elements in order. Every
// call allocates fresh storage; two empty arrays never alias. Nil elements
// are normalized to null nodes.
func NewArray[S Scalar[S]](elems ...*Value[S]) *Value[S] {
	arr := make([]*Value[S], 0, len(elems))
	for _, elem := range elems {
		arr = append(arr, orNull(elem))
	}
	return &Value[S]{kind: KindArray, arr: arr}
}

// NewObject returns an object node owning the given entries. The entries map
// is copied, so the literal used to construct the node stays detached. Nil
// entries are normalized to null nodes.
func NewObject[S Scalar[S]](entries map[string]*Value[S]) *Value[S] {
	obj := make(map[string]*Value[S], len(entries))
	for name, entry := range entries {
		obj[name] = orNull(entry)
	}
	return &Value[S]{kind: KindObject, obj: obj}
}

func orNull[S Scalar[S]](v *Value[S]) *Value[S] {
	if v == nil {
		return &Value[S]{}
	}
	return v
}

// Kind reports the node's kind. Nil receivers report KindNull.
func (v *Value[S]) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the node is the null leaf.
func (v *Value[S]) IsNull() bool { return v.Kind() == KindNull }

// IsScalar reports whether the node holds a vocabulary scalar.
func (v *Value[S]) IsScalar() bool { return v.Kind() == KindScalar }

// IsArray reports whether the node is an array.
func (v *Value[S]) IsArray() bool { return v.Kind() == KindArray }

// IsObject reports whether the node is an object.
func (v *Value[S]) IsObject() bool { return v.Kind() == KindObject }

// ScalarKind reports the vocabulary kind of a scalar node, or the empty kind
// for any other node. Total, like all predicates.
func (v *Value[S]) ScalarKind() ScalarKind {
	if !v.IsScalar() {
		return ""
	}
	return v.scalar.Kind()
}

// Is reports whether the node is a scalar of the given vocabulary kind.
func (v *Value[S]) Is(kind ScalarKind) bool {
	return v.IsScalar() && v.scalar.Kind() == kind
}

// Scalar returns the scalar payload of a scalar node.
func (v *Value[S]) Scalar() (S, error) {
	if !v.IsScalar() {
		var zero S
		return zero, fmt.Errorf("%w: scalar access on %s node", ErrTypeMismatch, v.Kind())
	}
	return v.scalar, nil
}

// Len reports the number of elements of an array node or entries of an
// object node, and zero for leaves.
func (v *Value[S]) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Keys returns the entry names of an object node sorted lexically, or nil
// for any other node. Entry order is not significant for equality; sorting
// keeps diagnostics and iteration deterministic.
func (v *Value[S]) Keys() []string {
	if !v.IsObject() {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for name := range v.obj {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// Index returns a mutable reference to the i-th element of an array node.
// Mutations through the reference are visible to the owner.
func (v *Value[S]) Index(i int) (*Value[S], error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: index %d on %s node", ErrTypeMismatch, i, v.Kind())
	}
	if i < 0 || i >= len(v.arr) {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(v.arr))
	}
	return v.arr[i], nil
}

// Key returns a mutable reference to the named entry of an object node.
// Reading a missing key is an error; it never inserts. Use Set to create or
// replace entries.
func (v *Value[S]) Key(name string) (*Value[S], error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%w: key %q on %s node", ErrTypeMismatch, name, v.Kind())
	}
	entry, ok := v.obj[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	return entry, nil
}

// At walks the tree by repeated object-key lookup and returns the descendant
// at the end of the path. It is total: any kind mismatch or missing key along
// the way reports absence rather than an error, and the tree is never
// mutated. An empty path returns the node itself.
func (v *Value[S]) At(path ...string) (*Value[S], bool) {
	node := v
	for _, name := range path {
		if node.Kind() != KindObject {
			return nil, false
		}
		entry, ok := node.obj[name]
		if !ok {
			return nil, false
		}
		node = entry
	}
	return orNull(node), true
}

// Append adds an element to the end of an array node, taking ownership of it.
func (v *Value[S]) Append(elem *Value[S]) error {
	if !v.IsArray() {
		return fmt.Errorf("%w: append on %s node", ErrTypeMismatch, v.Kind())
	}
	v.arr = append(v.arr, orNull(elem))
	return nil
}

// Set creates or replaces the named entry of an object node, taking ownership
// of the value. This is the sole write path for object entries; keyed reads
// never upsert.
func (v *Value[S]) Set(name string, elem *Value[S]) error {
	if !v.IsObject() {
		return fmt.Errorf("%w: set %q on %s node", ErrTypeMismatch, name, v.Kind())
	}
	v.obj[name] = orNull(elem)
	return nil
}

// SetIndex replaces the i-th element of an array node, taking ownership of
// the value.
func (v *Value[S]) SetIndex(i int, elem *Value[S]) error {
	if !v.IsArray() {
		return fmt.Errorf("%w: set index %d on %s node", ErrTypeMismatch, i, v.Kind())
	}
	if i < 0 || i >= len(v.arr) {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(v.arr))
	}
	v.arr[i] = orNull(elem)
	return nil
}

// String renders the tree for diagnostics: null, scalar.String(), [a,b] for
// arrays and {k:v} for objects with keys sorted. The rendering is not a wire
// format.
func (v *Value[S]) String() string {
	var sb strings.Builder
	v.render(&sb, 0)
	return sb.String()
}

func (v *Value[S]) render(sb *strings.Builder, depth int) {
	checkDepth(depth)
	switch v.Kind() {
	case KindScalar:
		sb.WriteString(v.scalar.String())
	case KindArray:
		sb.WriteByte('[')
		for i, elem := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			elem.render(sb, depth+1)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, name := range v.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(name)
			sb.WriteByte(':')
			v.obj[name].render(sb, depth+1)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("null")
	}
}
