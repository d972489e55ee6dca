package variant

import "fmt"

// ScalarKind names one leaf kind within a deployment's scalar vocabulary,
// e.g. "bool" or "timestamp". Kinds are opaque to the tree; only the
// vocabulary that defines them assigns meaning.
type ScalarKind string

// Scalar constrains the leaf payload carried by a Value. A deployment picks
// its scalar vocabulary by supplying a single type that satisfies this
// constraint; the tree logic never changes. The basic package ships a stock
// vocabulary covering bool, int64, float64, *big.Int, string and time.Time.
type Scalar[S any] interface {
	// Kind reports which vocabulary kind this scalar holds.
	Kind() ScalarKind
	// Equal reports exact-kind, exact-value equality.
	Equal(other S) bool
	// Clone returns a copy safe to own independently. Value types may return
	// themselves; kinds backed by pointers (big integers) must copy.
	Clone() S
	// String renders the scalar for diagnostics.
	String() string
}

// Vocabulary bridges a scalar vocabulary to native Go values. It is consumed
// by tree/native conversion, the default struct codec, and the registry's
// expression environments.
type Vocabulary[S Scalar[S]] interface {
	// FromNative converts a native Go value into a scalar, reporting false
	// when the value has no representation in this vocabulary.
	FromNative(x any) (S, bool)
	// Native converts a scalar back into its native Go representation.
	Native(s S) any
}

// ToNative converts a whole tree into untyped Go values: nil for null,
// vocab.Native for scalars, []any for arrays and map[string]any for objects.
func ToNative[S Scalar[S]](v *Value[S], vocab Vocabulary[S]) any {
	return toNative(v, vocab, 0)
}

func toNative[S Scalar[S]](v *Value[S], vocab Vocabulary[S], depth int) any {
	checkDepth(depth)
	switch v.Kind() {
	case KindScalar:
		return vocab.Native(v.scalar)
	case KindArray:
		out := make([]any, 0, len(v.arr))
		for _, elem := range v.arr {
			out = append(out, toNative(elem, vocab, depth+1))
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for name, entry := range v.obj {
			out[name] = toNative(entry, vocab, depth+1)
		}
		return out
	default:
		return nil
	}
}

// FromNative converts untyped Go values into a tree: nil becomes null,
// map[string]any becomes an object, []any becomes an array, and anything else
// must be representable by the vocabulary.
func FromNative[S Scalar[S]](x any, vocab Vocabulary[S]) (*Value[S], error) {
	return fromNative(x, vocab, 0)
}

func fromNative[S Scalar[S]](x any, vocab Vocabulary[S], depth int) (*Value[S], error) {
	checkDepth(depth)
	switch t := x.(type) {
	case nil:
		return Null[S](), nil
	case map[string]any:
		obj := make(map[string]*Value[S], len(t))
		for name, entry := range t {
			child, err := fromNative(entry, vocab, depth+1)
			if err != nil {
				return nil, err
			}
			obj[name] = child
		}
		return &Value[S]{kind: KindObject, obj: obj}, nil
	case []any:
		arr := make([]*Value[S], 0, len(t))
		for _, entry := range t {
			child, err := fromNative(entry, vocab, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, child)
		}
		return &Value[S]{kind: KindArray, arr: arr}, nil
	default:
		if s, ok := vocab.FromNative(x); ok {
			return ScalarOf(s), nil
		}
		return nil, fmt.Errorf("%w: no scalar kind for %T", ErrTypeMismatch, x)
	}
}
