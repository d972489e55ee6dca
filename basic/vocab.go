package basic

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/goliatone/go-variant"
)

// Vocab maps between basic scalars and plain Go values. It is the
// variant.Vocabulary used by FromNative and ToNative, and the one registry
// and codec layers should reach for unless they define their own alphabet.
type Vocab struct{}

// FromNative converts a plain Go value into a basic scalar. Integer types of
// every width map to the int kind; unsigned values too large for int64 are
// promoted to bigint rather than truncated.
func (Vocab) FromNative(x any) (Scalar, bool) {
	switch v := x.(type) {
	case Scalar:
		return v.Clone(), true
	case bool:
		return Scalar{kind: KindBool, b: v}, true
	case int:
		return Scalar{kind: KindInt, i: int64(v)}, true
	case int8:
		return Scalar{kind: KindInt, i: int64(v)}, true
	case int16:
		return Scalar{kind: KindInt, i: int64(v)}, true
	case int32:
		return Scalar{kind: KindInt, i: int64(v)}, true
	case int64:
		return Scalar{kind: KindInt, i: v}, true
	case uint:
		return uintScalar(uint64(v)), true
	case uint8:
		return Scalar{kind: KindInt, i: int64(v)}, true
	case uint16:
		return Scalar{kind: KindInt, i: int64(v)}, true
	case uint32:
		return Scalar{kind: KindInt, i: int64(v)}, true
	case uint64:
		return uintScalar(v), true
	case float32:
		return Scalar{kind: KindFloat, f: float64(v)}, true
	case float64:
		return Scalar{kind: KindFloat, f: v}, true
	case *big.Int:
		return bigIntScalar(v), true
	case big.Int:
		return bigIntScalar(&v), true
	case string:
		return Scalar{kind: KindString, s: v}, true
	case time.Time:
		return Scalar{kind: KindTime, t: v}, true
	}
	return Scalar{}, false
}

// Native converts a basic scalar back into the plain Go value it carries.
func (Vocab) Native(s Scalar) any {
	switch s.Kind() {
	case KindBool:
		return s.b
	case KindInt:
		return s.i
	case KindFloat:
		return s.f
	case KindBigInt:
		return new(big.Int).Set(bigOrZero(s.big))
	case KindString:
		return s.s
	case KindTime:
		return s.t
	}
	return nil
}

// FromNative converts nested maps, slices, and plain scalars into a basic
// tree. See variant.FromNative for the accepted shapes.
func FromNative(x any) (*Value, error) {
	return variant.FromNative[Scalar](x, Vocab{})
}

// ToNative converts a basic tree into nested maps, slices, and plain
// scalars.
func ToNative(v *Value) any {
	return variant.ToNative(v, Vocab{})
}

func uintScalar(v uint64) Scalar {
	if v > math.MaxInt64 {
		return Scalar{kind: KindBigInt, big: new(big.Int).SetUint64(v)}
	}
	return Scalar{kind: KindInt, i: int64(v)}
}

// BoolValue reads v as a boolean leaf.
func BoolValue(v *Value) (bool, error) {
	s, err := leaf(v, KindBool)
	if err != nil {
		return false, err
	}
	return s.b, nil
}

// IntValue reads v as an integer leaf.
func IntValue(v *Value) (int64, error) {
	s, err := leaf(v, KindInt)
	if err != nil {
		return 0, err
	}
	return s.i, nil
}

// FloatValue reads v as a floating-point leaf.
func FloatValue(v *Value) (float64, error) {
	s, err := leaf(v, KindFloat)
	if err != nil {
		return 0, err
	}
	return s.f, nil
}

// BigIntValue reads v as a big-integer leaf, returning a copy of the payload.
func BigIntValue(v *Value) (*big.Int, error) {
	s, err := leaf(v, KindBigInt)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(bigOrZero(s.big)), nil
}

// StringValue reads v as a string leaf.
func StringValue(v *Value) (string, error) {
	s, err := leaf(v, KindString)
	if err != nil {
		return "", err
	}
	return s.s, nil
}

// TimeValue reads v as a timestamp leaf.
func TimeValue(v *Value) (time.Time, error) {
	s, err := leaf(v, KindTime)
	if err != nil {
		return time.Time{}, err
	}
	return s.t, nil
}

func leaf(v *Value, kind variant.ScalarKind) (Scalar, error) {
	s, err := v.Scalar()
	if err != nil {
		return Scalar{}, err
	}
	if s.Kind() != kind {
		return Scalar{}, fmt.Errorf("%w: expected %s scalar, found %s", variant.ErrTypeMismatch, kind, s.Kind())
	}
	return s, nil
}
