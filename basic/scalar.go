package basic

import (
	"math/big"
	"strconv"
	"time"

	"github.com/goliatone/go-variant"
)

// Scalar is the leaf payload of the basic vocabulary. The zero Scalar is a
// boolean false; construct leaves through the package-level constructors.
type Scalar struct {
	kind variant.ScalarKind
	b    bool
	i    int64
	f    float64
	big  *big.Int
	s    string
	t    time.Time
}

// Kind reports which member of the vocabulary this scalar is.
func (s Scalar) Kind() variant.ScalarKind {
	if s.kind == "" {
		return KindBool
	}
	return s.kind
}

// Equal reports whether other carries the same kind and the same payload.
// Kinds never coerce: an integer 1 and a float 1.0 are not equal.
func (s Scalar) Equal(other Scalar) bool {
	if s.Kind() != other.Kind() {
		return false
	}
	switch s.Kind() {
	case KindBool:
		return s.b == other.b
	case KindInt:
		return s.i == other.i
	case KindFloat:
		return s.f == other.f
	case KindBigInt:
		return bigOrZero(s.big).Cmp(bigOrZero(other.big)) == 0
	case KindString:
		return s.s == other.s
	case KindTime:
		return s.t.Equal(other.t)
	}
	return false
}

// Clone returns an independent copy. Only the big-integer payload needs a
// deep copy; every other payload is a value.
func (s Scalar) Clone() Scalar {
	out := s
	if s.big != nil {
		out.big = new(big.Int).Set(s.big)
	}
	return out
}

// String renders the payload for diagnostics. Strings are quoted so they
// remain distinguishable from other kinds inside a rendered tree.
func (s Scalar) String() string {
	switch s.Kind() {
	case KindBool:
		return strconv.FormatBool(s.b)
	case KindInt:
		return strconv.FormatInt(s.i, 10)
	case KindFloat:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	case KindBigInt:
		return bigOrZero(s.big).String()
	case KindString:
		return strconv.Quote(s.s)
	case KindTime:
		return s.t.Format(time.RFC3339Nano)
	}
	return string(s.Kind())
}

// Bool reports the payload of a boolean scalar.
func (s Scalar) Bool() (bool, bool) {
	return s.b, s.Kind() == KindBool
}

// Int reports the payload of an integer scalar.
func (s Scalar) Int() (int64, bool) {
	return s.i, s.Kind() == KindInt
}

// Float reports the payload of a floating-point scalar.
func (s Scalar) Float() (float64, bool) {
	return s.f, s.Kind() == KindFloat
}

// BigInt reports a copy of the payload of a big-integer scalar.
func (s Scalar) BigInt() (*big.Int, bool) {
	if s.Kind() != KindBigInt {
		return nil, false
	}
	return new(big.Int).Set(bigOrZero(s.big)), true
}

// Text reports the payload of a string scalar.
func (s Scalar) Text() (string, bool) {
	return s.s, s.Kind() == KindString
}

// Time reports the payload of a timestamp scalar.
func (s Scalar) Time() (time.Time, bool) {
	return s.t, s.Kind() == KindTime
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
