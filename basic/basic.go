// Package basic provides a ready-made scalar vocabulary for variant trees:
// booleans, 64-bit integers, floats, arbitrary-precision integers, strings,
// and timestamps. Most callers that do not need a custom scalar alphabet can
// build their trees out of this package alone.
package basic

import (
	"math/big"
	"time"

	"github.com/goliatone/go-variant"
)

// Value is a variant tree node over the basic scalar vocabulary.
type Value = variant.Value[Scalar]

// Builder writes basic trees through the visitor protocol.
type Builder = variant.Builder[Scalar]

// Reader walks basic trees through the visitor protocol.
type Reader = variant.Reader[Scalar]

// Scalar kinds carried by basic leaves.
const (
	KindBool   variant.ScalarKind = "bool"
	KindInt    variant.ScalarKind = "int"
	KindFloat  variant.ScalarKind = "float"
	KindBigInt variant.ScalarKind = "bigint"
	KindString variant.ScalarKind = "string"
	KindTime   variant.ScalarKind = "time"
)

// Null returns a null node.
func Null() *Value {
	return variant.Null[Scalar]()
}

// Bool returns a boolean leaf.
func Bool(v bool) *Value {
	return variant.ScalarOf(Scalar{kind: KindBool, b: v})
}

// Int returns an integer leaf.
func Int(v int64) *Value {
	return variant.ScalarOf(Scalar{kind: KindInt, i: v})
}

// Float returns a floating-point leaf.
func Float(v float64) *Value {
	return variant.ScalarOf(Scalar{kind: KindFloat, f: v})
}

// BigInt returns an arbitrary-precision integer leaf. The argument is copied;
// a nil argument is treated as zero.
func BigInt(v *big.Int) *Value {
	return variant.ScalarOf(bigIntScalar(v))
}

// String returns a string leaf.
func String(v string) *Value {
	return variant.ScalarOf(Scalar{kind: KindString, s: v})
}

// Time returns a timestamp leaf.
func Time(v time.Time) *Value {
	return variant.ScalarOf(Scalar{kind: KindTime, t: v})
}

// Array returns an array node holding the given elements in order.
func Array(elems ...*Value) *Value {
	return variant.NewArray(elems...)
}

// Object returns an object node holding the given entries.
func Object(entries map[string]*Value) *Value {
	return variant.NewObject(entries)
}

func bigIntScalar(v *big.Int) Scalar {
	n := new(big.Int)
	if v != nil {
		n.Set(v)
	}
	return Scalar{kind: KindBigInt, big: n}
}
