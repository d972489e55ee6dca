package basic_test

import (
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/goliatone/go-variant"
	"github.com/goliatone/go-variant/basic"
)

func TestKindsNeverCoerce(t *testing.T) {
	if basic.Int(1).Equal(basic.Float(1)) {
		t.Fatal("int 1 and float 1.0 must not be equal")
	}
	if basic.String("1").Equal(basic.Int(1)) {
		t.Fatal("string and int must not be equal")
	}
	if !basic.Int(1).Is(basic.KindInt) || basic.Int(1).Is(basic.KindFloat) {
		t.Fatal("Is should match the parameter kind exactly")
	}
}

func TestBigIntByValue(t *testing.T) {
	seed := big.NewInt(1 << 40)
	leaf := basic.BigInt(seed)
	seed.SetInt64(0)

	got, err := basic.BigIntValue(leaf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Int64() != 1<<40 {
		t.Fatalf("leaf should not alias the constructor argument, got %s", got)
	}

	got.SetInt64(7)
	again, _ := basic.BigIntValue(leaf)
	if again.Int64() != 1<<40 {
		t.Fatalf("reads should return copies, got %s", again)
	}

	if !basic.BigInt(big.NewInt(5)).Equal(basic.BigInt(big.NewInt(5))) {
		t.Fatal("big integers with equal payloads should be equal")
	}
	if !basic.BigInt(nil).Equal(basic.BigInt(big.NewInt(0))) {
		t.Fatal("nil argument should read as zero")
	}
}

func TestTimeEqualByInstant(t *testing.T) {
	instant := time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC)
	elsewhere := instant.In(time.FixedZone("AWST", 8*3600))
	if !basic.Time(instant).Equal(basic.Time(elsewhere)) {
		t.Fatal("timestamps should compare by instant, not location")
	}
}

func TestVocabFromNative(t *testing.T) {
	vocab := basic.Vocab{}

	for _, x := range []any{int(1), int8(1), int16(1), int32(1), int64(1), uint(1), uint8(1), uint16(1), uint32(1), uint64(1)} {
		s, ok := vocab.FromNative(x)
		if !ok {
			t.Fatalf("%T should convert", x)
		}
		if s.Kind() != basic.KindInt {
			t.Fatalf("%T should map to int, got %s", x, s.Kind())
		}
	}

	s, ok := vocab.FromNative(uint64(math.MaxUint64))
	if !ok || s.Kind() != basic.KindBigInt {
		t.Fatalf("oversized uint64 should promote to bigint, got %s", s.Kind())
	}

	if s, _ := vocab.FromNative(float32(1.5)); s.Kind() != basic.KindFloat {
		t.Fatalf("float32 should map to float, got %s", s.Kind())
	}
	if s, _ := vocab.FromNative(*big.NewInt(3)); s.Kind() != basic.KindBigInt {
		t.Fatalf("big.Int value should map to bigint, got %s", s.Kind())
	}
	if s, _ := vocab.FromNative(time.Now()); s.Kind() != basic.KindTime {
		t.Fatalf("time.Time should map to time, got %s", s.Kind())
	}
	if _, ok := vocab.FromNative(struct{}{}); ok {
		t.Fatal("unknown types must not convert")
	}
}

func TestNativeRoundTrip(t *testing.T) {
	tree, err := basic.FromNative(map[string]any{
		"name":    "rig",
		"count":   3,
		"ratio":   0.5,
		"enabled": true,
		"tags":    []any{"a", "b"},
		"absent":  nil,
	})
	if err != nil {
		t.Fatalf("from native failed: %v", err)
	}

	back, ok := basic.ToNative(tree).(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", basic.ToNative(tree))
	}
	if back["name"] != "rig" || back["count"] != int64(3) || back["ratio"] != 0.5 || back["enabled"] != true {
		t.Fatalf("unexpected payload: %#v", back)
	}
	if back["absent"] != nil {
		t.Fatalf("null should read back as nil, got %#v", back["absent"])
	}

	if _, err := basic.FromNative(map[string]any{"bad": make(chan int)}); !errors.Is(err, variant.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestPathLookupOnFloats(t *testing.T) {
	tree := basic.Object(map[string]*basic.Value{
		"a": basic.Object(map[string]*basic.Value{
			"b": basic.Float(1.0),
			"c": basic.Float(2.0),
		}),
	})

	got, ok := tree.At("a", "b")
	if !ok {
		t.Fatal("a.b should be present")
	}
	f, err := basic.FloatValue(got)
	if err != nil || f != 1.0 {
		t.Fatalf("expected 1.0, got %v (%v)", f, err)
	}
	if _, ok := tree.At("a", "x"); ok {
		t.Fatal("a.x should be absent")
	}
	if _, ok := tree.At("x"); ok {
		t.Fatal("x should be absent")
	}
}

func TestTypedGetters(t *testing.T) {
	if v, err := basic.BoolValue(basic.Bool(true)); err != nil || !v {
		t.Fatalf("bool getter: %v %v", v, err)
	}
	if v, err := basic.IntValue(basic.Int(3)); err != nil || v != 3 {
		t.Fatalf("int getter: %v %v", v, err)
	}
	if v, err := basic.StringValue(basic.String("x")); err != nil || v != "x" {
		t.Fatalf("string getter: %v %v", v, err)
	}
	instant := time.Unix(1700000000, 0)
	if v, err := basic.TimeValue(basic.Time(instant)); err != nil || !v.Equal(instant) {
		t.Fatalf("time getter: %v %v", v, err)
	}

	if _, err := basic.IntValue(basic.String("3")); !errors.Is(err, variant.ErrTypeMismatch) {
		t.Fatalf("wrong kind should mismatch, got %v", err)
	}
	if _, err := basic.IntValue(basic.Object(nil)); !errors.Is(err, variant.ErrTypeMismatch) {
		t.Fatalf("non-scalar should mismatch, got %v", err)
	}
	if _, err := basic.IntValue(basic.Null()); !errors.Is(err, variant.ErrTypeMismatch) {
		t.Fatalf("null should mismatch, got %v", err)
	}
}

func TestScalarAccessors(t *testing.T) {
	leaf, err := basic.Int(42).Scalar()
	if err != nil {
		t.Fatalf("scalar access failed: %v", err)
	}
	if n, ok := leaf.Int(); !ok || n != 42 {
		t.Fatalf("expected 42, got %d (ok=%v)", n, ok)
	}
	if _, ok := leaf.Text(); ok {
		t.Fatal("int scalar should not read as text")
	}

	var zero basic.Scalar
	if zero.Kind() != basic.KindBool {
		t.Fatalf("zero scalar should read as bool, got %s", zero.Kind())
	}
	if b, ok := zero.Bool(); !ok || b {
		t.Fatal("zero scalar should be boolean false")
	}
}
