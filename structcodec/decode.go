package structcodec

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/goliatone/go-variant"
)

func (c *Codec[S]) decodeValue(r *variant.Reader[S], rv reflect.Value) error {
	switch r.Kind() {
	case variant.KindNull:
		rv.SetZero()
		return nil
	case variant.KindScalar:
		s, err := r.ReadScalar()
		if err != nil {
			return err
		}
		return c.assignNative(rv, c.vocab.Native(s))
	case variant.KindArray:
		return c.decodeArray(r, rv)
	default:
		return c.decodeObject(r, rv)
	}
}

func (c *Codec[S]) decodeObject(r *variant.Reader[S], rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return c.decodeObject(r, rv.Elem())

	case reflect.Struct:
		if err := r.BeginObject(); err != nil {
			return err
		}
		for _, f := range c.fields(rv.Type()) {
			if !r.BeginObjectEntry(f.name) {
				continue
			}
			if err := c.decodeValue(r, fieldByIndexAlloc(rv, f.index)); err != nil {
				return fmt.Errorf("field %q: %w", f.name, err)
			}
			r.EndObjectEntry(f.name)
		}
		r.EndObject()
		return nil

	case reflect.Map:
		t := rv.Type()
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key %s, only string keys can hold object entries", ErrUnsupportedType, t.Key())
		}
		if err := r.BeginObject(); err != nil {
			return err
		}
		names := r.Entries()
		m := reflect.MakeMapWithSize(t, len(names))
		for _, name := range names {
			if !r.BeginObjectEntry(name) {
				continue
			}
			elem := reflect.New(t.Elem()).Elem()
			if err := c.decodeValue(r, elem); err != nil {
				return fmt.Errorf("entry %q: %w", name, err)
			}
			m.SetMapIndex(reflect.ValueOf(name).Convert(t.Key()), elem)
			r.EndObjectEntry(name)
		}
		r.EndObject()
		rv.Set(m)
		return nil

	case reflect.Interface:
		if rv.NumMethod() == 0 {
			rv.Set(reflect.ValueOf(variant.ToNative(r.ReadValue(), c.vocab)))
			return nil
		}
	}
	return fmt.Errorf("%w: cannot decode object into %s", variant.ErrSchemaMismatch, rv.Type())
}

func (c *Codec[S]) decodeArray(r *variant.Reader[S], rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return c.decodeArray(r, rv.Elem())

	case reflect.Slice:
		n, err := r.BeginArray()
		if err != nil {
			return err
		}
		out := reflect.MakeSlice(rv.Type(), n, n)
		for i := 0; i < n; i++ {
			if err := r.BeginArrayEntry(i); err != nil {
				return err
			}
			if err := c.decodeValue(r, out.Index(i)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			r.EndArrayEntry(i)
		}
		r.EndArray()
		rv.Set(out)
		return nil

	case reflect.Array:
		n, err := r.BeginArray()
		if err != nil {
			return err
		}
		if n != rv.Len() {
			return fmt.Errorf("%w: %d elements into %s", variant.ErrSchemaMismatch, n, rv.Type())
		}
		for i := 0; i < n; i++ {
			if err := r.BeginArrayEntry(i); err != nil {
				return err
			}
			if err := c.decodeValue(r, rv.Index(i)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			r.EndArrayEntry(i)
		}
		r.EndArray()
		return nil

	case reflect.Interface:
		if rv.NumMethod() == 0 {
			rv.Set(reflect.ValueOf(variant.ToNative(r.ReadValue(), c.vocab)))
			return nil
		}
	}
	return fmt.Errorf("%w: cannot decode array into %s", variant.ErrSchemaMismatch, rv.Type())
}

// assignNative sets rv from the plain Go value the vocabulary produced,
// widening or narrowing numerics only when the payload fits exactly. A
// payload that cannot be represented reports a schema mismatch rather than
// assigning a silently wrong value.
func (c *Codec[S]) assignNative(rv reflect.Value, native any) error {
	if native == nil {
		rv.SetZero()
		return nil
	}
	nv := reflect.ValueOf(native)
	t := rv.Type()
	if nv.Type().AssignableTo(t) {
		rv.Set(nv)
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(t.Elem()))
		}
		return c.assignNative(rv.Elem(), native)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, ok := nativeInt(native); ok && !rv.OverflowInt(i) {
			rv.SetInt(i)
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u, ok := nativeUint(native); ok && !rv.OverflowUint(u) {
			rv.SetUint(u)
			return nil
		}
	case reflect.Float32, reflect.Float64:
		if f, ok := nativeFloat(native); ok && !rv.OverflowFloat(f) {
			rv.SetFloat(f)
			return nil
		}
	case reflect.String:
		if s, ok := native.(string); ok {
			rv.SetString(s)
			return nil
		}
	case reflect.Bool:
		if b, ok := native.(bool); ok {
			rv.SetBool(b)
			return nil
		}
	case reflect.Interface:
		if rv.NumMethod() == 0 {
			rv.Set(nv)
			return nil
		}
	}
	return fmt.Errorf("%w: cannot assign %T to %s", variant.ErrSchemaMismatch, native, t)
}

func nativeInt(native any) (int64, bool) {
	switch n := native.(type) {
	case int64:
		return n, true
	case *big.Int:
		if n.IsInt64() {
			return n.Int64(), true
		}
	}
	return 0, false
}

func nativeUint(native any) (uint64, bool) {
	switch n := native.(type) {
	case int64:
		if n >= 0 {
			return uint64(n), true
		}
	case *big.Int:
		if n.IsUint64() {
			return n.Uint64(), true
		}
	}
	return 0, false
}

func nativeFloat(native any) (float64, bool) {
	switch n := native.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// fieldByIndexAlloc resolves a possibly embedded field for writing,
// allocating nil embedded pointers along the way.
func fieldByIndexAlloc(rv reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				rv.Set(reflect.New(rv.Type().Elem()))
			}
			rv = rv.Elem()
		}
		rv = rv.Field(i)
	}
	return rv
}
