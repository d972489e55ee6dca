package structcodec

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-variant"
)

func (c *Codec[S]) encodeValue(rv reflect.Value, b *variant.Builder[S], depth int) error {
	if depth > maxEncodeDepth {
		return fmt.Errorf("structcodec: nesting exceeds %d levels, record graph is likely cyclic", maxEncodeDepth)
	}
	if !rv.IsValid() {
		b.WriteNull()
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			b.WriteNull()
			return nil
		}
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			b.WriteNull()
			return nil
		}
	}

	// The vocabulary gets first claim on leaf types. This must run before
	// the composite rules so struct-shaped scalars like time.Time stay
	// leaves instead of being flattened field by field.
	if rv.CanInterface() {
		if s, ok := c.vocab.FromNative(rv.Interface()); ok {
			b.WriteScalar(s)
			return nil
		}
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return c.encodeValue(rv.Elem(), b, depth+1)
	case reflect.Struct:
		return c.encodeStruct(rv, b, depth)
	case reflect.Map:
		return c.encodeMap(rv, b, depth)
	case reflect.Slice, reflect.Array:
		return c.encodeArray(rv, b, depth)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
}

func (c *Codec[S]) encodeStruct(rv reflect.Value, b *variant.Builder[S], depth int) error {
	b.BeginObject()
	for _, f := range c.fields(rv.Type()) {
		b.BeginObjectEntry(f.name)
		if err := c.encodeValue(fieldByIndex(rv, f.index), b, depth+1); err != nil {
			return fmt.Errorf("field %q: %w", f.name, err)
		}
		b.EndObjectEntry(f.name)
	}
	b.EndObject()
	return nil
}

func (c *Codec[S]) encodeMap(rv reflect.Value, b *variant.Builder[S], depth int) error {
	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map key %s, only string keys can become object entries", ErrUnsupportedType, rv.Type().Key())
	}
	b.BeginObject()
	iter := rv.MapRange()
	for iter.Next() {
		name := iter.Key().String()
		b.BeginObjectEntry(name)
		if err := c.encodeValue(iter.Value(), b, depth+1); err != nil {
			return fmt.Errorf("entry %q: %w", name, err)
		}
		b.EndObjectEntry(name)
	}
	b.EndObject()
	return nil
}

func (c *Codec[S]) encodeArray(rv reflect.Value, b *variant.Builder[S], depth int) error {
	n := rv.Len()
	b.BeginArray(n)
	for i := 0; i < n; i++ {
		b.BeginArrayEntry(i)
		if err := c.encodeValue(rv.Index(i), b, depth+1); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		b.EndArrayEntry(i)
	}
	b.EndArray()
	return nil
}

// fieldByIndex resolves a possibly embedded field. Fields behind a nil
// embedded pointer resolve to an invalid value and encode as null.
func fieldByIndex(rv reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return reflect.Value{}
			}
			rv = rv.Elem()
		}
		rv = rv.Field(i)
	}
	return rv
}
