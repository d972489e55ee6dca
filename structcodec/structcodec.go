// Package structcodec is the default reflection layer for variant trees: it
// walks record structs field by field and drives the variant visitor
// protocol in both directions. Encode feeds a Builder from struct fields;
// Decode mirrors a tree back into struct fields through a Reader.
//
// Field visibility follows json-style rules: exported fields only, the tag
// key (default "json") renames or skips fields, and untagged embedded
// structs are flattened. omitempty has no effect: every visible field is
// written so trees capture complete record state, including zero values.
//
// Decode applies three field policies: an entry present in the tree is
// assigned, an explicit null zeroes the field, and an absent entry leaves
// the field untouched. Shape disagreements report variant.ErrSchemaMismatch.
package structcodec

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/goliatone/go-variant"
)

// ErrUnsupportedType reports a Go type the codec cannot represent as a tree
// node, such as channels, functions, or non-string-keyed maps.
var ErrUnsupportedType = errors.New("structcodec: unsupported type")

// Nesting deeper than this aborts an encode; it almost always means the
// record graph is cyclic.
const maxEncodeDepth = 1000

// PreDecodeHook inspects or adjusts the tree before it is applied to the
// record. Hooks receive a private copy; mutating it does not touch the
// caller's tree.
type PreDecodeHook[S variant.Scalar[S]] func(tree *variant.Value[S]) error

// PostDecodeHook adjusts or validates the record after decoding completes.
type PostDecodeHook func(record any) error

// Option configures a Codec instance.
type Option[S variant.Scalar[S]] func(*Codec[S])

// WithTagKey selects the struct tag consulted for field names. The default
// is "json".
func WithTagKey[S variant.Scalar[S]](key string) Option[S] {
	return func(c *Codec[S]) {
		if key != "" {
			c.tagKey = key
		}
	}
}

// WithPreDecodeHook applies hook to the tree prior to decoding.
func WithPreDecodeHook[S variant.Scalar[S]](hook PreDecodeHook[S]) Option[S] {
	return func(c *Codec[S]) {
		c.preHooks = append(c.preHooks, hook)
	}
}

// WithPostDecodeHook applies hook to the record after decoding.
func WithPostDecodeHook[S variant.Scalar[S]](hook PostDecodeHook) Option[S] {
	return func(c *Codec[S]) {
		c.postHooks = append(c.postHooks, hook)
	}
}

// Codec converts records to and from variant trees over the scalar
// vocabulary S.
type Codec[S variant.Scalar[S]] struct {
	vocab     variant.Vocabulary[S]
	tagKey    string
	preHooks  []PreDecodeHook[S]
	postHooks []PostDecodeHook
}

// New constructs a codec over the given scalar vocabulary.
func New[S variant.Scalar[S]](vocab variant.Vocabulary[S], opts ...Option[S]) *Codec[S] {
	c := &Codec[S]{vocab: vocab, tagKey: "json"}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Encode serializes a record into a detached variant tree. The record is
// usually a struct or pointer to struct, but any value the vocabulary or
// the composite rules cover works.
func (c *Codec[S]) Encode(record any) (*variant.Value[S], error) {
	if record == nil {
		return nil, fmt.Errorf("structcodec: encode nil record")
	}
	b := variant.NewBuilder[S]()
	if err := c.encodeValue(reflect.ValueOf(record), b, 0); err != nil {
		return nil, err
	}
	return b.Result(), nil
}

// Decode applies a tree to a record, which must be a non-nil pointer.
// Fields absent from the tree keep their current values.
func (c *Codec[S]) Decode(tree *variant.Value[S], record any) error {
	rv := reflect.ValueOf(record)
	if record == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("structcodec: decode target must be a non-nil pointer, got %T", record)
	}

	if len(c.preHooks) > 0 {
		tree = tree.Clone()
		for _, hook := range c.preHooks {
			if hook == nil {
				continue
			}
			if err := hook(tree); err != nil {
				return fmt.Errorf("structcodec: pre-decode hook: %w", err)
			}
		}
	}

	if err := c.decodeValue(variant.NewReader(tree), rv.Elem()); err != nil {
		return err
	}

	for _, hook := range c.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(record); err != nil {
			return fmt.Errorf("structcodec: post-decode hook: %w", err)
		}
	}
	return nil
}
