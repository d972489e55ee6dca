package registry

import variant "github.com/goliatone/go-variant"

// Codec is the reflection layer the registry serializes records through.
// Encode must produce a detached tree capturing every serializable field;
// Decode must apply a tree onto a record, leaving fields absent from the
// tree untouched. structcodec.Codec is the stock implementation; any
// code-generated or hand-written walker with the same shape plugs in.
type Codec[S variant.Scalar[S]] interface {
	Encode(record any) (*variant.Value[S], error)
	Decode(tree *variant.Value[S], record any) error
}
