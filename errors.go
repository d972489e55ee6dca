package variant

import "errors"

var (
	// ErrTypeMismatch indicates an operation that requires a specific node
	// kind was invoked on a node of a different kind.
	ErrTypeMismatch = errors.New("variant: type mismatch")
	// ErrKeyNotFound indicates direct keyed access to an object entry that
	// does not exist. Path lookups report absence instead of this error.
	ErrKeyNotFound = errors.New("variant: key not found")
	// ErrIndexOutOfRange indicates direct indexed access past the end of an
	// array node.
	ErrIndexOutOfRange = errors.New("variant: index out of range")
	// ErrSchemaMismatch indicates a tree being read back into a record does
	// not have the shape the record requires.
	ErrSchemaMismatch = errors.New("variant: schema mismatch")
	// ErrDepthExceeded is the panic value raised when a traversal exceeds the
	// depth guard. Trees that deep (or cyclic trees, which the API cannot
	// produce without deliberate misuse) are a caller bug, not input data.
	ErrDepthExceeded = errors.New("variant: depth limit exceeded")
)

// maxDepth bounds recursive traversals (clone, equality, merge, conversion).
const maxDepth = 1 << 15

func checkDepth(depth int) {
	if depth > maxDepth {
		panic(ErrDepthExceeded)
	}
}
