package registry

import "errors"

var (
	// ErrNilModel indicates an operation received a nil model or a model
	// whose ModelState returned nil.
	ErrNilModel = errors.New("registry: nil model")
	// ErrNoCodec indicates the registry was built without a codec and an
	// operation needed to serialize or reconstruct a record.
	ErrNoCodec = errors.New("registry: codec not configured")
	// ErrNoEvaluator indicates FindExpr ran on a registry without an
	// expression evaluator.
	ErrNoEvaluator = errors.New("registry: evaluator not configured")
	// ErrNoVocabulary indicates FindExpr needed to project records into
	// expression environments but no scalar vocabulary was configured.
	ErrNoVocabulary = errors.New("registry: vocabulary not configured")
	// ErrAlreadyRegistered indicates an inject of a record that currently
	// belongs to a different registry. Eject it there first.
	ErrAlreadyRegistered = errors.New("registry: record registered with another registry")
	// ErrNotRegistered indicates an operation that requires membership ran
	// against a record this registry does not hold.
	ErrNotRegistered = errors.New("registry: record not registered")
)
