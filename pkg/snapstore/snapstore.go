// Package snapstore persists variant trees outside the registry. Where the
// registry keeps one in-memory revert point per record, a snapstore keeps
// named trees in a Store (kind-wide defaults, per-record overlays) and a
// Resolver composes them back into a single tree with merge semantics, or
// mutates one stored tree under optimistic concurrency control.
package snapstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	variant "github.com/goliatone/go-variant"
)

// ErrETagMismatch reports that a mutation was attempted against a stale
// version of a stored tree.
var ErrETagMismatch = errors.New("snapstore: etag mismatch")

// Ref identifies one stored tree: a record kind plus an optional instance
// ID. An empty ID names the kind-wide tree, typically holding defaults every
// record of the kind starts from.
type Ref struct {
	Kind string
	ID   string
}

// String renders the ref for diagnostics. It is total; use Identifier for
// the validated storage key.
func (r Ref) String() string {
	if r.ID == "" {
		return r.Kind
	}
	return r.Kind + "/" + r.ID
}

// Identifier returns the deterministic storage key for the ref. The kind is
// required and must not contain the separator.
func (r Ref) Identifier() (string, error) {
	kind := strings.TrimSpace(r.Kind)
	if kind == "" {
		return "", fmt.Errorf("snapstore: ref needs a kind")
	}
	if strings.Contains(kind, "/") {
		return "", fmt.Errorf("snapstore: kind %q must not contain a slash", kind)
	}
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return kind, nil
	}
	return kind + "/" + id, nil
}

// Meta is storage-owned metadata used for audit trails and concurrency
// control. SnapshotID names the stored lineage; ETag names the version and
// is expected to change on every save.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads and saves one tree per ref. Implementations must detach trees
// at the boundary: Load returns a tree the caller owns outright, and Save
// must not retain the given tree after returning. MemoryStore is the stock
// implementation; anything keyed by Ref.Identifier plugs in.
type Store[S variant.Scalar[S]] interface {
	Load(ctx context.Context, ref Ref) (tree *variant.Value[S], meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, tree *variant.Value[S], meta Meta) (Meta, error)
}
