package snapstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	variant "github.com/goliatone/go-variant"
)

// MemoryStore is an in-memory Store for tests, examples, and single-process
// callers. Trees are cloned at the boundary in both directions, so the store
// never shares nodes with its callers.
//
// The store owns its metadata: a save mints a fresh ETag unconditionally and
// fills a missing SnapshotID and UpdatedAt, so the optimistic-concurrency
// chain works without callers inventing tokens.
type MemoryStore[S variant.Scalar[S]] struct {
	mu      sync.RWMutex
	records map[string]memoryRecord[S]
}

type memoryRecord[S variant.Scalar[S]] struct {
	tree *variant.Value[S]
	meta Meta
}

// NewMemoryStore returns an empty store.
func NewMemoryStore[S variant.Scalar[S]]() *MemoryStore[S] {
	return &MemoryStore[S]{records: map[string]memoryRecord[S]{}}
}

// Load returns a detached copy of the stored tree, or ok=false when the ref
// has never been saved.
func (s *MemoryStore[S]) Load(_ context.Context, ref Ref) (*variant.Value[S], Meta, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return nil, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, Meta{}, false, nil
	}
	return record.tree.Clone(), cloneMeta(record.meta), true, nil
}

// Save stores a copy of the tree under the ref and returns the stamped
// metadata.
func (s *MemoryStore[S]) Save(_ context.Context, ref Ref, tree *variant.Value[S], meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}

	stamped := cloneMeta(meta)
	if stamped.SnapshotID == "" {
		stamped.SnapshotID = uuid.NewString()
	}
	stamped.ETag = uuid.NewString()
	if stamped.UpdatedAt.IsZero() {
		stamped.UpdatedAt = time.Now()
	}

	s.mu.Lock()
	s.records[key] = memoryRecord[S]{tree: tree.Clone(), meta: stamped}
	s.mu.Unlock()
	return cloneMeta(stamped), nil
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}
