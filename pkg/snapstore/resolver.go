package snapstore

import (
	"context"
	"fmt"

	variant "github.com/goliatone/go-variant"
)

// Resolver composes and mutates stored trees on top of a Store.
type Resolver[S variant.Scalar[S]] struct {
	Store Store[S]

	// Validate, when set, vets the mutated tree before Mutate saves it. A
	// validation failure aborts the save and surfaces as the returned error.
	Validate func(tree *variant.Value[S]) error
}

// Mutator edits the loaded tree in place.
type Mutator[S variant.Scalar[S]] func(tree *variant.Value[S]) error

// Layer reports one stored tree that contributed to a composition.
type Layer struct {
	Ref  Ref
	Meta Meta
}

// Compose loads each ref in order and merges later trees over earlier ones,
// so callers list refs weakest first: kind-wide defaults, then overlays.
// Refs with no stored tree are skipped; at least one must exist. The second
// result reports the layers actually found, in merge order.
func (r Resolver[S]) Compose(ctx context.Context, refs ...Ref) (*variant.Value[S], []Layer, error) {
	if r.Store == nil {
		return nil, nil, fmt.Errorf("snapstore: store is required")
	}
	if len(refs) == 0 {
		return nil, nil, fmt.Errorf("snapstore: at least one ref is required")
	}

	var merged *variant.Value[S]
	layers := make([]Layer, 0, len(refs))
	for _, ref := range refs {
		tree, meta, ok, err := r.Store.Load(ctx, ref)
		if err != nil {
			return nil, nil, fmt.Errorf("snapstore: load %s: %w", ref, err)
		}
		if !ok {
			continue
		}
		layers = append(layers, Layer{Ref: ref, Meta: meta})
		if merged == nil {
			merged = tree
			continue
		}
		merged = variant.Merge(merged, tree)
	}
	if len(layers) == 0 {
		return nil, nil, fmt.Errorf("snapstore: no trees stored for %s", refs[0])
	}
	return merged, layers, nil
}

// Mutate loads the ref's tree, applies fn, validates, and saves the result.
// A missing tree starts as an empty object. When both expected.ETag and the
// stored ETag are set and disagree, the mutation is rejected with
// ErrETagMismatch before fn runs. Nothing is saved unless fn and Validate
// both succeed.
//
// On success Mutate returns the saved tree and the metadata the store
// assigned to it; feed that metadata's ETag into the next Mutate to keep the
// optimistic-concurrency chain intact.
func (r Resolver[S]) Mutate(ctx context.Context, ref Ref, expected Meta, fn Mutator[S]) (*variant.Value[S], Meta, error) {
	if r.Store == nil {
		return nil, Meta{}, fmt.Errorf("snapstore: store is required")
	}
	if fn == nil {
		return nil, Meta{}, fmt.Errorf("snapstore: mutator is required")
	}

	tree, loaded, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("snapstore: load %s: %w", ref, err)
	}
	if !ok {
		tree = variant.NewObject[S](nil)
		loaded = Meta{}
	}

	if expected.ETag != "" && loaded.ETag != "" && expected.ETag != loaded.ETag {
		return nil, loaded, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, expected.ETag, loaded.ETag)
	}

	if err := fn(tree); err != nil {
		return nil, loaded, err
	}
	if r.Validate != nil {
		if err := r.Validate(tree); err != nil {
			return nil, loaded, err
		}
	}

	saved, err := r.Store.Save(ctx, ref, tree, mergeMeta(loaded, expected))
	if err != nil {
		return nil, loaded, fmt.Errorf("snapstore: save %s: %w", ref, err)
	}
	return tree, saved, nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
