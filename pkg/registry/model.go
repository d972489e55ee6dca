package registry

import (
	"time"

	"github.com/google/uuid"

	variant "github.com/goliatone/go-variant"
)

// Model is the capability a record type implements to participate in a
// registry. ModelKind is the registry type tag: it must be a constant per
// concrete type, declared by the record itself rather than derived from
// runtime reflection, because kind names partition the registry's
// collections. ModelState exposes the registry-owned bookkeeping; embedding
// State provides it automatically, so a record usually implements only
// ModelKind:
//
//	type Player struct {
//		registry.State[basic.Scalar]
//		Name string `json:"name"`
//	}
//
//	func (*Player) ModelKind() string { return "player" }
type Model[S variant.Scalar[S]] interface {
	ModelKind() string
	ModelState() *State[S]
}

// SnapshotMeta records when a snapshot was taken and under which ID, for
// audit trails and activity events.
type SnapshotMeta struct {
	ID      string
	TakenAt time.Time
}

// State carries the registry bookkeeping for one record: lifecycle flags,
// the optional snapshot, and the membership handle. Embed it by value; its
// fields are invisible to the struct codec, so snapshots never capture
// registry internals and Revert never disturbs them.
//
// The persisted, synced and deleted flags belong to the caller's
// persistence layer; the registry only stores them and binds them into
// FindExpr environments.
type State[S variant.Scalar[S]] struct {
	persisted bool
	synced    bool
	deleted   bool

	snapshot *variant.Value[S]
	meta     SnapshotMeta

	member membership
}

// membership is the handle a registered record holds into its registry's
// per-kind collection. Tracking an ID plus position instead of a registry
// back-reference keeps record and registry lifetimes decoupled.
type membership struct {
	registry uuid.UUID
	position int
}

func (m membership) registered() bool { return m.registry != uuid.Nil }

// ModelState returns the state itself, so embedding State satisfies the
// state half of the Model interface.
func (s *State[S]) ModelState() *State[S] { return s }

// Persisted reports whether the caller marked the record as persisted.
func (s *State[S]) Persisted() bool { return s.persisted }

// SetPersisted updates the persisted flag.
func (s *State[S]) SetPersisted(v bool) { s.persisted = v }

// Synced reports whether the caller marked the record as in sync with its
// backing store.
func (s *State[S]) Synced() bool { return s.synced }

// SetSynced updates the synced flag.
func (s *State[S]) SetSynced(v bool) { s.synced = v }

// Deleted reports whether the caller marked the record as deleted.
func (s *State[S]) Deleted() bool { return s.deleted }

// SetDeleted updates the deleted flag.
func (s *State[S]) SetDeleted(v bool) { s.deleted = v }

// HasSnapshot reports whether the record currently holds a snapshot.
func (s *State[S]) HasSnapshot() bool { return s.snapshot != nil }

// Snapshot returns the record's snapshot tree, or nil when none was taken.
// The tree is the revert point: treat it as read-only, or Revert will
// restore whatever it was mutated into.
func (s *State[S]) Snapshot() *variant.Value[S] { return s.snapshot }

// SnapshotMeta returns the ID and timestamp of the current snapshot; the
// zero value when none was taken.
func (s *State[S]) SnapshotMeta() SnapshotMeta { return s.meta }

// Registered reports whether the record currently belongs to a registry.
func (s *State[S]) Registered() bool { return s.member.registered() }
