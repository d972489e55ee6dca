// Package registry keeps live records and their variant-tree snapshots in
// memory: records are injected under a per-type kind name, snapshotted,
// reverted to their last snapshot, and patched with partial trees.
//
// Responsibilities:
//   - Registry[S] tracks membership per kind name and orchestrates
//     snapshot/revert/merge through a Codec[S] (structcodec is the stock
//     implementation).
//   - State[S] is the capability a record embeds: lifecycle flags, the
//     snapshot itself, and the membership handle. The registry never owns
//     record lifetimes; callers keep records alive while registered and
//     Eject before discarding them.
//   - Find scans a kind's collection in registration order; FindExpr does
//     the same with a query expression instead of a Go predicate.
//
// Data flow:
//
//	Inject/Snapshot: record -> Codec.Encode -> tree stored on State
//	Revert:          State snapshot -> Codec.Decode -> record fields
//	Merge:           Codec.Encode(record) + partial -> variant.Merge -> Codec.Decode
//
// Concurrency:
//
//	A Registry carries no lock; it assumes one logical owner, matching the
//	single-threaded core contract. Concurrent hosts wrap it with
//	Synchronized, which serializes operations behind an RWMutex.
package registry
