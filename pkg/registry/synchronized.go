package registry

import (
	"sync"

	variant "github.com/goliatone/go-variant"
)

// SynchronizedRegistry serializes access to a Registry behind a
// sync.RWMutex: mutating operations take the write lock, queries the read
// lock, so concurrent readers proceed in parallel. The registry core stays
// lock-free for single-goroutine callers; wrap it only when goroutines
// share it.
//
// The wrapper guards the registry's own structures. Records themselves are
// still plain structs: a goroutine mutating record fields while another
// runs Merge or FindExpr over the same record needs its own coordination.
type SynchronizedRegistry[S variant.Scalar[S]] struct {
	mu sync.RWMutex
	r  *Registry[S]
}

// Synchronized wraps the registry for concurrent use. Callers must route
// every access through the wrapper; keeping a direct reference to r defeats
// the locking.
func Synchronized[S variant.Scalar[S]](r *Registry[S]) *SynchronizedRegistry[S] {
	return &SynchronizedRegistry[S]{r: r}
}

func (s *SynchronizedRegistry[S]) Inject(m Model[S], opts ...InjectOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Inject(m, opts...)
}

func (s *SynchronizedRegistry[S]) Snapshot(m Model[S]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Snapshot(m)
}

func (s *SynchronizedRegistry[S]) ClearSnapshot(m Model[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.ClearSnapshot(m)
}

func (s *SynchronizedRegistry[S]) Revert(m Model[S]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Revert(m)
}

func (s *SynchronizedRegistry[S]) Merge(m Model[S], partial *variant.Value[S]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Merge(m, partial)
}

func (s *SynchronizedRegistry[S]) Eject(m Model[S]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Eject(m)
}

func (s *SynchronizedRegistry[S]) Find(kind string, pred func(Model[S]) bool) []Model[S] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r.Find(kind, pred)
}

func (s *SynchronizedRegistry[S]) All(kind string) []Model[S] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r.All(kind)
}

func (s *SynchronizedRegistry[S]) FindExpr(kind, expression string) ([]Model[S], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r.FindExpr(kind, expression)
}

func (s *SynchronizedRegistry[S]) Kinds() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r.Kinds()
}

func (s *SynchronizedRegistry[S]) Len(kind string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r.Len(kind)
}
