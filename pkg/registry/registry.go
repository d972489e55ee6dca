package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"

	variant "github.com/goliatone/go-variant"
	"github.com/goliatone/go-variant/pkg/activity"
	"github.com/goliatone/go-variant/query"
)

// Registry is an in-memory store of typed records partitioned by kind name.
// It tracks membership, takes point-in-time snapshots of record state as
// variant trees, reverts records to their last snapshot, and merges partial
// trees into live records.
//
// The registry holds non-owning references: callers own record lifetimes
// and must Eject a record before discarding it. A record belongs to at most
// one registry at a time.
type Registry[S variant.Scalar[S]] struct {
	id        uuid.UUID
	codec     Codec[S]
	vocab     variant.Vocabulary[S]
	evaluator query.Evaluator
	logger    *slog.Logger
	qlog      query.Logger
	emitter   *activity.Emitter
	metrics   *Metrics

	kinds map[string]*collection[S]
}

// collection is one kind's ordered membership. The concrete type is pinned
// on first inject so a mislabeled record cannot hide in another kind's
// collection.
type collection[S variant.Scalar[S]] struct {
	concrete reflect.Type
	models   []Model[S]
}

// New constructs a registry around the given codec. FindExpr defaults to
// the expr engine unless WithEvaluator overrides it; everything else is
// off until configured.
func New[S variant.Scalar[S]](codec Codec[S], opts ...Option[S]) *Registry[S] {
	cfg := applyOptions(opts)

	evaluator := cfg.evaluator
	if evaluator == nil {
		evaluator = query.NewExprEvaluator()
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Registry[S]{
		id:        uuid.New(),
		codec:     codec,
		vocab:     cfg.vocab,
		evaluator: evaluator,
		logger:    logger,
		qlog:      query.SlogLogger(cfg.logger),
		emitter:   activity.NewEmitter(cfg.hooks, ""),
		metrics:   cfg.metrics,
		kinds:     map[string]*collection[S]{},
	}
}

// Inject registers the record under its kind and, unless WithoutSnapshot is
// given, captures a snapshot of its current state, replacing any previous
// snapshot wholesale. Injecting a record this registry already holds is a
// membership no-op but still refreshes the snapshot. Injecting a record
// held by another registry returns ErrAlreadyRegistered.
//
// Injecting two different concrete types under the same kind name panics:
// the collections are partitioned by kind, so a mismatched tag is an
// integration bug, not bad data.
func (r *Registry[S]) Inject(m Model[S], opts ...InjectOption) error {
	cfg := applyInjectOptions(opts)
	state, err := r.stateOf(m)
	if err != nil {
		return err
	}
	kind := kindOf(m)

	if state.member.registered() {
		if state.member.registry != r.id {
			return fmt.Errorf("%w: kind %q", ErrAlreadyRegistered, kind)
		}
	} else {
		col := r.collectionFor(kind, m)
		col.models = append(col.models, m)
		state.member = membership{registry: r.id, position: len(col.models) - 1}
	}

	if !cfg.skipSnapshot {
		if err := r.capture(m, state, kind); err != nil {
			return err
		}
	}

	r.metrics.addInject()
	r.logger.Debug("record injected",
		"kind", kind,
		"snapshot", !cfg.skipSnapshot,
		"snapshot_id", state.meta.ID,
	)
	r.emit(activity.BuildInjectedEvent(activity.RegistryEventInput{
		Kind:       kind,
		SnapshotID: state.meta.ID,
	}))
	return nil
}

// Snapshot captures the record's current serializable state, replacing any
// previous snapshot. The record must be registered here.
func (r *Registry[S]) Snapshot(m Model[S]) error {
	state, err := r.stateOf(m)
	if err != nil {
		return err
	}
	if !r.owns(state) {
		return ErrNotRegistered
	}
	kind := kindOf(m)
	if err := r.capture(m, state, kind); err != nil {
		return err
	}

	r.metrics.addSnapshot()
	r.logger.Debug("snapshot taken", "kind", kind, "snapshot_id", state.meta.ID)
	r.emit(activity.BuildSnapshotTakenEvent(activity.RegistryEventInput{
		Kind:       kind,
		SnapshotID: state.meta.ID,
	}))
	return nil
}

// ClearSnapshot discards the record's snapshot, after which Revert is a
// no-op until a new one is taken. Total: unregistered or snapshotless
// records are left alone.
func (r *Registry[S]) ClearSnapshot(m Model[S]) {
	state, err := r.stateOf(m)
	if err != nil || !r.owns(state) || state.snapshot == nil {
		return
	}
	cleared := state.meta.ID
	state.snapshot = nil
	state.meta = SnapshotMeta{}

	kind := kindOf(m)
	r.metrics.addClear()
	r.logger.Debug("snapshot cleared", "kind", kind, "snapshot_id", cleared)
	r.emit(activity.BuildSnapshotClearedEvent(activity.RegistryEventInput{
		Kind:       kind,
		SnapshotID: cleared,
	}))
}

// Revert restores the record's serializable fields to their values at the
// last snapshot. Lifecycle flags and the snapshot itself stay untouched, so
// a reverted record can be reverted again. Calling Revert on a record that
// is not registered here, or that has no snapshot, is a deliberate no-op.
func (r *Registry[S]) Revert(m Model[S]) error {
	state, err := r.stateOf(m)
	if err != nil {
		return err
	}
	if !r.owns(state) || state.snapshot == nil {
		return nil
	}
	if r.codec == nil {
		return ErrNoCodec
	}

	kind := kindOf(m)
	start := time.Now()
	if err := r.codec.Decode(state.snapshot, m); err != nil {
		return fmt.Errorf("registry: revert %s: %w", kind, err)
	}

	r.metrics.addRevert()
	r.logger.Debug("record reverted",
		"kind", kind,
		"snapshot_id", state.meta.ID,
		"duration", time.Since(start),
	)
	r.emit(activity.BuildRevertedEvent(activity.RegistryEventInput{
		Kind:       kind,
		SnapshotID: state.meta.ID,
	}))
	return nil
}

// Merge layers a partial tree over the record's current state and applies
// the result: keys present in partial overwrite or, for object-on-object
// pairs, merge recursively; keys absent from partial keep their live
// values; arrays are replaced wholesale. The snapshot is not consulted or
// modified; merge works on current state.
func (r *Registry[S]) Merge(m Model[S], partial *variant.Value[S]) error {
	state, err := r.stateOf(m)
	if err != nil {
		return err
	}
	if !r.owns(state) {
		return ErrNotRegistered
	}
	if r.codec == nil {
		return ErrNoCodec
	}

	kind := kindOf(m)
	start := time.Now()
	base, err := r.codec.Encode(m)
	if err != nil {
		return fmt.Errorf("registry: merge %s: %w", kind, err)
	}
	merged := variant.Merge(base, partial)
	if err := r.codec.Decode(merged, m); err != nil {
		return fmt.Errorf("registry: merge %s: %w", kind, err)
	}

	r.metrics.addMerge()
	r.logger.Debug("record merged", "kind", kind, "duration", time.Since(start))
	r.emit(activity.BuildMergedEvent(activity.RegistryEventInput{
		Kind:       kind,
		SnapshotID: state.meta.ID,
	}))
	return nil
}

// Eject removes the record from the registry. The record keeps its snapshot
// and flags, and can be injected again, here or elsewhere. Ejecting a
// record this registry does not hold returns ErrNotRegistered.
func (r *Registry[S]) Eject(m Model[S]) error {
	state, err := r.stateOf(m)
	if err != nil {
		return err
	}
	if !r.owns(state) {
		return ErrNotRegistered
	}

	kind := kindOf(m)
	col := r.kinds[kind]
	pos := state.member.position
	if col == nil || pos < 0 || pos >= len(col.models) {
		panic(fmt.Sprintf("registry: membership handle for kind %q out of sync", kind))
	}

	col.models = append(col.models[:pos], col.models[pos+1:]...)
	for i := pos; i < len(col.models); i++ {
		col.models[i].ModelState().member.position = i
	}
	state.member = membership{}

	r.metrics.addEject()
	r.logger.Debug("record ejected", "kind", kind, "remaining", len(col.models))
	r.emit(activity.BuildEjectedEvent(activity.RegistryEventInput{
		Kind:       kind,
		SnapshotID: state.meta.ID,
	}))
	return nil
}

// Find returns the records of the given kind for which pred holds, in
// registration order. A nil predicate selects everything. Find is total:
// unknown kinds yield nil rather than an error, because callers probe
// speculatively.
func (r *Registry[S]) Find(kind string, pred func(Model[S]) bool) []Model[S] {
	col := r.kinds[kind]
	if col == nil {
		return nil
	}
	var out []Model[S]
	for _, m := range col.models {
		if pred == nil || pred(m) {
			out = append(out, m)
		}
	}
	return out
}

// All returns every record of the given kind in registration order.
func (r *Registry[S]) All(kind string) []Model[S] {
	return r.Find(kind, nil)
}

// FindExpr evaluates a query expression against each record of the kind
// and returns the records for which it yields true, in registration order.
// The record's serializable fields are bound as top-level variables (and as
// "record"); lifecycle flags are bound as "state". The expression must
// yield a boolean; anything else is an error, never a silent miss.
func (r *Registry[S]) FindExpr(kind, expression string) ([]Model[S], error) {
	if r.evaluator == nil {
		return nil, ErrNoEvaluator
	}
	if r.codec == nil {
		return nil, ErrNoCodec
	}
	if r.vocab == nil {
		return nil, ErrNoVocabulary
	}

	compiled, err := r.evaluator.Compile(expression)
	if err != nil {
		return nil, err
	}

	col := r.kinds[kind]
	start := time.Now()
	var out []Model[S]
	var evalErr error
	if col != nil {
		for _, m := range col.models {
			match, err := r.evalModel(compiled, kind, m)
			if err != nil {
				evalErr = err
				break
			}
			if match {
				out = append(out, m)
			}
		}
	}

	r.qlog.LogEvaluation(query.LogEvent{
		Engine:   query.EngineName(r.evaluator),
		Expr:     expression,
		Kind:     kind,
		Duration: time.Since(start),
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return out, nil
}

func (r *Registry[S]) evalModel(compiled query.Compiled, kind string, m Model[S]) (bool, error) {
	tree, err := r.codec.Encode(m)
	if err != nil {
		return false, fmt.Errorf("registry: find %s: %w", kind, err)
	}
	record, _ := variant.ToNative(tree, r.vocab).(map[string]any)

	result, err := compiled.Evaluate(query.Context{
		Record: record,
		Kind:   kind,
		State:  stateBinding(m.ModelState()),
	})
	if err != nil {
		return false, err
	}
	return query.AsBool(result)
}

func stateBinding[S variant.Scalar[S]](state *State[S]) map[string]any {
	return map[string]any{
		"persisted": state.Persisted(),
		"synced":    state.Synced(),
		"deleted":   state.Deleted(),
		"snapshot":  state.HasSnapshot(),
	}
}

// Kinds returns the kind names the registry has seen, sorted. Kinds whose
// collections emptied through Eject are still listed: their concrete type
// stays pinned.
func (r *Registry[S]) Kinds() []string {
	kinds := make([]string, 0, len(r.kinds))
	for kind := range r.kinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Len reports how many records of the given kind are registered.
func (r *Registry[S]) Len(kind string) int {
	col := r.kinds[kind]
	if col == nil {
		return 0
	}
	return len(col.models)
}

// capture serializes the record and replaces its snapshot wholesale.
func (r *Registry[S]) capture(m Model[S], state *State[S], kind string) error {
	if r.codec == nil {
		return ErrNoCodec
	}
	tree, err := r.codec.Encode(m)
	if err != nil {
		return fmt.Errorf("registry: snapshot %s: %w", kind, err)
	}
	state.snapshot = tree
	state.meta = SnapshotMeta{ID: uuid.NewString(), TakenAt: time.Now()}
	return nil
}

func (r *Registry[S]) stateOf(m Model[S]) (*State[S], error) {
	if m == nil {
		return nil, ErrNilModel
	}
	state := m.ModelState()
	if state == nil {
		return nil, fmt.Errorf("%w: ModelState returned nil", ErrNilModel)
	}
	return state, nil
}

func (r *Registry[S]) owns(state *State[S]) bool {
	return state.member.registered() && state.member.registry == r.id
}

// collectionFor returns the kind's collection, creating it and pinning the
// concrete type on first use. A kind/type mismatch panics per the registry
// contract.
func (r *Registry[S]) collectionFor(kind string, m Model[S]) *collection[S] {
	concrete := reflect.TypeOf(m)
	col, ok := r.kinds[kind]
	if !ok {
		col = &collection[S]{concrete: concrete}
		r.kinds[kind] = col
		return col
	}
	if col.concrete != concrete {
		panic(fmt.Sprintf("registry: kind %q is pinned to %s, cannot inject %s", kind, col.concrete, concrete))
	}
	return col
}

func (r *Registry[S]) emit(event activity.Event) {
	if !r.emitter.Enabled() {
		return
	}
	if err := r.emitter.Emit(context.Background(), event); err != nil {
		r.logger.Warn("activity hook failed",
			"verb", event.Verb,
			"kind", event.Kind,
			"error", err,
		)
	}
}

// kindOf reads the record's kind tag. An empty tag means the record type's
// ModelKind is broken, which is an integration bug.
func kindOf[S variant.Scalar[S]](m Model[S]) string {
	kind := m.ModelKind()
	if kind == "" {
		panic("registry: model kind must not be empty")
	}
	return kind
}
