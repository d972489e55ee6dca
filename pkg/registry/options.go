package registry

import (
	"log/slog"

	variant "github.com/goliatone/go-variant"
	"github.com/goliatone/go-variant/pkg/activity"
	"github.com/goliatone/go-variant/query"
)

// Option configures a Registry at construction time.
type Option[S variant.Scalar[S]] func(*config[S])

type config[S variant.Scalar[S]] struct {
	vocab     variant.Vocabulary[S]
	evaluator query.Evaluator
	logger    *slog.Logger
	hooks     activity.Hooks
	metrics   *Metrics
}

func applyOptions[S variant.Scalar[S]](opts []Option[S]) config[S] {
	var cfg config[S]
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithVocabulary wires the scalar vocabulary used to project records into
// FindExpr environments. Required for FindExpr; the other operations do not
// consult it.
func WithVocabulary[S variant.Scalar[S]](vocab variant.Vocabulary[S]) Option[S] {
	return func(cfg *config[S]) {
		cfg.vocab = vocab
	}
}

// WithEvaluator selects the expression engine FindExpr uses. Defaults to
// the expr backend.
func WithEvaluator[S variant.Scalar[S]](e query.Evaluator) Option[S] {
	return func(cfg *config[S]) {
		cfg.evaluator = e
	}
}

// WithLogger sets the logger for registry operations. Operations log at
// debug; without a logger the registry stays silent.
func WithLogger[S variant.Scalar[S]](logger *slog.Logger) Option[S] {
	return func(cfg *config[S]) {
		cfg.logger = logger
	}
}

// WithActivityHooks attaches lifecycle hooks notified on every mutating
// operation. Hook failures are logged, never returned: the operation
// already happened.
func WithActivityHooks[S variant.Scalar[S]](hooks activity.Hooks) Option[S] {
	return func(cfg *config[S]) {
		cfg.hooks = hooks
	}
}

// WithMetrics accumulates operation counts into m, typically exposed
// through a Collector. A single Metrics may be shared across registries.
func WithMetrics[S variant.Scalar[S]](m *Metrics) Option[S] {
	return func(cfg *config[S]) {
		cfg.metrics = m
	}
}

// InjectOption configures a single Inject call.
type InjectOption func(*injectConfig)

type injectConfig struct {
	skipSnapshot bool
}

func applyInjectOptions(opts []InjectOption) injectConfig {
	var cfg injectConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithoutSnapshot registers the record without capturing its state. The
// record keeps whatever snapshot it already holds.
func WithoutSnapshot() InjectOption {
	return func(cfg *injectConfig) {
		cfg.skipSnapshot = true
	}
}
