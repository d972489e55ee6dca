// Package query evaluates predicate expressions against registry records.
// A registry hands each candidate record to an Evaluator as a Context (the
// record's fields as plain Go values plus its kind and lifecycle state) and
// the expression decides membership. The default engine is expr-lang/expr;
// cel-go is available as an alternative, and a goja-backed JavaScript engine
// can be enabled with the js_eval build tag.
package query

import (
	"fmt"
	"time"
)

// Context carries the inputs available to an expression evaluation.
type Context struct {
	// Record is the native projection of the record under test. Its keys
	// are bound as top-level variables, and the whole map as "record".
	Record map[string]any
	// Kind is the record's registry type tag, bound as "kind".
	Kind string
	// State exposes lifecycle flags (persisted, synced, deleted, snapshot),
	// bound as "state".
	State map[string]any
	// Now pins the evaluation clock; defaults to time.Now.
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx Context) withDefaultNow() Context {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx Context) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx Context) withDefaultMaps() Context {
	if ctx.Record == nil {
		ctx.Record = map[string]any{}
	}
	if ctx.State == nil {
		ctx.State = map[string]any{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx Context) kindLabel() string {
	if ctx.Kind != "" {
		return ctx.Kind
	}
	return "unknown"
}

// Evaluator executes expressions against a record context.
type Evaluator interface {
	Evaluate(ctx Context, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (Compiled, error)
}

// Compiled represents a reusable expression program.
type Compiled interface {
	Evaluate(ctx Context) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// AsBool interprets an expression result as a predicate verdict. Only a
// genuine boolean counts; anything else is an error so a typo like `name`
// instead of `name == "x"` cannot silently select records.
func AsBool(value any) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("query: expression must yield a boolean, got %T", value)
}

// EngineName reports a short engine label for a known evaluator, used in
// log events.
func EngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch e.(type) {
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if name, ok := jsEngineName(e); ok {
			return name
		}
		return "custom"
	}
}
