//go:build !js_eval

package query

// NewJSEvaluator returns nil when goja support is compiled out. Build with
// the js_eval tag to enable the JavaScript engine.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = applyJSEvaluatorOptions(opts)
	return nil
}

// JSAvailable reports whether the goja engine was compiled in.
func JSAvailable() bool {
	return false
}

func jsEngineName(Evaluator) (string, bool) {
	return "", false
}
