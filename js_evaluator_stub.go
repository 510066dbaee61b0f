//go:build !js_eval

package style

// NewJSEvaluator returns nil unless the module is built with -tags js_eval,
// which links goja.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	applyJSEvaluatorOptions(opts)
	return nil
}

func jsEvaluatorAvailable() bool { return false }
