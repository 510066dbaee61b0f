//go:build js_eval

package style

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewJSEvaluator constructs an Evaluator backed by goja. Each evaluation runs
// in a fresh runtime; compiled programs are shared through the cache.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	cfg := applyJSEvaluatorOptions(opts)
	return &jsEvaluator{
		cache:    cfg.cache,
		registry: cfg.registry,
	}
}

func (e *jsEvaluator) Engine() string { return "js" }

func (e *jsEvaluator) Evaluate(ctx EvalContext, expression string) (any, error) {
	return evaluateWith(e, ctx, expression)
}

func (e *jsEvaluator) Compile(expression string) (CompiledRule, error) {
	return compileWith(e, expression)
}

func (e *jsEvaluator) prepare(expression string) (runner, error) {
	program, err := cachedProgram(e.cache, e.Engine(), expression, func() (*goja.Program, error) {
		return goja.Compile("calc", fmt.Sprintf("(function(){ return (%s); })()", expression), true)
	})
	if err != nil {
		return nil, err
	}
	return func(ctx EvalContext) (any, error) {
		vm := goja.New()
		if err := e.bind(vm, ctx); err != nil {
			return nil, err
		}
		value, err := vm.RunProgram(program)
		if err != nil {
			return nil, err
		}
		return value.Export(), nil
	}, nil
}

func (e *jsEvaluator) bind(vm *goja.Runtime, ctx EvalContext) error {
	for name, value := range calcEnvironment(ctx) {
		if err := vm.Set(name, value); err != nil {
			return err
		}
	}
	for _, name := range e.registry.Names() {
		fn := name
		if err := vm.Set(fn, func(arguments ...any) (any, error) {
			return e.registry.Call(fn, arguments...)
		}); err != nil {
			return err
		}
	}
	return nil
}

func jsEvaluatorAvailable() bool {
	return true
}
