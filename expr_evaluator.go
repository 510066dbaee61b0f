package style

import (
	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprEvaluatorOption configures an expr evaluator instance.
type ExprEvaluatorOption func(*exprEvaluator)

// ExprWithProgramCache wires a ProgramCache into the expr evaluator.
func ExprWithProgramCache(cache ProgramCache) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		e.cache = cache
	}
}

// ExprWithFunctionRegistry exposes a copy of registry to expressions as
// plain function calls.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		e.registry = cloneRegistry(registry)
	}
}

type exprEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewExprEvaluator constructs an Evaluator backed by expr-lang/expr. It is the
// default engine used by Style.Resolve. Identifiers other than the calc()
// constants, property and registered functions fail at compile time.
func NewExprEvaluator(opts ...ExprEvaluatorOption) Evaluator {
	e := &exprEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *exprEvaluator) Engine() string { return "expr" }

func (e *exprEvaluator) Evaluate(ctx EvalContext, expression string) (any, error) {
	return evaluateWith(e, ctx, expression)
}

func (e *exprEvaluator) Compile(expression string) (CompiledRule, error) {
	return compileWith(e, expression)
}

func (e *exprEvaluator) prepare(expression string) (runner, error) {
	program, err := cachedProgram(e.cache, e.Engine(), expression, func() (*exprvm.Program, error) {
		options := []exprlang.Option{exprlang.Env(calcEnvironment(EvalContext{}))}
		for _, name := range e.registry.Names() {
			options = append(options, exprlang.Function(name, e.call(name)))
		}
		return exprlang.Compile(expression, options...)
	})
	if err != nil {
		return nil, err
	}
	return func(ctx EvalContext) (any, error) {
		return exprlang.Run(program, calcEnvironment(ctx))
	}, nil
}

func (e *exprEvaluator) call(name string) func(...any) (any, error) {
	return func(arguments ...any) (any, error) {
		return e.registry.Call(name, arguments...)
	}
}
