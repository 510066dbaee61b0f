package style

import (
	"errors"
	"math"
	"strings"
)

var errEmptyExpression = errors.New("expression must not be empty")

// calcConstants are the named numbers calc() accepts besides literals.
var calcConstants = map[string]float64{
	"pi":       math.Pi,
	"e":        math.E,
	"infinity": math.Inf(1),
}

// calcEnvironment binds the constants and the property being evaluated.
func calcEnvironment(ctx EvalContext) map[string]any {
	env := make(map[string]any, len(calcConstants)+1)
	for name, value := range calcConstants {
		env[name] = value
	}
	env["property"] = ctx.Property
	return env
}

// Engine is implemented by evaluators that report a name in logs and errors.
type Engine interface {
	Engine() string
}

// runner executes one prepared program.
type runner func(EvalContext) (any, error)

// preparer is implemented by the built-in engines. Evaluate and Compile only
// differ in when the prepared program runs.
type preparer interface {
	Engine
	prepare(expression string) (runner, error)
}

func evaluateWith(p preparer, ctx EvalContext, expression string) (any, error) {
	run, err := prepareChecked(p, expression)
	if err != nil {
		return nil, wrapEvaluationError(p.Engine(), expression, ctx, err)
	}
	result, err := run(ctx)
	if err != nil {
		return nil, wrapEvaluationError(p.Engine(), expression, ctx, err)
	}
	return result, nil
}

func compileWith(p preparer, expression string) (CompiledRule, error) {
	run, err := prepareChecked(p, expression)
	if err != nil {
		return nil, wrapEvaluationError(p.Engine(), expression, EvalContext{}, err)
	}
	return compiledRule{engine: p.Engine(), expression: expression, run: run}, nil
}

func prepareChecked(p preparer, expression string) (runner, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, wrapEvaluatorError(p.Engine(), errEmptyExpression)
	}
	return p.prepare(expression)
}

type compiledRule struct {
	engine     string
	expression string
	run        runner
}

func (r compiledRule) Evaluate(ctx EvalContext) (any, error) {
	result, err := r.run(ctx)
	if err != nil {
		return nil, wrapEvaluationError(r.engine, r.expression, ctx, err)
	}
	return result, nil
}

// cachedProgram returns the program cached for expression under engine, or
// compiles and stores it.
func cachedProgram[P any](cache ProgramCache, engine, expression string, compile func() (P, error)) (P, error) {
	key := programKey(engine, expression)
	if cache != nil {
		if cached, ok := cache.Get(key); ok {
			if program, ok := cached.(P); ok {
				return program, nil
			}
		}
	}
	program, err := compile()
	if err != nil {
		var zero P
		return zero, err
	}
	if cache != nil {
		cache.Set(key, program)
	}
	return program, nil
}

func programKey(engine, expression string) string {
	return engine + ":" + expression
}

func cloneRegistry(registry *FunctionRegistry) *FunctionRegistry {
	if registry == nil {
		return nil
	}
	return registry.Clone()
}

