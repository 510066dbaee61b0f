package style

import (
	"fmt"
	"reflect"
	"slices"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// maxCELArity bounds the double overloads declared per registry function.
const maxCELArity = 4

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry exposes a copy of registry to expressions. Each
// function is declared for one to four double arguments and is also
// reachable as call("name", [args...]).
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.registry = cloneRegistry(registry)
	}
}

type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEvaluator constructs an Evaluator backed by cel-go. CEL does not mix
// integer and double operands; calc() reduction always emits double literals.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Engine() string { return "cel" }

func (e *celEvaluator) Evaluate(ctx EvalContext, expression string) (any, error) {
	return evaluateWith(e, ctx, expression)
}

func (e *celEvaluator) Compile(expression string) (CompiledRule, error) {
	return compileWith(e, expression)
}

func (e *celEvaluator) prepare(expression string) (runner, error) {
	program, err := cachedProgram(e.cache, e.Engine(), expression, func() (celgo.Program, error) {
		env, err := celgo.NewEnv(e.envOptions()...)
		if err != nil {
			return nil, err
		}
		ast, issues := env.Compile(expression)
		if issues != nil && issues.Err() != nil {
			return nil, issues.Err()
		}
		return env.Program(ast)
	})
	if err != nil {
		return nil, err
	}
	return func(ctx EvalContext) (any, error) {
		out, _, err := program.Eval(calcEnvironment(ctx))
		if err != nil {
			return nil, err
		}
		return out.Value(), nil
	}, nil
}

func (e *celEvaluator) envOptions() []celgo.EnvOption {
	opts := []celgo.EnvOption{celgo.Variable("property", celgo.StringType)}
	for name := range calcConstants {
		opts = append(opts, celgo.Variable(name, celgo.DoubleType))
	}
	if e.registry == nil {
		return opts
	}

	opts = append(opts, celgo.Function("call",
		celgo.Overload("style_call_string_list",
			[]*celgo.Type{celgo.StringType, celgo.ListType(celgo.DynType)},
			celgo.DynType,
			celgo.BinaryBinding(e.callList),
		),
	))
	for _, name := range e.registry.Names() {
		opts = append(opts, celgo.Function(name, e.doubleOverloads(name)...))
	}
	return opts
}

func (e *celEvaluator) doubleOverloads(name string) []celgo.FunctionOpt {
	overloads := make([]celgo.FunctionOpt, 0, maxCELArity)
	for arity := 1; arity <= maxCELArity; arity++ {
		id := fmt.Sprintf("style_%s_double_%d", name, arity)
		params := slices.Repeat([]*celgo.Type{celgo.DoubleType}, arity)
		var binding celgo.OverloadOpt
		switch arity {
		case 1:
			binding = celgo.UnaryBinding(func(arg ref.Val) ref.Val {
				return e.callValues(name, arg)
			})
		case 2:
			binding = celgo.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
				return e.callValues(name, lhs, rhs)
			})
		default:
			binding = celgo.FunctionBinding(func(args ...ref.Val) ref.Val {
				return e.callValues(name, args...)
			})
		}
		overloads = append(overloads, celgo.Overload(id, params, celgo.DynType, binding))
	}
	return overloads
}

var anySliceType = reflect.TypeOf([]any{})

func (e *celEvaluator) callList(nameVal, argsVal ref.Val) ref.Val {
	name, ok := nameVal.Value().(string)
	if !ok {
		return types.NewErr("style: call name must be string")
	}
	native, err := argsVal.ConvertToNative(anySliceType)
	if err != nil {
		return types.NewErr("style: call arguments: %v", err)
	}
	args, _ := native.([]any)
	for i, arg := range args {
		if val, ok := arg.(ref.Val); ok {
			args[i] = val.Value()
		}
	}
	return e.call(name, args)
}

func (e *celEvaluator) callValues(name string, vals ...ref.Val) ref.Val {
	args := make([]any, len(vals))
	for i, val := range vals {
		args[i] = val.Value()
	}
	return e.call(name, args)
}

func (e *celEvaluator) call(name string, args []any) ref.Val {
	result, err := e.registry.Call(name, args...)
	if err != nil {
		return types.NewErr("%s", err.Error())
	}
	if result == nil {
		return types.NullValue
	}
	return types.DefaultTypeAdapter.NativeToValue(result)
}
