package style

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"sync"
)

// Function is a math function callable from calc() expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores functions by lower-cased name. Names must be plain
// identifiers so every engine can declare them.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: map[string]Function{}}
}

// Register adds fn under name. Duplicate or malformed names are rejected.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	key := strings.ToLower(name)
	switch {
	case fn == nil:
		return fmt.Errorf("style: function %q is nil", name)
	case !isIdentifier(key):
		return fmt.Errorf("style: function name %q is not an identifier", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = map[string]Function{}
	}
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("style: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Clone returns an independent registry with the same functions.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &FunctionRegistry{functions: maps.Clone(r.functions)}
}

// Call runs the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("style: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("style: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns the registered names in sorted order. A nil registry has
// none.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.functions))
}

// WithFunctionRegistry configures the style to use a copy of registry.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *styleConfig) {
		if registry != nil {
			cfg.functions = registry.Clone()
		}
	}
}

// WithCustomFunction registers fn under name for the style. Registration
// errors are written to the style's tracer when it is created.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *styleConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		if err := cfg.functions.Register(name, fn); err != nil {
			cfg.optionErrors = append(cfg.optionErrors, err)
		}
	}
}

// CSSMathFunctions returns a registry with the CSS math functions the engines
// lack: clamp(min, value, max), mod(a, b) with the sign of b, and
// hypot(a, ...).
func CSSMathFunctions() *FunctionRegistry {
	registry := NewFunctionRegistry()
	_ = registry.Register("clamp", numericFunction("clamp", 3, 3, func(v []float64) float64 {
		return math.Max(v[0], math.Min(v[1], v[2]))
	}))
	_ = registry.Register("mod", numericFunction("mod", 2, 2, func(v []float64) float64 {
		m := math.Mod(v[0], v[1])
		if m != 0 && (m < 0) != (v[1] < 0) {
			m += v[1]
		}
		return m
	}))
	_ = registry.Register("hypot", numericFunction("hypot", 1, -1, func(v []float64) float64 {
		sum := 0.0
		for _, x := range v {
			sum += x * x
		}
		return math.Sqrt(sum)
	}))
	return registry
}

// numericFunction adapts fn to Function, checking the argument count
// (maxArgs < 0 means unbounded) and converting every argument to float64.
func numericFunction(name string, minArgs, maxArgs int, fn func([]float64) float64) Function {
	return func(args ...any) (any, error) {
		if len(args) < minArgs || (maxArgs >= 0 && len(args) > maxArgs) {
			return nil, fmt.Errorf("style: %s: unexpected argument count %d", name, len(args))
		}
		values := make([]float64, len(args))
		for i, arg := range args {
			value, ok := toFloat(arg)
			if !ok {
				return nil, fmt.Errorf("style: %s argument %d is not numeric: %v", name, i, arg)
			}
			values[i] = value
		}
		return fn(values), nil
	}
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
