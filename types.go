package style

import (
	"github.com/goliatone/go-style/pkg/activity"
)

// DefaultMaxDepth bounds the number of ancestors a variable lookup may
// delegate to before the chain is treated as cyclic.
const DefaultMaxDepth = 1024

// SchemaFormat identifies the representation a schema document encodes.
type SchemaFormat string

const (
	// SchemaFormatDescriptors represents the flattened field descriptors.
	SchemaFormatDescriptors SchemaFormat = "descriptors"
	// SchemaFormatOpenAPI represents OpenAPI-compatible JSON Schema documents.
	SchemaFormatOpenAPI SchemaFormat = "openapi"
)

// SchemaDocument encapsulates a generated schema output alongside its format
// identifier. Implementations must ensure Document is JSON-serialisable.
type SchemaDocument struct {
	Format   SchemaFormat
	Document any
}

// SchemaGenerator transforms a value into a schema document. Implementations
// must be safe for concurrent use and handle nil inputs by returning an empty
// schema document.
type SchemaGenerator interface {
	Generate(value any) (SchemaDocument, error)
}

// EvalContext identifies what a calc() expression is evaluated for. Property
// is exposed to expressions as the identifier property; Owner only labels
// errors and logs.
type EvalContext struct {
	Owner    string
	Property string
}

// Evaluator executes arithmetic expressions produced by calc() reduction.
type Evaluator interface {
	Evaluate(ctx EvalContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx EvalContext) (any, error)
}

// Option configures a Style at construction.
type Option func(*styleConfig)

type styleConfig struct {
	tracer          Tracer
	maxDepth        int
	evaluator       Evaluator
	programCache    ProgramCache
	functions       *FunctionRegistry
	logger          EvaluatorLogger
	schemaGenerator SchemaGenerator
	activityHooks   activity.Hooks
	activity        activity.Config
	optionErrors    []error
}

func applyOptions(opts []Option) styleConfig {
	cfg := styleConfig{
		maxDepth: DefaultMaxDepth,
		activity: activity.Config{Channel: activity.DefaultChannel},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMaxDepth overrides DefaultMaxDepth. Non-positive values are ignored.
func WithMaxDepth(depth int) Option {
	return func(cfg *styleConfig) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

// WithEvaluator configures the engine used to reduce calc() expressions.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *styleConfig) {
		cfg.evaluator = e
	}
}

// WithSchemaGenerator configures a custom schema generator implementation.
func WithSchemaGenerator(generator SchemaGenerator) Option {
	return func(cfg *styleConfig) {
		cfg.schemaGenerator = generator
	}
}

func (s *Style) maxDepth() int {
	if s == nil || s.cfg.maxDepth <= 0 {
		return DefaultMaxDepth
	}
	return s.cfg.maxDepth
}

func (s *Style) evaluator() Evaluator {
	return s.cfg.evaluator
}

func (s *Style) withEvaluator(e Evaluator) {
	s.cfg.evaluator = e
}

func (s *Style) programCache() ProgramCache {
	return s.cfg.programCache
}

func (s *Style) functionRegistry() *FunctionRegistry {
	return s.cfg.functions
}

func (s *Style) evaluatorLogger() EvaluatorLogger {
	if s.cfg.logger != nil {
		return s.cfg.logger
	}
	return noopEvaluatorLogger{}
}

func (s *Style) schemaGenerator() SchemaGenerator {
	if s == nil || s.cfg.schemaGenerator == nil {
		return DefaultSchemaGenerator()
	}
	return s.cfg.schemaGenerator
}
