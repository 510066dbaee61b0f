package style

import (
	"context"
	"log/slog"
)

// Severity classifies a trace entry.
type Severity string

const (
	SeverityLog   Severity = "log"
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Trace categories used by the style package.
const (
	CategoryStyle     = "Style"
	CategoryAnimation = "Animation"
	CategoryDebug     = "Debug"
	CategoryError     = "Error"
)

// TraceEntry is a diagnostic message written to a Tracer.
type TraceEntry struct {
	Message  string
	Category string
	Severity Severity
}

// Tracer receives diagnostic messages.
type Tracer interface {
	Write(TraceEntry)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(TraceEntry)

// Write implements Tracer.
func (f TracerFunc) Write(entry TraceEntry) {
	if f != nil {
		f(entry)
	}
}

type noopTracer struct{}

func (noopTracer) Write(TraceEntry) {}

// WithTracer routes diagnostics to tracer. A nil tracer discards them.
func WithTracer(tracer Tracer) Option {
	return func(cfg *styleConfig) {
		if tracer == nil {
			cfg.tracer = noopTracer{}
			return
		}
		cfg.tracer = tracer
	}
}

// SlogTracer writes trace entries to logger, mapping severities onto slog
// levels and the category onto a "category" attribute.
func SlogTracer(logger *slog.Logger) Tracer {
	if logger == nil {
		return noopTracer{}
	}
	return TracerFunc(func(entry TraceEntry) {
		logger.Log(context.Background(), entry.Severity.level(), entry.Message,
			slog.String("category", entry.Category),
		)
	})
}

func (s Severity) level() slog.Level {
	switch s {
	case SeverityError:
		return slog.LevelError
	case SeverityWarn:
		return slog.LevelWarn
	case SeverityInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

func (s *Style) tracer() Tracer {
	if s == nil || s.cfg.tracer == nil {
		return noopTracer{}
	}
	return s.cfg.tracer
}
