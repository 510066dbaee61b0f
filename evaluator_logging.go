package style

import (
	"context"
	"log/slog"
	"time"
)

// EvaluatorLogEvent describes one calc() evaluation.
type EvaluatorLogEvent struct {
	Engine   string
	Expr     string
	Owner    string
	Property string
	Duration time.Duration
	Err      error
}

// EvaluatorLogger receives an event after every calc() evaluation.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

// SlogEvaluatorLogger logs successful evaluations at debug level and failed
// ones at warn level.
func SlogEvaluatorLogger(logger *slog.Logger) EvaluatorLogger {
	if logger == nil {
		return nil
	}
	return EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
		level := slog.LevelDebug
		attrs := []slog.Attr{
			slog.String("engine", event.Engine),
			slog.String("expr", event.Expr),
			slog.String("owner", event.Owner),
			slog.Duration("duration", event.Duration),
		}
		if event.Property != "" {
			attrs = append(attrs, slog.String("property", event.Property))
		}
		if event.Err != nil {
			level = slog.LevelWarn
			attrs = append(attrs, slog.Any("error", event.Err))
		}
		logger.LogAttrs(context.Background(), level, "calc evaluated", attrs...)
	})
}

// WithEvaluatorLogger attaches an evaluator logger to the style. A nil logger
// disables evaluation logging.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *styleConfig) {
		cfg.logger = logger
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}
