package query

import (
	"context"
	"log/slog"
	"time"
)

// LogEvent describes an evaluation attempt for logging.
type LogEvent struct {
	Engine   string
	Expr     string
	Kind     string
	Duration time.Duration
	Err      error
}

// Logger records evaluator events.
type Logger interface {
	LogEvaluation(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// LogEvaluation implements Logger.
func (f LoggerFunc) LogEvaluation(event LogEvent) {
	if f != nil {
		f(event)
	}
}

// NopLogger discards all events.
type NopLogger struct{}

// LogEvaluation implements Logger.
func (NopLogger) LogEvaluation(LogEvent) {}

// SlogLogger bridges evaluator events onto a structured logger. Successful
// evaluations log at debug, failures at warn.
func SlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return NopLogger{}
	}
	return LoggerFunc(func(event LogEvent) {
		attrs := []slog.Attr{
			slog.String("engine", event.Engine),
			slog.String("expr", event.Expr),
			slog.String("kind", event.Kind),
			slog.Duration("duration", event.Duration),
		}
		level := slog.LevelDebug
		msg := "expression evaluated"
		if event.Err != nil {
			attrs = append(attrs, slog.Any("error", event.Err))
			level = slog.LevelWarn
			msg = "expression evaluation failed"
		}
		logger.LogAttrs(context.Background(), level, msg, attrs...)
	})
}
