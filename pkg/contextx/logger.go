package contextx

import (
	"context"
	"log/slog"
)

type contextKeyLogger struct{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger{}, logger)
}

func LoggerFromContext(ctx context.Context) (*slog.Logger, error) {
	return valueFrom[*slog.Logger](ctx, contextKeyLogger{}, "logger")
}

// LoggerFromContextOrDefault returns the request-scoped logger, falling back
// to slog.Default when none was attached.
func LoggerFromContextOrDefault(ctx context.Context) *slog.Logger {
	logger, err := LoggerFromContext(ctx)
	if err != nil {
		return slog.Default()
	}

	return logger
}
