// Package logger builds the process-wide slog logger and carries a
// request-scoped logger through context.Context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// New returns a JSON logger in production and a text logger otherwise, and
// installs it as the slog default.
func New(env string) *slog.Logger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *slog.Logger {
	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

type ctxKey struct{}

// Inject stores l in ctx. The request logger middleware calls it with a
// logger already tagged with request_id.
func Inject(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromCtx returns the logger stored in ctx, or the default logger.
func FromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}
