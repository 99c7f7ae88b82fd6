package aplog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type Builder interface {
	WithComponent(componentId string) Builder
	WithCtx(ctx context.Context) Builder
	WithDatabase(database string) Builder
	WithPrincipal(username string) Builder
	WithRunId(runId uuid.UUID) Builder
	With(args ...any) Builder
	Build() *slog.Logger
}

type builder struct {
	l *slog.Logger
}

func (b *builder) With(args ...any) Builder {
	return &builder{l: b.l.With(args...)}
}

func (b *builder) WithComponent(componentId string) Builder {
	return &builder{l: b.l.With("component", componentId)}
}

func (b *builder) WithCtx(ctx context.Context) Builder {
	if runId, ok := RunIdFromContext(ctx); ok {
		return b.WithRunId(runId)
	}
	return b
}

func (b *builder) WithDatabase(database string) Builder {
	return &builder{l: b.l.With("database", database)}
}

// WithPrincipal attaches the principal's username. Passwords are never attached to loggers.
func (b *builder) WithPrincipal(username string) Builder {
	return &builder{l: b.l.With("principal", username)}
}

func (b *builder) WithRunId(runId uuid.UUID) Builder {
	return &builder{l: b.l.With("run_id", runId.String())}
}

func (b *builder) Build() *slog.Logger {
	return b.l
}

func NewBuilder(l *slog.Logger) Builder {
	if l == nil {
		panic("cannot create log builder with nil log")
	}

	return &builder{l: l}
}

var _ Builder = &builder{}
