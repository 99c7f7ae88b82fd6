package aplog

import (
	"context"

	"github.com/google/uuid"
)

type runIdKey struct{}

// ContextWithRunId returns a context carrying the id of the current bootstrap run.
func ContextWithRunId(ctx context.Context, runId uuid.UUID) context.Context {
	return context.WithValue(ctx, runIdKey{}, runId)
}

func RunIdFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}

	runId, ok := ctx.Value(runIdKey{}).(uuid.UUID)
	return runId, ok
}
