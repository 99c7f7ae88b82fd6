package aplog

import (
	"context"
	"log/slog"
)

// noopHandler drops every record. Used when a component is constructed without a logger.
type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (noopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h noopHandler) WithGroup(string) slog.Handler           { return h }

func NewNoopLogger() *slog.Logger {
	return slog.New(noopHandler{})
}
