package mock

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestingHandler captures logs for testing
type TestingHandler struct {
	TB testing.TB

	mu    *sync.Mutex
	logs  *[]LogEntry
	attrs []slog.Attr
}

type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   []slog.Attr
}

// Attr returns the value of the named attribute, if present.
func (e LogEntry) Attr(key string) (slog.Value, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return slog.Value{}, false
}

func (h *TestingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return true
}

func (h *TestingHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.logs = append(*h.logs, LogEntry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

func (h *TestingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)
	combined = append(combined, attrs...)

	return &TestingHandler{TB: h.TB, mu: h.mu, logs: h.logs, attrs: combined}
}

func (h *TestingHandler) WithGroup(name string) slog.Handler {
	return h
}

// Logs returns a copy of every entry captured so far.
func (h *TestingHandler) Logs() []LogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]LogEntry(nil), *h.logs...)
}

// Contains reports whether any captured message or attribute value contains the substring.
func (h *TestingHandler) Contains(s string) bool {
	for _, e := range h.Logs() {
		if strings.Contains(e.Message, s) {
			return true
		}
		for _, a := range e.Attrs {
			if strings.Contains(a.Value.String(), s) {
				return true
			}
		}
	}
	return false
}

// Creates a new test logger
func NewTestLogger(tb testing.TB) (*slog.Logger, *TestingHandler) {
	handler := &TestingHandler{TB: tb, mu: &sync.Mutex{}, logs: &[]LogEntry{}}
	return slog.New(handler), handler
}
