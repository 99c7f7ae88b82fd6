package aplog

import (
	"log/slog"
	"sync"
)

var defaultOnce sync.Once

// SetDefaultLog installs the configured logger as the slog default so libraries logging through slog share its
// handler. Only the first non-nil logger takes effect; it reports whether this call installed it.
func SetDefaultLog(logger *slog.Logger) bool {
	if logger == nil {
		return false
	}

	installed := false
	defaultOnce.Do(func() {
		slog.SetDefault(logger)
		installed = true
	})

	return installed
}
