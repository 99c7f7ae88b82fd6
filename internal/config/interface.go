package config

import (
	"log/slog"

	sconfig "github.com/rmorlok/authdbinit/internal/schema/config"
)

type C interface {
	// Validate checks that the configuration is valid
	Validate() error

	// GetRoot gets the root of the configuration; the data loaded from a configuration file or the environment
	GetRoot() *sconfig.Root

	// GetRootLogger returns the root logger instance configured for the application. This will always
	// return a logger, defaulting to a none logger if nothing is configured.
	GetRootLogger() *slog.Logger

	// Source describes where the configuration was loaded from, for diagnostics.
	Source() string
}
