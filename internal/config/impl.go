package config

import (
	"log/slog"

	sconfig "github.com/rmorlok/authdbinit/internal/schema/config"
)

type config struct {
	root   *sconfig.Root
	source string
}

func (c *config) Validate() error {
	return c.root.Validate()
}

func (c *config) GetRoot() *sconfig.Root {
	if c == nil {
		return nil
	}

	return c.root
}

func (c *config) GetRootLogger() *slog.Logger {
	return c.root.GetRootLogger()
}

func (c *config) Source() string {
	if c == nil || c.source == "" {
		return "memory"
	}

	return c.source
}

func FromRoot(root *sconfig.Root) C {
	return &config{root: root}
}
