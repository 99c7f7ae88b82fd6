package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rmorlok/authdbinit/internal/schema"
	sconfig "github.com/rmorlok/authdbinit/internal/schema/config"
)

// LoadConfig reads a YAML configuration file, checks it against the embedded schema and decodes it. Semantic
// validation is left to C.Validate so callers can report both kinds of failure the same way.
func LoadConfig(path string) (C, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", path)
	}

	c, err := LoadConfigBytes(content)
	if err != nil {
		return nil, err
	}

	c.(*config).source = path
	return c, nil
}

func LoadConfigBytes(content []byte) (C, error) {
	if err := schema.ValidateYaml(schema.SchemaIdConfig, content); err != nil {
		return nil, errors.Wrap(err, "config schema validation failed")
	}

	root, err := sconfig.UnmarshallYamlRoot(content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	return &config{root: root}, nil
}
