package schema

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// yamlToJsonValue decodes YAML into the generic value shape the schema validator expects. Round-tripping through
// JSON normalizes YAML scalars (ints, bools) to json.Number-compatible values.
func yamlToJsonValue(content []byte, out *interface{}) error {
	var raw interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return errors.Wrap(err, "failed to parse YAML for schema validation")
	}

	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return errors.Wrap(err, "failed to convert YAML to JSON for schema validation")
	}

	if err := json.Unmarshal(jsonBytes, out); err != nil {
		return errors.Wrap(err, "failed to unmarshal JSON for schema validation")
	}

	return nil
}
