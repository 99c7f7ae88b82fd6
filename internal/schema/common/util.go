package common

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

var yamlKindNames = map[yaml.Kind]string{
	yaml.DocumentNode: "document",
	yaml.SequenceNode: "sequence",
	yaml.MappingNode:  "mapping",
	yaml.ScalarNode:   "scalar",
	yaml.AliasNode:    "alias",
}

// KindToString names a YAML node kind for error messages.
func KindToString(k yaml.Kind) string {
	if name, ok := yamlKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%d)", k)
}
