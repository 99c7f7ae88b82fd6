package common

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func (sv *StringValue) MarshalYAML() (interface{}, error) {
	if sv.InnerVal == nil {
		return nil, nil
	}

	// Serialize directly as a string if that's how it was loaded
	if v, ok := sv.InnerVal.(*StringValueDirect); ok && v.IsDirect {
		return v.Value, nil
	}

	return sv.InnerVal, nil
}

// UnmarshalYAML handles unmarshalling from YAML while allowing us to make decisions
// about how the data is unmarshalled based on the concrete type being represented
func (sv *StringValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		sv.InnerVal = &StringValueDirect{Value: value.Value, IsDirect: true}
		return nil
	}

	// Ensure the node is a mapping node
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("string value expected a scalar or mapping node, got %s", KindToString(value.Kind))
	}

	var stringValue StringValueType

fieldLoop:
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]

		switch keyNode.Value {
		case "value":
			stringValue = &StringValueDirect{}
			break fieldLoop
		case "base64":
			stringValue = &StringValueBase64{}
			break fieldLoop
		case "env_var":
			stringValue = &StringValueEnvVar{}
			break fieldLoop
		case "env_var_base64":
			stringValue = &StringValueEnvVarBase64{}
			break fieldLoop
		case "path":
			stringValue = &StringValueFile{}
			break fieldLoop
		case "vault_address":
			stringValue = &StringValueVault{}
			break fieldLoop
		case "aws_secret_id":
			stringValue = &StringValueAwsSecret{}
			break fieldLoop
		case "gcp_secret_name":
			stringValue = &StringValueGcpSecret{}
			break fieldLoop
		}
	}

	if stringValue == nil {
		return fmt.Errorf("invalid structure for string value; does not match value, base64, env_var, env_var_base64, path, vault_address, aws_secret_id, gcp_secret_name")
	}

	if err := value.Decode(stringValue); err != nil {
		return err
	}

	sv.InnerVal = stringValue
	return nil
}
