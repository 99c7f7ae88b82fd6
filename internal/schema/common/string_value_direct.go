package common

import (
	"context"
)

// StringValueDirect is where the string data is specified directly in the config.
type StringValueDirect struct {
	Value string `json:"value" yaml:"value"`

	// IsDirect implies this was loaded as a YAML scalar instead of an object with the `value` key. It drives how
	// the value renders back to YAML.
	IsDirect bool `json:"-" yaml:"-"`
}

func (kb *StringValueDirect) HasValue(ctx context.Context) bool {
	return len(kb.Value) > 0
}

func (kb *StringValueDirect) GetValue(ctx context.Context) (string, error) {
	return kb.Value, nil
}

func (kb *StringValueDirect) Clone() StringValueType {
	if kb == nil {
		return nil
	}

	clone := *kb
	return &clone
}

func (kb StringValueDirect) MarshalYAML() (interface{}, error) {
	if kb.IsDirect {
		return kb.Value, nil
	}

	return map[string]string{
		"value": kb.Value,
	}, nil
}

func NewStringValueDirect(value string) *StringValue {
	return &StringValue{&StringValueDirect{
		Value:    value,
		IsDirect: false,
	}}
}

func NewStringValueDirectInline(value string) *StringValue {
	return &StringValue{&StringValueDirect{
		Value:    value,
		IsDirect: true,
	}}
}

var _ StringValueType = (*StringValueDirect)(nil)
