package common

import (
	"context"
	"fmt"
)

type StringValueType interface {
	Clone() StringValueType

	// HasValue checks if this value has data.
	HasValue(ctx context.Context) bool

	// GetValue resolves the string, reaching out to the backing source if required.
	GetValue(ctx context.Context) (string, error)
}

// StringValue is the holder for a StringValueType. Values are secret-safe: the holder never renders the
// resolved value when formatted.
type StringValue struct {
	InnerVal StringValueType `json:"-" yaml:"-"`
}

func (sv *StringValue) Inner() StringValueType {
	if sv == nil {
		return nil
	}
	return sv.InnerVal
}

func (sv *StringValue) CloneValue() *StringValue {
	if sv == nil || sv.InnerVal == nil {
		return nil
	}

	return &StringValue{InnerVal: sv.InnerVal.Clone()}
}

func (sv *StringValue) Clone() StringValueType {
	return sv.CloneValue()
}

func (sv *StringValue) HasValue(ctx context.Context) bool {
	if sv == nil || sv.InnerVal == nil {
		return false
	}
	return sv.InnerVal.HasValue(ctx)
}

func (sv *StringValue) GetValue(ctx context.Context) (string, error) {
	if sv == nil || sv.InnerVal == nil {
		return "", fmt.Errorf("string value incorrectly configured")
	}
	return sv.InnerVal.GetValue(ctx)
}

// GetValueOrDefault resolves the value if one is configured, otherwise returns the fallback.
func (sv *StringValue) GetValueOrDefault(ctx context.Context, fallback string) (string, error) {
	if sv == nil || sv.InnerVal == nil {
		return fallback, nil
	}

	return sv.InnerVal.GetValue(ctx)
}

// Source describes where the value comes from without revealing it.
func (sv *StringValue) Source() string {
	if sv == nil || sv.InnerVal == nil {
		return "unset"
	}

	switch v := sv.InnerVal.(type) {
	case *StringValueDirect:
		return "inline"
	case *StringValueBase64:
		return "base64"
	case *StringValueEnvVar:
		return "env:" + v.EnvVar
	case *StringValueEnvVarBase64:
		return "env_base64:" + v.EnvVar
	case *StringValueFile:
		return "file:" + v.Path
	case *StringValueVault:
		return "vault:" + v.VaultPath
	case *StringValueAwsSecret:
		return "aws:" + v.AwsSecretID
	case *StringValueGcpSecret:
		return "gcp:" + v.GcpSecretName
	default:
		return "custom"
	}
}

var _ StringValueType = (*StringValue)(nil)
