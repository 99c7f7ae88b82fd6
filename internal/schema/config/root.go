package config

import (
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/rmorlok/authdbinit/internal/schema/common"
	"gopkg.in/yaml.v3"
)

type Root struct {
	MongoDB   *MongoDB       `json:"mongodb" yaml:"mongodb"`
	AdminUser *AdminUser     `json:"admin_user" yaml:"admin_user"`
	Logging   *LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

func (r *Root) GetRootLogger() *slog.Logger {
	if r == nil || r.Logging == nil {
		return (&LoggingConfigNone{Type: LoggingConfigTypeNone}).GetRootLogger()
	}

	return r.Logging.GetRootLogger()
}

func (r *Root) Validate() error {
	vc := &common.ValidationContext{Path: "$"}
	result := &multierror.Error{}

	// An absent mongodb block connects to the default URI without credentials.
	if r.MongoDB != nil {
		if err := r.MongoDB.Validate(vc.PushField("mongodb")); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if r.AdminUser == nil {
		result = multierror.Append(result, vc.NewError("admin_user block is required"))
	} else if err := r.AdminUser.Validate(vc.PushField("admin_user")); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func UnmarshallYamlRootString(data string) (*Root, error) {
	return UnmarshallYamlRoot([]byte(data))
}

func UnmarshallYamlRoot(data []byte) (*Root, error) {
	var root Root
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	return &root, nil
}
