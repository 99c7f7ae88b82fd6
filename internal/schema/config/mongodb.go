package config

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rmorlok/authdbinit/internal/schema/common"
)

const (
	DefaultMongoUri        = "mongodb://auth-db:27017"
	DefaultAuthSource      = "admin"
	DefaultAppName         = "authdbinit"
	DefaultConnectTimeout  = 10 * time.Second
	DefaultRetryInitial    = 500 * time.Millisecond
	DefaultRetryMax        = 5 * time.Second
	DefaultRetryAttempts   = 1
	maxRetryAttemptsConfig = 100
)

// MongoDB describes how to reach the instance being bootstrapped. Username and Password are the credentials of
// an existing privileged user; leave them unset when running against an instance without auth enabled, such as
// from a container initialization hook.
type MongoDB struct {
	Uri                    *common.StringValue   `json:"uri,omitempty" yaml:"uri,omitempty"`
	Username               *common.StringValue   `json:"username,omitempty" yaml:"username,omitempty"`
	Password               *common.StringValue   `json:"password,omitempty" yaml:"password,omitempty"`
	AuthSource             string                `json:"auth_source,omitempty" yaml:"auth_source,omitempty"`
	AppName                string                `json:"app_name,omitempty" yaml:"app_name,omitempty"`
	ConnectTimeout         *common.HumanDuration `json:"connect_timeout,omitempty" yaml:"connect_timeout,omitempty"`
	ServerSelectionTimeout *common.HumanDuration `json:"server_selection_timeout,omitempty" yaml:"server_selection_timeout,omitempty"`
	ConnectRetry           *ConnectRetry         `json:"connect_retry,omitempty" yaml:"connect_retry,omitempty"`
}

// ConnectRetry controls exponential backoff while waiting for the instance to accept connections.
type ConnectRetry struct {
	MaxAttempts     int                   `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
	InitialInterval *common.HumanDuration `json:"initial_interval,omitempty" yaml:"initial_interval,omitempty"`
	MaxInterval     *common.HumanDuration `json:"max_interval,omitempty" yaml:"max_interval,omitempty"`
}

func (m *MongoDB) GetUri() *common.StringValue {
	if m == nil || m.Uri == nil {
		return common.NewStringValueDirect(DefaultMongoUri)
	}
	return m.Uri
}

func (m *MongoDB) HasCredentials() bool {
	return m != nil && m.Username != nil && m.Password != nil
}

func (m *MongoDB) GetAuthSource() string {
	if m == nil || m.AuthSource == "" {
		return DefaultAuthSource
	}
	return m.AuthSource
}

func (m *MongoDB) GetAppName() string {
	if m == nil || m.AppName == "" {
		return DefaultAppName
	}
	return m.AppName
}

func (m *MongoDB) GetConnectTimeout() time.Duration {
	if m == nil {
		return DefaultConnectTimeout
	}
	return m.ConnectTimeout.GetOrDefault(DefaultConnectTimeout)
}

func (m *MongoDB) GetServerSelectionTimeout() time.Duration {
	if m == nil {
		return DefaultConnectTimeout
	}
	return m.ServerSelectionTimeout.GetOrDefault(m.GetConnectTimeout())
}

func (m *MongoDB) GetConnectRetry() *ConnectRetry {
	if m == nil || m.ConnectRetry == nil {
		return &ConnectRetry{}
	}
	return m.ConnectRetry
}

func (r *ConnectRetry) GetMaxAttempts() int {
	if r == nil || r.MaxAttempts <= 0 {
		return DefaultRetryAttempts
	}
	return r.MaxAttempts
}

func (r *ConnectRetry) GetInitialInterval() time.Duration {
	if r == nil {
		return DefaultRetryInitial
	}
	return r.InitialInterval.GetOrDefault(DefaultRetryInitial)
}

func (r *ConnectRetry) GetMaxInterval() time.Duration {
	if r == nil {
		return DefaultRetryMax
	}
	return r.MaxInterval.GetOrDefault(DefaultRetryMax)
}

func (m *MongoDB) Validate(vc *common.ValidationContext) error {
	result := &multierror.Error{}

	if (m.Username == nil) != (m.Password == nil) {
		result = multierror.Append(result, vc.NewError("username and password must be specified together"))
	}

	if m.ConnectTimeout != nil && m.ConnectTimeout.Duration <= 0 {
		result = multierror.Append(result, vc.NewErrorForField("connect_timeout", "must be positive"))
	}

	if m.ConnectRetry != nil {
		rvc := vc.PushField("connect_retry")
		if m.ConnectRetry.MaxAttempts < 0 || m.ConnectRetry.MaxAttempts > maxRetryAttemptsConfig {
			result = multierror.Append(result, rvc.NewErrorfForField("max_attempts", "must be between 0 and %d", maxRetryAttemptsConfig))
		}
		if m.ConnectRetry.GetMaxInterval() < m.ConnectRetry.GetInitialInterval() {
			result = multierror.Append(result, rvc.NewErrorForField("max_interval", "must not be less than initial_interval"))
		}
	}

	return result.ErrorOrNil()
}
