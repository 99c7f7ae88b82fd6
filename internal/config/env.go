package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rmorlok/authdbinit/internal/schema/common"
	sconfig "github.com/rmorlok/authdbinit/internal/schema/config"
	"github.com/rmorlok/authdbinit/internal/util"
)

const (
	EnvConfigFile        = "AUTHDBINIT_CONFIG"
	EnvMongoUri          = "AUTHDBINIT_MONGO_URI"
	EnvDatabaseUrl       = "DATABASE_URL"
	EnvMongoUsername     = "AUTHDBINIT_MONGO_USERNAME"
	EnvMongoPassword     = "AUTHDBINIT_MONGO_PASSWORD"
	EnvMongoAuthSource   = "AUTHDBINIT_MONGO_AUTH_SOURCE"
	EnvDatabase          = "AUTHDBINIT_DATABASE"
	EnvAdminUsername     = "AUTHDBINIT_ADMIN_USERNAME"
	EnvAdminPassword     = "AUTHDBINIT_ADMIN_PASSWORD"
	EnvAdminPasswordFile = "AUTHDBINIT_ADMIN_PASSWORD_FILE"
	EnvAdminRole         = "AUTHDBINIT_ADMIN_ROLE"
	EnvConnectTimeout    = "AUTHDBINIT_CONNECT_TIMEOUT"
	EnvConnectRetries    = "AUTHDBINIT_CONNECT_RETRIES"
	EnvLogFormat         = "LOG_FORMAT"
	EnvLogLevel          = "LOG_LEVEL"
)

// FromEnv builds the configuration from environment variables. Secrets are referenced by variable name, not
// copied, so they are read exactly once when the admin identity is resolved.
func FromEnv() (C, error) {
	connectTimeout, err := util.GetEnvDuration(EnvConnectTimeout, sconfig.DefaultConnectTimeout)
	if err != nil {
		return nil, err
	}

	retries, err := util.GetEnvInt(EnvConnectRetries, sconfig.DefaultRetryAttempts)
	if err != nil {
		return nil, err
	}

	logging, err := sconfig.NewLoggingConfig(os.Getenv(EnvLogFormat), os.Getenv(EnvLogLevel))
	if err != nil {
		return nil, errors.Wrap(err, "invalid logging environment")
	}

	mongo := &sconfig.MongoDB{
		Uri:            common.NewStringValueDirect(util.GetEnvFirst(sconfig.DefaultMongoUri, EnvMongoUri, EnvDatabaseUrl)),
		AuthSource:     util.GetEnvDefault(EnvMongoAuthSource, sconfig.DefaultAuthSource),
		ConnectTimeout: &common.HumanDuration{Duration: connectTimeout},
		ConnectRetry:   &sconfig.ConnectRetry{MaxAttempts: retries},
	}

	if isSet(EnvMongoUsername) {
		mongo.Username = common.NewStringValueEnvVar(EnvMongoUsername)
	}
	if isSet(EnvMongoPassword) {
		mongo.Password = common.NewStringValueEnvVar(EnvMongoPassword)
	}

	database := util.GetEnvDefault(EnvDatabase, sconfig.DefaultAdminDatabase)
	admin := &sconfig.AdminUser{
		Database: database,
		Username: common.NewStringValueDirect(util.GetEnvDefault(EnvAdminUsername, sconfig.DefaultAdminUsername)),
		Roles: []sconfig.RoleBinding{{
			Role:     util.GetEnvDefault(EnvAdminRole, sconfig.DefaultAdminRole),
			Database: database,
		}},
	}

	switch {
	case isSet(EnvAdminPassword):
		admin.Password = common.NewStringValueEnvVar(EnvAdminPassword)
	case isSet(EnvAdminPasswordFile):
		admin.Password = common.NewStringValueFile(strings.TrimSpace(os.Getenv(EnvAdminPasswordFile)))
	}

	return &config{
		root: &sconfig.Root{
			MongoDB:   mongo,
			AdminUser: admin,
			Logging:   logging,
		},
		source: "environment",
	}, nil
}

func isSet(key string) bool {
	return os.Getenv(key) != ""
}
