package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	sconfig "github.com/rmorlok/authdbinit/internal/schema/config"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvMongoUri, EnvDatabaseUrl, EnvMongoUsername, EnvMongoPassword, EnvMongoAuthSource, EnvDatabase,
		EnvAdminUsername, EnvAdminPassword, EnvAdminPasswordFile, EnvAdminRole, EnvConnectTimeout,
		EnvConnectRetries, EnvLogFormat, EnvLogLevel,
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvAdminPassword, "s3cret")

		c, err := FromEnv()
		require.NoError(t, err)
		require.NoError(t, c.Validate())
		require.Equal(t, "environment", c.Source())

		root := c.GetRoot()
		uri, err := root.MongoDB.GetUri().GetValue(ctx)
		require.NoError(t, err)
		require.Equal(t, sconfig.DefaultMongoUri, uri)
		require.False(t, root.MongoDB.HasCredentials())
		require.Equal(t, "admin", root.MongoDB.GetAuthSource())
		require.Equal(t, 10*time.Second, root.MongoDB.GetConnectTimeout())
		require.Equal(t, 1, root.MongoDB.GetConnectRetry().GetMaxAttempts())

		require.Equal(t, "auth_db", root.AdminUser.GetDatabase())
		username, err := root.AdminUser.GetUsername().GetValue(ctx)
		require.NoError(t, err)
		require.Equal(t, "mongoadmin", username)
		password, err := root.AdminUser.Password.GetValue(ctx)
		require.NoError(t, err)
		require.Equal(t, "s3cret", password)
		require.Equal(t, []sconfig.RoleBinding{{Role: "readWrite", Database: "auth_db"}}, root.AdminUser.GetRoles())

		require.Equal(t, sconfig.LoggingConfigTypeTint, root.Logging.GetType())
		require.NotNil(t, c.GetRootLogger())
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvDatabaseUrl, "mongodb://fallback:27017")
		t.Setenv(EnvMongoUri, "mongodb://primary:27017")
		t.Setenv(EnvMongoUsername, "root")
		t.Setenv(EnvMongoPassword, "rootpw")
		t.Setenv(EnvMongoAuthSource, "other")
		t.Setenv(EnvDatabase, "course_db")
		t.Setenv(EnvAdminUsername, "courseadmin")
		t.Setenv(EnvAdminPassword, "pw")
		t.Setenv(EnvAdminRole, "dbOwner")
		t.Setenv(EnvConnectTimeout, "2s")
		t.Setenv(EnvConnectRetries, "4")
		t.Setenv(EnvLogFormat, "json")
		t.Setenv(EnvLogLevel, "debug")

		c, err := FromEnv()
		require.NoError(t, err)
		require.NoError(t, c.Validate())

		root := c.GetRoot()
		uri, err := root.MongoDB.GetUri().GetValue(ctx)
		require.NoError(t, err)
		require.Equal(t, "mongodb://primary:27017", uri)
		require.True(t, root.MongoDB.HasCredentials())
		require.Equal(t, "other", root.MongoDB.GetAuthSource())
		require.Equal(t, 2*time.Second, root.MongoDB.GetConnectTimeout())
		require.Equal(t, 4, root.MongoDB.GetConnectRetry().GetMaxAttempts())
		require.Equal(t, "course_db", root.AdminUser.GetDatabase())
		require.Equal(t, []sconfig.RoleBinding{{Role: "dbOwner", Database: "course_db"}}, root.AdminUser.GetRoles())
		require.Equal(t, sconfig.LoggingConfigTypeJson, root.Logging.GetType())
	})

	t.Run("database url fallback", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvDatabaseUrl, "mongodb://fallback:27017")
		t.Setenv(EnvAdminPassword, "pw")

		c, err := FromEnv()
		require.NoError(t, err)
		uri, err := c.GetRoot().MongoDB.GetUri().GetValue(ctx)
		require.NoError(t, err)
		require.Equal(t, "mongodb://fallback:27017", uri)
	})

	t.Run("password file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "password")
		require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0600))
		t.Setenv(EnvAdminPasswordFile, path)

		c, err := FromEnv()
		require.NoError(t, err)
		password, err := c.GetRoot().AdminUser.Password.GetValue(ctx)
		require.NoError(t, err)
		require.Equal(t, "from-file", password)
	})

	t.Run("missing password fails validation", func(t *testing.T) {
		clearEnv(t)

		c, err := FromEnv()
		require.NoError(t, err)
		err = c.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "$.admin_user.password")
	})

	t.Run("invalid timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvConnectTimeout, "soon")

		_, err := FromEnv()
		require.ErrorContains(t, err, EnvConnectTimeout)
	})

	t.Run("invalid retries", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvConnectRetries, "many")

		_, err := FromEnv()
		require.ErrorContains(t, err, EnvConnectRetries)
	})

	t.Run("invalid log format", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvLogFormat, "xml")

		_, err := FromEnv()
		require.ErrorContains(t, err, "xml")
	})
}
