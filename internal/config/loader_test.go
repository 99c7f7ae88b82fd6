package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validConfig = `
mongodb:
  uri: mongodb://localhost:27017
  connect_timeout: 5s
admin_user:
  database: auth_db
  username: mongoadmin
  password:
    env_var: TEST_ADMIN_PASSWORD
  roles:
    - role: readWrite
      database: auth_db
logging:
  type: none
`

func TestLoadConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validConfig), 0600))
		t.Setenv("TEST_ADMIN_PASSWORD", "pw")

		c, err := LoadConfig(path)
		require.NoError(t, err)
		require.NoError(t, c.Validate())
		require.Equal(t, path, c.Source())

		password, err := c.GetRoot().AdminUser.Password.GetValue(context.Background())
		require.NoError(t, err)
		require.Equal(t, "pw", password)
		require.NotNil(t, c.GetRootLogger())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("schema violation", func(t *testing.T) {
		_, err := LoadConfigBytes([]byte(`
mongodb:
  uri: mongodb://localhost:27017
admin_user:
  username: mongoadmin
`))
		require.ErrorContains(t, err, "config schema validation failed")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadConfigBytes([]byte(validConfig + "authuser:\n  username: authuser\n"))
		require.ErrorContains(t, err, "config schema validation failed")
	})

	t.Run("semantic validation is separate", func(t *testing.T) {
		c, err := LoadConfigBytes([]byte(`
mongodb:
  username: root
admin_user:
  password: pw
`))
		require.NoError(t, err)
		require.ErrorContains(t, c.Validate(), "username and password must be specified together")
	})
}
