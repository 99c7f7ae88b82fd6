package config

import (
	"context"
	"testing"

	"github.com/rmorlok/authdbinit/internal/util"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoggingConfig(t *testing.T) {
	assert := require.New(t)

	t.Run("yaml parse", func(t *testing.T) {
		t.Run("none", func(t *testing.T) {
			var l LoggingConfig
			assert.NoError(yaml.Unmarshal([]byte(`type: none`), &l))
			assert.Equal(LoggingConfig{InnerVal: &LoggingConfigNone{
				Type: LoggingConfigTypeNone,
			}}, l)
		})
		t.Run("text with options", func(t *testing.T) {
			data := `
type: text
to: stderr
level: debug
source: true
`
			var l LoggingConfig
			assert.NoError(yaml.Unmarshal([]byte(data), &l))
			assert.Equal(LoggingConfig{InnerVal: &LoggingConfigText{
				Type:   LoggingConfigTypeText,
				To:     OutputStderr,
				Level:  LevelDebug,
				Source: true,
			}}, l)
		})
		t.Run("json minimal", func(t *testing.T) {
			var l LoggingConfig
			assert.NoError(yaml.Unmarshal([]byte(`type: json`), &l))
			assert.Equal(LoggingConfig{InnerVal: &LoggingConfigJson{
				Type: LoggingConfigTypeJson,
			}}, l)
		})
		t.Run("tint with options", func(t *testing.T) {
			data := `
level: warn
type: tint
no_color: true
time_format: "15:04"
`
			var l LoggingConfig
			assert.NoError(yaml.Unmarshal([]byte(data), &l))
			assert.Equal(LoggingConfig{InnerVal: &LoggingConfigTint{
				Type:       LoggingConfigTypeTint,
				Level:      LevelWarn,
				NoColor:    util.ToPtr(true),
				TimeFormat: util.ToPtr("15:04"),
			}}, l)
		})
		t.Run("unknown type returns error", func(t *testing.T) {
			var l LoggingConfig
			assert.Error(yaml.Unmarshal([]byte(`type: unknown`), &l))
		})
		t.Run("missing type returns error", func(t *testing.T) {
			var l LoggingConfig
			assert.Error(yaml.Unmarshal([]byte(`level: debug`), &l))
		})
	})

	t.Run("from env strings", func(t *testing.T) {
		l, err := NewLoggingConfig("", "")
		assert.NoError(err)
		assert.Equal(LoggingConfigTypeTint, l.GetType())

		l, err = NewLoggingConfig("JSON", "Debug")
		assert.NoError(err)
		assert.Equal(&LoggingConfigJson{Type: LoggingConfigTypeJson, Level: LevelDebug}, l.InnerVal)

		l, err = NewLoggingConfig("none", "error")
		assert.NoError(err)
		assert.Equal(LoggingConfigTypeNone, l.GetType())
		assert.False(l.GetRootLogger().Enabled(context.Background(), LevelError.Level()))

		_, err = NewLoggingConfig("syslog", "")
		assert.Error(err)

		_, err = NewLoggingConfig("text", "verbose")
		assert.Error(err)
	})

	t.Run("nil holder", func(t *testing.T) {
		var l *LoggingConfig
		assert.Equal(LoggingConfigTypeNone, l.GetType())
		assert.NotNil(l.GetRootLogger())
	})
}
