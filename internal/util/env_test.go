package util

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetEnvDefault(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		fallback string
		unset    bool
		want     string
	}{
		{
			name:     "set",
			key:      "TEST_ENV_SET",
			value:    "actual",
			fallback: "default",
			want:     "actual",
		},
		{
			name:     "unset",
			key:      "TEST_ENV_UNSET",
			fallback: "default",
			unset:    true,
			want:     "default",
		},
		{
			name:     "whitespace",
			key:      "TEST_ENV_SPACE",
			value:    "   ",
			fallback: "default",
			want:     "default",
		},
		{
			name:     "trimmed",
			key:      "TEST_ENV_TRIM",
			value:    "  trimmed  ",
			fallback: "default",
			want:     "trimmed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.unset {
				os.Unsetenv(tt.key)
			} else {
				os.Setenv(tt.key, tt.value)
				defer os.Unsetenv(tt.key)
			}

			if got := GetEnvDefault(tt.key, tt.fallback); got != tt.want {
				t.Errorf("GetEnvDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvFirst(t *testing.T) {
	t.Setenv("TEST_ENV_FIRST_A", "")
	t.Setenv("TEST_ENV_FIRST_B", "b")
	require.Equal(t, "b", GetEnvFirst("fallback", "TEST_ENV_FIRST_A", "TEST_ENV_FIRST_B"))
	require.Equal(t, "fallback", GetEnvFirst("fallback", "TEST_ENV_FIRST_A"))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_ENV_DURATION", "15s")
	d, err := GetEnvDuration("TEST_ENV_DURATION", time.Second)
	require.NoError(t, err)
	require.Equal(t, 15*time.Second, d)

	d, err = GetEnvDuration("TEST_ENV_DURATION_UNSET", time.Second)
	require.NoError(t, err)
	require.Equal(t, time.Second, d)

	t.Setenv("TEST_ENV_DURATION", "soon")
	_, err = GetEnvDuration("TEST_ENV_DURATION", time.Second)
	require.Error(t, err)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_ENV_INT", "5")
	i, err := GetEnvInt("TEST_ENV_INT", 1)
	require.NoError(t, err)
	require.Equal(t, 5, i)

	t.Setenv("TEST_ENV_INT", "five")
	_, err = GetEnvInt("TEST_ENV_INT", 1)
	require.Error(t, err)
}
