package util

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// GetEnvDefault returns the value of the environment variable with the given key, or the fallback value if the variable is not set or empty.
func GetEnvDefault(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

// GetEnvFirst returns the first non-empty value among the given environment variables, or the fallback.
func GetEnvFirst(fallback string, keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return fallback
}

// GetEnvDuration parses the environment variable as a time.Duration, returning the fallback if unset.
func GetEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.Wrapf(err, "environment variable '%s' is not a valid duration", key)
	}

	return d, nil
}

// GetEnvInt parses the environment variable as an int, returning the fallback if unset.
func GetEnvInt(key string, fallback int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback, nil
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.Wrapf(err, "environment variable '%s' is not a valid integer", key)
	}

	return i, nil
}
