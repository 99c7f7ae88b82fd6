package common

import (
	"fmt"
	"time"
)

type HumanDuration struct {
	time.Duration
}

// MarshalYAML provides custom serialization of the duration to a human-readable string (e.g., "2m").
func (d HumanDuration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML parses a human-readable duration string back into `time.Duration`.
func (d *HumanDuration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsedDuration, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("failed to parse duration: %w", err)
	}
	d.Duration = parsedDuration
	return nil
}

// GetOrDefault returns the wrapped duration, or the fallback when unset.
func (d *HumanDuration) GetOrDefault(fallback time.Duration) time.Duration {
	if d == nil || d.Duration == 0 {
		return fallback
	}
	return d.Duration
}

// HumanDurationFor returns a HumanDuration for the given string. Used for testing. Will panic if the string is invalid.
func HumanDurationFor(h string) *HumanDuration {
	parsed, err := time.ParseDuration(h)
	if err != nil {
		panic(err)
	}
	return &HumanDuration{Duration: parsed}
}
