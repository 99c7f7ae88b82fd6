package common

import (
	"encoding/json"
	"fmt"
)

// extractJsonKey parses a JSON string and extracts a specific key's value.
func extractJsonKey(jsonStr string, key string) (string, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", fmt.Errorf("failed to parse secret as JSON: %w", err)
	}

	val, ok := data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret JSON", key)
	}

	strVal, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("key %q in secret JSON is not a string", key)
	}

	return strVal, nil
}
