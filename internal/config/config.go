package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/evanw/propmangle/internal/helpers"
	"gopkg.in/yaml.v3"
)

// RenameConfig maps an original property name to the replacement that every
// occurrence of it must use. It is immutable once constructed.
type RenameConfig struct {
	renames map[string]string
}

// InvalidConfigurationError is returned when the replacement for a property
// is not a string.
type InvalidConfigurationError struct {
	Key   string
	Value interface{}
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("New name for property %s should be a string", helpers.QuoteForJSON(e.Key))
}

// NewRenameConfig validates untyped input such as a decoded JSON object.
// Keys are checked in sorted order so the reported key is deterministic.
func NewRenameConfig(values map[string]interface{}) (RenameConfig, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	renames := make(map[string]string, len(values))
	for _, key := range keys {
		value, ok := values[key].(string)
		if !ok {
			return RenameConfig{}, &InvalidConfigurationError{Key: key, Value: values[key]}
		}
		renames[key] = value
	}
	return RenameConfig{renames: renames}, nil
}

func RenameConfigFromStrings(values map[string]string) RenameConfig {
	renames := make(map[string]string, len(values))
	for key, value := range values {
		renames[key] = value
	}
	return RenameConfig{renames: renames}
}

func (c RenameConfig) Len() int {
	return len(c.renames)
}

func (c RenameConfig) Get(name string) (string, bool) {
	value, ok := c.renames[name]
	return value, ok
}

// SortedKeys returns the original names in a stable order
func (c RenameConfig) SortedKeys() []string {
	keys := make([]string, 0, len(c.renames))
	for key := range c.renames {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a new configuration where entries from "other" replace
// entries with the same original name.
func (c RenameConfig) Merge(other RenameConfig) RenameConfig {
	renames := make(map[string]string, len(c.renames)+len(other.renames))
	for key, value := range c.renames {
		renames[key] = value
	}
	for key, value := range other.renames {
		renames[key] = value
	}
	return RenameConfig{renames: renames}
}

// LoadRenameConfig reads a file containing a single object of renames. Both
// YAML and JSON are accepted since JSON is also valid YAML.
func LoadRenameConfig(path string) (RenameConfig, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return RenameConfig{}, fmt.Errorf("Failed to read rename file %q: %w", path, err)
	}
	return ParseRenameConfig(path, contents)
}

func ParseRenameConfig(path string, contents []byte) (RenameConfig, error) {
	values := map[string]interface{}{}
	if err := yaml.Unmarshal(contents, &values); err != nil {
		return RenameConfig{}, fmt.Errorf("Failed to parse rename file %q: %w", path, err)
	}
	return NewRenameConfig(values)
}
