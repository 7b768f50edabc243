package config

import (
	"fmt"
	"sort"
	"strings"
)

// validValues maps known keys to their allowed values.
// An empty slice means any non-empty string is accepted.
var validValues = map[string][]string{
	KeyOutputJSON:   {"true", "false"},
	KeyOutputColor:  {"auto", "always", "never"},
	KeyLogLevel:     {"trace", "debug", "info", "warn", "error", "disabled"},
	KeyLogFormat:    {"console", "json"},
	KeyExportFormat: {"yaml", "toml", "json"},
}

// ValidationError lists every invalid preference value, sorted.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "config validation failed:\n  " + strings.Join(e.Issues, "\n  ")
}

// Validate checks all values in s for known keys. It returns an error
// describing every invalid value found, or nil if all values are valid.
// Unknown keys are accepted.
func Validate(s Store) error {
	all := s.All()
	var errs []string

	for key, allowed := range validValues {
		val, ok := all[key]
		if !ok {
			continue
		}
		if !contains(allowed, val) {
			errs = append(errs, fmt.Sprintf(
				"%s: invalid value %q (allowed: %s)",
				key, val, strings.Join(allowed, ", ")))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	sort.Strings(errs)
	return &ValidationError{Issues: errs}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
