package config

import (
	"os"
	"strings"
)

// Environment variable names for inictl configuration.
const (
	EnvConfig   = "INICTL_CONFIG"    // Path to the preferences file
	EnvJSON     = "INICTL_JSON"      // Enable JSON output ("1" or "true")
	EnvLogLevel = "INICTL_LOG_LEVEL" // Override log.level
)

// ApplyEnvOverrides checks INICTL_JSON and INICTL_LOG_LEVEL and overrides
// the corresponding values in memory.
// These overrides are not persisted to the preferences file.
func ApplyEnvOverrides(s Store) {
	if v := os.Getenv(EnvJSON); v != "" {
		s.SetInMemory(KeyOutputJSON, boolString(v == "1" || strings.EqualFold(v, "true")))
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		s.SetInMemory(KeyLogLevel, level)
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
