package config

import "strings"

// Store provides key-value access to inictl preferences.
// Keys are dotted "section.key" strings; the part before the first dot
// names the INI section and a key without a dot lives in the unnamed
// section.
type Store interface {
	// Get returns the value for key and whether it was found.
	Get(key string) (string, bool)

	// Set writes key=value to the store and persists to disk.
	Set(key, value string) error

	// SetInMemory writes key=value to the in-memory store without persisting.
	// Use this for runtime overrides (defaults, env vars, flags) that should
	// not be written back to the preferences file.
	SetInMemory(key, value string)

	// Unset disables key and persists to disk. The line is commented out
	// rather than deleted so it can be restored by hand.
	Unset(key string) error

	// All returns a copy of all key-value pairs.
	All() map[string]string
}

// SplitKey splits a dotted key into its INI section and key.
func SplitKey(dotted string) (section, key string) {
	if i := strings.IndexByte(dotted, '.'); i >= 0 {
		return dotted[:i], dotted[i+1:]
	}
	return "", dotted
}

// JoinKey is the inverse of SplitKey.
func JoinKey(section, key string) string {
	if section == "" {
		return key
	}
	return section + "." + key
}
