// Package settings provides a flat, case-sensitive key/value bag used as
// the value type of INI sections and as an import/export surface.
package settings

import (
	"sort"
	"strings"
)

// Settings maps string keys to string values. The zero value is not usable;
// call New, FromMap or Clone.
type Settings struct {
	data map[string]string
}

// New returns an empty Settings.
func New() *Settings {
	return &Settings{data: make(map[string]string)}
}

// FromMap returns a Settings holding a copy of m.
func FromMap(m map[string]string) *Settings {
	s := &Settings{data: make(map[string]string, len(m))}
	for k, v := range m {
		s.data[k] = v
	}
	return s
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	return FromMap(s.data)
}

// Set stores value under key, replacing any previous value.
func (s *Settings) Set(key, value string) {
	s.data[key] = value
}

// Get returns the value for key and whether it was found.
func (s *Settings) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

// Remove deletes key and returns the previous value, if any.
func (s *Settings) Remove(key string) (string, bool) {
	v, ok := s.data[key]
	if ok {
		delete(s.data, key)
	}
	return v, ok
}

// ContainsKey reports whether key is present.
func (s *Settings) ContainsKey(key string) bool {
	_, ok := s.data[key]
	return ok
}

// HasValue reports whether key is present with a non-blank value.
func (s *Settings) HasValue(key string) bool {
	v, ok := s.data[key]
	return ok && strings.TrimSpace(v) != ""
}

// Keys returns all keys in sorted order.
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys.
func (s *Settings) Len() int {
	return len(s.data)
}

// Map returns a copy of all key/value pairs.
func (s *Settings) Map() map[string]string {
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}
