// Package inistore implements config.Store backed by an INI file.
//
// Dotted keys map onto sections: "output.json" is key "json" in section
// [output], and a key without a dot lives in the unnamed section at the top
// of the file. Edits go through package ini, so hand-written comments and
// ordering in the preferences file survive every Set and Unset.
package inistore

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"syscall"

	"ini-lite/internal/config"
	"ini-lite/internal/ini"
)

// Store implements config.Store using an INI file on disk.
type Store struct {
	path      string
	opts      []ini.Option
	file      *ini.File
	overrides map[string]string
}

// New creates a Store that reads from and writes to path.
// If the file exists it is loaded; if it does not exist the store
// starts empty and the file is created on the first Set call.
func New(path string, opts ...ini.Option) (*Store, error) {
	s := &Store{
		path:      path,
		opts:      opts,
		overrides: make(map[string]string),
	}
	f, err := s.readFromDisk()
	if err != nil {
		return nil, err
	}
	s.file = f
	return s, nil
}

// Path returns the preferences file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for key and whether it was found. In-memory
// overrides win over the file.
func (s *Store) Get(key string) (string, bool) {
	if v, ok := s.overrides[key]; ok {
		return v, true
	}
	section, k := config.SplitKey(key)
	return s.file.Value(section, k)
}

// Set writes key=value and persists to disk. Any in-memory override of key
// is dropped so the stored value is visible.
func (s *Store) Set(key, value string) error {
	section, k := config.SplitKey(key)
	if err := s.withLock(func(f *ini.File) error {
		return f.SetValue(section, k, value)
	}); err != nil {
		return err
	}
	delete(s.overrides, key)
	return nil
}

// SetInMemory writes key=value to the in-memory store without persisting.
func (s *Store) SetInMemory(key, value string) {
	s.overrides[key] = value
}

// Unset comments key out and persists to disk.
func (s *Store) Unset(key string) error {
	section, k := config.SplitKey(key)
	if err := s.withLock(func(f *ini.File) error {
		return f.CommentVariable(section, k)
	}); err != nil {
		return err
	}
	delete(s.overrides, key)
	return nil
}

// All returns a copy of all key-value pairs, overrides included.
func (s *Store) All() map[string]string {
	out := make(map[string]string)
	for section, kv := range s.file.Map() {
		for k, v := range kv {
			out[config.JoinKey(section, k)] = v
		}
	}
	maps.Copy(out, s.overrides)
	return out
}

// lockPath returns the path to the lock file used for flock-based coordination.
func (s *Store) lockPath() string {
	return s.path + ".lock"
}

// withLock acquires an exclusive file lock, re-reads the file from disk
// (picking up writes from other processes), calls fn to edit it, then
// atomically writes it back.
func (s *Store) withLock(fn func(*ini.File) error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("opening config lock: %w", err)
	}
	defer lock.Close()

	if err := syscall.Flock(int(lock.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquiring config lock: %w", err)
	}
	defer syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)

	f, err := s.readFromDisk()
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		return err
	}
	if err := f.Store(s.path); err != nil {
		return err
	}
	s.file = f
	return nil
}

// readFromDisk parses the preferences file, returning an empty file if it
// does not exist yet.
func (s *Store) readFromDisk() (*ini.File, error) {
	f := ini.New(s.opts...)
	if err := f.Parse(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return f, nil
}

// Compile-time check that Store implements config.Store.
var _ config.Store = (*Store)(nil)
