package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the preferences file name inside the config directory.
const FileName = "config.ini"

// Paths captures resolved locations for config.
type Paths struct {
	ConfigDir  string // directory holding the preferences file
	ConfigFile string // path to config.ini
}

// ResolvePaths resolves the preferences file location.
// Discovery order: explicit path > INICTL_CONFIG env var > the user config
// directory ($XDG_CONFIG_HOME/inictl or its platform equivalent).
// The file does not need to exist.
func ResolvePaths(explicit string) (Paths, error) {
	if explicit != "" {
		return pathsForFile(explicit)
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return pathsForFile(env)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("cannot locate user config directory: %w", err)
	}
	dir := filepath.Join(base, "inictl")
	return Paths{
		ConfigDir:  dir,
		ConfigFile: filepath.Join(dir, FileName),
	}, nil
}

func pathsForFile(path string) (Paths, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Paths{}, fmt.Errorf("resolving path: %w", err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return Paths{ConfigDir: abs, ConfigFile: filepath.Join(abs, FileName)}, nil
	}
	return Paths{ConfigDir: filepath.Dir(abs), ConfigFile: abs}, nil
}
