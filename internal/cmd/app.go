// Package cmd implements the inictl command-line interface.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"ini-lite/internal/config"
	"ini-lite/internal/ini"
	"ini-lite/internal/log"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Colour modes accepted by the output.color preference.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// App holds application state shared across commands.
type App struct {
	ConfigStore config.Store
	ConfigFile  string // path to the preferences file
	Log         zerolog.Logger
	Out         io.Writer
	Err         io.Writer
	JSON        bool   // output in JSON format
	Color       string // ColorAuto, ColorAlways or ColorNever; "" means auto
}

// colorEnabled reports whether w should receive ANSI colour codes.
func (a *App) colorEnabled(w io.Writer) bool {
	switch a.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SuccessColor returns the string wrapped in green ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) SuccessColor(s string) string {
	if a.colorEnabled(a.Out) {
		return "\033[32m" + s + "\033[0m"
	}
	return s
}

// WarnColor returns the string wrapped in orange ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) WarnColor(s string) string {
	if a.colorEnabled(a.Out) {
		return "\033[38;5;214m" + s + "\033[0m"
	}
	return s
}

// openINI parses the INI file at path. With create set, a missing file
// yields an empty File that will be created on Store.
func (a *App) openINI(path string, create bool) (*ini.File, error) {
	f := ini.New(ini.WithLogger(log.WithComponent(a.Log, "ini")))
	err := f.Parse(path)
	switch {
	case err == nil:
		return f, nil
	case create && errors.Is(err, fs.ErrNotExist):
		return f, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%s does not exist", path)
	default:
		return nil, err
	}
}

// sectionArg maps the command-line spelling of the unnamed section ("-")
// to its name.
func sectionArg(s string) string {
	if s == "-" {
		return ini.NullSectionName
	}
	return s
}

// sectionLabel renders a section name for humans.
func sectionLabel(name string) string {
	if name == ini.NullSectionName {
		return "(unnamed)"
	}
	return "[" + name + "]"
}
