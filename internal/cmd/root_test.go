package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ini-lite/internal/config"
)

func TestAppProvider_Get(t *testing.T) {
	t.Setenv(config.EnvJSON, "")
	t.Setenv(config.EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "config.ini")

	var out, errOut bytes.Buffer
	provider := &AppProvider{
		ConfigPath: path,
		JSONOutput: true,
		Out:        &out,
		Err:        &errOut,
	}

	app, err := provider.Get()
	if err != nil {
		t.Fatalf("provider.Get() error: %v", err)
	}

	if app.ConfigStore == nil {
		t.Error("App.ConfigStore should not be nil")
	}
	if app.ConfigFile != path {
		t.Errorf("App.ConfigFile = %q, want %q", app.ConfigFile, path)
	}
	if app.Out != &out {
		t.Error("App.Out not set correctly")
	}
	if app.Err != &errOut {
		t.Error("App.Err not set correctly")
	}
	if !app.JSON {
		t.Error("App.JSON should be true")
	}
	if app.Color != ColorAuto {
		t.Errorf("App.Color = %q, want default %q", app.Color, ColorAuto)
	}

	// Second call should return same app (lazy init)
	app2, err := provider.Get()
	if err != nil {
		t.Fatalf("second provider.Get() error: %v", err)
	}
	if app2 != app {
		t.Error("provider.Get() should return same app on second call")
	}

	// Defaults and flags live in memory only.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("provider.Get() wrote the preferences file")
	}
}

func TestAppProvider_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	content := "[output]\njson=true\ncolor=never\n[log]\nlevel=error\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvJSON, "0")
	t.Setenv(config.EnvLogLevel, "info")

	provider := &AppProvider{
		ConfigPath: path,
		LogLevel:   "debug",
		Out:        &bytes.Buffer{},
		Err:        &bytes.Buffer{},
	}
	app, err := provider.Get()
	if err != nil {
		t.Fatalf("provider.Get() error: %v", err)
	}

	// File says json=true, env says 0, no --json flag.
	if app.JSON {
		t.Error("App.JSON = true, want env override false")
	}
	// File value with no override.
	if app.Color != ColorNever {
		t.Errorf("App.Color = %q, want %q", app.Color, ColorNever)
	}
	// Flag beats env beats file.
	if v, _ := app.ConfigStore.Get(config.KeyLogLevel); v != "debug" {
		t.Errorf("log.level = %q, want %q", v, "debug")
	}
	if v, _ := app.ConfigStore.Get(config.KeyExportFormat); v != "yaml" {
		t.Errorf("export.format = %q, want default %q", v, "yaml")
	}
}

func TestAppProvider_Get_JSONLogs(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte("[log]\nlevel=debug\nformat=json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var errOut bytes.Buffer
	provider := &AppProvider{ConfigPath: path, Out: &bytes.Buffer{}, Err: &errOut}

	app, err := provider.Get()
	if err != nil {
		t.Fatalf("provider.Get() error: %v", err)
	}
	if !strings.HasPrefix(errOut.String(), "{") || !strings.Contains(errOut.String(), `"message":"loaded preferences"`) {
		t.Errorf("stderr = %q, want JSON log lines", errOut.String())
	}

	file := writeINI(t, "[a]\nx=1\n")
	if _, err := app.openINI(file, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut.String(), `"component":"ini"`) {
		t.Errorf("stderr = %q, want ini component entries", errOut.String())
	}
}

func TestAppProvider_Get_InvalidLogLevel(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	provider := &AppProvider{
		ConfigPath: filepath.Join(t.TempDir(), "config.ini"),
		LogLevel:   "chatty",
		Out:        &bytes.Buffer{},
		Err:        &bytes.Buffer{},
	}

	if _, err := provider.Get(); err == nil {
		t.Error("provider.Get() with invalid log level should return error")
	}
}

func TestAppProvider_Get_BrokenPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte("[output]\nnonsense\n"), 0644); err != nil {
		t.Fatal(err)
	}
	provider := &AppProvider{ConfigPath: path}

	_, err := provider.Get()
	if err == nil || !strings.Contains(err.Error(), "config.ini:2") {
		t.Errorf("provider.Get() error = %v, want parse error at config.ini:2", err)
	}
}

func TestNewTestProvider(t *testing.T) {
	var out bytes.Buffer
	app := &App{
		Out:  &out,
		JSON: true,
	}

	provider := NewTestProvider(app)
	gotApp, err := provider.Get()
	if err != nil {
		t.Fatalf("NewTestProvider().Get() error: %v", err)
	}
	if gotApp != app {
		t.Error("NewTestProvider should return the provided app")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd(&AppProvider{})

	want := []string{
		"get", "set", "enable", "disable", "comment", "uncomment",
		"sections", "show", "export", "import", "watch", "config", "version",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCmd_EndToEnd(t *testing.T) {
	t.Setenv(config.EnvJSON, "")
	t.Setenv(config.EnvLogLevel, "")
	dir := t.TempDir()
	file := filepath.Join(dir, "app.ini")
	prefs := filepath.Join(dir, "config.ini")

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		provider := &AppProvider{Out: &out, Err: &bytes.Buffer{}}
		root := newRootCmd(provider)
		root.SetArgs(append([]string{"--config", prefs}, args...))
		if err := root.Execute(); err != nil {
			t.Fatalf("inictl %v: %v", args, err)
		}
		return out.String()
	}

	run("set", file, "a", "x", "1")
	run("set", file, "a", "y", "2")
	run("comment", file, "a", "y")
	if got := run("get", file, "a", "y"); got != "y (not set)\n" {
		t.Errorf("get after comment = %q, want %q", got, "y (not set)\n")
	}
	run("uncomment", file, "a", "y")
	if got := run("get", file, "a", "y"); got != "2\n" {
		t.Errorf("get after uncomment = %q, want %q", got, "2\n")
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if want := "[a]\nx=1\ny=2\n"; string(raw) != want {
		t.Errorf("file = %q, want %q", string(raw), want)
	}
}
