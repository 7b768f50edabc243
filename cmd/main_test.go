package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the binary once for all tests in this package.
var testBinary string

func TestMain(m *testing.M) {
	// Build the binary to a temp location
	tmpDir, err := os.MkdirTemp("", "inictl-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	testBinary = filepath.Join(tmpDir, "inictl")
	cmd := exec.Command("go", "build", "-o", testBinary, ".")
	cmd.Dir = "."
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("failed to build test binary: " + string(out))
	}

	os.Exit(m.Run())
}

// runInictl runs the binary in dir with a private preferences file.
func runInictl(t *testing.T, dir string, env []string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(testBinary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"INICTL_CONFIG="+filepath.Join(dir, "prefs.ini"),
		"INICTL_JSON=",
		"INICTL_LOG_LEVEL=",
	)
	cmd.Env = append(cmd.Env, env...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	exitCode = 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("failed to run inictl: %v", err)
	}

	return outBuf.String(), errBuf.String(), exitCode
}

func TestMain_RunError(t *testing.T) {
	origRun := run
	origExit := osExit
	defer func() {
		run = origRun
		osExit = origExit
	}()

	var gotCode int
	osExit = func(code int) { gotCode = code }
	run = func() error { return fmt.Errorf("something went wrong") }

	// Capture stderr
	origStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	main()

	w.Close()
	os.Stderr = origStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)

	if gotCode != 1 {
		t.Errorf("expected exit code 1, got %d", gotCode)
	}
	if !strings.Contains(buf.String(), "something went wrong") {
		t.Errorf("expected error on stderr, got: %s", buf.String())
	}
}

func TestMain_RunSuccess(t *testing.T) {
	origRun := run
	origExit := osExit
	defer func() {
		run = origRun
		osExit = origExit
	}()

	var gotCode int = -1
	osExit = func(code int) { gotCode = code }
	run = func() error { return nil }

	main()

	if gotCode != -1 {
		t.Errorf("expected osExit not to be called, but got code %d", gotCode)
	}
}

func TestHelp(t *testing.T) {
	stdout, _, exitCode := runInictl(t, t.TempDir(), nil, "--help")

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(stdout, "inictl reads and edits INI") {
		t.Errorf("expected help to describe inictl, got: %s", stdout)
	}
	for _, name := range []string{"get", "set", "comment", "uncomment", "export", "import", "watch", "config"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("expected command %q to be listed in help output", name)
		}
	}
}

func TestVersion(t *testing.T) {
	stdout, _, exitCode := runInictl(t, t.TempDir(), nil, "version")
	if exitCode != 0 {
		t.Fatalf("version exit code %d", exitCode)
	}
	if !strings.HasPrefix(stdout, "inictl version ") {
		t.Errorf("version output = %q", stdout)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, stderr, exitCode := runInictl(t, t.TempDir(), nil, "nonexistent-command")

	if exitCode == 0 {
		t.Error("expected non-zero exit code for unknown command")
	}
	if !strings.Contains(stderr, "unknown command") {
		t.Errorf("expected error about unknown command, got: %s", stderr)
	}
}

func TestWorkflow(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.ini")
	original := "; demo\n[a]\nx=1 ; first\n\n[b]\nz=3\n"
	if err := os.WriteFile(file, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	steps := [][]string{
		{"set", file, "a", "y", "2"},
		{"comment", file, "a", "y"},
		{"uncomment", file, "a", "y"},
		{"set", file, "a", "x", "10"},
	}
	for _, args := range steps {
		if _, stderr, code := runInictl(t, dir, nil, args...); code != 0 {
			t.Fatalf("inictl %v failed (exit %d): %s", args, code, stderr)
		}
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	want := "; demo\n[a]\nx=10 ; first\ny=2\n\n[b]\nz=3\n"
	if string(raw) != want {
		t.Errorf("file = %q, want %q", string(raw), want)
	}

	stdout, _, _ := runInictl(t, dir, nil, "get", file, "A", "Y")
	if stdout != "2\n" {
		t.Errorf("get = %q, want %q", stdout, "2\n")
	}
}

func TestJSONEnvVar(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.ini")
	if err := os.WriteFile(file, []byte("[a]\nx=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, exitCode := runInictl(t, dir, []string{"INICTL_JSON=1"}, "get", file, "a", "x")
	if exitCode != 0 {
		t.Fatalf("get with INICTL_JSON=1 failed (exit %d)", exitCode)
	}
	if !strings.HasPrefix(strings.TrimSpace(stdout), "{") || !strings.Contains(stdout, `"value":"1"`) {
		t.Errorf("expected JSON output, got: %s", stdout)
	}
}

func TestPreferencesAffectExport(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.ini")
	if err := os.WriteFile(file, []byte("[a]\nx=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, stderr, code := runInictl(t, dir, nil, "config", "set", "export.format", "json"); code != 0 {
		t.Fatalf("config set failed: %s", stderr)
	}
	stdout, _, code := runInictl(t, dir, nil, "export", file)
	if code != 0 {
		t.Fatalf("export failed (exit %d)", code)
	}
	if !strings.Contains(stdout, `"x": "1"`) {
		t.Errorf("export output = %q, want JSON", stdout)
	}
}
