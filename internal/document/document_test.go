package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadSplitsLines(t *testing.T) {
	d := New()
	if err := d.Load(strings.NewReader("[a]\nx=1\n\n;y=2\n")); err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"[a]", "x=1", "", ";y=2"}
	if diff := cmp.Diff(want, d.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripIsByteIdentical(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"lf", "[a]\nx=1\n"},
		{"crlf", "[a]\r\nx=1\r\n\r\n"},
		{"no final newline", "[a]\nx=1"},
		{"bom", "\ufeff[a]\nx=1\n"},
		{"blank lines only", "\n\n"},
		{"empty", ""},
		{"trailing spaces", "  key = value   \n\t; note\n"},
		{"mixed endings", "a=1\r\nb=2\nc=3\r\n"},
		{"mixed endings lf first", "a=1\nb=2\r\nc=3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			if err := d.Load(strings.NewReader(tt.input)); err != nil {
				t.Fatalf("Load: %v", err)
			}
			var buf bytes.Buffer
			if _, err := d.WriteTo(&buf); err != nil {
				t.Fatalf("WriteTo: %v", err)
			}
			if got := buf.String(); got != tt.input {
				t.Errorf("round trip = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestCRLFLinesHaveNoCarriageReturn(t *testing.T) {
	d := New()
	if err := d.Load(strings.NewReader("a\r\nb\r\n")); err != nil {
		t.Fatal(err)
	}
	if d.EOL() != CRLF {
		t.Errorf("EOL() = %q, want %q", d.EOL(), CRLF)
	}
	if diff := cmp.Diff([]string{"a", "b"}, d.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestMixedEndingsSurviveEdits(t *testing.T) {
	d := New()
	if err := d.Load(strings.NewReader("a=1\r\nb=2\nc=3")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a=1", "b=2", "c=3"}, d.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}

	d.Set(1, "b=20")
	d.Insert(1, "x=9")
	d.Append("d=4")

	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	want := "a=1\r\nx=9\r\nb=20\nc=3\r\nd=4"
	if got := buf.String(); got != want {
		t.Errorf("WriteTo = %q, want %q", got, want)
	}
}

func TestInsertSetAppend(t *testing.T) {
	d := New()
	d.Append("a", "c")
	d.Insert(1, "b")
	d.Insert(3, "d")
	d.Set(0, "A")

	want := []string{"A", "b", "c", "d"}
	if diff := cmp.Diff(want, d.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if d.Len() != 4 {
		t.Errorf("Len() = %d, want 4", d.Len())
	}
	if d.Line(2) != "c" {
		t.Errorf("Line(2) = %q, want %q", d.Line(2), "c")
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	d := New()
	d.Append("a")

	lines := d.Lines()
	lines[0] = "changed"

	if d.Line(0) != "a" {
		t.Errorf("Line(0) = %q after mutating Lines() result, want %q", d.Line(0), "a")
	}
}

func TestReadResetsPreviousContent(t *testing.T) {
	d := New()
	d.Append("stale")
	if err := d.Load(strings.NewReader("fresh\n")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"fresh"}, d.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadMissingFile(t *testing.T) {
	d := New()
	err := d.Read(filepath.Join(t.TempDir(), "missing.ini"))
	if !os.IsNotExist(err) {
		t.Errorf("Read(missing) error = %v, want not-exist", err)
	}
}

func TestWriteFileAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ini")

	d := New()
	d.Append("[a]", "x=1")
	if err := d.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(raw); got != "[a]\nx=1\n" {
		t.Errorf("file contents = %q, want %q", got, "[a]\nx=1\n")
	}

	r := New()
	if err := r.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if r.Path() != path {
		t.Errorf("Path() = %q, want %q", r.Path(), path)
	}
	if diff := cmp.Diff(d.Lines(), r.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFileKeepsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private.ini")
	if err := os.WriteFile(path, []byte("x=1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	d := New()
	if err := d.Read(path); err != nil {
		t.Fatal(err)
	}
	d.Set(0, "x=2")
	if err := d.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 600", perm)
	}
}
