// Package document stores a plain text file in memory as an ordered list of
// lines and writes it back unchanged apart from the edits made to it.
//
// Index i of a Document is physical line i+1 of the backing file. Reading
// records the terminator (LF or CRLF) of every line, whether the file ended
// with a terminator, and a leading UTF-8 byte order mark, so a file that is
// read and written without edits comes back byte for byte. Added lines use
// the terminator of the file's first line.
package document

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/google/renameio/v2"
)

const bom = "\ufeff"

// Line terminators recognised when reading.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// Document is an ordered, mutable sequence of text lines.
// Index arguments out of range panic, as slice indexing does.
type Document struct {
	path     string
	lines    []string
	ends     []string // terminator of each line
	eol      string   // terminator for added lines
	finalEOL bool
	bom      bool
}

// New returns an empty document that writes LF-terminated lines.
func New() *Document {
	return &Document{eol: LF, finalEOL: true}
}

// Read clears the document and loads the file at path.
func (d *Document) Read(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := d.Load(f); err != nil {
		return err
	}
	d.path = path
	return nil
}

// Load clears the document and loads all lines from r.
func (d *Document) Load(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.Reset()

	data := string(raw)
	if strings.HasPrefix(data, bom) {
		d.bom = true
		data = data[len(bom):]
	}
	if data == "" {
		return nil
	}

	if i := strings.IndexByte(data, '\n'); i > 0 && data[i-1] == '\r' {
		d.eol = CRLF
	}

	lines := strings.Split(data, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		d.finalEOL = false
	}
	ends := make([]string, len(lines))
	for i, l := range lines {
		ends[i] = LF
		switch {
		case i == len(lines)-1 && !d.finalEOL:
			ends[i] = d.eol
		case strings.HasSuffix(l, "\r"):
			lines[i] = l[:len(l)-1]
			ends[i] = CRLF
		}
	}
	d.lines, d.ends = lines, ends
	return nil
}

// Reset removes all lines and restores the default terminator settings.
func (d *Document) Reset() {
	d.path = ""
	d.lines = nil
	d.ends = nil
	d.eol = LF
	d.finalEOL = true
	d.bom = false
}

// Path returns the file last loaded by Read, or "".
func (d *Document) Path() string {
	return d.path
}

// EOL returns the line terminator used for added lines.
func (d *Document) EOL() string {
	return d.eol
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns line i.
func (d *Document) Line(i int) string {
	return d.lines[i]
}

// Lines returns a copy of all lines.
func (d *Document) Lines() []string {
	return slices.Clone(d.lines)
}

// Set replaces line i.
func (d *Document) Set(i int, line string) {
	d.lines[i] = line
}

// Insert places line at index i, shifting later lines down. i may equal Len.
func (d *Document) Insert(i int, line string) {
	d.lines = slices.Insert(d.lines, i, line)
	d.ends = slices.Insert(d.ends, i, d.eol)
}

// Append adds lines to the end of the document.
func (d *Document) Append(lines ...string) {
	d.lines = append(d.lines, lines...)
	for range lines {
		d.ends = append(d.ends, d.eol)
	}
}

// WriteTo writes every line followed by its terminator. The final
// terminator is omitted when the source file had none.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	if d.bom {
		sb.WriteString(bom)
	}
	for i, l := range d.lines {
		sb.WriteString(l)
		if i < len(d.lines)-1 || d.finalEOL {
			sb.WriteString(d.ends[i])
		}
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// WriteFile atomically replaces the file at path with the document's
// contents, keeping the permissions of an existing file.
func (d *Document) WriteFile(path string) error {
	pending, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := d.WriteTo(pending); err != nil {
		return fmt.Errorf("write lines: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
