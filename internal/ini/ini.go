package ini

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"ini-lite/internal/document"
	"ini-lite/internal/settings"

	"github.com/rs/zerolog"
)

const (
	DefaultFileExtension = ".ini"
	VariableDelimiter    = '='
	CommentDelimiter     = ';'
	NullSectionName      = ""
)

type section struct {
	name     string
	settings *settings.Settings
	keys     map[string]string // lowercased key -> stored spelling
}

func newSection(name string) *section {
	return &section{name: name, settings: settings.New(), keys: make(map[string]string)}
}

// canonical returns the stored spelling of key, ignoring case.
func (s *section) canonical(key string) (string, bool) {
	k, ok := s.keys[strings.ToLower(key)]
	return k, ok
}

// set stores value under the first spelling seen for key.
func (s *section) set(key, value string) string {
	id := strings.ToLower(key)
	if k, ok := s.keys[id]; ok {
		key = k
	} else {
		s.keys[id] = key
	}
	s.settings.Set(key, value)
	return key
}

func (s *section) remove(key string) {
	id := strings.ToLower(key)
	if k, ok := s.keys[id]; ok {
		s.settings.Remove(k)
		delete(s.keys, id)
	}
}

// span is the range of document lines owned by one section header. header
// is -1 for the unnamed section's implicit span before the first header;
// end is exclusive.
type span struct {
	header, end int
}

// File is an INI file held both as raw lines and as a section table. All
// mutations update both so that storing the file reproduces it with only
// the intended edit.
type File struct {
	mu       sync.RWMutex
	doc      *document.Document
	sections map[string]*section // keyed by lowercased name
	order    []string
	log      zerolog.Logger
}

// Option configures a File.
type Option func(*File)

// WithLogger sets the logger used for debug output of parses and edits.
func WithLogger(l zerolog.Logger) Option {
	return func(f *File) {
		f.log = l
	}
}

// New returns an empty File holding only the unnamed section.
func New(opts ...Option) *File {
	f := &File{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	f.clear()
	return f
}

func (f *File) clear() {
	f.doc = document.New()
	f.sections = make(map[string]*section)
	f.order = nil
	f.addSection(NullSectionName)
}

func (f *File) lookup(name string) *section {
	return f.sections[strings.ToLower(name)]
}

// addSection returns the section named name, creating it if needed.
func (f *File) addSection(name string) *section {
	id := strings.ToLower(name)
	if s, ok := f.sections[id]; ok {
		return s
	}
	s := newSection(name)
	f.sections[id] = s
	f.order = append(f.order, id)
	return s
}

// Parse clears the file and loads path. On error the file is left empty.
func (f *File) Parse(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clear()
	if err := f.doc.Read(path); err != nil {
		f.clear()
		return fmt.Errorf("reading ini file: %w", err)
	}
	return f.scan(path)
}

// ParseReader clears the file and loads r. name identifies r in errors.
func (f *File) ParseReader(name string, r io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clear()
	if err := f.doc.Load(r); err != nil {
		f.clear()
		return fmt.Errorf("reading ini %s: %w", name, err)
	}
	return f.scan(name)
}

func (f *File) scan(source string) error {
	cur := f.lookup(NullSectionName)
	for i := 0; i < f.doc.Len(); i++ {
		line := f.doc.Line(i)
		if isBlank(line) {
			continue
		}
		if name, ok := headerName(line); ok {
			cur = f.addSection(name)
			continue
		}
		key, value, ok := parseVariable(line)
		if !ok {
			f.clear()
			return &ParseError{Source: source, Line: i + 1, Text: line}
		}
		cur.set(key, value)
	}

	f.log.Debug().
		Str("source", source).
		Int("lines", f.doc.Len()).
		Int("sections", len(f.order)).
		Msg("parsed ini")
	return nil
}

// Path returns the path last passed to Parse, or "".
func (f *File) Path() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.doc.Path()
}

// Value returns the value of key in section and whether it is set. A blank
// section name means the unnamed section.
func (f *File) Value(section, key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	s := f.lookup(normalizeSection(section))
	if s == nil {
		return "", false
	}
	k, ok := s.canonical(strings.TrimSpace(key))
	if !ok {
		return "", false
	}
	return s.settings.Get(k)
}

// HasValue reports whether key is set to a non-blank value.
func (f *File) HasValue(section, key string) bool {
	v, ok := f.Value(section, key)
	return ok && strings.TrimSpace(v) != ""
}

// IsEnabled reports whether key is set to "true", ignoring case.
func (f *File) IsEnabled(section, key string) bool {
	v, ok := f.Value(section, key)
	return ok && strings.EqualFold(strings.TrimSpace(v), "true")
}

// SetEnabled sets key to "true" or "false".
func (f *File) SetEnabled(section, key string, enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return f.SetValue(section, key, value)
}

// SetValue sets key in section to value, editing the document minimally:
// a commented entry is re-enabled first, an existing line is rewritten in
// place keeping its trailing comment, a new key goes at the end of its
// section, and a new section is appended to the end of the file.
func (f *File) SetValue(section, key, value string) error {
	section, key = normalizeSection(section), strings.TrimSpace(key)
	if err := validate(section, key, value); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.uncomment(section, key)

	spans := f.spans(section)
	if len(spans) == 0 {
		f.addSection(section).set(key, value)
		f.doc.Append("["+section+"]", formatVariable(key, value))
		f.log.Debug().Str("section", section).Str("key", key).
			Int("line", f.doc.Len()).Msg("appended section")
		return nil
	}

	s := f.addSection(section)
	live := f.liveLines(spans, key)
	if len(live) == 0 {
		s.set(key, value)
		at := f.insertionPoint(spans[0])
		f.doc.Insert(at, formatVariable(key, value))
		f.log.Debug().Str("section", section).Str("key", key).
			Int("line", at+1).Msg("inserted variable")
		return nil
	}

	key = s.set(key, value)

	// Parsing lets the last duplicate win, so that is the line to rewrite.
	at := live[len(live)-1]
	f.doc.Set(at, rewrite(f.doc.Line(at), value))
	f.log.Debug().Str("section", section).Str("key", key).
		Int("line", at+1).Msg("rewrote variable")
	return nil
}

// rewrite replaces the value of a variable line, keeping its indentation,
// key spelling and trailing comment.
func rewrite(line, value string) string {
	rawKey, _, _ := splitVariable(line)
	out := leadingSpace(line) + formatVariable(rawKey, value)
	if c := commentText(line); c != "" {
		out += " " + string(CommentDelimiter) + " " + c
	}
	return out
}

// CommentVariable disables key by prefixing its line with the comment
// delimiter. The value leaves the table but its text stays in the document.
// It is a no-op if key is not set.
func (f *File) CommentVariable(section, key string) error {
	section, key = normalizeSection(section), strings.TrimSpace(key)
	if err := validateKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	live := f.liveLines(f.spans(section), key)
	if len(live) == 0 {
		return nil
	}
	for _, i := range live {
		f.doc.Set(i, string(CommentDelimiter)+strings.TrimSpace(f.doc.Line(i)))
	}
	if s := f.lookup(section); s != nil {
		s.remove(key)
	}
	f.log.Debug().Str("section", section).Str("key", key).
		Int("lines", len(live)).Msg("commented variable")
	return nil
}

// UncommentVariable re-enables the first commented line in section whose
// key matches. It is a no-op if the section does not exist, key is already
// set, or no commented line matches.
func (f *File) UncommentVariable(section, key string) error {
	section, key = normalizeSection(section), strings.TrimSpace(key)
	if err := validateKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.uncomment(section, key)
	return nil
}

func (f *File) uncomment(section, key string) bool {
	s := f.lookup(section)
	if s == nil {
		return false
	}
	spans := f.spans(section)
	if len(f.liveLines(spans, key)) > 0 {
		return false
	}
	for _, sp := range spans {
		for i := sp.header + 1; i < sp.end; i++ {
			line := strings.TrimSpace(f.doc.Line(i))
			if line == "" || line[0] != CommentDelimiter {
				continue
			}
			text := strings.TrimSpace(line[1:])
			k, v, ok := parseVariable(text)
			if !ok || !strings.EqualFold(k, key) {
				continue
			}
			f.doc.Set(i, text)
			k = s.set(k, v)
			f.log.Debug().Str("section", section).Str("key", k).
				Int("line", i+1).Msg("uncommented variable")
			return true
		}
	}
	return false
}

// spans returns every line range belonging to section, in document order.
func (f *File) spans(name string) []span {
	var out []span
	cur, start := NullSectionName, -1
	for i := 0; i < f.doc.Len(); i++ {
		h, ok := headerName(f.doc.Line(i))
		if !ok {
			continue
		}
		if strings.EqualFold(cur, name) {
			out = append(out, span{header: start, end: i})
		}
		cur, start = h, i
	}
	if strings.EqualFold(cur, name) {
		out = append(out, span{header: start, end: f.doc.Len()})
	}
	return out
}

// liveLines returns the indices of uncommented lines setting key.
func (f *File) liveLines(spans []span, key string) []int {
	var out []int
	for _, sp := range spans {
		for i := sp.header + 1; i < sp.end; i++ {
			line := f.doc.Line(i)
			if isBlank(line) {
				continue
			}
			if k, _, ok := parseVariable(line); ok && strings.EqualFold(k, key) {
				out = append(out, i)
			}
		}
	}
	return out
}

// insertionPoint returns the index just after the last non-whitespace line
// of sp, so trailing blank separators stay ahead of the next header.
func (f *File) insertionPoint(sp span) int {
	last := sp.header
	for i := sp.header + 1; i < sp.end; i++ {
		if strings.TrimSpace(f.doc.Line(i)) != "" {
			last = i
		}
	}
	return last + 1
}

// SectionSettings returns a copy of the settings of the named section.
func (f *File) SectionSettings(name string) (*settings.Settings, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	s := f.lookup(normalizeSection(name))
	if s == nil {
		return nil, false
	}
	return s.settings.Clone(), true
}

// Sections returns the section names in the order they were first seen.
// The unnamed section is always first.
func (f *File) Sections() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, len(f.order))
	for i, id := range f.order {
		names[i] = f.sections[id].name
	}
	return names
}

// Map returns a copy of the section table.
func (f *File) Map() map[string]map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make(map[string]map[string]string, len(f.order))
	for _, id := range f.order {
		s := f.sections[id]
		out[s.name] = s.settings.Map()
	}
	return out
}

// Lines returns a copy of the document's lines.
func (f *File) Lines() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.doc.Lines()
}

// WriteTo writes the document verbatim.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.doc.WriteTo(w)
}

// Store writes the document to path, atomically replacing any existing file.
func (f *File) Store(path string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.doc.WriteFile(path); err != nil {
		return fmt.Errorf("writing ini file: %w", err)
	}
	f.log.Debug().Str("path", path).Int("lines", f.doc.Len()).Msg("stored ini")
	return nil
}

// String renders the section table, not the document: each section as
// [name] followed by its indented key=value pairs.
func (f *File) String() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	eol := f.doc.EOL()
	var sb strings.Builder
	for _, id := range f.order {
		s := f.sections[id]
		sb.WriteString("[" + s.name + "]" + eol)
		for _, k := range s.settings.Keys() {
			v, _ := s.settings.Get(k)
			sb.WriteString("  " + k + string(VariableDelimiter) + v + eol)
		}
	}
	return sb.String()
}

// StoreSettings writes every key of s into section of the INI file at path,
// creating the file if it does not exist.
func StoreSettings(s *settings.Settings, section, path string, opts ...Option) error {
	f := New(opts...)
	if _, err := os.Stat(path); err == nil {
		if err := f.Parse(path); err != nil {
			return err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking ini file: %w", err)
	}

	for _, k := range s.Keys() {
		v, _ := s.Get(k)
		if err := f.SetValue(section, k, v); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}
	return f.Store(path)
}

func normalizeSection(name string) string {
	return strings.TrimSpace(name)
}

func validateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidArgument)
	case strings.ContainsAny(key, "=;\r\n"):
		return fmt.Errorf("%w: key %q cannot contain '=', ';' or line breaks", ErrInvalidArgument, key)
	case strings.HasPrefix(key, "["):
		return fmt.Errorf("%w: key %q cannot start with '['", ErrInvalidArgument, key)
	}
	return nil
}

func validate(section, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if strings.ContainsAny(section, "[];\r\n") {
		return fmt.Errorf("%w: section %q cannot contain brackets, ';' or line breaks", ErrInvalidArgument, section)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: value for %q cannot contain line breaks", ErrInvalidArgument, key)
	}
	return nil
}
