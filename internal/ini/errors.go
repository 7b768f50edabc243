package ini

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("ini parse error")

	// ErrInvalidArgument is returned when a mutator is given a key, value or
	// section name that cannot be written as a single well-formed line.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ParseError reports a variable line with no parseable key.
type ParseError struct {
	Source string // path or reader name
	Line   int    // 1-based
	Text   string // raw line
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: missing key or '=' in %q", e.Source, e.Line, e.Text)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}
