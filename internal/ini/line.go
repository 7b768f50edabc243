package ini

import (
	"strings"
)

var (
	unescaper = strings.NewReplacer(`\`+string(CommentDelimiter), string(CommentDelimiter),
		`\`+string(VariableDelimiter), string(VariableDelimiter))
	// A backslash already before '=' is doubled so unescaping restores it.
	valueEscaper = strings.NewReplacer(string(CommentDelimiter), `\`+string(CommentDelimiter),
		`\`+string(VariableDelimiter), `\\`+string(VariableDelimiter))
)

// indexUnescaped returns the index of the first c in s that is not preceded
// by a backslash escape, or -1.
func indexUnescaped(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && (s[i+1] == CommentDelimiter || s[i+1] == VariableDelimiter):
			i++
		case s[i] == c:
			return i
		}
	}
	return -1
}

// stripComment returns line up to its first unescaped comment delimiter.
func stripComment(line string) string {
	if i := indexUnescaped(line, CommentDelimiter); i >= 0 {
		return line[:i]
	}
	return line
}

// commentText returns the trimmed text after the first unescaped comment
// delimiter.
func commentText(line string) string {
	if i := indexUnescaped(line, CommentDelimiter); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return ""
}

// isBlank reports whether line carries no data: empty, whitespace, or a
// comment only.
func isBlank(line string) bool {
	return strings.TrimSpace(stripComment(line)) == ""
}

// headerName returns the section name if line is a section header.
func headerName(line string) (string, bool) {
	t := strings.TrimSpace(stripComment(line))
	if len(t) < 3 || t[0] != '[' || t[len(t)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(t[1 : len(t)-1]), true
}

// splitVariable splits a variable line into its raw key text and its
// unescaped value. ok is false when there is no delimiter or the key is
// empty.
func splitVariable(line string) (rawKey, value string, ok bool) {
	body := stripComment(line)
	i := indexUnescaped(body, VariableDelimiter)
	if i < 0 {
		return "", "", false
	}
	rawKey = strings.TrimSpace(body[:i])
	if rawKey == "" {
		return "", "", false
	}
	return rawKey, unescaper.Replace(strings.TrimSpace(body[i+1:])), true
}

// parseVariable is splitVariable with the key unescaped.
func parseVariable(line string) (key, value string, ok bool) {
	rawKey, value, ok := splitVariable(line)
	if !ok {
		return "", "", false
	}
	return unescaper.Replace(rawKey), value, true
}

// leadingSpace returns the run of spaces and tabs that starts line.
func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func formatVariable(key, value string) string {
	return key + string(VariableDelimiter) + valueEscaper.Replace(value)
}
