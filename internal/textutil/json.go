package textutil

import "strings"

// SanitizeJSON escapes raw newlines, carriage returns and tabs that appear
// inside JSON string literals. LLMs often emit multi-line prose without
// escaping it, which encoding/json rejects.
func SanitizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inString:
			escaped = true
		case r == '"':
			inString = !inString
		case inString && r == '\n':
			b.WriteString(`\n`)
			continue
		case inString && r == '\r':
			b.WriteString(`\r`)
			continue
		case inString && r == '\t':
			b.WriteString(`\t`)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
