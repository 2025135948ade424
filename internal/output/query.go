package output

import "strings"

// NormalizeQuery removes shell-escaped "\!" outside string literals.
//
// The returned bool reports whether anything changed, so the caller can
// warn about shell escaping.
func NormalizeQuery(query string) (string, bool) {
	if !strings.Contains(query, `\!`) {
		return query, false
	}

	var b strings.Builder
	b.Grow(len(query))

	inString := false
	escaped := false
	changed := false

	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case inString && escaped:
			escaped = false
		case inString && ch == '\\':
			escaped = true
		case inString && ch == '"':
			inString = false
		case !inString && ch == '"':
			inString = true
		case !inString && ch == '\\' && i+1 < len(query) && query[i+1] == '!':
			changed = true
			i++
			ch = '!'
		}
		b.WriteByte(ch)
	}

	if !changed {
		return query, false
	}
	return b.String(), true
}
