// Package xmlentity escapes and unescapes the XML character entities.
package xmlentity

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Error reports an entity reference that could not be decoded.
// Entity holds the offending fragment as it appeared in the input,
// including the leading '&' and, when present, the terminating ';'.
type Error struct {
	Entity string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invalid entity %q", e.Entity)
}

// Escape replaces '&', '<', '>', '\'' and '"' with their named entities.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '\'':
			sb.WriteString("&apos;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Unescape expands all entity references in s.
// It recognizes the five named XML entities and decimal ("&#38;") or
// hexadecimal ("&#x26;") character references. The first reference that
// cannot be decoded is returned as *Error.
func Unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '&') {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))

	parts := strings.Split(s, "&")
	sb.WriteString(parts[0])

	for _, part := range parts[1:] {
		idx := strings.IndexByte(part, ';')
		if idx < 0 {
			return "", &Error{Entity: "&" + part}
		}
		ent := part[:idx]
		switch ent {
		case "quot":
			sb.WriteByte('"')
		case "apos":
			sb.WriteByte('\'')
		case "gt":
			sb.WriteByte('>')
		case "lt":
			sb.WriteByte('<')
		case "amp":
			sb.WriteByte('&')
		default:
			r, ok := decodeCharRef(ent)
			if !ok {
				return "", &Error{Entity: "&" + ent + ";"}
			}
			sb.WriteRune(r)
		}
		sb.WriteString(part[idx+1:])
	}
	return sb.String(), nil
}

// decodeCharRef decodes a numeric character reference body such as
// "#38" or "#x26" into a Unicode scalar value.
func decodeCharRef(ent string) (rune, bool) {
	var digits string
	base := 10
	switch {
	case strings.HasPrefix(ent, "#x"):
		digits = ent[2:]
		base = 16
	case strings.HasPrefix(ent, "#"):
		digits = ent[1:]
	default:
		return 0, false
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, false
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}
