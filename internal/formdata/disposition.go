package formdata

import (
	"strings"
	"unicode/utf8"

	"github.com/indigo-web/multiform/internal/strutil"
)

// dispositionName extracts the name parameter of the Content-Disposition value. The value is
// either a quoted-string or a token (RFC 2616 section 19.5.1).
func dispositionName(value string) (name string, found bool) {
	return findParam(value, "name=", func(rest string) (string, bool) {
		if len(rest) > 0 && rest[0] == '"' {
			if end := strings.IndexByte(rest[1:], '"'); end != -1 {
				return rest[1 : end+1], true
			}
		}

		if n := strutil.TokenLen(rest); n > 0 {
			return rest[:n], true
		}

		return "", false
	})
}

// dispositionFilename extracts the filename parameter of the Content-Disposition value. Unlike
// the name, the filename must be the last parameter or be followed by a semicolon and a
// whitespace. The quoted value is the shortest one satisfying this and it must not span
// across lines.
func dispositionFilename(value string) (filename string, found bool) {
	return findParam(value, "filename=", func(rest string) (string, bool) {
		if len(rest) > 0 && rest[0] == '"' {
			for i, char := range rest[1:] {
				switch char {
				case '\n', '\r', '\u2028', '\u2029':
					return "", false
				case '"':
					if paramEnds(rest[i+2:]) {
						return rest[1 : i+1], true
					}
				}
			}

			return "", false
		}

		if n := strutil.TokenLen(rest); n > 0 && paramEnds(rest[n:]) {
			return rest[:n], true
		}

		return "", false
	})
}

// findParam looks for the first occurrence of the key, which isn't a continuation of a
// longer word and is followed by a value accepted by the match function.
func findParam(value, key string, match func(rest string) (string, bool)) (string, bool) {
	for offset := 0; ; {
		pos := strutil.IndexFold(value, key, offset)
		if pos == -1 {
			return "", false
		}

		offset = pos + 1
		if pos > 0 && strutil.IsWordChar(value[pos-1]) {
			continue
		}

		if param, ok := match(value[pos+len(key):]); ok {
			return param, true
		}
	}
}

func paramEnds(rest string) bool {
	if len(rest) == 0 {
		return true
	}

	if rest[0] != ';' {
		return false
	}

	char, size := utf8.DecodeRuneInString(rest[1:])
	return size > 0 && strutil.IsSpace(char)
}

// cleanFilename strips the path a browser might've left in the filename and reverts the
// escaping browsers apply to quotes and to characters not representable in the body's
// charset.
func cleanFilename(filename string) string {
	filename = filename[strings.LastIndexByte(filename, '\\')+1:]
	filename = strings.ReplaceAll(filename, "%22", `"`)

	return decodeCharRefs(filename)
}

// decodeCharRefs replaces numeric character references of exactly four decimal digits, e.g.
// &#1046;, by the characters they refer to.
func decodeCharRefs(str string) string {
	const refLen = len("&#0000;")

	pos := strings.Index(str, "&#")
	if pos == -1 {
		return str
	}

	var b strings.Builder
	b.Grow(len(str))

	for pos != -1 {
		b.WriteString(str[:pos])
		str = str[pos:]

		if code, ok := charRef(str); ok {
			b.WriteRune(code)
			str = str[refLen:]
		} else {
			b.WriteByte('&')
			str = str[1:]
		}

		pos = strings.Index(str, "&#")
	}

	b.WriteString(str)

	return b.String()
}

func charRef(str string) (code rune, ok bool) {
	if len(str) < len("&#0000;") || str[6] != ';' {
		return 0, false
	}

	for _, c := range []byte(str[2:6]) {
		if c < '0' || c > '9' {
			return 0, false
		}

		code = code*10 + rune(c-'0')
	}

	return code, true
}
