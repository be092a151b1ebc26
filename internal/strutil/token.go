package strutil

import (
	"unicode"
	"unicode/utf8"
)

// separators are the characters terminating an RFC 2616 token in addition to whitespaces.
var separators = [utf8.RuneSelf]bool{
	'(': true, ')': true, '<': true, '>': true, '@': true,
	',': true, ';': true, ':': true, '\\': true, '"': true,
	'/': true, '[': true, ']': true, '?': true, '=': true,
	'{': true, '}': true,
}

// TokenLen returns the length in bytes of the RFC 2616 token str begins with. Zero is
// returned if str doesn't begin with a token.
func TokenLen(str string) int {
	for i, r := range str {
		if IsSpace(r) || (r < utf8.RuneSelf && separators[r]) {
			return i
		}
	}

	return len(str)
}

// IsSpace extends unicode.IsSpace with the zero-width no-break space, which is also
// commonly treated as a whitespace in header values. The class is a superset of the
// ECMAScript \s, as it includes U+0085 as well.
func IsSpace(r rune) bool {
	return r == '\ufeff' || unicode.IsSpace(r)
}
