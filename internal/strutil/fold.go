package strutil

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c | 0x20
	}

	return c
}

// HasPrefixFold reports whether str begins with prefix, ignoring the case of ASCII letters.
func HasPrefixFold(str, prefix string) bool {
	if len(str) < len(prefix) {
		return false
	}

	for i := 0; i < len(prefix); i++ {
		if lower(str[i]) != lower(prefix[i]) {
			return false
		}
	}

	return true
}

// IndexFold returns the index of the first occurrence of substr in str at or after the
// offset, ignoring the case of ASCII letters. Non-ASCII bytes are compared as is, so the
// returned index is always a valid offset into the original string.
func IndexFold(str, substr string, offset int) int {
	if len(substr) == 0 {
		return offset
	}

	first := lower(substr[0])
	for i := offset; i+len(substr) <= len(str); i++ {
		if lower(str[i]) == first && HasPrefixFold(str[i:], substr) {
			return i
		}
	}

	return -1
}

// IsWordChar reports whether the byte belongs to [A-Za-z0-9_].
func IsWordChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (lower(c) >= 'a' && lower(c) <= 'z')
}
