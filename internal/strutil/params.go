package strutil

import (
	"iter"
	"strings"
)

// WalkParams iterates over semicolon-separated key=value pairs. Values may be quoted, in
// which case they're unquoted and might contain semicolons. Pairs without a key are skipped,
// pairs without a value yield an empty value.
func WalkParams(params string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for len(params) > 0 {
			params = LStripWS(params)

			var pair string
			pair, params = cutParam(params)

			key, value, _ := strings.Cut(pair, "=")
			key = RStripWS(key)
			if len(key) == 0 {
				continue
			}

			if !yield(key, Unquote(RStripWS(LStripWS(value)))) {
				return
			}
		}
	}
}

func cutParam(params string) (param, rest string) {
	quoted := false

	for i := 0; i < len(params); i++ {
		switch params[i] {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				return params[:i], params[i+1:]
			}
		}
	}

	return params, ""
}
