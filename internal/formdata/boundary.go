package formdata

import (
	"strings"

	"github.com/indigo-web/multiform/http/mime"
	"github.com/indigo-web/multiform/http/status"
	"github.com/indigo-web/multiform/internal/strutil"
)

// Boundary extracts the boundary token out of the Content-Type value. The token is either
// quoted or lasts until the next parameter. The media type itself is only required to
// mention multipart, so any multipart subtype is accepted.
func Boundary(contentType string) (string, error) {
	if !mime.IsMultipart(contentType) {
		return "", status.ErrNotMultipart
	}

	const key = "boundary="

	for offset := 0; ; {
		pos := strutil.IndexFold(contentType, key, offset)
		if pos == -1 {
			return "", status.ErrNoBoundary
		}

		offset = pos + 1
		rest := contentType[pos+len(key):]

		if len(rest) > 1 && rest[0] == '"' {
			if end := strings.IndexByte(rest[1:], '"'); end > 0 {
				return rest[1 : end+1], nil
			}
		}

		if end := strings.IndexByte(rest, ';'); end != 0 {
			if end == -1 {
				end = len(rest)
			}

			if token := strings.TrimRightFunc(rest[:end], strutil.IsSpace); len(token) > 0 {
				return token, nil
			}
		}
	}
}
