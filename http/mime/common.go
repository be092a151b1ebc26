package mime

import (
	"github.com/indigo-web/multiform/internal/strutil"
)

type MIME = string

const (
	Plain MIME = "text/plain"
	// Multipart is the only multipart subtype carrying forms. Other subtypes are still
	// accepted by the parser, as only the boundary matters.
	Multipart MIME = "multipart/form-data"
)

// IsMultipart reports whether the content type mentions multipart anywhere, regardless
// of the case.
func IsMultipart(contentType string) bool {
	return strutil.IndexFold(contentType, "multipart", 0) != -1
}
