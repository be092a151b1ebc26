package status

import "errors"

// HTTPError is an error carrying the status code a server would answer with.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// CodeOf returns the status code associated with the error. Errors which don't wrap
// an HTTPError are reported as InternalServerError.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}

var (
	ErrNotMultipart        = NewError(UnsupportedMediaType, "content type is not multipart")
	ErrNoBoundary          = NewError(BadRequest, "no or bad content-type header, no multipart boundary")
	ErrMalformedStream     = NewError(BadRequest, "malformed multipart stream")
	ErrUnexpectedEnd       = NewError(BadRequest, "multipart stream ended unexpectedly")
	ErrBodyTooLarge        = NewError(RequestEntityTooLarge, "request body is too large")
	ErrBadChunk            = NewError(BadRequest, "malformed chunk-encoded data")
	ErrUnsupportedEncoding = NewError(UnsupportedMediaType, "encoding is not supported")
)
