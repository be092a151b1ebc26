package status

import "strconv"

type Code uint16

// Codes a multipart body failure can be mapped to.
// See: https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	BadRequest            Code = 400 // RFC 9110, 15.5.1
	RequestEntityTooLarge Code = 413 // RFC 9110, 15.5.14
	UnsupportedMediaType  Code = 415 // RFC 9110, 15.5.16
	InternalServerError   Code = 500 // RFC 9110, 15.6.1
)

// KnownCodes lists every code declared above.
var KnownCodes = []Code{
	BadRequest, RequestEntityTooLarge, UnsupportedMediaType, InternalServerError,
}

// Text returns the reason phrase of the code.
func Text(code Code) string {
	switch code {
	case BadRequest:
		return "Bad Request"
	case RequestEntityTooLarge:
		return "Request Entity Too Large"
	case UnsupportedMediaType:
		return "Unsupported Media Type"
	case InternalServerError:
		return "Internal Server Error"
	default:
		return "Unknown Status Code"
	}
}

func (c Code) String() string {
	return strconv.Itoa(int(c)) + " " + Text(c)
}
