package multipart

import (
	"errors"
	"fmt"

	"github.com/indigo-web/multiform/http/status"
)

var errNotInitialized = errors.New("multipart: parser is not initialized")

// MalformedError reports a byte the state machine has no transition for.
type MalformedError struct {
	// Offset is the position of the byte counting from the very first byte ever
	// passed to Write.
	Offset int64
	Char   byte
	State  string
}

func (m *MalformedError) Error() string {
	return fmt.Sprintf("multipart: unexpected %q at offset %d (%s)", m.Char, m.Offset, m.State)
}

func (m *MalformedError) Unwrap() error {
	return status.ErrMalformedStream
}
