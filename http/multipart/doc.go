// Package multipart implements a streaming multipart/form-data parser.
//
// The parser is a byte-level state machine. It's fed with chunks of arbitrary size and
// raises structural events (a part begins, a header field, a header value, a piece of
// part data, a part ends, the stream ends) through the Handlers. Nothing but the bytes
// tentatively matched against the delimiter is ever buffered: every other byte is either
// skipped or passed to the handlers as a sub-slice of the chunk it came in.
package multipart
