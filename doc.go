// Package multiform parses multipart/form-data bodies incrementally, as they arrive.
//
// The body is consumed chunk by chunk, and neither of the delimiters, header lines or
// multibyte characters is required to be aligned to the chunk edges. Text fields are
// decoded into strings, while files are kept as raw bytes along with their filename
// and media type.
//
// The lower layers are usable on their own: http/multipart provides the event-based
// parser, http and http/codec provide the body sources.
package multiform
