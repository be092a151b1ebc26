package config

import (
	"github.com/indigo-web/multiform/http/mime"
)

type (
	Form struct {
		// EntriesPrealloc is the number of preallocated seats for form.Form.
		EntriesPrealloc int
		// DefaultCharset is reported for text entries whose Content-Type carries no
		// charset parameter. Text values are always decoded as UTF-8.
		DefaultCharset mime.Charset
		// DefaultContentType sets the media type of parts without the Content-Type header.
		// Empty by default, so such parts are easy to tell apart.
		DefaultContentType mime.MIME `test:"nullable"`
	}

	Body struct {
		// MaxSize describes the maximal number of bytes to be fed into the parser. Exceeding
		// it results in status.ErrBodyTooLarge. The limit applies to the body after all the
		// transfer and content codings are removed. In order to disable the setting, use
		// the math.MaxInt64 value.
		MaxSize int64
		// ReadBufferSize is the size of the buffer used to read from an io.Reader. Every
		// read is passed into the parser as a separate chunk.
		ReadBufferSize int
		// DecompressBufferSize is the size of the buffer every content decoder writes the
		// decoded data into.
		DecompressBufferSize int
	}
)

// Config holds settings used across the parsing, mainly limitations and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Body Body
	Form Form
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Body: Body{
			MaxSize:              512 * 1024 * 1024, // 512 megabytes
			ReadBufferSize:       4 * 1024,
			DecompressBufferSize: 4 * 1024,
		},
		Form: Form{
			EntriesPrealloc: 8,
			DefaultCharset:  mime.UTF8,
		},
	}
}
