package multiform

import (
	"io"
	"log"

	"github.com/indigo-web/multiform/config"
	"github.com/indigo-web/multiform/http"
	"github.com/indigo-web/multiform/http/form"
	"github.com/indigo-web/multiform/http/multipart"
	"github.com/indigo-web/multiform/internal/formdata"
)

// Boundary extracts the boundary token out of the Content-Type value. It fails with
// status.ErrNotMultipart if the media type isn't multipart at all and with status.ErrNoBoundary
// if the boundary parameter is missing.
func Boundary(contentType string) (string, error) {
	return formdata.Boundary(contentType)
}

// Parse reads the multipart/form-data body from the source until it's exhausted and
// returns the entries in the order of their appearance. Nil config stands for the default one.
//
// On error, the entries completed before the failure are returned along with it. The body
// must be free of any transfer and content codings, see http.Chunked and codec.Decode.
func Parse(cfg *config.Config, contentType string, src http.Fetcher) (form.Form, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	boundary, err := formdata.Boundary(contentType)
	if err != nil {
		return nil, err
	}

	assembler := formdata.NewAssembler(cfg)
	parser := multipart.NewParser(boundary, assembler.Handlers())

	err = http.Callback(http.Limit(src, cfg.Body.MaxSize), func(chunk []byte) error {
		_, err := parser.Write(chunk)
		return err
	})
	if err == nil {
		err = parser.End()
	}

	return assembler.Form(), err
}

// ParseReader is like Parse, but reads the body from the reader.
func ParseReader(cfg *config.Config, contentType string, r io.Reader) (form.Form, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	bufferSize := cfg.Body.ReadBufferSize
	if bufferSize <= 0 {
		bufferSize = config.Default().Body.ReadBufferSize
		log.Printf(
			"misconfiguration: read buffer size (Body.ReadBufferSize) is set to %d, "+
				"falling back to %d", cfg.Body.ReadBufferSize, bufferSize,
		)
	}

	return Parse(cfg, contentType, http.FromReader(r, bufferSize))
}

// ParseBytes is like Parse, but takes the whole body at once.
func ParseBytes(cfg *config.Config, contentType string, body []byte) (form.Form, error) {
	return Parse(cfg, contentType, http.FromChunks(body))
}
