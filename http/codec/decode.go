package codec

import (
	"strings"

	"github.com/indigo-web/multiform/http"
	"github.com/indigo-web/multiform/http/status"
	"github.com/indigo-web/multiform/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
)

// Default returns all the codecs supported out of the box.
func Default() []Codec {
	return []Codec{NewGZIP(), NewDeflate(), NewZSTD()}
}

// Decode wraps the source into the decoders of all the codings listed in the
// Content-Encoding value. The codings are removed in the reverse order, as they're listed
// in the order they were applied in. Empty value and identity coding leave the source as
// is. Unknown codings result in status.ErrUnsupportedEncoding.
func Decode(codecs []Codec, contentEncoding string, src http.Fetcher, bufferSize int) (http.Fetcher, error) {
	tokens := strings.Split(contentEncoding, ",")

	for i := len(tokens) - 1; i >= 0; i-- {
		token := strutil.RStripWS(strutil.LStripWS(tokens[i]))
		if len(token) == 0 || strcomp.EqualFold(token, "identity") {
			continue
		}

		codec := lookup(codecs, token)
		if codec == nil {
			return nil, status.ErrUnsupportedEncoding
		}

		decoder := codec.New()
		if err := decoder.ResetDecompressor(src, bufferSize); err != nil {
			return nil, err
		}

		src = decoder
	}

	return src, nil
}

func lookup(codecs []Codec, token string) Codec {
	for _, codec := range codecs {
		if strcomp.EqualFold(codec.Token(), token) {
			return codec
		}
	}

	return nil
}
