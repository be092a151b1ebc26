package codec

import (
	"github.com/indigo-web/multiform/http"
)

type Codec interface {
	// Token returns a coding token associated with the codec itself.
	Token() string
	New() Decompressor
}

type Decompressor interface {
	http.Fetcher
	ResetDecompressor(source http.Fetcher, bufferSize int) error
}
