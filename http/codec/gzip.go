package codec

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

func NewGZIP() Codec {
	return newBaseCodec("gzip", func(source io.Reader) (io.Reader, func(), error) {
		r, err := gzip.NewReader(source)
		return r, nil, err
	})
}
