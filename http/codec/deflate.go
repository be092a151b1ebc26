package codec

import (
	"io"

	"github.com/klauspost/compress/zlib"
)

// NewDeflate returns the codec for the deflate coding, which is the zlib format
// (RFC 1950) despite the name.
func NewDeflate() Codec {
	return newBaseCodec("deflate", func(source io.Reader) (io.Reader, func(), error) {
		r, err := zlib.NewReader(source)
		if err != nil {
			return nil, nil, err
		}

		return r, func() { _ = r.Close() }, nil
	})
}
