package codec

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

func NewZSTD() Codec {
	return newBaseCodec("zstd", func(source io.Reader) (io.Reader, func(), error) {
		// the body is decoded synchronously, therefore no goroutines are needed
		r, err := zstd.NewReader(source, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, err
		}

		return r, r.Close, nil
	})
}
