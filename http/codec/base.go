package codec

import (
	"errors"
	"io"

	"github.com/indigo-web/multiform/http"
	"github.com/indigo-web/multiform/http/status"
)

var _ Codec = baseCodec{}

// opener instantiates a decoder reading from the source. The returned release function,
// if any, is called once the decoded stream is over.
type opener = func(source io.Reader) (r io.Reader, release func(), err error)

type baseCodec struct {
	token string
	open  opener
}

func newBaseCodec(token string, open opener) baseCodec {
	return baseCodec{
		token: token,
		open:  open,
	}
}

func (b baseCodec) Token() string {
	return b.token
}

func (b baseCodec) New() Decompressor {
	return &baseInstance{
		open:    b.open,
		adapter: newAdapter(),
	}
}

var _ Decompressor = new(baseInstance)

type baseInstance struct {
	open    opener
	adapter *readerAdapter
	r       io.Reader
	release func()
	buff    []byte
	err     error
}

func (b *baseInstance) ResetDecompressor(source http.Fetcher, bufferSize int) (err error) {
	if cap(b.buff) < bufferSize {
		b.buff = make([]byte, bufferSize)
	}

	b.buff = b.buff[:bufferSize]
	b.adapter.Reset(source)
	b.err = nil
	b.r, b.release, err = b.open(b.adapter)
	if err == io.EOF {
		// not even the header was there
		return status.ErrUnexpectedEnd
	}

	return mapErr(err)
}

func (b *baseInstance) Fetch() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}

	n, err := b.r.Read(b.buff)
	if err != nil {
		b.err = mapErr(err)
		if b.release != nil {
			b.release()
			b.release = nil
		}
	}

	return b.buff[:n], b.err
}

// mapErr translates a compressed stream cut short into the error the rest of the
// parsing reports in that case.
func mapErr(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return status.ErrUnexpectedEnd
	}

	return err
}
