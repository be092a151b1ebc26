package http

import (
	"io"

	"github.com/indigo-web/multiform/http/status"
)

type BodyCallback func([]byte) error

// Callback invokes the callback every time as there's a piece of body available
// for processing. If the callback returns an error, it'll be passed back to the caller.
// The callback is not notified when there's no more data or the source has failed,
// however the data coming along with io.EOF is delivered.
func Callback(src Fetcher, cb BodyCallback) error {
	for {
		data, err := src.Fetch()
		switch err {
		case nil:
		case io.EOF:
			if len(data) == 0 {
				return nil
			}

			return cb(data)
		default:
			return err
		}

		if err = cb(data); err != nil {
			return err
		}
	}
}

type readerFetcher struct {
	r    io.Reader
	buff []byte
	err  error
}

// FromReader returns a Fetcher reading the body from the reader. Every read becomes a
// separate chunk, so the chunks are at most bufferSize bytes long.
func FromReader(r io.Reader, bufferSize int) Fetcher {
	return &readerFetcher{
		r:    r,
		buff: make([]byte, bufferSize),
	}
}

func (r *readerFetcher) Fetch() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}

	n, err := r.r.Read(r.buff)
	r.err = err

	return r.buff[:n], err
}

// Chunks is a Fetcher returning the chunks it was initialised with, one by one. This is
// mainly used for testing and for bodies being already in memory.
type Chunks struct {
	data    [][]byte
	pointer int
}

func FromChunks(chunks ...[]byte) *Chunks {
	return &Chunks{data: chunks}
}

func (c *Chunks) Fetch() ([]byte, error) {
	if c.pointer >= len(c.data) {
		return nil, io.EOF
	}

	chunk := c.data[c.pointer]
	c.pointer++

	return chunk, nil
}

// Reset rewinds the chunks back to the beginning.
func (c *Chunks) Reset() {
	c.pointer = 0
}

type limitedFetcher struct {
	src  Fetcher
	left int64
}

// Limit returns a Fetcher failing with status.ErrBodyTooLarge as soon as more than max
// bytes are fetched overall.
func Limit(src Fetcher, max int64) Fetcher {
	return &limitedFetcher{
		src:  src,
		left: max,
	}
}

func (l *limitedFetcher) Fetch() ([]byte, error) {
	data, err := l.src.Fetch()
	if int64(len(data)) > l.left {
		return nil, status.ErrBodyTooLarge
	}

	l.left -= int64(len(data))

	return data, err
}
