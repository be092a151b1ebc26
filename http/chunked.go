package http

import (
	"io"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/multiform/http/status"
)

type chunkedFetcher struct {
	src     Fetcher
	parser  *chunkedbody.Parser
	trailer bool
	pending []byte
	srcErr  error
	err     error
}

// Chunked returns a Fetcher removing the chunked transfer coding from the body. If the
// trailer is announced, trailer fields after the last chunk are expected and skipped.
func Chunked(src Fetcher, trailer bool) Fetcher {
	return &chunkedFetcher{
		src:     src,
		parser:  chunkedbody.NewParser(chunkedbody.DefaultSettings()),
		trailer: trailer,
	}
}

func (c *chunkedFetcher) Fetch() (chunk []byte, err error) {
	if c.err != nil {
		return nil, c.err
	}

	if len(c.pending) == 0 {
		switch c.srcErr {
		case nil:
		case io.EOF:
			// the source is over, but the terminating chunk wasn't met
			c.err = status.ErrUnexpectedEnd
			return nil, c.err
		default:
			c.err = c.srcErr
			return nil, c.err
		}

		c.pending, c.srcErr = c.src.Fetch()
		if c.srcErr != nil && c.srcErr != io.EOF {
			c.err = c.srcErr
			return nil, c.err
		}
	}

	chunk, c.pending, err = c.parser.Parse(c.pending, c.trailer)
	switch err {
	case nil:
		return chunk, nil
	case io.EOF:
		c.err = io.EOF
		return chunk, io.EOF
	default:
		c.err = status.ErrBadChunk
		return nil, c.err
	}
}
