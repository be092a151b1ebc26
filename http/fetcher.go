package http

// Fetcher is an ordered source of body chunks. A chunk is valid until the next call to
// Fetch. The last chunk may come along with io.EOF, or be followed by an empty one with
// io.EOF. Any other error is fatal and must be passed back to the caller.
type Fetcher interface {
	Fetch() ([]byte, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func() ([]byte, error)

func (f FetcherFunc) Fetch() ([]byte, error) {
	return f()
}
