package multipart

import (
	"github.com/indigo-web/multiform/http/status"
)

// Handlers are notified about the structure of the stream. Byte slices passed into
// HeaderField, HeaderValue and PartData are only valid until the handler returns, and a
// single header field, header value or part body may be delivered in any number of
// slices, depending on how the stream was chunked. Nil handlers are ignored.
type Handlers struct {
	PartBegin   func()
	HeaderField func([]byte)
	HeaderValue func([]byte)
	HeaderEnd   func()
	HeadersEnd  func()
	PartData    func([]byte)
	PartEnd     func()
	End         func()
}

func (h Handlers) withDefaults() Handlers {
	nop := func() {}
	nopData := func([]byte) {}

	if h.PartBegin == nil {
		h.PartBegin = nop
	}
	if h.HeaderField == nil {
		h.HeaderField = nopData
	}
	if h.HeaderValue == nil {
		h.HeaderValue = nopData
	}
	if h.HeaderEnd == nil {
		h.HeaderEnd = nop
	}
	if h.HeadersEnd == nil {
		h.HeadersEnd = nop
	}
	if h.PartData == nil {
		h.PartData = nopData
	}
	if h.PartEnd == nil {
		h.PartEnd = nop
	}
	if h.End == nil {
		h.End = nop
	}

	return h
}

// Parser is a stream-based multipart/form-data parser. It consumes the body in chunks of
// arbitrary size and notifies the handlers about parts, their headers and their data
// without buffering the body. A delimiter, a header line or anything else may be split
// between chunks at any position.
//
// Parser isn't safe for concurrent use. Independent bodies must be parsed by independent
// instances.
type Parser struct {
	handlers   Handlers
	boundary   []byte
	chars      charTable
	lookbehind []byte
	err        error
	offset     int64
	index      int
	state      parserState
	flags      flagSet

	headerFieldMark, headerValueMark, partDataMark mark
}

// NewParser returns a parser for the body delimited by the boundary token, as it is
// presented in the Content-Type.
func NewParser(token string, handlers Handlers) *Parser {
	seq, chars := delimiter(token)

	return &Parser{
		handlers:        handlers.withDefaults(),
		boundary:        seq,
		chars:           chars,
		lookbehind:      make([]byte, len(seq)+8),
		state:           sStart,
		headerFieldMark: noMark,
		headerValueMark: noMark,
		partDataMark:    noMark,
	}
}

// Write processes the chunk. On success, n always equals len(data). Otherwise, n is the
// index of the offending byte and err is a *MalformedError. After the error is reported,
// the parser doesn't accept any input anymore.
func (p *Parser) Write(data []byte) (n int, err error) {
	if p.state == sUninitialized {
		if p.err != nil {
			return 0, p.err
		}

		return 0, errNotInitialized
	}

	var (
		boundary    = p.boundary
		lookbehind  = p.lookbehind
		boundaryLen = len(boundary)
		boundaryEnd = boundaryLen - 1
		index       = p.index
		state       = p.state
		flags       = p.flags
		prevIndex   = index
		c           byte
	)

	for i := 0; i < len(data); i++ {
		c = data[i]

		switch state {
		case sStart:
			index = 0
			state = sStartBoundary
			fallthrough
		case sStartBoundary:
			// the leading CRLF is optional before the very first delimiter, therefore
			// the index goes negative while it's being matched
			if index == boundaryLen-2 {
				if c == '-' {
					flags.lastBoundary = true
				} else if c != '\r' {
					return p.malformed(data, i, state)
				}

				index++
				break
			} else if index-1 == boundaryLen-2 {
				switch {
				case flags.lastBoundary && c == '-':
					p.handlers.End()
					state = sEnd
					flags = flagSet{}
				case !flags.lastBoundary && c == '\n':
					index = 0
					p.handlers.PartBegin()
					state = sHeaderFieldStart
				default:
					return p.malformed(data, i, state)
				}

				break
			}

			if c != boundary[index+2] {
				index = -2
			}

			if c == boundary[index+2] {
				index++
			}
		case sHeaderFieldStart:
			state = sHeaderField
			p.headerFieldMark = mark(i)
			index = 0
			fallthrough
		case sHeaderField:
			if c == '\r' {
				p.headerFieldMark = noMark
				state = sHeadersAlmostDone
				break
			}

			index++
			if c == '-' {
				break
			}

			if c == ':' {
				if index == 1 {
					// empty header field
					return p.malformed(data, i, state)
				}

				p.emit(&p.headerFieldMark, p.handlers.HeaderField, data, i)
				state = sHeaderValueStart
				break
			}

			if cl := c | 0x20; cl < 'a' || cl > 'z' {
				return p.malformed(data, i, state)
			}
		case sHeaderValueStart:
			if c == ' ' {
				break
			}

			p.headerValueMark = mark(i)
			state = sHeaderValue
			fallthrough
		case sHeaderValue:
			if c == '\r' {
				p.emit(&p.headerValueMark, p.handlers.HeaderValue, data, i)
				p.handlers.HeaderEnd()
				state = sHeaderValueAlmostDone
			}
		case sHeaderValueAlmostDone:
			if c != '\n' {
				return p.malformed(data, i, state)
			}

			state = sHeaderFieldStart
		case sHeadersAlmostDone:
			if c != '\n' {
				return p.malformed(data, i, state)
			}

			p.handlers.HeadersEnd()
			state = sPartDataStart
		case sPartDataStart:
			state = sPartData
			p.partDataMark = mark(i)
			fallthrough
		case sPartData:
			prevIndex = index

			if index == 0 {
				// skip the data which can't be a beginning of the delimiter by looking
				// at the byte where the delimiter would end if it started at i
				i += boundaryEnd
				for i < len(data) && !p.chars[data[i]] {
					i += boundaryLen
				}

				i -= boundaryEnd
				if i >= len(data) {
					break
				}

				c = data[i]
			}

			switch {
			case index < boundaryLen:
				if boundary[index] == c {
					if index == 0 {
						p.emit(&p.partDataMark, p.handlers.PartData, data, i)
					}

					index++
				} else {
					index = 0
				}
			case index == boundaryLen:
				index++

				switch c {
				case '\r':
					flags.partBoundary = true
				case '-':
					flags.lastBoundary = true
				default:
					index = 0
				}
			case index-1 == boundaryLen:
				switch {
				case flags.partBoundary:
					index = 0
					if c == '\n' {
						flags.partBoundary = false
						p.handlers.PartEnd()
						p.handlers.PartBegin()
						state = sHeaderFieldStart
					}
				case flags.lastBoundary && c == '-':
					p.handlers.PartEnd()
					p.handlers.End()
					state = sEnd
					flags = flagSet{}
				default:
					index = 0
				}
			}

			if state == sHeaderFieldStart {
				break
			}

			if index > 0 {
				// the delimiter might turn out to be a false lead, so keep what's been
				// matched so far
				lookbehind[index-1] = c
			} else if prevIndex > 0 {
				// it was a false lead indeed. Whatever was captured belongs to the data
				flags = flagSet{}
				p.handlers.PartData(lookbehind[:prevIndex])
				prevIndex = 0
				p.partDataMark = mark(i)

				// the current byte interrupted the sequence, but it still may begin a new one
				i--
			}
		case sEnd:
			// the epilogue is ignored
		default:
			return p.malformed(data, i, state)
		}
	}

	p.flush(&p.headerFieldMark, p.handlers.HeaderField, data)
	p.flush(&p.headerValueMark, p.handlers.HeaderValue, data)
	p.flush(&p.partDataMark, p.handlers.PartData, data)

	p.index = index
	p.state = state
	p.flags = flags
	p.offset += int64(len(data))

	return len(data), nil
}

// End must be called when the stream is over. It reports status.ErrUnexpectedEnd unless
// the final delimiter was seen. A stream cut right after the final delimiter's token or
// right after a part's opening delimiter line is completed implicitly.
func (p *Parser) End() error {
	switch {
	case p.err != nil:
		return p.err
	case p.state == sUninitialized:
		return errNotInitialized
	case p.state == sEnd:
		return nil
	case p.state == sHeaderFieldStart && p.index == 0,
		p.state == sPartData && p.index == len(p.boundary):
		p.handlers.PartEnd()
		p.handlers.End()
		p.state = sEnd
		return nil
	default:
		return status.ErrUnexpectedEnd
	}
}

// Done reports whether the final delimiter was already seen.
func (p *Parser) Done() bool {
	return p.state == sEnd
}

// emit delivers the span from the mark up to the end and clears the mark.
func (p *Parser) emit(m *mark, handler func([]byte), data []byte, end int) {
	if *m == noMark {
		return
	}

	if int(*m) != end {
		handler(data[*m:end])
	}

	*m = noMark
}

// flush delivers the span from the mark up to the end of the chunk. As the span proceeds
// in the next chunk, the mark is moved to its beginning.
func (p *Parser) flush(m *mark, handler func([]byte), data []byte) {
	if *m == noMark {
		return
	}

	if int(*m) != len(data) {
		handler(data[*m:])
	}

	*m = 0
}

func (p *Parser) malformed(data []byte, i int, state parserState) (int, error) {
	p.err = &MalformedError{
		Offset: p.offset + int64(i),
		Char:   data[i],
		State:  state.String(),
	}
	p.state = sUninitialized

	return i, p.err
}
