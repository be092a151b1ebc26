package formdata

import (
	"log"

	"github.com/indigo-web/multiform/http/mime"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decoder turns a sequence of byte spans into text. A character split between two spans
// is kept pending until the rest of it arrives, so the spans may be cut at any byte.
type decoder struct {
	t       transform.Transformer
	pending []byte
}

func utf8Decoder() *decoder {
	return &decoder{t: unicode.UTF8.NewDecoder()}
}

// Decode appends the decoded src to dst. Unless atEOF is set, an incomplete trailing
// sequence is held until the next call. Ill-formed input is replaced by U+FFFD.
func (d *decoder) Decode(dst, src []byte, atEOF bool) []byte {
	if len(d.pending) > 0 {
		d.pending = append(d.pending, src...)
		src = d.pending
	}

	for {
		dst = grow(dst, len(src)+4)
		nDst, nSrc, err := d.t.Transform(dst[len(dst):cap(dst)], src, atEOF)
		dst = dst[:len(dst)+nDst]
		src = src[nSrc:]

		switch err {
		case transform.ErrShortDst:
			if nDst == 0 && nSrc == 0 {
				dst = grow(dst, 2*cap(dst))
			}

			continue
		case transform.ErrShortSrc:
			d.pending = append(d.pending[:0], src...)
		default:
			// ill-formed input is replaced, so nothing else is reported
			d.pending = d.pending[:0]
		}

		if atEOF {
			d.Reset()
		}

		return dst
	}
}

// Reset drops the pending input and brings the decoder back to its initial state.
func (d *decoder) Reset() {
	d.t.Reset()
	d.pending = d.pending[:0]
}

func grow(buff []byte, n int) []byte {
	if cap(buff)-len(buff) >= n {
		return buff
	}

	return append(buff[:cap(buff)], make([]byte, n)...)[:len(buff)]
}

// charsetName returns the canonical name of the charset label. Labels unknown to the WHATWG
// Encoding Standard are returned as is.
func charsetName(label string) (name string, known bool) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return label, false
	}

	if name, err = htmlindex.Name(enc); err != nil {
		return label, true
	}

	return name, true
}

// defaultCharset returns the canonical name of the configured default charset.
func defaultCharset(label string) mime.Charset {
	name, known := charsetName(label)
	if !known {
		log.Printf(
			"misconfiguration: unknown default charset (Form.DefaultCharset) %q, reporting it as is",
			label,
		)
	}

	return name
}
