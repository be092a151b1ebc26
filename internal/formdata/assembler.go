package formdata

import (
	"strings"

	"github.com/indigo-web/multiform/config"
	"github.com/indigo-web/multiform/http/form"
	"github.com/indigo-web/multiform/http/multipart"
	"github.com/indigo-web/multiform/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Assembler builds the form out of the parser events. Every part becomes an entry once the
// part is over, so entries completed before an error are kept intact.
type Assembler struct {
	cfg  *config.Config
	form form.Form

	// header bytes are always UTF-8
	fieldDecoder, valueDecoder *decoder
	field, value               []byte

	// text values are UTF-8 whatever the charset parameter says, which is only reported
	text           *decoder
	defaultCharset string
	sink           func([]byte)

	name, filename, contentType, charset string
	buff                                 []byte
	content                              []byte
}

func NewAssembler(cfg *config.Config) *Assembler {
	return &Assembler{
		cfg:            cfg,
		form:           make(form.Form, 0, cfg.Form.EntriesPrealloc),
		fieldDecoder:   utf8Decoder(),
		valueDecoder:   utf8Decoder(),
		text:           utf8Decoder(),
		defaultCharset: defaultCharset(cfg.Form.DefaultCharset),
	}
}

// Handlers returns the handlers to be passed into the multipart.Parser.
func (a *Assembler) Handlers() multipart.Handlers {
	return multipart.Handlers{
		PartBegin:   a.partBegin,
		HeaderField: a.headerField,
		HeaderValue: a.headerValue,
		HeaderEnd:   a.headerEnd,
		HeadersEnd:  a.headersEnd,
		PartData:    a.partData,
		PartEnd:     a.partEnd,
	}
}

// Form returns all the entries completed so far.
func (a *Assembler) Form() form.Form {
	return a.form
}

func (a *Assembler) partBegin() {
	a.resetHeader()
	a.name, a.filename, a.contentType = "", "", ""
	a.charset = a.defaultCharset
	a.buff = a.buff[:0]
	a.content = nil
	a.text.Reset()
	a.sink = a.appendText
}

func (a *Assembler) headerField(b []byte) {
	a.field = a.fieldDecoder.Decode(a.field, b, false)
}

func (a *Assembler) headerValue(b []byte) {
	a.value = a.valueDecoder.Decode(a.value, b, false)
}

func (a *Assembler) headerEnd() {
	a.field = a.fieldDecoder.Decode(a.field, nil, true)
	a.value = a.valueDecoder.Decode(a.value, nil, true)
	field, value := uf.B2S(a.field), uf.B2S(a.value)

	switch {
	case strcomp.EqualFold(field, "content-disposition"):
		// both are views into the header buffer otherwise
		if name, found := dispositionName(value); found {
			a.name = strings.Clone(name)
		}

		a.filename = ""
		if filename, found := dispositionFilename(value); found {
			a.filename = strings.Clone(cleanFilename(filename))
		}

		if a.isFile() {
			a.sink = a.appendFile
		} else {
			a.sink = a.appendText
		}
	case strcomp.EqualFold(field, "content-type"):
		a.contentType = string(a.value)
	}

	a.resetHeader()
}

func (a *Assembler) headersEnd() {
	// a header without the colon, which was cut between chunks, might've left some bytes
	a.resetHeader()

	if a.isFile() || len(a.contentType) == 0 {
		return
	}

	_, params := strutil.CutHeader(a.contentType)
	for key, value := range strutil.WalkParams(params) {
		if !strcomp.EqualFold(key, "charset") {
			continue
		}

		if len(value) > 0 {
			a.charset, _ = charsetName(value)
		}

		break
	}
}

func (a *Assembler) partData(b []byte) {
	a.sink(b)
}

func (a *Assembler) appendText(b []byte) {
	a.buff = a.text.Decode(a.buff, b, false)
}

func (a *Assembler) appendFile(b []byte) {
	a.content = append(a.content, b...)
}

func (a *Assembler) partEnd() {
	contentType := a.contentType
	if len(contentType) == 0 {
		contentType = a.cfg.Form.DefaultContentType
	}

	if a.isFile() {
		a.form = append(a.form, form.Data{
			Name:     a.name,
			Filename: a.filename,
			Type:     contentType,
			Content:  a.content,
		})
		a.content = nil

		return
	}

	a.buff = a.text.Decode(a.buff, nil, true)
	a.form = append(a.form, form.Data{
		Name:    a.name,
		Type:    contentType,
		Charset: a.charset,
		Value:   string(a.buff),
	})
}

func (a *Assembler) isFile() bool {
	return len(a.filename) > 0
}

func (a *Assembler) resetHeader() {
	a.field, a.value = a.field[:0], a.value[:0]
	a.fieldDecoder.Reset()
	a.valueDecoder.Reset()
}
