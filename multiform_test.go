package multiform

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/dchest/uniuri"
	"github.com/google/go-cmp/cmp"
	"github.com/indigo-web/multiform/config"
	"github.com/indigo-web/multiform/http"
	"github.com/indigo-web/multiform/http/codec"
	"github.com/indigo-web/multiform/http/form"
	"github.com/indigo-web/multiform/http/mime"
	"github.com/indigo-web/multiform/http/multipart"
	"github.com/indigo-web/multiform/http/status"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

const sampleBody = "--X\r\nContent-Disposition: form-data; name=\"a\"\r\n\r\n1\r\n--X\r\n" +
	"Content-Disposition: form-data; name=\"f\"; filename=\"t.txt\"\r\nContent-Type: text/plain\r\n" +
	"\r\nhello\r\n--X--\r\n"

var sampleForm = form.Form{
	{Name: "a", Charset: "utf-8", Value: "1"},
	{Name: "f", Filename: "t.txt", Type: "text/plain", Content: []byte("hello")},
}

func scatter(b []byte, step int) (pieces [][]byte) {
	for i := 0; i < len(b); i += step {
		pieces = append(pieces, b[i:min(i+step, len(b))])
	}

	return pieces
}

type builder struct {
	boundary string
	buff     bytes.Buffer
}

func newBuilder(boundary string) *builder {
	return &builder{boundary: boundary}
}

func (b *builder) Part(disposition, contentType, data string) *builder {
	b.buff.WriteString("--" + b.boundary + "\r\nContent-Disposition: form-data; " + disposition + "\r\n")
	if len(contentType) > 0 {
		b.buff.WriteString("Content-Type: " + contentType + "\r\n")
	}

	b.buff.WriteString("\r\n" + data + "\r\n")
	return b
}

func (b *builder) Bytes() []byte {
	return append(bytes.Clone(b.buff.Bytes()), "--"+b.boundary+"--\r\n"...)
}

func (b *builder) ContentType() string {
	return mime.Multipart + "; boundary=" + b.boundary
}

func TestParse(t *testing.T) {
	t.Run("text and file", func(t *testing.T) {
		f, err := ParseBytes(nil, mime.Multipart+"; boundary=X", []byte(sampleBody))
		require.NoError(t, err)
		require.Equal(t, sampleForm, f)
	})

	t.Run("duplicate names", func(t *testing.T) {
		b := newBuilder("X").Part(`name="tag"`, "", "x").Part(`name="tag"`, "", "y")
		f, err := ParseBytes(nil, b.ContentType(), b.Bytes())
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "tag", Charset: "utf-8", Value: "x"},
			{Name: "tag", Charset: "utf-8", Value: "y"},
		}, f)

		var values []string
		for data := range f.Names("tag") {
			values = append(values, data.Value)
		}

		require.Equal(t, []string{"x", "y"}, values)
	})

	t.Run("preamble and epilogue", func(t *testing.T) {
		body := "This is a preamble.\r\n" + sampleBody + "and an epilogue"
		f, err := ParseBytes(nil, mime.Multipart+"; boundary=X", []byte(body))
		require.NoError(t, err)
		require.Equal(t, sampleForm, f)
	})

	t.Run("reader", func(t *testing.T) {
		cfg := config.Default()
		cfg.Body.ReadBufferSize = 7

		f, err := ParseReader(cfg, mime.Multipart+"; boundary=X", strings.NewReader(sampleBody))
		require.NoError(t, err)
		require.Equal(t, sampleForm, f)

		f, err = ParseReader(nil, mime.Multipart+"; boundary=X", iotest.OneByteReader(strings.NewReader(sampleBody)))
		require.NoError(t, err)
		require.Equal(t, sampleForm, f)
	})

	t.Run("bad read buffer size", func(t *testing.T) {
		cfg := config.Default()
		cfg.Body.ReadBufferSize = 0

		f, err := ParseReader(cfg, mime.Multipart+"; boundary=X", strings.NewReader(sampleBody))
		require.NoError(t, err)
		require.Equal(t, sampleForm, f)
	})
}

func TestParse_Chunking(t *testing.T) {
	for i := range 5 {
		boundary := uniuri.NewLen(1 + i*10)
		b := newBuilder(boundary).
			Part(`name="text"`, "", "Lorem ipsum dolor sit amet").
			Part(`name="unicode"`, "text/plain; charset=utf-8", "привет, мир! 🌍").
			Part(`name="file"; filename="data.bin"`, "application/octet-stream",
				"\r\n--"+boundary[:len(boundary)/2]+"\r\n--"+boundary+"x\r\n--"+boundary+"-\r").
			Part(`name="empty"`, "", "").
			Part(`name=token; filename="C:\dir\file.txt"`, "", "content")
		body := b.Bytes()

		want, err := ParseBytes(nil, b.ContentType(), body)
		require.NoError(t, err)
		require.Len(t, want, 5)
		require.Equal(t, "file.txt", want[4].Filename)

		for step := 1; step < len(body); step++ {
			got, err := Parse(nil, b.ContentType(), http.FromChunks(scatter(body, step)...))
			require.NoError(t, err)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("boundary %q, step %d: mismatch (-want +got):\n%s", boundary, step, diff)
			}
		}
	}
}

func TestParse_Errors(t *testing.T) {
	t.Run("not multipart", func(t *testing.T) {
		_, err := ParseBytes(nil, "application/json", []byte(sampleBody))
		require.ErrorIs(t, err, status.ErrNotMultipart)
		require.Equal(t, status.UnsupportedMediaType, status.CodeOf(err))
	})

	t.Run("no boundary", func(t *testing.T) {
		_, err := ParseBytes(nil, mime.Multipart, []byte(sampleBody))
		require.ErrorIs(t, err, status.ErrNoBoundary)
		require.Equal(t, status.BadRequest, status.CodeOf(err))
	})

	t.Run("premature end", func(t *testing.T) {
		body := sampleBody[:len(sampleBody)-len("\r\n--X--\r\n")]
		f, err := ParseBytes(nil, mime.Multipart+"; boundary=X", []byte(body))
		require.ErrorIs(t, err, status.ErrUnexpectedEnd)
		require.Equal(t, sampleForm[:1], f)
	})

	t.Run("end right after the final token", func(t *testing.T) {
		body := sampleBody[:len(sampleBody)-len("--\r\n")]
		f, err := ParseBytes(nil, mime.Multipart+"; boundary=X", []byte(body))
		require.NoError(t, err)
		require.Equal(t, sampleForm, f)
	})

	t.Run("malformed", func(t *testing.T) {
		body := "--X\r\nContent-Disposition: form-data; name=\"a\"\r\n\r\n1\r\n--X\r\nBad Header: x\r\n\r\n"
		f, err := ParseBytes(nil, mime.Multipart+"; boundary=X", []byte(body))
		require.ErrorIs(t, err, status.ErrMalformedStream)
		require.Equal(t, status.BadRequest, status.CodeOf(err))

		var malformed *multipart.MalformedError
		require.ErrorAs(t, err, &malformed)
		require.Equal(t, int64(strings.Index(body, " Header")), malformed.Offset)
		require.Equal(t, form.Form{sampleForm[0]}, f)
	})

	t.Run("too large", func(t *testing.T) {
		cfg := config.Default()
		cfg.Body.MaxSize = int64(strings.Index(sampleBody, "hello"))

		f, err := Parse(cfg, mime.Multipart+"; boundary=X", http.FromChunks(scatter([]byte(sampleBody), 10)...))
		require.ErrorIs(t, err, status.ErrBodyTooLarge)
		require.Equal(t, status.RequestEntityTooLarge, status.CodeOf(err))
		require.Equal(t, sampleForm[:1], f)
	})
}

func TestParse_Encoded(t *testing.T) {
	var compressed bytes.Buffer
	w := gzip.NewWriter(&compressed)
	_, err := w.Write([]byte(sampleBody))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var chunked bytes.Buffer
	for _, piece := range scatter(compressed.Bytes(), 16) {
		chunked.WriteString(strconv.FormatInt(int64(len(piece)), 16) + "\r\n")
		chunked.Write(piece)
		chunked.WriteString("\r\n")
	}
	chunked.WriteString("0\r\n\r\n")

	src := http.Chunked(http.FromChunks(scatter(chunked.Bytes(), 5)...), false)
	decoded, err := codec.Decode(codec.Default(), "gzip", src, 8)
	require.NoError(t, err)

	f, err := Parse(nil, mime.Multipart+"; boundary=X", decoded)
	require.NoError(t, err)
	require.Equal(t, sampleForm, f)
}

func BenchmarkParse(b *testing.B) {
	file := strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit.\r\n", 16*1024)
	builder := newBuilder(uniuri.NewLen(32)).
		Part(`name="name"`, "", "value").
		Part(`name="file"; filename="lorem.txt"`, "text/plain", file)
	body, contentType := builder.Bytes(), builder.ContentType()
	src := http.FromChunks(scatter(body, 4096)...)

	b.SetBytes(int64(len(body)))
	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		src.Reset()
		_, _ = Parse(nil, contentType, src)
	}
}
