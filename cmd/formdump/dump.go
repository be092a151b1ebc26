package main

import (
	"context"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/indigo-web/multiform"
	"github.com/indigo-web/multiform/config"
	"github.com/indigo-web/multiform/http"
	"github.com/indigo-web/multiform/http/codec"
	"github.com/indigo-web/multiform/http/form"
	"github.com/indigo-web/multiform/http/status"
	"github.com/indigo-web/utils/strcomp"
	"golang.org/x/crypto/blake2b"
)

// Entry describes a single form entry. Files are described by their size and digest
// instead of their content.
type Entry struct {
	Name     string `json:"name"`
	Filename string `json:"filename,omitempty"`
	Type     string `json:"type,omitempty"`
	Charset  string `json:"charset,omitempty"`
	Value    string `json:"value,omitempty"`
	Size     int    `json:"size"`
	Digest   string `json:"blake2b,omitempty"`
}

// Report is the result of parsing a single body. On failure, the entries parsed before
// are present as well.
type Report struct {
	File    string  `json:"file"`
	Entries []Entry `json:"entries"`
	Error   string  `json:"error,omitempty"`
	Status  int     `json:"status,omitempty"`
}

func dumpFile(ctx context.Context, cfg Config, path string) (Report, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return Report{}, err
		}

		defer file.Close()
		r = file
	}

	return dump(ctx, cfg, path, r), nil
}

func dump(ctx context.Context, cfg Config, name string, r io.Reader) Report {
	parserCfg := config.Default()
	parserCfg.Body.MaxSize = cfg.MaxSize
	if cfg.ChunkSize > 0 {
		parserCfg.Body.ReadBufferSize = cfg.ChunkSize
	}

	f, err := parse(ctx, parserCfg, cfg, http.FromReader(r, parserCfg.Body.ReadBufferSize))

	report := Report{
		File:    name,
		Entries: make([]Entry, 0, len(f)),
	}

	for _, data := range f {
		report.Entries = append(report.Entries, describe(data))
	}

	if err != nil {
		report.Error = err.Error()
		report.Status = int(status.CodeOf(err))
	}

	return report
}

func parse(ctx context.Context, parserCfg *config.Config, cfg Config, src http.Fetcher) (form.Form, error) {
	src = cancellable(ctx, src)
	codecs := codec.Default()
	bufferSize := parserCfg.Body.DecompressBufferSize

	transfer := strings.Split(cfg.TransferEncoding, ",")
	if last := strings.TrimSpace(transfer[len(transfer)-1]); strcomp.EqualFold(last, "chunked") {
		src = http.Chunked(src, false)
		transfer = transfer[:len(transfer)-1]
	}

	src, err := codec.Decode(codecs, strings.Join(transfer, ","), src, bufferSize)
	if err != nil {
		return nil, err
	}

	src, err = codec.Decode(codecs, cfg.ContentEncoding, src, bufferSize)
	if err != nil {
		return nil, err
	}

	return multiform.Parse(parserCfg, cfg.ContentType, src)
}

func cancellable(ctx context.Context, src http.Fetcher) http.Fetcher {
	return http.FetcherFunc(func() ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return src.Fetch()
	})
}

func describe(data form.Data) Entry {
	entry := Entry{
		Name:     data.Name,
		Filename: data.Filename,
		Type:     data.Type,
		Charset:  data.Charset,
	}

	if !data.IsFile() {
		entry.Value = data.Value
		entry.Size = len(data.Value)
		return entry
	}

	digest := blake2b.Sum256(data.Content)
	entry.Size = len(data.Content)
	entry.Digest = hex.EncodeToString(digest[:])

	return entry
}
