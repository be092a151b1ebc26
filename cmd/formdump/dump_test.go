package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/indigo-web/multiform/http/mime"
	json "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

const body = "--X\r\nContent-Disposition: form-data; name=\"a\"\r\n\r\n1\r\n--X\r\n" +
	"Content-Disposition: form-data; name=\"f\"; filename=\"t.txt\"\r\nContent-Type: text/plain\r\n" +
	"\r\nhello\r\n--X--\r\n"

func testConfig() Config {
	return Config{
		ContentType: mime.Multipart + "; boundary=X",
		MaxSize:     1 << 20,
		ChunkSize:   7,
	}
}

func digest(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func TestDump(t *testing.T) {
	want := []Entry{
		{Name: "a", Charset: "utf-8", Value: "1", Size: 1},
		{Name: "f", Filename: "t.txt", Type: "text/plain", Size: 5, Digest: digest("hello")},
	}

	t.Run("plain", func(t *testing.T) {
		report := dump(context.Background(), testConfig(), "body", strings.NewReader(body))
		require.Empty(t, report.Error)
		require.Equal(t, want, report.Entries)
	})

	t.Run("chunked and gzipped", func(t *testing.T) {
		var compressed bytes.Buffer
		w := gzip.NewWriter(&compressed)
		_, err := w.Write([]byte(body))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		var chunked bytes.Buffer
		chunked.WriteString("10\r\n")
		chunked.Write(compressed.Bytes()[:16])
		chunked.WriteString("\r\n")
		chunked.WriteString(strconv.FormatInt(int64(compressed.Len()-16), 16) + "\r\n")
		chunked.Write(compressed.Bytes()[16:])
		chunked.WriteString("\r\n0\r\n\r\n")

		cfg := testConfig()
		cfg.TransferEncoding = "chunked"
		cfg.ContentEncoding = "gzip"

		report := dump(context.Background(), cfg, "body", &chunked)
		require.Empty(t, report.Error)
		require.Equal(t, want, report.Entries)
	})

	t.Run("failure", func(t *testing.T) {
		report := dump(context.Background(), testConfig(), "body", strings.NewReader(body[:60]))
		require.Equal(t, want[:1], report.Entries)
		require.NotEmpty(t, report.Error)
		require.Equal(t, 400, report.Status)
	})

	t.Run("unsupported encoding", func(t *testing.T) {
		cfg := testConfig()
		cfg.ContentEncoding = "br"

		report := dump(context.Background(), cfg, "body", strings.NewReader(body))
		require.Equal(t, 415, report.Status)
		require.Empty(t, report.Entries)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report := dump(ctx, testConfig(), "body", strings.NewReader(body))
		require.Equal(t, context.Canceled.Error(), report.Error)
	})
}

func TestDumpAll(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.bin")
	bad := filepath.Join(dir, "bad.bin")
	require.NoError(t, os.WriteFile(good, []byte(body), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(body[:60]), 0o644))

	var logs bytes.Buffer
	logger := setupLogger(&logs, "debug")

	reports, err := dumpAll(context.Background(), testConfig(), []string{good, bad}, logger)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Equal(t, good, reports[0].File)
	require.Len(t, reports[0].Entries, 2)
	require.Equal(t, bad, reports[1].File)
	require.NotEmpty(t, reports[1].Error)
	require.Contains(t, logs.String(), `"msg":"malformed body"`)

	_, err = dumpAll(context.Background(), testConfig(), []string{filepath.Join(dir, "missing")}, logger)
	require.Error(t, err)

	_, err = dumpAll(context.Background(), testConfig(), []string{"-", good, "-"}, logger)
	require.ErrorIs(t, err, errStdinTwice)

	var out bytes.Buffer
	require.NoError(t, writeReports(&out, reports))

	var decoded Report
	require.NoError(t, json.NewDecoder(&out).Decode(&decoded))
	require.Equal(t, reports[0], decoded)
}

func TestSetupLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := setupLogger(&logs, "nonsense")
	require.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	require.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
