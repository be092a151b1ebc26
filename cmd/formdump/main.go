// Command formdump parses stored multipart/form-data bodies and prints their entries as
// JSON, one document per file. The request headers needed to interpret the bodies are
// taken from the environment (or the .env file):
//
//	FORMDUMP_CONTENT_TYPE       Content-Type of the bodies, required
//	FORMDUMP_TRANSFER_ENCODING  Transfer-Encoding, e.g. chunked
//	FORMDUMP_CONTENT_ENCODING   Content-Encoding, e.g. gzip
//	FORMDUMP_MAX_SIZE           maximal decoded body size in bytes
//	FORMDUMP_CHUNK_SIZE         size of a single read from the file
//	FORMDUMP_LOG_LEVEL          debug, info, warn or error
//
// Files are parsed concurrently. A dash stands for the standard input and may be given once.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	json "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
)

const envPrefix = "FORMDUMP_"

// Config holds the command configuration.
type Config struct {
	ContentType      string `env:"CONTENT_TYPE,required"`
	TransferEncoding string `env:"TRANSFER_ENCODING"`
	ContentEncoding  string `env:"CONTENT_ENCODING"`
	MaxSize          int64  `env:"MAX_SIZE"   envDefault:"536870912"`
	ChunkSize        int    `env:"CHUNK_SIZE" envDefault:"4096"`
	LogLevel         string `env:"LOG_LEVEL"  envDefault:"info"`
}

func main() {
	// .env file is optional
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse config: %v\n", err)
		os.Exit(2)
	}

	logger := setupLogger(os.Stderr, cfg.LogLevel)
	// the parser reports its warnings through the standard logger, which is redirected
	// to the handler this way
	slog.SetDefault(logger)

	files := os.Args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}

	reports, err := dumpAll(context.Background(), cfg, files, logger)
	if err != nil {
		logger.Error("dump failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err = writeReports(os.Stdout, reports); err != nil {
		logger.Error("failed to write the output", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, report := range reports {
		if len(report.Error) > 0 {
			os.Exit(1)
		}
	}
}

func setupLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	}))
}

var errStdinTwice = errors.New("the standard input (-) may be given only once")

// dumpAll parses the files concurrently. A malformed body doesn't stop the others, as it's
// reported in its own report. Only failures to open a file are fatal.
func dumpAll(ctx context.Context, cfg Config, files []string, logger *slog.Logger) ([]Report, error) {
	if i := slices.Index(files, "-"); i != -1 && slices.Contains(files[i+1:], "-") {
		return nil, errStdinTwice
	}

	reports := make([]Report, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, file := range files {
		g.Go(func() error {
			report, err := dumpFile(ctx, cfg, file)
			if err != nil {
				return err
			}

			if len(report.Error) > 0 {
				logger.Warn("malformed body",
					slog.String("file", file),
					slog.String("error", report.Error),
					slog.Int("entries", len(report.Entries)))
			} else {
				logger.Debug("body parsed",
					slog.String("file", file),
					slog.Int("entries", len(report.Entries)))
			}

			reports[i] = report
			return nil
		})
	}

	return reports, g.Wait()
}

func writeReports(w io.Writer, reports []Report) error {
	enc := json.ConfigDefault.NewEncoder(w)
	enc.SetIndent("", "  ")

	for _, report := range reports {
		if err := enc.Encode(report); err != nil {
			return err
		}
	}

	return nil
}
