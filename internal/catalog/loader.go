package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cart-bundler/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for catalog files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a catalog file. Files ending in .gz are decompressed.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.BundleRecord, error) {
	l.logger.Info().Str("file", filePath).Msg("loading catalog file")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", filePath, err)
	}
	defer file.Close()

	records, err := readCatalog(file, strings.HasSuffix(filePath, ".gz"))
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read catalog file")
		return nil, fmt.Errorf("failed to read catalog file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("bundles_loaded", len(records)).
		Msg("catalog file loaded successfully")

	return records, nil
}

// readCatalog decodes a catalog stream, decompressing it first if needed.
func readCatalog(r io.Reader, compressed bool) ([]model.BundleRecord, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	if !compressed {
		return decodeCatalog(reader)
	}

	gzipReader, err := gzip.NewReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	return decodeCatalog(gzipReader)
}
