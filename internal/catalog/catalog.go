// Package catalog bulk-imports products from JSON-lines files stored on
// local disk or in S3. Files may be gzip-compressed.
package catalog

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"storefront-client/internal/model"
)

// Record is one non-blank line of an import file.
type Record struct {
	Line  int
	Input model.ProductInput
	// Err is set when the line is not a valid product object.
	Err error
}

// Loader defines the interface for reading import files.
type Loader interface {
	// Load reads the file at path and returns its records in file order.
	Load(ctx context.Context, path string) ([]Record, error)
}

var gzipMagic = []byte{0x1f, 0x8b}

// maxLineBytes bounds a single product line.
const maxLineBytes = 1024 * 1024

// readRecords decodes a JSON-lines stream, transparently un-gzipping it.
func readRecords(ctx context.Context, r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(len(gzipMagic)); err == nil && bytes.Equal(magic, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var records []Record
	line := 0
	for scanner.Scan() {
		line++

		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}

		rec := Record{Line: line}
		if err := json.Unmarshal(text, &rec.Input); err != nil {
			rec.Err = fmt.Errorf("line %d: invalid product: %w", line, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading import file: %w", err)
	}

	return records, nil
}
