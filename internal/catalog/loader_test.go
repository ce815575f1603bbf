package catalog

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestCatalogFile writes lines to a temp file, gzipped when compress is set.
func createTestCatalogFile(t *testing.T, filename string, lines []string, compress bool) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()

	payload := []byte(strings.Join(lines, "\n") + "\n")
	if !compress {
		_, err = file.Write(payload)
		require.NoError(t, err)
		return filePath
	}

	gzipWriter := gzip.NewWriter(file)
	_, err = gzipWriter.Write(payload)
	require.NoError(t, err)
	require.NoError(t, gzipWriter.Close())

	return filePath
}

var sampleLines = []string{
	`{"name":"Desk Lamp","description":"Warm LED light","price":49.99,"image":"https://img.example.com/lamp.png"}`,
	``,
	`{"name":"Oak Desk","description":"Solid wood writing desk","price":"300","image":"https://img.example.com/desk.png"}`,
	`   `,
	`not json`,
}

func TestFileLoader_Load(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		compress bool
	}{
		{name: "Gzipped", filename: "catalog.jsonl.gz", compress: true},
		{name: "Plain", filename: "catalog.jsonl", compress: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewFileLoader(zerolog.Nop())
			filePath := createTestCatalogFile(t, tt.filename, sampleLines, tt.compress)

			records, err := loader.Load(context.Background(), filePath)

			require.NoError(t, err)
			require.Len(t, records, 3)

			assert.Equal(t, 1, records[0].Line)
			assert.Equal(t, "Desk Lamp", records[0].Input.Name)
			assert.Equal(t, "49.99", records[0].Input.Price.String())
			assert.NoError(t, records[0].Err)

			assert.Equal(t, 3, records[1].Line)
			assert.Equal(t, "300", records[1].Input.Price.String())

			assert.Equal(t, 5, records[2].Line)
			assert.Error(t, records[2].Err)
			assert.Contains(t, records[2].Err.Error(), "line 5")
		})
	}
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	records, err := loader.Load(context.Background(), "/nonexistent/catalog.jsonl.gz")

	assert.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "failed to open catalog file")
}

func TestFileLoader_Load_CorruptGzip(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "corrupt.gz")
	require.NoError(t, os.WriteFile(filePath, []byte{0x1f, 0x8b, 0x00, 0x01}, 0o644))

	_, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), filePath)

	assert.Error(t, err)
}

func TestFileLoader_Load_EmptyFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, os.WriteFile(filePath, nil, 0o644))

	records, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Empty(t, records)
}
