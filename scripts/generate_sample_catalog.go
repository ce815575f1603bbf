package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"storefront-client/internal/model"

	"github.com/shopspring/decimal"
)

// generateSampleCatalog writes a gzipped JSON-lines catalog for import-catalog.
// Lines 1-4 are valid, line 5 fails validation (name too short) and line 6
// repeats line 1's name.
func main() {
	dataDir := "data/catalog"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []model.ProductInput{
		{Name: "Desk Lamp", Description: "Adjustable LED desk lamp with warm light", Price: decimal.RequireFromString("39.99"), Image: "https://images.example.com/desk-lamp.jpg"},
		{Name: "Ceramic Mug", Description: "Hand glazed 350ml coffee mug", Price: decimal.RequireFromString("12.50"), Image: "https://images.example.com/mug.jpg"},
		{Name: "Notebook", Description: "A5 dotted notebook, 160 pages", Price: decimal.RequireFromString("8"), Image: "https://images.example.com/notebook.jpg"},
		{Name: "Wireless Mouse", Description: "Silent click 2.4GHz wireless mouse", Price: decimal.RequireFromString("24.95"), Image: "https://images.example.com/mouse.jpg"},
		{Name: "TV", Description: "Name is too short to import", Price: decimal.RequireFromString("499"), Image: "https://images.example.com/tv.jpg"},
		{Name: "Desk Lamp", Description: "Duplicate of the first line", Price: decimal.RequireFromString("45"), Image: "https://images.example.com/desk-lamp-2.jpg"},
	}

	filePath := filepath.Join(dataDir, "sample.jsonl.gz")
	if err := createCatalogFile(filePath, products); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(products))
	fmt.Println("\nExpected import result: 4 created, 2 rejected")
	fmt.Printf("\nRun: storefront import-catalog %s\n", filePath)
}

func createCatalogFile(filePath string, products []model.ProductInput) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, p := range products {
		if err := encoder.Encode(p); err != nil {
			return fmt.Errorf("failed to write product: %w", err)
		}
	}

	return nil
}
