package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// CsvRowFetcher implements RowFetcher using a CSV file.
type CsvRowFetcher struct {
	Path string
}

func NewCsvRowFetcher(path string) *CsvRowFetcher {
	return &CsvRowFetcher{Path: path}
}

func (f *CsvRowFetcher) Fetch(ctx context.Context) ([][]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file %s: %w", f.Path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Rows may be ragged; short rows read as empty trailing fields.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv content: %w", err)
	}
	return records, nil
}
