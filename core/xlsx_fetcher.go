package core

import (
	"context"
	"fmt"
	"os"
)

// XlsxRowFetcher implements RowFetcher by reading the first sheet of a workbook.
type XlsxRowFetcher struct {
	Path string
}

func NewXlsxRowFetcher(path string) *XlsxRowFetcher {
	return &XlsxRowFetcher{Path: path}
}

func (f *XlsxRowFetcher) Fetch(ctx context.Context) ([][]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source workbook %s: %w", f.Path, err)
	}
	return ReadWorkbookRows(data)
}

// ReadWorkbookRows returns the formatted rows of the first sheet in data.
func ReadWorkbookRows(data []byte) (records [][]string, err error) {
	wb, err := openExcelBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer func(wb ExcelFile) {
		if closeErr := wb.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close source workbook: %w", closeErr)
		}
	}(wb)

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidFormat)
	}
	// Raw values: number formats of the source sheet are not applied.
	records, err = wb.GetRows(sheets[0], true)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", sheets[0], err)
	}
	return records, nil
}
