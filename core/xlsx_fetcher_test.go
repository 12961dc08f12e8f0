package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestXlsxRowFetcher_Fetch(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Name", "Aircraft", "Base", "Route"},
		{"Alice", "B-1234", "PEK", "PEK-SHA"},
		{"Bob", 5678, "", 1234.5},
	}, func(f *excelize.File) {
		numFmt := "#,##0.00"
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
		if err != nil {
			t.Fatalf("new style: %v", err)
		}
		if err := f.SetCellStyle("Sheet1", "D3", "D3", style); err != nil {
			t.Fatalf("set style: %v", err)
		}
		// Only the first sheet is read.
		if _, err := f.NewSheet("Other"); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		if err := f.SetCellValue("Other", "A2", "Mallory"); err != nil {
			t.Fatalf("set other: %v", err)
		}
	})
	path := filepath.Join(t.TempDir(), "pilots.xlsx")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	records, err := NewXlsxRowFetcher(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	rows := ParseSourceRows(records)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1].Name != "Bob" || rows[1].Fields[1] != "5678" {
		t.Errorf("Bob row = %+v", rows[1])
	}
	if rows[1].Fields[3] != "1234.5" {
		t.Errorf("Bob route = %q, want raw 1234.5 without the sheet's number format", rows[1].Fields[3])
	}
}

func TestXlsxRowFetcher_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewXlsxRowFetcher(filepath.Join(dir, "missing.xlsx")).Fetch(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ReadWorkbookRows([]byte("plain text")); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("error = %v, want ErrInvalidFormat", err)
	}
}
