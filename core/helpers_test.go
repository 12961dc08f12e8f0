package core

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// newTestSheet builds a sheet from A1 references. Values are string cells
// unless given as *Cell.
func newTestSheet(t *testing.T, ref string, cells map[string]interface{}) *Sheet {
	t.Helper()
	sheet := NewSheet("Sheet1")
	sheet.Ref = ref
	for name, v := range cells {
		addr, err := ParseAddress(name)
		if err != nil {
			t.Fatalf("bad test address %s: %v", name, err)
		}
		switch c := v.(type) {
		case *Cell:
			sheet.Cells[addr] = c
		case string:
			sheet.Cells[addr] = &Cell{Value: c, Type: TypeString}
		default:
			t.Fatalf("unsupported test value %T", v)
		}
	}
	return sheet
}

func cellAt(t *testing.T, sheet *Sheet, ref string) *Cell {
	t.Helper()
	addr, err := ParseAddress(ref)
	if err != nil {
		t.Fatalf("bad test address %s: %v", ref, err)
	}
	return sheet.Cell(addr)
}

// buildWorkbook writes rows into Sheet1 of a new workbook and returns its bytes.
func buildWorkbook(t *testing.T, rows [][]interface{}, setup func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	if setup != nil {
		setup(f)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func readWorkbookCell(t *testing.T, data []byte, ref string) string {
	t.Helper()
	wb, err := openExcelBytes(data)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()
	v, err := wb.GetCellValue("Sheet1", ref, false)
	if err != nil {
		t.Fatalf("read %s: %v", ref, err)
	}
	return v
}

// readWorkbookFormula returns the raw cached value and formula at ref.
func readWorkbookFormula(t *testing.T, data []byte, ref string) (string, string) {
	t.Helper()
	wb, err := openExcelBytes(data)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()
	raw, err := wb.GetCellValue("Sheet1", ref, true)
	if err != nil {
		t.Fatalf("read %s: %v", ref, err)
	}
	formula, err := wb.GetCellFormula("Sheet1", ref)
	if err != nil {
		t.Fatalf("read formula %s: %v", ref, err)
	}
	return raw, formula
}
