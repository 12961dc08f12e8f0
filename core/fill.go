package core

import (
	"errors"
	"fmt"

	"github.com/9003755/excel-tool/config"
)

// ErrNoSheet is returned when a document has no sheet to operate on.
var ErrNoSheet = errors.New("document has no sheets")

// ColumnMapping maps the four source fields A-D to destination template columns.
type ColumnMapping struct {
	A string `json:"A" yaml:"A"`
	B string `json:"B" yaml:"B"`
	C string `json:"C" yaml:"C"`
	D string `json:"D" yaml:"D"`
}

// DefaultColumnMapping writes A, B and C in place and moves field D to column G.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping(config.DefaultColumnMapping)
}

// Destinations lists the destination columns in source field order.
func (m ColumnMapping) Destinations() [4]string {
	return [4]string{m.A, m.B, m.C, m.D}
}

// FillColumn writes value into column for every row below the header until the
// first absent or falsy cell, bounded by rng's bottom row. Only Value changes;
// the cell keeps its type, formula, style and cached text. It returns the number
// of cells written.
func FillColumn(sheet *Sheet, column string, value string, rng Range) int {
	col, err := ColumnIndex(column)
	if err != nil || sheet == nil {
		return 0
	}
	written := 0
	for row := 1; row <= rng.End.Row; row++ {
		cell := sheet.Cell(Address{Col: col, Row: row})
		if !cell.Truthy() {
			break
		}
		cell.Value = value
		written++
	}
	return written
}

// FillRow applies one source row to the first sheet of doc using mapping.
// It returns the total number of cells written.
func FillRow(doc *Document, row SourceRow, mapping ColumnMapping) (int, error) {
	sheet := doc.FirstSheet()
	if sheet == nil {
		return 0, ErrNoSheet
	}
	rng := sheet.Range()
	total := 0
	for i, column := range mapping.Destinations() {
		if _, err := ColumnIndex(column); err != nil {
			return total, fmt.Errorf("field %c mapped to invalid column %q: %w", 'A'+i, column, err)
		}
		total += FillColumn(sheet, column, row.Fields[i], rng)
	}
	return total, nil
}
