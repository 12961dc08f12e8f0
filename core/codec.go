package core

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Codec converts between container bytes and the in-memory document model.
type Codec interface {
	Decode(name string, data []byte) (*Document, error)
	Encode(doc *Document) ([]byte, error)
}

// ExcelizeCodec reads and writes OOXML workbooks.
//
// Encoding reopens the document's Source container and writes back every cell
// that differs from it, so workbook-level parts the model does not carry
// (style tables, themes, column widths, defined names) survive untouched.
type ExcelizeCodec struct{}

// NewExcelizeCodec creates a new codec.
func NewExcelizeCodec() *ExcelizeCodec {
	return &ExcelizeCodec{}
}

// FormatLabel names the container kind implied by a file name.
func FormatLabel(fileName string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	switch ext {
	case "xlsx":
		return "Excel 2007+ (.xlsx)"
	case "xlsm":
		return "Excel macro-enabled (.xlsm)"
	case "xls":
		return "Excel 97-2003 (.xls)"
	case "et":
		return "WPS Office (.et)"
	case "ett":
		return "WPS Template (.ett)"
	case "csv":
		return "CSV (.csv)"
	case "ods":
		return "OpenDocument (.ods)"
	default:
		return fmt.Sprintf("unknown (.%s)", ext)
	}
}

// Decode parses data into a document. Sheets keep workbook order.
func (c *ExcelizeCodec) Decode(name string, data []byte) (doc *Document, err error) {
	f, err := openExcelBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer func(f ExcelFile) {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}(f)

	doc = &Document{Name: name, Source: data}
	for _, sheetName := range f.GetSheetList() {
		sheet, err := decodeSheet(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("decoding sheet %s: %w", sheetName, err)
		}
		doc.Sheets = append(doc.Sheets, sheet)
	}
	if len(doc.Sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidFormat)
	}
	return doc, nil
}

func decodeSheet(f ExcelFile, name string) (*Sheet, error) {
	sheet := NewSheet(name)

	extent := Range{}
	if dim, err := f.GetSheetDimension(name); err == nil && dim != "" {
		extent = DecodeRange(dim)
	}
	rows, err := f.GetRows(name, true)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) > 0 {
			extent = extent.Union(Range{End: Address{Col: len(row) - 1, Row: r}})
		}
	}
	sheet.Ref = EncodeRange(extent)

	numFmts := make(map[int]numFmt)
	for row := extent.Start.Row; row <= extent.End.Row; row++ {
		for col := extent.Start.Col; col <= extent.End.Col; col++ {
			addr := Address{Col: col, Row: row}
			cell, err := readCell(f, name, addr.String())
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", addr, err)
			}
			if cell.Value == "" && cell.Formula == "" && cell.StyleID == 0 && cell.Hyperlink == "" {
				continue
			}
			if cell.StyleID != 0 {
				nf, ok := numFmts[cell.StyleID]
				if !ok {
					nf = numberFormat(f, cell.StyleID)
					numFmts[cell.StyleID] = nf
				}
				cell.NumFmtID, cell.NumFmtCode = nf.id, nf.code
			}
			sheet.Cells[addr] = cell
		}
	}

	if margins, err := f.GetPageMargins(name); err == nil {
		sheet.Meta.Margins = margins
	}
	if merges, err := f.GetMergeCells(name); err == nil {
		for _, mc := range merges {
			sheet.Meta.MergeCells = append(sheet.Meta.MergeCells, mc.GetStartAxis()+":"+mc.GetEndAxis())
		}
	}
	if visible, err := f.GetSheetVisible(name); err == nil {
		sheet.Meta.Hidden = !visible
	}
	return sheet, nil
}

// readCell reads the attributes of one cell. Number format fields are left zero.
func readCell(f ExcelFile, sheet, ref string) (*Cell, error) {
	raw, err := f.GetCellValue(sheet, ref, true)
	if err != nil {
		return nil, err
	}
	text, err := f.GetCellValue(sheet, ref, false)
	if err != nil {
		return nil, err
	}
	cellType, err := f.GetCellType(sheet, ref)
	if err != nil {
		return nil, err
	}
	formula, err := f.GetCellFormula(sheet, ref)
	if err != nil {
		return nil, err
	}
	styleID, err := f.GetCellStyle(sheet, ref)
	if err != nil {
		return nil, err
	}
	_, link, err := f.GetCellHyperLink(sheet, ref)
	if err != nil {
		return nil, err
	}
	cell := &Cell{
		Value:     raw,
		Type:      valueType(cellType, raw),
		Formula:   formula,
		StyleID:   styleID,
		Hyperlink: link,
	}
	if text != raw {
		cell.Text = text
	}
	return cell, nil
}

func valueType(t excelize.CellType, raw string) ValueType {
	switch t {
	case excelize.CellTypeBool:
		return TypeBool
	case excelize.CellTypeDate:
		return TypeDate
	case excelize.CellTypeError:
		return TypeError
	case excelize.CellTypeNumber:
		return TypeNumber
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return TypeString
	}
	if raw == "" {
		return TypeBlank
	}
	return TypeNumber
}

type numFmt struct {
	id   int
	code string
}

// numberFormat resolves the built-in id and custom code of a style.
func numberFormat(f ExcelFile, styleID int) numFmt {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return numFmt{}
	}
	nf := numFmt{id: style.NumFmt}
	if style.CustomNumFmt != nil {
		nf.code = *style.CustomNumFmt
	}
	return nf
}

// Encode writes doc on top of its Source container.
func (c *ExcelizeCodec) Encode(doc *Document) (data []byte, err error) {
	if doc == nil || len(doc.Source) == 0 {
		return nil, fmt.Errorf("document has no source container to encode onto")
	}
	f, err := openExcelBytes(doc.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer func(f ExcelFile) {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}(f)

	recalc := false
	for _, sheet := range doc.Sheets {
		rewritten, err := encodeSheet(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("encoding sheet %s: %w", sheet.Name, err)
		}
		recalc = recalc || rewritten
	}
	if recalc {
		// Rewritten formulas may carry an empty cached result.
		fullCalc := true
		if err := f.SetCalcProps(&excelize.CalcPropsOptions{FullCalcOnLoad: &fullCalc}); err != nil {
			return nil, fmt.Errorf("calc properties: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeSheet reports whether any formula cell was rewritten.
func encodeSheet(f ExcelFile, sheet *Sheet) (bool, error) {
	rewritten := false
	for _, addr := range sheet.Addresses() {
		ref := addr.String()
		if ref == "" {
			return false, fmt.Errorf("address %v out of bounds", addr)
		}
		formula, err := writeCell(f, sheet.Name, ref, sheet.Cells[addr])
		if err != nil {
			return false, fmt.Errorf("cell %s: %w", ref, err)
		}
		rewritten = rewritten || formula
	}

	existing := make(map[string]struct{})
	if merges, err := f.GetMergeCells(sheet.Name); err == nil {
		for _, mc := range merges {
			existing[mc.GetStartAxis()+":"+mc.GetEndAxis()] = struct{}{}
		}
	}
	for _, ref := range sheet.Meta.MergeCells {
		if _, ok := existing[ref]; ok {
			continue
		}
		parts := strings.Split(ref, ":")
		if len(parts) != 2 {
			continue
		}
		if err := f.MergeCell(sheet.Name, parts[0], parts[1]); err != nil {
			return false, fmt.Errorf("merge %s: %w", ref, err)
		}
	}

	if hasMargins(sheet.Meta.Margins) {
		margins := sheet.Meta.Margins
		if err := f.SetPageMargins(sheet.Name, &margins); err != nil {
			return false, fmt.Errorf("page margins: %w", err)
		}
	}
	if visible, err := f.GetSheetVisible(sheet.Name); err == nil && visible == sheet.Meta.Hidden {
		if err := f.SetSheetVisible(sheet.Name, !sheet.Meta.Hidden); err != nil {
			return false, fmt.Errorf("visibility: %w", err)
		}
	}
	if sheet.Ref != "" {
		if err := f.SetSheetDimension(sheet.Name, sheet.Ref); err != nil {
			return false, fmt.Errorf("dimension %s: %w", sheet.Ref, err)
		}
	}
	return rewritten, nil
}

// writeCell writes c over whatever the container holds at ref. Cells identical to
// the container are skipped so shared formulas and rich text stay intact. It
// reports whether a formula was rewritten.
func writeCell(f ExcelFile, sheet, ref string, c *Cell) (bool, error) {
	current, err := readCell(f, sheet, ref)
	if err != nil {
		return false, err
	}
	valueChanged := current.Value != c.Value || current.Type != c.Type
	formula := c.Formula != "" && (valueChanged || current.Formula != c.Formula)
	if formula {
		if err := writeFormula(f, sheet, ref, c); err != nil {
			return false, err
		}
	} else if valueChanged && c.Formula == "" {
		if err := writeValue(f, sheet, ref, c); err != nil {
			return false, err
		}
	}
	if valueChanged || formula || current.StyleID != c.StyleID {
		if err := f.SetCellStyle(sheet, ref, ref, c.StyleID); err != nil {
			return false, err
		}
	}
	if c.Hyperlink != "" && current.Hyperlink != c.Hyperlink {
		if err := f.SetCellHyperLink(sheet, ref, c.Hyperlink, linkType(c.Hyperlink)); err != nil {
			return false, err
		}
	}
	return formula, nil
}

// writeFormula resets the container cell and attaches the formula. A numeric
// cached result is kept; anything else would end up as a bare <v> of a str cell
// (a shared string index, or nothing for inline text), so it is cleared and left
// to recalculation.
func writeFormula(f ExcelFile, sheet, ref string, c *Cell) error {
	cached := ""
	if _, err := strconv.ParseFloat(c.Value, 64); err == nil {
		cached = c.Value
	}
	if err := f.SetCellDefault(sheet, ref, cached); err != nil {
		return err
	}
	return f.SetCellFormula(sheet, ref, c.Formula)
}

func writeValue(f ExcelFile, sheet, ref string, c *Cell) error {
	switch c.Type {
	case TypeString:
		return f.SetCellStr(sheet, ref, c.Value)
	case TypeBool:
		if b, err := strconv.ParseBool(c.Value); err == nil {
			return f.SetCellBool(sheet, ref, b)
		}
	case TypeDate:
		if t, err := time.Parse(time.RFC3339, c.Value); err == nil {
			return f.SetCellValue(sheet, ref, t)
		}
	case TypeBlank:
		if c.Value == "" {
			return f.SetCellValue(sheet, ref, nil)
		}
	}
	return f.SetCellDefault(sheet, ref, c.Value)
}

func linkType(link string) string {
	if strings.Contains(link, "://") || strings.HasPrefix(strings.ToLower(link), "mailto:") {
		return "External"
	}
	return "Location"
}

func hasMargins(m excelize.PageLayoutMarginsOptions) bool {
	return m.Bottom != nil || m.Footer != nil || m.Header != nil || m.Left != nil ||
		m.Right != nil || m.Top != nil || m.Horizontally != nil || m.Vertically != nil
}
