package core

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func styledTemplate(t *testing.T) []byte {
	t.Helper()
	rows := [][]interface{}{
		{"Pilot", "Hours", "Active", "Total"},
		{"x", 12, true},
	}
	return buildWorkbook(t, rows, func(f *excelize.File) {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			t.Fatalf("new style: %v", err)
		}
		if err := f.SetCellStyle("Sheet1", "A1", "D1", bold); err != nil {
			t.Fatalf("set style: %v", err)
		}
		dateFmt := "yyyy/m/d"
		dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
		if err != nil {
			t.Fatalf("new date style: %v", err)
		}
		if err := f.SetCellValue("Sheet1", "E2", 45366); err != nil {
			t.Fatalf("set date: %v", err)
		}
		if err := f.SetCellStyle("Sheet1", "E2", "E2", dateStyle); err != nil {
			t.Fatalf("set date style: %v", err)
		}
		if err := f.SetCellFormula("Sheet1", "D2", "B2*2"); err != nil {
			t.Fatalf("set formula: %v", err)
		}
		if err := f.MergeCell("Sheet1", "F1", "G1"); err != nil {
			t.Fatalf("merge: %v", err)
		}
		if err := f.SetCellValue("Sheet1", "H1", "docs"); err != nil {
			t.Fatalf("set link text: %v", err)
		}
		if err := f.SetCellHyperLink("Sheet1", "H1", "https://example.com", "External"); err != nil {
			t.Fatalf("set link: %v", err)
		}
	})
}

func TestExcelizeCodec_Decode(t *testing.T) {
	data := styledTemplate(t)
	doc, err := NewExcelizeCodec().Decode("template.xlsx", data)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if doc.Name != "template.xlsx" || len(doc.Sheets) != 1 {
		t.Fatalf("doc = %s with %d sheets", doc.Name, len(doc.Sheets))
	}
	sheet := doc.FirstSheet()

	if r := sheet.Range(); r.End.Row < 1 || r.End.Col < 7 {
		t.Errorf("Ref = %s, want at least A1:H2", sheet.Ref)
	}

	a1 := cellAt(t, sheet, "A1")
	if a1 == nil || a1.Value != "Pilot" || a1.Type != TypeString || a1.StyleID == 0 {
		t.Errorf("A1 = %+v, want styled string Pilot", a1)
	}
	if b2 := cellAt(t, sheet, "B2"); b2 == nil || b2.Value != "12" || b2.Type != TypeNumber {
		t.Errorf("B2 = %+v, want number 12", b2)
	}
	if c2 := cellAt(t, sheet, "C2"); c2 == nil || c2.Type != TypeBool || !c2.Truthy() {
		t.Errorf("C2 = %+v, want true bool", c2)
	}
	if d2 := cellAt(t, sheet, "D2"); d2 == nil || d2.Formula != "B2*2" {
		t.Errorf("D2 = %+v, want formula B2*2", d2)
	}
	e2 := cellAt(t, sheet, "E2")
	if e2 == nil || e2.NumFmtCode != "yyyy/m/d" {
		t.Fatalf("E2 = %+v, want custom date format", e2)
	}
	if e2.DisplayText() != "2024/3/15" {
		t.Errorf("E2 text = %q, want 2024/3/15", e2.DisplayText())
	}
	if h1 := cellAt(t, sheet, "H1"); h1 == nil || h1.Hyperlink != "https://example.com" {
		t.Errorf("H1 = %+v, want hyperlink", h1)
	}
	if len(sheet.Meta.MergeCells) != 1 || sheet.Meta.MergeCells[0] != "F1:G1" {
		t.Errorf("merges = %v, want [F1:G1]", sheet.Meta.MergeCells)
	}
	if cellAt(t, sheet, "A3") != nil {
		t.Error("A3 should be unmapped")
	}
}

func TestExcelizeCodec_EncodeKeepsFormatting(t *testing.T) {
	codec := NewExcelizeCodec()
	doc, err := codec.Decode("template.xlsx", styledTemplate(t))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	sheet := doc.FirstSheet()
	styleA1 := cellAt(t, sheet, "A1").StyleID

	cellAt(t, sheet, "A2").Value = "Alice"
	e2 := cellAt(t, sheet, "E2")
	e2.Value, e2.Type = "2024/9/15", TypeString
	sheet.SetCell(Address{Col: 0, Row: 3}, &Cell{Value: "appended", Type: TypeString, StyleID: styleA1})

	data, err := codec.Encode(doc)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	out, err := codec.Decode("out.xlsx", data)
	if err != nil {
		t.Fatalf("Decode output error: %v", err)
	}
	got := out.FirstSheet()

	tests := []struct {
		ref  string
		want string
	}{
		{"A1", "Pilot"},
		{"A2", "Alice"},
		{"B2", "12"},
		{"E2", "2024/9/15"},
		{"A4", "appended"},
	}
	for _, tt := range tests {
		if c := cellAt(t, got, tt.ref); c == nil || c.Value != tt.want {
			t.Errorf("%s = %+v, want %q", tt.ref, c, tt.want)
		}
	}
	if c := cellAt(t, got, "A1"); c.StyleID != styleA1 {
		t.Errorf("A1 style = %d, want %d", c.StyleID, styleA1)
	}
	if c := cellAt(t, got, "E2"); c.Type != TypeString || c.NumFmtCode != "yyyy/m/d" {
		t.Errorf("E2 = %+v, want string keeping its number format", c)
	}
	if c := cellAt(t, got, "D2"); c.Formula != "B2*2" {
		t.Errorf("D2 formula = %q, want B2*2", c.Formula)
	}
	if c := cellAt(t, got, "A4"); c.StyleID != styleA1 {
		t.Errorf("A4 style = %d, want %d", c.StyleID, styleA1)
	}
	if len(got.Meta.MergeCells) != 1 {
		t.Errorf("merges = %v, want one", got.Meta.MergeCells)
	}
	if r := got.Range(); r.End.Row != 3 {
		t.Errorf("Ref = %s, want bottom row 4", got.Ref)
	}
}

func TestExcelizeCodec_EncodeFormulaCells(t *testing.T) {
	codec := NewExcelizeCodec()
	doc, err := codec.Decode("template.xlsx", styledTemplate(t))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	sheet := doc.FirstSheet()
	g2, err := ParseAddress("G2")
	if err != nil {
		t.Fatal(err)
	}
	sheet.SetCell(g2, &Cell{Value: "x", Type: TypeString, Formula: `A2&"-route"`})
	if n := FillColumn(sheet, "G", "PEK-SHA", sheet.Range()); n != 1 {
		t.Fatalf("filled %d cells, want 1", n)
	}
	// Appended copies of formulas, one never calculated and one with a numeric result.
	sheet.SetCell(Address{Col: 3, Row: 2}, &Cell{Type: TypeString, Formula: "B2*2"})
	sheet.SetCell(Address{Col: 3, Row: 3}, &Cell{Value: "24", Type: TypeNumber, Formula: "B2*2"})

	data, err := codec.Encode(doc)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	tests := []struct {
		ref         string
		wantRaw     string
		wantFormula string
	}{
		{"G2", "", `A2&"-route"`},
		{"D2", "", "B2*2"},
		{"D3", "", "B2*2"},
		{"D4", "24", "B2*2"},
	}
	for _, tt := range tests {
		raw, formula := readWorkbookFormula(t, data, tt.ref)
		if raw != tt.wantRaw || formula != tt.wantFormula {
			t.Errorf("%s = %q (formula %q), want %q (formula %q)", tt.ref, raw, formula, tt.wantRaw, tt.wantFormula)
		}
	}

	wb, err := openExcelBytes(data)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer wb.Close()
	props, err := wb.GetCalcProps()
	if err != nil {
		t.Fatalf("GetCalcProps error: %v", err)
	}
	if props.FullCalcOnLoad == nil || !*props.FullCalcOnLoad {
		t.Error("output should request a full calculation on load")
	}
}

func TestExcelizeCodec_EncodeUnchangedSkipsRecalc(t *testing.T) {
	codec := NewExcelizeCodec()
	doc, err := codec.Decode("template.xlsx", styledTemplate(t))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	cellAt(t, doc.FirstSheet(), "A2").Value = "Alice"
	data, err := codec.Encode(doc)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	wb, err := openExcelBytes(data)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer wb.Close()
	props, err := wb.GetCalcProps()
	if err != nil {
		t.Fatalf("GetCalcProps error: %v", err)
	}
	if props.FullCalcOnLoad != nil && *props.FullCalcOnLoad {
		t.Error("full calculation requested although no formula was rewritten")
	}
}

func TestExcelizeCodec_Errors(t *testing.T) {
	codec := NewExcelizeCodec()

	_, err := codec.Decode("broken.xlsx", []byte("not a zip"))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Decode error = %v, want ErrInvalidFormat", err)
	}

	if _, err := codec.Encode(&Document{Name: "empty.xlsx"}); err == nil {
		t.Error("expected error encoding a document without source")
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.xlsx", "Excel 2007+ (.xlsx)"},
		{"A.XLS", "Excel 97-2003 (.xls)"},
		{"b.et", "WPS Office (.et)"},
		{"c.ett", "WPS Template (.ett)"},
		{"d.txt", "unknown (.txt)"},
	}
	for _, tt := range tests {
		if got := FormatLabel(tt.name); got != tt.want {
			t.Errorf("FormatLabel(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
