package core

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ValueType is the primitive kind of a cell value.
type ValueType string

const (
	TypeBlank  ValueType = "blank"
	TypeString ValueType = "string"
	TypeNumber ValueType = "number"
	TypeBool   ValueType = "bool"
	TypeDate   ValueType = "date"
	TypeError  ValueType = "error"
)

// Cell carries a value plus every attribute the codec round-trips.
// Value is the raw logical value as text: numbers and dates keep their serial form.
type Cell struct {
	Value      string
	Type       ValueType
	Formula    string // without the leading '='
	NumFmtID   int
	NumFmtCode string // custom number format code, empty for built-in formats
	StyleID    int
	Text       string // cached display text, number format applied
	Hyperlink  string
}

// Clone returns a field-by-field copy of c.
// New attributes must be added here, otherwise clones silently drop them.
func (c *Cell) Clone() *Cell {
	if c == nil {
		return nil
	}
	return &Cell{
		Value:      c.Value,
		Type:       c.Type,
		Formula:    c.Formula,
		NumFmtID:   c.NumFmtID,
		NumFmtCode: c.NumFmtCode,
		StyleID:    c.StyleID,
		Text:       c.Text,
		Hyperlink:  c.Hyperlink,
	}
}

// Truthy reports whether the cell holds a value that marks live template content.
// Absent cells, blanks, empty strings, numeric zero and boolean false are all falsy.
func (c *Cell) Truthy() bool {
	if c == nil || c.Type == TypeBlank || c.Value == "" {
		return false
	}
	switch c.Type {
	case TypeNumber, TypeDate:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
		if err != nil {
			return true
		}
		return f != 0 && !math.IsNaN(f)
	case TypeBool:
		b, err := strconv.ParseBool(c.Value)
		return err != nil || b
	}
	return true
}

// DisplayText prefers the codec-formatted text and falls back to the raw value.
func (c *Cell) DisplayText() string {
	if c == nil {
		return ""
	}
	if c.Text != "" {
		return c.Text
	}
	return c.Value
}

// SheetMeta holds sheet-level properties that are copied verbatim, never recomputed.
type SheetMeta struct {
	Margins    excelize.PageLayoutMarginsOptions
	MergeCells []string
	Hidden     bool
}

// Sheet is a sparse cell map plus its declared occupied range.
type Sheet struct {
	Name  string
	Ref   string
	Cells map[Address]*Cell
	Meta  SheetMeta
}

// NewSheet creates an empty sheet declaring the single cell A1.
func NewSheet(name string) *Sheet {
	return &Sheet{
		Name:  name,
		Ref:   "A1:A1",
		Cells: make(map[Address]*Cell),
	}
}

// Range decodes the sheet's declared range.
func (s *Sheet) Range() Range {
	return DecodeRange(s.Ref)
}

// Cell returns the cell at a, or nil when unmapped.
func (s *Sheet) Cell(a Address) *Cell {
	return s.Cells[a]
}

// SetCell stores c at a and widens the declared range when needed.
func (s *Sheet) SetCell(a Address, c *Cell) {
	s.Cells[a] = c
	r := s.Range()
	if !r.Contains(a) {
		s.Ref = EncodeRange(r.Union(Range{Start: a, End: a}))
	}
}

// Addresses returns every mapped address in row-major order.
func (s *Sheet) Addresses() []Address {
	addrs := make([]Address, 0, len(s.Cells))
	for a := range s.Cells {
		addrs = append(addrs, a)
	}
	slices.SortFunc(addrs, Address.Compare)
	return addrs
}

// Document is an ordered collection of sheets decoded from one container.
// Source is the container the document came from and is treated as read-only.
type Document struct {
	Name   string
	Sheets []*Sheet
	Source []byte
}

// FirstSheet returns the only sheet this engine reads or writes.
func (d *Document) FirstSheet() *Sheet {
	if d == nil || len(d.Sheets) == 0 {
		return nil
	}
	return d.Sheets[0]
}

// FileData is a named output buffer ready for packaging or upload.
type FileData struct {
	Name         string
	Data         []byte
	Size         int
	LastModified time.Time
}

// NewFileData wraps data with its declared size.
func NewFileData(name string, data []byte) FileData {
	return FileData{
		Name:         name,
		Data:         data,
		Size:         len(data),
		LastModified: time.Now(),
	}
}
