package core

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Address is a zero-based cell coordinate. A1 is {Col: 0, Row: 0}.
type Address struct {
	Col int
	Row int
}

// String renders the address in A1 notation.
func (a Address) String() string {
	name, err := excelize.CoordinatesToCellName(a.Col+1, a.Row+1)
	if err != nil {
		return ""
	}
	return name
}

// Compare orders addresses row-major.
func (a Address) Compare(b Address) int {
	switch {
	case a.Row < b.Row:
		return -1
	case a.Row > b.Row:
		return 1
	case a.Col < b.Col:
		return -1
	case a.Col > b.Col:
		return 1
	}
	return 0
}

// ParseAddress parses an A1-style cell reference.
func ParseAddress(ref string) (Address, error) {
	col, row, err := excelize.CellNameToCoordinates(strings.TrimSpace(ref))
	if err != nil {
		return Address{}, fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}
	return Address{Col: col - 1, Row: row - 1}, nil
}

// ColumnLetter converts a zero-based column index to its letter form (0 -> A, 26 -> AA).
// Indexes past the spreadsheet column ceiling yield an empty string.
func ColumnLetter(index int) string {
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return ""
	}
	return name
}

// ColumnIndex is the inverse of ColumnLetter.
func ColumnIndex(letters string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(letters))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// Range is an inclusive rectangular extent.
type Range struct {
	Start Address
	End   Address
}

// Contains reports whether a lies inside r.
func (r Range) Contains(a Address) bool {
	return a.Col >= r.Start.Col && a.Col <= r.End.Col &&
		a.Row >= r.Start.Row && a.Row <= r.End.Row
}

// Union returns the smallest range covering both r and o.
func (r Range) Union(o Range) Range {
	return Range{
		Start: Address{Col: min(r.Start.Col, o.Start.Col), Row: min(r.Start.Row, o.Start.Row)},
		End:   Address{Col: max(r.End.Col, o.End.Col), Row: max(r.End.Row, o.End.Row)},
	}
}

// DecodeRange parses "A1:G33" (or a single "C5"). Absent or malformed input falls
// back to the single cell A1; fill and substitution bound themselves by template content.
func DecodeRange(text string) Range {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) == 0 || len(parts) > 2 {
		return Range{}
	}
	start, err := ParseAddress(parts[0])
	if err != nil {
		return Range{}
	}
	end := start
	if len(parts) == 2 {
		if end, err = ParseAddress(parts[1]); err != nil {
			return Range{}
		}
	}
	return Range{
		Start: Address{Col: min(start.Col, end.Col), Row: min(start.Row, end.Row)},
		End:   Address{Col: max(start.Col, end.Col), Row: max(start.Row, end.Row)},
	}
}

// EncodeRange renders r as "TL:BR".
func EncodeRange(r Range) string {
	return r.Start.String() + ":" + r.End.String()
}
