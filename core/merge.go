package core

import "fmt"

// MergeDocuments concatenates the data rows of docs into one document.
//
// The first document is cloned as the base and keeps its header and formatting.
// Every later document contributes rows 1 through its declared bottom row, in
// order, appended after the base's declared bottom row. Only columns up to the
// base's rightmost declared column are copied; wider rows are truncated since
// all documents come from the same template.
func MergeDocuments(docs []*Document) (*Document, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyInput
	}
	merged, err := CloneDocument(docs[0])
	if err != nil {
		return nil, fmt.Errorf("clone base document: %w", err)
	}
	base := merged.FirstSheet()
	if base == nil {
		return nil, ErrNoSheet
	}

	baseRange := base.Range()
	cursor := baseRange.End.Row + 1

	for i, doc := range docs[1:] {
		if doc == nil {
			return nil, fmt.Errorf("document %d: %w", i+1, ErrNoSheet)
		}
		sheet := doc.FirstSheet()
		if sheet == nil {
			return nil, fmt.Errorf("document %d (%s): %w", i+1, doc.Name, ErrNoSheet)
		}
		rng := sheet.Range()
		for row := 1; row <= rng.End.Row; row++ {
			for col := 0; col <= baseRange.End.Col; col++ {
				if cell := sheet.Cell(Address{Col: col, Row: row}); cell != nil {
					base.Cells[Address{Col: col, Row: cursor}] = cell.Clone()
				}
			}
			cursor++
		}
	}

	base.Ref = EncodeRange(Range{
		Start: baseRange.Start,
		End:   Address{Col: baseRange.End.Col, Row: cursor - 1},
	})
	return merged, nil
}
