package core

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// CloneDocument returns a copy of doc that shares no mutable storage with it.
// Every cell is duplicated through Cell.Clone; sheet metadata (declared range,
// margins, merged ranges) is copied as-is. The Source container is shared
// because nothing ever writes to it.
func CloneDocument(doc *Document) (*Document, error) {
	if doc == nil {
		return nil, nil
	}
	cloned := &Document{
		Name:   doc.Name,
		Source: doc.Source,
		Sheets: make([]*Sheet, 0, len(doc.Sheets)),
	}
	for _, sheet := range doc.Sheets {
		if sheet == nil {
			continue
		}
		cs, err := cloneSheet(sheet)
		if err != nil {
			return nil, fmt.Errorf("clone sheet %s: %w", sheet.Name, err)
		}
		cloned.Sheets = append(cloned.Sheets, cs)
	}
	return cloned, nil
}

func cloneSheet(sheet *Sheet) (*Sheet, error) {
	cs := &Sheet{
		Name:  sheet.Name,
		Ref:   sheet.Ref,
		Cells: make(map[Address]*Cell, len(sheet.Cells)),
	}
	if err := deepcopy.Copy(&cs.Meta, sheet.Meta); err != nil {
		return nil, err
	}
	for addr, cell := range sheet.Cells {
		if cell == nil {
			continue
		}
		cs.Cells[addr] = cell.Clone()
	}
	return cs, nil
}
