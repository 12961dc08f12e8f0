package core

import (
	"errors"
	"testing"
)

func filledDoc(t *testing.T, name, ref string, extra map[string]interface{}) *Document {
	t.Helper()
	cells := map[string]interface{}{
		"A1": &Cell{Value: "Pilot", Type: TypeString, StyleID: 2},
		"A2": name, "B2": "B-1",
		"A3": name, "B3": "B-2",
	}
	for k, v := range extra {
		cells[k] = v
	}
	return &Document{Name: name, Sheets: []*Sheet{newTestSheet(t, ref, cells)}}
}

func TestMergeDocuments(t *testing.T) {
	alice := filledDoc(t, "Alice", "A1:C3", nil)
	bob := filledDoc(t, "Bob", "A1:D3", map[string]interface{}{"D2": "wide"})
	carol := filledDoc(t, "Carol", "A1:C3", nil)

	merged, err := MergeDocuments([]*Document{alice, bob, carol})
	if err != nil {
		t.Fatalf("MergeDocuments error: %v", err)
	}
	sheet := merged.FirstSheet()
	if sheet.Ref != "A1:C7" {
		t.Errorf("Ref = %s, want A1:C7", sheet.Ref)
	}

	tests := []struct {
		ref  string
		want string
	}{
		{"A1", "Pilot"},
		{"A2", "Alice"},
		{"A3", "Alice"},
		{"A4", "Bob"},
		{"B5", "B-2"},
		{"A6", "Carol"},
		{"A7", "Carol"},
	}
	for _, tt := range tests {
		c := cellAt(t, sheet, tt.ref)
		if c == nil || c.Value != tt.want {
			t.Errorf("%s = %+v, want %q", tt.ref, c, tt.want)
		}
	}
	if c := cellAt(t, sheet, "D4"); c != nil {
		t.Errorf("D4 = %+v, want truncated", c)
	}

	// Appended cells are copies.
	cellAt(t, sheet, "A4").Value = "changed"
	if v := cellAt(t, bob.FirstSheet(), "A2").Value; v != "Bob" {
		t.Errorf("source document modified: %q", v)
	}
	if alice.FirstSheet().Ref != "A1:C3" || len(alice.FirstSheet().Cells) != 5 {
		t.Errorf("base document modified: %s, %d cells", alice.FirstSheet().Ref, len(alice.FirstSheet().Cells))
	}
}

func TestMergeDocumentsSingle(t *testing.T) {
	alice := filledDoc(t, "Alice", "A1:C3", nil)
	merged, err := MergeDocuments([]*Document{alice})
	if err != nil {
		t.Fatalf("MergeDocuments error: %v", err)
	}
	if got := merged.FirstSheet().Ref; got != "A1:C3" {
		t.Errorf("Ref = %s, want A1:C3", got)
	}
	if got := len(merged.FirstSheet().Cells); got != 5 {
		t.Errorf("cells = %d, want 5", got)
	}
}

func TestMergeDocumentsErrors(t *testing.T) {
	if _, err := MergeDocuments(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}

	alice := filledDoc(t, "Alice", "A1:C3", nil)
	if _, err := MergeDocuments([]*Document{alice, {Name: "empty"}}); !errors.Is(err, ErrNoSheet) {
		t.Errorf("error = %v, want ErrNoSheet", err)
	}
	if _, err := MergeDocuments([]*Document{alice, nil}); !errors.Is(err, ErrNoSheet) {
		t.Errorf("nil document error = %v, want ErrNoSheet", err)
	}
	if _, err := MergeDocuments([]*Document{nil, alice}); !errors.Is(err, ErrNoSheet) {
		t.Errorf("nil base error = %v, want ErrNoSheet", err)
	}
}
