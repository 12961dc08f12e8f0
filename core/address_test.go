package core

import "testing"

func TestAddressConversions(t *testing.T) {
	tests := []struct {
		ref  string
		addr Address
	}{
		{"A1", Address{Col: 0, Row: 0}},
		{"G33", Address{Col: 6, Row: 32}},
		{"Z1", Address{Col: 25, Row: 0}},
		{"AA10", Address{Col: 26, Row: 9}},
	}
	for _, tt := range tests {
		got, err := ParseAddress(tt.ref)
		if err != nil {
			t.Fatalf("ParseAddress(%s) error: %v", tt.ref, err)
		}
		if got != tt.addr {
			t.Errorf("ParseAddress(%s) = %+v, want %+v", tt.ref, got, tt.addr)
		}
		if s := tt.addr.String(); s != tt.ref {
			t.Errorf("%+v.String() = %s, want %s", tt.addr, s, tt.ref)
		}
	}

	if _, err := ParseAddress("1A"); err == nil {
		t.Error("expected error for 1A")
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{6, "G"},
		{25, "Z"},
		{26, "AA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tt := range tests {
		if got := ColumnLetter(tt.index); got != tt.want {
			t.Errorf("ColumnLetter(%d) = %s, want %s", tt.index, got, tt.want)
		}
		if got, err := ColumnIndex(tt.want); err != nil || got != tt.index {
			t.Errorf("ColumnIndex(%s) = %d, %v, want %d", tt.want, got, err, tt.index)
		}
	}
	if got := ColumnLetter(-1); got != "" {
		t.Errorf("ColumnLetter(-1) = %q, want empty", got)
	}
}

func TestDecodeRange(t *testing.T) {
	tests := []struct {
		text string
		want Range
	}{
		{"A1:G33", Range{Start: Address{0, 0}, End: Address{6, 32}}},
		{"C5", Range{Start: Address{2, 4}, End: Address{2, 4}}},
		{"G33:A1", Range{Start: Address{0, 0}, End: Address{6, 32}}},
		{"", Range{}},
		{"garbage", Range{}},
		{"A1:B2:C3", Range{}},
	}
	for _, tt := range tests {
		if got := DecodeRange(tt.text); got != tt.want {
			t.Errorf("DecodeRange(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}

	r := Range{Start: Address{0, 0}, End: Address{6, 32}}
	if got := EncodeRange(r); got != "A1:G33" {
		t.Errorf("EncodeRange = %s, want A1:G33", got)
	}
	if got := DecodeRange(EncodeRange(r)); got != r {
		t.Errorf("round trip = %+v, want %+v", got, r)
	}
}

func TestRangeUnionContains(t *testing.T) {
	r := DecodeRange("B2:C3").Union(DecodeRange("E1"))
	if got := EncodeRange(r); got != "B1:E3" {
		t.Errorf("Union = %s, want B1:E3", got)
	}
	if !r.Contains(Address{Col: 3, Row: 1}) {
		t.Error("D2 should be inside B1:E3")
	}
	if r.Contains(Address{Col: 0, Row: 1}) {
		t.Error("A2 should be outside B1:E3")
	}
}
