package macho

import (
	"testing"

	"github.com/appsworld/go-macho/object"
)

func TestClassifySectionKnownPairs(t *testing.T) {
	cases := []struct {
		seg, sect string
		want      object.SectionKind
	}{
		{"__TEXT", "__text", object.SectionText},
		{"__TEXT", "__cstring", object.SectionReadOnlyString},
		{"__DATA", "__data", object.SectionData},
		{"__DATA", "__bss", object.SectionUninitializedData},
		{"__DATA", "__common", object.SectionCommon},
		{"__DATA", "__thread_data", object.SectionTls},
		{"__DATA", "__thread_bss", object.SectionUninitializedTls},
	}
	for _, c := range cases {
		if got := classifySection(c.seg, c.sect); got != c.want {
			t.Errorf("classifySection(%q, %q) = %v, want %v", c.seg, c.sect, got, c.want)
		}
	}
}

func TestClassifySectionDwarfIsDebug(t *testing.T) {
	if got := classifySection("__DWARF", "__debug_info"); got != object.SectionDebug {
		t.Fatalf("classifySection(__DWARF, __debug_info) = %v, want Debug", got)
	}
}

func TestClassifySectionUnknownPair(t *testing.T) {
	if got := classifySection("__TEXT", "__made_up"); got != object.SectionUnknown {
		t.Fatalf("classifySection(__TEXT, __made_up) = %v, want Unknown", got)
	}
}

func TestSymbolKindForSection(t *testing.T) {
	cases := []struct {
		in   object.SectionKind
		want object.SymbolKind
	}{
		{object.SectionText, object.SymbolKindText},
		{object.SectionData, object.SymbolKindData},
		{object.SectionReadOnlyData, object.SymbolKindData},
		{object.SectionTls, object.SymbolKindTls},
		{object.SectionTlsVariables, object.SymbolKindTls},
		{object.SectionDebug, object.SymbolKindUnknown},
		{object.SectionUnknown, object.SymbolKindUnknown},
	}
	for _, c := range cases {
		if got := symbolKindForSection(c.in); got != c.want {
			t.Errorf("symbolKindForSection(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
