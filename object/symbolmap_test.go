package object

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewSymbolMapSizesFromNextSymbol(t *testing.T) {
	syms := []Symbol{
		{Name: "_a", HasName: true, Address: 0x100, Kind: SymbolKindText, Section: Section(1)},
		{Name: "_b", HasName: true, Address: 0x110, Kind: SymbolKindText, Section: Section(1)},
	}
	bounds := func(idx SectionIndex) (addr, size uint64, ok bool) {
		if idx != 1 {
			return 0, 0, false
		}
		return 0x100, 0x30, true
	}

	m := NewSymbolMap(syms, bounds, 1)

	a, ok := m.Get(0x105)
	if !ok || a.Name != "_a" {
		t.Fatalf("Get(0x105) = (%+v, %v), want _a", a, ok)
	}
	if a.Size != 0x10 {
		t.Fatalf("_a.Size = %#x, want 0x10 (distance to _b)", a.Size)
	}

	b, ok := m.Get(0x120)
	if !ok || b.Name != "_b" {
		t.Fatalf("Get(0x120) = (%+v, %v), want _b", b, ok)
	}
	if b.Size != 0x20 {
		t.Fatalf("_b.Size = %#x, want 0x20 (distance to section end at 0x130)", b.Size)
	}
}

func TestNewSymbolMapGetOutOfRange(t *testing.T) {
	syms := []Symbol{{Name: "_a", HasName: true, Address: 0x100, Section: Section(1)}}
	bounds := func(SectionIndex) (uint64, uint64, bool) { return 0x100, 0x10, true }

	m := NewSymbolMap(syms, bounds, 1)

	if _, ok := m.Get(0x50); ok {
		t.Fatal("Get(0x50) ok = true for an address before any symbol")
	}
}

func TestNewSymbolMapZeroLengthSymbolAtSectionEndStopsAtSentinel(t *testing.T) {
	syms := []Symbol{
		{Name: "_end", HasName: true, Address: 0x110, Section: Section(1)},
		{Name: "_next", HasName: true, Address: 0x200, Section: Section(2)},
	}
	bounds := func(idx SectionIndex) (addr, size uint64, ok bool) {
		switch idx {
		case 1:
			return 0x100, 0x10, true // section 1 ends at 0x110, tied with _end
		case 2:
			return 0x200, 0x10, true
		default:
			return 0, 0, false
		}
	}

	m := NewSymbolMap(syms, bounds, 2)

	end, ok := m.Get(0x110)
	if !ok || end.Name != "_end" {
		t.Fatalf("Get(0x110) = (%+v, %v), want _end", end, ok)
	}
	if end.Size != 0 {
		t.Fatalf("_end.Size = %#x, want 0 (tied with its own section's end sentinel, not grown into the next section)", end.Size)
	}
}

func TestNewSymbolMapSymbolsStructuralEquality(t *testing.T) {
	syms := []Symbol{
		{Name: "_named", HasName: true, Address: 0x104, Kind: SymbolKindText, Section: Section(1)},
	}
	bounds := func(SectionIndex) (uint64, uint64, bool) { return 0x100, 0x10, true }

	m := NewSymbolMap(syms, bounds, 1)

	want := []Symbol{
		{Name: "_named", HasName: true, Address: 0x104, Size: 0xc, Kind: SymbolKindText, Section: Section(1)},
	}
	if diff := cmp.Diff(want, m.Symbols(), cmp.AllowUnexported(SymbolSection{})); diff != "" {
		t.Fatalf("Symbols() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSymbolMapFiltersNamelessAndSentinels(t *testing.T) {
	syms := []Symbol{
		{HasName: false, Address: 0x100, Section: Section(1)},
		{Name: "_named", HasName: true, Address: 0x104, Section: Section(1)},
	}
	bounds := func(SectionIndex) (uint64, uint64, bool) { return 0x100, 0x10, true }

	m := NewSymbolMap(syms, bounds, 1)

	got := m.Symbols()
	if len(got) != 1 || got[0].Name != "_named" {
		t.Fatalf("Symbols() = %+v, want just _named", got)
	}
}
