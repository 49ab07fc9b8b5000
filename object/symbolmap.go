package object

import "sort"

// SymbolMap is a symbol table sorted by address, with sizes filled in
// from the distance to the next symbol (or the end of its section).
// It answers "what symbol contains this address" queries.
type SymbolMap struct {
	symbols []Symbol
}

// NewSymbolMap builds a SymbolMap from parsed symbols plus the
// (address, size) bounds of every section, so a symbol's computed
// size never runs past the end of the section it lives in.
func NewSymbolMap(symbols []Symbol, sectionBounds func(SectionIndex) (addr, size uint64, ok bool), numSections int) SymbolMap {
	all := make([]Symbol, 0, len(symbols)+numSections)
	all = append(all, symbols...)

	// Push a zero-size sentinel at the end of every section so the
	// forward scan below stops growing a symbol's size once it runs
	// into the section boundary.
	for i := 1; i <= numSections; i++ {
		idx := SectionIndex(i)
		addr, size, ok := sectionBounds(idx)
		if !ok {
			continue
		}
		all = append(all, Symbol{
			Address: addr + size,
			Kind:    SymbolKindSection,
			Section: SymbolSectionUndefined,
			Scope:   SymbolScopeCompilation,
		})
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Address != all[j].Address {
			return all[i].Address < all[j].Address
		}
		// At equal addresses, section-end sentinels sort after real
		// symbols, so a real symbol sitting exactly at a section end
		// meets that sentinel in the forward scan below and is sized 0
		// instead of growing into whatever follows.
		iSentinel := all[i].Kind == SymbolKindSection
		jSentinel := all[j].Kind == SymbolKindSection
		return !iSentinel && jSentinel
	})

	for i := range all {
		if all[i].Kind == SymbolKindSection {
			continue
		}
		if all[i].Size != 0 {
			continue
		}
		for j := i + 1; j < len(all); j++ {
			if all[j].Address > all[i].Address || all[j].Kind == SymbolKindSection {
				all[i].Size = all[j].Address - all[i].Address
				break
			}
		}
	}

	kept := all[:0]
	for _, s := range all {
		if Filter(s) {
			kept = append(kept, s)
		}
	}

	return SymbolMap{symbols: kept}
}

// Filter reports whether a symbol belongs in a SymbolMap: the
// synthetic section-end sentinels pushed during construction are
// excluded, along with nameless symbols.
func Filter(s Symbol) bool {
	if s.Kind == SymbolKindSection {
		return false
	}
	return s.HasName
}

// Symbols returns the sorted, filtered symbol list.
func (m SymbolMap) Symbols() []Symbol {
	return m.symbols
}

// Get returns the symbol containing addr, if any.
func (m SymbolMap) Get(addr uint64) (Symbol, bool) {
	i := sort.Search(len(m.symbols), func(i int) bool {
		return m.symbols[i].Address > addr
	})
	if i == 0 {
		return Symbol{}, false
	}
	s := m.symbols[i-1]
	if s.Size != 0 && addr >= s.Address+s.Size {
		return Symbol{}, false
	}
	return s, true
}
