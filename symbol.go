package macho

import (
	"unicode/utf8"

	"github.com/appsworld/go-macho/object"
	"github.com/appsworld/go-macho/types"
)

// resolveSymbol derives the portable object.Symbol fields for one
// decoded nlist entry. sectionKind looks up the classified kind of a
// 1-based section index; it must accept 0 (meaning "no section").
func resolveSymbol(rawName []byte, n types.NType, sect uint8, desc types.NDescType, value uint64, sectionKind func(uint8) object.SectionKind) object.Symbol {
	var sym object.Symbol
	if utf8.Valid(rawName) {
		sym.Name = string(rawName)
		sym.HasName = true
	}
	sym.Address = value
	sym.Flags = object.SymbolFlags{MachONDesc: uint16(desc)}

	switch n.Type() {
	case types.NUndf:
		sym.Section = object.SymbolSectionUndefined
	case types.NAbs:
		sym.Section = object.SymbolSectionAbsolute
	case types.NSect:
		if sect != 0 {
			sym.Section = object.Section(object.SectionIndex(sect))
		} else {
			sym.Section = object.SymbolSectionUnknown
		}
	default:
		sym.Section = object.SymbolSectionUnknown
	}

	sym.Kind = object.SymbolKindUnknown
	if idx, ok := sym.Section.Index(); ok {
		sym.Kind = symbolKindForSection(sectionKind(uint8(idx)))
	}

	sym.Weak = desc&(types.NWeakRef|types.NWeakDef) != 0

	switch {
	case sym.Section == object.SymbolSectionUndefined:
		sym.Scope = object.SymbolScopeUnknown
	case !n.IsExternal():
		sym.Scope = object.SymbolScopeCompilation
	case n.IsPrivateExternal():
		sym.Scope = object.SymbolScopeLinkage
	default:
		sym.Scope = object.SymbolScopeDynamic
	}

	return sym
}
