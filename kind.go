package macho

import "github.com/appsworld/go-macho/object"

type sectionRule struct {
	seg, sect string
	kind      object.SectionKind
}

var sectionKindTable = []sectionRule{
	{"__TEXT", "__text", object.SectionText},
	{"__TEXT", "__const", object.SectionReadOnlyData},
	{"__TEXT", "__cstring", object.SectionReadOnlyString},
	{"__TEXT", "__literal4", object.SectionReadOnlyData},
	{"__TEXT", "__literal8", object.SectionReadOnlyData},
	{"__TEXT", "__literal16", object.SectionReadOnlyData},
	{"__TEXT", "__eh_frame", object.SectionReadOnlyData},
	{"__TEXT", "__gcc_except_tab", object.SectionReadOnlyData},
	{"__DATA", "__data", object.SectionData},
	{"__DATA", "__const", object.SectionReadOnlyData},
	{"__DATA", "__bss", object.SectionUninitializedData},
	{"__DATA", "__common", object.SectionCommon},
	{"__DATA", "__thread_data", object.SectionTls},
	{"__DATA", "__thread_bss", object.SectionUninitializedTls},
	{"__DATA", "__thread_vars", object.SectionTlsVariables},
}

// classifySection maps a (segment, section) name pair to its
// semantic kind. First match wins; an unrecognized pair, or any
// section in the __DWARF segment, falls back accordingly.
func classifySection(seg, sect string) object.SectionKind {
	for _, r := range sectionKindTable {
		if r.seg == seg && r.sect == sect {
			return r.kind
		}
	}
	if seg == "__DWARF" {
		return object.SectionDebug
	}
	return object.SectionUnknown
}

// symbolKindForSection derives a symbol's broad Kind from the section
// it is attributed to.
func symbolKindForSection(k object.SectionKind) object.SymbolKind {
	switch k {
	case object.SectionText:
		return object.SymbolKindText
	case object.SectionData, object.SectionReadOnlyData, object.SectionReadOnlyString, object.SectionUninitializedData, object.SectionCommon:
		return object.SymbolKindData
	case object.SectionTls, object.SectionUninitializedTls, object.SectionTlsVariables:
		return object.SymbolKindTls
	default:
		return object.SymbolKindUnknown
	}
}
