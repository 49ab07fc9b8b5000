package macho

import (
	"testing"

	"github.com/appsworld/go-macho/object"
	"github.com/appsworld/go-macho/types"
)

func sectionKindAlwaysText(uint8) object.SectionKind { return object.SectionText }

func TestResolveSymbolDefinedInSection(t *testing.T) {
	sym := resolveSymbol([]byte("_main"), types.NSect|types.NExt, 1, 0, 0x1000, sectionKindAlwaysText)

	if !sym.HasName || sym.Name != "_main" {
		t.Fatalf("Name = %q, HasName = %v, want _main/true", sym.Name, sym.HasName)
	}
	if sym.Address != 0x1000 {
		t.Fatalf("Address = %#x, want 0x1000", sym.Address)
	}
	if idx, ok := sym.Section.Index(); !ok || idx != 1 {
		t.Fatalf("Section.Index() = (%d, %v), want (1, true)", idx, ok)
	}
	if sym.Kind != object.SymbolKindText {
		t.Fatalf("Kind = %v, want Text", sym.Kind)
	}
	if sym.Scope != object.SymbolScopeDynamic {
		t.Fatalf("Scope = %v, want Dynamic (external, not private)", sym.Scope)
	}
}

func TestResolveSymbolUndefined(t *testing.T) {
	sym := resolveSymbol([]byte("_extern_fn"), types.NUndf|types.NExt, 0, 0, 0, sectionKindAlwaysText)

	if sym.Section != object.SymbolSectionUndefined {
		t.Fatalf("Section = %v, want Undefined", sym.Section)
	}
	if sym.Scope != object.SymbolScopeUnknown {
		t.Fatalf("Scope = %v, want Unknown for an undefined symbol", sym.Scope)
	}
}

func TestResolveSymbolPrivateExternalIsLinkageScope(t *testing.T) {
	sym := resolveSymbol([]byte("_hidden"), types.NSect|types.NExt|types.NPext, 1, 0, 0, sectionKindAlwaysText)

	if sym.Scope != object.SymbolScopeLinkage {
		t.Fatalf("Scope = %v, want Linkage", sym.Scope)
	}
}

func TestResolveSymbolLocalIsCompilationScope(t *testing.T) {
	sym := resolveSymbol([]byte("_local"), types.NSect, 1, 0, 0, sectionKindAlwaysText)

	if sym.Scope != object.SymbolScopeCompilation {
		t.Fatalf("Scope = %v, want Compilation", sym.Scope)
	}
}

func TestResolveSymbolWeakDefinition(t *testing.T) {
	sym := resolveSymbol([]byte("_weak_sym"), types.NSect|types.NExt, 1, types.NWeakDef, 0, sectionKindAlwaysText)

	if !sym.Weak {
		t.Fatal("Weak = false, want true for N_WEAK_DEF")
	}
}

func TestResolveSymbolAbsolute(t *testing.T) {
	sym := resolveSymbol([]byte("_abs"), types.NAbs, 0, 0, 0x42, sectionKindAlwaysText)

	if sym.Section != object.SymbolSectionAbsolute {
		t.Fatalf("Section = %v, want Absolute", sym.Section)
	}
}

func TestResolveSymbolInvalidUTF8NameIsUnnamed(t *testing.T) {
	sym := resolveSymbol([]byte{0xff, 0xfe}, types.NUndf, 0, 0, 0, sectionKindAlwaysText)

	if sym.HasName {
		t.Fatalf("HasName = true for invalid UTF-8 bytes %q", sym.Name)
	}
}
