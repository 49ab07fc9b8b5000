package object

// Symbol is the uniform symbol record produced by every format
// reader: name, address, size (zero unless computed by a SymbolMap),
// kind, section attribution, weak flag, scope, and format-specific
// flags.
type Symbol struct {
	Name    string // empty when the raw name is not valid UTF-8
	HasName bool   // false only when the raw name is not valid UTF-8
	Address uint64
	Size    uint64
	Kind    SymbolKind
	Section SymbolSection
	Weak    bool
	Scope   SymbolScope
	Flags   SymbolFlags
}
