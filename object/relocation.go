package object

// RelocationKind is the portable classification of what a relocation
// computes.
type RelocationKind int

const (
	RelocationUnknown RelocationKind = iota
	RelocationAbsolute
	RelocationRelative
	RelocationGotRelative
	RelocationMachO // value/relative carried in Relocation.MachOValue/MachORelative
)

func (k RelocationKind) String() string {
	switch k {
	case RelocationAbsolute:
		return "Absolute"
	case RelocationRelative:
		return "Relative"
	case RelocationGotRelative:
		return "GotRelative"
	case RelocationMachO:
		return "MachO"
	default:
		return "Unknown"
	}
}

// RelocationEncoding refines Kind with how the addend/value is packed.
type RelocationEncoding int

const (
	EncodingGeneric RelocationEncoding = iota
	EncodingX86RipRelative
	EncodingX86Branch
	EncodingX86RipRelativeMovq
)

// RelocationTarget names what a relocation refers to: either a symbol
// or, for non-extern relocations, a section.
type RelocationTarget struct {
	isSymbol bool
	symbol   SymbolIndex
	section  SectionIndex
}

// TargetSymbol builds a RelocationTarget referring to a symbol.
func TargetSymbol(i SymbolIndex) RelocationTarget {
	return RelocationTarget{isSymbol: true, symbol: i}
}

// TargetSection builds a RelocationTarget referring to a section.
func TargetSection(i SectionIndex) RelocationTarget {
	return RelocationTarget{isSymbol: false, section: i}
}

// Symbol returns the referenced symbol index and true if this target
// is a symbol.
func (t RelocationTarget) Symbol() (SymbolIndex, bool) {
	if !t.isSymbol {
		return 0, false
	}
	return t.symbol, true
}

// Section returns the referenced section index and true if this
// target is a section.
func (t RelocationTarget) Section() (SectionIndex, bool) {
	if t.isSymbol {
		return 0, false
	}
	return t.section, true
}

// Relocation is a decoded relocation entry, architecture-neutral.
type Relocation struct {
	Offset         uint64 // r_address, relative to the start of the owning section
	Kind           RelocationKind
	Encoding       RelocationEncoding
	Size           uint8 // in bits
	Target         RelocationTarget
	Addend         int64
	ImplicitAddend bool
	MachOValue     uint8 // only meaningful when Kind == RelocationMachO
	MachORelative  bool  // only meaningful when Kind == RelocationMachO
}
