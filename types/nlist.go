package types

// A Nlist32 is a 32-bit Mach-O symbol table entry.
type Nlist32 struct {
	Name  uint32 // index into the string table
	Type  NType
	Sect  uint8
	Desc  NDescType
	Value uint32
}

// A Nlist64 is a 64-bit Mach-O symbol table entry.
type Nlist64 struct {
	Name  uint32 // index into the string table
	Type  NType
	Sect  uint8
	Desc  NDescType
	Value uint64
}

// NType is the n_type byte of an nlist entry: a stab bit, the N_TYPE
// field, and the N_PEXT/N_EXT scope bits.
type NType uint8

const (
	NStab NType = 0xe0 // if any of these bits set, a symbolic debugging entry
	NPext NType = 0x10 // private external symbol bit
	NType_ NType = 0x0e // mask for the type bits
	NExt  NType = 0x01 // external symbol bit, set for external symbols

	NUndf NType = 0x0 // undefined, n_sect == NO_SECT
	NAbs  NType = 0x2 // absolute, n_sect == NO_SECT
	NSect NType = 0xe // defined in section number n_sect
	NPbud NType = 0xc // prebound undefined (defined in a dylib)
	NIndr NType = 0xa // indirect
)

// IsStab reports whether this is a symbolic debugging entry, not
// interpreted via the N_TYPE field.
func (t NType) IsStab() bool {
	return t&NStab != 0
}

// Type extracts the N_TYPE field.
func (t NType) Type() NType {
	return t & NType_
}

// IsExternal reports whether the N_EXT bit is set.
func (t NType) IsExternal() bool {
	return t&NExt != 0
}

// IsPrivateExternal reports whether the N_PEXT bit is set.
func (t NType) IsPrivateExternal() bool {
	return t&NPext != 0
}

func (t NType) String(sec string) string {
	if t.IsStab() {
		return "stab"
	}
	switch t.Type() {
	case NUndf:
		return "undf"
	case NAbs:
		return "abs"
	case NSect:
		if sec != "" {
			return sec
		}
		return "sect"
	case NPbud:
		return "pbud"
	case NIndr:
		return "indr"
	default:
		return "???"
	}
}

func (t NType) GoString() string {
	return t.String("")
}

// NDescType is the n_desc word of an nlist entry: reference type,
// library ordinal, and the weak/no-dead-strip flag bits.
type NDescType uint16

const (
	NDescRefTypeMask NDescType = 0x7

	NWeakRef  NDescType = 0x40 // symbol is weak referenced
	NWeakDef  NDescType = 0x80 // symbol is a weak definition
	NRefToWeak NDescType = 0x100
	NArmThumbDef NDescType = 0x8
	NNoDeadStrip NDescType = 0x20
	NDescDiscarded NDescType = 0x20
	NSymbolResolver NDescType = 0x100
	NAltEntry NDescType = 0x200
)

// IsWeakRef reports whether the symbol is a weak reference.
func (d NDescType) IsWeakRef() bool {
	return d&NWeakRef != 0
}

// IsWeakDef reports whether the symbol is a weak definition.
func (d NDescType) IsWeakDef() bool {
	return d&NWeakDef != 0
}

func (d NDescType) String() string {
	var flags []string
	if d.IsWeakRef() {
		flags = append(flags, "weak_ref")
	}
	if d.IsWeakDef() {
		flags = append(flags, "weak_def")
	}
	if len(flags) == 0 {
		return "none"
	}
	s := flags[0]
	for _, f := range flags[1:] {
		s += "," + f
	}
	return s
}

// NoSectionIndex is the n_sect value meaning "no section", used by
// N_UNDF and N_ABS symbols.
const NoSectionIndex = 0
