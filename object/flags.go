package object

// FileFlags carries format-specific file flags that have no portable
// meaning. Only the MachO variant is implemented here.
type FileFlags struct {
	MachOFlags uint32
}

// SectionFlags carries format-specific section flags.
type SectionFlags struct {
	MachOFlags uint32
}

// SymbolFlags carries format-specific symbol flags: for Mach-O, the
// raw n_desc word.
type SymbolFlags struct {
	MachONDesc uint16
}
