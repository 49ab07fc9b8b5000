package object

import "fmt"

// SectionIndex is a 1-based index into a file's section list. 0 is
// reserved by the Mach-O format for "no section"; SectionIndex values
// handed out by this package always satisfy Index >= 1.
type SectionIndex int

func (i SectionIndex) String() string { return fmt.Sprintf("Section(%d)", int(i)) }

// SymbolIndex is a 0-based index into a file's symbol table, matching
// on-disk nlist ordering.
type SymbolIndex int

func (i SymbolIndex) String() string { return fmt.Sprintf("Symbol(%d)", int(i)) }
