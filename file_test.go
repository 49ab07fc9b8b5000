package macho

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/appsworld/go-macho/object"
	"github.com/appsworld/go-macho/types"
)

// buildTestBinary assembles a minimal little-endian 64-bit Mach-O:
// one __TEXT,__text segment/section and a symbol table holding one
// STAB entry followed by one real, externally-defined symbol.
func buildTestBinary(t *testing.T) []byte {
	t.Helper()
	bo := binary.LittleEndian

	var segCmd bytes.Buffer
	binary.Write(&segCmd, bo, uint32(types.LC_SEGMENT_64))
	segLenOff := segCmd.Len()
	binary.Write(&segCmd, bo, uint32(0)) // patched below
	var name [16]byte
	copy(name[:], "__TEXT")
	segCmd.Write(name[:])
	binary.Write(&segCmd, bo, uint64(0x1000)) // Addr
	binary.Write(&segCmd, bo, uint64(0x1000)) // Memsz
	binary.Write(&segCmd, bo, uint64(0))      // Offset
	binary.Write(&segCmd, bo, uint64(0x20))   // Filesz
	binary.Write(&segCmd, bo, int32(7))       // Maxprot
	binary.Write(&segCmd, bo, int32(5))       // Prot
	binary.Write(&segCmd, bo, uint32(1))      // Nsect
	binary.Write(&segCmd, bo, uint32(0))      // Flag

	var sectName, segName [16]byte
	copy(sectName[:], "__text")
	copy(segName[:], "__TEXT")
	segCmd.Write(sectName[:])
	segCmd.Write(segName[:])
	binary.Write(&segCmd, bo, uint64(0x1000)) // Addr
	binary.Write(&segCmd, bo, uint64(0x10))   // Size
	binary.Write(&segCmd, bo, uint32(0x200))  // Offset (file offset of section data)
	binary.Write(&segCmd, bo, uint32(4))      // Align
	binary.Write(&segCmd, bo, uint32(0))      // Reloff
	binary.Write(&segCmd, bo, uint32(0))      // Nreloc
	binary.Write(&segCmd, bo, uint32(0))      // Flags (S_REGULAR)
	binary.Write(&segCmd, bo, uint32(0))      // Reserve1
	binary.Write(&segCmd, bo, uint32(0))      // Reserve2
	binary.Write(&segCmd, bo, uint32(0))      // Reserve3
	segBytes := segCmd.Bytes()
	bo.PutUint32(segBytes[segLenOff:], uint32(len(segBytes)))

	strtab := []byte{0x00}
	strtab = append(strtab, []byte("_main\x00")...)
	mainNameOff := uint32(1)

	nlists := new(bytes.Buffer)
	// entry 0: a STAB symbol, n_type has N_STAB bits set.
	binary.Write(nlists, bo, uint32(0)) // Name
	binary.Write(nlists, bo, uint8(types.NStab))
	binary.Write(nlists, bo, uint8(0))
	binary.Write(nlists, bo, uint16(0))
	binary.Write(nlists, bo, uint64(0))
	// entry 1: "_main", defined in section 1, external.
	binary.Write(nlists, bo, mainNameOff)
	binary.Write(nlists, bo, uint8(types.NSect|types.NExt))
	binary.Write(nlists, bo, uint8(1))
	binary.Write(nlists, bo, uint16(0))
	binary.Write(nlists, bo, uint64(0x1000))

	const hdrSize = 32
	const symCmdSize = 24 // cmd + cmdsize + symoff + nsyms + stroff + strsize, 4 bytes each

	symoff := uint32(hdrSize + len(segBytes) + symCmdSize) // placed right after the load commands
	stroff := symoff + uint32(nlists.Len())

	var symCmd bytes.Buffer
	binary.Write(&symCmd, bo, uint32(types.LC_SYMTAB))
	binary.Write(&symCmd, bo, uint32(24))
	binary.Write(&symCmd, bo, symoff)
	binary.Write(&symCmd, bo, uint32(2))
	binary.Write(&symCmd, bo, stroff)
	binary.Write(&symCmd, bo, uint32(len(strtab)))

	var out bytes.Buffer
	binary.Write(&out, bo, uint32(types.Magic64))
	binary.Write(&out, bo, uint32(types.CPUArm64))
	binary.Write(&out, bo, uint32(0))
	binary.Write(&out, bo, uint32(types.MH_EXECUTE))
	binary.Write(&out, bo, uint32(2))
	binary.Write(&out, bo, uint32(len(segBytes)+symCmd.Len()))
	binary.Write(&out, bo, uint32(0))
	binary.Write(&out, bo, uint32(0))
	out.Write(segBytes)
	out.Write(symCmd.Bytes())
	out.Write(nlists.Bytes())
	out.Write(strtab)

	return out.Bytes()
}

func TestNewFileParsesSegmentAndSection(t *testing.T) {
	data := buildTestBinary(t)
	f, err := NewFile(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	if f.Architecture() != "arm64" {
		t.Errorf("Architecture() = %q, want arm64", f.Architecture())
	}

	sect := f.Section("__TEXT", "__text")
	if sect == nil {
		t.Fatal("Section(__TEXT, __text) = nil")
	}
	if sect.Kind != object.SectionText {
		t.Errorf("section Kind = %v, want Text", sect.Kind)
	}
}

func TestNewFileSymbolsSkipsStabsButKeepsOriginalIndex(t *testing.T) {
	data := buildTestBinary(t)
	f, err := NewFile(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	syms := f.Symbols()
	if len(syms) != 1 {
		t.Fatalf("Symbols() returned %d entries, want 1", len(syms))
	}
	if syms[0].Name != "_main" {
		t.Errorf("Symbols()[0].Name = %q, want _main", syms[0].Name)
	}
	if syms[0].Index != 1 {
		t.Errorf("Symbols()[0].Index = %d, want 1 (its on-disk position)", syms[0].Index)
	}
}

func TestNewFileDynamicSymbolsMatchesSymbols(t *testing.T) {
	data := buildTestBinary(t)
	f, err := NewFile(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	if len(f.DynamicSymbols()) != len(f.Symbols()) {
		t.Fatalf("DynamicSymbols() returned %d entries, Symbols() returned %d", len(f.DynamicSymbols()), len(f.Symbols()))
	}
}

func TestSectionByNameSystemAlias(t *testing.T) {
	data := buildTestBinary(t)
	f, err := NewFile(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	// The test binary has no __DWARF/__debug_info section, so the
	// alias lookup should report none found rather than panicking.
	if got := f.SectionByName(".debug_info"); got != nil {
		t.Fatalf("SectionByName(.debug_info) = %v, want nil", got)
	}
	if f.HasDebugSymbols() {
		t.Fatal("HasDebugSymbols() = true, want false")
	}

	if got := f.SectionByName(".text"); got == nil {
		t.Fatal("SectionByName(.text) = nil, want a hit via the __text alias")
	}
}

func TestNewFileInvalidMagic(t *testing.T) {
	_, err := NewFile(bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0, 0}))
	if err == nil {
		t.Fatal("NewFile with bad magic returned nil error")
	}
}
