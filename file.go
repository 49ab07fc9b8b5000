package macho

// High level access to low level data structures.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/appsworld/go-macho/object"
	"github.com/appsworld/go-macho/types"
)

// A FormatError is returned when the bytes being parsed do not match
// the expected format of a Mach-O file.
type FormatError struct {
	off int64
	msg string
	val interface{}
}

func (e *FormatError) Error() string {
	msg := e.msg
	if e.val != nil {
		msg += fmt.Sprintf(" '%v'", e.val)
	}
	msg += fmt.Sprintf(" in record at byte %#x", e.off)
	return msg
}

// An Option configures a NewFile call. WithLoadFilter is the one
// option currently defined.
type Option func(*parseConfig)

type parseConfig struct {
	loadFilter []types.LoadCmd
}

// WithLoadFilter restricts decoding to the given load commands;
// others are still recorded as raw LoadCmdBytes, but their segment or
// symbol table payloads are not walked.
func WithLoadFilter(cmds ...types.LoadCmd) Option {
	return func(c *parseConfig) { c.loadFilter = cmds }
}

func loadInSlice(c types.LoadCmd, list []types.LoadCmd) bool {
	for _, want := range list {
		if c == want {
			return true
		}
	}
	return false
}

// A FileTOC (table of contents) holds the decoded header and the
// load commands and sections found while walking it.
type FileTOC struct {
	types.FileHeader
	ByteOrder binary.ByteOrder
	Loads     []Load
	Sections  sections
}

// A File represents an open Mach-O file.
type File struct {
	FileTOC

	Symtab *Symtab

	sr     io.ReaderAt
	closer io.Closer
}

// Close closes the File. If the File was created using NewFile
// directly instead of Open, Close has no effect.
func (f *File) Close() error {
	var err error
	if f.closer != nil {
		err = f.closer.Close()
		f.closer = nil
	}
	return err
}

// Open opens the named file using os.Open and prepares it for use as
// a Mach-O binary.
func Open(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	ff, err := NewFile(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	ff.closer = f
	return ff, nil
}

// NewFile creates a new File for accessing a Mach-O binary in an
// underlying reader. The Mach-O binary is expected to start at
// position 0 in the ReaderAt.
func NewFile(r io.ReaderAt, opts ...Option) (*File, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	f := new(File)
	f.sr = r

	// Read and decode the Mach-O magic to determine byte order and
	// word size. Magic32 and Magic64 differ only in the bottom bit.
	var ident [4]byte
	if _, err := r.ReadAt(ident[0:], 0); err != nil {
		return nil, fmt.Errorf("failed to read magic: %v", err)
	}
	be := binary.BigEndian.Uint32(ident[0:])
	le := binary.LittleEndian.Uint32(ident[0:])
	switch types.Magic32.Int() &^ 1 {
	case be &^ 1:
		f.ByteOrder = binary.BigEndian
		f.Magic = types.Magic(be)
	case le &^ 1:
		f.ByteOrder = binary.LittleEndian
		f.Magic = types.Magic(le)
	default:
		return nil, &FormatError{0, "invalid magic number", nil}
	}
	if f.Magic != types.Magic32 && f.Magic != types.Magic64 {
		return nil, &FormatError{0, "unsupported magic number", uint32(f.Magic)}
	}

	hdrSize := int64(types.FileHeaderSize32)
	if f.Magic == types.Magic64 {
		hdrSize = types.FileHeaderSize64
	}
	hdrBuf := make([]byte, hdrSize)
	if _, err := r.ReadAt(hdrBuf, 0); err != nil {
		return nil, fmt.Errorf("failed to read header: %v", err)
	}
	bo := f.ByteOrder
	f.CPU = types.CPU(bo.Uint32(hdrBuf[4:8]))
	f.SubCPU = types.CPUSubtype(bo.Uint32(hdrBuf[8:12]))
	f.Type = types.HeaderFileType(bo.Uint32(hdrBuf[12:16]))
	f.NCommands = bo.Uint32(hdrBuf[16:20])
	f.SizeCommands = bo.Uint32(hdrBuf[20:24])
	f.FileHeader.Flags = types.HeaderFlag(bo.Uint32(hdrBuf[24:28]))
	if f.Magic == types.Magic64 {
		f.Reserved = bo.Uint32(hdrBuf[28:32])
	}

	dat := make([]byte, f.SizeCommands)
	if _, err := r.ReadAt(dat, hdrSize); err != nil {
		return nil, fmt.Errorf("failed to read load command data: %v", err)
	}

	f.Loads = make([]Load, f.NCommands)
	offset := hdrSize
	for i := range f.Loads {
		if len(dat) < 8 {
			return nil, &FormatError{offset, "command block too small", nil}
		}
		cmd, siz := types.LoadCmd(bo.Uint32(dat[0:4])), bo.Uint32(dat[4:8])
		if siz < 8 || siz > uint32(len(dat)) {
			return nil, &FormatError{offset, "invalid command block size", nil}
		}

		cmddat := dat[0:siz]
		dat = dat[siz:]
		offset += int64(siz)

		if len(cfg.loadFilter) > 0 && !loadInSlice(cmd, cfg.loadFilter) {
			f.Loads[i] = LoadCmdBytes{cmd, LoadBytes(cmddat)}
			continue
		}

		switch cmd {
		case types.LC_SEGMENT:
			seg, err := f.parseSegment32(cmd, siz, cmddat)
			if err != nil {
				return nil, err
			}
			f.Loads[i] = seg
		case types.LC_SEGMENT_64:
			seg, err := f.parseSegment64(cmd, siz, cmddat)
			if err != nil {
				return nil, err
			}
			f.Loads[i] = seg
		case types.LC_SYMTAB:
			st, err := f.parseSymtabCmd(cmd, siz, cmddat)
			if err != nil {
				return nil, err
			}
			f.Loads[i] = st
			f.Symtab = st
		case types.LC_UUID:
			var u types.UUIDCmd
			if err := binary.Read(bytes.NewReader(cmddat), bo, &u); err != nil {
				return nil, fmt.Errorf("failed to read LC_UUID: %v", err)
			}
			f.Loads[i] = &UUID{LoadBytes: cmddat, LoadCmd: cmd, ID: u.UUID.String()}
		case types.LC_MAIN:
			var hdr types.EntryPointCmd
			if err := binary.Read(bytes.NewReader(cmddat), bo, &hdr); err != nil {
				return nil, fmt.Errorf("failed to read LC_MAIN: %v", err)
			}
			f.Loads[i] = &EntryPoint{LoadBytes: cmddat, LoadCmd: cmd, EntryOffset: hdr.Offset, StackSize: hdr.StackSize}
		default:
			log.Printf("found NEW load command: %s, please let the author know :)", cmd)
			f.Loads[i] = LoadCmdBytes{cmd, LoadBytes(cmddat)}
		}
	}

	return f, nil
}

func (f *File) parseSegment32(cmd types.LoadCmd, siz uint32, cmddat []byte) (*Segment, error) {
	var seg32 types.Segment32
	b := bytes.NewReader(cmddat)
	if err := binary.Read(b, f.ByteOrder, &seg32); err != nil {
		return nil, fmt.Errorf("failed to read LC_SEGMENT: %v", err)
	}
	s := &Segment{LoadBytes: cmddat, ReaderAt: f.sr}
	s.LoadCmd = cmd
	s.Len = siz
	s.Name = cstring(seg32.Name[0:])
	s.Addr = uint64(seg32.Addr)
	s.Memsz = uint64(seg32.Memsz)
	s.Offset = uint64(seg32.Offset)
	s.Filesz = uint64(seg32.Filesz)
	s.Maxprot = seg32.Maxprot
	s.Prot = seg32.Prot
	s.Nsect = seg32.Nsect
	s.Flag = seg32.Flag
	s.Firstsect = uint32(len(f.Sections))

	for i := 0; i < int(s.Nsect); i++ {
		var sh32 types.Section32
		if err := binary.Read(b, f.ByteOrder, &sh32); err != nil {
			return nil, fmt.Errorf("failed to read Section32: %v", err)
		}
		sh := &Section{ReaderAt: f.sr}
		sh.Name = cstring(sh32.Name[0:])
		sh.Seg = cstring(sh32.Seg[0:])
		sh.Addr = uint64(sh32.Addr)
		sh.Size = uint64(sh32.Size)
		sh.Offset = sh32.Offset
		sh.Align = sh32.Align
		sh.Reloff = sh32.Reloff
		sh.Nreloc = sh32.Nreloc
		sh.Flags = sh32.Flags
		sh.Reserved1 = sh32.Reserve1
		sh.Reserved2 = sh32.Reserve2
		sh.Kind = classifySection(sh.Seg, sh.Name)
		if err := f.pushSection(sh); err != nil {
			return nil, fmt.Errorf("failed to push section: %v", err)
		}
	}
	return s, nil
}

func (f *File) parseSegment64(cmd types.LoadCmd, siz uint32, cmddat []byte) (*Segment, error) {
	var seg64 types.Segment64
	b := bytes.NewReader(cmddat)
	if err := binary.Read(b, f.ByteOrder, &seg64); err != nil {
		return nil, fmt.Errorf("failed to read LC_SEGMENT_64: %v", err)
	}
	s := &Segment{LoadBytes: cmddat, ReaderAt: f.sr}
	s.LoadCmd = cmd
	s.Len = siz
	s.Name = cstring(seg64.Name[0:])
	s.Addr = seg64.Addr
	s.Memsz = seg64.Memsz
	s.Offset = seg64.Offset
	s.Filesz = seg64.Filesz
	s.Maxprot = seg64.Maxprot
	s.Prot = seg64.Prot
	s.Nsect = seg64.Nsect
	s.Flag = seg64.Flag
	s.Firstsect = uint32(len(f.Sections))

	for i := 0; i < int(s.Nsect); i++ {
		var sh64 types.Section64
		if err := binary.Read(b, f.ByteOrder, &sh64); err != nil {
			return nil, fmt.Errorf("failed to read Section64: %v", err)
		}
		sh := &Section{ReaderAt: f.sr}
		sh.Name = cstring(sh64.Name[0:])
		sh.Seg = cstring(sh64.Seg[0:])
		sh.Addr = sh64.Addr
		sh.Size = sh64.Size
		sh.Offset = sh64.Offset
		sh.Align = sh64.Align
		sh.Reloff = sh64.Reloff
		sh.Nreloc = sh64.Nreloc
		sh.Flags = sh64.Flags
		sh.Reserved1 = sh64.Reserve1
		sh.Reserved2 = sh64.Reserve2
		sh.Reserved3 = sh64.Reserve3
		sh.Kind = classifySection(sh.Seg, sh.Name)
		if err := f.pushSection(sh); err != nil {
			return nil, fmt.Errorf("failed to push section: %v", err)
		}
	}
	return s, nil
}

func (f *File) pushSection(sh *Section) error {
	f.Sections = append(f.Sections, sh)

	if sh.Nreloc == 0 || sh.Flags.IsZeroFill() {
		return nil
	}

	reldat := make([]byte, int(sh.Nreloc)*8)
	if _, err := f.sr.ReadAt(reldat, int64(sh.Reloff)); err != nil {
		return fmt.Errorf("failed to read relocations at 0x%x: %v", sh.Reloff, err)
	}
	b := bytes.NewReader(reldat)
	bo := f.ByteOrder

	sh.Relocs = make([]Reloc, sh.Nreloc)
	for i := range sh.Relocs {
		rel := &sh.Relocs[i]

		var ri relocInfo
		if err := binary.Read(b, bo, &ri); err != nil {
			return fmt.Errorf("failed to read relocation entry: %v", err)
		}

		if ri.Addr&(1<<31) != 0 { // scattered
			rel.Addr = ri.Addr & (1<<24 - 1)
			rel.Type = uint8((ri.Addr >> 24) & (1<<4 - 1))
			rel.Len = uint8((ri.Addr >> 28) & (1<<2 - 1))
			rel.Pcrel = ri.Addr&(1<<30) != 0
			rel.Value = ri.Symnum
			rel.Scattered = true
			continue
		}

		switch bo {
		case binary.LittleEndian:
			rel.Addr = ri.Addr
			rel.Value = ri.Symnum & (1<<24 - 1)
			rel.Pcrel = ri.Symnum&(1<<24) != 0
			rel.Len = uint8((ri.Symnum >> 25) & (1<<2 - 1))
			rel.Extern = ri.Symnum&(1<<27) != 0
			rel.Type = uint8((ri.Symnum >> 28) & (1<<4 - 1))
		case binary.BigEndian:
			rel.Addr = ri.Addr
			rel.Value = ri.Symnum >> 8
			rel.Pcrel = ri.Symnum&(1<<7) != 0
			rel.Len = uint8((ri.Symnum >> 5) & (1<<2 - 1))
			rel.Extern = ri.Symnum&(1<<4) != 0
			rel.Type = uint8(ri.Symnum & (1<<4 - 1))
		}
	}

	return nil
}

// Relocations returns the architecture-interpreted relocations of a
// section. Scattered entries are skipped, per the decoder's contract.
func (f *File) Relocations(s *Section) []object.Relocation {
	out := make([]object.Relocation, 0, len(s.Relocs))
	for _, r := range s.Relocs {
		if r.Scattered {
			continue
		}
		out = append(out, decodeRelocation(f.CPU, r))
	}
	return out
}

func (f *File) parseSymtabCmd(cmd types.LoadCmd, siz uint32, cmddat []byte) (*Symtab, error) {
	var hdr types.SymtabCmd
	if err := binary.Read(bytes.NewReader(cmddat), f.ByteOrder, &hdr); err != nil {
		return nil, fmt.Errorf("failed to read LC_SYMTAB: %v", err)
	}

	strtab := make([]byte, hdr.Strsize)
	if _, err := f.sr.ReadAt(strtab, int64(hdr.Stroff)); err != nil {
		return nil, fmt.Errorf("failed to read string table at 0x%x: %v", hdr.Stroff, err)
	}
	strtabView := object.StringTable{Data: strtab}

	symsz := 12
	if f.Magic == types.Magic64 {
		symsz = 16
	}
	symdat := make([]byte, int(hdr.Nsyms)*symsz)
	if _, err := f.sr.ReadAt(symdat, int64(hdr.Symoff)); err != nil {
		return nil, fmt.Errorf("failed to read symbol table at 0x%x: %v", hdr.Symoff, err)
	}

	sectionKind := func(idx uint8) object.SectionKind {
		if idx == 0 || int(idx) > len(f.Sections) {
			return object.SectionUnknown
		}
		return f.Sections[idx-1].Kind
	}

	syms := make([]Symbol, hdr.Nsyms)
	b := bytes.NewReader(symdat)
	for i := range syms {
		var n types.Nlist64
		if f.Magic == types.Magic64 {
			if err := binary.Read(b, f.ByteOrder, &n); err != nil {
				return nil, fmt.Errorf("failed to read nlist_64 entry %d: %v", i, err)
			}
		} else {
			var n32 types.Nlist32
			if err := binary.Read(b, f.ByteOrder, &n32); err != nil {
				return nil, fmt.Errorf("failed to read nlist entry %d: %v", i, err)
			}
			n.Name, n.Type, n.Sect, n.Desc, n.Value = n32.Name, n32.Type, n32.Sect, n32.Desc, uint64(n32.Value)
		}

		raw, err := strtabView.Get(n.Name)
		if err != nil {
			return nil, &FormatError{int64(hdr.Stroff), "invalid name offset in symbol table", n.Name}
		}

		sym := &syms[i]
		sym.Index = object.SymbolIndex(i)
		sym.Type = n.Type
		sym.Sect = n.Sect
		sym.Desc = n.Desc
		sym.Value = n.Value
		sym.Symbol = resolveSymbol(raw, n.Type, n.Sect, n.Desc, n.Value, sectionKind)
		sym.Name = sym.Symbol.Name
	}

	st := &Symtab{LoadBytes: cmddat, Syms: syms}
	st.LoadCmd = cmd
	st.Len = siz
	st.Symoff = hdr.Symoff
	st.Nsyms = hdr.Nsyms
	st.Stroff = hdr.Stroff
	st.Strsize = hdr.Strsize
	return st, nil
}

// SymbolMap builds a SymbolMap over the file's symbol table, sized
// against the bounds of each parsed section.
func (f *File) SymbolMap() object.SymbolMap {
	var syms []object.Symbol
	if f.Symtab != nil {
		syms = make([]object.Symbol, len(f.Symtab.Syms))
		for i, s := range f.Symtab.Syms {
			syms[i] = s.Symbol
		}
	}
	bounds := func(idx object.SectionIndex) (addr, size uint64, ok bool) {
		i := int(idx) - 1
		if i < 0 || i >= len(f.Sections) {
			return 0, 0, false
		}
		return f.Sections[i].Addr, f.Sections[i].Size, true
	}
	return object.NewSymbolMap(syms, bounds, len(f.Sections))
}

// Segment returns the first segment with the given name, or nil if
// there is none.
func (f *File) Segment(name string) *Segment {
	for _, l := range f.Loads {
		if s, ok := l.(*Segment); ok && s.Name == name {
			return s
		}
	}
	return nil
}

// SegmentsList returns all segments, sorted by address.
func (f *File) SegmentsList() Segments {
	var segs Segments
	for _, l := range f.Loads {
		if s, ok := l.(*Segment); ok {
			segs = append(segs, s)
		}
	}
	sort.Sort(segs)
	return segs
}

// Section returns the first section with the given name in the given
// segment, or nil if there is none.
func (f *File) Section(seg, name string) *Section {
	for _, s := range f.Sections {
		if s.Seg == seg && s.Name == name {
			return s
		}
	}
	return nil
}

// SectionByIndex returns the section at the given 1-based index.
func (f *File) SectionByIndex(idx object.SectionIndex) (*Section, error) {
	i := int(idx) - 1
	if i < 0 || i >= len(f.Sections) {
		return nil, object.Errorf("section index %d out of range", idx)
	}
	return f.Sections[i], nil
}

// SymbolByIndex returns the symbol at the given 0-based index.
func (f *File) SymbolByIndex(idx object.SymbolIndex) (*Symbol, error) {
	if f.Symtab == nil || int(idx) < 0 || int(idx) >= len(f.Symtab.Syms) {
		return nil, object.Errorf("symbol index %d out of range", idx)
	}
	return &f.Symtab.Syms[idx], nil
}

// Symbols returns every non-stab symbol in on-disk order, each
// retaining its original Index.
func (f *File) Symbols() []Symbol {
	if f.Symtab == nil {
		return nil
	}
	out := make([]Symbol, 0, len(f.Symtab.Syms))
	for _, s := range f.Symtab.Syms {
		if s.Type.IsStab() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SectionByName returns the first section whose name matches, honoring
// the system-section alias: a name starting with "." also matches any
// section whose name starts with "__" and whose tail equals the tail
// of name after the ".".
func (f *File) SectionByName(name string) *Section {
	for _, s := range f.Sections {
		if s.Name == name {
			return s
		}
		if strings.HasPrefix(name, ".") && strings.HasPrefix(s.Name, "__") && s.Name[2:] == name[1:] {
			return s
		}
	}
	return nil
}

// MachUUID returns the LC_UUID value, if the file has one.
func (f *File) MachUUID() (types.UUID, error) {
	for _, l := range f.Loads {
		if u, ok := l.(*UUID); ok {
			return parseUUIDString(u.ID), nil
		}
	}
	return types.UUID{}, object.Errorf("no LC_UUID load command")
}

func parseUUIDString(s string) types.UUID {
	var out types.UUID
	n := 0
	hi := byte(0)
	have := false
	for i := 0; i < len(s) && n < 16; i++ {
		c := s[i]
		var v byte
		switch {
		case c >= '0' && c <= '9':
			v = c - '0'
		case c >= 'A' && c <= 'F':
			v = c - 'A' + 10
		case c >= 'a' && c <= 'f':
			v = c - 'a' + 10
		default:
			continue
		}
		if !have {
			hi = v
			have = true
		} else {
			out[n] = hi<<4 | v
			n++
			have = false
		}
	}
	return out
}

// Entry returns the LC_MAIN entry point file offset and true, or
// (0, false) if the file has no LC_MAIN.
func (f *File) Entry() (uint64, bool) {
	for _, l := range f.Loads {
		if e, ok := l.(*EntryPoint); ok {
			return e.EntryOffset, true
		}
	}
	return 0, false
}

// Architecture returns the portable architecture name for the file's
// cputype, or "unknown" if it is not one this reader maps.
func (f *File) Architecture() string {
	switch f.CPU {
	case types.CPUArm:
		return "arm"
	case types.CPUArm64:
		return "arm64"
	case types.CPU386:
		return "x86"
	case types.CPUAmd64:
		return "x86_64"
	case types.CPUMips:
		return "mips"
	default:
		return "unknown"
	}
}

// Flags returns the raw Mach-O header flags, wrapped as a portable
// object.FileFlags.
func (f *File) Flags() object.FileFlags {
	return object.FileFlags{MachOFlags: uint32(f.FileHeader.Flags)}
}

// HasDebugSymbols reports whether the file carries a __debug_info
// section.
func (f *File) HasDebugSymbols() bool {
	return f.SectionByName(".debug_info") != nil
}

// DynamicSymbols returns the same symbols as Symbols: Mach-O has no
// separate dynamic symbol table, LC_DYSYMTAB indexes into this one.
func (f *File) DynamicSymbols() []Symbol {
	return f.Symbols()
}
