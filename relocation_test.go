package macho

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appsworld/go-macho/object"
	"github.com/appsworld/go-macho/types"
)

func TestDecodeRelocationArm64Unsigned(t *testing.T) {
	r := Reloc{Addr: 0x10, Value: 3, Type: types.Arm64RelocUnsigned, Len: 3, Extern: true}
	got := decodeRelocation(types.CPUArm64, r)

	if got.Kind != object.RelocationAbsolute {
		t.Fatalf("Kind = %v, want Absolute", got.Kind)
	}
	if got.Size != 64 {
		t.Fatalf("Size = %d, want 64", got.Size)
	}
	if idx, ok := got.Target.Symbol(); !ok || idx != 3 {
		t.Fatalf("Target.Symbol() = (%d, %v), want (3, true)", idx, ok)
	}
	if got.Offset != 0x10 {
		t.Fatalf("Offset = %#x, want 0x10 (r_address, relative to section start)", got.Offset)
	}
}

func TestDecodeRelocationX8664SignedIsRipRelative(t *testing.T) {
	r := Reloc{Value: 7, Type: types.X8664RelocSigned, Len: 2, Pcrel: true, Extern: true}
	got := decodeRelocation(types.CPUAmd64, r)

	if got.Kind != object.RelocationRelative {
		t.Fatalf("Kind = %v, want Relative", got.Kind)
	}
	if got.Encoding != object.EncodingX86RipRelative {
		t.Fatalf("Encoding = %v, want EncodingX86RipRelative", got.Encoding)
	}
	if got.Addend != -4 {
		t.Fatalf("Addend = %d, want -4 for a pcrel relocation", got.Addend)
	}
}

func TestDecodeRelocationX8664GotLoad(t *testing.T) {
	r := Reloc{Addr: 0x30, Value: 2, Type: types.X8664RelocGotLoad, Len: 2, Pcrel: true, Extern: true}
	got := decodeRelocation(types.CPUAmd64, r)

	want := object.Relocation{
		Offset:         0x30,
		Kind:           object.RelocationGotRelative,
		Encoding:       object.EncodingX86RipRelativeMovq,
		Size:           32,
		Target:         object.TargetSymbol(2),
		Addend:         -4,
		ImplicitAddend: true,
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(object.RelocationTarget{})); diff != "" {
		t.Fatalf("decodeRelocation mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRelocationNonExternTargetsSection(t *testing.T) {
	r := Reloc{Value: 1, Type: types.GenericRelocVanilla, Len: 2, Extern: false}
	got := decodeRelocation(types.CPU386, r)

	if idx, ok := got.Target.Section(); !ok || idx != 1 {
		t.Fatalf("Target.Section() = (%d, %v), want (1, true)", idx, ok)
	}
	if _, ok := got.Target.Symbol(); ok {
		t.Fatal("Target.Symbol() ok = true for a non-extern relocation")
	}
}

func TestDecodeRelocationUnrecognizedTypeFallsBackToMachO(t *testing.T) {
	r := Reloc{Value: 0, Type: 0xf, Len: 2, Pcrel: true, Extern: true}
	got := decodeRelocation(types.CPUAmd64, r)

	if got.Kind != object.RelocationMachO {
		t.Fatalf("Kind = %v, want MachO for an unrecognized relocation type", got.Kind)
	}
	if got.MachOValue != 0xf {
		t.Fatalf("MachOValue = %#x, want 0xf", got.MachOValue)
	}
	if !got.MachORelative {
		t.Fatal("MachORelative = false, want true (Pcrel was set)")
	}
}
