package macho

import (
	"github.com/appsworld/go-macho/object"
	"github.com/appsworld/go-macho/types"
)

// decodeRelocation interprets a raw, structurally-decoded Reloc
// against the file's cputype, per architecture. Scattered relocations
// are not yet interpreted and are skipped by the caller.
func decodeRelocation(cpu types.CPU, r Reloc) object.Relocation {
	size := uint8(8) << r.Len

	var target object.RelocationTarget
	if r.Extern {
		target = object.TargetSymbol(object.SymbolIndex(r.Value))
	} else {
		target = object.TargetSection(object.SectionIndex(r.Value))
	}

	generic := object.Relocation{
		Offset:         uint64(r.Addr),
		Size:           size,
		Target:         target,
		ImplicitAddend: true,
	}
	if r.Pcrel {
		generic.Addend = -4
	}

	switch cpu {
	case types.CPUArm:
		if int(r.Type) == types.ArmRelocVanilla && !r.Pcrel {
			generic.Kind = object.RelocationAbsolute
			generic.Encoding = object.EncodingGeneric
			return generic
		}
	case types.CPUArm64:
		if int(r.Type) == types.Arm64RelocUnsigned && !r.Pcrel {
			generic.Kind = object.RelocationAbsolute
			generic.Encoding = object.EncodingGeneric
			return generic
		}
	case types.CPU386:
		if int(r.Type) == types.GenericRelocVanilla && !r.Pcrel {
			generic.Kind = object.RelocationAbsolute
			generic.Encoding = object.EncodingGeneric
			return generic
		}
	case types.CPUAmd64:
		switch {
		case int(r.Type) == types.X8664RelocUnsigned && !r.Pcrel:
			generic.Kind = object.RelocationAbsolute
			generic.Encoding = object.EncodingGeneric
			return generic
		case int(r.Type) == types.X8664RelocSigned && r.Pcrel:
			generic.Kind = object.RelocationRelative
			generic.Encoding = object.EncodingX86RipRelative
			return generic
		case int(r.Type) == types.X8664RelocBranch && r.Pcrel:
			generic.Kind = object.RelocationRelative
			generic.Encoding = object.EncodingX86Branch
			return generic
		case int(r.Type) == types.X8664RelocGot && r.Pcrel:
			generic.Kind = object.RelocationGotRelative
			generic.Encoding = object.EncodingGeneric
			return generic
		case int(r.Type) == types.X8664RelocGotLoad && r.Pcrel:
			generic.Kind = object.RelocationGotRelative
			generic.Encoding = object.EncodingX86RipRelativeMovq
			return generic
		}
	}

	generic.Kind = object.RelocationMachO
	generic.Encoding = object.EncodingGeneric
	generic.MachOValue = r.Type
	generic.MachORelative = r.Pcrel
	return generic
}
