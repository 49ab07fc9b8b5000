package object

import "bytes"

// StringTable is a byte slice indexed by offset, each entry a
// NUL-terminated string (the Mach-O symbol string table format).
type StringTable struct {
	Data []byte
}

// Get returns the NUL-terminated string starting at offset, not
// including the terminator. Fails if offset is out of range.
func (t StringTable) Get(offset uint32) ([]byte, error) {
	if uint64(offset) >= uint64(len(t.Data)) {
		return nil, Errorf("invalid string table offset 0x%x", offset)
	}
	rest := t.Data[offset:]
	if end := bytes.IndexByte(rest, 0); end >= 0 {
		return rest[:end], nil
	}
	return rest, nil
}
