package memwatch

import (
	"encoding/binary"
	"unsafe"
)

// ProbeByteOrder inspects how this host lays out a multi-byte integer in
// memory. The first stored byte of 0x01234567 is 0x67 on little-endian
// hosts and 0x01 on big-endian ones.
func ProbeByteOrder() binary.ByteOrder {
	probe := uint32(0x01234567)
	first := *(*byte)(unsafe.Pointer(&probe))
	if first == 0x67 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// byteOrderName is used for the footer and diagnostics.
func byteOrderName(order binary.ByteOrder) string {
	if order == binary.LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}
