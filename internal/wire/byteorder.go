package wire

import "encoding/binary"

// Swap16 reverses the byte order of a 16-bit value. The operation is its own
// inverse, so the same function serves both network-to-host and
// host-to-network conversions.
func Swap16(v uint16) uint16 {
	return v<<8 | v>>8
}

// Swap32 reverses the byte order of a 32-bit value. Same self-inverse
// property as Swap16.
func Swap32(v uint32) uint32 {
	return v<<24 | (v<<8)&0x00ff0000 | (v>>8)&0x0000ff00 | v>>24
}

// getUint16 reads 2 wire bytes (big-endian) as a uint16. The bytes are loaded
// in the host's native layout and then swapped into their big-endian
// interpretation, mirroring the raw-load-then-ntohs pattern of the C
// original this package is descended from.
func getUint16(b []byte) uint16 {
	return Swap16(binary.NativeEndian.Uint16(b))
}

// putUint16 writes v into b in wire order; the inverse of getUint16.
func putUint16(b []byte, v uint16) {
	binary.NativeEndian.PutUint16(b, Swap16(v))
}

func getUint32(b []byte) uint32 {
	return Swap32(binary.NativeEndian.Uint32(b))
}

func putUint32(b []byte, v uint32) {
	binary.NativeEndian.PutUint32(b, Swap32(v))
}
