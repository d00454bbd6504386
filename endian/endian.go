// Package endian reverses the byte order of small fixed width values.
// Every function is pure and its own inverse, so applying it twice
// returns the original value.
package endian

import "math"

// Reverses the two bytes of a 16 bit value.
func Swap16(v uint16) uint16 {
	return v<<8 | v>>8
}

// Reverses the two bytes of a signed 16 bit value.
func SwapInt16(v int16) int16 {
	return int16(Swap16(uint16(v)))
}

// Reverses the four bytes of a 32 bit value.
func Swap32(v uint32) uint32 {
	return v<<24 | (v&0xFF00)<<8 | (v>>8)&0xFF00 | v>>24
}

// Reverses the four bytes of a signed 32 bit value.
func SwapInt32(v int32) int32 {
	return int32(Swap32(uint32(v)))
}

// Reverses the four bytes of a 32 bit float through its raw bits.
func SwapFloat32(v float32) float32 {
	return math.Float32frombits(Swap32(math.Float32bits(v)))
}
