// Package extract pulls typed values out of raw byte records under a
// bitmask driven presence protocol: every logical field of a record
// maps to one bit of a 16 bit selector, and a field is only consumed
// from the buffer when its bit is enabled. Records of this shape are
// common when decoding hardware or legacy wire formats.
package extract

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/NVIDIA/cstruct"

	"github.com/marvik/bitcodec/endian"
	"github.com/marvik/bitcodec/internal/log"
)

/* PREDEFINED VALUES */

// Slices longer than this many bytes get their leading four bytes read
// as a 32 bit float and byte swapped before the typed decode. The
// threshold is inherited from the wire format this package decodes;
// it is exported so callers can widen or disable it.
var FloatSwapThreshold int = 10

/* ERRORS */

var (
	ErrorUnderrun error = errors.New("read past the end of the buffer") // read past the end of the buffer
)

/* TYPES */

// Carries the mutable state of one decoding pass over a buffer.
// Enable selects which field bit is currently under test and shifts
// left once per call, whether or not the field was present; Cursor
// only advances when a field is consumed. A session belongs to a
// single goroutine for the duration of its pass and must not be
// shared between concurrent decodes.
type Session struct {
	Enable uint16 // Selector for the field currently under test
	Cursor int    // Byte offset of the next unread field

	// When set, the swapped float computed for slices over
	// FloatSwapThreshold is written back into the returned bytes.
	// When unset the swap is computed and dropped, matching the
	// historical decoder this package replaces.
	ApplyFloatSwap bool
}

/* FUNCTIONS */

// Slices the next "length" bytes out of the buffer when the flag bit
// is enabled in the session selector. The selector always shifts to
// the next field bit before returning; the cursor only moves when
// bytes were actually consumed. A field that is not present returns
// nil bytes and no error. Asking for more bytes than the buffer still
// holds fails and leaves the cursor where it was.
func Bytes(flag uint16, s *Session, buf []byte, length int) ([]byte, error) {
	defer func() { s.Enable <<= 1 }()

	if flag&s.Enable == 0 {
		log.Skip(flag)
		return nil, nil
	}

	if length < 0 || s.Cursor+length > len(buf) {
		log.Underrun(s.Cursor, length, len(buf))
		return nil, ErrorUnderrun
	}

	out := make([]byte, length)
	copy(out, buf[s.Cursor:s.Cursor+length])
	s.Cursor += length

	if length > FloatSwapThreshold {
		swapFloat(out, s.ApplyFloatSwap)
	}

	return out, nil
}

// Decodes the next field of the buffer into a value of type T laid
// out little endian, byte for byte against the declared fields of T.
// Returns nil when the field is not present.
func As[T any](flag uint16, s *Session, buf []byte, length int) (*T, error) {
	return AsOrder[T](flag, s, buf, length, cstruct.LittleEndian)
}

// Same as As with an explicit byte order for the decoded fields.
func AsOrder[T any](flag uint16, s *Session, buf []byte, length int, order binary.ByteOrder) (*T, error) {
	b, err := Bytes(flag, s, buf, length)
	if b == nil || err != nil {
		return nil, err
	}

	out := new(T)
	if _, err := cstruct.Unpack(b, out, order); err != nil {
		return nil, err
	}
	return out, nil
}

// Computes the byte swapped float over the leading four bytes of the
// slice and, only when asked to, stores it back.
func swapFloat(b []byte, apply bool) {
	if len(b) < 4 {
		return
	}

	f := math.Float32frombits(binary.LittleEndian.Uint32(b[:4]))
	swapped := endian.SwapFloat32(f)
	if !apply {
		return
	}

	binary.LittleEndian.PutUint32(b[:4], math.Float32bits(swapped))
}
