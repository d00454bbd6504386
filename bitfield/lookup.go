package bitfield

import "reflect"

/* STORAGE KINDS */

// Identifies how a storage kind moves raw bits in and out of the
// packed word.
type storage struct {
	kind   reflect.Kind // Kind as seen through reflection
	width  uint8        // Amount of bits of the Go type
	signed bool         // Whether the type is a signed integer
}

var (
	boolStorage   = storage{reflect.Bool, 1, false}
	int8Storage   = storage{reflect.Int8, 8, true}
	int16Storage  = storage{reflect.Int16, 16, true}
	int32Storage  = storage{reflect.Int32, 32, true}
	int64Storage  = storage{reflect.Int64, 64, true}
	uint8Storage  = storage{reflect.Uint8, 8, false}
	uint16Storage = storage{reflect.Uint16, 16, false}
	uint32Storage = storage{reflect.Uint32, 32, false}
	uint64Storage = storage{reflect.Uint64, 64, false}
)

var storageByKind map[reflect.Kind]storage = map[reflect.Kind]storage{
	reflect.Bool:   boolStorage,
	reflect.Int8:   int8Storage,
	reflect.Int16:  int16Storage,
	reflect.Int32:  int32Storage,
	reflect.Int64:  int64Storage,
	reflect.Uint8:  uint8Storage,
	reflect.Uint16: uint16Storage,
	reflect.Uint32: uint32Storage,
	reflect.Uint64: uint64Storage,
}

/* CONVERSIONS */

// Turns a structured field value into the raw bits that enter the
// packed word. Signed values contribute their two's complement
// representation so that truncation keeps the low bits.
func rawBits(v reflect.Value) uint64 {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
		return 0
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int())
	default:
		return v.Uint()
	}
}

// Moves raw extracted bits back into a structured field. The bits are
// reinterpreted at the width of the storage kind, never at the width
// of the bit field, so a short field never sign extends.
func setBits(v reflect.Value, raw uint64) {
	switch v.Kind() {
	case reflect.Bool:
		v.SetBool(raw != 0)
	case reflect.Int8:
		v.SetInt(int64(int8(raw)))
	case reflect.Int16:
		v.SetInt(int64(int16(raw)))
	case reflect.Int32:
		v.SetInt(int64(int32(raw)))
	case reflect.Int64:
		v.SetInt(int64(raw))
	case reflect.Uint8:
		v.SetUint(uint64(uint8(raw)))
	case reflect.Uint16:
		v.SetUint(uint64(uint16(raw)))
	case reflect.Uint32:
		v.SetUint(uint64(uint32(raw)))
	default:
		v.SetUint(raw)
	}
}
