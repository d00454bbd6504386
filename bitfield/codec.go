package bitfield

import (
	"reflect"
	"strings"
)

/* PACKING */

// Packs the given values into a single word. Values are taken in the
// same order the schema declares its fields. Each value contributes
// only its low Length bits, so anything wider is truncated, never
// rejected. Should two fields overlap, their set bits simply OR
// together in declaration order.
func (s *Schema) Pack(values []uint64) uint64 {
	var word uint64
	for i, f := range s.Fields {
		if i >= len(values) {
			break
		}
		word |= (values[i] & f.mask()) << f.Offset
	}
	return word
}

// Extracts every field of the word, in declaration order.
func (s *Schema) Unpack(word uint64) []uint64 {
	values := make([]uint64, len(s.Fields))
	for i, f := range s.Fields {
		values[i] = (word >> f.Offset) & f.mask()
	}
	return values
}

// Renders the word as a binary string of exactly TotalBits characters,
// most significant bit first.
func (s *Schema) BinaryString(word uint64) string {
	var b strings.Builder
	b.Grow(int(s.TotalBits))
	for i := int(s.TotalBits) - 1; i >= 0; i-- {
		if word&(1<<uint(i)) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

/* STRUCT CONVERSION */

// Packs a registered struct into its word. Fields wider than their
// declared bit length are truncated to the low bits, including
// negative values through their two's complement representation.
func Marshal(v any) (uint64, error) {
	s, err := For(v)
	if err != nil {
		return 0, err
	}

	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}

	var word uint64
	for _, f := range s.Fields {
		raw := rawBits(val.Field(f.index))
		word |= (raw & f.mask()) << f.Offset
	}
	return word, nil
}

// Fills a registered struct from its word. Each field receives its raw
// extracted bits reinterpreted at the width of its storage kind; there
// is no sign extension from the bit length, so a 4 bit field holding
// 0b1111 decodes as 15 even into a signed field.
func Unmarshal(word uint64, v any) error {
	s, err := For(v)
	if err != nil {
		return err
	}

	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return ErrorField
	}

	elem := val.Elem()
	for _, f := range s.Fields {
		raw := (word >> f.Offset) & f.mask()
		setBits(elem.Field(f.index), raw)
	}
	return nil
}

// Renders a registered struct as the binary string of its packed word.
// A type without a schema is a hard error, since defaulting the width
// would misrepresent the value.
func BinaryStringOf(v any) (string, error) {
	s, err := For(v)
	if err != nil {
		return "", err
	}

	word, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return s.BinaryString(word), nil
}
