// Package bitfield implements a declarative bit-field codec. A value
// is described as a set of named sub-fields, each occupying a
// contiguous range of bits inside a fixed-width word of up to 64 bits,
// and converts losslessly between the structured representation, the
// packed integer and a human readable binary string.
package bitfield

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/marvik/bitcodec/internal/log"
)

/* PREDEFINED VALUES */

const (
	MaxBits uint8  = 64     // Widest packed word a schema can describe
	TagName string = "bits" // Struct tag carrying "offset,length" pairs
)

/* ERRORS */

var (
	ErrorNoSchema error = errors.New("type has no registered bit layout") // type has no registered bit layout
	ErrorWidth    error = errors.New("invalid total bit width")           // invalid total bit width
	ErrorField    error = errors.New("malformed field descriptor")        // malformed field descriptor
	ErrorKind     error = errors.New("unsupported storage kind")          // unsupported storage kind
)

/* TYPES */

// Describes a single sub-field inside the packed word.
type Field struct {
	Name   string // Field identifier
	Offset uint8  // Bit position of the least significant bit
	Length uint8  // Amount of bits occupied, 1 to 64

	kind  reflect.Kind // Storage kind in the structured form
	index int          // Struct field index, -1 when positional
}

// Describes the full packed word: its total width and every field
// laid out inside it. A schema is immutable once built and can be
// shared freely between goroutines.
type Schema struct {
	TotalBits uint8
	Fields    []Field
}

/* CONSTRUCTION */

// Creates a schema from an explicit field table. Every descriptor is
// checked here so that a wrong offset or length can never produce a
// silently wrong mask later on.
func New(totalBits uint8, fields ...Field) (*Schema, error) {
	if totalBits < 1 || totalBits > MaxBits {
		return nil, ErrorWidth
	}

	list := make([]Field, 0, len(fields))
	for _, f := range fields {
		if err := f.check(); err != nil {
			return nil, err
		}
		if f.kind == reflect.Invalid {
			f.kind = reflect.Uint64
		}
		f.index = -1
		list = append(list, f)
	}

	return &Schema{
		TotalBits: totalBits,
		Fields:    list,
	}, nil
}

// Verifies that a single descriptor stays inside the word.
func (f Field) check() error {
	if f.Length < 1 || f.Length > MaxBits {
		return ErrorField
	}
	if uint(f.Offset)+uint(f.Length) > uint(MaxBits) {
		return ErrorField
	}
	return nil
}

// Returns the mask covering the low Length bits of a field.
func (f Field) mask() uint64 {
	if f.Length >= MaxBits {
		return ^uint64(0)
	}
	return 1<<f.Length - 1
}

/* REGISTRY */

// Holds the schemas built from struct tags, keyed by the concrete
// struct type. Guarded because registration may race with lookups
// from other goroutines.
var (
	regMut  sync.RWMutex
	schemas map[reflect.Type]*Schema = make(map[reflect.Type]*Schema)
)

// Builds a schema for the struct type of "v" out of its
// `bits:"offset,length"` tags and caches it for later lookups.
// Fields without the tag are ignored. Registering an already known
// type returns the cached schema unchanged.
func Register(v any, totalBits uint8) (*Schema, error) {
	t := baseType(v)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, ErrorField
	}

	regMut.RLock()
	s, ok := schemas[t]
	regMut.RUnlock()
	if ok {
		return s, nil
	}

	s, err := parseTags(t, totalBits)
	if err != nil {
		return nil, err
	}

	regMut.Lock()
	schemas[t] = s
	regMut.Unlock()

	log.Schema(t.String(), len(s.Fields))
	return s, nil
}

// Returns the schema previously registered for the type of "v".
// Asking for a type that was never registered is a hard error, as
// guessing a bit width would corrupt every later conversion.
func For(v any) (*Schema, error) {
	t := baseType(v)

	regMut.RLock()
	defer regMut.RUnlock()
	s, ok := schemas[t]
	if !ok {
		return nil, ErrorNoSchema
	}
	return s, nil
}

// Resolves the struct type behind a value or a pointer to one.
func baseType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Walks the struct fields and turns every tagged one into a
// descriptor, validating each as it goes.
func parseTags(t reflect.Type, totalBits uint8) (*Schema, error) {
	if totalBits < 1 || totalBits > MaxBits {
		return nil, ErrorWidth
	}

	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup(TagName)
		if !ok {
			continue
		}

		st, ok := storageByKind[sf.Type.Kind()]
		if !ok {
			return nil, ErrorKind
		}

		off, length, err := splitTag(tag)
		if err != nil {
			return nil, err
		}

		// A field can not be wider than the type holding it
		if length > st.width {
			return nil, ErrorField
		}

		f := Field{
			Name:   sf.Name,
			Offset: off,
			Length: length,
			kind:   sf.Type.Kind(),
			index:  i,
		}
		if err := f.check(); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	// A type with no tagged fields has no layout to speak of
	if len(fields) == 0 {
		return nil, ErrorField
	}

	return &Schema{
		TotalBits: totalBits,
		Fields:    fields,
	}, nil
}

// Splits an "offset,length" tag into its two numbers.
func splitTag(tag string) (uint8, uint8, error) {
	parts := strings.Split(tag, ",")
	if len(parts) != 2 {
		return 0, 0, ErrorField
	}

	off, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 8)
	if err != nil {
		return 0, 0, ErrorField
	}
	length, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 8)
	if err != nil {
		return 0, 0, ErrorField
	}

	return uint8(off), uint8(length), nil
}
