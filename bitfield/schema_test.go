package bitfield

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* TEST TYPES */

// Layout used for registry tests
type header struct {
	Version uint8  `bits:"60,4"`
	Op      uint8  `bits:"52,8"`
	Args    uint8  `bits:"40,4"`
	Len     uint16 `bits:"26,14"`
	ID      uint16 `bits:"16,10"`
}

type untagged struct {
	A int
	B string
}

type badTag struct {
	A uint8 `bits:"zero,4"`
}

type badKind struct {
	A string `bits:"0,8"`
}

type overflowField struct {
	A uint16 `bits:"60,8"`
}

/* CONSTRUCTION */

func TestNewValidation(t *testing.T) {
	// Total width outside [1, 64]
	_, err := New(0, Field{Name: "a", Offset: 0, Length: 1})
	assert.ErrorIs(t, err, ErrorWidth)
	_, err = New(65, Field{Name: "a", Offset: 0, Length: 1})
	assert.ErrorIs(t, err, ErrorWidth)

	// Zero length field
	_, err = New(8, Field{Name: "a", Offset: 0, Length: 0})
	assert.ErrorIs(t, err, ErrorField)

	// Field spanning past bit 63
	_, err = New(64, Field{Name: "a", Offset: 60, Length: 8})
	assert.ErrorIs(t, err, ErrorField)

	// Widest possible single field
	s, err := New(64, Field{Name: "a", Offset: 0, Length: 64})
	require.NoError(t, err)
	assert.Equal(t, uint8(64), s.TotalBits)
}

/* REGISTRY */

func TestRegister(t *testing.T) {
	s, err := Register(header{}, 64)
	require.NoError(t, err)
	require.Len(t, s.Fields, 5)

	assert.Equal(t, "Version", s.Fields[0].Name)
	assert.Equal(t, uint8(60), s.Fields[0].Offset)
	assert.Equal(t, uint8(4), s.Fields[0].Length)
	assert.Equal(t, uint8(14), s.Fields[3].Length)

	// Registering again must return the cached schema
	again, err := Register(header{}, 64)
	require.NoError(t, err)
	assert.Same(t, s, again)

	// Lookup works for values and pointers alike
	found, err := For(&header{})
	require.NoError(t, err)
	assert.Same(t, s, found)
}

func TestRegisterMalformed(t *testing.T) {
	_, err := Register(untagged{}, 8)
	assert.ErrorIs(t, err, ErrorField)

	_, err = Register(badTag{}, 8)
	assert.ErrorIs(t, err, ErrorField)

	_, err = Register(badKind{}, 8)
	assert.ErrorIs(t, err, ErrorKind)

	_, err = Register(overflowField{}, 64)
	assert.ErrorIs(t, err, ErrorField)

	_, err = Register("not a struct", 8)
	assert.ErrorIs(t, err, ErrorField)
}

func TestForMissing(t *testing.T) {
	type never struct {
		A uint8 `bits:"0,8"`
	}
	_, err := For(never{})
	assert.ErrorIs(t, err, ErrorNoSchema)
}

func TestRegisterConcurrent(t *testing.T) {
	type shared struct {
		A uint8 `bits:"0,8"`
	}

	var wg sync.WaitGroup
	out := make([]*Schema, 8)
	for i := range out {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := Register(shared{}, 8)
			assert.NoError(t, err)
			out[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range out {
		require.NotNil(t, s)
		assert.Equal(t, out[0], s)
	}
}
