package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOrder(t *testing.T) {
	q := NewQueue[int](4)
	for i := 1; i <= 3; i++ {
		q.Push(i)
	}

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	assert.Equal(t, 1, q.Len())
}

func TestQueueEviction(t *testing.T) {
	q := NewQueue[int](3)
	for i := 1; i <= 5; i++ {
		q.Push(i)
	}

	// The two oldest entries were silently discarded
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []int{3, 4, 5}, q.Copy())
}

func TestQueueEmpty(t *testing.T) {
	q := NewQueue[string](2)

	v, ok := q.Pop()
	assert.False(t, ok)
	assert.Equal(t, "", v)
	assert.Nil(t, q.Copy())
}

func TestQueueConcurrent(t *testing.T) {
	q := NewQueue[int](8)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				q.Push(i*50 + j)
			}
		}(i)
	}
	wg.Wait()

	// Concurrent producers can never race past the capacity
	assert.Equal(t, 8, q.Len())
	assert.Equal(t, 8, q.Cap())
}
