package memo

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_StateMachine(t *testing.T) {
	t.Parallel()

	var c Cell[int]
	calls := 0
	compute := func() int {
		calls++
		return 40 + calls
	}

	require.False(t, c.Populated(), "zero cell must be empty")
	_, ok := c.Get()
	require.False(t, ok)

	require.Equal(t, 41, c.GetOrInit(compute))
	require.True(t, c.Populated())
	require.Equal(t, 41, c.GetOrInit(compute), "populated cell must return the cached value")
	require.Equal(t, 1, calls)

	c.Invalidate()
	require.False(t, c.Populated())
	c.Invalidate()
	require.False(t, c.Populated(), "invalidate on an empty cell is a no-op")

	require.Equal(t, 42, c.GetOrInit(compute))
	require.Equal(t, 2, calls)

	v, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestCell_InvalidateDropsValue(t *testing.T) {
	t.Parallel()

	var c Cell[[]string]
	c.GetOrInit(func() []string { return []string{"a"} })
	c.Invalidate()

	v, ok := c.Get()
	require.False(t, ok)
	assert.Nil(t, v)
}

func TestSyncCell_ComputesOnceUnderContention(t *testing.T) {
	t.Parallel()

	var c SyncCell[int]
	var calls atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := c.GetOrInit(func() int {
				calls.Add(1)
				return 7
			})
			assert.Equal(t, 7, got)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	require.True(t, c.Populated())

	c.Invalidate()
	_, ok := c.Get()
	require.False(t, ok)
}
