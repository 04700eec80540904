package memo

import "sync"

// Memoizer is the contract every cell type used for a computed field must
// satisfy. Generated code asserts it statically for each computed field.
type Memoizer[T any] interface {
	// Invalidate clears any cached value. It is a no-op on an empty cell.
	Invalidate()
	// GetOrInit returns the cached value, or calls compute, stores its
	// result and returns it.
	GetOrInit(compute func() T) T
}

var (
	_ Memoizer[int] = (*Cell[int])(nil)
	_ Memoizer[int] = (*SyncCell[int])(nil)
)

// Cell is a single-slot memoization cell without internal locking.
type Cell[T any] struct {
	value     T
	populated bool
}

// Invalidate moves the cell to the empty state and drops the cached value.
func (c *Cell[T]) Invalidate() {
	var zero T
	c.value = zero
	c.populated = false
}

// GetOrInit returns the cached value if the cell is populated. Otherwise it
// calls compute exactly once, caches the result and returns it.
func (c *Cell[T]) GetOrInit(compute func() T) T {
	if !c.populated {
		c.value = compute()
		c.populated = true
	}
	return c.value
}

// Get returns the cached value and whether the cell is populated.
func (c *Cell[T]) Get() (T, bool) {
	return c.value, c.populated
}

// Populated reports whether the cell holds a cached value.
func (c *Cell[T]) Populated() bool {
	return c.populated
}

// SyncCell is a Cell guarded by a mutex. GetOrInit holds the lock while
// compute runs, so concurrent callers observe a single computation.
type SyncCell[T any] struct {
	mu   sync.Mutex
	cell Cell[T]
}

// Invalidate moves the cell to the empty state.
func (c *SyncCell[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cell.Invalidate()
}

// GetOrInit returns the cached value or computes and caches it.
func (c *SyncCell[T]) GetOrInit(compute func() T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cell.GetOrInit(compute)
}

// Get returns the cached value and whether the cell is populated.
func (c *SyncCell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cell.Get()
}

// Populated reports whether the cell holds a cached value.
func (c *SyncCell[T]) Populated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cell.Populated()
}
