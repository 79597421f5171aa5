package scope

import (
	"golang.org/x/sys/unix"
)

// Allocator provides the backing memory for the allocation primitives.
// Alloc returns a buffer of exactly n bytes or an error; Free returns a
// buffer obtained from the same allocator. Implementations need not be safe
// for concurrent use and need not zero recycled buffers.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(buf []byte)
}

// heapAllocator is the default: plain Go heap slices. It never fails and
// Free leaves reclamation to the garbage collector.
type heapAllocator struct{}

func (heapAllocator) Alloc(n int) ([]byte, error) { return make([]byte, n), nil }
func (heapAllocator) Free([]byte)                 {}

// BudgetAllocator caps the total bytes outstanding and fails allocations
// beyond the cap, making the out-of-memory path reachable on demand. Freed
// bytes return to the budget.
type BudgetAllocator struct {
	budget int
}

// NewBudgetAllocator creates an allocator that holds at most budget bytes.
func NewBudgetAllocator(budget int) *BudgetAllocator {
	return &BudgetAllocator{budget: budget}
}

// Alloc returns a fresh buffer of n bytes, or ENOMEM once the budget is
// exhausted.
func (a *BudgetAllocator) Alloc(n int) ([]byte, error) {
	if n > a.budget {
		return nil, unix.ENOMEM
	}
	a.budget -= n
	return make([]byte, n), nil
}

// Free returns buf's bytes to the budget.
func (a *BudgetAllocator) Free(buf []byte) {
	a.budget += len(buf)
}

// Budget returns the bytes still available.
func (a *BudgetAllocator) Budget() int {
	return a.budget
}

// Alloc returns a buffer of n bytes owned by the current scope. The cleanup
// record is registered before the allocator runs; on failure the unarmed
// record simply vanishes with the unwind and the out-of-memory error is
// raised, on success the record commits the matching Free.
func (rt *Runtime) Alloc(n int) ([]byte, error) {
	if n < 0 {
		panic("scope: negative allocation size")
	}
	cl := rt.Register()
	buf, err := rt.alloc.Alloc(n)
	if err != nil {
		return nil, rt.RaiseNoMemory()
	}
	cl.Commit(func() error {
		rt.alloc.Free(buf)
		return nil
	})
	return buf, nil
}

// AllocZero is Alloc followed by an explicit zero fill. Allocators may hand
// out recycled, dirty buffers; Alloc alone makes no promise about contents.
func (rt *Runtime) AllocZero(n int) ([]byte, error) {
	buf, err := rt.Alloc(n)
	if err != nil {
		return nil, err
	}
	clear(buf)
	return buf, nil
}

// NextPow2 rounds n up to the next power of two. Zero yields zero, as does
// any n too large for the result to fit.
func NextPow2(n uint64) uint64 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
