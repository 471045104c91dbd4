package gc

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/MaximVlas/gcheap/internal/machine"
	"github.com/MaximVlas/gcheap/internal/mem"
)

const wordSize = unsafe.Sizeof(uintptr(0))

// Ptr is the address of an allocation's payload inside the arena. The zero
// Ptr is the null pointer. Arena addresses are stable for the lifetime of
// the collector; objects are never moved.
type Ptr uintptr

// Collector is the process-wide collector state: arena bounds, the object
// registry, the free list, and the collection policy. Exactly one goroutine
// may use a Collector; see the package documentation for the threading
// model.
type Collector struct {
	cfg Config

	arena []byte
	unmap func() error
	start uintptr      // first arena address
	end   uintptr      // one past the last arena address

	heapUsed uintptr    // live bytes, headers included
	objects  *object    // registry head, most-recent-first
	freeList *freeBlock // address-ordered
	pinned   *object    // survives the current cycle regardless of roots

	stackBottom uintptr

	collections uint64
	allocations uint64
	counters    counters

	// Test hook: overrides machine-state capture when non-nil, so tests and
	// embedders can supply explicit root regions.
	capture func() machine.Snapshot

	closed bool
}

// counters holds internal allocator statistics, for instrumentation and
// tests.
type counters struct {
	Splits    uint64 // free-block splits during allocation
	Coalesces uint64 // adjacent-block merges
	Marked    uint64 // objects marked across all cycles
	Swept     uint64 // objects reclaimed across all cycles
}

func alignUp(n, a uintptr) uintptr {
	return (n + a - 1) &^ (a - 1)
}

// New maps the arena and prepares a collector. A nil cfg selects
// DefaultConfig. Unless cfg.StackBottom supplies a colder boundary, the
// stack position of New's own frame is recorded as the cold end of later
// conservative scans, so New should run close to the start of the owning
// goroutine.
//
//go:noinline
func New(cfg *Config) (*Collector, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	c := &Collector{cfg: *cfg}
	if err := c.cfg.validate(); err != nil {
		return nil, err
	}
	c.cfg.HeapSize = alignUp(c.cfg.HeapSize, c.cfg.Alignment)

	data, unmap, err := mem.Map(int(c.cfg.HeapSize))
	if err != nil {
		return nil, fmt.Errorf("gc: map arena: %w", err)
	}
	c.arena = data
	c.unmap = unmap
	c.start = uintptr(unsafe.Pointer(&data[0]))
	c.end = c.start + c.cfg.HeapSize

	// The whole arena starts out as a single free block.
	fb := (*freeBlock)(unsafe.Pointer(c.start))
	fb.size = c.cfg.HeapSize
	fb.next = nil
	c.freeList = fb

	c.stackBottom = c.cfg.StackBottom
	if c.stackBottom == 0 {
		c.stackBottom = machine.StackBottom()
	}

	debugLogf("initialized: arena=%#x size=%d", c.start, c.cfg.HeapSize)
	return c, nil
}

// Close releases the arena back to the OS and reports cumulative counters.
// Further allocation fails with ErrClosed. Close is idempotent.
func (c *Collector) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	debugLogf("cleanup: collections=%d allocations=%d", c.collections, c.allocations)
	c.objects = nil
	c.freeList = nil
	c.pinned = nil
	c.arena = nil
	if c.unmap != nil {
		return c.unmap()
	}
	return nil
}

// contains reports whether addr lies inside the arena.
func (c *Collector) contains(addr uintptr) bool {
	return addr >= c.start && addr < c.end
}

// Process-wide default collector, initialized lazily on first use. Mapping
// failure here is fatal: there is no caller that could meaningfully recover
// before the first allocation.
var (
	defaultOnce sync.Once
	defaultHeap *Collector

	// processStackBottom is captured during package initialization, before
	// any ordinary program code runs on the main goroutine. It is the cold
	// scan boundary for the default collector, so the package-level facade
	// is only valid on the main goroutine.
	processStackBottom uintptr
)

func init() {
	processStackBottom = machine.StackBottom()
}

// Default returns the process-wide collector, creating it on first call
// with DefaultConfig.
func Default() *Collector {
	defaultOnce.Do(func() {
		cfg := DefaultConfig
		cfg.StackBottom = processStackBottom
		c, err := New(&cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gc: failed to initialize heap: %v\n", err)
			os.Exit(1)
		}
		defaultHeap = c
	})
	return defaultHeap
}

// Shutdown releases the process-wide collector's arena. Safe to call even
// if the default collector was never used.
func Shutdown() error {
	if defaultHeap == nil {
		return nil
	}
	return defaultHeap.Close()
}

// Package-level facade over the default collector.

// Alloc allocates from the process-wide collector.
func Alloc(size uintptr) (Ptr, []byte, error) { return Default().Alloc(size) }

// Calloc allocates count*size zero-filled bytes from the process-wide
// collector.
func Calloc(count, size uintptr) (Ptr, []byte, error) { return Default().Calloc(count, size) }

// Realloc resizes an allocation of the process-wide collector.
func Realloc(p Ptr, size uintptr) (Ptr, []byte, error) { return Default().Realloc(p, size) }

// Free is a no-op; the collector reclaims unreachable objects on its own.
func Free(p Ptr) { Default().Free(p) }

// Collect forces a collection cycle on the process-wide collector.
func Collect() { Default().Collect() }

// ReadStats snapshots the process-wide collector's statistics.
func ReadStats() Stats { return Default().Stats() }
