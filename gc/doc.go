// Package gc implements a conservative mark-and-sweep garbage collector over
// a fixed-size arena, replacing manual heap management for single-threaded
// programs.
//
// # Overview
//
// A Collector owns one contiguous anonymous mapping (default 1 MiB) for its
// whole lifetime. Unused space is kept in an address-ordered free list of
// variable-size blocks with first-fit allocation, splitting, and coalescing.
// Every live allocation carries an intrusive header (size, mark bit, link)
// directly in front of its payload; the headers form the object registry
// that the sweep walks.
//
// The collector needs no cooperation from the objects it manages: there are
// no type tags and no write barriers. Roots are discovered conservatively by
// scanning the caller's stack range and a spill of the callee-saved
// registers word-by-word; any aligned word that lands inside the arena is
// treated as a potential pointer. Marking then follows pointer-shaped words
// inside reachable payloads. Over-retention is accepted; under-retention
// never happens.
//
// # The Heap Interface
//
// The allocation facade is the Heap interface:
//
//   - Alloc(size): allocate zero-filled payload bytes
//   - Calloc(count, size): allocate count*size zero-filled bytes
//   - Realloc(p, size): shrink in place, or allocate-and-copy to grow
//   - Free(p): always a no-op; reclamation is the collector's job
//   - Collect(): force a full mark/sweep cycle
//   - Stats(): read-only diagnostic snapshot
//
// Consumers should accept a Heap rather than reaching for the package-level
// default, so the collector can be injected like any other dependency.
//
// # Usage Example
//
//	c, err := gc.New(nil)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	p, buf, err := c.Alloc(64)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Link another object by storing its address in the payload.
//	q, _, _ := c.Alloc(64)
//	gc.PutPtr(buf, 0, q)
//
//	c.Collect() // q survives: it is reachable through p's payload
//
// # Collection Policy
//
// A cycle runs before an allocation would push heap usage past the
// configured threshold (default 0.8), and once more if the free list cannot
// satisfy a request. If the retry also fails the allocation returns
// ErrOutOfMemory. There is no heap growth.
//
// # Thread Safety
//
// A Collector is not safe for concurrent use. Collection runs synchronously on
// the calling goroutine, and the default root capture is only valid on the
// goroutine that created the collector. Concurrent use would race on the
// free list, the object registry, and every counter.
//
// # Related Packages
//
//   - github.com/MaximVlas/gcheap/internal/mem: arena mapping seam
//   - github.com/MaximVlas/gcheap/internal/machine: stack/register capture
package gc
