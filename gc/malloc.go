package gc

import "unsafe"

// Heap is the allocation facade. Consumers should depend on this interface
// and have a *Collector injected rather than assuming a process-wide
// allocator.
type Heap interface {
	// Alloc returns the address of size zero-filled payload bytes and a
	// byte-slice view of them. Fails with ErrOutOfMemory only after a
	// reactive collection cycle could not make room.
	Alloc(size uintptr) (Ptr, []byte, error)

	// Calloc allocates count*size zero-filled bytes.
	Calloc(count, size uintptr) (Ptr, []byte, error)

	// Realloc resizes p's allocation. A nil p behaves as Alloc; size zero
	// returns the null Ptr with no error and leaves the object for a
	// future cycle to reclaim.
	Realloc(p Ptr, size uintptr) (Ptr, []byte, error)

	// Free is always a no-op; reclamation happens only inside a collection
	// cycle that proves the object unreachable.
	Free(p Ptr)

	// Collect forces a collection cycle.
	Collect()

	// Stats returns a read-only diagnostic snapshot.
	Stats() Stats
}

var _ Heap = (*Collector)(nil)

// Alloc allocates size payload bytes. The payload is zero-filled and
// aligned to the configured alignment; its address is returned both as a
// Ptr (storable inside other payloads, see PutPtr) and as a byte slice for
// direct access.
func (c *Collector) Alloc(size uintptr) (Ptr, []byte, error) {
	if c.closed {
		return 0, nil, ErrClosed
	}

	size = alignUp(size, c.cfg.Alignment)
	total := headerSize + size

	c.maybeCollect(total)

	addr := c.allocFromFreeList(total)
	if addr == 0 {
		// Reactive trigger: one more cycle, one retry, then give up.
		c.Collect()
		addr = c.allocFromFreeList(total)
		if addr == 0 {
			debugLogf("allocation of %d bytes failed after collection", size)
			return 0, nil, ErrOutOfMemory
		}
	}

	o := (*object)(unsafe.Pointer(addr))
	o.size = size
	o.marked = false
	o.next = c.objects
	c.objects = o

	c.heapUsed += total
	c.allocations++

	buf := o.payloadBytes()
	clear(buf)
	return Ptr(o.payload()), buf, nil
}

// Calloc allocates count*size bytes; the payload is already zero-filled by
// Alloc. Fails with ErrOutOfMemory if the product overflows.
func (c *Collector) Calloc(count, size uintptr) (Ptr, []byte, error) {
	if size != 0 && count > ^uintptr(0)/size {
		return 0, nil, ErrOutOfMemory
	}
	return c.Alloc(count * size)
}

// Realloc resizes the allocation at p.
//
// A nil p behaves as Alloc. A zero size returns the null Ptr and no error;
// the original object becomes garbage for a future cycle. If the aligned
// size fits the existing payload the same pointer is returned unchanged
// (shrink-in-place; the header keeps its recorded size and the tail is
// recovered only when the object is eventually collected). Growing
// allocates a fresh object and copies the old payload; the old object is
// left in the registry until a cycle proves it unreachable.
//
// A p that matches no live object is treated as a fresh Alloc rather than
// an error. That permissiveness can mask misuse of foreign or stale
// pointers; it is kept deliberately, and logged when GCHEAP_LOG is set.
func (c *Collector) Realloc(p Ptr, size uintptr) (Ptr, []byte, error) {
	if c.closed {
		return 0, nil, ErrClosed
	}
	if p == 0 {
		return c.Alloc(size)
	}
	if size == 0 {
		// Free is a no-op; the object is simply left to the collector.
		return 0, nil, nil
	}

	o := c.findObjectByPayload(uintptr(p))
	if o == nil {
		debugLogf("realloc of unknown pointer %#x, falling back to alloc", uintptr(p))
		return c.Alloc(size)
	}

	if alignUp(size, c.cfg.Alignment) <= o.size {
		debugLogf("realloc shrink in place: %d -> %d", o.size, size)
		return p, o.payloadBytes(), nil
	}

	// Pin the source object across the allocation: a collection triggered
	// inside Alloc must not reclaim it before its bytes are copied. The
	// caller's pointer may live in no scanned region.
	c.pinned = o
	np, buf, err := c.Alloc(size)
	c.pinned = nil
	if err != nil {
		return 0, nil, err
	}
	copy(buf, o.payloadBytes())
	return np, buf, nil
}

// Free is a no-op. The object stays in the registry, and keeps counting
// toward heap occupancy, until a collection cycle finds it unreachable.
func (c *Collector) Free(p Ptr) {
	debugLogf("free called on %#x (no-op)", uintptr(p))
}

// PutPtr stores p as a native word at off in buf. Payload words written
// this way are exactly what the conservative scanner looks for, so storing
// an allocation's Ptr inside another allocation keeps it reachable.
func PutPtr(buf []byte, off int, p Ptr) {
	_ = buf[off+int(wordSize)-1] // bounds check
	*(*uintptr)(unsafe.Pointer(&buf[off])) = uintptr(p)
}

// GetPtr reads a native word previously stored with PutPtr.
func GetPtr(buf []byte, off int) Ptr {
	_ = buf[off+int(wordSize)-1] // bounds check
	return Ptr(*(*uintptr)(unsafe.Pointer(&buf[off])))
}
