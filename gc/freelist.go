package gc

import "unsafe"

// freeBlock is overlaid in place on unused arena bytes. size counts the
// whole block including this header. The list is kept sorted by ascending
// address so that adjacency checks reduce to pointer arithmetic.
type freeBlock struct {
	size uintptr
	next *freeBlock
}

// freeBlockSize is the smallest span the free list can represent.
const freeBlockSize = unsafe.Sizeof(freeBlock{})

// allocFromFreeList removes a block of at least total bytes from the free
// list using first-fit and returns its address, or 0 when no block is large
// enough. When the fit leaves room for another free-block header plus the
// configured alignment, the block is split and the high remainder re-linked
// in place; otherwise the whole block is handed out and the slack becomes
// internal fragmentation.
func (c *Collector) allocFromFreeList(total uintptr) uintptr {
	prev := &c.freeList
	for b := c.freeList; b != nil; b = b.next {
		if b.size < total {
			prev = &b.next
			continue
		}
		if b.size >= total+freeBlockSize+c.cfg.Alignment {
			rest := (*freeBlock)(unsafe.Pointer(uintptr(unsafe.Pointer(b)) + total))
			rest.size = b.size - total
			rest.next = b.next
			*prev = rest
			c.counters.Splits++
		} else {
			*prev = b.next
		}
		return uintptr(unsafe.Pointer(b))
	}
	return 0
}

// addToFreeList inserts the span [addr, addr+size) into the free list,
// keeping address order. Spans too small to carry a free-block header are
// dropped: linking them would corrupt the list, so the bytes are abandoned
// as unreclaimable fragmentation instead.
func (c *Collector) addToFreeList(addr, size uintptr) {
	if size < freeBlockSize {
		debugLogf("dropping undersized free span: %#x (%d bytes)", addr, size)
		return
	}

	nb := (*freeBlock)(unsafe.Pointer(addr))
	nb.size = size

	prev := &c.freeList
	for *prev != nil && uintptr(unsafe.Pointer(*prev)) < addr {
		prev = &(*prev).next
	}
	nb.next = *prev
	*prev = nb
}

// coalesce merges address-adjacent free blocks in one linear pass. After a
// merge the cursor stays put, so runs of adjacent blocks collapse into one.
func (c *Collector) coalesce() {
	for b := c.freeList; b != nil && b.next != nil; {
		if uintptr(unsafe.Pointer(b))+b.size == uintptr(unsafe.Pointer(b.next)) {
			b.size += b.next.size
			b.next = b.next.next
			c.counters.Coalesces++
		} else {
			b = b.next
		}
	}
}

// freeSpace walks the free list and returns the block count and total free
// bytes. Linear; diagnostics only.
func (c *Collector) freeSpace() (blocks int, bytes uintptr) {
	for b := c.freeList; b != nil; b = b.next {
		blocks++
		bytes += b.size
	}
	return
}
