package gc

import "unsafe"

// sweep walks the object registry once: unmarked objects are unlinked and
// their whole span handed back to the free list; marked objects survive
// with their mark reset for the next cycle. Adjacent free blocks are
// coalesced afterwards.
func (c *Collector) sweep() (swept int, freed uintptr) {
	curr := &c.objects
	for *curr != nil {
		o := *curr
		if o.marked {
			o.marked = false
			curr = &o.next
			continue
		}

		*curr = o.next
		span := o.span()
		c.addToFreeList(uintptr(unsafe.Pointer(o)), span)
		c.heapUsed -= span
		swept++
		freed += span
	}

	c.counters.Swept += uint64(swept)
	c.coalesce()
	return swept, freed
}
