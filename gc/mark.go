package gc

import "unsafe"

// mark sets the mark bit on every object transitively reachable from the
// root candidates and returns how many objects were newly marked. An
// explicit worklist replaces recursion so deeply linked graphs cannot
// exhaust the native stack; the marked check short-circuits cycles and
// diamonds, so each object is descended into at most once.
func (c *Collector) mark(roots []uintptr) int {
	work := make([]uintptr, len(roots))
	copy(work, roots)

	marked := 0

	// An object pinned by an in-flight facade operation survives the cycle
	// even when no scanned region references it.
	if o := c.pinned; o != nil && !o.marked {
		o.marked = true
		marked++
		work = c.scanPayload(o, work)
	}

	for len(work) > 0 {
		addr := work[len(work)-1]
		work = work[:len(work)-1]

		o := c.findObject(addr)
		if o == nil || o.marked {
			continue
		}
		o.marked = true
		marked++
		work = c.scanPayload(o, work)
	}
	c.counters.Marked += uint64(marked)
	return marked
}

// scanPayload conservatively rescans the payload: any aligned word that
// lands in the arena is a further candidate, pointer field or not.
func (c *Collector) scanPayload(o *object, work []uintptr) []uintptr {
	p := o.payload()
	for a := p; a+wordSize <= p+o.size; a += wordSize {
		w := *(*uintptr)(unsafe.Pointer(a))
		if c.validPointer(w) {
			work = append(work, w)
		}
	}
	return work
}
