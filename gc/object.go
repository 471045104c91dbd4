package gc

import "unsafe"

// object is the header placed at the start of every allocated block,
// immediately followed by size payload bytes. Headers live inside the arena
// and double as the nodes of the intrusive object registry.
type object struct {
	size   uintptr // payload bytes, already aligned
	marked bool
	next   *object
}

// headerSize is the object header overhead per allocation.
const headerSize = unsafe.Sizeof(object{})

// payload returns the address of the object's user data.
func (o *object) payload() uintptr {
	return uintptr(unsafe.Pointer(o)) + headerSize
}

// span returns the object's total footprint: header plus payload.
func (o *object) span() uintptr {
	return headerSize + o.size
}

// payloadBytes returns the payload as a byte slice.
func (o *object) payloadBytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(o.payload())), o.size)
}

// findObject returns the live object whose payload range contains addr, or
// nil. Interior pointers resolve to their containing object; addresses that
// land on a header or on free space resolve to nothing.
func (c *Collector) findObject(addr uintptr) *object {
	for o := c.objects; o != nil; o = o.next {
		p := o.payload()
		if addr >= p && addr < p+o.size {
			return o
		}
	}
	return nil
}

// findObjectByPayload returns the live object whose payload starts exactly
// at addr, or nil. Used by Realloc, which requires pointer identity rather
// than containment.
func (c *Collector) findObjectByPayload(addr uintptr) *object {
	for o := c.objects; o != nil; o = o.next {
		if o.payload() == addr {
			return o
		}
	}
	return nil
}

// objectCount walks the registry. Linear; diagnostics only.
func (c *Collector) objectCount() int {
	n := 0
	for o := c.objects; o != nil; o = o.next {
		n++
	}
	return n
}
