package gc

import (
	"unsafe"

	"github.com/MaximVlas/gcheap/internal/machine"
)

// validPointer reports whether the word could reference arena memory: it
// must be aligned to the machine word and fall within the arena bounds.
// Whether it actually lands inside a live object is resolved during marking.
func (c *Collector) validPointer(w uintptr) bool {
	return w%wordSize == 0 && c.contains(w)
}

// scanRegion walks the region's aligned machine words and appends every
// valid pointer candidate to work. Words are read raw; the region is just
// bytes as far as the scanner is concerned.
func (c *Collector) scanRegion(r machine.Region, work []uintptr) []uintptr {
	for a := alignUp(r.Start, wordSize); a+wordSize <= r.End; a += wordSize {
		w := *(*uintptr)(unsafe.Pointer(a))
		if c.validPointer(w) {
			work = append(work, w)
		}
	}
	return work
}

// captureState returns the machine state to scan for roots: the capture
// hook when set, otherwise a live stack-and-register capture against the
// stack bottom recorded in New.
func (c *Collector) captureState() machine.Snapshot {
	if c.capture != nil {
		return c.capture()
	}
	return machine.Capture(c.stackBottom)
}

// findRoots captures machine state and produces the cycle's root candidate
// set.
func (c *Collector) findRoots() ([]uintptr, machine.Snapshot) {
	snap := c.captureState()
	var roots []uintptr
	for _, r := range snap.Regions {
		before := len(roots)
		roots = c.scanRegion(r, roots)
		debugLogf("scanned region %#x-%#x: %d words, %d candidates",
			r.Start, r.End, r.Words(), len(roots)-before)
	}
	return roots, snap
}
