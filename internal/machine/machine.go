// Package machine captures the caller's machine state for conservative root
// discovery: the active stack range and a spill of the callee-saved
// registers. Both are exposed as plain byte regions so that callers never
// touch platform-specific detail.
//
// Capture is only meaningful on the goroutine whose stack produced the
// bottom address; goroutine stacks may be relocated by the runtime, so a
// bottom captured on one goroutine must not be scanned from another.
package machine

import "unsafe"

const wordSize = unsafe.Sizeof(uintptr(0))

// Region is a half-open range [Start, End) of addressable bytes to be
// scanned word-by-word for pointer candidates.
type Region struct {
	Start uintptr
	End   uintptr
}

// Words returns the number of aligned machine words the region covers.
func (r Region) Words() int {
	if r.End <= r.Start {
		return 0
	}
	return int((r.End - r.Start) / wordSize)
}

// Snapshot is the captured machine state: one region per root source.
// The register spill buffer is owned by the snapshot; keep the snapshot
// alive until scanning is finished.
type Snapshot struct {
	Regions []Region

	regs *spillBuf
}

// spillBuf receives the callee-saved registers. Its length is
// architecture-dependent and may be zero where no spill primitive exists;
// values then reach the scanner through their stack spill slots instead.
type spillBuf [spillWords]uintptr

func (b *spillBuf) region() Region {
	if len(b) == 0 {
		return Region{}
	}
	start := uintptr(unsafe.Pointer(b))
	return Region{Start: start, End: start + uintptr(len(b))*wordSize}
}

// Capture records the current stack range and a register spill. bottom is
// the cold end of the stack, recorded once near process start; the hot end
// is an address in this call's frame. The range is normalized so that
// Start <= End regardless of stack growth direction.
//
//go:noinline
func Capture(bottom uintptr) Snapshot {
	regs := new(spillBuf)
	spillRegisters(regs)

	var anchor byte
	top := uintptr(unsafe.Pointer(&anchor))

	lo, hi := top, bottom
	if lo > hi {
		lo, hi = hi, lo
	}

	s := Snapshot{regs: regs}
	s.Regions = append(s.Regions, Region{Start: lo, End: hi})
	if r := regs.region(); r.End > r.Start {
		s.Regions = append(s.Regions, r)
	}
	return s
}

// StackBottom returns an address in the caller's active frame, for use as
// the cold boundary of later stack scans.
//
//go:noinline
func StackBottom() uintptr {
	var anchor byte
	return uintptr(unsafe.Pointer(&anchor))
}
