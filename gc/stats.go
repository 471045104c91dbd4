package gc

import (
	"fmt"
	"strings"
)

// Stats is a read-only diagnostic snapshot of a collector. Taking one walks
// the object registry and the free list; it has no side effects.
type Stats struct {
	Config      string  // configuration name
	HeapSize    uintptr
	HeapUsed    uintptr // live bytes, headers included
	Objects     int     // live objects in the registry
	FreeBlocks  int
	FreeBytes   uintptr
	Collections uint64
	Allocations uint64
}

// Stats snapshots the collector's current state.
func (c *Collector) Stats() Stats {
	blocks, bytes := c.freeSpace()
	return Stats{
		Config:      c.cfg.Name,
		HeapSize:    c.cfg.HeapSize,
		HeapUsed:    c.heapUsed,
		Objects:     c.objectCount(),
		FreeBlocks:  blocks,
		FreeBytes:   bytes,
		Collections: c.collections,
		Allocations: c.allocations,
	}
}

// UsedPercent returns heap occupancy as a percentage.
func (s Stats) UsedPercent() float64 {
	if s.HeapSize == 0 {
		return 0
	}
	return float64(s.HeapUsed) / float64(s.HeapSize) * 100
}

// String renders the snapshot as human-readable text.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "GC stats (%s):\n", s.Config)
	fmt.Fprintf(&b, "  Heap size: %d bytes\n", s.HeapSize)
	fmt.Fprintf(&b, "  Heap used: %d bytes (%.1f%%)\n", s.HeapUsed, s.UsedPercent())
	fmt.Fprintf(&b, "  Objects: %d\n", s.Objects)
	fmt.Fprintf(&b, "  Free blocks: %d (%d bytes)\n", s.FreeBlocks, s.FreeBytes)
	fmt.Fprintf(&b, "  Collections: %d\n", s.Collections)
	fmt.Fprintf(&b, "  Allocations: %d", s.Allocations)
	return b.String()
}
