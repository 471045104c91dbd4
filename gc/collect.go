package gc

import "runtime"

// Collect runs a full mark/sweep cycle unconditionally: capture machine
// state, scan for roots, mark everything reachable, sweep the rest into the
// free list, coalesce. The cycle runs synchronously on the calling
// goroutine and always runs to completion.
func (c *Collector) Collect() {
	if c.closed {
		return
	}

	debugLogf("collection #%d: %d objects, %d bytes used",
		c.collections+1, c.objectCount(), c.heapUsed)

	roots, snap := c.findRoots()
	marked := c.mark(roots)
	swept, freed := c.sweep()

	// The register spill buffer must stay addressable until scanning and
	// marking are done; marking reads arena words only, but the snapshot's
	// regions were read raw above.
	runtime.KeepAlive(snap)

	c.collections++
	debugLogf("collection #%d done: %d marked, %d swept, %d bytes freed",
		c.collections, marked, swept, freed)
}

// maybeCollect applies the proactive trigger: collect before an allocation
// that would push occupancy past the configured threshold.
func (c *Collector) maybeCollect(total uintptr) {
	limit := uintptr(float64(c.cfg.HeapSize) * c.cfg.Threshold)
	if c.heapUsed+total > limit {
		debugLogf("occupancy %d+%d exceeds threshold %d, collecting",
			c.heapUsed, total, limit)
		c.Collect()
	}
}
