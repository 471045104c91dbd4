package gc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/MaximVlas/gcheap/internal/machine"
)

// newTestCollector returns a collector with a small arena and an empty root
// set; tests opt in to roots via setRoots, so reclamation assertions are
// deterministic regardless of what happens to be on the test goroutine's
// stack.
func newTestCollector(t *testing.T, cfg *Config) *Collector {
	t.Helper()
	if cfg == nil {
		cfg = &ConfigSmall
	}
	c, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})
	c.capture = func() machine.Snapshot { return machine.Snapshot{} }
	return c
}

// setRoots exposes the words of roots as the collector's only root region.
// The backing array is scanned directly, so mutating the slice contents
// between collections changes the root set.
func setRoots(c *Collector, roots []Ptr) {
	c.capture = func() machine.Snapshot {
		if len(roots) == 0 {
			return machine.Snapshot{}
		}
		start := uintptr(unsafe.Pointer(&roots[0]))
		return machine.Snapshot{
			Regions: []machine.Region{
				{Start: start, End: start + uintptr(len(roots))*wordSize},
			},
		}
	}
}

// markedCount walks the registry and counts marked objects.
func markedCount(c *Collector) int {
	n := 0
	for o := c.objects; o != nil; o = o.next {
		if o.marked {
			n++
		}
	}
	return n
}

// requireConservation asserts that live bytes plus free bytes account for
// the whole arena. Callers must only use allocation sizes that split
// cleanly, since handing out an oversized block is accepted internal
// fragmentation.
func requireConservation(t *testing.T, c *Collector) {
	t.Helper()
	_, freeBytes := c.freeSpace()
	require.Equal(t, c.cfg.HeapSize, c.heapUsed+freeBytes,
		"heapUsed (%d) + free (%d) must equal heap size", c.heapUsed, freeBytes)
}
