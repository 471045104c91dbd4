package gc

import (
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestInitialFreeList(t *testing.T) {
	c := newTestCollector(t, nil)

	s := c.Stats()
	require.Equal(t, 1, s.FreeBlocks, "fresh arena must be one free block")
	require.Equal(t, c.cfg.HeapSize, s.FreeBytes)
	require.Zero(t, s.HeapUsed)
	require.Zero(t, s.Objects)
}

func TestAllocSplitsFirstFit(t *testing.T) {
	c := newTestCollector(t, nil)

	p, buf, err := c.Alloc(64)
	require.NoError(t, err)
	require.NotZero(t, p)
	require.Len(t, buf, 64)

	// First fit takes the low end of the single big block, so the payload
	// sits one header past the arena start.
	require.Equal(t, c.start+headerSize, uintptr(p))

	s := c.Stats()
	require.Equal(t, 1, s.FreeBlocks)
	require.Equal(t, c.cfg.HeapSize-(headerSize+64), s.FreeBytes)
	require.EqualValues(t, 1, c.counters.Splits)
	requireConservation(t, c)
}

func TestAllocWholeBlockWhenRemainderTooSmall(t *testing.T) {
	c := newTestCollector(t, nil)

	// Carve the arena down to a block that fits the request with a
	// remainder too small to host a free-block header.
	total := headerSize + 64
	blockAddr := c.allocFromFreeList(total + freeBlockSize/2)
	require.NotZero(t, blockAddr)

	// Rebuild a standalone free list holding exactly that block.
	c.freeList = nil
	c.addToFreeList(blockAddr, total+freeBlockSize/2)

	got := c.allocFromFreeList(total)
	require.Equal(t, blockAddr, got, "first fit must hand out the whole block")
	require.Nil(t, c.freeList, "no remainder block may be re-linked")
}

func TestAddToFreeListKeepsAddressOrder(t *testing.T) {
	c := newTestCollector(t, nil)

	// Take three spans out of the arena, then return them out of order.
	a := c.allocFromFreeList(128)
	b := c.allocFromFreeList(128)
	d := c.allocFromFreeList(128)
	require.True(t, a < b && b < d)

	c.addToFreeList(d, 128)
	c.addToFreeList(a, 128)
	c.addToFreeList(b, 128)

	var addrs []uintptr
	for fb := c.freeList; fb != nil; fb = fb.next {
		addrs = append(addrs, uintptr(unsafe.Pointer(fb)))
	}
	require.GreaterOrEqual(t, len(addrs), 3)
	for i := 1; i < len(addrs); i++ {
		require.Less(t, addrs[i-1], addrs[i], "free list must stay address-sorted")
	}
}

func TestAddToFreeListDropsUndersizedSpan(t *testing.T) {
	c := newTestCollector(t, nil)

	before, beforeBytes := c.freeSpace()
	c.addToFreeList(c.start+1024, freeBlockSize-1)
	after, afterBytes := c.freeSpace()

	require.Equal(t, before, after, "undersized span must not be linked")
	require.Equal(t, beforeBytes, afterBytes)
}

func TestCoalesceMergesAdjacentRuns(t *testing.T) {
	c := newTestCollector(t, nil)

	// Three back-to-back spans plus the big remainder: after coalescing the
	// list must collapse back to a single block spanning the arena.
	a := c.allocFromFreeList(256)
	b := c.allocFromFreeList(256)
	d := c.allocFromFreeList(256)
	c.addToFreeList(b, 256)
	c.addToFreeList(d, 256)
	c.addToFreeList(a, 256)

	c.coalesce()

	blocks, bytes := c.freeSpace()
	require.Equal(t, 1, blocks)
	require.Equal(t, c.cfg.HeapSize, bytes)
}

func TestFreeListInvariantsUnderChurn(t *testing.T) {
	c := newTestCollector(t, &Config{
		Name:      "churn",
		HeapSize:  128 << 10,
		Threshold: 0.8,
		Alignment: 8,
	})

	rng := rand.New(rand.NewSource(7))
	var roots []Ptr
	kept := map[Ptr][]byte{}

	for round := 0; round < 50; round++ {
		for i := 0; i < 20; i++ {
			size := uintptr(8 * (1 + rng.Intn(64)))
			p, buf, err := c.Alloc(size)
			require.NoError(t, err)
			if rng.Intn(4) == 0 {
				pattern := byte(rng.Intn(255) + 1)
				for j := range buf {
					buf[j] = pattern
				}
				roots = append(roots, p)
				kept[p] = buf
			}
		}
		// Drop a random half of the retained set.
		for i := 0; i < len(roots)/2; i++ {
			j := rng.Intn(len(roots))
			delete(kept, roots[j])
			roots[j] = roots[len(roots)-1]
			roots = roots[:len(roots)-1]
		}
		setRoots(c, roots)
		c.Collect()

		// Address order, full coalescing, and accounting must hold after
		// every cycle.
		var prevEnd uintptr
		blocks := 0
		freeBytes := uintptr(0)
		for fb := c.freeList; fb != nil; fb = fb.next {
			addr := uintptr(unsafe.Pointer(fb))
			if blocks > 0 {
				require.Less(t, prevEnd, addr, "adjacent free blocks left un-coalesced")
			}
			prevEnd = addr + fb.size
			blocks++
			freeBytes += fb.size
		}
		require.LessOrEqual(t, c.heapUsed+freeBytes, c.cfg.HeapSize)

		// Retained objects keep their payloads intact.
		for p, buf := range kept {
			require.NotNil(t, c.findObjectByPayload(uintptr(p)))
			for _, got := range buf {
				require.Equal(t, buf[0], got, "survivor payload corrupted")
			}
		}
	}
}
