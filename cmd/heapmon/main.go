// Command heapmon renders a live view of gcheap collector statistics while a
// synthetic allocation workload churns the heap. The collector is confined
// to a single worker goroutine; the UI only ever sees immutable stats
// snapshots.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MaximVlas/gcheap/gc"
	"github.com/MaximVlas/gcheap/internal/machine"
)

func main() {
	heapSize := flag.Int("heap-size", 1<<20, "arena size in bytes")
	maxSize := flag.Int("max-size", 256, "maximum allocation size in bytes")
	burst := flag.Int("burst", 200, "allocations per workload burst")
	flag.Parse()

	statsCh := make(chan gc.Stats, 1)
	done := make(chan struct{})
	errCh := make(chan error, 1)

	go func() {
		errCh <- runWorkload(uintptr(*heapSize), *maxSize, *burst, statsCh, done)
	}()

	m := newModel(statsCh)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	close(done)
	if err := <-errCh; err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runWorkload owns the collector for its whole lifetime. It allocates in
// bursts, keeping a small stack-resident window of recent pointers
// reachable, and publishes a stats snapshot after every burst.
func runWorkload(heapSize uintptr, maxSize, burst int, statsCh chan<- gc.Stats, done <-chan struct{}) error {
	cfg := gc.DefaultConfig
	cfg.Name = "Monitor"
	cfg.HeapSize = heapSize
	cfg.StackBottom = machine.StackBottom()

	c, err := gc.New(&cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize collector: %w", err)
	}
	defer c.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var retained [32]gc.Ptr

	for {
		select {
		case <-done:
			return nil
		default:
		}

		for i := 0; i < burst; i++ {
			size := uintptr(8 + rng.Intn(maxSize))
			p, _, err := c.Alloc(size)
			if err != nil {
				return fmt.Errorf("workload allocation failed: %w", err)
			}
			retained[rng.Intn(len(retained))] = p

			// Occasionally resize a retained pointer. Entries may be
			// stale after a collection, which Realloc handles by
			// allocating fresh storage.
			if i%16 == 0 {
				slot := rng.Intn(len(retained))
				if q := retained[slot]; q != 0 {
					np, _, err := c.Realloc(q, size)
					if err != nil {
						return fmt.Errorf("workload resize failed: %w", err)
					}
					retained[slot] = np
				}
			}
		}

		select {
		case statsCh <- c.Stats():
		default:
		}
		time.Sleep(10 * time.Millisecond)
	}
}
