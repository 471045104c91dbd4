package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MaximVlas/gcheap/gc"
	"github.com/MaximVlas/gcheap/internal/machine"
)

var (
	stressIterations int
	stressMaxSize    int
	stressHeapSize   int
	stressSeed       int64
)

// retainWindow is the number of recent allocations kept reachable. The
// window lives in a stack array so the conservative scan actually sees it.
const retainWindow = 64

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVarP(&stressIterations, "iterations", "n", 100000, "Number of allocations")
	cmd.Flags().IntVar(&stressMaxSize, "max-size", 512, "Maximum allocation size in bytes")
	cmd.Flags().IntVar(&stressHeapSize, "heap-size", 1<<20, "Arena size in bytes")
	cmd.Flags().Int64Var(&stressSeed, "seed", 1, "PRNG seed for allocation sizes")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run an allocation churn workload",
		Long: `The stress command hammers the allocator with short-lived
allocations of random sizes, keeping only a small window of recent
allocations reachable, and reports throughput and final collector
statistics.

Example:
  gcctl stress -n 1000000 --max-size 256
  gcctl stress --heap-size 4194304`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	return cmd
}

func runStress() error {
	cfg := gc.DefaultConfig
	cfg.Name = "Stress"
	cfg.HeapSize = uintptr(stressHeapSize)
	cfg.StackBottom = machine.StackBottom()

	c, err := gc.New(&cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize collector: %w", err)
	}
	defer c.Close()

	rng := rand.New(rand.NewSource(stressSeed))
	var retained [retainWindow]gc.Ptr

	start := time.Now()
	for i := 0; i < stressIterations; i++ {
		size := uintptr(8 + rng.Intn(stressMaxSize))
		p, _, err := c.Alloc(size)
		if err != nil {
			return fmt.Errorf("allocation %d (%d bytes) failed: %w", i, size, err)
		}
		retained[i%retainWindow] = p
	}
	elapsed := time.Since(start)

	// Reading the window keeps the stores live through the final Stats call.
	populated := 0
	for _, p := range retained {
		if p != 0 {
			populated++
		}
	}

	s := c.Stats()
	printVerbose("retain window: %d of %d slots populated\n", populated, retainWindow)
	pr := message.NewPrinter(language.English)
	pr.Printf("Completed %d allocations in %v (%.0f allocs/sec)\n",
		stressIterations, elapsed.Round(time.Millisecond),
		float64(stressIterations)/elapsed.Seconds())
	pr.Printf("  Collections:   %d\n", s.Collections)
	pr.Printf("  Heap used:     %d of %d bytes (%.1f%%)\n",
		s.HeapUsed, s.HeapSize, s.UsedPercent())
	pr.Printf("  Live objects:  %d\n", s.Objects)
	pr.Printf("  Free blocks:   %d (%d bytes)\n", s.FreeBlocks, s.FreeBytes)
	return nil
}
