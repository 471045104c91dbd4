package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MaximVlas/gcheap/gc"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show collector configuration and geometry",
		Long: `The info command creates a collector with the default configuration
and prints its geometry: arena size, collection threshold, alignment, and
the initial free-list state.

Example:
  gcctl info`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
	return cmd
}

func runInfo() error {
	c, err := gc.New(nil)
	if err != nil {
		return fmt.Errorf("failed to initialize collector: %w", err)
	}
	defer c.Close()

	s := c.Stats()
	printInfo("Collector configuration (%s):\n", s.Config)
	printInfo("  Arena size:  %d bytes\n", s.HeapSize)
	printInfo("  Threshold:   %.0f%%\n", gc.DefaultConfig.Threshold*100)
	printInfo("  Alignment:   %d bytes\n", gc.DefaultConfig.Alignment)
	printInfo("\n%s\n", s)
	return nil
}
