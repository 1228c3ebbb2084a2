package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/umalloc/alloc"
)

func init() {
	rootCmd.AddCommand(newScenarioCmd())
}

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Run the basic reuse scenario",
		Long: `The scenario command allocates 10 and 20 bytes, frees the first
block, allocates 10 bytes again and reports whether the freed address was
reused.

Example:
  umallocctl scenario
  umallocctl scenario --source mmap --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario()
		},
	}
	return cmd
}

type scenarioResult struct {
	P      alloc.Ref     `json:"p"`
	Q      alloc.Ref     `json:"q"`
	R      alloc.Ref     `json:"r"`
	Reused bool          `json:"reused"`
	Blocks []alloc.Block `json:"blocks"`
}

func runScenario() error {
	h, closeFn, err := openHeap()
	if err != nil {
		return err
	}
	defer closeFn()

	var res scenarioResult
	if res.P, _, err = h.Malloc(10); err != nil {
		return fmt.Errorf("alloc 10: %w", err)
	}
	if res.Q, _, err = h.Malloc(20); err != nil {
		return fmt.Errorf("alloc 20: %w", err)
	}
	if err = h.Free(res.P); err != nil {
		return fmt.Errorf("free p: %w", err)
	}
	if res.R, _, err = h.Malloc(10); err != nil {
		return fmt.Errorf("alloc 10 again: %w", err)
	}
	if err := h.Verify(); err != nil {
		return err
	}
	res.Reused = res.R == res.P
	res.Blocks = h.Blocks()

	if jsonOut {
		return printJSON(res)
	}

	printInfo("p = alloc(10) -> %s\n", num(res.P))
	printInfo("q = alloc(20) -> %s\n", num(res.Q))
	printInfo("free(p)\n")
	printInfo("r = alloc(10) -> %s\n", num(res.R))
	if res.Reused {
		printInfo("r reuses p's block\n")
	} else {
		printInfo("r does not reuse p's block\n")
	}
	printInfo("Free list:\n")
	printBlocks(res.Blocks)
	return nil
}
