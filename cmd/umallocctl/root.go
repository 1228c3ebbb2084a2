package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/umalloc/alloc"
	"github.com/joshuapare/umalloc/backing"
	"github.com/joshuapare/umalloc/internal/logger"
	"github.com/joshuapare/umalloc/pkg/umalloc"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	sourceKind string
	limit      int
	minGrow    uint32
)

// Source kinds accepted by --source
const (
	sourceHeap = "heap"
	sourceMmap = "mmap"
)

var printer = message.NewPrinter(language.English)

// num formats an integer with English digit grouping.
func num(v any) string { return printer.Sprintf("%d", v) }

var rootCmd = &cobra.Command{
	Use:   "umallocctl",
	Short: "Drive and inspect a next-fit free-list allocator",
	Long: `umallocctl runs allocation scripts against a next-fit free-list
allocator and prints the resulting free list. It can back the allocator with
a plain Go slice or an anonymous memory mapping.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Enabled: verbose && !quiet,
			Level:   slog.LevelDebug,
		})
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&sourceKind, "source", sourceHeap, "Backing source: heap or mmap")
	rootCmd.PersistentFlags().IntVar(&limit, "limit", 64<<20, "Bytes reserved for the backing source")
	rootCmd.PersistentFlags().
		Uint32Var(&minGrow, "min-grow", alloc.DefaultMinGrowUnits, "Smallest growth in 8-byte units")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openHeap builds a heap from the global flags. The returned close function
// releases the source.
func openHeap() (*umalloc.Heap, func() error, error) {
	var (
		src     backing.Source
		closeFn = func() error { return nil }
	)
	switch sourceKind {
	case sourceHeap:
		h, err := backing.NewHeap(limit)
		if err != nil {
			return nil, nil, fmt.Errorf("heap source: %w", err)
		}
		src = h
	case sourceMmap:
		m, err := backing.NewMapped(limit)
		if err != nil {
			return nil, nil, fmt.Errorf("mmap source: %w", err)
		}
		src, closeFn = m, m.Close
	default:
		return nil, nil, fmt.Errorf("unknown source %q (want %s or %s)", sourceKind, sourceHeap, sourceMmap)
	}

	printVerbose("Source: %s, limit %s bytes, min grow %s units\n",
		sourceKind, num(limit), num(minGrow))

	h, err := umalloc.New(src, &alloc.Options{MinGrowUnits: minGrow})
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return h, closeFn, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printBlocks prints the free list one block per line.
func printBlocks(blocks []alloc.Block) {
	if len(blocks) == 0 {
		printInfo("  (free list empty)\n")
		return
	}
	for _, b := range blocks {
		printInfo("  [%s, %s) %s units\n",
			num(b.Start), num(b.End()), num(b.Units))
	}
}

// printStats prints a heap summary.
func printStats(s umalloc.Stats) {
	printInfo("Span: %s units, free: %s units in %s blocks, largest %s\n",
		num(s.SpanUnits), num(s.FreeUnits),
		num(s.FreeBlocks), num(s.Largest))
}
