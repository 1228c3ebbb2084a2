package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/umalloc/alloc"
	"github.com/joshuapare/umalloc/pkg/umalloc"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute an allocation script",
		Long: `The run command executes a script against a fresh allocator, one
command per line:

  alloc <name> <bytes>   allocate and bind the block to name
  free <name>            free the block bound to name
  check                  verify the free list
  dump                   print the free list
  # comment              ignored, as are blank lines

Out-of-memory is reported on the line and the script continues. A parse
error, an unknown name or a failed check stops the run. Use "-" to read the
script from stdin.

Example:
  umallocctl run workload.txt
  umallocctl run workload.txt --source mmap --min-grow 256 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

func runRun(args []string) error {
	path := args[0]

	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	h, closeFn, err := openHeap()
	if err != nil {
		return err
	}
	defer closeFn()

	printVerbose("Running script: %s\n", path)

	var steps []step
	runErr := runScript(in, h, func(s step) {
		if jsonOut {
			steps = append(steps, s)
			return
		}
		printStep(s)
	})
	if runErr != nil {
		return runErr
	}

	if jsonOut {
		return printJSON(struct {
			Steps []step        `json:"steps"`
			Stats umalloc.Stats `json:"stats"`
		}{steps, h.Stats()})
	}
	printStats(h.Stats())
	return nil
}

// step is the outcome of one script command.
type step struct {
	Line   int           `json:"line"`
	Op     string        `json:"op"`
	Name   string        `json:"name,omitempty"`
	Bytes  int           `json:"bytes,omitempty"`
	Ref    alloc.Ref     `json:"ref,omitempty"`
	Units  uint32        `json:"units,omitempty"`
	Err    string        `json:"error,omitempty"`
	Blocks []alloc.Block `json:"blocks,omitempty"`
}

// runScript executes script commands against h, calling emit after each one.
func runScript(r io.Reader, h *umalloc.Heap, emit func(step)) error {
	live := make(map[string]alloc.Ref)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		s := step{Line: line, Op: fields[0]}
		switch s.Op {
		case "alloc":
			if len(fields) != 3 {
				return fmt.Errorf("line %d: usage: alloc <name> <bytes>", line)
			}
			s.Name = fields[1]
			if _, ok := live[s.Name]; ok {
				return fmt.Errorf("line %d: %q is already allocated", line, s.Name)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return fmt.Errorf("line %d: bad size %q: %w", line, fields[2], err)
			}
			s.Bytes = n

			ref, _, err := h.Malloc(n)
			switch {
			case errors.Is(err, alloc.ErrNoSpace):
				s.Err = err.Error()
			case err != nil:
				return fmt.Errorf("line %d: %w", line, err)
			default:
				live[s.Name] = ref
				s.Ref = ref
				s.Units, _ = h.Units(ref)
			}

		case "free":
			if len(fields) != 2 {
				return fmt.Errorf("line %d: usage: free <name>", line)
			}
			s.Name = fields[1]
			ref, ok := live[s.Name]
			if !ok {
				return fmt.Errorf("line %d: unknown name %q", line, s.Name)
			}
			if err := h.Free(ref); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			delete(live, s.Name)
			s.Ref = ref

		case "check":
			if err := h.Verify(); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}

		case "dump":
			s.Blocks = h.Blocks()

		default:
			return fmt.Errorf("line %d: unknown command %q", line, s.Op)
		}
		emit(s)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

func printStep(s step) {
	switch s.Op {
	case "alloc":
		if s.Err != "" {
			printInfo("%d: alloc %s %s -> %s\n", s.Line, s.Name, num(s.Bytes), s.Err)
			return
		}
		printInfo("%d: alloc %s %s -> ref %s (%s units)\n",
			s.Line, s.Name, num(s.Bytes), num(s.Ref), num(s.Units))
	case "free":
		printInfo("%d: free %s (ref %s)\n", s.Line, s.Name, num(s.Ref))
	case "check":
		printInfo("%d: check ok\n", s.Line)
	case "dump":
		printInfo("%d: free list\n", s.Line)
		printBlocks(s.Blocks)
	}
}
