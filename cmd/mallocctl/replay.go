package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolalloc/mheap"
	"github.com/joshuapare/poolalloc/mheap/alloc"
	"github.com/joshuapare/poolalloc/mheap/bulk"
)

var (
	replayIncrement int
	replayMaxHeap   int
	replayMaxBulk   int
	replayFreeList  bool
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().IntVar(&replayIncrement, "increment", alloc.DefaultConfig.Increment, "Heap growth increment in bytes")
	cmd.Flags().IntVar(&replayMaxHeap, "max-heap", 64<<20, "Pool heap limit in bytes")
	cmd.Flags().IntVar(&replayMaxBulk, "max-bulk", 0, "Live bulk byte limit (0 for unlimited)")
	cmd.Flags().BoolVar(&replayFreeList, "free-list", false, "Dump the free list after the replay")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace",
		Long: `The replay command runs an allocation trace against a fresh allocator,
checks every block's contents on realloc and free, verifies the heap, and
reports growth and free-list statistics.

Trace lines:
  a <id> <size>          malloc
  c <id> <count> <size>  calloc
  r <id> <size>          realloc
  f <id>                 free

Example:
  mallocctl replay churn.trace
  mallocctl replay churn.trace --increment 65536 --free-list
  mallocctl replay churn.trace --max-heap 8192 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

func runReplay(args []string) error {
	tracePath := args[0]

	printVerbose("Reading trace: %s\n", tracePath)
	f, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	ops, err := ParseTrace(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to parse trace: %w", err)
	}

	cfg := alloc.DefaultConfig
	cfg.Name = "replay"
	cfg.Increment = replayIncrement
	cfg.MaxHeap = replayMaxHeap
	if err := cfg.Validate(); err != nil {
		return err
	}

	region := mheap.NewRegion(cfg.MaxHeap)
	defer region.Close()

	var prov bulk.Provider = bulk.OS{}
	if replayMaxBulk > 0 {
		prov = bulk.NewLimited(prov, replayMaxBulk)
	}

	a, err := alloc.New(region, prov, &cfg)
	if err != nil {
		return err
	}

	res, err := Replay(a, ops)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	if jsonOut {
		out := struct {
			*ReplayResult
			FreeList []alloc.Block `json:"free_list,omitempty"`
		}{ReplayResult: res}
		if replayFreeList {
			out.FreeList = a.FreeBlocks()
		}
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		printReplay(tracePath, res)
		if replayFreeList {
			printFreeList(a.FreeBlocks())
		}
	}

	if res.VerifyErr != "" {
		return fmt.Errorf("heap verification failed: %s", res.VerifyErr)
	}
	return nil
}

func printReplay(path string, res *ReplayResult) {
	st := res.Stats

	printInfo("\nReplay: %s\n", path)
	printInfo("%s\n\n", strings.Repeat("=", 40))

	printInfo("Trace:\n")
	printInfo("  Operations: %s\n", formatNumber(int64(res.Ops)))
	printInfo("  malloc: %s  calloc: %s  realloc: %s  free: %s\n",
		formatNumber(int64(res.Mallocs)), formatNumber(int64(res.Callocs)),
		formatNumber(int64(res.Reallocs)), formatNumber(int64(res.Frees)))
	printInfo("  Peak live request bytes: %s\n", formatBytes(res.PeakLive))
	if res.Failures > 0 {
		printInfo("  Failed requests: %s\n", formatNumber(int64(res.Failures)))
	}
	if res.Leaked > 0 {
		printInfo("  Blocks never freed: %s\n", formatNumber(int64(res.Leaked)))
	}
	printInfo("\n")

	printInfo("Heap:\n")
	printInfo("  Size: %s (%s extensions)\n", formatBytes(int64(st.HeapBytes)), formatNumber(int64(st.GrowCalls)))
	if st.HeapBytes > 0 && res.PeakLive > 0 {
		printInfo("  Utilization at peak: %.1f%%\n", float64(res.PeakLive)*100/float64(st.HeapBytes))
	}
	printInfo("  Fast path: %s  Slow path: %s\n",
		formatNumber(int64(st.AllocFastPath)), formatNumber(int64(st.AllocSlowPath)))
	printInfo("  Splits: %s\n", formatNumber(int64(st.SplitCount)))
	printInfo("  Free list: %s blocks, %s\n", formatNumber(int64(st.FreeBlocks)), formatBytes(st.FreeBytes))
	printInfo("\n")

	printInfo("Bulk:\n")
	printInfo("  Obtained: %s  Released: %s\n", formatNumber(int64(st.BulkAllocs)), formatNumber(int64(st.BulkFrees)))
	printInfo("\n")

	printInfo("Realloc:\n")
	printInfo("  In place: %s  Moved: %s\n", formatNumber(int64(st.ReallocInPlace)), formatNumber(int64(st.ReallocMoved)))
	printInfo("\n")

	if res.VerifyErr != "" {
		printInfo("Verification: FAILED (%s)\n", res.VerifyErr)
	} else {
		printInfo("Verification: OK\n")
	}
}

func printFreeList(blocks []alloc.Block) {
	printInfo("\nFree List (from anchor):\n")
	if len(blocks) == 0 {
		printInfo("  (empty)\n")
		return
	}
	for _, b := range blocks {
		printInfo("  0x%08X  %s\n", b.Offset, formatBytes(int64(b.Size)))
	}
}
