package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolalloc/mheap/alloc"
)

var (
	classesIncrement int
	classesMinClass  int
)

func init() {
	cmd := newClassesCmd()
	cmd.Flags().IntVar(&classesIncrement, "increment", alloc.DefaultConfig.Increment, "Heap growth increment in bytes")
	cmd.Flags().IntVar(&classesMinClass, "min-class", alloc.DefaultConfig.MinClass, "Smallest block size in bytes")
	rootCmd.AddCommand(cmd)
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Show the size-class table",
		Long: `The classes command prints every pool size class with the range of
request sizes it serves, followed by the threshold above which requests go
to the bulk provider.

Example:
  mallocctl classes
  mallocctl classes --increment 65536
  mallocctl classes --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses()
		},
	}
	return cmd
}

// ClassTable is the JSON form of the classes report.
type ClassTable struct {
	Increment int               `json:"increment"`
	MinClass  int               `json:"min_class"`
	Threshold int               `json:"threshold"`
	Classes   []alloc.SizeClass `json:"classes"`
}

func runClasses() error {
	cfg := alloc.DefaultConfig
	cfg.Name = "custom"
	cfg.Increment = classesIncrement
	cfg.MinClass = classesMinClass
	cfg.MaxHeap = cfg.Increment
	if err := cfg.Validate(); err != nil {
		return err
	}

	table := ClassTable{
		Increment: cfg.Increment,
		MinClass:  cfg.MinClass,
		Threshold: cfg.Threshold(),
		Classes:   cfg.Classes(),
	}

	if jsonOut {
		return printJSON(table)
	}

	printInfo("\nSize Classes (increment %s)\n", formatBytes(int64(cfg.Increment)))
	printInfo("%s\n\n", strings.Repeat("=", 40))
	printInfo("  %10s  %10s  %10s\n", "Class", "Min", "Max")
	for _, c := range table.Classes {
		printInfo("  %10s  %10s  %10s\n",
			formatNumber(int64(c.Size)), formatNumber(int64(c.MinRequest)), formatNumber(int64(c.MaxRequest)))
	}
	printInfo("\n  Bulk above %s bytes\n", formatNumber(int64(table.Threshold)))
	return nil
}
