package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for hoccrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hoccrawl",
		Short: "Find the minimum or maximum valid height of cover",
		Long: `hoccrawl searches a range of cover heights for the smallest or largest one
accepted by a validity check.

A max crawl walks the range upwards and a min crawl walks it downwards. The
answer is the last accepted height. With a forgiveness level above zero the
crawl keeps going through that many consecutive rejections, so an isolated
invalid height does not end the search.

The check is either a set of limits given on the command line or in a job
file, or an external program that accepts or rejects each height through
its exit status.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging, including every candidate tried")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
