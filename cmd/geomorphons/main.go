// Command geomorphons classifies every cell of a DEM into one of the 498
// canonical geomorphon patterns.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/banshee-data/geomorphons/internal/monitoring"
	"github.com/banshee-data/geomorphons/internal/version"
)

type rootOptions struct {
	verbose bool
	restore func()
}

// finish restores the loggers replaced by PersistentPreRunE. Cobra skips
// PersistentPostRun when RunE fails, so run calls this as well.
func (ro *rootOptions) finish() {
	if ro.restore != nil {
		ro.restore()
		ro.restore = nil
	}
}

func newRootCmd(ro *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "geomorphons",
		Short: "Classify terrain into geomorphon patterns",
		Long: `geomorphons reads an elevation raster (ESRI ASCII grid or grayscale TIFF)
and writes, for every interior cell, its canonical ternary pattern code and
the number of directions in which the terrain rises above or falls below it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := monitoring.NewZapLogger(ro.verbose)
			if err != nil {
				return err
			}
			ro.restore = monitoring.UseZap(l)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ro.finish()
		},
	}
	root.PersistentFlags().BoolVarP(&ro.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newClassifyCmd(),
		newCanonicalCmd(),
		newRunsCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// run executes the CLI with args, writing command output to stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	ro := &rootOptions{}
	defer ro.finish()

	root := newRootCmd(ro)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		monitoring.Logf("geomorphons: %v", err)
		stop()
		os.Exit(1)
	}
}
