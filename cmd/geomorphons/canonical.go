package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/banshee-data/geomorphons/internal/geomorphon"
)

func newCanonicalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canonical CODE...",
		Short: "Reduce raw ternary codes to their canonical form",
		Long: `Print, for each raw ternary code in 0..6560, the code itself, its canonical
(rotation and reflection reduced) code, the direction pattern N..NW using
0=lower 1=equal 2=higher, and the landform the pattern maps to.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, arg := range args {
				code, err := strconv.Atoi(arg)
				if err != nil || code < 0 || code > geomorphon.MaxCode {
					return fmt.Errorf("invalid code %q: want an integer in 0..%d", arg, geomorphon.MaxCode)
				}
				p := geomorphon.PatternFromTernary(code)
				higher, lower := p.Counts()
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", code, geomorphon.Canonical(code), p, geomorphon.FormFor(lower, higher))
			}
			return nil
		},
	}
}
