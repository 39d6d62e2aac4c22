package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/banshee-data/geomorphons/internal/catalog"
)

func newRunsCmd() *cobra.Command {
	var (
		catalogPath string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs recorded in a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogPath == "" {
				return errors.New("--catalog is required")
			}
			c, err := catalog.Open(catalogPath)
			if err != nil {
				return err
			}
			defer c.Close()

			runs, err := c.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tSTARTED\tDURATION\tINPUT\tSIZE\tCLASSIFIED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%dx%d\t%d\n",
					r.ID, r.StartedAt.Local().Format(time.RFC3339), r.Duration.Round(time.Millisecond),
					r.Input, r.Rows, r.Cols, r.Classified)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "SQLite run catalog")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 = all)")
	return cmd
}
