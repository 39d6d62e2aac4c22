package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/geomorphons/internal/config"
	"github.com/banshee-data/geomorphons/internal/fsutil"
	"github.com/banshee-data/geomorphons/internal/pipeline"
)

type classifyOptions struct {
	configPath string
	workers    int
	radius     int
	cellSize   float64
	noData     float64
	requirePrj bool

	job pipeline.Job
}

func newClassifyCmd() *cobra.Command {
	o := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify INPUT TERNARY HIGHER LOWER",
		Short: "Classify a DEM and write the ternary, higher and lower bands",
		Long: `Classify every interior cell of INPUT and write three rasters in the same
format: TERNARY holds canonical pattern codes, HIGHER and LOWER the number of
directions classified higher and lower. Border and no-data cells are written
as no-data: ASCII outputs use the input's no-data value, TIFF outputs use
65535 because a 16-bit band cannot hold a negative sentinel. A .prj sidecar
next to INPUT is copied next to each output.`,
		Example: `  geomorphons classify dem.asc ternary.asc higher.asc lower.asc
  geomorphons classify dem.tif t.tif h.tif l.tif --cell-size 30 --nodata 0 --chart codes.html`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.runConfig(cmd)
			if err != nil {
				return err
			}
			o.job.Input, o.job.Ternary, o.job.Higher, o.job.Lower = args[0], args[1], args[2], args[3]
			o.job.Config = cfg

			out, err := pipeline.NewRunner(fsutil.OSFileSystem{}).Run(cmd.Context(), o.job)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "classified %d of %d cells, %d distinct codes, in %s\n",
				out.Summary.Classified, out.Summary.Cells, out.Summary.DistinctCodes(), out.Duration)
			if out.RunID != "" {
				fmt.Fprintf(w, "run %s\n", out.RunID)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "run configuration file (.json, .yaml or .yml)")
	f.IntVar(&o.workers, "workers", 0, "rows classified concurrently (0 = one per CPU)")
	f.IntVar(&o.radius, "radius", 0, "maximum steps along each ray (0 = whole grid)")
	f.Float64Var(&o.cellSize, "cell-size", config.DefaultTIFFCellSize, "ground size of a TIFF pixel")
	f.Float64Var(&o.noData, "nodata", config.DefaultNoData, "input no-data value when the file does not declare one")
	f.BoolVar(&o.requirePrj, "require-prj", false, "fail when INPUT has no .prj sidecar")
	f.StringVar(&o.job.Landforms, "landforms", "", "also write the landform band to this raster")
	f.StringVar(&o.job.HeatmapPNG, "heatmap", "", "write a landform heatmap PNG")
	f.StringVar(&o.job.LandformPNG, "histogram", "", "write a landform histogram PNG")
	f.StringVar(&o.job.ChartHTML, "chart", "", "write an HTML code-frequency chart")
	f.StringVar(&o.job.CatalogPath, "catalog", "", "record the run in this SQLite catalog")
	return cmd
}

// runConfig loads --config (or the built-in defaults) and overlays any
// flags given explicitly on the command line.
func (o *classifyOptions) runConfig(cmd *cobra.Command) (*config.RunConfig, error) {
	cfg := config.DefaultRunConfig()
	if o.configPath != "" {
		loaded, err := config.LoadRunConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg.Merge(loaded)
	}

	flags := config.EmptyRunConfig()
	f := cmd.Flags()
	if f.Changed("workers") {
		flags.Workers = &o.workers
	}
	if f.Changed("radius") {
		flags.ScanRadius = &o.radius
	}
	if f.Changed("cell-size") {
		flags.TIFFCellSize = &o.cellSize
	}
	if f.Changed("nodata") {
		flags.DefaultNoData = &o.noData
		flags.TIFFNoData = &o.noData
	}
	if f.Changed("require-prj") {
		flags.RequireProjection = &o.requirePrj
	}
	cfg.Merge(flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
