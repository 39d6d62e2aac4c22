// Package pipeline runs one classification job end to end: load a DEM,
// scan it, write the output bands and optional reports, and catalogue the
// run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/geomorphons/internal/catalog"
	"github.com/banshee-data/geomorphons/internal/config"
	"github.com/banshee-data/geomorphons/internal/fsutil"
	"github.com/banshee-data/geomorphons/internal/geomorphon"
	"github.com/banshee-data/geomorphons/internal/monitoring"
	"github.com/banshee-data/geomorphons/internal/raster"
	"github.com/banshee-data/geomorphons/internal/report"
	"github.com/banshee-data/geomorphons/internal/security"
	"github.com/banshee-data/geomorphons/internal/timeutil"
	"github.com/banshee-data/geomorphons/internal/version"
)

// ErrMissingPath is returned when a required job path is empty.
var ErrMissingPath = errors.New("pipeline: input and all three output paths are required")

// Job names the files of one run. Input, Ternary, Higher and Lower are
// required; the rest are written only when set.
type Job struct {
	Input   string
	Ternary string
	Higher  string
	Lower   string

	Landforms   string // landform band, same format as Input
	HeatmapPNG  string // landform heatmap
	LandformPNG string // landform histogram
	ChartHTML   string // code frequency chart
	CatalogPath string // SQLite run catalog

	Config *config.RunConfig
}

// rasterOutputs lists the band files in write order.
func (j Job) rasterOutputs() []string {
	outs := []string{j.Ternary, j.Higher, j.Lower}
	if j.Landforms != "" {
		outs = append(outs, j.Landforms)
	}
	return outs
}

// Outcome is what a completed run produced.
type Outcome struct {
	RunID    string
	Dataset  *raster.Dataset
	Result   *geomorphon.Result
	Summary  report.Summary
	Duration time.Duration
}

// Runner executes jobs against a filesystem.
type Runner struct {
	fs    fsutil.FileSystem
	clock timeutil.Clock
}

// NewRunner returns a Runner reading and writing through fsys.
func NewRunner(fsys fsutil.FileSystem) *Runner {
	return &Runner{fs: fsys, clock: timeutil.RealClock{}}
}

// WithClock replaces the clock used to time runs.
func (r *Runner) WithClock(c timeutil.Clock) *Runner {
	r.clock = c
	return r
}

// Run executes job. Inputs are checked before any scanning starts so that a
// bad format or missing projection fails fast.
func (r *Runner) Run(ctx context.Context, job Job) (*Outcome, error) {
	cfg := job.Config
	if cfg == nil {
		cfg = config.DefaultRunConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if job.Input == "" || job.Ternary == "" || job.Higher == "" || job.Lower == "" {
		return nil, ErrMissingPath
	}

	outputs := job.rasterOutputs()
	written := append([]string{job.HeatmapPNG, job.LandformPNG, job.ChartHTML, job.CatalogPath}, outputs...)
	if err := security.ValidateOutputs(job.Input, written...); err != nil {
		return nil, err
	}
	format, err := raster.CheckFormats(job.Input, outputs...)
	if err != nil {
		return nil, err
	}
	if cfg.GetRequireProjection() && !r.fs.Exists(raster.ProjectionPath(job.Input)) {
		return nil, fmt.Errorf("%w: %s", raster.ErrNotProjected, raster.ProjectionPath(job.Input))
	}

	started := r.clock.Now()
	ds, err := raster.Load(r.fs, job.Input, raster.LoadOptions{
		NoData:       cfg.GetDefaultNoData(),
		TIFFCellSize: cfg.GetTIFFCellSize(),
		TIFFNoData:   cfg.GetTIFFNoData(),
	})
	if err != nil {
		return nil, err
	}
	g := ds.Grid
	monitoring.Logf("loaded %s: %s %dx%d, cell size %g, nodata %g",
		job.Input, format, g.Rows, g.Cols, g.CellSize, g.NoData)

	progress := monitoring.NewProgress("classify "+job.Input, cfg.GetProgressStepPercent())
	scanner := geomorphon.NewScanner(geomorphon.ScanOptions{
		Radius:   cfg.GetScanRadius(),
		Workers:  cfg.GetWorkers(),
		Progress: progress.Update,
	})
	res, err := scanner.Scan(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", job.Input, err)
	}

	bands := []geomorphon.Band{geomorphon.BandTernary, geomorphon.BandHigher, geomorphon.BandLower, geomorphon.BandLandform}
	for i, out := range outputs {
		if err := raster.Save(r.fs, out, ds.Header, res.Band(bands[i]), res.NoData); err != nil {
			return nil, err
		}
		monitoring.Debugf("wrote %s band to %s", bands[i], out)
	}

	if err := raster.CopyProjection(r.fs, job.Input, outputs, cfg.GetRequireProjection()); err != nil {
		return nil, err
	}

	summary := report.Summarize(res)
	monitoring.Logf("classified %d of %d cells into %d canonical codes",
		summary.Classified, summary.Cells, summary.DistinctCodes())

	if err := r.writeReports(job, res, summary); err != nil {
		return nil, err
	}

	out := &Outcome{
		Dataset:  ds,
		Result:   res,
		Summary:  summary,
		Duration: r.clock.Since(started),
	}

	if job.CatalogPath != "" {
		id, err := recordRun(ctx, job.CatalogPath, catalog.Run{
			StartedAt:  started,
			Duration:   out.Duration,
			Input:      job.Input,
			Format:     format.String(),
			Rows:       g.Rows,
			Cols:       g.Cols,
			CellSize:   g.CellSize,
			Radius:     scanner.Radius(g),
			Workers:    scanner.Workers(),
			Classified: summary.Classified,
			Version:    version.Version,
		}, summary.CodeCounts)
		if err != nil {
			return nil, err
		}
		out.RunID = id
		monitoring.Logf("catalogued run %s in %s", id, job.CatalogPath)
	}
	return out, nil
}

func (r *Runner) writeReports(job Job, res *geomorphon.Result, s report.Summary) error {
	title := job.Input
	if job.HeatmapPNG != "" {
		err := r.writeFile(job.HeatmapPNG, func(w io.Writer) error {
			return report.WriteHeatmapPNG(w, res, geomorphon.BandLandform, title)
		})
		if err != nil {
			return err
		}
	}
	if job.LandformPNG != "" {
		err := r.writeFile(job.LandformPNG, func(w io.Writer) error {
			return report.WriteLandformBarsPNG(w, s, title)
		})
		if err != nil {
			return err
		}
	}
	if job.ChartHTML != "" {
		err := r.writeFile(job.ChartHTML, func(w io.Writer) error {
			return report.WriteChartHTML(w, s, title, report.DefaultTopCodes)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) writeFile(path string, write func(io.Writer) error) error {
	f, err := r.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func recordRun(ctx context.Context, path string, run catalog.Run, counts map[int]int) (string, error) {
	c, err := catalog.Open(path)
	if err != nil {
		return "", fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer c.Close()
	return c.RecordRun(ctx, run, counts)
}
