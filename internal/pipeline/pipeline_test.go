package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/banshee-data/geomorphons/internal/catalog"
	"github.com/banshee-data/geomorphons/internal/config"
	"github.com/banshee-data/geomorphons/internal/fsutil"
	"github.com/banshee-data/geomorphons/internal/geomorphon"
	"github.com/banshee-data/geomorphons/internal/monitoring"
	"github.com/banshee-data/geomorphons/internal/raster"
	"github.com/banshee-data/geomorphons/internal/security"
	"github.com/banshee-data/geomorphons/internal/timeutil"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	goleak.VerifyTestMain(m)
}

// asciiDEM renders a rows x cols grid with cell size 10 and nodata -9999.
func asciiDEM(rows, cols int, z func(r, c int) float64) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "ncols %d\nnrows %d\nxllcorner 0\nyllcorner 0\ncellsize 10\nnodata_value -9999\n", cols, rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fmt.Fprintf(&b, "%g ", z(r, c))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func peakDEM(r, c int) float64 {
	if r == 2 && c == 2 {
		return 150
	}
	return 100
}

func basicJob() Job {
	return Job{
		Input:   "/in/dem.asc",
		Ternary: "/out/ternary.asc",
		Higher:  "/out/higher.asc",
		Lower:   "/out/lower.asc",
	}
}

func readBand(t *testing.T, fsys fsutil.FileSystem, path string) []float32 {
	t.Helper()
	ds, err := raster.Load(fsys, path, raster.LoadOptions{NoData: -1})
	require.NoError(t, err)
	return ds.Grid.Elevation
}

func TestRun_PeakASCII(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	mfs.WriteFile("/in/dem.asc", asciiDEM(5, 5, peakDEM))
	mfs.WriteFile("/in/dem.prj", []byte("PROJCS[]"))

	job := basicJob()
	job.Landforms = "/out/landforms.asc"
	out, err := NewRunner(mfs).Run(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, 9, out.Summary.Classified)
	assert.Equal(t, 25, out.Summary.Cells)
	assert.Empty(t, out.RunID)

	ternary := readBand(t, mfs, job.Ternary)
	higher := readBand(t, mfs, job.Higher)
	lower := readBand(t, mfs, job.Lower)
	landforms := readBand(t, mfs, job.Landforms)

	assert.Equal(t, float32(-9999), ternary[0], "border is nodata")
	assert.Equal(t, float32(0), ternary[12], "peak centre sees every ray lower")
	assert.Equal(t, float32(8), lower[12])
	assert.Equal(t, float32(0), higher[12])
	assert.Equal(t, float32(geomorphon.Peak), landforms[12])

	for _, p := range job.rasterOutputs() {
		prj, ok := mfs.Bytes(raster.ProjectionPath(p))
		require.True(t, ok, p)
		assert.Equal(t, "PROJCS[]", string(prj))
	}
}

func TestRun_TIFF(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	flat := make([]int, 25)
	for i := range flat {
		flat[i] = 500
	}
	require.NoError(t, raster.Save(mfs, "/in/dem.tif", raster.Header{Rows: 5, Cols: 5, CellSize: 1}, flat, -1))

	cfg := config.DefaultRunConfig()
	job := Job{
		Input:   "/in/dem.tif",
		Ternary: "/out/t.tif",
		Higher:  "/out/h.tif",
		Lower:   "/out/l.tif",
		Config:  cfg,
	}
	out, err := NewRunner(mfs).Run(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3280: 9}, out.Summary.CodeCounts)

	ds, err := raster.Load(mfs, "/out/t.tif", raster.LoadOptions{TIFFCellSize: 1, TIFFNoData: raster.TIFFNoData})
	require.NoError(t, err)
	assert.Equal(t, float32(raster.TIFFNoData), ds.Grid.At(0, 0))
	assert.Equal(t, float32(3280), ds.Grid.At(2, 2))
}

func TestRun_Reports(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	mfs.WriteFile("/in/dem.asc", asciiDEM(6, 7, func(r, c int) float64 { return float64(r*r + c) }))

	job := basicJob()
	job.HeatmapPNG = "/out/landforms.png"
	job.LandformPNG = "/out/histogram.png"
	job.ChartHTML = "/out/codes.html"
	_, err := NewRunner(mfs).Run(context.Background(), job)
	require.NoError(t, err)

	for _, p := range []string{job.HeatmapPNG, job.LandformPNG} {
		data, ok := mfs.Bytes(p)
		require.True(t, ok, p)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), p)
	}
	html, ok := mfs.Bytes(job.ChartHTML)
	require.True(t, ok)
	assert.Contains(t, string(html), "Landforms")
}

func TestRun_Catalog(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	mfs.WriteFile("/in/dem.asc", asciiDEM(5, 5, peakDEM))

	dbPath := filepath.Join(t.TempDir(), "runs.db")
	job := basicJob()
	job.CatalogPath = dbPath
	out, err := NewRunner(mfs).Run(context.Background(), job)
	require.NoError(t, err)
	require.NotEmpty(t, out.RunID)

	c, err := catalog.Open(dbPath)
	require.NoError(t, err)
	defer c.Close()

	run, err := c.GetRun(context.Background(), out.RunID)
	require.NoError(t, err)
	assert.Equal(t, "/in/dem.asc", run.Input)
	assert.Equal(t, "ascii-grid", run.Format)
	assert.Equal(t, 5, run.Radius)
	assert.Equal(t, runtime.GOMAXPROCS(0), run.Workers, "effective worker count, not the unset config value")
	assert.Equal(t, 9, run.Classified)

	counts, err := c.CodeCounts(context.Background(), out.RunID)
	require.NoError(t, err)
	assert.Equal(t, out.Summary.CodeCounts, counts)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	requirePrj := config.DefaultRunConfig()
	yes := true
	requirePrj.RequireProjection = &yes

	badWorkers := config.DefaultRunConfig()
	neg := -1
	badWorkers.Workers = &neg

	tests := []struct {
		name string
		job  func(Job) Job
		want error
	}{
		{
			name: "missing output",
			job:  func(j Job) Job { j.Lower = ""; return j },
			want: ErrMissingPath,
		},
		{
			name: "format mismatch",
			job:  func(j Job) Job { j.Higher = "/out/higher.tif"; return j },
			want: raster.ErrFormatMismatch,
		},
		{
			name: "landform format mismatch",
			job:  func(j Job) Job { j.Landforms = "/out/landforms.tif"; return j },
			want: raster.ErrFormatMismatch,
		},
		{
			name: "unsupported input",
			job:  func(j Job) Job { j.Input = "/in/dem.png"; return j },
			want: raster.ErrUnsupportedFormat,
		},
		{
			name: "output overwrites input",
			job:  func(j Job) Job { j.Higher = j.Input; return j },
			want: security.ErrOverwritesInput,
		},
		{
			name: "duplicate outputs",
			job:  func(j Job) Job { j.Lower = j.Ternary; return j },
			want: security.ErrDuplicateOutput,
		},
		{
			name: "projection required",
			job:  func(j Job) Job { j.Config = requirePrj; return j },
			want: raster.ErrNotProjected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mfs := fsutil.NewMemoryFileSystem()
			mfs.WriteFile("/in/dem.asc", asciiDEM(5, 5, peakDEM))

			_, err := NewRunner(mfs).Run(context.Background(), tt.job(basicJob()))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.False(t, mfs.Exists("/out/ternary.asc"), "nothing is written on early failure")
		})
	}

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		job := basicJob()
		job.Config = badWorkers
		_, err := NewRunner(fsutil.NewMemoryFileSystem()).Run(context.Background(), job)
		assert.Error(t, err)
	})
}

// steppingClock advances by step on every reading.
type steppingClock struct {
	*timeutil.MockClock
	step time.Duration
}

func (c steppingClock) Now() time.Time {
	now := c.MockClock.Now()
	c.Advance(c.step)
	return now
}

func TestRun_Duration(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	mfs.WriteFile("/in/dem.asc", asciiDEM(5, 5, peakDEM))

	start := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	clock := steppingClock{MockClock: timeutil.NewMockClock(start), step: 2 * time.Second}

	dbPath := filepath.Join(t.TempDir(), "runs.db")
	job := basicJob()
	job.CatalogPath = dbPath
	cfg := config.DefaultRunConfig()
	workers := 3
	cfg.Workers = &workers
	job.Config = cfg
	out, err := NewRunner(mfs).WithClock(clock).Run(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, out.Duration)

	c, err := catalog.Open(dbPath)
	require.NoError(t, err)
	defer c.Close()
	run, err := c.GetRun(context.Background(), out.RunID)
	require.NoError(t, err)
	assert.Equal(t, start, run.StartedAt)
	assert.Equal(t, 2*time.Second, run.Duration)
	assert.Equal(t, 3, run.Workers)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	mfs.WriteFile("/in/dem.asc", asciiDEM(20, 20, func(r, c int) float64 { return float64(r + c) }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(mfs).Run(ctx, basicJob())
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, mfs.Exists("/out/ternary.asc"))
}

func TestRun_OSFileSystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "dem.asc")
	require.NoError(t, os.WriteFile(in, asciiDEM(5, 5, peakDEM), 0644))

	job := Job{
		Input:   in,
		Ternary: filepath.Join(dir, "ternary.asc"),
		Higher:  filepath.Join(dir, "higher.asc"),
		Lower:   filepath.Join(dir, "lower.asc"),
	}
	_, err := NewRunner(fsutil.OSFileSystem{}).Run(context.Background(), job)
	require.NoError(t, err)

	data, err := os.ReadFile(job.Ternary)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ncols              5\n"))
}
