package geomorphon

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ClassifyCell computes the PixelResult of a single cell. noData is the
// integer sentinel written for a cell without a valid elevation, in which
// case no ray is scanned. The cell is assumed to be in bounds.
func ClassifyCell(g *Grid, r, c, radius, noData int) PixelResult {
	if g.IsNoData(g.At(r, c)) {
		return PixelResult{Code: noData, Raw: noData, Higher: noData, Lower: noData}
	}
	p := CellPattern(g, r, c, radius)
	raw := p.Ternary()
	higher, lower := p.Counts()
	return PixelResult{
		Code:   lookupCanonical(raw),
		Raw:    raw,
		Higher: higher,
		Lower:  lower,
	}
}

// ScanOptions configures a Scanner.
type ScanOptions struct {
	// Radius bounds the number of steps along each ray. Zero or negative
	// means max(rows, cols), which lets every ray reach the grid edge.
	Radius int

	// Workers is the number of rows classified concurrently. Zero or
	// negative means GOMAXPROCS.
	Workers int

	// Progress, when set, is called after each interior row completes with
	// the number of rows done and the total. It may be called concurrently.
	Progress func(done, total int)
}

// Scanner drives cell classification across a whole grid.
type Scanner struct {
	opts ScanOptions
}

// NewScanner returns a Scanner using opts.
func NewScanner(opts ScanOptions) *Scanner {
	return &Scanner{opts: opts}
}

// Options returns the options the scanner was built with.
func (s *Scanner) Options() ScanOptions {
	return s.opts
}

// Workers returns the number of rows classified concurrently, resolving
// zero to GOMAXPROCS.
func (s *Scanner) Workers() int {
	if s.opts.Workers > 0 {
		return s.opts.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Radius returns the ray length used for g, resolving zero to
// g.DefaultRadius().
func (s *Scanner) Radius(g *Grid) int {
	if s.opts.Radius > 0 {
		return s.opts.Radius
	}
	return g.DefaultRadius()
}

// Scan classifies every interior cell of g. Rows are processed in parallel;
// each row is owned by exactly one goroutine, so the output does not depend
// on the worker count. The only error returned is ctx.Err() when the
// context is cancelled before all rows complete.
func (s *Scanner) Scan(ctx context.Context, g *Grid) (*Result, error) {
	noData := int(g.NoData)
	res := NewResult(g.Rows, g.Cols, noData)

	radius := s.Radius(g)

	total := g.Rows - 2
	if total <= 0 || g.Cols < 3 {
		return res, nil
	}

	var done atomic.Int64
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.Workers())

	for r := 1; r <= g.Rows-2; r++ {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for c := 1; c <= g.Cols-2; c++ {
				if g.IsNoData(g.At(r, c)) {
					continue
				}
				res.Set(r, c, ClassifyCell(g, r, c, radius, noData))
			}
			n := done.Add(1)
			if s.opts.Progress != nil {
				s.opts.Progress(int(n), total)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// gctx is always done after Wait; only the caller's context matters here.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
