package raster

import (
	"fmt"

	"github.com/banshee-data/geomorphons/internal/fsutil"
	"github.com/banshee-data/geomorphons/internal/monitoring"
)

// ProjectionPath returns the .prj sidecar path for a raster path.
func ProjectionPath(path string) string {
	return fsutil.ReplaceExt(path, ".prj")
}

// CopyProjection copies the input's .prj sidecar next to each output. A
// missing sidecar is an error when required, otherwise a warning.
func CopyProjection(fsys fsutil.FileSystem, input string, outputs []string, required bool) error {
	src := ProjectionPath(input)
	if !fsys.Exists(src) {
		if required {
			return fmt.Errorf("%w: %s", ErrNotProjected, src)
		}
		monitoring.Warnf("%s has no projection file; outputs will be unprojected", input)
		return nil
	}
	for _, out := range outputs {
		if err := fsutil.CopyFile(fsys, src, ProjectionPath(out)); err != nil {
			return fmt.Errorf("copy projection: %w", err)
		}
	}
	return nil
}
