// Package security guards input data against being clobbered by a run's
// outputs.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrOverwritesInput is returned when an output path resolves to the
	// input raster or its projection sidecar.
	ErrOverwritesInput = errors.New("output would overwrite the input")

	// ErrDuplicateOutput is returned when two outputs resolve to the same file.
	ErrDuplicateOutput = errors.New("output path used more than once")
)

// canonicalPath resolves filePath to an absolute, cleaned path. Symlinks
// are resolved when the path, or failing that its nearest existing parent,
// exists.
func canonicalPath(filePath string) (string, error) {
	absPath, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		return resolved, nil
	}

	// Path doesn't exist yet. Resolve the deepest existing parent so that
	// /tmp/link/out.asc and /real/out.asc compare equal.
	checkPath := absPath
	for {
		parentDir := filepath.Dir(checkPath)
		if parentDir == checkPath {
			return absPath, nil
		}
		if resolved, err := filepath.EvalSymlinks(parentDir); err == nil {
			relToParent, _ := filepath.Rel(parentDir, absPath)
			return filepath.Join(resolved, relToParent), nil
		}
		checkPath = parentDir
	}
}

func sidecar(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".prj"
}

// ValidateOutputs rejects output paths that resolve to the input, the
// input's .prj sidecar, or each other. Empty outputs are skipped.
func ValidateOutputs(input string, outputs ...string) error {
	in, err := canonicalPath(input)
	if err != nil {
		return err
	}
	protected := map[string]bool{in: true, sidecar(in): true}

	seen := make(map[string]string, len(outputs))
	for _, out := range outputs {
		if out == "" {
			continue
		}
		p, err := canonicalPath(out)
		if err != nil {
			return err
		}
		if protected[p] {
			return fmt.Errorf("%w: %s", ErrOverwritesInput, out)
		}
		if prev, ok := seen[p]; ok {
			return fmt.Errorf("%w: %s and %s", ErrDuplicateOutput, prev, out)
		}
		seen[p] = out
	}
	return nil
}
