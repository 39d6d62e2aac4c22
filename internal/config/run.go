package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the path to the canonical run defaults file.
const DefaultConfigPath = "config/geomorphons.defaults.json"

// Defaults used when a field is absent from the loaded file.
const (
	DefaultNoData          = -9999.0
	DefaultTIFFNoData      = -32767.0
	DefaultTIFFCellSize    = 1.0
	DefaultProgressPercent = 10
)

// RunConfig holds the tunable parameters of a classification run. Fields are
// pointers so a partial file leaves the rest at their defaults; use the Get*
// methods to read effective values.
type RunConfig struct {
	// Scanner
	Workers    *int `json:"workers,omitempty" yaml:"workers,omitempty"`
	ScanRadius *int `json:"scan_radius,omitempty" yaml:"scan_radius,omitempty"` // 0 = max(rows, cols)

	// Raster adapters
	DefaultNoData *float64 `json:"default_nodata,omitempty" yaml:"default_nodata,omitempty"` // ASCII grids without nodata_value
	TIFFCellSize  *float64 `json:"tiff_cell_size,omitempty" yaml:"tiff_cell_size,omitempty"`
	TIFFNoData    *float64 `json:"tiff_nodata,omitempty" yaml:"tiff_nodata,omitempty"`

	// Sidecars
	RequireProjection *bool `json:"require_projection,omitempty" yaml:"require_projection,omitempty"`

	// Logging
	ProgressStepPercent *int `json:"progress_step_percent,omitempty" yaml:"progress_step_percent,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyRunConfig returns a RunConfig with every field unset.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// DefaultRunConfig returns a RunConfig with every field set to its default.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Workers:             ptrInt(0),
		ScanRadius:          ptrInt(0),
		DefaultNoData:       ptrFloat64(DefaultNoData),
		TIFFCellSize:        ptrFloat64(DefaultTIFFCellSize),
		TIFFNoData:          ptrFloat64(DefaultTIFFNoData),
		RequireProjection:   ptrBool(false),
		ProgressStepPercent: ptrInt(DefaultProgressPercent),
	}
}

// LoadRunConfig loads a RunConfig from a .json, .yaml or .yml file of at
// most 1 MB and validates it. Unknown keys are rejected.
func LoadRunConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ParseRunConfig(data, ext)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ParseRunConfig decodes data as JSON or YAML depending on ext. An empty
// document yields an empty config.
func ParseRunConfig(data []byte, ext string) (*RunConfig, error) {
	cfg := EmptyRunConfig()
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root. Panics if the file
// cannot be loaded; intended for tests.
func MustLoadDefaultConfig() *RunConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadRunConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configured values are usable.
func (c *RunConfig) Validate() error {
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.ScanRadius != nil && *c.ScanRadius < 0 {
		return fmt.Errorf("scan_radius must be non-negative, got %d", *c.ScanRadius)
	}
	if c.TIFFCellSize != nil && !(*c.TIFFCellSize > 0) {
		return fmt.Errorf("tiff_cell_size must be positive, got %f", *c.TIFFCellSize)
	}
	if c.ProgressStepPercent != nil {
		if *c.ProgressStepPercent < 0 || *c.ProgressStepPercent > 100 {
			return fmt.Errorf("progress_step_percent must be between 0 and 100, got %d", *c.ProgressStepPercent)
		}
	}
	return nil
}

// Merge copies every field set in o over c.
func (c *RunConfig) Merge(o *RunConfig) {
	if o == nil {
		return
	}
	if o.Workers != nil {
		c.Workers = o.Workers
	}
	if o.ScanRadius != nil {
		c.ScanRadius = o.ScanRadius
	}
	if o.DefaultNoData != nil {
		c.DefaultNoData = o.DefaultNoData
	}
	if o.TIFFCellSize != nil {
		c.TIFFCellSize = o.TIFFCellSize
	}
	if o.TIFFNoData != nil {
		c.TIFFNoData = o.TIFFNoData
	}
	if o.RequireProjection != nil {
		c.RequireProjection = o.RequireProjection
	}
	if o.ProgressStepPercent != nil {
		c.ProgressStepPercent = o.ProgressStepPercent
	}
}

// GetWorkers returns the worker count; 0 means one per CPU.
func (c *RunConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

// GetScanRadius returns the scan radius; 0 means max(rows, cols).
func (c *RunConfig) GetScanRadius() int {
	if c.ScanRadius == nil {
		return 0
	}
	return *c.ScanRadius
}

// GetDefaultNoData returns the no-data value for ASCII grids that omit one.
func (c *RunConfig) GetDefaultNoData() float64 {
	if c.DefaultNoData == nil {
		return DefaultNoData
	}
	return *c.DefaultNoData
}

// GetTIFFCellSize returns the ground size of a TIFF pixel.
func (c *RunConfig) GetTIFFCellSize() float64 {
	if c.TIFFCellSize == nil {
		return DefaultTIFFCellSize
	}
	return *c.TIFFCellSize
}

// GetTIFFNoData returns the no-data value assumed for TIFF input.
func (c *RunConfig) GetTIFFNoData() float64 {
	if c.TIFFNoData == nil {
		return DefaultTIFFNoData
	}
	return *c.TIFFNoData
}

// GetRequireProjection reports whether a missing .prj sidecar is an error.
func (c *RunConfig) GetRequireProjection() bool {
	if c.RequireProjection == nil {
		return false
	}
	return *c.RequireProjection
}

// GetProgressStepPercent returns the progress logging step.
func (c *RunConfig) GetProgressStepPercent() int {
	if c.ProgressStepPercent == nil {
		return DefaultProgressPercent
	}
	return *c.ProgressStepPercent
}
