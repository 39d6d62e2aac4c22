// Package geomorphon classifies the interior cells of a digital elevation
// grid into terrain patterns (geomorphons).
//
// Responsibilities: line-of-sight profiling along eight compass rays,
// three-way classification of each ray, ternary pattern assembly, and
// reduction of the pattern to its canonical form under rotation and mirror
// symmetry.
// Key types: Grid, Direction, Profile, Pattern, PixelResult, Result, Scanner.
//
// Rays are not limited to a fixed search radius. Each ray walks to the edge
// of the grid and only points of strictly increasing absolute relief update
// its zenith and nadir angles.
//
// Dependency rule: no file or database I/O is allowed in this package.
// Raster formats live in internal/raster.
package geomorphon
