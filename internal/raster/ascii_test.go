package raster

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/geomorphons/internal/geomorphon"
)

const sampleASCII = `NCOLS 4
nrows 3
XLLCENTER 500000.5
yllcenter 4100000.5
CellSize 2.5
NODATA_value -9999
1 2 3 4
5 -9999 7 8
9 10 11 12.5
`

func TestReadASCII(t *testing.T) {
	t.Parallel()

	ds, err := ReadASCII(strings.NewReader(sampleASCII), -1)
	require.NoError(t, err)

	assert.Equal(t, FormatASCII, ds.Format)
	assert.Equal(t, Header{
		Cols:     4,
		Rows:     3,
		XLL:      500000.5,
		YLL:      4100000.5,
		Center:   true,
		CellSize: 2.5,
		NoData:   -9999,
	}, ds.Header)

	g := ds.Grid
	assert.Equal(t, 3, g.Rows)
	assert.Equal(t, 4, g.Cols)
	assert.Equal(t, 2.5, g.CellSize)
	assert.Equal(t, float32(12.5), g.At(2, 3))
	assert.True(t, g.IsNoData(g.At(1, 1)))
}

func TestReadASCII_DefaultNoData(t *testing.T) {
	t.Parallel()

	in := "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n-5 3\n"
	ds, err := ReadASCII(strings.NewReader(in), -5)
	require.NoError(t, err)

	assert.Equal(t, -5.0, ds.Header.NoData)
	assert.False(t, ds.Header.Center)
	assert.True(t, ds.Grid.IsNoData(ds.Grid.At(0, 0)))
	assert.False(t, ds.Grid.IsNoData(ds.Grid.At(0, 1)))
}

func TestReadASCII_DxDy(t *testing.T) {
	t.Parallel()

	in := "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ndx 3\ndy 3\n7\n"
	ds, err := ReadASCII(strings.NewReader(in), -9999)
	require.NoError(t, err)
	assert.Equal(t, 3.0, ds.Grid.CellSize)
}

func TestReadASCII_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{
			name:  "truncated",
			input: "ncols 2\nnrows 2\ncellsize 1\n1 2 3\n",
			want:  ErrTruncated,
		},
		{
			name:  "unequal resolution",
			input: "ncols 1\nnrows 1\ndx 1\ndy 2\n1\n",
			want:  ErrUnequalResolution,
		},
		{
			name:  "missing ncols",
			input: "nrows 1\ncellsize 1\n1\n",
			want:  ErrHeader,
		},
		{
			name:  "missing cellsize",
			input: "ncols 1\nnrows 1\n1\n",
			want:  ErrHeader,
		},
		{
			name:  "fractional nrows",
			input: "ncols 1\nnrows 1.5\ncellsize 1\n1\n",
			want:  ErrHeader,
		},
		{
			name:  "key without value",
			input: "ncols",
			want:  ErrHeader,
		},
		{
			name:  "huge header without data",
			input: "ncols 4294967296\nnrows 4294967296\ncellsize 1\n",
			want:  ErrHeader,
		},
		{
			name:  "exponent dimension",
			input: "ncols 1e30\nnrows 2\ncellsize 1\n1 2\n",
			want:  ErrHeader,
		},
		{
			name:  "large header on truncated data",
			input: "ncols 100000\nnrows 100000\ncellsize 1\n1 2 3\n",
			want:  ErrTruncated,
		},
		{
			name:  "zero cell size",
			input: "ncols 1\nnrows 1\ncellsize 0\n1\n",
			want:  geomorphon.ErrCellSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadASCII(strings.NewReader(tt.input), -9999)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestReadASCII_BadValue(t *testing.T) {
	t.Parallel()

	_, err := ReadASCII(strings.NewReader("ncols 2\nnrows 1\ncellsize 1\n1 x\n"), -9999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"x"`)
}

func TestWriteASCII(t *testing.T) {
	t.Parallel()

	h := Header{Cols: 2, Rows: 2, CellSize: 10}
	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, h, []int{1, 2, 3, -9999}, -9999))

	want := "ncols              2\n" +
		"nrows              2\n" +
		"xllcorner          0.000000\n" +
		"yllcorner          0.000000\n" +
		"cellsize           10.000000\n" +
		"nodata_value       -9999.000000\n" +
		"1 2 \n" +
		"3 -9999 \n"
	assert.Equal(t, want, buf.String())
}

func TestWriteASCII_CenterKeys(t *testing.T) {
	t.Parallel()

	h := Header{Cols: 1, Rows: 1, XLL: 1.5, YLL: 2.5, Center: true, CellSize: 1}
	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, h, []int{3280}, -1))

	assert.Contains(t, buf.String(), "xllcenter          1.500000\n")
	assert.Contains(t, buf.String(), "yllcenter          2.500000\n")
}

func TestWriteASCII_ShapeMismatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteASCII(&buf, Header{Cols: 2, Rows: 2, CellSize: 1}, []int{1}, 0)
	assert.Error(t, err)
}

func TestASCIIRoundTrip(t *testing.T) {
	t.Parallel()

	h := Header{Cols: 3, Rows: 2, XLL: 10, YLL: 20, CellSize: 5, NoData: -9999}
	band := []int{0, 3280, 6560, -9999, 160, 1}

	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, h, band, -9999))

	ds, err := ReadASCII(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, h, ds.Header)
	for i, v := range band {
		assert.Equal(t, float32(v), ds.Grid.Elevation[i])
	}
}
