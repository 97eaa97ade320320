// Package colormap provides the color tables and the per-vertex color
// mapping used to paint scalar data onto a surface.
package colormap

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/cortexmorph/internal/fault"
	"github.com/Faultbox/cortexmorph/internal/geom"
)

// Map is an ordered colormap table: C rows of RGB, channels in [0,1].
type Map [][3]float64

// Space selects the color space used when interpolating between two
// colormap tables.
type Space int

const (
	// SpaceHSV interpolates through HSV and converts back to RGB. This is
	// the default: it produces visually smoother transitions between maps
	// than raw RGB interpolation.
	SpaceHSV Space = iota
	// SpaceRGB interpolates the RGB channels directly.
	SpaceRGB
)

// ParseSpace parses a color-space name from configuration.
func ParseSpace(name string) (Space, error) {
	switch name {
	case "", "hsv":
		return SpaceHSV, nil
	case "rgb":
		return SpaceRGB, nil
	}
	return 0, fmt.Errorf("%w: unknown color space %q", fault.ErrInvalidArgument, name)
}

// tableSize is the resolution of the built-in maps.
const tableSize = 256

// Anchor tables for the built-in maps, resampled to tableSize entries.
// Viridis/plasma anchors follow the matplotlib references.
var builtins = map[string][][3]float64{
	"viridis": {
		{0.267, 0.005, 0.329}, {0.283, 0.141, 0.458}, {0.254, 0.265, 0.530},
		{0.207, 0.372, 0.553}, {0.164, 0.471, 0.558}, {0.128, 0.567, 0.551},
		{0.135, 0.659, 0.518}, {0.267, 0.749, 0.441}, {0.478, 0.821, 0.318},
		{0.741, 0.873, 0.150}, {0.993, 0.906, 0.144},
	},
	"plasma": {
		{0.050, 0.030, 0.528}, {0.294, 0.012, 0.631}, {0.490, 0.012, 0.658},
		{0.658, 0.134, 0.588}, {0.798, 0.275, 0.473}, {0.898, 0.420, 0.365},
		{0.973, 0.580, 0.254}, {0.993, 0.766, 0.157}, {0.940, 0.975, 0.131},
	},
	"gray": {
		{0, 0, 0}, {1, 1, 1},
	},
	"jet": {
		{0, 0, 0.5}, {0, 0, 1}, {0, 0.5, 1}, {0, 1, 1}, {0.5, 1, 0.5},
		{1, 1, 0}, {1, 0.5, 0}, {1, 0, 0}, {0.5, 0, 0},
	},
}

// DefaultName is the colormap used when a run does not name one.
const DefaultName = "viridis"

// ByName returns a built-in colormap resampled to 256 entries.
func ByName(name string) (Map, error) {
	if name == "" {
		name = DefaultName
	}
	anchors, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown colormap %q", fault.ErrInvalidArgument, name)
	}
	return resample(anchors, tableSize), nil
}

// resample expands an anchor table to n rows by piecewise-linear
// interpolation along the table.
func resample(anchors [][3]float64, n int) Map {
	out := make(Map, n)
	for i := 0; i < n; i++ {
		pos := float64(i) / float64(n-1) * float64(len(anchors)-1)
		lo := int(pos)
		hi := lo + 1
		if hi >= len(anchors) {
			hi = len(anchors) - 1
		}
		frac := pos - float64(lo)
		for c := 0; c < 3; c++ {
			out[i][c] = (1-frac)*anchors[lo][c] + frac*anchors[hi][c]
		}
	}
	return out
}

// Interp interpolates between two colormap tables of equal length at ratio
// t, in the requested color space. HSV interpolation is componentwise on
// (h, s, v), matching the behavior of interpolating the converted tables.
func Interp(a, b Map, t float64, space Space) (Map, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: colormap length mismatch %d vs %d", fault.ErrInvalidArgument, len(a), len(b))
	}
	ra, rb := a.rows(), b.rows()
	if space == SpaceHSV {
		ra, rb = toHSVRows(ra), toHSVRows(rb)
	}
	rows, err := geom.Lerp(ra, rb, []float64{t}, geom.Ratio)
	if err != nil {
		return nil, err
	}
	out := make(Map, len(rows))
	for i, r := range rows {
		if space == SpaceHSV {
			c := colorful.Hsv(r[0], r[1], r[2])
			out[i] = [3]float64{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
		} else {
			out[i] = [3]float64{clamp01(r[0]), clamp01(r[1]), clamp01(r[2])}
		}
	}
	return out, nil
}

func (m Map) rows() [][]float64 {
	rows := make([][]float64, len(m))
	for i, c := range m {
		rows[i] = []float64{c[0], c[1], c[2]}
	}
	return rows
}

func toHSVRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		h, s, v := colorful.Color{R: r[0], G: r[1], B: r[2]}.Hsv()
		out[i] = []float64{h, s, v}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// DataLimits returns the (min, max) of a scalar field, ignoring NaN
// sentinels. A field with no finite values yields (0, 0).
func DataLimits(data []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}
