package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/cortexmorph/internal/fault"
)

// Mode selects how the interpolation parameter is interpreted.
type Mode int

const (
	// Ratio parametrizes each row by fraction of the segment. Values
	// outside [0,1] extrapolate and are not an error.
	Ratio Mode = iota
	// Distance parametrizes each row by absolute euclidean distance from
	// the first endpoint along the segment.
	Distance
)

// Lerp interpolates row-wise between a and b, which must have identical
// shape. t holds either a single parameter applied to every row, or one
// parameter per row. The same routine serves vertex positions (rows of
// width 3), scalar vertex data (width 1) and colormap tables (width 3).
//
// In Distance mode a zero-length row segment has no distance
// parametrization and fails with fault.ErrDegenerateSegment; we chose the
// hard error over quietly producing NaN.
func Lerp(a, b [][]float64, t []float64, mode Mode) ([][]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: row count mismatch %d vs %d", fault.ErrInvalidArgument, len(a), len(b))
	}
	if len(t) != 1 && len(t) != len(a) {
		return nil, fmt.Errorf("%w: got %d parameters for %d rows", fault.ErrInvalidArgument, len(t), len(a))
	}

	out := make([][]float64, len(a))
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return nil, fmt.Errorf("%w: row %d width mismatch %d vs %d", fault.ErrInvalidArgument, i, len(a[i]), len(b[i]))
		}

		ti := t[0]
		if len(t) > 1 {
			ti = t[i]
		}
		if mode == Distance {
			var d2 float64
			for j := range a[i] {
				diff := b[i][j] - a[i][j]
				d2 += diff * diff
			}
			d := math.Sqrt(d2)
			if d == 0 {
				return nil, fmt.Errorf("%w: row %d has identical endpoints", fault.ErrDegenerateSegment, i)
			}
			ti /= d
		}

		row := make([]float64, len(a[i]))
		for j := range a[i] {
			row[j] = (1-ti)*a[i][j] + ti*b[i][j]
		}
		out[i] = row
	}
	return out, nil
}

// LerpVec3 interpolates two corresponding vertex sets at ratio t.
func LerpVec3(a, b []mgl64.Vec3, t float64) ([]mgl64.Vec3, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: vertex count mismatch %d vs %d", fault.ErrInvalidArgument, len(a), len(b))
	}
	out := make([]mgl64.Vec3, len(a))
	for i := range a {
		out[i] = a[i].Mul(1 - t).Add(b[i].Mul(t))
	}
	return out, nil
}

// LerpScalars interpolates two corresponding scalar fields at ratio t.
// NaN propagates: a vertex with no data in either keyframe has no data in
// any intermediate frame.
func LerpScalars(a, b []float64, t float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: length mismatch %d vs %d", fault.ErrInvalidArgument, len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = (1-t)*a[i] + t*b[i]
	}
	return out, nil
}
