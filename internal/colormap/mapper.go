package colormap

import (
	"fmt"
	"math"

	"github.com/Faultbox/cortexmorph/internal/fault"
)

// DefaultBackground is the neutral surface color used for vertices with no
// data and for runs with no data at all.
var DefaultBackground = [3]float64{0.75, 0.75, 0.75}

// Mapper maps per-vertex scalar data through a colormap into per-face-corner
// RGB. It performs a deterministic lookup and clamp, nothing more.
type Mapper struct {
	// Background is the color for NaN ("no data") vertices.
	Background [3]float64
}

// NewMapper returns a Mapper with the default background color.
func NewMapper() Mapper {
	return Mapper{Background: DefaultBackground}
}

// FaceColors maps data through cm with limits (lo, hi) and fans the
// per-vertex colors out to one RGB per face corner (3 per triangle), the
// layout the renderer consumes.
//
// A vertex value normalizes to index round((v-lo)/(hi-lo)*(C-1)), clamped
// to the table; lo == hi maps everything to row 0. NaN values take the
// background color. When the parcellation is uniform (one distinct label)
// and the data is entirely NaN, the whole surface short-circuits to the
// background, which is the "no data supplied" default path.
func (mp Mapper) FaceColors(data []float64, parcels []int, faces [][3]int, cm Map, lo, hi float64) ([][3]float64, error) {
	n := len(data)
	if len(parcels) != n {
		return nil, fmt.Errorf("%w: %d parcel labels for %d vertices", fault.ErrInvalidArgument, len(parcels), n)
	}
	if len(cm) == 0 {
		return nil, fmt.Errorf("%w: empty colormap", fault.ErrInvalidArgument)
	}
	for fi, f := range faces {
		for _, vi := range f {
			if vi < 0 || vi >= n {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", fault.ErrInvalidArgument, fi, vi, n)
			}
		}
	}

	out := make([][3]float64, 3*len(faces))
	if uniformParcels(parcels) && allNaN(data) {
		for i := range out {
			out[i] = mp.Background
		}
		return out, nil
	}

	vertex := make([][3]float64, n)
	for i, v := range data {
		if math.IsNaN(v) {
			vertex[i] = mp.Background
			continue
		}
		vertex[i] = cm[mp.index(v, lo, hi, len(cm))]
	}

	for fi, f := range faces {
		for c := 0; c < 3; c++ {
			out[3*fi+c] = vertex[f[c]]
		}
	}
	return out, nil
}

func (mp Mapper) index(v, lo, hi float64, c int) int {
	if hi == lo {
		return 0
	}
	idx := int(math.Round((v - lo) / (hi - lo) * float64(c-1)))
	if idx < 0 {
		return 0
	}
	if idx >= c {
		return c - 1
	}
	return idx
}

func uniformParcels(parcels []int) bool {
	for i := 1; i < len(parcels); i++ {
		if parcels[i] != parcels[0] {
			return false
		}
	}
	return true
}

func allNaN(data []float64) bool {
	for _, v := range data {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}
