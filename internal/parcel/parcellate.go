// Package parcel assigns vertices to labeled regions and extracts the
// boundary curves between differently-labeled regions.
package parcel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/Faultbox/cortexmorph/internal/fault"
)

const (
	// Unassigned is the sentinel label for vertices excluded from
	// clustering.
	Unassigned = 0

	// restarts is the number of independent k-means runs; the partition
	// with the lowest within-cluster sum of squares wins. Label identity
	// is still arbitrary per run, k-means has no canonical label order.
	restarts = 5

	// deltaThreshold stops a run once fewer than this fraction of points
	// changed cluster in an iteration. It is the only convergence knob the
	// kmeans library exposes; the iteration cap is internal to the library.
	deltaThreshold = 0.005
)

// point is a clustering observation that remembers which vertex it came
// from, so labels can be reinserted after ignored vertices were removed.
// The coordinates live in a named field: embedding clusters.Coordinates
// would shadow the promoted Coordinates method with the field of the same
// name, and point would no longer satisfy clusters.Observation.
type point struct {
	index  int
	coords clusters.Coordinates
}

func (p point) Coordinates() clusters.Coordinates {
	return p.coords
}

func (p point) Distance(c clusters.Coordinates) float64 {
	return p.coords.Distance(c)
}

// Cluster partitions a vertex point cloud into k labeled groups by
// delegating to the k-means library. Vertices listed in ignore are removed
// before clustering and reinserted with the Unassigned label; all other
// vertices receive labels in [1, k].
func Cluster(points []mgl64.Vec3, k int, ignore map[int]bool) ([]int, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", fault.ErrInvalidArgument, k)
	}

	obs := make(clusters.Observations, 0, len(points))
	for i, p := range points {
		if ignore[i] {
			continue
		}
		obs = append(obs, point{index: i, coords: clusters.Coordinates{p.X(), p.Y(), p.Z()}})
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: no points left to cluster", fault.ErrInvalidArgument)
	}
	if k > len(obs) {
		return nil, fmt.Errorf("%w: k=%d exceeds %d retained points", fault.ErrInvalidArgument, k, len(obs))
	}

	km, err := kmeans.NewWithOptions(deltaThreshold, nil)
	if err != nil {
		return nil, err
	}

	var best clusters.Clusters
	bestScore := 0.0
	for run := 0; run < restarts; run++ {
		cc, err := km.Partition(obs, k)
		if err != nil {
			return nil, err
		}
		score := withinSS(cc)
		if best == nil || score < bestScore {
			best, bestScore = cc, score
		}
	}

	labels := make([]int, len(points))
	for ci, c := range best {
		for _, o := range c.Observations {
			labels[o.(point).index] = ci + 1
		}
	}
	return labels, nil
}

// withinSS is the within-cluster sum of squares of a partition. The
// library's Distance is already squared euclidean.
func withinSS(cc clusters.Clusters) float64 {
	var total float64
	for _, c := range cc {
		for _, o := range c.Observations {
			total += o.Distance(c.Center)
		}
	}
	return total
}

// Distinct returns the number of distinct labels in an assignment. A
// parcellation with exactly one distinct label counts as "no parcellation"
// and suppresses boundary drawing.
func Distinct(labels []int) int {
	seen := make(map[int]bool, 8)
	for _, l := range labels {
		seen[l] = true
	}
	return len(seen)
}
