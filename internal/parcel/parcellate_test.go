package parcel

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/muesli/clusters"

	"github.com/Faultbox/cortexmorph/internal/fault"
)

// The observation wrapper must satisfy the clustering library's interface.
var _ clusters.Observation = point{}

func TestPointObservation(t *testing.T) {
	p := point{index: 3, coords: clusters.Coordinates{1, 2, 2}}

	got := p.Coordinates()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 2 {
		t.Errorf("Coordinates() = %v", got)
	}
	// The library's Distance is squared euclidean.
	if d := p.Distance(clusters.Coordinates{0, 0, 0}); d != 9 {
		t.Errorf("Distance to origin = %v, want 9", d)
	}
}

func blobPoints() []mgl64.Vec3 {
	// Two tight, well-separated blobs.
	return []mgl64.Vec3{
		{0, 0, 0}, {0.1, 0, 0}, {0, 0.1, 0}, {0.1, 0.1, 0},
		{10, 10, 10}, {10.1, 10, 10}, {10, 10.1, 10}, {10.1, 10.1, 10},
	}
}

func TestClusterSingleGroup(t *testing.T) {
	labels, err := Cluster(blobPoints(), 1, nil)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	for i, l := range labels {
		if l != 1 {
			t.Errorf("point %d: label %d, want 1", i, l)
		}
	}
}

func TestClusterTwoBlobs(t *testing.T) {
	labels, err := Cluster(blobPoints(), 2, nil)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	// Label identity is arbitrary, but each blob must be uniform and the
	// two blobs must differ.
	for i := 1; i < 4; i++ {
		if labels[i] != labels[0] {
			t.Errorf("first blob not uniform: %v", labels)
		}
	}
	for i := 5; i < 8; i++ {
		if labels[i] != labels[4] {
			t.Errorf("second blob not uniform: %v", labels)
		}
	}
	if labels[0] == labels[4] {
		t.Errorf("blobs share a label: %v", labels)
	}
	for i, l := range labels {
		if l < 1 || l > 2 {
			t.Errorf("point %d: label %d outside [1,2]", i, l)
		}
	}
}

func TestClusterIgnore(t *testing.T) {
	labels, err := Cluster(blobPoints(), 2, map[int]bool{0: true, 7: true})
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if labels[0] != Unassigned || labels[7] != Unassigned {
		t.Errorf("ignored points must get label %d: %v", Unassigned, labels)
	}
	if labels[1] == Unassigned || labels[4] == Unassigned {
		t.Errorf("retained points must be labeled: %v", labels)
	}
}

func TestClusterInvalidArguments(t *testing.T) {
	pts := blobPoints()

	if _, err := Cluster(pts, 0, nil); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("k=0: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := Cluster(pts, -3, nil); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("k<0: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := Cluster(pts, len(pts)+1, nil); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("k too large: expected ErrInvalidArgument, got %v", err)
	}

	all := make(map[int]bool)
	for i := range pts {
		all[i] = true
	}
	if _, err := Cluster(pts, 1, all); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("all ignored: expected ErrInvalidArgument, got %v", err)
	}
}

func TestDistinct(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
		want   int
	}{
		{"uniform", []int{1, 1, 1}, 1},
		{"two", []int{0, 1, 1, 0}, 2},
		{"three", []int{1, 2, 3}, 3},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distinct(tt.labels); got != tt.want {
				t.Errorf("Distinct(%v) = %d, want %d", tt.labels, got, tt.want)
			}
		})
	}
}
