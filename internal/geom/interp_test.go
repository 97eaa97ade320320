package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/cortexmorph/internal/fault"
)

func TestLerpRatioEndpoints(t *testing.T) {
	a := [][]float64{{0, 0, 0}, {1, 2, 3}}
	b := [][]float64{{2, 0, 0}, {3, 2, 3}}

	got, err := Lerp(a, b, []float64{0}, Ratio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		for j := range a[i] {
			if got[i][j] != a[i][j] {
				t.Errorf("t=0 row %d col %d: got %v, want %v", i, j, got[i][j], a[i][j])
			}
		}
	}

	got, err = Lerp(a, b, []float64{1}, Ratio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range b {
		for j := range b[i] {
			if got[i][j] != b[i][j] {
				t.Errorf("t=1 row %d col %d: got %v, want %v", i, j, got[i][j], b[i][j])
			}
		}
	}
}

func TestLerpRatioOnSegment(t *testing.T) {
	a := [][]float64{{0, 0, 0}}
	b := [][]float64{{4, 0, 2}}

	for _, tv := range []float64{0, 0.1, 0.25, 0.5, 0.9, 1} {
		got, err := Lerp(a, b, []float64{tv}, Ratio)
		if err != nil {
			t.Fatalf("t=%v: %v", tv, err)
		}
		// The point must lie on the segment: result = a + t*(b-a).
		want := []float64{4 * tv, 0, 2 * tv}
		for j := range want {
			if math.Abs(got[0][j]-want[j]) > 1e-12 {
				t.Errorf("t=%v col %d: got %v, want %v", tv, j, got[0][j], want[j])
			}
		}
	}
}

func TestLerpExtrapolation(t *testing.T) {
	a := [][]float64{{0}}
	b := [][]float64{{1}}

	got, err := Lerp(a, b, []float64{2}, Ratio)
	if err != nil {
		t.Fatalf("extrapolation must not fail: %v", err)
	}
	if got[0][0] != 2 {
		t.Errorf("t=2: got %v, want 2", got[0][0])
	}

	got, err = Lerp(a, b, []float64{-1}, Ratio)
	if err != nil {
		t.Fatalf("extrapolation must not fail: %v", err)
	}
	if got[0][0] != -1 {
		t.Errorf("t=-1: got %v, want -1", got[0][0])
	}
}

func TestLerpPerRowParameter(t *testing.T) {
	a := [][]float64{{0}, {0}, {0}}
	b := [][]float64{{10}, {10}, {10}}

	got, err := Lerp(a, b, []float64{0, 0.5, 1}, Ratio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 5, 10}
	for i := range want {
		if got[i][0] != want[i] {
			t.Errorf("row %d: got %v, want %v", i, got[i][0], want[i])
		}
	}
}

func TestLerpDistanceMode(t *testing.T) {
	// Segment of length 5 along x; distance 1 must land at x=1.
	a := [][]float64{{0, 0, 0}}
	b := [][]float64{{5, 0, 0}}

	got, err := Lerp(a, b, []float64{1}, Distance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got[0][0]-1) > 1e-12 {
		t.Errorf("distance 1 on length-5 segment: got x=%v, want 1", got[0][0])
	}
}

func TestLerpDistanceDegenerate(t *testing.T) {
	a := [][]float64{{1, 2, 3}}
	b := [][]float64{{1, 2, 3}}

	_, err := Lerp(a, b, []float64{1}, Distance)
	if !errors.Is(err, fault.ErrDegenerateSegment) {
		t.Errorf("expected ErrDegenerateSegment, got %v", err)
	}
}

func TestLerpShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		a, b [][]float64
		t    []float64
	}{
		{"row count", [][]float64{{0}}, [][]float64{{0}, {1}}, []float64{0.5}},
		{"row width", [][]float64{{0, 1}}, [][]float64{{0}}, []float64{0.5}},
		{"parameter count", [][]float64{{0}, {1}, {2}}, [][]float64{{0}, {1}, {2}}, []float64{0.5, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lerp(tt.a, tt.b, tt.t, Ratio)
			if !errors.Is(err, fault.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestLerpPure(t *testing.T) {
	a := [][]float64{{1, 2, 3}}
	b := [][]float64{{4, 5, 6}}

	first, err := Lerp(a, b, []float64{0.3}, Ratio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Lerp(a, b, []float64{0.3}, Ratio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for j := range first[0] {
		if first[0][j] != second[0][j] {
			t.Errorf("col %d: repeated call differs: %v vs %v", j, first[0][j], second[0][j])
		}
	}
	// Inputs must be untouched.
	if a[0][0] != 1 || b[0][0] != 4 {
		t.Error("inputs were mutated")
	}
}

func TestLerpVec3(t *testing.T) {
	a := []mgl64.Vec3{{0, 0, 0}, {2, 2, 2}}
	b := []mgl64.Vec3{{2, 0, 0}, {4, 2, 2}}

	got, err := LerpVec3(a, b, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != (mgl64.Vec3{1, 0, 0}) || got[1] != (mgl64.Vec3{3, 2, 2}) {
		t.Errorf("unexpected midpoints: %v", got)
	}

	if _, err := LerpVec3(a, b[:1], 0.5); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument on length mismatch, got %v", err)
	}
}

func TestLerpScalarsNaN(t *testing.T) {
	a := []float64{1, math.NaN()}
	b := []float64{3, 5}

	got, err := LerpScalars(a, b, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 2 {
		t.Errorf("got %v, want 2", got[0])
	}
	if !math.IsNaN(got[1]) {
		t.Errorf("NaN must propagate, got %v", got[1])
	}
}
