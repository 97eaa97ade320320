package render

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/cortexmorph/internal/fault"
)

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera(0, 0)
	cam.Fit(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}, 200, 100, 0.1)

	x, y, _ := cam.Project(mgl64.Vec3{0, 0, 0})
	if math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("center projects to (%v, %v), want (100, 50)", x, y)
	}
}

func TestCameraDepthOrdering(t *testing.T) {
	// Azimuth 0, elevation 0 looks along +y; larger y is farther away.
	cam := NewCamera(0, 0)
	cam.Fit(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}, 100, 100, 0.1)

	_, _, near := cam.Project(mgl64.Vec3{0, -1, 0})
	_, _, far := cam.Project(mgl64.Vec3{0, 1, 0})
	if near >= far {
		t.Errorf("depth ordering wrong: near %v, far %v", near, far)
	}
}

func TestCameraFitFillsViewport(t *testing.T) {
	cam := NewCamera(0, 90)
	cam.Fit(mgl64.Vec3{-2, -2, 0}, mgl64.Vec3{2, 2, 0}, 100, 100, 0.1)

	// Top-down view of a 4x4 box: corners must stay inside the margin.
	for _, p := range []mgl64.Vec3{{-2, -2, 0}, {2, 2, 0}, {-2, 2, 0}, {2, -2, 0}} {
		x, y, _ := cam.Project(p)
		if x < 0 || x > 100 || y < 0 || y > 100 {
			t.Errorf("corner %v projects outside the viewport: (%v, %v)", p, x, y)
		}
	}
}

func TestLightDirectionNormalized(t *testing.T) {
	for _, l := range DefaultLights() {
		d := l.Direction()
		if math.Abs(d.Len()-1) > 1e-12 {
			t.Errorf("light %+v direction not unit length: %v", l, d.Len())
		}
	}
	up := Light{Azimuth: 0, Elevation: 90, Intensity: 1}
	d := up.Direction()
	if math.Abs(d.Z()-1) > 1e-12 {
		t.Errorf("overhead light direction = %v, want +z", d)
	}
}

func TestShadeTwoSided(t *testing.T) {
	lights := []Light{{Azimuth: 0, Elevation: 90, Intensity: 0.7}}
	base := [3]float64{1, 1, 1}

	front := Shade(base, mgl64.Vec3{0, 0, 1}, lights)
	back := Shade(base, mgl64.Vec3{0, 0, -1}, lights)
	if front != back {
		t.Errorf("two-sided shading broken: %v vs %v", front, back)
	}
	if front[0] <= ambient {
		t.Errorf("lit surface not brighter than ambient: %v", front)
	}
}

func TestSessionDrawsTriangle(t *testing.T) {
	cam := NewCamera(0, 0)
	sess, err := NewSession(Options{Width: 64, Height: 64, Supersample: 1, Background: [3]float64{0, 0, 0}}, cam, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	verts := []mgl64.Vec3{{-1, 0, -1}, {1, 0, -1}, {0, 0, 1}}
	faces := [][3]int{{0, 1, 2}}
	sess.FitCamera(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})

	corners := [][3]float64{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}}
	if err := sess.DrawMesh(verts, faces, corners); err != nil {
		t.Fatalf("DrawMesh: %v", err)
	}

	img := sess.Frame()
	bounds := img.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 64 {
		t.Fatalf("frame size %v, want 64x64", bounds)
	}

	lit := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no pixels drawn for a triangle filling the viewport")
	}
}

func TestSessionCornerCountValidation(t *testing.T) {
	cam := NewCamera(0, 0)
	sess, err := NewSession(Options{Width: 16, Height: 16, Supersample: 1}, cam, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	verts := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	faces := [][3]int{{0, 1, 2}}
	if err := sess.DrawMesh(verts, faces, [][3]float64{{1, 1, 1}}); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for wrong corner count, got %v", err)
	}
}

func TestSessionClear(t *testing.T) {
	cam := NewCamera(30, 20)
	sess, err := NewSession(Options{Width: 8, Height: 8, Supersample: 1, Background: [3]float64{0, 0, 1}}, cam, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	img := sess.Frame()
	if got := img.At(4, 4); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("background = %v, want blue", got)
	}
}

func TestSessionInvalidOptions(t *testing.T) {
	if _, err := NewSession(Options{Width: 0, Height: 10}, NewCamera(0, 0), nil); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for zero width, got %v", err)
	}
	if _, err := NewSession(Options{Width: 10, Height: 10}, nil, nil); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for nil camera, got %v", err)
	}
}
