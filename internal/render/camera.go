// Package render is a small software renderer: an orthographic camera,
// directional lights and a z-buffered triangle rasterizer drawing into an
// offscreen RGBA framebuffer.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is an orthographic camera described by a view-angle pair, the
// way plotting toolkits take view(azimuth, elevation). The camera is fit
// once per run and stays fixed across frames.
type Camera struct {
	Azimuth   float64 // degrees, rotation about the vertical axis
	Elevation float64 // degrees above the horizon

	center             mgl64.Vec3
	scale              float64 // pixels per world unit
	halfW, halfH       float64
	right, up, forward mgl64.Vec3
	depthBias          float64
}

// NewCamera creates a camera looking from the given view angles.
func NewCamera(azimuth, elevation float64) *Camera {
	c := &Camera{Azimuth: azimuth, Elevation: elevation, scale: 1}
	c.computeBasis()
	return c
}

func (c *Camera) computeBasis() {
	az := mgl64.DegToRad(c.Azimuth)
	el := mgl64.DegToRad(c.Elevation)

	// Direction from the scene center toward the eye, z up.
	eye := mgl64.Vec3{
		math.Sin(az) * math.Cos(el),
		-math.Cos(az) * math.Cos(el),
		math.Sin(el),
	}
	c.forward = eye.Mul(-1)

	worldUp := mgl64.Vec3{0, 0, 1}
	if math.Abs(c.forward.Dot(worldUp)) > 0.999 {
		worldUp = mgl64.Vec3{0, 1, 0}
	}
	c.right = c.forward.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
}

// Fit centers the camera on the given bounding box and picks a scale so
// the projected box fills the viewport minus a relative margin.
func (c *Camera) Fit(min, max mgl64.Vec3, width, height int, margin float64) {
	c.center = min.Add(max).Mul(0.5)
	c.halfW = float64(width) / 2
	c.halfH = float64(height) / 2

	var extR, extU float64
	for i := 0; i < 8; i++ {
		corner := mgl64.Vec3{pick(i&1 == 0, min, max, 0), pick(i&2 == 0, min, max, 1), pick(i&4 == 0, min, max, 2)}
		d := corner.Sub(c.center)
		extR = math.Max(extR, math.Abs(d.Dot(c.right)))
		extU = math.Max(extU, math.Abs(d.Dot(c.up)))
	}
	if extR == 0 {
		extR = 1
	}
	if extU == 0 {
		extU = 1
	}
	c.scale = math.Min(c.halfW*(1-margin)/extR, c.halfH*(1-margin)/extU)

	// Depth bias for overlay curves drawn on top of the surface.
	c.depthBias = 0.01 * max.Sub(min).Len()
	if c.depthBias == 0 {
		c.depthBias = 1e-6
	}
}

func pick(lo bool, min, max mgl64.Vec3, axis int) float64 {
	if lo {
		return min[axis]
	}
	return max[axis]
}

// Project maps a world point to screen coordinates plus a depth value.
// Smaller depth is closer to the eye.
func (c *Camera) Project(p mgl64.Vec3) (x, y, depth float64) {
	d := p.Sub(c.center)
	x = d.Dot(c.right)*c.scale + c.halfW
	y = c.halfH - d.Dot(c.up)*c.scale
	depth = d.Dot(c.forward)
	return x, y, depth
}

// DepthBias is the offset used to keep overlay polylines in front of the
// surface they lie on.
func (c *Camera) DepthBias() float64 {
	return c.depthBias
}
