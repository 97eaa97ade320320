package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ambient is the base illumination applied before any directional light.
const ambient = 0.3

// Light is a directional light given as an azimuth/elevation pair, the
// same convention as the camera view angles.
type Light struct {
	Azimuth   float64
	Elevation float64
	Intensity float64
}

// Direction returns the unit vector pointing from the surface toward the
// light.
func (l Light) Direction() mgl64.Vec3 {
	az := mgl64.DegToRad(l.Azimuth)
	el := mgl64.DegToRad(l.Elevation)
	return mgl64.Vec3{
		math.Sin(az) * math.Cos(el),
		-math.Cos(az) * math.Cos(el),
		math.Sin(el),
	}
}

// DefaultLights returns two symmetric lights slightly above the horizon.
func DefaultLights() []Light {
	return []Light{
		{Azimuth: -60, Elevation: 25, Intensity: 0.6},
		{Azimuth: 60, Elevation: 25, Intensity: 0.6},
	}
}

// Shade applies Lambertian lighting to a base color. Surfaces are lit
// two-sided: a closed cortical surface is viewed from outside and inside
// folds alike, so the normal's sign must not matter.
func Shade(base [3]float64, normal mgl64.Vec3, lights []Light) [3]float64 {
	intensity := ambient
	for _, l := range lights {
		intensity += math.Abs(normal.Dot(l.Direction())) * l.Intensity
	}
	if intensity > 1 {
		intensity = 1
	}
	return [3]float64{base[0] * intensity, base[1] * intensity, base[2] * intensity}
}
