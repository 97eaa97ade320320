package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/cortexmorph/internal/fault"
	"github.com/Faultbox/cortexmorph/internal/geom"
)

// Options configures a rendering session.
type Options struct {
	Width       int
	Height      int
	Supersample int // internal oversampling factor, 1 disables
	Background  [3]float64
}

// DefaultOptions returns the standard frame setup.
func DefaultOptions() Options {
	return Options{
		Width:       640,
		Height:      480,
		Supersample: 2,
		Background:  [3]float64{1, 1, 1},
	}
}

// Session owns the framebuffer and depth buffer for one animation run.
// It is created once, handed to the driver, and drawn into frame by frame;
// nothing about it is safe for concurrent use.
type Session struct {
	opts   Options
	w, h   int // supersampled dimensions
	img    *image.RGBA
	depth  []float64
	cam    *Camera
	lights []Light
}

// NewSession creates a session with the given camera and lights. A nil
// lights slice gets the default two symmetric lights.
func NewSession(opts Options, cam *Camera, lights []Light) (*Session, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", fault.ErrInvalidArgument, opts.Width, opts.Height)
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	if cam == nil {
		return nil, fmt.Errorf("%w: session needs a camera", fault.ErrInvalidArgument)
	}
	if lights == nil {
		lights = DefaultLights()
	}
	s := &Session{
		opts:   opts,
		w:      opts.Width * opts.Supersample,
		h:      opts.Height * opts.Supersample,
		cam:    cam,
		lights: lights,
	}
	s.img = image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	s.depth = make([]float64, s.w*s.h)
	s.Clear()
	return s, nil
}

// Camera returns the session camera, to be fit against the scene bounds.
func (s *Session) Camera() *Camera {
	return s.cam
}

// FitCamera fits the camera to a bounding box at this session's
// supersampled viewport.
func (s *Session) FitCamera(min, max mgl64.Vec3) {
	s.cam.Fit(min, max, s.w, s.h, 0.1)
}

// Clear resets the framebuffer to the background color and the depth
// buffer to infinity.
func (s *Session) Clear() {
	bg := toRGBA(s.opts.Background)
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			s.img.SetRGBA(x, y, bg)
		}
	}
	for i := range s.depth {
		s.depth[i] = math.Inf(1)
	}
}

// DrawMesh rasterizes the surface with one RGB per face corner (3 per
// triangle), Gouraud-shading between the lit corners.
func (s *Session) DrawMesh(verts []mgl64.Vec3, faces [][3]int, corners [][3]float64) error {
	if len(corners) != 3*len(faces) {
		return fmt.Errorf("%w: %d corner colors for %d faces", fault.ErrInvalidArgument, len(corners), len(faces))
	}

	normals := geom.VertexNormals(verts, faces)

	type projected struct {
		x, y, depth float64
	}
	proj := make([]projected, len(verts))
	for i, v := range verts {
		x, y, d := s.cam.Project(v)
		proj[i] = projected{x, y, d}
	}

	for fi, f := range faces {
		var px, py, pd [3]float64
		var shaded [3][3]float64
		for c := 0; c < 3; c++ {
			p := proj[f[c]]
			px[c], py[c], pd[c] = p.x, p.y, p.depth
			shaded[c] = Shade(corners[3*fi+c], normals[f[c]], s.lights)
		}
		s.fillTriangle(px, py, pd, shaded)
	}
	return nil
}

// fillTriangle rasterizes one screen-space triangle with barycentric
// depth and color interpolation. Either winding is accepted.
func (s *Session) fillTriangle(px, py, pd [3]float64, col [3][3]float64) {
	area := (px[1]-px[0])*(py[2]-py[0]) - (py[1]-py[0])*(px[2]-px[0])
	if math.Abs(area) < 1e-12 {
		return
	}

	minX := clampInt(int(math.Floor(min3(px[0], px[1], px[2]))), 0, s.w-1)
	maxX := clampInt(int(math.Ceil(max3(px[0], px[1], px[2]))), 0, s.w-1)
	minY := clampInt(int(math.Floor(min3(py[0], py[1], py[2]))), 0, s.h-1)
	maxY := clampInt(int(math.Ceil(max3(py[0], py[1], py[2]))), 0, s.h-1)

	for y := minY; y <= maxY; y++ {
		fy := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			fx := float64(x) + 0.5
			w0 := ((px[1]-fx)*(py[2]-fy) - (py[1]-fy)*(px[2]-fx)) / area
			w1 := ((px[2]-fx)*(py[0]-fy) - (py[2]-fy)*(px[0]-fx)) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			d := w0*pd[0] + w1*pd[1] + w2*pd[2]
			idx := y*s.w + x
			if d >= s.depth[idx] {
				continue
			}
			s.depth[idx] = d
			s.img.SetRGBA(x, y, toRGBA([3]float64{
				w0*col[0][0] + w1*col[1][0] + w2*col[2][0],
				w0*col[0][1] + w1*col[1][1] + w2*col[2][1],
				w0*col[0][2] + w1*col[1][2] + w2*col[2][2],
			}))
		}
	}
}

// DrawPolyline draws a connected 3D curve as a screen-space thick line,
// biased slightly toward the camera so it stays visible on the surface it
// lies on.
func (s *Session) DrawPolyline(pts []mgl64.Vec3, width float64, col [3]float64) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	rgba := toRGBA(col)
	radius := width * float64(s.opts.Supersample) / 2
	bias := s.cam.DepthBias()

	for i := 1; i < len(pts); i++ {
		x0, y0, d0 := s.cam.Project(pts[i-1])
		x1, y1, d1 := s.cam.Project(pts[i])
		steps := int(math.Hypot(x1-x0, y1-y0)*2) + 1
		for st := 0; st <= steps; st++ {
			t := float64(st) / float64(steps)
			s.stamp(x0+t*(x1-x0), y0+t*(y1-y0), d0+t*(d1-d0)-bias, radius, rgba)
		}
	}
}

func (s *Session) stamp(cx, cy, depth, radius float64, col color.RGBA) {
	minX := clampInt(int(math.Floor(cx-radius)), 0, s.w-1)
	maxX := clampInt(int(math.Ceil(cx+radius)), 0, s.w-1)
	minY := clampInt(int(math.Floor(cy-radius)), 0, s.h-1)
	maxY := clampInt(int(math.Ceil(cy+radius)), 0, s.h-1)
	r2 := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			idx := y*s.w + x
			if depth >= s.depth[idx] {
				continue
			}
			s.depth[idx] = depth
			s.img.SetRGBA(x, y, col)
		}
	}
}

// Frame captures the current canvas as an image at the configured output
// size, downscaling the supersampled buffer.
func (s *Session) Frame() image.Image {
	if s.opts.Supersample == 1 {
		out := image.NewRGBA(s.img.Rect)
		copy(out.Pix, s.img.Pix)
		return out
	}
	out := image.NewRGBA(image.Rect(0, 0, s.opts.Width, s.opts.Height))
	xdraw.CatmullRom.Scale(out, out.Rect, s.img, s.img.Rect, xdraw.Src, nil)
	return out
}

func toRGBA(c [3]float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(clamp01(c[0]) * 255)),
		G: uint8(math.Round(clamp01(c[1]) * 255)),
		B: uint8(math.Round(clamp01(c[2]) * 255)),
		A: 255,
	}
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

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
