package anim

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/cortexmorph/internal/colormap"
	"github.com/Faultbox/cortexmorph/internal/fault"
	"github.com/Faultbox/cortexmorph/internal/geom"
	"github.com/Faultbox/cortexmorph/internal/logger"
	"github.com/Faultbox/cortexmorph/internal/parcel"
	"github.com/Faultbox/cortexmorph/internal/render"
)

// LimitsMode selects how color limits are chosen over the run.
type LimitsMode int

const (
	// LimitsGlobal derives (lo, hi) once from the min/max across all data
	// keyframes.
	LimitsGlobal LimitsMode = iota
	// LimitsFixed uses the configured (lo, hi) unchanged.
	LimitsFixed
	// LimitsPerFrame recomputes (lo, hi) from each frame's interpolated
	// data.
	LimitsPerFrame
)

// ParseLimitsMode parses a limits-mode name from configuration.
func ParseLimitsMode(name string) (LimitsMode, error) {
	switch name {
	case "", "global":
		return LimitsGlobal, nil
	case "fixed":
		return LimitsFixed, nil
	case "vary":
		return LimitsPerFrame, nil
	}
	return 0, fmt.Errorf("%w: unknown limits mode %q", fault.ErrInvalidArgument, name)
}

// Options is the full configuration bundle for one animation run. All
// validation happens in NewDriver, before the first frame is rendered.
type Options struct {
	// Keyframes holds K >= 2 vertex sets sharing Faces and vertex order.
	Keyframes [][]mgl64.Vec3
	Faces     [][3]int

	// Data is optional per-vertex scalar data; nil renders the flat
	// background surface.
	Data *ScalarTrack
	// Parcels is an optional static assignment; parcel ids never vary
	// over a run.
	Parcels []int
	// Maps is the colormap track; required.
	Maps *MapTrack
	// Space is the color space colormap interpolation runs in.
	Space colormap.Space

	LimitsMode LimitsMode
	Lo, Hi     float64 // used with LimitsFixed

	// Steps is the frame count per keyframe gap, endpoints included.
	Steps int
	// FirstRepeat and LastRepeat duplicate the first and last frame.
	FirstRepeat int
	LastRepeat  int
	// KeepLast controls whether the final frame is appended to the
	// output. It is always computed; dropping it gives a seamless loop.
	KeepLast bool

	DrawBoundaries bool
	LineWidth      float64
	BoundaryColor  [3]float64
}

// Driver renders the configured animation frame by frame, strictly
// sequentially: it owns the session and the inputs for the whole run.
type Driver struct {
	opts   Options
	sess   *render.Session
	sink   Sink
	mapper colormap.Mapper
}

// NewDriver validates the configuration bundle eagerly and returns a
// ready-to-run driver.
func NewDriver(opts Options, sess *render.Session, sink Sink) (*Driver, error) {
	if sess == nil || sink == nil {
		return nil, fmt.Errorf("%w: driver needs a session and a sink", fault.ErrInvalidArgument)
	}
	k := len(opts.Keyframes)
	if k < 2 {
		return nil, fmt.Errorf("%w: need at least 2 keyframes, got %d", fault.ErrInvalidArgument, k)
	}
	n := len(opts.Keyframes[0])
	for i, kf := range opts.Keyframes {
		if len(kf) != n {
			return nil, fmt.Errorf("%w: keyframe %d has %d vertices, keyframe 0 has %d", fault.ErrInvalidArgument, i, len(kf), n)
		}
	}
	mesh := geom.Mesh{Verts: opts.Keyframes[0], Faces: opts.Faces}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	if opts.Steps < 2 {
		return nil, fmt.Errorf("%w: steps per gap must be at least 2, got %d", fault.ErrInvalidArgument, opts.Steps)
	}
	if opts.FirstRepeat < 1 || opts.LastRepeat < 1 {
		return nil, fmt.Errorf("%w: repeat counts must be positive, got first=%d last=%d", fault.ErrInvalidArgument, opts.FirstRepeat, opts.LastRepeat)
	}
	if err := opts.Data.Validate(k, n); err != nil {
		return nil, err
	}
	if err := opts.Maps.Validate(k); err != nil {
		return nil, err
	}
	if opts.Parcels != nil && len(opts.Parcels) != n {
		return nil, fmt.Errorf("%w: %d parcel labels for %d vertices", fault.ErrInvalidArgument, len(opts.Parcels), n)
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 2
	}
	return &Driver{opts: opts, sess: sess, sink: sink, mapper: colormap.NewMapper()}, nil
}

// step is one entry of the frame schedule: an interpolation position and
// how many copies of the rendered frame reach the output.
type step struct {
	gap     int
	t       float64
	repeats int
}

// schedule expands the keyframe sequence into the frame order:
// FirstFrame(xR0), the (K-1)x(F-1) interpolated frames, with the final
// frame repeated R1 times or, when keepLast is off, computed but never
// appended.
func schedule(k, steps, firstRepeat, lastRepeat int, keepLast bool) []step {
	out := []step{{gap: 0, t: 0, repeats: firstRepeat}}
	for g := 0; g < k-1; g++ {
		for j := 1; j < steps; j++ {
			s := step{gap: g, t: float64(j) / float64(steps-1), repeats: 1}
			if g == k-2 && j == steps-1 {
				s.repeats = lastRepeat
				if !keepLast {
					s.repeats = 0
				}
			}
			out = append(out, s)
		}
	}
	return out
}

// Run renders the whole animation. The first sink failure aborts the
// remaining frames; frames already emitted stay on disk.
func (d *Driver) Run() error {
	o := d.opts
	n := len(o.Keyframes[0])

	parcels := o.Parcels
	if parcels == nil {
		parcels = make([]int, n)
	}
	drawBounds := o.DrawBoundaries && parcel.Distinct(parcels) > 1

	// The camera is fit once against the union of all keyframe bounds so
	// the surface never drifts out of frame mid-morph.
	min, max := unionBounds(o.Keyframes, o.Faces)
	d.sess.FitCamera(min, max)

	lo, hi := o.Lo, o.Hi
	if o.LimitsMode == LimitsGlobal {
		lo, hi = globalLimits(o.Data, len(o.Keyframes))
	}

	plan := schedule(len(o.Keyframes), o.Steps, o.FirstRepeat, o.LastRepeat, o.KeepLast)
	logger.Sugar.Infof("rendering %d frames (%d keyframes, %d steps per gap)", len(plan), len(o.Keyframes), o.Steps)

	emitted := 0
	for _, st := range plan {
		verts, data, cm, err := d.frameInputs(st)
		if err != nil {
			return err
		}
		if o.LimitsMode == LimitsPerFrame {
			lo, hi = colormap.DataLimits(data)
		}

		corners, err := d.mapper.FaceColors(data, parcels, o.Faces, cm, lo, hi)
		if err != nil {
			return err
		}

		d.sess.Clear()
		if err := d.sess.DrawMesh(verts, o.Faces, corners); err != nil {
			return err
		}
		if drawBounds {
			for _, line := range parcel.Boundaries(verts, o.Faces, parcels, parcel.StyleMidpoint) {
				d.sess.DrawPolyline(line, o.LineWidth, o.BoundaryColor)
			}
		}

		// The frame is fully computed even when repeats is 0 (the
		// suppressed final frame of a seamless loop).
		frame := d.sess.Frame()
		for r := 0; r < st.repeats; r++ {
			if err := d.sink.Append(frame); err != nil {
				return err
			}
			emitted++
		}
	}

	logger.Sugar.Infof("emitted %d frames", emitted)
	return nil
}

// frameInputs computes the interpolated vertex set, scalar field and
// colormap for one schedule entry.
func (d *Driver) frameInputs(st step) ([]mgl64.Vec3, []float64, colormap.Map, error) {
	o := d.opts

	verts := o.Keyframes[st.gap]
	if st.t > 0 {
		var err error
		verts, err = geom.LerpVec3(o.Keyframes[st.gap], o.Keyframes[st.gap+1], st.t)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	var data []float64
	switch {
	case o.Data == nil:
		data = noData(len(verts))
	case o.Data.Varying() && st.t > 0:
		var err error
		data, err = geom.LerpScalars(o.Data.At(st.gap), o.Data.At(st.gap+1), st.t)
		if err != nil {
			return nil, nil, nil, err
		}
	default:
		data = o.Data.At(st.gap)
	}

	cm := o.Maps.At(st.gap)
	if o.Maps.Varying() && st.t > 0 {
		var err error
		cm, err = colormap.Interp(o.Maps.At(st.gap), o.Maps.At(st.gap+1), st.t, o.Space)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return verts, data, cm, nil
}

func unionBounds(keyframes [][]mgl64.Vec3, faces [][3]int) (mgl64.Vec3, mgl64.Vec3) {
	min := mgl64.Vec3{1e30, 1e30, 1e30}
	max := mgl64.Vec3{-1e30, -1e30, -1e30}
	for _, kf := range keyframes {
		m := geom.Mesh{Verts: kf, Faces: faces}
		lo, hi := m.Bounds()
		for i := 0; i < 3; i++ {
			if lo[i] < min[i] {
				min[i] = lo[i]
			}
			if hi[i] > max[i] {
				max[i] = hi[i]
			}
		}
	}
	return min, max
}

func globalLimits(data *ScalarTrack, keyframes int) (float64, float64) {
	if data == nil {
		return 0, 0
	}
	var all []float64
	for k := 0; k < keyframes; k++ {
		all = append(all, data.At(k)...)
	}
	return colormap.DataLimits(all)
}

func noData(n int) []float64 {
	out := make([]float64, n)
	nan := math.NaN()
	for i := range out {
		out[i] = nan
	}
	return out
}
