// Package anim drives a morph animation: it interpolates between surface
// keyframes, recomputes colors and parcel boundaries per frame, and emits
// the frames to a sink.
package anim

import (
	"fmt"

	"github.com/Faultbox/cortexmorph/internal/colormap"
	"github.com/Faultbox/cortexmorph/internal/fault"
)

// ScalarTrack is per-vertex scalar data that is either static for the
// whole run or keyframed alongside the surfaces. Resolving the
// static/varying split here keeps the render loop free of length
// branching.
type ScalarTrack struct {
	frames [][]float64
	static bool
}

// StaticScalars wraps one scalar field reused for every keyframe. A nil
// field means "no data": the mapper's background path.
func StaticScalars(data []float64) *ScalarTrack {
	if data == nil {
		return nil
	}
	return &ScalarTrack{frames: [][]float64{data}, static: true}
}

// VaryingScalars wraps one scalar field per keyframe.
func VaryingScalars(frames [][]float64) *ScalarTrack {
	return &ScalarTrack{frames: frames}
}

// Validate checks the track against the keyframe count and vertex count.
func (t *ScalarTrack) Validate(keyframes, vertices int) error {
	if t == nil {
		return nil
	}
	if !t.static && len(t.frames) != keyframes {
		return fmt.Errorf("%w: %d data keyframes for %d surface keyframes", fault.ErrInvalidArgument, len(t.frames), keyframes)
	}
	for i, f := range t.frames {
		if len(f) != vertices {
			return fmt.Errorf("%w: data keyframe %d holds %d values for %d vertices", fault.ErrInvalidArgument, i, len(f), vertices)
		}
	}
	return nil
}

// Varying reports whether the track actually changes across keyframes.
func (t *ScalarTrack) Varying() bool {
	return t != nil && !t.static
}

// At returns the field for keyframe k.
func (t *ScalarTrack) At(k int) []float64 {
	if t.static {
		return t.frames[0]
	}
	return t.frames[k]
}

// MapTrack is the colormap analogue of ScalarTrack.
type MapTrack struct {
	maps   []colormap.Map
	static bool
}

// StaticMap wraps a single colormap.
func StaticMap(m colormap.Map) *MapTrack {
	return &MapTrack{maps: []colormap.Map{m}, static: true}
}

// VaryingMaps wraps one colormap per keyframe.
func VaryingMaps(maps []colormap.Map) *MapTrack {
	return &MapTrack{maps: maps}
}

// Validate checks the keyframe count and that all maps share one length,
// which color-space interpolation requires.
func (t *MapTrack) Validate(keyframes int) error {
	if t == nil || len(t.maps) == 0 {
		return fmt.Errorf("%w: animation needs a colormap", fault.ErrInvalidArgument)
	}
	if !t.static && len(t.maps) != keyframes {
		return fmt.Errorf("%w: %d colormaps for %d keyframes", fault.ErrInvalidArgument, len(t.maps), keyframes)
	}
	c := len(t.maps[0])
	if c == 0 {
		return fmt.Errorf("%w: empty colormap", fault.ErrInvalidArgument)
	}
	for i, m := range t.maps {
		if len(m) != c {
			return fmt.Errorf("%w: colormap %d has %d entries, others have %d", fault.ErrInvalidArgument, i, len(m), c)
		}
	}
	return nil
}

// Varying reports whether the track changes across keyframes.
func (t *MapTrack) Varying() bool {
	return t != nil && !t.static
}

// At returns the colormap for keyframe k.
func (t *MapTrack) At(k int) colormap.Map {
	if t.static {
		return t.maps[0]
	}
	return t.maps[k]
}
