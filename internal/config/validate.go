package config

import (
	"fmt"

	"github.com/Faultbox/cortexmorph/internal/fault"
)

// Validate checks the config for a render run. It fails fast so that a
// broken run file is reported before any surface is loaded.
func (c *Config) Validate() error {
	k := len(c.Surfaces.Keyframes)
	if k < 2 {
		return fmt.Errorf("%w: need at least 2 keyframe surfaces, got %d", fault.ErrInvalidArgument, k)
	}
	if n := len(c.Surfaces.Data); n != 0 && n != 1 && n != k {
		return fmt.Errorf("%w: data track must have 1 or %d entries, got %d", fault.ErrInvalidArgument, k, n)
	}
	if c.Surfaces.Parcels != "" && c.Surfaces.Clusters > 0 {
		return fmt.Errorf("%w: parcels file and clusters are mutually exclusive", fault.ErrInvalidArgument)
	}
	if c.Surfaces.Clusters < 0 {
		return fmt.Errorf("%w: clusters must be non-negative, got %d", fault.ErrInvalidArgument, c.Surfaces.Clusters)
	}

	if c.Animation.Steps < 2 {
		return fmt.Errorf("%w: steps must be at least 2, got %d", fault.ErrInvalidArgument, c.Animation.Steps)
	}
	if c.Animation.FirstRepeat < 1 {
		return fmt.Errorf("%w: first_repeat must be positive, got %d", fault.ErrInvalidArgument, c.Animation.FirstRepeat)
	}
	if c.Animation.LastRepeat < 1 {
		return fmt.Errorf("%w: last_repeat must be positive, got %d", fault.ErrInvalidArgument, c.Animation.LastRepeat)
	}

	if n := len(c.Color.Maps); n != 1 && n != k {
		return fmt.Errorf("%w: color maps must have 1 or %d entries, got %d", fault.ErrInvalidArgument, k, n)
	}
	// An empty name means the default, same as the parsers downstream.
	switch c.Color.Space {
	case "", "hsv", "rgb":
	default:
		return fmt.Errorf("%w: unknown color space %q", fault.ErrInvalidArgument, c.Color.Space)
	}
	switch c.Color.Limits {
	case "", "global", "fixed", "vary":
	default:
		return fmt.Errorf("%w: unknown limits mode %q", fault.ErrInvalidArgument, c.Color.Limits)
	}
	if c.Color.Limits == "fixed" && c.Color.Range[0] == c.Color.Range[1] {
		return fmt.Errorf("%w: fixed limits need a non-empty range", fault.ErrInvalidArgument)
	}

	if c.Render.Width < 1 || c.Render.Height < 1 {
		return fmt.Errorf("%w: frame size %dx%d", fault.ErrInvalidArgument, c.Render.Width, c.Render.Height)
	}
	if c.Render.Supersample < 1 {
		return fmt.Errorf("%w: supersample must be positive, got %d", fault.ErrInvalidArgument, c.Render.Supersample)
	}
	if c.Render.LineWidth <= 0 {
		return fmt.Errorf("%w: line_width must be positive, got %g", fault.ErrInvalidArgument, c.Render.LineWidth)
	}

	if c.Output.FramesDir == "" && c.Output.GIF == "" {
		return fmt.Errorf("%w: set at least one of output.frames_dir and output.gif", fault.ErrInvalidArgument)
	}
	if c.Output.DelayMS < 1 {
		return fmt.Errorf("%w: delay_ms must be positive, got %d", fault.ErrInvalidArgument, c.Output.DelayMS)
	}

	return nil
}
