package anim

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	"github.com/Faultbox/cortexmorph/internal/fault"
)

// Sink receives finished frames in order. Any error is fatal to the rest
// of the run; frames already written stay where they are.
type Sink interface {
	Append(frame image.Image) error
	Close() error
}

// PNGDirSink writes frames as Frame<N>.png, 1-indexed, into a directory.
type PNGDirSink struct {
	dir string
	n   int
}

// NewPNGDirSink creates the output directory if needed; an existing
// directory is fine.
func NewPNGDirSink(dir string) (*PNGDirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", fault.ErrIO, dir, err)
	}
	return &PNGDirSink{dir: dir}, nil
}

// Append writes the next numbered frame.
func (s *PNGDirSink) Append(frame image.Image) error {
	s.n++
	path := filepath.Join(s.dir, fmt.Sprintf("Frame%d.png", s.n))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", fault.ErrIO, err)
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("%w: encoding %s: %v", fault.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", fault.ErrIO, path, err)
	}
	return nil
}

// Close is a no-op; PNG frames are complete as soon as they are written.
func (s *PNGDirSink) Close() error {
	return nil
}

// GIFSink assembles appended frames into one looping animated GIF,
// written on Close.
type GIFSink struct {
	path   string
	delay  int // hundredths of a second per frame
	frames []*image.Paletted
	delays []int
}

// NewGIFSink writes to path with the given per-frame delay.
func NewGIFSink(path string, delayMS int) *GIFSink {
	if delayMS <= 0 {
		delayMS = 100
	}
	return &GIFSink{path: path, delay: delayMS / 10}
}

// Append palettes the frame for GIF encoding.
func (s *GIFSink) Append(frame image.Image) error {
	b := frame.Bounds()
	pal := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(pal, b, frame, b.Min)
	s.frames = append(s.frames, pal)
	s.delays = append(s.delays, s.delay)
	return nil
}

// Close encodes and writes the animation. LoopCount 0 loops forever.
func (s *GIFSink) Close() error {
	if len(s.frames) == 0 {
		return fmt.Errorf("%w: no frames to encode", fault.ErrIO)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("%w: %v", fault.ErrIO, err)
	}
	g := &gif.GIF{Image: s.frames, Delay: s.delays, LoopCount: 0}
	if err := gif.EncodeAll(f, g); err != nil {
		f.Close()
		return fmt.Errorf("%w: encoding %s: %v", fault.ErrIO, s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", fault.ErrIO, s.path, err)
	}
	return nil
}

// MultiSink fans every frame out to several sinks.
type MultiSink []Sink

// Append forwards the frame to each sink, stopping at the first failure.
func (m MultiSink) Append(frame image.Image) error {
	for _, s := range m {
		if err := s.Append(frame); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, returning the first error seen.
func (m MultiSink) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
