// Package fault defines the sentinel errors shared across the pipeline.
// Callers match them with errors.Is after any number of fmt.Errorf wraps.
package fault

import "errors"

var (
	// ErrInvalidArgument reports a shape, length, or range mismatch in an
	// input. It is always raised eagerly, before any frame is rendered.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDegenerateSegment reports a zero-length segment in distance-mode
	// interpolation, where no distance parametrization exists.
	ErrDegenerateSegment = errors.New("degenerate segment")

	// ErrIO reports a failed frame write or encoder append. It is fatal to
	// the remaining animation; frames already written stay on disk.
	ErrIO = errors.New("io failure")
)
