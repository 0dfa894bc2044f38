package framegraph

import "errors"

// Common errors returned by frame graph operations.
var (
	// ErrInvalidDimensions is returned when a build is attempted with a
	// zero or negative width or height.
	ErrInvalidDimensions = errors.New("framegraph: invalid dimensions")

	// ErrEmptyDrawGroups is returned when a build is attempted with no
	// draw groups. A pass with nothing to draw is a configuration
	// mistake, not an empty frame.
	ErrEmptyDrawGroups = errors.New("framegraph: empty draw group list")

	// ErrDeviceQuery is returned when the surface format cannot be
	// obtained from the execution backend. No usable graph can be
	// produced without a format; callers should treat this as fatal.
	ErrDeviceQuery = errors.New("framegraph: surface format query failed")

	// ErrInvalidGraph is returned by GraphDescription.Validate when the
	// assembled graph violates a structural invariant.
	ErrInvalidGraph = errors.New("framegraph: invalid graph")

	// ErrNilBackend is returned when a nil execution backend is passed.
	ErrNilBackend = errors.New("framegraph: nil execution backend")

	// ErrSessionClosed is returned when operations are attempted on a
	// closed session.
	ErrSessionClosed = errors.New("framegraph: session is closed")
)
