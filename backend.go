package framegraph

import (
	"github.com/gogpu/gputypes"
)

// SurfaceHandle identifies a presentation surface owned by the
// windowing layer. The handle is opaque to framegraph; execution
// backends interpret it when queried for the surface format.
//
// The graphics context is always threaded through calls as an explicit
// handle, never held as package-level state.
type SurfaceHandle interface {
	// SurfaceID returns a stable identifier for the surface.
	SurfaceID() uint64
}

// ExecutionBackend executes graph descriptions and owns the GPU-side
// resources behind them. Backends are external to the graph model:
// framegraph hands a backend a description once per frame and the
// backend allocates, draws, presents, and eventually retires.
//
// Backends register themselves with the backend subpackage's registry;
// see backend/software and backend/wgpu for implementations.
type ExecutionBackend interface {
	// Name returns the backend identifier (e.g. "software", "wgpu").
	Name() string

	// Init initializes the backend. It must be called before any other
	// operation and is idempotent.
	Init() error

	// Close releases all backend resources. The backend should not be
	// used after Close is called.
	Close()

	// SurfaceFormat queries the pixel format of the given surface.
	// One query per session suffices; FormatCache memoizes the result.
	SurfaceFormat(surface SurfaceHandle) (gputypes.TextureFormat, error)

	// Execute runs the graph once. Called at most once per rendered
	// frame, never concurrently with itself.
	Execute(g *GraphDescription) error

	// Drain blocks until no in-flight frame references previously
	// executed graphs. Callers retire a superseded graph only after
	// Drain returns nil.
	Drain() error
}
