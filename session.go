package framegraph

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Session drives the rebuild-and-execute cycle for one presentation
// surface: poll dimensions, debounce, rebuild the graph when a new
// size is confirmed, retire the superseded graph after the backend
// drains, and execute the current graph.
//
// Session owns its tracker and format cache exclusively and requires
// no locking: all methods must be called from the single rendering
// goroutine. Cross-goroutine dimension publishing is the host's
// concern and tolerates stale reads, since the debounce absorbs
// transient values anyway.
type Session struct {
	backend ExecutionBackend
	surface SurfaceHandle

	tracker RebuildTracker
	formats FormatCache

	clearColor gputypes.Color
	graph      *GraphDescription
	closed     bool
}

// SessionOption customizes NewSession.
type SessionOption func(*Session)

// WithSurface attaches the surface handle queried for the pixel
// format. Backends that do not inspect the handle accept nil.
func WithSurface(surface SurfaceHandle) SessionOption {
	return func(s *Session) {
		s.surface = surface
	}
}

// WithBackground overrides the background clear color for every graph
// the session builds.
func WithBackground(c gputypes.Color) SessionOption {
	return func(s *Session) {
		s.clearColor = c
	}
}

// NewSession creates a session over the given execution backend and
// initializes the backend. Returns ErrNilBackend for a nil backend.
func NewSession(b ExecutionBackend, opts ...SessionOption) (*Session, error) {
	if b == nil {
		return nil, ErrNilBackend
	}

	s := &Session{
		backend:    b,
		clearColor: DefaultClearColor,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("framegraph: backend %q init: %w", b.Name(), err)
	}
	Logger().Info("framegraph: session started", "backend", b.Name())
	return s, nil
}

// Frame advances the session by one rendered frame: it consumes the
// current dimension snapshot, rebuilds the graph if the debounce says
// one is due, and executes the current graph.
//
// A nil dims snapshot (surface not yet created) and an absent graph
// (no stable size confirmed yet) both skip the frame without error.
//
// Configuration errors from a rebuild (invalid dimensions, empty draw
// groups) are returned but leave the previous graph in use; the owed
// rebuild is kept and retried on a later frame. A surface-format query
// failure is returned as ErrDeviceQuery and is fatal to the session's
// usefulness.
func (s *Session) Frame(dims *SurfaceDimensions, groups []DrawGroup) error {
	if s.closed {
		return ErrSessionClosed
	}

	if s.tracker.ShouldRebuild(dims) {
		if err := s.rebuild(groups); err != nil {
			return err
		}
	}

	if s.graph == nil {
		return nil
	}
	return s.backend.Execute(s.graph)
}

// rebuild constructs and installs a new graph for the tracker's
// confirmed dimensions. The previous graph is retired only after the
// backend drains, so no in-flight frame can reference freed resources.
func (s *Session) rebuild(groups []DrawGroup) error {
	format, err := s.formats.Format(s.backend, s.surface)
	if err != nil {
		return err
	}

	dims, ok := s.tracker.Dimensions()
	if !ok {
		// ShouldRebuild cannot return true before a snapshot was observed.
		return fmt.Errorf("%w: rebuild signaled without dimensions", ErrInvalidGraph)
	}

	g, err := Build(dims, format, groups, WithClearColor(s.clearColor))
	if err != nil {
		return err
	}

	if s.graph != nil {
		if err := s.backend.Drain(); err != nil {
			return fmt.Errorf("framegraph: drain before retire: %w", err)
		}
	}

	s.graph = g
	s.tracker.MarkRebuilt()
	Logger().Debug("framegraph: graph installed", "dims", dims)
	return nil
}

// Graph returns the currently installed graph, or nil before the first
// successful rebuild.
func (s *Session) Graph() *GraphDescription {
	return s.graph
}

// Close drains the backend, releases the outstanding graph, and closes
// the backend. Close is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var drainErr error
	if s.graph != nil {
		drainErr = s.backend.Drain()
		if drainErr != nil {
			Logger().Warn("framegraph: drain on close failed", "err", drainErr)
		}
		s.graph = nil
	}
	s.backend.Close()
	Logger().Info("framegraph: session closed", "backend", s.backend.Name())
	return drainErr
}
