package framegraph

import (
	"github.com/gogpu/gputypes"
)

// stubBackend is a minimal in-memory ExecutionBackend for root package
// tests. The real executors live under backend/.
type stubBackend struct {
	format   gputypes.TextureFormat
	queryErr error
	initErr  error
	execErr  error
	drainErr error

	queries  int
	inits    int
	closes   int
	drains   int
	executed []*GraphDescription
}

func newStubBackend() *stubBackend {
	return &stubBackend{format: gputypes.TextureFormatBGRA8Unorm}
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Init() error {
	s.inits++
	return s.initErr
}

func (s *stubBackend) Close() { s.closes++ }

func (s *stubBackend) SurfaceFormat(SurfaceHandle) (gputypes.TextureFormat, error) {
	s.queries++
	if s.queryErr != nil {
		return gputypes.TextureFormatUndefined, s.queryErr
	}
	return s.format, nil
}

func (s *stubBackend) Execute(g *GraphDescription) error {
	if s.execErr != nil {
		return s.execErr
	}
	s.executed = append(s.executed, g)
	return nil
}

func (s *stubBackend) Drain() error {
	s.drains++
	return s.drainErr
}

var _ ExecutionBackend = (*stubBackend)(nil)

// stubSurface is a trivial surface handle.
type stubSurface uint64

func (s stubSurface) SurfaceID() uint64 { return uint64(s) }
