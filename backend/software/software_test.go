package software

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/backend"
	"github.com/gogpu/framegraph/drawgroup"
	"github.com/gogpu/gputypes"
)

func buildGraph(t *testing.T, w, h int, groups []framegraph.DrawGroup) *framegraph.GraphDescription {
	t.Helper()
	g, err := framegraph.Build(framegraph.SurfaceDimensions{Width: w, Height: h},
		gputypes.TextureFormatRGBA8Unorm, groups)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

func TestBackendRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendSoftware) {
		t.Error("software backend not registered on import")
	}
	b := backend.Get(backend.BackendSoftware)
	if b == nil {
		t.Fatal("Get(software) = nil")
	}
	if b.Name() != backend.BackendSoftware {
		t.Errorf("Name() = %q, want %q", b.Name(), backend.BackendSoftware)
	}
}

func TestSurfaceFormat(t *testing.T) {
	b := NewBackend()
	if _, err := b.SurfaceFormat(nil); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("SurfaceFormat() before Init error = %v, want ErrNotInitialized", err)
	}

	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	format, err := b.SurfaceFormat(nil)
	if err != nil {
		t.Fatalf("SurfaceFormat() error = %v", err)
	}
	if format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("SurfaceFormat() = %v, want RGBA8Unorm", format)
	}
}

func TestExecuteBeforeInit(t *testing.T) {
	b := NewBackend()
	g := buildGraph(t, 4, 4, drawgroup.DefaultStack())
	if err := b.Execute(g); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("Execute() before Init error = %v, want ErrNotInitialized", err)
	}
}

func TestExecutePresentsClearedFrame(t *testing.T) {
	b := NewBackend()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	g := buildGraph(t, 8, 6, drawgroup.DefaultStack())
	if err := b.Execute(g); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	frame := b.Frame()
	if frame == nil {
		t.Fatal("Frame() = nil after Execute")
	}
	if frame.Bounds().Dx() != 8 || frame.Bounds().Dy() != 6 {
		t.Errorf("frame bounds = %v, want 8x6", frame.Bounds())
	}

	// The background {0.34, 0.36, 0.52, 1.0} quantized to 8 bits.
	want := color.RGBA{R: 87, G: 92, B: 133, A: 255}
	if got := frame.RGBAAt(0, 0); got != want {
		t.Errorf("corner pixel = %+v, want %+v", got, want)
	}
	if got := frame.RGBAAt(7, 5); got != want {
		t.Errorf("opposite corner pixel = %+v, want %+v", got, want)
	}
}

func TestExecuteReplaysGroupsInOrder(t *testing.T) {
	b := NewBackend()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	g := buildGraph(t, 4, 4, drawgroup.DefaultStack())
	if err := b.Execute(g); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	cmds := b.LastCommands()
	want := []string{drawgroup.NameOpaque, drawgroup.NameTransparent, drawgroup.NameOverlay}
	if len(cmds) != len(want) {
		t.Fatalf("replayed %d commands, want %d", len(cmds), len(want))
	}
	for i, w := range want {
		if cmds[i].Group != w {
			t.Errorf("commands[%d].Group = %q, want %q", i, cmds[i].Group, w)
		}
	}
}

func TestExecuteGroupError(t *testing.T) {
	b := NewBackend()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	boom := errors.New("boom")
	failing := framegraph.DrawGroupFunc{
		GroupName: "failing",
		Fn:        func(framegraph.Recorder) error { return boom },
	}
	g := buildGraph(t, 4, 4, []framegraph.DrawGroup{failing})
	if err := b.Execute(g); !errors.Is(err, boom) {
		t.Errorf("Execute() error = %v, want wrapped group error", err)
	}
}

func TestExecuteNewGraphReallocates(t *testing.T) {
	b := NewBackend()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	small := buildGraph(t, 4, 4, drawgroup.DefaultStack())
	if err := b.Execute(small); err != nil {
		t.Fatalf("Execute(small) error = %v", err)
	}
	large := buildGraph(t, 16, 16, drawgroup.DefaultStack())
	if err := b.Execute(large); err != nil {
		t.Fatalf("Execute(large) error = %v", err)
	}

	frame := b.Frame()
	if frame.Bounds().Dx() != 16 || frame.Bounds().Dy() != 16 {
		t.Errorf("frame bounds = %v, want 16x16 after rebuild", frame.Bounds())
	}
	if b.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", b.Frames())
	}
}

func TestDrainIsSynchronous(t *testing.T) {
	b := NewBackend()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := b.Drain(); err != nil {
		t.Errorf("Drain() error = %v", err)
	}
}

func TestSessionOverSoftwareBackend(t *testing.T) {
	b := NewBackend()
	s, err := framegraph.NewSession(b)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	groups := drawgroup.DefaultStack()
	polls := []*framegraph.SurfaceDimensions{
		{Width: 800, Height: 600},
		{Width: 800, Height: 600},
		{Width: 800, Height: 600},
	}
	for i, p := range polls {
		if err := s.Frame(p, groups); err != nil {
			t.Fatalf("Frame() #%d error = %v", i+1, err)
		}
	}

	if b.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2 (no graph on poll #1)", b.Frames())
	}
	frame := b.Frame()
	if frame == nil {
		t.Fatal("Frame() = nil after executed frames")
	}
	if frame.Bounds().Dx() != 800 || frame.Bounds().Dy() != 600 {
		t.Errorf("presented frame bounds = %v, want 800x600", frame.Bounds())
	}
}
