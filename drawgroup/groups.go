package drawgroup

import (
	"github.com/gogpu/framegraph"
)

// Group name constants.
const (
	// NameOpaque is the name of the opaque layer group.
	NameOpaque = "opaque"
	// NameTransparent is the name of the transparent layer group.
	NameTransparent = "transparent"
	// NameOverlay is the name of the UI overlay group.
	NameOverlay = "overlay"
)

// Opaque draws fully opaque content with depth testing. It goes first
// in the stack so transparent content and the overlay composite over
// it.
type Opaque struct{}

// Name returns the group identifier.
func (Opaque) Name() string { return NameOpaque }

// Emit records one opaque batch: no blending, depth tested.
func (Opaque) Emit(rec framegraph.Recorder) error {
	rec.Record(framegraph.DrawCommand{
		Group:     NameOpaque,
		Blend:     framegraph.BlendNone,
		DepthTest: true,
	})
	return nil
}

// Transparent draws alpha-blended content. It is ordered after the
// opaque group and relies on submission order rather than the depth
// buffer for correct compositing.
type Transparent struct{}

// Name returns the group identifier.
func (Transparent) Name() string { return NameTransparent }

// Emit records one transparent batch: alpha blended, no depth test.
func (Transparent) Emit(rec framegraph.Recorder) error {
	rec.Record(framegraph.DrawCommand{
		Group:     NameTransparent,
		Blend:     framegraph.BlendAlpha,
		DepthTest: false,
	})
	return nil
}

// Overlay draws the UI layer. It goes last so UI content always
// visually wins, regardless of depth.
type Overlay struct{}

// Name returns the group identifier.
func (Overlay) Name() string { return NameOverlay }

// Emit records one overlay batch: alpha blended, no depth test.
func (Overlay) Emit(rec framegraph.Recorder) error {
	rec.Record(framegraph.DrawCommand{
		Group:     NameOverlay,
		Blend:     framegraph.BlendAlpha,
		DepthTest: false,
	})
	return nil
}

// DefaultStack returns the conventional draw order: opaque, then
// transparent, then overlay.
func DefaultStack() []framegraph.DrawGroup {
	return []framegraph.DrawGroup{Opaque{}, Transparent{}, Overlay{}}
}

// Compile-time interface checks.
var (
	_ framegraph.DrawGroup = Opaque{}
	_ framegraph.DrawGroup = Transparent{}
	_ framegraph.DrawGroup = Overlay{}
)
