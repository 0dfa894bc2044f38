package framegraph

// BlendMode selects how a draw batch composites over the attachment.
type BlendMode uint8

const (
	// BlendNone overwrites the destination (opaque geometry).
	BlendNone BlendMode = iota
	// BlendAlpha composites with premultiplied alpha.
	BlendAlpha
)

func (m BlendMode) String() string {
	if m == BlendAlpha {
		return "alpha"
	}
	return "none"
}

// DrawCommand is one batch of drawing work recorded during pass
// execution. The command describes how the batch is drawn, not what:
// content semantics belong to the composition layer.
type DrawCommand struct {
	// Group is the name of the emitting draw group.
	Group string
	// Blend selects the compositing mode for the batch.
	Blend BlendMode
	// DepthTest enables depth testing for the batch.
	DepthTest bool
}

// Recorder receives draw commands emitted by draw groups during pass
// execution. Execution backends provide the implementation; the
// drawgroup package ships a replayable one for CPU execution and tests.
type Recorder interface {
	// Record appends one command to the pass's command stream.
	// Commands are replayed in the order recorded.
	Record(cmd DrawCommand)
}

// DrawGroup emits draw commands for one layer of a pass. Groups are
// supplied by the composition layer in submission order; the pass
// preserves that order exactly, so later groups draw over earlier
// ones. The typical stack is opaque content, then transparent content,
// then UI overlay.
//
// Implementations are dispatched through this interface; see the
// drawgroup package for the layer variants.
type DrawGroup interface {
	// Name identifies the group in logs and recorded commands.
	Name() string

	// Emit records the group's draw commands into rec.
	Emit(rec Recorder) error
}

// DrawGroupFunc adapts a function to the DrawGroup interface.
type DrawGroupFunc struct {
	GroupName string
	Fn        func(rec Recorder) error
}

// Name returns the group name.
func (f DrawGroupFunc) Name() string { return f.GroupName }

// Emit invokes the wrapped function.
func (f DrawGroupFunc) Emit(rec Recorder) error { return f.Fn(rec) }

// Ensure DrawGroupFunc implements DrawGroup.
var _ DrawGroup = DrawGroupFunc{}
