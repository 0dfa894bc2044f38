// Package framegraph decides when a frame graph must be rebuilt in
// response to presentation-surface size changes, and declaratively
// constructs that graph: attachment images, one draw pass, and a
// presentation node.
//
// # Overview
//
// A frame graph is an ephemeral DAG describing one frame's rendering:
// which images exist, which pass draws into them, and how the finished
// color image reaches the display. The graph is rebuilt whenever the
// surface size changes, and executed once per frame by an execution
// backend (see the backend subpackages).
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/framegraph"
//	    "github.com/gogpu/framegraph/drawgroup"
//	    "github.com/gogpu/framegraph/backend/software"
//	)
//
//	sess, _ := framegraph.NewSession(software.NewBackend())
//	groups := drawgroup.DefaultStack()
//
//	for running {
//	    dims := pollWindowDimensions() // *framegraph.SurfaceDimensions
//	    if err := sess.Frame(dims, groups); err != nil {
//	        // handle
//	    }
//	}
//	sess.Close()
//
// # Rebuild debounce
//
// Interactive resizing emits many transient sizes while the user drags.
// Rebuilding GPU resources on every one is wasteful and stutters, so a
// rebuild is signaled only once the same dimensions are observed on two
// consecutive polls. See [RebuildTracker].
//
// # Errors
//
// Build inputs are validated ([ErrInvalidDimensions], [ErrEmptyDrawGroups]);
// these fail the current build attempt only and the previous graph stays
// in use. A failed surface-format query ([ErrDeviceQuery]) is a hard
// failure: no usable graph can ever be produced without a format.
// A false result from [RebuildTracker.ShouldRebuild] is a normal outcome,
// not an error.
//
// # Architecture
//
// The library is organized into:
//   - Public API: RebuildTracker, GraphBuilder, Build, Session, FormatCache
//   - drawgroup: layer-variant draw groups and a replayable recorder
//   - backend: execution backend registry
//   - backend/software, backend/wgpu: CPU and GPU executors
package framegraph
