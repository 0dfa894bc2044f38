// Package drawgroup provides the layer variants of
// [framegraph.DrawGroup] and a replayable command recorder.
//
// The composition layer stacks groups in draw order; later groups draw
// over earlier ones within the same pass. The conventional stack is
// opaque content, then transparent content, then UI overlay, so the
// overlay always visually wins regardless of depth for 2D content:
//
//	groups := drawgroup.DefaultStack()
//
// Each variant is a distinct type dispatched through the DrawGroup
// interface; there is no inheritance and no shared base.
package drawgroup
