// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// NodeID identifies a node within one GraphDescription. IDs are
// assigned in creation order, so an edge always points from a lower ID
// to a higher one; this is what makes created-before-reference and
// acyclicity checkable by simple ID comparison.
//
// IDs are only meaningful within the graph that issued them. They are
// never stable across rebuilds.
type NodeID int

// NoNode is the absent-node sentinel, used for the optional depth
// attachment of a pass.
const NoNode NodeID = -1

// NodeKind discriminates the node payloads of a GraphDescription.
type NodeKind uint8

const (
	// NodeImage is an attachment image resource.
	NodeImage NodeKind = iota
	// NodePass is a draw pass.
	NodePass
	// NodePresent is the terminal presentation step.
	NodePresent
)

func (k NodeKind) String() string {
	switch k {
	case NodeImage:
		return "image"
	case NodePass:
		return "pass"
	case NodePresent:
		return "present"
	default:
		return "unknown"
	}
}

// ImageKind distinguishes color from depth/stencil attachments.
type ImageKind uint8

const (
	// ImageColor is a color attachment.
	ImageColor ImageKind = iota
	// ImageDepth is a depth/stencil attachment.
	ImageDepth
)

func (k ImageKind) String() string {
	if k == ImageDepth {
		return "depth"
	}
	return "color"
}

// ClearValue holds the initial contents of an attachment. For color
// images only Color is meaningful; for depth images only Depth and
// Stencil are.
type ClearValue struct {
	Color   gputypes.Color
	Depth   float32
	Stencil uint32
}

// ClearColor returns a clear value for a color attachment.
func ClearColor(c gputypes.Color) ClearValue {
	return ClearValue{Color: c}
}

// ClearDepthStencil returns a clear value for a depth attachment.
func ClearDepthStencil(depth float32, stencil uint32) ClearValue {
	return ClearValue{Depth: depth, Stencil: stencil}
}

// ImageResource describes one attachment image. Resources are created
// fresh on every rebuild and never shared across graph versions; the
// execution backend owns the actual GPU allocation behind them.
type ImageResource struct {
	Kind   ImageKind
	Format gputypes.TextureFormat
	Extent gputypes.Extent3D
	Clear  ClearValue
}

// Pass is one draw pass. It references exactly one color image and
// zero-or-one depth image of the same build, and carries its draw
// groups in submission order: later groups draw over earlier ones
// within the pass, so an overlay group placed last always visually
// wins regardless of depth.
type Pass struct {
	DrawGroups []DrawGroup
	Color      NodeID
	Depth      NodeID // NoNode when the pass has no depth attachment
}

// PresentNode hands the finished color image to the display. It is the
// single terminal node of every graph.
type PresentNode struct {
	After  NodeID // the pass that must complete first
	Source NodeID // the color image to present
}

// Node is one vertex of a GraphDescription. Exactly one of Image,
// Pass, Present is non-nil, matching Kind.
type Node struct {
	ID      NodeID
	Kind    NodeKind
	Image   *ImageResource
	Pass    *Pass
	Present *PresentNode
}

// Edge is a dependency: To consumes a resource of, or must run after,
// From.
type Edge struct {
	From NodeID
	To   NodeID
}

// GraphDescription is the fully assembled frame graph for one surface
// configuration. It is ephemeral: a rebuild supersedes the previous
// description wholesale, and the execution backend retires the old
// graph's GPU resources once no in-flight frame references them.
//
// A GraphDescription is immutable once returned by a builder.
type GraphDescription struct {
	Nodes []Node
	Edges []Edge
}

// node returns the node with the given ID, or nil.
func (g *GraphDescription) node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.Nodes) {
		return nil
	}
	return &g.Nodes[id]
}

// Images returns the image nodes in creation order.
func (g *GraphDescription) Images() []*ImageResource {
	var imgs []*ImageResource
	for i := range g.Nodes {
		if g.Nodes[i].Kind == NodeImage {
			imgs = append(imgs, g.Nodes[i].Image)
		}
	}
	return imgs
}

// Passes returns the pass nodes in creation order.
func (g *GraphDescription) Passes() []*Pass {
	var passes []*Pass
	for i := range g.Nodes {
		if g.Nodes[i].Kind == NodePass {
			passes = append(passes, g.Nodes[i].Pass)
		}
	}
	return passes
}

// Present returns the terminal presentation node, or nil if the graph
// has none.
func (g *GraphDescription) Present() *PresentNode {
	for i := range g.Nodes {
		if g.Nodes[i].Kind == NodePresent {
			return g.Nodes[i].Present
		}
	}
	return nil
}

// Validate checks the structural invariants of the graph:
//
//   - node IDs match their position (creation order)
//   - every edge points from a lower ID to a higher one, which makes
//     the graph acyclic and guarantees every referenced resource was
//     created earlier in the same build
//   - at most one color and one depth image
//   - every pass references a color image, and a depth image or NoNode
//   - exactly one present node, terminal (no outgoing edges), sourcing
//     a color image and depending on a pass
//   - every non-present node has at least one outgoing edge (nothing
//     dangles)
//
// Graphs produced by GraphBuilder.Finish are validated already;
// Validate is exposed for backends that want to re-check a description
// before executing it.
func (g *GraphDescription) Validate() error {
	presents := 0
	colors := 0
	depths := 0

	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.ID != NodeID(i) {
			return fmt.Errorf("%w: node %d carries ID %d", ErrInvalidGraph, i, n.ID)
		}
		switch n.Kind {
		case NodeImage:
			if n.Image == nil {
				return fmt.Errorf("%w: image node %d has no resource", ErrInvalidGraph, n.ID)
			}
			if n.Image.Kind == ImageColor {
				colors++
			} else {
				depths++
			}
		case NodePass:
			if n.Pass == nil {
				return fmt.Errorf("%w: pass node %d has no pass", ErrInvalidGraph, n.ID)
			}
			if err := g.validatePass(n.ID, n.Pass); err != nil {
				return err
			}
		case NodePresent:
			if n.Present == nil {
				return fmt.Errorf("%w: present node %d has no payload", ErrInvalidGraph, n.ID)
			}
			presents++
			if err := g.validatePresent(n.ID, n.Present); err != nil {
				return err
			}
		}
	}

	if colors > 1 {
		return fmt.Errorf("%w: %d color images, want at most 1", ErrInvalidGraph, colors)
	}
	if depths > 1 {
		return fmt.Errorf("%w: %d depth images, want at most 1", ErrInvalidGraph, depths)
	}
	if presents != 1 {
		return fmt.Errorf("%w: %d present nodes, want exactly 1", ErrInvalidGraph, presents)
	}

	outgoing := make([]int, len(g.Nodes))
	for _, e := range g.Edges {
		if g.node(e.From) == nil || g.node(e.To) == nil {
			return fmt.Errorf("%w: edge %d->%d references missing node", ErrInvalidGraph, e.From, e.To)
		}
		if e.From >= e.To {
			return fmt.Errorf("%w: edge %d->%d violates creation order", ErrInvalidGraph, e.From, e.To)
		}
		outgoing[e.From]++
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Kind == NodePresent && outgoing[i] != 0 {
			return fmt.Errorf("%w: present node %d is not terminal", ErrInvalidGraph, n.ID)
		}
		if n.Kind != NodePresent && outgoing[i] == 0 {
			return fmt.Errorf("%w: %s node %d has no consumer", ErrInvalidGraph, n.Kind, n.ID)
		}
	}

	return nil
}

func (g *GraphDescription) validatePass(id NodeID, p *Pass) error {
	if len(p.DrawGroups) == 0 {
		return fmt.Errorf("%w: pass node %d has no draw groups", ErrInvalidGraph, id)
	}
	color := g.node(p.Color)
	if color == nil || color.Kind != NodeImage || color.Image.Kind != ImageColor {
		return fmt.Errorf("%w: pass node %d color attachment %d is not a color image", ErrInvalidGraph, id, p.Color)
	}
	if p.Depth != NoNode {
		depth := g.node(p.Depth)
		if depth == nil || depth.Kind != NodeImage || depth.Image.Kind != ImageDepth {
			return fmt.Errorf("%w: pass node %d depth attachment %d is not a depth image", ErrInvalidGraph, id, p.Depth)
		}
	}
	return nil
}

func (g *GraphDescription) validatePresent(id NodeID, p *PresentNode) error {
	after := g.node(p.After)
	if after == nil || after.Kind != NodePass {
		return fmt.Errorf("%w: present node %d dependency %d is not a pass", ErrInvalidGraph, id, p.After)
	}
	source := g.node(p.Source)
	if source == nil || source.Kind != NodeImage || source.Image.Kind != ImageColor {
		return fmt.Errorf("%w: present node %d source %d is not a color image", ErrInvalidGraph, id, p.Source)
	}
	return nil
}
