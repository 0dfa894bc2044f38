// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// DepthFormat is the fixed 32-bit depth/stencil format used for the
// depth attachment of every graph version.
const DepthFormat = gputypes.TextureFormatDepth24PlusStencil8

// DefaultClearColor is the background color the color attachment is
// cleared to at the start of every frame.
var DefaultClearColor = gputypes.Color{R: 0.34, G: 0.36, B: 0.52, A: 1.0}

// GraphBuilder assembles a GraphDescription declaratively: resources
// first, then the pass that consumes them, then the presentation step.
// Node IDs are issued in creation order, so a resource must exist
// before anything can reference it.
//
// GraphBuilder is NOT safe for concurrent use. A builder is used for
// one graph and discarded.
type GraphBuilder struct {
	nodes []Node
	edges []Edge
}

// NewGraphBuilder creates an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		// One color, one depth, one pass, one present.
		nodes: make([]Node, 0, 4),
		edges: make([]Edge, 0, 4),
	}
}

// CreateImage declares an attachment image and returns its ID.
func (b *GraphBuilder) CreateImage(kind ImageKind, format gputypes.TextureFormat, extent gputypes.Extent3D, clear ClearValue) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		ID:   id,
		Kind: NodeImage,
		Image: &ImageResource{
			Kind:   kind,
			Format: format,
			Extent: extent,
			Clear:  clear,
		},
	})
	return id
}

// AddPass declares a draw pass over the given attachments. Pass depth
// as NoNode for a pass without a depth attachment. The draw groups are
// carried in the exact supplied order.
func (b *GraphBuilder) AddPass(groups []DrawGroup, color, depth NodeID) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		ID:   id,
		Kind: NodePass,
		Pass: &Pass{
			DrawGroups: groups,
			Color:      color,
			Depth:      depth,
		},
	})
	b.edges = append(b.edges, Edge{From: color, To: id})
	if depth != NoNode {
		b.edges = append(b.edges, Edge{From: depth, To: id})
	}
	return id
}

// AddPresent declares the terminal presentation node: it runs after
// the given pass and sources the given color image.
func (b *GraphBuilder) AddPresent(after, source NodeID) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		ID:      id,
		Kind:    NodePresent,
		Present: &PresentNode{After: after, Source: source},
	})
	b.edges = append(b.edges, Edge{From: after, To: id})
	b.edges = append(b.edges, Edge{From: source, To: id})
	return id
}

// Finish validates and returns the assembled graph. The builder must
// not be reused afterwards.
func (b *GraphBuilder) Finish() (*GraphDescription, error) {
	g := &GraphDescription{Nodes: b.nodes, Edges: b.edges}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// BuildOption customizes Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	clearColor gputypes.Color
}

// WithClearColor overrides the background color the color attachment
// is cleared to.
func WithClearColor(c gputypes.Color) BuildOption {
	return func(cfg *buildConfig) {
		cfg.clearColor = c
	}
}

// Build constructs the standard frame graph for the given surface
// configuration: a color image in the surface format, a depth image,
// one pass drawing the supplied groups in order, and a present node
// sourcing the color image.
//
// Build fails with ErrInvalidDimensions if either dimension is zero or
// negative, and with ErrEmptyDrawGroups if no draw groups are
// supplied. Both failures leave the caller's previous graph in use;
// retry on a later frame once the inputs are valid.
//
// The result is acyclic and every referenced resource was created
// earlier within the same call. Calling Build twice with identical
// inputs yields graphs with identical topology; only handle identity
// differs once a backend executes them.
func Build(dims SurfaceDimensions, format gputypes.TextureFormat, groups []DrawGroup, opts ...BuildOption) (*GraphDescription, error) {
	if !dims.Valid() {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, dims.Width, dims.Height)
	}
	if len(groups) == 0 {
		return nil, ErrEmptyDrawGroups
	}

	cfg := buildConfig{clearColor: DefaultClearColor}
	for _, opt := range opts {
		opt(&cfg)
	}

	extent := dims.Extent()

	b := NewGraphBuilder()
	color := b.CreateImage(ImageColor, format, extent, ClearColor(cfg.clearColor))
	depth := b.CreateImage(ImageDepth, DepthFormat, extent, ClearDepthStencil(1.0, 0))
	pass := b.AddPass(groups, color, depth)
	b.AddPresent(pass, color)

	g, err := b.Finish()
	if err != nil {
		return nil, err
	}

	Logger().Debug("framegraph: graph built",
		"dims", dims, "format", format, "groups", len(groups), "nodes", len(g.Nodes))
	return g, nil
}
