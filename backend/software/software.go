// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software provides a CPU execution backend for frame graphs.
//
// The backend keeps each graph's attachments as plain CPU buffers
// (image.RGBA for color, float32/uint8 planes for depth/stencil),
// replays draw groups through a command recorder, and "presents" by
// copying the color attachment into a front buffer readable via
// [Backend.Frame]. It is the default for tests and headless use.
package software

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/backend"
	"github.com/gogpu/framegraph/drawgroup"
	"github.com/gogpu/gputypes"
)

// init registers the software backend on package import.
func init() {
	backend.Register(backend.BackendSoftware, func() framegraph.ExecutionBackend {
		return NewBackend()
	})
}

// attachments holds the CPU-side resources of one graph version.
type attachments struct {
	color   *image.RGBA
	depth   []float32
	stencil []uint8
}

// Backend is the CPU execution backend.
//
// Backend is NOT safe for concurrent use; Execute is called at most
// once per frame from the rendering goroutine.
type Backend struct {
	initialized bool

	// Resources of the graph currently being executed. Replaced when a
	// new graph version arrives; execution is synchronous, so the old
	// version has no in-flight references by then.
	graph *framegraph.GraphDescription
	att   attachments

	front    *image.RGBA
	recorder *drawgroup.CommandRecorder
	frames   int
}

// NewBackend creates a new software execution backend.
func NewBackend() *Backend {
	return &Backend{
		recorder: drawgroup.NewCommandRecorder(8),
	}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendSoftware
}

// Init initializes the backend.
func (b *Backend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *Backend) Close() {
	b.graph = nil
	b.att = attachments{}
	b.front = nil
	b.initialized = false
}

// SurfaceFormat returns the CPU target format. The surface handle is
// not inspected: every software surface is RGBA8.
func (b *Backend) SurfaceFormat(framegraph.SurfaceHandle) (gputypes.TextureFormat, error) {
	if !b.initialized {
		return gputypes.TextureFormatUndefined, backend.ErrNotInitialized
	}
	return gputypes.TextureFormatRGBA8Unorm, nil
}

// Execute runs the graph once: allocate attachments for a new graph
// version, clear them, replay the pass's draw groups in order, and
// present the color image to the front buffer.
func (b *Backend) Execute(g *framegraph.GraphDescription) error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	if g == nil {
		return fmt.Errorf("software: nil graph")
	}

	if g != b.graph {
		if err := g.Validate(); err != nil {
			return err
		}
		if err := b.realize(g); err != nil {
			return err
		}
		b.graph = g
	}

	b.clear(g)

	b.recorder.Reset()
	for _, p := range g.Passes() {
		for _, group := range p.DrawGroups {
			if err := group.Emit(b.recorder); err != nil {
				return fmt.Errorf("software: draw group %q: %w", group.Name(), err)
			}
		}
	}

	b.present(g)
	b.frames++
	return nil
}

// realize allocates CPU buffers for the graph's image nodes.
func (b *Backend) realize(g *framegraph.GraphDescription) error {
	var att attachments
	for _, img := range g.Images() {
		w := int(img.Extent.Width)
		h := int(img.Extent.Height)
		switch img.Kind {
		case framegraph.ImageColor:
			att.color = image.NewRGBA(image.Rect(0, 0, w, h))
		case framegraph.ImageDepth:
			att.depth = make([]float32, w*h)
			att.stencil = make([]uint8, w*h)
		}
	}
	if att.color == nil {
		return fmt.Errorf("software: graph has no color image")
	}
	b.att = att

	framegraph.Logger().Debug("software: attachments realized",
		"width", att.color.Bounds().Dx(), "height", att.color.Bounds().Dy())
	return nil
}

// clear applies each image's clear value.
func (b *Backend) clear(g *framegraph.GraphDescription) {
	for _, img := range g.Images() {
		switch img.Kind {
		case framegraph.ImageColor:
			fill(b.att.color, rgba8(img.Clear.Color))
		case framegraph.ImageDepth:
			for i := range b.att.depth {
				b.att.depth[i] = img.Clear.Depth
			}
			//nolint:gosec // G115: stencil clear values are 8-bit by contract
			s := uint8(img.Clear.Stencil)
			for i := range b.att.stencil {
				b.att.stencil[i] = s
			}
		}
	}
}

// present copies the color attachment into the front buffer.
func (b *Backend) present(g *framegraph.GraphDescription) {
	p := g.Present()
	if p == nil {
		return
	}
	bounds := b.att.color.Bounds()
	if b.front == nil || b.front.Bounds() != bounds {
		b.front = image.NewRGBA(bounds)
	}
	draw.Draw(b.front, bounds, b.att.color, bounds.Min, draw.Src)
}

// Drain blocks until no in-flight frame references previously executed
// graphs. Software execution is synchronous, so there is never an
// in-flight frame.
func (b *Backend) Drain() error {
	return nil
}

// Frame returns the most recently presented frame, or nil before the
// first Execute. The returned image is reused across frames.
func (b *Backend) Frame() *image.RGBA {
	return b.front
}

// LastCommands returns the draw commands replayed by the most recent
// Execute, in emission order.
func (b *Backend) LastCommands() []framegraph.DrawCommand {
	return b.recorder.Commands()
}

// Frames returns the number of successful Execute calls.
func (b *Backend) Frames() int {
	return b.frames
}

// rgba8 converts a normalized float color to 8-bit RGBA.
func rgba8(c gputypes.Color) color.RGBA {
	return color.RGBA{
		R: channel8(c.R),
		G: channel8(c.G),
		B: channel8(c.B),
		A: channel8(c.A),
	}
}

// channel8 clamps and quantizes one normalized channel.
func channel8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// fill sets every pixel of img to c.
func fill(img *image.RGBA, c color.RGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// Ensure Backend implements ExecutionBackend.
var _ framegraph.ExecutionBackend = (*Backend)(nil)
