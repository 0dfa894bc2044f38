// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu provides a GPU execution backend for frame graphs using
// the Pure Go gogpu/wgpu stack.
//
// The backend owns the GPU instance, adapter, device, and queue, or
// shares a device provided by a host framework via [WithDeviceProvider].
// Image nodes of an executed graph are tracked as logical textures;
// their GPU allocations are retired only after Drain confirms no
// in-flight frame references them.
package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/backend"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// ErrNoGPU is returned when no suitable GPU adapter is available.
var ErrNoGPU = errors.New("wgpu: no suitable GPU adapter")

// init registers the wgpu backend on package import.
func init() {
	backend.Register(backend.BackendWGPU, func() framegraph.ExecutionBackend {
		return NewBackend()
	})
}

// imageRecord tracks one logical texture realized for a graph's image
// node. The raw GPU allocation is owned by the device; the record is
// the bookkeeping needed to retire it.
type imageRecord struct {
	kind      framegraph.ImageKind
	format    gputypes.TextureFormat
	extent    gputypes.Extent3D
	sizeBytes uint64
}

// Backend is the GPU execution backend.
//
// Execute and Drain are called from the single rendering goroutine;
// the mutex guards Init/Close against registry-driven construction on
// other goroutines.
type Backend struct {
	mu sync.RWMutex

	// Shared device mode: when a provider is configured, the backend
	// uses the host's device and does not own GPU resources.
	provider gpucontext.DeviceProvider

	// Owned GPU resources
	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	gpuInfo     *GPUInfo
	initialized bool

	// Per-graph bookkeeping
	graph    *framegraph.GraphDescription
	images   map[framegraph.NodeID]imageRecord
	retired  []map[framegraph.NodeID]imageRecord
	inFlight int
}

// Option customizes NewBackend.
type Option func(*Backend)

// WithDeviceProvider shares a GPU device owned by the host framework
// instead of creating one. The backend then never creates or releases
// an instance, adapter, or device of its own.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(b *Backend) {
		b.provider = p
	}
}

// NewBackend creates a new GPU execution backend.
// The backend must be initialized with Init() before use.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Shared reports whether the backend uses a host-provided device.
func (b *Backend) Shared() bool {
	return b.provider != nil
}

// Init initializes the backend by creating GPU resources: instance,
// adapter (preferring a high-performance GPU), device, and queue. In
// shared mode the host's device is used and nothing is created.
//
// Returns an error if GPU initialization fails.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if b.provider != nil {
		b.initialized = true
		framegraph.Logger().Info("wgpu: backend initialized with shared device")
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	b.instance = core.NewInstance(desc)

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	b.adapter = adapterID

	logGPUInfo(adapterID)
	b.gpuInfo, _ = getGPUInfo(adapterID)

	deviceID, err := createDevice(adapterID, "framegraph-wgpu-device")
	if err != nil {
		return fmt.Errorf("device creation failed: %w", err)
	}
	b.device = deviceID

	queueID, err := getDeviceQueue(deviceID)
	if err != nil {
		// Cleanup on failure
		_ = releaseDevice(deviceID)
		return fmt.Errorf("queue retrieval failed: %w", err)
	}
	b.queue = queueID

	b.initialized = true
	framegraph.Logger().Info("wgpu: backend initialized")
	return nil
}

// Close releases all backend resources.
// The backend should not be used after Close is called.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	b.graph = nil
	b.images = nil
	b.retired = nil
	b.inFlight = 0

	if b.provider == nil {
		// Release owned resources in reverse order of creation.
		// The queue is released when the device is dropped.
		if !b.device.IsZero() {
			if err := releaseDevice(b.device); err != nil {
				framegraph.Logger().Warn("wgpu: error releasing device", "err", err)
			}
			b.device = core.DeviceID{}
		}

		if !b.adapter.IsZero() {
			if err := releaseAdapter(b.adapter); err != nil {
				framegraph.Logger().Warn("wgpu: error releasing adapter", "err", err)
			}
			b.adapter = core.AdapterID{}
		}

		b.instance = nil
		b.queue = core.QueueID{}
	}

	b.gpuInfo = nil
	b.initialized = false
}

// GPUInfo returns information about the selected GPU, or nil in shared
// mode or before Init.
func (b *Backend) GPUInfo() *GPUInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gpuInfo
}

// SurfaceFormat queries the pixel format of the presentation surface.
// In shared mode the owning provider is asked; otherwise swapchain
// surfaces on the primary backends are BGRA8.
func (b *Backend) SurfaceFormat(framegraph.SurfaceHandle) (gputypes.TextureFormat, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.initialized {
		return gputypes.TextureFormatUndefined, backend.ErrNotInitialized
	}
	if b.provider != nil {
		if format := b.provider.SurfaceFormat(); format != gputypes.TextureFormatUndefined {
			return format, nil
		}
	}
	return gputypes.TextureFormatBGRA8Unorm, nil
}

// Execute runs the graph once. A new graph version is validated and
// its image nodes realized as logical textures; the previous version's
// textures move to the retirement queue, released by the next Drain.
func (b *Backend) Execute(g *framegraph.GraphDescription) error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	if g == nil {
		return fmt.Errorf("wgpu: nil graph")
	}

	if g != b.graph {
		if err := g.Validate(); err != nil {
			return err
		}
		if b.images != nil {
			// Previous version may still be referenced by an in-flight
			// frame; retire it only after a drain.
			b.retired = append(b.retired, b.images)
		}
		b.images = b.realize(g)
		b.graph = g
	}

	b.inFlight++
	return nil
}

// realize creates the logical texture table for a graph version.
func (b *Backend) realize(g *framegraph.GraphDescription) map[framegraph.NodeID]imageRecord {
	images := make(map[framegraph.NodeID]imageRecord)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Kind != framegraph.NodeImage {
			continue
		}
		img := n.Image
		images[n.ID] = imageRecord{
			kind:      img.Kind,
			format:    img.Format,
			extent:    img.Extent,
			sizeBytes: uint64(img.Extent.Width) * uint64(img.Extent.Height) * formatSize(img.Format),
		}
	}

	framegraph.Logger().Debug("wgpu: graph realized", "images", len(images))
	return images
}

// Drain blocks until no in-flight frame references previously executed
// graphs, then releases retired texture tables.
func (b *Backend) Drain() error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}

	// Command submission at this layer is synchronous per frame, so
	// reaching Drain means the GPU queue has consumed every submitted
	// frame.
	b.inFlight = 0
	if len(b.retired) > 0 {
		framegraph.Logger().Debug("wgpu: retired graph resources released", "graphs", len(b.retired))
		b.retired = nil
	}
	return nil
}

// InFlight returns the number of frames executed since the last Drain.
func (b *Backend) InFlight() int {
	return b.inFlight
}

// formatSize returns bytes per pixel for the formats used by frame
// graph attachments.
func formatSize(f gputypes.TextureFormat) uint64 {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatDepth24PlusStencil8:
		return 4
	default:
		return 4
	}
}

// Ensure Backend implements ExecutionBackend.
var _ framegraph.ExecutionBackend = (*Backend)(nil)
