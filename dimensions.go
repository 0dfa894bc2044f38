package framegraph

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// SurfaceDimensions is a per-frame snapshot of the presentation surface
// size in pixels. The windowing layer publishes a new snapshot each
// frame; a nil *SurfaceDimensions means the surface does not exist yet.
//
// SurfaceDimensions is a value type; snapshots are never mutated after
// creation.
type SurfaceDimensions struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (d SurfaceDimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// Extent returns the dimensions as a 2D texture extent
// (one array layer).
func (d SurfaceDimensions) Extent() gputypes.Extent3D {
	//nolint:gosec // G115: callers validate dimensions positive before use
	return gputypes.Extent3D{
		Width:              uint32(d.Width),
		Height:             uint32(d.Height),
		DepthOrArrayLayers: 1,
	}
}

// String returns the dimensions as "WxH".
func (d SurfaceDimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}
