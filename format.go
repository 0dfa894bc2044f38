package framegraph

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// FormatCache computes and memoizes the presentation surface's pixel
// format once per session. The format is assumed not to change for the
// life of the running session; there is deliberately no invalidation.
//
// The zero value is ready to use. FormatCache is NOT safe for
// concurrent use; like the tracker, it is exclusively owned by the
// rendering goroutine.
type FormatCache struct {
	format gputypes.TextureFormat
	known  bool
}

// Format returns the surface pixel format, querying the backend on the
// first call and returning the memoized value afterwards. A failed
// query returns ErrDeviceQuery (wrapped) and is not memoized: no
// usable graph can be produced, and the host must reselect a backend
// or restart.
func (c *FormatCache) Format(b ExecutionBackend, surface SurfaceHandle) (gputypes.TextureFormat, error) {
	if c.known {
		return c.format, nil
	}

	format, err := b.SurfaceFormat(surface)
	if err != nil {
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: backend %q: %w", ErrDeviceQuery, b.Name(), err)
	}

	c.format = format
	c.known = true
	Logger().Debug("framegraph: surface format cached", "format", format, "backend", b.Name())
	return format, nil
}
