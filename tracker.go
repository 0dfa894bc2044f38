package framegraph

// trackerState names the debounce states of a RebuildTracker.
type trackerState uint8

const (
	// trackerEmpty: no dimensions observed yet.
	trackerEmpty trackerState = iota

	// trackerClean: the cached dimensions are confirmed and the current
	// graph matches them. No rebuild is owed.
	trackerClean

	// trackerPending: the dimensions changed since the last rebuild.
	// A rebuild is owed, but is signaled only once the new size is
	// confirmed by a second consecutive equal poll.
	trackerPending
)

func (s trackerState) String() string {
	switch s {
	case trackerEmpty:
		return "empty"
	case trackerClean:
		return "clean"
	case trackerPending:
		return "pending"
	default:
		return "unknown"
	}
}

// RebuildTracker decides, frame by frame, whether the frame graph must
// be rebuilt in response to surface size changes. It filters out the
// transient intermediate sizes seen during interactive resizing by
// requiring the same dimensions on two consecutive polls before
// signaling a rebuild. No timers are involved; the debounce is driven
// purely by the poll sequence.
//
// Known property, not a defect: if the dimensions oscillate between two
// distinct values on every poll, the rebuild is deferred indefinitely.
//
// The zero value is ready to use. RebuildTracker is NOT safe for
// concurrent use; it is exclusively owned by the rendering goroutine.
type RebuildTracker struct {
	state trackerState
	dims  SurfaceDimensions
}

// ShouldRebuild consumes one dimension snapshot and reports whether a
// rebuild is due.
//
// A nil snapshot (surface not yet created) returns false and changes no
// state. A snapshot differing from the cached dimensions records the
// new size, marks a rebuild owed, and returns false: the size must be
// confirmed by the next poll. An unchanged snapshot returns true while
// a rebuild is owed.
//
// On a true result the caller must perform the rebuild and, only on
// success, call MarkRebuilt. Until then ShouldRebuild keeps returning
// true for stable dimensions.
func (t *RebuildTracker) ShouldRebuild(dims *SurfaceDimensions) bool {
	if dims == nil {
		return false
	}

	if t.state == trackerEmpty || *dims != t.dims {
		Logger().Debug("framegraph: dimensions changed",
			"from", t.dims, "to", *dims, "state", t.state)
		t.dims = *dims
		t.state = trackerPending
		return false
	}

	return t.state == trackerPending
}

// MarkRebuilt clears the owed rebuild after a successful graph rebuild
// and submission. Calling it without an owed rebuild is a no-op.
func (t *RebuildTracker) MarkRebuilt() {
	if t.state == trackerPending {
		t.state = trackerClean
	}
}

// Dimensions returns the most recently observed surface dimensions.
// The second result is false before any snapshot has been observed.
func (t *RebuildTracker) Dimensions() (SurfaceDimensions, bool) {
	return t.dims, t.state != trackerEmpty
}
