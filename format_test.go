package framegraph

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestFormatCacheMemoizes(t *testing.T) {
	b := newStubBackend()
	var cache FormatCache

	for i := 0; i < 3; i++ {
		format, err := cache.Format(b, stubSurface(1))
		if err != nil {
			t.Fatalf("Format() call %d error = %v", i+1, err)
		}
		if format != gputypes.TextureFormatBGRA8Unorm {
			t.Errorf("Format() = %v, want BGRA8Unorm", format)
		}
	}

	if b.queries != 1 {
		t.Errorf("backend queried %d times, want exactly 1", b.queries)
	}
}

func TestFormatCacheQueryError(t *testing.T) {
	b := newStubBackend()
	b.queryErr = errors.New("device lost")
	var cache FormatCache

	_, err := cache.Format(b, stubSurface(1))
	if !errors.Is(err, ErrDeviceQuery) {
		t.Fatalf("Format() error = %v, want ErrDeviceQuery", err)
	}

	// Errors are not memoized: the host restarts or reselects, and a
	// later call must hit the backend again.
	b.queryErr = nil
	format, err := cache.Format(b, stubSurface(1))
	if err != nil {
		t.Fatalf("Format() after recovery error = %v", err)
	}
	if format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want BGRA8Unorm", format)
	}
	if b.queries != 2 {
		t.Errorf("backend queried %d times, want 2", b.queries)
	}
}
