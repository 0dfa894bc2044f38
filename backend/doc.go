// Package backend provides the execution backend registry.
//
// An execution backend accepts a [framegraph.GraphDescription] once
// per frame and executes it; it owns the actual GPU resource
// allocation and destruction behind the graph's image nodes.
//
// Backends register themselves on import:
//
//	import (
//	    _ "github.com/gogpu/framegraph/backend/software"
//	    _ "github.com/gogpu/framegraph/backend/wgpu"
//	)
//
//	b := backend.Default() // wgpu if available, software otherwise
package backend
