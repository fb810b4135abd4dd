// Package framegraph builds and executes a single frame's render graph: a
// directed acyclic dependency graph of passes and versioned virtual
// resources, culled down to exactly the work a final output actually
// needs before any GPU resource is created.
//
// # Overview
//
// A FrameGraph is built once per frame. Passes are declared with AddPass,
// each given a setup callback that reads and writes virtual resources
// through a Builder, and an execute callback that runs later against the
// real driver. Compile culls passes nothing reads, resolves every
// resource's usage flags and render-target discard behavior, and Execute
// creates, uses and destroys concrete GPU resources automatically.
//
// # Quick Start
//
//	fg := framegraph.NewFrameGraph(allocator)
//
//	type depthData struct {
//		depth framegraph.Handle
//	}
//	depth := framegraph.AddPass(fg, "depth",
//		func(b *framegraph.Builder, d *depthData) {
//			h := b.Create("depth", driver.TextureDescriptor{
//				Width: 1920, Height: 1080, Levels: 1, SampleCount: 1,
//			})
//			var err error
//			d.depth, err = b.Write(h, driver.TextureUsageDepthAttachment)
//			if err != nil {
//				// handle error
//			}
//		},
//		func(res *framegraph.Resources, d *depthData, api driver.DriverApi) {
//			// issue draw calls against api
//		},
//	)
//
//	fg.Present(depth.depth)
//	if err := fg.Compile(); err != nil {
//		// handle error
//	}
//	if err := fg.Execute(api); err != nil {
//		// handle error
//	}
//
// # Architecture
//
// The package is organized around:
//   - DependencyGraph (graph.go): the generic node/edge graph and its
//     reverse-reachability culling algorithm.
//   - virtualResource / resourceNode (resource.go, resourcenode.go): the
//     versioned resource model, one resourceNode per write.
//   - passRecord / Builder (pass.go, builder.go): pass declaration and the
//     read/write/create/import API exposed to setup callbacks.
//   - renderTargetData (renderpass.go): render-target discard-flag
//     inference and viewport resolution.
//   - compile.go / framegraph.go: the per-frame orchestration tying the
//     above together into Compile and Execute.
//   - driver (driver/): the boundary to the host application's GPU
//     backend — ResourceAllocator creates and destroys concrete
//     resources, DriverApi carries the commands a pass issues.
//
// # Thread Safety
//
// A FrameGraph is not safe for concurrent use. Passes are expected to be
// declared from a single goroutine while building a frame, matching how a
// host application typically assembles render passes. SetLogger and
// Logger are safe for concurrent use independently of any FrameGraph
// value.
//
// # References
//
// The pass/resource/culling model follows the frame graph design used by
// Filament's fg2 renderer: a bipartite dependency graph of passes and
// versioned resource nodes, culled by reference counting before any
// device resource is created.
package framegraph
