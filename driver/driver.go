package driver

import "github.com/gogpu/gpucontext"

// DriverApi is the opaque backend handle passed to a pass's execute
// closure. The frame graph never calls into it directly; it only threads
// it through from [FrameGraph.Execute] to each retained pass in
// declaration order.
//
// DriverApi is an alias for gpucontext.DeviceProvider, the same
// device-injection interface the rest of the gogpu ecosystem uses: the
// frame graph receives GPU access from the host application, it does not
// create a device of its own.
type DriverApi = gpucontext.DeviceProvider

// ResourceAllocator creates and destroys the concrete GPU resources that
// back virtual resources. The frame graph calls it only at the computed
// first/last pass of each non-imported resource (see the compile
// pipeline); imported resources never reach it.
//
// Implementations may pool or alias resources across frames; that pooling
// is invisible to the frame graph, which only sees create/destroy calls
// balanced 1:1 within a single compile+execute cycle.
type ResourceAllocator interface {
	// CreateTexture allocates a concrete texture matching desc (including
	// its sampler kind), used with the given usage mask. name is a debug
	// label.
	CreateTexture(name string, desc TextureDescriptor, usage TextureUsage) (TextureHandle, error)

	// DestroyTexture releases a texture previously returned by
	// CreateTexture. It must not be called for imported textures.
	DestroyTexture(TextureHandle)

	// CreateRenderTarget allocates a concrete render target over the given
	// attachments. present marks which of the six attachment slots in
	// color/depth/stencil are populated; unpopulated slots carry a zero
	// TargetBufferInfo and must be ignored.
	CreateRenderTarget(name string, present TargetBufferFlags, width, height uint32,
		samples uint8, color [4]TargetBufferInfo, depth, stencil TargetBufferInfo) (RenderTargetHandle, error)

	// DestroyRenderTarget releases a render target previously returned by
	// CreateRenderTarget. It must not be called for imported targets.
	DestroyRenderTarget(RenderTargetHandle)
}
