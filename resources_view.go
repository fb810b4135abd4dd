package framegraph

import "github.com/gogpu/framegraph/driver"

// Resources is the read-only view of the frame graph a pass's execute
// callback uses to turn the handles it captured during setup into
// concrete GPU resources and render pass parameters. It is only valid for
// the duration of the execute call it was handed to.
type Resources struct {
	fg   *FrameGraph
	pass *passRecord
}

// Get returns the concrete texture behind h. If h addresses a resource
// that was culled out of the graph (unreachable from Present or
// SideEffect), the zero TextureHandle is returned instead of an error:
// the caller's pass survived culling only because of some other output,
// and is expected to skip work tied to a culled input rather than treat
// it as a hard failure.
func (res *Resources) Get(h Handle) driver.TextureHandle {
	vr, err := res.fg.resourceForHandle(h)
	if err != nil {
		return driver.InvalidTextureHandle
	}
	return vr.concreteHandle()
}

// GetDescriptor returns the texture descriptor of the resource h
// addresses.
func (res *Resources) GetDescriptor(h Handle) driver.TextureDescriptor {
	vr, err := res.fg.resourceForHandle(h)
	if err != nil {
		return driver.TextureDescriptor{}
	}
	return vr.descriptor
}

// GetSubResourceDescriptor returns the mip level / array layer h addresses
// within its parent, or the zero value if h is not a subresource.
func (res *Resources) GetSubResourceDescriptor(h Handle) driver.SubResourceDescriptor {
	vr, err := res.fg.resourceForHandle(h)
	if err != nil || !vr.isSubresource {
		return driver.SubResourceDescriptor{}
	}
	return vr.subDescriptor
}

// GetUsage returns the usage flags compile resolved for the resource h
// addresses: the OR of every edge that survived culling, across every
// generation, plus any subresource's rolled-up usage.
func (res *Resources) GetUsage(h Handle) driver.TextureUsage {
	vr, err := res.fg.resourceForHandle(h)
	if err != nil {
		return 0
	}
	return vr.usage
}

// GetRenderPassInfo returns the resolved clear/discard/viewport parameters
// and concrete render target for the render target declared with the
// given id (RenderTarget.ID, as returned by Builder.UseAsRenderTarget).
func (res *Resources) GetRenderPassInfo(id uint32) (driver.RenderPassParams, driver.RenderTargetHandle) {
	if int(id) >= len(res.pass.renderTargets) {
		return driver.RenderPassParams{}, driver.InvalidRenderTargetHandle
	}
	rt := res.pass.renderTargets[id]
	return rt.params, rt.concreteTarget
}
