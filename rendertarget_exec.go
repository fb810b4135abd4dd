package framegraph

import (
	"log/slog"

	"github.com/gogpu/framegraph/driver"
)

// devirtualizeRenderTargets creates the concrete render target for every
// render target this pass declared. Imported render targets skip
// allocator-side creation entirely: the host already built them.
func (fg *FrameGraph) devirtualizeRenderTargets(pass *passRecord) {
	for _, rt := range pass.renderTargets {
		if rt.imported {
			rt.concreteTarget = rt.importedTarget
			continue
		}

		var color [4]driver.TargetBufferInfo
		for i := 0; i < 4; i++ {
			if rt.outgoing[i] == nil {
				continue
			}
			color[i] = fg.resources[rt.outgoing[i].rid].targetBufferInfo()
		}
		var depth, stencil driver.TargetBufferInfo
		if rt.outgoing[4] != nil {
			depth = fg.resources[rt.outgoing[4].rid].targetBufferInfo()
		}
		if rt.outgoing[5] != nil {
			stencil = fg.resources[rt.outgoing[5].rid].targetBufferInfo()
		}

		target, err := fg.allocator.CreateRenderTarget(rt.name, rt.present,
			rt.params.Viewport.Width, rt.params.Viewport.Height, rt.descriptor.Samples,
			color, depth, stencil)
		if err != nil {
			Logger().Error("devirtualize: create render target failed",
				slog.String("name", rt.name), slog.Any("error", err))
			continue
		}
		rt.concreteTarget = target
	}
}

// destroyRenderTargets releases every non-imported render target this pass
// declared. Render targets are scoped to a single pass: unlike textures,
// they are never shared across declaration indices, so they are destroyed
// immediately after the pass that created them runs.
func (fg *FrameGraph) destroyRenderTargets(pass *passRecord) {
	for _, rt := range pass.renderTargets {
		if rt.imported || rt.concreteTarget == driver.InvalidRenderTargetHandle {
			continue
		}
		fg.allocator.DestroyRenderTarget(rt.concreteTarget)
	}
}
