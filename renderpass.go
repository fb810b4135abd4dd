package framegraph

import "github.com/gogpu/framegraph/driver"

// Attachments names the up to six textures a render target may bind: four
// color slots, depth and stencil.
type Attachments struct {
	Color   [4]Handle
	Depth   Handle
	Stencil Handle
}

// RenderTargetDescriptor declares a render target to Builder.UseAsRenderTarget.
// A zero Viewport means "derive it from the attachments" (see
// resolveRenderTarget); ClearFlags marks which attachments get cleared to
// ClearColor at the start of the pass, which implies DiscardStart for
// those attachments regardless of whether they had prior contents.
type RenderTargetDescriptor struct {
	Attachments Attachments
	Samples     uint8
	ClearFlags  driver.TargetBufferFlags
	ClearColor  driver.ClearColor
	Viewport    driver.Viewport
}

// RenderTarget is returned by Builder.UseAsRenderTarget: the post-write
// handles for every attachment (so the caller's variables can be updated
// to the new version) and an id used with Resources.RenderPassInfo during
// execute.
type RenderTarget struct {
	Attachments Attachments
	ID          uint32
}

// renderTargetData is one render target declared within a single pass's
// setup. incoming/outgoing record, per attachment slot, the resourceNode
// before and after the write useAsRenderTarget performs; they are the
// inputs to discard inference in resolveRenderTarget.
type renderTargetData struct {
	name       string
	descriptor RenderTargetDescriptor

	// incoming[i]/outgoing[i] index the six attachment slots in the fixed
	// order color0..color3, depth, stencil: the resourceNode generation
	// before and after the write UseAsRenderTarget performs on that slot.
	// A nil entry means the slot has no attachment.
	incoming [6]*resourceNode
	outgoing [6]*resourceNode

	// present marks which of the six slots actually have an attachment.
	present driver.TargetBufferFlags

	imported       bool
	importedTarget driver.RenderTargetHandle

	params driver.RenderPassParams

	// concreteTarget is filled in by devirtualize at execute time, for
	// non-imported render targets only.
	concreteTarget driver.RenderTargetHandle
}

// resolveRenderTarget implements the spec's discard-flag inference and
// viewport resolution (section 4.3, "resolve()"). It is run once per
// retained render-target declaration during compile, after culling.
func resolveRenderTarget(fg *FrameGraph, rt *renderTargetData) {
	if rt.imported {
		// The host created this render target with its own clear/discard
		// semantics already baked in; only the viewport still needs
		// resolving, since the caller may have left it zero to mean
		// "derive it from the attachment".
		resolveViewport(fg, rt)
		return
	}

	g := &fg.graph
	slots := [6]driver.TargetBufferFlags{
		driver.TargetBufferColor0, driver.TargetBufferColor1,
		driver.TargetBufferColor2, driver.TargetBufferColor3,
		driver.TargetBufferDepth, driver.TargetBufferStencil,
	}

	for i, flag := range slots {
		if rt.outgoing[i] == nil {
			continue
		}
		// Start by assuming both ends of the pass can discard this
		// attachment; narrow down as evidence of real use appears.
		rt.params.DiscardStart |= flag
		rt.params.DiscardEnd |= flag

		if rt.outgoing[i].hasActiveReaders(g) {
			rt.params.DiscardEnd &^= flag
		}
		if rt.incoming[i] != nil && rt.incoming[i].hasWriter(g) {
			rt.params.DiscardStart &^= flag
		}
	}

	// Clearing an attachment makes its prior contents irrelevant.
	rt.params.DiscardStart |= rt.params.Clear

	propagateSampleCount(fg, rt)
	resolveViewport(fg, rt)
}

// propagateSampleCount resolves a dangling rule the compile pipeline would
// otherwise leave implicit: an attachment that is never sampled (its
// resolved usage has no SAMPLEABLE bit) only ever exists multisampled at
// the render target's own sample count, since nothing downstream resolves
// it to a single-sample view. Attachments that are sampled keep whatever
// sample count their own descriptor already declared.
func propagateSampleCount(fg *FrameGraph, rt *renderTargetData) {
	if rt.descriptor.Samples == 0 {
		return
	}
	for i := 0; i < 6; i++ {
		if rt.outgoing[i] == nil {
			continue
		}
		r := fg.resources[rt.outgoing[i].rid]
		if r.usage&driver.TextureUsageSampleable != 0 {
			continue
		}
		r.descriptor.SampleCount = rt.descriptor.Samples
	}
}

// resolveViewport fills in rt.params.Viewport. An explicit non-zero
// viewport on the descriptor is used as-is; otherwise the viewport is the
// maximum, over every present attachment, of the level-adjusted width and
// height. Mismatched attachment sizes are permitted; the largest wins.
func resolveViewport(fg *FrameGraph, rt *renderTargetData) {
	vp := rt.descriptor.Viewport
	if vp.Width != 0 || vp.Height != 0 {
		rt.params.Viewport = vp
		return
	}

	var w, h uint32
	for i := 0; i < 6; i++ {
		if rt.outgoing[i] == nil {
			continue
		}
		aw, ah := attachmentExtent(fg, rt.outgoing[i])
		if aw > w {
			w = aw
		}
		if ah > h {
			h = ah
		}
	}
	rt.params.Viewport = driver.Viewport{Width: w, Height: h}
}

// attachmentExtent computes the level-adjusted pixel size of the resource
// behind a resourceNode, halving once per mip level (minimum of 1px).
func attachmentExtent(fg *FrameGraph, n *resourceNode) (uint32, uint32) {
	r := fg.resources[n.rid]
	level := uint32(0)
	if r.isSubresource {
		level = uint32(r.subDescriptor.Level)
	}
	w, h := r.descriptor.Width, r.descriptor.Height
	for i := uint32(0); i < level; i++ {
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
	}
	return w, h
}
