package framegraph

import "github.com/gogpu/framegraph/driver"

// Builder is the API a pass's setup callback uses to declare the virtual
// resources it creates, reads and writes, and the render targets it
// declares. A Builder is only valid during the setup callback it was
// handed to; it must not be retained past that call.
type Builder struct {
	fg   *FrameGraph
	pass *passRecord
}

// Create declares a brand-new virtual resource, returning a handle at
// version 1. The resource has no writer until a pass writes it.
func (b *Builder) Create(name string, desc driver.TextureDescriptor) Handle {
	vr := newVirtualResource(name, desc)
	return b.fg.createInternal(vr)
}

// Import declares a concrete texture, created and owned outside the
// frame graph, as a virtual resource. usage is the set of ways the
// concrete texture may legally be used; a later Write requesting a usage
// outside this set fails with ErrIncompatibleUsage. Imported resources
// are never devirtualized or destroyed by the frame graph (invariant: an
// imported resource's pass bracket is never computed).
func (b *Builder) Import(name string, desc driver.TextureDescriptor, usage driver.TextureUsage, concrete driver.TextureHandle) Handle {
	vr := newVirtualResource(name, desc)
	vr.imported = true
	vr.declaredUsage = usage
	vr.concreteTexture = concrete
	return b.fg.createInternal(vr)
}

// ImportRenderTarget declares a concrete render target, created and owned
// outside the frame graph, as a virtual resource usable with
// UseAsRenderTarget. Unlike Import, the returned resource already carries
// its own RenderTargetDescriptor; UseAsRenderTarget recognizes it and
// skips allocator-side render target creation at execute time.
func (b *Builder) ImportRenderTarget(name string, tdesc driver.TextureDescriptor, usage driver.TextureUsage, rtdesc RenderTargetDescriptor, target driver.RenderTargetHandle) Handle {
	vr := newVirtualResource(name, tdesc)
	vr.imported = true
	vr.declaredUsage = usage
	vr.importedRenderTarget = &importedRenderTargetInfo{target: target, rtDesc: rtdesc}
	return b.fg.createInternal(vr)
}

// CreateSubresource carves a view of a single mip level / array layer out
// of an existing resource, returning a new child handle that shares the
// parent's concrete texture. *parent is updated in place to the parent's
// next version, mirroring Write: carving a subresource out bumps the
// parent's version even though no pass explicitly writes it, so any
// stale handle still held to the parent's prior version is correctly
// invalidated.
func (b *Builder) CreateSubresource(parent *Handle, name string, sub driver.SubResourceDescriptor) (Handle, error) {
	parentVR, err := b.fg.resourceForHandle(*parent)
	if err != nil {
		return invalidHandle, err
	}
	parentNode, err := b.fg.nodeForHandle(*parent)
	if err != nil {
		return invalidHandle, err
	}

	desc := parentVR.descriptor
	desc.Levels = 1

	child := newVirtualResource(name, desc)
	child.isSubresource = true
	child.subDescriptor = sub
	child.parent = parentVR
	parentVR.children = append(parentVR.children, child)

	childHandle := b.fg.createInternal(child)

	childNode, err := b.fg.nodeForHandle(childHandle)
	if err != nil {
		return invalidHandle, err
	}
	childNode.parent = parentNode
	parentNode.children = append(parentNode.children, childNode)

	// Bump the parent's version by installing a fresh generation with no
	// writer of its own: creating a subresource doesn't write the parent,
	// but it does mean prior handles to the parent's contents may no
	// longer reflect what subsequent subresource writes will do to the
	// shared concrete texture.
	rid := b.fg.slots[parent.index].rid
	newParentNode, nid := b.fg.addResourceNode(rid, parentVR.name)
	b.fg.slots[parent.index].nid = nid
	parentVR.version++
	parentVR.nodes = append(parentVR.nodes, newParentNode)
	*parent = Handle{index: parent.index, version: parentVR.version}

	return childHandle, nil
}

// ForwardSubResource redirects dst's slot to address the same underlying
// resource and node as src, without changing dst's handle index. A handle
// holding dst's index is from then on checked against src's resource: it
// stays valid only while its version equals that resource's current
// version. src's version is not advanced, so dst itself remains valid if
// its version happens to equal src's.
func (b *Builder) ForwardSubResource(dst, src Handle) error {
	if !b.fg.IsValid(src) {
		return ErrInvalidHandle
	}
	if !dst.IsValid() || int(dst.index) >= len(b.fg.slots) {
		return ErrInvalidHandle
	}
	srcSlot := b.fg.slots[src.index]
	b.fg.slots[dst.index] = srcSlot
	return nil
}

// Read declares that this pass samples h with the given usage, returning
// h unchanged. Reading never advances a resource's version.
func (b *Builder) Read(h Handle, usage driver.TextureUsage) (Handle, error) {
	return b.fg.readInternal(b.pass, h, usage)
}

// Write declares that this pass produces a new version of h with the
// given usage, returning a handle to the new version. The caller should
// overwrite its local variable with the returned handle; the old one
// becomes stale immediately.
func (b *Builder) Write(h Handle, usage driver.TextureUsage) (Handle, error) {
	return b.fg.writeInternal(b.pass, h, usage)
}

// SideEffect marks this pass as having an effect outside the graph (for
// instance, a readback or a debug overlay written directly to a resource
// the graph doesn't otherwise track), pinning it against culling even if
// nothing reads what it writes.
func (b *Builder) SideEffect() {
	b.fg.graph.MakeTarget(b.pass.id)
}

// GetDescriptor returns the texture descriptor of the resource h
// addresses.
func (b *Builder) GetDescriptor(h Handle) (driver.TextureDescriptor, error) {
	vr, err := b.fg.resourceForHandle(h)
	if err != nil {
		return driver.TextureDescriptor{}, err
	}
	return vr.descriptor, nil
}

// GetName returns the debug name of the resource h addresses.
func (b *Builder) GetName(h Handle) (string, error) {
	vr, err := b.fg.resourceForHandle(h)
	if err != nil {
		return "", err
	}
	return vr.name, nil
}

// UseAsRenderTarget declares a render target for this pass: every
// non-zero attachment in desc.Attachments is written with the
// attachment-appropriate usage flag, and a renderTargetData is recorded
// for discard-flag and viewport resolution during compile. The updated
// RenderTarget carries the post-write handle for every attachment the
// caller should use from here on.
//
// If color[0] resolves to a resource imported via ImportRenderTarget, the
// declaration is recognized as an imported render target: it is marked
// imported and inherits the imported descriptor and backend handle
// verbatim, skipping allocator-side creation at execute time. Any other
// attachments in desc are ignored in that case, since an imported target
// is addressed as a single pre-built unit.
func (b *Builder) UseAsRenderTarget(name string, desc RenderTargetDescriptor) (RenderTarget, error) {
	if desc.Attachments.Color[0].IsValid() {
		if vr, err := b.fg.resourceForHandle(desc.Attachments.Color[0]); err == nil && vr.importedRenderTarget != nil {
			return b.useImportedRenderTarget(name, desc.Attachments.Color[0], vr)
		}
	}

	rt := &renderTargetData{name: name, descriptor: desc}

	slotHandles := [6]*Handle{
		&desc.Attachments.Color[0], &desc.Attachments.Color[1],
		&desc.Attachments.Color[2], &desc.Attachments.Color[3],
		&desc.Attachments.Depth, &desc.Attachments.Stencil,
	}
	slotUsage := [6]driver.TextureUsage{
		driver.TextureUsageColorAttachment, driver.TextureUsageColorAttachment,
		driver.TextureUsageColorAttachment, driver.TextureUsageColorAttachment,
		driver.TextureUsageDepthAttachment, driver.TextureUsageStencilAttachment,
	}
	slotFlags := [6]driver.TargetBufferFlags{
		driver.TargetBufferColor0, driver.TargetBufferColor1,
		driver.TargetBufferColor2, driver.TargetBufferColor3,
		driver.TargetBufferDepth, driver.TargetBufferStencil,
	}

	// Every attachment is checked before any is written, so a rejected
	// declaration leaves no partial write behind.
	seen := make(map[int32]bool)
	for i, hp := range slotHandles {
		if !hp.IsValid() {
			continue
		}
		vr, err := b.fg.resourceForHandle(*hp)
		if err != nil || seen[hp.index] {
			return RenderTarget{}, ErrInvalidHandle
		}
		seen[hp.index] = true
		if vr.imported && slotUsage[i]&^vr.declaredUsage != 0 {
			return RenderTarget{}, ErrIncompatibleUsage
		}
	}

	if desc.Samples != 0 {
		for _, hp := range slotHandles {
			h := *hp
			if !h.IsValid() {
				continue
			}
			vr, err := b.fg.resourceForHandle(h)
			if err != nil {
				return RenderTarget{}, err
			}
			if vr.descriptor.SampleCount != 0 && vr.descriptor.SampleCount != desc.Samples {
				return RenderTarget{}, ErrRenderTargetMisconfigured
			}
		}
	}

	var out RenderTarget
	anyAttachment := false

	for i, hp := range slotHandles {
		h := *hp
		if !h.IsValid() {
			continue
		}
		anyAttachment = true
		rt.present |= slotFlags[i]

		incoming, err := b.fg.nodeForHandle(h)
		if err != nil {
			return RenderTarget{}, err
		}

		written, err := b.fg.writeInternal(b.pass, h, slotUsage[i])
		if err != nil {
			return RenderTarget{}, err
		}
		outgoing, err := b.fg.nodeForHandle(written)
		if err != nil {
			return RenderTarget{}, err
		}

		rt.incoming[i] = incoming
		rt.outgoing[i] = outgoing

		switch i {
		case 0:
			out.Attachments.Color[0] = written
		case 1:
			out.Attachments.Color[1] = written
		case 2:
			out.Attachments.Color[2] = written
		case 3:
			out.Attachments.Color[3] = written
		case 4:
			out.Attachments.Depth = written
		case 5:
			out.Attachments.Stencil = written
		}
	}

	if !anyAttachment {
		return RenderTarget{}, ErrRenderTargetMisconfigured
	}

	rt.params.Clear = desc.ClearFlags
	rt.params.ClearColor = desc.ClearColor

	out.ID = uint32(len(b.pass.renderTargets))
	b.pass.renderTargets = append(b.pass.renderTargets, rt)

	return out, nil
}

// useImportedRenderTarget is UseAsRenderTarget's branch for a color[0]
// attachment that resolves to a resource imported via ImportRenderTarget:
// the render target's clear flags, clear color and viewport come from the
// descriptor supplied at import time, not from the caller's desc, since
// the host already knows exactly what it built. Its only attachment is
// color[0].
func (b *Builder) useImportedRenderTarget(name string, h Handle, vr *virtualResource) (RenderTarget, error) {
	info := vr.importedRenderTarget

	written, err := b.fg.writeInternal(b.pass, h, vr.declaredUsage)
	if err != nil {
		return RenderTarget{}, err
	}
	node, err := b.fg.nodeForHandle(written)
	if err != nil {
		return RenderTarget{}, err
	}

	rt := &renderTargetData{
		name:           name,
		descriptor:     info.rtDesc,
		imported:       true,
		importedTarget: info.target,
		present:        driver.TargetBufferColor0,
	}
	rt.outgoing[0] = node
	rt.params.Clear = info.rtDesc.ClearFlags
	rt.params.ClearColor = info.rtDesc.ClearColor

	var out RenderTarget
	out.Attachments.Color[0] = written
	out.ID = uint32(len(b.pass.renderTargets))
	b.pass.renderTargets = append(b.pass.renderTargets, rt)
	return out, nil
}

// UseAsRenderTargetColor is sugar over UseAsRenderTarget for the common
// case of a single color attachment and no depth/stencil.
func (b *Builder) UseAsRenderTargetColor(name string, color Handle) (RenderTarget, error) {
	return b.UseAsRenderTarget(name, RenderTargetDescriptor{
		Attachments: Attachments{Color: [4]Handle{color, invalidHandle, invalidHandle, invalidHandle}},
	})
}

// UseAsRenderTargetColorDepth is sugar over UseAsRenderTarget for a single
// color attachment plus a depth attachment, no stencil.
func (b *Builder) UseAsRenderTargetColorDepth(name string, color, depth Handle) (RenderTarget, error) {
	return b.UseAsRenderTarget(name, RenderTargetDescriptor{
		Attachments: Attachments{
			Color: [4]Handle{color, invalidHandle, invalidHandle, invalidHandle},
			Depth: depth,
		},
	})
}
