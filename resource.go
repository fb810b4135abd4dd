package framegraph

import "github.com/gogpu/framegraph/driver"

// virtualResource is the type-erased placeholder the spec describes: a
// name, a monotonically-advancing version, the pass bracket it is alive
// for, and (once devirtualized) a concrete GPU handle. The only resource
// kind the frame graph knows about is texture-shaped; an imported render
// target is a texture-shaped resource whose concrete render target is
// supplied up front instead of created by the allocator.
type virtualResource struct {
	name    string
	version uint32 // bumped on every write; starts at 1

	descriptor    driver.TextureDescriptor
	subDescriptor driver.SubResourceDescriptor
	isSubresource bool

	// usage accumulates during compile (resolveUsage): the OR of every
	// valid edge's usage, plus any subresource's rolled-up usage.
	usage driver.TextureUsage

	// first/last are declaration-order indices into FrameGraph.passes,
	// set during compile. Imported resources keep both at -1: the
	// allocator never creates or destroys them.
	first, last int

	imported bool
	// declaredUsage is the usage the importer promised the concrete
	// resource was created with. Imported resources never run through
	// devirtualize, so nothing infers their usage from edges; instead
	// every write against them is checked for being a subset of this
	// value (see FrameGraph.writeInternal).
	declaredUsage driver.TextureUsage
	// concreteTexture is the allocator-facing GPU handle: either supplied
	// at import time, or filled in by devirtualize at pass `first`.
	concreteTexture driver.TextureHandle

	// importedRenderTarget is set only for resources imported via
	// Builder.ImportRenderTarget: a texture-shaped resource pre-bound
	// to a concrete backend render target.
	importedRenderTarget *importedRenderTargetInfo

	// parent is set only for a subresource: the virtualResource it shares
	// its concrete texture with.
	parent *virtualResource

	// children lists every subresource created against this resource, used
	// to roll subresource usage up into the parent's resolved usage.
	children []*virtualResource

	// nodes lists every resourceNode generation ever created for this
	// resource (create/import = generation 0, each write adds one), used
	// by compile to resolve usage and by culling checks.
	nodes []*resourceNode
}

// importedRenderTargetInfo holds the backend-supplied data for a resource
// imported as a render target rather than a plain texture.
type importedRenderTargetInfo struct {
	target driver.RenderTargetHandle
	rtDesc RenderTargetDescriptor
}

func newVirtualResource(name string, desc driver.TextureDescriptor) *virtualResource {
	return &virtualResource{
		name:       name,
		version:    1,
		descriptor: desc,
		first:      -1,
		last:       -1,
	}
}

// neededByPass expands the resource's [first,last] pass bracket to include
// p, a declaration-order index. Imported resources never get a bracket:
// the allocator never creates or destroys them (invariant 6 in the spec).
func (r *virtualResource) neededByPass(p int) {
	if r.imported {
		return
	}
	if r.first == -1 || p < r.first {
		r.first = p
	}
	if p > r.last {
		r.last = p
	}
}

// resolveUsage ORs together the usage of every edge whose referencing pass
// survived culling, across every generation of this resource, plus the
// rolled-up usage of any subresources created against it.
//
// This deliberately does not skip a generation because its own resourceNode
// sits at post-cull refcount zero: a generation with no surviving readers
// still has its writer's usage honored, since the resource is still
// produced by a live pass (see the note on resourceEdge).
func (r *virtualResource) resolveUsage(g *DependencyGraph) {
	if r.imported {
		r.usage = r.declaredUsage
		return
	}
	var u driver.TextureUsage
	for _, n := range r.nodes {
		if n.writer != nil && !g.IsCulled(n.writer.pass) {
			u |= n.writer.usage
		}
		for _, rd := range n.readers {
			if !g.IsCulled(rd.pass) {
				u |= rd.usage
			}
		}
	}
	for _, c := range r.children {
		c.resolveUsage(g)
		u |= c.usage
	}
	r.usage = u
}

// currentNode returns the most recent resourceNode generation, the one new
// reads/writes attach to.
func (r *virtualResource) currentNode() *resourceNode {
	return r.nodes[len(r.nodes)-1]
}

// concreteHandle returns the device texture this resource is backed by,
// climbing to the root resource for a subresource: subresources never
// devirtualize a texture of their own, they address a mip level / layer of
// their parent's.
func (r *virtualResource) concreteHandle() driver.TextureHandle {
	root := r
	for root.isSubresource && root.parent != nil {
		root = root.parent
	}
	return root.concreteTexture
}

// targetBufferInfo builds the (handle, level, layer) triple an allocator
// needs to bind this resource as one render target attachment.
func (r *virtualResource) targetBufferInfo() driver.TargetBufferInfo {
	info := driver.TargetBufferInfo{Handle: r.concreteHandle()}
	if r.isSubresource {
		info.Level = r.subDescriptor.Level
		info.Layer = r.subDescriptor.Layer
	}
	return info
}
