package framegraph

import (
	"log/slog"

	"github.com/gogpu/framegraph/driver"
)

// FrameGraph assembles a single frame's worth of passes into a dependency
// graph, culls the ones nothing reads, and drives devirtualize/execute/
// destroy in declaration order against a host-supplied allocator.
//
// A FrameGraph is built fresh every frame: AddPass declares passes and
// their resource reads/writes through a scoped Builder, Compile resolves
// the graph exactly once, and Execute walks the surviving passes exactly
// once. Reset clears everything so the same FrameGraph value can be reused
// for the next frame without reallocating its backing slices.
//
// FrameGraph is not safe for concurrent use: all passes are expected to be
// declared from a single goroutine during setup, matching how the host
// application builds a frame.
type FrameGraph struct {
	allocator driver.ResourceAllocator

	graph DependencyGraph

	resources     []*virtualResource
	resourceNodes []*resourceNode
	slots         []resourceSlot
	passes        []*passRecord

	// passByNodeID maps a pass's graph node id back to its passRecord, so
	// compile can translate a resourceEdge's pass id into a declaration
	// index without a linear scan.
	passByNodeID map[nodeID]*passRecord

	presentPass *passRecord

	compiled bool
	executed bool
}

// NewFrameGraph creates an empty frame graph backed by allocator, which is
// used during Execute to create and destroy the concrete device resources
// for every non-imported texture and render target the graph ends up
// needing.
func NewFrameGraph(allocator driver.ResourceAllocator) *FrameGraph {
	return &FrameGraph{allocator: allocator}
}

// Reset clears a FrameGraph for reuse on the next frame, retaining the
// backing arrays' capacity.
func (fg *FrameGraph) Reset() {
	fg.graph = DependencyGraph{}
	fg.resources = fg.resources[:0]
	fg.resourceNodes = fg.resourceNodes[:0]
	fg.slots = fg.slots[:0]
	fg.passes = fg.passes[:0]
	fg.passByNodeID = nil
	fg.presentPass = nil
	fg.compiled = false
	fg.executed = false
}

// IsValid reports whether h still addresses the current generation of its
// resource: its slot's resource must match the version h was issued with.
func (fg *FrameGraph) IsValid(h Handle) bool {
	if !h.IsValid() || int(h.index) >= len(fg.slots) {
		return false
	}
	slot := fg.slots[h.index]
	return fg.resources[slot.rid].version == h.version
}

// resourceForHandle resolves h to its virtualResource, checking validity.
func (fg *FrameGraph) resourceForHandle(h Handle) (*virtualResource, error) {
	if !fg.IsValid(h) {
		return nil, ErrInvalidHandle
	}
	return fg.resources[fg.slots[h.index].rid], nil
}

// nodeForHandle resolves h to the resourceNode its slot currently points at.
func (fg *FrameGraph) nodeForHandle(h Handle) (*resourceNode, error) {
	if !fg.IsValid(h) {
		return nil, ErrInvalidHandle
	}
	return fg.resourceNodes[fg.slots[h.index].nid], nil
}

// allocateSlot appends a fresh resourceSlot and returns its index.
func (fg *FrameGraph) allocateSlot(rid, nid int32) int32 {
	idx := int32(len(fg.slots))
	fg.slots = append(fg.slots, resourceSlot{rid: rid, nid: nid})
	return idx
}

// addResourceNode registers a new resourceNode as a graph node and appends
// it to the frame graph's flat node table, returning its table index.
func (fg *FrameGraph) addResourceNode(rid int32, name string) (*resourceNode, int32) {
	gid := fg.graph.AddNode(name, nil)
	n := newResourceNode(gid, rid, name)
	nid := int32(len(fg.resourceNodes))
	fg.resourceNodes = append(fg.resourceNodes, n)
	return n, nid
}

// createInternal allocates a fresh virtual resource and its initial
// resourceNode (generation 0, no writer) and returns the handle addressing
// it.
func (fg *FrameGraph) createInternal(vr *virtualResource) Handle {
	rid := int32(len(fg.resources))
	fg.resources = append(fg.resources, vr)

	node, nid := fg.addResourceNode(rid, vr.name)
	vr.nodes = append(vr.nodes, node)

	slot := fg.allocateSlot(rid, nid)
	return Handle{index: slot, version: vr.version}
}

// readInternal records a read of h by pass for the given usage, returning
// the (unchanged) handle. It mirrors FrameGraph::readInternal: reading
// never changes a resource's version.
func (fg *FrameGraph) readInternal(pass *passRecord, h Handle, usage driver.TextureUsage) (Handle, error) {
	vr, err := fg.resourceForHandle(h)
	if err != nil {
		return invalidHandle, err
	}
	if vr.imported && usage&^vr.declaredUsage != 0 {
		return invalidHandle, ErrIncompatibleUsage
	}
	node, err := fg.nodeForHandle(h)
	if err != nil {
		return invalidHandle, err
	}
	node.addReader(pass.id, usage)
	fg.graph.AddEdge(node.id, pass.id)
	return h, nil
}

// writeInternal records a write of h by pass for the given usage. It
// allocates a new resourceNode generation, redirects h's slot to point at
// it, bumps the resource's version, and returns a handle carrying the new
// version at the same slot index.
//
// Writing to an imported resource is allowed, but the requested usage must
// be a subset of what the importer declared the concrete resource was
// created with; otherwise ErrIncompatibleUsage is returned.
func (fg *FrameGraph) writeInternal(pass *passRecord, h Handle, usage driver.TextureUsage) (Handle, error) {
	vr, err := fg.resourceForHandle(h)
	if err != nil {
		return invalidHandle, err
	}
	if vr.imported && usage&^vr.declaredUsage != 0 {
		return invalidHandle, ErrIncompatibleUsage
	}

	slotIdx := h.index
	rid := fg.slots[slotIdx].rid

	node, nid := fg.addResourceNode(rid, vr.name)
	node.setWriter(pass.id, usage)
	fg.graph.AddEdge(pass.id, node.id)

	// The slot's index never changes; only the generation it points at
	// does. Any handle still holding the old version now fails IsValid.
	fg.slots[slotIdx].nid = nid
	vr.version++
	vr.nodes = append(vr.nodes, node)

	return Handle{index: slotIdx, version: vr.version}, nil
}

// Present marks h as a compile target: a synthetic present pass is added
// that reads h and is pinned against culling, anchoring h's entire
// dependency chain.
func (fg *FrameGraph) Present(h Handle) {
	pr := fg.addPassInternal("present")
	pr.isPresent = true
	fg.graph.MakeTarget(pr.id)
	fg.presentPass = pr

	node, err := fg.nodeForHandle(h)
	if err != nil {
		Logger().Warn("present: invalid handle", slog.Int("index", int(h.index)))
		return
	}
	node.addReader(pr.id, driver.TextureUsageSampleable)
	fg.graph.AddEdge(node.id, pr.id)
}

// Compile culls the graph, resolves every surviving resource's usage and
// pass bracket, and resolves the discard flags and viewport for every
// surviving render target declaration. It must be called exactly once,
// after every pass has been declared and before Execute.
func (fg *FrameGraph) Compile() error {
	if fg.compiled {
		return ErrDoubleCompile
	}
	fg.compiled = true
	return compile(fg)
}

// Execute devirtualizes and destroys resources and invokes each surviving
// pass's execute callback, in declaration order, supplying a Resources
// view scoped to that pass and the driver API to issue commands against.
// It must be called exactly once, after Compile.
func (fg *FrameGraph) Execute(api driver.DriverApi) error {
	if !fg.compiled {
		return ErrExecuteBeforeCompile
	}
	if fg.executed {
		return nil
	}
	fg.executed = true

	for i, pass := range fg.passes {
		if fg.graph.IsCulled(pass.id) {
			continue
		}
		fg.devirtualizeNeeded(i)
		if pass.isRenderPass() {
			fg.devirtualizeRenderTargets(pass)
		}
		if pass.execute != nil {
			res := &Resources{fg: fg, pass: pass}
			pass.execute(res, api)
		}
		if pass.isRenderPass() {
			fg.destroyRenderTargets(pass)
		}
		fg.destroyUnneeded(i)
	}
	return nil
}

// devirtualizeNeeded creates the concrete texture for every non-imported,
// non-subresource resource whose bracket starts at declaration index i.
// Subresources never own a concrete texture of their own; they address a
// mip level / layer of their parent's.
func (fg *FrameGraph) devirtualizeNeeded(i int) {
	for _, r := range fg.resources {
		if r.imported || r.isSubresource || r.first != i {
			continue
		}
		tex, err := fg.allocator.CreateTexture(r.name, r.descriptor, r.usage)
		if err != nil {
			Logger().Error("devirtualize: create texture failed", slog.String("name", r.name), slog.Any("error", err))
			continue
		}
		r.concreteTexture = tex
	}
}

// destroyUnneeded destroys the concrete texture for every non-imported,
// non-subresource resource whose bracket ends at declaration index i.
func (fg *FrameGraph) destroyUnneeded(i int) {
	for _, r := range fg.resources {
		if r.imported || r.isSubresource || r.last != i {
			continue
		}
		if r.concreteTexture == driver.InvalidTextureHandle {
			continue
		}
		fg.allocator.DestroyTexture(r.concreteTexture)
	}
}
