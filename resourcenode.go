package framegraph

import "github.com/gogpu/framegraph/driver"

// resourceEdge is a read or write edge touching a resourceNode, carrying
// the usage the referencing pass declared and that pass's node id.
//
// Edge validity for usage resolution and discard inference is judged
// solely by whether the referencing pass survived culling, not by whether
// this resourceNode's own graph node did. A resourceNode can lose every
// reader and still sit at post-cull refcount zero while its writer pass
// is alive and well — the resource is still produced, still needs its
// declared usage honored by the allocator, and simply has no one left to
// read it. The resourceNode's own culled flag only matters for the
// reverse-reachability propagation that decides whether *other* passes
// stay alive; it would be the wrong signal here.
type resourceEdge struct {
	pass  nodeID
	usage driver.TextureUsage
}

// resourceNode is a versioned view of a virtual resource: one generation
// produced either by create/import (version 1, no writer) or by a write
// (a new version, with exactly one writer edge from the writing pass).
// Any number of passes may read a given generation before the next write
// rolls a new one into existence.
type resourceNode struct {
	id   nodeID
	rid  int32 // owning virtualResource index
	name string

	writer  *resourceEdge
	readers []resourceEdge

	// parent is set only for the resourceNode created by createSubresource;
	// it names the parent's resourceNode at the time the subresource was
	// carved out, used to propagate reader/writer activity for discard
	// inference (see hasActiveReaders/hasWriter).
	parent *resourceNode

	// children lists the resourceNode of every subresource created against
	// this node, used by hasActiveReaders to look downward.
	children []*resourceNode
}

func newResourceNode(id nodeID, rid int32, name string) *resourceNode {
	return &resourceNode{id: id, rid: rid, name: name}
}

// hasWriter reports whether this generation, or any ancestor generation it
// was carved out of via createSubresource, has a live writer. A write
// through a subresource conceptually touches the same concrete device
// resource as its parent, so ancestors' writers count too.
func (n *resourceNode) hasWriter(g *DependencyGraph) bool {
	if n.writer != nil && !g.IsCulled(n.writer.pass) {
		return true
	}
	if n.parent != nil {
		return n.parent.hasWriter(g)
	}
	return false
}

// hasReaders reports whether any reader edge was ever attached, regardless
// of whether it survived culling.
func (n *resourceNode) hasReaders() bool {
	return len(n.readers) > 0
}

// hasActiveReaders reports whether this generation, or any subresource
// carved out from it, has a live (non-culled) reader. A read through a
// subresource conceptually touches the same concrete device resource as
// its parent, so descendants' readers count too.
func (n *resourceNode) hasActiveReaders(g *DependencyGraph) bool {
	for _, r := range n.readers {
		if !g.IsCulled(r.pass) {
			return true
		}
	}
	for _, c := range n.children {
		if c.hasActiveReaders(g) {
			return true
		}
	}
	return false
}

// addReader records a read edge against this generation.
func (n *resourceNode) addReader(pass nodeID, usage driver.TextureUsage) {
	n.readers = append(n.readers, resourceEdge{pass: pass, usage: usage})
}

// setWriter records the (sole) write edge that produced this generation.
func (n *resourceNode) setWriter(pass nodeID, usage driver.TextureUsage) {
	n.writer = &resourceEdge{pass: pass, usage: usage}
}
