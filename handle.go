package framegraph

// Handle is a versioned reference to a virtual resource. index addresses a
// resource slot; version is compared against the slot's current resource
// version to decide validity (see FrameGraph.IsValid).
//
// A Handle is small and trivially copyable, safe to capture by value in a
// pass's execute closure. It becomes stale the moment the resource it
// addresses is written again.
type Handle struct {
	index   int32
	version uint32
}

// invalidHandle addresses no slot (index -1) and carries version 0. A
// virtual resource's version starts at 1, so neither invalidHandle nor the
// zero Handle ever matches a live resource.
var invalidHandle = Handle{index: -1, version: 0}

// IsValid reports whether h addresses any slot at all: a non-negative index
// and a non-zero version, so the zero Handle is not valid. It does not
// check the handle against the current resource version; use
// FrameGraph.IsValid for that.
func (h Handle) IsValid() bool {
	return h.index >= 0 && h.version != 0
}

// resourceSlot is the pair of table indices a Handle.index resolves to.
// Slots are stable for a handle's lifetime; forwardSubResource redirects
// the values stored in a slot without changing any handle's index.
type resourceSlot struct {
	rid int32 // index into FrameGraph.resources
	nid int32 // index into FrameGraph.resourceNodes
}
