package framegraph

// nodeID and edgeID index into a DependencyGraph's node and edge tables.
// They are stable for the lifetime of the graph; culling never removes
// entries, it only flips a node's culled flag.
type nodeID int32
type edgeID int32

// graphEdge is a directed edge between two nodes. The DependencyGraph only
// cares about topology; any payload (a resource usage flag, for instance)
// is kept by the caller and correlated back to the edge via edgeID.
type graphEdge struct {
	from, to nodeID
}

// graphNode is the generic node record the DependencyGraph maintains.
// PassNode and ResourceNode each hold a nodeID into this table rather than
// embedding it, since Go has no base-class inheritance to lean on.
type graphNode struct {
	name     string
	isTarget bool
	culled   bool
	refCount uint32
	outgoing []edgeID
	incoming []edgeID
	onCulled func()
}

// DependencyGraph is a directed multigraph of nodes and edges with a single
// operation of consequence: Cull, which removes (in the reverse-reachability
// sense) every node not needed by a target node. Parallel edges between the
// same two nodes are permitted and meaningful — they carry independent
// usage flags at the caller's layer.
//
// The graph does not topologically sort: node declaration order already is
// a valid topological order, because the frame graph's versioned resource
// nodes only ever point forward (see resource.go), so execution can simply
// walk nodes in declaration order, skipping culled ones.
type DependencyGraph struct {
	nodes []graphNode
	edges []graphEdge
}

// AddNode registers a new node and returns its id. onCulled, if non-nil, is
// invoked exactly once, the first time Cull determines the node is unused.
func (g *DependencyGraph) AddNode(name string, onCulled func()) nodeID {
	id := nodeID(len(g.nodes))
	g.nodes = append(g.nodes, graphNode{name: name, onCulled: onCulled})
	return id
}

// AddEdge appends a directed edge from -> to and returns its id. Duplicate
// parallel edges between the same pair of nodes are allowed.
func (g *DependencyGraph) AddEdge(from, to nodeID) edgeID {
	id := edgeID(len(g.edges))
	g.edges = append(g.edges, graphEdge{from: from, to: to})
	g.nodes[from].outgoing = append(g.nodes[from].outgoing, id)
	g.nodes[to].incoming = append(g.nodes[to].incoming, id)
	return id
}

// MakeTarget marks n as a root of culling: it is counted as having one
// extra synthetic outgoing edge, so it (and anything it transitively
// depends on) always survives Cull.
func (g *DependencyGraph) MakeTarget(n nodeID) {
	g.nodes[n].isTarget = true
}

// IsCulled reports whether n was removed by the last call to Cull. Before
// Cull runs, no node is considered culled.
func (g *DependencyGraph) IsCulled(n nodeID) bool {
	return g.nodes[n].culled
}

// RefCount returns a node's post-cull reference count: the number of live
// (non-culled) outgoing edges, plus one if the node is a target.
func (g *DependencyGraph) RefCount(n nodeID) uint32 {
	return g.nodes[n].refCount
}

// Name returns the diagnostic name a node was registered with.
func (g *DependencyGraph) Name(n nodeID) string {
	return g.nodes[n].name
}

// Edge returns the endpoints of an edge.
func (g *DependencyGraph) Edge(e edgeID) (from, to nodeID) {
	edge := g.edges[e]
	return edge.from, edge.to
}

// IsEdgeValid reports whether an edge is still meaningful after culling:
// true iff neither endpoint was culled.
func (g *DependencyGraph) IsEdgeValid(e edgeID) bool {
	edge := g.edges[e]
	return !g.nodes[edge.from].culled && !g.nodes[edge.to].culled
}

// OutgoingEdges returns the ids of edges leaving n, in declaration order.
func (g *DependencyGraph) OutgoingEdges(n nodeID) []edgeID {
	return g.nodes[n].outgoing
}

// IncomingEdges returns the ids of edges entering n, in declaration order.
func (g *DependencyGraph) IncomingEdges(n nodeID) []edgeID {
	return g.nodes[n].incoming
}

// Cull performs reverse-reachability culling from every target node. A
// node's initial reference count is its out-degree, plus one if it is a
// target. Every node whose reference count reaches zero — directly, or by
// losing the last live outgoing edge as one of its dependents is itself
// culled — is culled, and its onCulled callback fires exactly once.
//
// The algorithm is monotone (reference counts only ever decrease) and runs
// in O(nodes + edges).
func (g *DependencyGraph) Cull() {
	stack := make([]nodeID, 0, len(g.nodes))
	for i := range g.nodes {
		n := &g.nodes[i]
		n.refCount = uint32(len(n.outgoing))
		if n.isTarget {
			n.refCount++
		}
		if n.refCount == 0 {
			stack = append(stack, nodeID(i))
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, eid := range g.nodes[id].incoming {
			from := g.edges[eid].from
			fromNode := &g.nodes[from]
			fromNode.refCount--
			if fromNode.refCount == 0 {
				stack = append(stack, from)
			}
		}
	}

	for i := range g.nodes {
		n := &g.nodes[i]
		if n.refCount == 0 && !n.culled {
			n.culled = true
			if n.onCulled != nil {
				n.onCulled()
			}
		}
	}
}
