package framegraph

// compile runs the four-step resolution pipeline described in the design
// notes: cull, resolve usage, compute pass brackets, then resolve every
// surviving render target's discard flags and viewport. Each step depends
// on the previous one's output, so the order is load-bearing.
func compile(fg *FrameGraph) error {
	fg.graph.Cull()

	for _, r := range fg.resources {
		r.resolveUsage(&fg.graph)
	}

	for _, r := range fg.resources {
		updatePassBracket(fg, r)
	}
	// Subresources devirtualize nothing of their own; their usage window
	// still has to keep the parent's concrete texture alive, so roll each
	// subresource's bracket into its parent's after every resource's own
	// bracket has been computed.
	for _, r := range fg.resources {
		if !r.isSubresource || r.parent == nil {
			continue
		}
		if r.first != -1 {
			r.parent.neededByPass(r.first)
		}
		if r.last != -1 {
			r.parent.neededByPass(r.last)
		}
	}

	for _, p := range fg.passes {
		if fg.graph.IsCulled(p.id) {
			continue
		}
		for _, rt := range p.renderTargets {
			resolveRenderTarget(fg, rt)
		}
	}

	return nil
}

// updatePassBracket extends r's [first,last] declaration-index bracket to
// cover every non-culled pass that reads or writes any generation of it.
func updatePassBracket(fg *FrameGraph, r *virtualResource) {
	for _, n := range r.nodes {
		if n.writer != nil {
			if p, ok := fg.passByNodeID[n.writer.pass]; ok && !fg.graph.IsCulled(n.writer.pass) {
				r.neededByPass(p.declIndex)
			}
		}
		for _, rd := range n.readers {
			if p, ok := fg.passByNodeID[rd.pass]; ok && !fg.graph.IsCulled(rd.pass) {
				r.neededByPass(p.declIndex)
			}
		}
	}
}
