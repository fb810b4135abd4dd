package framegraph

import "github.com/gogpu/framegraph/driver"

// passRecord is the single concrete pass type the frame graph works with.
// The spec's three "variants" — a render pass, a present pass, and a user
// pass — are really one node shape: any pass may declare zero or more
// render targets via Builder.UseAsRenderTarget, and the synthetic present
// pass is simply a passRecord with no render targets, no body, and a read
// edge keeping its input alive.
type passRecord struct {
	id        nodeID
	name      string
	declIndex int // position in FrameGraph.passes; also the declaration order

	execute func(*Resources, driver.DriverApi)

	renderTargets []*renderTargetData

	isPresent bool
}

// isRenderPass reports whether this pass declared at least one render
// target, i.e. whether resolveRenderTarget (compile step 4) applies to it.
func (p *passRecord) isRenderPass() bool {
	return len(p.renderTargets) > 0
}

// AddPass declares a new pass. setup runs synchronously against a scoped
// Builder and mutates the graph (adding resource nodes, edges and render
// target declarations); execute is stored and invoked later, once per
// frame, from FrameGraph.Execute, in declaration order, skipping culled
// passes.
//
// AddPass is a free function rather than a FrameGraph method because Go
// does not allow a method to introduce its own type parameter: Data is the
// user-defined struct carrying whatever this pass needs to remember
// between its setup and execute phases.
func AddPass[Data any](fg *FrameGraph, name string, setup func(*Builder, *Data), execute func(*Resources, *Data, driver.DriverApi)) *Data {
	data := new(Data)
	pr := fg.addPassInternal(name)
	b := &Builder{fg: fg, pass: pr}
	setup(b, data)
	if execute != nil {
		pr.execute = func(res *Resources, api driver.DriverApi) {
			execute(res, data, api)
		}
	}
	return data
}

// addPassInternal creates the graph node and bookkeeping for a new pass and
// appends it to FrameGraph.passes.
func (fg *FrameGraph) addPassInternal(name string) *passRecord {
	pr := &passRecord{name: name, declIndex: len(fg.passes)}
	pr.id = fg.graph.AddNode(name, nil)
	fg.passes = append(fg.passes, pr)
	if fg.passByNodeID == nil {
		fg.passByNodeID = make(map[nodeID]*passRecord)
	}
	fg.passByNodeID[pr.id] = pr
	return pr
}
