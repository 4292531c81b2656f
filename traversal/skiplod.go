package traversal

// SkipLODConfig holds the §4.D.2 "relaxed, mixed-detail display"
// parameters. Unlike Base, Skip-LOD never falls back to a parent
// waiting on its children: whatever mix of ancestor and descendant
// tiles currently meets the (relaxed) SSE test is shown immediately,
// trading strict LOD consistency for faster visual completeness.
type SkipLODConfig struct {
	// BaseSSE carries the base_sse option. SkipLOD does not read it:
	// whether a skip happens depends only on SkipLevels and on whether
	// the node is still loading.
	BaseSSE float64

	// SkipSSEFactor widens the threshold for children once a skip is in
	// effect, so intermediate levels can be bypassed when they would
	// fall below it.
	SkipSSEFactor float64

	// SkipLevels caps how many levels may be skipped below a tile that
	// is still loading, 0 disables skipping.
	SkipLevels int

	// ImmediatelyLoadDesiredLOD carries the immediately_load_desired_lod
	// option. Neither SkipLOD nor the tileset's request issuing reads
	// it, so it has no effect on which tiles are fetched or in what
	// order.
	ImmediatelyLoadDesiredLOD bool

	// LoadSiblings additionally requests a loading tile's siblings so a
	// future pass can promote the whole level at once.
	LoadSiblings bool

	Foveation FoveationConfig
}

// SkipLOD runs the relaxed traversal: a node is selected as soon as it
// individually satisfies the SSE test, regardless of whether its
// siblings or children are ready, and loading tiles do not block their
// ancestor from being replaced once the tile itself becomes ready.
func SkipLOD(t Tree, maximumSSE float64, cfg SkipLODConfig) Result {
	var result Result
	requested := map[NodeID]bool{}
	addRequested := func(id NodeID) {
		if !requested[id] {
			requested[id] = true
			result.addRequested(id)
			t.MarkRequested(id)
		}
	}

	stack := []skipFrame{{id: t.Root(), depth: 0, siblings: []NodeID{t.Root()}}}

	for len(stack) > 0 {
		n := len(stack) - 1
		f := stack[n]
		stack = stack[:n]

		id := f.id
		c := t.Classify(id)
		if c.Culled {
			continue
		}
		t.MarkVisited(id)

		threshold := maximumSSE
		if cfg.Foveation.Enabled {
			threshold = cfg.Foveation.EffectiveThreshold(maximumSSE, c.Foveated)
		}
		if f.skipping {
			threshold *= cfg.SkipSSEFactor
		}

		children := t.Children(id)
		sufficient := t.IsLeaf(id) || len(children) == 0 || c.SSE <= threshold
		if sufficient {
			skipSelectOrRequest(t, id, c, &result, addRequested)
			continue
		}

		skipping := f.skipping
		if !skipping && cfg.SkipLevels > 0 && t.HasRenderableContent(id) && !c.Ready {
			// This level is still loading: allow descendants up to
			// SkipLevels deep to display in its place instead of
			// blocking on it, per the "mixed-detail" trade described
			// in §4.D.2.
			skipping = true
			addRequested(id)
			if cfg.LoadSiblings {
				for _, sib := range f.siblings {
					if sib == id || !t.HasRenderableContent(sib) {
						continue
					}
					if sc := t.Classify(sib); !sc.Ready {
						addRequested(sib)
					}
				}
			}
		}

		depth := f.depth + 1
		if skipping && cfg.SkipLevels > 0 && depth-f.skipStart > cfg.SkipLevels {
			skipping = false
		}
		skipStart := f.skipStart
		if skipping && !f.skipping {
			skipStart = f.depth
		}

		for _, child := range children {
			stack = append(stack, skipFrame{id: child, depth: depth, skipping: skipping, skipStart: skipStart, siblings: children})
		}
	}

	return result
}

type skipFrame struct {
	id        NodeID
	depth     int
	skipping  bool
	skipStart int
	siblings  []NodeID
}

func skipSelectOrRequest(t Tree, id NodeID, c Classification, result *Result, addRequested func(NodeID)) {
	if !t.HasRenderableContent(id) {
		result.addEmpty(id)
		return
	}
	if c.Ready {
		result.addSelected(id)
		return
	}
	addRequested(id)
}
