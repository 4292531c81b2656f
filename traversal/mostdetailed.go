package traversal

// MostDetailed implements the §4.D.3 threshold-zero traversal used for
// picking and most-detailed preload: it always refines down to leaves
// regardless of SSE, since the caller wants the finest tile available
// rather than a screen-consistent level. There is no REPLACE fallback
// bookkeeping — a consistent displayed level is not the goal here, so
// every node along the way that has content is selected (or requested)
// independently of its siblings.
func MostDetailed(t Tree) Result {
	var result Result
	s := getStack()
	defer putStack(s)
	s.push(t.Root(), false)

	for !s.empty() {
		f, _ := s.pop()
		id := f.id

		c := t.Classify(id)
		if c.Culled {
			continue
		}
		t.MarkVisited(id)

		if t.HasRenderableContent(id) {
			if c.Ready {
				result.addSelected(id)
			} else {
				result.addRequested(id)
				t.MarkRequested(id)
			}
		} else {
			result.addEmpty(id)
		}

		if t.IsLeaf(id) {
			continue
		}
		for _, child := range t.Children(id) {
			s.push(child, false)
		}
	}

	return result
}
