package traversal

// Base implements the strict REPLACE traversal of §4.D.1: a REPLACE
// node's children are selected only once every one of them has fully
// resolved (rendered, empty, or culled); if any child is still missing content,
// the node itself is selected as a fallback and the missing children
// are requested instead.
//
// The walk is iterative and two-phase (enter/exit) rather than
// recursive, per the package's no-recursion constraint: REPLACE's
// "wait for all children, then decide" rule is naturally post-order,
// so each REPLACE node pushes an exit frame before its children and
// only acts once that frame is popped after they have all reported
// back. A child's contribution is buffered into a *replaceState
// instead of the real Result so it can be thrown away — rather than
// already having leaked into the output — if the fallback case fires.
type walkPhase uint8

const (
	phaseEnter walkPhase = iota
	phaseExit
)

// walkFrame is one explicit-stack entry. acc/report are meaningful only
// on enter; action is the promote-or-fallback closure run on exit.
type walkFrame struct {
	id     NodeID
	phase  walkPhase
	acc    accumulator
	report func(ready bool)
	action func()
}

// replaceState buffers a REPLACE node's children's contribution.
type replaceState struct {
	selected  []NodeID
	empty     []NodeID
	requested []NodeID
	allReady  bool
}

func (s *replaceState) addSelected(id NodeID)  { s.selected = append(s.selected, id) }
func (s *replaceState) addEmpty(id NodeID)     { s.empty = append(s.empty, id) }
func (s *replaceState) addRequested(id NodeID) { s.requested = append(s.requested, id) }

func (s *replaceState) noteChild(ready bool) {
	if !ready {
		s.allReady = false
	}
}

func (s *replaceState) promoteInto(dst accumulator) {
	for _, id := range s.selected {
		dst.addSelected(id)
	}
	for _, id := range s.empty {
		dst.addEmpty(id)
	}
	for _, id := range s.requested {
		dst.addRequested(id)
	}
}

// Base runs the strict traversal with a fixed SSE threshold.
func Base(t Tree, maximumSSE float64) Result {
	return baseWalk(t, maximumSSE, nil)
}

// baseWalk is shared with Skip-LOD, which passes a non-nil
// FoveationConfig to relax the effective threshold off-axis.
func baseWalk(t Tree, maximumSSE float64, fov *FoveationConfig) Result {
	var result Result
	stack := []walkFrame{{
		id:     t.Root(),
		phase:  phaseEnter,
		acc:    &result,
		report: func(bool) {},
	}}

	for len(stack) > 0 {
		n := len(stack) - 1
		f := stack[n]
		stack = stack[:n]

		if f.phase == phaseExit {
			f.action()
			continue
		}

		id := f.id
		c := t.Classify(id)
		if c.Culled {
			f.report(true)
			continue
		}
		t.MarkVisited(id)

		threshold := maximumSSE
		if fov != nil {
			threshold = fov.EffectiveThreshold(maximumSSE, c.Foveated)
		}

		children := t.Children(id)
		sufficient := t.IsLeaf(id) || len(children) == 0 || c.SSE <= threshold
		if sufficient {
			selectOrRequest(t, id, c, f.acc, f.report)
			continue
		}

		if t.Refine(id) == RefineAdd {
			// Additive: this node's own content stays visible alongside
			// its children, so there is nothing to roll back — children
			// use the same accumulator directly.
			if t.HasRenderableContent(id) {
				selectOrRequest(t, id, c, f.acc, func(bool) {})
			}
			f.report(true)
			for _, child := range children {
				stack = append(stack, walkFrame{id: child, phase: phaseEnter, acc: f.acc, report: func(bool) {}})
			}
			continue
		}

		rs := &replaceState{allReady: true}
		parentAcc, parentReport := f.acc, f.report
		nodeID, nodeClass := id, c
		stack = append(stack, walkFrame{
			id:    nodeID,
			phase: phaseExit,
			action: func() {
				if rs.allReady {
					rs.promoteInto(parentAcc)
					parentReport(true)
					return
				}
				switch {
				case !t.HasRenderableContent(nodeID):
					parentReport(false)
				case nodeClass.Ready:
					parentAcc.addSelected(nodeID)
					parentReport(true)
				default:
					parentAcc.addRequested(nodeID)
					t.MarkRequested(nodeID)
					parentReport(false)
				}
				for _, rid := range rs.requested {
					parentAcc.addRequested(rid)
				}
			},
		})
		for _, child := range children {
			stack = append(stack, walkFrame{
				id:     child,
				phase:  phaseEnter,
				acc:    rs,
				report: rs.noteChild,
			})
		}
	}

	return result
}

// selectOrRequest resolves a node that needs no further refinement:
// empty tiles contribute nothing but never block a parent, ready
// content is selected for render, and anything else is requested.
func selectOrRequest(t Tree, id NodeID, c Classification, acc accumulator, report func(bool)) {
	if !t.HasRenderableContent(id) {
		acc.addEmpty(id)
		report(true)
		return
	}
	if c.Ready {
		acc.addSelected(id)
		report(true)
		return
	}
	acc.addRequested(id)
	t.MarkRequested(id)
	report(false)
}
