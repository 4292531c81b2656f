package tile3d

// Pass selects which of the seven traversal/scheduling behaviors
// Tileset.Update runs this call, per §4.H's pass dispatcher.
type Pass uint8

const (
	// PassRender is the ordinary frame pass: Base or Skip-LOD traversal,
	// scheduler enabled, selected tiles handed to the Renderer.
	PassRender Pass = iota

	// PassPick runs Most-Detailed traversal for a single ray without
	// disturbing the render pass's request queue.
	PassPick

	// PassPreload runs the render pass's traversal strategy but never
	// marks tiles visible, so content warms the cache ahead of need
	// without being displayed.
	PassPreload

	// PassPreloadFlight preloads along a flight path destination camera,
	// per PreloadFlightDestinations.
	PassPreloadFlight

	// PassMostDetailedPreload runs Most-Detailed traversal purely to warm
	// the cache, issuing requests but never selecting tiles for display.
	PassMostDetailedPreload

	// PassMostDetailedPick is PassPick's synchronous cousin: it also runs
	// Most-Detailed traversal, but HasRenderableContent tiles that are
	// not yet READY are only noted, never requested, since the caller
	// wants whatever is already resident right now.
	PassMostDetailedPick

	// PassRequestRenderModeDeferCheck re-runs traversal without touching
	// the scheduler, used to answer "would this pass's initial-load gate
	// be satisfied right now" without side effects.
	PassRequestRenderModeDeferCheck
)

func (p Pass) String() string {
	switch p {
	case PassRender:
		return "RENDER"
	case PassPick:
		return "PICK"
	case PassPreload:
		return "PRELOAD"
	case PassPreloadFlight:
		return "PRELOAD_FLIGHT"
	case PassMostDetailedPreload:
		return "MOST_DETAILED_PRELOAD"
	case PassMostDetailedPick:
		return "MOST_DETAILED_PICK"
	case PassRequestRenderModeDeferCheck:
		return "REQUEST_RENDER_MODE_DEFER_CHECK"
	default:
		return "UNKNOWN"
	}
}

// passBehavior is the per-pass wiring §4.H describes: which traversal
// strategy runs, whether the scheduler issues fetches, whether selected
// tiles are marked visible/handed to the Renderer, and whether the pass
// ignores in-flight command bookkeeping entirely.
type passBehavior struct {
	mostDetailed    bool // force threshold-zero traversal instead of Base/Skip-LOD
	runScheduler    bool
	markVisible     bool
	ignoreCommands  bool // does not perturb touched-frame/in-flight tracking
}

func behaviorFor(p Pass) passBehavior {
	switch p {
	case PassRender:
		return passBehavior{runScheduler: true, markVisible: true}
	case PassPick:
		return passBehavior{mostDetailed: true}
	case PassPreload:
		return passBehavior{runScheduler: true}
	case PassPreloadFlight:
		return passBehavior{runScheduler: true}
	case PassMostDetailedPreload:
		return passBehavior{mostDetailed: true, runScheduler: true}
	case PassMostDetailedPick:
		return passBehavior{mostDetailed: true, ignoreCommands: true}
	case PassRequestRenderModeDeferCheck:
		return passBehavior{ignoreCommands: true}
	default:
		return passBehavior{}
	}
}
