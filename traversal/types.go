// Package traversal implements the per-frame visibility and
// screen-space-error walk described by the 3D Tiles refinement
// algorithm: Base (strict), Skip-LOD (relaxed), and Most-Detailed
// (threshold-zero, for picking and preload).
//
// The package is engine-agnostic: it knows nothing about manifests,
// fetching, or the cache. It operates entirely through the Tree
// interface, which the tile3d package satisfies by adapting its tile
// arena. This keeps the traversal algorithms unit-testable against a
// small in-memory fake tree, independent of the rest of the engine.
package traversal

// NodeID identifies a node in the tree being walked. Implementations
// typically alias this to their own tile-id type (tile3d.TileID is a
// uint32, convertible to and from NodeID without allocation).
type NodeID uint32

// Refine is a node's refinement rule, mirrored here (rather than imported
// from tile3d) so this package has no dependency on the engine package —
// tile3d depends on traversal, not the reverse.
type Refine uint8

const (
	RefineAdd Refine = iota
	RefineReplace
)

// Classification is the result of testing a node against the active
// camera. The Tree implementation alone knows the bounding volume math
// and dynamic-SSE modulation (§4.G); traversal only consumes the result.
type Classification struct {
	Culled   bool
	SSE      float64
	Ready    bool // true once the node's content is in the engine's READY state
	Distance float64
	Foveated float64 // [0,1], 0 = dead-center, 1 = fully off-axis
	Depth    int

	// ProgressiveReady is true when the tile's error is still significant
	// even measured against a reduced "first pass" screen height, so its
	// fetch should be prioritized ahead of tiles that only matter at full
	// resolution — progressive_resolution_height_fraction's effect.
	ProgressiveReady bool
}

// Tree is everything a traversal strategy needs from the engine.
type Tree interface {
	Root() NodeID
	Children(NodeID) []NodeID
	IsLeaf(NodeID) bool
	Refine(NodeID) Refine

	// HasRenderableContent reports false for an empty tile (§4.D.1's
	// "empty list" case): traversed for its transform but never selected
	// for rendering.
	HasRenderableContent(NodeID) bool

	// Classify evaluates id against the pass's active camera.
	Classify(NodeID) Classification

	// MarkVisited records that id was visited this pass (feeds the
	// touched-bitmap cancellation/eviction machinery).
	MarkVisited(NodeID)

	// MarkRequested records that id needs its content fetched.
	MarkRequested(NodeID)
}

// Result is the three disjoint lists a traversal pass produces, per
// §4.D.1: tiles to render, tiles to update but not render, and tiles to
// fetch.
type Result struct {
	Selected  []NodeID
	Empty     []NodeID
	Requested []NodeID
}

func (r *Result) addSelected(id NodeID)  { r.Selected = append(r.Selected, id) }
func (r *Result) addEmpty(id NodeID)     { r.Empty = append(r.Empty, id) }
func (r *Result) addRequested(id NodeID) { r.Requested = append(r.Requested, id) }

// accumulator collects a subtree's contribution to the pass's final
// lists. *Result is the top-level accumulator; a REPLACE node awaiting
// its children's readiness uses a *replaceState instead, so its
// contribution can be discarded (in favor of selecting the node itself)
// without having already leaked into the final Result.
type accumulator interface {
	addSelected(NodeID)
	addEmpty(NodeID)
	addRequested(NodeID)
}
