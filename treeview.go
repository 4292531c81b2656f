package tile3d

import (
	"context"
	"math"

	"github.com/tile3d/streamer/traversal"
)

// treeView adapts a Tileset's arena to traversal.Tree for the duration of
// a single pass. It is cheap to construct (a handful of fields copied by
// value) and holds the camera/frustum/viewport snapshot that pass uses,
// so Classify never has to re-derive them per node.
type treeView struct {
	a                         *arena
	root                      TileID
	cam                       Camera
	viewport                  Viewport
	frustum                   Frustum
	frame                     uint64
	cullWithChildrenBounds    bool
	expander                  *implicitExpander
	maximumSSE                float64
	progressiveHeightFraction float64
}

func newTreeView(ts *Tileset) *treeView {
	return &treeView{
		a:                         ts.arena,
		root:                      ts.root,
		cam:                       ts.camera,
		viewport:                  ts.viewport,
		frustum:                   NewFrustum(ts.camera.ViewProjection),
		frame:                     ts.frame,
		cullWithChildrenBounds:    ts.options.CullWithChildrenBounds,
		expander:                  ts.expander,
		maximumSSE:                ts.MemoryAdjustedSSE(),
		progressiveHeightFraction: ts.options.ProgressiveResolutionHeightFraction,
	}
}

func (v *treeView) Root() traversal.NodeID { return traversal.NodeID(v.root) }

// ensureExpanded materializes an implicit-tiling placeholder's subtree
// the first time traversal visits it, per §9's "implicit subtree
// factory" design note. A fetch failure leaves the tile ContentImplicit
// so the next visit retries rather than wedging it permanently.
func (v *treeView) ensureExpanded(id TileID) {
	row := v.a.get(id)
	if row.Content.Kind != ContentImplicit {
		return
	}
	content := row.Content
	if err := v.expander.Expand(context.Background(), v.a, id, content); err != nil {
		Logger().Warn("tile3d: implicit subtree expansion failed", "tile", id, "err", err)
	}
}

func (v *treeView) Children(id traversal.NodeID) []traversal.NodeID {
	v.ensureExpanded(TileID(id))
	ids := v.a.children(TileID(id))
	if ids == nil {
		return nil
	}
	out := make([]traversal.NodeID, len(ids))
	for i, tid := range ids {
		out[i] = traversal.NodeID(tid)
	}
	return out
}

func (v *treeView) IsLeaf(id traversal.NodeID) bool {
	v.ensureExpanded(TileID(id))
	return v.a.get(TileID(id)).isLeaf()
}

func (v *treeView) Refine(id traversal.NodeID) traversal.Refine {
	return traversal.Refine(v.a.get(TileID(id)).Refine)
}

func (v *treeView) HasRenderableContent(id traversal.NodeID) bool {
	kind := v.a.get(TileID(id)).Content.Kind
	return kind == ContentSingle || kind == ContentMultiple
}

// Classify evaluates id against the active camera and writes its priority
// fields (DistanceToCamera, FoveatedFactor, ReverseSSE, ProgressiveReady) back into
// the arena row, so SelectedTile snapshots and request scoring read them
// without recomputing.
func (v *treeView) Classify(id traversal.NodeID) traversal.Classification {
	row := v.a.get(TileID(id))

	bv := row.effectiveContentBoundingVolume()
	result := bv.IntersectFrustum(v.frustum)
	culled := result == Outside
	if !culled && v.cullWithChildrenBounds && row.NumChildren > 0 {
		// Tighten: a parent's own bounding volume can be coarser than
		// its children's combined extent, so even when the parent's test
		// alone says visible, cull it anyway if every child is OUTSIDE.
		culled = v.allChildrenOutsideFrustum(row)
	}

	distance := bv.DistanceToCamera(v.cam)
	denominator := bv.SSEDenominator(v.cam, v.viewport)
	sse := ScreenSpaceError(row.GeometricError, v.cam, v.viewport, denominator)

	foveated := foveatedFactor(v.cam, centerOf(bv))

	progressiveReady := v.progressiveReady(row.GeometricError, denominator)

	row.DistanceToCamera = distance
	row.FoveatedFactor = foveated
	row.ReverseSSE = sse
	row.ProgressiveReady = progressiveReady

	return traversal.Classification{
		Culled:           culled,
		SSE:              sse,
		Ready:            row.State == StateReady,
		Distance:         distance,
		Foveated:         foveated,
		Depth:            row.Depth,
		ProgressiveReady: progressiveReady,
	}
}

// progressiveReady reports whether a tile's error remains above threshold
// even measured against a reduced "first pass" screen height
// (progressive_resolution_height_fraction), so its fetch should win a
// coarse initial layer ahead of tiles that only matter at full
// resolution. A fraction outside (0, 0.5] disables the feature, matching
// the option's documented range.
func (v *treeView) progressiveReady(geometricError, denominator float64) bool {
	if v.progressiveHeightFraction <= 0 || v.progressiveHeightFraction > 0.5 {
		return false
	}
	reduced := Viewport{Width: v.viewport.Width, Height: int(float64(v.viewport.Height) * v.progressiveHeightFraction)}
	return ScreenSpaceError(geometricError, v.cam, reduced, denominator) >= v.maximumSSE
}

// allChildrenOutsideFrustum reports whether every direct child's own
// bounding volume tests OUTSIDE the frustum, the "union of child bounds
// reports OUTSIDE" condition that tightens a parent's own (possibly
// coarser) visibility test.
func (v *treeView) allChildrenOutsideFrustum(row *tileData) bool {
	for i := uint16(0); i < row.NumChildren; i++ {
		child := v.a.get(row.FirstChild + TileID(i))
		if child.effectiveContentBoundingVolume().IntersectFrustum(v.frustum) != Outside {
			return false
		}
	}
	return true
}

func (v *treeView) MarkVisited(id traversal.NodeID) {
	tid := TileID(id)
	v.a.markTouched(tid)
	v.a.get(tid).TouchedFrame = v.frame
}

func (v *treeView) MarkRequested(id traversal.NodeID) {
	v.a.get(TileID(id)).RequestFrame = v.frame
}

// foveatedFactor measures how far center is from the camera's view
// direction, normalized to [0,1] against half the vertical field of view:
// 0 at dead-center, 1 at or past the view cone edge.
func foveatedFactor(cam Camera, center Vec3) float64 {
	toTile := center.Sub(cam.Position)
	if toTile.IsZero() || cam.FovY <= 0 {
		return 0
	}
	dir := cam.Direction.Normalize()
	cosAngle := dir.Dot(toTile.Normalize())
	if cosAngle > 1 {
		cosAngle = 1
	} else if cosAngle < -1 {
		cosAngle = -1
	}
	angle := math.Acos(cosAngle)
	halfFov := cam.FovY / 2
	f := angle / halfFov
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// centerOf returns a representative world-space point for a bounding
// volume, used only to feed the foveation angle calculation.
func centerOf(bv BoundingVolume) Vec3 {
	switch b := bv.(type) {
	case Sphere:
		return b.Center
	case OrientedBox:
		return b.Center
	case Region:
		return b.center()
	case S2Cell:
		return b.CenterApprox
	default:
		return Vec3{}
	}
}
