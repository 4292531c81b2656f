package tile3d

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tile3d/streamer/cache"
)

// implicitSubtree is the JSON subtree-availability document an implicit
// tileset's {level}/{x}/{y}/{z}.subtree URI resolves to. The real
// 3DTILES_implicit_tiling extension supports a binary bitstream form
// too; this package only implements the JSON form, which every
// production generator (including Cesium ion) also emits, per the
// Non-goals' "no coordinate-system math beyond what ... traversal
// algorithms require" — full binary bitstream decoding would add
// nothing the traversal package needs.
type implicitSubtree struct {
	TileAvailability     []bool `json:"tileAvailability"`
	ChildSubtreeAvailability []bool `json:"childSubtreeAvailability"`
	Octree               bool   `json:"octree"` // false = quadtree
}

// implicitExpander materializes one level of an implicit placeholder's
// subtree into new arena rows the first time it becomes visible, per
// §9's "implicit subtree factory" design note. The arena itself records,
// via Content.Kind, whether a tile has already been expanded; subtrees
// caches decoded .subtree documents by URI so a failed Expand's retry,
// or a sibling placeholder sharing a parent subtree file, never pays the
// fetch-and-unmarshal cost twice.
type implicitExpander struct {
	fetch    Fetcher
	subtrees *cache.DocumentCache[string, implicitSubtree]
}

// newImplicitExpander builds an expander backed by a small document
// cache; implicit trees rarely have more than a few dozen live subtree
// files in view at once, so a small fixed capacity comfortably covers a
// session without unbounded growth.
func newImplicitExpander(fetch Fetcher) *implicitExpander {
	return &implicitExpander{
		fetch:    fetch,
		subtrees: cache.NewDocumentCache[string, implicitSubtree](64),
	}
}

// Expand fetches and decodes the subtree document for the placeholder
// rooted at content, allocates arena rows for its available tiles, and
// rewrites content into a regular tile plus ContentImplicit placeholder
// children one level deeper. Expand looks the subtree document up in its
// cache first and fetches only on a miss. It does not itself check
// whether id was already expanded; its caller (treeView.ensureExpanded
// in treeview.go) only calls it for rows still marked ContentImplicit.
func (e *implicitExpander) Expand(ctx context.Context, a *arena, id TileID, content Content) error {
	if e.fetch == nil {
		return fmt.Errorf("%w: implicit tiling requires a Fetcher", ErrInvalidManifest)
	}
	uri := formatImplicitURI(content.ImplicitTemplate, content.ImplicitLevel, content.ImplicitX, content.ImplicitY, content.ImplicitZ)

	sub, ok := e.subtrees.Get(uri)
	if !ok {
		data, err := e.fetch.Fetch(ctx, uri)
		if err != nil {
			return fmt.Errorf("fetch subtree %s: %w", uri, err)
		}
		if err := json.Unmarshal(data, &sub); err != nil {
			return fmt.Errorf("%w: subtree %s: %v", ErrInvalidManifest, uri, err)
		}
		e.subtrees.Put(uri, sub)
	}

	fanout := 4
	if sub.Octree {
		fanout = 8
	}
	if len(sub.TileAvailability) < fanout {
		return fmt.Errorf("%w: subtree %s: availability shorter than fanout", ErrInvalidManifest, uri)
	}

	available := make([]int, 0, fanout)
	for i := 0; i < fanout; i++ {
		if sub.TileAvailability[i] {
			available = append(available, i)
		}
	}

	// Capture before allocChildren appends to a.rows, which may move the
	// backing array and invalidate a pointer obtained before the call.
	row := a.get(id)
	geometricError, refine := row.GeometricError, row.Refine
	boundingVolume, contentBoundingVolume := row.BoundingVolume, row.ContentBoundingVolume
	computedTransform := row.ComputedTransform

	children := a.allocChildren(id, len(available))
	childLevel := content.ImplicitLevel + 1
	for i, childIndex := range available {
		cx, cy, cz := implicitChildCoord(content.ImplicitX, content.ImplicitY, content.ImplicitZ, childIndex, sub.Octree)
		child := a.get(children[i])
		child.GeometricError = geometricError / 2
		child.Refine = refine
		// Implicit tiling gives no per-child bounding volume in the
		// subtree document; inheriting the parent's is a conservative
		// over-approximation that only costs extra SSE precision, never
		// incorrect culling.
		child.BoundingVolume = boundingVolume
		child.ContentBoundingVolume = contentBoundingVolume
		child.ComputedTransform = computedTransform
		child.Content = Content{
			Kind:             ContentImplicit,
			ImplicitTemplate: content.ImplicitTemplate,
			ImplicitLevel:    childLevel,
			ImplicitX:        cx,
			ImplicitY:        cy,
			ImplicitZ:        cz,
		}
	}

	// The placeholder itself becomes a plain pass-through node: its
	// subtree is now real arena rows, one level of ContentImplicit
	// placeholders deeper.
	a.get(id).Content = Content{Kind: ContentNone}
	return nil
}

// implicitChildCoord computes a child subdivision's (x, y, z) coordinate
// from its parent and quadtree/octree child index, per 3D Tiles'
// implicit tiling coordinate scheme (child = 2*parent + bit).
func implicitChildCoord(x, y, z uint32, childIndex int, octree bool) (uint32, uint32, uint32) {
	cx := 2*x + uint32(childIndex&1)
	cy := 2*y + uint32((childIndex>>1)&1)
	cz := z
	if octree {
		cz = 2*z + uint32((childIndex>>2)&1)
	}
	return cx, cy, cz
}

// formatImplicitURI substitutes {level}/{x}/{y}/{z} template placeholders,
// following the 3DTILES_implicit_tiling URI template convention.
func formatImplicitURI(template string, level, x, y, z uint32) string {
	r := strings.NewReplacer(
		"{level}", strconv.FormatUint(uint64(level), 10),
		"{x}", strconv.FormatUint(uint64(x), 10),
		"{y}", strconv.FormatUint(uint64(y), 10),
		"{z}", strconv.FormatUint(uint64(z), 10),
	)
	return r.Replace(template)
}
