package tile3d

import (
	"context"
	"encoding/json"
	"fmt"
)

// Load parses tileset JSON and constructs a Tileset ready for Update,
// applying opts on top of DefaultOptions(). The manifest's root tile
// becomes the arena's first real row (slot 0 stays the null sentinel).
func Load(data []byte, opts ...Option) (*Tileset, error) {
	probe, err := parseManifest(data)
	if err != nil {
		return nil, err
	}
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.CacheBytes < 0 || options.Workers <= 0 {
		return nil, fmt.Errorf("%w: CacheBytes must be >= 0 and Workers > 0", ErrInvalidOption)
	}

	a := newArena()
	var root jsonTile
	if err := json.Unmarshal(probe.Root, &root); err != nil {
		return nil, fmt.Errorf("%w: root: %v", ErrInvalidManifest, err)
	}
	rootID, err := buildArena(a, root, Identity4(), RefineReplace)
	if err != nil {
		return nil, err
	}

	Logger().Info("tile3d: tileset loaded", "tiles", a.count(), "version", probe.Asset.Version)
	return newTileset(a, rootID, options), nil
}

// LoadAsync fetches uri via fetcher and then behaves exactly like Load.
// It is a convenience for the common "manifest itself comes from the same
// transport as tile content" case; opts should still include
// WithFetcher(fetcher) so subsequent tile fetches reuse it.
func LoadAsync(ctx context.Context, fetcher Fetcher, uri string, opts ...Option) (*Tileset, error) {
	data, err := fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest %s: %w", uri, err)
	}
	return Load(data, opts...)
}

// buildFrame is one pending node in the explicit-stack tileset build,
// following §9's "explicit stack, not recursion" design note so an
// unusually deep tileset never risks a goroutine stack overflow.
type buildFrame struct {
	json            jsonTile
	id              TileID
	parentRefine    Refine
	parentTransform Matrix4
	depth           int
}

// buildArena allocates one arena row per jsonTile node reachable from
// root, in an explicit-stack pre-order walk, and returns the root's id.
func buildArena(a *arena, root jsonTile, baseTransform Matrix4, inheritedRefine Refine) (TileID, error) {
	rootID := a.alloc()
	stack := []buildFrame{{json: root, id: rootID, parentRefine: inheritedRefine, parentTransform: baseTransform, depth: 0}}

	for len(stack) > 0 {
		n := len(stack) - 1
		f := stack[n]
		stack = stack[:n]

		row := a.get(f.id)
		local := parseTransform(f.json.Transform)
		row.Transform = local
		row.ComputedTransform = f.parentTransform.Multiply(local)
		row.Depth = f.depth
		row.GeometricError = f.json.GeometricError

		if f.json.Refine != "" {
			row.Refine = parseRefine(f.json.Refine)
		} else {
			row.Refine = f.parentRefine
		}

		bv, err := parseBoundingVolume(f.json.BoundingVolume)
		if err != nil {
			return 0, err
		}
		row.BoundingVolume = bv.Transform(row.ComputedTransform)

		if f.json.ViewerRequestVolume != nil {
			vrv, err := parseBoundingVolume(*f.json.ViewerRequestVolume)
			if err != nil {
				return 0, err
			}
			row.ViewerRequestVolume = vrv.Transform(row.ComputedTransform)
		}

		if template, ok, err := parseImplicitTiling(f.json.Extensions); err != nil {
			return 0, err
		} else if ok {
			row.Content = Content{Kind: ContentImplicit, ImplicitTemplate: template}
			continue // implicit subtrees expand lazily; no explicit children here
		}

		content, extras, err := parseContent(f.json.Content)
		if err != nil {
			return 0, err
		}
		row.Content = content
		if extras.BoundingVolume != nil {
			row.ContentBoundingVolume = (*extras.BoundingVolume).Transform(row.ComputedTransform)
		}
		row.ExpireAt = extras.ExpireAt
		row.ExpireDuration = extras.ExpireDuration

		if len(f.json.Children) == 0 {
			continue
		}
		// Capture before allocChildren appends to a.rows, which may move
		// the backing array and invalidate row.
		refine, computedTransform := row.Refine, row.ComputedTransform
		childIDs := a.allocChildren(f.id, len(f.json.Children))
		for i, childJSON := range f.json.Children {
			stack = append(stack, buildFrame{
				json:            childJSON,
				id:              childIDs[i],
				parentRefine:    refine,
				parentTransform: computedTransform,
				depth:           f.depth + 1,
			})
		}
	}
	return rootID, nil
}
