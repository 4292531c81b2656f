// Package tile3d implements a streaming tile engine for hierarchical 3D
// geospatial datasets conforming to the 3D Tiles specification (asset
// versions 0.0, 1.0, 1.1).
//
// Given a root manifest describing a bounding-volume hierarchy of content
// tiles, the engine decides, once per rendered frame, which subset of
// tiles to fetch, hold, and hand off for rendering so that the visible
// error on screen stays below a configurable threshold, memory use stays
// within a configurable budget, and network requests are bounded,
// prioritized, and cancellable.
//
// # Quick start
//
//	ts, err := tile3d.Load(manifestBytes, tile3d.WithMaximumSSE(16), tile3d.WithFetcher(httpFetcher))
//	if err != nil {
//	    // manifest errors (bad asset.version, unsupported required
//	    // extension) are returned here; nothing else in this package
//	    // returns an error for per-tile failures.
//	}
//	defer ts.Close()
//	for frame := 0; ; frame++ {
//	    ts.SetCamera(camera)
//	    ts.SetViewport(viewport)
//	    if _, err := ts.Update(tile3d.PassRender); err != nil {
//	        break
//	    }
//	    for _, t := range ts.Snapshot() {
//	        renderer.Draw(t)
//	    }
//	}
//
// # Architecture
//
//   - Bounding volumes and the tile arena live in this package.
//   - Traversal strategies (base, skip-LOD, most-detailed) live in
//     [github.com/tile3d/streamer/traversal].
//   - The request pipeline lives in
//     [github.com/tile3d/streamer/schedule].
//   - The LRU tile cache and adaptive SSE relaxation live in
//     [github.com/tile3d/streamer/cache].
//
// Rendering, content decoding, transport, and styling are external
// collaborators: this package only decides what to show and what to
// fetch. See [Renderer], [ContentLoader], and [Fetcher] for the
// boundaries.
package tile3d
