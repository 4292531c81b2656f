package tile3d

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tile3d/streamer/cache"
	"github.com/tile3d/streamer/schedule"
	"github.com/tile3d/streamer/traversal"
)

// Tileset is a loaded tile tree plus everything needed to drive it
// frame-to-frame: the fetch scheduler, the byte-budget cache, adaptive
// SSE hysteresis, and the hook queue. Construct one with [Load] or
// [LoadAsync]; call Update once per pass.
type Tileset struct {
	arena   *arena
	root    TileID
	options Options
	hooks   Hooks

	cache     *cache.TileCache[TileID, struct{}]
	scheduler *schedule.Scheduler[TileID]
	adaptive  *cache.AdaptiveSSE
	hookQ     hookQueue
	expander  *implicitExpander

	mu        sync.Mutex
	camera    Camera
	stoppedAt time.Time // zero while the camera is moving
	viewport  Viewport
	frame     uint64
	closed    bool

	snapshotMu sync.Mutex
	snapshot   []SelectedTile

	initialLoadFired bool
}

func newTileset(a *arena, root TileID, options Options) *Tileset {
	ts := &Tileset{
		arena:     a,
		root:      root,
		options:   options,
		cache:     cache.New[TileID, struct{}](options.CacheBytes, options.MaximumCacheOverflowBytes),
		scheduler: schedule.NewScheduler[TileID](options.Workers, 256),
		adaptive:  cache.NewAdaptiveSSE(),
		expander:  newImplicitExpander(options.Fetcher),
		viewport:  Viewport{Width: 1, Height: 1},
	}
	ts.cache.SetEvictHandler(func(id TileID, _ struct{}) {
		if !ts.arena.valid(id) {
			return
		}
		row := ts.arena.get(id)
		if row.State == StateReady {
			row.evict()
			ts.hookQ.tileUnload(id)
		}
	})
	return ts
}

// SetHooks installs the observer callbacks delivered at the end of every
// Update.
func (ts *Tileset) SetHooks(h Hooks) { ts.hooks = h }

// SetCamera updates the camera used by the next Update call. It derives
// SecondsSinceStopped from successive Moved transitions, so callers never
// compute it themselves: Moved resets the stopped clock, and the first
// SetCamera after it goes false starts timing from that call.
func (ts *Tileset) SetCamera(cam Camera) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	now := ts.clock().Now()
	if cam.Moved {
		ts.stoppedAt = time.Time{}
	} else if ts.stoppedAt.IsZero() {
		ts.stoppedAt = now
	}
	if !ts.stoppedAt.IsZero() {
		cam.SecondsSinceStopped = now.Sub(ts.stoppedAt).Seconds()
	}
	ts.camera = cam
}

// SetViewport updates the render target size used by the next Update call.
func (ts *Tileset) SetViewport(vp Viewport) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.viewport = vp
}

// CacheStats reports the resident-content cache's current bookkeeping.
func (ts *Tileset) CacheStats() cache.Stats { return ts.cache.Stats() }

// SchedulerStats reports the fetch worker pool's configured size and its
// current in-flight and queued fetch counts.
type SchedulerStats struct {
	Workers  int
	InFlight int
	Queued   int
}

// SchedulerStats reports a snapshot of the fetch scheduler's worker pool.
func (ts *Tileset) SchedulerStats() SchedulerStats {
	return SchedulerStats{
		Workers:  ts.scheduler.Workers(),
		InFlight: ts.scheduler.InFlightCount(),
		Queued:   ts.scheduler.QueuedWork(),
	}
}

// SetCacheBudget changes the resident-content cache's soft budget and hard
// overflow headroom at runtime, evicting immediately if the new hard limit
// is now below the current resident size. Since adaptive SSE relaxation
// (§4.F) exists only to cope with the budget in effect when it was last
// raised, a deliberate budget change resets the relaxation tracker back to
// no relaxation rather than carrying forward a factor tuned for the old
// limit.
func (ts *Tileset) SetCacheBudget(budgetBytes, overflowHeadroomBytes int64) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.options.CacheBytes = budgetBytes
	ts.options.MaximumCacheOverflowBytes = overflowHeadroomBytes
	ts.cache.SetBudget(budgetBytes, overflowHeadroomBytes)
	ts.adaptive.Reset()
}

// clock returns the embedder's Clock, or the real wall clock if none was
// configured.
func (ts *Tileset) clock() Clock {
	if ts.options.Clock != nil {
		return ts.options.Clock
	}
	return systemClock{}
}

// expireStaleContent transitions READY tiles whose ExpireAt has passed to
// EXPIRED, so issueRequests re-fetches them the same as an UNLOADED tile.
// A full arena scan is cheap relative to a fetch round-trip and avoids
// tracking a separate expiry-ordered index for what is normally a small
// fraction of tiles.
func (ts *Tileset) expireStaleContent() {
	now := ts.clock().Now()
	for i := range ts.arena.rows {
		id := TileID(i)
		row := &ts.arena.rows[i]
		if row.State == StateReady && !row.ExpireAt.IsZero() && !now.Before(row.ExpireAt) {
			row.expire()
			ts.cache.Remove(id)
		}
	}
}

// MemoryAdjustedSSE returns the screen-space-error threshold actually in
// effect after adaptive relaxation (§4.F, §7's "observed only through ...
// the MemoryAdjustedSSE() accessor").
func (ts *Tileset) MemoryAdjustedSSE() float64 {
	return effectiveMaximumSSE(ts.camera.HeightAboveGround, ts.camera, ts.options, ts.adaptive.Factor())
}

// Update runs one pass: applies buffered fetch completions, walks the
// tree with the traversal strategy pass calls for, issues new fetches,
// and drains hooks. ready reports whether every tile the pass wants is
// already resident (no outstanding or newly issued request).
func (ts *Tileset) Update(pass Pass) (ready bool, err error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.closed {
		return false, ErrTilesetClosed
	}
	if pass > PassRequestRenderModeDeferCheck {
		return false, fmt.Errorf("%w: %d", ErrUnknownPass, pass)
	}
	behavior := behaviorFor(pass)
	ts.frame++
	Logger().Debug("tile3d: update", "frame", ts.frame, "pass", pass)

	ts.prePass(behavior)

	view := newTreeView(ts)
	maxSSE := effectiveMaximumSSE(ts.camera.HeightAboveGround, ts.camera, ts.options, ts.adaptive.Factor())

	var result traversal.Result
	switch {
	case behavior.mostDetailed:
		result = traversal.MostDetailed(view)
	case ts.options.SkipLOD:
		result = traversal.SkipLOD(view, maxSSE, ts.skipLODConfig())
	default:
		result = traversal.Base(view, maxSSE)
	}

	ts.applySelected(result.Selected, behavior)

	if behavior.runScheduler && ts.options.Fetcher != nil {
		ts.issueRequests(result.Requested)
	}

	ts.postPass(behavior)

	ready = len(result.Requested) == 0 && ts.scheduler.InFlightCount() == 0
	return ready, nil
}

func (ts *Tileset) skipLODConfig() traversal.SkipLODConfig {
	return traversal.SkipLODConfig{
		BaseSSE:                   ts.options.BaseSSE,
		SkipSSEFactor:             ts.options.SkipSSEFactor,
		SkipLevels:                ts.options.SkipLevels,
		ImmediatelyLoadDesiredLOD: ts.options.ImmediatelyLoadDesiredLOD,
		LoadSiblings:              ts.options.LoadSiblings,
		Foveation:                 ts.foveationConfig(),
	}
}

func (ts *Tileset) foveationConfig() traversal.FoveationConfig {
	return traversal.FoveationConfig{
		Enabled:       ts.options.FoveatedSSE,
		ConeSize:      ts.options.FoveatedConeSize,
		MinSSERelax:   ts.options.FoveatedMinSSERelax,
		TimeDelay:     ts.options.FoveatedTimeDelay,
		Interpolation: ts.options.FoveatedInterpolation,
	}
}

// prePass clears the touched bitmap, applies buffered fetch completions,
// and cancels fetches that have gone stale (untouched for a full frame).
func (ts *Tileset) prePass(behavior passBehavior) {
	ts.arena.clearTouched()
	ts.expireStaleContent()
	if behavior.ignoreCommands {
		return
	}

	for _, result := range ts.scheduler.Drain() {
		ts.applyFetchResult(result)
	}
	for _, id := range ts.scheduler.SweepStale(ts.frame) {
		if ts.arena.valid(id) {
			ts.arena.get(id).cancelLoading()
		}
	}
}

func (ts *Tileset) applyFetchResult(result schedule.Result[TileID]) {
	if !ts.arena.valid(result.ID) {
		return
	}
	row := ts.arena.get(result.ID)
	uri := contentURI(row.Content)

	if result.Err != nil {
		row.fetchFailed(uri, result.Err.Error())
		ts.hookQ.tileFailed(result.ID, uri, result.Err.Error())
		Logger().Warn("tile3d: fetch failed", "tile", result.ID, "uri", uri, "err", result.Err)
		return
	}
	row.fetchSucceeded()
	if row.ExpireDuration > 0 {
		row.ExpireAt = ts.clock().Now().Add(row.ExpireDuration)
	}

	if ts.options.ContentLoader == nil {
		row.processed(result.Data, int64(len(result.Data)))
		ts.cache.Put(result.ID, struct{}{}, row.ByteLength)
		ts.hookQ.tileLoad(result.ID)
		return
	}

	contentType := row.Content.Type
	data, byteLength, err := ts.options.ContentLoader.Decode(context.Background(), contentType, result.Data)
	if err != nil {
		row.processingFailed(err.Error())
		ts.hookQ.tileFailed(result.ID, uri, err.Error())
		Logger().Warn("tile3d: content decode failed", "tile", result.ID, "uri", uri, "err", err)
		return
	}
	row.processed(data, byteLength)
	ts.cache.Put(result.ID, struct{}{}, byteLength)
	ts.hookQ.tileLoad(result.ID)
}

func (ts *Tileset) applySelected(selected []traversal.NodeID, behavior passBehavior) {
	snapshot := make([]SelectedTile, 0, len(selected))
	for _, nid := range selected {
		id := TileID(nid)
		row := ts.arena.get(id)
		row.SelectedFrame = ts.frame
		ts.cache.Get(id) // refresh LRU position for every tile still in use

		if behavior.markVisible {
			row.VisibleFrame = ts.frame
			ts.hookQ.tileVisible(id)
		}

		snapshot = append(snapshot, SelectedTile{
			ID:                    id,
			ComputedTransform:     row.ComputedTransform,
			BoundingVolume:        row.BoundingVolume,
			ContentBoundingVolume: row.effectiveContentBoundingVolume(),
			Content:               row.Content,
			GeometricError:        row.GeometricError,
			Refine:                row.Refine,
			DistanceToCamera:      row.DistanceToCamera,
			ReverseSSE:            row.ReverseSSE,
			FoveatedFactor:        row.FoveatedFactor,
			Depth:                 row.Depth,
			Data:                  row.Data,
		})
	}

	if behavior.markVisible {
		ts.snapshotMu.Lock()
		ts.snapshot = snapshot
		ts.snapshotMu.Unlock()
		if ts.options.Renderer != nil {
			ts.options.Renderer.Render(snapshot)
		}
	}
}

func (ts *Tileset) issueRequests(requested []traversal.NodeID) {
	sorted := append([]traversal.NodeID(nil), requested...)
	traversal.SortRequested(sorted, func(nid traversal.NodeID) traversal.Score {
		row := ts.arena.get(TileID(nid))
		depth := row.Depth
		if ts.options.PreferLeaves {
			depth = -depth // invert the "shallower first" tie-break to "deeper first"
		}
		return traversal.NewScore(traversal.Classification{
			SSE:              row.ReverseSSE,
			Distance:         row.DistanceToCamera,
			Foveated:         row.FoveatedFactor,
			Depth:            depth,
			ProgressiveReady: row.ProgressiveReady,
		})
	})

	reqs := make([]schedule.Request[TileID], 0, len(sorted))
	for _, nid := range sorted {
		id := TileID(nid)
		row := ts.arena.get(id)
		if row.State != StateUnloaded && row.State != StateExpired {
			continue
		}
		if schedule.ShouldCullWhileMoving(ts.options.CullRequestsWhileMoving, ts.camera.Speed, ts.options.CullRequestsWhileMovingMultiplier, row.DistanceToCamera) {
			continue
		}
		if !ts.foveationConfig().EligibleForRequest(row.FoveatedFactor, ts.camera.SecondsSinceStopped) {
			continue
		}
		uri := contentURI(row.Content)
		if uri == "" {
			continue
		}
		tileID := id
		row.beginLoading(ts.frame, func() { ts.scheduler.Cancel(tileID) })
		fetcher := ts.options.Fetcher
		reqs = append(reqs, schedule.Request[TileID]{
			ID:    id,
			URI:   uri,
			Frame: ts.frame,
			Fetch: func(ctx context.Context) ([]byte, error) {
				return fetcher.Fetch(ctx, uri)
			},
		})
	}
	ts.scheduler.Issue(reqs)
}

func (ts *Tileset) postPass(behavior passBehavior) {
	if !behavior.ignoreCommands {
		wasRelaxed := ts.adaptive.Factor() > 1
		factor := ts.adaptive.Update(ts.cache.OverBudget())
		if factor > 1 && !wasRelaxed {
			Logger().Warn("tile3d: cache over budget, relaxing maximum SSE", "stats", ts.cache.Stats())
		}
	}
	pending, processing, total := ts.loadCounts()
	ts.hookQ.loadProgress(pending, processing, total)
	if pending == 0 && processing == 0 && total > 0 {
		ts.hookQ.allTilesLoaded()
		if !ts.initialLoadFired {
			ts.initialLoadFired = true
			ts.hookQ.initialTilesLoaded()
		}
	}
	ts.hookQ.drain(ts.hooks)
}

func (ts *Tileset) loadCounts() (pending, processing, total int) {
	for id := 1; id <= ts.arena.count(); id++ {
		row := ts.arena.get(TileID(id))
		switch row.State {
		case StateLoading:
			pending++
		case StateProcessing:
			processing++
		}
		total++
	}
	return pending, processing, total
}

// Snapshot returns the most recent markVisible pass's selected-tile list.
// The returned slice is a fresh copy safe to read from any goroutine
// without synchronizing with Update.
func (ts *Tileset) Snapshot() []SelectedTile {
	ts.snapshotMu.Lock()
	defer ts.snapshotMu.Unlock()
	out := make([]SelectedTile, len(ts.snapshot))
	copy(out, ts.snapshot)
	return out
}

// QueryHeight intersects ray against the most-detailed resident tiles
// along its path, deferring actual geometry testing to the configured
// RayTester. It reports the closest hit distance, or ok=false if no
// resident tile's RayTester call reports a hit.
func (ts *Tileset) QueryHeight(ray Ray) (distance float64, ok bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.closed || ts.options.RayTester == nil {
		return 0, false
	}

	view := newTreeView(ts)
	result := traversal.MostDetailed(view)

	best := 0.0
	found := false
	for _, nid := range result.Selected {
		id := TileID(nid)
		row := ts.arena.get(id)
		if row.State != StateReady {
			continue
		}
		d, hit := ts.options.RayTester.TestRay(row.Data, ray)
		if hit && (!found || d < best) {
			best, found = d, true
		}
	}
	return best, found
}

// Close cancels outstanding fetches (returning LOADING tiles to
// UNLOADED), then stops the fetch scheduler, waiting for in-flight work
// to finish. Update returns ErrTilesetClosed afterward, and QueryHeight
// reports no hit.
func (ts *Tileset) Close() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.closed {
		return
	}
	ts.closed = true
	for i := range ts.arena.rows {
		ts.arena.rows[i].cancelLoading()
	}
	ts.scheduler.Close()
}

// contentURI returns the URI to fetch for content, or "" if content has
// none (an empty tile, or an unresolved multiple-contents/implicit
// placeholder the caller handles separately).
func contentURI(c Content) string {
	if c.Kind == ContentSingle {
		return c.URI
	}
	return ""
}
