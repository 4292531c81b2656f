package tile3d

import (
	"context"
	"time"
)

// Fetcher retrieves the raw bytes backing a tile's content from whatever
// transport the embedder wires in (HTTP, local filesystem, an in-memory
// test double). The scheduler calls Fetch once per LOADING tile; ctx is
// cancelled if the tile is cancelled before the fetch completes.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// ContentLoader decodes a fetched byte buffer into renderable content and
// reports its resident byte cost, which the cache accounts against
// CacheBytes. contentType is the manifest's declared type (b3dm, i3dm,
// pnts, glb, cmpt, subtree, geojson). Decode is called synchronously from
// Update, on the caller's goroutine, as each fetch result is applied; it
// must not touch tile state directly.
type ContentLoader interface {
	Decode(ctx context.Context, contentType string, data []byte) (content any, byteLength int64, err error)
}

// Renderer receives the read-only per-pass snapshot of selected tiles. It
// is optional: a Tileset built only for height queries or preload never
// needs one.
type Renderer interface {
	Render(snapshot []SelectedTile)
}

// Clock abstracts wall-clock time so expiry and foveation-delay logic can
// be driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

// systemClock is the default Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// RayTester performs the content-specific ray/surface intersection a
// height query needs once QueryHeight has narrowed the candidate set to
// the most-detailed READY tiles along the ray. The core holds only byte
// blobs and bounding volumes, so this collaborator is supplied by the
// embedder (e.g. per-triangle for glTF, per-sample for a DEM raster).
type RayTester interface {
	TestRay(content any, ray Ray) (distance float64, hit bool)
}

// Ray is an origin and normalized direction used for picking and height
// queries.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
