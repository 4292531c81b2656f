package tile3d

import "time"

// TileID identifies a tile within a Tileset's arena. The zero value is
// reserved as the null id: no tile, no parent, no children — so a
// zero-value tileData row correctly reads as "no parent" / "no children"
// without a separate boolean flag.
type TileID uint32

// Refine is a tile's refinement rule.
type Refine uint8

const (
	// RefineAdd means the parent stays selected when children are shown
	// (additive detail).
	RefineAdd Refine = iota
	// RefineReplace means children replace the parent once all of them
	// are ready.
	RefineReplace
)

func (r Refine) String() string {
	if r == RefineAdd {
		return "ADD"
	}
	return "REPLACE"
}

// ContentKind discriminates the shape of a tile's content descriptor.
type ContentKind uint8

const (
	// ContentNone is an empty tile: no geometry, traversed for its
	// transform only.
	ContentNone ContentKind = iota
	// ContentSingle is a single content.uri / content.type pair.
	ContentSingle
	// ContentMultiple is the 3DTILES_multiple_contents extension's list
	// of content descriptors.
	ContentMultiple
	// ContentImplicit is an implicit-tiling placeholder whose subtree is
	// materialized lazily on first visibility (see implicit.go).
	ContentImplicit
)

// Content describes what a tile renders or, for ContentImplicit, how its
// subtree is addressed.
type Content struct {
	Kind ContentKind

	// Single
	URI  string
	Type string

	// Multiple
	Items []Content

	// Implicit
	ImplicitTemplate                        string
	ImplicitLevel, ImplicitX, ImplicitY, ImplicitZ uint32
}

// State is a tile's lifecycle state (§4.B).
type State uint8

const (
	StateUnloaded State = iota
	StateLoading
	StateProcessing
	StateReady
	StateExpired
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "UNLOADED"
	case StateLoading:
		return "LOADING"
	case StateProcessing:
		return "PROCESSING"
	case StateReady:
		return "READY"
	case StateExpired:
		return "EXPIRED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// SelectedTile is the read-only, copied-out view of a tile handed to a
// Renderer via Tileset.Snapshot or the Renderer interface. It carries
// everything a renderer needs without exposing the arena's internal
// representation or requiring synchronization.
type SelectedTile struct {
	ID                    TileID
	ComputedTransform     Matrix4
	BoundingVolume        BoundingVolume
	ContentBoundingVolume BoundingVolume
	Content               Content
	GeometricError        float64
	Refine                Refine
	DistanceToCamera      float64
	ReverseSSE            float64
	FoveatedFactor        float64
	Depth                 int

	// Data is the decoded content produced by ContentLoader.Decode, or
	// nil for ContentNone tiles.
	Data any
}

// tileData is one arena row: a tile's full state, stored by value in a
// flat slice and addressed by TileID so the tree never allocates a
// pointer per node.
type tileData struct {
	Parent      TileID
	FirstChild  TileID
	NumChildren uint16

	GeometricError        float64
	Refine                Refine
	BoundingVolume        BoundingVolume
	ContentBoundingVolume BoundingVolume // nil means "use BoundingVolume"
	ViewerRequestVolume   BoundingVolume // nil means unset
	Transform             Matrix4
	ComputedTransform     Matrix4

	Content Content

	State          State
	FailureMessage string
	FailureURI     string
	ByteLength     int64
	ExpireAt       time.Time     // zero means no expiry
	ExpireDuration time.Duration // zero means "use ExpireAt as-is"; else applied relative to fetch time
	Data           any

	// Priority fields, recomputed every pass.
	Depth            int
	DistanceToCamera float64
	FoveatedFactor   float64
	ReverseSSE       float64
	ProgressiveReady bool

	TouchedFrame  uint64
	SelectedFrame uint64
	VisibleFrame  uint64
	RequestFrame  uint64

	// fetchCancel cancels an in-flight Fetch; nil unless State ==
	// StateLoading.
	fetchCancel func()
}

// effectiveContentBoundingVolume returns ContentBoundingVolume if set,
// else BoundingVolume, per §3's "falls back to bounding_volume".
func (t *tileData) effectiveContentBoundingVolume() BoundingVolume {
	if t.ContentBoundingVolume != nil {
		return t.ContentBoundingVolume
	}
	return t.BoundingVolume
}

// isLeaf reports whether the tile has no children.
func (t *tileData) isLeaf() bool {
	return t.NumChildren == 0
}
