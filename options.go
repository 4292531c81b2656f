package tile3d

// Option configures a Tileset during construction with [Load] or
// [LoadAsync]. Use functional options to override the defaults in the
// table below; unset options keep 3D Tiles' conventional values.
//
// Example:
//
//	ts, err := tile3d.Load(manifestBytes,
//	    tile3d.WithMaximumSSE(8),
//	    tile3d.WithCacheBytes(256<<20),
//	)
type Option func(*Options)

// Options holds the full set of recognized tileset configuration values.
// A zero Options is not valid on its own; use [DefaultOptions] or apply
// [Option] values on top of it via [Load].
type Options struct {
	MaximumSSE                float64
	CacheBytes                int64
	MaximumCacheOverflowBytes int64

	CullWithChildrenBounds             bool
	CullRequestsWhileMoving            bool
	CullRequestsWhileMovingMultiplier  float64
	PreloadWhenHidden                  bool
	PreloadFlightDestinations          bool
	PreferLeaves                       bool

	DynamicSSE              bool
	DynamicSSEDensity       float64
	DynamicSSEFactor        float64
	DynamicSSEHeightFalloff float64

	ProgressiveResolutionHeightFraction float64

	FoveatedSSE           bool
	FoveatedConeSize      float64
	FoveatedMinSSERelax   float64
	FoveatedTimeDelay     float64
	FoveatedInterpolation InterpolationFunc

	SkipLOD                   bool
	BaseSSE                   float64
	SkipSSEFactor             float64
	SkipLevels                int
	ImmediatelyLoadDesiredLOD bool
	LoadSiblings              bool

	// Fetcher, ContentLoader, Clock, and Renderer are the embedder-supplied
	// collaborators described in interfaces.go. Nil Fetcher/ContentLoader
	// is valid for tilesets built only for picking/height-query use where
	// the embedder drives fetch/decode externally; a nil Clock defaults to
	// the real wall clock.
	Fetcher       Fetcher
	ContentLoader ContentLoader
	Clock         Clock
	Renderer      Renderer

	// RayTester performs content-specific ray intersection for
	// QueryHeight. Nil means height queries always report "no hit".
	RayTester RayTester

	// Workers sizes the schedule.Pool used to issue fetches concurrently.
	Workers int
}

// InterpolationFunc maps a normalized foveation factor in [0,1] to an SSE
// relaxation factor in the same range. [LerpInterpolation] is the default.
type InterpolationFunc func(t float64) float64

// LerpInterpolation is the identity interpolation: f(t) = t.
func LerpInterpolation(t float64) float64 { return t }

// DefaultOptions returns the option set with every recognized option set
// to its 3D Tiles conventional default.
func DefaultOptions() Options {
	return Options{
		MaximumSSE:                16,
		CacheBytes:                512 << 20,
		MaximumCacheOverflowBytes: 512 << 20,

		CullWithChildrenBounds:            true,
		CullRequestsWhileMoving:           true,
		CullRequestsWhileMovingMultiplier: 60,
		PreloadWhenHidden:                 false,
		PreloadFlightDestinations:         true,
		PreferLeaves:                      false,

		DynamicSSE:              true,
		DynamicSSEDensity:       2e-4,
		DynamicSSEFactor:        24,
		DynamicSSEHeightFalloff: 0.25,

		ProgressiveResolutionHeightFraction: 0.3,

		FoveatedSSE:           true,
		FoveatedConeSize:      0.1,
		FoveatedMinSSERelax:   0,
		FoveatedTimeDelay:     0.2,
		FoveatedInterpolation: LerpInterpolation,

		SkipLOD:                   false,
		BaseSSE:                   1024,
		SkipSSEFactor:             16,
		SkipLevels:                1,
		ImmediatelyLoadDesiredLOD: false,
		LoadSiblings:              false,

		Workers: 4,
	}
}

// WithMaximumSSE sets the screen-space-error threshold, in pixels, below
// which a tile is considered detailed enough and refinement stops.
func WithMaximumSSE(px float64) Option {
	return func(o *Options) { o.MaximumSSE = px }
}

// WithCacheBytes sets the soft LRU eviction budget.
func WithCacheBytes(bytes int64) Option {
	return func(o *Options) { o.CacheBytes = bytes }
}

// WithMaximumCacheOverflowBytes sets the hard-limit headroom above
// CacheBytes that the working set may transiently occupy.
func WithMaximumCacheOverflowBytes(bytes int64) Option {
	return func(o *Options) { o.MaximumCacheOverflowBytes = bytes }
}

// WithCullRequestsWhileMoving enables or disables the move-cull heuristic
// and sets its benefit-threshold multiplier.
func WithCullRequestsWhileMoving(enabled bool, multiplier float64) Option {
	return func(o *Options) {
		o.CullRequestsWhileMoving = enabled
		o.CullRequestsWhileMovingMultiplier = multiplier
	}
}

// WithPreloadWhenHidden runs traversal (and issues requests) even while
// the tileset's show flag is false, without rendering selected tiles.
func WithPreloadWhenHidden(enabled bool) Option {
	return func(o *Options) { o.PreloadWhenHidden = enabled }
}

// WithPreferLeaves biases request priority toward deeper tiles.
func WithPreferLeaves(enabled bool) Option {
	return func(o *Options) { o.PreferLeaves = enabled }
}

// WithDynamicSSE enables camera-height-driven SSE modulation (§4.G) and
// sets its density, factor, and height-falloff parameters.
func WithDynamicSSE(enabled bool, density, factor, heightFalloff float64) Option {
	return func(o *Options) {
		o.DynamicSSE = enabled
		o.DynamicSSEDensity = density
		o.DynamicSSEFactor = factor
		o.DynamicSSEHeightFalloff = heightFalloff
	}
}

// WithFoveation enables foveated prioritization and sets its cone size,
// relaxed-SSE floor, and post-motion request delay.
func WithFoveation(enabled bool, coneSize, minSSERelax, timeDelay float64) Option {
	return func(o *Options) {
		o.FoveatedSSE = enabled
		o.FoveatedConeSize = coneSize
		o.FoveatedMinSSERelax = minSSERelax
		o.FoveatedTimeDelay = timeDelay
	}
}

// WithSkipLOD enables the Skip-LOD traversal strategy (§4.D.2) and sets
// its base SSE, skip factor, and skip-level depth delta.
func WithSkipLOD(enabled bool, baseSSE, skipSSEFactor float64, skipLevels int) Option {
	return func(o *Options) {
		o.SkipLOD = enabled
		o.BaseSSE = baseSSE
		o.SkipSSEFactor = skipSSEFactor
		o.SkipLevels = skipLevels
	}
}

// WithLoadSiblings toggles whether requesting one child also requests its
// siblings, for smoother panning.
func WithLoadSiblings(enabled bool) Option {
	return func(o *Options) { o.LoadSiblings = enabled }
}

// WithFetcher sets the transport collaborator used to fetch tile content.
func WithFetcher(f Fetcher) Option {
	return func(o *Options) { o.Fetcher = f }
}

// WithContentLoader sets the collaborator used to decode fetched bytes
// into renderable content.
func WithContentLoader(c ContentLoader) Option {
	return func(o *Options) { o.ContentLoader = c }
}

// WithClock overrides the tileset's time source. Tests inject a fake
// Clock so content expiry and the camera's stopped-time measurement
// (which gates foveated requests) are deterministic.
func WithClock(c Clock) Option {
	return func(o *Options) { o.Clock = c }
}

// WithRenderer attaches a Renderer to receive end-of-pass snapshots
// directly from Update, in addition to Tileset.Snapshot.
func WithRenderer(r Renderer) Option {
	return func(o *Options) { o.Renderer = r }
}

// WithRayTester sets the collaborator QueryHeight uses to intersect a ray
// against a resident tile's decoded content.
func WithRayTester(r RayTester) Option {
	return func(o *Options) { o.RayTester = r }
}

// WithWorkers sizes the fetch worker pool. Load rejects n <= 0 with
// ErrInvalidOption.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}
