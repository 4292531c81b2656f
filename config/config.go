// Package config loads tile3d.Options from a TOML file, following
// noisetorch's config.go: defaults are filled into a literal before
// decoding so a partial file only overrides the fields it mentions.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	tile3d "github.com/tile3d/streamer"
)

// fileConfig mirrors the serializable subset of tile3d.Options; the
// collaborator fields (Fetcher, ContentLoader, Clock, Renderer) and the
// FoveatedInterpolation func have no TOML representation and are left for
// the caller to attach with tile3d.Option values after Load returns.
type fileConfig struct {
	MaximumSSE                float64 `toml:"maximum_sse"`
	CacheBytes                int64   `toml:"cache_bytes"`
	MaximumCacheOverflowBytes int64   `toml:"maximum_cache_overflow_bytes"`

	CullWithChildrenBounds            bool    `toml:"cull_with_children_bounds"`
	CullRequestsWhileMoving           bool    `toml:"cull_requests_while_moving"`
	CullRequestsWhileMovingMultiplier float64 `toml:"cull_requests_while_moving_multiplier"`
	PreloadWhenHidden                 bool    `toml:"preload_when_hidden"`
	PreloadFlightDestinations         bool    `toml:"preload_flight_destinations"`
	PreferLeaves                      bool    `toml:"prefer_leaves"`

	DynamicSSE              bool    `toml:"dynamic_sse"`
	DynamicSSEDensity       float64 `toml:"dynamic_sse_density"`
	DynamicSSEFactor        float64 `toml:"dynamic_sse_factor"`
	DynamicSSEHeightFalloff float64 `toml:"dynamic_sse_height_falloff"`

	ProgressiveResolutionHeightFraction float64 `toml:"progressive_resolution_height_fraction"`

	FoveatedSSE         bool    `toml:"foveated_sse"`
	FoveatedConeSize    float64 `toml:"foveated_cone_size"`
	FoveatedMinSSERelax float64 `toml:"foveated_min_sse_relax"`
	FoveatedTimeDelay   float64 `toml:"foveated_time_delay"`

	SkipLOD                   bool    `toml:"skip_lod"`
	BaseSSE                   float64 `toml:"base_sse"`
	SkipSSEFactor             float64 `toml:"skip_sse_factor"`
	SkipLevels                int     `toml:"skip_levels"`
	ImmediatelyLoadDesiredLOD bool    `toml:"immediately_load_desired_lod"`
	LoadSiblings              bool    `toml:"load_siblings"`

	Workers int `toml:"workers"`
}

func defaultFileConfig() fileConfig {
	d := tile3d.DefaultOptions()
	return fileConfig{
		MaximumSSE:                d.MaximumSSE,
		CacheBytes:                d.CacheBytes,
		MaximumCacheOverflowBytes: d.MaximumCacheOverflowBytes,

		CullWithChildrenBounds:            d.CullWithChildrenBounds,
		CullRequestsWhileMoving:           d.CullRequestsWhileMoving,
		CullRequestsWhileMovingMultiplier: d.CullRequestsWhileMovingMultiplier,
		PreloadWhenHidden:                 d.PreloadWhenHidden,
		PreloadFlightDestinations:         d.PreloadFlightDestinations,
		PreferLeaves:                      d.PreferLeaves,

		DynamicSSE:              d.DynamicSSE,
		DynamicSSEDensity:       d.DynamicSSEDensity,
		DynamicSSEFactor:        d.DynamicSSEFactor,
		DynamicSSEHeightFalloff: d.DynamicSSEHeightFalloff,

		ProgressiveResolutionHeightFraction: d.ProgressiveResolutionHeightFraction,

		FoveatedSSE:         d.FoveatedSSE,
		FoveatedConeSize:    d.FoveatedConeSize,
		FoveatedMinSSERelax: d.FoveatedMinSSERelax,
		FoveatedTimeDelay:   d.FoveatedTimeDelay,

		SkipLOD:                   d.SkipLOD,
		BaseSSE:                   d.BaseSSE,
		SkipSSEFactor:             d.SkipSSEFactor,
		SkipLevels:                d.SkipLevels,
		ImmediatelyLoadDesiredLOD: d.ImmediatelyLoadDesiredLOD,
		LoadSiblings:              d.LoadSiblings,

		Workers: d.Workers,
	}
}

func (c fileConfig) toOptions() tile3d.Options {
	o := tile3d.DefaultOptions()
	o.MaximumSSE = c.MaximumSSE
	o.CacheBytes = c.CacheBytes
	o.MaximumCacheOverflowBytes = c.MaximumCacheOverflowBytes

	o.CullWithChildrenBounds = c.CullWithChildrenBounds
	o.CullRequestsWhileMoving = c.CullRequestsWhileMoving
	o.CullRequestsWhileMovingMultiplier = c.CullRequestsWhileMovingMultiplier
	o.PreloadWhenHidden = c.PreloadWhenHidden
	o.PreloadFlightDestinations = c.PreloadFlightDestinations
	o.PreferLeaves = c.PreferLeaves

	o.DynamicSSE = c.DynamicSSE
	o.DynamicSSEDensity = c.DynamicSSEDensity
	o.DynamicSSEFactor = c.DynamicSSEFactor
	o.DynamicSSEHeightFalloff = c.DynamicSSEHeightFalloff

	o.ProgressiveResolutionHeightFraction = c.ProgressiveResolutionHeightFraction

	o.FoveatedSSE = c.FoveatedSSE
	o.FoveatedConeSize = c.FoveatedConeSize
	o.FoveatedMinSSERelax = c.FoveatedMinSSERelax
	o.FoveatedTimeDelay = c.FoveatedTimeDelay

	o.SkipLOD = c.SkipLOD
	o.BaseSSE = c.BaseSSE
	o.SkipSSEFactor = c.SkipSSEFactor
	o.SkipLevels = c.SkipLevels
	o.ImmediatelyLoadDesiredLOD = c.ImmediatelyLoadDesiredLOD
	o.LoadSiblings = c.LoadSiblings

	o.Workers = c.Workers
	return o
}

// Load reads path as TOML and returns a tile3d.Options with every field
// the file mentions applied on top of tile3d.DefaultOptions(). A missing
// key keeps its default rather than zeroing out, since decode target
// starts pre-filled with defaultFileConfig().
func Load(path string) (tile3d.Options, error) {
	conf := defaultFileConfig()
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return tile3d.Options{}, fmt.Errorf("config: couldn't read config file %q: %w", path, err)
	}
	return conf.toOptions(), nil
}
