package traversal

// FoveationConfig holds the §4.D "Foveated prioritization" parameters.
type FoveationConfig struct {
	Enabled bool

	// ConeSize is the half-angle (normalized to [0,1], matching
	// Classification.Foveated) within which a tile is considered
	// on-axis and gets no relaxation.
	ConeSize float64

	// MinSSERelax is the smallest additional SSE allowance granted just
	// past the cone edge; it grows toward MaximumSSE (an equal-sized second
	// allowance) as a tile approaches fully off-axis.
	MinSSERelax float64

	// TimeDelay is how long, in seconds, the camera must have been
	// stationary before an off-cone tile becomes eligible for fetch.
	TimeDelay float64

	// Interpolation maps a normalized off-cone position in [0,1] to a
	// relaxation weight in [0,1]. Defaults to linear if nil.
	Interpolation func(t float64) float64
}

func (cfg FoveationConfig) interpolate(t float64) float64 {
	if cfg.Interpolation == nil {
		return t
	}
	return cfg.Interpolation(t)
}

// EffectiveThreshold returns the SSE threshold a tile with the given
// foveated factor should be compared against. On-axis tiles (factor <=
// ConeSize) use maximumSSE unchanged. Off-axis tiles get an additional
// allowance interpolated from MinSSERelax (just past the cone edge) up to a full
// extra maximumSSE worth of slack (fully off-axis), so foveation never
// tightens the threshold, only relaxes it.
func (cfg FoveationConfig) EffectiveThreshold(maximumSSE, foveatedFactor float64) float64 {
	if !cfg.Enabled || foveatedFactor <= cfg.ConeSize {
		return maximumSSE
	}
	t := (foveatedFactor - cfg.ConeSize) / (1 - cfg.ConeSize)
	t = clamp01(t)
	relax := cfg.MinSSERelax + cfg.interpolate(t)*(maximumSSE-cfg.MinSSERelax)
	return maximumSSE + relax
}

// EligibleForRequest reports whether an off-cone tile's fetch should be
// allowed to start, given how long the camera has been stationary.
// On-axis tiles are always eligible.
func (cfg FoveationConfig) EligibleForRequest(foveatedFactor, secondsSinceCameraStopped float64) bool {
	if !cfg.Enabled || foveatedFactor <= cfg.ConeSize {
		return true
	}
	return secondsSinceCameraStopped >= cfg.TimeDelay
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
