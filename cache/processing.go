package cache

// AdaptiveSSE tracks the §4.F "Adaptive SSE relaxation" hysteresis: once
// the cache runs over its byte budget, the effective maximum SSE is
// multiplied by 1.02 every pass (relaxing detail, shrinking the working
// set) until the cache is back under budget; once it is, the factor
// divides back down by the same 1.02 per pass instead of snapping
// straight to 1, so a cache that oscillates right at the budget line
// doesn't thrash the displayed detail level every frame.
type AdaptiveSSE struct {
	factor float64
}

const adaptiveSSEStep = 1.02

// NewAdaptiveSSE returns a tracker starting at no relaxation (factor 1).
func NewAdaptiveSSE() *AdaptiveSSE {
	return &AdaptiveSSE{factor: 1}
}

// Factor returns the current multiplier to apply to maximum SSE.
func (a *AdaptiveSSE) Factor() float64 { return a.factor }

// Update advances the hysteresis by one pass given whether the cache is
// currently over budget, and returns the resulting factor. The factor
// never relaxes below 1 (the configured maximum_sse floor named in §4.F).
func (a *AdaptiveSSE) Update(overBudget bool) float64 {
	if overBudget {
		a.factor *= adaptiveSSEStep
	} else if a.factor > 1 {
		a.factor /= adaptiveSSEStep
		if a.factor < 1 {
			a.factor = 1
		}
	}
	return a.factor
}

// Reset returns the tracker to no relaxation, e.g. after a cache budget
// change.
func (a *AdaptiveSSE) Reset() { a.factor = 1 }
