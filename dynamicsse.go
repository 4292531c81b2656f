package tile3d

import "math"

// dynamicSSEMultiplier implements §4.G's dynamic SSE modulation: near the
// ground and looking toward the horizon, a tile's on-screen pixel budget
// is dominated by grazing-angle foreshortening the nominal SSE formula
// doesn't model, so detail requirements are relaxed by scaling the
// effective maximum SSE up as camera height falls and horizon angle
// rises. Height decays exponentially (DynamicSSEHeightFalloff) so the
// effect vanishes quickly once the camera climbs, and HorizonFactor
// (§camera.go) gates it off entirely when looking straight down.
func dynamicSSEMultiplier(heightAboveGround float64, cam Camera, o Options) float64 {
	if !o.DynamicSSE {
		return 1
	}
	if heightAboveGround < 0 {
		heightAboveGround = 0
	}
	density := o.DynamicSSEDensity * math.Exp(-heightAboveGround*o.DynamicSSEHeightFalloff)
	return 1 + o.DynamicSSEFactor*density*cam.HorizonFactor()
}

// effectiveMaximumSSE applies dynamic SSE modulation and the cache's
// adaptive relaxation factor (§4.F) on top of the configured baseline,
// in that order: dynamic modulation reacts to the camera every frame,
// while the adaptive factor is a slow-moving hysteresis term owned by
// the cache.
func effectiveMaximumSSE(heightAboveGround float64, cam Camera, o Options, adaptiveFactor float64) float64 {
	sse := o.MaximumSSE * dynamicSSEMultiplier(heightAboveGround, cam, o)
	if adaptiveFactor > 1 {
		sse *= adaptiveFactor
	}
	if sse < o.MaximumSSE {
		sse = o.MaximumSSE
	}
	return sse
}
