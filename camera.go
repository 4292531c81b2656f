package tile3d

import "math"

// Camera describes the viewer used for distance, screen-space-error, and
// frustum-culling computations during a pass.
type Camera struct {
	Position  Vec3
	Direction Vec3 // normalized view direction
	Up        Vec3 // normalized up vector

	FovY           float64 // vertical field of view, radians; ignored if Orthographic
	Orthographic   bool
	PixelRange     float64 // orthographic frustum height in world units; used when Orthographic
	GeometricErrorScale float64 // divides point-cloud SSE when > 0, per §4.B

	// ViewProjection is the combined view-projection matrix used to build
	// the culling Frustum. Zero value means "no frustum culling" (every
	// volume reports Inside), useful for unit tests exercising SSE
	// math alone.
	ViewProjection Matrix4

	// Moved is true when the camera position or orientation changed since
	// the previous frame; consulted by the move-cull heuristic.
	Moved bool

	// Speed is the camera's linear speed this frame (world units/sec),
	// also consulted by the move-cull heuristic.
	Speed float64

	// HeightAboveGround feeds the dynamic SSE modulation's exponential
	// height falloff (§4.G); an embedder with no terrain height source
	// leaves this at 0, which is treated as ground level.
	HeightAboveGround float64

	// SecondsSinceStopped is how long Moved has been false, consulted by
	// FoveationConfig.EligibleForRequest to gate off-cone fetches until
	// the camera has settled.
	SecondsSinceStopped float64
}

// HorizonFactor returns (1 - |dot(direction, up)|), used by dynamic SSE
// modulation: 0 when looking straight up/down, approaching 1 when looking
// toward the horizon.
func (c Camera) HorizonFactor() float64 {
	return 1 - math.Abs(c.Direction.Dot(c.Up))
}

// Viewport describes the render target dimensions used to convert a
// geometric error into a pixel-space screen-space error.
type Viewport struct {
	Width, Height int
}

// perspectiveSSEDenominator returns 2*distance*tan(fovy/2) for perspective cameras,
// or PixelRange for orthographic ones — the denominator shared by every
// bounding volume's SSEDenominator implementation.
func perspectiveSSEDenominator(cam Camera, distance float64) float64 {
	if cam.Orthographic {
		if cam.PixelRange <= 0 {
			return 1
		}
		return cam.PixelRange
	}
	if distance == 0 {
		return 0 // caller treats sse as +Inf
	}
	return 2 * distance * math.Tan(cam.FovY/2)
}

// ScreenSpaceError computes the 3D Tiles sse formula for a tile's
// geometric error against this camera/viewport, given the denominator
// supplied by the tile's bounding volume. Per §4.B, distance == 0 (camera
// inside the volume) yields +Inf.
func ScreenSpaceError(geometricError float64, cam Camera, viewport Viewport, denominator float64) float64 {
	if denominator == 0 {
		return math.Inf(1)
	}
	sse := geometricError * float64(viewport.Height) / denominator
	if cam.GeometricErrorScale > 0 {
		sse /= cam.GeometricErrorScale
	}
	return sse
}
