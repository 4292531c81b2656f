package tile3d

// BoundingVolume is the capability set every tile's spatial bound
// implements, per §4.A. Sphere, OrientedBox, Region, and S2Cell are the
// four variants a manifest can declare.
type BoundingVolume interface {
	// DistanceToCamera returns the distance from cam to the nearest point
	// on the volume, or 0 if cam is inside it.
	DistanceToCamera(cam Camera) float64

	// IntersectPlane classifies the volume against a single plane.
	IntersectPlane(p Plane) PlaneResult

	// IntersectFrustum classifies the volume against a full view frustum.
	IntersectFrustum(f Frustum) PlaneResult

	// SSEDenominator returns the denominator in the screen-space-error
	// formula (§4.B) for this volume under the given camera/viewport.
	SSEDenominator(cam Camera, viewport Viewport) float64

	// Transform returns a new volume with m applied; the receiver is left
	// unmodified, matching the value-type idiom used throughout this
	// package.
	Transform(m Matrix4) BoundingVolume
}

var (
	_ BoundingVolume = Sphere{}
	_ BoundingVolume = OrientedBox{}
	_ BoundingVolume = Region{}
	_ BoundingVolume = S2Cell{}
)
