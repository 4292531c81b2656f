package tile3d

// Sphere is a bounding sphere in the tile's local coordinate system,
// following 3D Tiles' boundingVolume.sphere [x,y,z,radius] layout.
type Sphere struct {
	Center Vec3
	Radius float64
}

// DistanceToCamera returns the distance from the camera to the nearest
// point on the sphere's surface, or 0 if the camera is inside it.
func (s Sphere) DistanceToCamera(cam Camera) float64 {
	d := s.Center.Distance(cam.Position) - s.Radius
	if d < 0 {
		return 0
	}
	return d
}

// IntersectPlane classifies the sphere against a single plane.
func (s Sphere) IntersectPlane(p Plane) PlaneResult {
	return sphereAgainstPlane(s.Center, s.Radius, p)
}

// IntersectFrustum classifies the sphere against every frustum plane.
func (s Sphere) IntersectFrustum(f Frustum) PlaneResult {
	return f.IntersectSphere(s.Center, s.Radius)
}

// SSEDenominator returns the screen-space-error denominator for this
// volume: 2*distance*tan(fovy/2) for perspective cameras (0 distance
// yields a zero denominator, which ScreenSpaceError treats as +Inf).
func (s Sphere) SSEDenominator(cam Camera, viewport Viewport) float64 {
	return perspectiveSSEDenominator(cam, s.DistanceToCamera(cam))
}

// Transform applies an affine transform to the sphere, scaling the radius
// by the transform's largest singular value per §4.A.
func (s Sphere) Transform(m Matrix4) BoundingVolume {
	return Sphere{
		Center: m.TransformPoint(s.Center),
		Radius: s.Radius * m.MaxScaleFactor(),
	}
}
