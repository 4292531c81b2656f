package tile3d

// S2Cell is a bounding volume expressed as an S2 cell token plus a height
// range, per the 3DTILES_bounding_volume_S2 extension. The core does not
// need exact S2 cell geometry (that belongs to a geodesy library an
// embedder's ContentLoader might use); it only needs a conservative
// enclosing sphere for culling and SSE ordering, computed once when the
// manifest supplies CenterApprox/RadiusApprox (derived by the manifest
// parser from the cell's face/level, see manifest.go).
type S2Cell struct {
	Token                        string
	MinimumHeight, MaximumHeight float64

	// CenterApprox and RadiusApprox are a conservative enclosing sphere
	// for Token at the given height range, computed once at parse time.
	CenterApprox Vec3
	RadiusApprox float64
}

// DistanceToCamera returns the distance from the camera to the cell's
// conservative bounding sphere, clamped to 0.
func (s S2Cell) DistanceToCamera(cam Camera) float64 {
	d := s.CenterApprox.Distance(cam.Position) - s.RadiusApprox
	if d < 0 {
		return 0
	}
	return d
}

// IntersectPlane classifies the cell's bounding sphere against a plane.
func (s S2Cell) IntersectPlane(p Plane) PlaneResult {
	return sphereAgainstPlane(s.CenterApprox, s.RadiusApprox, p)
}

// IntersectFrustum classifies the cell's bounding sphere against a
// frustum.
func (s S2Cell) IntersectFrustum(f Frustum) PlaneResult {
	return f.IntersectSphere(s.CenterApprox, s.RadiusApprox)
}

// SSEDenominator returns the screen-space-error denominator for this
// volume.
func (s S2Cell) SSEDenominator(cam Camera, viewport Viewport) float64 {
	return perspectiveSSEDenominator(cam, s.DistanceToCamera(cam))
}

// Transform applies height-axis scaling to the cell's height range and
// recenters its approximate sphere, analogous to Region.Transform.
func (s S2Cell) Transform(m Matrix4) BoundingVolume {
	scale := m.MaxScaleFactor()
	return S2Cell{
		Token:         s.Token,
		MinimumHeight: s.MinimumHeight * scale,
		MaximumHeight: s.MaximumHeight * scale,
		CenterApprox:  m.TransformPoint(s.CenterApprox),
		RadiusApprox:  s.RadiusApprox * scale,
	}
}
