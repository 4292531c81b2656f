package tile3d

import "math"

// OrientedBox is a bounding box in the tile's local coordinate system,
// following 3D Tiles' boundingVolume.box layout: a center and three
// half-length axis vectors (not necessarily orthonormal after a sheared
// transform, though manifests in practice keep them orthogonal).
type OrientedBox struct {
	Center Vec3
	XAxis  Vec3 // half-length local x axis
	YAxis  Vec3 // half-length local y axis
	ZAxis  Vec3 // half-length local z axis
}

// corners returns the box's eight world-space corners.
func (b OrientedBox) corners() []Vec3 {
	pts := make([]Vec3, 0, 8)
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				pts = append(pts, b.Center.
					Add(b.XAxis.Mul(sx)).
					Add(b.YAxis.Mul(sy)).
					Add(b.ZAxis.Mul(sz)))
			}
		}
	}
	return pts
}

// boundingRadius returns a conservative bounding sphere radius for the
// box, used by distance and SSE-denominator computation.
func (b OrientedBox) boundingRadius() float64 {
	return b.XAxis.Length() + b.YAxis.Length() + b.ZAxis.Length()
}

// DistanceToCamera returns the distance from the camera to the nearest
// point on the box's conservative bounding sphere, clamped to 0.
func (b OrientedBox) DistanceToCamera(cam Camera) float64 {
	d := b.Center.Distance(cam.Position) - b.boundingRadius()
	if d < 0 {
		return 0
	}
	return d
}

// IntersectPlane classifies the box against a single plane using its
// projected half-extent along the plane normal, the standard tight
// OBB/plane test (equivalent to, but cheaper than, testing all eight
// corners).
func (b OrientedBox) IntersectPlane(p Plane) PlaneResult {
	return b.intersectPlane(p)
}

func (b OrientedBox) intersectPlane(p Plane) PlaneResult {
	d := p.SignedDistance(b.Center)
	r := b.halfExtent(p.Normal)
	switch {
	case d < -r:
		return Outside
	case d > r:
		return Inside
	default:
		return Intersecting
	}
}

// IntersectFrustum classifies the box against every frustum plane using
// the same projected half-extent test as IntersectPlane.
func (b OrientedBox) IntersectFrustum(f Frustum) PlaneResult {
	if f.isZero() {
		return Inside
	}
	result := Inside
	for _, p := range f.Planes {
		result = combine(result, b.intersectPlane(p))
		if result == Outside {
			return Outside
		}
	}
	return result
}

// SSEDenominator returns the screen-space-error denominator for this
// volume.
func (b OrientedBox) SSEDenominator(cam Camera, viewport Viewport) float64 {
	return perspectiveSSEDenominator(cam, b.DistanceToCamera(cam))
}

// Transform applies an affine transform to the box's center and axes.
func (b OrientedBox) Transform(m Matrix4) BoundingVolume {
	return OrientedBox{
		Center: m.TransformPoint(b.Center),
		XAxis:  m.TransformVector(b.XAxis),
		YAxis:  m.TransformVector(b.YAxis),
		ZAxis:  m.TransformVector(b.ZAxis),
	}
}

// halfExtent returns the box's half-extent (projection radius) along a
// normalized axis direction; intersectPlane compares it against the
// center's signed distance to the plane.
func (b OrientedBox) halfExtent(axis Vec3) float64 {
	return math.Abs(b.XAxis.Dot(axis)) + math.Abs(b.YAxis.Dot(axis)) + math.Abs(b.ZAxis.Dot(axis))
}
