package tile3d

import "math"

// Region is a geographic bounding volume in radians and meters, following
// 3D Tiles' boundingVolume.region [west, south, east, north, minimumHeight,
// maximumHeight] layout. Longitude/latitude are WGS84 radians.
type Region struct {
	West, South, East, North     float64
	MinimumHeight, MaximumHeight float64
}

// center returns the region's cartographic midpoint and mean height, used
// as a stand-in world-space point for distance and plane tests. A full
// ellipsoid-accurate cartesian conversion is a Renderer/content concern;
// the core only needs a conservative enclosing sphere.
func (r Region) center() Vec3 {
	return V3(
		(r.West+r.East)/2,
		(r.South+r.North)/2,
		(r.MinimumHeight+r.MaximumHeight)/2,
	)
}

// radius returns a conservative bounding radius in the same (radian,
// meter) mixed units as center — sufficient for relative comparisons
// within a single tileset's own region tree, which is how the core uses
// it (distance ordering, plane straddle tests), not for cross-tileset
// geodesy.
func (r Region) radius() float64 {
	halfLon := (r.East - r.West) / 2
	halfLat := (r.North - r.South) / 2
	halfHeight := (r.MaximumHeight - r.MinimumHeight) / 2
	return math.Sqrt(halfLon*halfLon + halfLat*halfLat + halfHeight*halfHeight)
}

// DistanceToCamera returns the distance from the camera to the region's
// conservative bounding sphere, clamped to 0.
func (r Region) DistanceToCamera(cam Camera) float64 {
	d := r.center().Distance(cam.Position) - r.radius()
	if d < 0 {
		return 0
	}
	return d
}

// IntersectPlane classifies the region's bounding sphere against a plane.
func (r Region) IntersectPlane(p Plane) PlaneResult {
	return sphereAgainstPlane(r.center(), r.radius(), p)
}

// IntersectFrustum classifies the region's bounding sphere against a
// frustum.
func (r Region) IntersectFrustum(f Frustum) PlaneResult {
	return f.IntersectSphere(r.center(), r.radius())
}

// SSEDenominator returns the screen-space-error denominator for this
// volume.
func (r Region) SSEDenominator(cam Camera, viewport Viewport) float64 {
	return perspectiveSSEDenominator(cam, r.DistanceToCamera(cam))
}

// Transform applies height-axis scaling only: per the 3D Tiles
// specification, a region's west/south/east/north bounds are defined in
// the root's fixed geographic frame and a tile.transform on a
// region-bounded tile affects only its height range, not its
// lon/lat extent.
func (r Region) Transform(m Matrix4) BoundingVolume {
	scale := m.MaxScaleFactor()
	return Region{
		West: r.West, South: r.South, East: r.East, North: r.North,
		MinimumHeight: r.MinimumHeight * scale,
		MaximumHeight: r.MaximumHeight * scale,
	}
}
