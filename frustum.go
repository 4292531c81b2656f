package tile3d

// Frustum is the six half-spaces of a camera's view volume, each a Plane
// whose positive side faces into the frustum.
type Frustum struct {
	Planes [6]Plane
}

const (
	frustumLeft = iota
	frustumRight
	frustumBottom
	frustumTop
	frustumNear
	frustumFar
)

// NewFrustum extracts the six clipping planes from a combined
// view-projection matrix using the standard Gribb/Hartmann method: each
// plane is a linear combination of the matrix's rows.
//
// A zero-value ViewProjection (every element zero) yields a frustum whose
// IntersectSphere/IntersectPoints always report Inside, so code exercising
// SSE math without a real camera setup doesn't need to build one.
func NewFrustum(m Matrix4) Frustum {
	if m == (Matrix4{}) {
		return Frustum{}
	}
	row := func(i int) (float64, float64, float64, float64) {
		return m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]
	}
	r0a, r0b, r0c, r0d := row(0)
	r1a, r1b, r1c, r1d := row(1)
	r2a, r2b, r2c, r2d := row(2)
	r3a, r3b, r3c, r3d := row(3)

	mk := func(a, b, c, d float64) Plane {
		n := V3(a, b, c)
		length := n.Length()
		if length == 0 {
			return Plane{}
		}
		return Plane{Normal: n.Mul(1 / length), Distance: d / length}
	}

	var f Frustum
	f.Planes[frustumLeft] = mk(r3a+r0a, r3b+r0b, r3c+r0c, r3d+r0d)
	f.Planes[frustumRight] = mk(r3a-r0a, r3b-r0b, r3c-r0c, r3d-r0d)
	f.Planes[frustumBottom] = mk(r3a+r1a, r3b+r1b, r3c+r1c, r3d+r1d)
	f.Planes[frustumTop] = mk(r3a-r1a, r3b-r1b, r3c-r1c, r3d-r1d)
	f.Planes[frustumNear] = mk(r3a+r2a, r3b+r2b, r3c+r2c, r3d+r2d)
	f.Planes[frustumFar] = mk(r3a-r2a, r3b-r2b, r3c-r2c, r3d-r2d)
	return f
}

// isZero reports whether f carries no planes (the degenerate "no
// culling" frustum returned for a zero-value camera).
func (f Frustum) isZero() bool {
	return f == Frustum{}
}

// IntersectSphere classifies a sphere against every frustum plane.
func (f Frustum) IntersectSphere(center Vec3, radius float64) PlaneResult {
	if f.isZero() {
		return Inside
	}
	result := Inside
	for _, p := range f.Planes {
		result = combine(result, sphereAgainstPlane(center, radius, p))
		if result == Outside {
			return Outside
		}
	}
	return result
}

// IntersectPoints classifies a convex hull (e.g. an oriented box's eight
// corners) against every frustum plane.
func (f Frustum) IntersectPoints(points []Vec3) PlaneResult {
	if f.isZero() {
		return Inside
	}
	result := Inside
	for _, p := range f.Planes {
		result = combine(result, pointsAgainstPlane(points, p))
		if result == Outside {
			return Outside
		}
	}
	return result
}

