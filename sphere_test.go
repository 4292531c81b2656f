package tile3d

import (
	"math"
	"testing"
)

func TestSphere_DistanceToCamera(t *testing.T) {
	s := Sphere{Center: V3(0, 0, 0), Radius: 5}
	cam := Camera{Position: V3(20, 0, 0)}
	if got := s.DistanceToCamera(cam); math.Abs(got-15) > 1e-9 {
		t.Errorf("DistanceToCamera = %v, want 15", got)
	}
}

func TestSphere_DistanceToCameraInside(t *testing.T) {
	s := Sphere{Center: V3(0, 0, 0), Radius: 5}
	cam := Camera{Position: V3(1, 1, 1)}
	if got := s.DistanceToCamera(cam); got != 0 {
		t.Errorf("DistanceToCamera(inside) = %v, want 0", got)
	}
}

func TestSphere_IntersectPlane(t *testing.T) {
	s := Sphere{Center: V3(0, 0, 0), Radius: 5}
	tests := []struct {
		name string
		p    Plane
		want PlaneResult
	}{
		{"fully inside", NewPlane(V3(-100, 0, 0), V3(1, 0, 0)), Inside},
		{"fully outside", NewPlane(V3(100, 0, 0), V3(1, 0, 0)), Outside},
		{"straddling", NewPlane(V3(0, 0, 0), V3(1, 0, 0)), Intersecting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IntersectPlane(tt.p); got != tt.want {
				t.Errorf("IntersectPlane = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphere_SSEDenominatorZeroDistance(t *testing.T) {
	s := Sphere{Center: V3(0, 0, 0), Radius: 5}
	cam := Camera{Position: V3(1, 1, 1), FovY: 1}
	if got := s.SSEDenominator(cam, Viewport{Height: 100}); got != 0 {
		t.Errorf("SSEDenominator(camera inside) = %v, want 0", got)
	}
}

func TestSphere_Transform(t *testing.T) {
	s := Sphere{Center: V3(1, 0, 0), Radius: 2}
	m := Translate4(V3(10, 0, 0)).Multiply(Scale4(V3(3, 3, 3)))
	got := s.Transform(m).(Sphere)
	if !got.Center.Approx(V3(13, 0, 0), 1e-9) {
		t.Errorf("Transform center = %v, want (13,0,0)", got.Center)
	}
	if math.Abs(got.Radius-6) > 1e-9 {
		t.Errorf("Transform radius = %v, want 6", got.Radius)
	}
}

func TestScreenSpaceError(t *testing.T) {
	// sse = geometric_error * viewport_height / (distance * 2 * tan(fovy/2))
	cam := Camera{FovY: 2 * math.Atan(1), GeometricErrorScale: 0} // fovy such that tan(fovy/2)=1
	viewport := Viewport{Height: 800}
	denom := perspectiveSSEDenominator(cam, 20)
	got := ScreenSpaceError(200, cam, viewport, denom)
	want := 200 * 800 / (20 * 2 * 1.0)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("ScreenSpaceError = %v, want %v", got, want)
	}
}

func TestScreenSpaceError_ZeroDistanceIsInfinite(t *testing.T) {
	cam := Camera{FovY: 1}
	got := ScreenSpaceError(100, cam, Viewport{Height: 600}, 0)
	if !math.IsInf(got, 1) {
		t.Errorf("ScreenSpaceError(distance=0) = %v, want +Inf", got)
	}
}
