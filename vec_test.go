package tile3d

import (
	"math"
	"testing"
)

func TestVec3_Creation(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float64
	}{
		{"zero", 0, 0, 0},
		{"positive", 3, 4, 5},
		{"negative", -1, -2, -3},
		{"fractional", 1.5, 2.5, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := V3(tt.x, tt.y, tt.z)
			if v.X != tt.x || v.Y != tt.y || v.Z != tt.z {
				t.Errorf("V3(%v,%v,%v) = %v, want (%v,%v,%v)", tt.x, tt.y, tt.z, v, tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestVec3_AddSub(t *testing.T) {
	v, w := V3(1, 2, 3), V3(3, 4, 5)
	if got := v.Add(w); !got.Approx(V3(4, 6, 8), 1e-10) {
		t.Errorf("Add = %v, want (4,6,8)", got)
	}
	if got := w.Sub(v); !got.Approx(V3(2, 2, 2), 1e-10) {
		t.Errorf("Sub = %v, want (2,2,2)", got)
	}
}

func TestVec3_MulDiv(t *testing.T) {
	v := V3(2, -4, 6)
	if got := v.Mul(2); !got.Approx(V3(4, -8, 12), 1e-10) {
		t.Errorf("Mul = %v", got)
	}
	if got := v.Div(2); !got.Approx(V3(1, -2, 3), 1e-10) {
		t.Errorf("Div = %v", got)
	}
}

func TestVec3_Dot(t *testing.T) {
	v, w := V3(1, 0, 0), V3(0, 1, 0)
	if got := v.Dot(w); got != 0 {
		t.Errorf("Dot of orthogonal vectors = %v, want 0", got)
	}
	if got := v.Dot(v); got != 1 {
		t.Errorf("Dot of unit vector with itself = %v, want 1", got)
	}
}

func TestVec3_Cross(t *testing.T) {
	x, y := V3(1, 0, 0), V3(0, 1, 0)
	got := x.Cross(y)
	if !got.Approx(V3(0, 0, 1), 1e-10) {
		t.Errorf("x cross y = %v, want (0,0,1)", got)
	}
}

func TestVec3_Length(t *testing.T) {
	v := V3(3, 4, 0)
	if got := v.Length(); math.Abs(got-5) > 1e-10 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := v.LengthSq(); got != 25 {
		t.Errorf("LengthSq = %v, want 25", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := V3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1) > 1e-10 {
		t.Errorf("Normalize length = %v, want 1", v.Length())
	}
	if got := (Vec3{}).Normalize(); !got.IsZero() {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestVec3_Lerp(t *testing.T) {
	v, w := V3(0, 0, 0), V3(10, 10, 10)
	if got := v.Lerp(w, 0); !got.Approx(v, 1e-10) {
		t.Errorf("Lerp(t=0) = %v, want %v", got, v)
	}
	if got := v.Lerp(w, 1); !got.Approx(w, 1e-10) {
		t.Errorf("Lerp(t=1) = %v, want %v", got, w)
	}
	if got := v.Lerp(w, 0.5); !got.Approx(V3(5, 5, 5), 1e-10) {
		t.Errorf("Lerp(t=0.5) = %v, want (5,5,5)", got)
	}
}

func TestVec3_Distance(t *testing.T) {
	if got := V3(0, 0, 0).Distance(V3(3, 4, 0)); math.Abs(got-5) > 1e-10 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestVec3_IsZero(t *testing.T) {
	if !(Vec3{}).IsZero() {
		t.Error("zero value should be IsZero")
	}
	if V3(0, 0, 0.0001).IsZero() {
		t.Error("non-zero vector reported as zero")
	}
}
