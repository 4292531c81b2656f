package tile3d

import (
	"math"
	"testing"
)

func TestMatrix4_Identity(t *testing.T) {
	if !Identity4().IsIdentity() {
		t.Error("Identity4() should be identity")
	}
	if !Identity4().IsTranslation() {
		t.Error("Identity4() is trivially a translation (by zero)")
	}
}

func TestMatrix4_Translate(t *testing.T) {
	m := Translate4(V3(10, 20, 30))
	if !m.IsTranslation() {
		t.Error("Translate4() should report IsTranslation")
	}
	if m.IsIdentity() {
		t.Error("non-zero Translate4() should not be identity")
	}
	got := m.TransformPoint(V3(1, 2, 3))
	want := V3(11, 22, 33)
	if !got.Approx(want, 1e-10) {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
	if got := m.Translation(); !got.Approx(V3(10, 20, 30), 1e-10) {
		t.Errorf("Translation() = %v, want (10,20,30)", got)
	}
}

func TestMatrix4_Scale(t *testing.T) {
	m := Scale4(V3(2, 3, 4))
	if m.IsTranslation() {
		t.Error("Scale4() should not report IsTranslation unless uniform identity")
	}
	got := m.TransformPoint(V3(1, 1, 1))
	want := V3(2, 3, 4)
	if !got.Approx(want, 1e-10) {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
}

func TestMatrix4_TransformVectorIgnoresTranslation(t *testing.T) {
	m := Translate4(V3(100, 200, 300))
	got := m.TransformVector(V3(1, 2, 3))
	want := V3(1, 2, 3)
	if !got.Approx(want, 1e-10) {
		t.Errorf("TransformVector under pure translation = %v, want %v", got, want)
	}
}

func TestMatrix4_Multiply(t *testing.T) {
	m := Translate4(V3(10, 0, 0)).Multiply(Scale4(V3(2, 2, 2)))
	got := m.TransformPoint(V3(1, 1, 1))
	want := V3(12, 2, 2)
	if !got.Approx(want, 1e-10) {
		t.Errorf("composed transform = %v, want %v", got, want)
	}
}

func TestMatrix4_InvertIdentity(t *testing.T) {
	if got := Identity4().Invert(); !got.IsIdentity() {
		t.Errorf("Invert(identity) = %v, want identity", got)
	}
}

func TestMatrix4_InvertRoundTrip(t *testing.T) {
	m := Translate4(V3(5, -3, 2)).Multiply(Scale4(V3(2, 4, 0.5)))
	inv := m.Invert()
	p := V3(7, 11, -4)
	roundTrip := inv.TransformPoint(m.TransformPoint(p))
	if !roundTrip.Approx(p, 1e-8) {
		t.Errorf("Invert round-trip = %v, want %v", roundTrip, p)
	}
}

func TestMatrix4_InvertSingular(t *testing.T) {
	singular := Scale4(V3(0, 1, 1))
	got := singular.Invert()
	if !got.IsIdentity() {
		t.Errorf("Invert(singular) = %v, want identity fallback", got)
	}
}

func TestMatrix4_MaxScaleFactor(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix4
		want float64
	}{
		{"identity", Identity4(), 1.0},
		{"pure translation", Translate4(V3(10, 20, 30)), 1.0},
		{"uniform scale 2", Scale4(V3(2, 2, 2)), 2.0},
		{"non-uniform scale", Scale4(V3(1, 4, 2)), 4.0},
		{"scale then translate", Scale4(V3(3, 1, 1)).Multiply(Translate4(V3(100, 0, 0))), 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.MaxScaleFactor()
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("MaxScaleFactor() = %v, want %v", got, tt.want)
			}
		})
	}
}
