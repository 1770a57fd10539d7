package math3d

import (
	"math"
	"testing"
)

func vecClose(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestIdentityTransformIsNoOp(t *testing.T) {
	v := V3(1, 2, 3)
	got := IdentityMatrix().Transform(v)
	if !vecClose(got, v, 1e-9) {
		t.Errorf("Transform() = %+v, want %+v", got, v)
	}
}

func TestTranslationMatrix(t *testing.T) {
	m := TranslationMatrix(V3(1, 2, 3))
	got := m.Transform(V3(0, 0, 0))
	want := V3(1, 2, 3)
	if !vecClose(got, want, 1e-9) {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
}

func TestScaleMatrix(t *testing.T) {
	m := ScaleMatrix(V3(2, 3, 4))
	got := m.Transform(V3(1, 1, 1))
	want := V3(2, 3, 4)
	if !vecClose(got, want, 1e-9) {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
}

func TestMultiplyChaining(t *testing.T) {
	// Translate then scale, applied as p * (T * S), should match applying
	// T to p and then S to the result.
	translate := TranslationMatrix(V3(1, 0, 0))
	scale := ScaleMatrix(V3(2, 2, 2))
	combined := translate.Multiply(scale)

	p := V3(1, 1, 1)
	viaCombined := combined.Transform(p)
	viaSteps := scale.Transform(translate.Transform(p))

	if !vecClose(viaCombined, viaSteps, 1e-9) {
		t.Errorf("combined transform = %+v, want %+v", viaCombined, viaSteps)
	}
}

func TestRotationZMatrix90Degrees(t *testing.T) {
	m := RotationZMatrix(math.Pi / 2)
	got := m.Transform(V3(1, 0, 0))
	want := V3(0, 1, 0)
	if !vecClose(got, want, 1e-9) {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
}

func TestRotateInPlace(t *testing.T) {
	m := IdentityMatrix()
	m.RotateInPlace(V3(0, 0, 1), math.Pi/2)
	got := m.Transform(V3(1, 0, 0))
	want := V3(0, 1, 0)
	if !vecClose(got, want, 1e-9) {
		t.Errorf("Transform() after RotateInPlace = %+v, want %+v", got, want)
	}
}

func TestPerspectiveMatrixLayout(t *testing.T) {
	m := PerspectiveMatrix(math.Pi/4, 1.0, 0.1, 100)
	if m.Get(2, 3) != -1 {
		t.Errorf("m[2][3] = %v, want -1", m.Get(2, 3))
	}
	if m.Get(3, 3) != 0 {
		t.Errorf("m[3][3] = %v, want 0", m.Get(3, 3))
	}
}

func TestGetSet(t *testing.T) {
	var m Matrix4x4
	m.Set(1, 2, 5)
	if m.Get(1, 2) != 5 {
		t.Errorf("Get(1,2) = %v, want 5", m.Get(1, 2))
	}
}
