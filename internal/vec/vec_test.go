package vec

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCross(t *testing.T) {
	x := New(1, 0, 0)
	y := New(0, 1, 0)
	z := x.Cross(y)

	if !almostEqual(z.Z, 1, 1e-12) || !almostEqual(z.X, 0, 1e-12) || !almostEqual(z.Y, 0, 1e-12) {
		t.Errorf("x cross y should be z, got %+v", z)
	}
}

func TestNormalize(t *testing.T) {
	v := New(3, 4, 0).Normalize()
	if !almostEqual(v.Length(), 1, 1e-12) {
		t.Errorf("normalized length should be 1, got %f", v.Length())
	}

	zero := Vec3{}.Normalize()
	if zero.Length() != 0 {
		t.Error("normalizing zero vector should return zero")
	}
}

func TestSkewMatchesCross(t *testing.T) {
	a := New(1, -2, 3)
	b := New(0.5, 4, -1)

	want := a.Cross(b)
	got := Skew(a).MulVec(b)

	if !almostEqual(got.X, want.X, 1e-12) || !almostEqual(got.Y, want.Y, 1e-12) || !almostEqual(got.Z, want.Z, 1e-12) {
		t.Errorf("skew(a)*b should equal a cross b: got %+v want %+v", got, want)
	}
}

func TestMat3Inverse(t *testing.T) {
	m := Mat3{{2, 0, 1}, {0, 3, 0}, {1, 0, 2}}
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("matrix should be invertible")
	}

	id := m.Mul(inv)
	want := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !almostEqual(id[i][j], want[i][j], 1e-10) {
				t.Fatalf("m*inv(m) not identity at (%d,%d): %f", i, j, id[i][j])
			}
		}
	}
}

func TestMat3InverseSingular(t *testing.T) {
	m := Mat3{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}}
	if _, ok := m.Inverse(); ok {
		t.Error("expected singular matrix to report not invertible")
	}
}

func TestQuatRotate(t *testing.T) {
	// 90 degrees about z maps x to y.
	q := QuatFromAxisAngle(New(0, 0, 1), math.Pi/2)
	v := q.Rotate(New(1, 0, 0))

	if !almostEqual(v.X, 0, 1e-12) || !almostEqual(v.Y, 1, 1e-12) || !almostEqual(v.Z, 0, 1e-12) {
		t.Errorf("rotation result wrong: %+v", v)
	}

	back := q.RotateInv(v)
	if !almostEqual(back.X, 1, 1e-12) {
		t.Errorf("inverse rotation should recover x, got %+v", back)
	}
}

func TestQuatMatrixAgrees(t *testing.T) {
	q := QuatFromAxisAngle(New(1, 1, 0), 0.7)
	v := New(0.3, -1.2, 2.0)

	a := q.Rotate(v)
	b := q.Matrix().MulVec(v)

	if !almostEqual(a.X, b.X, 1e-12) || !almostEqual(a.Y, b.Y, 1e-12) || !almostEqual(a.Z, b.Z, 1e-12) {
		t.Errorf("matrix and quaternion rotation disagree: %+v vs %+v", a, b)
	}
}

func TestQuatIntegrate(t *testing.T) {
	// Integrating a constant spin about z for many small steps should
	// approximate the closed-form rotation.
	q := QuatIdentity()
	omega := New(0, 0, 1.0)
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		q = q.Integrate(omega, dt)
	}

	want := QuatFromAxisAngle(New(0, 0, 1), 1.0)
	v := q.Rotate(New(1, 0, 0))
	wv := want.Rotate(New(1, 0, 0))

	if !almostEqual(v.X, wv.X, 1e-3) || !almostEqual(v.Y, wv.Y, 1e-3) {
		t.Errorf("integrated rotation too far from closed form: %+v vs %+v", v, wv)
	}

	if !almostEqual(q.Norm(), 1, 1e-12) {
		t.Errorf("integrated quaternion should stay normalized, norm=%f", q.Norm())
	}
}
