package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-6

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], tol)
	assert.InDelta(t, want[1], got[1], tol)
	assert.InDelta(t, want[2], got[2], tol)
}

func TestRotations(t *testing.T) {
	assertVec(t, Vec3{0, 0, -1}, RotY(Deg2Rad(90)).MulVec3(Vec3{1, 0, 0}))
	assertVec(t, Vec3{0, 1, 0}, RotZ(Deg2Rad(90)).MulVec3(Vec3{1, 0, 0}))
	assertVec(t, Vec3{0, 0, 1}, RotX(Deg2Rad(90)).MulVec3(Vec3{0, 1, 0}))
}

func TestEulerYZXZeroIsIdentity(t *testing.T) {
	assert.Equal(t, Mat3Identity(), EulerYZX(0, 0, 0))
}

func TestEulerYZXOrder(t *testing.T) {
	// Y is applied last: with only a Y angle set, X maps into -Z.
	assertVec(t, Vec3{0, 0, -1}, EulerYZX(0, Deg2Rad(90), 0).MulVec3(Vec3{1, 0, 0}))

	// X is applied first: it fixes the X axis, then Rz(90) maps X into Y.
	assertVec(t, Vec3{0, 1, 0}, EulerYZX(Deg2Rad(90), 0, Deg2Rad(90)).MulVec3(Vec3{1, 0, 0}))
}

func TestMat4Compose(t *testing.T) {
	// T(t) ∘ R applied to p equals R·p + t.
	r := RotY(Deg2Rad(90))
	tr := Vec3{1, 2, 3}
	m := Mat4Mul(Translation(tr), Mat4FromMat3(r))

	p := Vec3{1, 0, 0}
	assertVec(t, r.MulVec3(p).Add(tr), m.MulPoint(p))
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	assert.InDelta(t, 1.0, float64(n.Len()), tol)
	assertVec(t, Vec3{0.6, 0, 0.8}, n)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3Cross(t *testing.T) {
	assertVec(t, Vec3{0, 0, 1}, Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}))
}
