package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestNormalize(t *testing.T) {
	assertVec3(t, Vec3{0.6, 0.8, 0}, Vec3{3, 4, 0}.Normalize())
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestCrossIsRightHanded(t *testing.T) {
	assert.Equal(t, Vec3{0, 0, 1}, Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}))
}

func TestMat3InverseAndNormalMatrix(t *testing.T) {
	m := Mat3{2, 0, 1, 0, 3, 0, 1, 0, 1}
	id := Mat3Mul(m, m.Inverse())
	for i, v := range Mat3Identity() {
		assert.InDelta(t, v, id[i], 1e-12)
	}

	assert.Equal(t, Mat3Identity(), Mat3{}.Inverse(), "singular falls back to identity")
	assertVec3(t, Vec3{0.25, 1, 1}, Mat3Diag(4, 1, 1).NormalMatrix().MulVec3(Vec3{1, 1, 1}))
}

func TestEulerToQuat(t *testing.T) {
	q := EulerToQuat(0, math.Pi/2, 0)
	assertVec3(t, Vec3{0, 0, -1}, QuatToMat3(q).MulVec3(Vec3{1, 0, 0}))

	q = EulerToQuat(math.Pi/2, 0, 0)
	assertVec3(t, Vec3{0, 0, 1}, QuatToMat3(q).MulVec3(Vec3{0, 1, 0}))

	assert.True(t, Model(Vec3{}, EulerToQuat(0, 0, 0), 1).IsIdentity())
}

func TestModelComposesTRS(t *testing.T) {
	m := Model(Vec3{1, 2, 3}, EulerToQuat(0, 0, math.Pi/2), 2)
	// Scale, then rotate +x onto +y, then translate.
	assertVec3(t, Vec3{1, 4, 3}, m.MulPoint(Vec3{1, 0, 0}))
	assertVec3(t, Vec3{0, 2, 0}, m.Linear().MulVec3(Vec3{1, 0, 0}))
}

func TestLookAtPutsTargetOnNegativeZ(t *testing.T) {
	v := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	assertVec3(t, Vec3{0, 0, -5}, v.MulPoint(Vec3{}))
	assertVec3(t, Vec3{1, 0, -5}, v.MulPoint(Vec3{1, 0, 0}))
}

func TestPerspectiveMapsNearAndFar(t *testing.T) {
	p := Perspective(Deg2Rad(90), 1, 1, 10)
	ndc := func(z float64) float64 {
		h := p.MulVec4(Vec4{0, 0, z, 1})
		return h[2] / h[3]
	}
	assert.InDelta(t, -1, ndc(-1), 1e-9)
	assert.InDelta(t, 1, ndc(-10), 1e-9)
}

func TestViewportFlipsY(t *testing.T) {
	vp := Viewport(200, 100)
	assertVec3(t, Vec3{100, 50, 0.25}, vp.MulPoint(Vec3{0, 0, 0.25}))
	assertVec3(t, Vec3{200, 0, 0}, vp.MulPoint(Vec3{1, 1, 0}))
	assertVec3(t, Vec3{0, 100, 0}, vp.MulPoint(Vec3{-1, -1, 0}))
}

func TestRotateAround(t *testing.T) {
	assertVec3(t, Vec3{0, 0, -1}, RotateAround(Vec3{1, 0, 0}, Vec3{0, 2, 0}, math.Pi/2))
	v := Vec3{0.3, -2, 1}
	assert.InDelta(t, v.Len(), RotateAround(v, Vec3{1, 1, 1}, 1.234).Len(), 1e-9)
}

func TestClampAndIsFinite(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(5, -1, 1))
	assert.Equal(t, -1.0, Clamp(-5, -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, -1, 1))
	assert.False(t, Vec3{0, math.NaN(), 0}.IsFinite())
	assert.False(t, Vec3{math.Inf(-1), 0, 0}.IsFinite())
	assert.True(t, Vec3{1, 2, 3}.IsFinite())
}

func TestVecArithmetic(t *testing.T) {
	a, b := Vec2{1, 2}, Vec2{4, 6}
	assert.Equal(t, Vec2{5, 8}, a.Add(b))
	assert.Equal(t, Vec2{3, 4}, b.Sub(a))
	assert.Equal(t, Vec2{2, 4}, a.Scale(2))
	assert.Equal(t, 5.0, a.Dist(b))
	assert.Equal(t, b.Dist(a), a.Dist(b))

	p, q := Vec3{1, 2, 3}, Vec3{4, 5, 6}
	assert.Equal(t, Vec3{5, 7, 9}, p.Add(q))
	assert.Equal(t, Vec3{3, 3, 3}, q.Sub(p))
	assert.Equal(t, 32.0, p.Dot(q))
	assert.Equal(t, Vec3{-3, 6, -3}, p.Cross(q))
	assert.Equal(t, Vec4{1, 2, 3, 1}, p.Point())
	assert.Equal(t, p, p.Point().XYZ())
}
