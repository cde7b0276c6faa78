package mathutil

import "math"

// LookAt returns a right-handed view matrix looking from eye towards center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s[0], s[1], s[2], -s.Dot(eye),
		u[0], u[1], u[2], -u.Dot(eye),
		-f[0], -f[1], -f[2], f.Dot(eye),
		0, 0, 0, 1,
	}
}

// Perspective returns a right-handed projection mapping the view frustum to
// NDC [-1,1]³, with z=-1 on the near plane and z=1 on the far plane.
// fovY is in radians.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	nf := near - far
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / nf, 2 * far * near / nf,
		0, 0, -1, 0,
	}
}

// Viewport maps NDC x/y into pixel coordinates with y flipped so that +y
// points down the screen. z passes through unchanged.
func Viewport(width, height float64) Mat4 {
	return Mat4{
		width / 2, 0, 0, width / 2,
		0, -height / 2, 0, height / 2,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Model composes translation × rotation × scale.
func Model(translation Vec3, rotation Quat, scale float64) Mat4 {
	lin := Mat3Mul(QuatToMat3(rotation), Mat3Diag(scale, scale, scale))
	return FromMat3Translation(lin, translation)
}
