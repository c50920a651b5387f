package geom

import "math"

// Matrix4 represents a 3-D affine transformation as a 4x4 matrix in
// row-major order:
//
//	| m[0]  m[1]  m[2]  m[3]  |
//	| m[4]  m[5]  m[6]  m[7]  |
//	| m[8]  m[9]  m[10] m[11] |
//	| m[12] m[13] m[14] m[15] |
//
// Points are column vectors, so x' = m[0]*x + m[1]*y + m[2]*z + m[3].
type Matrix4 [16]float64

// Identity returns the identity transformation matrix.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation creates a translation matrix.
func Translation(v XYZ) Matrix4 {
	return Matrix4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scaling creates a scaling matrix about the origin.
func Scaling(sx, sy, sz float64) Matrix4 {
	return Matrix4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}
}

// Rotation creates a rotation of angle radians about an axis through the
// origin. A zero axis yields the identity.
func Rotation(axis XYZ, angle float64) Matrix4 {
	k, ok := axis.Normalize()
	if !ok {
		return Identity()
	}
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	x, y, z := k.X, k.Y, k.Z
	return Matrix4{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// RotationAbout creates a rotation of angle radians about the axis passing
// through center.
func RotationAbout(center, axis XYZ, angle float64) Matrix4 {
	return Translation(center).
		Multiply(Rotation(axis, angle)).
		Multiply(Translation(center.Neg()))
}

// Mirror creates a reflection through the plane.
func Mirror(pl Plane) Matrix4 {
	n := pl.Normal
	d := -pl.Origin.Dot(n)
	return Matrix4{
		1 - 2*n.X*n.X, -2 * n.X * n.Y, -2 * n.X * n.Z, -2 * n.X * d,
		-2 * n.Y * n.X, 1 - 2*n.Y*n.Y, -2 * n.Y * n.Z, -2 * n.Y * d,
		-2 * n.Z * n.X, -2 * n.Z * n.Y, 1 - 2*n.Z*n.Z, -2 * n.Z * d,
		0, 0, 0, 1,
	}
}

// Multiply returns m * o. The result applies o first, then m.
func (m Matrix4) Multiply(o Matrix4) Matrix4 {
	var r Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// TransformPoint applies the transformation to a point.
func (m Matrix4) TransformPoint(p XYZ) XYZ {
	x := m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7]
	z := m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11]
	w := m[12]*p.X + m[13]*p.Y + m[14]*p.Z + m[15]
	if w != 1 && w != 0 {
		return XYZ{X: x / w, Y: y / w, Z: z / w}
	}
	return XYZ{X: x, Y: y, Z: z}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix4) TransformVector(v XYZ) XYZ {
	return XYZ{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// TranslationPart returns the translation column.
func (m Matrix4) TranslationPart() XYZ {
	return XYZ{X: m[3], Y: m[7], Z: m[11]}
}

// Determinant returns the determinant of the matrix.
func (m Matrix4) Determinant() float64 {
	inv := m.adjugate()
	return m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
}

// Invert returns the inverse matrix.
// ok is false (and the identity is returned) if m is singular.
func (m Matrix4) Invert() (inv Matrix4, ok bool) {
	adj := m.adjugate()
	det := m[0]*adj[0] + m[1]*adj[4] + m[2]*adj[8] + m[3]*adj[12]
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	invDet := 1 / det
	for i := range adj {
		adj[i] *= invDet
	}
	return adj, true
}

// adjugate returns the transposed cofactor matrix.
func (m Matrix4) adjugate() Matrix4 {
	var inv Matrix4
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]
	return inv
}

// IsIdentity reports whether the matrix is exactly the identity.
func (m Matrix4) IsIdentity() bool {
	return m == Identity()
}

// IsTranslationOnly reports whether the matrix only translates.
func (m Matrix4) IsTranslationOnly() bool {
	t := Translation(m.TranslationPart())
	return m == t
}

// Equal reports whether every element of m and o differs by less than tol.
func (m Matrix4) Equal(o Matrix4, tol float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) >= tol {
			return false
		}
	}
	return true
}
