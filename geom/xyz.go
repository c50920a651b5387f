package geom

import (
	"fmt"
	"math"
)

// XYZ represents a 3-D point or vector.
type XYZ struct {
	X, Y, Z float64
}

// Common vectors.
var (
	Zero  = XYZ{}
	UnitX = XYZ{X: 1}
	UnitY = XYZ{Y: 1}
	UnitZ = XYZ{Z: 1}
)

// P is a convenience function to create an XYZ.
func P(x, y, z float64) XYZ {
	return XYZ{X: x, Y: y, Z: z}
}

// Add returns the vector sum.
func (p XYZ) Add(q XYZ) XYZ {
	return XYZ{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns the vector difference p - q.
func (p XYZ) Sub(q XYZ) XYZ {
	return XYZ{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Mul returns p scaled by s.
func (p XYZ) Mul(s float64) XYZ {
	return XYZ{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Div returns p divided by s.
func (p XYZ) Div(s float64) XYZ {
	return XYZ{X: p.X / s, Y: p.Y / s, Z: p.Z / s}
}

// Neg returns the negated vector.
func (p XYZ) Neg() XYZ {
	return XYZ{X: -p.X, Y: -p.Y, Z: -p.Z}
}

// Dot returns the dot product.
func (p XYZ) Dot(q XYZ) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p x q.
func (p XYZ) Cross(q XYZ) XYZ {
	return XYZ{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Length returns the length of the vector.
func (p XYZ) Length() float64 {
	return math.Sqrt(p.LengthSq())
}

// LengthSq returns the squared length of the vector.
func (p XYZ) LengthSq() float64 {
	return p.X*p.X + p.Y*p.Y + p.Z*p.Z
}

// Distance returns the distance between two points.
func (p XYZ) Distance(q XYZ) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
// ok is false when the vector is shorter than Tolerance.
func (p XYZ) Normalize() (unit XYZ, ok bool) {
	l := p.Length()
	if l < Tolerance {
		return XYZ{}, false
	}
	return p.Div(l), true
}

// IsZero reports whether the vector is shorter than Tolerance.
func (p XYZ) IsZero() bool {
	return p.Length() < Tolerance
}

// IsFinite reports whether every component is finite.
func (p XYZ) IsFinite() bool {
	return IsFinite(p.X) && IsFinite(p.Y) && IsFinite(p.Z)
}

// IsEqual reports whether two points are coincident within tol.
func (p XYZ) IsEqual(q XYZ, tol float64) bool {
	return p.Distance(q) < tol
}

// IsParallel reports whether two directions are parallel (or
// anti-parallel). Zero vectors are never parallel to anything.
func (p XYZ) IsParallel(q XYZ) bool {
	a, ok1 := p.Normalize()
	b, ok2 := q.Normalize()
	if !ok1 || !ok2 {
		return false
	}
	return a.Cross(b).Length() < Tolerance
}

// IsOpposite reports whether two directions are parallel and point away
// from each other.
func (p XYZ) IsOpposite(q XYZ) bool {
	return p.IsParallel(q) && p.Dot(q) < 0
}

// AngleTo returns the unsigned angle between two vectors in [0, pi].
func (p XYZ) AngleTo(q XYZ) float64 {
	return math.Atan2(p.Cross(q).Length(), p.Dot(q))
}

// AngleOnPlane returns the signed angle from p to q measured about normal,
// in (-pi, pi]. Both vectors are first projected onto the plane.
func (p XYZ) AngleOnPlane(q, normal XYZ) float64 {
	n, ok := normal.Normalize()
	if !ok {
		return 0
	}
	a := p.ProjectOnPlane(n)
	b := q.ProjectOnPlane(n)
	angle := math.Atan2(a.Cross(b).Dot(n), a.Dot(b))
	if angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// ProjectOnPlane removes the component of p along the unit normal n.
func (p XYZ) ProjectOnPlane(n XYZ) XYZ {
	return p.Sub(n.Mul(p.Dot(n)))
}

// Lerp performs linear interpolation. t=0 returns p, t=1 returns q.
func (p XYZ) Lerp(q XYZ, t float64) XYZ {
	return XYZ{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

// Rotate returns p rotated by angle about the unit axis through the origin
// (Rodrigues' formula).
func (p XYZ) Rotate(axis XYZ, angle float64) XYZ {
	k, ok := axis.Normalize()
	if !ok {
		return p
	}
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return p.Mul(cos).
		Add(k.Cross(p).Mul(sin)).
		Add(k.Mul(k.Dot(p) * (1 - cos)))
}

// String implements fmt.Stringer.
func (p XYZ) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}
