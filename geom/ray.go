package geom

// Ray is a half line starting at Origin. Direction is unit length.
type Ray struct {
	Origin    XYZ
	Direction XYZ
}

// NewRay creates a ray, normalizing the direction. A zero direction
// defaults to -Z (looking down onto the XY workplane).
func NewRay(origin, direction XYZ) Ray {
	d, ok := direction.Normalize()
	if !ok {
		d = UnitZ.Neg()
	}
	return Ray{Origin: origin, Direction: d}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) XYZ {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ClosestPoint returns the point on the ray's supporting line nearest to p.
func (r Ray) ClosestPoint(p XYZ) XYZ {
	return r.At(p.Sub(r.Origin).Dot(r.Direction))
}

// ClosestOnLine returns the parameter t of the point origin + t*dir on the
// given line that is nearest to the ray's supporting line. dir need not be
// unit length. ok is false when the two lines are parallel.
func (r Ray) ClosestOnLine(origin, dir XYZ) (t float64, ok bool) {
	// Closest points between two lines: solve for t on (origin, dir).
	w := origin.Sub(r.Origin)
	a := dir.Dot(dir)
	b := dir.Dot(r.Direction)
	c := r.Direction.Dot(r.Direction)
	d := dir.Dot(w)
	e := r.Direction.Dot(w)
	denom := a*c - b*b
	if a < Tolerance || NearlyZero(denom/a) {
		return 0, false
	}
	return (b*e - c*d) / denom, true
}
