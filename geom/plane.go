package geom

import "errors"

// ErrDegeneratePlane is returned when a plane cannot be built from the
// given vectors.
var ErrDegeneratePlane = errors.New("geom: degenerate plane")

// Plane is an oriented plane with a local coordinate frame.
// Normal and XVec are unit length and perpendicular.
type Plane struct {
	Origin XYZ
	Normal XYZ
	XVec   XYZ
}

// Standard planes through the origin.
var (
	PlaneXY = Plane{Origin: Zero, Normal: UnitZ, XVec: UnitX}
	PlaneYZ = Plane{Origin: Zero, Normal: UnitX, XVec: UnitY}
	PlaneZX = Plane{Origin: Zero, Normal: UnitY, XVec: UnitZ}
)

// NewPlane builds a plane from an origin, a normal and an approximate x
// direction. xvec is orthogonalized against the normal.
func NewPlane(origin, normal, xvec XYZ) (Plane, error) {
	n, ok := normal.Normalize()
	if !ok {
		return Plane{}, ErrDegeneratePlane
	}
	x, ok := xvec.ProjectOnPlane(n).Normalize()
	if !ok {
		return Plane{}, ErrDegeneratePlane
	}
	return Plane{Origin: origin, Normal: n, XVec: x}, nil
}

// YVec returns the local y direction (Normal x XVec).
func (pl Plane) YVec() XYZ {
	return pl.Normal.Cross(pl.XVec)
}

// Translated returns the plane moved to a new origin.
func (pl Plane) Translated(origin XYZ) Plane {
	pl.Origin = origin
	return pl
}

// SignedDistance returns the signed distance of p from the plane.
func (pl Plane) SignedDistance(p XYZ) float64 {
	return p.Sub(pl.Origin).Dot(pl.Normal)
}

// Project returns the orthogonal projection of p onto the plane.
func (pl Plane) Project(p XYZ) XYZ {
	return p.Sub(pl.Normal.Mul(pl.SignedDistance(p)))
}

// Intersect returns the point where the ray crosses the plane.
// ok is false when the ray is parallel to the plane.
func (pl Plane) Intersect(r Ray) (p XYZ, ok bool) {
	denom := r.Direction.Dot(pl.Normal)
	if NearlyZero(denom) {
		return XYZ{}, false
	}
	t := pl.Origin.Sub(r.Origin).Dot(pl.Normal) / denom
	return r.At(t), true
}

// ToLocal expresses p in the plane's frame.
func (pl Plane) ToLocal(p XYZ) XYZ {
	d := p.Sub(pl.Origin)
	return XYZ{X: d.Dot(pl.XVec), Y: d.Dot(pl.YVec()), Z: d.Dot(pl.Normal)}
}

// FromLocal maps local plane coordinates back to world coordinates.
func (pl Plane) FromLocal(l XYZ) XYZ {
	return pl.Origin.
		Add(pl.XVec.Mul(l.X)).
		Add(pl.YVec().Mul(l.Y)).
		Add(pl.Normal.Mul(l.Z))
}
