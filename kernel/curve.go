package kernel

import (
	"math"

	"github.com/rasenga223/luminicad/geom"
)

// Curve is the geometry of an edge.
type Curve interface {
	Start() geom.XYZ
	End() geom.XYZ
	// Mid returns the point halfway along the curve.
	Mid() geom.XYZ
	// CenterPoint returns the center of circular curves.
	CenterPoint() (geom.XYZ, bool)
	Length() float64
	Closed() bool
	// Sample returns n+1 points evenly spaced along the curve.
	Sample(n int) []geom.XYZ
	// Nearest returns the point on the curve closest to p.
	Nearest(p geom.XYZ) geom.XYZ
	// NearestToRay returns the point on the curve closest to the ray.
	NearestToRay(r geom.Ray) geom.XYZ
	Transformed(m geom.Matrix4) Curve
}

// Line is a straight segment from A to B.
type Line struct {
	A, B geom.XYZ
}

func (l Line) Start() geom.XYZ               { return l.A }
func (l Line) End() geom.XYZ                 { return l.B }
func (l Line) Mid() geom.XYZ                 { return l.A.Lerp(l.B, 0.5) }
func (l Line) CenterPoint() (geom.XYZ, bool) { return geom.XYZ{}, false }
func (l Line) Length() float64               { return l.A.Distance(l.B) }
func (l Line) Closed() bool                  { return false }

// Direction returns the unit direction from A to B.
func (l Line) Direction() (geom.XYZ, bool) { return l.B.Sub(l.A).Normalize() }

// Sample implements Curve.
func (l Line) Sample(n int) []geom.XYZ {
	if n < 1 {
		n = 1
	}
	pts := make([]geom.XYZ, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = l.A.Lerp(l.B, float64(i)/float64(n))
	}
	return pts
}

// Nearest implements Curve.
func (l Line) Nearest(p geom.XYZ) geom.XYZ {
	d := l.B.Sub(l.A)
	lsq := d.LengthSq()
	if lsq < geom.Tolerance*geom.Tolerance {
		return l.A
	}
	t := p.Sub(l.A).Dot(d) / lsq
	return l.A.Lerp(l.B, clamp01(t))
}

// NearestToRay implements Curve.
func (l Line) NearestToRay(r geom.Ray) geom.XYZ {
	t, ok := r.ClosestOnLine(l.A, l.B.Sub(l.A))
	if !ok {
		return l.Nearest(r.Origin)
	}
	return l.A.Lerp(l.B, clamp01(t))
}

// Transformed implements Curve.
func (l Line) Transformed(m geom.Matrix4) Curve {
	return Line{A: m.TransformPoint(l.A), B: m.TransformPoint(l.B)}
}

// Foot returns the foot of the perpendicular from p onto the infinite line
// through the segment, and whether it lies within the segment.
func (l Line) Foot(p geom.XYZ) (geom.XYZ, bool) {
	d := l.B.Sub(l.A)
	lsq := d.LengthSq()
	if lsq < geom.Tolerance*geom.Tolerance {
		return l.A, false
	}
	t := p.Sub(l.A).Dot(d) / lsq
	return l.A.Add(d.Mul(t)), t >= 0 && t <= 1
}

// Arc is a circular arc. It starts at Center + XVec*Radius and sweeps
// counter-clockwise about Normal by Sweep radians. A circle has
// Sweep == 2*pi.
type Arc struct {
	Center geom.XYZ
	Normal geom.XYZ
	XVec   geom.XYZ
	Radius float64
	Sweep  float64
}

// NewArc normalizes the frame so that Sweep is positive.
func NewArc(center, normal, xvec geom.XYZ, radius, sweep float64) Arc {
	n, _ := normal.Normalize()
	x, _ := xvec.ProjectOnPlane(n).Normalize()
	if sweep < 0 {
		n = n.Neg()
		sweep = -sweep
	}
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	}
	return Arc{Center: center, Normal: n, XVec: x, Radius: radius, Sweep: sweep}
}

// PointAt returns the point at angle a from the start direction.
func (c Arc) PointAt(a float64) geom.XYZ {
	y := c.Normal.Cross(c.XVec)
	return c.Center.
		Add(c.XVec.Mul(c.Radius * math.Cos(a))).
		Add(y.Mul(c.Radius * math.Sin(a)))
}

func (c Arc) Start() geom.XYZ               { return c.PointAt(0) }
func (c Arc) End() geom.XYZ                 { return c.PointAt(c.Sweep) }
func (c Arc) Mid() geom.XYZ                 { return c.PointAt(c.Sweep / 2) }
func (c Arc) CenterPoint() (geom.XYZ, bool) { return c.Center, true }
func (c Arc) Length() float64               { return c.Radius * c.Sweep }

// Closed reports whether the arc is a full circle.
func (c Arc) Closed() bool {
	return math.Abs(c.Sweep-2*math.Pi) < geom.AngleTolerance
}

// Plane returns the plane of the arc.
func (c Arc) Plane() geom.Plane {
	return geom.Plane{Origin: c.Center, Normal: c.Normal, XVec: c.XVec}
}

// Sample implements Curve.
func (c Arc) Sample(n int) []geom.XYZ {
	if n < 1 {
		n = 1
	}
	pts := make([]geom.XYZ, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.PointAt(c.Sweep * float64(i) / float64(n))
	}
	return pts
}

// Nearest implements Curve.
func (c Arc) Nearest(p geom.XYZ) geom.XYZ {
	q := c.Plane().Project(p)
	dir := q.Sub(c.Center)
	if dir.IsZero() {
		return c.Start()
	}
	a := c.XVec.AngleOnPlane(dir, c.Normal)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a <= c.Sweep {
		return c.PointAt(a)
	}
	s, e := c.Start(), c.End()
	if q.Distance(s) <= q.Distance(e) {
		return s
	}
	return e
}

// NearestToRay implements Curve.
func (c Arc) NearestToRay(r geom.Ray) geom.XYZ {
	p, ok := c.Plane().Intersect(r)
	if !ok {
		return c.Nearest(r.ClosestPoint(c.Center))
	}
	return c.Nearest(p)
}

// Transformed implements Curve. Non-uniform scaling is not supported;
// the radius follows the scaled start direction.
func (c Arc) Transformed(m geom.Matrix4) Curve {
	n := m.TransformVector(c.Normal)
	if m.Determinant() < 0 {
		n = n.Neg()
	}
	rv := m.TransformVector(c.XVec.Mul(c.Radius))
	return NewArc(m.TransformPoint(c.Center), n, rv, rv.Length(), c.Sweep)
}

// segmentsFor returns a sampling density for previews and picking.
func segmentsFor(c Curve) int {
	if a, ok := c.(Arc); ok {
		n := int(math.Ceil(a.Sweep / (2 * math.Pi) * 64))
		if n < 8 {
			n = 8
		}
		return n
	}
	return 1
}

// Polyline samples a curve at a density suitable for display.
func Polyline(c Curve) []geom.XYZ {
	return c.Sample(segmentsFor(c))
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
