package kernel

import (
	"fmt"
	"math"

	"github.com/rasenga223/luminicad/geom"
)

// Kernel builds shapes. All operations are pure: they never mutate their
// inputs and report failures as errors.
type Kernel interface {
	Line(start, end geom.XYZ) (Shape, error)
	Circle(normal, center geom.XYZ, radius float64) (Shape, error)
	// Arc sweeps angle radians about normal, starting at start.
	Arc(normal, center, start geom.XYZ, angle float64) (Shape, error)
	Rect(pl geom.Plane, dx, dy float64) (Shape, error)
	Polygon(points []geom.XYZ) (Shape, error)
	Box(pl geom.Plane, dx, dy, dz float64) (Shape, error)
	Prism(section Shape, vec geom.XYZ) (Shape, error)
	Fuse(a, b Shape) (Shape, error)
	Common(a, b Shape) (Shape, error)
}

// Analytic is the reference Kernel. The zero value is ready to use.
type Analytic struct{}

// NewAnalytic returns the reference kernel.
func NewAnalytic() *Analytic { return &Analytic{} }

var _ Kernel = (*Analytic)(nil)

// Line implements Kernel.
func (Analytic) Line(start, end geom.XYZ) (Shape, error) {
	if !finite(start, end) || start.IsEqual(end, geom.Tolerance) {
		return nil, fmt.Errorf("line: %w", ErrDegenerate)
	}
	return NewEdge(Line{A: start, B: end}), nil
}

// Circle implements Kernel.
func (Analytic) Circle(normal, center geom.XYZ, radius float64) (Shape, error) {
	if radius < geom.Tolerance || !geom.IsFinite(radius) || !finite(normal, center) {
		return nil, fmt.Errorf("circle radius %g: %w", radius, ErrDegenerate)
	}
	n, ok := normal.Normalize()
	if !ok {
		return nil, fmt.Errorf("circle normal: %w", ErrDegenerate)
	}
	return NewEdge(NewArc(center, n, perpendicular(n), radius, 2*math.Pi)), nil
}

// Arc implements Kernel.
func (Analytic) Arc(normal, center, start geom.XYZ, angle float64) (Shape, error) {
	if !finite(normal, center, start) || !geom.IsFinite(angle) {
		return nil, fmt.Errorf("arc: %w", ErrDegenerate)
	}
	n, ok := normal.Normalize()
	if !ok {
		return nil, fmt.Errorf("arc normal: %w", ErrDegenerate)
	}
	r := start.Sub(center).ProjectOnPlane(n)
	if r.Length() < geom.Tolerance {
		return nil, fmt.Errorf("arc radius: %w", ErrDegenerate)
	}
	if math.Abs(angle) < geom.AngleTolerance {
		return nil, fmt.Errorf("arc angle: %w", ErrDegenerate)
	}
	return NewEdge(NewArc(center, n, r, r.Length(), angle)), nil
}

// Rect implements Kernel. The rectangle spans dx along the plane's x axis
// and dy along its y axis from the plane origin; negative sizes flip
// direction.
func (Analytic) Rect(pl geom.Plane, dx, dy float64) (Shape, error) {
	if !finitePlane(pl, dx, dy) || math.Abs(dx) < geom.Tolerance || math.Abs(dy) < geom.Tolerance {
		return nil, fmt.Errorf("rect %gx%g: %w", dx, dy, ErrDegenerate)
	}
	corners := rectCorners(pl, dx, dy)
	return NewFace(pl, loop(corners)), nil
}

// Polygon implements Kernel. The polygon is closed automatically; repeating
// the first point at the end is allowed.
func (Analytic) Polygon(points []geom.XYZ) (Shape, error) {
	pts := append([]geom.XYZ(nil), points...)
	if n := len(pts); n > 1 && pts[0].IsEqual(pts[n-1], geom.Tolerance) {
		pts = pts[:n-1]
	}
	if !finite(pts...) {
		return nil, fmt.Errorf("polygon: %w", ErrDegenerate)
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("polygon with %d points: %w", len(pts), ErrDegenerate)
	}
	for i := range pts {
		if pts[i].IsEqual(pts[(i+1)%len(pts)], geom.Tolerance) {
			return nil, fmt.Errorf("polygon repeats point %v: %w", pts[i], ErrDegenerate)
		}
	}
	if collinear(pts) {
		return nil, fmt.Errorf("polygon is collinear: %w", ErrDegenerate)
	}
	return NewWire(loop(pts), true), nil
}

// Box implements Kernel.
func (Analytic) Box(pl geom.Plane, dx, dy, dz float64) (Shape, error) {
	if !finitePlane(pl, dx, dy, dz) ||
		math.Abs(dx) < geom.Tolerance || math.Abs(dy) < geom.Tolerance || math.Abs(dz) < geom.Tolerance {
		return nil, fmt.Errorf("box %gx%gx%g: %w", dx, dy, dz, ErrDegenerate)
	}
	bottom := rectCorners(pl, dx, dy)
	return extrude(bottom, loop(bottom), pl.Normal.Mul(dz), axisAligned(pl)), nil
}

// Prism implements Kernel. Faces and closed wires extrude to solids; edges
// and open wires extrude to faces.
func (Analytic) Prism(section Shape, vec geom.XYZ) (Shape, error) {
	if !finite(vec) || vec.Length() < geom.Tolerance {
		return nil, fmt.Errorf("prism vector: %w", ErrDegenerate)
	}
	switch s := section.(type) {
	case *Face:
		if !geom.NearlyZero(s.Plane.Normal.Dot(vec)) {
			return extrude(s.Vertices(), s.Edges(), vec, false), nil
		}
		return nil, fmt.Errorf("prism along face plane: %w", ErrDegenerate)
	case *Wire:
		if s.IsClosed() {
			return extrude(s.Vertices(), s.Edges(), vec, false), nil
		}
		return sweepFace(s.Edges(), vec), nil
	case *Edge:
		return sweepFace(s.Edges(), vec), nil
	default:
		return nil, fmt.Errorf("prism of %v: %w", section.Kind(), ErrUnsupported)
	}
}

// Fuse implements Kernel. Nested cuboids collapse to the outer one; other
// solid pairs are returned as a compound.
func (Analytic) Fuse(a, b Shape) (Shape, error) {
	if a.Kind() != KindSolid || b.Kind() != KindSolid {
		return nil, fmt.Errorf("fuse %v with %v: %w", a.Kind(), b.Kind(), ErrUnsupported)
	}
	ba, okA := a.(*Solid).Cuboid()
	bb, okB := b.(*Solid).Cuboid()
	if okA && okB {
		switch {
		case ba.Contains(bb):
			return a.Transformed(geom.Identity()), nil
		case bb.Contains(ba):
			return b.Transformed(geom.Identity()), nil
		}
	}
	return NewCompound(a, b), nil
}

// Common implements Kernel. Only axis-aligned cuboids are supported.
func (Analytic) Common(a, b Shape) (Shape, error) {
	sa, okA := a.(*Solid)
	sb, okB := b.(*Solid)
	if !okA || !okB {
		return nil, fmt.Errorf("common %v with %v: %w", a.Kind(), b.Kind(), ErrUnsupported)
	}
	ba, okA := sa.Cuboid()
	bb, okB := sb.Cuboid()
	if !okA || !okB {
		return nil, fmt.Errorf("common of non-box solids: %w", ErrUnsupported)
	}
	in := ba.Intersect(bb)
	size := in.Size()
	if in.IsEmpty() || size.X < geom.Tolerance || size.Y < geom.Tolerance || size.Z < geom.Tolerance {
		return nil, fmt.Errorf("common: %w", ErrEmptyResult)
	}
	return Analytic{}.Box(geom.PlaneXY.Translated(in.Min), size.X, size.Y, size.Z)
}

func rectCorners(pl geom.Plane, dx, dy float64) []geom.XYZ {
	x := pl.XVec.Mul(dx)
	y := pl.YVec().Mul(dy)
	o := pl.Origin
	return []geom.XYZ{o, o.Add(x), o.Add(x).Add(y), o.Add(y)}
}

// loop connects points into a closed chain of lines.
func loop(pts []geom.XYZ) []Curve {
	curves := make([]Curve, len(pts))
	for i := range pts {
		curves[i] = Line{A: pts[i], B: pts[(i+1)%len(pts)]}
	}
	return curves
}

// extrude builds a solid from a bottom profile translated by vec.
func extrude(bottom []geom.XYZ, profile []Curve, vec geom.XYZ, aligned bool) *Solid {
	m := geom.Translation(vec)
	verts := make([]geom.XYZ, 0, 2*len(bottom))
	verts = append(verts, bottom...)
	for _, p := range bottom {
		verts = append(verts, m.TransformPoint(p))
	}
	curves := make([]Curve, 0, 3*len(profile))
	curves = append(curves, profile...)
	curves = append(curves, transformCurves(profile, m)...)
	for _, p := range bottom {
		curves = append(curves, Line{A: p, B: m.TransformPoint(p)})
	}
	var cuboid *Box
	if aligned {
		b := BoxOf(verts...)
		cuboid = &b
	}
	return newSolid(verts, curves, cuboid)
}

func sweepFace(profile []Curve, vec geom.XYZ) *Face {
	m := geom.Translation(vec)
	start, end := profile[0].Start(), profile[len(profile)-1].End()
	boundary := append([]Curve(nil), profile...)
	boundary = append(boundary, Line{A: end, B: m.TransformPoint(end)})
	boundary = append(boundary, transformCurves(profile, m)...)
	boundary = append(boundary, Line{A: m.TransformPoint(start), B: start})
	pl, err := geom.NewPlane(start, end.Sub(start).Cross(vec), end.Sub(start))
	if err != nil {
		pl = geom.Plane{Origin: start, Normal: geom.UnitZ, XVec: geom.UnitX}
	}
	return NewFace(pl, boundary)
}

// axisAligned reports whether the plane's axes coincide with world axes.
func axisAligned(pl geom.Plane) bool {
	isAxis := func(v geom.XYZ) bool {
		return v.IsParallel(geom.UnitX) || v.IsParallel(geom.UnitY) || v.IsParallel(geom.UnitZ)
	}
	return isAxis(pl.XVec) && isAxis(pl.Normal)
}

func finite(pts ...geom.XYZ) bool {
	for _, p := range pts {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

func finitePlane(pl geom.Plane, sizes ...float64) bool {
	for _, v := range sizes {
		if !geom.IsFinite(v) {
			return false
		}
	}
	return finite(pl.Origin, pl.Normal, pl.XVec)
}

func collinear(pts []geom.XYZ) bool {
	for i := 1; i < len(pts)-1; i++ {
		for j := i + 1; j < len(pts); j++ {
			if pts[i].Sub(pts[0]).Cross(pts[j].Sub(pts[0])).Length() >= geom.Tolerance {
				return false
			}
		}
	}
	return true
}

// perpendicular returns a unit vector perpendicular to n.
func perpendicular(n geom.XYZ) geom.XYZ {
	ref := geom.UnitX
	if n.IsParallel(geom.UnitX) {
		ref = geom.UnitY
	}
	v, _ := n.Cross(ref).Cross(n).Normalize()
	return v
}
