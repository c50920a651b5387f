package kernel

import (
	"math"

	"github.com/google/uuid"

	"github.com/rasenga223/luminicad/geom"
)

// Shape is an immutable topological shape produced by a Kernel.
type Shape interface {
	// ID is unique per shape instance; a transformed copy gets a new ID.
	ID() string
	Kind() ShapeKind
	// Vertices returns the snappable corner points of the shape.
	Vertices() []geom.XYZ
	// Edges returns every edge curve of the shape.
	Edges() []Curve
	Bounds() Box
	Transformed(m geom.Matrix4) Shape
}

type ident string

func newIdent() ident { return ident(uuid.NewString()) }

func (i ident) ID() string { return string(i) }

// Vertex is a single point.
type Vertex struct {
	ident
	Point geom.XYZ
}

// NewVertex creates a vertex shape.
func NewVertex(p geom.XYZ) *Vertex {
	return &Vertex{ident: newIdent(), Point: p}
}

func (v *Vertex) Kind() ShapeKind      { return KindVertex }
func (v *Vertex) Vertices() []geom.XYZ { return []geom.XYZ{v.Point} }
func (v *Vertex) Edges() []Curve       { return nil }
func (v *Vertex) Bounds() Box          { return BoxOf(v.Point) }

// Transformed implements Shape.
func (v *Vertex) Transformed(m geom.Matrix4) Shape {
	return NewVertex(m.TransformPoint(v.Point))
}

// Edge is a shape made of one curve.
type Edge struct {
	ident
	Curve Curve
}

// NewEdge creates an edge shape.
func NewEdge(c Curve) *Edge {
	return &Edge{ident: newIdent(), Curve: c}
}

func (e *Edge) Kind() ShapeKind      { return KindEdge }
func (e *Edge) Vertices() []geom.XYZ { return curveVertices([]Curve{e.Curve}) }
func (e *Edge) Edges() []Curve       { return []Curve{e.Curve} }
func (e *Edge) Bounds() Box          { return curvesBounds([]Curve{e.Curve}) }

// Transformed implements Shape.
func (e *Edge) Transformed(m geom.Matrix4) Shape {
	return NewEdge(e.Curve.Transformed(m))
}

// Wire is a chain of connected edges.
type Wire struct {
	ident
	curves []Curve
	closed bool
}

// NewWire creates a wire. closed marks the last edge as connecting back to
// the first.
func NewWire(curves []Curve, closed bool) *Wire {
	return &Wire{ident: newIdent(), curves: curves, closed: closed}
}

func (w *Wire) Kind() ShapeKind      { return KindWire }
func (w *Wire) Vertices() []geom.XYZ { return curveVertices(w.curves) }
func (w *Wire) Edges() []Curve       { return w.curves }
func (w *Wire) Bounds() Box          { return curvesBounds(w.curves) }
func (w *Wire) IsClosed() bool       { return w.closed }

// Transformed implements Shape.
func (w *Wire) Transformed(m geom.Matrix4) Shape {
	return NewWire(transformCurves(w.curves, m), w.closed)
}

// Face is a planar face bounded by a closed loop of curves.
type Face struct {
	ident
	Plane    geom.Plane
	boundary []Curve
}

// NewFace creates a planar face.
func NewFace(pl geom.Plane, boundary []Curve) *Face {
	return &Face{ident: newIdent(), Plane: pl, boundary: boundary}
}

func (f *Face) Kind() ShapeKind      { return KindFace }
func (f *Face) Vertices() []geom.XYZ { return curveVertices(f.boundary) }
func (f *Face) Edges() []Curve       { return f.boundary }
func (f *Face) Bounds() Box          { return curvesBounds(f.boundary) }

// Transformed implements Shape.
func (f *Face) Transformed(m geom.Matrix4) Shape {
	pl := geom.Plane{
		Origin: m.TransformPoint(f.Plane.Origin),
		Normal: m.TransformVector(f.Plane.Normal),
		XVec:   m.TransformVector(f.Plane.XVec),
	}
	if p, err := geom.NewPlane(pl.Origin, pl.Normal, pl.XVec); err == nil {
		pl = p
	}
	return NewFace(pl, transformCurves(f.boundary, m))
}

// Solid is a closed volume described by its vertices and edges. Solids
// built as axis-aligned cuboids remember their box so the reference kernel
// can evaluate booleans on them.
type Solid struct {
	ident
	vertices []geom.XYZ
	curves   []Curve
	cuboid   *Box
}

func newSolid(vertices []geom.XYZ, curves []Curve, cuboid *Box) *Solid {
	return &Solid{ident: newIdent(), vertices: vertices, curves: curves, cuboid: cuboid}
}

func (s *Solid) Kind() ShapeKind      { return KindSolid }
func (s *Solid) Vertices() []geom.XYZ { return s.vertices }
func (s *Solid) Edges() []Curve       { return s.curves }

// Bounds implements Shape.
func (s *Solid) Bounds() Box {
	b := EmptyBox()
	for _, v := range s.vertices {
		b = b.Extend(v)
	}
	return b.Union(curvesBounds(s.curves))
}

// Cuboid returns the axis-aligned box the solid occupies, if it is one.
func (s *Solid) Cuboid() (Box, bool) {
	if s.cuboid == nil {
		return Box{}, false
	}
	return *s.cuboid, true
}

// Transformed implements Shape.
func (s *Solid) Transformed(m geom.Matrix4) Shape {
	verts := make([]geom.XYZ, len(s.vertices))
	for i, v := range s.vertices {
		verts[i] = m.TransformPoint(v)
	}
	var cuboid *Box
	if s.cuboid != nil && m.IsTranslationOnly() {
		t := m.TranslationPart()
		b := Box{Min: s.cuboid.Min.Add(t), Max: s.cuboid.Max.Add(t)}
		cuboid = &b
	}
	return newSolid(verts, transformCurves(s.curves, m), cuboid)
}

// Compound groups several shapes.
type Compound struct {
	ident
	Children []Shape
}

// NewCompound creates a compound of the given shapes.
func NewCompound(children ...Shape) *Compound {
	return &Compound{ident: newIdent(), Children: children}
}

func (c *Compound) Kind() ShapeKind { return KindCompound }

// Vertices implements Shape.
func (c *Compound) Vertices() []geom.XYZ {
	var out []geom.XYZ
	for _, ch := range c.Children {
		out = append(out, ch.Vertices()...)
	}
	return out
}

// Edges implements Shape.
func (c *Compound) Edges() []Curve {
	var out []Curve
	for _, ch := range c.Children {
		out = append(out, ch.Edges()...)
	}
	return out
}

// Bounds implements Shape.
func (c *Compound) Bounds() Box {
	b := EmptyBox()
	for _, ch := range c.Children {
		b = b.Union(ch.Bounds())
	}
	return b
}

// Transformed implements Shape.
func (c *Compound) Transformed(m geom.Matrix4) Shape {
	children := make([]Shape, len(c.Children))
	for i, ch := range c.Children {
		children[i] = ch.Transformed(m)
	}
	return NewCompound(children...)
}

// Box is an axis-aligned bounding box. An empty box has Min > Max.
type Box struct {
	Min, Max geom.XYZ
}

// EmptyBox returns a box containing nothing.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{Min: geom.P(inf, inf, inf), Max: geom.P(-inf, -inf, -inf)}
}

// BoxOf returns the smallest box containing the points.
func BoxOf(pts ...geom.XYZ) Box {
	b := EmptyBox()
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend returns the box grown to include p.
func (b Box) Extend(p geom.XYZ) Box {
	return Box{
		Min: geom.P(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)),
		Max: geom.P(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)),
	}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Intersect returns the overlap of two boxes (possibly empty).
func (b Box) Intersect(o Box) Box {
	return Box{
		Min: geom.P(math.Max(b.Min.X, o.Min.X), math.Max(b.Min.Y, o.Min.Y), math.Max(b.Min.Z, o.Min.Z)),
		Max: geom.P(math.Min(b.Max.X, o.Max.X), math.Min(b.Max.Y, o.Max.Y), math.Min(b.Max.Z, o.Max.Z)),
	}
}

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return o.Min.X >= b.Min.X && o.Min.Y >= b.Min.Y && o.Min.Z >= b.Min.Z &&
		o.Max.X <= b.Max.X && o.Max.Y <= b.Max.Y && o.Max.Z <= b.Max.Z
}

// Size returns the extent along each axis.
func (b Box) Size() geom.XYZ {
	if b.IsEmpty() {
		return geom.Zero
	}
	return b.Max.Sub(b.Min)
}

// Center returns the middle of the box.
func (b Box) Center() geom.XYZ {
	return b.Min.Lerp(b.Max, 0.5)
}

func curveVertices(curves []Curve) []geom.XYZ {
	var out []geom.XYZ
	add := func(p geom.XYZ) {
		for _, q := range out {
			if q.IsEqual(p, geom.Tolerance) {
				return
			}
		}
		out = append(out, p)
	}
	for _, c := range curves {
		add(c.Start())
		if !c.Closed() {
			add(c.End())
		}
	}
	return out
}

func curvesBounds(curves []Curve) Box {
	b := EmptyBox()
	for _, c := range curves {
		for _, p := range Polyline(c) {
			b = b.Extend(p)
		}
	}
	return b
}

func transformCurves(curves []Curve, m geom.Matrix4) []Curve {
	out := make([]Curve, len(curves))
	for i, c := range curves {
		out[i] = c.Transformed(m)
	}
	return out
}
