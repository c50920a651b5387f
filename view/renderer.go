package view

import (
	"github.com/rasenga223/luminicad/document"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
)

// VisualShape is a shape as reported by picking: the world-space shape, the
// node that owns it (nil for transient shapes) and its render mesh id.
type VisualShape struct {
	ID    string
	Node  *document.Node
	Shape kernel.Shape
}

// PrimitiveKind selects how a Primitive is drawn.
type PrimitiveKind uint8

const (
	PrimitivePolyline PrimitiveKind = iota + 1
	PrimitivePoint
	PrimitiveLabel
)

// Primitive is a transient preview item in world coordinates.
type Primitive struct {
	Kind   PrimitiveKind
	Points []geom.XYZ
	Closed bool
	// Text is drawn at Points[0] for labels.
	Text string
}

// Polyline returns a polyline primitive through pts.
func Polyline(pts ...geom.XYZ) Primitive {
	return Primitive{Kind: PrimitivePolyline, Points: pts}
}

// Loop returns a closed polyline primitive.
func Loop(pts ...geom.XYZ) Primitive {
	return Primitive{Kind: PrimitivePolyline, Points: pts, Closed: true}
}

// Marker returns a point primitive.
func Marker(p geom.XYZ) Primitive {
	return Primitive{Kind: PrimitivePoint, Points: []geom.XYZ{p}}
}

// Label returns a text primitive anchored at p.
func Label(p geom.XYZ, text string) Primitive {
	return Primitive{Kind: PrimitiveLabel, Points: []geom.XYZ{p}, Text: text}
}

// CurvePrimitive returns a polyline approximating c.
func CurvePrimitive(c kernel.Curve) Primitive {
	return Primitive{Kind: PrimitivePolyline, Points: kernel.Polyline(c), Closed: c.Closed()}
}

// ShapePrimitives returns one polyline per edge of s.
func ShapePrimitives(s kernel.Shape) []Primitive {
	edges := s.Edges()
	if len(edges) == 0 {
		var out []Primitive
		for _, v := range s.Vertices() {
			out = append(out, Marker(v))
		}
		return out
	}
	out := make([]Primitive, 0, len(edges))
	for _, c := range edges {
		out = append(out, CurvePrimitive(c))
	}
	return out
}

// Renderer is the host's picking and transient drawing service.
type Renderer interface {
	// Pick returns the shapes near pixel (x, y) whose kind passes filter,
	// nearest first.
	Pick(v *View, x, y float64, filter kernel.ShapeKind) []VisualShape
	// RenderPreview replaces the transient preview with prims.
	RenderPreview(v *View, prims []Primitive)
	ClearPreview(v *View)
	Highlight(v *View, id string)
	RemoveHighlight(v *View, id string)
}
