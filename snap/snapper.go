package snap

import (
	"math"

	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/view"
)

// Input is what a Snapper sees for one pointer position.
type Input struct {
	View     *view.View
	X, Y     float64
	Shapes   []view.VisualShape
	Data     *Data
	Settings Settings
}

// Ray returns the picking ray through the pointer.
func (in Input) Ray() geom.Ray {
	return in.View.Ray(in.X, in.Y)
}

func (in Input) screenDistance(p geom.XYZ) float64 {
	return in.View.ScreenDistance(p, in.X, in.Y)
}

func (in Input) plane() geom.Plane {
	if in.Data != nil && in.Data.Plane != nil {
		return *in.Data.Plane
	}
	return in.View.Workplane()
}

// Snapper produces at most one candidate per pointer position.
type Snapper interface {
	Snap(in Input) (Result, bool)
}

// SnapperFunc adapts a function to Snapper.
type SnapperFunc func(in Input) (Result, bool)

// Snap implements Snapper.
func (f SnapperFunc) Snap(in Input) (Result, bool) { return f(in) }

// FeatureSnapper snaps to the step's visible feature points.
type FeatureSnapper struct{}

// Snap implements Snapper.
func (FeatureSnapper) Snap(in Input) (Result, bool) {
	if in.Data == nil {
		return Result{}, false
	}
	best, bestDist := -1, in.Settings.radius()
	for i, fp := range in.Data.FeaturePoints {
		if !fp.visible() {
			continue
		}
		if d := in.screenDistance(fp.Point); d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Result{}, false
	}
	fp := in.Data.FeaturePoints[best]
	r := PointResult(in.View, fp.Point, KindFeature)
	r.Info = fp.Prompt
	return r, true
}

// ObjectSnapper snaps to characteristic points of the shapes under the
// cursor: vertices, endpoints, midpoints, centers, perpendicular feet from
// the reference point and edge intersections.
type ObjectSnapper struct{}

type objectCandidate struct {
	point geom.XYZ
	kind  Kind
	shape int
}

// Snap implements Snapper.
func (ObjectSnapper) Snap(in Input) (Result, bool) {
	types := in.Settings.types()
	var cands []objectCandidate
	for i, vs := range in.Shapes {
		if vs.Shape.Kind() == kernel.KindVertex && types.Has(SnapVertex) {
			for _, p := range vs.Shape.Vertices() {
				cands = append(cands, objectCandidate{p, KindVertex, i})
			}
		}
		for _, c := range vs.Shape.Edges() {
			cands = append(cands, curveCandidates(c, i, types, in.Data)...)
		}
	}
	if types.Has(SnapIntersection) {
		cands = append(cands, intersections(in.Shapes)...)
	}

	best, bestDist := -1, in.Settings.radius()
	for i, c := range cands {
		if d := in.screenDistance(c.point); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Result{}, false
	}
	c := cands[best]
	r := PointResult(in.View, c.point, c.kind)
	r.Shapes = in.Shapes[c.shape : c.shape+1]
	r.Nodes = nodesOf(r.Shapes)
	r.Info = c.kind.MessageKey()
	return r, true
}

func curveCandidates(c kernel.Curve, shape int, types ObjectSnapType, data *Data) []objectCandidate {
	var out []objectCandidate
	if !c.Closed() {
		if types.Has(SnapEndpoint) {
			out = append(out,
				objectCandidate{c.Start(), KindEndpoint, shape},
				objectCandidate{c.End(), KindEndpoint, shape})
		}
		if types.Has(SnapMidpoint) {
			out = append(out, objectCandidate{c.Mid(), KindMidpoint, shape})
		}
	}
	if types.Has(SnapCenter) {
		if center, ok := c.CenterPoint(); ok {
			out = append(out, objectCandidate{center, KindCenter, shape})
		}
	}
	if types.Has(SnapPerpendicular) && data != nil && data.RefPoint != nil {
		if l, ok := c.(kernel.Line); ok {
			if foot, within := l.Foot(*data.RefPoint); within && !foot.IsEqual(*data.RefPoint, geom.Tolerance) {
				out = append(out, objectCandidate{foot, KindPerpendicular, shape})
			}
		}
	}
	return out
}

// intersections returns the crossing points of straight edges of the
// picked shapes.
func intersections(shapes []view.VisualShape) []objectCandidate {
	type seg struct {
		line  kernel.Line
		shape int
	}
	var segs []seg
	for i, vs := range shapes {
		for _, c := range vs.Shape.Edges() {
			if l, ok := c.(kernel.Line); ok {
				segs = append(segs, seg{l, i})
			}
		}
	}
	var out []objectCandidate
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			if p, ok := LineIntersection(segs[i].line, segs[j].line); ok {
				out = append(out, objectCandidate{p, KindIntersection, segs[i].shape})
			}
		}
	}
	return out
}

// LineIntersection returns the point where two segments cross. Segments
// that only touch at a shared endpoint do not count.
func LineIntersection(a, b kernel.Line) (geom.XYZ, bool) {
	da, db := a.B.Sub(a.A), b.B.Sub(b.A)
	n := da.Cross(db)
	nn := n.LengthSq()
	if nn < geom.Tolerance*geom.Tolerance {
		return geom.XYZ{}, false
	}
	w := b.A.Sub(a.A)
	ta := w.Cross(db).Dot(n) / nn
	tb := w.Cross(da).Dot(n) / nn
	if ta < 0 || ta > 1 || tb < 0 || tb > 1 {
		return geom.XYZ{}, false
	}
	pa, pb := a.A.Add(da.Mul(ta)), b.A.Add(db.Mul(tb))
	if !pa.IsEqual(pb, geom.Tolerance*10) {
		return geom.XYZ{}, false
	}
	endpoint := func(p geom.XYZ) bool {
		return p.IsEqual(a.A, geom.Tolerance) || p.IsEqual(a.B, geom.Tolerance)
	}
	if endpoint(pa) && (pa.IsEqual(b.A, geom.Tolerance) || pa.IsEqual(b.B, geom.Tolerance)) {
		return geom.XYZ{}, false
	}
	return pa, true
}

// NearestSnapper snaps to the point on a picked edge closest to the
// pointer ray.
type NearestSnapper struct{}

// Snap implements Snapper.
func (NearestSnapper) Snap(in Input) (Result, bool) {
	if !in.Settings.types().Has(SnapNearest) {
		return Result{}, false
	}
	ray := in.Ray()
	best, bestDist := -1, in.Settings.radius()
	var bestPoint geom.XYZ
	for i, vs := range in.Shapes {
		for _, c := range vs.Shape.Edges() {
			p := c.NearestToRay(ray)
			if d := in.screenDistance(p); d < bestDist {
				best, bestDist, bestPoint = i, d, p
			}
		}
	}
	if best < 0 {
		return Result{}, false
	}
	r := PointResult(in.View, bestPoint, KindNearest)
	r.Shapes = in.Shapes[best : best+1]
	r.Nodes = nodesOf(r.Shapes)
	r.Info = KindNearest.MessageKey()
	return r, true
}

// PlaneSnapper projects the pointer onto the step plane, or the view
// workplane when the step has none.
type PlaneSnapper struct{}

// Snap implements Snapper.
func (PlaneSnapper) Snap(in Input) (Result, bool) {
	pl := in.plane()
	p, ok := pl.Intersect(in.Ray())
	if !ok {
		return Result{}, false
	}
	r := PointResult(in.View, p, KindPlane)
	r.Plane = &pl
	return r, true
}

// AxisSnapper projects the pointer onto the line Origin + t*Direction.
type AxisSnapper struct {
	Origin    geom.XYZ
	Direction geom.XYZ
}

// Snap implements Snapper.
func (a AxisSnapper) Snap(in Input) (Result, bool) {
	dir, ok := a.Direction.Normalize()
	if !ok {
		return Result{}, false
	}
	t, ok := in.Ray().ClosestOnLine(a.Origin, dir)
	if !ok || math.IsNaN(t) {
		return Result{}, false
	}
	r := PointResult(in.View, a.Origin.Add(dir.Mul(t)), KindAxis)
	r.Distance = t
	return r, true
}

// ShapeSnapper resolves to the nearest picked shape.
type ShapeSnapper struct{}

// Snap implements Snapper.
func (ShapeSnapper) Snap(in Input) (Result, bool) {
	if len(in.Shapes) == 0 {
		return Result{}, false
	}
	r := Result{View: in.View, Shapes: in.Shapes[:1], Kind: KindShape}
	r.Nodes = nodesOf(r.Shapes)
	r.Info = "shape." + in.Shapes[0].Shape.Kind().String()
	return r, true
}

// PointSnappers returns the snappers used for picking points: feature
// points, object snaps, nearest-on-curve and plane projection.
func PointSnappers() []Snapper {
	return []Snapper{FeatureSnapper{}, ObjectSnapper{}, NearestSnapper{}, PlaneSnapper{}}
}
