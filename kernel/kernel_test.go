package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/rasenga223/luminicad/geom"
)

func TestAnalyticDegenerateInput(t *testing.T) {
	k := NewAnalytic()
	tests := []struct {
		name string
		run  func() (Shape, error)
		want error
	}{
		{"zero-length line", func() (Shape, error) { return k.Line(geom.Zero, geom.P(geom.Tolerance/2, 0, 0)) }, ErrDegenerate},
		{"zero-radius circle", func() (Shape, error) { return k.Circle(geom.UnitZ, geom.Zero, geom.Tolerance/2) }, ErrDegenerate},
		{"circle without normal", func() (Shape, error) { return k.Circle(geom.Zero, geom.Zero, 5) }, ErrDegenerate},
		{"zero-angle arc", func() (Shape, error) { return k.Arc(geom.UnitZ, geom.Zero, geom.UnitX, 0) }, ErrDegenerate},
		{"flat rect", func() (Shape, error) { return k.Rect(geom.PlaneXY, 10, 0) }, ErrDegenerate},
		{"two-point polygon", func() (Shape, error) { return k.Polygon([]geom.XYZ{geom.Zero, geom.UnitX}) }, ErrDegenerate},
		{"collinear polygon", func() (Shape, error) {
			return k.Polygon([]geom.XYZ{geom.Zero, geom.UnitX, geom.P(2, 0, 0)})
		}, ErrDegenerate},
		{"nan rect", func() (Shape, error) { return k.Rect(geom.PlaneXY, math.NaN(), 5) }, ErrDegenerate},
		{"infinite rect", func() (Shape, error) { return k.Rect(geom.PlaneXY, 5, math.Inf(1)) }, ErrDegenerate},
		{"rect on nan plane", func() (Shape, error) {
			return k.Rect(geom.PlaneXY.Translated(geom.P(math.NaN(), 0, 0)), 1, 1)
		}, ErrDegenerate},
		{"nan line", func() (Shape, error) { return k.Line(geom.Zero, geom.P(math.NaN(), 0, 0)) }, ErrDegenerate},
		{"infinite circle", func() (Shape, error) { return k.Circle(geom.UnitZ, geom.Zero, math.Inf(1)) }, ErrDegenerate},
		{"nan polygon", func() (Shape, error) {
			return k.Polygon([]geom.XYZ{geom.Zero, geom.UnitX, geom.P(0, math.NaN(), 0)})
		}, ErrDegenerate},
		{"nan box", func() (Shape, error) { return k.Box(geom.PlaneXY, 1, 1, math.NaN()) }, ErrDegenerate},
		{"flat box", func() (Shape, error) { return k.Box(geom.PlaneXY, 1, 1, 0) }, ErrDegenerate},
		{"prism without vector", func() (Shape, error) {
			r, _ := k.Rect(geom.PlaneXY, 1, 1)
			return k.Prism(r, geom.Zero)
		}, ErrDegenerate},
		{"prism of vertex", func() (Shape, error) { return k.Prism(NewVertex(geom.Zero), geom.UnitZ) }, ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.run()
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if s != nil {
				t.Errorf("shape = %v, want nil on error", s)
			}
		})
	}
}

func TestAnalyticCircle(t *testing.T) {
	s, err := NewAnalytic().Circle(geom.UnitZ, geom.Zero, 10)
	if err != nil {
		t.Fatal(err)
	}
	e, ok := s.(*Edge)
	if !ok {
		t.Fatalf("shape is %T, want *Edge", s)
	}
	arc := e.Curve.(Arc)
	if !arc.Closed() {
		t.Error("circle is not closed")
	}
	if arc.Radius != 10 || arc.Normal != geom.UnitZ {
		t.Errorf("circle radius=%v normal=%v, want 10 +Z", arc.Radius, arc.Normal)
	}
	if c, ok := arc.CenterPoint(); !ok || c != geom.Zero {
		t.Errorf("CenterPoint = %v %v, want origin", c, ok)
	}
	if got := arc.Length(); math.Abs(got-20*math.Pi) > 1e-9 {
		t.Errorf("Length = %v, want 20pi", got)
	}
	if len(s.Vertices()) != 1 {
		t.Errorf("closed circle has %d vertices, want 1", len(s.Vertices()))
	}
}

func TestAnalyticArcNegativeSweep(t *testing.T) {
	s, err := NewAnalytic().Arc(geom.UnitZ, geom.Zero, geom.P(5, 0, 0), -math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	arc := s.(*Edge).Curve.(Arc)
	if got := arc.End(); !got.IsEqual(geom.P(0, -5, 0), 1e-9) {
		t.Errorf("End = %v, want (0, -5, 0)", got)
	}
	if arc.Sweep <= 0 {
		t.Errorf("Sweep = %v, want positive", arc.Sweep)
	}
}

func TestAnalyticBoxAndCommon(t *testing.T) {
	k := NewAnalytic()
	a, err := k.Box(geom.PlaneXY, 10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(a.Vertices()); n != 8 {
		t.Errorf("box has %d vertices, want 8", n)
	}
	if n := len(a.Edges()); n != 12 {
		t.Errorf("box has %d edges, want 12", n)
	}
	b, _ := k.Box(geom.PlaneXY.Translated(geom.P(5, 5, 5)), 10, 10, 10)

	c, err := k.Common(a, b)
	if err != nil {
		t.Fatalf("Common() error = %v", err)
	}
	box, ok := c.(*Solid).Cuboid()
	if !ok {
		t.Fatal("common result is not a cuboid")
	}
	if box.Min != geom.P(5, 5, 5) || box.Max != geom.P(10, 10, 10) {
		t.Errorf("common box = %+v, want (5,5,5)-(10,10,10)", box)
	}

	far, _ := k.Box(geom.PlaneXY.Translated(geom.P(50, 0, 0)), 1, 1, 1)
	if _, err := k.Common(a, far); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("disjoint Common() err = %v, want ErrEmptyResult", err)
	}
}

func TestAnalyticFuse(t *testing.T) {
	k := NewAnalytic()
	outer, _ := k.Box(geom.PlaneXY, 10, 10, 10)
	inner, _ := k.Box(geom.PlaneXY.Translated(geom.P(1, 1, 1)), 2, 2, 2)
	other, _ := k.Box(geom.PlaneXY.Translated(geom.P(20, 0, 0)), 2, 2, 2)

	got, err := k.Fuse(outer, inner)
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := got.(*Solid).Cuboid(); b != mustCuboid(t, outer) {
		t.Errorf("nested fuse = %+v, want outer box", b)
	}
	if got.ID() == outer.ID() {
		t.Error("fuse returned an input shape instead of a new one")
	}

	got, err = k.Fuse(outer, other)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != KindCompound {
		t.Errorf("disjoint fuse kind = %v, want compound", got.Kind())
	}

	edge, _ := k.Line(geom.Zero, geom.UnitX)
	if _, err := k.Fuse(outer, edge); !errors.Is(err, ErrUnsupported) {
		t.Errorf("fuse with edge err = %v, want ErrUnsupported", err)
	}
}

func TestAnalyticPrism(t *testing.T) {
	k := NewAnalytic()
	rect, _ := k.Rect(geom.PlaneXY, 2, 3)
	s, err := k.Prism(rect, geom.P(0, 0, 4))
	if err != nil {
		t.Fatal(err)
	}
	if s.Kind() != KindSolid {
		t.Errorf("prism of face kind = %v, want solid", s.Kind())
	}
	if got := s.Bounds().Size(); !got.IsEqual(geom.P(2, 3, 4), 1e-9) {
		t.Errorf("prism size = %v, want (2, 3, 4)", got)
	}

	line, _ := k.Line(geom.Zero, geom.UnitX)
	f, err := k.Prism(line, geom.UnitY)
	if err != nil {
		t.Fatal(err)
	}
	if f.Kind() != KindFace {
		t.Errorf("prism of edge kind = %v, want face", f.Kind())
	}
}

func TestShapeTransformed(t *testing.T) {
	k := NewAnalytic()
	b, _ := k.Box(geom.PlaneXY, 1, 1, 1)
	moved := b.Transformed(geom.Translation(geom.P(5, 0, 0)))
	if moved.ID() == b.ID() {
		t.Error("transformed shape kept the original ID")
	}
	box, ok := moved.(*Solid).Cuboid()
	if !ok || box.Min != geom.P(5, 0, 0) {
		t.Errorf("translated cuboid = %+v %v, want min (5,0,0)", box, ok)
	}
	rotated := b.Transformed(geom.Rotation(geom.UnitZ, 0.3))
	if _, ok := rotated.(*Solid).Cuboid(); ok {
		t.Error("rotated box still reports an axis-aligned cuboid")
	}
}

func TestShapeKindFilter(t *testing.T) {
	tests := []struct {
		filter ShapeKind
		kind   ShapeKind
		want   bool
	}{
		{KindNone, KindSolid, true},
		{KindEdge, KindEdge, true},
		{KindEdge | KindFace, KindFace, true},
		{KindEdge, KindSolid, false},
	}
	for _, tt := range tests {
		if got := tt.filter.Matches(tt.kind); got != tt.want {
			t.Errorf("%v.Matches(%v) = %v, want %v", tt.filter, tt.kind, got, tt.want)
		}
	}
	if got := (KindEdge | KindFace).String(); got != "edge|face" {
		t.Errorf("String() = %q, want %q", got, "edge|face")
	}
}

func mustCuboid(t *testing.T, s Shape) Box {
	t.Helper()
	b, ok := s.(*Solid).Cuboid()
	if !ok {
		t.Fatal("shape is not a cuboid")
	}
	return b
}
