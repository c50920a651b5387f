package commands

import (
	"context"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/rasenga223/luminicad/async"
	"github.com/rasenga223/luminicad/command"
	"github.com/rasenga223/luminicad/document"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/preview"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/step"
	"github.com/rasenga223/luminicad/view"
)

// px returns the default camera's pixel position of a point on XY.
func px(x, y float64) (float64, float64) {
	return 400 + 10*x, 300 - 10*y
}

func click(x, y float64) view.Event { return view.Click(px(x, y)) }
func hover(x, y float64) view.Event { return view.Move(px(x, y)) }

var escape = view.Press(view.KeyEscape)

func newEnv() (command.Env, *preview.Renderer) {
	doc := document.New()
	r := preview.New(doc)
	return command.Env{
		Env:    snap.Env{Document: doc, View: view.New(r)},
		Kernel: kernel.NewAnalytic(),
	}, r
}

// run queues the events and executes cmd until it returns.
func run(t *testing.T, cmd command.Command, env command.Env, events ...view.Event) {
	t.Helper()
	env.View.Dispatch(events...)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cmd.Execute(ctx, env); err != nil {
		t.Fatalf("%s: Execute() error = %v", cmd.Name(), err)
	}
	if ctx.Err() != nil {
		t.Fatalf("%s: Execute() timed out in state %v", cmd.Name(), cmd.State())
	}
}

func addNode(t *testing.T, env command.Env, s kernel.Shape, selected bool) *document.Node {
	t.Helper()
	n := document.NewNode("fixture", s)
	err := document.Transact(env.Document, "fixture", func(*document.Transaction) error {
		if err := env.Document.AddNode(n); err != nil {
			return err
		}
		if selected {
			env.Document.Select(n)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Transact() error = %v", err)
	}
	return n
}

func mustShape(t *testing.T) func(kernel.Shape, error) kernel.Shape {
	return func(s kernel.Shape, err error) kernel.Shape {
		t.Helper()
		if err != nil {
			t.Fatalf("kernel error = %v", err)
		}
		return s
	}
}

func onlyNode(t *testing.T, doc *document.Document) *document.Node {
	t.Helper()
	nodes := doc.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("document has %d nodes, want 1", len(nodes))
	}
	return nodes[0]
}

func near(a, b geom.XYZ) bool { return a.IsEqual(b, 1e-6) }

func TestCircle(t *testing.T) {
	env, r := newEnv()
	cmd := NewCircle()
	run(t, cmd, env,
		click(0, 0),
		// Zero radius is rejected.
		hover(0, 0), click(0, 0),
		hover(10, 0), click(10, 0))

	if got := cmd.State(); got != command.StateCommitted {
		t.Fatalf("State() = %v, want committed", got)
	}
	edges := onlyNode(t, env.Document).Shape().Edges()
	c, ok := edges[0].(kernel.Arc)
	if !ok {
		t.Fatalf("edge is %T, want kernel.Arc", edges[0])
	}
	if !near(c.Center, geom.Zero) || math.Abs(c.Radius-10) > 1e-6 || !near(c.Normal, geom.UnitZ) || !c.Closed() {
		t.Errorf("circle = center %v radius %g normal %v", c.Center, c.Radius, c.Normal)
	}
	if len(r.Preview()) != 0 || len(r.Highlighted()) != 0 {
		t.Error("transient visuals left after commit")
	}
	if h := env.Document.History(); !slices.Equal(h.Undo, []string{"circle"}) {
		t.Errorf("History().Undo = %v, want [circle]", h.Undo)
	}
}

func TestCircleRadiusPreview(t *testing.T) {
	center := snap.PointResult(nil, geom.Zero, snap.KindPlane)
	data := circleRadiusData(step.NewResults(&center))
	if data.RefPoint == nil || !near(*data.RefPoint, geom.Zero) {
		t.Fatalf("RefPoint = %v, want origin", data.RefPoint)
	}
	if got := data.Preview(&geom.XYZ{}); got != nil {
		t.Errorf("Preview(center) = %v, want nil", got)
	}
	prims := data.Preview(&geom.XYZ{X: 10})
	if len(prims) != 2 || !prims[0].Closed {
		t.Fatalf("Preview() = %v, want circle and radius line", prims)
	}
	for _, p := range prims[0].Points {
		if d := p.Distance(geom.Zero); math.Abs(d-10) > 1e-9 {
			t.Fatalf("preview point %v at distance %g, want 10", p, d)
		}
	}
}

func TestLineConnected(t *testing.T) {
	env, _ := newEnv()
	cmd := NewLine(true)
	run(t, cmd, env, click(0, 0), click(10, 0), click(10, 10), escape)

	if got := cmd.Commits(); got != 2 {
		t.Fatalf("Commits() = %d, want 2", got)
	}
	if got := cmd.State(); got != command.StateCancelled {
		t.Errorf("State() = %v, want cancelled", got)
	}
	nodes := env.Document.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("document has %d nodes, want 2", len(nodes))
	}
	first := nodes[0].Shape().Edges()[0]
	second := nodes[1].Shape().Edges()[0]
	if !near(first.Start(), geom.Zero) || !near(first.End(), geom.XYZ{X: 10}) {
		t.Errorf("first segment = %v -> %v", first.Start(), first.End())
	}
	if second.Start() != first.End() || !near(second.End(), geom.XYZ{X: 10, Y: 10}) {
		t.Errorf("second segment = %v -> %v, want start at %v", second.Start(), second.End(), first.End())
	}
	if h := env.Document.History(); len(h.Undo) != 2 {
		t.Errorf("History().Undo = %v, want one record per segment", h.Undo)
	}
}

func TestLineSingle(t *testing.T) {
	env, _ := newEnv()
	cmd := NewLine(false)
	run(t, cmd, env, click(0, 0), click(3, 4), click(20, 20))
	e := onlyNode(t, env.Document).Shape().Edges()[0]
	if math.Abs(e.Length()-5) > 1e-6 {
		t.Errorf("Length() = %g, want 5", e.Length())
	}
	// The trailing click is left for whoever reads next.
	if got := env.View.Drain(); got != 1 {
		t.Errorf("Drain() = %d, want the unused click", got)
	}
}

func TestLineTypedEnd(t *testing.T) {
	env, _ := newEnv()
	events := []view.Event{click(1, 1)}
	events = append(events, view.Type("@4,0")...)
	events = append(events, view.Press(view.KeyEnter))
	run(t, NewLine(false), env, events...)
	e := onlyNode(t, env.Document).Shape().Edges()[0]
	if !near(e.End(), geom.XYZ{X: 5, Y: 1}) {
		t.Errorf("End() = %v, want (5, 1, 0)", e.End())
	}
}

func TestRect(t *testing.T) {
	env, _ := newEnv()
	run(t, NewRect(), env,
		click(0, 0),
		// Degenerate corners on the same row are rejected.
		click(6, 0),
		click(6, 3))
	s := onlyNode(t, env.Document).Shape()
	b := s.Bounds()
	if !near(b.Min, geom.Zero) || !near(b.Max, geom.XYZ{X: 6, Y: 3}) {
		t.Errorf("Bounds() = %v, want (0,0,0)-(6,3,0)", b)
	}
}

func TestRectRejectsNonFinite(t *testing.T) {
	env, _ := newEnv()
	events := []view.Event{click(0, 0)}
	events = append(events, view.Type("NaN,5")...)
	events = append(events, view.Press(view.KeyEnter))
	events = append(events, view.Type("Inf,2")...)
	events = append(events, view.Press(view.KeyEnter), click(6, 3))
	run(t, NewRect(), env, events...)
	b := onlyNode(t, env.Document).Shape().Bounds()
	if !near(b.Min, geom.Zero) || !near(b.Max, geom.XYZ{X: 6, Y: 3}) {
		t.Errorf("Bounds() = %v, want (0,0,0)-(6,3,0)", b)
	}
	if h := env.Document.History(); len(h.Undo) != 1 {
		t.Errorf("History().Undo = %v, want one record", h.Undo)
	}
}

func TestArc(t *testing.T) {
	env, _ := newEnv()
	run(t, NewArc(), env, click(0, 0), click(5, 0), click(0, 5))
	e := onlyNode(t, env.Document).Shape().Edges()[0]
	c, ok := e.(kernel.Arc)
	if !ok {
		t.Fatalf("edge is %T, want kernel.Arc", e)
	}
	if math.Abs(c.Sweep-math.Pi/2) > 1e-6 || !near(c.End(), geom.XYZ{Y: 5}) {
		t.Errorf("arc sweep = %g, end = %v", c.Sweep, c.End())
	}
}

func TestPolygonCloses(t *testing.T) {
	env, _ := newEnv()
	cmd := NewPolygon()
	run(t, cmd, env, click(0, 0), click(10, 0), click(10, 10), click(0, 10), click(0.2, 0.2))

	w, ok := onlyNode(t, env.Document).Shape().(*kernel.Wire)
	if !ok || !w.IsClosed() {
		t.Fatalf("shape = %T, want closed wire", onlyNode(t, env.Document).Shape())
	}
	if got := len(w.Vertices()); got != 4 {
		t.Errorf("len(Vertices()) = %d, want 4", got)
	}
}

func TestPolygonForwardsCancelOnce(t *testing.T) {
	env, _ := newEnv()
	env.View.Dispatch(click(0, 0), click(10, 0), click(10, 10), click(0, 10), click(0.2, 0.2))
	ctl := async.NewController()
	r := polygonStep{}.Execute(context.Background(), env.Env, step.NewResults(), ctl)
	if r == nil || len(r.Points) != 4 {
		t.Fatalf("Execute() = %+v, want 4 vertices", r)
	}
	if n, _ := ctl.Listeners(); n != 1 {
		t.Errorf("cancel listeners = %d, want 1", n)
	}
}

func TestPolygonCancelKeepsDocument(t *testing.T) {
	env, _ := newEnv()
	cmd := NewPolygon()
	run(t, cmd, env, click(0, 0), click(10, 0), escape)
	if got := cmd.State(); got != command.StateCancelled {
		t.Errorf("State() = %v, want cancelled", got)
	}
	if env.Document.Len() != 0 || len(env.Document.History().Undo) != 0 {
		t.Error("cancelled polygon changed the document")
	}
}

func TestBox(t *testing.T) {
	env, _ := newEnv()
	events := []view.Event{click(0, 0), click(4, 3)}
	events = append(events, view.Type("5")...)
	events = append(events, view.Press(view.KeyEnter))
	run(t, NewBox(), env, events...)

	s := onlyNode(t, env.Document).Shape()
	if s.Kind() != kernel.KindSolid {
		t.Fatalf("Kind() = %v, want solid", s.Kind())
	}
	if size := s.Bounds().Size(); !near(size, geom.XYZ{X: 4, Y: 3, Z: 5}) {
		t.Errorf("Bounds().Size() = %v, want (4, 3, 5)", size)
	}
}

func TestMove(t *testing.T) {
	env, r := newEnv()
	n := addNode(t, env, mustShape(t)(env.Kernel.Line(geom.XYZ{X: 20, Y: 20}, geom.XYZ{X: 25, Y: 20})), true)

	cmd := NewMove()
	run(t, cmd, env, click(0, 0), click(5, 0))

	want := geom.Translation(geom.XYZ{X: 5})
	if got := n.Transform(); !got.Equal(want, 1e-9) {
		t.Errorf("Transform() = %v, want %v", got, want)
	}
	if !env.Document.IsSelected(n) {
		t.Error("moved node is no longer selected")
	}
	if len(r.Highlighted()) != 0 {
		t.Errorf("Highlighted() = %v after commit", r.Highlighted())
	}

	if err := env.Document.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if !n.Transform().IsIdentity() {
		t.Errorf("Transform() after undo = %v, want identity", n.Transform())
	}
}

func TestMoveSelectsFirst(t *testing.T) {
	env, _ := newEnv()
	n := addNode(t, env, mustShape(t)(env.Kernel.Line(geom.XYZ{X: -10}, geom.XYZ{X: -10, Y: 10})), false)

	run(t, NewMove(), env,
		click(-10, 5), view.Press(view.KeyEnter),
		click(0, 0), click(0, -3))

	if got := n.Transform().TranslationPart(); !near(got, geom.XYZ{Y: -3}) {
		t.Errorf("translation = %v, want (0, -3, 0)", got)
	}
}

func TestRotate(t *testing.T) {
	env, _ := newEnv()
	n := addNode(t, env, mustShape(t)(env.Kernel.Line(geom.XYZ{X: 20}, geom.XYZ{X: 25})), true)

	run(t, NewRotate(), env, click(0, 0), click(5, 0), click(0, 5))

	e := n.WorldShape().Edges()[0]
	if !near(e.Start(), geom.XYZ{Y: 20}) || !near(e.End(), geom.XYZ{Y: 25}) {
		t.Errorf("rotated line = %v -> %v, want (0,20,0) -> (0,25,0)", e.Start(), e.End())
	}
}

func TestBooleans(t *testing.T) {
	tests := []struct {
		name string
		cmd  func() *command.Multistep
		kind kernel.ShapeKind
		size geom.XYZ
	}{
		{"fuse", NewFuse, kernel.KindCompound, geom.XYZ{X: 6, Y: 6, Z: 4}},
		{"common", NewCommon, kernel.KindSolid, geom.XYZ{X: 2, Y: 2, Z: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newEnv()
			must := mustShape(t)
			addNode(t, env, must(env.Kernel.Box(geom.PlaneXY, 4, 4, 4)), false)
			addNode(t, env, must(env.Kernel.Box(geom.PlaneXY.Translated(geom.XYZ{X: 2, Y: 2}), 4, 4, 4)), false)

			run(t, tt.cmd(), env, click(0, 1), click(6, 5))

			s := onlyNode(t, env.Document).Shape()
			if s.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", s.Kind(), tt.kind)
			}
			if size := s.Bounds().Size(); !near(size, tt.size) {
				t.Errorf("Bounds().Size() = %v, want %v", size, tt.size)
			}
			if err := env.Document.Undo(); err != nil {
				t.Fatalf("Undo() error = %v", err)
			}
			if got := env.Document.Len(); got != 2 {
				t.Errorf("Len() after undo = %d, want 2", got)
			}
		})
	}
}

func TestBooleanSameShape(t *testing.T) {
	env, _ := newEnv()
	addNode(t, env, mustShape(t)(env.Kernel.Box(geom.PlaneXY, 4, 4, 4)), false)
	env.View.Dispatch(click(0, 1), click(4, 1))
	err := NewFuse().Execute(context.Background(), env)
	if err == nil {
		t.Fatal("Execute() error = nil, want ErrSameShape")
	}
	if env.Document.Len() != 1 {
		t.Errorf("Len() = %d after failed fuse, want 1", env.Document.Len())
	}
}

func TestDeleteSelection(t *testing.T) {
	env, _ := newEnv()
	must := mustShape(t)
	a := addNode(t, env, must(env.Kernel.Line(geom.Zero, geom.XYZ{X: 1})), true)
	b := addNode(t, env, must(env.Kernel.Line(geom.XYZ{Y: 5}, geom.XYZ{X: 1, Y: 5})), false)

	run(t, NewDelete(), env)

	if _, ok := env.Document.Node(a.ID()); ok {
		t.Error("selected node survived delete")
	}
	if _, ok := env.Document.Node(b.ID()); !ok {
		t.Error("unselected node was deleted")
	}
	if len(env.Document.Selected()) != 0 {
		t.Errorf("Selected() = %v, want empty", env.Document.Selected())
	}
}

func TestRegistered(t *testing.T) {
	names := command.Names()
	for _, want := range []string{"line", "line.single", "circle", "arc", "rect", "polygon", "box", "move", "rotate", "fuse", "common", "delete"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() missing %q", want)
			continue
		}
		cmd, err := command.Lookup(want)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", want, err)
			continue
		}
		if cmd.State() != command.StateIdle {
			t.Errorf("Lookup(%q).State() = %v, want idle", want, cmd.State())
		}
	}
}
