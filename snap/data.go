package snap

import (
	"github.com/rasenga223/luminicad/document"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/view"
)

// DefaultRadius is the default snap radius in pixels.
const DefaultRadius = 8

// Settings tunes snapping for a view.
type Settings struct {
	// Radius is the screen distance in pixels within which object and
	// feature snaps engage. Zero means DefaultRadius.
	Radius float64
	// Types is the set of enabled object snaps. Zero means SnapAll.
	Types ObjectSnapType
}

func (s Settings) radius() float64 {
	if s.Radius <= 0 {
		return DefaultRadius
	}
	return s.Radius
}

func (s Settings) types() ObjectSnapType {
	if s.Types == 0 {
		return SnapAll
	}
	return s.Types
}

// Env is what an interaction step runs against.
type Env struct {
	Document *document.Document
	View     *view.View
	Settings Settings
	// Translate maps message keys in preview labels to display text.
	// Nil leaves keys as they are.
	Translate func(key string) string
}

func (e Env) text(key string) string {
	if e.Translate == nil || key == "" {
		return key
	}
	return e.Translate(key)
}

// Dimension is what a step measures; it selects how typed input is read.
type Dimension uint8

const (
	DimensionPoint Dimension = iota
	DimensionLength
	DimensionAngle
)

// FeaturePoint is a named anchor a step offers for snapping. When, if set,
// is evaluated on every pointer move and hides the point when it returns
// false.
type FeaturePoint struct {
	Point geom.XYZ
	// Prompt is the message key shown while the point is snapped.
	Prompt string
	When   func() bool
}

func (fp FeaturePoint) visible() bool {
	return fp.When == nil || fp.When()
}

// Data configures one step's snapping.
type Data struct {
	// Preview returns transient primitives for a candidate point. p is nil
	// when nothing snapped this frame.
	Preview func(p *geom.XYZ) []view.Primitive
	// Validator must accept a candidate point before it can be confirmed.
	Validator func(p geom.XYZ) bool
	// Filter restricts the kinds of shapes considered for snapping. The
	// zero filter accepts every kind.
	Filter        kernel.ShapeKind
	FeaturePoints []FeaturePoint
	// RefPoint is the base point for lengths, perpendicular snaps and
	// relative typed input.
	RefPoint *geom.XYZ
	// Plane overrides the view workplane for plane projection.
	Plane     *geom.Plane
	Dimension Dimension
	// Prompt returns the live info text for the current candidate.
	Prompt func(r *Result) string
}

// Result is the outcome of one snap evaluation or one resolved step.
// Results are not modified after a step resolves.
type Result struct {
	View  *view.View
	Point *geom.XYZ
	// Points holds every vertex of multi-point picks, in order.
	Points []geom.XYZ
	Shapes []view.VisualShape
	Nodes  []*document.Node
	Plane  *geom.Plane
	// Distance is the measured length for length steps.
	Distance float64
	// Angle is the measured signed angle in radians for angle steps.
	Angle float64
	// Info is a message key describing the snap.
	Info string
	Kind Kind
}

// PointResult returns a result for p.
func PointResult(v *view.View, p geom.XYZ, kind Kind) Result {
	return Result{View: v, Point: &p, Kind: kind}
}

// At returns the resolved point. It panics when the result has no point.
func (r *Result) At() geom.XYZ {
	if r.Point == nil {
		panic("snap: result has no point")
	}
	return *r.Point
}

func nodesOf(shapes []view.VisualShape) []*document.Node {
	var nodes []*document.Node
	seen := make(map[*document.Node]bool)
	for _, s := range shapes {
		if s.Node != nil && !seen[s.Node] {
			seen[s.Node] = true
			nodes = append(nodes, s.Node)
		}
	}
	return nodes
}
