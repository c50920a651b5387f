package preview

import (
	"cmp"
	"math"
	"slices"
	"sync"

	"github.com/rasenga223/luminicad/document"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/view"
)

// DefaultPickRadius is the default picking distance in pixels.
const DefaultPickRadius = 8

// Option configures a Renderer.
type Option func(*options)

type options struct {
	pickRadius float64
	theme      Theme
}

// WithPickRadius sets the picking distance in pixels.
func WithPickRadius(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.pickRadius = px
		}
	}
}

// WithTheme sets the drawing colors.
func WithTheme(t Theme) Option {
	return func(o *options) { o.theme = t }
}

// Renderer implements view.Renderer for one document. It is safe for
// concurrent use.
type Renderer struct {
	doc  *document.Document
	opts options

	mu          sync.Mutex
	preview     []view.Primitive
	highlighted map[string]bool
	frames      int
}

var _ view.Renderer = (*Renderer)(nil)

// New creates a renderer for doc.
func New(doc *document.Document, opts ...Option) *Renderer {
	o := options{pickRadius: DefaultPickRadius, theme: DefaultTheme()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{doc: doc, opts: o, highlighted: make(map[string]bool)}
}

type hit struct {
	shape view.VisualShape
	dist  float64
}

// Pick implements view.Renderer. Nodes are hit when any edge or vertex is
// within the pick radius of (x, y).
func (r *Renderer) Pick(v *view.View, x, y float64, filter kernel.ShapeKind) []view.VisualShape {
	var hits []hit
	for _, n := range r.doc.Nodes() {
		s := n.WorldShape()
		if !filter.Matches(s.Kind()) {
			continue
		}
		if d := screenDistance(v, s, x, y); d <= r.opts.pickRadius {
			hits = append(hits, hit{view.VisualShape{ID: n.ID(), Node: n, Shape: s}, d})
		}
	}
	slices.SortStableFunc(hits, func(a, b hit) int { return cmp.Compare(a.dist, b.dist) })
	out := make([]view.VisualShape, len(hits))
	for i, h := range hits {
		out[i] = h.shape
	}
	return out
}

func screenDistance(v *view.View, s kernel.Shape, x, y float64) float64 {
	best := math.Inf(1)
	for _, c := range s.Edges() {
		pts := kernel.Polyline(c)
		for i := 1; i < len(pts); i++ {
			ax, ay := v.WorldToScreen(pts[i-1])
			bx, by := v.WorldToScreen(pts[i])
			best = math.Min(best, segmentDistance(x, y, ax, ay, bx, by))
		}
	}
	for _, p := range s.Vertices() {
		best = math.Min(best, v.ScreenDistance(p, x, y))
	}
	return best
}

func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	lsq := dx*dx + dy*dy
	t := 0.0
	if lsq > 0 {
		t = math.Max(0, math.Min(1, ((px-ax)*dx+(py-ay)*dy)/lsq))
	}
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

// RenderPreview implements view.Renderer.
func (r *Renderer) RenderPreview(_ *view.View, prims []view.Primitive) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preview = slices.Clone(prims)
	r.frames++
}

// ClearPreview implements view.Renderer.
func (r *Renderer) ClearPreview(*view.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preview = nil
}

// Highlight implements view.Renderer.
func (r *Renderer) Highlight(_ *view.View, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlighted[id] = true
}

// RemoveHighlight implements view.Renderer.
func (r *Renderer) RemoveHighlight(_ *view.View, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.highlighted, id)
}

// Preview returns the current transient primitives.
func (r *Renderer) Preview() []view.Primitive {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.preview)
}

// Highlighted returns the highlighted mesh ids, sorted.
func (r *Renderer) Highlighted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.highlighted))
	for id := range r.highlighted {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Frames returns how many previews have been rendered.
func (r *Renderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// snapshot copies the state Draw needs.
func (r *Renderer) snapshot() (prims []view.Primitive, highlighted map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	highlighted = make(map[string]bool, len(r.highlighted))
	for id := range r.highlighted {
		highlighted[id] = true
	}
	return slices.Clone(r.preview), highlighted
}

// worldToScreen maps a slice of points for drawing.
func worldToScreen(v *view.View, pts []geom.XYZ) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		x, y := v.WorldToScreen(p)
		out[i] = [2]float64{x, y}
	}
	return out
}
