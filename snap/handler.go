package snap

import (
	"context"
	"slices"
	"strings"

	"github.com/rasenga223/luminicad/async"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/internal/logging"
	"github.com/rasenga223/luminicad/view"
)

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSnappers replaces the default point snappers.
func WithSnappers(s ...Snapper) HandlerOption {
	return func(h *Handler) { h.snappers = s }
}

// WithMeasure sets a function that fills in Distance, Angle or Info on
// the winning candidate before it is validated and shown.
func WithMeasure(fn func(r *Result)) HandlerOption {
	return func(h *Handler) { h.measure = fn }
}

// WithTyped enables keyboard entry. fn converts parsed input into a
// result; last is the current pointer candidate, nil when nothing snapped.
func WithTyped(fn func(t Typed, last *Result) (Result, bool)) HandlerOption {
	return func(h *Handler) { h.typed = fn }
}

// WithMultiple makes clicks toggle shapes into a set that Enter confirms.
func WithMultiple() HandlerOption {
	return func(h *Handler) { h.multiple = true }
}

// Handler runs one step's interaction: it evaluates snappers on pointer
// moves, keeps the preview and highlights current, and resolves its
// controller. A Handler is used once.
type Handler struct {
	env      Env
	data     Data
	ctl      *async.Controller
	snappers []Snapper
	measure  func(*Result)
	typed    func(Typed, *Result) (Result, bool)
	multiple bool

	current     *Result
	final       *Result
	picked      []view.VisualShape
	highlighted []string
	input       []rune
}

// NewHandler creates a handler for one step.
func NewHandler(env Env, data Data, ctl *async.Controller, opts ...HandlerOption) *Handler {
	h := &Handler{
		env:      env,
		data:     data,
		ctl:      ctl,
		snappers: PointSnappers(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run processes view events until the controller resolves or ctx ends.
// It returns the confirmed result on success and nil otherwise. Transient
// preview and highlights are removed before Run returns.
func (h *Handler) Run(ctx context.Context) *Result {
	events := h.env.View.Events()
	done := h.ctl.Done()
	defer h.clear()
	for {
		// Events queued for a later step stay in the queue.
		if _, resolved := h.ctl.Result(); resolved {
			break
		}
		select {
		case <-ctx.Done():
			h.ctl.Cancel(ctx.Err().Error())
		case <-done:
		case e := <-events:
			h.handle(e)
		}
	}

	r, _ := h.ctl.Result()
	if r.Status != async.StatusSuccess || h.final == nil {
		logging.Logger().Debug("snap: step ended", "status", r.Status, "message", r.Message)
		return nil
	}
	logging.Logger().Debug("snap: step resolved", "kind", h.final.Kind, "info", h.final.Info)
	return h.final
}

// Current returns the candidate under the pointer, or nil.
func (h *Handler) Current() *Result { return h.current }

// Input returns the pending typed input.
func (h *Handler) Input() string { return string(h.input) }

func (h *Handler) handle(e view.Event) {
	switch e.Kind {
	case view.PointerMove:
		h.update(e.X, e.Y)
	case view.PointerDown:
		switch e.Button {
		case view.ButtonLeft:
			h.update(e.X, e.Y)
			h.click()
		case view.ButtonRight:
			h.ctl.Cancel("")
		}
	case view.KeyDown:
		h.key(e)
	}
}

func (h *Handler) key(e view.Event) {
	switch e.Key {
	case view.KeyEscape:
		h.ctl.Cancel("")
	case view.KeyEnter:
		if len(h.input) > 0 {
			h.submitTyped()
			return
		}
		h.confirm()
	case view.KeyBackspace:
		if len(h.input) > 0 {
			h.input = h.input[:len(h.input)-1]
			h.render()
		}
	case view.KeyRune:
		if h.typed != nil {
			h.input = append(h.input, e.Rune)
			h.render()
		}
	}
}

func (h *Handler) update(x, y float64) {
	in := Input{
		View:     h.env.View,
		X:        x,
		Y:        y,
		Shapes:   h.env.View.Pick(x, y, h.data.Filter),
		Data:     &h.data,
		Settings: h.env.Settings,
	}
	cands := Collect(in, h.snappers)
	if h.measure != nil {
		for i := range cands {
			h.measure(&cands[i].Result)
		}
	}
	if best, ok := Merge(cands, h.valid); ok {
		h.current = &best
	} else {
		h.current = nil
	}
	h.render()
}

func (h *Handler) valid(r Result) bool {
	if r.Point == nil || h.data.Validator == nil {
		return true
	}
	return h.data.Validator(*r.Point)
}

func (h *Handler) click() {
	if !h.multiple {
		h.confirm()
		return
	}
	if h.current == nil {
		return
	}
	for _, s := range h.current.Shapes {
		i := slices.IndexFunc(h.picked, func(p view.VisualShape) bool { return p.ID == s.ID })
		if i >= 0 {
			h.picked = slices.Delete(h.picked, i, i+1)
		} else {
			h.picked = append(h.picked, s)
		}
	}
	h.render()
}

func (h *Handler) confirm() {
	if h.multiple {
		if len(h.picked) == 0 {
			return
		}
		h.final = &Result{
			View:   h.env.View,
			Shapes: slices.Clone(h.picked),
			Nodes:  nodesOf(h.picked),
			Kind:   KindShape,
		}
		h.ctl.Success("")
		return
	}
	if h.current == nil {
		return
	}
	h.final = h.current
	h.ctl.Success("")
}

func (h *Handler) submitTyped() {
	text := string(h.input)
	h.input = h.input[:0]
	if h.typed == nil {
		return
	}
	t, err := ParseTyped(text, h.data.RefPoint, h.plane())
	if err != nil {
		logging.Logger().Debug("snap: typed input rejected", "input", text, "err", err)
		h.render()
		return
	}
	r, ok := h.typed(t, h.current)
	if ok && h.measure != nil {
		h.measure(&r)
	}
	if !ok || !h.valid(r) {
		logging.Logger().Debug("snap: typed input rejected", "input", text)
		h.render()
		return
	}
	if r.View == nil {
		r.View = h.env.View
	}
	h.final = &r
	h.ctl.Success("")
}

func (h *Handler) plane() geom.Plane {
	if h.data.Plane != nil {
		return *h.data.Plane
	}
	return h.env.View.Workplane()
}

func (h *Handler) render() {
	rd := h.env.View.Renderer()
	if rd == nil {
		return
	}
	var p *geom.XYZ
	if h.current != nil {
		p = h.current.Point
	}
	var prims []view.Primitive
	if h.data.Preview != nil {
		prims = append(prims, h.data.Preview(p)...)
	}
	if p != nil {
		prims = append(prims, view.Marker(*p))
		if text := h.label(); text != "" {
			prims = append(prims, view.Label(*p, text))
		}
	}
	rd.RenderPreview(h.env.View, prims)
	h.setHighlights()
}

func (h *Handler) label() string {
	var parts []string
	text := h.env.text(h.current.Info)
	if h.data.Prompt != nil {
		text = h.data.Prompt(h.current)
	}
	if text != "" {
		parts = append(parts, text)
	}
	if len(h.input) > 0 {
		parts = append(parts, string(h.input)+"_")
	}
	return strings.Join(parts, " ")
}

func (h *Handler) setHighlights() {
	var want []string
	for _, s := range h.picked {
		want = append(want, s.ID)
	}
	if h.current != nil {
		for _, s := range h.current.Shapes {
			if !slices.Contains(want, s.ID) {
				want = append(want, s.ID)
			}
		}
	}
	rd := h.env.View.Renderer()
	for _, id := range h.highlighted {
		if !slices.Contains(want, id) {
			rd.RemoveHighlight(h.env.View, id)
		}
	}
	for _, id := range want {
		if !slices.Contains(h.highlighted, id) {
			rd.Highlight(h.env.View, id)
		}
	}
	h.highlighted = want
}

func (h *Handler) clear() {
	rd := h.env.View.Renderer()
	if rd == nil {
		return
	}
	rd.ClearPreview(h.env.View)
	for _, id := range h.highlighted {
		rd.RemoveHighlight(h.env.View, id)
	}
	h.highlighted = nil
}
