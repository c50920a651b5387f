package step

import (
	"context"

	"github.com/rasenga223/luminicad/async"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/view"
)

// SelectShapeStep picks shapes whose kind passes the filter. The result
// carries the picked shapes and the nodes owning them.
type SelectShapeStep struct {
	base
	filter   kernel.ShapeKind
	multiple bool
}

var _ Step = (*SelectShapeStep)(nil)

// SelectOption configures a SelectShapeStep.
type SelectOption func(*SelectShapeStep)

// Multiple lets the user toggle several shapes and confirm with Enter.
func Multiple() SelectOption {
	return func(s *SelectShapeStep) { s.multiple = true }
}

// KeepSelection resolves the step from a non-empty document selection
// without waiting for input.
func KeepSelection() SelectOption {
	return func(s *SelectShapeStep) { s.keepSelected = true }
}

// NewSelectShape creates a select step.
func NewSelectShape(prompt string, filter kernel.ShapeKind, opts ...SelectOption) *SelectShapeStep {
	s := &SelectShapeStep{base: newBase(prompt, nil, nil), filter: filter}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute implements Step.
func (s *SelectShapeStep) Execute(ctx context.Context, env snap.Env, prior Results, ctl *async.Controller) *snap.Result {
	if s.keepSelected && env.Document != nil {
		if r := s.fromSelection(env); r != nil {
			ctl.Success("")
			return r
		}
	}

	data := snap.Data{Filter: s.filter}
	opts := []snap.HandlerOption{snap.WithSnappers(snap.ShapeSnapper{})}
	if s.multiple {
		opts = append(opts, snap.WithMultiple())
	}
	// keepSelected has been handled; do not highlight the old selection.
	b := s.base
	b.keepSelected = false
	return b.run(ctx, env, data, ctl, opts...)
}

func (s *SelectShapeStep) fromSelection(env snap.Env) *snap.Result {
	r := &snap.Result{View: env.View, Kind: snap.KindShape}
	for _, n := range env.Document.Selected() {
		shape := n.WorldShape()
		if !s.filter.Matches(shape.Kind()) {
			continue
		}
		r.Shapes = append(r.Shapes, view.VisualShape{ID: n.ID(), Node: n, Shape: shape})
		r.Nodes = append(r.Nodes, n)
	}
	if len(r.Nodes) == 0 {
		return nil
	}
	return r
}
