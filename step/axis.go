package step

import (
	"context"

	"github.com/rasenga223/luminicad/async"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/snap"
)

// LengthAtAxisStep picks a signed length along an axis through RefPoint.
// Snapped points are projected onto the axis; Result.Distance is the
// signed offset from RefPoint.
type LengthAtAxisStep struct {
	base
	axis func(prior Results) geom.XYZ
}

var _ Step = (*LengthAtAxisStep)(nil)

// NewLengthAtAxis creates an axis length step. axis returns the axis
// direction; the data must set RefPoint.
func NewLengthAtAxis(prompt string, axis func(prior Results) geom.XYZ, data DataFunc, opts ...Option) *LengthAtAxisStep {
	return &LengthAtAxisStep{base: newBase(prompt, data, opts), axis: axis}
}

// Execute implements Step. It panics when the data has no RefPoint or the
// axis is zero.
func (s *LengthAtAxisStep) Execute(ctx context.Context, env snap.Env, prior Results, ctl *async.Controller) *snap.Result {
	data := s.snapData(prior)
	if data.RefPoint == nil {
		panic("step: axis step without a reference point")
	}
	dir, ok := s.axis(prior).Normalize()
	if !ok {
		panic("step: axis step with a zero axis")
	}
	origin := *data.RefPoint
	data.Dimension = snap.DimensionLength
	if data.Validator == nil {
		data.Validator = NotCoincident(origin)
	}
	if data.Prompt == nil {
		data.Prompt = formatLength
	}

	project := func(r *snap.Result) {
		if r.Point == nil {
			return
		}
		t := r.Point.Sub(origin).Dot(dir)
		p := origin.Add(dir.Mul(t))
		r.Point = &p
		r.Distance = t
	}
	typed := func(t snap.Typed, _ *snap.Result) (snap.Result, bool) {
		if t.IsNumber() {
			return snap.PointResult(env.View, origin.Add(dir.Mul(t.Number)), snap.KindTyped), true
		}
		return snap.PointResult(env.View, *t.Point, snap.KindTyped), true
	}
	return s.run(ctx, env, data, ctl,
		snap.WithSnappers(snap.FeatureSnapper{}, snap.ObjectSnapper{}, snap.AxisSnapper{Origin: origin, Direction: dir}),
		snap.WithMeasure(project),
		snap.WithTyped(typed))
}
