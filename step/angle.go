package step

import (
	"context"
	"math"

	"github.com/rasenga223/luminicad/async"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/snap"
)

// AngleStep picks a signed angle about a center. The snapping plane passes
// through the center, its x axis points at the reference point and its
// normal is the workplane normal. Result.Angle is in radians, (-pi, pi].
type AngleStep struct {
	base
	center    PointFunc
	reference PointFunc
}

var _ Step = (*AngleStep)(nil)

// NewAngle creates an angle step.
func NewAngle(prompt string, center, reference PointFunc, data DataFunc, opts ...Option) *AngleStep {
	return &AngleStep{base: newBase(prompt, data, opts), center: center, reference: reference}
}

// AnglePlane returns the plane an angle step measures in. ok is false when
// reference coincides with center or lies along the normal.
func AnglePlane(center, reference, normal geom.XYZ) (geom.Plane, bool) {
	pl, err := geom.NewPlane(center, normal, reference.Sub(center))
	return pl, err == nil
}

// Execute implements Step. It resolves to fail when the reference point
// does not define a plane.
func (s *AngleStep) Execute(ctx context.Context, env snap.Env, prior Results, ctl *async.Controller) *snap.Result {
	data := s.snapData(prior)
	center, reference := s.center(prior), s.reference(prior)
	pl, ok := AnglePlane(center, reference, planeOf(env, data).Normal)
	if !ok {
		ctl.Fail("degenerate angle reference")
		return nil
	}
	data.Plane = &pl
	data.RefPoint = &center
	data.Dimension = snap.DimensionAngle
	if data.Validator == nil {
		data.Validator = NotCoincident(center)
	}
	if data.Prompt == nil {
		data.Prompt = formatAngle
	}

	measure := func(r *snap.Result) {
		if r.Point == nil {
			return
		}
		r.Plane = &pl
		r.Angle = pl.XVec.AngleOnPlane(r.Point.Sub(center), pl.Normal)
	}
	typed := func(t snap.Typed, _ *snap.Result) (snap.Result, bool) {
		if !t.IsNumber() {
			return snap.PointResult(env.View, *t.Point, snap.KindTyped), true
		}
		a := t.Number * math.Pi / 180
		radius := reference.Distance(center)
		p := center.Add(pl.XVec.Rotate(pl.Normal, a).Mul(radius))
		return snap.PointResult(env.View, p, snap.KindTyped), true
	}
	return s.run(ctx, env, data, ctl,
		snap.WithMeasure(measure),
		snap.WithTyped(typed))
}
