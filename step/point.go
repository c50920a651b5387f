package step

import (
	"context"

	"github.com/rasenga223/luminicad/async"
	"github.com/rasenga223/luminicad/snap"
)

// PointStep picks a 3-D point using feature, object, edge and plane snaps.
type PointStep struct {
	base
}

var _ Step = (*PointStep)(nil)

// NewPoint creates a point step. When the data has a RefPoint and no
// Validator, points coincident with RefPoint are rejected.
func NewPoint(prompt string, data DataFunc, opts ...Option) *PointStep {
	return &PointStep{base: newBase(prompt, data, opts)}
}

// Execute implements Step.
func (s *PointStep) Execute(ctx context.Context, env snap.Env, prior Results, ctl *async.Controller) *snap.Result {
	data := s.snapData(prior)
	data.Dimension = snap.DimensionPoint
	defaultValidator(&data)
	return s.run(ctx, env, data, ctl,
		snap.WithMeasure(measureDistance(data)),
		snap.WithTyped(typedPoint(env, data)))
}

// LengthAtPlaneStep picks a length measured from RefPoint on the plane.
// Result.Distance is the distance from RefPoint.
type LengthAtPlaneStep struct {
	base
}

var _ Step = (*LengthAtPlaneStep)(nil)

// NewLengthAtPlane creates a length step. The data must set RefPoint.
func NewLengthAtPlane(prompt string, data DataFunc, opts ...Option) *LengthAtPlaneStep {
	return &LengthAtPlaneStep{base: newBase(prompt, data, opts)}
}

// Execute implements Step. It panics when the data has no RefPoint.
func (s *LengthAtPlaneStep) Execute(ctx context.Context, env snap.Env, prior Results, ctl *async.Controller) *snap.Result {
	data := s.snapData(prior)
	if data.RefPoint == nil {
		panic("step: length step without a reference point")
	}
	data.Dimension = snap.DimensionLength
	defaultValidator(&data)
	if data.Prompt == nil {
		data.Prompt = formatLength
	}
	return s.run(ctx, env, data, ctl,
		snap.WithMeasure(measureDistance(data)),
		snap.WithTyped(typedPoint(env, data)))
}

func defaultValidator(data *snap.Data) {
	if data.Validator == nil && data.RefPoint != nil {
		data.Validator = NotCoincident(*data.RefPoint)
	}
}

func measureDistance(data snap.Data) func(*snap.Result) {
	return func(r *snap.Result) {
		if data.RefPoint != nil && r.Point != nil {
			r.Distance = r.Point.Distance(*data.RefPoint)
		}
	}
}

// typedPoint accepts absolute and relative coordinates, and a bare number
// as a distance from RefPoint towards the pointer.
func typedPoint(env snap.Env, data snap.Data) func(snap.Typed, *snap.Result) (snap.Result, bool) {
	return func(t snap.Typed, last *snap.Result) (snap.Result, bool) {
		if !t.IsNumber() {
			return snap.PointResult(env.View, *t.Point, snap.KindTyped), true
		}
		if data.RefPoint == nil {
			return snap.Result{}, false
		}
		ref := *data.RefPoint
		dir := direction(ref, last, planeOf(env, data))
		return snap.PointResult(env.View, ref.Add(dir.Mul(t.Number)), snap.KindTyped), true
	}
}
