package step

import (
	"context"
	"fmt"
	"math"

	"github.com/rasenga223/luminicad/async"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/internal/logging"
	"github.com/rasenga223/luminicad/snap"
)

// Step is one unit of user interaction.
type Step interface {
	// Prompt returns the message key shown while the step runs.
	Prompt() string
	// Execute runs the interaction. It returns nil exactly when ctl
	// resolved to fail or cancel.
	Execute(ctx context.Context, env snap.Env, prior Results, ctl *async.Controller) *snap.Result
}

// DataFunc builds a step's snap configuration from the earlier results of
// the same run. It is called once per Execute.
type DataFunc func(prior Results) snap.Data

// PointFunc derives a point from earlier results.
type PointFunc func(prior Results) geom.XYZ

// PointOf returns the point of result i.
func PointOf(i int) PointFunc {
	return func(prior Results) geom.XYZ { return prior.Point(i) }
}

// RefPointOf returns a DataFunc that only sets RefPoint to result i.
func RefPointOf(i int) DataFunc {
	return func(prior Results) snap.Data {
		p := prior.Point(i)
		return snap.Data{RefPoint: &p}
	}
}

// NotCoincident returns a validator rejecting points within
// geom.Tolerance of ref.
func NotCoincident(ref geom.XYZ) func(geom.XYZ) bool {
	return func(p geom.XYZ) bool {
		return p.Distance(ref) >= geom.Tolerance
	}
}

// Option configures a step.
type Option func(*base)

// KeepSelected makes the step keep the document selection: a select step
// resolves from it, other steps keep it highlighted.
func KeepSelected() Option {
	return func(b *base) { b.keepSelected = true }
}

type base struct {
	prompt       string
	data         DataFunc
	keepSelected bool
}

func newBase(prompt string, data DataFunc, opts []Option) base {
	b := base{prompt: prompt, data: data}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Prompt implements Step.
func (b *base) Prompt() string { return b.prompt }

func (b *base) snapData(prior Results) snap.Data {
	if b.data == nil {
		return snap.Data{}
	}
	return b.data(prior)
}

func (b *base) run(ctx context.Context, env snap.Env, data snap.Data, ctl *async.Controller, opts ...snap.HandlerOption) *snap.Result {
	logging.Logger().Debug("step: start", "prompt", b.prompt)
	if b.keepSelected {
		b.highlightSelection(env, true)
		defer b.highlightSelection(env, false)
	}
	return snap.NewHandler(env, data, ctl, opts...).Run(ctx)
}

func (b *base) highlightSelection(env snap.Env, on bool) {
	rd := env.View.Renderer()
	if rd == nil || env.Document == nil {
		return
	}
	for _, n := range env.Document.Selected() {
		if on {
			rd.Highlight(env.View, n.ID())
		} else {
			rd.RemoveHighlight(env.View, n.ID())
		}
	}
}

// direction returns the unit direction from ref towards the current
// candidate, or the workplane x axis when there is none.
func direction(ref geom.XYZ, last *snap.Result, pl geom.Plane) geom.XYZ {
	if last != nil && last.Point != nil {
		if d, ok := last.Point.Sub(ref).Normalize(); ok {
			return d
		}
	}
	return pl.XVec
}

func planeOf(env snap.Env, data snap.Data) geom.Plane {
	if data.Plane != nil {
		return *data.Plane
	}
	return env.View.Workplane()
}

func formatLength(r *snap.Result) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%.4g", r.Distance)
}

func formatAngle(r *snap.Result) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%.4g°", r.Angle*180/math.Pi)
}
