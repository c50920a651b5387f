package commands

import (
	"github.com/rasenga223/luminicad/command"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/step"
	"github.com/rasenga223/luminicad/view"
)

type rect struct{}

// NewRect returns the two-corner rectangle command.
func NewRect() *command.Multistep { return command.Create(rect{}) }

func (rect) Name() string { return "rect" }

func (rect) Steps() []step.Step {
	return []step.Step{
		step.NewPoint("prompt.rect.first", nil),
		step.NewPoint("prompt.rect.second", secondCornerData),
	}
}

// secondCornerData rejects corners that would give a zero width or height.
func secondCornerData(prior step.Results) snap.Data {
	first := prior.Point(0)
	pl := workplane(prior.At(0)).Translated(first)
	return snap.Data{
		RefPoint: &first,
		Plane:    &pl,
		Validator: func(p geom.XYZ) bool {
			d := pl.ToLocal(p)
			return !geom.NearlyZero(d.X) && !geom.NearlyZero(d.Y)
		},
		Preview: func(p *geom.XYZ) []view.Primitive {
			if p == nil {
				return nil
			}
			return []view.Primitive{view.Loop(rectPoints(pl, first, *p)...)}
		},
	}
}

// cornerSpan returns the plane at the first corner and the local extent
// to the second.
func cornerSpan(results step.Results) (geom.Plane, geom.XYZ) {
	first := results.Point(0)
	pl := workplane(results.At(0)).Translated(first)
	return pl, pl.ToLocal(results.Point(1))
}

func (rect) Geometry(env command.Env, results step.Results) (kernel.Shape, error) {
	pl, d := cornerSpan(results)
	return env.Kernel.Rect(pl, d.X, d.Y)
}
