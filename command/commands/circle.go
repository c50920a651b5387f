package commands

import (
	"github.com/rasenga223/luminicad/command"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/step"
	"github.com/rasenga223/luminicad/view"
)

type circle struct{}

// NewCircle returns the center-radius circle command. The circle lies on
// the workplane of the center pick.
func NewCircle() *command.Multistep { return command.Create(circle{}) }

func (circle) Name() string { return "circle" }

func (circle) Steps() []step.Step {
	return []step.Step{
		step.NewPoint("prompt.circle.center", nil),
		step.NewLengthAtPlane("prompt.circle.radius", circleRadiusData),
	}
}

func circleRadiusData(prior step.Results) snap.Data {
	center := prior.Point(0)
	pl := workplane(prior.At(0)).Translated(center)
	return snap.Data{
		RefPoint: &center,
		Plane:    &pl,
		Preview: func(p *geom.XYZ) []view.Primitive {
			if p == nil {
				return nil
			}
			r := p.Distance(center)
			if r < geom.Tolerance {
				return nil
			}
			return []view.Primitive{
				view.Loop(circlePoints(center, pl.Normal, pl.XVec, r)...),
				view.Polyline(center, *p),
			}
		},
	}
}

func (circle) Geometry(env command.Env, results step.Results) (kernel.Shape, error) {
	center := results.Point(0)
	normal := workplane(results.At(0)).Normal
	return env.Kernel.Circle(normal, center, results.At(1).Distance)
}
