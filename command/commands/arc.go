package commands

import (
	"github.com/rasenga223/luminicad/command"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/step"
	"github.com/rasenga223/luminicad/view"
)

type arc struct{}

// NewArc returns the center-start-angle arc command.
func NewArc() *command.Multistep { return command.Create(arc{}) }

func (arc) Name() string { return "arc" }

func (arc) Steps() []step.Step {
	return []step.Step{
		step.NewPoint("prompt.arc.center", nil),
		step.NewPoint("prompt.arc.start", func(prior step.Results) snap.Data {
			center := prior.Point(0)
			return snap.Data{RefPoint: &center, Preview: rubberBand(center)}
		}),
		step.NewAngle("prompt.arc.angle", step.PointOf(0), step.PointOf(1), arcAngleData),
	}
}

func arcAngleData(prior step.Results) snap.Data {
	center, start := prior.Point(0), prior.Point(1)
	normal := workplane(prior.At(0)).Normal
	return snap.Data{
		Preview: func(p *geom.XYZ) []view.Primitive {
			if p == nil {
				return []view.Primitive{view.Polyline(center, start)}
			}
			xvec := start.Sub(center)
			sweep := start.Sub(center).AngleOnPlane(p.Sub(center), normal)
			c := kernel.NewArc(center, normal, xvec, xvec.Length(), sweep)
			return []view.Primitive{view.Polyline(center, start), view.CurvePrimitive(c)}
		},
	}
}

func (arc) Geometry(env command.Env, results step.Results) (kernel.Shape, error) {
	normal := workplane(results.At(0)).Normal
	return env.Kernel.Arc(normal, results.Point(0), results.Point(1), results.At(2).Angle)
}
