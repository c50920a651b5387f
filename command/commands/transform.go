package commands

import (
	"github.com/rasenga223/luminicad/command"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/step"
)

type move struct{}

// NewMove returns the move command for the selected nodes.
func NewMove() *command.Multistep { return command.Transformed(move{}) }

func (move) Name() string { return "move" }

func (move) Steps() []step.Step {
	return []step.Step{
		step.NewPoint("prompt.move.from", nil, step.KeepSelected()),
		step.NewPoint("prompt.move.to", func(prior step.Results) snap.Data {
			from := prior.Point(0)
			return snap.Data{RefPoint: &from, Preview: rubberBand(from)}
		}, step.KeepSelected()),
	}
}

func (move) Transform(results step.Results) (geom.Matrix4, error) {
	return geom.Translation(results.Point(1).Sub(results.Point(0))), nil
}

type rotate struct{}

// NewRotate returns the rotate command: center, reference direction, then
// the angle about the workplane normal.
func NewRotate() *command.Multistep { return command.Transformed(rotate{}) }

func (rotate) Name() string { return "rotate" }

func (rotate) Steps() []step.Step {
	return []step.Step{
		step.NewPoint("prompt.rotate.center", nil, step.KeepSelected()),
		step.NewPoint("prompt.rotate.reference", func(prior step.Results) snap.Data {
			center := prior.Point(0)
			return snap.Data{RefPoint: &center, Preview: rubberBand(center)}
		}, step.KeepSelected()),
		step.NewAngle("prompt.rotate.angle", step.PointOf(0), step.PointOf(1), nil, step.KeepSelected()),
	}
}

func (rotate) Transform(results step.Results) (geom.Matrix4, error) {
	normal := workplane(results.At(0)).Normal
	if pl := results.At(2).Plane; pl != nil {
		normal = pl.Normal
	}
	return geom.RotationAbout(results.Point(0), normal, results.At(2).Angle), nil
}
