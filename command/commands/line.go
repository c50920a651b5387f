package commands

import (
	"github.com/rasenga223/luminicad/command"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/step"
)

type line struct{}

// NewLine returns the line command. In connected mode it keeps drawing
// segments, each starting at the previous segment's end, until cancelled.
func NewLine(connected bool) *command.Multistep {
	if !connected {
		return command.Create(line{})
	}
	return command.Create(line{},
		command.Repeat(),
		command.Carry(func(last step.Results) []*snap.Result {
			return []*snap.Result{last.At(1)}
		}))
}

func (line) Name() string { return "line" }

func (line) Steps() []step.Step {
	return []step.Step{
		step.NewPoint("prompt.line.start", nil),
		step.NewPoint("prompt.line.end", func(prior step.Results) snap.Data {
			start := prior.Point(0)
			return snap.Data{RefPoint: &start, Preview: rubberBand(start)}
		}),
	}
}

func (line) Geometry(env command.Env, results step.Results) (kernel.Shape, error) {
	return env.Kernel.Line(results.Point(0), results.Point(1))
}
