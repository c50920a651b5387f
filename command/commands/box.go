package commands

import (
	"github.com/rasenga223/luminicad/command"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/step"
	"github.com/rasenga223/luminicad/view"
)

type box struct{}

// NewBox returns the box command: two base corners, then the height along
// the workplane normal.
func NewBox() *command.Multistep { return command.Create(box{}) }

func (box) Name() string { return "box" }

func (box) Steps() []step.Step {
	return []step.Step{
		step.NewPoint("prompt.box.first", nil),
		step.NewPoint("prompt.box.second", secondCornerData),
		step.NewLengthAtAxis("prompt.box.height", boxAxis, boxHeightData),
	}
}

func boxAxis(prior step.Results) geom.XYZ {
	return workplane(prior.At(0)).Normal
}

func boxHeightData(prior step.Results) snap.Data {
	pl, _ := cornerSpan(prior)
	corner := prior.Point(1)
	base := rectPoints(pl, prior.Point(0), corner)
	return snap.Data{
		RefPoint: &corner,
		Preview: func(p *geom.XYZ) []view.Primitive {
			prims := []view.Primitive{view.Loop(base...)}
			if p == nil {
				return prims
			}
			h := pl.Normal.Mul(p.Sub(corner).Dot(pl.Normal))
			top := make([]geom.XYZ, len(base))
			for i, b := range base {
				top[i] = b.Add(h)
				prims = append(prims, view.Polyline(b, top[i]))
			}
			return append(prims, view.Loop(top...))
		},
	}
}

func (box) Geometry(env command.Env, results step.Results) (kernel.Shape, error) {
	pl, d := cornerSpan(results)
	return env.Kernel.Box(pl, d.X, d.Y, results.At(2).Distance)
}
