package commands

import (
	"context"
	"sync"

	"github.com/rasenga223/luminicad/async"
	"github.com/rasenga223/luminicad/command"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/step"
	"github.com/rasenga223/luminicad/view"
)

type polygon struct{}

// NewPolygon returns the polygon command. Vertices are picked one by one;
// picking the first vertex again, offered once there are three, closes
// the polygon.
func NewPolygon() *command.Multistep { return command.Create(polygon{}) }

func (polygon) Name() string { return "polygon" }

func (polygon) Steps() []step.Step {
	return []step.Step{polygonStep{}}
}

func (polygon) Geometry(env command.Env, results step.Results) (kernel.Shape, error) {
	return env.Kernel.Polygon(results.At(0).Points)
}

// polygonStep collects vertices with one point pick per vertex.
type polygonStep struct{}

func (polygonStep) Prompt() string { return "prompt.polygon.next" }

func (s polygonStep) Execute(ctx context.Context, env snap.Env, prior step.Results, ctl *async.Controller) *snap.Result {
	var (
		pts []geom.XYZ
		mu  sync.Mutex
		sub *async.Controller
	)
	ctl.OnCancelled(func(r async.Result) {
		mu.Lock()
		cur := sub
		mu.Unlock()
		if cur != nil {
			cur.Cancel(r.Message)
		}
	})
	for {
		mu.Lock()
		sub = async.NewController()
		mu.Unlock()
		// The parent may resolve before sub is visible to the listener.
		if res, done := ctl.Result(); done {
			sub.Cancel(res.Message)
			return nil
		}
		r := step.NewPoint(s.Prompt(), func(step.Results) snap.Data {
			return polygonData(pts)
		}).Execute(ctx, env, prior, sub)
		res, _ := sub.Result()
		sub.Dispose()

		if r == nil {
			if res.Status == async.StatusFail {
				ctl.Fail(res.Message)
			} else {
				ctl.Cancel(res.Message)
			}
			return nil
		}
		p := r.At()
		if len(pts) >= 3 && p.IsEqual(pts[0], geom.Tolerance) {
			ctl.Success("")
			return &snap.Result{View: env.View, Point: &pts[0], Points: pts, Kind: snap.KindFeature, Info: "snap.close"}
		}
		pts = append(pts, p)
	}
}

func polygonData(pts []geom.XYZ) snap.Data {
	if len(pts) == 0 {
		return snap.Data{}
	}
	last := pts[len(pts)-1]
	return snap.Data{
		RefPoint: &last,
		FeaturePoints: []snap.FeaturePoint{{
			Point:  pts[0],
			Prompt: "snap.close",
			When:   func() bool { return len(pts) >= 3 },
		}},
		Preview: func(p *geom.XYZ) []view.Primitive {
			chain := append([]geom.XYZ(nil), pts...)
			if p != nil {
				chain = append(chain, *p)
			}
			return []view.Primitive{view.Polyline(chain...)}
		},
	}
}
