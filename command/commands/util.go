package commands

import (
	"math"

	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/view"
)

// workplane returns the plane a result was picked on.
func workplane(r *snap.Result) geom.Plane {
	if r.View != nil {
		return r.View.Workplane()
	}
	return geom.PlaneXY
}

// circlePoints samples a full circle for previews.
func circlePoints(center, normal, xvec geom.XYZ, radius float64) []geom.XYZ {
	const n = 64
	pts := make([]geom.XYZ, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / n
		pts[i] = center.Add(xvec.Rotate(normal, a).Mul(radius))
	}
	return pts
}

// rectPoints returns the corners of the rectangle spanned by a and b on pl.
func rectPoints(pl geom.Plane, a, b geom.XYZ) []geom.XYZ {
	d := pl.ToLocal(b).Sub(pl.ToLocal(a))
	x, y := pl.XVec.Mul(d.X), pl.YVec().Mul(d.Y)
	return []geom.XYZ{a, a.Add(x), a.Add(x).Add(y), a.Add(y)}
}

func rubberBand(from geom.XYZ) func(*geom.XYZ) []view.Primitive {
	return func(p *geom.XYZ) []view.Primitive {
		if p == nil {
			return nil
		}
		return []view.Primitive{view.Polyline(from, *p)}
	}
}
