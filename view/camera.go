package view

import "github.com/rasenga223/luminicad/geom"

// Camera is an orthographic camera. Screen coordinates are pixels with the
// origin at the top-left corner and y growing downwards.
type Camera struct {
	// Target is the world point shown at the viewport center.
	Target geom.XYZ
	// Direction is the viewing direction (from the eye towards Target).
	Direction geom.XYZ
	// Up is the world direction shown as screen up.
	Up geom.XYZ
	// Scale is the number of pixels per world unit.
	Scale float64

	Width, Height float64
}

// eyeDistance is how far behind the view plane picking rays start.
const eyeDistance = 1e4

// DefaultCamera looks down the -Z axis onto the XY plane.
func DefaultCamera(width, height float64) Camera {
	return Camera{
		Target:    geom.Zero,
		Direction: geom.UnitZ.Neg(),
		Up:        geom.UnitY,
		Scale:     10,
		Width:     width,
		Height:    height,
	}
}

// basis returns the orthonormal screen frame (right, up, forward).
func (c Camera) basis() (right, up, fwd geom.XYZ) {
	fwd, ok := c.Direction.Normalize()
	if !ok {
		fwd = geom.UnitZ.Neg()
	}
	right, ok = fwd.Cross(c.Up).Normalize()
	if !ok {
		right = geom.UnitX
	}
	up = right.Cross(fwd)
	return right, up, fwd
}

func (c Camera) scale() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}

// WorldToScreen projects a world point to pixel coordinates.
func (c Camera) WorldToScreen(p geom.XYZ) (x, y float64) {
	right, up, _ := c.basis()
	d := p.Sub(c.Target)
	s := c.scale()
	return c.Width/2 + d.Dot(right)*s, c.Height/2 - d.Dot(up)*s
}

// Ray returns the picking ray through pixel (x, y).
func (c Camera) Ray(x, y float64) geom.Ray {
	right, up, fwd := c.basis()
	s := c.scale()
	p := c.Target.
		Add(right.Mul((x - c.Width/2) / s)).
		Add(up.Mul((c.Height/2 - y) / s)).
		Sub(fwd.Mul(eyeDistance))
	return geom.Ray{Origin: p, Direction: fwd}
}

// PixelSize returns the world length covered by one pixel.
func (c Camera) PixelSize() float64 {
	return 1 / c.scale()
}
