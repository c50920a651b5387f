package snap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rasenga223/luminicad/geom"
)

// Errors returned by ParseTyped.
var (
	ErrTypedSyntax = errors.New("snap: invalid typed input")
	ErrNoRefPoint  = errors.New("snap: relative input without a reference point")
	ErrEmptyTyped  = errors.New("snap: empty typed input")
)

// Typed is parsed keyboard input: either a point or a bare number.
type Typed struct {
	Point  *geom.XYZ
	Number float64
}

// IsNumber reports whether the input was a single number.
func (t Typed) IsNumber() bool { return t.Point == nil }

// ParseTyped parses "x,y[,z]" (workplane coordinates), "@dx,dy[,dz]"
// (offset from ref in workplane axes) or a single number.
func ParseTyped(text string, ref *geom.XYZ, pl geom.Plane) (Typed, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Typed{}, ErrEmptyTyped
	}
	relative := strings.HasPrefix(text, "@")
	if relative {
		text = text[1:]
	}
	fields := strings.Split(text, ",")
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || !geom.IsFinite(v) {
			return Typed{}, fmt.Errorf("%w: %q", ErrTypedSyntax, f)
		}
		vals[i] = v
	}

	switch {
	case len(vals) == 1 && !relative:
		return Typed{Number: vals[0]}, nil
	case len(vals) < 2 || len(vals) > 3:
		return Typed{}, fmt.Errorf("%w: %d components", ErrTypedSyntax, len(vals))
	}
	local := geom.XYZ{X: vals[0], Y: vals[1]}
	if len(vals) == 3 {
		local.Z = vals[2]
	}

	var p geom.XYZ
	if relative {
		if ref == nil {
			return Typed{}, ErrNoRefPoint
		}
		off := pl.XVec.Mul(local.X).Add(pl.YVec().Mul(local.Y)).Add(pl.Normal.Mul(local.Z))
		p = ref.Add(off)
	} else {
		p = pl.FromLocal(local)
	}
	return Typed{Point: &p}, nil
}
