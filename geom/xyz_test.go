package geom

import (
	"math"
	"testing"
)

func TestXYZArithmetic(t *testing.T) {
	a := P(1, 2, 3)
	b := P(4, 5, 6)
	tests := []struct {
		name string
		got  XYZ
		want XYZ
	}{
		{"add", a.Add(b), P(5, 7, 9)},
		{"sub", b.Sub(a), P(3, 3, 3)},
		{"mul", a.Mul(2), P(2, 4, 6)},
		{"div", b.Div(2), P(2, 2.5, 3)},
		{"neg", a.Neg(), P(-1, -2, -3)},
		{"cross x*y", UnitX.Cross(UnitY), UnitZ},
		{"cross y*x", UnitY.Cross(UnitX), UnitZ.Neg()},
		{"lerp", a.Lerp(b, 0.5), P(2.5, 3.5, 4.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.IsEqual(tt.want, Tolerance) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestXYZNormalize(t *testing.T) {
	u, ok := P(3, 0, 4).Normalize()
	if !ok {
		t.Fatal("Normalize() ok = false for non-zero vector")
	}
	if !NearlyEqual(u.Length(), 1) {
		t.Errorf("length = %v, want 1", u.Length())
	}
	if _, ok := P(Tolerance/2, 0, 0).Normalize(); ok {
		t.Error("Normalize() ok = true for vector below tolerance")
	}
}

func TestXYZIsEqualTolerance(t *testing.T) {
	p := Zero
	tests := []struct {
		name   string
		offset float64
		want   bool
	}{
		{"identical", 0, true},
		{"below tolerance", Tolerance * 0.5, true},
		{"just below tolerance", Tolerance * 0.9, true},
		{"just above tolerance", Tolerance * 1.1, false},
		{"above tolerance", Tolerance * 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := p.Add(P(tt.offset, 0, 0))
			if got := p.IsEqual(q, Tolerance); got != tt.want {
				t.Errorf("IsEqual(offset=%g) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestXYZIsParallel(t *testing.T) {
	tests := []struct {
		name string
		a, b XYZ
		want bool
	}{
		{"same", UnitX, P(5, 0, 0), true},
		{"opposite", UnitX, P(-2, 0, 0), true},
		{"perpendicular", UnitX, UnitY, false},
		{"slightly off", UnitX, P(1, 1e-3, 0), false},
		{"zero", Zero, UnitX, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsParallel(tt.b); got != tt.want {
				t.Errorf("IsParallel(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
	if !UnitX.IsOpposite(UnitX.Neg()) {
		t.Error("IsOpposite(+X, -X) = false")
	}
}

func TestXYZAngleOnPlane(t *testing.T) {
	tests := []struct {
		name string
		to   XYZ
		want float64
	}{
		{"quarter ccw", UnitY, math.Pi / 2},
		{"quarter cw", UnitY.Neg(), -math.Pi / 2},
		{"half", UnitX.Neg(), math.Pi},
		{"zero", P(2, 0, 0), 0},
		{"out of plane ignored", P(0, 1, 5), math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnitX.AngleOnPlane(tt.to, UnitZ)
			if math.Abs(got-tt.want) > AngleTolerance {
				t.Errorf("AngleOnPlane = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestXYZRotate(t *testing.T) {
	got := UnitX.Rotate(UnitZ, math.Pi/2)
	if !got.IsEqual(UnitY, 1e-12) {
		t.Errorf("Rotate(+X, Z, 90deg) = %v, want %v", got, UnitY)
	}
}
