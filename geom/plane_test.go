package geom

import "testing"

func TestNewPlane(t *testing.T) {
	pl, err := NewPlane(P(0, 0, 5), P(0, 0, 2), P(1, 1, 0))
	if err != nil {
		t.Fatalf("NewPlane() error = %v", err)
	}
	if !pl.Normal.IsEqual(UnitZ, Tolerance) {
		t.Errorf("Normal = %v, want +Z", pl.Normal)
	}
	if !NearlyEqual(pl.XVec.Length(), 1) || !NearlyZero(pl.XVec.Dot(pl.Normal)) {
		t.Errorf("XVec = %v is not a unit vector in the plane", pl.XVec)
	}

	if _, err := NewPlane(Zero, Zero, UnitX); err != ErrDegeneratePlane {
		t.Errorf("zero normal: err = %v, want ErrDegeneratePlane", err)
	}
	if _, err := NewPlane(Zero, UnitZ, P(0, 0, 3)); err != ErrDegeneratePlane {
		t.Errorf("xvec along normal: err = %v, want ErrDegeneratePlane", err)
	}
}

func TestPlaneIntersect(t *testing.T) {
	pl := PlaneXY.Translated(P(0, 0, 2))
	tests := []struct {
		name   string
		ray    Ray
		want   XYZ
		wantOK bool
	}{
		{"straight down", NewRay(P(3, 4, 10), UnitZ.Neg()), P(3, 4, 2), true},
		{"oblique", NewRay(P(0, 0, 4), P(1, 0, -1)), P(2, 0, 2), true},
		{"parallel", NewRay(P(0, 0, 4), UnitX), XYZ{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pl.Intersect(tt.ray)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.IsEqual(tt.want, 1e-9) {
				t.Errorf("Intersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaneLocalRoundTrip(t *testing.T) {
	pl, err := NewPlane(P(1, 2, 3), P(1, 1, 1), P(1, -1, 0))
	if err != nil {
		t.Fatal(err)
	}
	p := P(-4, 7, 0.5)
	if got := pl.FromLocal(pl.ToLocal(p)); !got.IsEqual(p, 1e-9) {
		t.Errorf("FromLocal(ToLocal(p)) = %v, want %v", got, p)
	}
	proj := pl.Project(p)
	if !NearlyZero(pl.SignedDistance(proj)) {
		t.Errorf("projected point is %v away from the plane", pl.SignedDistance(proj))
	}
}

func TestRayClosestOnLine(t *testing.T) {
	r := NewRay(P(5, 3, 10), UnitZ.Neg())
	tt, ok := r.ClosestOnLine(Zero, UnitX)
	if !ok {
		t.Fatal("ClosestOnLine ok = false")
	}
	if !NearlyEqual(tt, 5) {
		t.Errorf("t = %v, want 5", tt)
	}
	if _, ok := r.ClosestOnLine(Zero, UnitZ); ok {
		t.Error("parallel lines should report ok = false")
	}
}
