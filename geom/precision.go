package geom

import "math"

const (
	// Tolerance is the linear distance below which two points are
	// considered coincident.
	Tolerance = 1e-7

	// AngleTolerance is the angular distance (radians) below which two
	// angles are considered equal.
	AngleTolerance = 1e-6
)

// NearlyZero reports whether |v| is below Tolerance.
func NearlyZero(v float64) bool {
	return math.Abs(v) < Tolerance
}

// NearlyEqual reports whether a and b differ by less than Tolerance.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
