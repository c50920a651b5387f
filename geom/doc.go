// Package geom provides the 3-D math used by the construction engine:
// points and vectors (XYZ), planes, rays and 4x4 affine matrices.
//
// # Coordinate System
//
// Right-handed, Z up. The default workplane is XY with normal +Z.
// Angles are in radians and positive counter-clockwise about the
// reference normal.
//
// # Tolerances
//
// Two points closer than [Tolerance] are coincident. The same tolerance is
// used to reject degenerate input (zero-length lines, zero-radius circles)
// and, applied to the length of a normalized cross product, to decide
// whether two directions are parallel.
package geom
