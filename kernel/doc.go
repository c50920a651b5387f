// Package kernel defines the geometry-kernel boundary consumed by the
// construction engine: shapes, curves and the Kernel factory interface.
//
// Every Kernel operation is fallible and reports expected failures
// (degenerate input, empty boolean results, unsupported combinations) as
// errors, never as panics.
//
// Analytic is a small reference kernel. It builds exact lines, arcs,
// rectangles, polygons, boxes and prisms, and evaluates booleans for
// axis-aligned boxes only. Production editors plug a B-rep kernel in
// through the same interface.
package kernel

import "errors"

// Errors returned by Kernel implementations.
var (
	// ErrDegenerate is returned for input that collapses below
	// geom.Tolerance (zero-length line, zero-radius circle, flat box).
	ErrDegenerate = errors.New("kernel: degenerate geometry")

	// ErrEmptyResult is returned when a boolean produces no material.
	ErrEmptyResult = errors.New("kernel: empty result")

	// ErrUnsupported is returned for shape combinations the kernel
	// cannot evaluate.
	ErrUnsupported = errors.New("kernel: unsupported operation")
)
