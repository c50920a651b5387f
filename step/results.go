package step

import (
	"fmt"
	"slices"

	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/snap"
)

// Results is a read-only view of the results accepted so far in one
// command run.
type Results struct {
	items []*snap.Result
}

// NewResults returns a view over a copy of items.
func NewResults(items ...*snap.Result) Results {
	return Results{items: slices.Clone(items)}
}

// Len returns the number of accepted results.
func (r Results) Len() int { return len(r.items) }

// At returns result i. It panics when i was never populated.
func (r Results) At(i int) *snap.Result {
	if i < 0 || i >= len(r.items) {
		panic(fmt.Sprintf("step: result %d requested, only %d available", i, len(r.items)))
	}
	return r.items[i]
}

// Point returns the point of result i. It panics when result i does not
// exist or has no point.
func (r Results) Point(i int) geom.XYZ {
	return r.At(i).At()
}

// Last returns the most recent result. It panics when r is empty.
func (r Results) Last() *snap.Result {
	return r.At(len(r.items) - 1)
}

// All returns a copy of the results.
func (r Results) All() []*snap.Result {
	return slices.Clone(r.items)
}

// With returns a new view with res appended.
func (r Results) With(res *snap.Result) Results {
	items := make([]*snap.Result, len(r.items), len(r.items)+1)
	copy(items, r.items)
	return Results{items: append(items, res)}
}
