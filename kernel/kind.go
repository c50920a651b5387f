package kernel

import "strings"

// ShapeKind identifies the topological type of a shape. Kinds are bit
// flags so a set of kinds can be used as a picking filter.
type ShapeKind uint16

const (
	KindVertex ShapeKind = 1 << iota
	KindEdge
	KindWire
	KindFace
	KindShell
	KindSolid
	KindCompound

	// KindNone matches nothing.
	KindNone ShapeKind = 0

	// KindAny matches every kind.
	KindAny = KindVertex | KindEdge | KindWire | KindFace | KindShell | KindSolid | KindCompound
)

var kindNames = [...]struct {
	kind ShapeKind
	name string
}{
	{KindVertex, "vertex"},
	{KindEdge, "edge"},
	{KindWire, "wire"},
	{KindFace, "face"},
	{KindShell, "shell"},
	{KindSolid, "solid"},
	{KindCompound, "compound"},
}

// Has reports whether every kind in o is set in k.
func (k ShapeKind) Has(o ShapeKind) bool {
	return o != 0 && k&o == o
}

// Matches reports whether a shape of kind s passes the filter k.
// The zero filter accepts everything.
func (k ShapeKind) Matches(s ShapeKind) bool {
	return k == KindNone || k&s != 0
}

// String returns the kind names joined by '|'.
func (k ShapeKind) String() string {
	if k == KindNone {
		return "none"
	}
	var names []string
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			names = append(names, kn.name)
		}
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, "|")
}
