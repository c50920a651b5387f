package snap

import "strings"

// Kind identifies what produced a snap result.
type Kind uint8

const (
	KindNone Kind = iota
	KindFeature
	KindVertex
	KindEndpoint
	KindMidpoint
	KindCenter
	KindPerpendicular
	KindIntersection
	KindNearest
	KindPlane
	KindAxis
	KindShape
	KindTyped
)

var kindNames = [...]string{
	KindNone:          "none",
	KindFeature:       "feature",
	KindVertex:        "vertex",
	KindEndpoint:      "endpoint",
	KindMidpoint:      "midpoint",
	KindCenter:        "center",
	KindPerpendicular: "perpendicular",
	KindIntersection:  "intersection",
	KindNearest:       "nearest",
	KindPlane:         "plane",
	KindAxis:          "axis",
	KindShape:         "shape",
	KindTyped:         "typed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MessageKey returns the message key of the kind's label.
func (k Kind) MessageKey() string { return "snap." + k.String() }

// Priority ranks; lower wins.
const (
	rankFeature = iota
	rankCurve
	rankPlane
	rankNone
)

func (k Kind) rank() int {
	switch k {
	case KindFeature, KindVertex, KindEndpoint, KindMidpoint, KindCenter,
		KindPerpendicular, KindIntersection, KindShape, KindTyped:
		return rankFeature
	case KindNearest:
		return rankCurve
	case KindPlane, KindAxis:
		return rankPlane
	default:
		return rankNone
	}
}

// ObjectSnapType is a set of object snap modes.
type ObjectSnapType uint16

const (
	SnapVertex ObjectSnapType = 1 << iota
	SnapEndpoint
	SnapMidpoint
	SnapCenter
	SnapPerpendicular
	SnapIntersection
	SnapNearest

	// SnapAll enables every object snap mode.
	SnapAll = SnapVertex | SnapEndpoint | SnapMidpoint | SnapCenter |
		SnapPerpendicular | SnapIntersection | SnapNearest
)

var objectSnapNames = [...]struct {
	t    ObjectSnapType
	name string
}{
	{SnapVertex, "vertex"},
	{SnapEndpoint, "endpoint"},
	{SnapMidpoint, "midpoint"},
	{SnapCenter, "center"},
	{SnapPerpendicular, "perpendicular"},
	{SnapIntersection, "intersection"},
	{SnapNearest, "nearest"},
}

// Has reports whether t includes mode.
func (t ObjectSnapType) Has(mode ObjectSnapType) bool {
	return t&mode != 0
}

func (t ObjectSnapType) String() string {
	var names []string
	for _, n := range objectSnapNames {
		if t.Has(n.t) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseObjectSnapType maps a mode name to its flag.
func ParseObjectSnapType(name string) (ObjectSnapType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "all" {
		return SnapAll, true
	}
	for _, n := range objectSnapNames {
		if n.name == name {
			return n.t, true
		}
	}
	return 0, false
}
