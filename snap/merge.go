package snap

// Candidate is one snapper's result with its ranking inputs.
type Candidate struct {
	Result Result
	// ScreenDistance is the pixel distance from the pointer to the
	// candidate point; zero for results without a point.
	ScreenDistance float64
}

// Collect evaluates snappers in order and returns their candidates.
func Collect(in Input, snappers []Snapper) []Candidate {
	cands := make([]Candidate, 0, len(snappers))
	for _, s := range snappers {
		r, ok := s.Snap(in)
		if !ok {
			continue
		}
		c := Candidate{Result: r}
		if r.Point != nil {
			c.ScreenDistance = in.screenDistance(*r.Point)
		}
		cands = append(cands, c)
	}
	return cands
}

// Merge picks the winning candidate. Lower rank wins, then smaller screen
// distance, then earlier position. When the winner is rejected by valid,
// the best valid plane or axis projection is used instead; if that is also
// rejected nothing snaps. A nil valid accepts everything.
func Merge(cands []Candidate, valid func(Result) bool) (Result, bool) {
	best := bestOf(cands, func(Candidate) bool { return true })
	if best < 0 {
		return Result{}, false
	}
	if valid == nil || valid(cands[best].Result) {
		return cands[best].Result, true
	}
	fallback := bestOf(cands, func(c Candidate) bool {
		return c.Result.Kind.rank() == rankPlane && valid(c.Result)
	})
	if fallback < 0 {
		return Result{}, false
	}
	return cands[fallback].Result, true
}

func bestOf(cands []Candidate, keep func(Candidate) bool) int {
	best := -1
	for i, c := range cands {
		if !keep(c) {
			continue
		}
		if best < 0 || better(c, cands[best]) {
			best = i
		}
	}
	return best
}

func better(a, b Candidate) bool {
	ra, rb := a.Result.Kind.rank(), b.Result.Kind.rank()
	if ra != rb {
		return ra < rb
	}
	return a.ScreenDistance < b.ScreenDistance
}
