package problemgen

// maxWidenings bounds how often a distractor window may double before
// giving up. Spread 2 doubled 12 times covers every operand range in use.
const maxWidenings = 12

// window describes where wrong answers come from: integers in
// [center-spread, center+spread], excluding answer, within [min, max].
// max <= 0 means unbounded above.
type window struct {
	answer int
	center int
	spread int
	min    int
	max    int
}

func (w window) candidates() []int {
	lo, hi := w.center-w.spread, w.center+w.spread
	if lo < w.min {
		lo = w.min
	}
	if w.max > 0 && hi > w.max {
		hi = w.max
	}
	var out []int
	for v := lo; v <= hi; v++ {
		if v != w.answer {
			out = append(out, v)
		}
	}
	return out
}

// distractors picks ChoiceCount-1 distinct wrong answers uniformly from the
// window. Near a bound the window may hold too few values (e.g. answer 0
// with offsets clipped at 0); it is then doubled until it does.
func (g *Generator) distractors(w window) ([]int, error) {
	need := ChoiceCount - 1
	if w.spread < 1 {
		w.spread = 1
	}

	pool := w.candidates()
	for i := 0; len(pool) < need; i++ {
		if i == maxWidenings {
			return nil, ErrNoDistractors
		}
		w.spread *= 2
		pool = w.candidates()
	}

	for i := 0; i < need; i++ {
		j := i + g.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:need], nil
}
