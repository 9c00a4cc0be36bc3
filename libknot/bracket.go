package libknot

import (
	"github.com/pkg/errors"

	"github.com/knot-systems/knot.SDK/goknot"
)

// Each crossing contributes four half-edge slots, globally numbered so that
// crossing i owns slots 4i..4i+3 for its (A, B, C, D) arc ends.  An arc label
// joins its two slots; resolving a crossing joins slots pairwise:
//
//	A-smoothing: (4i, 4i+1) and (4i+2, 4i+3), bracket weight A^{+1}
//	B-smoothing: (4i+1, 4i+2) and (4i+3, 4i), bracket weight A^{-1}
//
// A fully resolved state is a 2-regular graph over the slots; its loop count
// feeds the state's (-A^2 - A^-2)^(loops-1) term.

// maskCrossingLimit caps enumeration at the width of the smoothing choice mask.
const maskCrossingLimit = 63

type bracketStep struct {
	idx   int    // crossings resolved so far
	shift int    // accumulated A exponent
	mask  uint64 // B-smoothing choices for crossings [0, idx)
}

// Bracket computes the Kauffman bracket of this diagram as a Laurent
// polynomial in the formal variable A, by full enumeration of the 2^n
// smoothing states.  Diagrams above opts.MaxCrossings are rejected with
// ErrComplexityLimit before any enumeration begins.
func (d *PlanarDiagram) Bracket(opts goknot.BracketOpts) (*goknot.Laurent, error) {
	n := len(d.Crossings)

	ceiling := opts.MaxCrossings
	if ceiling <= 0 {
		ceiling = goknot.DefaultBracketCeiling
	}
	if ceiling > maskCrossingLimit {
		ceiling = maskCrossingLimit
	}
	if n > ceiling {
		return nil, errors.Wrapf(goknot.ErrComplexityLimit, "%d crossings exceeds ceiling %d", n, ceiling)
	}
	if n == 0 {
		return goknot.LaurentTerm(0, 1), nil
	}

	slotMate, err := d.pairSlots()
	if err != nil {
		return nil, err
	}

	// delta = -A^2 - A^-2, one factor per loop beyond the first
	delta := goknot.NewLaurent()
	delta.AddTerm(2, -1)
	delta.AddTerm(-2, -1)

	deltaPows := []*goknot.Laurent{goknot.LaurentTerm(0, 1)}
	deltaPow := func(p int) *goknot.Laurent {
		for len(deltaPows) <= p {
			deltaPows = append(deltaPows, deltaPows[len(deltaPows)-1].Mul(delta))
		}
		return deltaPows[p]
	}

	result := goknot.NewLaurent()
	counter := newLoopCounter(4 * n)

	// Depth-first over partial smoothing states with an explicit work list.
	// The A branch is pushed last so it resolves first.
	stack := make([]bracketStep, 0, n+1)
	stack = append(stack, bracketStep{})

	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if step.idx < n {
			stack = append(stack,
				bracketStep{idx: step.idx + 1, shift: step.shift - 1, mask: step.mask | 1<<step.idx},
				bracketStep{idx: step.idx + 1, shift: step.shift + 1, mask: step.mask},
			)
			continue
		}

		loops := counter.count(slotMate, step.mask)
		deltaPow(loops - 1).ForEachTerm(func(exp int, coeff int64) {
			result.AddTerm(exp+step.shift, coeff)
		})
	}

	return result, nil
}

// pairSlots maps each slot to the slot sharing its arc label.  Every arc
// label must appear exactly twice across the diagram's crossings.
func (d *PlanarDiagram) pairSlots() ([]int32, error) {
	slotMate := make([]int32, 4*len(d.Crossings))
	firstSlot := make(map[int64]int32, 2*len(d.Crossings))

	for i, x := range d.Crossings {
		for j, arc := range [4]int64{x.A, x.B, x.C, x.D} {
			slot := int32(4*i + j)
			prev, seen := firstSlot[arc]
			switch {
			case !seen:
				firstSlot[arc] = slot
				slotMate[slot] = -1
			case prev >= 0:
				slotMate[slot] = prev
				slotMate[prev] = slot
				firstSlot[arc] = -1
			default:
				return nil, errors.Wrapf(goknot.ErrMalformedDiagram, "arc %d appears more than twice", arc)
			}
		}
	}

	for slot, mate := range slotMate {
		if mate < 0 {
			return nil, errors.Wrapf(goknot.ErrMalformedDiagram, "dangling arc at crossing %d", slot/4)
		}
	}
	return slotMate, nil
}

// loopCounter counts loops in resolved smoothing states, reusing its visited
// flags and traversal stack across the whole enumeration.
type loopCounter struct {
	visited []bool
	stack   []int32
}

func newLoopCounter(numSlots int) *loopCounter {
	return &loopCounter{
		visited: make([]bool, numSlots),
		stack:   make([]int32, 0, numSlots),
	}
}

// smoothMate returns the slot joined to s by the state's smoothing of the
// owning crossing: within a crossing's four slots, the A pairing is an xor
// with 1 and the B pairing an xor with 3.
func smoothMate(s int32, mask uint64) int32 {
	if mask&(1<<(s>>2)) == 0 {
		return s ^ 1
	}
	return s ^ 3
}

func (lc *loopCounter) count(slotMate []int32, mask uint64) int {
	for i := range lc.visited {
		lc.visited[i] = false
	}

	loops := 0
	stack := lc.stack[:0]

	for s0 := int32(0); s0 < int32(len(lc.visited)); s0++ {
		if lc.visited[s0] {
			continue
		}
		loops++
		lc.visited[s0] = true
		stack = append(stack, s0)

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if nb := slotMate[cur]; !lc.visited[nb] {
				lc.visited[nb] = true
				stack = append(stack, nb)
			}
			if nb := smoothMate(cur, mask); !lc.visited[nb] {
				lc.visited[nb] = true
				stack = append(stack, nb)
			}
		}
	}

	lc.stack = stack
	return loops
}

// Jones computes the Jones polynomial of this diagram in t^{1/4} exponent
// units, by writhe-normalizing the Kauffman bracket: with writhe w, every
// bracket exponent shifts by -3w, the sign flips when w is odd, and the
// formal variable A maps to t via t-exponent = -(A-exponent).
func (d *PlanarDiagram) Jones(opts goknot.BracketOpts) (*goknot.Laurent, error) {
	bracket, err := d.Bracket(opts)
	if err != nil {
		return nil, err
	}
	return normalizeBracket(bracket, d.Writhe()), nil
}

func normalizeBracket(bracket *goknot.Laurent, w int) *goknot.Laurent {
	aShift := -3 * w
	flip := w%2 != 0

	out := goknot.NewLaurent()
	bracket.ForEachTerm(func(exp int, coeff int64) {
		if flip {
			coeff = -coeff
		}
		out.AddTerm(-(exp + aShift), coeff)
	})
	return out
}

// Bracket requires a planar diagram; a DT code alone cannot be smoothed.
func (k *Knot) Bracket(opts goknot.BracketOpts) (*goknot.Laurent, error) {
	if k.PD == nil {
		return nil, goknot.ErrMissingRepresentation
	}
	return k.PD.Bracket(opts)
}

// Jones computes the Jones polynomial of this knot's diagram in t^{1/4} units.
func (k *Knot) Jones(opts goknot.BracketOpts) (*goknot.Laurent, error) {
	if k.PD == nil {
		return nil, goknot.ErrMissingRepresentation
	}
	return k.PD.Jones(opts)
}

func (l *Link) Jones(opts goknot.BracketOpts) (*goknot.Laurent, error) {
	if l.PD == nil {
		return nil, goknot.ErrMissingRepresentation
	}
	return l.PD.Jones(opts)
}
