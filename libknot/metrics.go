package libknot

import (
	"github.com/knot-systems/knot.SDK/goknot"
)

// arcPairs is an undirected pairing graph over arc labels, the shared
// substrate for Seifert circle counting and bracket loop counting.
type arcPairs map[int64][]int64

func (g arcPairs) join(a, b int64) {
	g[a] = append(g[a], b)
	g[b] = append(g[b], a)
}

// countComponents counts connected components with an explicit stack and
// visited set, so pathological diagrams cannot exhaust call-stack depth.
func (g arcPairs) countComponents() int {
	visited := make(map[int64]struct{}, len(g))
	var stack []int64

	count := 0
	for arc := range g {
		if _, seen := visited[arc]; seen {
			continue
		}
		count++
		visited[arc] = struct{}{}
		stack = append(stack[:0], arc)

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, next := range g[cur] {
				if _, seen := visited[next]; !seen {
					visited[next] = struct{}{}
					stack = append(stack, next)
				}
			}
		}
	}
	return count
}

// Writhe is the sum of crossing signs, an orientation-dependent quantity.
func (d *PlanarDiagram) Writhe() int {
	w := 0
	for _, x := range d.Crossings {
		w += int(x.Sign)
	}
	return w
}

// SeifertCircles counts the loops produced by smoothing every crossing
// consistently with its orientation: sign >= 0 pairs (a,b) and (c,d),
// sign < 0 pairs (b,c) and (d,a).  This is the oriented resolution, distinct
// from the unoriented A/B smoothing of the bracket state sum.
func (d *PlanarDiagram) SeifertCircles() int {
	g := make(arcPairs, 2*len(d.Crossings))
	for _, x := range d.Crossings {
		if x.Sign >= 0 {
			g.join(x.A, x.B)
			g.join(x.C, x.D)
		} else {
			g.join(x.B, x.C)
			g.join(x.D, x.A)
		}
	}
	return g.countComponents()
}

// BraidIndexEstimate is the crude lower bound max(1, SeifertCircles).
func (d *PlanarDiagram) BraidIndexEstimate() int {
	if s := d.SeifertCircles(); s > 1 {
		return s
	}
	return 1
}

// LinkingNumber computes how components i and j (1-based) wind around each
// other: half the signed count of crossings touching both components.
// Malformed diagrams can yield non-integer halves; that is reported as-is.
func (d *PlanarDiagram) LinkingNumber(i, j int) (float64, error) {
	numComps := len(d.Components)
	if i < 1 || i > numComps || j < 1 || j > numComps {
		return 0, goknot.ErrIndexOutOfRange
	}

	owner := make(map[int64]int, 8)
	for ci, comp := range d.Components {
		for _, arc := range comp {
			owner[arc] = ci + 1
		}
	}

	sum := 0
	for _, x := range d.Crossings {
		touchesI, touchesJ := false, false
		for _, arc := range [4]int64{x.A, x.B, x.C, x.D} {
			comp := owner[arc]
			if comp == i {
				touchesI = true
			}
			if comp == j {
				touchesJ = true
			}
		}
		if touchesI && touchesJ {
			sum += int(x.Sign)
		}
	}
	return float64(sum) / 2, nil
}

// CrossingCount reports the crossing count of the best available
// representation: diagram first, stored DT code second, else 0.
func (k *Knot) CrossingCount() int {
	if k.PD != nil {
		return len(k.PD.Crossings)
	}
	return k.Dowker.Crossings()
}

// Writhe fails without a diagram: a DT code alone does not determine signs
// under this definition.
func (k *Knot) Writhe() (int, error) {
	if k.PD == nil {
		return 0, goknot.ErrMissingRepresentation
	}
	return k.PD.Writhe(), nil
}

func (l *Link) CrossingCount() int {
	if l.PD == nil {
		return 0
	}
	return len(l.PD.Crossings)
}

func (l *Link) Writhe() (int, error) {
	if l.PD == nil {
		return 0, goknot.ErrMissingRepresentation
	}
	return l.PD.Writhe(), nil
}

func (l *Link) LinkingNumber(i, j int) (float64, error) {
	if l.PD == nil {
		return 0, goknot.ErrMissingRepresentation
	}
	return l.PD.LinkingNumber(i, j)
}
