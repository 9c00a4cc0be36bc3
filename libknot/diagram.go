package libknot

import (
	"fmt"
	"io"

	"github.com/knot-systems/knot.SDK/goknot"
)

// Crossing is a 4-way arc junction: four arc labels listed counterclockwise
// starting from the incoming under-strand, plus a handedness sign.
//
// Arc labels are positive integers and need not be unique across a diagram
// (a Reidemeister-I kink repeats a label within one crossing).  Crossings are
// never mutated after construction.
type Crossing struct {
	A, B, C, D int64
	Sign       int8 // +1 right-handed, -1 left-handed
}

// NewCrossing forms a Crossing from raw arc labels, normalizing sign to {+1, -1}.
func NewCrossing(a, b, c, d, sign int64) Crossing {
	x := Crossing{A: a, B: b, C: c, D: d, Sign: 1}
	if sign < 0 {
		x.Sign = -1
	}
	return x
}

// Tuple exports this crossing as the raw 5-tuple it was constructed from.
func (x Crossing) Tuple() [5]int64 {
	return [5]int64{x.A, x.B, x.C, x.D, int64(x.Sign)}
}

// Contains returns whether the given arc label appears in this crossing.
func (x Crossing) Contains(arc int64) bool {
	return x.A == arc || x.B == arc || x.C == arc || x.D == arc
}

// HasRepeatedArc returns whether any arc label appears twice in this crossing,
// marking it as a Reidemeister-I kink.
func (x Crossing) HasRepeatedArc() bool {
	return x.A == x.B || x.A == x.C || x.A == x.D ||
		x.B == x.C || x.B == x.D || x.C == x.D
}

// PlanarDiagram is an ordered sequence of crossings plus the arc labels of
// each closed component.  Construction performs no validation; malformed arc
// graphs surface in the algorithms that require well-formedness.
//
// Diagrams are value types: transformations return a new PlanarDiagram and
// derived quantities are computed fresh, never cached on the diagram.
type PlanarDiagram struct {
	Crossings  []Crossing
	Components [][]int64
}

// NewDiagram builds a PlanarDiagram from raw (a, b, c, d, sign) tuples and
// per-component arc label lists.
func NewDiagram(tuples [][5]int64, components [][]int64) *PlanarDiagram {
	d := &PlanarDiagram{
		Crossings:  make([]Crossing, 0, len(tuples)),
		Components: components,
	}
	for _, t := range tuples {
		d.Crossings = append(d.Crossings, NewCrossing(t[0], t[1], t[2], t[3], t[4]))
	}
	return d
}

// Tuples is the exact inverse of NewDiagram.
func (d *PlanarDiagram) Tuples() [][5]int64 {
	out := make([][5]int64, 0, len(d.Crossings))
	for _, x := range d.Crossings {
		out = append(out, x.Tuple())
	}
	return out
}

// Knot wraps a named knot carrying a planar diagram, a Dowker-Thistlethwaite
// code, or both.  Either representation may be absent (nil).
type Knot struct {
	Name   string
	PD     *PlanarDiagram
	Dowker goknot.DTCode
}

// Link is a named multi-component diagram.  Unlike a Knot, a Link always
// requires its planar diagram since DT codes describe single components only.
type Link struct {
	Name string
	PD   *PlanarDiagram
}

func KnotFromDiagram(name string, d *PlanarDiagram) *Knot {
	return &Knot{Name: name, PD: d}
}

func KnotFromDT(name string, dt goknot.DTCode) *Knot {
	return &Knot{Name: name, Dowker: dt}
}

func NewLink(name string, d *PlanarDiagram) *Link {
	return &Link{Name: name, PD: d}
}

// AsKnot views this link through the Knot wrapper, e.g. for printing or
// catalog insertion.  Multi-component diagrams carry no DT code.
func (l *Link) AsKnot() *Knot {
	return &Knot{Name: l.Name, PD: l.PD}
}

// Unknot returns the zero-crossing diagram of a single closed loop.
func Unknot() *Knot {
	return &Knot{
		Name: "0_1",
		PD: &PlanarDiagram{
			Crossings:  []Crossing{},
			Components: [][]int64{{}},
		},
		Dowker: goknot.DTCode{},
	}
}

// Trefoil returns the left-handed trefoil 3_1 in its standard alternating
// projection (writhe -3).
func Trefoil() *Knot {
	return &Knot{
		Name: "3_1",
		PD: &PlanarDiagram{
			Crossings: []Crossing{
				{1, 4, 2, 5, -1},
				{3, 6, 4, 1, -1},
				{5, 2, 6, 3, -1},
			},
			Components: [][]int64{{1, 2, 3, 4, 5, 6}},
		},
		Dowker: goknot.DTCode{4, 6, 2},
	}
}

// FigureEight returns the figure-eight knot 4_1 in its standard alternating
// projection (writhe 0).
func FigureEight() *Knot {
	return &Knot{
		Name: "4_1",
		PD: &PlanarDiagram{
			Crossings: []Crossing{
				{4, 2, 5, 1, 1},
				{8, 6, 1, 5, 1},
				{6, 3, 7, 4, -1},
				{2, 7, 3, 8, -1},
			},
			Components: [][]int64{{1, 2, 3, 4, 5, 6, 7, 8}},
		},
		Dowker: goknot.DTCode{4, 6, 8, 2},
	}
}

// HopfLink returns the positive Hopf link (linking number +1).
func HopfLink() *Link {
	return &Link{
		Name: "L2a1",
		PD: &PlanarDiagram{
			Crossings: []Crossing{
				{1, 3, 2, 4, 1},
				{3, 1, 4, 2, 1},
			},
			Components: [][]int64{{1, 2}, {3, 4}},
		},
	}
}

// IsEqual returns whether two diagrams have identical crossing sequences and
// component lists.
func (d *PlanarDiagram) IsEqual(other *PlanarDiagram) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.Crossings) != len(other.Crossings) || len(d.Components) != len(other.Components) {
		return false
	}
	for i, x := range d.Crossings {
		if x != other.Crossings[i] {
			return false
		}
	}
	for i, comp := range d.Components {
		if len(comp) != len(other.Components[i]) {
			return false
		}
		for j, arc := range comp {
			if arc != other.Components[i][j] {
				return false
			}
		}
	}
	return true
}

// IsEqual returns whether two knots are structurally identical: same name,
// same diagram (or both absent), same stored DT code (or both absent).
func (k *Knot) IsEqual(other *Knot) bool {
	if k == nil || other == nil {
		return k == other
	}
	if k.Name != other.Name {
		return false
	}
	if (k.Dowker == nil) != (other.Dowker == nil) || !k.Dowker.IsEqual(other.Dowker) {
		return false
	}
	return k.PD.IsEqual(other.PD)
}

// Label returns the knot's display name, or "unnamed" when none was given.
func (k *Knot) Label() string {
	if k.Name == "" {
		return "unnamed"
	}
	return k.Name
}

// ComponentCount reports the number of closed loops: the diagram's component
// count when a diagram is present, 1 for a bare DT code, else 0.
func (k *Knot) ComponentCount() int {
	if k.PD != nil {
		return len(k.PD.Components)
	}
	if k.Dowker != nil {
		return 1
	}
	return 0
}

func (k *Knot) HasDiagram() bool {
	return k.PD != nil
}

// AppendExprTo appends this knot's construction expression, the same text
// form the expression grammar parses.
func (k *Knot) AppendExprTo(out []byte) []byte {
	if k.PD != nil {
		for i, x := range k.PD.Crossings {
			if i > 0 {
				out = append(out, ' ')
			}
			signCh := byte('+')
			if x.Sign < 0 {
				signCh = '-'
			}
			out = fmt.Appendf(out, "X%c[%d,%d,%d,%d]", signCh, x.A, x.B, x.C, x.D)
		}
		out = append(out, ':')
		for _, comp := range k.PD.Components {
			out = append(out, ' ', '(')
			for j, arc := range comp {
				if j > 0 {
					out = append(out, ' ')
				}
				out = fmt.Appendf(out, "%d", arc)
			}
			out = append(out, ')')
		}
		return out
	}
	if k.Dowker != nil {
		return append(out, k.Dowker.String()...)
	}
	return append(out, '?')
}

// WriteAsString writes a one-line comma-separated summary of this knot per opts.
func (k *Knot) WriteAsString(out io.Writer, opts goknot.PrintOpts) {
	var buf [192]byte
	line := append(buf[:0], k.Label()...)

	if opts.Expr {
		line = append(line, ',')
		line = k.AppendExprTo(line)
	}
	if opts.DT {
		line = append(line, ',')
		if dt, err := k.DT(); err == nil {
			line = append(line, dt.String()...)
		} else {
			line = append(line, '!')
		}
	}
	if opts.Metrics {
		line = fmt.Appendf(line, ",n=%d", k.CrossingCount())
		if w, err := k.Writhe(); err == nil {
			line = fmt.Appendf(line, ",w=%d", w)
		} else {
			line = append(line, ",w=!"...)
		}
		if k.PD != nil {
			s := k.PD.SeifertCircles()
			line = fmt.Appendf(line, ",s=%d,b=%d", s, k.PD.BraidIndexEstimate())
		} else {
			line = append(line, ",s=!,b=!"...)
		}
	}
	if opts.Jones {
		line = append(line, ",jones="...)
		if jones, err := k.Jones(opts.Bracket); err == nil {
			line = jones.AppendAsString(line, 't')
		} else {
			line = append(line, '!')
		}
	}
	if opts.Alex {
		line = append(line, ",alex="...)
		if k.PD == nil {
			line = append(line, '!')
		} else if alex, err := k.PD.EstimateAlexander(); err == nil {
			line = alex.AppendAsString(line, 't')
		} else {
			line = append(line, '!')
		}
	}

	out.Write(line)
}
