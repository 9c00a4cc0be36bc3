package libknot

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/knot-systems/knot.SDK/goknot"
)

// KnotExpr is the participle AST for the knot expression syntax:
//
//	X-[1,4,2,5] X-[3,6,4,1] X-[5,2,6,3]: (1 2 3 4 5 6)
//	DT[4,6,2]
//
// Each X±[a,b,c,d] names one crossing's four arc ends counterclockwise from
// the incoming under-strand, with the sign rune carrying the handedness.
// The optional colon section lists each link component's arcs in traversal
// order.  The DT[...] form stands alone and carries no diagram.
type KnotExpr struct {
	DT *DTExpr `parser:"  @@"`
	PD *PDExpr `parser:"| @@"`
}

type PDExpr struct {
	Crossings  []*CrossingExpr  `parser:"@@*"`
	Components []*ComponentExpr `parser:"(':' @@*)?"`
}

type CrossingExpr struct {
	Sign string `parser:"'X' @('+' | '-')"`
	A    int64  `parser:"'[' @('-'? Int)"`
	B    int64  `parser:"',' @('-'? Int)"`
	C    int64  `parser:"',' @('-'? Int)"`
	D    int64  `parser:"',' @('-'? Int) ']'"`
}

type ComponentExpr struct {
	Arcs []int64 `parser:"'(' @('-'? Int)* ')'"`
}

type DTExpr struct {
	Entries []int64 `parser:"'DT' '[' (@('-'? Int) (',' @('-'? Int))*)? ']'"`
}

var parseKnotExpr = participle.MustBuild[KnotExpr]()

// ParseKnot builds an unnamed Knot from its expression text.  The result
// round-trips with Knot.AppendExprTo.  Failures wrap ErrBadExpr.
func ParseKnot(expr string) (*Knot, error) {
	ast, err := parseKnotExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(goknot.ErrBadExpr, "parse %q: %v", expr, err)
	}

	if ast.DT != nil {
		dt := make(goknot.DTCode, len(ast.DT.Entries))
		copy(dt, ast.DT.Entries)
		return KnotFromDT("", dt), nil
	}

	pd := ast.PD
	if pd == nil || (len(pd.Crossings) == 0 && len(pd.Components) == 0) {
		return nil, errors.Wrapf(goknot.ErrBadExpr, "empty knot expression %q", expr)
	}

	tuples := make([][5]int64, len(pd.Crossings))
	for i, x := range pd.Crossings {
		sign := int64(1)
		if x.Sign == "-" {
			sign = -1
		}
		tuples[i] = [5]int64{x.A, x.B, x.C, x.D, sign}
	}

	var comps [][]int64
	if len(pd.Components) > 0 {
		comps = make([][]int64, len(pd.Components))
		for i, c := range pd.Components {
			comps[i] = append([]int64{}, c.Arcs...)
		}
	}

	return KnotFromDiagram("", NewDiagram(tuples, comps)), nil
}

// MustParseKnot is ParseKnot for expressions known good at compile time,
// such as table constants.
func MustParseKnot(name, expr string) *Knot {
	k, err := ParseKnot(expr)
	if err != nil {
		panic(err)
	}
	k.Name = name
	return k
}
