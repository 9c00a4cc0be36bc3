package libknot_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/knot-systems/knot.SDK/goknot"
	"github.com/knot-systems/knot.SDK/libknot"
)

var gT *testing.T

func polyOf(terms map[int]int64) *goknot.Laurent {
	p := goknot.NewLaurent()
	for exp, coeff := range terms {
		p.AddTerm(exp, coeff)
	}
	return p
}

func checkPoly(label string, got *goknot.Laurent, want map[int]int64) {
	if !got.IsEqual(polyOf(want)) {
		gT.Fatalf("%s: got %v, want %v", label, got, polyOf(want))
	}
}

// sumCoeffs evaluates a polynomial at 1, which for a Jones polynomial in
// t^{1/4} units is V(1): 1 for a knot, (-2)^(c-1) for a c-component link.
func sumCoeffs(p *goknot.Laurent) int64 {
	total := int64(0)
	p.ForEachTerm(func(exp int, coeff int64) {
		total += coeff
	})
	return total
}

func TestBracket(t *testing.T) {
	gT = t

	opts := goknot.DefaultBracketOpts

	bracket, err := libknot.Unknot().Bracket(opts)
	if err != nil {
		t.Fatal(err)
	}
	checkPoly("unknot bracket", bracket, map[int]int64{0: 1})

	// A single positive kink: delta^1 * A + 1 * A^-1 collapses to -A^3
	kink := libknot.NewDiagram(
		[][5]int64{{1, 1, 2, 2, 1}},
		[][]int64{{1, 2}})
	bracket, err = kink.Bracket(opts)
	if err != nil {
		t.Fatal(err)
	}
	checkPoly("kink bracket", bracket, map[int]int64{3: -1})

	bracket, err = libknot.Trefoil().Bracket(opts)
	if err != nil {
		t.Fatal(err)
	}
	checkPoly("trefoil bracket", bracket, map[int]int64{7: 1, 3: -1, -5: -1})

	bracket, err = libknot.HopfLink().PD.Bracket(opts)
	if err != nil {
		t.Fatal(err)
	}
	checkPoly("hopf bracket", bracket, map[int]int64{4: -1, -4: -1})
}

func TestJones(t *testing.T) {
	gT = t

	opts := goknot.DefaultBracketOpts

	jones, err := libknot.Unknot().Jones(opts)
	if err != nil {
		t.Fatal(err)
	}
	checkPoly("unknot jones", jones, map[int]int64{0: 1})

	// The kinked unknot normalizes back to 1, writhe cancelling the twist.
	kink := libknot.KnotFromDiagram("kink", libknot.NewDiagram(
		[][5]int64{{1, 1, 2, 2, 1}},
		[][]int64{{1, 2}}))
	jones, err = kink.Jones(opts)
	if err != nil {
		t.Fatal(err)
	}
	checkPoly("kink jones", jones, map[int]int64{0: 1})

	jones, err = libknot.Trefoil().Jones(opts)
	if err != nil {
		t.Fatal(err)
	}
	checkPoly("trefoil jones", jones, map[int]int64{-16: -1, -12: 1, -4: 1})
	if s := jones.String(); s != "-t^-16 + t^-12 + t^-4" {
		t.Fatalf("trefoil jones prints as %q", s)
	}
	if sumCoeffs(jones) != 1 {
		t.Fatalf("trefoil V(1) != 1")
	}

	jones, err = libknot.FigureEight().Jones(opts)
	if err != nil {
		t.Fatal(err)
	}
	checkPoly("figure-eight jones", jones, map[int]int64{-8: 1, -4: -1, 0: 1, 4: -1, 8: 1})
	if sumCoeffs(jones) != 1 {
		t.Fatalf("figure-eight V(1) != 1")
	}

	jones, err = libknot.HopfLink().Jones(opts)
	if err != nil {
		t.Fatal(err)
	}
	checkPoly("hopf jones", jones, map[int]int64{2: -1, 10: -1})
	if sumCoeffs(jones) != -2 {
		t.Fatalf("hopf V(1) != -2")
	}
}

func TestBracketCeiling(t *testing.T) {
	gT = t

	// The ceiling rejects on crossing count alone, before any validation or
	// enumeration, so dummy crossings suffice.
	big := make([][5]int64, goknot.DefaultBracketCeiling+1)
	for i := range big {
		big[i] = [5]int64{1, 2, 3, 4, 1}
	}
	over := libknot.NewDiagram(big, nil)

	_, err := over.Bracket(goknot.BracketOpts{})
	if !errors.Is(err, goknot.ErrComplexityLimit) {
		t.Fatalf("got %v, want ErrComplexityLimit", err)
	}
	_, err = over.Jones(goknot.DefaultBracketOpts)
	if !errors.Is(err, goknot.ErrComplexityLimit) {
		t.Fatalf("got %v, want ErrComplexityLimit", err)
	}

	_, err = libknot.Trefoil().Bracket(goknot.BracketOpts{MaxCrossings: 2})
	if !errors.Is(err, goknot.ErrComplexityLimit) {
		t.Fatalf("got %v, want ErrComplexityLimit", err)
	}
	if _, err = libknot.Trefoil().Bracket(goknot.BracketOpts{MaxCrossings: 3}); err != nil {
		t.Fatalf("ceiling 3 should admit the trefoil: %v", err)
	}
}

func TestBracketMalformed(t *testing.T) {
	gT = t

	// Arc 1 appears three times.
	tripled := libknot.NewDiagram(
		[][5]int64{{1, 1, 1, 2, 1}},
		[][]int64{{1, 2}})
	_, err := tripled.Bracket(goknot.DefaultBracketOpts)
	if !errors.Is(err, goknot.ErrMalformedDiagram) {
		t.Fatalf("got %v, want ErrMalformedDiagram", err)
	}

	// Every arc dangles.
	open := libknot.NewDiagram(
		[][5]int64{{1, 2, 3, 4, 1}},
		[][]int64{{1, 2, 3, 4}})
	_, err = open.Bracket(goknot.DefaultBracketOpts)
	if !errors.Is(err, goknot.ErrMalformedDiagram) {
		t.Fatalf("got %v, want ErrMalformedDiagram", err)
	}
}

func TestBracketNeedsDiagram(t *testing.T) {
	gT = t

	dtOnly := libknot.KnotFromDT("3_1", goknot.DTCode{4, 6, 2})
	if _, err := dtOnly.Bracket(goknot.DefaultBracketOpts); !errors.Is(err, goknot.ErrMissingRepresentation) {
		t.Fatalf("got %v, want ErrMissingRepresentation", err)
	}
	if _, err := dtOnly.Jones(goknot.DefaultBracketOpts); !errors.Is(err, goknot.ErrMissingRepresentation) {
		t.Fatalf("got %v, want ErrMissingRepresentation", err)
	}

	bare := &libknot.Link{Name: "bare"}
	if _, err := bare.Jones(goknot.DefaultBracketOpts); !errors.Is(err, goknot.ErrMissingRepresentation) {
		t.Fatalf("got %v, want ErrMissingRepresentation", err)
	}
}
