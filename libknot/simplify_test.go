package libknot_test

import (
	"testing"

	"github.com/knot-systems/knot.SDK/goknot"
	"github.com/knot-systems/knot.SDK/libknot"
)

func TestSimplifyR1(t *testing.T) {

	// A trefoil with a kink spliced on: the kink drops, the rest survives.
	kinked := libknot.NewDiagram(
		[][5]int64{
			{1, 4, 2, 5, -1},
			{7, 7, 8, 8, 1},
			{3, 6, 4, 1, -1},
			{5, 2, 6, 3, -1},
		},
		[][]int64{{1, 2, 3, 4, 5, 6, 7, 8}})

	reduced := kinked.SimplifyR1()
	if len(reduced.Crossings) != 3 {
		t.Fatalf("%d crossings survive, want 3", len(reduced.Crossings))
	}
	if !reduced.IsEqual(libknot.Trefoil().PD) {
		// Components differ from the factory trefoil, so compare crossings only.
		for i, x := range reduced.Crossings {
			if x != libknot.Trefoil().PD.Crossings[i] {
				t.Fatalf("crossing %d: %v", i, x)
			}
		}
	}
	if len(reduced.Components) != 1 || len(reduced.Components[0]) != 8 {
		t.Fatal("components must pass through untouched")
	}

	// The original is never mutated.
	if len(kinked.Crossings) != 4 {
		t.Fatal("source diagram mutated")
	}

	// Kink-free diagrams come back crossing-for-crossing identical.
	clean := libknot.FigureEight().PD.SimplifyR1()
	if !clean.IsEqual(libknot.FigureEight().PD) {
		t.Fatal("figure-eight should be untouched")
	}

	// A lone kink reduces to no crossings at all.
	bare := libknot.NewDiagram(
		[][5]int64{{1, 1, 2, 2, 1}},
		[][]int64{{1, 2}}).SimplifyR1()
	if len(bare.Crossings) != 0 {
		t.Fatalf("%d crossings survive, want 0", len(bare.Crossings))
	}
	if len(bare.Components) != 1 {
		t.Fatal("components must pass through untouched")
	}

	// The reduced kink normalizes to the unknot polynomial either way, but
	// now without touching the writhe correction.
	jones, err := bare.Jones(goknot.DefaultBracketOpts)
	if err != nil {
		t.Fatal(err)
	}
	if jones.Coeff(0) != 1 || jones.NumTerms() != 1 {
		t.Fatalf("reduced kink jones %v", jones)
	}
}
