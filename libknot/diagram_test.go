package libknot_test

import (
	"strings"
	"testing"

	"github.com/knot-systems/knot.SDK/goknot"
	"github.com/knot-systems/knot.SDK/libknot"
)

func TestCrossing(t *testing.T) {
	x := libknot.NewCrossing(1, 4, 2, 5, -7)
	if x.Sign != -1 {
		t.Fatalf("sign %d, want -1", x.Sign)
	}
	if x.Tuple() != [5]int64{1, 4, 2, 5, -1} {
		t.Fatalf("tuple %v", x.Tuple())
	}
	if !x.Contains(4) || x.Contains(3) {
		t.Fatal("Contains misses")
	}
	if x.HasRepeatedArc() {
		t.Fatal("no repeated arc here")
	}
	if !libknot.NewCrossing(1, 1, 2, 2, 1).HasRepeatedArc() {
		t.Fatal("kink has repeated arcs")
	}
	if libknot.NewCrossing(1, 2, 3, 4, 0).Sign != 1 {
		t.Fatal("zero sign should normalize to +1")
	}
}

func TestDiagramEquality(t *testing.T) {
	a := libknot.Trefoil().PD
	if !a.IsEqual(libknot.Trefoil().PD) {
		t.Fatal("identical diagrams unequal")
	}
	if a.IsEqual(libknot.FigureEight().PD) {
		t.Fatal("different diagrams equal")
	}
	if a.IsEqual(nil) {
		t.Fatal("nil should equal nothing")
	}

	tuples := a.Tuples()
	if !libknot.NewDiagram(tuples, a.Components).IsEqual(a) {
		t.Fatal("Tuples should invert NewDiagram")
	}

	k := libknot.Trefoil()
	if !k.IsEqual(libknot.Trefoil()) {
		t.Fatal("identical knots unequal")
	}
	renamed := libknot.Trefoil()
	renamed.Name = "other"
	if k.IsEqual(renamed) {
		t.Fatal("name must participate in knot equality")
	}
	if k.IsEqual(libknot.KnotFromDT("3_1", goknot.DTCode{4, 6, 2})) {
		t.Fatal("diagram presence must participate in knot equality")
	}
}

func TestKnotLabels(t *testing.T) {
	if libknot.Trefoil().Label() != "3_1" {
		t.Fatal("trefoil label")
	}
	if (&libknot.Knot{}).Label() != "unnamed" {
		t.Fatal("empty name placeholder")
	}

	if n := libknot.Trefoil().ComponentCount(); n != 1 {
		t.Fatalf("trefoil components %d", n)
	}
	if n := libknot.HopfLink().AsKnot().ComponentCount(); n != 2 {
		t.Fatalf("hopf components %d", n)
	}
	if n := libknot.KnotFromDT("5_1", goknot.DTCode{6, 8, 10, 2, 4}).ComponentCount(); n != 1 {
		t.Fatalf("dt-only components %d", n)
	}
	if n := (&libknot.Knot{}).ComponentCount(); n != 0 {
		t.Fatalf("empty knot components %d", n)
	}

	if !libknot.Trefoil().HasDiagram() {
		t.Fatal("trefoil carries a diagram")
	}
	if libknot.KnotFromDT("5_1", goknot.DTCode{6, 8, 10, 2, 4}).HasDiagram() {
		t.Fatal("dt-only knot carries no diagram")
	}
}

func TestAppendExprTo(t *testing.T) {
	expr := string(libknot.Trefoil().AppendExprTo(nil))
	want := "X-[1,4,2,5] X-[3,6,4,1] X-[5,2,6,3]: (1 2 3 4 5 6)"
	if expr != want {
		t.Fatalf("\n  got  %s\n  want %s", expr, want)
	}

	if expr = string(libknot.Unknot().AppendExprTo(nil)); expr != ": ()" {
		t.Fatalf("unknot expr %q", expr)
	}
	if expr = string(libknot.KnotFromDT("5_1", goknot.DTCode{6, 8, 10, 2, 4}).AppendExprTo(nil)); expr != "DT[6,8,10,2,4]" {
		t.Fatalf("dt-only expr %q", expr)
	}
	if expr = string((&libknot.Knot{}).AppendExprTo(nil)); expr != "?" {
		t.Fatalf("empty knot expr %q", expr)
	}
}

func TestWriteAsString(t *testing.T) {
	var b strings.Builder
	libknot.Trefoil().WriteAsString(&b, goknot.DefaultPrintOpts)

	line := b.String()
	for _, piece := range []string{
		"3_1,",
		"X-[1,4,2,5]",
		"DT[4,6,2]",
		"n=3", "w=-3", "s=2", "b=2",
	} {
		if !strings.Contains(line, piece) {
			t.Fatalf("%q missing from %q", piece, line)
		}
	}

	b.Reset()
	libknot.Trefoil().WriteAsString(&b, goknot.PrintOpts{
		Jones:   true,
		Alex:    true,
		Bracket: goknot.DefaultBracketOpts,
	})
	line = b.String()
	if !strings.Contains(line, "jones=-t^-16 + t^-12 + t^-4") {
		t.Fatalf("jones missing from %q", line)
	}
	if !strings.Contains(line, "alex=9t") {
		t.Fatalf("alexander missing from %q", line)
	}

	// A DT-only knot prints placeholders for diagram-bound fields.
	b.Reset()
	libknot.KnotFromDT("5_1", goknot.DTCode{6, 8, 10, 2, 4}).WriteAsString(&b, goknot.DefaultPrintOpts)
	line = b.String()
	if !strings.Contains(line, "w=!") || !strings.Contains(line, "s=!") {
		t.Fatalf("placeholders missing from %q", line)
	}
}
