package libknot_test

import (
	"strings"
	"testing"

	"github.com/knot-systems/knot.SDK/goknot"
	"github.com/knot-systems/knot.SDK/libknot"
)

func TestKnotSet(t *testing.T) {
	set := libknot.NewKnotSet()
	defer set.Close()

	if !set.TryAddKnot(libknot.Trefoil()) {
		t.Fatal("first add should succeed")
	}
	if set.TryAddKnot(libknot.Trefoil()) {
		t.Fatal("second add should report a dupe")
	}

	// Membership is canonic: a DT-only rendering of the same knot is a dupe
	// regardless of name or storage form.
	if set.TryAddKnot(libknot.KnotFromDT("other-name", goknot.DTCode{4, 6, 2})) {
		t.Fatal("canonic dupe slipped through")
	}

	if !set.TryAddKnot(libknot.FigureEight()) {
		t.Fatal("distinct knot should add")
	}
	if !set.TryAddKnot(libknot.HopfLink().AsKnot()) {
		t.Fatal("link should add")
	}

	// Unencodable knots are never members.
	if set.TryAddKnot(&libknot.Knot{}) {
		t.Fatal("empty knot should not add")
	}
}

func TestStreamStages(t *testing.T) {
	single := goknot.StreamKnot(libknot.Trefoil())
	if k := single.PullKnot(); k.Label() != "3_1" {
		t.Fatalf("pulled %s", k.Label())
	}
	if n := single.PullAll(); n != 0 {
		t.Fatalf("%d knots left after the single emit", n)
	}

	// Selection by crossing range and component count.
	n := libknot.StreamTable().
		SelectFromStream(goknot.KnotSelector{MaxCrossings: 4, KnotsOnly: true}).
		PullAll()
	if n != 3 {
		t.Fatalf("selected %d knots, want 0_1 3_1 4_1", n)
	}

	// AddTo passes through only first-time additions.
	added := libknot.NewKnotSet()
	n = libknot.StreamTable().AddTo(added).PullAll()
	if n != 15 {
		t.Fatalf("added %d of the table", n)
	}
	if added.TryAddKnot(libknot.Trefoil()) {
		t.Fatal("table pass should have populated the set")
	}
	added.Close()

	// DropDupes collapses canonic repeats and owns its scratch set.
	src := goknot.NewKnotStream()
	go func() {
		src.PushKnot(libknot.Trefoil())
		src.PushKnot(libknot.KnotFromDT("3_1-again", goknot.DTCode{4, 6, 2}))
		src.PushKnot(libknot.FigureEight())
		src.Close()
	}()
	if n = src.DropDupes(libknot.NewKnotSet()).PullAll(); n != 2 {
		t.Fatalf("%d knots survive dedupe", n)
	}
}

type lineCapture struct {
	strings.Builder
}

func (lc *lineCapture) Close() error { return nil }

func TestStreamPrint(t *testing.T) {
	out := &lineCapture{}

	n := goknot.StreamKnot(libknot.Trefoil()).
		Print(out, goknot.DefaultPrintOpts).
		PullAll()
	if n != 1 {
		t.Fatalf("printed %d knots", n)
	}

	line := out.String()
	for _, piece := range []string{"000001,", "3_1,", "DT[4,6,2]", "w=-3"} {
		if !strings.Contains(line, piece) {
			t.Fatalf("%q missing from %q", piece, line)
		}
	}
}
