package catalog_test

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/knot-systems/knot.SDK/goknot"
	"github.com/knot-systems/knot.SDK/libknot"
	"github.com/knot-systems/knot.SDK/libknot/catalog"
)

func selectCount(cat goknot.Catalog, sel goknot.KnotSelector) int {
	return goknot.SelectFromCatalog(cat, sel).PullAll()
}

func TestCatalogAddAndSelect(t *testing.T) {
	ctx := goknot.NewCatalogContext()

	cat, err := catalog.OpenCatalog(ctx, goknot.CatalogOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if cat.IsReadOnly() {
		t.Fatal("in-memory catalog should be writable")
	}

	if !cat.TryAddKnot(libknot.Trefoil()) {
		t.Fatal("first add should succeed")
	}
	if cat.TryAddKnot(libknot.Trefoil()) {
		t.Fatal("identical variant should be a dupe")
	}
	if cat.NumKnots(3) != 1 {
		t.Fatalf("NumKnots(3) = %d", cat.NumKnots(3))
	}

	// Same canonic identity in a different wire form: a second variant under
	// the same header, not a second canonic entry.
	if !cat.TryAddKnot(libknot.KnotFromDT("3_1-dt", goknot.DTCode{4, 6, 2})) {
		t.Fatal("new variant should add")
	}
	if cat.NumKnots(3) != 1 {
		t.Fatalf("NumKnots(3) = %d after variant", cat.NumKnots(3))
	}

	if !cat.TryAddKnot(libknot.FigureEight()) {
		t.Fatal("figure-eight should add")
	}
	if !cat.TryAddKnot(libknot.HopfLink().AsKnot()) {
		t.Fatal("hopf should add")
	}
	if !cat.TryAddKnot(libknot.Unknot()) {
		t.Fatal("unknot should add")
	}
	for crossings, want := range map[int]int64{0: 1, 2: 1, 3: 1, 4: 1, 9: 0, -1: 0, 500: 0} {
		if got := cat.NumKnots(crossings); got != want {
			t.Fatalf("NumKnots(%d) = %d, want %d", crossings, got, want)
		}
	}

	// Five stored variants across four canonic entries.
	if n := selectCount(cat, goknot.DefaultKnotSelector); n != 5 {
		t.Fatalf("selected %d variants", n)
	}
	if n := selectCount(cat, goknot.KnotSelector{
		MaxCrossings:  goknot.MaxCatalogCrossings,
		UniqueCanonic: true,
	}); n != 4 {
		t.Fatalf("selected %d canonic entries", n)
	}

	// The hopf link fails the knots-only flag at its header.
	if n := selectCount(cat, goknot.KnotSelector{
		MaxCrossings: goknot.MaxCatalogCrossings,
		KnotsOnly:    true,
	}); n != 4 {
		t.Fatalf("selected %d single-component variants", n)
	}

	// Crossing-range selection.
	if n := selectCount(cat, goknot.KnotSelector{MinCrossings: 3, MaxCrossings: 3}); n != 2 {
		t.Fatalf("selected %d three-crossing variants", n)
	}
	if n := selectCount(cat, goknot.KnotSelector{MinCrossings: 5, MaxCrossings: 10}); n != 0 {
		t.Fatalf("selected %d high-crossing variants", n)
	}

	// Exact-match selection returns each stored variant of the matched knot.
	if n := selectCount(cat, goknot.KnotSelector{
		Match:        libknot.Trefoil(),
		MaxCrossings: goknot.MaxCatalogCrossings,
	}); n != 2 {
		t.Fatalf("matched %d trefoil variants", n)
	}
	if n := selectCount(cat, goknot.KnotSelector{
		Match:        libknot.KnotFromDT("absent", goknot.DTCode{6, 8, 10, 2, 4}),
		MaxCrossings: goknot.MaxCatalogCrossings,
	}); n != 0 {
		t.Fatalf("matched %d absent variants", n)
	}

	ctx.Close()
	<-ctx.Done()
}

func TestCatalogPersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "knots")
	ctx := goknot.NewCatalogContext()

	cat, err := catalog.OpenCatalog(ctx, goknot.CatalogOpts{DbPathName: dbPath})
	if err != nil {
		t.Fatal(err)
	}
	if !cat.TryAddKnot(libknot.Trefoil()) || !cat.TryAddKnot(libknot.FigureEight()) {
		t.Fatal("adds should succeed")
	}
	if err = cat.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen read-only: counts reload from the state entry, writes bounce.
	cat, err = catalog.OpenCatalog(ctx, goknot.CatalogOpts{DbPathName: dbPath, ReadOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if !cat.IsReadOnly() {
		t.Fatal("catalog should be read-only")
	}
	if cat.NumKnots(3) != 1 || cat.NumKnots(4) != 1 {
		t.Fatalf("counts lost: %d, %d", cat.NumKnots(3), cat.NumKnots(4))
	}
	if cat.TryAddKnot(libknot.Unknot()) {
		t.Fatal("read-only add should bounce")
	}
	if n := selectCount(cat, goknot.DefaultKnotSelector); n != 2 {
		t.Fatalf("selected %d variants after reopen", n)
	}

	ctx.Close()
	<-ctx.Done()
}

func TestCatalogBadParams(t *testing.T) {
	ctx := goknot.NewCatalogContext()

	_, err := catalog.OpenCatalog(ctx, goknot.CatalogOpts{ReadOnly: true})
	if !errors.Is(err, goknot.ErrBadCatalogParam) {
		t.Fatalf("got %v, want ErrBadCatalogParam", err)
	}

	ctx.Close()
	<-ctx.Done()
}
