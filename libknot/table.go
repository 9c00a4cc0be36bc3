package libknot

import (
	"github.com/pkg/errors"

	"github.com/knot-systems/knot.SDK/goknot"
)

// TableEntry names one prime knot and its Dowker-Thistlethwaite code.
type TableEntry struct {
	Name string
	DT   goknot.DTCode
}

// Rolfsen-numbered prime knots through seven crossings.
var knotTable = []TableEntry{
	{"0_1", goknot.DTCode{}},
	{"3_1", goknot.DTCode{4, 6, 2}},
	{"4_1", goknot.DTCode{4, 6, 8, 2}},
	{"5_1", goknot.DTCode{6, 8, 10, 2, 4}},
	{"5_2", goknot.DTCode{4, 8, 10, 2, 6}},
	{"6_1", goknot.DTCode{4, 8, 12, 10, 2, 6}},
	{"6_2", goknot.DTCode{4, 8, 10, 12, 2, 6}},
	{"6_3", goknot.DTCode{4, 8, 10, 2, 12, 6}},
	{"7_1", goknot.DTCode{8, 10, 12, 14, 2, 4, 6}},
	{"7_2", goknot.DTCode{4, 10, 14, 12, 2, 8, 6}},
	{"7_3", goknot.DTCode{6, 10, 12, 14, 2, 4, 8}},
	{"7_4", goknot.DTCode{6, 10, 12, 14, 4, 2, 8}},
	{"7_5", goknot.DTCode{4, 10, 12, 14, 2, 8, 6}},
	{"7_6", goknot.DTCode{4, 8, 12, 2, 14, 6, 10}},
	{"7_7", goknot.DTCode{4, 8, 10, 12, 2, 14, 6}},
}

// diagramFactories supplies full planar diagrams for the names we have them
// for; the remaining table entries carry only their DT codes.
var diagramFactories = map[string]func() *Knot{
	"0_1": Unknot,
	"3_1": Trefoil,
	"4_1": FigureEight,
}

// Lookup returns a fresh Knot for a Rolfsen table name, with a full planar
// diagram when one is on file and the DT code alone otherwise.  Unlisted
// names fail with ErrUnknownKnot.
func Lookup(name string) (*Knot, error) {
	if factory, ok := diagramFactories[name]; ok {
		return factory(), nil
	}
	for _, ent := range knotTable {
		if ent.Name == name {
			dt := make(goknot.DTCode, len(ent.DT))
			copy(dt, ent.DT)
			return KnotFromDT(ent.Name, dt), nil
		}
	}
	return nil, errors.Wrapf(goknot.ErrUnknownKnot, "%q not in table", name)
}

// TableNames lists the table's knot names in crossing order.
func TableNames() []string {
	names := make([]string, len(knotTable))
	for i, ent := range knotTable {
		names[i] = ent.Name
	}
	return names
}

// StreamTable emits every table knot in order on a new stream.
func StreamTable() *goknot.KnotStream {
	next := goknot.NewKnotStream()

	go func() {
		for _, ent := range knotTable {
			if k, err := Lookup(ent.Name); err == nil {
				next.Outlet <- k
			}
		}
		close(next.Outlet)
	}()

	return next
}
