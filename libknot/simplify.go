package libknot

// SimplifyR1 returns a new diagram with every Reidemeister-I kink removed.
// A crossing that repeats an arc label is a strand crossing itself, so it
// can be dropped without changing the knot.  The component list carries
// over unchanged; remaining arcs are not renumbered and no R2/R3 reduction
// is attempted.
func (d *PlanarDiagram) SimplifyR1() *PlanarDiagram {
	kept := make([]Crossing, 0, len(d.Crossings))
	for _, x := range d.Crossings {
		if x.HasRepeatedArc() {
			continue
		}
		kept = append(kept, x)
	}
	return &PlanarDiagram{
		Crossings:  kept,
		Components: d.Components,
	}
}
