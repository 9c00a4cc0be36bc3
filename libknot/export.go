package libknot

import (
	"strconv"

	"github.com/katalvlaran/lvlath/core"
)

// ToGraph projects the diagram onto an undirected multigraph over its arc
// labels: each crossing contributes its 4-cycle of strand ends (a,b), (b,c),
// (c,d), (d,a).  Crossing signs do not survive the projection, so the result
// is the knot's shadow, suited to connectivity and layout work rather than
// faithful reconstruction.
func (d *PlanarDiagram) ToGraph() (*core.Graph, error) {
	g := core.NewGraph(core.WithMultiEdges(), core.WithLoops())

	for _, x := range d.Crossings {
		arcs := [4]int64{x.A, x.B, x.C, x.D}
		for i, arc := range arcs {
			next := arcs[(i+1)&3]
			_, err := g.AddEdge(arcName(arc), arcName(next), 0)
			if err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func arcName(arc int64) string {
	return strconv.FormatInt(arc, 10)
}
