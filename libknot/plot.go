package libknot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"

	"github.com/knot-systems/knot.SDK/goknot"
)

// AppendDOT appends a Graphviz rendition of the diagram: a circle node per
// arc label, a box node per crossing carrying its index and sign, and an
// edge from each crossing to its four arc ends.
func (d *PlanarDiagram) AppendDOT(out []byte, title string) []byte {
	out = fmt.Appendf(out, "graph %q {\n", title)
	out = append(out, "  node [shape=circle, fontsize=11];\n"...)

	seen := make(map[int64]bool, 2*len(d.Crossings))
	for _, x := range d.Crossings {
		for _, arc := range [4]int64{x.A, x.B, x.C, x.D} {
			if !seen[arc] {
				seen[arc] = true
				out = fmt.Appendf(out, "  \"a%d\" [label=\"%d\"];\n", arc, arc)
			}
		}
	}

	for i, x := range d.Crossings {
		signCh := byte('+')
		if x.Sign < 0 {
			signCh = '-'
		}
		out = fmt.Appendf(out, "  \"x%d\" [shape=box, label=\"X%d%c\"];\n", i, i, signCh)
		out = fmt.Appendf(out, "  \"x%d\" -- \"a%d\";  \"x%d\" -- \"a%d\";  \"x%d\" -- \"a%d\";  \"x%d\" -- \"a%d\";\n",
			i, x.A, i, x.B, i, x.C, i, x.D)
	}

	out = append(out, '}', '\n')
	return out
}

// RenderSVG lays out the knot's diagram with Graphviz and returns SVG bytes.
func (k *Knot) RenderSVG(ctx context.Context) ([]byte, error) {
	if k.PD == nil {
		return nil, goknot.ErrMissingRepresentation
	}
	dot := k.PD.AppendDOT(nil, k.Label())

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(err, "render SVG")
	}
	return buf.Bytes(), nil
}
