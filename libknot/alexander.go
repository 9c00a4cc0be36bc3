package libknot

import (
	"math"

	"github.com/pkg/errors"

	"github.com/knot-systems/knot.SDK/goknot"
)

// EstimateAlexander produces a two-term approximation of the Alexander
// polynomial from a Seifert-style incidence matrix.
//
// With n Seifert circles, each crossing accumulates its sign into an n x n
// matrix V at the row and column selected by its first and third arc labels
// (reduced mod n).  The result is the linear interpolation
//
//	{0: det(V), 1: det(V - Vt) - det(V)}
//
// which agrees with the true det(V - Vt*t) polynomial at t=0 and t=1 only.
// Callers wanting a faithful Alexander polynomial should swap this for a
// symbolic determinant expansion; the signature is stable either way.
func (d *PlanarDiagram) EstimateAlexander() (*goknot.Laurent, error) {
	n := d.SeifertCircles()
	if n <= 1 {
		return goknot.LaurentTerm(0, 1), nil
	}

	V := newSquare(n)
	for _, x := range d.Crossings {
		if x.A < 0 || x.C < 0 {
			return nil, errors.Wrapf(goknot.ErrInvalidArc, "negative arc in crossing %v", x.Tuple())
		}
		row := int(x.A%int64(n)) + 1
		col := int(x.C%int64(n)) + 1
		if row < 1 || row > n || col < 1 || col > n {
			return nil, errors.Wrapf(goknot.ErrIndexOutOfRange, "seifert index (%d,%d) outside %dx%d", row, col, n, n)
		}
		V[row-1][col-1] += float64(x.Sign)
	}

	W := newSquare(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			W[i][j] = V[i][j] - V[j][i]
		}
	}

	det0 := int64(math.Round(determinant(V)))
	det1 := int64(math.Round(determinant(W)))

	poly := goknot.NewLaurent()
	poly.AddTerm(0, det0)
	poly.AddTerm(1, det1-det0)
	return poly, nil
}

// EstimateAlexander requires a planar diagram on the knot.
func (k *Knot) EstimateAlexander() (*goknot.Laurent, error) {
	if k.PD == nil {
		return nil, goknot.ErrMissingRepresentation
	}
	return k.PD.EstimateAlexander()
}

func (l *Link) EstimateAlexander() (*goknot.Laurent, error) {
	if l.PD == nil {
		return nil, goknot.ErrMissingRepresentation
	}
	return l.PD.EstimateAlexander()
}

func newSquare(n int) [][]float64 {
	cells := make([]float64, n*n)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = cells[i*n : (i+1)*n]
	}
	return rows
}

// determinant computes det(m) by Gaussian elimination, reducing m in place.
// Rows are swapped to keep the largest pivot, so singular and zero-diagonal
// matrices reduce cleanly to 0 rather than dividing by a vanishing pivot.
func determinant(m [][]float64) float64 {
	n := len(m)
	det := 1.0

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if m[pivot][col] == 0 {
			return 0
		}
		if pivot != col {
			m[pivot], m[col] = m[col], m[pivot]
			det = -det
		}

		det *= m[col][col]
		for row := col + 1; row < n; row++ {
			factor := m[row][col] / m[col][col]
			if factor == 0 {
				continue
			}
			for k := col; k < n; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}
	return det
}
