package goknot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLaurentAddCancel(t *testing.T) {
	p := NewLaurent()
	p.AddTerm(3, 2)
	p.AddTerm(-1, 5)
	p.AddTerm(3, -2)

	require.Equal(t, 1, p.NumTerms())
	require.EqualValues(t, 5, p.Coeff(-1))
	require.EqualValues(t, 0, p.Coeff(3))

	p.AddTerm(-1, -5)
	require.True(t, p.IsZero())
}

func TestLaurentMul(t *testing.T) {
	// delta = -A^2 - A^-2, the loop factor of the bracket state sum
	delta := NewLaurent()
	delta.AddTerm(2, -1)
	delta.AddTerm(-2, -1)

	sq := delta.Mul(delta)

	want := NewLaurent()
	want.AddTerm(4, 1)
	want.AddTerm(0, 2)
	want.AddTerm(-4, 1)
	require.True(t, sq.IsEqual(want), "delta^2 = %v", sq)

	// multiplying by the unit polynomial changes nothing
	one := LaurentTerm(0, 1)
	require.True(t, delta.Mul(one).IsEqual(delta))
}

func TestLaurentShift(t *testing.T) {
	p := LaurentTerm(1, 3)
	p.AddTerm(-2, -1)

	q := p.Shifted(4)
	require.EqualValues(t, 3, q.Coeff(5))
	require.EqualValues(t, -1, q.Coeff(2))
	require.Equal(t, 2, q.NumTerms())

	// shifting back restores the original
	require.True(t, q.Shifted(-4).IsEqual(p))
}

func TestLaurentDense(t *testing.T) {
	p := NewLaurent()
	p.AddTerm(-3, 1)
	p.AddTerm(0, -2)
	p.AddTerm(2, 7)

	offset, coeffs := p.Dense()
	require.Equal(t, -3, offset)
	require.Equal(t, []int64{1, 0, 0, -2, 0, 7}, coeffs)

	require.True(t, LaurentFromDense(offset, coeffs).IsEqual(p))

	zOffset, zCoeffs := NewLaurent().Dense()
	require.Equal(t, 0, zOffset)
	require.Empty(t, zCoeffs)
}

func TestLaurentString(t *testing.T) {
	p := NewLaurent()
	require.Equal(t, "0", p.String())

	p.AddTerm(0, 1)
	require.Equal(t, "1", p.String())

	p = NewLaurent()
	p.AddTerm(3, -1)
	require.Equal(t, "-t^3", p.String())

	p = NewLaurent()
	p.AddTerm(-2, -1)
	p.AddTerm(2, -1)
	require.Equal(t, string(p.AppendAsString(nil, 'A')), "-A^-2 - A^2")

	p = NewLaurent()
	p.AddTerm(-1, 2)
	p.AddTerm(1, 1)
	require.Equal(t, "2t^-1 + t", p.String())
}
