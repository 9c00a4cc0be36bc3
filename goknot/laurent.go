package goknot

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Laurent is a sparse Laurent polynomial with integer coefficients: a mapping
// from (possibly negative) exponents to nonzero coefficients.
//
// Terms are held in a red-black tree keyed by exponent so iteration is always
// in ascending exponent order.  Absent exponents are zero, and any operation
// that produces a zero coefficient removes the term, so two polynomials are
// equal exactly when their term sequences are equal.
type Laurent struct {
	terms *redblacktree.Tree
}

// NewLaurent returns the zero polynomial.
func NewLaurent() *Laurent {
	return &Laurent{
		terms: redblacktree.NewWithIntComparator(),
	}
}

// LaurentTerm returns the single-term polynomial coeff * x^exp.
func LaurentTerm(exp int, coeff int64) *Laurent {
	p := NewLaurent()
	p.AddTerm(exp, coeff)
	return p
}

// Coeff returns the coefficient of x^exp (zero when the term is absent).
func (p *Laurent) Coeff(exp int) int64 {
	v, found := p.terms.Get(exp)
	if !found {
		return 0
	}
	return v.(int64)
}

// AddTerm adds coeff * x^exp to this polynomial in place.
func (p *Laurent) AddTerm(exp int, coeff int64) {
	if coeff == 0 {
		return
	}
	sum := p.Coeff(exp) + coeff
	if sum == 0 {
		p.terms.Remove(exp)
	} else {
		p.terms.Put(exp, sum)
	}
}

// Add adds q to this polynomial in place.
func (p *Laurent) Add(q *Laurent) {
	q.ForEachTerm(func(exp int, coeff int64) {
		p.AddTerm(exp, coeff)
	})
}

// Shifted returns a new polynomial equal to p * x^delta.
func (p *Laurent) Shifted(delta int) *Laurent {
	out := NewLaurent()
	p.ForEachTerm(func(exp int, coeff int64) {
		out.terms.Put(exp+delta, coeff)
	})
	return out
}

// Mul returns the product p * q as a new polynomial.
func (p *Laurent) Mul(q *Laurent) *Laurent {
	out := NewLaurent()
	p.ForEachTerm(func(pe int, pc int64) {
		q.ForEachTerm(func(qe int, qc int64) {
			out.AddTerm(pe+qe, pc*qc)
		})
	})
	return out
}

// Negated returns -p as a new polynomial.
func (p *Laurent) Negated() *Laurent {
	out := NewLaurent()
	p.ForEachTerm(func(exp int, coeff int64) {
		out.terms.Put(exp, -coeff)
	})
	return out
}

// NumTerms returns the number of nonzero terms.
func (p *Laurent) NumTerms() int {
	return p.terms.Size()
}

// IsZero returns true if this is the zero polynomial.
func (p *Laurent) IsZero() bool {
	return p.terms.Empty()
}

// MinExp returns the smallest exponent carrying a nonzero coefficient.
// The second return is false for the zero polynomial.
func (p *Laurent) MinExp() (int, bool) {
	node := p.terms.Left()
	if node == nil {
		return 0, false
	}
	return node.Key.(int), true
}

// MaxExp returns the largest exponent carrying a nonzero coefficient.
// The second return is false for the zero polynomial.
func (p *Laurent) MaxExp() (int, bool) {
	node := p.terms.Right()
	if node == nil {
		return 0, false
	}
	return node.Key.(int), true
}

// ForEachTerm calls fn for each nonzero term in ascending exponent order.
func (p *Laurent) ForEachTerm(fn func(exp int, coeff int64)) {
	itr := p.terms.Iterator()
	for itr.Next() {
		fn(itr.Key().(int), itr.Value().(int64))
	}
}

// IsEqual returns whether p and q have identical term sequences.
func (p *Laurent) IsEqual(q *Laurent) bool {
	if p.NumTerms() != q.NumTerms() {
		return false
	}
	equal := true
	p.ForEachTerm(func(exp int, coeff int64) {
		if q.Coeff(exp) != coeff {
			equal = false
		}
	})
	return equal
}

// Dense exports this polynomial as (offset, coeffs) where offset is the
// minimum exponent and coeffs[i] is the coefficient of x^(offset+i).
// Interior zero coefficients are materialized; the zero polynomial exports
// as (0, nil).
func (p *Laurent) Dense() (offset int, coeffs []int64) {
	minExp, ok := p.MinExp()
	if !ok {
		return 0, nil
	}
	maxExp, _ := p.MaxExp()

	coeffs = make([]int64, maxExp-minExp+1)
	p.ForEachTerm(func(exp int, coeff int64) {
		coeffs[exp-minExp] = coeff
	})
	return minExp, coeffs
}

// LaurentFromDense is the inverse of Dense().
func LaurentFromDense(offset int, coeffs []int64) *Laurent {
	p := NewLaurent()
	for i, ci := range coeffs {
		p.AddTerm(offset+i, ci)
	}
	return p
}

// AppendAsString appends a human-readable rendering of p in the given
// variable, terms in ascending exponent order, e.g. "-A^-2 - A^2".
func (p *Laurent) AppendAsString(out []byte, variable byte) []byte {
	if p.IsZero() {
		return append(out, '0')
	}

	first := true
	p.ForEachTerm(func(exp int, coeff int64) {
		neg := coeff < 0
		if neg {
			coeff = -coeff
		}
		if first {
			if neg {
				out = append(out, '-')
			}
			first = false
		} else if neg {
			out = append(out, " - "...)
		} else {
			out = append(out, " + "...)
		}

		if coeff != 1 || exp == 0 {
			out = fmt.Appendf(out, "%d", coeff)
		}
		if exp != 0 {
			out = append(out, variable)
			if exp != 1 {
				out = fmt.Appendf(out, "^%d", exp)
			}
		}
	})
	return out
}

func (p *Laurent) String() string {
	return string(p.AppendAsString(nil, 't'))
}
