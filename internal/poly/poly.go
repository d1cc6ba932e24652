// Package poly implements Product (a sorted, deduplicated multiset of
// binary-variable indices) and Polynomial (an associative
// Product->coefficient map), plus their addition and multiplication.
//
// Grounded on pyquboc's abstract_syntax_tree.hpp/compiler.hpp
// "product"/"polynomial" types: a product is a sorted index vector
// with x^2=x idempotency applied, a polynomial merges same-product
// terms by adding coefficients via the AST's own "+" constructor so
// that literal-literal additions keep folding.
package poly

import (
	"sort"
	"strconv"
	"strings"

	"qubocompile/internal/ast"
)

// Product is a strictly sorted, duplicate-free vector of variable
// indices. The empty product represents the constant term.
type Product struct {
	idx []int
}

// NewProduct normalizes indices into a Product: sorted ascending,
// duplicates collapsed (x^2 = x for binary indices — every index
// reaching this package is already a binary-variable index, since
// spins are rewritten to binary before expansion produces products).
func NewProduct(indices []int) Product {
	cp := append([]int(nil), indices...)
	sort.Ints(cp)
	out := cp[:0]
	for i, v := range cp {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return Product{idx: out}
}

// Empty is the constant-term product.
func Empty() Product { return Product{} }

func (p Product) Len() int { return len(p.idx) }

// Indices returns a copy of the normalized index vector.
func (p Product) Indices() []int {
	return append([]int(nil), p.idx...)
}

// Key is the canonical map key for this product: Go slices cannot be
// map keys directly, so Polynomial indexes terms by this string.
func (p Product) Key() string {
	var sb strings.Builder
	for i, v := range p.idx {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

// Equal reports index-vector equality of the normalized products.
func (p Product) Equal(other Product) bool {
	if len(p.idx) != len(other.idx) {
		return false
	}
	for i := range p.idx {
		if p.idx[i] != other.idx[i] {
			return false
		}
	}
	return true
}

// Less totally orders products: shorter first, then lexicographically
// by index. Used only to make term iteration deterministic (spec
// invariant 7); it is not the quadratizer's pair tie-break, which is
// pinned separately per spec §9.
func (p Product) Less(other Product) bool {
	if len(p.idx) != len(other.idx) {
		return len(p.idx) < len(other.idx)
	}
	for i := range p.idx {
		if p.idx[i] != other.idx[i] {
			return p.idx[i] < other.idx[i]
		}
	}
	return false
}

// Contains reports whether index i appears in the product.
func (p Product) Contains(i int) bool {
	for _, v := range p.idx {
		if v == i {
			return true
		}
	}
	return false
}

// Term pairs a normalized Product with its coefficient expression.
type Term struct {
	Product Product
	Coeff   ast.Expr
}

// Polynomial is an associative Product->coefficient mapping. The zero
// value behaves as the empty polynomial, the same as New().
type Polynomial struct {
	terms map[string]Term
}

func New() Polynomial {
	return Polynomial{terms: make(map[string]Term)}
}

// FromLiteral builds the single-term polynomial {empty -> v}.
func FromLiteral(v float64) Polynomial {
	p := New()
	return p.AddTerm(Empty(), ast.Lit(v))
}

// FromCoefficient builds the single-term polynomial {empty -> coeff},
// used for placeholder-valued scalars.
func FromCoefficient(coeff ast.Expr) Polynomial {
	p := New()
	return p.AddTerm(Empty(), coeff)
}

// SingleTerm builds the single-term polynomial {product(indices) -> coeff}.
func SingleTerm(indices []int, coeff ast.Expr) Polynomial {
	p := New()
	return p.AddTerm(NewProduct(indices), coeff)
}

// clone returns a shallow copy of the term map so callers get
// value-like semantics without mutating a shared Polynomial.
func (p Polynomial) clone() Polynomial {
	out := make(map[string]Term, len(p.terms))
	for k, v := range p.terms {
		out[k] = v
	}
	return Polynomial{terms: out}
}

// AddTerm merges a single (product, coeff) term in, summing
// coefficients via ast.Add2 on key collision, and returns the
// resulting polynomial (the receiver is left unmodified).
func (p Polynomial) AddTerm(product Product, coeff ast.Expr) Polynomial {
	out := p.clone()
	key := product.Key()
	if existing, ok := out.terms[key]; ok {
		out.terms[key] = Term{Product: product, Coeff: ast.Add2(existing.Coeff, coeff)}
	} else {
		out.terms[key] = Term{Product: product, Coeff: coeff}
	}
	return out
}

// Add returns p + other: the union of terms, coefficients summed on
// collision.
func (p Polynomial) Add(other Polynomial) Polynomial {
	out := p.clone()
	for _, t := range other.terms {
		if existing, ok := out.terms[t.Product.Key()]; ok {
			out.terms[t.Product.Key()] = Term{Product: t.Product, Coeff: ast.Add2(existing.Coeff, t.Coeff)}
		} else {
			out.terms[t.Product.Key()] = t
		}
	}
	return out
}

// Mul returns p * other: the Cartesian product of terms, each pair's
// products unioned (and renormalized) and coefficients multiplied,
// accumulated via the addition rule above.
func (p Polynomial) Mul(other Polynomial) Polynomial {
	out := New()
	for _, a := range p.terms {
		for _, b := range other.terms {
			indices := append(append([]int(nil), a.Product.idx...), b.Product.idx...)
			out = out.AddTerm(NewProduct(indices), ast.Mul2(a.Coeff, b.Coeff))
		}
	}
	return out
}

// Terms returns every (product, coefficient) pair, sorted by Product
// order for deterministic downstream iteration (spec invariant 7).
func (p Polynomial) Terms() []Term {
	out := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.Less(out[j].Product) })
	return out
}

// Len is the number of distinct product terms.
func (p Polynomial) Len() int { return len(p.terms) }
