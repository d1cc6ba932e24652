package poly

import (
	"testing"

	"qubocompile/internal/ast"
)

func TestNewProductSortsAndDedups(t *testing.T) {
	p := NewProduct([]int{3, 1, 2, 1, 3})
	want := []int{1, 2, 3}
	got := p.Indices()
	if len(got) != len(want) {
		t.Fatalf("expected %d indices, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestProductKeyIsStableUnderPermutation(t *testing.T) {
	a := NewProduct([]int{2, 1, 3})
	b := NewProduct([]int{3, 2, 1})
	if a.Key() != b.Key() {
		t.Errorf("products with the same index set must share a key, got %q and %q", a.Key(), b.Key())
	}
}

func TestProductLessOrdersByLengthThenLex(t *testing.T) {
	short := NewProduct([]int{5})
	long := NewProduct([]int{0, 1})
	if !short.Less(long) {
		t.Errorf("a shorter product should sort before a longer one regardless of index values")
	}
	a := NewProduct([]int{1, 2})
	b := NewProduct([]int{1, 3})
	if !a.Less(b) {
		t.Errorf("equal-length products should order lexicographically by index")
	}
}

func TestAddTermMergesCoefficientsOnCollision(t *testing.T) {
	p := New()
	p = p.AddTerm(NewProduct([]int{0}), ast.Lit(2))
	p = p.AddTerm(NewProduct([]int{0}), ast.Lit(3))
	if p.Len() != 1 {
		t.Fatalf("expected a single merged term, got %d", p.Len())
	}
	terms := p.Terms()
	lit, ok := terms[0].Coeff.(*ast.NumericLiteral)
	if !ok {
		t.Fatalf("expected a folded numeric literal, got %T", terms[0].Coeff)
	}
	if lit.Value != 5 {
		t.Errorf("expected merged coefficient 5, got %g", lit.Value)
	}
}

func TestPolynomialAddUnionsTerms(t *testing.T) {
	a := SingleTerm([]int{0}, ast.Lit(1))
	b := SingleTerm([]int{1}, ast.Lit(1))
	sum := a.Add(b)
	if sum.Len() != 2 {
		t.Errorf("expected 2 distinct terms, got %d", sum.Len())
	}
}

func TestPolynomialAddMergesSharedProduct(t *testing.T) {
	a := SingleTerm([]int{0}, ast.Lit(2))
	b := SingleTerm([]int{0}, ast.Lit(3))
	sum := a.Add(b)
	if sum.Len() != 1 {
		t.Fatalf("expected the shared product to merge into one term, got %d", sum.Len())
	}
}

func TestPolynomialMulIsCartesianAndIdempotent(t *testing.T) {
	a := SingleTerm([]int{0}, ast.Lit(1))
	b := SingleTerm([]int{0}, ast.Lit(1))
	product := a.Mul(b)
	if product.Len() != 1 {
		t.Fatalf("expected 1 term, got %d", product.Len())
	}
	term := product.Terms()[0]
	if term.Product.Len() != 1 {
		t.Errorf("x*x must idempotently collapse to a degree-1 product, got degree %d", term.Product.Len())
	}
}

func TestPolynomialMulDistributesAcrossSums(t *testing.T) {
	sum := SingleTerm([]int{0}, ast.Lit(1)).Add(SingleTerm([]int{1}, ast.Lit(1)))
	other := SingleTerm([]int{2}, ast.Lit(1))
	product := sum.Mul(other)
	if product.Len() != 2 {
		t.Errorf("(x+y)*z should produce 2 terms, got %d", product.Len())
	}
}

func TestTermsAreSortedDeterministically(t *testing.T) {
	p := SingleTerm([]int{1}, ast.Lit(1)).Add(SingleTerm([]int{0}, ast.Lit(1))).Add(FromLiteral(5))
	terms := p.Terms()
	if terms[0].Product.Len() != 0 {
		t.Fatalf("expected the constant term first, got degree %d", terms[0].Product.Len())
	}
	if terms[1].Product.Indices()[0] != 0 || terms[2].Product.Indices()[0] != 1 {
		t.Errorf("expected degree-1 terms sorted by index, got %v then %v", terms[1].Product.Indices(), terms[2].Product.Indices())
	}
}
