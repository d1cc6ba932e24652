package ast

import "testing"

func TestLiteralFolding(t *testing.T) {
	sum := Add2(Lit(2), Lit(3))
	lit, ok := sum.(*NumericLiteral)
	if !ok {
		t.Fatalf("Add2 of two literals should fold, got %T", sum)
	}
	if lit.Value != 5 {
		t.Errorf("expected 5, got %g", lit.Value)
	}

	product := Mul2(Lit(2), Lit(3))
	plit, ok := product.(*NumericLiteral)
	if !ok {
		t.Fatalf("Mul2 of two literals should fold, got %T", product)
	}
	if plit.Value != 6 {
		t.Errorf("expected 6, got %g", plit.Value)
	}
}

func TestArithmeticDoesNotFoldNonLiterals(t *testing.T) {
	sum := Add2(Bin("a"), Lit(3))
	if _, ok := sum.(*Add); !ok {
		t.Fatalf("expected *Add, got %T", sum)
	}
}

func TestHashEqualityImpliesEqualHash(t *testing.T) {
	a := Add2(Bin("x"), Mul2(Bin("y"), Lit(2)))
	b := Add2(Bin("x"), Mul2(Bin("y"), Lit(2)))
	if !a.Equal(b) {
		t.Fatalf("expected structural equality")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("equal expressions must hash equal")
	}
}

func TestHashDistinguishesDifferentShapes(t *testing.T) {
	a := Add2(Bin("x"), Lit(1))
	b := Mul2(Bin("x"), Lit(1))
	if a.Equal(b) {
		t.Fatalf("Add and Mul of the same operands must not be equal")
	}
	if a.Hash() == b.Hash() {
		t.Errorf("Add and Mul of the same operands should hash differently")
	}
}

func TestSpinAndBinaryAreNotEqualEvenWithSameName(t *testing.T) {
	b := Bin("v")
	s := Sp("v")
	if b.Equal(s) || s.Equal(b) {
		t.Errorf("Binary and Spin with the same name must be distinct nodes")
	}
}

func TestPowOne(t *testing.T) {
	e := Bin("x")
	result, err := Pow(e, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Equal(e) {
		t.Errorf("pow(e, 1) should be structurally identical to e")
	}
}

func TestPowNonPositiveFails(t *testing.T) {
	if _, err := Pow(Bin("x"), 0); err == nil {
		t.Errorf("expected error for pow exponent 0")
	}
	if _, err := Pow(Bin("x"), -1); err == nil {
		t.Errorf("expected error for negative exponent")
	}
}

func TestDivByZeroFails(t *testing.T) {
	if _, err := Div(Bin("x"), 0); err == nil {
		t.Errorf("expected InvalidArgument for division by zero")
	}
}

func TestDivFolds(t *testing.T) {
	result, err := Div(Lit(10), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lit, ok := result.(*NumericLiteral)
	if !ok {
		t.Fatalf("expected folded literal, got %T", result)
	}
	if lit.Value != 5 {
		t.Errorf("expected 5, got %g", lit.Value)
	}
}

func TestStringForm(t *testing.T) {
	e := Add2(Bin("a"), Mul2(Bin("b"), Lit(2)))
	want := "(Binary('a') + (Binary('b') * 2))"
	if got := e.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConstraintEqualityIgnoresPredicateIdentity(t *testing.T) {
	a := NewConstraint(Bin("x"), "c", func(v float64) bool { return v == 0 })
	b := NewConstraint(Bin("x"), "c", func(v float64) bool { return v < 1 })
	if !a.Equal(b) {
		t.Errorf("constraint equality should compare name and inner expression, not predicate identity")
	}
}

func TestDefaultPredicateIsExactZero(t *testing.T) {
	if !DefaultPredicate(0) {
		t.Errorf("0 should satisfy the default predicate")
	}
	if DefaultPredicate(0.0000001) {
		t.Errorf("non-zero should not satisfy the default predicate")
	}
}
