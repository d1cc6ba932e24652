// Package demo builds the small expressions used as worked examples
// throughout the specification (§8 "End-to-end scenarios"), used by
// cmd/qubocompile's build and analyze subcommands.
package demo

import "qubocompile/internal/ast"

// BinaryAND returns Binary("a") * Binary("b") * Binary("c"), whose
// compilation requires exactly one pair substitution (spec §8
// scenario 1).
func BinaryAND() ast.Expr {
	return ast.Mul2(ast.Mul2(ast.Bin("a"), ast.Bin("b")), ast.Bin("c"))
}

// SpinEncoding returns Spin("s") (spec §8 scenario 2).
func SpinEncoding() ast.Expr {
	return ast.Sp("s")
}

// PlaceholderWeighted returns Placeholder("p") * Binary("x") (spec §8
// scenario 3).
func PlaceholderWeighted() ast.Expr {
	return ast.Mul2(ast.Ph("p"), ast.Bin("x"))
}

// OneHot returns a named constraint requiring Binary("x")+Binary("y")
// to equal 1 (spec §8 scenario 4).
func OneHot() ast.Expr {
	sum := ast.Add2(ast.Bin("x"), ast.Bin("y"))
	return ast.NewConstraint(ast.Sub(sum, ast.Lit(1)), "one-hot", nil)
}

// PenaltyDemo returns WithPenalty(Binary("x"), (Binary("x") - 1)^2,
// "p1"): the objective is just x, while (x-1)^2 contributes only to
// the penalty (spec §8 scenario 5).
func PenaltyDemo() ast.Expr {
	inner := ast.Sub(ast.Bin("x"), ast.Lit(1))
	squared, _ := ast.Pow(inner, 2)
	return ast.NewWithPenalty(ast.Bin("x"), squared, "p1")
}
