// Package expand implements the Expander: a single-pass visitor over
// an ast.Expr that produces (objective, penalty, constraints), per
// the node-kind table in the specification. Grounded line-for-line on
// pyquboc's compiler.hpp "class expand", adapted from its C++
// template-visitor call (visit<Result>) to sentra's
// Accept(Visitor)-returning-interface{} style.
package expand

import (
	"qubocompile/internal/ast"
	"qubocompile/internal/poly"
	"qubocompile/internal/registry"
)

// ConstraintInfo captures both the polynomial form of a named
// constraint and the predicate its decoded energy is tested against;
// the predicate itself cannot live in a poly.Polynomial (polynomials
// hold only coefficient expressions), so the Expander threads it
// through separately.
type ConstraintInfo struct {
	Polynomial poly.Polynomial
	Predicate  ast.Predicate
}

type result struct {
	obj poly.Polynomial
	pen poly.Polynomial
}

type expander struct {
	reg         *registry.VariableRegistry
	constraints map[string]ConstraintInfo
}

// Expand walks e, extending reg with every variable name it
// encounters, and returns the combined (objective+penalty) polynomial
// together with the polynomial form of every named constraint.
func Expand(e ast.Expr, reg *registry.VariableRegistry) (poly.Polynomial, map[string]ConstraintInfo) {
	ex := &expander{reg: reg, constraints: make(map[string]ConstraintInfo)}
	r := e.Accept(ex).(result)
	return r.obj.Add(r.pen), ex.constraints
}

func (ex *expander) VisitNumericLiteral(e *ast.NumericLiteral) interface{} {
	return result{obj: poly.FromLiteral(e.Value), pen: poly.New()}
}

func (ex *expander) VisitBinary(e *ast.Binary) interface{} {
	idx := ex.reg.Index(e.Name)
	return result{obj: poly.SingleTerm([]int{idx}, ast.Lit(1)), pen: poly.New()}
}

// VisitSpin rewrites s = 2x - 1, so the rest of the pipeline operates
// purely over binary variables.
func (ex *expander) VisitSpin(e *ast.Spin) interface{} {
	idx := ex.reg.Index(e.Name)
	obj := poly.SingleTerm([]int{idx}, ast.Lit(2)).Add(poly.FromLiteral(-1))
	return result{obj: obj, pen: poly.New()}
}

func (ex *expander) VisitPlaceholder(e *ast.Placeholder) interface{} {
	return result{obj: poly.FromCoefficient(e), pen: poly.New()}
}

func (ex *expander) VisitAdd(e *ast.Add) interface{} {
	l := e.LHS.Accept(ex).(result)
	r := e.RHS.Accept(ex).(result)
	return result{obj: l.obj.Add(r.obj), pen: l.pen.Add(r.pen)}
}

func (ex *expander) VisitMul(e *ast.Mul) interface{} {
	l := e.LHS.Accept(ex).(result)
	r := e.RHS.Accept(ex).(result)
	return result{obj: l.obj.Mul(r.obj), pen: l.pen.Add(r.pen)}
}

// VisitConstraint records the constraint's polynomial (and predicate)
// under its name and propagates its objective/penalty normally, per
// spec §9's resolved open question: a Constraint nested inside a
// WithPenalty is still surfaced in the constraint map.
func (ex *expander) VisitConstraint(e *ast.Constraint) interface{} {
	inner := e.Inner.Accept(ex).(result)
	ex.constraints[e.Name] = ConstraintInfo{Polynomial: inner.obj, Predicate: e.Predicate}
	return result{obj: inner.obj, pen: inner.pen}
}

// VisitWithPenalty keeps Inner's objective but routes Penalty (plus
// its own penalty/objective contributions) into the penalty
// accumulator only, so it is never multiplied into the objective by
// an enclosing Mul.
func (ex *expander) VisitWithPenalty(e *ast.WithPenalty) interface{} {
	inner := e.Inner.Accept(ex).(result)
	strength := e.Penalty.Accept(ex).(result)
	pen := inner.pen.Add(strength.pen).Add(strength.obj)
	return result{obj: inner.obj, pen: pen}
}
