// Package ast is the expression algebra: an immutable tree over eight
// node kinds (Add, Mul, Binary, Spin, Placeholder, Constraint,
// WithPenalty, NumericLiteral) with structural hashing, structural
// equality, and a canonical string form.
//
// The node-kind-plus-Accept shape is grounded on sentra's
// internal/parser/ast.go (Expr interface, one struct per node kind,
// double dispatch through a Visitor); hash/equality semantics are
// grounded on pyquboc's abstract_syntax_tree.hpp (kind + children +
// payload, boost::hash_combine chain).
package ast

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"qubocompile/internal/qerr"
)

// Kind tags the concrete node type, replacing the source's virtual
// expression_type() dispatch with a plain enum for switch/pattern
// matching.
type Kind int

const (
	KindNumericLiteral Kind = iota
	KindBinary
	KindSpin
	KindPlaceholder
	KindAdd
	KindMul
	KindConstraint
	KindWithPenalty
)

// Expr is the common interface implemented by every node. Hash and
// Equal give every node structural identity (spec invariant 1);
// Accept is the double-dispatch hook used by tree visitors such as
// the Expander.
type Expr interface {
	Kind() Kind
	Hash() uint64
	Equal(other Expr) bool
	String() string
	Accept(v Visitor) interface{}
}

// Visitor is implemented by tree walkers (the Expander is the only
// one in this module). Each method returns interface{} exactly as
// sentra's ExprVisitor does; callers type-assert the concrete result
// shape they expect back.
type Visitor interface {
	VisitNumericLiteral(e *NumericLiteral) interface{}
	VisitBinary(e *Binary) interface{}
	VisitSpin(e *Spin) interface{}
	VisitPlaceholder(e *Placeholder) interface{}
	VisitAdd(e *Add) interface{}
	VisitMul(e *Mul) interface{}
	VisitConstraint(e *Constraint) interface{}
	VisitWithPenalty(e *WithPenalty) interface{}
}

// hashCombine folds a new value into a running hash the way
// boost::hash_combine does in the original source.
func hashCombine(seed uint64, v uint64) uint64 {
	return seed ^ (v + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2))
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

func hashFloat(v float64) uint64 {
	return hashString(strconv.FormatFloat(v, 'g', -1, 64))
}

// NumericLiteral is a numeric constant whose value is known when the
// node is constructed.
type NumericLiteral struct {
	Value float64
}

func Lit(v float64) *NumericLiteral { return &NumericLiteral{Value: v} }

func (n *NumericLiteral) Kind() Kind { return KindNumericLiteral }
func (n *NumericLiteral) Hash() uint64 {
	return hashCombine(hashFloat(n.Value), hashString("numeric_literal"))
}
func (n *NumericLiteral) Equal(other Expr) bool {
	o, ok := other.(*NumericLiteral)
	return ok && o.Value == n.Value
}
func (n *NumericLiteral) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (n *NumericLiteral) Accept(v Visitor) interface{} { return v.VisitNumericLiteral(n) }

// Binary is a variable whose value is constrained to {0,1}.
type Binary struct {
	Name string
}

func Bin(name string) *Binary { return &Binary{Name: name} }

func (b *Binary) Kind() Kind { return KindBinary }
func (b *Binary) Hash() uint64 {
	return hashCombine(hashString(b.Name), hashString("binary_variable"))
}
func (b *Binary) Equal(other Expr) bool {
	o, ok := other.(*Binary)
	return ok && o.Name == b.Name
}
func (b *Binary) String() string       { return fmt.Sprintf("Binary('%s')", b.Name) }
func (b *Binary) Accept(v Visitor) interface{} { return v.VisitBinary(b) }

// Spin is a variable whose value is constrained to {-1,+1}.
type Spin struct {
	Name string
}

func Sp(name string) *Spin { return &Spin{Name: name} }

func (s *Spin) Kind() Kind { return KindSpin }
func (s *Spin) Hash() uint64 {
	return hashCombine(hashString(s.Name), hashString("spin_variable"))
}
func (s *Spin) Equal(other Expr) bool {
	o, ok := other.(*Spin)
	return ok && o.Name == s.Name
}
func (s *Spin) String() string       { return fmt.Sprintf("Spin('%s')", s.Name) }
func (s *Spin) Accept(v Visitor) interface{} { return v.VisitSpin(s) }

// Placeholder is an unresolved scalar parameter, resolved at BQM
// emission time via a feed dictionary.
type Placeholder struct {
	Name string
}

func Ph(name string) *Placeholder { return &Placeholder{Name: name} }

func (p *Placeholder) Kind() Kind { return KindPlaceholder }
func (p *Placeholder) Hash() uint64 {
	return hashCombine(hashString(p.Name), hashString("placeholder_variable"))
}
func (p *Placeholder) Equal(other Expr) bool {
	o, ok := other.(*Placeholder)
	return ok && o.Name == p.Name
}
func (p *Placeholder) String() string       { return fmt.Sprintf("Placeholder('%s')", p.Name) }
func (p *Placeholder) Accept(v Visitor) interface{} { return v.VisitPlaceholder(p) }

// Add is the sum of two sub-expressions.
type Add struct {
	LHS, RHS Expr
}

func (a *Add) Kind() Kind { return KindAdd }
func (a *Add) Hash() uint64 {
	h := hashCombine(uint64(0), a.LHS.Hash())
	h = hashCombine(h, a.RHS.Hash())
	return hashCombine(h, hashString("+"))
}
func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	return ok && a.LHS.Equal(o.LHS) && a.RHS.Equal(o.RHS)
}
func (a *Add) String() string       { return fmt.Sprintf("(%s + %s)", a.LHS.String(), a.RHS.String()) }
func (a *Add) Accept(v Visitor) interface{} { return v.VisitAdd(a) }

// Mul is the product of two sub-expressions.
type Mul struct {
	LHS, RHS Expr
}

func (m *Mul) Kind() Kind { return KindMul }
func (m *Mul) Hash() uint64 {
	h := hashCombine(uint64(0), m.LHS.Hash())
	h = hashCombine(h, m.RHS.Hash())
	return hashCombine(h, hashString("*"))
}
func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	return ok && m.LHS.Equal(o.LHS) && m.RHS.Equal(o.RHS)
}
func (m *Mul) String() string       { return fmt.Sprintf("(%s * %s)", m.LHS.String(), m.RHS.String()) }
func (m *Mul) Accept(v Visitor) interface{} { return v.VisitMul(m) }

// Predicate tests whether a constraint's evaluated energy counts as
// satisfied. DefaultPredicate (exact zero equality) is used unless
// the caller supplies their own; see spec open question on tolerance
// — we default to exact equality for compatibility and let callers
// opt into a tolerance themselves.
type Predicate func(float64) bool

func DefaultPredicate(x float64) bool { return x == 0 }

// Constraint labels Inner as a named constraint, tested against
// Predicate once a sample is decoded.
type Constraint struct {
	Inner     Expr
	Name      string
	Predicate Predicate
}

func NewConstraint(inner Expr, name string, predicate Predicate) *Constraint {
	if predicate == nil {
		predicate = DefaultPredicate
	}
	return &Constraint{Inner: inner, Name: name, Predicate: predicate}
}

func (c *Constraint) Kind() Kind { return KindConstraint }
func (c *Constraint) Hash() uint64 {
	h := hashCombine(hashString(c.Name), hashString("constraint"))
	return hashCombine(h, c.Inner.Hash())
}

// Equal compares name and inner expression only, matching the
// original's constraint::equals (a Predicate is a Go func value and
// cannot be compared for equality).
func (c *Constraint) Equal(other Expr) bool {
	o, ok := other.(*Constraint)
	return ok && c.Name == o.Name && c.Inner.Equal(o.Inner)
}
func (c *Constraint) String() string {
	return fmt.Sprintf("Constraint(%s, '%s')", c.Inner.String(), c.Name)
}
func (c *Constraint) Accept(v Visitor) interface{} { return v.VisitConstraint(c) }

// WithPenalty lets Inner contribute to the objective while Penalty is
// added as pure penalty, never to the primary polynomial.
type WithPenalty struct {
	Inner   Expr
	Penalty Expr
	Name    string
}

func NewWithPenalty(inner, penalty Expr, name string) *WithPenalty {
	return &WithPenalty{Inner: inner, Penalty: penalty, Name: name}
}

func (w *WithPenalty) Kind() Kind { return KindWithPenalty }
func (w *WithPenalty) Hash() uint64 {
	h := hashCombine(hashString(w.Name), hashString("with_penalty"))
	h = hashCombine(h, w.Inner.Hash())
	return hashCombine(h, w.Penalty.Hash())
}
func (w *WithPenalty) Equal(other Expr) bool {
	o, ok := other.(*WithPenalty)
	return ok && w.Name == o.Name && w.Inner.Equal(o.Inner) && w.Penalty.Equal(o.Penalty)
}
func (w *WithPenalty) String() string {
	return fmt.Sprintf("WithPenalty(%s, %s, '%s')", w.Inner.String(), w.Penalty.String(), w.Name)
}
func (w *WithPenalty) Accept(v Visitor) interface{} { return v.VisitWithPenalty(w) }

// Add2 constructs the sum of a and b, folding literal+literal into a
// single NumericLiteral.
func Add2(a, b Expr) Expr {
	if al, ok := a.(*NumericLiteral); ok {
		if bl, ok := b.(*NumericLiteral); ok {
			return Lit(al.Value + bl.Value)
		}
	}
	return &Add{LHS: a, RHS: b}
}

// Mul2 constructs the product of a and b, folding literal*literal
// into a single NumericLiteral.
func Mul2(a, b Expr) Expr {
	if al, ok := a.(*NumericLiteral); ok {
		if bl, ok := b.(*NumericLiteral); ok {
			return Lit(al.Value * bl.Value)
		}
	}
	return &Mul{LHS: a, RHS: b}
}

// Neg returns -a.
func Neg(a Expr) Expr { return Mul2(Lit(-1), a) }

// Sub returns a - b.
func Sub(a, b Expr) Expr { return Add2(a, Neg(b)) }

// Div returns a / c for a numeric constant c. Division by zero fails
// with InvalidArgument.
func Div(a Expr, c float64) (Expr, error) {
	if c == 0 {
		return nil, qerr.NewInvalidArgument("division by zero", "")
	}
	return Mul2(a, Lit(1/c)), nil
}

// Pow returns a raised to the positive integer power n via repeated
// multiplication, matching the original's loop. Non-positive exponents
// fail with InvalidArgument.
func Pow(a Expr, n int) (Expr, error) {
	if n <= 0 {
		return nil, qerr.NewInvalidArgument("exponent must be positive", strconv.Itoa(n))
	}
	result := a
	for i := 1; i < n; i++ {
		result = Mul2(result, a)
	}
	return result, nil
}
