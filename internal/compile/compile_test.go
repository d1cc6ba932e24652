package compile

import (
	"testing"

	"qubocompile/internal/ast"
)

func TestCompileRejectsNilExpression(t *testing.T) {
	if _, err := Compile(nil, DefaultStrength); err == nil {
		t.Errorf("expected an error for a nil expression")
	}
}

func TestCompileZeroStrengthFallsBackToDefault(t *testing.T) {
	expr := ast.Mul2(ast.Mul2(ast.Bin("a"), ast.Bin("b")), ast.Bin("c"))
	withZero, err := Compile(expr, 0)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	withDefault, err := Compile(expr, DefaultStrength)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if withZero.Objective.Len() != withDefault.Objective.Len() {
		t.Errorf("strength=0 should fall back to the same structure as the default strength")
	}
	_, qZero, _, err := withZero.ToBQMParameters(nil)
	if err != nil {
		t.Fatalf("to bqm parameters: %v", err)
	}
	_, qDefault, _, err := withDefault.ToBQMParameters(nil)
	if err != nil {
		t.Fatalf("to bqm parameters: %v", err)
	}
	for key, c := range qDefault {
		if qZero[key] != c {
			t.Errorf("strength=0 should give the default-strength coefficient %g for %v, got %g", c, key, qZero[key])
		}
	}
}

func TestCompileReturnsAQuadraticObjective(t *testing.T) {
	expr := ast.Mul2(ast.Mul2(ast.Bin("a"), ast.Bin("b")), ast.Bin("c"))
	m, err := Compile(expr, DefaultStrength)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for _, term := range m.Objective.Terms() {
		if term.Product.Len() > 2 {
			t.Errorf("expected every term to have degree <= 2 after compilation, found degree %d", term.Product.Len())
		}
	}
}

func TestCompileEachCallGetsAnIndependentRegistry(t *testing.T) {
	expr := ast.Bin("x")
	m1, err := Compile(expr, DefaultStrength)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	m2, err := Compile(expr, DefaultStrength)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if m1.Registry == m2.Registry {
		t.Errorf("separate Compile calls must not share a registry")
	}
}

func TestCompileWithOptionsNamespacesAuxiliaries(t *testing.T) {
	expr := ast.Mul2(ast.Mul2(ast.Bin("a"), ast.Bin("b")), ast.Bin("c"))
	m, err := CompileWithOptions(expr, Options{Strength: DefaultStrength, AuxNamespace: "run42"})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(m.AuxDefs) != 1 {
		t.Fatalf("expected exactly 1 auxiliary variable, got %d", len(m.AuxDefs))
	}
	for name := range m.AuxDefs {
		if len(name) < 6 || name[:6] != "run42:" {
			t.Errorf("expected the auxiliary's registered name to carry the namespace prefix, got %q", name)
		}
	}
}
