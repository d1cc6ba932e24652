// Package compile wires the Expander and Quadratizer into the single
// entry point a host binding calls: Compile(expr, strength) -> Model.
// Grounded on pyquboc's compiler.hpp free function "compile" and on
// sentra's compiler.NewCompiler().Compile(expr) top-level shape (one
// constructor, one Compile call, one owned result).
package compile

import (
	"qubocompile/internal/ast"
	"qubocompile/internal/expand"
	"qubocompile/internal/model"
	"qubocompile/internal/qerr"
	"qubocompile/internal/quadratize"
	"qubocompile/internal/registry"
)

// DefaultStrength is the Rosenberg penalty strength used when a
// caller does not supply one, matching spec §6's compile(strength=5).
const DefaultStrength = 5.0

// Options extends the spec's compile(strength) surface with the
// SPEC_FULL auxiliary-namespacing addition: when AuxNamespace is
// non-empty, every auxiliary variable name introduced during
// quadratization is prefixed with "<AuxNamespace>:" before being
// registered, so it cannot collide with a user variable even if that
// user variable's own name happens to contain " * ".
type Options struct {
	Strength     float64
	AuxNamespace string
}

func DefaultOptions() Options {
	return Options{Strength: DefaultStrength}
}

// Compile expands expr into a polynomial, quadratizes it, and returns
// the resulting Model. This is the only entry point a language binding
// needs: it owns the fresh VariableRegistry for the compilation.
func Compile(expr ast.Expr, strength float64) (*model.Model, error) {
	return CompileWithOptions(expr, Options{Strength: strength})
}

// CompileWithOptions is Compile plus the namespacing option above.
func CompileWithOptions(expr ast.Expr, opts Options) (*model.Model, error) {
	if expr == nil {
		return nil, qerr.NewInvalidArgument("expression must not be nil", "")
	}
	strength := opts.Strength
	if strength == 0 {
		strength = DefaultStrength
	}

	reg := registry.New()
	objective, constraints := expand.Expand(expr, reg)

	quadratic, auxDefs := quadratize.Quadratize(objective, strength, reg, opts.AuxNamespace)

	return model.New(quadratic, constraints, reg, auxDefs), nil
}
