// Package model implements the compiled Model: the final quadratic
// polynomial, the constraint sub-polynomials, and the variable
// registry, plus the operations exposed to a host binding and a
// sampler-feeding layer (BQM parameter emission, energy evaluation,
// sample decoding). Grounded on pyquboc's main.cpp pybind11 bindings
// (to_bqm, decode_sampleset, DecodedSample) for the operation surface,
// and on sentra's compiler.Compile (a single entry point returning an
// owned value) for the "construct once, never mutate" shape.
package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"qubocompile/internal/ast"
	"qubocompile/internal/expand"
	"qubocompile/internal/poly"
	"qubocompile/internal/qerr"
	"qubocompile/internal/registry"
)

// Vartype selects the domain a sample's values are interpreted in.
type Vartype int

const (
	BinaryVartype Vartype = iota
	SpinVartype
)

// Model is constructed once by Compile and never mutated afterward; it
// may be shared by multiple readers concurrently (spec §5).
type Model struct {
	Objective   poly.Polynomial
	Constraints map[string]expand.ConstraintInfo
	Registry    *registry.VariableRegistry
	// AuxDefs maps an auxiliary variable's name to the pair of names
	// it was introduced to stand for, so Energy can resolve an
	// auxiliary absent from a sample without reparsing its display
	// name (spec §9: that form is not guaranteed reserved).
	AuxDefs map[string][2]string
}

func New(objective poly.Polynomial, constraints map[string]expand.ConstraintInfo, reg *registry.VariableRegistry, auxDefs map[string][2]string) *Model {
	return &Model{Objective: objective, Constraints: constraints, Registry: reg, AuxDefs: auxDefs}
}

// ID is the owning registry's session identifier.
func (m *Model) ID() uuid.UUID { return m.Registry.ID() }

// evalCoeff evaluates a coefficient expression (literals, placeholders,
// add, mul only — spec §4.7) against a feed dictionary.
func evalCoeff(e ast.Expr, feed map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *ast.NumericLiteral:
		return v.Value, nil
	case *ast.Placeholder:
		val, ok := feed[v.Name]
		if !ok {
			return 0, qerr.NewMissingPlaceholder(v.Name)
		}
		return val, nil
	case *ast.Add:
		l, err := evalCoeff(v.LHS, feed)
		if err != nil {
			return 0, err
		}
		r, err := evalCoeff(v.RHS, feed)
		if err != nil {
			return 0, err
		}
		return l + r, nil
	case *ast.Mul:
		l, err := evalCoeff(v.LHS, feed)
		if err != nil {
			return 0, err
		}
		r, err := evalCoeff(v.RHS, feed)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	default:
		return 0, qerr.NewInternalInvariant("coefficient expression contains a non-coefficient node", e.String())
	}
}

// ToBQMParameters evaluates every coefficient in the quadratic
// polynomial against feed and buckets the results into linear,
// quadratic, and offset BQM parameters (spec §4.6). Terms of degree
// greater than 2 indicate quadratization did not run and are an
// InvalidArgument.
func (m *Model) ToBQMParameters(feed map[string]float64) (linear map[string]float64, quadratic map[[2]string]float64, offset float64, err error) {
	linear = make(map[string]float64)
	quadratic = make(map[[2]string]float64)

	for _, t := range m.Objective.Terms() {
		c, evErr := evalCoeff(t.Coeff, feed)
		if evErr != nil {
			return nil, nil, 0, evErr
		}
		idxs := t.Product.Indices()
		switch len(idxs) {
		case 0:
			offset += c
		case 1:
			linear[m.Registry.Name(idxs[0])] += c
		case 2:
			key := [2]string{m.Registry.Name(idxs[0]), m.Registry.Name(idxs[1])}
			quadratic[key] += c
		default:
			return nil, nil, 0, qerr.NewInvalidArgument(
				"quadratization must run before BQM emission",
				fmt.Sprintf("term degree %d", len(idxs)))
		}
	}
	return linear, quadratic, offset, nil
}

// ToBQMParametersIndexed is the supplemented index_label=true form
// from the original binding: same parameters, keyed by registry index
// instead of name.
func (m *Model) ToBQMParametersIndexed(feed map[string]float64) (linear map[int]float64, quadratic map[[2]int]float64, offset float64, err error) {
	linear = make(map[int]float64)
	quadratic = make(map[[2]int]float64)

	for _, t := range m.Objective.Terms() {
		c, evErr := evalCoeff(t.Coeff, feed)
		if evErr != nil {
			return nil, nil, 0, evErr
		}
		idxs := t.Product.Indices()
		switch len(idxs) {
		case 0:
			offset += c
		case 1:
			linear[idxs[0]] += c
		case 2:
			quadratic[[2]int{idxs[0], idxs[1]}] += c
		default:
			return nil, nil, 0, qerr.NewInvalidArgument(
				"quadratization must run before BQM emission",
				fmt.Sprintf("term degree %d", len(idxs)))
		}
	}
	return linear, quadratic, offset, nil
}

// ToDenseQUBO lays the BQM parameters out as a dense symmetric matrix
// over every registered variable (including auxiliaries), the shape a
// matrix-based solver expects. Off-diagonal coefficients are split
// c/2 + c/2 across the two symmetric entries so that x^T Q x still
// sums to the same energy as the linear/quadratic maps.
func (m *Model) ToDenseQUBO(feed map[string]float64) (*mat.SymDense, []string, error) {
	linear, quadratic, _, err := m.ToBQMParameters(feed)
	if err != nil {
		return nil, nil, err
	}
	n := m.Registry.Len()
	sym := mat.NewSymDense(n, nil)
	for name, c := range linear {
		i, _ := m.Registry.Lookup(name)
		sym.SetSym(i, i, c)
	}
	for key, c := range quadratic {
		i, _ := m.Registry.Lookup(key[0])
		j, _ := m.Registry.Lookup(key[1])
		sym.SetSym(i, j, c/2)
	}
	return sym, m.Registry.Names(), nil
}

func normalizeSample(sample map[string]int, vartype Vartype) map[string]int {
	if vartype == BinaryVartype {
		return sample
	}
	out := make(map[string]int, len(sample))
	for k, v := range sample {
		out[k] = (v + 1) / 2
	}
	return out
}

// resolve looks up name in a binary-normalized sample, falling back to
// the product of its components when name is an unsampled auxiliary
// variable introduced by quadratization (spec §4.6).
func (m *Model) resolve(name string, norm map[string]int, visiting map[string]bool) (int, error) {
	if v, ok := norm[name]; ok {
		return v, nil
	}
	if def, ok := m.AuxDefs[name]; ok {
		if visiting[name] {
			return 0, qerr.NewInternalInvariant("cyclic auxiliary definition", name)
		}
		visiting[name] = true
		a, err := m.resolve(def[0], norm, visiting)
		if err != nil {
			return 0, err
		}
		b, err := m.resolve(def[1], norm, visiting)
		if err != nil {
			return 0, err
		}
		delete(visiting, name)
		return a * b, nil
	}
	return 0, qerr.NewInvalidArgument("sample is missing a variable", name)
}

func (m *Model) evalEnergy(p poly.Polynomial, norm map[string]int, feed map[string]float64) (float64, error) {
	total := 0.0
	for _, t := range p.Terms() {
		c, err := evalCoeff(t.Coeff, feed)
		if err != nil {
			return 0, err
		}
		product := 1
		for _, idx := range t.Product.Indices() {
			v, err := m.resolve(m.Registry.Name(idx), norm, make(map[string]bool))
			if err != nil {
				return 0, err
			}
			product *= v
		}
		total += c * float64(product)
	}
	return total, nil
}

// Energy evaluates the compiled objective against sample.
func (m *Model) Energy(sample map[string]int, vartype Vartype, feed map[string]float64) (float64, error) {
	return m.evalEnergy(m.Objective, normalizeSample(sample, vartype), feed)
}

// ConstraintResult is one constraint's decoded status.
type ConstraintResult struct {
	Satisfied bool
	Energy    float64
}

// Solution is the decoded form of one sample: its total energy and
// the per-constraint satisfaction status.
type Solution struct {
	Sample            map[string]int
	EnergyValue       float64
	ConstraintResults map[string]ConstraintResult
}

func (s *Solution) Energy() float64 { return s.EnergyValue }

// Constraints returns every constraint result, or only the broken
// ones (Satisfied == false) when onlyBroken is set.
func (s *Solution) Constraints(onlyBroken bool) map[string]ConstraintResult {
	out := make(map[string]ConstraintResult)
	for name, r := range s.ConstraintResults {
		if onlyBroken && r.Satisfied {
			continue
		}
		out[name] = r
	}
	return out
}

// DecodeSample computes sample's total energy and evaluates every
// named constraint's predicate against its decoded value.
func (m *Model) DecodeSample(sample map[string]int, vartype Vartype, feed map[string]float64) (*Solution, error) {
	norm := normalizeSample(sample, vartype)

	energy, err := m.evalEnergy(m.Objective, norm, feed)
	if err != nil {
		return nil, err
	}

	results := make(map[string]ConstraintResult, len(m.Constraints))
	for name, info := range m.Constraints {
		val, err := m.evalEnergy(info.Polynomial, norm, feed)
		if err != nil {
			return nil, err
		}
		results[name] = ConstraintResult{Satisfied: info.Predicate(val), Energy: val}
	}

	return &Solution{Sample: sample, EnergyValue: energy, ConstraintResults: results}, nil
}

// DecodeSamples decodes every sample and returns them sorted by
// energy ascending; the sort is stable on ties (spec invariant 8).
func (m *Model) DecodeSamples(samples []map[string]int, vartype Vartype, feed map[string]float64) ([]*Solution, error) {
	out := make([]*Solution, 0, len(samples))
	for _, s := range samples {
		sol, err := m.DecodeSample(s, vartype, feed)
		if err != nil {
			return nil, err
		}
		out = append(out, sol)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EnergyValue < out[j].EnergyValue })
	return out, nil
}
