// Package quadratize implements the Quadratizer: a greedy rewriter
// that reduces a polynomial to degree <= 2 by repeatedly substituting
// the most-frequent variable pair with an auxiliary variable and
// emitting the standard Rosenberg enforcing penalty. Grounded
// line-for-line on pyquboc's compiler.hpp (find_replacing_pair,
// convert_to_quadratic), with the pair tie-break pinned to
// lexicographic (i,j) order per spec §9 since Go map iteration order
// is not stable the way the original's std::map scan is.
package quadratize

import (
	"sort"

	"qubocompile/internal/ast"
	"qubocompile/internal/poly"
	"qubocompile/internal/registry"
)

type pair struct{ i, j int }

// findReplacingPair scans every term of degree >= 3, counts every
// unordered index pair it contains, and returns the pair with the
// largest count, breaking ties by first occurrence in (i,j)
// lexicographic order. Returns found=false once no term has degree
// >= 3, which is the algorithm's termination condition.
func findReplacingPair(p poly.Polynomial) (result pair, found bool) {
	counts := make(map[pair]int)
	for _, t := range p.Terms() {
		idxs := t.Product.Indices()
		if len(idxs) <= 2 {
			continue
		}
		for a := 0; a < len(idxs)-1; a++ {
			for b := a + 1; b < len(idxs); b++ {
				counts[pair{idxs[a], idxs[b]}]++
			}
		}
	}
	if len(counts) == 0 {
		return pair{}, false
	}

	keys := make([]pair, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].i != keys[b].i {
			return keys[a].i < keys[b].i
		}
		return keys[a].j < keys[b].j
	})

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	for _, k := range keys {
		if counts[k] == maxCount {
			return k, true
		}
	}
	return pair{}, false // unreachable: keys is non-empty
}

// Quadratize reduces p to degree <= 2, mutating reg with one new
// auxiliary variable per substitution. It also returns, for every
// auxiliary it introduced, the pair of variable names it stands for —
// used by model.Energy to resolve an auxiliary absent from a sample
// as the product of its components, without relying on parsing the
// aux variable's "<a> * <b>" display name back apart (spec §9 warns
// that form is not guaranteed reserved).
//
// auxPrefix, when non-empty, is prepended as "<auxPrefix>:" to every
// introduced auxiliary's registered name (the SPEC_FULL opt-in
// namespacing option); the empty string gives the spec's default
// "<nameA> * <nameB>" form.
func Quadratize(p poly.Polynomial, strength float64, reg *registry.VariableRegistry, auxPrefix string) (poly.Polynomial, map[string][2]string) {
	result := p
	auxDefs := make(map[string][2]string)

	for {
		pr, found := findReplacingPair(result)
		if !found {
			break
		}

		nameI := reg.Name(pr.i)
		nameJ := reg.Name(pr.j)
		auxName := nameI + " * " + nameJ
		if auxPrefix != "" {
			auxName = auxPrefix + ":" + auxName
		}
		k := reg.Index(auxName)
		auxDefs[auxName] = [2]string{nameI, nameJ}

		next := poly.New()
		for _, t := range result.Terms() {
			if t.Product.Contains(pr.i) && t.Product.Contains(pr.j) {
				idxs := t.Product.Indices()
				newIdx := make([]int, 0, len(idxs))
				for _, v := range idxs {
					if v != pr.i && v != pr.j {
						newIdx = append(newIdx, v)
					}
				}
				newIdx = append(newIdx, k)
				next = next.AddTerm(poly.NewProduct(newIdx), t.Coeff)
			} else {
				next = next.AddTerm(t.Product, t.Coeff)
			}
		}

		// Rosenberg penalty: s*(xy - 2xk - 2yk + 3k), zero iff k = xy.
		next = next.AddTerm(poly.NewProduct([]int{k}), ast.Lit(strength*3))
		next = next.AddTerm(poly.NewProduct([]int{pr.i, k}), ast.Lit(strength*-2))
		next = next.AddTerm(poly.NewProduct([]int{pr.j, k}), ast.Lit(strength*-2))
		next = next.AddTerm(poly.NewProduct([]int{pr.i, pr.j}), ast.Lit(strength*1))

		result = next
	}

	return result, auxDefs
}
