// Package translate implements spec.md §3's Translator Pipeline: it turns
// internal/frontend's raw parsed PDDL into the category-split, NNF'd,
// parameter-indexed formalism.Domain/formalism.Problem the core engine
// operates on — negation-normal-form conversion, disjunction/quantifier
// elimination via fresh derived-predicate (axiom) introduction,
// conditional-effect splitting, and parameter-index encoding.
package translate

import (
	"fmt"

	"mimir/internal/formalism"
	"mimir/internal/frontend"
	"mimir/internal/index"
)

// scope resolves variable names to their local Term.Variable slot — a
// position in the enclosing schema or axiom's own Parameters slice, per
// spec.md §3's "a variable carries ... a parameter index ... so that
// grounding reduces to indexing". Quantifier elimination introduces a new
// axiom with its own Parameters list (outer parameters copied first, the
// quantified variable(s) appended), so a fresh scope is built per axiom.
type scope struct {
	repo     *formalism.Repository
	params   []formalism.Variable
	varIndex map[string]int
	fresh    *int

	// overrides binds a (forall ...) effect variable directly to a concrete
	// object for one object-combination instantiation (see effect.go); it
	// shadows varIndex, mirroring PDDL's variable-shadowing rule.
	overrides map[string]index.Index
}

func newScope(repo *formalism.Repository, params []formalism.Variable, fresh *int) *scope {
	idx := make(map[string]int, len(params))
	for _, p := range params {
		idx[p.Name] = p.ParameterIndex
	}
	return &scope{repo: repo, params: params, varIndex: idx, fresh: fresh}
}

// withOverrides returns a child scope identical to sc but resolving each
// name in names directly to the corresponding object in objs, ahead of
// varIndex — used to flatten a (forall ...) effect into one concrete
// effect per object combination at translation time.
func (s *scope) withOverrides(names []string, objs []index.Index) *scope {
	merged := make(map[string]index.Index, len(names))
	for k, v := range s.overrides {
		merged[k] = v
	}
	for i, n := range names {
		merged[n] = objs[i]
	}
	return &scope{repo: s.repo, params: s.params, varIndex: s.varIndex, fresh: s.fresh, overrides: merged}
}

func (s *scope) freshName(prefix string) string {
	*s.fresh++
	return fmt.Sprintf("__%s%d", prefix, *s.fresh)
}

func resolveTypes(repo *formalism.Repository, names []string) []index.Index {
	out := make([]index.Index, len(names))
	for i, n := range names {
		out[i] = repo.InternType(n, index.MaxIndex)
	}
	return out
}

func rawParamsToVariables(repo *formalism.Repository, raw []frontend.RawParam) []formalism.Variable {
	out := make([]formalism.Variable, len(raw))
	for i, p := range raw {
		out[i] = formalism.Variable{
			Index:          index.Index(i),
			Name:           p.Name,
			ParameterIndex: i,
			Types:          resolveTypes(repo, p.Types),
		}
	}
	return out
}

// resolveTerm looks up a PDDL symbol as a variable first (schema/axiom
// parameter or quantified variable), then as an interned object/constant.
func (s *scope) resolveTerm(name string) (formalism.Term, error) {
	if obj, ok := s.overrides[name]; ok {
		return formalism.ObjectTerm(obj), nil
	}
	if pos, ok := s.varIndex[name]; ok {
		return formalism.VariableTerm(index.Index(pos)), nil
	}
	if obj, ok := s.repo.ObjectByName(name); ok {
		return formalism.ObjectTerm(obj), nil
	}
	return formalism.Term{}, fmt.Errorf("translate: unresolved symbol %q", name)
}
