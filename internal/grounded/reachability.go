// Package grounded implements spec.md §4.6's grounded applicable-action
// generator: a one-time delete-relaxed forward reachability precompute
// that grounds every possibly-reachable action and axiom in full, feeding
// the result to an internal/matchtree index for O(depth) per-state
// queries instead of a per-state binding search.
package grounded

import (
	"mimir/internal/axiom"
	"mimir/internal/formalism"
	"mimir/internal/lifted"
	"mimir/internal/logging"
	"mimir/internal/matchtree"
	"mimir/internal/state"
)

// Reachability is the precompute phase's output: the full ground-action
// set and its match tree, plus one match tree per axiom stratum (spec.md
// §4.6: "analogously for axioms — one match tree per stratum").
type Reachability struct {
	Actions []*formalism.GroundAction
	Tree    *matchtree.Tree

	AxiomTrees []*matchtree.Tree // indexed by stratum
}

// Precompute runs delete-relaxed forward reachability from problem's
// initial state: fluent atoms only ever accumulate (no effect ever
// deletes during relaxation), so the loop is monotone and guaranteed to
// terminate once no schema can add a new atom. Every ground action built
// along the way (stored in each schema generator's grounding cache) is
// kept — "relaxation is only a filter on which actions exist", not a
// simplification of their effects (spec.md §4.6).
func Precompute(repo *formalism.Repository, problem *formalism.Problem, schemas []*formalism.ActionSchema, axioms *axiom.Evaluator, cfg matchtree.Config) *Reachability {
	log := logging.For(logging.CategoryGrounding)

	generators := make([]*lifted.Generator, len(schemas))
	for i, s := range schemas {
		generators[i] = lifted.NewGenerator(repo, problem, s)
	}

	fluent := state.NewBitset()
	for _, a := range problem.InitialFluentAtoms {
		idx := repo.InternGroundAtom(formalism.Fluent, a)
		fluent.Set(int(idx))
	}

	for {
		derived := state.NewBitset()
		if axioms != nil {
			derived = axioms.Evaluate(fluent)
		}
		relaxed := state.Packed{Fluent: fluent, Derived: derived, Numeric: make([]float64, repo.NumGroundFunctionTerms())}

		changed := false
		for _, g := range generators {
			for _, act := range g.Generate(relaxed) {
				for _, ce := range act.Effects {
					for _, ae := range ce.AtomEffects {
						if !ae.Add {
							continue
						}
						idx := repo.InternGroundAtom(formalism.Fluent, ae.Atom)
						if !fluent.Test(int(idx)) {
							fluent.Set(int(idx))
							changed = true
						}
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	var all []*formalism.GroundAction
	for _, g := range generators {
		all = append(all, g.CachedActions()...)
	}

	tree := matchtree.Build(repo, toIndexable(all), cfg)

	var axiomTrees []*matchtree.Tree
	if axioms != nil {
		axiomTrees = make([]*matchtree.Tree, axioms.NumStrata())
		for si := range axiomTrees {
			axiomTrees[si] = matchtree.Build(repo, toIndexableAxioms(axioms.StratumAxioms(si)), cfg)
		}
	}

	log.Info("delete-relaxed reachability complete")
	return &Reachability{Actions: all, Tree: tree, AxiomTrees: axiomTrees}
}

func toIndexable(actions []*formalism.GroundAction) []matchtree.Indexable {
	out := make([]matchtree.Indexable, len(actions))
	for i, a := range actions {
		out[i] = a
	}
	return out
}

func toIndexableAxioms(axioms []*formalism.GroundAxiom) []matchtree.Indexable {
	out := make([]matchtree.Indexable, len(axioms))
	for i, a := range axioms {
		out[i] = a
	}
	return out
}
