// Package axiom implements spec.md §4.7's stratified axiom evaluator:
// derived predicates are grouped into strata by strongly-connected
// component and ordered topologically over their dependency graph (via
// github.com/google/mangle/go/topological, the same package the teacher's
// pkg/mangle shim re-exports), then evaluated stratum by stratum, each to
// its own fixpoint, so a later stratum never needs to re-derive an earlier
// one's atoms.
package axiom

import (
	"go.uber.org/zap"

	"mimir/internal/formalism"
	"mimir/internal/index"
	"mimir/internal/logging"
	"mimir/internal/state"
)

// Evaluator implements state.AxiomEvaluator. It is computed once per
// problem (spec.md: "stratification is computed once per problem, not per
// state") and then invoked on every successor's fluent bitset.
type Evaluator struct {
	repo       *formalism.Repository
	strata     [][]*groundGenerator // one slice of generators per stratum
	stratumIDs [][]index.Index      // parallel: predicate indices per stratum, for logging
	log        *logging.Logger
}

// NewEvaluator stratifies problem's axioms and builds a ground generator
// per axiom, grouped by stratum.
func NewEvaluator(repo *formalism.Repository, problem *formalism.Problem) *Evaluator {
	dg := buildDependencyGraph(repo, repo.Axioms)
	predStrata := dg.strata()

	predToStratum := make(map[index.Index]int)
	for si, preds := range predStrata {
		for _, p := range preds {
			predToStratum[p] = si
		}
	}

	generators := make([][]*groundGenerator, len(predStrata))
	for i := range repo.Axioms {
		ax := &repo.Axioms[i]
		si := predToStratum[ax.Head.Predicate]
		generators[si] = append(generators[si], newGroundGenerator(repo, problem, ax))
	}

	return &Evaluator{
		repo:       repo,
		strata:     generators,
		stratumIDs: predStrata,
		log:        logging.For(logging.CategoryAxiom),
	}
}

// Evaluate computes the derived-atom bitset to fixpoint for the given
// fluent bitset, stratum by stratum (spec.md §4.7).
func (e *Evaluator) Evaluate(fluent state.Bitset) state.Bitset {
	derived := state.NewBitset()
	for si, gens := range e.strata {
		e.fixpointStratum(fluent, &derived, gens)
		e.log.Debug("stratum evaluated", zap.Int("stratum", si), zap.Int("derived_atoms", derived.Count()))
	}
	return derived
}

// NumStrata reports how many strata this evaluator's axioms were grouped
// into, for callers building one match tree per stratum.
func (e *Evaluator) NumStrata() int { return len(e.strata) }

// StratumAxioms returns every GroundAxiom stratum si's generators have
// produced so far. Meaningful only after Evaluate has been driven through
// a relaxed fixpoint (internal/grounded's precompute phase), since a
// generator's cache only grows as derive is called.
func (e *Evaluator) StratumAxioms(si int) []*formalism.GroundAxiom {
	var out []*formalism.GroundAxiom
	for _, g := range e.strata[si] {
		out = append(out, g.CachedAxioms()...)
	}
	return out
}

func (e *Evaluator) fixpointStratum(fluent state.Bitset, derived *state.Bitset, gens []*groundGenerator) {
	for {
		changed := false
		for _, g := range gens {
			for _, atom := range g.derive(fluent, *derived) {
				idx := e.repo.InternGroundAtom(formalism.Derived, atom)
				if !derived.Test(int(idx)) {
					derived.Set(int(idx))
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}
