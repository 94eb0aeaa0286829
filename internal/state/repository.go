package state

import (
	"fmt"

	"go.uber.org/zap"

	"mimir/internal/arena"
	"mimir/internal/formalism"
	"mimir/internal/index"
	"mimir/internal/logging"
	"mimir/internal/planerr"
)

func logFields(s Packed) []zap.Field {
	return []zap.Field{
		zap.Uint32("state_index", uint32(s.Index)),
		zap.Int("fluent_atoms", s.Fluent.Count()),
		zap.Int("derived_atoms", s.Derived.Count()),
	}
}

// AxiomEvaluator recomputes the derived-atom bitset to fixpoint from a
// fluent bitset (spec.md §4.7). Repository depends only on this narrow
// interface — not on the concrete axiom package — so that
// internal/axiom can in turn depend on internal/state's Bitset type
// without an import cycle.
type AxiomEvaluator interface {
	Evaluate(fluent Bitset) Bitset
}

// Repository is the state repository of spec.md §4.8: it creates
// initial/successor states, caches them by content address, evaluates
// axioms, and applies numeric effects.
type Repository struct {
	repo    *formalism.Repository
	axioms  AxiomEvaluator
	hashset *arena.HashSet
	// packed view of every stored state, by state index, recorded when the
	// state is first inserted, so lookups never decode hashset bytes.
	decoded []Packed
	log     *logging.Logger
}

// NewRepository creates a state repository for one problem. axioms may be
// nil for axiom-free domains, in which case the derived bitset is always
// empty.
func NewRepository(repo *formalism.Repository, axioms AxiomEvaluator) *Repository {
	return &Repository{
		repo:    repo,
		axioms:  axioms,
		hashset: arena.NewHashSet(),
		log:     logging.For(logging.CategoryState),
	}
}

func (r *Repository) evaluateDerived(fluent Bitset) Bitset {
	if r.axioms == nil {
		return NewBitset()
	}
	return r.axioms.Evaluate(fluent)
}

func (r *Repository) insert(fluent, derived Bitset, numeric []float64) Packed {
	raw := encode(fluent, derived, numeric)
	idx := r.hashset.Insert(raw)
	if int(idx) == len(r.decoded) {
		r.decoded = append(r.decoded, Packed{Index: index.Index(idx), Fluent: fluent, Derived: derived, Numeric: numeric})
	}
	return r.decoded[idx]
}

// InitialState builds the initial packed state of problem: fluent bits from
// InitialFluentAtoms, numeric variables from InitialNumericInits, and
// derived bits from the axiom evaluator's fixpoint (spec.md §4.8).
func (r *Repository) InitialState(problem *formalism.Problem) Packed {
	var fluent Bitset
	for _, a := range problem.InitialFluentAtoms {
		idx := r.repo.InternGroundAtom(formalism.Fluent, a)
		fluent.Set(int(idx))
	}

	numeric := make([]float64, r.repo.NumGroundFunctionTerms())
	for _, init := range problem.InitialNumericInits {
		idx := r.repo.InternGroundFunctionTerm(init.Term)
		for int(idx) >= len(numeric) {
			numeric = append(numeric, 0)
		}
		numeric[idx] = init.Value
	}

	derived := r.evaluateDerived(fluent)
	s := r.insert(fluent, derived, numeric)
	r.log.Info("initial state constructed", logFields(s)...)
	return s
}

// View returns the packed state stored at idx. The returned value is a
// logical copy of the stored bitsets/array but its backing storage will
// never be mutated by the repository (spec.md §3 Ownership).
func (r *Repository) View(idx index.Index) Packed { return r.decoded[idx] }

// Successor computes the successor state of applying action in state,
// returning the new (possibly already-cached) packed state and the
// action's cost (spec.md §4.8 "Successor construction").
func (r *Repository) Successor(s Packed, action *formalism.GroundAction) (Packed, float64, error) {
	fluent := s.Fluent.Clone()
	numeric := append([]float64(nil), s.Numeric...)

	applyAtomEffects(&fluent, r.repo, action.Effects, func(ce *formalism.GroundConditionalEffect) bool {
		return conditionHolds(r.repo, s, ce.StaticLiterals, ce.FluentLiterals, ce.DerivedLiterals, ce.Numeric, numeric)
	})

	for _, ce := range action.Effects {
		if !conditionHolds(r.repo, s, ce.StaticLiterals, ce.FluentLiterals, ce.DerivedLiterals, ce.Numeric, numeric) {
			continue
		}
		grown, err := applyNumericEffects(numeric, ce.NumericEffects)
		if err != nil {
			return Packed{}, 0, planerr.NumericEvaluation(fmt.Sprintf("action %d", action.Index), "%w", err)
		}
		numeric = grown
	}

	derived := r.evaluateDerived(fluent)
	out := r.insert(fluent, derived, numeric)
	return out, action.Cost, nil
}

func applyAtomEffects(fluent *Bitset, repo *formalism.Repository, effects []formalism.GroundConditionalEffect, holds func(*formalism.GroundConditionalEffect) bool) {
	for i := range effects {
		ce := &effects[i]
		if !holds(ce) {
			continue
		}
		for _, ae := range ce.AtomEffects {
			idx := repo.InternGroundAtom(formalism.Fluent, ae.Atom)
			if ae.Add {
				fluent.Set(int(idx))
			} else {
				fluent.Clear(int(idx))
			}
		}
	}
}

func conditionHolds(repo *formalism.Repository, s Packed, static, fluentLits, derivedLits []formalism.GroundLiteral, numeric []formalism.GroundNumericConstraint, numericVars []float64) bool {
	for _, l := range static {
		// Static truth is fixed by the problem; static literals are not
		// evaluated here, this loop skips them.
		_ = l // static literals are pre-filtered at grounding time (see internal/lifted)
	}
	for _, l := range fluentLits {
		idx := repo.InternGroundAtom(formalism.Fluent, l.Atom)
		if s.Fluent.Test(int(idx)) != l.Positive {
			return false
		}
	}
	for _, l := range derivedLits {
		idx := repo.InternGroundAtom(formalism.Derived, l.Atom)
		if s.Derived.Test(int(idx)) != l.Positive {
			return false
		}
	}
	for _, c := range numeric {
		if !evalNumericConstraint(c, numericVars) {
			return false
		}
	}
	return true
}

func applyNumericEffects(numeric []float64, effects []formalism.GroundNumericEffect) ([]float64, error) {
	touched := make(map[index.Index]formalism.NumericAssignOp)
	for _, e := range effects {
		idx := e.Target
		family := effectFamily(e.Op)
		if prev, ok := touched[idx]; ok && effectFamily(prev) != family {
			return numeric, fmt.Errorf("mixed numeric effect families on the same function in one action")
		}
		touched[idx] = e.Op

		v := evalGroundExpr(e.Expr, numeric)
		for int(idx) >= len(numeric) {
			numeric = append(numeric, 0)
		}
		switch e.Op {
		case formalism.AssignSet:
			numeric[idx] = v
		case formalism.AssignIncrease:
			numeric[idx] += v
		case formalism.AssignDecrease:
			numeric[idx] -= v
		case formalism.AssignScaleUp:
			numeric[idx] *= v
		case formalism.AssignScaleDown:
			if v == 0 {
				return numeric, fmt.Errorf("division by zero in scale-down effect")
			}
			numeric[idx] /= v
		}
	}
	return numeric, nil
}

// effectFamily groups the five NumericAssignOp values into the two mutually
// exclusive families spec.md §4.8 step 3 forbids mixing within one action:
// additive (increase/decrease) and multiplicative (scale-up/scale-down).
// AssignSet is its own family since overwriting never composes with either.
func effectFamily(op formalism.NumericAssignOp) int {
	switch op {
	case formalism.AssignIncrease, formalism.AssignDecrease:
		return 1
	case formalism.AssignScaleUp, formalism.AssignScaleDown:
		return 2
	default:
		return 0
	}
}

func evalGroundExpr(e formalism.GroundNumericExpr, numeric []float64) float64 {
	switch v := e.(type) {
	case formalism.GroundConstant:
		return v.Value
	case formalism.GroundFunctionValue:
		idx := v.Slot
		if int(idx) >= len(numeric) {
			return 0
		}
		return numeric[idx]
	case formalism.GroundBinaryExpr:
		l := evalGroundExpr(v.Left, numeric)
		r := evalGroundExpr(v.Right, numeric)
		switch v.Op {
		case formalism.OpAdd:
			return l + r
		case formalism.OpSub:
			return l - r
		case formalism.OpMul:
			return l * r
		case formalism.OpDiv:
			return l / r
		}
	}
	return 0
}

func evalNumericConstraint(c formalism.GroundNumericConstraint, numeric []float64) bool {
	l := evalGroundExpr(c.Left, numeric)
	r := evalGroundExpr(c.Right, numeric)
	switch c.Comparator {
	case formalism.CmpLE:
		return l <= r
	case formalism.CmpLT:
		return l < r
	case formalism.CmpEQ:
		return l == r
	case formalism.CmpGE:
		return l >= r
	case formalism.CmpGT:
		return l > r
	case formalism.CmpNE:
		return l != r
	}
	return false
}
