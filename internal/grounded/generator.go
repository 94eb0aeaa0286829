package grounded

import (
	"mimir/internal/formalism"
	"mimir/internal/index"
	"mimir/internal/matchtree"
	"mimir/internal/state"
)

// ActionGenerator answers per-state applicable-action queries against a
// precomputed match tree instead of re-running the lifted binding search
// (spec.md §4.6). Its applicable set is a subset of what lifted.Generator
// would find for the same state; it is only correct when state.Fluent
// never contains an atom outside the delete-relaxed reachable set the
// tree was built from.
type ActionGenerator struct {
	repo *formalism.Repository
	tree *matchtree.Tree
}

func NewActionGenerator(repo *formalism.Repository, r *Reachability) *ActionGenerator {
	return &ActionGenerator{repo: repo, tree: r.Tree}
}

// Generate returns every action whose ground precondition holds in s. Each
// match-tree hit has its fluent and derived literals re-checked (a leaf can
// hold elements whose literals were not all tested on the path to it) and
// its numeric constraints re-verified exactly, since the tree never splits
// on them (internal/matchtree's documented simplification).
func (g *ActionGenerator) Generate(s state.Packed) []*formalism.GroundAction {
	view := packedView{repo: g.repo, s: s}
	hits := matchtree.Query(g.tree, view)
	out := make([]*formalism.GroundAction, 0, len(hits))
	for _, h := range hits {
		act := h.(*formalism.GroundAction)
		if literalsHold(g.repo, act, s) && numericConstraintsHold(act.NumericConstraints(), s.Numeric) {
			out = append(out, act)
		}
	}
	return out
}

// AxiomEvaluator recomputes the derived-atom bitset to fixpoint via
// per-stratum match-tree queries rather than per-state kpkc search,
// implementing state.AxiomEvaluator (spec.md §4.6 "analogously for
// axioms").
type AxiomEvaluator struct {
	repo   *formalism.Repository
	strata []*matchtree.Tree
}

func NewAxiomEvaluator(repo *formalism.Repository, r *Reachability) *AxiomEvaluator {
	return &AxiomEvaluator{repo: repo, strata: r.AxiomTrees}
}

func (e *AxiomEvaluator) Evaluate(fluent state.Bitset) state.Bitset {
	derived := state.NewBitset()
	for _, tree := range e.strata {
		e.fixpointStratum(fluent, &derived, tree)
	}
	return derived
}

func (e *AxiomEvaluator) fixpointStratum(fluent state.Bitset, derived *state.Bitset, tree *matchtree.Tree) {
	for {
		view := packedView{repo: e.repo, s: state.Packed{Fluent: fluent, Derived: *derived}}
		changed := false
		for _, h := range matchtree.Query(tree, view) {
			ax := h.(*formalism.GroundAxiom)
			if !literalsHold(e.repo, ax, view.s) {
				continue
			}
			idx := e.repo.InternGroundAtom(formalism.Derived, ax.Head)
			if !derived.Test(int(idx)) {
				derived.Set(int(idx))
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// packedView adapts a state.Packed to matchtree.StateView. Static atoms
// are always reported as holding: every action/axiom reaching the tree
// already had its static preconditions verified once at grounding time,
// and static facts never change within a problem, so re-checking them
// per state is redundant.
type packedView struct {
	repo *formalism.Repository
	s    state.Packed
}

func (v packedView) Holds(cat formalism.Category, atom index.Index) bool {
	switch cat {
	case formalism.Static:
		return true
	case formalism.Fluent:
		return v.s.Fluent.Test(int(atom))
	default:
		return v.s.Derived.Test(int(atom))
	}
}

func (v packedView) Numeric() []float64 { return v.s.Numeric }

// literalsHold reports whether every fluent and derived literal of e holds
// in s. Static literals are not checked here (see packedView).
func literalsHold(repo *formalism.Repository, e matchtree.Indexable, s state.Packed) bool {
	for _, cat := range []formalism.Category{formalism.Fluent, formalism.Derived} {
		bits := s.Fluent
		if cat == formalism.Derived {
			bits = s.Derived
		}
		for _, l := range e.Literals(cat) {
			idx, ok := repo.GroundAtomIndex(cat, l.Atom)
			if (ok && bits.Test(int(idx))) != l.Positive {
				return false
			}
		}
	}
	return true
}

func numericConstraintsHold(cs []formalism.GroundNumericConstraint, numeric []float64) bool {
	for _, c := range cs {
		if !evalGroundConstraint(c, numeric) {
			return false
		}
	}
	return true
}

// evalGroundConstraint/evalGroundExpr duplicate internal/lifted's and
// internal/matchtree's evaluators rather than exporting one shared copy:
// each package's copy is small, and a shared internal/numeric package
// would be a three-line abstraction serving three call sites that never
// change independently.
func evalGroundConstraint(c formalism.GroundNumericConstraint, numeric []float64) bool {
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

func evalGroundExpr(e formalism.GroundNumericExpr, numeric []float64) float64 {
	switch v := e.(type) {
	case formalism.GroundConstant:
		return v.Value
	case formalism.GroundFunctionValue:
		if int(v.Slot) >= len(numeric) {
			return 0
		}
		return numeric[v.Slot]
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
