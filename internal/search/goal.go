package search

import (
	"mimir/internal/formalism"
	"mimir/internal/index"
	"mimir/internal/state"
)

// conditionHolds evaluates an arity-0 ConjunctiveCondition (the problem
// goal, or any other ground-level condition with no free parameters — its
// Atom/FunctionTerm terms are all objects, never variables) against a
// packed state. This mirrors internal/state.Repository's ground-action
// condition evaluator, but operates on the lifted formalism.Literal/
// formalism.NumericExpr shapes rather than their Ground* counterparts,
// since the goal is compiled by internal/translate at an empty scope and
// never ground into a GroundAction-style precondition.
func conditionHolds(repo *formalism.Repository, s state.Packed, cc *formalism.ConjunctiveCondition) bool {
	for cat := formalism.Static; cat <= formalism.Derived; cat++ {
		for _, lit := range cc.Literals[cat] {
			if !literalHolds(repo, s, cat, lit) {
				return false
			}
		}
		for _, gl := range cc.NullaryLiterals[cat] {
			if atomHolds(repo, s, cat, gl.Atom) != gl.Positive {
				return false
			}
		}
	}
	for _, nc := range cc.Numeric {
		if !numericConstraintHolds(repo, s, nc) {
			return false
		}
	}
	return true
}

func literalHolds(repo *formalism.Repository, s state.Packed, cat formalism.Category, lit formalism.Literal) bool {
	return atomHolds(repo, s, cat, groundifyAtom(lit.Atom)) == lit.Positive
}

func groundifyAtom(a formalism.Atom) formalism.GroundAtom {
	objs := make([]index.Index, len(a.Terms))
	for i, t := range a.Terms {
		objs[i] = t.Object
	}
	return formalism.GroundAtom{Predicate: a.Predicate, Objects: objs}
}

func atomHolds(repo *formalism.Repository, s state.Packed, cat formalism.Category, atom formalism.GroundAtom) bool {
	switch cat {
	case formalism.Static:
		return repo.StaticAtomHolds(atom)
	case formalism.Fluent:
		idx, ok := repo.GroundAtomIndex(formalism.Fluent, atom)
		return ok && s.Fluent.Test(int(idx))
	default:
		idx, ok := repo.GroundAtomIndex(formalism.Derived, atom)
		return ok && s.Derived.Test(int(idx))
	}
}

func numericConstraintHolds(repo *formalism.Repository, s state.Packed, nc formalism.NumericConstraint) bool {
	l := evalNumericExpr(repo, s, nc.Left)
	r := evalNumericExpr(repo, s, nc.Right)
	switch nc.Comparator {
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

func evalNumericExpr(repo *formalism.Repository, s state.Packed, e formalism.NumericExpr) float64 {
	switch v := e.(type) {
	case formalism.Constant:
		return v.Value
	case formalism.FunctionValue:
		objs := make([]index.Index, len(v.Term.Terms))
		for i, t := range v.Term.Terms {
			objs[i] = t.Object
		}
		idx := repo.InternGroundFunctionTerm(formalism.GroundFunctionTerm{Function: v.Term.Function, Objects: objs})
		if int(idx) >= len(s.Numeric) {
			return 0
		}
		return s.Numeric[idx]
	case formalism.BinaryExpr:
		l := evalNumericExpr(repo, s, v.Left)
		r := evalNumericExpr(repo, s, v.Right)
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

// countSatisfied counts how many of cc's literals/nullary-literals/numeric
// constraints independently hold in s — spec.md §4.9's "ProblemGoalCounter
// ... tracks how many goal atoms a state satisfies". Unlike conditionHolds
// this never short-circuits, since SIW needs the count, not just the bool.
func countSatisfied(repo *formalism.Repository, s state.Packed, cc *formalism.ConjunctiveCondition) int {
	n := 0
	for cat := formalism.Static; cat <= formalism.Derived; cat++ {
		for _, lit := range cc.Literals[cat] {
			if literalHolds(repo, s, cat, lit) {
				n++
			}
		}
		for _, gl := range cc.NullaryLiterals[cat] {
			if atomHolds(repo, s, cat, gl.Atom) == gl.Positive {
				n++
			}
		}
	}
	for _, nc := range cc.Numeric {
		if numericConstraintHolds(repo, s, nc) {
			n++
		}
	}
	return n
}

func totalAtoms(cc *formalism.ConjunctiveCondition) int {
	n := len(cc.Numeric)
	for cat := formalism.Static; cat <= formalism.Derived; cat++ {
		n += len(cc.Literals[cat]) + len(cc.NullaryLiterals[cat])
	}
	return n
}

// ProblemGoalCounter implements SIW's "counter" goal strategy (spec.md
// §4.9): IsGoal reports whether every goal atom holds (same truth value as
// DefaultGoalStrategy), while Count exposes the partial-satisfaction
// number SIW's restart rule needs.
type ProblemGoalCounter struct {
	Repo    *formalism.Repository
	Problem *formalism.Problem
}

func (c ProblemGoalCounter) Count(s state.Packed) int { return countSatisfied(c.Repo, s, &c.Problem.Goal) }

func (c ProblemGoalCounter) Total() int { return totalAtoms(&c.Problem.Goal) }

func (c ProblemGoalCounter) IsGoal(s state.Packed) bool { return c.Count(s) >= c.Total() }
