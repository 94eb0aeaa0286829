package formalism

import "mimir/internal/index"

// Domain is the schema-level PDDL description: predicates, functions,
// action schemas and axioms, all interned in a shared Repository.
type Domain struct {
	Name string
	Repo *Repository
}

// NumericFluentInit is an initial numeric-function value assignment.
type NumericFluentInit struct {
	Term  GroundFunctionTerm
	Value float64
}

// Metric selects what A* optimizes: minimize or maximize an expression over
// numeric functions (spec.md §6 "action costs"). Mimir only needs Expr to
// compute a ground action's cost per spec.md §4.8 step 6; Minimize/Maximize
// distinguishes metric direction for front-ends that report it, though the
// search core always treats the resolved per-action Cost as something to
// minimize.
type Metric struct {
	Minimize bool
	Expr     NumericExpr // nil => unit-cost semantics
}

// Problem is a Domain plus objects, initial state facts, a goal condition,
// and an optional metric.
type Problem struct {
	Name   string
	Domain *Domain
	Repo   *Repository // == Domain.Repo; objects are interned into the same repository

	Objects []index.Index // domain constants, then the objects declared by this problem

	InitialStaticAtoms  []GroundAtom
	InitialFluentAtoms  []GroundAtom
	InitialNumericInits []NumericFluentInit

	Goal ConjunctiveCondition

	Metric *Metric // nil => unit-cost, no optimization target beyond plan existence
}

// InternStaticExtension registers every initial static atom in the shared
// repository's static ground-atom table, so later StaticAtomHolds lookups
// (used by grounding) can see them. Called once per problem, before any
// generator construction.
func (p *Problem) InternStaticExtension() {
	for _, a := range p.InitialStaticAtoms {
		p.Repo.InternGroundAtom(Static, a)
	}
}
