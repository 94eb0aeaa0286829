package axiom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mimir/internal/formalism"
	"mimir/internal/index"
	"mimir/internal/state"
)

func TestEvaluatorDerivesTransitiveClosure(t *testing.T) {
	repo := formalism.NewRepository()
	on := repo.InternPredicate("on", 2, formalism.Fluent)
	above := repo.InternPredicate("above", 2, formalism.Derived)
	a := repo.InternObject("a", nil)
	b := repo.InternObject("b", nil)
	c := repo.InternObject("c", nil)

	axiom1 := formalism.Axiom{
		Parameters: []formalism.Variable{
			{Index: 0, Name: "?x", ParameterIndex: 0},
			{Index: 1, Name: "?y", ParameterIndex: 1},
		},
		Precondition: formalism.ConjunctiveCondition{
			Literals: [3][]formalism.Literal{
				formalism.Fluent: {
					{Positive: true, Atom: formalism.Atom{Predicate: on, Terms: []formalism.Term{formalism.VariableTerm(0), formalism.VariableTerm(1)}}},
				},
			},
		},
		Head: formalism.Atom{Predicate: above, Terms: []formalism.Term{formalism.VariableTerm(0), formalism.VariableTerm(1)}},
	}
	axiom2 := formalism.Axiom{
		Parameters: []formalism.Variable{
			{Index: 0, Name: "?x", ParameterIndex: 0},
			{Index: 1, Name: "?y", ParameterIndex: 1},
			{Index: 2, Name: "?z", ParameterIndex: 2},
		},
		Precondition: formalism.ConjunctiveCondition{
			Literals: [3][]formalism.Literal{
				formalism.Fluent: {
					{Positive: true, Atom: formalism.Atom{Predicate: on, Terms: []formalism.Term{formalism.VariableTerm(0), formalism.VariableTerm(2)}}},
				},
				formalism.Derived: {
					{Positive: true, Atom: formalism.Atom{Predicate: above, Terms: []formalism.Term{formalism.VariableTerm(2), formalism.VariableTerm(1)}}},
				},
			},
		},
		Head: formalism.Atom{Predicate: above, Terms: []formalism.Term{formalism.VariableTerm(0), formalism.VariableTerm(1)}},
	}
	repo.AddAxiom(axiom1)
	repo.AddAxiom(axiom2)

	problem := &formalism.Problem{
		Repo:    repo,
		Objects: []index.Index{a, b, c},
	}

	ev := NewEvaluator(repo, problem)

	var fluent state.Bitset
	onAB := repo.InternGroundAtom(formalism.Fluent, formalism.GroundAtom{Predicate: on, Objects: []index.Index{a, b}})
	onBC := repo.InternGroundAtom(formalism.Fluent, formalism.GroundAtom{Predicate: on, Objects: []index.Index{b, c}})
	fluent.Set(int(onAB))
	fluent.Set(int(onBC))

	derived := ev.Evaluate(fluent)

	check := func(x, y index.Index) bool {
		idx, ok := repo.GroundAtomIndex(formalism.Derived, formalism.GroundAtom{Predicate: above, Objects: []index.Index{x, y}})
		return ok && derived.Test(int(idx))
	}
	assert.True(t, check(a, b), "expected above(a,b)")
	assert.True(t, check(b, c), "expected above(b,c)")
	assert.True(t, check(a, c), "expected above(a,c) via transitive closure")
}
