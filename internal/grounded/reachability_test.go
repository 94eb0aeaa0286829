package grounded

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mimir/internal/axiom"
	"mimir/internal/formalism"
	"mimir/internal/index"
	"mimir/internal/matchtree"
	"mimir/internal/state"
)

func buildMoveProblem(t *testing.T) (*formalism.Repository, *formalism.Problem, *formalism.ActionSchema) {
	t.Helper()
	repo := formalism.NewRepository()
	on := repo.InternPredicate("on", 2, formalism.Fluent)
	clear := repo.InternPredicate("clear", 1, formalism.Fluent)
	a := repo.InternObject("a", nil)
	b := repo.InternObject("b", nil)
	c := repo.InternObject("c", nil)

	schema := &formalism.ActionSchema{
		Name: "move",
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
		Effects: []formalism.ConditionalEffect{
			{
				Effect: formalism.ConjunctiveEffect{
					AtomEffects: []formalism.AtomEffect{
						{Atom: formalism.Atom{Predicate: on, Terms: []formalism.Term{formalism.VariableTerm(0), formalism.VariableTerm(1)}}, Add: false},
						{Atom: formalism.Atom{Predicate: clear, Terms: []formalism.Term{formalism.VariableTerm(1)}}, Add: true},
					},
				},
			},
		},
	}
	repo.AddActionSchema(*schema)

	problem := &formalism.Problem{
		Repo:    repo,
		Objects: []index.Index{a, b, c},
		InitialFluentAtoms: []formalism.GroundAtom{
			{Predicate: on, Objects: []index.Index{a, b}},
		},
	}
	return repo, problem, schema
}

func TestPrecomputeFindsReachableActionAndQueryAgrees(t *testing.T) {
	repo, problem, schema := buildMoveProblem(t)
	problem.InternStaticExtension()

	ax := axiom.NewEvaluator(repo, problem)
	r := Precompute(repo, problem, []*formalism.ActionSchema{schema}, ax, matchtree.DefaultConfig())
	require.NotEmpty(t, r.Actions, "expected at least one reachable ground action")

	sr := state.NewRepository(repo, ax)
	s0 := sr.InitialState(problem)

	gen := NewActionGenerator(repo, r)
	got := gen.Generate(s0)
	require.Len(t, got, 1, "expected exactly 1 applicable action in the initial state")
}
