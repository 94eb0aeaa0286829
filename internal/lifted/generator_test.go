package lifted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimir/internal/formalism"
	"mimir/internal/index"
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

func TestGeneratorProducesApplicableBinding(t *testing.T) {
	repo, problem, schema := buildMoveProblem(t)
	problem.InternStaticExtension()

	sr := state.NewRepository(repo, nil)
	s0 := sr.InitialState(problem)

	gen := NewGenerator(repo, problem, schema)
	actions := gen.Generate(s0)
	require.Len(t, actions, 1, "expected exactly 1 applicable ground action")

	act := actions[0]
	require.Len(t, act.Binding, 2, "expected binding of arity 2")

	a, ok := repo.ObjectByName("a")
	require.True(t, ok)
	assert.Equal(t, a, act.Binding[0], "expected x=a")
}

func TestGeneratorCachesGroundActionsByBinding(t *testing.T) {
	repo, problem, schema := buildMoveProblem(t)
	problem.InternStaticExtension()
	sr := state.NewRepository(repo, nil)
	s0 := sr.InitialState(problem)

	gen := NewGenerator(repo, problem, schema)
	first := gen.Generate(s0)
	second := gen.Generate(s0)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Same(t, first[0], second[0], "expected the same *GroundAction pointer to be returned from the grounding cache")
}
