package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimir/internal/axiom"
	"mimir/internal/formalism"
	"mimir/internal/index"
	"mimir/internal/lifted"
	"mimir/internal/state"
)

// planNames extracts the ordered action-schema names of a plan, which is
// what every algorithm in this package should agree on for the corridor
// problem regardless of search order.
func planNames(repo *formalism.Repository, plan []*formalism.GroundAction) []string {
	names := make([]string, len(plan))
	for i, a := range plan {
		names[i] = repo.ActionSchemas[a.Schema].Name
	}
	return names
}

// buildCorridorProblem sets up a three-location corridor a -> b -> c with a
// single move action, reachable from a only by crossing b: a minimal
// multi-step planning problem exercising every search algorithm in this
// package without needing internal/grounded's match-tree precompute.
func buildCorridorProblem(t *testing.T) (*formalism.Repository, *formalism.Problem, *state.Repository, *lifted.Generator) {
	t.Helper()
	repo := formalism.NewRepository()
	at := repo.InternPredicate("at", 1, formalism.Fluent)
	adjacent := repo.InternPredicate("adjacent", 2, formalism.Static)
	a := repo.InternObject("a", nil)
	b := repo.InternObject("b", nil)
	c := repo.InternObject("c", nil)

	schema := &formalism.ActionSchema{
		Name: "move",
		Parameters: []formalism.Variable{
			{Index: 0, Name: "?from", ParameterIndex: 0},
			{Index: 1, Name: "?to", ParameterIndex: 1},
		},
		Precondition: formalism.ConjunctiveCondition{
			Literals: [3][]formalism.Literal{
				formalism.Static: {
					{Positive: true, Atom: formalism.Atom{Predicate: adjacent, Terms: []formalism.Term{formalism.VariableTerm(0), formalism.VariableTerm(1)}}},
				},
				formalism.Fluent: {
					{Positive: true, Atom: formalism.Atom{Predicate: at, Terms: []formalism.Term{formalism.VariableTerm(0)}}},
				},
			},
		},
		Effects: []formalism.ConditionalEffect{
			{
				Effect: formalism.ConjunctiveEffect{
					AtomEffects: []formalism.AtomEffect{
						{Atom: formalism.Atom{Predicate: at, Terms: []formalism.Term{formalism.VariableTerm(0)}}, Add: false},
						{Atom: formalism.Atom{Predicate: at, Terms: []formalism.Term{formalism.VariableTerm(1)}}, Add: true},
					},
				},
			},
		},
	}
	repo.AddActionSchema(*schema)

	problem := &formalism.Problem{
		Repo:    repo,
		Objects: []index.Index{a, b, c},
		InitialStaticAtoms: []formalism.GroundAtom{
			{Predicate: adjacent, Objects: []index.Index{a, b}},
			{Predicate: adjacent, Objects: []index.Index{b, c}},
		},
		InitialFluentAtoms: []formalism.GroundAtom{
			{Predicate: at, Objects: []index.Index{a}},
		},
		Goal: formalism.ConjunctiveCondition{
			Literals: [3][]formalism.Literal{
				formalism.Fluent: {
					{Positive: true, Atom: formalism.Atom{Predicate: at, Terms: []formalism.Term{formalism.ObjectTerm(c)}}},
				},
			},
		},
	}
	problem.InternStaticExtension()

	ax := axiom.NewEvaluator(repo, problem)
	sr := state.NewRepository(repo, ax)
	gen := lifted.NewGenerator(repo, problem, schema)
	return repo, problem, sr, gen
}

func TestBrFSFindsTwoStepPlan(t *testing.T) {
	repo, problem, sr, gen := buildCorridorProblem(t)
	s0 := sr.InitialState(problem)
	goalStrategy := DefaultGoalStrategy{Repo: repo, Problem: problem}

	res := BrFS(sr, gen, goalStrategy, NoPruning{}, nil, s0, DefaultLimits())
	require.Equal(t, SOLVED, res.Status)
	assert.Len(t, res.Plan, 2, "expected a 2-action plan")
}

func TestBrFSAndAStarAgreeOnPlanShape(t *testing.T) {
	repo, problem, sr, gen := buildCorridorProblem(t)
	s0 := sr.InitialState(problem)
	goalStrategy := DefaultGoalStrategy{Repo: repo, Problem: problem}

	brfs := BrFS(sr, gen, goalStrategy, NoPruning{}, nil, s0, DefaultLimits())
	astar := AStar(sr, gen, goalStrategy, BlindHeuristic{}, nil, s0, DefaultLimits())

	diff := cmp.Diff(planNames(repo, brfs.Plan), planNames(repo, astar.Plan))
	assert.Empty(t, diff, "BrFS and blind-heuristic A* disagreed on plan shape (-brfs +astar)")
}

func TestAStarWithBlindHeuristicFindsOptimalPlan(t *testing.T) {
	repo, problem, sr, gen := buildCorridorProblem(t)
	s0 := sr.InitialState(problem)
	goalStrategy := DefaultGoalStrategy{Repo: repo, Problem: problem}

	res := AStar(sr, gen, goalStrategy, BlindHeuristic{}, nil, s0, DefaultLimits())
	require.Equal(t, SOLVED, res.Status)
	assert.Len(t, res.Plan, 2, "expected a 2-action optimal plan")
}

func TestIWSolvesWithinMaxArity(t *testing.T) {
	repo, problem, sr, gen := buildCorridorProblem(t)
	s0 := sr.InitialState(problem)
	goalStrategy := DefaultGoalStrategy{Repo: repo, Problem: problem}

	res := IW(sr, gen, goalStrategy, nil, s0, DefaultIWConfig(), DefaultLimits())
	require.Equal(t, SOLVED, res.Status)
	assert.Len(t, res.Plan, 2, "expected a 2-action plan")
}

func TestSIWSolvesViaGoalCounter(t *testing.T) {
	repo, problem, sr, gen := buildCorridorProblem(t)
	s0 := sr.InitialState(problem)
	counter := ProblemGoalCounter{Repo: repo, Problem: problem}

	res := SIW(sr, gen, counter, nil, s0, DefaultIWConfig(), DefaultLimits())
	require.Equal(t, SOLVED, res.Status)
	assert.Len(t, res.Plan, 2, "expected a 2-action plan")
}

func TestNoveltyTableDetectsRepeatedTuples(t *testing.T) {
	table := NewNoveltyTable(1, 16)
	var s1 state.Packed
	s1.Fluent.Set(0)
	s1.Fluent.Set(1)

	assert.True(t, table.IsNovel(s1), "expected first state to be novel")
	table.Add(s1)
	assert.False(t, table.IsNovel(s1), "expected same atoms to no longer be novel")

	var s2 state.Packed
	s2.Fluent.Set(2)
	assert.True(t, table.IsNovel(s2), "expected a state with an unseen atom to be novel")
}
