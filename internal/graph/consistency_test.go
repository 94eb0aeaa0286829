package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimir/internal/formalism"
	"mimir/internal/index"
)

func TestBuildConsistencyGraphPrunesVertices(t *testing.T) {
	repo := formalism.NewRepository()
	on := repo.InternPredicate("on", 2, formalism.Fluent)
	a := repo.InternObject("a", nil)
	b := repo.InternObject("b", nil)
	c := repo.InternObject("c", nil)

	schema := &formalism.ActionSchema{
		Parameters: []formalism.Variable{
			{Index: 0, Name: "?x", ParameterIndex: 0},
			{Index: 1, Name: "?y", ParameterIndex: 1},
		},
		Precondition: formalism.ConjunctiveCondition{
			Literals: [3][]formalism.Literal{
				formalism.Fluent: {
					{
						Positive: true,
						Atom: formalism.Atom{
							Predicate: on,
							Terms:     []formalism.Term{formalism.VariableTerm(0), formalism.VariableTerm(1)},
						},
					},
				},
			},
		},
	}

	dynamic := NewAssignmentSet(3)
	dynamic.InsertGroundAtom(on, 2, []index.Index{a, b})

	sets := Sets{Static: NewAssignmentSet(3), Fluent: dynamic, Derived: NewAssignmentSet(3)}
	candidates := [][]index.Index{{a, b, c}, {a, b, c}}

	g := BuildConsistencyGraph(repo, schema, candidates, sets)
	require.NotEmpty(t, g.Parts[0], "expected some surviving vertices in part 0")
	require.NotEmpty(t, g.Parts[1], "expected some surviving vertices in part 1")

	assert.True(t, Adjacent(repo, schema, Vertex{Param: 0, Object: a}, Vertex{Param: 1, Object: b}, sets),
		"expected (x=a, y=b) to be adjacent: on(a,b) holds")
	assert.False(t, Adjacent(repo, schema, Vertex{Param: 0, Object: a}, Vertex{Param: 1, Object: c}, sets),
		"did not expect (x=a, y=c) to be adjacent: on(a,c) does not hold")
}
