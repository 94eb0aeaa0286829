package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimir/internal/formalism"
	"mimir/internal/index"
)

func TestRankIsInjectivePerPredicateWidth(t *testing.T) {
	arity, numObjects := 2, 3
	width := numAssignments(arity, numObjects)
	seen := make(map[int]bool)
	for i := 0; i < arity; i++ {
		for oi := 0; oi < numObjects; oi++ {
			r := rank(Unary(i, index.Index(oi)), arity, numObjects)
			require.Less(t, r, width, "unary rank should not exceed width")
			seen[r] = true
		}
	}
	assert.NotEmpty(t, seen, "expected some ranks to be recorded")
	assert.Len(t, seen, arity*numObjects, "unary ranks should be pairwise distinct")
}

func TestAssignmentSetConsistency(t *testing.T) {
	repo := formalism.NewRepository()
	pred := repo.InternPredicate("on", 2, formalism.Fluent)
	a := repo.InternObject("a", nil)
	b := repo.InternObject("b", nil)
	c := repo.InternObject("c", nil)

	s := NewAssignmentSet(3)
	s.InsertGroundAtom(pred, 2, []index.Index{a, b})

	assert.True(t, s.Consistent(pred, Unary(0, a)), "expected [0/a] consistent")
	assert.True(t, s.Consistent(pred, Unary(1, b)), "expected [1/b] consistent")
	assert.False(t, s.Consistent(pred, Unary(0, c)), "did not expect [0/c] consistent")
	assert.True(t, s.Consistent(pred, Binary(0, a, 1, b)), "expected joint [0/a][1/b] consistent")
	assert.False(t, s.Consistent(pred, Binary(0, a, 1, c)), "did not expect joint [0/a][1/c] consistent")
}

func TestBuildStaticFromProblemAtoms(t *testing.T) {
	repo := formalism.NewRepository()
	pred := repo.InternPredicate("road", 2, formalism.Static)
	a := repo.InternObject("a", nil)
	b := repo.InternObject("b", nil)

	s := BuildStatic(repo, []formalism.GroundAtom{{Predicate: pred, Objects: []index.Index{a, b}}})
	assert.True(t, s.Consistent(pred, Binary(0, a, 1, b)), "expected static assignment set to record road(a,b)")
}
