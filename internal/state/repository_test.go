package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimir/internal/formalism"
	"mimir/internal/index"
)

func TestInitialStateAndSuccessorDedup(t *testing.T) {
	repo := formalism.NewRepository()
	pred := repo.InternPredicate("on", 2, formalism.Fluent)
	a := repo.InternObject("a", nil)
	b := repo.InternObject("b", nil)
	c := repo.InternObject("c", nil)

	problem := &formalism.Problem{
		Repo: repo,
		InitialFluentAtoms: []formalism.GroundAtom{
			{Predicate: pred, Objects: []index.Index{a, b}},
		},
	}

	sr := NewRepository(repo, nil)
	s0 := sr.InitialState(problem)
	require.Equal(t, 1, s0.Fluent.Count(), "expected 1 fluent atom")

	move := &formalism.GroundAction{
		Effects: []formalism.GroundConditionalEffect{
			{
				AtomEffects: []formalism.GroundAtomEffect{
					{Atom: formalism.GroundAtom{Predicate: pred, Objects: []index.Index{a, b}}, Add: false},
					{Atom: formalism.GroundAtom{Predicate: pred, Objects: []index.Index{b, c}}, Add: true},
				},
			},
		},
		Cost: 1,
	}

	s1, cost, err := sr.Successor(s0, move)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cost)
	assert.Equal(t, 1, s1.Fluent.Count(), "expected 1 fluent atom after move")

	// Applying the inverse move should return to a state byte-equal to s0,
	// and the repository must dedup it back to the same index
	// (invariant 3: state deduplication).
	undo := &formalism.GroundAction{
		Effects: []formalism.GroundConditionalEffect{
			{
				AtomEffects: []formalism.GroundAtomEffect{
					{Atom: formalism.GroundAtom{Predicate: pred, Objects: []index.Index{b, c}}, Add: false},
					{Atom: formalism.GroundAtom{Predicate: pred, Objects: []index.Index{a, b}}, Add: true},
				},
			},
		},
		Cost: 1,
	}
	s2, _, err := sr.Successor(s1, undo)
	require.NoError(t, err)
	assert.Equal(t, s0.Index, s2.Index, "expected dedup back to the same state index")
}

func TestNumericEffectsMixedFamilyRejected(t *testing.T) {
	repo := formalism.NewRepository()
	sr := NewRepository(repo, nil)
	s0 := Packed{Numeric: []float64{10}}

	action := &formalism.GroundAction{
		Effects: []formalism.GroundConditionalEffect{
			{
				NumericEffects: []formalism.GroundNumericEffect{
					{Target: 0, Op: formalism.AssignIncrease, Expr: formalism.GroundConstant{Value: 1}},
					{Target: 0, Op: formalism.AssignScaleUp, Expr: formalism.GroundConstant{Value: 2}},
				},
			},
		},
	}

	_, _, err := sr.Successor(s0, action)
	assert.Error(t, err, "expected error for mixed numeric effect families on the same function")
}

func TestNumericIncreaseEffectApplied(t *testing.T) {
	repo := formalism.NewRepository()
	sr := NewRepository(repo, nil)
	s0 := Packed{Numeric: []float64{10}}

	action := &formalism.GroundAction{
		Effects: []formalism.GroundConditionalEffect{
			{
				NumericEffects: []formalism.GroundNumericEffect{
					{Target: 0, Op: formalism.AssignIncrease, Expr: formalism.GroundConstant{Value: 5}},
				},
			},
		},
	}
	s1, _, err := sr.Successor(s0, action)
	require.NoError(t, err)
	assert.Equal(t, 15.0, s1.Numeric[0])
}
