package formalism

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimir/internal/index"
)

func TestInternObjectDedups(t *testing.T) {
	r := NewRepository()
	a1 := r.InternObject("ball1", nil)
	a2 := r.InternObject("ball1", nil)
	b := r.InternObject("ball2", nil)

	require.Equal(t, a1, a2, "re-interning same name should give the same index")
	assert.NotEqual(t, a1, b, "distinct names should not collide")
}

func TestTypeHierarchyIsOfType(t *testing.T) {
	r := NewRepository()
	objectType := r.InternType("object", index.MaxIndex)
	ball := r.InternType("ball", objectType)
	room := r.InternType("room", objectType)

	o := r.InternObject("ball1", []index.Index{ball})

	assert.True(t, r.IsOfType(o, ball), "ball1 should be of type ball")
	assert.True(t, r.IsOfType(o, objectType), "ball1 should transitively be of type object")
	assert.False(t, r.IsOfType(o, room), "ball1 should not be of type room")
}

func TestGroundAtomInterningIsDenseAndDedups(t *testing.T) {
	r := NewRepository()
	p := r.InternPredicate("at", 2, Fluent)
	o1 := r.InternObject("a", nil)
	o2 := r.InternObject("b", nil)

	i1 := r.InternGroundAtom(Fluent, GroundAtom{Predicate: p, Objects: []index.Index{o1, o2}})
	i2 := r.InternGroundAtom(Fluent, GroundAtom{Predicate: p, Objects: []index.Index{o2, o1}})
	i3 := r.InternGroundAtom(Fluent, GroundAtom{Predicate: p, Objects: []index.Index{o1, o2}})

	require.Equal(t, i1, i3, "equal ground atoms should get the same index")
	assert.NotEqual(t, i1, i2, "argument-order-distinct atoms should not collide")
	require.Equal(t, 2, r.NumFluentAtoms())

	got := r.GroundAtomOf(Fluent, i1)
	require.Equal(t, p, got.Predicate)
	require.Len(t, got.Objects, 2)
	assert.Equal(t, o1, got.Objects[0])
	assert.Equal(t, o2, got.Objects[1])
}
