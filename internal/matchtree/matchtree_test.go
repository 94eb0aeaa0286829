package matchtree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mimir/internal/formalism"
	"mimir/internal/index"
)

type fakeAction struct {
	name     string
	literals map[formalism.Category][]formalism.GroundLiteral
}

func (f *fakeAction) Literals(cat formalism.Category) []formalism.GroundLiteral { return f.literals[cat] }
func (f *fakeAction) NumericConstraints() []formalism.GroundNumericConstraint   { return nil }

type fakeView struct {
	held map[formalism.Category]map[index.Index]bool
}

func (v fakeView) Holds(cat formalism.Category, atom index.Index) bool { return v.held[cat][atom] }
func (v fakeView) Numeric() []float64                                  { return nil }

func TestBuildAndQuerySeparatesByAtom(t *testing.T) {
	repo := formalism.NewRepository()
	onPred := repo.InternPredicate("on", 2, formalism.Fluent)
	onAB := formalism.GroundAtom{Predicate: onPred, Objects: []index.Index{0, 1}}
	onAtomIdx := repo.InternGroundAtom(formalism.Fluent, onAB)

	a1 := &fakeAction{name: "pickup-a", literals: map[formalism.Category][]formalism.GroundLiteral{
		formalism.Fluent: {{Atom: onAB, Positive: true}},
	}}
	a2 := &fakeAction{name: "pickup-b", literals: map[formalism.Category][]formalism.GroundLiteral{
		formalism.Fluent: {{Atom: onAB, Positive: false}},
	}}
	a3 := &fakeAction{name: "noop", literals: map[formalism.Category][]formalism.GroundLiteral{}}

	tree := Build(repo, []Indexable{a1, a2, a3}, DefaultConfig())

	holdsTrue := fakeView{held: map[formalism.Category]map[index.Index]bool{formalism.Fluent: {onAtomIdx: true}}}
	got := Query(tree, holdsTrue)
	assert.True(t, containsAction(got, a1), "expected pickup-a reachable when on(a,b) holds")
	assert.False(t, containsAction(got, a2), "did not expect pickup-b reachable when on(a,b) holds")
	assert.True(t, containsAction(got, a3), "expected noop always reachable (don't-care)")

	holdsFalse := fakeView{held: map[formalism.Category]map[index.Index]bool{formalism.Fluent: {onAtomIdx: false}}}
	got2 := Query(tree, holdsFalse)
	assert.False(t, containsAction(got2, a1), "did not expect pickup-a reachable when on(a,b) doesn't hold")
	assert.True(t, containsAction(got2, a2), "expected pickup-b reachable when on(a,b) doesn't hold")
	assert.True(t, containsAction(got2, a3), "expected noop always reachable (don't-care)")
}

func containsAction(set []Indexable, target Indexable) bool {
	for _, e := range set {
		if e == target {
			return true
		}
	}
	return false
}
