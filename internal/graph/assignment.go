// Package graph implements the consistency graph and assignment set of
// spec.md §4.2: the data structures the lifted generator uses to test
// "is the partial binding (param=obj, ...) consistent with any reachable
// atom?" in O(1).
package graph

import (
	"mimir/internal/formalism"
	"mimir/internal/index"
	"mimir/internal/state"
)

// Assignment encapsulates the assignment of objects to one or two parameter
// positions of some predicate's atom, mirroring
// original_source/include/mimir/formalism/assignment_set.hpp's Assignment.
type Assignment struct {
	FirstIndex   int // parameter position i
	FirstObject  index.Index
	SecondIndex  int         // parameter position j, or -1 for the unary variant
	SecondObject index.Index // index.MaxIndex for the unary variant
}

// Unary builds the assignment [i/o] alone.
func Unary(i int, o index.Index) Assignment {
	return Assignment{FirstIndex: i, FirstObject: o, SecondIndex: -1, SecondObject: index.MaxIndex}
}

// Binary builds the joint assignment [i/o], [j/o'].
func Binary(i int, o index.Index, j int, o2 index.Index) Assignment {
	return Assignment{FirstIndex: i, FirstObject: o, SecondIndex: j, SecondObject: o2}
}

// rank implements spec.md §4.2's
// rank(a, arity, O) = (i+1) + (arity+1)((j+1) + (arity+1)((oi+1) + (O+1)(o'j+1))).
// j and o' are taken as -1/MaxIndex for the unary variant, matching the
// "+1" trick that folds the sentinel into rank 0.
func rank(a Assignment, arity, numObjects int) int {
	first := 1
	second := first * (arity + 1)
	third := second * (arity + 1)
	fourth := third * (numObjects + 1)

	secondIndexTerm := 0
	if a.SecondIndex >= 0 {
		secondIndexTerm = a.SecondIndex + 1
	}
	secondObjectTerm := 0
	if a.SecondObject.Valid() {
		secondObjectTerm = int(a.SecondObject) + 1
	}

	return first*(a.FirstIndex+1) + second*secondIndexTerm + third*(int(a.FirstObject)+1) + fourth*secondObjectTerm
}

// numAssignments is the size of the dense bitset holding every rank for a
// predicate of the given arity over numObjects objects.
func numAssignments(arity, numObjects int) int {
	first := 1
	second := first * (arity + 1)
	third := second * (arity + 1)
	fourth := third * (numObjects + 1)
	max := first*arity + second*arity + third*numObjects + fourth*numObjects
	return max + 1
}

// AssignmentSet is phi(predicate, i, oi, j, o'j) of spec.md §4.2: a bitset
// per predicate, indexed by rank, recording whether some ground atom of
// that predicate realizes the given (partial) position assignment. A set
// built from only-static atoms is the "static" assignment set; one rebuilt
// from a state's fluent+derived atoms each expansion is "dynamic".
type AssignmentSet struct {
	numObjects int
	perPred    map[index.Index]state.Bitset
	arity      map[index.Index]int
}

// NewAssignmentSet builds an empty assignment set sized for numObjects.
func NewAssignmentSet(numObjects int) *AssignmentSet {
	return &AssignmentSet{numObjects: numObjects, perPred: make(map[index.Index]state.Bitset), arity: make(map[index.Index]int)}
}

// InsertGroundAtom registers every positional (and joint-positional)
// assignment realized by atom.
func (s *AssignmentSet) InsertGroundAtom(predicate index.Index, arity int, objects []index.Index) {
	bs := s.perPred[predicate]
	s.arity[predicate] = arity
	for i, oi := range objects {
		bs.Set(rank(Unary(i, oi), arity, s.numObjects))
		for j := i + 1; j < len(objects); j++ {
			oj := objects[j]
			bs.Set(rank(Binary(i, oi, j, oj), arity, s.numObjects))
			bs.Set(rank(Binary(j, oj, i, oi), arity, s.numObjects))
		}
	}
	s.perPred[predicate] = bs
}

// Consistent reports phi(predicate, a) — whether some registered ground atom
// realizes assignment a.
func (s *AssignmentSet) Consistent(predicate index.Index, a Assignment) bool {
	bs, ok := s.perPred[predicate]
	if !ok {
		return false
	}
	arity := s.arity[predicate]
	return bs.Test(rank(a, arity, s.numObjects))
}

// BuildStatic constructs the static assignment set from the problem's
// static ground atoms once, per spec.md §4.2.
func BuildStatic(repo *formalism.Repository, staticAtoms []formalism.GroundAtom) *AssignmentSet {
	s := NewAssignmentSet(len(repo.Objects))
	for _, a := range staticAtoms {
		arity := repo.Predicates[a.Predicate].Arity
		s.InsertGroundAtom(a.Predicate, arity, a.Objects)
	}
	return s
}

// BuildDynamic rebuilds the dynamic assignment set from a state's fluent and
// derived atoms, refreshed every time the lifted generator is asked for a
// new state's applicable actions (spec.md §4.4 step 1).
func BuildDynamic(repo *formalism.Repository, fluent, derived state.Bitset) *AssignmentSet {
	s := NewAssignmentSet(len(repo.Objects))
	fluent.ForEach(func(i int) {
		a := repo.GroundAtomOf(formalism.Fluent, index.Index(i))
		s.InsertGroundAtom(a.Predicate, repo.Predicates[a.Predicate].Arity, a.Objects)
	})
	derived.ForEach(func(i int) {
		a := repo.GroundAtomOf(formalism.Derived, index.Index(i))
		s.InsertGroundAtom(a.Predicate, repo.Predicates[a.Predicate].Arity, a.Objects)
	})
	return s
}
