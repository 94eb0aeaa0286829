// Package matchtree implements spec.md §4.5's match tree: a decision
// diagram over ground-action (or ground-axiom) preconditions that lets the
// grounded generator list the elements applicable in a state in time
// roughly linear in tree depth instead of scanning every element.
package matchtree

import (
	"mimir/internal/formalism"
	"mimir/internal/index"
)

// Indexable is anything with a per-category literal list and a numeric
// constraint list — satisfied by both *formalism.GroundAction and
// *formalism.GroundAxiom, so one tree implementation serves both the
// grounded action generator and the per-stratum axiom match trees
// (spec.md §4.6: "analogously for axioms — one match tree per stratum").
type Indexable interface {
	Literals(cat formalism.Category) []formalism.GroundLiteral
	NumericConstraints() []formalism.GroundNumericConstraint
}

// SplitMetric selects the scoring function the greedy builder maximizes
// (or minimizes, per OptimizationDirection) at each frontier node.
type SplitMetric uint8

const (
	Gini SplitMetric = iota
	Frequency
	InformationGain
)

// SplitStrategy selects which literal categories are eligible as split
// candidates: STATIC-only trees are built once per problem and never
// change; DYNAMIC trees only ever split on fluent/derived atoms (rebuilt,
// in principle, per stratum evaluation); HYBRID allows either.
type SplitStrategy uint8

const (
	Static SplitStrategy = iota
	Dynamic
	Hybrid
)

// OptimizationDirection picks whether the builder prefers the
// highest-scoring or lowest-scoring candidate split at each node.
type OptimizationDirection uint8

const (
	Max OptimizationDirection = iota
	Min
)

// Config bundles the construction knobs of spec.md §6.
type Config struct {
	SplitMetric           SplitMetric
	SplitStrategy         SplitStrategy
	OptimizationDirection OptimizationDirection
	MaxNumNodes           int
}

// DefaultConfig matches the teacher's DefaultConfig() convention
// (internal/config/config.go): sensible defaults a caller can override
// selectively.
func DefaultConfig() Config {
	return Config{
		SplitMetric:           Gini,
		SplitStrategy:         Hybrid,
		OptimizationDirection: Max,
		MaxNumNodes:           1_000_000,
	}
}

type kind uint8

const (
	kindLeaf kind = iota
	kindAtomSelector
	kindNumericSelector
)

// atomKey identifies one split candidate: a (category, ground-atom index)
// pair, where the ground-atom index is the dense per-category index a
// state's Fluent/Derived bitset (or the static extension) is tested
// against — NOT the lifted predicate index, since two ground atoms of the
// same predicate (on(a,b) vs on(c,d)) must be distinguishable split
// candidates.
type atomKey struct {
	category formalism.Category
	atom     index.Index
}

// Node is one decision-diagram node (spec.md §4.5 "Node kinds").
type Node struct {
	kind kind

	// atom selector fields
	atomCat              formalism.Category
	atomIdx              index.Index
	trueChild, falseChild, dontCareChild *Node

	// numeric-constraint selector fields: same true/don't-care shape, no
	// false branch (a numeric constraint not holding just falls through to
	// don't-care, since there's no meaningful "false bucket" distinct from
	// "not applicable here" for a continuous constraint).
	//
	// The greedy builder in build.go/split.go only ever scores and splits on
	// atom candidates; it never emits a kindNumericSelector node, so numeric
	// constraints are always re-verified by the grounded generator's final
	// check rather than indexed by the tree. Query still supports this node
	// kind so a future metric/candidate extension to include numeric splits
	// doesn't need a traversal-side change.
	constraint formalism.GroundNumericConstraint

	// leaf
	elements []Indexable
}

// Tree is the built match tree plus the element count it was built from,
// for statistics/diagnostics.
type Tree struct {
	Root      *Node
	NumNodes  int
	NumInput  int
	Imperfect int // number of imperfect (linear-scan) leaves
}
