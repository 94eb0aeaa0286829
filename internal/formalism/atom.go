package formalism

import "mimir/internal/index"

// Atom is a lifted atom: (predicate, term list), per spec.md §3.
type Atom struct {
	Predicate index.Index
	Terms     []Term
}

// GroundAtom is (predicate, object list of length = arity).
type GroundAtom struct {
	Predicate index.Index
	Objects   []index.Index
}

// Literal pairs a lifted atom with a polarity.
type Literal struct {
	Atom     Atom
	Positive bool
}

// GroundLiteral pairs a ground atom with a polarity; used for the nullary
// literal lists of a ConjunctiveCondition, which collapse to a constant
// Boolean per state (spec.md §3).
type GroundLiteral struct {
	Atom     GroundAtom
	Positive bool
}

// FunctionTerm is a lifted numeric-function application (function, term
// list); grounding substitutes objects for the variable terms.
type FunctionTerm struct {
	Function index.Index
	Terms    []Term
}

// GroundFunctionTerm is a numeric-function application fully bound to
// objects, used as the key into the state's numeric-variable array.
type GroundFunctionTerm struct {
	Function index.Index
	Objects  []index.Index
}
