package formalism

import "mimir/internal/index"

// GroundAxiom is a fully ground instance of an Axiom.
type GroundAxiom struct {
	Index   index.Index
	Axiom   index.Index
	Binding []index.Index

	StaticLiterals  []GroundLiteral
	FluentLiterals  []GroundLiteral
	DerivedLiterals []GroundLiteral
	Numeric         []GroundNumericConstraint

	Head GroundAtom
}

// Literals returns this ground axiom's body literals of the given category.
func (a *GroundAxiom) Literals(cat Category) []GroundLiteral {
	switch cat {
	case Static:
		return a.StaticLiterals
	case Fluent:
		return a.FluentLiterals
	default:
		return a.DerivedLiterals
	}
}

// NumericConstraints returns this ground axiom's body numeric constraints.
func (a *GroundAxiom) NumericConstraints() []GroundNumericConstraint { return a.Numeric }
