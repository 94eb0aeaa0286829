package formalism

// ConjunctiveCondition is the tuple from spec.md §3: a parameter list,
// per-category literal lists, per-category lists of nullary ground literals
// (which collapse to a constant Boolean per state and need no binding), and
// a numeric-constraint list.
type ConjunctiveCondition struct {
	Parameters []Variable

	// Literals indexed by Category (Static, Fluent, Derived); each entry's
	// Atom has Terms that may reference Parameters by parameter index.
	Literals [3][]Literal

	// NullaryLiterals indexed by Category; arity-0 ground literals separated
	// out because they require no binding to evaluate.
	NullaryLiterals [3][]GroundLiteral

	Numeric []NumericConstraint
}

// LiteralsOf returns the non-nullary literal list for the given category.
func (c *ConjunctiveCondition) LiteralsOf(cat Category) []Literal { return c.Literals[cat] }

// NullaryLiteralsOf returns the nullary ground literal list for category.
func (c *ConjunctiveCondition) NullaryLiteralsOf(cat Category) []GroundLiteral {
	return c.NullaryLiterals[cat]
}

// Arity is the number of free parameters this condition binds.
func (c *ConjunctiveCondition) Arity() int { return len(c.Parameters) }
