package formalism

import "mimir/internal/index"

// ActionSchema owns a parameter list, a precondition, and a list of
// conditional effects (spec.md §3 "Effect").
type ActionSchema struct {
	Index      index.Index
	Name       string
	Parameters []Variable
	Precondition ConjunctiveCondition
	Effects    []ConditionalEffect
	Cost       NumericExpr // nil => unit cost
}

// Axiom owns a parameter list, a precondition, and a single derived
// head-literal effect.
type Axiom struct {
	Index        index.Index
	Parameters   []Variable
	Precondition ConjunctiveCondition
	Head         Atom // must reference a Derived predicate
}

// GroundAction is a fully ground instance of an ActionSchema: schema + concrete
// object binding (spec.md §4.4's "ground action"). Conditional effects are
// pre-instantiated at grounding time (§4.4 step 3), so a GroundAction holds
// its own materialized effect list rather than re-deriving it per query.
type GroundAction struct {
	Index   index.Index
	Schema  index.Index
	Binding []index.Index // objects, one per schema parameter, in parameter-index order

	// Precondition in ground form, split for O(1) evaluation against a
	// packed state: StaticLiterals/FluentLiterals/DerivedLiterals/Numeric
	// are all checked directly, no further binding work needed.
	StaticLiterals  []GroundLiteral
	FluentLiterals  []GroundLiteral
	DerivedLiterals []GroundLiteral
	Numeric         []GroundNumericConstraint

	Effects []GroundConditionalEffect

	Cost float64
}

// Literals returns this ground action's precondition literals of the given
// category, for callers (e.g. internal/matchtree) that index a mixed set
// of actions and axioms by the same generic accessor.
func (a *GroundAction) Literals(cat Category) []GroundLiteral {
	switch cat {
	case Static:
		return a.StaticLiterals
	case Fluent:
		return a.FluentLiterals
	default:
		return a.DerivedLiterals
	}
}

// NumericConstraints returns this ground action's precondition numeric
// constraints.
func (a *GroundAction) NumericConstraints() []GroundNumericConstraint { return a.Numeric }

// GroundNumericConstraint is a NumericConstraint with all FunctionTerms
// resolved to GroundFunctionTerms.
type GroundNumericConstraint struct {
	Comparator  Comparator
	Left, Right GroundNumericExpr
}

// GroundNumericExpr mirrors NumericExpr but over GroundFunctionTerm.
type GroundNumericExpr interface{ isGroundNumericExpr() }

type GroundConstant struct{ Value float64 }

func (GroundConstant) isGroundNumericExpr() {}

// GroundFunctionValue reads the state's numeric-variable array at Slot, the
// dense index assigned once at grounding time by
// Repository.InternGroundFunctionTerm (spec.md §3 "dense array of
// numeric-function values"). Carrying the resolved slot instead of the raw
// GroundFunctionTerm keeps per-state numeric evaluation a pure array index.
type GroundFunctionValue struct{ Slot index.Index }

func (GroundFunctionValue) isGroundNumericExpr() {}

type GroundBinaryExpr struct {
	Op          ArithOp
	Left, Right GroundNumericExpr
}

func (GroundBinaryExpr) isGroundNumericExpr() {}

// GroundAtomEffect is an add/delete of a ground fluent atom.
type GroundAtomEffect struct {
	Atom GroundAtom
	Add  bool
}

// GroundNumericEffect applies Op to the numeric-array slot Target with the
// resolved Expr. Target is the dense index from
// Repository.InternGroundFunctionTerm, resolved once at grounding time.
type GroundNumericEffect struct {
	Target index.Index
	Op     NumericAssignOp
	Expr   GroundNumericExpr
}

// GroundConditionalEffect is a conditional effect with its own condition
// pre-ground to the action's binding scope; the condition is still tested
// per-state since it may reference fluent/derived atoms (spec.md §4.8 step 2).
type GroundConditionalEffect struct {
	StaticLiterals  []GroundLiteral
	FluentLiterals  []GroundLiteral
	DerivedLiterals []GroundLiteral
	Numeric         []GroundNumericConstraint

	AtomEffects    []GroundAtomEffect
	NumericEffects []GroundNumericEffect
}
