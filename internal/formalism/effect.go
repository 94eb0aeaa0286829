package formalism

// AtomEffect is an add or delete of a fluent atom.
type AtomEffect struct {
	Atom Atom
	Add  bool // false => delete
}

// ConjunctiveEffect bundles a set of atom effects and a set of numeric
// effects (spec.md §3 "Effect").
type ConjunctiveEffect struct {
	AtomEffects    []AtomEffect
	NumericEffects []NumericEffect
}

// ConditionalEffect pairs a conjunctive condition with a conjunctive effect.
// Universal quantification over the effect's own extra parameters is
// compiled away upstream by the translator (spec.md §3 "Effect",
// §6 "eliminates universal quantifiers").
type ConditionalEffect struct {
	Parameters []Variable // extra parameters introduced by the (forall ...) this effect came from, already flattened
	Condition  ConjunctiveCondition
	Effect     ConjunctiveEffect
}
