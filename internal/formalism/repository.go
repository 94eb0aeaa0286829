package formalism

import (
	"encoding/binary"

	"mimir/internal/arena"
	"mimir/internal/index"
)

// Repository owns every PDDL entity for one problem (spec.md §3
// "Ownership": "The repository owns every PDDL object; all other
// components hold borrowed references keyed by index", and §9: "Target:
// problem-local only — each ProblemContext owns its repositories with
// explicit init/teardown"). It is created once per problem and torn down
// with it.
type Repository struct {
	Types       []TypeDecl
	typeByName  map[string]index.Index

	Objects     []Object
	objectByName map[string]index.Index

	Predicates      []Predicate
	predicateByName map[string]index.Index

	Functions      []Function
	functionByName map[string]index.Index

	// Ground atom interning: dense indices used as bitset positions for
	// Fluent and Derived atoms (spec.md §4.1 "the deduplication primitive
	// underpinning states"). Static atoms are interned too (so the
	// consistency graph and binding verification can refer to them by
	// index) but are never packed into a per-state bitset, since spec.md §3
	// says the initial state's static atoms are implied by the problem.
	fluentAtoms  *groundAtomTable
	derivedAtoms *groundAtomTable
	staticAtoms  *groundAtomTable

	functionTerms *groundFunctionTermTable

	ActionSchemas []ActionSchema
	Axioms        []Axiom
}

// NewRepository creates an empty, problem-local repository.
func NewRepository() *Repository {
	return &Repository{
		typeByName:      make(map[string]index.Index),
		objectByName:    make(map[string]index.Index),
		predicateByName: make(map[string]index.Index),
		functionByName:  make(map[string]index.Index),
		fluentAtoms:     newGroundAtomTable(),
		derivedAtoms:    newGroundAtomTable(),
		staticAtoms:     newGroundAtomTable(),
		functionTerms:   newGroundFunctionTermTable(),
	}
}

// InternType adds (or looks up) a named type with the given parent (use
// index.MaxIndex for the implicit root "object" type).
func (r *Repository) InternType(name string, parent index.Index) index.Index {
	if idx, ok := r.typeByName[name]; ok {
		return idx
	}
	idx := index.Index(len(r.Types))
	r.Types = append(r.Types, TypeDecl{Index: idx, Name: name, Parent: parent})
	r.typeByName[name] = idx
	return idx
}

// InternObject adds (or looks up) a named object with the given direct
// type memberships.
func (r *Repository) InternObject(name string, types []index.Index) index.Index {
	if idx, ok := r.objectByName[name]; ok {
		return idx
	}
	idx := index.Index(len(r.Objects))
	r.Objects = append(r.Objects, Object{Index: idx, Name: name, Types: types})
	r.objectByName[name] = idx
	return idx
}

// ObjectByName looks up an already-interned object.
func (r *Repository) ObjectByName(name string) (index.Index, bool) {
	idx, ok := r.objectByName[name]
	return idx, ok
}

// IsOfType reports whether obj is a (possibly transitive) member of typ.
func (r *Repository) IsOfType(obj index.Index, typ index.Index) bool {
	for _, direct := range r.Objects[obj].Types {
		if r.typeMatches(direct, typ) {
			return true
		}
	}
	return false
}

func (r *Repository) typeMatches(t, target index.Index) bool {
	for t.Valid() {
		if t == target {
			return true
		}
		t = r.Types[t].Parent
	}
	return false
}

// InternPredicate adds (or looks up) a predicate symbol.
func (r *Repository) InternPredicate(name string, arity int, category Category) index.Index {
	if idx, ok := r.predicateByName[name]; ok {
		return idx
	}
	idx := index.Index(len(r.Predicates))
	r.Predicates = append(r.Predicates, Predicate{Index: idx, Name: name, Arity: arity, Category: category})
	r.predicateByName[name] = idx
	return idx
}

// PredicateByName looks up an already-interned predicate.
func (r *Repository) PredicateByName(name string) (index.Index, bool) {
	idx, ok := r.predicateByName[name]
	return idx, ok
}

// InternFunction adds (or looks up) a numeric function symbol.
func (r *Repository) InternFunction(name string, arity int, category FunctionCategory) index.Index {
	if idx, ok := r.functionByName[name]; ok {
		return idx
	}
	idx := index.Index(len(r.Functions))
	r.Functions = append(r.Functions, Function{Index: idx, Name: name, Arity: arity, Category: category})
	r.functionByName[name] = idx
	return idx
}

// FunctionByName looks up an already-interned numeric function.
func (r *Repository) FunctionByName(name string) (index.Index, bool) {
	idx, ok := r.functionByName[name]
	return idx, ok
}

// groundAtomTable interns GroundAtom values via the arena's content-addressed
// HashSet, keeping a parallel decode slice for introspection.
type groundAtomTable struct {
	set     *arena.HashSet
	decoded []GroundAtom
}

func newGroundAtomTable() *groundAtomTable {
	return &groundAtomTable{set: arena.NewHashSet()}
}

func encodeGroundAtom(a GroundAtom) []byte {
	buf := make([]byte, 4+4*len(a.Objects))
	binary.LittleEndian.PutUint32(buf, uint32(a.Predicate))
	for i, o := range a.Objects {
		binary.LittleEndian.PutUint32(buf[4+4*i:], uint32(o))
	}
	return buf
}

func (t *groundAtomTable) intern(a GroundAtom) index.Index {
	idx := t.set.Insert(encodeGroundAtom(a))
	if int(idx) == len(t.decoded) {
		t.decoded = append(t.decoded, a)
	}
	return index.Index(idx)
}

func (t *groundAtomTable) get(idx index.Index) GroundAtom { return t.decoded[idx] }

func (t *groundAtomTable) contains(a GroundAtom) (index.Index, bool) {
	idx, ok := t.set.Contains(encodeGroundAtom(a))
	return index.Index(idx), ok
}

func (t *groundAtomTable) len() int { return len(t.decoded) }

// InternGroundAtom interns a ground atom of the given category and returns
// its dense per-category index.
func (r *Repository) InternGroundAtom(category Category, a GroundAtom) index.Index {
	switch category {
	case Fluent:
		return r.fluentAtoms.intern(a)
	case Derived:
		return r.derivedAtoms.intern(a)
	default:
		return r.staticAtoms.intern(a)
	}
}

// GroundAtomOf decodes the ground atom stored at idx for the given category.
func (r *Repository) GroundAtomOf(category Category, idx index.Index) GroundAtom {
	switch category {
	case Fluent:
		return r.fluentAtoms.get(idx)
	case Derived:
		return r.derivedAtoms.get(idx)
	default:
		return r.staticAtoms.get(idx)
	}
}

// StaticAtomHolds reports whether the ground atom a is part of the
// problem's fixed static extension, without interning it. Used at
// grounding time to filter out candidate bindings whose static
// preconditions don't hold (spec.md §4.4 step 2).
func (r *Repository) StaticAtomHolds(a GroundAtom) bool {
	_, ok := r.staticAtoms.contains(a)
	return ok
}

// GroundAtomIndex looks up a, without interning it, for the given category.
// A miss means a was never observed (e.g. never holds in any reachable
// state for Fluent/Derived, or outside the static extension for Static).
func (r *Repository) GroundAtomIndex(category Category, a GroundAtom) (index.Index, bool) {
	switch category {
	case Fluent:
		return r.fluentAtoms.contains(a)
	case Derived:
		return r.derivedAtoms.contains(a)
	default:
		return r.staticAtoms.contains(a)
	}
}

// NumFluentAtoms, NumDerivedAtoms report the bitset width for each category.
func (r *Repository) NumFluentAtoms() int  { return r.fluentAtoms.len() }
func (r *Repository) NumDerivedAtoms() int { return r.derivedAtoms.len() }
func (r *Repository) NumStaticAtoms() int  { return r.staticAtoms.len() }

// groundFunctionTermTable interns GroundFunctionTerm values, giving each
// distinct (function, objects) pair a dense index into the state
// repository's numeric-variable array (spec.md §3 "State").
type groundFunctionTermTable struct {
	set     *arena.HashSet
	decoded []GroundFunctionTerm
}

func newGroundFunctionTermTable() *groundFunctionTermTable {
	return &groundFunctionTermTable{set: arena.NewHashSet()}
}

func encodeGroundFunctionTerm(f GroundFunctionTerm) []byte {
	buf := make([]byte, 4+4*len(f.Objects))
	binary.LittleEndian.PutUint32(buf, uint32(f.Function))
	for i, o := range f.Objects {
		binary.LittleEndian.PutUint32(buf[4+4*i:], uint32(o))
	}
	return buf
}

// InternGroundFunctionTerm interns a ground function application and
// returns its dense index.
func (r *Repository) InternGroundFunctionTerm(f GroundFunctionTerm) index.Index {
	idx := r.functionTerms.set.Insert(encodeGroundFunctionTerm(f))
	if int(idx) == len(r.functionTerms.decoded) {
		r.functionTerms.decoded = append(r.functionTerms.decoded, f)
	}
	return index.Index(idx)
}

// GroundFunctionTermOf decodes the function term stored at idx.
func (r *Repository) GroundFunctionTermOf(idx index.Index) GroundFunctionTerm {
	return r.functionTerms.decoded[idx]
}

// NumGroundFunctionTerms reports the width of the dense numeric-variable
// array (spec.md §3 "dense array of numeric-function values").
func (r *Repository) NumGroundFunctionTerms() int { return len(r.functionTerms.decoded) }

// AddActionSchema interns an action schema and returns its index.
func (r *Repository) AddActionSchema(s ActionSchema) index.Index {
	s.Index = index.Index(len(r.ActionSchemas))
	r.ActionSchemas = append(r.ActionSchemas, s)
	return s.Index
}

// AddAxiom interns an axiom and returns its index.
func (r *Repository) AddAxiom(a Axiom) index.Index {
	a.Index = index.Index(len(r.Axioms))
	r.Axioms = append(r.Axioms, a)
	return a.Index
}
