package graph

import (
	"mimir/internal/formalism"
	"mimir/internal/index"
)

// Vertex is a candidate (parameter position, object) pair: one node of the
// consistency graph's part for that parameter (spec.md §4.2).
type Vertex struct {
	Param  int
	Object index.Index
}

// ConsistencyGraph is the k-partite graph of spec.md §4.2/§4.3: one part per
// action-schema parameter, vertices are candidate object assignments, edges
// connect two vertices whose joint assignment is realized by some reachable
// atom in every positive precondition literal that mentions both parameters.
// A maximum clique that touches every part (one vertex per parameter) is
// exactly a valid binding, which is what internal/kpkc enumerates over this
// structure (spec.md §4.3).
type ConsistencyGraph struct {
	Parts [][]Vertex
}

// Sets bundles the three category-keyed assignment sets a schema's
// precondition literals are checked against. The static set is built once
// per problem; fluent/derived are rebuilt per expanded state (spec.md §4.4
// step 1).
type Sets struct {
	Static, Fluent, Derived *AssignmentSet
}

func (s Sets) forCategory(c formalism.Category) *AssignmentSet {
	switch c {
	case formalism.Fluent:
		return s.Fluent
	case formalism.Derived:
		return s.Derived
	default:
		return s.Static
	}
}

// paramOf resolves the owning parameter index of a variable term, given the
// schema it belongs to.
func paramOf(schema *formalism.ActionSchema, t formalism.Term) int {
	return schema.Parameters[t.Variable].ParameterIndex
}

// BuildConsistencyGraph constructs the consistency graph's parts for schema,
// given a candidate object list per parameter (already type-filtered) and
// the assignment sets to test literal consistency against. Vertices that
// fail any unary positive literal touching their own parameter are
// dropped immediately — the standard first-pass prune before k-clique
// search.
func BuildConsistencyGraph(repo *formalism.Repository, schema *formalism.ActionSchema, candidates [][]index.Index, sets Sets) *ConsistencyGraph {
	g := &ConsistencyGraph{Parts: make([][]Vertex, len(schema.Parameters))}
	for p, objs := range candidates {
		for _, o := range objs {
			if vertexConsistent(repo, schema, p, o, sets) {
				g.Parts[p] = append(g.Parts[p], Vertex{Param: p, Object: o})
			}
		}
	}
	return g
}

func vertexConsistent(repo *formalism.Repository, schema *formalism.ActionSchema, param int, obj index.Index, sets Sets) bool {
	for _, lits := range schema.Precondition.Literals {
		for _, l := range lits {
			if !l.Positive {
				continue
			}
			pos, ok := soleVariablePosition(schema, l, param)
			if !ok {
				continue
			}
			as := sets.forCategory(repo.Predicates[l.Atom.Predicate].Category)
			if as == nil {
				continue
			}
			if !as.Consistent(l.Atom.Predicate, Unary(pos, obj)) {
				return false
			}
		}
	}
	return true
}

// soleVariablePosition reports the argument position of l's variable whose
// owning parameter equals param, when param is the only free variable
// mentioned by l (i.e. l is checkable as a unary assignment). Returns
// ok=false when l doesn't mention param at all, or mentions more than one
// distinct free variable (left for edge-level checking instead).
func soleVariablePosition(schema *formalism.ActionSchema, l formalism.Literal, param int) (int, bool) {
	pos, found := -1, false
	for i, t := range l.Atom.Terms {
		if !t.IsVariable() {
			continue
		}
		if paramOf(schema, t) != param {
			return 0, false
		}
		pos, found = i, true
	}
	return pos, found
}

// Adjacent reports whether v1 and v2 (from different parts) may coexist in
// a binding: every precondition literal mentioning both their parameters
// must be realized jointly, per the corresponding assignment set.
func Adjacent(repo *formalism.Repository, schema *formalism.ActionSchema, v1, v2 Vertex, sets Sets) bool {
	if v1.Param == v2.Param {
		return false
	}
	for _, lits := range schema.Precondition.Literals {
		for _, l := range lits {
			if !l.Positive {
				continue
			}
			i1, i2, ok := jointPositions(schema, l, v1.Param, v2.Param)
			if !ok {
				continue
			}
			as := sets.forCategory(repo.Predicates[l.Atom.Predicate].Category)
			if as == nil {
				continue
			}
			if !as.Consistent(l.Atom.Predicate, Binary(i1, v1.Object, i2, v2.Object)) {
				return false
			}
		}
	}
	return true
}

// jointPositions reports the argument positions in l bound to parameters p1
// and p2, when l mentions exactly these two free variables (in either
// order).
func jointPositions(schema *formalism.ActionSchema, l formalism.Literal, p1, p2 int) (pos1, pos2 int, ok bool) {
	pos1, pos2 = -1, -1
	for i, t := range l.Atom.Terms {
		if !t.IsVariable() {
			continue
		}
		switch paramOf(schema, t) {
		case p1:
			pos1 = i
		case p2:
			pos2 = i
		default:
			return 0, 0, false
		}
	}
	return pos1, pos2, pos1 >= 0 && pos2 >= 0
}
