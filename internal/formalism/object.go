// Package formalism is the repository & interning layer of spec.md §3: it
// owns every PDDL entity (objects, types, predicates, functions, ground
// atoms, action schemas, axioms) behind dense index.Index identifiers, the
// way a single teacher repository owns flat storage with all cross-entity
// references reduced to array indices (spec.md §9 "Cyclic object graphs").
package formalism

import "mimir/internal/index"

// TypeDecl is a PDDL type, forming a single-inheritance hierarchy rooted at
// the implicit "object" type (Parent == index.MaxIndex for the root).
type TypeDecl struct {
	Index  index.Index
	Name   string
	Parent index.Index
}

// Object is an opaque named constant, optionally typed.
type Object struct {
	Index index.Index
	Name  string
	Types []index.Index // direct type memberships; ancestors resolved via Repository.IsOfType
}
