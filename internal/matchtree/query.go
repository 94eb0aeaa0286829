package matchtree

import (
	"mimir/internal/formalism"
	"mimir/internal/index"
)

// StateView is the minimal read surface a match tree query needs: atom
// membership by category, and the numeric-variable array. Both
// internal/state.Packed and internal/state.Bitset-backed scratch states
// satisfy this trivially via a thin adapter in the grounded generator.
type StateView interface {
	Holds(cat formalism.Category, atom index.Index) bool
	Numeric() []float64
}

// Query traverses tree against view, returning the union (deduplicated by
// leaf identity, not element identity, which is cheaper and sufficient
// since a leaf's elements are only ever visited as a whole span) of every
// reached leaf's elements (spec.md §4.5/§4.6 "emit the union of actions at
// reached leaves").
func Query(tree *Tree, view StateView) []Indexable {
	if tree == nil || tree.Root == nil {
		return nil
	}
	visited := make(map[*Node]bool)
	var out []Indexable
	collect(tree.Root, view, visited, &out)
	return out
}

func collect(n *Node, view StateView, visited map[*Node]bool, out *[]Indexable) {
	if n == nil || visited[n] {
		return
	}
	switch n.kind {
	case kindLeaf:
		visited[n] = true
		*out = append(*out, n.elements...)
	case kindAtomSelector:
		if view.Holds(n.atomCat, n.atomIdx) {
			collect(n.trueChild, view, visited, out)
		} else {
			collect(n.falseChild, view, visited, out)
		}
		// Don't-care always flows regardless of the atom's truth value
		// (spec.md §4.5 "Control flows ... always into don't-care").
		collect(n.dontCareChild, view, visited, out)
	case kindNumericSelector:
		if evalGroundConstraint(n.constraint, view.Numeric()) {
			collect(n.trueChild, view, visited, out)
		}
		collect(n.dontCareChild, view, visited, out)
	}
}

func evalGroundConstraint(c formalism.GroundNumericConstraint, numeric []float64) bool {
	l := evalGroundExpr(c.Left, numeric)
	r := evalGroundExpr(c.Right, numeric)
	switch c.Comparator {
	case formalism.CmpLE:
		return l <= r
	case formalism.CmpLT:
		return l < r
	case formalism.CmpEQ:
		return l == r
	case formalism.CmpGE:
		return l >= r
	case formalism.CmpGT:
		return l > r
	case formalism.CmpNE:
		return l != r
	}
	return false
}

func evalGroundExpr(e formalism.GroundNumericExpr, numeric []float64) float64 {
	switch v := e.(type) {
	case formalism.GroundConstant:
		return v.Value
	case formalism.GroundFunctionValue:
		if int(v.Slot) >= len(numeric) {
			return 0
		}
		return numeric[v.Slot]
	case formalism.GroundBinaryExpr:
		l := evalGroundExpr(v.Left, numeric)
		r := evalGroundExpr(v.Right, numeric)
		switch v.Op {
		case formalism.OpAdd:
			return l + r
		case formalism.OpSub:
			return l - r
		case formalism.OpMul:
			return l * r
		case formalism.OpDiv:
			return l / r
		}
	}
	return 0
}
