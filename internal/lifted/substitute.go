package lifted

import (
	"mimir/internal/formalism"
	"mimir/internal/index"
)

// resolver maps a Term's Variable index (formalism.Variable.Index) to a
// position in a binding array. Built once per grounding scope: either a
// schema's own parameters, or a schema extended with one conditional
// effect's extra (forall-introduced) parameters.
type resolver map[index.Index]int

func newResolver(paramLists ...[]formalism.Variable) resolver {
	r := make(resolver)
	for _, params := range paramLists {
		for _, v := range params {
			r[v.Index] = v.ParameterIndex
		}
	}
	return r
}

func (r resolver) object(t formalism.Term, binding []index.Index) index.Index {
	if t.IsObject() {
		return t.Object
	}
	return binding[r[t.Variable]]
}

func (r resolver) atom(a formalism.Atom, binding []index.Index) formalism.GroundAtom {
	objs := make([]index.Index, len(a.Terms))
	for i, t := range a.Terms {
		objs[i] = r.object(t, binding)
	}
	return formalism.GroundAtom{Predicate: a.Predicate, Objects: objs}
}

func (r resolver) literal(l formalism.Literal, binding []index.Index) formalism.GroundLiteral {
	return formalism.GroundLiteral{Atom: r.atom(l.Atom, binding), Positive: l.Positive}
}

func (r resolver) literals(ls []formalism.Literal, binding []index.Index) []formalism.GroundLiteral {
	out := make([]formalism.GroundLiteral, len(ls))
	for i, l := range ls {
		out[i] = r.literal(l, binding)
	}
	return out
}

func (r resolver) functionTerm(f formalism.FunctionTerm, binding []index.Index) formalism.GroundFunctionTerm {
	objs := make([]index.Index, len(f.Terms))
	for i, t := range f.Terms {
		objs[i] = r.object(t, binding)
	}
	return formalism.GroundFunctionTerm{Function: f.Function, Objects: objs}
}

func (r resolver) numericExpr(repo *formalism.Repository, e formalism.NumericExpr, binding []index.Index) formalism.GroundNumericExpr {
	switch v := e.(type) {
	case formalism.Constant:
		return formalism.GroundConstant{Value: v.Value}
	case formalism.FunctionValue:
		term := r.functionTerm(v.Term, binding)
		slot := repo.InternGroundFunctionTerm(term)
		return formalism.GroundFunctionValue{Slot: slot}
	case formalism.BinaryExpr:
		return formalism.GroundBinaryExpr{
			Op:    v.Op,
			Left:  r.numericExpr(repo, v.Left, binding),
			Right: r.numericExpr(repo, v.Right, binding),
		}
	}
	return formalism.GroundConstant{Value: 0}
}

func (r resolver) numericConstraints(repo *formalism.Repository, cs []formalism.NumericConstraint, binding []index.Index) []formalism.GroundNumericConstraint {
	out := make([]formalism.GroundNumericConstraint, len(cs))
	for i, c := range cs {
		out[i] = formalism.GroundNumericConstraint{
			Comparator: c.Comparator,
			Left:       r.numericExpr(repo, c.Left, binding),
			Right:      r.numericExpr(repo, c.Right, binding),
		}
	}
	return out
}
