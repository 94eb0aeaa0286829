package translate

import (
	"fmt"
	"strconv"

	"mimir/internal/formalism"
	"mimir/internal/frontend"
)

// compileNumericExpr compiles a PDDL numeric expression — a numeral, a
// function application, or a binary arithmetic form — into the lifted
// formalism.NumericExpr tree (spec.md §3 "Effect"'s numeric-expression
// grammar). Function applications resolve their own argument terms
// through sc, so a numeric expression may reference the enclosing
// schema/axiom's parameters just like a predicate atom can.
func compileNumericExpr(sc *scope, s frontend.Sexpr) (formalism.NumericExpr, error) {
	if s.IsAtom() {
		if v, err := strconv.ParseFloat(s.Atom, 64); err == nil {
			return formalism.Constant{Value: v}, nil
		}
		return nil, fmt.Errorf("translate: %q is neither a number nor a function application", s.Atom)
	}
	if len(s.List) == 0 {
		return nil, fmt.Errorf("translate: empty numeric expression")
	}

	switch s.head() {
	case "+", "-", "*", "/":
		if len(s.List) != 3 {
			return nil, fmt.Errorf("translate: %s takes exactly two operands", s.head())
		}
		left, err := compileNumericExpr(sc, s.List[1])
		if err != nil {
			return nil, err
		}
		right, err := compileNumericExpr(sc, s.List[2])
		if err != nil {
			return nil, err
		}
		return formalism.BinaryExpr{Op: arithOp(s.head()), Left: left, Right: right}, nil

	default:
		ft, err := compileFunctionTerm(sc, s)
		if err != nil {
			return nil, err
		}
		return formalism.FunctionValue{Term: ft}, nil
	}
}

// compileFunctionTerm resolves a bare function application, e.g. (fuel
// ?truck). Shared by compileNumericExpr's default case and effect.go's
// numeric-effect target, which must always be a function application
// rather than a general expression.
func compileFunctionTerm(sc *scope, s frontend.Sexpr) (formalism.FunctionTerm, error) {
	if s.IsAtom() || len(s.List) == 0 {
		return formalism.FunctionTerm{}, fmt.Errorf("translate: expected a function application, got %s", s)
	}
	fn, ok := sc.repo.FunctionByName(s.List[0].Atom)
	if !ok {
		return formalism.FunctionTerm{}, fmt.Errorf("translate: undeclared function %q", s.List[0].Atom)
	}
	terms := make([]formalism.Term, len(s.List)-1)
	for i, t := range s.List[1:] {
		if !t.IsAtom() {
			return formalism.FunctionTerm{}, fmt.Errorf("translate: function argument must be a symbol, got %s", t)
		}
		term, err := sc.resolveTerm(t.Atom)
		if err != nil {
			return formalism.FunctionTerm{}, err
		}
		terms[i] = term
	}
	return formalism.FunctionTerm{Function: fn, Terms: terms}, nil
}

func arithOp(op string) formalism.ArithOp {
	switch op {
	case "+":
		return formalism.OpAdd
	case "-":
		return formalism.OpSub
	case "*":
		return formalism.OpMul
	default:
		return formalism.OpDiv
	}
}
