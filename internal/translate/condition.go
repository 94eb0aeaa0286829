package translate

import (
	"fmt"
	"strconv"

	"mimir/internal/formalism"
	"mimir/internal/frontend"
	"mimir/internal/index"
)

// variableTerms builds the identity binding (?0, ?1, ..., ?n-1) used as a
// fresh derived predicate's argument list: it always ranges over exactly
// the enclosing scope's own parameters, in order.
func variableTerms(n int) []formalism.Term {
	out := make([]formalism.Term, n)
	for i := range out {
		out[i] = formalism.VariableTerm(index.Index(i))
	}
	return out
}

func isFloatLiteral(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// compileConjunction pushes s into negation normal form as it descends
// (spec.md §6 "pushes negation to literals") and appends the resulting
// literals/numeric constraints into cc under context polarity positive.
// Disjunction and quantifiers can't be expressed inside a single
// conjunction, so each is compiled into a fresh derived predicate (an
// axiom introduction) and appended as one literal referencing it — the
// translator's "eliminates universal quantifiers" / "normalises
// disjunction away (via axiom introduction)".
func compileConjunction(sc *scope, s frontend.Sexpr, positive bool, cc *formalism.ConjunctiveCondition) error {
	if s.IsAtom() && s.Atom == "" {
		return nil // absent precondition/body, or "()": vacuously true
	}
	if s.IsAtom() {
		return fmt.Errorf("translate: bare symbol %q is not a condition", s.Atom)
	}

	switch s.head() {
	case "and":
		for _, child := range s.List[1:] {
			if err := compileConjunction(sc, child, positive, cc); err != nil {
				return err
			}
		}
		return nil

	case "or":
		if !positive {
			for _, child := range s.List[1:] {
				if err := compileConjunction(sc, child, false, cc); err != nil {
					return err
				}
			}
			return nil
		}
		lit, err := compileOrOfChildren(sc, s.List[1:], true)
		if err != nil {
			return err
		}
		appendLiteral(sc, cc, lit)
		return nil

	case "not":
		if len(s.List) != 2 {
			return fmt.Errorf("translate: (not ...) takes exactly one argument")
		}
		return compileConjunction(sc, s.List[1], !positive, cc)

	case "forall":
		vars, body, err := parseQuantifier(s)
		if err != nil {
			return err
		}
		lit, err := compileExistsAxiom(sc, vars, body, false)
		if err != nil {
			return err
		}
		lit.Positive = !positive
		appendLiteral(sc, cc, lit)
		return nil

	case "exists":
		vars, body, err := parseQuantifier(s)
		if err != nil {
			return err
		}
		lit, err := compileExistsAxiom(sc, vars, body, true)
		if err != nil {
			return err
		}
		lit.Positive = positive
		appendLiteral(sc, cc, lit)
		return nil

	case "=", "<", "<=", ">", ">=":
		return compileComparison(sc, s, positive, cc)

	default:
		lit, err := compilePredicateAtom(sc, s, positive)
		if err != nil {
			return err
		}
		appendLiteral(sc, cc, lit)
		return nil
	}
}

// appendLiteral routes a compiled literal to cc's nullary or per-category
// literal list by the referenced predicate's category and arity (spec.md
// §3: arity-0 literals need no binding and are stored separately).
func appendLiteral(sc *scope, cc *formalism.ConjunctiveCondition, lit formalism.Literal) {
	cat := sc.repo.Predicates[lit.Atom.Predicate].Category
	if len(lit.Atom.Terms) == 0 {
		cc.NullaryLiterals[cat] = append(cc.NullaryLiterals[cat], formalism.GroundLiteral{Atom: formalism.GroundAtom{Predicate: lit.Atom.Predicate}, Positive: lit.Positive})
		return
	}
	cc.Literals[cat] = append(cc.Literals[cat], lit)
}

func compilePredicateAtom(sc *scope, s frontend.Sexpr, positive bool) (formalism.Literal, error) {
	name := s.List[0].Atom
	predIdx, ok := sc.repo.PredicateByName(name)
	if !ok {
		return formalism.Literal{}, fmt.Errorf("translate: undeclared predicate %q", name)
	}
	terms := make([]formalism.Term, len(s.List)-1)
	for i, t := range s.List[1:] {
		if !t.IsAtom() {
			return formalism.Literal{}, fmt.Errorf("translate: predicate argument must be a symbol, got %s", t)
		}
		term, err := sc.resolveTerm(t.Atom)
		if err != nil {
			return formalism.Literal{}, err
		}
		terms[i] = term
	}
	return formalism.Literal{Atom: formalism.Atom{Predicate: predIdx, Terms: terms}, Positive: positive}, nil
}

// compileComparison distinguishes object equality ("=" between two
// variable/object symbols, compiled against the built-in "=" predicate
// populated reflexively over every object) from a numeric comparison
// (either side is a function application or numeral literal).
func compileComparison(sc *scope, s frontend.Sexpr, positive bool, cc *formalism.ConjunctiveCondition) error {
	if len(s.List) != 3 {
		return fmt.Errorf("translate: %s takes exactly two arguments", s.head())
	}
	left, right := s.List[1], s.List[2]
	if s.head() == "=" && !isNumericSide(sc, left) && !isNumericSide(sc, right) {
		lt, err := sc.resolveTerm(left.Atom)
		if err != nil {
			return err
		}
		rt, err := sc.resolveTerm(right.Atom)
		if err != nil {
			return err
		}
		eqIdx, _ := sc.repo.PredicateByName("=")
		appendLiteral(sc, cc, formalism.Literal{Atom: formalism.Atom{Predicate: eqIdx, Terms: []formalism.Term{lt, rt}}, Positive: positive})
		return nil
	}

	lexpr, err := compileNumericExpr(sc, left)
	if err != nil {
		return err
	}
	rexpr, err := compileNumericExpr(sc, right)
	if err != nil {
		return err
	}
	cmp := numericComparator(s.head())
	if !positive {
		cmp = negateComparator(cmp)
	}
	cc.Numeric = append(cc.Numeric, formalism.NumericConstraint{Comparator: cmp, Left: lexpr, Right: rexpr})
	return nil
}

func numericComparator(op string) formalism.Comparator {
	switch op {
	case "<":
		return formalism.CmpLT
	case "<=":
		return formalism.CmpLE
	case ">":
		return formalism.CmpGT
	case ">=":
		return formalism.CmpGE
	default:
		return formalism.CmpEQ
	}
}

func negateComparator(c formalism.Comparator) formalism.Comparator {
	switch c {
	case formalism.CmpLT:
		return formalism.CmpGE
	case formalism.CmpLE:
		return formalism.CmpGT
	case formalism.CmpGT:
		return formalism.CmpLE
	case formalism.CmpGE:
		return formalism.CmpLT
	case formalism.CmpEQ:
		return formalism.CmpNE
	default:
		return formalism.CmpEQ
	}
}

func parseQuantifier(s frontend.Sexpr) ([]frontend.RawParam, frontend.Sexpr, error) {
	if len(s.List) != 3 {
		return nil, frontend.Sexpr{}, fmt.Errorf("translate: %s takes (vars) (body)", s.head())
	}
	return frontend.ParseParams(s.List[1].List), s.List[2], nil
}

// compileOrOfChildren introduces one fresh derived predicate and one axiom
// per child (each axiom's body is child compiled at childPositive polarity
// against the enclosing scope's own parameters — no new variables are
// introduced by disjunction), returning a positive literal referencing it.
func compileOrOfChildren(sc *scope, children []frontend.Sexpr, childPositive bool) (formalism.Literal, error) {
	name := sc.freshName("or")
	predIdx := sc.repo.InternPredicate(name, len(sc.params), formalism.Derived)
	terms := variableTerms(len(sc.params))

	for _, child := range children {
		cc := formalism.ConjunctiveCondition{Parameters: sc.params}
		if err := compileConjunction(sc, child, childPositive, &cc); err != nil {
			return formalism.Literal{}, err
		}
		sc.repo.AddAxiom(formalism.Axiom{Parameters: sc.params, Precondition: cc, Head: formalism.Atom{Predicate: predIdx, Terms: terms}})
	}
	return formalism.Literal{Atom: formalism.Atom{Predicate: predIdx, Terms: terms}, Positive: true}, nil
}

// compileExistsAxiom introduces one fresh derived predicate over the
// enclosing scope's own parameters (the quantified variables are existential
// inside the axiom body, never part of its head) and returns a positive
// literal referencing it (spec.md §6's "eliminates universal quantifiers":
// forall is compiled by negating both the body and the caller's use of this
// literal — see the forall case in compileConjunction).
func compileExistsAxiom(sc *scope, quantVars []frontend.RawParam, body frontend.Sexpr, bodyPositive bool) (formalism.Literal, error) {
	name := sc.freshName("ex")
	newParams := make([]formalism.Variable, 0, len(sc.params)+len(quantVars))
	newParams = append(newParams, sc.params...)
	for i, v := range quantVars {
		pos := len(sc.params) + i
		newParams = append(newParams, formalism.Variable{
			Index:          index.Index(pos),
			Name:           v.Name,
			ParameterIndex: pos,
			Types:          resolveTypes(sc.repo, v.Types),
		})
	}
	predIdx := sc.repo.InternPredicate(name, len(sc.params), formalism.Derived)
	headTerms := variableTerms(len(sc.params))

	inner := newScope(sc.repo, newParams, sc.fresh)
	cc := formalism.ConjunctiveCondition{Parameters: newParams}
	if err := compileConjunction(inner, body, bodyPositive, &cc); err != nil {
		return formalism.Literal{}, err
	}
	sc.repo.AddAxiom(formalism.Axiom{Parameters: newParams, Precondition: cc, Head: formalism.Atom{Predicate: predIdx, Terms: headTerms}})

	return formalism.Literal{Atom: formalism.Atom{Predicate: predIdx, Terms: headTerms}, Positive: true}, nil
}

func isNumericSide(sc *scope, s frontend.Sexpr) bool {
	if s.IsAtom() {
		return isFloatLiteral(s.Atom)
	}
	if len(s.List) == 0 {
		return false
	}
	_, ok := sc.repo.FunctionByName(s.List[0].Atom)
	return ok
}
