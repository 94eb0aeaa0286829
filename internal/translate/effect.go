package translate

import (
	"fmt"

	"mimir/internal/formalism"
	"mimir/internal/frontend"
	"mimir/internal/index"
)

// compileActionEffect is the ENF (effect normal form) half of the
// translator: it flattens (and ...) nesting, expands every (forall ...)
// effect into one concrete effect per matching object combination (so
// internal/lifted's grounder never needs to enumerate forall-bound
// objects itself), and splits (when cond eff) into its own
// ConditionalEffect. Every unconditional atom/numeric effect reached
// directly (not under a when) is bundled into a single ConditionalEffect
// with an empty (vacuously true) Condition.
func compileActionEffect(sc *scope, s frontend.Sexpr) ([]formalism.ConditionalEffect, error) {
	var base formalism.ConjunctiveEffect
	var extra []formalism.ConditionalEffect
	if err := collectEffect(sc, s, &base, &extra); err != nil {
		return nil, err
	}
	var out []formalism.ConditionalEffect
	if len(base.AtomEffects) > 0 || len(base.NumericEffects) > 0 {
		out = append(out, formalism.ConditionalEffect{Effect: base})
	}
	return append(out, extra...), nil
}

func collectEffect(sc *scope, s frontend.Sexpr, base *formalism.ConjunctiveEffect, extra *[]formalism.ConditionalEffect) error {
	if s.IsAtom() && s.Atom == "" {
		return nil // no effect
	}
	if s.IsAtom() {
		return fmt.Errorf("translate: bare symbol %q is not an effect", s.Atom)
	}

	switch s.head() {
	case "and":
		for _, child := range s.List[1:] {
			if err := collectEffect(sc, child, base, extra); err != nil {
				return err
			}
		}
		return nil

	case "when":
		if len(s.List) != 3 {
			return fmt.Errorf("translate: (when cond eff) takes exactly two arguments")
		}
		cc := formalism.ConjunctiveCondition{Parameters: sc.params}
		if err := compileConjunction(sc, s.List[1], true, &cc); err != nil {
			return err
		}
		var inner formalism.ConjunctiveEffect
		if err := collectEffect(sc, s.List[2], &inner, extra); err != nil {
			return err
		}
		if len(inner.AtomEffects) > 0 || len(inner.NumericEffects) > 0 {
			*extra = append(*extra, formalism.ConditionalEffect{Condition: cc, Effect: inner})
		}
		return nil

	case "forall":
		if len(s.List) != 3 {
			return fmt.Errorf("translate: (forall (vars) eff) takes exactly two arguments")
		}
		vars := frontend.ParseParams(s.List[1].List)
		names := make([]string, len(vars))
		for i, v := range vars {
			names[i] = v.Name
		}
		for _, combo := range objectCombinations(sc.repo, vars) {
			child := sc.withOverrides(names, combo)
			if err := collectEffect(child, s.List[2], base, extra); err != nil {
				return err
			}
		}
		return nil

	case "not":
		if len(s.List) != 2 {
			return fmt.Errorf("translate: (not ...) effect takes exactly one argument")
		}
		atom, err := compileEffectAtom(sc, s.List[1])
		if err != nil {
			return err
		}
		base.AtomEffects = append(base.AtomEffects, formalism.AtomEffect{Atom: atom, Add: false})
		return nil

	case "assign", "increase", "decrease", "scale-up", "scale-down":
		ne, err := compileNumericEffect(sc, s)
		if err != nil {
			return err
		}
		base.NumericEffects = append(base.NumericEffects, ne)
		return nil

	default:
		atom, err := compileEffectAtom(sc, s)
		if err != nil {
			return err
		}
		base.AtomEffects = append(base.AtomEffects, formalism.AtomEffect{Atom: atom, Add: true})
		return nil
	}
}

func compileEffectAtom(sc *scope, s frontend.Sexpr) (formalism.Atom, error) {
	lit, err := compilePredicateAtom(sc, s, true)
	if err != nil {
		return formalism.Atom{}, err
	}
	return lit.Atom, nil
}

func compileNumericEffect(sc *scope, s frontend.Sexpr) (formalism.NumericEffect, error) {
	if len(s.List) != 3 {
		return formalism.NumericEffect{}, fmt.Errorf("translate: %s takes exactly two arguments", s.head())
	}
	target, err := compileFunctionTerm(sc, s.List[1])
	if err != nil {
		return formalism.NumericEffect{}, err
	}
	expr, err := compileNumericExpr(sc, s.List[2])
	if err != nil {
		return formalism.NumericEffect{}, err
	}
	return formalism.NumericEffect{Target: target, Op: assignOp(s.head()), Expr: expr}, nil
}

func assignOp(head string) formalism.NumericAssignOp {
	switch head {
	case "increase":
		return formalism.AssignIncrease
	case "decrease":
		return formalism.AssignDecrease
	case "scale-up":
		return formalism.AssignScaleUp
	case "scale-down":
		return formalism.AssignScaleDown
	default:
		return formalism.AssignSet
	}
}

// objectCombinations enumerates every tuple of objects matching vars'
// respective type constraints, in declaration order — the cartesian
// product a (forall ...) effect ranges over once flattened.
func objectCombinations(repo *formalism.Repository, vars []frontend.RawParam) [][]index.Index {
	if len(vars) == 0 {
		return [][]index.Index{nil}
	}
	candidates := make([][]index.Index, len(vars))
	for i, v := range vars {
		candidates[i] = candidatesForTypes(repo, v.Types)
	}
	var out [][]index.Index
	var rec func(i int, cur []index.Index)
	rec = func(i int, cur []index.Index) {
		if i == len(vars) {
			out = append(out, append([]index.Index(nil), cur...))
			return
		}
		for _, obj := range candidates[i] {
			rec(i+1, append(cur, obj))
		}
	}
	rec(0, nil)
	return out
}

func candidatesForTypes(repo *formalism.Repository, typeNames []string) []index.Index {
	if len(typeNames) == 0 {
		out := make([]index.Index, len(repo.Objects))
		for i := range repo.Objects {
			out[i] = index.Index(i)
		}
		return out
	}
	types := resolveTypes(repo, typeNames)
	var out []index.Index
	for i := range repo.Objects {
		obj := index.Index(i)
		for _, t := range types {
			if repo.IsOfType(obj, t) {
				out = append(out, obj)
				break
			}
		}
	}
	return out
}
