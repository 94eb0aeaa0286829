package translate

import (
	"fmt"
	"strconv"

	"mimir/internal/formalism"
	"mimir/internal/frontend"
	"mimir/internal/index"
)

// Translate compiles a raw parsed domain+problem pair into the
// category-split, NNF'd, parameter-indexed formalism.Domain/Problem the
// core engine operates on (spec.md §3's Translator Pipeline). A single
// Repository backs both, since a Problem's objects are interned
// alongside its Domain's constants into one shared index space (spec.md
// §9 "problem-local only").
func Translate(rd *frontend.RawDomain, rp *frontend.RawProblem) (*formalism.Domain, *formalism.Problem, error) {
	repo := formalism.NewRepository()
	fresh := new(int)

	registerTypes(repo, rd.Types)

	var objects []index.Index
	objects = append(objects, registerObjects(repo, rd.Constants)...)
	objects = append(objects, registerObjects(repo, rp.Objects)...)

	eqPred := repo.InternPredicate("=", 2, formalism.Static)
	var eqAtoms []formalism.GroundAtom
	for _, obj := range objects {
		eqAtoms = append(eqAtoms, formalism.GroundAtom{Predicate: eqPred, Objects: []index.Index{obj, obj}})
	}

	for _, fn := range rd.Functions {
		repo.InternFunction(fn.Name, len(fn.Params), formalism.FluentFunction)
	}

	predDecls := make(map[string]frontend.RawPredicateDecl, len(rd.Predicates))
	for _, p := range rd.Predicates {
		repo.InternPredicate(p.Name, len(p.Params), formalism.Static)
		predDecls[p.Name] = p
	}
	classifyCategories(repo, rd)

	domain := &formalism.Domain{Name: rd.Name, Repo: repo}

	for _, ax := range rd.Axioms {
		a, err := translateAxiom(repo, predDecls, ax, fresh)
		if err != nil {
			return nil, nil, fmt.Errorf("translate: axiom %s: %w", ax.Head, err)
		}
		repo.AddAxiom(a)
	}

	for _, act := range rd.Actions {
		schema, err := translateAction(repo, act, fresh)
		if err != nil {
			return nil, nil, fmt.Errorf("translate: action %s: %w", act.Name, err)
		}
		repo.AddActionSchema(schema)
	}

	problem := &formalism.Problem{Name: rp.Name, Domain: domain, Repo: repo, Objects: objects}
	problem.InitialStaticAtoms = append(problem.InitialStaticAtoms, eqAtoms...)

	if err := translateInit(repo, rp.Init, problem); err != nil {
		return nil, nil, fmt.Errorf("translate: :init: %w", err)
	}

	goalScope := newScope(repo, nil, fresh)
	problem.Goal = formalism.ConjunctiveCondition{}
	if err := compileConjunction(goalScope, rp.Goal, true, &problem.Goal); err != nil {
		return nil, nil, fmt.Errorf("translate: :goal: %w", err)
	}

	if rp.Metric != nil {
		expr, err := compileNumericExpr(goalScope, rp.Metric.Expr)
		if err != nil {
			return nil, nil, fmt.Errorf("translate: :metric: %w", err)
		}
		problem.Metric = &formalism.Metric{Minimize: rp.Metric.Minimize, Expr: expr}
	}

	problem.InternStaticExtension()
	return domain, problem, nil
}

func registerTypes(repo *formalism.Repository, decls []frontend.RawTypeDecl) {
	for _, d := range decls {
		repo.InternType(d.Name, index.MaxIndex)
	}
	for _, d := range decls {
		if d.Parent == "" {
			continue
		}
		childIdx := repo.InternType(d.Name, index.MaxIndex)
		parentIdx := repo.InternType(d.Parent, index.MaxIndex)
		repo.Types[childIdx].Parent = parentIdx
	}
}

func registerObjects(repo *formalism.Repository, decls []frontend.RawObjectDecl) []index.Index {
	out := make([]index.Index, len(decls))
	for i, d := range decls {
		out[i] = repo.InternObject(d.Name, resolveTypes(repo, d.Types))
	}
	return out
}

// classifyCategories assigns each declared predicate its Category (spec.md
// §3 "Predicate & Atom"): Derived if it is some axiom's head, Fluent if
// some action ever adds or deletes it, Static otherwise. A predicate
// referenced by an axiom head or action effect but never declared in
// :predicates (permitted by some PDDL dialects) is interned here too.
func classifyCategories(repo *formalism.Repository, rd *frontend.RawDomain) {
	for _, ax := range rd.Axioms {
		if len(ax.Head.List) == 0 {
			continue
		}
		name := ax.Head.List[0].Atom
		arity := len(ax.Head.List) - 1
		idx, ok := repo.PredicateByName(name)
		if !ok {
			idx = repo.InternPredicate(name, arity, formalism.Derived)
		}
		repo.Predicates[idx].Category = formalism.Derived
	}
	for _, act := range rd.Actions {
		for _, ref := range rawEffectAtoms(act.Effect) {
			idx, ok := repo.PredicateByName(ref.name)
			if !ok {
				idx = repo.InternPredicate(ref.name, ref.arity, formalism.Fluent)
			}
			if repo.Predicates[idx].Category != formalism.Derived {
				repo.Predicates[idx].Category = formalism.Fluent
			}
		}
	}
}

type rawAtomRef struct {
	name  string
	arity int
}

// rawEffectAtoms walks an effect Sexpr before any repository/scope exists,
// collecting the (name, arity) of every plain or negated atom effect it
// reaches through and/when/forall nesting — enough to classify a
// predicate as Fluent without compiling the effect yet.
func rawEffectAtoms(s frontend.Sexpr) []rawAtomRef {
	if s.IsAtom() || len(s.List) == 0 {
		return nil
	}
	switch s.head() {
	case "and":
		var out []rawAtomRef
		for _, c := range s.List[1:] {
			out = append(out, rawEffectAtoms(c)...)
		}
		return out
	case "when":
		if len(s.List) != 3 {
			return nil
		}
		return rawEffectAtoms(s.List[2])
	case "forall":
		if len(s.List) != 3 {
			return nil
		}
		return rawEffectAtoms(s.List[2])
	case "not":
		if len(s.List) != 2 || s.List[1].IsAtom() {
			return nil
		}
		return []rawAtomRef{{name: s.List[1].List[0].Atom, arity: len(s.List[1].List) - 1}}
	case "assign", "increase", "decrease", "scale-up", "scale-down":
		return nil
	default:
		return []rawAtomRef{{name: s.List[0].Atom, arity: len(s.List) - 1}}
	}
}

func translateAction(repo *formalism.Repository, act frontend.RawAction, fresh *int) (formalism.ActionSchema, error) {
	params := rawParamsToVariables(repo, act.Parameters)
	sc := newScope(repo, params, fresh)

	var cc formalism.ConjunctiveCondition
	cc.Parameters = params
	if err := compileConjunction(sc, act.Precondition, true, &cc); err != nil {
		return formalism.ActionSchema{}, err
	}
	effects, err := compileActionEffect(sc, act.Effect)
	if err != nil {
		return formalism.ActionSchema{}, err
	}
	return formalism.ActionSchema{Name: act.Name, Parameters: params, Precondition: cc, Effects: effects}, nil
}

// translateAxiom builds an axiom's own parameter list from its head's
// variable names, looking up each one's declared type from the matching
// :predicates entry (a (:derived ...) head carries no type annotations of
// its own — it reapplies an already-declared predicate's signature).
func translateAxiom(repo *formalism.Repository, predDecls map[string]frontend.RawPredicateDecl, ax frontend.RawAxiom, fresh *int) (formalism.Axiom, error) {
	if len(ax.Head.List) == 0 {
		return formalism.Axiom{}, fmt.Errorf("empty head")
	}
	name := ax.Head.List[0].Atom
	decl, hasDecl := predDecls[name]

	params := make([]formalism.Variable, len(ax.Head.List)-1)
	for i, arg := range ax.Head.List[1:] {
		var types []string
		if hasDecl && i < len(decl.Params) {
			types = decl.Params[i].Types
		}
		params[i] = formalism.Variable{Index: index.Index(i), Name: arg.Atom, ParameterIndex: i, Types: resolveTypes(repo, types)}
	}

	predIdx, ok := repo.PredicateByName(name)
	if !ok {
		return formalism.Axiom{}, fmt.Errorf("undeclared derived predicate %q", name)
	}
	headTerms := make([]formalism.Term, len(params))
	for i := range params {
		headTerms[i] = formalism.VariableTerm(index.Index(i))
	}

	sc := newScope(repo, params, fresh)
	var cc formalism.ConjunctiveCondition
	cc.Parameters = params
	if err := compileConjunction(sc, ax.Body, true, &cc); err != nil {
		return formalism.Axiom{}, err
	}
	return formalism.Axiom{Parameters: params, Precondition: cc, Head: formalism.Atom{Predicate: predIdx, Terms: headTerms}}, nil
}

// translateInit classifies each :init fact as a static/fluent ground atom
// or a numeric-function initial value (spec.md §3 "State").
func translateInit(repo *formalism.Repository, facts []frontend.Sexpr, problem *formalism.Problem) error {
	for _, f := range facts {
		if f.IsAtom() || len(f.List) == 0 {
			return fmt.Errorf("malformed :init fact %s", f)
		}
		if f.head() == "=" {
			if len(f.List) != 3 {
				return fmt.Errorf("malformed numeric init %s", f)
			}
			ft, err := compileGroundFunctionTerm(repo, f.List[1])
			if err != nil {
				return err
			}
			val, err := strconv.ParseFloat(f.List[2].Atom, 64)
			if err != nil {
				return fmt.Errorf("non-numeric initial value in %s", f)
			}
			problem.InitialNumericInits = append(problem.InitialNumericInits, formalism.NumericFluentInit{
				Term:  ft,
				Value: val,
			})
			continue
		}
		atom, err := compileGroundAtom(repo, f)
		if err != nil {
			return err
		}
		switch repo.Predicates[atom.Predicate].Category {
		case formalism.Fluent:
			problem.InitialFluentAtoms = append(problem.InitialFluentAtoms, atom)
		default:
			problem.InitialStaticAtoms = append(problem.InitialStaticAtoms, atom)
		}
	}
	return nil
}

func compileGroundAtom(repo *formalism.Repository, s frontend.Sexpr) (formalism.GroundAtom, error) {
	predIdx, ok := repo.PredicateByName(s.List[0].Atom)
	if !ok {
		return formalism.GroundAtom{}, fmt.Errorf("undeclared predicate %q", s.List[0].Atom)
	}
	objs := make([]index.Index, len(s.List)-1)
	for i, arg := range s.List[1:] {
		obj, ok := repo.ObjectByName(arg.Atom)
		if !ok {
			return formalism.GroundAtom{}, fmt.Errorf("undeclared object %q", arg.Atom)
		}
		objs[i] = obj
	}
	return formalism.GroundAtom{Predicate: predIdx, Objects: objs}, nil
}

func compileGroundFunctionTerm(repo *formalism.Repository, s frontend.Sexpr) (formalism.GroundFunctionTerm, error) {
	if s.IsAtom() || len(s.List) == 0 {
		return formalism.GroundFunctionTerm{}, fmt.Errorf("expected a function application, got %s", s)
	}
	fn, ok := repo.FunctionByName(s.List[0].Atom)
	if !ok {
		return formalism.GroundFunctionTerm{}, fmt.Errorf("undeclared function %q", s.List[0].Atom)
	}
	objs := make([]index.Index, len(s.List)-1)
	for i, arg := range s.List[1:] {
		obj, ok := repo.ObjectByName(arg.Atom)
		if !ok {
			return formalism.GroundFunctionTerm{}, fmt.Errorf("undeclared object %q", arg.Atom)
		}
		objs[i] = obj
	}
	return formalism.GroundFunctionTerm{Function: fn, Objects: objs}, nil
}
