// Package lifted implements spec.md §4.4's lifted applicable-action
// generator: per action schema, a consistency-graph-pruned k-clique search
// over candidate object bindings, followed by exact verification and a
// grounding cache keyed by the winning binding so repeated states reuse
// already-built GroundActions instead of re-substituting their effects.
package lifted

import (
	"fmt"
	"strings"

	"mimir/internal/formalism"
	"mimir/internal/graph"
	"mimir/internal/index"
	"mimir/internal/kpkc"
	"mimir/internal/logging"
	"mimir/internal/state"
)

// Generator produces the applicable ground actions of one action schema
// against a given packed state.
type Generator struct {
	repo       *formalism.Repository
	problem    *formalism.Problem
	schema     *formalism.ActionSchema
	candidates [][]index.Index
	static     *graph.AssignmentSet
	// cache is the per-schema grounding table of spec.md's SUPPLEMENTED
	// FEATURES (original_source/formalism/grounding_table.hpp): once a
	// binding has been verified and ground once, its GroundAction is reused
	// verbatim on every later state where the same binding is applicable.
	cache map[string]*formalism.GroundAction
	log   *logging.Logger
}

// NewGenerator builds the static (state-independent) half of a schema's
// generator: type-filtered candidate object lists per parameter and the
// static assignment set, computed once per problem (spec.md §4.4 step 1
// distinguishes this precompute from the per-state dynamic half).
func NewGenerator(repo *formalism.Repository, problem *formalism.Problem, schema *formalism.ActionSchema) *Generator {
	candidates := make([][]index.Index, len(schema.Parameters))
	for i, p := range schema.Parameters {
		candidates[i] = candidatesForParameter(repo, problem, p)
	}
	return &Generator{
		repo:       repo,
		problem:    problem,
		schema:     schema,
		candidates: candidates,
		static:     graph.BuildStatic(repo, problem.InitialStaticAtoms),
		cache:      make(map[string]*formalism.GroundAction),
		log:        logging.For(logging.CategoryGrounding),
	}
}

func candidatesForParameter(repo *formalism.Repository, problem *formalism.Problem, p formalism.Variable) []index.Index {
	if len(p.Types) == 0 {
		return append([]index.Index(nil), problem.Objects...)
	}
	var out []index.Index
	for _, o := range problem.Objects {
		for _, t := range p.Types {
			if repo.IsOfType(o, t) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// Generate returns every ground action of this schema applicable in s.
func (g *Generator) Generate(s state.Packed) []*formalism.GroundAction {
	dynamic := graph.BuildDynamic(g.repo, s.Fluent, s.Derived)
	sets := graph.Sets{Static: g.static, Fluent: dynamic, Derived: dynamic}

	cg := graph.BuildConsistencyGraph(g.repo, g.schema, g.candidates, sets)
	adjacent := func(v1, v2 graph.Vertex) bool { return graph.Adjacent(g.repo, g.schema, v1, v2, sets) }

	var out []*formalism.GroundAction
	enum := kpkc.New(cg, adjacent)
	for {
		clique, ok := enum.Next()
		if !ok {
			break
		}
		binding := bindingOf(clique, len(g.schema.Parameters))
		if !g.verify(s, binding) {
			continue
		}
		out = append(out, g.ground(binding))
	}
	return out
}

// CachedActions returns every ground action this generator has produced so
// far, in no particular order. Used by internal/grounded's delete-relaxed
// precompute phase to collect the full reachable action set once the
// relaxed fixpoint has stabilized (spec.md §4.6: "Ground each reachable
// action in full ... feed the resulting action list to the match tree
// builder").
func (g *Generator) CachedActions() []*formalism.GroundAction {
	out := make([]*formalism.GroundAction, 0, len(g.cache))
	for _, a := range g.cache {
		out = append(out, a)
	}
	return out
}

func bindingOf(clique []graph.Vertex, n int) []index.Index {
	b := make([]index.Index, n)
	for _, v := range clique {
		b[v.Param] = v.Object
	}
	return b
}

// verify re-checks the full (non-pairwise-approximated) precondition
// against the actual state, since the consistency graph only guarantees
// pairwise (unary/binary) position consistency — a safety net against the
// assignment set's approximation for literals of arity > 2 or conjunctions
// where position-pairwise consistency doesn't imply joint consistency.
func (g *Generator) verify(s state.Packed, binding []index.Index) bool {
	r := newResolver(g.schema.Parameters)
	for cat, lits := range g.schema.Precondition.Literals {
		for _, l := range lits {
			ga := r.atom(l.Atom, binding)
			var holds bool
			switch formalism.Category(cat) {
			case formalism.Static:
				holds = g.repo.StaticAtomHolds(ga)
			case formalism.Fluent:
				idx, ok := g.repo.GroundAtomIndex(formalism.Fluent, ga)
				holds = ok && s.Fluent.Test(int(idx))
			case formalism.Derived:
				idx, ok := g.repo.GroundAtomIndex(formalism.Derived, ga)
				holds = ok && s.Derived.Test(int(idx))
			}
			if holds != l.Positive {
				return false
			}
		}
	}
	for cat, nulls := range g.schema.Precondition.NullaryLiterals {
		for _, gl := range nulls {
			var holds bool
			switch formalism.Category(cat) {
			case formalism.Static:
				holds = g.repo.StaticAtomHolds(gl.Atom)
			case formalism.Fluent:
				idx, ok := g.repo.GroundAtomIndex(formalism.Fluent, gl.Atom)
				holds = ok && s.Fluent.Test(int(idx))
			case formalism.Derived:
				idx, ok := g.repo.GroundAtomIndex(formalism.Derived, gl.Atom)
				holds = ok && s.Derived.Test(int(idx))
			}
			if holds != gl.Positive {
				return false
			}
		}
	}
	for _, c := range g.schema.Precondition.Numeric {
		gc := r.numericConstraints(g.repo, []formalism.NumericConstraint{c}, binding)[0]
		if !evalGroundConstraint(gc, s.Numeric) {
			return false
		}
	}
	return true
}

// ground materializes (or fetches from cache) the GroundAction for binding.
func (g *Generator) ground(binding []index.Index) *formalism.GroundAction {
	key := cacheKey(binding)
	if cached, ok := g.cache[key]; ok {
		return cached
	}

	r := newResolver(g.schema.Parameters)
	ga := &formalism.GroundAction{
		Schema:  g.schema.Index,
		Binding: append([]index.Index(nil), binding...),

		StaticLiterals:  r.literals(g.schema.Precondition.Literals[formalism.Static], binding),
		FluentLiterals:  r.literals(g.schema.Precondition.Literals[formalism.Fluent], binding),
		DerivedLiterals: r.literals(g.schema.Precondition.Literals[formalism.Derived], binding),
		Numeric:         r.numericConstraints(g.repo, g.schema.Precondition.Numeric, binding),

		Cost: 1,
	}
	if g.schema.Cost != nil {
		ge := r.numericExpr(g.repo, g.schema.Cost, binding)
		ga.Cost = evalGroundExprPure(ge)
	}

	for _, ce := range g.schema.Effects {
		ga.Effects = append(ga.Effects, g.groundEffect(ce, binding))
	}

	g.cache[key] = ga
	g.log.Debug("grounded action")
	return ga
}

// groundEffect grounds a conditional effect against the schema binding as
// a single GroundConditionalEffect. It does not expand (forall) parameters:
// internal/translate expands every (forall ...) effect into one effect per
// object combination, so ce.Parameters is empty for translated schemas.
func (g *Generator) groundEffect(ce formalism.ConditionalEffect, binding []index.Index) formalism.GroundConditionalEffect {
	// The resolver is built from both parameter lists, but binding holds
	// objects for the schema's own parameters only.
	r := newResolver(g.schema.Parameters, ce.Parameters)
	return formalism.GroundConditionalEffect{
		StaticLiterals:  r.literals(ce.Condition.Literals[formalism.Static], binding),
		FluentLiterals:  r.literals(ce.Condition.Literals[formalism.Fluent], binding),
		DerivedLiterals: r.literals(ce.Condition.Literals[formalism.Derived], binding),
		Numeric:         r.numericConstraints(g.repo, ce.Condition.Numeric, binding),
		AtomEffects:     groundAtomEffects(r, ce.Effect.AtomEffects, binding),
		NumericEffects:  groundNumericEffects(r, g.repo, ce.Effect.NumericEffects, binding),
	}
}

func groundAtomEffects(r resolver, effs []formalism.AtomEffect, binding []index.Index) []formalism.GroundAtomEffect {
	out := make([]formalism.GroundAtomEffect, len(effs))
	for i, e := range effs {
		out[i] = formalism.GroundAtomEffect{Atom: r.atom(e.Atom, binding), Add: e.Add}
	}
	return out
}

func groundNumericEffects(r resolver, repo *formalism.Repository, effs []formalism.NumericEffect, binding []index.Index) []formalism.GroundNumericEffect {
	out := make([]formalism.GroundNumericEffect, len(effs))
	for i, e := range effs {
		term := r.functionTerm(e.Target, binding)
		slot := repo.InternGroundFunctionTerm(term)
		out[i] = formalism.GroundNumericEffect{
			Target: slot,
			Op:     e.Op,
			Expr:   r.numericExpr(repo, e.Expr, binding),
		}
	}
	return out
}

func cacheKey(binding []index.Index) string {
	var sb strings.Builder
	for _, b := range binding {
		fmt.Fprintf(&sb, "%d,", b)
	}
	return sb.String()
}

func evalGroundConstraint(c formalism.GroundNumericConstraint, numeric []float64) bool {
	l := evalGroundExpr(c.Left, numeric)
	rr := evalGroundExpr(c.Right, numeric)
	switch c.Comparator {
	case formalism.CmpLE:
		return l <= rr
	case formalism.CmpLT:
		return l < rr
	case formalism.CmpEQ:
		return l == rr
	case formalism.CmpGE:
		return l >= rr
	case formalism.CmpGT:
		return l > rr
	case formalism.CmpNE:
		return l != rr
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

// evalGroundExprPure evaluates a ground numeric expression with no state
// (every GroundFunctionValue reads as 0), used only for schema.Cost
// expressions that are expected to be constant (e.g. (= (total-cost) 1)).
func evalGroundExprPure(e formalism.GroundNumericExpr) float64 {
	return evalGroundExpr(e, nil)
}
