package axiom

import (
	"fmt"
	"strings"

	"mimir/internal/formalism"
	"mimir/internal/graph"
	"mimir/internal/index"
	"mimir/internal/kpkc"
	"mimir/internal/state"
)

// groundGenerator finds every ground instantiation of one axiom whose body
// holds against a given (fluent, derived-so-far) pair, the axiom analogue
// of internal/lifted.Generator (spec.md §4.7: "axioms are evaluated with
// the same binding-generation machinery as actions, minus effects").
type groundGenerator struct {
	repo       *formalism.Repository
	axiom      *formalism.Axiom
	candidates [][]index.Index
	static     *graph.AssignmentSet
	// cache mirrors internal/lifted.Generator's grounding cache: a binding
	// ground once is reused rather than re-substituted on every later
	// occurrence, and doubles as the source internal/grounded reads from to
	// build a per-stratum match tree over every reachable ground axiom.
	cache map[string]*formalism.GroundAxiom
}

func newGroundGenerator(repo *formalism.Repository, problem *formalism.Problem, ax *formalism.Axiom) *groundGenerator {
	candidates := make([][]index.Index, len(ax.Parameters))
	for i, p := range ax.Parameters {
		candidates[i] = candidatesForParameter(repo, problem, p)
	}
	return &groundGenerator{
		repo:       repo,
		axiom:      ax,
		candidates: candidates,
		static:     graph.BuildStatic(repo, problem.InitialStaticAtoms),
		cache:      make(map[string]*formalism.GroundAxiom),
	}
}

// CachedAxioms returns every GroundAxiom this generator has produced so
// far, in no particular order.
func (g *groundGenerator) CachedAxioms() []*formalism.GroundAxiom {
	out := make([]*formalism.GroundAxiom, 0, len(g.cache))
	for _, a := range g.cache {
		out = append(out, a)
	}
	return out
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

// schemaView adapts an Axiom's (Parameters, Precondition) to the shape
// internal/graph's consistency-graph builder expects, since that package
// is typed against *formalism.ActionSchema. Axioms and action schemas
// share the same parameter/precondition shape, so this is a zero-cost
// view rather than a duplicate data structure.
func (g *groundGenerator) schemaView() *formalism.ActionSchema {
	return &formalism.ActionSchema{Parameters: g.axiom.Parameters, Precondition: g.axiom.Precondition}
}

// derive returns every Head ground atom produced by axioms of this
// generator against the given fluent/derived-so-far bitsets.
func (g *groundGenerator) derive(fluent, derived state.Bitset) []formalism.GroundAtom {
	dynamic := graph.BuildDynamic(g.repo, fluent, derived)
	sets := graph.Sets{Static: g.static, Fluent: dynamic, Derived: dynamic}
	schema := g.schemaView()

	cg := graph.BuildConsistencyGraph(g.repo, schema, g.candidates, sets)
	adjacent := func(v1, v2 graph.Vertex) bool { return graph.Adjacent(g.repo, schema, v1, v2, sets) }

	var out []formalism.GroundAtom
	enum := kpkc.New(cg, adjacent)
	for {
		clique, ok := enum.Next()
		if !ok {
			break
		}
		binding := bindingOf(clique, len(g.axiom.Parameters))
		if !g.verify(fluent, derived, binding) {
			continue
		}
		out = append(out, g.ground(binding).Head)
	}
	return out
}

// ground materializes (or fetches from cache) the full GroundAxiom for
// binding, body literals included, for internal/grounded's match-tree
// indexing — derive above only needs the Head, but a cached full record
// costs nothing extra once verify has already run.
func (g *groundGenerator) ground(binding []index.Index) *formalism.GroundAxiom {
	key := cacheKey(binding)
	if cached, ok := g.cache[key]; ok {
		return cached
	}
	ga := &formalism.GroundAxiom{
		Axiom:   g.axiom.Index,
		Binding: append([]index.Index(nil), binding...),
		Head:    substituteAtomByVar(g.axiom.Parameters, g.axiom.Head, binding),
	}
	for cat, lits := range g.axiom.Precondition.Literals {
		resolved := make([]formalism.GroundLiteral, len(lits))
		for i, l := range lits {
			resolved[i] = formalism.GroundLiteral{Atom: substituteAtomByVar(g.axiom.Parameters, l.Atom, binding), Positive: l.Positive}
		}
		switch formalism.Category(cat) {
		case formalism.Static:
			ga.StaticLiterals = resolved
		case formalism.Fluent:
			ga.FluentLiterals = resolved
		case formalism.Derived:
			ga.DerivedLiterals = resolved
		}
	}
	g.cache[key] = ga
	return ga
}

func bindingOf(clique []graph.Vertex, n int) []index.Index {
	b := make([]index.Index, n)
	for _, v := range clique {
		b[v.Param] = v.Object
	}
	return b
}

func (g *groundGenerator) verify(fluent, derived state.Bitset, binding []index.Index) bool {
	for cat, lits := range g.axiom.Precondition.Literals {
		for _, l := range lits {
			ga := substituteAtomByVar(g.axiom.Parameters, l.Atom, binding)
			var holds bool
			switch formalism.Category(cat) {
			case formalism.Static:
				holds = g.repo.StaticAtomHolds(ga)
			case formalism.Fluent:
				idx, ok := g.repo.GroundAtomIndex(formalism.Fluent, ga)
				holds = ok && fluent.Test(int(idx))
			case formalism.Derived:
				idx, ok := g.repo.GroundAtomIndex(formalism.Derived, ga)
				holds = ok && derived.Test(int(idx))
			}
			if holds != l.Positive {
				return false
			}
		}
	}
	return true
}

func cacheKey(binding []index.Index) string {
	var sb strings.Builder
	for _, b := range binding {
		fmt.Fprintf(&sb, "%d,", b)
	}
	return sb.String()
}

func substituteAtomByVar(params []formalism.Variable, a formalism.Atom, binding []index.Index) formalism.GroundAtom {
	byVar := make(map[index.Index]int, len(params))
	for _, p := range params {
		byVar[p.Index] = p.ParameterIndex
	}
	objs := make([]index.Index, len(a.Terms))
	for i, t := range a.Terms {
		if t.IsObject() {
			objs[i] = t.Object
		} else {
			objs[i] = binding[byVar[t.Variable]]
		}
	}
	return formalism.GroundAtom{Predicate: a.Predicate, Objects: objs}
}
