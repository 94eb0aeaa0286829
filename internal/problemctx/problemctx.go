// Package problemctx implements spec.md §9's "Global repositories /
// interning tables ... Target: problem-local only — each ProblemContext
// owns its repositories with explicit init/teardown": one owner for every
// repository, evaluator, and generator a single domain/problem pair
// needs, built once from parsed PDDL source and torn down by simply
// letting it fall out of scope (there are no external handles to close).
package problemctx

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mimir/internal/axiom"
	"mimir/internal/config"
	"mimir/internal/formalism"
	"mimir/internal/frontend"
	"mimir/internal/grounded"
	"mimir/internal/lifted"
	"mimir/internal/logging"
	"mimir/internal/matchtree"
	"mimir/internal/search"
	"mimir/internal/state"
	"mimir/internal/translate"
)

// ProblemContext owns every repository, evaluator, and generator derived
// from one domain/problem pair. Nothing outside this struct holds a
// reference to formalism.Repository or its interning tables — the single-
// owner discipline spec.md §9 calls for in place of the source's
// process-wide singletons.
type ProblemContext struct {
	ID uuid.UUID

	Domain  *formalism.Domain
	Problem *formalism.Problem
	Repo    *formalism.Repository

	Axioms *axiom.Evaluator
	States *state.Repository

	Actions search.ActionGenerator

	// Reachability is non-nil only in config.ModeGrounded: the precompute
	// Actions' match-tree dispatch is built from.
	Reachability *grounded.Reachability

	log *logging.Logger
}

// New parses nothing itself — rd/rp are already-parsed raw PDDL ASTs
// (internal/frontend's job) — and builds every problem-local component
// spec.md §3's Ownership section names, choosing lifted or grounded
// action generation per cfg.Mode.
func New(rd *frontend.RawDomain, rp *frontend.RawProblem, cfg *config.Config) (*ProblemContext, error) {
	id := uuid.New()
	log := logging.For(logging.CategoryBoot).With(zap.String("problem_id", id.String()))

	domain, problem, err := translate.Translate(rd, rp)
	if err != nil {
		return nil, fmt.Errorf("problemctx: translate: %w", err)
	}

	ax := axiom.NewEvaluator(domain.Repo, problem)
	sr := state.NewRepository(domain.Repo, ax)

	pc := &ProblemContext{
		ID:      id,
		Domain:  domain,
		Problem: problem,
		Repo:    domain.Repo,
		Axioms:  ax,
		States:  sr,
		log:     log,
	}

	switch cfg.Mode {
	case config.ModeGrounded, "":
		mtCfg, err := cfg.MatchTree.Resolve()
		if err != nil {
			return nil, fmt.Errorf("problemctx: match tree config: %w", err)
		}
		r := grounded.Precompute(domain.Repo, problem, schemaPointers(domain.Repo), ax, mtCfg)
		pc.Reachability = r
		pc.Actions = grounded.NewActionGenerator(domain.Repo, r)
		pc.States = state.NewRepository(domain.Repo, grounded.NewAxiomEvaluator(domain.Repo, r))
	case config.ModeLifted:
		pc.Actions = newMultiGenerator(domain.Repo, problem)
	default:
		return nil, fmt.Errorf("problemctx: unknown search mode %q", cfg.Mode)
	}

	log.Info("problem context built", zap.Int("num_objects", len(problem.Objects)))
	return pc, nil
}

func schemaPointers(repo *formalism.Repository) []*formalism.ActionSchema {
	out := make([]*formalism.ActionSchema, len(repo.ActionSchemas))
	for i := range repo.ActionSchemas {
		out[i] = &repo.ActionSchemas[i]
	}
	return out
}

// multiGenerator fans a lifted.Generator per action schema out into one
// search.ActionGenerator, the way internal/grounded.Precompute itself
// builds one lifted.Generator per schema internally — spec.md §5's
// "Ordering guarantees" requires schemas be iterated "in their repository
// order", which this preserves by ranging schemas in declaration order.
type multiGenerator struct {
	generators []*lifted.Generator
}

func newMultiGenerator(repo *formalism.Repository, problem *formalism.Problem) *multiGenerator {
	gens := make([]*lifted.Generator, len(repo.ActionSchemas))
	for i := range repo.ActionSchemas {
		gens[i] = lifted.NewGenerator(repo, problem, &repo.ActionSchemas[i])
	}
	return &multiGenerator{generators: gens}
}

func (m *multiGenerator) Generate(s state.Packed) []*formalism.GroundAction {
	var out []*formalism.GroundAction
	for _, g := range m.generators {
		out = append(out, g.Generate(s)...)
	}
	return out
}

// MatchTreeStatistics exposes the grounded-mode precompute's match-tree
// diagnostics (spec.md §6's output_dot_file? knob), nil in lifted mode.
func (pc *ProblemContext) MatchTreeStatistics() (matchtree.Stats, bool) {
	if pc.Reachability == nil {
		return matchtree.Stats{}, false
	}
	return pc.Reachability.Tree.Statistics(), true
}
