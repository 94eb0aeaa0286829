package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mimir/internal/config"
	"mimir/internal/frontend"
	"mimir/internal/logging"
	"mimir/internal/problemctx"
	"mimir/internal/search"
)

var (
	batchConfigPath  string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch <domain-file> <problem-file>...",
	Short: "Solve many problems against one domain, one ProblemContext per problem, fanned out concurrently",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "path to a YAML config file applied to every problem")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "maximum number of ProblemContexts solved in parallel")
}

type batchOutcome struct {
	problemFile string
	status      search.Status
	planLen     int
	err         error
}

func runBatch(cmd *cobra.Command, args []string) error {
	domainFile := args[0]
	problemFiles := args[1:]

	domainSrc, err := os.ReadFile(domainFile)
	if err != nil {
		return fmt.Errorf("read domain file: %w", err)
	}
	rd, err := frontend.ParseDomain(string(domainSrc))
	if err != nil {
		return fmt.Errorf("parse domain: %w", err)
	}

	cfg := config.DefaultConfig()
	if batchConfigPath != "" {
		cfg, err = config.Load(batchConfigPath)
		if err != nil {
			return err
		}
	}

	results := make([]batchOutcome, len(problemFiles))

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(batchConcurrency)

	for i, problemFile := range problemFiles {
		i, problemFile := i, problemFile
		eg.Go(func() error {
			results[i] = solveOne(ctx, rd, problemFile, cfg)
			return nil
		})
	}
	// eg.Wait's returned error is always nil here: solveOne reports its own
	// failures into batchOutcome.err instead of aborting sibling problems —
	// one malformed problem file should not cancel the whole batch.
	_ = eg.Wait()

	failures := 0
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", r.problemFile, r.err)
			failures++
			continue
		}
		fmt.Printf("%s: %s (%d-action plan)\n", r.problemFile, r.status, r.planLen)
		if r.status != search.SOLVED {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("batch: %d of %d problems did not solve", failures, len(problemFiles))
	}
	return nil
}

// solveOne builds and solves a single ProblemContext, isolated from its
// siblings: every problem in a batch run gets its own uuid-tagged context
// per spec.md §9, and ctx cancellation (a sibling's unrecoverable error, if
// one were ever wired to abort the group) is the only thing that crosses
// between them.
func solveOne(ctx context.Context, rd *frontend.RawDomain, problemFile string, cfg *config.Config) batchOutcome {
	out := batchOutcome{problemFile: problemFile}

	problemSrc, err := os.ReadFile(problemFile)
	if err != nil {
		out.err = fmt.Errorf("read problem file: %w", err)
		return out
	}
	rp, err := frontend.ParseProblem(string(problemSrc))
	if err != nil {
		out.err = fmt.Errorf("parse problem: %w", err)
		return out
	}

	pc, err := problemctx.New(rd, rp, cfg)
	if err != nil {
		out.err = fmt.Errorf("build problem context: %w", err)
		return out
	}

	log := logging.For(logging.CategoryBatch).With(zap.String("problem_id", pc.ID.String()), zap.String("problem_file", problemFile))
	if ctx.Err() != nil {
		out.err = ctx.Err()
		return out
	}

	s0 := pc.States.InitialState(pc.Problem)
	goal := search.DefaultGoalStrategy{Repo: pc.Repo, Problem: pc.Problem}
	res := search.AStar(pc.States, pc.Actions, goal, search.BlindHeuristic{}, nil, s0, cfg.Limits.Resolve())

	log.Info("problem solved", zap.String("status", res.Status.String()), zap.Int("plan_length", len(res.Plan)))
	out.status = res.Status
	out.planLen = len(res.Plan)
	return out
}
