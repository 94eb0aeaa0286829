// Command planner implements spec.md §6's CLI: "planner <domain-file>
// <problem-file> — parses, initialises a lifted A* (or BrFS) search,
// prints plan to stdout, exit code 0 on SOLVED, 1 on usage error, 2 on
// UNSOLVABLE, 3 on EXHAUSTED, 4 on OUT_OF_TIME."
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mimir/internal/config"
	"mimir/internal/formalism"
	"mimir/internal/frontend"
	"mimir/internal/logging"
	"mimir/internal/problemctx"
	"mimir/internal/search"
)

const (
	exitSolved     = 0
	exitUsageError = 1
	exitUnsolvable = 2
	exitExhausted  = 3
	exitOutOfTime  = 4
)

var (
	configPath string
	algorithm  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "planner <domain-file> <problem-file>",
	Short:        "Solve a PDDL planning problem and print the resulting plan",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runPlanner,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (see internal/config)")
	rootCmd.Flags().StringVar(&algorithm, "algorithm", "", "override the configured algorithm: brfs|astar|iw|siw")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		if ce, ok := err.(exitCodeError); ok {
			return ce.code
		}
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}
	return lastExitCode
}

// exitCodeError lets RunE report a non-usage-error exit code through
// cobra's normal error return without SilenceErrors printing it twice.
type exitCodeError struct {
	code int
	err  error
}

func (e exitCodeError) Error() string { return e.err.Error() }

// lastExitCode is set by runPlanner on the SOLVED/UNSOLVABLE/EXHAUSTED/
// OUT_OF_TIME paths, which are not cobra errors.
var lastExitCode = exitSolved

func runPlanner(cmd *cobra.Command, args []string) error {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = level
	logger, err := zcfg.Build()
	if err != nil {
		return exitCodeError{code: exitUsageError, err: fmt.Errorf("build logger: %w", err)}
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeLifted
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return exitCodeError{code: exitUsageError, err: err}
		}
	}
	if algorithm != "" {
		cfg.Algorithm = config.Algorithm(algorithm)
	}

	domainSrc, err := os.ReadFile(args[0])
	if err != nil {
		return exitCodeError{code: exitUsageError, err: fmt.Errorf("read domain file: %w", err)}
	}
	problemSrc, err := os.ReadFile(args[1])
	if err != nil {
		return exitCodeError{code: exitUsageError, err: fmt.Errorf("read problem file: %w", err)}
	}

	rd, err := frontend.ParseDomain(string(domainSrc))
	if err != nil {
		return exitCodeError{code: exitUsageError, err: fmt.Errorf("parse domain: %w", err)}
	}
	rp, err := frontend.ParseProblem(string(problemSrc))
	if err != nil {
		return exitCodeError{code: exitUsageError, err: fmt.Errorf("parse problem: %w", err)}
	}

	pc, err := problemctx.New(rd, rp, cfg)
	if err != nil {
		return exitCodeError{code: exitUsageError, err: err}
	}

	result := solve(pc, cfg)
	printResult(pc, result)

	lastExitCode = exitCodeFor(result.Status)
	if lastExitCode != exitSolved {
		return exitCodeError{code: lastExitCode, err: fmt.Errorf("search finished with status %s", result.Status)}
	}
	return nil
}

func solve(pc *problemctx.ProblemContext, cfg *config.Config) search.Result {
	s0 := pc.States.InitialState(pc.Problem)
	goal := search.DefaultGoalStrategy{Repo: pc.Repo, Problem: pc.Problem}
	limits := cfg.Limits.Resolve()

	switch cfg.Algorithm {
	case config.AlgorithmBrFS:
		return search.BrFS(pc.States, pc.Actions, goal, search.DuplicatePruning{}, nil, s0, limits)
	case config.AlgorithmIW:
		res := search.IW(pc.States, pc.Actions, goal, nil, s0, cfg.IW.Resolve(), limits)
		return res.Result
	case config.AlgorithmSIW:
		counter := search.ProblemGoalCounter{Repo: pc.Repo, Problem: pc.Problem}
		return search.SIW(pc.States, pc.Actions, counter, nil, s0, cfg.SIW.IWConfig.Resolve(), limits)
	default:
		return search.AStar(pc.States, pc.Actions, goal, search.BlindHeuristic{}, nil, s0, limits)
	}
}

func exitCodeFor(status search.Status) int {
	switch status {
	case search.SOLVED:
		return exitSolved
	case search.UNSOLVABLE:
		return exitUnsolvable
	case search.EXHAUSTED:
		return exitExhausted
	case search.OutOfTime, search.OutOfMemory:
		return exitOutOfTime
	default:
		return exitUsageError
	}
}

func printResult(pc *problemctx.ProblemContext, r search.Result) {
	fmt.Println(r.Status)
	if r.Status != search.SOLVED {
		return
	}
	for i, a := range r.Plan {
		fmt.Printf("%d: %s\n", i, formatGroundAction(pc, a))
	}
	fmt.Printf("; cost = %g\n", r.Cost)
}

// formatGroundAction renders a ground action as "(schema-name obj1 obj2
// ...)", the conventional PDDL plan-printing format.
func formatGroundAction(pc *problemctx.ProblemContext, a *formalism.GroundAction) string {
	schema := pc.Repo.ActionSchemas[a.Schema]
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(schema.Name)
	for _, obj := range a.Binding {
		b.WriteByte(' ')
		b.WriteString(pc.Repo.Objects[obj].Name)
	}
	b.WriteByte(')')
	return b.String()
}
