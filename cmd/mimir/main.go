// Command mimir is an upper-level batch tool whose only subcommand is
// batch (solving or translating a single problem is done by cmd/planner
// and cmd/translator), spec.md §5's "Upper-level batch tools (e.g.
// 'create state-spaces for N problems') may run independent copies of
// the core in parallel threads" — the only place in this module more
// than one ProblemContext is alive in the same process at once.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mimir/internal/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:          "mimir",
	Short:        "PDDL planning core: batch-process problems",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zap.NewAtomicLevelAt(zap.InfoLevel)
		if verbose {
			level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		zcfg := zap.NewDevelopmentConfig()
		zcfg.Level = level
		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logging.SetGlobal(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
