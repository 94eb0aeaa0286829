package search

import (
	"time"

	"mimir/internal/index"
	"mimir/internal/state"
)

// IWConfig bounds a single IW run (spec.md §6's IW config:
// `{max_arity: 0..6}` default 6, `{initial_table_atoms: N}` default 64).
type IWConfig struct {
	MaxArity          int
	InitialTableAtoms int
}

// DefaultIWConfig matches spec.md §6's stated defaults.
func DefaultIWConfig() IWConfig {
	return IWConfig{MaxArity: 6, InitialTableAtoms: 64}
}

// IWResult reports the effective width alongside the usual search Result:
// spec.md §4.9 "reports the smallest successful k as the effective width".
type IWResult struct {
	Result
	EffectiveWidth int
}

// IW is spec.md §4.9's iterated-width search: BrFS but pruning states that
// are not novel with respect to a per-run NoveltyTable. It runs k =
// 0, 1, ..., cfg.MaxArity in sequence (a fresh table each k) until one
// width solves the problem or every width up to MaxArity is exhausted.
func IW(repo *state.Repository, gen ActionGenerator, goal GoalStrategy, handler EventHandler, initial state.Packed, cfg IWConfig, limits LimitsConfig) IWResult {
	for k := 0; k <= cfg.MaxArity; k++ {
		res := iwFixedWidth(repo, gen, goal, handler, initial, k, cfg.InitialTableAtoms, limits)
		if res.Status == SOLVED {
			return IWResult{Result: res, EffectiveWidth: k}
		}
		if res.Status == OutOfTime || res.Status == OutOfMemory {
			return IWResult{Result: res, EffectiveWidth: k}
		}
		// EXHAUSTED or UNSOLVABLE at this width: escalate to k+1.
	}
	return IWResult{Result: Result{Status: UNSOLVABLE}, EffectiveWidth: cfg.MaxArity}
}

// iwFixedWidth runs one BrFS pass pruned by a width-k novelty table.
func iwFixedWidth(repo *state.Repository, gen ActionGenerator, goal GoalStrategy, handler EventHandler, initial state.Packed, k, initialTableAtoms int, limits LimitsConfig) Result {
	if handler == nil {
		handler = NoopEventHandler{}
	}
	start := time.Now()

	if goal.IsGoal(initial) {
		handler.OnGoalFound(initial)
		return Result{Status: SOLVED}
	}

	table := NewNoveltyTable(k, initialTableAtoms)
	table.Add(initial)

	cameFrom := map[index.Index]cameFromEntry{}
	visited := map[index.Index]bool{initial.Index: true}
	layer := []state.Packed{initial}
	numExpanded := 0

	for len(layer) > 0 {
		if st, fired := limits.exceeded(numExpanded, start); fired {
			return Result{Status: st}
		}
		var next []state.Packed
		for _, s := range layer {
			numExpanded++
			if st, fired := limits.exceeded(numExpanded, start); fired {
				return Result{Status: st}
			}
			handler.OnExpand(s)
			actions := gen.Generate(s)
			handler.OnGenerate(len(actions))

			for _, a := range actions {
				succ, cost, err := repo.Successor(s, a)
				if err != nil {
					continue
				}
				if visited[succ.Index] {
					continue
				}
				if !table.IsNovel(succ) {
					handler.OnPrune(succ)
					continue
				}
				visited[succ.Index] = true
				table.Add(succ)
				cameFrom[succ.Index] = cameFromEntry{parent: s.Index, action: a, cost: cost}

				if goal.IsGoal(succ) {
					handler.OnGoalFound(succ)
					plan, planCost := reconstructPlan(cameFrom, succ.Index)
					return Result{Status: SOLVED, Plan: plan, Cost: planCost}
				}
				next = append(next, succ)
			}
		}
		layer = next
	}
	return Result{Status: EXHAUSTED}
}
