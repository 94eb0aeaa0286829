package search

import (
	"time"

	"mimir/internal/index"
	"mimir/internal/state"
)

// BrFS is spec.md §4.9's unit-cost-optimal breadth-first search: a FIFO
// open list keyed by state index, duplicate detection via the state
// repository's content-addressed dedup, with a per-layer event hook for
// statistics.
func BrFS(repo *state.Repository, gen ActionGenerator, goal GoalStrategy, prune PruningStrategy, handler EventHandler, initial state.Packed, cfg LimitsConfig) Result {
	if handler == nil {
		handler = NoopEventHandler{}
	}
	start := time.Now()

	if goal.IsGoal(initial) {
		handler.OnGoalFound(initial)
		return Result{Status: SOLVED}
	}

	visited := map[index.Index]bool{initial.Index: true}
	cameFrom := map[index.Index]cameFromEntry{}
	layer := []state.Packed{initial}
	depth := 0

	for len(layer) > 0 {
		if st, fired := cfg.exceeded(len(visited), start); fired {
			return Result{Status: st}
		}
		var next []state.Packed
		for _, s := range layer {
			if st, fired := cfg.exceeded(len(visited), start); fired {
				return Result{Status: st}
			}
			handler.OnExpand(s)
			actions := gen.Generate(s)
			handler.OnGenerate(len(actions))

			for _, a := range actions {
				succ, cost, err := repo.Successor(s, a)
				if err != nil {
					continue // numeric evaluation failure: skip this action, search continues (spec.md §7)
				}
				alreadyVisited := visited[succ.Index]
				if prune.ShouldPrune(succ, alreadyVisited) {
					handler.OnPrune(succ)
					continue
				}
				if alreadyVisited {
					continue
				}
				visited[succ.Index] = true
				cameFrom[succ.Index] = cameFromEntry{parent: s.Index, action: a, cost: cost}

				if goal.IsGoal(succ) {
					handler.OnGoalFound(succ)
					plan, planCost := reconstructPlan(cameFrom, succ.Index)
					return Result{Status: SOLVED, Plan: plan, Cost: planCost}
				}
				next = append(next, succ)
			}
		}
		depth++
		handler.OnLayerComplete(depth, len(next))
		layer = next
	}
	return Result{Status: UNSOLVABLE}
}
