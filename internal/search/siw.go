package search

import (
	"mimir/internal/formalism"
	"mimir/internal/state"
)

// LookaheadStrategy generalizes SIW's restart rule (SPEC_FULL.md's
// supplemented feature): Count measures how "close" a state is to done,
// Total is the count a fully-solved state reaches. ProblemGoalCounter is
// the default implementation (spec.md §4.9's "counter" goal strategy).
type LookaheadStrategy interface {
	Count(s state.Packed) int
	Total() int
}

// improvementGoal turns a LookaheadStrategy into a GoalStrategy that is
// satisfied by any state strictly closer to done than a fixed baseline —
// the inner search target each SIW iteration hands to IW.
type improvementGoal struct {
	lookahead LookaheadStrategy
	baseline  int
}

func (g improvementGoal) IsGoal(s state.Packed) bool { return g.lookahead.Count(s) > g.baseline }

// SIW is spec.md §4.9's serialized IW: repeatedly run IW from the current
// state looking for any state that satisfies strictly more of the
// lookahead's count than the current state, append the plan prefix that
// reaches it, and continue from there. It terminates when the count
// reaches Total() (solved) or an IW iteration fails to find any
// improvement (the problem is not serializable at this width).
func SIW(repo *state.Repository, gen ActionGenerator, lookahead LookaheadStrategy, handler EventHandler, initial state.Packed, iwCfg IWConfig, limits LimitsConfig) Result {
	if handler == nil {
		handler = NoopEventHandler{}
	}

	current := initial
	var fullPlan []*formalism.GroundAction
	var totalCost float64

	total := lookahead.Total()
	for iterations := 0; lookahead.Count(current) < total; iterations++ {
		if iterations > total {
			// Safety bound: count strictly increases each successful
			// iteration, so this can only fire if that invariant breaks.
			return Result{Status: EXHAUSTED, Plan: fullPlan, Cost: totalCost}
		}
		baseline := lookahead.Count(current)
		res := IW(repo, gen, improvementGoal{lookahead: lookahead, baseline: baseline}, handler, current, iwCfg, limits)
		if res.Result.Status != SOLVED {
			return Result{Status: res.Result.Status, Plan: fullPlan, Cost: totalCost}
		}

		next, cost, err := replay(repo, current, res.Result.Plan)
		if err != nil {
			return Result{Status: UNSOLVABLE, Plan: fullPlan, Cost: totalCost}
		}
		fullPlan = append(fullPlan, res.Result.Plan...)
		totalCost += cost
		current = next
	}
	return Result{Status: SOLVED, Plan: fullPlan, Cost: totalCost}
}

// replay applies a plan to a starting state and returns the resulting state
// and total cost, used to resume SIW from wherever an IW sub-search left off.
func replay(repo *state.Repository, start state.Packed, plan []*formalism.GroundAction) (state.Packed, float64, error) {
	s := start
	var total float64
	for _, a := range plan {
		succ, cost, err := repo.Successor(s, a)
		if err != nil {
			return state.Packed{}, 0, err
		}
		s = succ
		total += cost
	}
	return s, total, nil
}
