package search

import (
	"time"

	"mimir/internal/formalism"
	"mimir/internal/index"
)

// LimitsConfig bounds BrFS/A* (spec.md §6's "BrFS/A*:
// {max_num_states, max_time_in_ms, stop_if_goal}"). MaxNumStates <= 0
// means unbounded; MaxTimeMs <= 0 means no time limit.
type LimitsConfig struct {
	MaxNumStates int
	MaxTimeMs    int64
	StopIfGoal   bool
}

// DefaultLimits returns an unbounded, stop-at-first-goal configuration.
func DefaultLimits() LimitsConfig {
	return LimitsConfig{MaxNumStates: 0, MaxTimeMs: 0, StopIfGoal: true}
}

// exceeded reports whether a resource limit has fired and, if so, which
// status it maps to.
func (c LimitsConfig) exceeded(numStates int, start time.Time) (Status, bool) {
	if c.MaxTimeMs > 0 && time.Since(start) >= time.Duration(c.MaxTimeMs)*time.Millisecond {
		return OutOfTime, true
	}
	if c.MaxNumStates > 0 && numStates > c.MaxNumStates {
		return EXHAUSTED, true
	}
	return 0, false
}

// cameFromEntry records the ground action and parent state a state index
// was first reached by, for plan reconstruction.
type cameFromEntry struct {
	parent index.Index
	action *formalism.GroundAction
	cost   float64
}

func reconstructPlan(cameFrom map[index.Index]cameFromEntry, goal index.Index) ([]*formalism.GroundAction, float64) {
	var plan []*formalism.GroundAction
	var cost float64
	cur := goal
	for {
		e, ok := cameFrom[cur]
		if !ok {
			break
		}
		plan = append(plan, e.action)
		cost += e.cost
		cur = e.parent
	}
	for i, j := 0, len(plan)-1; i < j; i, j = i+1, j-1 {
		plan[i], plan[j] = plan[j], plan[i]
	}
	return plan, cost
}
