package search

import (
	"mimir/internal/formalism"
	"mimir/internal/state"
)

// ActionGenerator is the narrow surface every search algorithm needs from
// either internal/lifted.Generator (per-schema, no precompute) or
// internal/grounded.ActionGenerator (match-tree-backed, after a
// delete-relaxed precompute) — spec.md §4.9's "shared ... applicable-action
// generator". Search code depends on this interface only, never on either
// concrete package, so the same algorithm runs unmodified against both.
type ActionGenerator interface {
	Generate(s state.Packed) []*formalism.GroundAction
}

// GoalStrategy is spec.md §4.9's IGoalStrategy: "is_goal(state) → bool".
type GoalStrategy interface {
	IsGoal(s state.Packed) bool
}

// DefaultGoalStrategy checks the problem's own goal condition.
type DefaultGoalStrategy struct {
	Repo    *formalism.Repository
	Problem *formalism.Problem
}

func (d DefaultGoalStrategy) IsGoal(s state.Packed) bool {
	return conditionHolds(d.Repo, s, &d.Problem.Goal)
}

// PruningStrategy is spec.md §4.9's IPruningStrategy: default NoPruning;
// DuplicatePruning drops already-generated successors.
type PruningStrategy interface {
	// ShouldPrune reports whether the successor state succ (reached via
	// action from a state already in the frontier/closed set) should be
	// discarded instead of enqueued. alreadyVisited reports whether succ.Index was
	// already seen before this call.
	ShouldPrune(succ state.Packed, alreadyVisited bool) bool
}

// NoPruning never discards a successor.
type NoPruning struct{}

func (NoPruning) ShouldPrune(state.Packed, bool) bool { return false }

// DuplicatePruning discards any successor whose state index was already
// discovered earlier in the search.
type DuplicatePruning struct{}

func (DuplicatePruning) ShouldPrune(_ state.Packed, alreadyVisited bool) bool { return alreadyVisited }
