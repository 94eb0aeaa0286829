package search

import "mimir/internal/state"

// Heuristic estimates the cost remaining from a state to the goal, used by
// A*'s f = g + h ordering (spec.md §4.9).
type Heuristic interface {
	Estimate(s state.Packed) float64
}

// BlindHeuristic is spec.md §4.9's baseline: always 0, degrading A* to
// uniform-cost search.
type BlindHeuristic struct{}

func (BlindHeuristic) Estimate(state.Packed) float64 { return 0 }
