package search

import (
	"time"

	"mimir/internal/state"
)

// Statistics accumulates the counters the source tracks per search run
// (num generated, num expanded, num pruned, search time) separately from
// whatever EventHandler the caller also wants notified.
type Statistics struct {
	NumGenerated int
	NumExpanded  int
	NumPruned    int
	SearchTime   time.Duration

	start time.Time
}

// StatisticsEventHandler wraps another EventHandler (NoopEventHandler is
// fine) and accumulates Statistics alongside forwarding every event, the
// way the source pairs a statistics.hpp handler with a debug.hpp one.
type StatisticsEventHandler struct {
	Stats *Statistics
	Next  EventHandler
}

func NewStatisticsEventHandler(next EventHandler) *StatisticsEventHandler {
	if next == nil {
		next = NoopEventHandler{}
	}
	return &StatisticsEventHandler{Stats: &Statistics{start: time.Now()}, Next: next}
}

func (h *StatisticsEventHandler) OnExpand(s state.Packed) {
	h.Stats.NumExpanded++
	h.Next.OnExpand(s)
}

func (h *StatisticsEventHandler) OnGenerate(n int) {
	h.Stats.NumGenerated += n
	h.Next.OnGenerate(n)
}

func (h *StatisticsEventHandler) OnPrune(s state.Packed) {
	h.Stats.NumPruned++
	h.Next.OnPrune(s)
}

func (h *StatisticsEventHandler) OnGoalFound(s state.Packed) {
	h.Stats.SearchTime = time.Since(h.Stats.start)
	h.Next.OnGoalFound(s)
}

func (h *StatisticsEventHandler) OnLayerComplete(depth, frontierSize int) {
	h.Next.OnLayerComplete(depth, frontierSize)
}
