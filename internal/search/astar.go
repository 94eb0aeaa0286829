package search

import (
	"container/heap"
	"time"

	"mimir/internal/index"
	"mimir/internal/state"
)

// astarItem is one entry in A*'s open list, ordered by f = g + h, tying
// toward higher g (spec.md §4.9 "tie-break on higher g").
type astarItem struct {
	state state.Packed
	g, h  float64
	index int // heap.Interface bookkeeping
}

type astarHeap []*astarItem

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	fi, fj := h[i].g+h[i].h, h[j].g+h[j].h
	if fi != fj {
		return fi < fj
	}
	return h[i].g > h[j].g
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *astarHeap) Push(x any) {
	item := x.(*astarItem)
	item.index = len(*h)
	*h = append(*h, item)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// AStar is spec.md §4.9's best-first search on f = g + h: admissible,
// consistent heuristics (BlindHeuristic included) keep it optimal; a node
// is reopened whenever a strictly smaller g is discovered for its state.
func AStar(repo *state.Repository, gen ActionGenerator, goal GoalStrategy, h Heuristic, handler EventHandler, initial state.Packed, cfg LimitsConfig) Result {
	if handler == nil {
		handler = NoopEventHandler{}
	}
	start := time.Now()

	bestG := map[index.Index]float64{initial.Index: 0}
	cameFrom := map[index.Index]cameFromEntry{}

	open := &astarHeap{}
	heap.Init(open)
	heap.Push(open, &astarItem{state: initial, g: 0, h: h.Estimate(initial)})

	numGenerated := 0
	for open.Len() > 0 {
		if st, fired := cfg.exceeded(numGenerated, start); fired {
			return Result{Status: st}
		}
		item := heap.Pop(open).(*astarItem)
		s := item.state

		if item.g > bestG[s.Index] {
			continue // stale entry: a better path to s was already found
		}
		handler.OnExpand(s)

		if goal.IsGoal(s) {
			handler.OnGoalFound(s)
			plan, planCost := reconstructPlan(cameFrom, s.Index)
			return Result{Status: SOLVED, Plan: plan, Cost: planCost}
		}

		actions := gen.Generate(s)
		handler.OnGenerate(len(actions))
		numGenerated += len(actions)

		for _, a := range actions {
			succ, cost, err := repo.Successor(s, a)
			if err != nil {
				continue
			}
			g := item.g + cost
			if prevG, ok := bestG[succ.Index]; ok && g >= prevG {
				continue // not strictly smaller: no reopening (spec.md §4.9)
			}
			bestG[succ.Index] = g
			cameFrom[succ.Index] = cameFromEntry{parent: s.Index, action: a, cost: cost}
			heap.Push(open, &astarItem{state: succ, g: g, h: h.Estimate(succ)})
		}
	}
	return Result{Status: UNSOLVABLE}
}
