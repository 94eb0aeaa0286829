// Package kpkc enumerates the k-cliques of a k-partite graph that touch
// every partition exactly once — the bindings of spec.md §4.3's
// satisficing binding generator, one vertex chosen per action-schema
// parameter such that every chosen pair is adjacent in the consistency
// graph built by internal/graph.
package kpkc

import "mimir/internal/graph"

// Adjacency is the edge predicate the enumerator queries; internal/graph's
// Adjacent function satisfies this directly.
type Adjacency func(v1, v2 graph.Vertex) bool

// Enumerator performs a partition-ordered depth-first search over the
// graph's parts, extending a partial clique one partition at a time and
// backtracking on the first inconsistent pair — the Go analogue of
// find_all_k_cliques_in_k_partite_graph from
// _examples/original_source/algorithms/kpkc.hpp, restructured as an
// explicit-stack iterator instead of a bulk-collecting recursive function
// so that a caller (e.g. the lifted generator under a node/time budget)
// can pull one binding at a time and stop early.
type Enumerator struct {
	parts     [][]graph.Vertex
	adjacent  Adjacency
	// frame holds, for each partition depth, the next candidate index to
	// try; chosen holds the clique built so far.
	frame  []int
	chosen []graph.Vertex
	depth  int
	done   bool
	// started distinguishes "about to try candidate 0 of depth 0" from
	// "just backtracked to depth 0 after exhausting it".
	started bool
}

// New creates an enumerator over g's partitions using adjacent as the edge
// test. A partition with zero candidate vertices makes the whole graph
// have no completions; Next will immediately report done.
func New(g *graph.ConsistencyGraph, adjacent Adjacency) *Enumerator {
	e := &Enumerator{parts: g.Parts, adjacent: adjacent}
	for _, p := range g.Parts {
		if len(p) == 0 {
			e.done = true
			break
		}
	}
	// Sized one past the last partition: a binding is "found" by advancing
	// depth to len(parts), and the backtrack step that follows immediately
	// writes e.frame[depth] before depth is decremented back into range.
	e.frame = make([]int, len(g.Parts)+1)
	e.chosen = make([]graph.Vertex, len(g.Parts))
	return e
}

// Next returns the next complete binding (one vertex per partition, in
// partition order, all pairwise adjacent), or ok=false when the search is
// exhausted.
func (e *Enumerator) Next() (binding []graph.Vertex, ok bool) {
	if e.done {
		return nil, false
	}
	if len(e.parts) == 0 {
		e.done = true
		return nil, false
	}

	for {
		if e.depth == len(e.parts) {
			// Found a complete clique; emit a copy and prepare to resume
			// the search by backtracking one level on the next call.
			out := make([]graph.Vertex, len(e.chosen))
			copy(out, e.chosen)
			e.depth--
			e.frame[e.depth]++
			return out, true
		}

		candidates := e.parts[e.depth]
		advanced := false
		for e.frame[e.depth] < len(candidates) {
			v := candidates[e.frame[e.depth]]
			if e.consistentWithChosen(v) {
				e.chosen[e.depth] = v
				e.depth++
				e.frame[e.depth] = 0
				advanced = true
				break
			}
			e.frame[e.depth]++
		}
		if advanced {
			continue
		}

		// Exhausted this partition's candidates at this depth; backtrack.
		if e.depth == 0 {
			e.done = true
			return nil, false
		}
		e.depth--
		e.frame[e.depth]++
	}
}

func (e *Enumerator) consistentWithChosen(v graph.Vertex) bool {
	for d := 0; d < e.depth; d++ {
		if !e.adjacent(e.chosen[d], v) {
			return false
		}
	}
	return true
}

// All drains the enumerator into a slice. Intended for tests and for
// schemas with small search spaces; production callers on a node budget
// should use Next directly.
func (e *Enumerator) All() [][]graph.Vertex {
	var out [][]graph.Vertex
	for {
		b, ok := e.Next()
		if !ok {
			return out
		}
		out = append(out, b)
	}
}
