package axiom

import (
	"fmt"

	"github.com/google/mangle/go/topological"

	"mimir/internal/formalism"
	"mimir/internal/index"
)

// dependencyGraph wraps github.com/google/mangle/go/topological's graph
// type, the same package the teacher re-exports from pkg/mangle/mangle.go
// (NewGraph, NewNode, NewEdge, StronglyConnectedComponents,
// TopologicalSort). An edge q -> p means axiom head predicate p's body
// mentions derived predicate q, i.e. "p depends on q" — exactly the
// dependency relation spec.md §4.7 stratifies by SCC + topological sort.
type dependencyGraph struct {
	graph *topological.Graph
	nodes map[index.Index]topological.Node
	order []index.Index // insertion order, for deterministic node creation
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{
		graph: topological.NewGraph(),
		nodes: make(map[index.Index]topological.Node),
	}
}

func (d *dependencyGraph) nodeFor(pred index.Index) topological.Node {
	if n, ok := d.nodes[pred]; ok {
		return n
	}
	n := topological.NewNode(fmt.Sprintf("derived_%d", pred))
	d.nodes[pred] = n
	d.order = append(d.order, pred)
	d.graph.AddNode(n)
	return n
}

func (d *dependencyGraph) addDependency(dependent, dependsOn index.Index) {
	from := d.nodeFor(dependsOn)
	to := d.nodeFor(dependent)
	d.graph.AddEdge(topological.NewEdge(from, to))
}

// buildDependencyGraph registers one node per derived predicate that owns
// at least one axiom, and one dependency edge per derived-predicate
// literal appearing in another axiom's body.
func buildDependencyGraph(repo *formalism.Repository, axioms []formalism.Axiom) *dependencyGraph {
	d := newDependencyGraph()
	for _, ax := range axioms {
		d.nodeFor(ax.Head.Predicate)
	}
	for _, ax := range axioms {
		for _, l := range ax.Precondition.Literals[formalism.Derived] {
			if repo.Predicates[l.Atom.Predicate].Category != formalism.Derived {
				continue
			}
			d.addDependency(ax.Head.Predicate, l.Atom.Predicate)
		}
	}
	return d
}

// strata returns the node groups in dependency order: every predicate in
// stratum i depends only on predicates in strata < i, except for
// mutually-recursive predicates grouped into the same stratum (an SCC of
// size > 1, or a self-loop).
func (d *dependencyGraph) strata() [][]index.Index {
	if len(d.order) == 0 {
		return nil
	}
	components := topological.StronglyConnectedComponents(d.graph)
	sorted, err := topological.TopologicalSort(d.graph)
	if err != nil {
		// A topological sort only fails on a graph with no valid linearization
		// at all, which cannot happen once SCCs are collapsed; fall back to
		// component discovery order, which is still a valid stratification
		// (every axiom in a later stratum may just re-run needlessly).
		sorted = nil
	}

	nodeToComponent := make(map[topological.Node]int)
	for ci, comp := range components {
		for _, n := range comp {
			nodeToComponent[n] = ci
		}
	}

	byPred := make(map[topological.Node]index.Index)
	for pred, n := range d.nodes {
		byPred[n] = pred
	}

	// Determine stratum order for components from the topological sort of
	// individual nodes (first occurrence of any node from a component fixes
	// that component's position), falling back to component index order.
	componentOrder := make([]int, len(components))
	for i := range componentOrder {
		componentOrder[i] = i
	}
	if sorted != nil {
		seen := make(map[int]bool)
		pos := 0
		next := make([]int, 0, len(components))
		for _, n := range sorted {
			ci, ok := nodeToComponent[n]
			if !ok || seen[ci] {
				continue
			}
			seen[ci] = true
			next = append(next, ci)
			pos++
		}
		for i := range components {
			if !seen[i] {
				next = append(next, i)
			}
		}
		componentOrder = next
	}

	strata := make([][]index.Index, 0, len(components))
	for _, ci := range componentOrder {
		var stratum []index.Index
		for _, n := range components[ci] {
			stratum = append(stratum, byPred[n])
		}
		strata = append(strata, stratum)
	}
	return strata
}
