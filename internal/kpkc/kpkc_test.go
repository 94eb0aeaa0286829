package kpkc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimir/internal/graph"
	"mimir/internal/index"
)

func TestEnumeratorFindsOnlyConsistentBindings(t *testing.T) {
	// Two partitions, candidates {a,b} and {c,d}; only a-c and b-d are
	// adjacent (think: on(a,c) and on(b,d) hold, on(a,d)/on(b,c) don't).
	a, b, c, d := index.Index(0), index.Index(1), index.Index(2), index.Index(3)
	g := &graph.ConsistencyGraph{
		Parts: [][]graph.Vertex{
			{{Param: 0, Object: a}, {Param: 0, Object: b}},
			{{Param: 1, Object: c}, {Param: 1, Object: d}},
		},
	}
	adjacent := func(v1, v2 graph.Vertex) bool {
		return (v1.Object == a && v2.Object == c) || (v1.Object == c && v2.Object == a) ||
			(v1.Object == b && v2.Object == d) || (v1.Object == d && v2.Object == b)
	}

	cliques := New(g, adjacent).All()
	require.Len(t, cliques, 2)
	for _, clique := range cliques {
		require.Len(t, clique, 2)
		assert.True(t, adjacent(clique[0], clique[1]), "clique %v is not actually adjacent", clique)
	}
}

func TestEnumeratorEmptyPartitionYieldsNothing(t *testing.T) {
	g := &graph.ConsistencyGraph{Parts: [][]graph.Vertex{{}, {{Param: 1, Object: index.Index(0)}}}}
	cliques := New(g, func(graph.Vertex, graph.Vertex) bool { return true }).All()
	assert.Empty(t, cliques, "expected no cliques when a partition is empty")
}

func TestEnumeratorSinglePartition(t *testing.T) {
	g := &graph.ConsistencyGraph{Parts: [][]graph.Vertex{{{Param: 0, Object: index.Index(0)}, {Param: 0, Object: index.Index(1)}}}}
	cliques := New(g, func(graph.Vertex, graph.Vertex) bool { return true }).All()
	assert.Len(t, cliques, 2, "expected 2 single-vertex cliques")
}
