package matchtree

import (
	"sort"

	"mimir/internal/formalism"
)

// split builds the subtree for elements greedily. It makes a leaf when at
// most one element remains, when no element mentions an atom of the
// categories cfg.SplitStrategy permits, or when the MaxNumNodes budget is
// reached; otherwise it splits on the best-scoring candidate atom. A leaf
// is not guaranteed to be perfectly indexed: a single remaining element
// may carry literals that no node on its root-to-leaf path tested, so
// internal/grounded re-checks the fluent and derived literals of every
// element a query returns.
func (t *Tree) split(repo *formalism.Repository, elements []Indexable, cfg Config) *Node {
	t.NumNodes++
	if t.NumNodes >= cfg.MaxNumNodes || len(elements) <= 1 {
		t.Imperfect += boolToInt(len(elements) > 1 && t.NumNodes >= cfg.MaxNumNodes)
		return &Node{kind: kindLeaf, elements: elements}
	}

	candidates := collectCandidates(repo, elements, cfg)
	if len(candidates) == 0 {
		// Perfectly indexed: nothing left distinguishes these elements.
		return &Node{kind: kindLeaf, elements: elements}
	}

	best := pickBest(candidates, len(elements), cfg)
	if best == nil {
		return &Node{kind: kindLeaf, elements: elements}
	}

	n := &Node{kind: kindAtomSelector, atomCat: best.key.category, atomIdx: best.key.atom}
	if len(best.positive) > 0 {
		n.trueChild = t.split(repo, best.positive, cfg)
	}
	if len(best.negative) > 0 {
		n.falseChild = t.split(repo, best.negative, cfg)
	}
	if len(best.dontCare) > 0 {
		n.dontCareChild = t.split(repo, best.dontCare, cfg)
	}
	return n
}

// pickBest iterates candidates in a fixed (category, atom index) order so
// that ties resolve identically across runs — the map itself has no
// stable iteration order, but the chosen split must be deterministic
// (spec.md §5 "the sequence of ground actions is deterministic across
// runs").
func pickBest(candidates map[atomKey]*candidateStats, total int, cfg Config) *candidateStats {
	keys := make([]atomKey, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}
		return keys[i].atom < keys[j].atom
	})

	var best *candidateStats
	var bestScore float64
	first := true
	for _, k := range keys {
		st := candidates[k]
		s := score(st, total, cfg.SplitMetric)
		if cfg.OptimizationDirection == Min {
			s = -s
		}
		if first || s > bestScore {
			best, bestScore = st, s
			first = false
		}
	}
	return best
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
