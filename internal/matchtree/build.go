package matchtree

import (
	"math"

	"mimir/internal/formalism"
)

// Build runs the greedy top-down splitter of spec.md §4.5 over elements.
// repo resolves each literal's ground atom to the dense per-category index
// a query-time StateView is tested against.
func Build(repo *formalism.Repository, elements []Indexable, cfg Config) *Tree {
	t := &Tree{NumInput: len(elements)}
	t.Root = t.split(repo, elements, cfg)
	return t
}

// candidateStats accumulates, for one atomKey, how many elements mention it
// positively, negatively, or not at all — the counts every split metric is
// computed from.
type candidateStats struct {
	key                atomKey
	positive, negative, dontCare []Indexable
}

// literalKey resolves a ground literal to the dense per-category index its
// predicate+objects were interned under. Every literal reaching this point
// was already ground when its owning action/axiom was built, so the atom
// is guaranteed present in repo's table; InternGroundAtom is idempotent
// and simply returns the existing index in that case.
func literalKey(repo *formalism.Repository, cat formalism.Category, l formalism.GroundLiteral) atomKey {
	return atomKey{category: cat, atom: repo.InternGroundAtom(cat, l.Atom)}
}

func collectCandidates(repo *formalism.Repository, elements []Indexable, cfg Config) map[atomKey]*candidateStats {
	cats := categoriesFor(cfg.SplitStrategy)
	stats := make(map[atomKey]*candidateStats)

	// First pass: discover every (category, ground atom) pair mentioned by
	// any element, across the categories this strategy permits.
	mentioned := make(map[atomKey]bool)
	for _, e := range elements {
		for _, cat := range cats {
			for _, l := range e.Literals(cat) {
				mentioned[literalKey(repo, cat, l)] = true
			}
		}
	}

	for key := range mentioned {
		st := &candidateStats{key: key}
		for _, e := range elements {
			lits := e.Literals(key.category)
			found := false
			for _, l := range lits {
				if literalKey(repo, key.category, l) != key {
					continue
				}
				found = true
				if l.Positive {
					st.positive = append(st.positive, e)
				} else {
					st.negative = append(st.negative, e)
				}
				break
			}
			if !found {
				st.dontCare = append(st.dontCare, e)
			}
		}
		stats[key] = st
	}
	return stats
}

func categoriesFor(s SplitStrategy) []formalism.Category {
	switch s {
	case Static:
		return []formalism.Category{formalism.Static}
	case Dynamic:
		return []formalism.Category{formalism.Fluent, formalism.Derived}
	default:
		return []formalism.Category{formalism.Static, formalism.Fluent, formalism.Derived}
	}
}

// score computes cfg.SplitMetric for one candidate split; higher is always
// "more informative" before OptimizationDirection flips the comparison.
func score(st *candidateStats, total int, metric SplitMetric) float64 {
	p := float64(len(st.positive))
	n := float64(len(st.negative))
	d := float64(len(st.dontCare))
	t := float64(total)
	if t == 0 {
		return 0
	}
	switch metric {
	case Frequency:
		return (p + n) / t
	case InformationGain:
		return informationGain(p, n, d, t)
	default: // Gini
		return giniGain(p, n, d, t)
	}
}

func giniImpurity(counts ...float64) float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	sumSq := 0.0
	for _, c := range counts {
		frac := c / total
		sumSq += frac * frac
	}
	return 1 - sumSq
}

func giniGain(p, n, d, total float64) float64 {
	before := giniImpurity(p + n + d)
	after := (p/total)*giniImpurity(p) + (n/total)*giniImpurity(n) + (d/total)*giniImpurity(d)
	return before - after
}

func entropy(counts ...float64) float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		frac := c / total
		h -= frac * math.Log2(frac)
	}
	return h
}

func informationGain(p, n, d, total float64) float64 {
	before := entropy(p + n + d)
	after := (p/total)*entropy(p) + (n/total)*entropy(n) + (d/total)*entropy(d)
	return before - after
}
