package search

import (
	"fmt"
	"strings"

	"mimir/internal/index"
	"mimir/internal/state"
)

// NoveltyTable is spec.md §4.9's IW(k) novelty structure: the set of
// fluent-atom tuples of size <= k seen so far. A state is novel iff it
// contains at least one tuple not yet in the table; IW adds all of a
// novel state's tuples to the table when it generates that state.
type NoveltyTable struct {
	k    int
	seen map[string]bool
}

// NewNoveltyTable builds an empty table for width k, pre-sizing its
// backing map to initialTableAtoms (spec.md §6's IW config
// `{initial_table_atoms: N}`, default 64) as a starting capacity hint.
func NewNoveltyTable(k, initialTableAtoms int) *NoveltyTable {
	return &NoveltyTable{k: k, seen: make(map[string]bool, initialTableAtoms)}
}

func trueAtoms(s state.Packed) []index.Index {
	var out []index.Index
	s.Fluent.ForEach(func(i int) { out = append(out, index.Index(i)) })
	return out
}

func tupleKey(tuple []index.Index) string {
	var b strings.Builder
	for i, a := range tuple {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", a)
	}
	return b.String()
}

// IsNovel reports whether s contains at least one true-atom tuple of size
// <= k not already in the table, WITHOUT mutating the table.
func (t *NoveltyTable) IsNovel(s state.Packed) bool {
	atoms := trueAtoms(s)
	if t.k == 0 {
		return !t.seen[""]
	}
	novel := false
	forEachTuple(atoms, t.k, func(tuple []index.Index) bool {
		if !t.seen[tupleKey(tuple)] {
			novel = true
			return false // stop early: novelty already established
		}
		return true
	})
	return novel
}

// Add records every tuple of size <= k present in s.
func (t *NoveltyTable) Add(s state.Packed) {
	atoms := trueAtoms(s)
	if t.k == 0 {
		t.seen[""] = true
		return
	}
	forEachTuple(atoms, t.k, func(tuple []index.Index) bool {
		t.seen[tupleKey(tuple)] = true
		return true
	})
}

// forEachTuple calls visit with every strictly-increasing-position combination of
// atoms of size 1..maxSize, stopping early if visit returns false.
func forEachTuple(atoms []index.Index, maxSize int, visit func(tuple []index.Index) bool) {
	n := len(atoms)
	buf := make([]index.Index, 0, maxSize)
	var rec func(start, size int) bool
	rec = func(start, size int) bool {
		if size > 0 {
			if !visit(buf) {
				return false
			}
		}
		if size == maxSize {
			return true
		}
		for i := start; i < n; i++ {
			buf = append(buf, atoms[i])
			if !rec(i+1, size+1) {
				buf = buf[:len(buf)-1]
				return false
			}
			buf = buf[:len(buf)-1]
		}
		return true
	}
	rec(0, 0)
}
