package arena

// HashSet implements the dedup primitive described in spec.md §4.1
// ("Indexed hash-set ... insert(v) -> index ... two values with equal
// serialized form receive the same index") by writing each inserted value's
// byte encoding into a Segmented arena and keying an index map on the
// resulting byte slice.
//
// This is valla::IndexedHashSet (original_source/include/valla/
// indexed_hash_set.hpp) specialized away from its C++ allocator-reuse trick:
// Go's map already hashes/compares []byte-keyed-as-string without us having
// to dereference stored pointers by hand, so the arena here exists purely to
// give callers a stable, contiguous byte view of each stored value (used by
// the state repository to expose `(index -> view)` references per spec.md
// §3 Ownership) rather than to drive the uniqueness check itself.
type HashSet struct {
	arena  *Segmented
	byKey  map[string]uint32
	slots  [][]byte
}

// NewHashSet creates an empty indexed hash-set backed by a fresh arena.
func NewHashSet() *HashSet {
	return &HashSet{
		arena: NewSegmented(4096, 64*1024*1024),
		byKey: make(map[string]uint32),
	}
}

// Insert deduplicates an already-encoded value against existing entries and
// returns the dense index assigned to it (the index of the first insertion
// of an equal byte encoding, if any). Indices are consecutive from 0.
func (h *HashSet) Insert(encoded []byte) uint32 {
	key := string(encoded) // Go interns the string->map lookup without an extra copy escaping.
	if idx, ok := h.byKey[key]; ok {
		return idx
	}
	stored := h.arena.Write(encoded)
	idx := uint32(len(h.slots))
	h.slots = append(h.slots, stored)
	h.byKey[string(stored)] = idx
	return idx
}

// Contains reports whether encoded was already inserted, without inserting
// it — used by grounding to test static-atom membership without growing
// the table (spec.md §3: "the initial state's static atoms are implied by
// the problem", so grounding only ever looks them up, never adds new ones).
func (h *HashSet) Contains(encoded []byte) (uint32, bool) {
	idx, ok := h.byKey[string(encoded)]
	return idx, ok
}

// View returns the stored bytes for idx. The returned slice is valid for the
// hash-set's lifetime (spec.md §3: "external users hold (index -> view)
// references that remain valid for the repository's lifetime").
func (h *HashSet) View(idx uint32) []byte {
	return h.slots[idx]
}

// Len reports how many distinct values have been inserted.
func (h *HashSet) Len() int { return len(h.slots) }

// MemUsage approximates bytes retained, mirroring valla::IndexedHashSet's
// mem_usage() diagnostic.
func (h *HashSet) MemUsage() int {
	usage := h.arena.Capacity()
	for k := range h.byKey {
		usage += len(k) + 8
	}
	return usage
}
