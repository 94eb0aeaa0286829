// Package state implements the segmented arena + content-addressed packed
// state store of spec.md §4.1 and §4.8: packed states are
// (fluent-atom-index bitset, derived-atom-index bitset, dense numeric
// array) tuples, deduplicated through internal/arena's indexed hash-set.
package state

import "math/bits"

// Bitset is a dense, dynamically-sized bit vector over atom indices, word
// size 64 to match the fluent/derived atom-index bitsets of spec.md §3.
type Bitset struct {
	words []uint64
}

// NewBitset returns an empty bitset.
func NewBitset() Bitset { return Bitset{} }

func wordIndex(i int) int { return i / 64 }
func bitMask(i int) uint64 { return uint64(1) << uint(i%64) }

func (b *Bitset) ensure(word int) {
	for len(b.words) <= word {
		b.words = append(b.words, 0)
	}
}

// Set turns bit i on.
func (b *Bitset) Set(i int) {
	w := wordIndex(i)
	b.ensure(w)
	b.words[w] |= bitMask(i)
}

// Clear turns bit i off.
func (b *Bitset) Clear(i int) {
	w := wordIndex(i)
	if w >= len(b.words) {
		return
	}
	b.words[w] &^= bitMask(i)
}

// Test reports whether bit i is on.
func (b Bitset) Test(i int) bool {
	w := wordIndex(i)
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&bitMask(i) != 0
}

// Clone returns an independent copy.
func (b Bitset) Clone() Bitset {
	cp := make([]uint64, len(b.words))
	copy(cp, b.words)
	return Bitset{words: cp}
}

// Count returns the number of set bits.
func (b Bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// ForEach calls f for every set bit index, in ascending order.
func (b Bitset) ForEach(f func(i int)) {
	for wi, w := range b.words {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			f(wi*64 + bit)
			w &= w - 1
		}
	}
}

// Equal reports whether b and o have the same set bits.
func (b Bitset) Equal(o Bitset) bool {
	n := len(b.words)
	if len(o.words) > n {
		n = len(o.words)
	}
	for i := 0; i < n; i++ {
		var x, y uint64
		if i < len(b.words) {
			x = b.words[i]
		}
		if i < len(o.words) {
			y = o.words[i]
		}
		if x != y {
			return false
		}
	}
	return true
}

// Bytes serializes the bitset to a fixed-width little-endian byte slice,
// used as part of the packed-state encoding fed to the indexed hash-set.
func (b Bitset) Bytes() []byte {
	out := make([]byte, len(b.words)*8)
	for i, w := range b.words {
		for j := 0; j < 8; j++ {
			out[i*8+j] = byte(w >> (8 * j))
		}
	}
	return out
}

// Reset clears every bit without releasing backing storage.
func (b *Bitset) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}
