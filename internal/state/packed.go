package state

import (
	"encoding/binary"
	"math"

	"mimir/internal/index"
)

// Packed is the triple from spec.md §3 "State": a fluent-atom-index bitset,
// a derived-atom-index bitset, and a dense array of numeric-function
// values, together with its dense state Index.
type Packed struct {
	Index   index.Index
	Fluent  Bitset
	Derived Bitset
	Numeric []float64
}

// encode produces the byte form inserted into the state repository's
// content-addressed hash-set: equal (fluent, derived, numeric) triples must
// serialize identically so structurally-equal states dedup to the same
// index (spec.md §4.8 step 5, invariant 3 "State deduplication").
func encode(fluent, derived Bitset, numeric []float64) []byte {
	fb := fluent.Bytes()
	db := derived.Bytes()
	out := make([]byte, 4+4+len(fb)+len(db)+8*len(numeric))
	binary.LittleEndian.PutUint32(out, uint32(len(fb)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(db)))
	off := 8
	copy(out[off:], fb)
	off += len(fb)
	copy(out[off:], db)
	off += len(db)
	for _, v := range numeric {
		binary.LittleEndian.PutUint64(out[off:], math.Float64bits(v))
		off += 8
	}
	return out
}

func decode(raw []byte) (fluent, derived Bitset, numeric []float64) {
	flen := binary.LittleEndian.Uint32(raw)
	dlen := binary.LittleEndian.Uint32(raw[4:])
	off := 8
	fluent = decodeBitset(raw[off : off+int(flen)])
	off += int(flen)
	derived = decodeBitset(raw[off : off+int(dlen)])
	off += int(dlen)
	n := (len(raw) - off) / 8
	numeric = make([]float64, n)
	for i := 0; i < n; i++ {
		numeric[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off+8*i:]))
	}
	return
}

func decodeBitset(b []byte) Bitset {
	words := make([]uint64, len(b)/8)
	for i := range words {
		var w uint64
		for j := 0; j < 8; j++ {
			w |= uint64(b[i*8+j]) << (8 * j)
		}
		words[i] = w
	}
	return Bitset{words: words}
}
