// Package arena provides append-only, segmented byte storage (spec.md
// §4.1) and a content-addressed indexed hash-set built on top of it. It is
// the Go rendering of the source's cista::storage::ByteBufferSegmented and
// valla::IndexedHashSet (_examples/original_source/include/cista/storage/
// byte_buffer_segmented.h and include/valla/indexed_hash_set.hpp): instead of
// a template over a byte-serializable value, the hash-set below stores
// values that the caller has already serialized to bytes (see
// HashSet.Insert).
package arena

// Segmented is a fixed-capacity-segment, doubling-growth byte arena. Pointers
// it returns (as []byte slices) remain valid for the arena's lifetime because
// segments are never moved or resized after allocation, only appended.
type Segmented struct {
	segments      [][]byte
	bytesPerSeg   int
	maxBytesPerSeg int
	curSeg        int
	curPos        int
	size          int
	capacity      int
}

// NewSegmented creates an empty arena; no segment is allocated before the
// first Write. Every new segment doubles the segment size (starting from
// initialBytes, or from the triggering write's size if larger), capped at
// maxBytes per segment, so the first segment is 2*initialBytes large.
func NewSegmented(initialBytes, maxBytes int) *Segmented {
	if initialBytes <= 0 {
		initialBytes = 1024
	}
	if maxBytes <= 0 {
		maxBytes = 1024 * 1024
	}
	return &Segmented{
		bytesPerSeg:    initialBytes,
		maxBytesPerSeg: maxBytes,
		curSeg:         -1,
	}
}

// Write copies data into the current segment, allocating a new (doubled)
// segment first if there isn't enough room. It returns a slice pointing at
// the written bytes inside the arena; the slice is stable for the arena's
// lifetime. Write panics if a single value exceeds the segment cap — per
// spec.md §4.1 this is a fatal failure mode, not a recoverable error, since
// it indicates a config/usage bug rather than bad input data.
func (a *Segmented) Write(data []byte) []byte {
	amount := len(data)
	if a.curSeg < 0 || amount > a.bytesPerSeg-a.curPos {
		a.grow(amount)
	}
	seg := a.segments[a.curSeg]
	dst := seg[a.curPos : a.curPos+amount]
	copy(dst, data)
	a.curPos += amount
	a.size += amount
	return dst
}

func (a *Segmented) grow(required int) {
	if required > a.maxBytesPerSeg {
		panic("arena.Segmented.Write: value exceeds maximum segment size")
	}
	if required > a.bytesPerSeg {
		a.bytesPerSeg = required
	}
	a.bytesPerSeg *= 2
	if a.bytesPerSeg > a.maxBytesPerSeg {
		a.bytesPerSeg = a.maxBytesPerSeg
	}
	a.segments = append(a.segments, make([]byte, a.bytesPerSeg))
	a.capacity += a.bytesPerSeg
	a.curPos = 0
	a.curSeg++
}

// NumSegments reports the number of allocated segments.
func (a *Segmented) NumSegments() int { return len(a.segments) }

// Size reports the total number of bytes written.
func (a *Segmented) Size() int { return a.size }

// Capacity reports the total number of bytes reserved across all segments.
func (a *Segmented) Capacity() int { return a.capacity }
