package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentedWriteStable(t *testing.T) {
	a := NewSegmented(4, 64)
	p1 := a.Write([]byte{1, 2, 3})
	p2 := a.Write([]byte{4, 5})
	p3 := a.Write([]byte{6, 7, 8, 9, 10}) // forces growth beyond first segment

	assert.Equal(t, []byte{1, 2, 3}, p1, "p1 corrupted")
	assert.Equal(t, []byte{4, 5}, p2, "p2 corrupted after growth")
	assert.Equal(t, []byte{6, 7, 8, 9, 10}, p3, "p3 wrong")
	assert.EqualValues(t, 10, a.Size())
}

func TestSegmentedPanicsOnOversizedWrite(t *testing.T) {
	a := NewSegmented(4, 8)
	assert.Panics(t, func() { a.Write(make([]byte, 100)) })
}

func TestHashSetDedup(t *testing.T) {
	h := NewHashSet()
	i1 := h.Insert([]byte{1, 1, 0})
	i2 := h.Insert([]byte{2, 2, 0})
	i3 := h.Insert([]byte{1, 1, 0}) // duplicate of i1

	assert.Equal(t, i1, i3, "equal encodings should get the same index")
	assert.NotEqual(t, i1, i2, "distinct encodings should get different indices")
	require.Equal(t, 2, h.Len())
	assert.Equal(t, []byte{2, 2, 0}, h.View(i2))
}

func TestHashSetIndicesConsecutive(t *testing.T) {
	h := NewHashSet()
	for i := 0; i < 100; i++ {
		got := h.Insert([]byte{byte(i), byte(i >> 8)})
		require.Equal(t, uint32(i), got)
	}
}
