package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsetSetTestClear(t *testing.T) {
	var b Bitset
	b.Set(3)
	b.Set(130)
	assert.True(t, b.Test(3))
	assert.True(t, b.Test(130))
	assert.False(t, b.Test(4), "bit 4 should not be set")

	b.Clear(3)
	assert.False(t, b.Test(3), "bit 3 should be cleared")
	assert.Equal(t, 1, b.Count())
}

func TestBitsetForEachOrdered(t *testing.T) {
	var b Bitset
	for _, i := range []int{200, 1, 64, 0} {
		b.Set(i)
	}
	var got []int
	b.ForEach(func(i int) { got = append(got, i) })
	require.Equal(t, []int{0, 1, 64, 200}, got)
}

func TestBitsetEqualAndClone(t *testing.T) {
	var a Bitset
	a.Set(5)
	b := a.Clone()
	b.Set(9)
	assert.False(t, a.Equal(b), "a and b should differ after mutating the clone")
	assert.True(t, a.Equal(a.Clone()), "a clone should equal its source")
}
