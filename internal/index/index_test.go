package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxIndexIsSentinel(t *testing.T) {
	assert.False(t, MaxIndex.Valid(), "MaxIndex must not be Valid")
	assert.True(t, Index(0).Valid(), "0 must be Valid")
}

func TestSetAddDedupAndOrder(t *testing.T) {
	var s Set
	for _, v := range []Index{5, 1, 3, 1, 5, 2} {
		s.Add(v)
	}
	want := []Index{1, 2, 3, 5}
	got := s.Values()
	require.Equal(t, want, got)

	for _, v := range want {
		assert.True(t, s.Contains(v), "expected set to contain %d", v)
	}
	assert.False(t, s.Contains(99), "set should not contain 99")
}
