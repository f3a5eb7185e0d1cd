package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatForIndex(t *testing.T) {
	cases := []struct {
		index int
		seat  string
	}{
		{0, "1A"},
		{1, "1B"},
		{5, "1F"},
		{6, "2A"},
		{7, "2B"},
		{11, "2F"},
		{12, "3A"},
		{179, "30F"},
		{180, "31A"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.seat, SeatForIndex(tc.index), "index %d", tc.index)
	}
}

func TestSeatForIndex_DenseAndDistinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 180; i++ {
		seat := SeatForIndex(i)
		_, dup := seen[seat]
		assert.False(t, dup, "seat %s assigned twice", seat)
		seen[seat] = struct{}{}
	}
	assert.Len(t, seen, 180)
}
