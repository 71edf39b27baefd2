package tsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXIndexBijection(t *testing.T) {
	n := 7
	seen := make(map[int]bool)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			col := xIndex(i, j, n)
			assert.GreaterOrEqual(t, col, 0)
			assert.Less(t, col, n*(n-1))
			assert.False(t, seen[col], "column %d assigned twice", col)
			seen[col] = true
		}
	}
	assert.Len(t, seen, n*(n-1))
}

func TestUIndexRange(t *testing.T) {
	n := 7
	for i := 1; i < n; i++ {
		col := uIndex(i, n)
		assert.GreaterOrEqual(t, col, n*(n-1))
		assert.Less(t, col, n*(n-1)+n-1)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "OPTIMAL", Optimal.String())
	assert.Equal(t, "FEASIBLE", Feasible.String())
	assert.Equal(t, "NO_SOLUTION", NoSolution.String())
}
