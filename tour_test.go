package vrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assignmentMatrix builds an n x n directed 0/1 matrix from successor pairs.
func assignmentMatrix(n int, edges map[int]int) [][]int {
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	for i, j := range edges {
		m[i][j] = 1
	}
	return m
}

// Four nodes on a 3x4 rectangle: consecutive rounded Euclidean distances
// along 0-1-2-3-0 are 3, 4, 3, 4.
var rectCoords = [][]float64{{0, 0}, {0, 3}, {4, 3}, {4, 0}}

func rectDistances(t *testing.T) [][]int {
	t.Helper()
	d, err := CalcEdgeDist(rectCoords, "EUC_2D")
	require.NoError(t, err)
	return d
}

func TestExtractTourCompleteCycle(t *testing.T) {
	assign := assignmentMatrix(4, map[int]int{0: 1, 1: 2, 2: 3, 3: 0})

	tour, diag := ExtractTour(assign)
	assert.Equal(t, []int{0, 1, 2, 3, 0}, tour)
	assert.Equal(t, 4, diag.Edges)
	assert.False(t, diag.Repaired)

	d := rectDistances(t)
	assert.Equal(t, 14, TourLength(tour, d))
	assert.True(t, CheckTour(tour, 4, d, 14))
}

func TestExtractTourTwoSubtours(t *testing.T) {
	// Two disjoint 2-cycles: 0->1->0 and 2->3->2. Repair returns the cycle
	// containing node 0, closed. Structurally a tour, but it only visits 2
	// of 4 nodes, so validation must reject it.
	assign := assignmentMatrix(4, map[int]int{0: 1, 1: 0, 2: 3, 3: 2})

	tour, diag := ExtractTour(assign)
	assert.Equal(t, []int{0, 1, 0}, tour)
	assert.True(t, diag.Repaired)
	assert.Equal(t, 2, diag.Subtours)

	d := rectDistances(t)
	assert.False(t, CheckTour(tour, 4, d, TourLength(tour, d)))
}

func TestExtractTourPrefersDepotCycle(t *testing.T) {
	// 0->1->2->0 plus 3->4->5->3: the depot cycle wins even though both
	// have equal length, and the longer-cycle rule never applies.
	assign := assignmentMatrix(6, map[int]int{0: 1, 1: 2, 2: 0, 3: 4, 4: 5, 5: 3})

	tour, diag := ExtractTour(assign)
	assert.Equal(t, []int{0, 1, 2, 0}, tour)
	assert.Equal(t, 2, diag.Subtours)
}

func TestRepairSubtoursLongestCycle(t *testing.T) {
	// Successor map where node 0 dead-ends but two proper cycles exist;
	// the longer one (3,4,5) is reported, closed on its own start.
	next := []int{-1, 2, 1, 4, 5, 3}
	tour, subtours := RepairSubtours(next)
	assert.Equal(t, []int{3, 4, 5, 3}, tour)
	assert.Equal(t, 2, subtours)
}

func TestRepairSubtoursNoCycle(t *testing.T) {
	// Every node is a dead end: no cycle of length > 1 exists.
	next := []int{-1, -1, -1}
	tour, subtours := RepairSubtours(next)
	assert.Nil(t, tour)
	assert.Equal(t, 0, subtours)
}

func TestExtractTourNoEdgeFromDepot(t *testing.T) {
	assign := assignmentMatrix(4, map[int]int{1: 2, 2: 3, 3: 1})

	tour, diag := ExtractTour(assign)
	assert.Nil(t, tour)
	assert.Equal(t, 3, diag.Edges)
}

func TestExtractTourDeadEndTriggersRepair(t *testing.T) {
	// 0->1, then 1 dead-ends, while 2->3->2 is a proper cycle elsewhere.
	// The straight walk fails; repair keeps the dead-end fragment through
	// node 0 (the walk stops at a node with no successor, not only on a
	// closed cycle) and reports it closed. CheckTour is what rejects it.
	assign := assignmentMatrix(4, map[int]int{0: 1, 2: 3, 3: 2})

	tour, diag := ExtractTour(assign)
	assert.Equal(t, []int{0, 1, 0}, tour)
	assert.True(t, diag.Repaired)
	assert.Equal(t, 2, diag.Subtours)
}

func TestExtractTourUnevenCycles(t *testing.T) {
	// Cycle with node 0 of length 2, disjoint cycle of length 3: the
	// depot cycle is returned closed, length k+1 entries.
	assign := assignmentMatrix(5, map[int]int{0: 1, 1: 0, 2: 3, 3: 4, 4: 2})

	tour, _ := ExtractTour(assign)
	require.Len(t, tour, 3)
	assert.Equal(t, []int{0, 1, 0}, tour)
}

func TestCheckTour(t *testing.T) {
	d := rectDistances(t)

	assert.True(t, CheckTour([]int{0, 1, 2, 3, 0}, 4, d, 14))
	assert.False(t, CheckTour([]int{0, 1, 2, 3, 0}, 4, d, 13), "cost mismatch")
	assert.False(t, CheckTour([]int{0, 1, 2, 0}, 4, d, 11), "node 3 missing")
	assert.False(t, CheckTour([]int{0, 1, 2, 3, 1}, 4, d, 14), "not closed")
	assert.False(t, CheckTour([]int{0, 1, 1, 3, 0}, 4, d, 14), "node visited twice")
	assert.False(t, CheckTour(nil, 4, d, -1), "no tour")
}

func TestTourLength(t *testing.T) {
	d := rectDistances(t)
	assert.Equal(t, 14, TourLength([]int{0, 1, 2, 3, 0}, d))
	assert.Equal(t, 0, TourLength(nil, d))
	assert.Equal(t, 0, TourLength([]int{2}, d))
}
