package vrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInstance(t *testing.T) *Instance {
	t.Helper()
	inst, err := ReadInstance(writeTempInstance(t, sampleVRP))
	require.NoError(t, err)
	return inst
}

func TestExtractSubInstanceWithDepot(t *testing.T) {
	inst := testInstance(t)
	sub := ExtractSubInstance(inst, 3, true)

	assert.Equal(t, 3, sub.Dimension)
	assert.Equal(t, []int{0, 1, 2}, sub.OriginalNodes)
	assert.Equal(t, []int{0}, sub.Depots)
	assert.Equal(t, "toy-n5-k2_TSP3", sub.Name)
	assert.Equal(t, inst.Name, sub.SourceInstance)

	// Sliced, not recomputed.
	for i, a := range sub.OriginalNodes {
		for j, b := range sub.OriginalNodes {
			assert.Equal(t, inst.EdgeWeights[a][b], sub.EdgeWeights[i][j])
		}
	}
	assert.Equal(t, inst.Demands[1], sub.Demands[1])
	assert.Equal(t, inst.NodeCoordinates[2], sub.NodeCoordinates[2])
}

func TestExtractSubInstanceWithoutDepot(t *testing.T) {
	inst := testInstance(t)
	sub := ExtractSubInstance(inst, 3, false)

	assert.Equal(t, 3, sub.Dimension)
	assert.Equal(t, []int{1, 2, 3}, sub.OriginalNodes, "depot skipped, customers in ascending order")
	assert.Empty(t, sub.Depots)
}

func TestExtractSubInstanceClamps(t *testing.T) {
	inst := testInstance(t)

	sub := ExtractSubInstance(inst, 50, true)
	assert.Equal(t, inst.Dimension, sub.Dimension)

	sub = ExtractSubInstance(inst, 50, false)
	assert.Equal(t, inst.Dimension-1, sub.Dimension)
}

func TestExtractSubInstanceIdempotent(t *testing.T) {
	inst := testInstance(t)
	a := ExtractSubInstance(inst, 4, true)
	b := ExtractSubInstance(inst, 4, true)
	assert.Equal(t, a, b)
}

func TestMapToOriginal(t *testing.T) {
	inst := testInstance(t)
	sub := ExtractSubInstance(inst, 4, true)

	tour := []int{0, 2, 1, 3, 0}
	mapped := sub.MapToOriginal(tour)
	require.Len(t, mapped, len(tour))
	for i, node := range tour {
		assert.Equal(t, sub.OriginalNodes[node], mapped[i])
	}

	// Instances that aren't sub-instances pass tours through untouched.
	assert.Equal(t, tour, inst.MapToOriginal(tour))
}

func TestWriteTSPLIBRoundTrip(t *testing.T) {
	inst := testInstance(t)
	sub := ExtractSubInstance(inst, 4, true)

	path := t.TempDir() + "/sub.tsp"
	require.NoError(t, WriteTSPLIB(sub, path))

	reread, err := ReadInstance(path)
	require.NoError(t, err)
	assert.Equal(t, sub.Dimension, reread.Dimension)
	assert.Equal(t, sub.NodeCoordinates, reread.NodeCoordinates)
	assert.Equal(t, sub.EdgeWeights, reread.EdgeWeights)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	inst := testInstance(t)
	inst.Solution = &Solution{Cost: 14, Tour: []int{0, 1, 2, 3, 0}, Backend: "GUROBI"}

	path := t.TempDir() + "/inst.json"
	require.NoError(t, WriteJSON(inst, path))

	reread, err := ReadInstanceJSON(path)
	require.NoError(t, err)
	assert.Equal(t, inst.Name, reread.Name)
	assert.Equal(t, inst.EdgeWeights, reread.EdgeWeights)
	require.NotNil(t, reread.Solution)
	assert.Equal(t, inst.Solution.Tour, reread.Solution.Tour)
}
