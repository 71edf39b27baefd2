package vrp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVRP = `NAME : toy-n5-k2
COMMENT : (Augerat et al, No of trucks: 2, Optimal value: 358)
TYPE : CVRP
DIMENSION : 5
EDGE_WEIGHT_TYPE : EUC_2D
CAPACITY : 100
NODE_COORD_SECTION
1 0 0
2 0 3
3 4 3
4 4 0
5 10 10
DEMAND_SECTION
1 0
2 7
3 30
4 16
5 9
DEPOT_SECTION
1
-1
EOF
`

func writeTempInstance(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toy.vrp")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadInstance(t *testing.T) {
	inst, err := ReadInstance(writeTempInstance(t, sampleVRP))
	require.NoError(t, err)

	assert.Equal(t, "toy-n5-k2", inst.Name)
	assert.Equal(t, "CVRP", inst.Type)
	assert.Equal(t, 5, inst.Dimension)
	assert.Equal(t, 100, inst.Capacity)
	assert.Equal(t, "EUC_2D", inst.EdgeWeightType)
	assert.Equal(t, []int{0}, inst.Depots)
	assert.Equal(t, []int{0, 7, 30, 16, 9}, inst.Demands)
	assert.Equal(t, 2, inst.VehicleCount)
	assert.Equal(t, 358.0, inst.OptimalCost)
	assert.Equal(t, []float64{4, 3}, inst.NodeCoordinates[2])
}

func TestReadInstanceDefaults(t *testing.T) {
	// No DEMAND_SECTION, no DEPOT_SECTION, no truck count in the comment.
	content := `NAME : bare
TYPE : TSP
DIMENSION : 3
EDGE_WEIGHT_TYPE : EUC_2D
NODE_COORD_SECTION
1 0 0
2 3 0
3 0 4
EOF
`
	inst, err := ReadInstance(writeTempInstance(t, content))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1, 1}, inst.Demands, "demand defaults to 1 per node")
	assert.Equal(t, []int{0}, inst.Depots)
	assert.Equal(t, 4, inst.VehicleCount)
	assert.Equal(t, -1.0, inst.OptimalCost)
}

func TestReadInstanceMissingCoordinate(t *testing.T) {
	content := `NAME : broken
DIMENSION : 4
EDGE_WEIGHT_TYPE : EUC_2D
NODE_COORD_SECTION
1 0 0
2 0 3
3 4 3
EOF
`
	_, err := ReadInstance(writeTempInstance(t, content))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCoordinate)
}

func TestReadInstanceMalformedHeader(t *testing.T) {
	_, err := ReadInstance(writeTempInstance(t, "NAME broken without colon\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSection)
}

func TestCalcEdgeDistSymmetry(t *testing.T) {
	coords := [][]float64{{0, 0}, {13, 7}, {2, 9}, {41, 5}, {8, 8}}
	d, err := CalcEdgeDist(coords, "EUC_2D")
	require.NoError(t, err)

	for i := range d {
		assert.Equal(t, 0, d[i][i])
		for j := range d {
			assert.Equal(t, d[i][j], d[j][i], "d[%d][%d] != d[%d][%d]", i, j, j, i)
		}
	}
}

func TestCalcEdgeDistRoundsHalfUp(t *testing.T) {
	// Distance 2.5 must round to 3, not to the even 2. The published
	// benchmark costs are only reproducible with half-up rounding.
	d, err := CalcEdgeDist([][]float64{{0, 0}, {2.5, 0}}, "EUC_2D")
	require.NoError(t, err)
	assert.Equal(t, 3, d[0][1])

	d, err = CalcEdgeDist([][]float64{{0, 0}, {1.5, 0}}, "EUC_2D")
	require.NoError(t, err)
	assert.Equal(t, 2, d[0][1])
}

func TestCalcEdgeDistCeil(t *testing.T) {
	d, err := CalcEdgeDist([][]float64{{0, 0}, {2.1, 0}}, "CEIL_2D")
	require.NoError(t, err)
	assert.Equal(t, 3, d[0][1])
}

func TestCalcEdgeDistUnsupportedType(t *testing.T) {
	_, err := CalcEdgeDist([][]float64{{0, 0}}, "GEO")
	assert.ErrorIs(t, err, ErrUnsupportedDistanceType)
}

func TestExtractVehicleCount(t *testing.T) {
	assert.Equal(t, 7, ExtractVehicleCount("(Fisher, No of trucks: 7, Optimal value: 1162)"))
	assert.Equal(t, 4, ExtractVehicleCount("no hint here"))
}

func TestExtractOptimalCost(t *testing.T) {
	assert.Equal(t, 1162.0, ExtractOptimalCost("(Fisher, No of trucks: 7, Optimal value: 1162)"))
	assert.Equal(t, -1.0, ExtractOptimalCost(""))
}
