package vrp

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ExtractSubInstance derives a TSP instance from the first k nodes of a
// parsed instance. With includeDepot the depot becomes index 0 followed by
// the first k-1 customers in ascending id order, otherwise the first k
// customers are taken. k is clamped to the available node count instead of
// failing, since undersized requests only come up in exploratory sweeps.
// The distance matrix is sliced from the parent, not recomputed.
func ExtractSubInstance(inst *Instance, k int, includeDepot bool) *Instance {
	depot := 0
	if len(inst.Depots) > 0 {
		depot = inst.Depots[0]
	}

	var selected []int
	if includeDepot {
		if k > inst.Dimension {
			k = inst.Dimension
		}
		selected = append(selected, depot)
		for id := 0; id < inst.Dimension && len(selected) < k; id++ {
			if id != depot {
				selected = append(selected, id)
			}
		}
	} else {
		if k > inst.Dimension-1 {
			k = inst.Dimension - 1
		}
		for id := 0; id < inst.Dimension && len(selected) < k; id++ {
			if id != depot {
				selected = append(selected, id)
			}
		}
	}

	sub := &Instance{
		Name:           fmt.Sprintf("%s_TSP%d", inst.Name, len(selected)),
		Comment:        fmt.Sprintf("TSP extracted from %s", inst.Name),
		Type:           "TSP",
		Dimension:      len(selected),
		EdgeWeightType: inst.EdgeWeightType,
		OptimalCost:    -1,
		OriginalNodes:  selected,
		SourceInstance: inst.Name,
	}
	if includeDepot {
		sub.Depots = []int{0}
	}

	sub.NodeCoordinates = make([][]float64, len(selected))
	sub.Demands = make([]int, len(selected))
	sub.EdgeWeights = make([][]int, len(selected))
	for i, a := range selected {
		sub.NodeCoordinates[i] = inst.NodeCoordinates[a]
		sub.Demands[i] = inst.Demands[a]
		sub.EdgeWeights[i] = make([]int, len(selected))
		for j, b := range selected {
			sub.EdgeWeights[i][j] = inst.EdgeWeights[a][b]
		}
	}
	return sub
}

// MapToOriginal translates node indices of a sub-instance tour back to the
// parent instance's 0-based ids. Instances without an OriginalNodes table
// are returned as-is.
func (inst *Instance) MapToOriginal(tour []int) []int {
	if inst.OriginalNodes == nil {
		return tour
	}
	mapped := make([]int, len(tour))
	for i, node := range tour {
		mapped[i] = inst.OriginalNodes[node]
	}
	return mapped
}

// WriteTSPLIB saves the instance in TSPLIB format with 1-based node ids.
func WriteTSPLIB(inst *Instance, path string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "NAME : %s\n", inst.Name)
	fmt.Fprintf(&b, "TYPE : %s\n", inst.Type)
	fmt.Fprintf(&b, "COMMENT : %s\n", inst.Comment)
	fmt.Fprintf(&b, "DIMENSION : %d\n", inst.Dimension)
	fmt.Fprintf(&b, "EDGE_WEIGHT_TYPE : %s\n", inst.EdgeWeightType)
	fmt.Fprintf(&b, "NODE_COORD_SECTION\n")
	for i := 0; i < inst.Dimension; i++ {
		fmt.Fprintf(&b, "%d %g %g\n", i+1, inst.NodeCoordinates[i][0], inst.NodeCoordinates[i][1])
	}
	fmt.Fprintf(&b, "EOF\n")
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// WriteJSON saves the instance (and any attached solution) as indented JSON
// with the numeric arrays collapsed onto single lines.
func WriteJSON(inst *Instance, path string) error {
	jsonInst, err := json.MarshalIndent(inst, "", "\t")
	if err != nil {
		return err
	}
	jsonInst = []byte(SanitizeJsonArrayLineBreaks(string(jsonInst)))
	return os.WriteFile(path, jsonInst, 0644)
}

// ReadInstanceJSON loads an instance previously saved with WriteJSON.
func ReadInstanceJSON(path string) (*Instance, error) {
	instStr, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	inst := &Instance{}
	if err := json.Unmarshal(instStr, inst); err != nil {
		return nil, err
	}
	return inst, nil
}
