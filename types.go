package vrp

type Instance struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`

	Dimension       int         `json:"dimension"`
	Capacity        int         `json:"capacity"`
	EdgeWeightType  string      `json:"edge_weight_type"`
	Depots          []int       `json:"depots"`
	NodeCoordinates [][]float64 `json:"node_coordinates"`
	Demands         []int       `json:"demands"`
	EdgeWeights     [][]int     `json:"edge_weights"`

	VehicleCount int     `json:"vehicle_count"`
	OptimalCost  float64 `json:"optimal_cost"`

	// Only set on instances derived by ExtractSubInstance. OriginalNodes[i]
	// is the 0-based node id of i in the parent instance.
	OriginalNodes  []int  `json:"original_nodes,omitempty"`
	SourceInstance string `json:"source_instance,omitempty"`

	Solution *Solution `json:"solution,omitempty"`
}

type Solution struct {
	Cost     int    `json:"cost"`
	Optimal  bool   `json:"optimal"`
	Tour     []int  `json:"tour"`
	Backend  string `json:"backend"`
	Edges    int    `json:"edges"`
	Subtours int    `json:"subtours"`
	Repaired bool   `json:"repaired"`
	Valid    bool   `json:"valid"`

	Time    string  `json:"time"`
	System  SysInfo `json:"system"`
	Comment string  `json:"comment"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}
