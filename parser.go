package vrp

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	truckCountRe = regexp.MustCompile(`No of trucks:\s*(\d+)`)
	optimalRe    = regexp.MustCompile(`Optimal value:\s*([\d.]+)`)
)

// ReadInstance parses a CVRPLIB/TSPLIB-style instance file. Node ids are
// 1-based in the file and re-indexed to 0-based here. The distance matrix
// is computed eagerly, so a node without a coordinate entry is reported
// right away instead of surfacing as a zero-distance edge later.
func ReadInstance(path string) (*Instance, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	inst := &Instance{Name: strings.TrimSuffix(filepath.Base(path), ".vrp"), EdgeWeightType: "EUC_2D"}

	const (
		sectionHeader = iota
		sectionCoords
		sectionDemands
		sectionDepots
	)
	section := sectionHeader
	coords := make(map[int][]float64)
	demands := make(map[int]int)

	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		t := strings.TrimSpace(scanner.Text())
		if t == "" || t == "EOF" {
			continue
		}
		switch t {
		case "NODE_COORD_SECTION":
			section = sectionCoords
			continue
		case "DEMAND_SECTION":
			section = sectionDemands
			continue
		case "DEPOT_SECTION":
			section = sectionDepots
			continue
		}
		switch section {
		case sectionHeader:
			lineSplit := strings.SplitN(t, ":", 2)
			if len(lineSplit) != 2 {
				return nil, fmt.Errorf("%w: header line %d: %q", ErrMalformedSection, line, t)
			}
			key := strings.TrimSpace(lineSplit[0])
			value := strings.TrimSpace(lineSplit[1])
			switch key {
			case "NAME":
				inst.Name = value
			case "COMMENT":
				inst.Comment = value
			case "TYPE":
				inst.Type = value
			case "DIMENSION":
				inst.Dimension, err = strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: DIMENSION %q", ErrMalformedSection, line, value)
				}
			case "CAPACITY":
				inst.Capacity, err = strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: CAPACITY %q", ErrMalformedSection, line, value)
				}
			case "EDGE_WEIGHT_TYPE":
				inst.EdgeWeightType = value
			}
		case sectionCoords:
			fields := strings.Fields(t)
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: coordinate %q", ErrMalformedSection, line, t)
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: node id %q", ErrMalformedSection, line, fields[0])
			}
			x, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: x %q", ErrMalformedSection, line, fields[1])
			}
			y, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: y %q", ErrMalformedSection, line, fields[2])
			}
			coords[id-1] = []float64{x, y}
		case sectionDemands:
			fields := strings.Fields(t)
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: demand %q", ErrMalformedSection, line, t)
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: node id %q", ErrMalformedSection, line, fields[0])
			}
			demand, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: demand %q", ErrMalformedSection, line, fields[1])
			}
			demands[id-1] = demand
		case sectionDepots:
			depot, err := strconv.Atoi(t)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: depot %q", ErrMalformedSection, line, t)
			}
			if depot < 0 {
				section = sectionHeader
				continue
			}
			inst.Depots = append(inst.Depots, depot-1) //its not 0-indexed in the file, so we subtract 1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if inst.Dimension == 0 {
		inst.Dimension = len(coords)
	}
	inst.NodeCoordinates = make([][]float64, inst.Dimension)
	for i := 0; i < inst.Dimension; i++ {
		inst.NodeCoordinates[i] = coords[i]
	}
	inst.Demands = make([]int, inst.Dimension)
	for i := 0; i < inst.Dimension; i++ {
		if d, ok := demands[i]; ok {
			inst.Demands[i] = d
		} else {
			inst.Demands[i] = 1
		}
	}
	if len(inst.Depots) == 0 {
		inst.Depots = []int{0}
	}
	inst.VehicleCount = ExtractVehicleCount(inst.Comment)
	inst.OptimalCost = ExtractOptimalCost(inst.Comment)

	inst.EdgeWeights, err = CalcEdgeDist(inst.NodeCoordinates, inst.EdgeWeightType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// ExtractVehicleCount pulls the truck count out of the free-text comment.
// CVRPLIB embeds it as "No of trucks: k". Defaults to 4 when absent.
func ExtractVehicleCount(comment string) int {
	if m := truckCountRe.FindStringSubmatch(comment); m != nil {
		count, err := strconv.Atoi(m[1])
		if err == nil {
			return count
		}
	}
	return 4
}

// ExtractOptimalCost pulls the published optimal cost out of the comment
// ("Optimal value: v"). Returns -1 when absent.
func ExtractOptimalCost(comment string) float64 {
	if m := optimalRe.FindStringSubmatch(comment); m != nil {
		cost, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return cost
		}
	}
	return -1
}

// CalcEdgeDist computes the full symmetric distance matrix. EUC_2D rounds
// half-up to the nearest integer. This must stay int(x + 0.5) and never
// become math.Round-half-even territory: the published optimal costs for
// the benchmark instances are only reproducible with half-up rounding.
func CalcEdgeDist(coordinates [][]float64, distType string) ([][]int, error) {
	if distType != "EUC_2D" && distType != "CEIL_2D" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDistanceType, distType)
	}
	n := len(coordinates)
	result := make([][]int, n)
	for node := 0; node < n; node++ {
		result[node] = make([]int, n)
	}
	for node := 0; node < n; node++ {
		if len(coordinates[node]) < 2 {
			return nil, fmt.Errorf("%w: node %d", ErrMissingCoordinate, node)
		}
		for node2 := 0; node2 < node; node2++ {
			xDist := coordinates[node][0] - coordinates[node2][0]
			yDist := coordinates[node][1] - coordinates[node2][1]
			var distance int
			if distType == "EUC_2D" {
				distance = int(math.Sqrt(xDist*xDist+yDist*yDist) + 0.5)
			} else {
				distance = int(math.Ceil(math.Sqrt(xDist*xDist + yDist*yDist)))
			}
			result[node][node2] = distance
			result[node2][node] = distance
		}
	}
	return result, nil
}
