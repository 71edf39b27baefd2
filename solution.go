package vrp

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadSolutionFile parses a CVRPLIB companion solution file: one
// "Route #k: id id id" line per route followed by a "Cost v" line.
// Node ids are kept exactly as written; benchmark .sol files number
// customers without the depot.
func ReadSolutionFile(path string) ([][]int, float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, -1, err
	}
	defer file.Close()

	var routes [][]int
	cost := -1.0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		t := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(t, "Route") {
			lineSplit := strings.SplitN(t, ":", 2)
			if len(lineSplit) != 2 {
				return nil, -1, fmt.Errorf("%w: route line %q", ErrMalformedSection, t)
			}
			var route []int
			for _, field := range strings.Fields(lineSplit[1]) {
				id, err := strconv.Atoi(field)
				if err != nil {
					return nil, -1, fmt.Errorf("%w: route node %q", ErrMalformedSection, field)
				}
				route = append(route, id)
			}
			routes = append(routes, route)
		} else if strings.HasPrefix(t, "Cost") {
			fields := strings.Fields(t)
			if len(fields) < 2 {
				return nil, -1, fmt.Errorf("%w: cost line %q", ErrMalformedSection, t)
			}
			cost, err = strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, -1, fmt.Errorf("%w: cost %q", ErrMalformedSection, fields[1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, -1, err
	}
	return routes, cost, nil
}
