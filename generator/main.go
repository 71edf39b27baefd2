package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"git.solver4all.com/azaryc2s/vrp"
	"git.solver4all.com/azaryc2s/vrp/tsp"
)

var nodes vrp.ArrayIntFlags

func main() {
	flag.Var(&nodes, "n", "List of number of nodes")
	name := flag.String("name", "zarychta", "Name prefix for the instances")
	count := flag.Int("count", 10, "Number of instances per size")
	xTo := flag.Int("x", 10000, "Max value on the x-axis")
	yTo := flag.Int("y", 10000, "Max value on the y-axis")
	w := flag.String("w", "EUC_2D", "EDGE_WEIGHT_TYPE - how the distance between nodes is calculated.")
	maxDemand := flag.Int("demand", 10, "Max demand per customer")
	capacity := flag.Int("capacity", 100, "Vehicle capacity")
	trucks := flag.Int("trucks", 4, "Vehicle count embedded in the comment")
	calcTSP := flag.Bool("tsp", false, "Whether to calculate the optimal tsp-route and embed its length in the comment (needs gurobi configured and could take a while for bigger instances)")

	flag.Parse()

	rand.Seed(time.Now().UnixNano())
	for l := 0; l < *count; l++ {
		for i := 0; i < len(nodes); i++ {
			n := nodes[i]
			coordinates := make([][]float64, n)
			demands := make([]int, n)
			for node := 0; node < n; node++ {
				coordinates[node] = []float64{float64(rand.Intn(*xTo)), float64(rand.Intn(*yTo))}
				demands[node] = 1 + rand.Intn(*maxDemand)
			}
			demands[0] = 0 // depot

			edgeWeights, err := vrp.CalcEdgeDist(coordinates, *w)
			if err != nil {
				log.Fatal(err)
			}

			comment := fmt.Sprintf("Generated instance (%s, No of trucks: %d)", *name, *trucks)
			if *calcTSP {
				res, err := tsp.SolveTSP(edgeWeights, tsp.Params{})
				if err != nil {
					log.Printf("Couldn't compute the tsp length: %s\n", err.Error())
				} else if res.Status == tsp.Optimal {
					comment = fmt.Sprintf("%s, Optimal value: %d", comment, res.Length)
				}
			}

			inst := &vrp.Instance{
				Name:            fmt.Sprintf("%s-n%d-%d", *name, n, l),
				Comment:         comment,
				Type:            "CVRP",
				Dimension:       n,
				Capacity:        *capacity,
				EdgeWeightType:  *w,
				Depots:          []int{0},
				NodeCoordinates: coordinates,
				Demands:         demands,
				EdgeWeights:     edgeWeights,
				VehicleCount:    *trucks,
				OptimalCost:     vrp.ExtractOptimalCost(comment),
			}

			fileName := fmt.Sprintf("%s.json", inst.Name)
			if err := vrp.WriteJSON(inst, fileName); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("Generated %s with %d nodes\n", fileName, n)
		}
	}
}
