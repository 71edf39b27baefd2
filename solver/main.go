package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"git.solver4all.com/azaryc2s/vrp"
	"git.solver4all.com/azaryc2s/vrp/tsp"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

const (
	BACKEND_GUROBI = "GUROBI"
	BACKEND_HIGHS  = "HIGHS"
)

var (
	inputF       *string
	outputF      *string
	backend      *string
	subSize      *int
	includeDepot *bool
	timeLimit    *float64
	gapRel       *float64
	logLvl       *int

	sol vrp.Solution
)

func main() {
	inputF = flag.String("input", "input.vrp", "Path to the input instance (.vrp or .json)")
	outputF = flag.String("output", "", "Path to the output file. By default a .json next to the input")
	backend = flag.String("backend", BACKEND_GUROBI, "MIP backend. GUROBI (lazy SECs) or HIGHS (MTZ)")
	subSize = flag.Int("n", 0, "Extract a sub-instance of this size before solving. 0 solves the full instance")
	includeDepot = flag.Bool("depot", true, "Include the depot in the extracted sub-instance")
	timeLimit = flag.Float64("timelimit", 60, "Solver time limit in seconds")
	gapRel = flag.Float64("gap", 0.01, "Relative MIP gap")
	logLvl = flag.Int("v", 2, "Log level (1=error .. 4=spam)")

	flag.Parse()
	vrp.InitLoggers(*logLvl)

	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()
	sol = vrp.Solution{System: vrp.SysInfo{hostStat.Platform, cpuStat[0].ModelName, fmt.Sprintf("%d GB", (vmStat.Total / 1024 / 1024 / 1024))}}

	inst, err := readInstance(*inputF)
	if err != nil {
		log.Printf("At %s: %s\n", *inputF, err.Error())
		return
	}
	vrp.Log(2, "Read instance %s with %d nodes\n", inst.Name, inst.Dimension)

	if *subSize > 0 {
		inst = vrp.ExtractSubInstance(inst, *subSize, *includeDepot)
		vrp.Log(2, "Extracted sub-instance %s with %d nodes\n", inst.Name, inst.Dimension)
	}

	par := tsp.Params{TimeLimit: *timeLimit, GapRel: *gapRel}
	var res *tsp.Result
	startTime := time.Now()
	switch strings.ToUpper(*backend) {
	case BACKEND_GUROBI:
		res, err = tsp.SolveTSP(inst.EdgeWeights, par)
	case BACKEND_HIGHS:
		res, err = tsp.SolveTSPMTZ(inst.EdgeWeights, par)
	default:
		log.Printf("Unsupported backend: %s\n", *backend)
		return
	}
	if err != nil {
		log.Printf("At %s: %s\n", *inputF, err.Error())
		return
	}
	sol.Time = time.Since(startTime).String()

	sol.Backend = strings.ToUpper(*backend)
	sol.Tour = res.Tour
	sol.Cost = res.Length
	sol.Optimal = res.Status == tsp.Optimal
	sol.Edges = res.Diag.Edges
	sol.Subtours = res.Diag.Subtours
	sol.Repaired = res.Diag.Repaired
	if res.Status == tsp.NoSolution {
		sol.Comment = "No solution found"
	}
	sol.Valid = vrp.CheckTour(res.Tour, inst.Dimension, inst.EdgeWeights, res.Length)
	if !sol.Valid && res.Status != tsp.NoSolution {
		sol.Comment += "Tour failed validation"
	}
	inst.Solution = &sol

	fileName := *outputF
	if fileName == "" {
		fileName = strings.ReplaceAll(*inputF, ".vrp", ".json")
	}
	err = vrp.WriteJSON(inst, fileName)
	if err != nil {
		log.Printf("At %s: %s\n", fileName, err.Error())
		return
	}
	fmt.Printf("Found a tour with %d nodes and length %d (%s, valid=%t): %v\n", len(res.Tour), res.Length, res.Status, sol.Valid, res.Tour)
}

func readInstance(path string) (*vrp.Instance, error) {
	if strings.HasSuffix(path, ".json") {
		return vrp.ReadInstanceJSON(path)
	}
	return vrp.ReadInstance(path)
}
