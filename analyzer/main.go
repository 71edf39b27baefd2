package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"git.solver4all.com/azaryc2s/vrp"
	"gonum.org/v1/gonum/stat"
)

func main() {
	if len(os.Args) < 2 {
		log.Printf("No arguments passed!")
		return
	}
	dirName := os.Args[1]
	dir, err := os.ReadDir(dirName)
	if err != nil {
		log.Printf("Couldn't open directory %s: %s\n", os.Args[1], err.Error())
		return
	}

	var gaps []float64
	fmt.Printf("Name,Backend,Optimal,Time,Cost,KnownOpt,Gap,Dimension,Subtours,Repaired,Valid,Comment\n")
	for _, f := range dir {
		fileName := filepath.Join(dirName, f.Name())
		if !strings.HasSuffix(fileName, ".json") {
			continue
		}
		inst, err := vrp.ReadInstanceJSON(fileName)
		if err != nil {
			log.Printf("Couldn't parse %s: %s\n", f.Name(), err.Error())
			return
		}
		var sol vrp.Solution
		if inst.Solution != nil {
			sol = *inst.Solution
		}

		valid, err := revalidate(inst, sol)
		if err != nil {
			sol.Comment += fmt.Sprintf("ANALYZER: Error = %s", err.Error())
		}

		knownOpt := inst.OptimalCost
		if knownOpt < 0 {
			knownOpt = readCompanionCost(dirName, inst)
		}
		gap := -1.0
		if knownOpt > 0 && sol.Cost >= 0 {
			gap = 100.0 * (float64(sol.Cost) - knownOpt) / knownOpt
			gaps = append(gaps, gap)
		}
		fmt.Printf("%s,%s,%t,%s,%d,%.0f,%.4f,%d,%d,%t,%t,%s\n",
			inst.Name, sol.Backend, sol.Optimal, sol.Time, sol.Cost, knownOpt, gap,
			inst.Dimension, sol.Subtours, sol.Repaired, valid, sol.Comment)
	}
	if len(gaps) > 0 {
		fmt.Printf("# gap mean %.4f stddev %.4f over %d runs\n", stat.Mean(gaps, nil), stat.StdDev(gaps, nil), len(gaps))
	}
}

// revalidate recomputes the distance matrix from the stored coordinates and
// checks the tour against it, instead of trusting the matrix (or the valid
// flag) stored in the result file.
func revalidate(inst *vrp.Instance, sol vrp.Solution) (bool, error) {
	if sol.Tour == nil {
		return false, nil
	}
	edgeWeights, err := vrp.CalcEdgeDist(inst.NodeCoordinates, inst.EdgeWeightType)
	if err != nil {
		return false, err
	}
	return vrp.CheckTour(sol.Tour, inst.Dimension, edgeWeights, sol.Cost), nil
}

// readCompanionCost looks for a benchmark .sol file next to the result and
// pulls the published cost out of it.
func readCompanionCost(dirName string, inst *vrp.Instance) float64 {
	name := inst.SourceInstance
	if name == "" {
		name = inst.Name
	}
	solFile := filepath.Join(dirName, name+".sol")
	if _, err := os.Stat(solFile); err != nil {
		return -1
	}
	_, cost, err := vrp.ReadSolutionFile(solFile)
	if err != nil {
		log.Printf("Couldn't parse %s: %s\n", solFile, err.Error())
		return -1
	}
	return cost
}
