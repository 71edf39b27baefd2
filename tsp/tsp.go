/*
  Solve a symmetric traveling salesman problem over a precomputed integer
  distance matrix. The base MIP model only includes 'degree-2' constraints,
  requiring each node to have exactly two incident edges. Solutions to this
  model may contain subtours - tours that don't visit every node. The lazy
  constraint callback adds new constraints to cut them off.
*/
package tsp

import (
	"fmt"
	"log"
	"time"

	"git.solver4all.com/azaryc2s/gorobi/gurobi"
	"git.solver4all.com/azaryc2s/vrp"
)

var (
	gurobiEnv   *gurobi.Env
	subtourCuts int
	varCount    int
)

/* Define structure to pass data to the callback function */

type SubData struct {
	N int
}

/* Given an integer-feasible solution 'edges', find the smallest sub-tour. */

func findsubtour(edges [][]int) (result []int) {
	n := len(edges)
	seen := make([]bool, n)
	tour := make([]int, n)

	start := 0
	bestlen := n + 1
	bestind := -1
	i := 0
	node := 0
	for start < n {
		for node = 0; node < n; node++ {
			if !seen[node] {
				break
			}
		}
		if node == n {
			break
		}
		for leng := 0; leng < n; leng++ {
			tour[start+leng] = node
			seen[node] = true
			for i = 0; i < n; i++ {
				if edges[node][i] == 1 && !seen[i] {
					node = i
					break
				}
			}
			if i == n {
				leng++
				if leng < bestlen {
					bestlen = leng
					bestind = start
				}
				start += leng
				break
			}
		}
	}
	return tour[bestind : bestind+bestlen]
}

/* Subtour elimination callback.  Whenever a feasible solution is found, find
   the shortest subtour and add the subtour elimination constraint if that
   tour doesn't visit every node. */

func subtourelim(model *gurobi.Model, cbdata gurobi.CPVoid, where int32, usrdata interface{}) int32 {
	n := usrdata.(SubData).N

	if where == gurobi.CB_MIPSOL {
		sol, err := gurobi.CbGetDblArray(cbdata, where, gurobi.CB_MIPSOL_SOL, varCount)
		if err != nil {
			log.Println(err)
		}
		edges := extractEdgeMatrix(sol, n)
		tour := findsubtour(edges)
		if len(tour) < n {
			subtourCuts++
			var (
				ind []int32
				val []float64
			)

			/* Add a subtour elimination constraint */
			for i := 0; i < len(tour); i++ {
				for j := i + 1; j < len(tour); j++ {
					ind = append(ind, int32(vrp.GetEdgeIndex(tour[i], tour[j], n, 0)))
				}
			}
			for i := 0; i < len(ind); i++ {
				val = append(val, 1.0)
			}

			err = gurobi.CbLazy(cbdata, len(ind), ind, val, gurobi.LESS_EQUAL, float64(len(tour)-1))
			if err != nil {
				log.Println(err)
			}
		}
	}

	return 0
}

func extractEdgeMatrix(solA []float64, n int) [][]int {
	yMat := make([][]int, n)
	for i := 0; i < n; i++ {
		yMat[i] = make([]int, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if solA[vrp.GetEdgeIndex(i, j, n, 0)] > 0.5 {
				yMat[i][j] = 1
				yMat[j][i] = 1
			}
		}
	}
	return yMat
}

// SolveTSP solves the symmetric TSP with the lazy-SEC formulation. The
// returned tour is closed (starts and ends at node 0) and already passed
// through findsubtour, so a fragmented incumbent can never leak out of the
// callback into the result.
func SolveTSP(d [][]int, par Params) (*Result, error) {
	/* Reset globals and create the gurobi environment */
	var err error
	subtourCuts = 0
	varCount = 0
	n := len(d)
	logFile := par.LogFile
	if logFile == "" {
		logFile = "tsp_gurobi.log"
	}
	gurobiEnv, err = gurobi.LoadEnv(logFile)
	if err != nil {
		return nil, err
	}
	defer gurobiEnv.Free()

	gurobiEnv.SetIntParam("LogToConsole", int32(0))
	defer gurobiEnv.SetIntParam("LogToConsole", int32(1))
	if par.TimeLimit > 0 {
		gurobiEnv.SetDblParam("TimeLimit", par.TimeLimit)
	}
	if par.GapRel > 0 {
		gurobiEnv.SetDblParam("MIPGap", par.GapRel)
	}

	/* Create an empty model */

	model, err := gurobiEnv.NewModel("tsp", 0, nil, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	defer model.Free()

	/* Add variables Y_ij - one for every pair of nodes where j > i, weighted
	   by the distance in the obj function */
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			name := fmt.Sprintf("Y_%d_%d", i, j)
			err = model.AddVar(nil, nil, float64(d[i][j]), 0.0, 1.0, gurobi.BINARY, name)
			if err != nil {
				return nil, err
			}
			varCount++
		}
	}

	/* Restrict the variables so that the sum of edges for each node is always = 2 */
	for i := 0; i < n; i++ {
		var (
			ind []int32
			val []float64
		)
		for j := i + 1; j < n; j++ {
			ind = append(ind, int32(vrp.GetEdgeIndex(i, j, n, 0)))
			val = append(val, 1.0)
		}
		for j := 0; j < i; j++ {
			ind = append(ind, int32(vrp.GetEdgeIndex(j, i, n, 0)))
			val = append(val, 1.0)
		}
		err = model.AddConstr(ind, val, gurobi.EQUAL, 2.0, fmt.Sprintf("node_2_%d", i))
		if err != nil {
			return nil, fmt.Errorf("adding node_2_%d: %w", i, err)
		}
	}

	/* Set callback function */

	err = model.SetCallbackFuncGo(subtourelim, SubData{N: n})
	if err != nil {
		return nil, err
	}

	/* Must set LazyConstraints parameter when using lazy constraints */

	err = model.SetIntParam(gurobi.INT_PAR_LAZYCONSTRAINTS, 1)
	if err != nil {
		return nil, err
	}

	/* Optimize model */

	startTime := time.Now()
	err = model.Optimize()
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(startTime)

	/* Extract solution */
	optimstatus, err := model.GetIntAttr(gurobi.INT_ATTR_STATUS)
	if err != nil {
		return nil, err
	}
	solcount, err := model.GetIntAttr(gurobi.INT_ATTR_SOLCOUNT)
	if err != nil {
		return nil, err
	}
	if solcount == 0 {
		log.Printf("No solution found (status %d)\n", optimstatus)
		return noSolution(elapsed), nil
	}

	sol, err := model.GetDblAttrArray(gurobi.DBL_ATTR_X, 0, int32(varCount))
	if err != nil {
		return nil, err
	}
	edges := extractEdgeMatrix(sol, n)
	tour := findsubtour(edges)
	length := 0
	for i := 0; i < len(tour); i++ {
		j := (i + 1) % len(tour)
		length += d[tour[i]][tour[j]]
	}

	res := &Result{
		Length:      length,
		Status:      Feasible,
		SubtourCuts: subtourCuts,
		SolveTime:   elapsed,
	}
	if optimstatus == gurobi.OPTIMAL {
		res.Status = Optimal
	}
	res.Diag = vrp.TourDiagnostics{Edges: len(tour)}

	/* Close the tour at node 0 the way the reconstructor reports it */
	for idx, node := range tour {
		if node == 0 {
			res.Tour = append(res.Tour, tour[idx:]...)
			res.Tour = append(res.Tour, tour[:idx]...)
			res.Tour = append(res.Tour, 0)
			break
		}
	}
	return res, nil
}
