/*
  Solve the TSP as a compact directed MIP with MTZ subtour elimination,
  handed to HiGHS. Unlike the lazy-SEC model this one returns the raw 0/1
  assignment matrix: with a time limit or a loose gap the incumbent can
  still contain disjoint cycles, and the tour reconstructor with its repair
  fallback decides what to report.
*/
package tsp

import (
	"log"
	"math"
	"time"

	"git.solver4all.com/azaryc2s/vrp"
	"github.com/lanl/highs"
)

/* Column layout: n*(n-1) binary x_ij (i != j, row-major with the diagonal
   skipped), then n-1 continuous u_i position variables for i = 1..n-1. */

func xIndex(i, j, n int) int {
	col := i * (n - 1)
	if j < i {
		return col + j
	}
	return col + j - 1
}

func uIndex(i, n int) int {
	return n*(n-1) + i - 1
}

// SolveTSPMTZ solves the directed MTZ formulation with HiGHS and rebuilds
// the tour from the assignment matrix via vrp.ExtractTour. A fragmented
// assignment degrades into the repaired diagnostic tour; callers must
// still run vrp.CheckTour before treating the result as feasible.
func SolveTSPMTZ(d [][]int, par Params) (*Result, error) {
	n := len(d)
	numCols := n*(n-1) + (n - 1)

	lp := new(highs.Model)
	lp.VarTypes = make([]highs.VariableType, numCols)
	lp.ColCosts = make([]float64, numCols)
	lp.ColLower = make([]float64, numCols)
	lp.ColUpper = make([]float64, numCols)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			col := xIndex(i, j, n)
			lp.VarTypes[col] = highs.IntegerType
			lp.ColCosts[col] = float64(d[i][j])
			lp.ColUpper[col] = 1
		}
	}
	/* u_i in [1, n-1], continuous (the VarTypes zero value) */
	for i := 1; i < n; i++ {
		col := uIndex(i, n)
		lp.ColLower[col] = 1
		lp.ColUpper[col] = float64(n - 1)
	}

	row := 0

	/* Each node is left exactly once */
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			lp.ConstMatrix = append(lp.ConstMatrix, highs.Nonzero{Row: row, Col: xIndex(i, j, n), Val: 1})
		}
		lp.RowLower = append(lp.RowLower, 1)
		lp.RowUpper = append(lp.RowUpper, 1)
		row++
	}

	/* Each node is entered exactly once */
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			lp.ConstMatrix = append(lp.ConstMatrix, highs.Nonzero{Row: row, Col: xIndex(i, j, n), Val: 1})
		}
		lp.RowLower = append(lp.RowLower, 1)
		lp.RowUpper = append(lp.RowUpper, 1)
		row++
	}

	/* MTZ: u_i - u_j + n*x_ij <= n-1 for i,j in 1..n-1, i != j */
	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			if i == j {
				continue
			}
			lp.ConstMatrix = append(lp.ConstMatrix,
				highs.Nonzero{Row: row, Col: uIndex(i, n), Val: 1},
				highs.Nonzero{Row: row, Col: uIndex(j, n), Val: -1},
				highs.Nonzero{Row: row, Col: xIndex(i, j, n), Val: float64(n)},
			)
			lp.RowLower = append(lp.RowLower, math.Inf(-1))
			lp.RowUpper = append(lp.RowUpper, float64(n-1))
			row++
		}
	}

	startTime := time.Now()
	solution, err := lp.Solve()
	elapsed := time.Since(startTime)
	if err != nil {
		log.Printf("HiGHS solve failed: %s\n", err.Error())
		return noSolution(elapsed), nil
	}
	if solution.Status != highs.Optimal {
		log.Printf("HiGHS finished without an optimal solution: %s\n", solution.Status.String())
		return noSolution(elapsed), nil
	}

	assign := make([][]int, n)
	for i := 0; i < n; i++ {
		assign[i] = make([]int, n)
		for j := 0; j < n; j++ {
			if i != j && solution.ColumnPrimal[xIndex(i, j, n)] > 0.5 {
				assign[i][j] = 1
			}
		}
	}

	tour, diag := vrp.ExtractTour(assign)
	res := &Result{
		Tour:      tour,
		Length:    int(solution.Objective + 0.5),
		Status:    Optimal,
		Diag:      diag,
		SolveTime: elapsed,
	}
	if tour == nil {
		res.Length = -1
		res.Status = NoSolution
	}
	return res, nil
}
