package tsp

import (
	"time"

	"git.solver4all.com/azaryc2s/vrp"
)

// Params are the knobs passed through to the external solver. Zero values
// leave the solver defaults untouched. The time limit is opaque to this
// package: the solver returns on its own after at most that long.
type Params struct {
	TimeLimit float64 // seconds
	GapRel    float64
	LogFile   string
}

type Status int

const (
	NoSolution Status = iota
	Feasible
	Optimal
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	}
	return "NO_SOLUTION"
}

// Result carries the reconstructed tour and everything a sweep needs to
// report on the solve. A NoSolution result has a nil tour and length -1;
// it is an ordinary value, not an error, so batch callers keep going.
type Result struct {
	Tour        []int
	Length      int
	Status      Status
	Diag        vrp.TourDiagnostics
	SubtourCuts int
	SolveTime   time.Duration
}

func noSolution(elapsed time.Duration) *Result {
	return &Result{Tour: nil, Length: -1, Status: NoSolution, SolveTime: elapsed}
}
