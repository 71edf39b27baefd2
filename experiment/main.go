package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"git.solver4all.com/azaryc2s/vrp"
	"git.solver4all.com/azaryc2s/vrp/tsp"
	"github.com/google/uuid"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Config describes one sweep: which instance, which sub-instance sizes and
// which backends to run. Loaded from YAML so a sweep is reproducible from
// the config file alone.
type Config struct {
	Instance     string   `yaml:"instance"`
	Sizes        []int    `yaml:"sizes"`
	Backends     []string `yaml:"backends"`
	TimeLimit    float64  `yaml:"time_limit"`
	Gap          float64  `yaml:"gap"`
	IncludeDepot bool     `yaml:"include_depot"`
	Output       string   `yaml:"output"`
}

type RunRecord struct {
	RunID         string  `json:"run_id"`
	Instance      string  `json:"instance"`
	Size          int     `json:"size"`
	Backend       string  `json:"backend"`
	Cost          int     `json:"cost"`
	Optimal       bool    `json:"optimal"`
	Valid         bool    `json:"valid"`
	Edges         int     `json:"edges"`
	Subtours      int     `json:"subtours"`
	Repaired      bool    `json:"repaired"`
	SolveSeconds  float64 `json:"solve_seconds"`
	Tour          []int   `json:"tour"`
	OriginalTour  []int   `json:"original_tour"`
	SubtourCuts   int     `json:"subtour_cuts"`
	FailureReason string  `json:"failure_reason,omitempty"`
}

type BackendSummary struct {
	Runs          int     `json:"runs"`
	Solved        int     `json:"solved"`
	MeanCost      float64 `json:"mean_cost"`
	MeanSeconds   float64 `json:"mean_seconds"`
	StddevSeconds float64 `json:"stddev_seconds"`
}

type SweepResult struct {
	SweepID  string                    `json:"sweep_id"`
	Instance string                    `json:"instance"`
	Started  string                    `json:"started"`
	Time     string                    `json:"time"`
	System   vrp.SysInfo               `json:"system"`
	Runs     []RunRecord               `json:"runs"`
	Summary  map[string]BackendSummary `json:"summary"`
}

func main() {
	app := cli.NewApp()
	app.Name = "experiment"
	app.Usage = "run a TSP sub-instance sweep over one or more MIP backends"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Value: "experiment.yaml", Usage: "path to the sweep config"},
		cli.IntFlag{Name: "v", Value: 2, Usage: "log level (1=error .. 4=spam)"},
	}
	app.Action = runSweep
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Sizes:        []int{10, 15, 20},
		Backends:     []string{"GUROBI", "HIGHS"},
		TimeLimit:    60,
		Gap:          0.01,
		IncludeDepot: true,
		Output:       "experiment_results.json",
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSweep(c *cli.Context) error {
	vrp.InitLoggers(c.Int("v"))
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}

	inst, err := vrp.ReadInstance(cfg.Instance)
	if err != nil {
		return err
	}

	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()

	result := SweepResult{
		SweepID:  uuid.NewString(),
		Instance: inst.Name,
		Started:  time.Now().Format(time.RFC3339),
		System:   vrp.SysInfo{hostStat.Platform, cpuStat[0].ModelName, fmt.Sprintf("%d GB", (vmStat.Total / 1024 / 1024 / 1024))},
		Summary:  make(map[string]BackendSummary),
	}
	sweepStart := time.Now()

	par := tsp.Params{TimeLimit: cfg.TimeLimit, GapRel: cfg.Gap}
	for _, size := range cfg.Sizes {
		sub := vrp.ExtractSubInstance(inst, size, cfg.IncludeDepot)
		vrp.Log(2, "Solving %s (%d nodes)\n", sub.Name, sub.Dimension)
		for _, backend := range cfg.Backends {
			record := solveOne(sub, strings.ToUpper(backend), par)
			record.RunID = uuid.NewString()
			record.Instance = sub.Name
			record.Size = sub.Dimension
			result.Runs = append(result.Runs, record)
		}
	}

	for _, backend := range cfg.Backends {
		result.Summary[strings.ToUpper(backend)] = summarize(result.Runs, strings.ToUpper(backend))
	}
	result.Time = time.Since(sweepStart).String()

	raw, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return err
	}
	raw = []byte(vrp.SanitizeJsonArrayLineBreaks(string(raw)))
	if err := os.WriteFile(cfg.Output, raw, 0644); err != nil {
		return err
	}
	fmt.Printf("Sweep %s finished: %d runs written to %s\n", result.SweepID, len(result.Runs), cfg.Output)
	return nil
}

// solveOne runs a single backend on a single sub-instance. Solver failure
// is recorded, never propagated: the rest of the sweep still runs.
func solveOne(sub *vrp.Instance, backend string, par tsp.Params) RunRecord {
	record := RunRecord{Backend: backend, Cost: -1}

	var (
		res *tsp.Result
		err error
	)
	switch backend {
	case "GUROBI":
		res, err = tsp.SolveTSP(sub.EdgeWeights, par)
	case "HIGHS":
		res, err = tsp.SolveTSPMTZ(sub.EdgeWeights, par)
	default:
		record.FailureReason = fmt.Sprintf("unsupported backend %s", backend)
		return record
	}
	if err != nil {
		record.FailureReason = err.Error()
		return record
	}

	record.Cost = res.Length
	record.Optimal = res.Status == tsp.Optimal
	record.Edges = res.Diag.Edges
	record.Subtours = res.Diag.Subtours
	record.Repaired = res.Diag.Repaired
	record.SubtourCuts = res.SubtourCuts
	record.SolveSeconds = res.SolveTime.Seconds()
	record.Tour = res.Tour
	record.OriginalTour = sub.MapToOriginal(res.Tour)
	record.Valid = vrp.CheckTour(res.Tour, sub.Dimension, sub.EdgeWeights, res.Length)
	if res.Status == tsp.NoSolution {
		record.FailureReason = "no solution"
	} else if !record.Valid {
		record.FailureReason = "tour failed validation"
	}
	return record
}

func summarize(runs []RunRecord, backend string) BackendSummary {
	var costs, secs []float64
	summary := BackendSummary{}
	for _, r := range runs {
		if r.Backend != backend {
			continue
		}
		summary.Runs++
		if r.Cost >= 0 {
			summary.Solved++
			costs = append(costs, float64(r.Cost))
			secs = append(secs, r.SolveSeconds)
		}
	}
	if len(costs) > 0 {
		summary.MeanCost = stat.Mean(costs, nil)
		summary.MeanSeconds = stat.Mean(secs, nil)
		summary.StddevSeconds = stat.StdDev(secs, nil)
	}
	return summary
}
