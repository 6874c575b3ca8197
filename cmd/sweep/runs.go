package main

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/knapsack/fitness"
	"github.com/pthm-cable/knapsack/ga"
	"github.com/pthm-cable/knapsack/genome"
	"github.com/pthm-cable/knapsack/rng"
)

// RunRecord is one row of runs.csv.
type RunRecord struct {
	Run        int           `csv:"run"`
	Seed       int64         `csv:"seed"`
	Genome     genome.Genome `csv:"genome"`
	Fitness    int           `csv:"fitness"`
	Weight     float64       `csv:"weight"`
	Optimal    bool          `csv:"optimal"`
	Gap        int           `csv:"gap"` // Optimum fitness minus run fitness
	DurationMs int64         `csv:"duration_ms"`
}

// Summary aggregates a sweep.
type Summary struct {
	Runs           int     `json:"runs"`
	OptimumGenome  string  `json:"optimum_genome"`
	OptimumFitness int     `json:"optimum_fitness"`
	FitnessMean    float64 `json:"fitness_mean"`
	FitnessStd     float64 `json:"fitness_std"`
	FitnessMin     int     `json:"fitness_min"`
	FitnessMax     int     `json:"fitness_max"`
	HitRate        float64 `json:"hit_rate"` // Fraction of runs that found the optimum
}

// runOnce evolves a fresh population with the given seed.
func runOnce(params ga.Params, eval *fitness.Evaluator, seed int64) (ga.Result, time.Duration, error) {
	start := time.Now()
	engine, err := ga.NewEngine(params, eval, rng.New(seed))
	if err != nil {
		return ga.Result{}, 0, err
	}
	result := engine.Run()
	return result, time.Since(start), nil
}

// newRecord scores a result against the known optimum.
func newRecord(run int, seed int64, result ga.Result, optimum int, elapsed time.Duration) RunRecord {
	return RunRecord{
		Run:        run,
		Seed:       seed,
		Genome:     result.Genome,
		Fitness:    result.Fitness,
		Weight:     result.Weight,
		Optimal:    result.Fitness == optimum,
		Gap:        optimum - result.Fitness,
		DurationMs: elapsed.Milliseconds(),
	}
}

// summarize aggregates run records.
func summarize(records []RunRecord, optimumGenome genome.Genome, optimum int) Summary {
	s := Summary{
		Runs:           len(records),
		OptimumGenome:  optimumGenome.String(),
		OptimumFitness: optimum,
	}
	if len(records) == 0 {
		return s
	}

	values := make([]float64, len(records))
	hits := 0
	s.FitnessMin = records[0].Fitness
	s.FitnessMax = records[0].Fitness
	for i, r := range records {
		values[i] = float64(r.Fitness)
		if r.Optimal {
			hits++
		}
		if r.Fitness < s.FitnessMin {
			s.FitnessMin = r.Fitness
		}
		if r.Fitness > s.FitnessMax {
			s.FitnessMax = r.Fitness
		}
	}

	if len(values) > 1 {
		s.FitnessMean, s.FitnessStd = stat.MeanStdDev(values, nil)
	} else {
		s.FitnessMean = values[0]
	}
	s.HitRate = float64(hits) / float64(len(records))
	return s
}
