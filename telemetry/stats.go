// Package telemetry collects per-generation statistics, tracks the best
// genomes seen and writes run artifacts.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/knapsack/fitness"
	"github.com/pthm-cable/knapsack/ga"
	"github.com/pthm-cable/knapsack/genome"
)

// GenerationStats holds aggregated statistics for one ranked generation.
type GenerationStats struct {
	Generation int `csv:"generation"`

	// Best individual
	BestGenome  genome.Genome `csv:"best_genome"`
	BestFitness int           `csv:"best_fitness"`
	BestWeight  float64       `csv:"best_weight"`

	// Fitness distribution
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	// Diversity
	Feasible        int `csv:"feasible"`         // Individuals within the weight cap
	DistinctGenomes int `csv:"distinct_genomes"` // Unique genome values
}

// Percentile returns the empirical p-quantile of sorted values.
// p should be in [0, 1]. Returns 0 if sorted is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeFitnessStats calculates mean, standard deviation and percentiles.
// The standard deviation is the sample estimate and is 0 for fewer than two
// values.
func ComputeFitnessStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// Compute builds the stats for a ranked population.
func Compute(gen int, pop *ga.Population, eval *fitness.Evaluator) GenerationStats {
	s := GenerationStats{Generation: gen}
	if pop.Size() == 0 {
		return s
	}

	best := pop.Best()
	s.BestGenome = best.Genome()
	s.BestFitness = best.Fitness()
	s.BestWeight = eval.Weight(best.Genome())

	s.FitnessMean, s.FitnessStd, s.FitnessP10, s.FitnessP50, s.FitnessP90 = ComputeFitnessStats(pop.Fitnesses())

	seen := make(map[genome.Genome]struct{}, pop.Size())
	for i := 0; i < pop.Size(); i++ {
		ind := pop.At(i)
		if eval.Feasible(ind.Genome()) {
			s.Feasible++
		}
		seen[ind.Genome()] = struct{}{}
	}
	s.DistinctGenomes = len(seen)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.String("best_genome", s.BestGenome.String()),
		slog.Int("best_fitness", s.BestFitness),
		slog.Float64("best_weight", s.BestWeight),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p10", s.FitnessP10),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_p90", s.FitnessP90),
		slog.Int("feasible", s.Feasible),
		slog.Int("distinct_genomes", s.DistinctGenomes),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("generation", "stats", s)
}
