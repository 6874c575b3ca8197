package ga

import (
	"fmt"

	"github.com/pthm-cable/knapsack/fitness"
	"github.com/pthm-cable/knapsack/genome"
)

// Result describes the best individual of a finished run.
type Result struct {
	Genome  genome.Genome `json:"genome"`
	Fitness int           `json:"fitness"`
	Weight  float64       `json:"weight"`
	Items   []int         `json:"items"`
}

// Report reads the best individual from a ranked population.
func Report(pop *Population, eval *fitness.Evaluator) Result {
	best := pop.Best()
	return Result{
		Genome:  best.Genome(),
		Fitness: best.Fitness(),
		Weight:  eval.Weight(best.Genome()),
		Items:   best.Genome().Indices(),
	}
}

// String formats the result as "<10-bit binary> - <fitness>".
func (r Result) String() string {
	return fmt.Sprintf("%v - %d", r.Genome, r.Fitness)
}
