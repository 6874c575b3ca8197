// Package ga implements the generational genetic algorithm: genetic operators,
// the population and the loop that evolves it.
package ga

import (
	"fmt"
	"sort"

	"github.com/pthm-cable/knapsack/fitness"
	"github.com/pthm-cable/knapsack/genome"
)

// Individual is a genome together with its fitness. The fitness is always
// the evaluation of the genome; the only way to build a scored individual is
// NewIndividual.
type Individual struct {
	genome  genome.Genome
	fitness int
}

// NewIndividual evaluates g and returns the scored individual.
func NewIndividual(g genome.Genome, eval *fitness.Evaluator) Individual {
	return Individual{genome: g, fitness: eval.Evaluate(g)}
}

// Genome returns the individual's genome.
func (ind Individual) Genome() genome.Genome {
	return ind.genome
}

// Fitness returns the evaluated fitness.
func (ind Individual) Fitness() int {
	return ind.fitness
}

func (ind Individual) String() string {
	return fmt.Sprintf("%v - %d", ind.genome, ind.fitness)
}

// Population is an ordered collection of individuals.
type Population struct {
	individuals []Individual
}

// NewPopulation returns a population holding a copy of inds in order.
func NewPopulation(inds ...Individual) *Population {
	return &Population{individuals: append([]Individual(nil), inds...)}
}

// Size returns the number of individuals.
func (pop *Population) Size() int {
	return len(pop.individuals)
}

// At returns the individual at position i.
func (pop *Population) At(i int) Individual {
	return pop.individuals[i]
}

// Individuals returns a copy of the individuals in population order.
func (pop *Population) Individuals() []Individual {
	return append([]Individual(nil), pop.individuals...)
}

// Rank sorts the population by fitness, best first. Individuals with equal
// fitness keep their relative order.
func (pop *Population) Rank() {
	sort.SliceStable(pop.individuals, func(i, j int) bool {
		return pop.individuals[i].fitness > pop.individuals[j].fitness
	})
}

// Ranked reports whether fitness is non-increasing along the population.
func (pop *Population) Ranked() bool {
	return sort.SliceIsSorted(pop.individuals, func(i, j int) bool {
		return pop.individuals[i].fitness > pop.individuals[j].fitness
	})
}

// Best returns the first individual. Only meaningful after Rank.
func (pop *Population) Best() Individual {
	return pop.individuals[0]
}

// Fitnesses returns the fitness of every individual in population order.
func (pop *Population) Fitnesses() []float64 {
	out := make([]float64, len(pop.individuals))
	for i, ind := range pop.individuals {
		out[i] = float64(ind.fitness)
	}
	return out
}

func (pop *Population) String() string {
	return fmt.Sprintf("%v", pop.individuals)
}
