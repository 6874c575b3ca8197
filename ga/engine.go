package ga

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/knapsack/fitness"
	"github.com/pthm-cable/knapsack/genome"
	"github.com/pthm-cable/knapsack/rng"
)

// ErrOddPopulation is returned for population sizes that cannot be paired.
var ErrOddPopulation = errors.New("population size must be even")

// Params holds the loop parameters.
type Params struct {
	Cycles         int `json:"cycles"`          // Number of reproduction phases
	PopulationSize int `json:"population_size"` // Number of individuals, must be even and positive
}

// DefaultParams returns the stock loop parameters.
func DefaultParams() Params {
	return Params{Cycles: 500, PopulationSize: 1000}
}

// Validate checks that the parameters describe a runnable loop.
func (p Params) Validate() error {
	if p.PopulationSize <= 0 {
		return fmt.Errorf("population size %d: must be positive", p.PopulationSize)
	}
	if p.PopulationSize%2 != 0 {
		return fmt.Errorf("population size %d: %w", p.PopulationSize, ErrOddPopulation)
	}
	if p.Cycles < 0 {
		return fmt.Errorf("cycles %d: must not be negative", p.Cycles)
	}
	return nil
}

// Observer is called after every ranking pass with the generation index
// (0..Cycles) and the freshly ranked population. The population exposes
// read-only accessors only.
type Observer func(gen int, pop *Population)

// Engine owns a population and evolves it for a fixed number of generations.
// Not safe for concurrent use.
type Engine struct {
	params    Params
	eval      *fitness.Evaluator
	src       rng.Source
	pop       *Population
	observers []Observer
}

// NewEngine creates an engine. The population is not created until
// Initialize or Run is called.
func NewEngine(params Params, eval *fitness.Evaluator, src rng.Source) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, errors.New("nil evaluator")
	}
	if src == nil {
		return nil, errors.New("nil random source")
	}
	return &Engine{
		params: params,
		eval:   eval,
		src:    src,
	}, nil
}

// Observe registers an observer for every ranked generation.
func (e *Engine) Observe(obs Observer) {
	e.observers = append(e.observers, obs)
}

// Params returns the engine parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Evaluator returns the evaluator used to score genomes.
func (e *Engine) Evaluator() *fitness.Evaluator {
	return e.eval
}

// Population returns the current population (nil before Initialize).
func (e *Engine) Population() *Population {
	return e.pop
}

// Initialize fills the population with uniformly random genomes.
func (e *Engine) Initialize() {
	pop := &Population{individuals: make([]Individual, e.params.PopulationSize)}
	for i := range pop.individuals {
		g := genome.New(e.src.IntRange(0, genome.Max))
		pop.individuals[i] = NewIndividual(g, e.eval)
	}
	e.pop = pop
}

// Reproduce replaces every consecutive pair (0,1), (2,3), ... with its two
// offspring. Each child is crossed over, mutated and re-evaluated.
func (e *Engine) Reproduce() {
	inds := e.pop.individuals
	for i := 0; i+1 < len(inds); i += 2 {
		children := Crossover(inds[i].genome, inds[i+1].genome, e.src)
		a := Mutate(children.A, e.src)
		b := Mutate(children.B, e.src)

		inds[i] = NewIndividual(a, e.eval)
		inds[i+1] = NewIndividual(b, e.eval)
	}
}

// Run evolves the population for Cycles generations and returns the best
// individual after the final ranking. The population is initialized first
// if needed. Ranking happens Cycles+1 times and reproduction Cycles times.
func (e *Engine) Run() Result {
	if e.pop == nil {
		e.Initialize()
	}

	for gen := 0; ; gen++ {
		e.pop.Rank()
		for _, obs := range e.observers {
			obs(gen, e.pop)
		}

		if gen == e.params.Cycles {
			break
		}

		e.Reproduce()
	}

	return Report(e.pop, e.eval)
}
