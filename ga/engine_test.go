package ga

import (
	"errors"
	"testing"

	"github.com/pthm-cable/knapsack/fitness"
	"github.com/pthm-cable/knapsack/genome"
	"github.com/pthm-cable/knapsack/rng"
)

// regressionSequence drives the deterministic end-to-end scenarios. Values
// that are multiples of 1000 trigger mutations.
var regressionSequence = []int{827, 138, 512, 1000, 9, 44, 3000, 371, 600, 91, 2}

func newEvaluator(t *testing.T) *fitness.Evaluator {
	t.Helper()
	table, err := fitness.NewCostTable(fitness.DefaultItems())
	if err != nil {
		t.Fatalf("NewCostTable: %v", err)
	}
	return fitness.NewEvaluator(table, fitness.DefaultWeightCap)
}

func newEngine(t *testing.T, params Params, src rng.Source) *Engine {
	t.Helper()
	e, err := NewEngine(params, newEvaluator(t), src)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func genomes(pop *Population) []string {
	out := make([]string, pop.Size())
	for i, ind := range pop.Individuals() {
		out[i] = ind.String()
	}
	return out
}

func assertPopulation(t *testing.T, pop *Population, want []string) {
	t.Helper()
	got := genomes(pop)
	if len(got) != len(want) {
		t.Fatalf("population = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("population = %v, want %v", got, want)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"defaults", DefaultParams(), false},
		{"zero cycles", Params{Cycles: 0, PopulationSize: 2}, false},
		{"odd population", Params{Cycles: 1, PopulationSize: 5}, true},
		{"empty population", Params{Cycles: 1, PopulationSize: 0}, true},
		{"negative cycles", Params{Cycles: -1, PopulationSize: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := (Params{Cycles: 1, PopulationSize: 3}).Validate(); !errors.Is(err, ErrOddPopulation) {
		t.Errorf("odd population error = %v, want ErrOddPopulation", err)
	}
}

func TestNewEngineRejectsOddPopulation(t *testing.T) {
	_, err := NewEngine(Params{Cycles: 10, PopulationSize: 7}, newEvaluator(t), rng.New(1))
	if !errors.Is(err, ErrOddPopulation) {
		t.Errorf("NewEngine error = %v, want ErrOddPopulation", err)
	}
}

func TestInitialize(t *testing.T) {
	e := newEngine(t, Params{Cycles: 0, PopulationSize: 4}, rng.NewSequence(regressionSequence...))
	e.Initialize()

	assertPopulation(t, e.Population(), []string{
		"1100111011 - 0",
		"0010001010 - 800",
		"1000000000 - 50",
		"1111101000 - 900",
	})
}

func TestRunGenerations(t *testing.T) {
	tests := []struct {
		cycles int
		want   []string
	}{
		{0, []string{"1111101000 - 900", "0010001010 - 800", "1000000000 - 50", "1100111011 - 0"}},
		{1, []string{"1000111011 - 1125", "1111101000 - 900", "0010001000 - 500", "1100000000 - 200"}},
	}

	for _, tt := range tests {
		e := newEngine(t, Params{Cycles: tt.cycles, PopulationSize: 4}, rng.NewSequence(regressionSequence...))
		e.Run()
		assertPopulation(t, e.Population(), tt.want)
	}
}

func TestRunRegression(t *testing.T) {
	e := newEngine(t, Params{Cycles: 500, PopulationSize: 4}, rng.NewSequence(regressionSequence...))
	result := e.Run()

	if got, want := result.String(), "0100001011 - 1050"; got != want {
		t.Errorf("Run() = %q, want %q", got, want)
	}
	assertPopulation(t, e.Population(), []string{
		"0100001011 - 1050",
		"0010001010 - 800",
		"1111100000 - 675",
		"0000111000 - 400",
	})
}

func TestRunObserverCalledPerRank(t *testing.T) {
	const cycles = 25
	e := newEngine(t, Params{Cycles: cycles, PopulationSize: 10}, rng.New(99))

	var gens []int
	e.Observe(func(gen int, pop *Population) {
		gens = append(gens, gen)
		if !pop.Ranked() {
			t.Errorf("generation %d: observer saw an unranked population", gen)
		}
	})
	e.Run()

	if len(gens) != cycles+1 {
		t.Fatalf("observer called %d times, want %d", len(gens), cycles+1)
	}
	for i, g := range gens {
		if g != i {
			t.Fatalf("observer generations = %v", gens)
		}
	}
}

func TestRunInvariants(t *testing.T) {
	e := newEngine(t, Params{Cycles: 200, PopulationSize: 100}, rng.New(2024))
	eval := e.Evaluator()

	e.Observe(func(gen int, pop *Population) {
		if pop.Size() != 100 {
			t.Fatalf("generation %d: population size %d", gen, pop.Size())
		}
		for _, ind := range pop.Individuals() {
			if int(ind.Genome()) > genome.Max {
				t.Fatalf("generation %d: genome %d exceeds 10 bits", gen, ind.Genome())
			}
			if ind.Fitness() != eval.Evaluate(ind.Genome()) {
				t.Fatalf("generation %d: stale fitness for %s", gen, ind.Genome())
			}
		}
	})

	result := e.Run()
	if !e.Population().Ranked() {
		t.Error("final population is not ranked")
	}
	if result.Fitness != e.Population().Best().Fitness() {
		t.Errorf("result fitness %d != best %d", result.Fitness, e.Population().Best().Fitness())
	}
	if result.Weight > eval.WeightCap() && result.Fitness != 0 {
		t.Errorf("result %s is overweight (%v) with non-zero fitness", result, result.Weight)
	}
}

func TestRankIsStable(t *testing.T) {
	eval := newEvaluator(t)
	var inds []Individual
	// Three overweight genomes all score 0 and must keep their order.
	for _, s := range []string{"1111111111", "0000000001", "1111111110", "0000000010", "0111111111"} {
		g, err := genome.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		inds = append(inds, NewIndividual(g, eval))
	}
	pop := NewPopulation(inds...)
	pop.Rank()

	assertPopulation(t, pop, []string{
		"0000000001 - 375",
		"0000000010 - 300",
		"1111111111 - 0",
		"1111111110 - 0",
		"0111111111 - 0",
	})
}

func TestObserverCannotAlterPopulation(t *testing.T) {
	e := newEngine(t, Params{Cycles: 20, PopulationSize: 8}, rng.New(7))
	eval := e.Evaluator()

	e.Observe(func(gen int, pop *Population) {
		inds := pop.Individuals()
		before := pop.At(1)
		inds[1] = NewIndividual(genome.Mask, eval)
		if pop.At(1) != before || pop.Size() != 8 {
			t.Fatalf("generation %d: population changed through Individuals copy", gen)
		}
	})

	result := e.Run()
	if result.Fitness != eval.Evaluate(result.Genome) {
		t.Errorf("reported %s, evaluate = %d", result, eval.Evaluate(result.Genome))
	}
}

func TestNewPopulationCopiesInput(t *testing.T) {
	eval := newEvaluator(t)
	inds := []Individual{NewIndividual(1, eval), NewIndividual(2, eval)}
	pop := NewPopulation(inds...)
	inds[0] = NewIndividual(3, eval)

	if pop.At(0).Genome() != 1 {
		t.Errorf("At(0) = %v, want genome 1", pop.At(0))
	}
}

func TestReport(t *testing.T) {
	eval := newEvaluator(t)
	g, _ := genome.Parse("0011101011")
	pop := NewPopulation(NewIndividual(g, eval), NewIndividual(0, eval))

	r := Report(pop, eval)
	if r.String() != "0011101011 - 1375" {
		t.Errorf("String() = %q", r.String())
	}
	if r.Weight != 14.5 {
		t.Errorf("Weight = %v, want 14.5", r.Weight)
	}
	if len(r.Items) != 6 || r.Items[0] != 0 || r.Items[5] != 7 {
		t.Errorf("Items = %v", r.Items)
	}
}
