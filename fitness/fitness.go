// Package fitness scores knapsack genomes against a fixed cost table.
package fitness

import (
	"fmt"

	"github.com/pthm-cable/knapsack/genome"
)

// DefaultWeightCap is the knapsack capacity used when none is configured.
const DefaultWeightCap = 15.0

// Item is the value and weight contributed by one genome bit.
type Item struct {
	Value  int     `yaml:"value" json:"value"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// CostTable maps each genome bit position to an Item.
// It is immutable once constructed and safe to share between evaluators.
type CostTable struct {
	items [genome.Bits]Item
}

// NewCostTable builds a cost table from exactly genome.Bits items, where
// items[i] belongs to bit i.
func NewCostTable(items []Item) (CostTable, error) {
	var t CostTable
	if len(items) != genome.Bits {
		return t, fmt.Errorf("cost table needs %d items, got %d", genome.Bits, len(items))
	}
	for i, it := range items {
		if it.Weight < 0 {
			return t, fmt.Errorf("item %d: negative weight %v", i, it.Weight)
		}
		t.items[i] = it
	}
	return t, nil
}

// DefaultItems returns the stock ten-item table.
func DefaultItems() []Item {
	return []Item{
		{Value: 375, Weight: 3.5},
		{Value: 300, Weight: 2.5},
		{Value: 100, Weight: 2.0},
		{Value: 225, Weight: 3.0},
		{Value: 50, Weight: 1.0},
		{Value: 125, Weight: 1.75},
		{Value: 75, Weight: 0.75},
		{Value: 275, Weight: 3.0},
		{Value: 150, Weight: 2.5},
		{Value: 50, Weight: 2.25},
	}
}

// Item returns the entry for bit pos.
func (t CostTable) Item(pos int) Item {
	return t.items[pos]
}

// Items returns a copy of all entries in bit order.
func (t CostTable) Items() []Item {
	out := make([]Item, genome.Bits)
	copy(out, t.items[:])
	return out
}

// Evaluator computes genome fitness for one cost table and weight cap.
type Evaluator struct {
	table     CostTable
	weightCap float64
}

// NewEvaluator returns an evaluator for the given table. Genomes whose
// packed weight strictly exceeds weightCap score zero.
func NewEvaluator(table CostTable, weightCap float64) *Evaluator {
	return &Evaluator{table: table, weightCap: weightCap}
}

// WeightCap returns the capacity limit.
func (e *Evaluator) WeightCap() float64 {
	return e.weightCap
}

// totals accumulates the value and weight of every packed item.
func (e *Evaluator) totals(g genome.Genome) (value int, weight float64) {
	for i := 0; i < genome.Bits; i++ {
		if g.Has(i) {
			it := e.table.items[i]
			value += it.Value
			weight += it.Weight
		}
	}
	return value, weight
}

// Evaluate returns the total value of the packed items, or 0 if their
// total weight exceeds the cap. An overweight genome is worth nothing
// regardless of how valuable its items are.
func (e *Evaluator) Evaluate(g genome.Genome) int {
	value, weight := e.totals(g)
	if weight > e.weightCap {
		return 0
	}
	return value
}

// Weight returns the total weight of the packed items.
func (e *Evaluator) Weight(g genome.Genome) float64 {
	_, weight := e.totals(g)
	return weight
}

// Value returns the total value of the packed items, ignoring the cap.
func (e *Evaluator) Value(g genome.Genome) int {
	value, _ := e.totals(g)
	return value
}

// Feasible reports whether g fits within the weight cap.
func (e *Evaluator) Feasible(g genome.Genome) bool {
	return e.Weight(g) <= e.weightCap
}

// Optimum enumerates every genome and returns the best one with its fitness.
// Ties keep the lowest genome value.
func Optimum(e *Evaluator) (genome.Genome, int) {
	var best genome.Genome
	bestFitness := e.Evaluate(0)
	for v := 1; v <= genome.Max; v++ {
		g := genome.New(v)
		if f := e.Evaluate(g); f > bestFitness {
			best, bestFitness = g, f
		}
	}
	return best, bestFitness
}
