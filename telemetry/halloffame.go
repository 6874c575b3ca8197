package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/pthm-cable/knapsack/ga"
	"github.com/pthm-cable/knapsack/genome"
)

// HallEntry records a distinct genome and when it was first seen.
type HallEntry struct {
	Genome     genome.Genome `json:"genome"`
	Fitness    int           `json:"fitness"`
	Weight     float64       `json:"weight"`
	Generation int           `json:"generation"` // First generation the genome appeared in
}

// HallOfFame keeps the best distinct genomes seen during a run, sorted by
// fitness descending. Entries with equal fitness stay in arrival order.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall of fame with the given capacity.
func NewHallOfFame(maxSize int) *HallOfFame {
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers an entry to the hall. Genomes already present are ignored.
// Returns true if the entry was added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if hof.maxSize <= 0 {
		return false
	}
	for _, e := range hof.entries {
		if e.Genome == entry.Genome {
			return false
		}
	}

	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hof.entries) >= hof.maxSize && idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	// Trim if over capacity
	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// ConsiderPopulation offers the leading individuals of a ranked population.
// It stops at the first individual that can no longer enter a full hall.
func (hof *HallOfFame) ConsiderPopulation(gen int, pop *ga.Population, weight func(genome.Genome) float64) int {
	added := 0
	for i := 0; i < pop.Size(); i++ {
		ind := pop.At(i)
		if len(hof.entries) >= hof.maxSize && ind.Fitness() <= hof.MinFitness() {
			break
		}
		if hof.Consider(HallEntry{
			Genome:     ind.Genome(),
			Fitness:    ind.Fitness(),
			Weight:     weight(ind.Genome()),
			Generation: gen,
		}) {
			added++
		}
	}
	return added
}

// Entries returns a copy of the hall, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	out := make([]HallEntry, len(hof.entries))
	copy(out, hof.entries)
	return out
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopFitness returns the highest fitness in the hall, or 0 if empty.
func (hof *HallOfFame) TopFitness() int {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// MinFitness returns the lowest fitness in the hall, or 0 if empty.
func (hof *HallOfFame) MinFitness() int {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[len(hof.entries)-1].Fitness
}

// MarshalJSON implements json.Marshaler.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}
