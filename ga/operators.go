package ga

import (
	"fmt"

	"github.com/pthm-cable/knapsack/genome"
	"github.com/pthm-cable/knapsack/rng"
)

// Operator constants
const (
	MutationDrawMax  = 1000 // Mutation draws a value in [1, MutationDrawMax]
	MutationSentinel = 1    // Draw value that triggers a bit flip (1 in 1000)
	MinSplit         = 1    // Smallest crossover split point
	MaxSplit         = genome.Bits - 1
)

// Pair holds the two offspring of a crossover.
type Pair struct {
	A genome.Genome
	B genome.Genome
}

// SplitMask returns the mask covering the r least significant bits.
// Example: r = 4 gives 0000001111.
func SplitMask(r int) genome.Genome {
	return genome.New((1 << (r - 1)) | ((1 << r) - 1))
}

// CrossoverAt recombines a and b at split point r. Child A keeps the high
// bits of a and takes the low r bits of b; child B is the mirror image.
// Panics if r is outside [MinSplit, MaxSplit].
func CrossoverAt(a, b genome.Genome, r int) Pair {
	if r < MinSplit || r > MaxSplit {
		panic(fmt.Sprintf("ga: split point %d outside [%d, %d]", r, MinSplit, MaxSplit))
	}
	mask := SplitMask(r)
	high := ^mask & genome.Mask

	return Pair{
		A: (a & high) | (b & mask),
		B: (b & high) | (a & mask),
	}
}

// Crossover recombines a and b at a uniformly random split point.
func Crossover(a, b genome.Genome, src rng.Source) Pair {
	return CrossoverAt(a, b, src.IntRange(MinSplit, MaxSplit))
}

// Mutate returns g with one random bit flipped, with probability
// 1/MutationDrawMax. Otherwise g is returned unchanged.
func Mutate(g genome.Genome, src rng.Source) genome.Genome {
	if src.IntRange(1, MutationDrawMax) != MutationSentinel {
		return g
	}
	return g.Flip(src.IntRange(0, genome.Bits-1))
}
