// Package genome provides the fixed-width bit-string encoding of a knapsack
// selection. Bit i set means item i is packed.
package genome

import (
	"fmt"
	"math/bits"
)

const (
	// Bits is the genome width.
	Bits = 10
	// Mask keeps only the low Bits bits.
	Mask Genome = 1<<Bits - 1
	// Max is the largest valid genome value.
	Max = int(Mask)
)

// Genome is a 10-bit selection stored in the low bits of a uint16.
// Bits above position 9 are always zero.
type Genome uint16

// New returns the genome for v, discarding bits outside the genome width.
func New(v int) Genome {
	return Genome(v) & Mask
}

// Has tests whether the bit at pos is set.
func (g Genome) Has(pos int) bool {
	return g&(1<<uint(pos)) != 0
}

// Set returns g with the bit at pos set.
func (g Genome) Set(pos int) Genome {
	return (g | 1<<uint(pos)) & Mask
}

// Clear returns g with the bit at pos cleared.
func (g Genome) Clear(pos int) Genome {
	return g &^ (1 << uint(pos)) & Mask
}

// Flip returns g with the bit at pos inverted.
func (g Genome) Flip(pos int) Genome {
	return (g ^ 1<<uint(pos)) & Mask
}

// Count returns the number of set bits.
func (g Genome) Count() int {
	return bits.OnesCount16(uint16(g & Mask))
}

// Indices returns the positions of the set bits in ascending order.
func (g Genome) Indices() []int {
	idx := make([]int, 0, g.Count())
	for i := 0; i < Bits; i++ {
		if g.Has(i) {
			idx = append(idx, i)
		}
	}
	return idx
}

// String returns the genome in big-endian binary notation, always Bits
// characters wide.
func (g Genome) String() string {
	return fmt.Sprintf("%0*b", Bits, uint16(g&Mask))
}

// Parse converts a big-endian binary string of exactly Bits characters.
func Parse(s string) (Genome, error) {
	if len(s) != Bits {
		return 0, fmt.Errorf("genome: expected %d characters, got %d", Bits, len(s))
	}
	var g Genome
	for i, c := range s {
		switch c {
		case '1':
			g = g.Set(Bits - 1 - i)
		case '0':
		default:
			return 0, fmt.Errorf("genome: invalid character %q in string encoding", c)
		}
	}
	return g, nil
}

// MarshalText implements encoding.TextMarshaler so genomes serialize in
// their binary form in JSON and CSV output.
func (g Genome) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Genome) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
