package analysis

import (
	"fmt"
	"math/bits"

	"gonum.org/v1/gonum/stat/distuv"
)

// Avalanche tests the Hamming distances between the two hashes of each pair
// against Binomial(32, 1/2), the distribution produced by independent
// uniform 32-bit words. Pairs should come from inputs that differ only
// slightly, such as neighbouring coordinates.
func Avalanche(pairs [][2]uint32) (ChiSquare, error) {
	if len(pairs) == 0 {
		return ChiSquare{}, fmt.Errorf("no pairs to test")
	}

	observed := make([]int, 33)
	for _, p := range pairs {
		observed[bits.OnesCount32(p[0]^p[1])]++
	}

	binom := distuv.Binomial{N: 32, P: 0.5}
	expected := make([]float64, 33)
	for k := range expected {
		expected[k] = float64(len(pairs)) * binom.Prob(float64(k))
	}

	return goodnessOfFit(observed, expected)
}

// MeanFlips returns the average number of differing bits per pair.
func MeanFlips(pairs [][2]uint32) float64 {
	if len(pairs) == 0 {
		return 0
	}
	total := 0
	for _, p := range pairs {
		total += bits.OnesCount32(p[0] ^ p[1])
	}
	return float64(total) / float64(len(pairs))
}
