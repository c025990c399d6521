package analysis

import "fmt"

// Uniformity tests whether values are uniformly spread over [lo, hi] using
// a histogram of the given number of equal-width bins.
func Uniformity(values []int, lo, hi, bins int) (ChiSquare, error) {
	if bins < 2 {
		return ChiSquare{}, fmt.Errorf("need at least 2 bins, got %d", bins)
	}
	if hi <= lo {
		return ChiSquare{}, fmt.Errorf("invalid range [%d,%d]", lo, hi)
	}

	span := int64(hi-lo) + 1
	observed := make([]int, bins)
	for _, v := range values {
		if v < lo || v > hi {
			return ChiSquare{}, fmt.Errorf("value %d outside [%d,%d]", v, lo, hi)
		}
		observed[int64(v-lo)*int64(bins)/span]++
	}

	expected := make([]float64, bins)
	per := float64(len(values)) / float64(bins)
	for i := range expected {
		expected[i] = per
	}

	return goodnessOfFit(observed, expected)
}
