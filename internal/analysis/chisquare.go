package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// minExpected is the smallest expected count a chi-square bin may have.
// Adjacent bins are pooled until they reach it.
const minExpected = 5.0

// ChiSquare is the result of a goodness-of-fit test.
type ChiSquare struct {
	Statistic float64
	DF        int
	PValue    float64
}

// Passes reports whether the test fails to reject the null hypothesis at
// significance level alpha.
func (c ChiSquare) Passes(alpha float64) bool {
	return c.PValue > alpha
}

func (c ChiSquare) String() string {
	return fmt.Sprintf("chi2=%.3f df=%d p=%.4f", c.Statistic, c.DF, c.PValue)
}

// goodnessOfFit pools sparse bins left to right, then evaluates the
// statistic against a chi-squared distribution with bins-1 degrees of freedom.
func goodnessOfFit(observed []int, expected []float64) (ChiSquare, error) {
	if len(observed) != len(expected) {
		return ChiSquare{}, fmt.Errorf("observed has %d bins, expected has %d", len(observed), len(expected))
	}

	type bin struct{ obs, exp float64 }
	var (
		bins []bin
		accO float64
		accE float64
	)
	for i := range observed {
		accO += float64(observed[i])
		accE += expected[i]
		if accE >= minExpected {
			bins = append(bins, bin{accO, accE})
			accO, accE = 0, 0
		}
	}
	if accE > 0 || accO > 0 {
		if len(bins) == 0 {
			return ChiSquare{}, fmt.Errorf("too few samples for a chi-square test")
		}
		bins[len(bins)-1].obs += accO
		bins[len(bins)-1].exp += accE
	}
	if len(bins) < 2 {
		return ChiSquare{}, fmt.Errorf("too few samples for a chi-square test")
	}

	var stat float64
	for _, b := range bins {
		d := b.obs - b.exp
		stat += d * d / b.exp
	}

	df := len(bins) - 1
	dist := distuv.ChiSquared{K: float64(df)}
	return ChiSquare{
		Statistic: stat,
		DF:        df,
		PValue:    dist.Survival(stat),
	}, nil
}
