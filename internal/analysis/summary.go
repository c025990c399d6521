// Package analysis computes distribution statistics over sampled noise fields.
package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary holds descriptive statistics for a set of samples.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
	P25    float64
	P75    float64
}

// Summarize computes descriptive statistics for values.
func Summarize(values []float64) (Summary, error) {
	s := Summary{Count: len(values)}
	if len(values) == 0 {
		return s, fmt.Errorf("no samples to summarize")
	}

	data := stats.Float64Data(values)

	var err error
	if s.Mean, err = data.Mean(); err != nil {
		return s, fmt.Errorf("mean: %w", err)
	}
	if s.StdDev, err = data.StandardDeviation(); err != nil {
		return s, fmt.Errorf("stddev: %w", err)
	}
	if s.Min, err = data.Min(); err != nil {
		return s, fmt.Errorf("min: %w", err)
	}
	if s.Max, err = data.Max(); err != nil {
		return s, fmt.Errorf("max: %w", err)
	}
	if s.Median, err = data.Median(); err != nil {
		return s, fmt.Errorf("median: %w", err)
	}
	if s.P25, err = data.Percentile(25); err != nil {
		return s, fmt.Errorf("p25: %w", err)
	}
	if s.P75, err = data.Percentile(75); err != nil {
		return s, fmt.Errorf("p75: %w", err)
	}

	return s, nil
}

// Ints converts integer samples for use with Summarize.
func Ints(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
