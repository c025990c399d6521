package cmd

import (
	"fmt"
	"io"

	"github.com/MeKo-Tech/hexnoise/internal/analysis"
	"github.com/MeKo-Tech/hexnoise/pkg/qrnoise"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// maxRadius bounds the region to a few million samples.
const maxRadius = 1024

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report distribution statistics over a hexagonal region",
	Long: `Sample the noise once per cell of a hexagon of the given radius centred on
(q, r) and report summary statistics, a uniformity chi-square test and the
avalanche quality of the coordinate hash across the region.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Int32P("q", "q", 0, "Q (column) coordinate of the centre")
	statsCmd.Flags().Int32P("r", "r", 0, "R (row) coordinate of the centre")
	statsCmd.Flags().Int("radius", 32, "Hexagon radius in cells")
	statsCmd.Flags().IntP("freq", "f", 16, "Lattice spacing in grid units")
	statsCmd.Flags().IntP("oct", "o", 4, "Octave count (fbm mode)")
	statsCmd.Flags().StringP("mode", "m", modeFBM, "Sampling mode: rand, vnoise or fbm")
	statsCmd.Flags().Int("bins", 16, "Histogram bins for the uniformity test")

	bindFlags(statsCmd, map[string]string{
		"stats.q":      "q",
		"stats.r":      "r",
		"stats.radius": "radius",
		"stats.freq":   "freq",
		"stats.oct":    "oct",
		"stats.mode":   "mode",
		"stats.bins":   "bins",
	})
}

func runStats(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	seed := viper.GetInt32("seed")
	cq := viper.GetInt32("stats.q")
	cr := viper.GetInt32("stats.r")
	radius := viper.GetInt("stats.radius")
	freq := viper.GetInt("stats.freq")
	oct := viper.GetInt("stats.oct")
	mode := viper.GetString("stats.mode")
	bins := viper.GetInt("stats.bins")

	if err := checkRadius(radius); err != nil {
		return err
	}

	sample, err := newSampler(mode, seed, freq, oct)
	if err != nil {
		return err
	}

	logger.Info("Sampling region", "mode", mode, "seed", seed, "q", cq, "r", cr, "radius", radius, "cells", hexCount(radius))

	values, pairs := collect(sample, seed, cq, cr, radius)
	return writeStats(cmd.OutOrStdout(), values, pairs, bins)
}

func checkRadius(radius int) error {
	if radius < 0 || radius > maxRadius {
		return fmt.Errorf("radius must be between 0 and %d, got %d", maxRadius, radius)
	}
	return nil
}

// hexCount is the number of cells within radius of a centre cell.
func hexCount(radius int) int {
	return 3*radius*(radius+1) + 1
}

// collect walks every cell of the hexagon around (cq, cr), evaluating the
// sampler once per cell. It also pairs each cell's coordinate hash with that
// of its +q neighbour for the avalanche test.
func collect(sample sampler, seed, cq, cr int32, radius int) ([]int, [][2]uint32) {
	gen := qrnoise.NewGenerator()
	values := make([]int, 0, hexCount(radius))
	pairs := make([][2]uint32, 0, hexCount(radius))

	for dq := -radius; dq <= radius; dq++ {
		lo := max(-radius, -dq-radius)
		hi := min(radius, -dq+radius)
		for dr := lo; dr <= hi; dr++ {
			q := cq + int32(dq)
			r := cr + int32(dr)
			values = append(values, sample(gen, q, r))
			pairs = append(pairs, [2]uint32{qrnoise.Mix(seed, q, r), qrnoise.Mix(seed, q+1, r)})
		}
	}
	return values, pairs
}

func writeStats(w io.Writer, values []int, pairs [][2]uint32, bins int) error {
	summary, err := analysis.Summarize(analysis.Ints(values))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "cells:   %d\n", summary.Count)
	fmt.Fprintf(w, "mean:    %.2f\n", summary.Mean)
	fmt.Fprintf(w, "stddev:  %.2f\n", summary.StdDev)
	fmt.Fprintf(w, "min:     %.0f\n", summary.Min)
	fmt.Fprintf(w, "p25:     %.2f\n", summary.P25)
	fmt.Fprintf(w, "median:  %.2f\n", summary.Median)
	fmt.Fprintf(w, "p75:     %.2f\n", summary.P75)
	fmt.Fprintf(w, "max:     %.0f\n", summary.Max)

	if u, err := analysis.Uniformity(values, 0, qrnoise.RandMax, bins); err != nil {
		log().Warn("Skipping uniformity test", "error", err)
	} else {
		fmt.Fprintf(w, "uniform: %s\n", u)
	}

	if a, err := analysis.Avalanche(pairs); err != nil {
		log().Warn("Skipping avalanche test", "error", err)
	} else {
		fmt.Fprintf(w, "hash:    %s mean-flips=%.2f\n", a, analysis.MeanFlips(pairs))
	}

	return nil
}
