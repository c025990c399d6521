package cmd

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/MeKo-Tech/hexnoise/pkg/qrnoise"
)

func TestHexCount(t *testing.T) {
	for radius, want := range []int{1, 7, 19, 37} {
		if got := hexCount(radius); got != want {
			t.Errorf("hexCount(%d) = %d, want %d", radius, got, want)
		}
	}
}

func TestCheckRadius(t *testing.T) {
	for _, radius := range []int{0, 1, 32, maxRadius} {
		if err := checkRadius(radius); err != nil {
			t.Errorf("checkRadius(%d) error = %v", radius, err)
		}
	}
	for _, radius := range []int{-1, maxRadius + 1, math.MaxInt32, math.MaxInt} {
		if err := checkRadius(radius); err == nil {
			t.Errorf("checkRadius(%d) expected error", radius)
		}
	}

	// The largest accepted region stays well inside int and int32 offsets.
	if got := hexCount(maxRadius); got != 3148801 {
		t.Errorf("hexCount(%d) = %d, want 3148801", maxRadius, got)
	}
}

func TestCollect_VisitsHexagon(t *testing.T) {
	seen := make(map[[2]int32]bool)
	record := func(_ *qrnoise.Generator, q, r int32) int {
		seen[[2]int32{q, r}] = true
		return 0
	}

	const radius = 5
	values, pairs := collect(record, 303, 10, -20, radius)

	if len(values) != hexCount(radius) || len(pairs) != hexCount(radius) {
		t.Fatalf("Expected %d samples, got %d values and %d pairs", hexCount(radius), len(values), len(pairs))
	}
	if len(seen) != hexCount(radius) {
		t.Fatalf("Expected %d distinct cells, got %d", hexCount(radius), len(seen))
	}

	for c := range seen {
		dq, dr := int(c[0]-10), int(c[1]+20)
		ds := -dq - dr
		if abs(dq) > radius || abs(dr) > radius || abs(ds) > radius {
			t.Errorf("Cell %v lies outside the hexagon", c)
		}
	}
}

func TestCollect_PairsAreNeighbourHashes(t *testing.T) {
	s, err := newSampler(modeRand, 303, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	_, pairs := collect(s, 303, 0, 0, 0)
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(pairs))
	}
	want := [2]uint32{qrnoise.Mix(303, 0, 0), qrnoise.Mix(303, 1, 0)}
	if pairs[0] != want {
		t.Errorf("pair = %v, want %v", pairs[0], want)
	}
}

func TestWriteStats(t *testing.T) {
	s, err := newSampler(modeRand, 303, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	values, pairs := collect(s, 303, 0, 0, 40)

	var buf bytes.Buffer
	if err := writeStats(&buf, values, pairs, 16); err != nil {
		t.Fatalf("writeStats() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"cells:   4921", "mean:", "uniform: chi2=", "hash:    chi2=", "mean-flips="} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestWriteStats_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeStats(&buf, nil, nil, 16); err == nil {
		t.Error("Expected error for empty sample")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
