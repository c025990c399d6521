package qrnoise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFBM_Golden(t *testing.T) {
	tests := []struct {
		name      string
		seed      int32
		q, r      int32
		freq, oct int
		want      int
	}{
		{"regression", 303, 0, 0, 4, 1, 2964},
		{"four octaves", 303, 0, 0, 16, 4, 10418},
		{"six octaves", 303, 10, -20, 32, 6, 16226},
		{"truncated", 1337, -3, 5, 8, 10, 13492},
		{"unit frequency", 303, 5, 5, 1, 3, 3155},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FBM(tt.seed, tt.q, tt.r, tt.freq, tt.oct))
		})
	}
}

func TestFBM_ZeroOctaves(t *testing.T) {
	for _, freq := range []int{0, 1, 4, 1024} {
		assert.Zero(t, FBM(303, 7, -7, freq, 0))
		assert.Zero(t, FBM(303, 7, -7, freq, -3))
	}
}

func TestFBM_SingleOctaveIsHalfVNoise(t *testing.T) {
	for q := int32(-6); q < 6; q++ {
		assert.Equal(t, VNoise(99, q, 2*q, 12)>>1, FBM(99, q, 2*q, 12, 1))
	}
}

func TestFBM_StopsWhenFrequencyCollapses(t *testing.T) {
	const freq = 8

	manual := 0
	f := freq
	for o := 0; o < Octaves(freq); o++ {
		manual += VNoise(1337, -3, 5, f) >> (o + 1)
		f >>= 1
	}

	assert.Equal(t, manual, FBM(1337, -3, 5, freq, Octaves(freq)))
	assert.Equal(t, manual, FBM(1337, -3, 5, freq, 10))
	assert.Equal(t, manual, FBM(1337, -3, 5, freq, 1000))
}

func TestFBM_GeneratorMatchesPackageLevel(t *testing.T) {
	g := NewGenerator()
	for q := int32(-4); q <= 4; q++ {
		assert.Equal(t, FBM(5, q, -q, 64, 5), g.FBM(5, q, -q, 64, 5))
	}
}

func TestOctaves(t *testing.T) {
	tests := []struct {
		freq int
		want int
	}{
		{-4, 0},
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{8, 4},
		{1 << 20, 21},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Octaves(tt.freq), "Octaves(%d)", tt.freq)
	}
}
