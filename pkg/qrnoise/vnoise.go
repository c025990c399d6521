package qrnoise

import "math"

// MaxFrequency is the largest lattice spacing VNoise evaluates exactly.
// Larger frequencies are clamped. At this size the widest intermediate,
// 295 times an edge metric of up to 3*freq², still fits in an int64.
const MaxFrequency = 1 << 26

type vertex struct {
	q, r   int32
	metric int64
}

// VNoise returns value noise at (q, r) on a triangular lattice of side freq,
// in [0, RandMax]. freq <= 0 yields 0 and freq == 1 yields the raw draw of
// the cell itself.
//
// The generator register is clobbered; its prior state does not affect the
// result.
func (g *Generator) VNoise(seed, q, r int32, freq int) int {
	if freq <= 0 {
		return 0
	}
	if freq == 1 {
		g.SeedQR(seed, q, r)
		return g.Rand()
	}

	f := int64(min(freq, MaxFrequency))
	q0, dq0 := cell(q, f)
	r0, dr0 := cell(r, f)

	tri := triangle(q0, r0, dq0, dr0, f)

	var sum, total int64
	for _, v := range tri {
		g.SeedQR(seed, v.q, v.r)
		n := int64(g.Rand())
		w := weight(v.metric, f)
		sum += n * w
		total += w
	}

	// The vertex closest to the query always keeps a positive weight, so
	// this only guards against a changed weight curve.
	if total == 0 {
		return 0
	}
	return int(sum / total)
}

// triangle picks the half of the lattice parallelogram containing the
// offset (dq0, dr0) and returns its vertices with their edge metrics.
func triangle(q0, r0 int32, dq0, dr0, freq int64) [3]vertex {
	if dq0 >= dr0 {
		return upperTriangle(q0, r0, dq0, dr0, freq)
	}
	return lowerTriangle(q0, r0, dq0, dr0, freq)
}

func upperTriangle(q0, r0 int32, dq0, dr0, freq int64) [3]vertex {
	dq1, dr1 := freq-dq0, freq-dr0
	return [3]vertex{
		{q0, r0, sqr(dq0) + sqr(dr0) - dq0*dr0},
		{q0 + 1, r0, sqr(dq1) + sqr(dr0) + dq1*dr0},
		{q0 + 1, r0 + 1, sqr(dq1) + sqr(dr1) - dq1*dr1},
	}
}

func lowerTriangle(q0, r0 int32, dq0, dr0, freq int64) [3]vertex {
	dq1, dr1 := freq-dq0, freq-dr0
	return [3]vertex{
		{q0, r0, sqr(dq0) + sqr(dr0) - dq0*dr0},
		{q0, r0 + 1, sqr(dq0) + sqr(dr1) + dq0*dr1},
		{q0 + 1, r0 + 1, sqr(dq1) + sqr(dr1) - dq1*dr1},
	}
}

// VNoise evaluates value noise on a call-local Generator. It is safe for
// concurrent use.
func VNoise(seed, q, r int32, freq int) int {
	var g Generator
	return g.VNoise(seed, q, r, freq)
}

// cell splits a coordinate into its lattice index and in-cell offset.
// Cells are counted from math.MinInt32 so that the index of every cell is
// non-negative before it is narrowed back to 32 bits.
func cell(v int32, freq int64) (int32, int64) {
	shifted := int64(v) - math.MinInt32
	return int32(floorDiv(shifted, freq)), floorMod(shifted, freq)
}

// weight turns an edge metric into a smoothstep-like falloff in [0, 254].
func weight(metric, freq int64) int64 {
	f2 := sqr(freq)
	w := max(0, 255*f2-295*metric) / f2
	return sqr(w) >> 8
}
