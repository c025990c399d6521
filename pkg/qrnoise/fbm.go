package qrnoise

// FBM sums oct octaves of VNoise. Each octave halves the frequency and
// contributes half as much as the previous one. Iteration stops early once
// the frequency reaches zero. The sum is not normalized.
func (g *Generator) FBM(seed, q, r int32, freq, oct int) int {
	n := 0
	for o := 0; o < oct; o++ {
		n += g.VNoise(seed, q, r, freq) >> (o + 1)
		freq >>= 1
		if freq <= 0 {
			break
		}
	}
	return n
}

// FBM evaluates fractal value noise on a call-local Generator.
func FBM(seed, q, r int32, freq, oct int) int {
	var g Generator
	return g.FBM(seed, q, r, freq, oct)
}

// Octaves reports how many octaves contribute to FBM for freq before the
// frequency collapses to zero.
func Octaves(freq int) int {
	n := 0
	for freq > 0 {
		n++
		freq >>= 1
	}
	return n
}
