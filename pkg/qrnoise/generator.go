package qrnoise

const (
	// DefaultSeed is the register value of a freshly created Generator.
	DefaultSeed int32 = 303

	// RandMax is the largest value returned by Rand.
	RandMax = 0x7FFF
)

// Generator is a linear congruential generator with a single 32-bit seed
// register. It is not safe for concurrent use; give each goroutine its own.
//
// The zero Generator starts with register 0, not DefaultSeed, so its draws
// differ from those of NewGenerator until Seed or SeedQR is called.
type Generator struct {
	seed uint32
}

// NewGenerator returns a generator seeded with DefaultSeed.
func NewGenerator() *Generator {
	return &Generator{seed: uint32(DefaultSeed)}
}

// Rand advances the register and returns a value in [0, RandMax].
func (g *Generator) Rand() int {
	g.seed = (g.seed*1103515245 + 12345) & 0x7FFFFFFF
	return int((g.seed >> 16) & RandMax)
}

// Seed overwrites the register.
func (g *Generator) Seed(seed int32) {
	g.seed = uint32(seed)
}

// SeedQR seeds the register with the hashed mix of seed, q and r.
// Nearby coordinates must not yield correlated registers, otherwise the
// field shows grid-aligned patterns for small q and r.
func (g *Generator) SeedQR(seed, q, r int32) {
	g.seed = Mix(seed, q, r)
}

// State returns the current register value.
func (g *Generator) State() int32 {
	return int32(g.seed)
}

// Mix applies the final mixing round of Bob Jenkins' lookup3 to (q, r, seed)
// and returns the resulting c word. The operand order is part of the field
// definition: changing it changes every noise value.
func Mix(seed, q, r int32) uint32 {
	a, b, c := uint32(q), uint32(r), uint32(seed)

	c ^= b
	c -= rotl(b, 14)
	a ^= c
	a -= rotl(c, 11)
	b ^= a
	b -= rotl(a, 25)
	c ^= b
	c -= rotl(b, 16)
	a ^= c
	a -= rotl(c, 4)
	b ^= a
	b -= rotl(a, 14)
	c ^= b
	c -= rotl(b, 24)

	return c
}
