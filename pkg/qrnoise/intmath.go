package qrnoise

import "math/bits"

func rotl(x uint32, k int) uint32 {
	return bits.RotateLeft32(x, k)
}

func sqr(a int64) int64 { return a * a }

// floorDiv returns a/b rounded toward negative infinity. b must be positive.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// floorMod returns a - b*floorDiv(a, b), always in [0, b). b must be positive.
func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
