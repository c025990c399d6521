// Package qrnoise provides deterministic integer value noise for hexagonal
// grids addressed by axial coordinates.
//
// Q and R are defined as:
//
//	  o---> Q (column)
//	 /
//	v R (row)
//
// See https://www.redblobgames.com/grids/hexagons/ for the coordinate system.
//
// Every value is derived from a seed and a lattice coordinate through a
// lookup3-style avalanche hash and a small linear congruential generator, so
// the same inputs always produce the same field on every platform.
package qrnoise
