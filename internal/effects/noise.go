// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/noise.go
// Summary: Deterministic hashing and seeded randomness for procedural effects.

package effects

import "math/rand/v2"

// mix64 is the splitmix64 finaliser.
func mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// hash01 maps (seed, index, salt) to a stable value in [0, 1).
func hash01(seed uint64, index int, salt uint64) float64 {
	h := mix64(seed ^ mix64(uint64(index)+0x9e3779b97f4a7c15*salt))
	return float64(h>>11) / (1 << 53)
}

// newRand returns a PCG source seeded from seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, mix64(seed)))
}
