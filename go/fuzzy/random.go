// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package fuzzy

//go:generate mockgen -source random.go -destination random_mock.go -package fuzzy

import "pgregory.net/rand"

// Random is the source of randomness consumed by subcases. Subcases must not
// draw randomness from anywhere else, which keeps every trial reproducible
// from the session seed.
type Random interface {
	// Uint64 returns a uniformly distributed 64-bit value.
	Uint64() uint64
	// Uint64n returns a uniformly distributed value in [0,n).
	Uint64n(n uint64) uint64
	// Intn returns a uniformly distributed value in [0,n).
	Intn(n int) int
}

var _ Random = (*rand.Rand)(nil)

// NewRandom creates a random source deterministically derived from the given
// seeds.
func NewRandom(seed ...uint64) Random {
	return rand.New(seed...)
}
