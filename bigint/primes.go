// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bigint

import (
	"github.com/ModChain/x509kit/csprng"
)

// mrRoundsForWidth returns the number of Miller-Rabin rounds to run for a
// candidate of the given bit width.  Smaller candidates need more rounds to
// reach the same false-positive bound as larger ones, so the round count
// decreases as width grows; this mirrors the shape of the trial-count
// tables common RSA prime generators use (e.g. FIPS 186-4 appendix C.3),
// without claiming bit-for-bit equivalence with any one of them.
func mrRoundsForWidth(width int) int {
	switch {
	case width < 100:
		return 50
	case width < 256:
		return 28
	case width < 512:
		return 20
	case width < 1024:
		return 15
	case width < 2048:
		return 8
	default:
		return 4
	}
}

// IsProbablyPrime reports whether i is probably prime, using a number of
// Miller-Rabin rounds chosen from i's own bit width via mrRoundsForWidth.
// It delegates the actual round-robin witness testing to math/big, which
// additionally runs a Baillie-PSW check.
func (i *Int) IsProbablyPrime() bool {
	return i.v.ProbablyPrime(mrRoundsForWidth(i.Width()))
}

// GeneratePrime draws random odd candidates of the given bit width (with the
// top two bits forced to 1, so the product of two such primes is guaranteed
// to have the full expected bit width) until one passes IsProbablyPrime, and
// sets i to it.
func (i *Int) GeneratePrime(rng *csprng.Locker, bits int) error {
	for {
		if err := i.RandBits(rng, bits, true, true); err != nil {
			return err
		}
		if i.IsProbablyPrime() {
			return nil
		}
	}
}
