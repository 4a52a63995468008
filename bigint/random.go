// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bigint

import (
	"math/big"

	"github.com/ModChain/x509kit/csprng"
)

// RandBits draws a uniformly random non-negative integer of at most the
// given bit width from rng and sets i to it (exactly that width when top is
// true).
//
// If top is true, the two most significant bits are forced to 1, which
// guarantees the product of two such values has the expected bit width for
// RSA modulus construction.  If bottom is true, the least significant bit is
// forced to 1, producing an odd candidate suitable for primality testing.
func (i *Int) RandBits(rng *csprng.Locker, bits int, top, bottom bool) error {
	if bits <= 0 {
		i.v.SetInt64(0)
		return nil
	}
	nbytes := (bits + 7) / 8
	buf := make([]byte, nbytes)
	if _, err := rng.Read(buf); err != nil {
		return err
	}

	// Mask off the excess high bits of the first byte so the value has at
	// most `bits` bits.
	excess := nbytes*8 - bits
	if excess > 0 {
		buf[0] &= 0xFF >> uint(excess)
	}

	if top {
		// Set the top two bits within the requested width.
		if bits == 1 {
			buf[0] |= 1
		} else {
			setBitInBuf(buf, bits-1)
			setBitInBuf(buf, bits-2)
		}
	}
	if bottom {
		buf[len(buf)-1] |= 1
	}

	i.v.SetBytes(buf)
	return nil
}

// setBitInBuf sets the given bit (0 = least significant) of a big-endian
// byte slice representing a value of the slice's full bit width.
func setBitInBuf(buf []byte, bit int) {
	byteIdx := len(buf) - 1 - bit/8
	if byteIdx < 0 || byteIdx >= len(buf) {
		return
	}
	buf[byteIdx] |= 1 << uint(bit%8)
}

// RandRange draws a uniformly random value in [0, max) from rng and sets i
// to it.
func (i *Int) RandRange(rng *csprng.Locker, max *Int) error {
	v, err := randomInRange(rng, &max.v)
	if err != nil {
		return err
	}
	i.v.Set(v)
	return nil
}

func randomInRange(rng *csprng.Locker, max *big.Int) (*big.Int, error) {
	bitLen := max.BitLen()
	nbytes := (bitLen + 7) / 8
	if nbytes == 0 {
		return big.NewInt(0), nil
	}
	for {
		buf := make([]byte, nbytes)
		if _, err := rng.Read(buf); err != nil {
			return nil, err
		}
		excess := nbytes*8 - bitLen
		if excess > 0 {
			buf[0] &= 0xFF >> uint(excess)
		}
		cand := new(big.Int).SetBytes(buf)
		if cand.Cmp(max) < 0 {
			return cand, nil
		}
	}
}
