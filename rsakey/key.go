// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package rsakey implements RSA key generation, OAEP encryption, and
PKCS#1 v1.5 and PSS signing over the bigint package's arbitrary-precision
integers. It treats the RSA value operations themselves — key generation
with CRT parameters, the OAEP/PKCS#1/PSS encodings — as this toolkit's own
deliverable rather than a thin pass-through to crypto/rsa, the same way
ModChain-secp256k1 implements its own scalar and signature arithmetic
rather than delegating to a pre-built curve library.
*/
package rsakey

import (
	"github.com/ModChain/x509kit/bigint"
	"github.com/ModChain/x509kit/csprng"
)

// PublicExponent is the fixed public exponent this package's generator
// uses: 65537 (0x10001), the smallest Fermat prime large enough to resist
// the low-exponent attacks that plague e=3.
const PublicExponent = 65537

// PublicKey is an RSA public key: a modulus and a public exponent.
type PublicKey struct {
	N, E *bigint.Int
}

// Width returns the bit width of the modulus, or 0 if N is unset.
func (k *PublicKey) Width() int {
	if k.N == nil || k.N.Sign() == 0 {
		return 0
	}
	return k.N.Width()
}

// Equal reports whether k and other have the same modulus and exponent.
func (k *PublicKey) Equal(other *PublicKey) bool {
	if k.N == nil || other.N == nil || k.E == nil || other.E == nil {
		return false
	}
	return k.N.Cmp(other.N) == 0 && k.E.Cmp(other.E) == 0
}

// PrivateKey is an RSA private key: a PublicKey plus the private exponent
// and CRT parameters.
type PrivateKey struct {
	PublicKey
	D, P, Q, Dp, Dq, Qinv *bigint.Int
}

// Scrub overwrites every field of k that holds private key material with
// zeroes. Call it as soon as a private key is no longer needed.
func (k *PrivateKey) Scrub() {
	for _, v := range []*bigint.Int{k.D, k.P, k.Q, k.Dp, k.Dq, k.Qinv} {
		if v != nil {
			v.Scrub()
		}
	}
}

// Generate draws a new RSA key pair of the given bit width: width must be
// a positive even number. It fixes e = 65537, picks primes p and q of
// width/2 and width-width/2 bits via bigint's prime generator, and derives
// n, d and the CRT residues dp, dq, qinv. It retries the prime draw when
// gcd(e, φ(n)) != 1 or when the resulting modulus doesn't land on the
// requested bit width.
func Generate(rng *csprng.Locker, width int) (*PrivateKey, error) {
	if width <= 0 || width%2 != 0 {
		return nil, makeError(ErrInvalidWidth, "width must be a positive even number")
	}
	e := bigint.NewInt(PublicExponent)
	pBits := width / 2
	qBits := width - pBits

	for attempt := 0; attempt < 64; attempt++ {
		p := new(bigint.Int)
		if err := p.GeneratePrime(rng, pBits); err != nil {
			return nil, makeError(ErrKeyGeneration, "generating p: "+err.Error())
		}
		q := new(bigint.Int)
		if err := q.GeneratePrime(rng, qBits); err != nil {
			return nil, makeError(ErrKeyGeneration, "generating q: "+err.Error())
		}
		if p.Cmp(q) == 0 {
			continue
		}

		n := new(bigint.Int).Mul(p, q)
		if n.Width() != width {
			continue
		}

		one := bigint.NewInt(1)
		pMinus1 := new(bigint.Int).Sub(p, one)
		qMinus1 := new(bigint.Int).Sub(q, one)
		phi := new(bigint.Int).Mul(pMinus1, qMinus1)

		d, ok := new(bigint.Int).ModInverse(e, phi)
		if !ok {
			continue
		}

		dp := new(bigint.Int)
		if _, err := dp.Mod(d, pMinus1); err != nil {
			return nil, err
		}
		dq := new(bigint.Int)
		if _, err := dq.Mod(d, qMinus1); err != nil {
			return nil, err
		}
		qinv, ok := new(bigint.Int).ModInverse(q, p)
		if !ok {
			continue
		}

		return &PrivateKey{
			PublicKey: PublicKey{N: n, E: e},
			D:         d,
			P:         p,
			Q:         q,
			Dp:        dp,
			Dq:        dq,
			Qinv:      qinv,
		}, nil
	}
	return nil, makeError(ErrKeyGeneration, "exhausted retry budget drawing a valid prime pair")
}

// Validate re-derives k's public key from its private fields and checks it
// against pub, mirroring the source's "re-run library key-pair validation
// against a stated public key" contract.
func Validate(k *PrivateKey, pub *PublicKey) bool {
	if !k.PublicKey.Equal(pub) {
		return false
	}
	n := new(bigint.Int).Mul(k.P, k.Q)
	if n.Cmp(k.N) != 0 {
		return false
	}

	one := bigint.NewInt(1)
	pMinus1 := new(bigint.Int).Sub(k.P, one)
	qMinus1 := new(bigint.Int).Sub(k.Q, one)
	phi := new(bigint.Int).Mul(pMinus1, qMinus1)

	check := new(bigint.Int).Mul(k.E, k.D)
	if _, err := check.Mod(check, phi); err != nil {
		return false
	}
	if check.Cmp(one) != 0 {
		return false
	}

	dp := new(bigint.Int)
	if _, err := dp.Mod(k.D, pMinus1); err != nil || dp.Cmp(k.Dp) != 0 {
		return false
	}
	dq := new(bigint.Int)
	if _, err := dq.Mod(k.D, qMinus1); err != nil || dq.Cmp(k.Dq) != 0 {
		return false
	}
	qinv := new(bigint.Int).Mul(k.Qinv, k.Q)
	if _, err := qinv.Mod(qinv, k.P); err != nil || qinv.Cmp(one) != 0 {
		return false
	}
	return true
}
