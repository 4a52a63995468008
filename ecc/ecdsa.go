// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"math/big"

	"github.com/ModChain/x509kit/bigint"
)

// Signature is an ECDSA (r, s) pair.
type Signature struct {
	R, S *bigint.Int
}

// Sign computes an ECDSA signature over digest using the regular private
// scalar priv and a caller-supplied ephemeral scalar k, per the source
// contract: the two scalars must differ, and the caller is responsible for
// drawing k uniformly at random (or deterministically per RFC 6979) before
// calling Sign.
func Sign(c Curve, priv, k *bigint.Int, digest []byte) (*Signature, error) {
	if priv.Cmp(k) == 0 {
		return nil, makeError(ErrEqualScalars, "regular and ephemeral private scalars must differ")
	}
	n := c.N()
	if n == nil {
		return nil, makeError(ErrUnknownCurve, "unrecognized curve")
	}
	nInt := new(bigint.Int).FromBig(n)

	if k.Sign() <= 0 || k.Big().Cmp(n) >= 0 {
		return nil, makeError(ErrZeroScalar, "ephemeral scalar out of range")
	}

	r1, err := ScalarBaseMult(c, k)
	if err != nil {
		return nil, err
	}
	rx, _ := r1.XY()
	r := new(bigint.Int).FromBig(rx)
	if _, err := r.Mod(r, nInt); err != nil {
		return nil, err
	}
	if r.Sign() == 0 {
		return nil, makeError(ErrZeroScalar, "r computed to zero")
	}

	e := hashToScalar(digest, n)

	// s = k^-1 * (e + r*priv) mod n
	kInv, ok := new(bigint.Int).ModInverse(k, nInt)
	if !ok {
		return nil, makeError(ErrZeroScalar, "ephemeral scalar has no inverse mod n")
	}
	rp := new(bigint.Int).Mul(r, priv)
	sum := new(bigint.Int).Add(e, rp)
	s := new(bigint.Int).Mul(kInv, sum)
	if _, err := s.Mod(s, nInt); err != nil {
		return nil, err
	}
	if s.Sign() == 0 {
		return nil, makeError(ErrZeroScalar, "s computed to zero")
	}

	return &Signature{R: r, S: s}, nil
}

// Verify reports whether sig is a valid ECDSA signature over digest under
// the public point pub.
func Verify(pub *Point, digest []byte, sig *Signature) bool {
	n := pub.Curve.N()
	if n == nil {
		return false
	}
	nInt := new(bigint.Int).FromBig(n)

	if sig.R.Sign() <= 0 || sig.R.Big().Cmp(n) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Big().Cmp(n) >= 0 {
		return false
	}

	sInv, ok := new(bigint.Int).ModInverse(sig.S, nInt)
	if !ok {
		return false
	}
	e := hashToScalar(digest, n)

	u1 := new(bigint.Int).Mul(e, sInv)
	if _, err := u1.Mod(u1, nInt); err != nil {
		return false
	}
	u2 := new(bigint.Int).Mul(sig.R, sInv)
	if _, err := u2.Mod(u2, nInt); err != nil {
		return false
	}

	p1, err := ScalarBaseMult(pub.Curve, u1)
	if err != nil {
		return false
	}
	p2, err := ScalarMult(u2, pub)
	if err != nil {
		return false
	}

	params, err := pub.Curve.Params()
	if err != nil {
		return false
	}
	x1, y1 := p1.XY()
	x2, y2 := p2.XY()
	rx, ry := params.Add(x1, y1, x2, y2)
	if rx.Sign() == 0 && ry.Sign() == 0 {
		return false
	}

	v := new(big.Int).Mod(rx, n)
	return v.Cmp(sig.R.Big()) == 0
}

// hashToScalar reduces a digest to an integer modulo n, truncating it to
// n's bit length first per FIPS 186-4's leftmost-bits rule when the digest
// is wider than the order.
func hashToScalar(digest []byte, n *big.Int) *bigint.Int {
	orderBits := n.BitLen()
	e := new(big.Int).SetBytes(digest)
	if digestBits := len(digest) * 8; digestBits > orderBits {
		e.Rsh(e, uint(digestBits-orderBits))
	}
	return new(bigint.Int).FromBig(e)
}
