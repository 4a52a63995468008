// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"math/big"

	"github.com/ModChain/x509kit/bigint"
	"github.com/ModChain/x509kit/csprng"
)

// ScalarBaseMult returns d*G, the public point corresponding to the
// private scalar d on curve c.
func ScalarBaseMult(c Curve, d *bigint.Int) (*Point, error) {
	params, err := c.Params()
	if err != nil {
		return nil, err
	}
	x, y := params.ScalarBaseMult(d.Big().Bytes())
	return NewPoint(c, x, y), nil
}

// ScalarMult returns d*Q, the scalar multiple of point Q by d.
func ScalarMult(d *bigint.Int, q *Point) (*Point, error) {
	if q.infinity {
		return nil, makeError(ErrPointAtInfinity, "cannot scalar-multiply the point at infinity")
	}
	params, err := q.Curve.Params()
	if err != nil {
		return nil, err
	}
	x, y := params.ScalarMult(q.x, q.y, d.Big().Bytes())
	return NewPoint(q.Curve, x, y), nil
}

// ValidPrivateScalar reports whether d is in the valid range [1, n-1] for
// curve c's base-point order n.
func ValidPrivateScalar(c Curve, d *bigint.Int) bool {
	n := c.N()
	if n == nil {
		return false
	}
	if d.Sign() <= 0 {
		return false
	}
	return d.Big().Cmp(n) < 0
}

// GenerateKey draws a uniformly random private scalar in [1, n-1] and
// returns it together with its public point d*G.
func GenerateKey(rng *csprng.Locker, c Curve) (*bigint.Int, *Point, error) {
	n := c.N()
	if n == nil {
		return nil, nil, makeError(ErrUnknownCurve, "unrecognized curve")
	}
	nMinus1 := new(big.Int).Sub(n, big.NewInt(1))
	d := new(bigint.Int)
	for {
		if err := d.RandRange(rng, new(bigint.Int).FromBig(nMinus1)); err != nil {
			return nil, nil, makeError(ErrKeyGeneration, "drawing private scalar: "+err.Error())
		}
		// RandRange draws in [0, nMinus1); shift into [1, n-1].
		d.Add(d, bigint.NewInt(1))
		if ValidPrivateScalar(c, d) {
			break
		}
	}
	q, err := ScalarBaseMult(c, d)
	if err != nil {
		return nil, nil, err
	}
	return d, q, nil
}
