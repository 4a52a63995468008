// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import "github.com/ModChain/x509kit/bigint"

// GenerateSharedSecret performs ECDH: given our own private scalar and the
// peer's public point (on an agreed curve), it returns the shared
// x-coordinate as a BigInt of the curve's bit width.
func GenerateSharedSecret(priv *bigint.Int, peer *Point) (*bigint.Int, error) {
	shared, err := ScalarMult(priv, peer)
	if err != nil {
		return nil, err
	}
	if shared.infinity {
		return nil, makeError(ErrPointAtInfinity, "shared point is the point at infinity")
	}
	x, _ := shared.XY()
	return new(bigint.Int).FromBig(x), nil
}
