// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ecc implements elliptic-curve cryptography over the six named
prime-field curves this toolkit's X.509 layer needs: point representation,
key generation, ECDSA sign/verify and ECDH.

Every curve, including the two crypto/elliptic doesn't ship (P-192 and the
SM2 recommended curve), is represented as a *elliptic.CurveParams plus a
cofactor and byte width, following the same CurveParams-wrapping idiom
secp256k1 uses for the one curve Go's standard library lacks. Where
crypto/elliptic already ships a curve (P-224, P-256, P-384, P-521) this
package reuses its Params() directly rather than re-deriving constants.
*/
package ecc

import (
	"crypto/elliptic"
	"math/big"
)

// Curve identifies one of the named prime-field curves this toolkit
// supports. curve_25519 and curve_448 are intentionally not represented:
// they are commented out in the source this toolkit is modeled on.
type Curve int

// The complete set of named curves.
const (
	P192R1 Curve = iota
	P224R1
	P256R1
	P384R1
	P521R1
	P256SM2
)

// String returns the canonical curve name.
func (c Curve) String() string {
	switch c {
	case P192R1:
		return "p192r1"
	case P224R1:
		return "p224r1"
	case P256R1:
		return "p256r1"
	case P384R1:
		return "p384r1"
	case P521R1:
		return "p521r1"
	case P256SM2:
		return "p256sm2"
	default:
		return "unknown"
	}
}

// CurveParams bundles a *elliptic.CurveParams with the cofactor and byte
// width this toolkit's point encoding and key generation need, mirroring
// ModChain-secp256k1's own CurveParams wrapper.
type CurveParams struct {
	*elliptic.CurveParams
	H        int // cofactor
	byteSize int
}

// fromHex decodes a hex constant into a big.Int, panicking on malformed
// input. Only ever called with hard-coded curve constants below.
func fromHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("ecc: invalid hex constant: " + s)
	}
	return n
}

// p192r1Params holds the NIST/SECG P-192 (secp192r1 / prime192v1) domain
// parameters. crypto/elliptic does not ship this curve.
var p192r1Params = &CurveParams{
	CurveParams: &elliptic.CurveParams{
		Name:    "P-192",
		P:       fromHex("fffffffffffffffffffffffffffffffeffffffffffffffff"),
		N:       fromHex("ffffffffffffffffffffffff99def836146bc9b1b4d22831"),
		B:       fromHex("64210519e59c80e70fa7e9ab72243049feb8deecc146b9b1"),
		Gx:      fromHex("188da80eb03090f67cbf20eb43a18800f4ff0afd82ff1012"),
		Gy:      fromHex("07192b95ffc8da78631011ed6b24cdd573f977a11e794811"),
		BitSize: 192,
	},
	H:        1,
	byteSize: (192 + 7) / 8,
}

// p256sm2Params holds the SM2 recommended curve (sm2p256v1) domain
// parameters per GM/T 0003. Its a coefficient equals p-3, so the generic
// a=-3 affine formulas crypto/elliptic.CurveParams relies on apply here
// exactly as they do for the NIST curves.
var p256sm2Params = &CurveParams{
	CurveParams: &elliptic.CurveParams{
		Name:    "SM2-P-256",
		P:       fromHex("fffffffeffffffffffffffffffffffffffffffff00000000ffffffffffffffff"),
		N:       fromHex("fffffffeffffffffffffffffffffffff7203df6b21c6052b53bbf40939d54123"),
		B:       fromHex("28e9fa9e9d9f5e344d5a9e4bcf6509a7f39789f515ab8f92ddbcbd414d940e93"),
		Gx:      fromHex("32c4ae2c1f1981195f9904466a39c9948fe30bbff2660be1715a4589334c74c7"),
		Gy:      fromHex("bc3736a2f4f6779c59bdcee36b692153d0a9877cc62a474002df32e52139f0a0"),
		BitSize: 256,
	},
	H:        1,
	byteSize: (256 + 7) / 8,
}

// stdlibWrap wraps one of crypto/elliptic's built-in curves (all of which
// have cofactor 1) into this package's CurveParams shape.
func stdlibWrap(c elliptic.Curve) *CurveParams {
	p := c.Params()
	return &CurveParams{
		CurveParams: p,
		H:           1,
		byteSize:    (p.BitSize + 7) / 8,
	}
}

// Params returns the domain parameters for c, or ErrUnknownCurve if c is
// not one of the enumerated values.
func (c Curve) Params() (*CurveParams, error) {
	switch c {
	case P192R1:
		return p192r1Params, nil
	case P224R1:
		return stdlibWrap(elliptic.P224()), nil
	case P256R1:
		return stdlibWrap(elliptic.P256()), nil
	case P384R1:
		return stdlibWrap(elliptic.P384()), nil
	case P521R1:
		return stdlibWrap(elliptic.P521()), nil
	case P256SM2:
		return p256sm2Params, nil
	default:
		return nil, makeError(ErrUnknownCurve, "unrecognized curve")
	}
}

// BitSize returns the curve's field bit width, or 0 if c is unrecognized.
func (c Curve) BitSize() int {
	p, err := c.Params()
	if err != nil {
		return 0
	}
	return p.BitSize
}

// ByteSize returns ceil(BitSize/8), the width a single coordinate occupies
// in SEC1 uncompressed encoding.
func (c Curve) ByteSize() int {
	p, err := c.Params()
	if err != nil {
		return 0
	}
	return p.byteSize
}

// Cofactor returns the curve's cofactor.
func (c Curve) Cofactor() int {
	p, err := c.Params()
	if err != nil {
		return 0
	}
	return p.H
}

// N returns the curve's base-point order.
func (c Curve) N() *big.Int {
	p, err := c.Params()
	if err != nil {
		return nil
	}
	return p.N
}

// IsOnCurve reports whether (x, y) is a point on c's curve.
func (c Curve) IsOnCurve(x, y *big.Int) bool {
	p, err := c.Params()
	if err != nil {
		return false
	}
	return p.IsOnCurve(x, y)
}
