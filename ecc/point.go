// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"math/big"

	"github.com/ModChain/x509kit/bigint"
)

// Point is a point on a named curve: either the point at infinity, or
// affine (x, y) coordinates in the curve's field. Its lifetime is
// independent of any other Point sharing the same curve; the curve itself
// is referenced by value (a Curve is just an enum tag, so "sharing" costs
// nothing).
type Point struct {
	Curve    Curve
	x, y     *big.Int
	infinity bool
}

// Infinity returns the point at infinity on c.
func Infinity(c Curve) *Point {
	return &Point{Curve: c, infinity: true}
}

// NewPoint returns the affine point (x, y) on c. It does not itself
// validate that the point lies on the curve; call Valid for that.
func NewPoint(c Curve, x, y *big.Int) *Point {
	return &Point{Curve: c, x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p.infinity
}

// XY returns p's affine coordinates. It returns (nil, nil) if p is the
// point at infinity.
func (p *Point) XY() (x, y *big.Int) {
	if p.infinity {
		return nil, nil
	}
	return new(big.Int).Set(p.x), new(big.Int).Set(p.y)
}

// Valid reports whether p is a finite point that actually lies on its
// curve. Validity is deliberately a separate predicate from construction,
// so a Point parsed from untrusted bytes can be inspected before use.
func (p *Point) Valid() bool {
	if p.infinity {
		return false
	}
	return p.Curve.IsOnCurve(p.x, p.y)
}

// Equal reports whether p and other represent the same point: both are the
// point at infinity, or both have the same affine coordinates. The curve is
// not compared, so numerically coincident points on different curves are
// equal.
func (p *Point) Equal(other *Point) bool {
	if p.infinity || other.infinity {
		return p.infinity == other.infinity
	}
	return p.x.Cmp(other.x) == 0 && p.y.Cmp(other.y) == 0
}

// Encode returns the SEC1 uncompressed encoding of p: 0x04 followed by x
// and y, each padded to ceil(curve_bits/8) bytes. Encoding the point at
// infinity returns a single 0x00 byte, per SEC1's convention.
func (p *Point) Encode() []byte {
	if p.infinity {
		return []byte{0x00}
	}
	w := p.Curve.ByteSize()
	out := make([]byte, 1+2*w)
	out[0] = 0x04

	xi := new(bigint.Int).FromBig(p.x)
	yi := new(bigint.Int).FromBig(p.y)
	xb, _ := xi.Unsigned()
	yb, _ := yi.Unsigned()
	copy(out[1+w-len(xb):1+w], xb)
	copy(out[1+2*w-len(yb):1+2*w], yb)
	return out
}

// Decode parses a SEC1 uncompressed point encoding for curve c.
func Decode(c Curve, b []byte) (*Point, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return Infinity(c), nil
	}
	w := c.ByteSize()
	if len(b) != 1+2*w {
		return nil, makeError(ErrInvalidEncoding, "unexpected SEC1 point length")
	}
	if b[0] != 0x04 {
		return nil, makeError(ErrInvalidEncoding, "only uncompressed (0x04) points are supported")
	}
	x := new(big.Int).SetBytes(b[1 : 1+w])
	y := new(big.Int).SetBytes(b[1+w : 1+2*w])
	return NewPoint(c, x, y), nil
}
