// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bigint

import (
	"math/big"
)

// Int is an arbitrary-precision signed integer.  It wraps math/big.Int and
// adds the canonical unsigned and two's-complement byte encodings that the
// der package's INTEGER and certificate serial number handling depend on.
//
// The zero value of Int is ready to use and represents 0.
type Int struct {
	v big.Int
}

// NewInt returns an Int set to the given signed int64 value.
func NewInt(n int64) *Int {
	i := new(Int)
	i.v.SetInt64(n)
	return i
}

// NewUint32 returns an Int set to the given unsigned 32-bit value.
func NewUint32(n uint32) *Int {
	i := new(Int)
	i.v.SetUint64(uint64(n))
	return i
}

// Clone returns a deep copy of i.
func (i *Int) Clone() *Int {
	n := new(Int)
	n.v.Set(&i.v)
	return n
}

// Big returns the underlying math/big.Int.  The returned pointer aliases
// i's storage; callers that need an independent value should call Clone
// first.
func (i *Int) Big() *big.Int {
	return &i.v
}

// FromBig sets i to the value of b and returns i.
func (i *Int) FromBig(b *big.Int) *Int {
	i.v.Set(b)
	return i
}

// SetUnsigned sets i from an unsigned big-endian byte slice.
func (i *Int) SetUnsigned(b []byte) *Int {
	i.v.SetBytes(b)
	return i
}

// Unsigned returns the minimal unsigned big-endian encoding of i.  An
// unsigned encoding has no sign bit to carry a negative value, so it fails
// fast with ErrNegativeUnsigned if i is negative rather than silently
// emitting the magnitude.
func (i *Int) Unsigned() ([]byte, error) {
	if i.v.Sign() < 0 {
		return nil, makeError(ErrNegativeUnsigned,
			"cannot emit a negative Int as an unsigned byte slice")
	}
	return i.v.Bytes(), nil
}

// UnsignedLen returns the number of bytes Unsigned would produce.
func (i *Int) UnsignedLen() int {
	return (i.v.BitLen() + 7) / 8
}

// SetSigned sets i from a minimum-length, sign-extended two's-complement
// big-endian byte slice.  An empty slice sets i to 0.
func (i *Int) SetSigned(b []byte) *Int {
	if len(b) == 0 {
		i.v.SetInt64(0)
		return i
	}
	negative := b[0]&0x80 != 0
	if !negative {
		i.v.SetBytes(b)
		return i
	}

	// Two's complement: invert every byte, add one, negate.
	inv := make([]byte, len(b))
	for idx, bb := range b {
		inv[idx] = ^bb
	}
	i.v.SetBytes(inv)
	i.v.Add(&i.v, big.NewInt(1))
	i.v.Neg(&i.v)
	return i
}

// SignedLen returns the number of bytes Signed would produce: the canonical,
// minimum-length two's-complement encoding length.
func (i *Int) SignedLen() int {
	return len(i.signedBytes())
}

// Signed returns the canonical, minimum-length two's-complement big-endian
// encoding of i.
//
// Encoding rules (DER's minimal-length two's-complement INTEGER content,
// ITU-T X.690 §8.3):
//   - 0 encodes as a single 0x00 byte.
//   - A non-negative value whose minimal unsigned representation has its
//     high bit set is prefixed with an extra 0x00 byte to keep it positive.
//   - A negative value is encoded via two's complement of the minimal byte
//     width required; if that width's boundary value (-2^(8*W-1)) is not
//     exactly equal to the value, and the low bits would otherwise collide
//     with the boundary encoding, an extra leading 0xFF byte is added to
//     disambiguate.
func (i *Int) Signed() []byte {
	return i.signedBytes()
}

func (i *Int) signedBytes() []byte {
	if i.v.Sign() == 0 {
		return []byte{0x00}
	}
	if i.v.Sign() > 0 {
		b := i.v.Bytes()
		if b[0]&0x80 != 0 {
			out := make([]byte, len(b)+1)
			copy(out[1:], b)
			return out
		}
		return b
	}

	// Negative: find the minimal byte width W such that -2^(8W-1) <= v.
	neg := new(big.Int).Neg(&i.v) // |v|, > 0
	magBytes := neg.Bytes()
	w := len(magBytes)

	// boundary = 2^(8w-1); if |v| <= boundary, w bytes suffice (two's
	// complement of a value in [-2^(8w-1), -1] fits in w bytes with the
	// high bit set).
	boundary := new(big.Int).Lsh(big.NewInt(1), uint(8*w-1))
	if neg.Cmp(boundary) > 0 {
		w++
	}

	out := make([]byte, w)
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*w))
	tc := new(big.Int).Add(mod, &i.v) // mod + v, v is negative
	tcBytes := tc.Bytes()
	copy(out[w-len(tcBytes):], tcBytes)
	return out
}

// Width returns the bit length of i's absolute value.  Zero has width 1,
// since a zero-length encoding would be ambiguous with "no value".
func (i *Int) Width() int {
	bl := i.v.BitLen()
	if bl == 0 {
		return 1
	}
	return bl
}

// Sign returns -1, 0 or 1 depending on whether i is negative, zero or
// positive.
func (i *Int) Sign() int {
	return i.v.Sign()
}

// Neg negates i in place and returns i.
func (i *Int) Neg() *Int {
	i.v.Neg(&i.v)
	return i
}

// Cmp compares i to other, returning -1, 0 or 1.
func (i *Int) Cmp(other *Int) int {
	return i.v.Cmp(&other.v)
}

// Bit returns the value of the bit at the given position (0 is the least
// significant bit).
func (i *Int) Bit(pos int) bool {
	if pos < 0 {
		return false
	}
	return i.v.Bit(pos) == 1
}

// SetBit sets or clears the bit at the given position and returns i.
func (i *Int) SetBit(pos int, set bool) *Int {
	if pos < 0 {
		return i
	}
	val := uint(0)
	if set {
		val = 1
	}
	i.v.SetBit(&i.v, pos, val)
	return i
}

// ClearBit clears the bit at the given position and returns i.
func (i *Int) ClearBit(pos int) *Int {
	return i.SetBit(pos, false)
}

// Lsh shifts i left by n bits and returns i.
func (i *Int) Lsh(n uint) *Int {
	i.v.Lsh(&i.v, n)
	return i
}

// Rsh shifts i right by n bits (arithmetic shift) and returns i.
func (i *Int) Rsh(n uint) *Int {
	i.v.Rsh(&i.v, n)
	return i
}

// Add sets i = a + b and returns i.
func (i *Int) Add(a, b *Int) *Int {
	i.v.Add(&a.v, &b.v)
	return i
}

// Sub sets i = a - b and returns i.
func (i *Int) Sub(a, b *Int) *Int {
	i.v.Sub(&a.v, &b.v)
	return i
}

// Mul sets i = a * b and returns i.
func (i *Int) Mul(a, b *Int) *Int {
	i.v.Mul(&a.v, &b.v)
	return i
}

// DivMod sets i to the truncated quotient of a / b and returns (i, remainder).
// It returns ErrDivideByZero if b is zero.
func (i *Int) DivMod(a, b *Int) (*Int, *Int, error) {
	if b.v.Sign() == 0 {
		return nil, nil, makeError(ErrDivideByZero, "division by zero")
	}
	rem := new(Int)
	i.v.QuoRem(&a.v, &b.v, &rem.v)
	return i, rem, nil
}

// Mod sets i = a mod m (Euclidean, always in [0, |m|)) and returns i.  It
// returns ErrDivideByZero if m is zero.
func (i *Int) Mod(a, m *Int) (*Int, error) {
	if m.v.Sign() == 0 {
		return nil, makeError(ErrDivideByZero, "modulus is zero")
	}
	i.v.Mod(&a.v, &m.v)
	return i, nil
}

// ModInverse sets i to the multiplicative inverse of a modulo m and returns
// (i, true) if it exists, or (nil, false) if a and m are not coprime.
func (i *Int) ModInverse(a, m *Int) (*Int, bool) {
	r := i.v.ModInverse(&a.v, &m.v)
	if r == nil {
		return nil, false
	}
	return i, true
}

// Gcd sets i to the greatest common divisor of a and b and returns i.
func (i *Int) Gcd(a, b *Int) *Int {
	i.v.GCD(nil, nil, &a.v, &b.v)
	return i
}

// Exp sets i = a^y (non-modular, y must be non-negative) and returns i.
func (i *Int) Exp(a, y *Int) *Int {
	i.v.Exp(&a.v, &y.v, nil)
	return i
}

// ExpMod sets i = a^y mod m and returns i.
func (i *Int) ExpMod(a, y, m *Int) *Int {
	i.v.Exp(&a.v, &y.v, &m.v)
	return i
}

// String returns the base-10 representation of i, for debugging.
func (i *Int) String() string {
	return i.v.String()
}

// Scrub overwrites i's internal storage with zeroes.  Callers should call it
// on every Int that ever held key material (a private exponent, a CRT
// parameter, an EC scalar) before letting it go, since leaving secret limbs
// in a freed allocation is exactly what a heap-scanning attacker looks for.
// math/big.Int does not expose its limb slice, so Scrub replaces the value
// with 0 and additionally walks the word-backing array it can still reach
// through Bits() to clear it in place rather than merely dropping the
// reference.
func (i *Int) Scrub() {
	bits := i.v.Bits()
	for idx := range bits {
		bits[idx] = 0
	}
	i.v.SetInt64(0)
}
