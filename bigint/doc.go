// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package bigint provides the arbitrary-precision signed integer type used
throughout x509kit.

It is a thin adapter over math/big.Int that exposes exactly the operation
set the rest of the module needs: unsigned and two's-complement byte I/O,
width and bit queries, shifts, modular arithmetic, and cryptographic
random/prime generation. math/big itself is treated as an opaque backend,
the same way every other arbitrary-precision integer in this toolkit's
lineage (secp256k1's field and scalar types, Ethereum's uint256, btcd's
signature math) is built on some opaque fixed- or arbitrary-precision
backend rather than reimplementing limb arithmetic from scratch.

The most subtle part of this package is the canonical two's-complement
encoding used by the der package's INTEGER type: a non-negative value
whose minimal big-endian representation has its top bit set is prefixed
with a 0x00 byte, and a negative value is sign-extended with a leading
0xFF byte only when required to disambiguate it from the power-of-two
boundary value that already encodes unambiguously.
*/
package bigint
