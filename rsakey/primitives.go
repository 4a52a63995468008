// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rsakey

import "github.com/ModChain/x509kit/bigint"

// i2osp (Integer-to-Octet-String Primitive, RFC 8017 §4.1) encodes x as a
// big-endian byte slice of exactly length bytes, failing if x doesn't fit.
func i2osp(x *bigint.Int, length int) ([]byte, error) {
	if x.UnsignedLen() > length {
		return nil, makeError(ErrIntegerTooLarge, "integer does not fit in the requested width")
	}
	b, err := x.Unsigned()
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out[length-len(b):], b)
	return out, nil
}

// os2ip (Octet-String-to-Integer Primitive) decodes a big-endian byte
// slice as an unsigned integer.
func os2ip(b []byte) *bigint.Int {
	return new(bigint.Int).SetUnsigned(b)
}

// rsaep is the RSA encryption primitive: c = m^e mod n.
func rsaep(pub *PublicKey, m *bigint.Int) *bigint.Int {
	return new(bigint.Int).ExpMod(m, pub.E, pub.N)
}

// rsadp is the RSA decryption primitive: m = c^d mod n, computed via CRT
// for speed the way every production RSA implementation does.
func rsadp(priv *PrivateKey, c *bigint.Int) *bigint.Int {
	m1 := new(bigint.Int).ExpMod(c, priv.Dp, priv.P)
	m2 := new(bigint.Int).ExpMod(c, priv.Dq, priv.Q)

	// h = qinv * (m1 - m2) mod p
	diff := new(bigint.Int).Sub(m1, m2)
	h := new(bigint.Int).Mul(priv.Qinv, diff)
	h, err := h.Mod(h, priv.P)
	if err != nil {
		// p is nonzero for any key Generate produces. For a key with p == 0
		// this returns m2 unchanged rather than panicking; m2 is not the
		// correct result in that case.
		return m2
	}

	m := new(bigint.Int).Mul(h, priv.Q)
	m.Add(m, m2)
	return m
}

// rsasp1 is the RSA signature primitive: s = m^d mod n. It is identical in
// shape to rsaep/rsadp but named separately per RFC 8017's own convention,
// which keeps the encrypt and sign code paths textually distinct even
// though they share an exponentiation.
func rsasp1(priv *PrivateKey, m *bigint.Int) *bigint.Int {
	return rsadp(priv, m)
}

// rsavp1 is the RSA verification primitive: m = s^e mod n.
func rsavp1(pub *PublicKey, s *bigint.Int) *bigint.Int {
	return rsaep(pub, s)
}
