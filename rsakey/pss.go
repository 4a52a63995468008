// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rsakey

import (
	"github.com/ModChain/x509kit/csprng"
	"github.com/ModChain/x509kit/hashalgo"
)

const pssTrailerField = 0xBC

// emsaPSSEncode implements EMSA-PSS-ENCODE (RFC 8017 §9.1.1). modBits is
// the bit length of the modulus; saltLen is the caller-chosen salt length.
func emsaPSSEncode(rng *csprng.Locker, alg hashalgo.Algorithm, mHash []byte, modBits, saltLen int) ([]byte, error) {
	hLen := alg.Size()
	emBits := modBits - 1
	emLen := (emBits + 7) / 8
	if emLen < hLen+saltLen+2 {
		return nil, makeError(ErrMessageTooLong, "intended encoded message length too short for this hash and salt length")
	}

	salt := make([]byte, saltLen)
	if saltLen > 0 {
		if _, err := rng.Read(salt); err != nil {
			return nil, err
		}
	}

	mPrime := make([]byte, 0, 8+hLen+saltLen)
	mPrime = append(mPrime, make([]byte, 8)...)
	mPrime = append(mPrime, mHash...)
	mPrime = append(mPrime, salt...)

	h, err := hashalgo.Init(alg)
	if err != nil {
		return nil, makeError(ErrUnknownAlgorithm, err.Error())
	}
	h.Update(mPrime)
	hDigest := h.Final()

	psLen := emLen - saltLen - hLen - 2
	db := make([]byte, 0, psLen+1+saltLen)
	db = append(db, make([]byte, psLen)...)
	db = append(db, 0x01)
	db = append(db, salt...)

	dbMask, err := mgf1(hDigest, len(db), alg)
	if err != nil {
		return nil, err
	}
	maskedDB := append([]byte(nil), db...)
	xorBytes(maskedDB, dbMask)
	clearLeftmostBits(maskedDB, 8*emLen-emBits)

	em := make([]byte, 0, emLen)
	em = append(em, maskedDB...)
	em = append(em, hDigest...)
	em = append(em, pssTrailerField)
	return em, nil
}

// emsaPSSVerify implements EMSA-PSS-VERIFY (RFC 8017 §9.1.2).
func emsaPSSVerify(alg hashalgo.Algorithm, mHash, em []byte, modBits, saltLen int) bool {
	hLen := alg.Size()
	emBits := modBits - 1
	emLen := (emBits + 7) / 8
	if len(em) != emLen || emLen < hLen+saltLen+2 {
		return false
	}
	if em[len(em)-1] != pssTrailerField {
		return false
	}

	maskedDB := em[:emLen-hLen-1]
	hDigest := em[emLen-hLen-1 : emLen-1]

	extraBits := 8*emLen - emBits
	if extraBits > 0 {
		mask := byte(0xFF << uint(8-extraBits))
		if maskedDB[0]&mask != 0 {
			return false
		}
	}

	dbMask, err := mgf1(hDigest, len(maskedDB), alg)
	if err != nil {
		return false
	}
	db := append([]byte(nil), maskedDB...)
	xorBytes(db, dbMask)
	clearLeftmostBits(db, extraBits)

	psLen := emLen - saltLen - hLen - 2
	for i := 0; i < psLen; i++ {
		if db[i] != 0x00 {
			return false
		}
	}
	if db[psLen] != 0x01 {
		return false
	}
	salt := db[psLen+1:]

	mPrime := make([]byte, 0, 8+hLen+saltLen)
	mPrime = append(mPrime, make([]byte, 8)...)
	mPrime = append(mPrime, mHash...)
	mPrime = append(mPrime, salt...)

	h, err := hashalgo.Init(alg)
	if err != nil {
		return false
	}
	h.Update(mPrime)
	want := h.Final()

	diff := byte(0)
	for i := range want {
		diff |= want[i] ^ hDigest[i]
	}
	return diff == 0
}

func clearLeftmostBits(b []byte, n int) {
	if n <= 0 || len(b) == 0 {
		return
	}
	b[0] &= 0xFF >> uint(n)
}

// PssSign signs mHash (the hash of the message under alg) using priv,
// drawing its salt of saltLen bytes from rng.
func PssSign(rng *csprng.Locker, priv *PrivateKey, alg hashalgo.Algorithm, mHash []byte, saltLen int) ([]byte, error) {
	k := (priv.Width() + 7) / 8
	em, err := emsaPSSEncode(rng, alg, mHash, priv.Width(), saltLen)
	if err != nil {
		return nil, err
	}
	m := os2ip(em)
	s := rsasp1(priv, m)
	return i2osp(s, k)
}

// PssVerify reports whether sig is a valid PSS signature over mHash under
// pub with the given salt length.
func PssVerify(pub *PublicKey, alg hashalgo.Algorithm, mHash, sig []byte, saltLen int) bool {
	k := (pub.Width() + 7) / 8
	if len(sig) != k {
		return false
	}
	s := os2ip(sig)
	if s.Big().Cmp(pub.N.Big()) >= 0 {
		return false
	}
	m := rsavp1(pub, s)
	emLen := (pub.Width() - 1 + 7) / 8
	em, err := i2osp(m, emLen)
	if err != nil {
		return false
	}
	return emsaPSSVerify(alg, mHash, em, pub.Width(), saltLen)
}
