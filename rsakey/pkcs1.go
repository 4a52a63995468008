// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rsakey

import (
	"github.com/ModChain/x509kit/der"
	"github.com/ModChain/x509kit/hashalgo"
)

// digestAlgorithmOID returns the AlgorithmIdentifier OID arcs for a hash
// algorithm's DigestInfo, per RFC 8017 appendix A.2.4 (and, for sm3, the
// OID GM/T 0006 registers for it).
func digestAlgorithmOID(alg hashalgo.Algorithm) ([]uint32, error) {
	switch alg {
	case hashalgo.MD5:
		return []uint32{1, 2, 840, 113549, 2, 5}, nil
	case hashalgo.SHA1:
		return []uint32{1, 3, 14, 3, 2, 26}, nil
	case hashalgo.SHA224:
		return []uint32{2, 16, 840, 1, 101, 3, 4, 2, 4}, nil
	case hashalgo.SHA256:
		return []uint32{2, 16, 840, 1, 101, 3, 4, 2, 1}, nil
	case hashalgo.SHA384:
		return []uint32{2, 16, 840, 1, 101, 3, 4, 2, 2}, nil
	case hashalgo.SHA512:
		return []uint32{2, 16, 840, 1, 101, 3, 4, 2, 3}, nil
	case hashalgo.SHA512_224:
		return []uint32{2, 16, 840, 1, 101, 3, 4, 2, 5}, nil
	case hashalgo.SHA512_256:
		return []uint32{2, 16, 840, 1, 101, 3, 4, 2, 6}, nil
	case hashalgo.SM3:
		return []uint32{1, 2, 156, 10197, 1, 401}, nil
	default:
		return nil, makeError(ErrUnknownAlgorithm, "no DigestInfo OID for this hash algorithm")
	}
}

// digestInfo builds the DigestInfo SEQUENCE { SEQUENCE { algorithm OID,
// NULL }, digest OCTET STRING } EMSA-PKCS1-v1_5 prefixes the digest with.
func digestInfo(alg hashalgo.Algorithm, digest []byte) ([]byte, error) {
	oid, err := digestAlgorithmOID(alg)
	if err != nil {
		return nil, err
	}
	oidElem, err := der.NewOID(oid)
	if err != nil {
		return nil, err
	}
	algID := der.NewSequence(oidElem, der.NewNull())
	info := der.NewSequence(algID, der.NewOctetString(digest))
	return info.Dump()
}

// emsaPKCS1v15Encode builds the EMSA-PKCS1-v1_5 encoded message:
// 0x00 0x01 0xFF...0xFF 0x00 || DigestInfo, padded to exactly emLen bytes.
func emsaPKCS1v15Encode(alg hashalgo.Algorithm, digest []byte, emLen int) ([]byte, error) {
	t, err := digestInfo(alg, digest)
	if err != nil {
		return nil, err
	}
	if emLen < len(t)+11 {
		return nil, makeError(ErrMessageTooLong, "intended encoded message length too short for this hash's DigestInfo")
	}
	ps := make([]byte, emLen-len(t)-3)
	for i := range ps {
		ps[i] = 0xFF
	}
	em := make([]byte, 0, emLen)
	em = append(em, 0x00, 0x01)
	em = append(em, ps...)
	em = append(em, 0x00)
	em = append(em, t...)
	return em, nil
}

// Pkcs1v15Sign signs digest (the output of hash alg over the message)
// using priv, returning a signature of exactly ceil(width/8) bytes.
func Pkcs1v15Sign(priv *PrivateKey, alg hashalgo.Algorithm, digest []byte) ([]byte, error) {
	k := (priv.Width() + 7) / 8
	em, err := emsaPKCS1v15Encode(alg, digest, k)
	if err != nil {
		return nil, err
	}
	m := os2ip(em)
	if m.Big().Cmp(priv.N.Big()) >= 0 {
		return nil, makeError(ErrMessageTooLong, "encoded message representative is not smaller than the modulus")
	}
	s := rsasp1(priv, m)
	return i2osp(s, k)
}

// Pkcs1v15Verify reports whether sig is a valid PKCS#1 v1.5 signature over
// digest under pub. Like every verification in this package, a value
// mismatch is reported by returning false, never by an error.
func Pkcs1v15Verify(pub *PublicKey, alg hashalgo.Algorithm, digest, sig []byte) bool {
	k := (pub.Width() + 7) / 8
	if len(sig) != k {
		return false
	}
	s := os2ip(sig)
	if s.Big().Cmp(pub.N.Big()) >= 0 {
		return false
	}
	m := rsavp1(pub, s)
	em, err := i2osp(m, k)
	if err != nil {
		return false
	}
	want, err := emsaPKCS1v15Encode(alg, digest, k)
	if err != nil {
		return false
	}
	if len(em) != len(want) {
		return false
	}
	diff := byte(0)
	for i := range em {
		diff |= em[i] ^ want[i]
	}
	return diff == 0
}
