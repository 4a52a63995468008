// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rsakey

import (
	"encoding/binary"

	"github.com/ModChain/x509kit/csprng"
	"github.com/ModChain/x509kit/hashalgo"
)

// OaepOptions parameterizes OAEP encryption: the hash used for both the
// label digest and MGF1, and an optional label.
type OaepOptions struct {
	Hash  hashalgo.Algorithm
	Label []byte
}

// mgf1 is the MGF1 mask generation function (RFC 8017 appendix B.2.1): it
// hashes seed concatenated with a 4-byte big-endian counter, repeatedly,
// until it has produced at least maskLen bytes.
func mgf1(seed []byte, maskLen int, alg hashalgo.Algorithm) ([]byte, error) {
	var out []byte
	var counter uint32
	for len(out) < maskLen {
		h, err := hashalgo.Init(alg)
		if err != nil {
			return nil, makeError(ErrUnknownAlgorithm, err.Error())
		}
		h.Update(seed)
		var c [4]byte
		binary.BigEndian.PutUint32(c[:], counter)
		h.Update(c[:])
		out = append(out, h.Final()...)
		counter++
	}
	return out[:maskLen], nil
}

func xorBytes(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// MaxMessageLen returns the largest plaintext OaepEncrypt accepts for a
// key of the given bit width and hash, per RFC 8017 §7.1.1's OAEP bound:
// ceil(width/8) - 2*hash_len - 2.
func MaxMessageLen(width int, alg hashalgo.Algorithm) int {
	k := (width + 7) / 8
	return k - 2*alg.Size() - 2
}

// OaepEncrypt encrypts msg under pub using OAEP padding.
func OaepEncrypt(rng *csprng.Locker, pub *PublicKey, opts OaepOptions, msg []byte) ([]byte, error) {
	k := (pub.Width() + 7) / 8
	hLen := opts.Hash.Size()
	maxLen := k - 2*hLen - 2
	if len(msg) > maxLen {
		return nil, makeError(ErrMessageTooLong, "message exceeds the OAEP maximum for this key and hash")
	}

	h, err := hashalgo.Init(opts.Hash)
	if err != nil {
		return nil, makeError(ErrUnknownAlgorithm, err.Error())
	}
	h.Update(opts.Label)
	lHash := h.Final()

	ps := make([]byte, maxLen-len(msg))
	db := make([]byte, 0, hLen+len(ps)+1+len(msg))
	db = append(db, lHash...)
	db = append(db, ps...)
	db = append(db, 0x01)
	db = append(db, msg...)

	seed := make([]byte, hLen)
	if _, err := rng.Read(seed); err != nil {
		return nil, err
	}

	dbMask, err := mgf1(seed, len(db), opts.Hash)
	if err != nil {
		return nil, err
	}
	maskedDB := append([]byte(nil), db...)
	xorBytes(maskedDB, dbMask)

	seedMask, err := mgf1(maskedDB, hLen, opts.Hash)
	if err != nil {
		return nil, err
	}
	maskedSeed := append([]byte(nil), seed...)
	xorBytes(maskedSeed, seedMask)

	em := make([]byte, 0, k)
	em = append(em, 0x00)
	em = append(em, maskedSeed...)
	em = append(em, maskedDB...)

	m := os2ip(em)
	c := rsaep(&pub.PublicKey, m)
	return i2osp(c, k)
}

// OaepDecrypt decrypts ciphertext under priv using OAEP padding. Per spec
// §4.C, an OAEP-check failure (wrong ciphertext size, or padding that
// doesn't parse after unmasking) is reported as (nil, false) — a plain
// return value, not an error — so a caller can't distinguish a padding
// failure from any other failure and build a padding-oracle side channel
// out of the difference.
func OaepDecrypt(priv *PrivateKey, opts OaepOptions, ciphertext []byte) ([]byte, bool) {
	k := (priv.Width() + 7) / 8
	hLen := opts.Hash.Size()
	if len(ciphertext) != k || k < 2*hLen+2 {
		return nil, false
	}

	c := os2ip(ciphertext)
	if c.Big().Cmp(priv.N.Big()) >= 0 {
		return nil, false
	}
	m := rsadp(priv, c)
	em, err := i2osp(m, k)
	if err != nil {
		return nil, false
	}

	if em[0] != 0x00 {
		return nil, false
	}
	maskedSeed := em[1 : 1+hLen]
	maskedDB := em[1+hLen:]

	seedMask, err := mgf1(maskedDB, hLen, opts.Hash)
	if err != nil {
		return nil, false
	}
	seed := append([]byte(nil), maskedSeed...)
	xorBytes(seed, seedMask)

	dbMask, err := mgf1(seed, len(maskedDB), opts.Hash)
	if err != nil {
		return nil, false
	}
	db := append([]byte(nil), maskedDB...)
	xorBytes(db, dbMask)

	h, err := hashalgo.Init(opts.Hash)
	if err != nil {
		return nil, false
	}
	h.Update(opts.Label)
	lHash := h.Final()

	if len(db) < hLen+1 {
		return nil, false
	}
	gotLHash := db[:hLen]
	ok := true
	for i := range lHash {
		if lHash[i] != gotLHash[i] {
			ok = false
		}
	}

	rest := db[hLen:]
	sepIdx := -1
	for i, b := range rest {
		if b == 0x01 {
			sepIdx = i
			break
		}
		if b != 0x00 {
			ok = false
			break
		}
	}
	if sepIdx < 0 {
		ok = false
	}
	if !ok {
		return nil, false
	}
	return append([]byte(nil), rest[sepIdx+1:]...), true
}
