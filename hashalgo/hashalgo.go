// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package hashalgo provides streaming hash and HMAC support for this toolkit:
a tagged enumeration of the hash algorithms X.509/TLS certificates
reference, plus thin constructors that wire that enumeration to concrete
stdlib and ecosystem implementations.

All of md5, sha1 and the SHA-2 family are implemented by the standard
library, which every crypto-heavy repository in this toolkit's lineage
(decred's secp256k1 and chainhash, go-ethereum, btcd) reaches for directly
rather than vendoring a third-party substitute; sm3 is backed by
github.com/dromara/dongle/hash/sm3, the package paired with SM2/SM3
support elsewhere in the ecosystem.
*/
package hashalgo

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/dromara/dongle/hash/sm3"
)

// Algorithm identifies one of the hash functions this toolkit supports.
type Algorithm int

// The complete set of hash algorithms this package supports.
const (
	MD5 Algorithm = iota
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
	SHA512_224
	SHA512_256
	SM3
)

// String returns the canonical lowercase name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "md5"
	case SHA1:
		return "sha1"
	case SHA224:
		return "sha224"
	case SHA256:
		return "sha256"
	case SHA384:
		return "sha384"
	case SHA512:
		return "sha512"
	case SHA512_224:
		return "sha512/224"
	case SHA512_256:
		return "sha512/256"
	case SM3:
		return "sm3"
	default:
		return "unknown"
	}
}

// Size returns the fixed digest size, in bytes, of the algorithm.
func (a Algorithm) Size() int {
	switch a {
	case MD5:
		return md5.Size
	case SHA1:
		return sha1.Size
	case SHA224:
		return sha256.Size224
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	case SHA512:
		return sha512.Size
	case SHA512_224:
		return sha512.Size224
	case SHA512_256:
		return sha512.Size256
	case SM3:
		return 32
	default:
		return 0
	}
}

// newHash constructs the stdlib/ecosystem hash.Hash backing alg.
func newHash(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA224:
		return sha256.New224(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA512_224:
		return sha512.New512_224(), nil
	case SHA512_256:
		return sha512.New512_256(), nil
	case SM3:
		return sm3.New(), nil
	default:
		return nil, makeError(ErrUnknownAlgorithm, "unknown hash algorithm")
	}
}

// hashFuncFor returns a func() hash.Hash suitable for crypto/hmac.New.
func hashFuncFor(alg Algorithm) (func() hash.Hash, error) {
	// Validate eagerly so HMAC construction fails the same way a direct
	// Hasher construction would for an unrecognized algorithm.
	if _, err := newHash(alg); err != nil {
		return nil, err
	}
	return func() hash.Hash {
		h, _ := newHash(alg)
		return h
	}, nil
}

// Hasher is a streaming one-way hash context.
type Hasher struct {
	alg Algorithm
	h   hash.Hash
}

// Init returns a new Hasher for the given algorithm.
func Init(alg Algorithm) (*Hasher, error) {
	h, err := newHash(alg)
	if err != nil {
		return nil, err
	}
	return &Hasher{alg: alg, h: h}, nil
}

// Algorithm returns the algorithm this Hasher was initialized with.
func (h *Hasher) Algorithm() Algorithm {
	return h.alg
}

// Update feeds more data into the hash.
func (h *Hasher) Update(p []byte) {
	h.h.Write(p)
}

// GetTag returns a non-destructive snapshot of the digest over everything
// written so far, truncated to at most length bytes.  The Hasher remains
// usable for further Update calls afterward.
func (h *Hasher) GetTag(length int) []byte {
	sum := h.h.Sum(nil)
	if length < 0 || length > len(sum) {
		length = len(sum)
	}
	return sum[:length]
}

// Final returns the digest over everything written so far and resets the
// Hasher back to its initial, empty state.
func (h *Hasher) Final() []byte {
	sum := h.h.Sum(nil)
	h.h.Reset()
	return sum
}

// Hmac is a keyed-hash message authentication code context.
type Hmac struct {
	alg Algorithm
	key []byte
	h   hash.Hash
}

// InitHmac returns a new Hmac for the given key and algorithm.
func InitHmac(key []byte, alg Algorithm) (*Hmac, error) {
	hf, err := hashFuncFor(alg)
	if err != nil {
		return nil, err
	}
	return &Hmac{alg: alg, key: key, h: hmac.New(hf, key)}, nil
}

// Update feeds more data into the MAC.
func (m *Hmac) Update(p []byte) {
	m.h.Write(p)
}

// Final returns the MAC over everything written so far.  Unlike Hasher's
// Final, it does not reset state on its own; call Reset explicitly to
// start a new message with the same key.
func (m *Hmac) Final() []byte {
	return m.h.Sum(nil)
}

// Reset restores the Hmac to its state immediately after InitHmac, ready to
// authenticate a new message under the same key.
func (m *Hmac) Reset() {
	m.h.Reset()
}
