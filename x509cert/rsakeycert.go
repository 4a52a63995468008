// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x509cert

import (
	"github.com/ModChain/x509kit/bigint"
	"github.com/ModChain/x509kit/der"
	"github.com/ModChain/x509kit/rsakey"
)

// RsaPublicKeyCert codecs RFC 2437 §11.1.1's RSAPublicKey:
//
//	RSAPublicKey ::= SEQUENCE {
//	    modulus           INTEGER,
//	    publicExponent    INTEGER }
type RsaPublicKeyCert struct{}

// Parse reads an RSAPublicKey element into key.
func (RsaPublicKeyCert) Parse(e *der.Element) (*rsakey.PublicKey, error) {
	if !e.Is(der.TagSequence) || len(e.Children()) != 2 {
		return nil, makeError(ErrInvalidPublicKey, "RSAPublicKey must be a two-element SEQUENCE")
	}
	n, err := e.Children()[0].Integer()
	if err != nil {
		return nil, makeError(ErrInvalidPublicKey, "RSAPublicKey.modulus: "+err.Error())
	}
	pe, err := e.Children()[1].Integer()
	if err != nil {
		return nil, makeError(ErrInvalidPublicKey, "RSAPublicKey.publicExponent: "+err.Error())
	}
	return &rsakey.PublicKey{N: n, E: pe}, nil
}

// Dump serializes key to an RSAPublicKey element.
func (RsaPublicKeyCert) Dump(key *rsakey.PublicKey) *der.Element {
	return der.NewSequence(der.NewInteger(key.N), der.NewInteger(key.E))
}

// RsaPrivateKeyCert codecs RFC 2437 §11.1.2's RSAPrivateKey, version 0
// (no otherPrimeInfos):
//
//	RSAPrivateKey ::= SEQUENCE {
//	    version           INTEGER,  -- 0
//	    modulus           INTEGER,  -- n
//	    publicExponent    INTEGER,  -- e
//	    privateExponent   INTEGER,  -- d
//	    prime1            INTEGER,  -- p
//	    prime2            INTEGER,  -- q
//	    exponent1         INTEGER,  -- d mod (p-1)
//	    exponent2         INTEGER,  -- d mod (q-1)
//	    coefficient       INTEGER } -- (inverse of q) mod p
type RsaPrivateKeyCert struct{}

// Parse reads an RSAPrivateKey element into a rsakey.PrivateKey.
func (RsaPrivateKeyCert) Parse(e *der.Element) (*rsakey.PrivateKey, error) {
	if !e.Is(der.TagSequence) || len(e.Children()) != 9 {
		return nil, makeError(ErrInvalidPrivateKey, "RSAPrivateKey must be a nine-element SEQUENCE (version 0, no otherPrimeInfos)")
	}
	c := e.Children()
	version, err := c[0].Integer()
	if err != nil {
		return nil, makeError(ErrInvalidPrivateKey, "RSAPrivateKey.version: "+err.Error())
	}
	if version.Cmp(bigint.NewInt(0)) != 0 {
		return nil, makeError(ErrInvalidPrivateKey, "RSAPrivateKey.version must be 0")
	}
	ints := make([]*bigint.Int, 8)
	for i := 0; i < 8; i++ {
		v, err := c[i+1].Integer()
		if err != nil {
			return nil, makeError(ErrInvalidPrivateKey, "RSAPrivateKey field is not an INTEGER: "+err.Error())
		}
		ints[i] = v
	}
	priv := &rsakey.PrivateKey{
		PublicKey: rsakey.PublicKey{N: ints[0], E: ints[1]},
		D:         ints[2],
		P:         ints[3],
		Q:         ints[4],
		Dp:        ints[5],
		Dq:        ints[6],
		Qinv:      ints[7],
	}
	return priv, nil
}

// Dump serializes priv to a version-0 RSAPrivateKey element.
func (RsaPrivateKeyCert) Dump(priv *rsakey.PrivateKey) *der.Element {
	return der.NewSequence(
		der.NewInteger(bigint.NewInt(0)),
		der.NewInteger(priv.N),
		der.NewInteger(priv.E),
		der.NewInteger(priv.D),
		der.NewInteger(priv.P),
		der.NewInteger(priv.Q),
		der.NewInteger(priv.Dp),
		der.NewInteger(priv.Dq),
		der.NewInteger(priv.Qinv),
	)
}
