// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x509cert

import (
	"github.com/ModChain/x509kit/der"
	"github.com/ModChain/x509kit/ecc"
)

// KeyAlgoType identifies the public key algorithm a PublicKeyCert carries.
type KeyAlgoType int

// The complete set of key algorithms this package recognizes. Anything
// else parses as Unknown rather than failing outright, since an
// unrecognized algorithm in a certificate's public key is common (e.g.
// Ed25519 certificates) and not itself a malformed-DER error.
const (
	KeyAlgoUnknown KeyAlgoType = iota
	KeyAlgoRSA
	KeyAlgoECP192R1
	KeyAlgoECP224R1
	KeyAlgoECP256R1
	KeyAlgoECP384R1
	KeyAlgoECP521R1
)

// String returns the canonical name of the algorithm.
func (a KeyAlgoType) String() string {
	switch a {
	case KeyAlgoRSA:
		return "rsa"
	case KeyAlgoECP192R1:
		return "ec_p192r1"
	case KeyAlgoECP224R1:
		return "ec_p224r1"
	case KeyAlgoECP256R1:
		return "ec_p256r1"
	case KeyAlgoECP384R1:
		return "ec_p384r1"
	case KeyAlgoECP521R1:
		return "ec_p521r1"
	default:
		return "unknown"
	}
}

// Curve returns the ecc.Curve this algorithm names, if it is one of the
// five EC variants.
func (a KeyAlgoType) Curve() (ecc.Curve, bool) {
	switch a {
	case KeyAlgoECP192R1:
		return ecc.P192R1, true
	case KeyAlgoECP224R1:
		return ecc.P224R1, true
	case KeyAlgoECP256R1:
		return ecc.P256R1, true
	case KeyAlgoECP384R1:
		return ecc.P384R1, true
	case KeyAlgoECP521R1:
		return ecc.P521R1, true
	default:
		return 0, false
	}
}

func keyAlgoForCurve(c ecc.Curve) KeyAlgoType {
	switch c {
	case ecc.P192R1:
		return KeyAlgoECP192R1
	case ecc.P224R1:
		return KeyAlgoECP224R1
	case ecc.P256R1:
		return KeyAlgoECP256R1
	case ecc.P384R1:
		return KeyAlgoECP384R1
	case ecc.P521R1:
		return KeyAlgoECP521R1
	default:
		return KeyAlgoUnknown
	}
}

// PublicKeyCert is X.509's SubjectPublicKeyInfo:
//
//	SubjectPublicKeyInfo ::= SEQUENCE {
//	    algorithm            AlgorithmIdentifier,
//	    subjectPublicKey     BIT STRING }
//
//	AlgorithmIdentifier ::= SEQUENCE {
//	    algorithm            OBJECT IDENTIFIER,
//	    parameters           ANY DEFINED BY algorithm OPTIONAL }
type PublicKeyCert struct {
	AlgorithmOID []uint32
	Parameters   *der.Element // nil if absent
	PublicKey    []byte       // the uninterpreted, octet-aligned subjectPublicKey
}

// Type returns the embedded public key's algorithm, or KeyAlgoUnknown if
// AlgorithmOID/Parameters don't match one of the recognized combinations.
func (p *PublicKeyCert) Type() KeyAlgoType {
	if oidEqual(p.AlgorithmOID, oidRSAEncryption) {
		return KeyAlgoRSA
	}
	if oidEqual(p.AlgorithmOID, oidECPublicKey) {
		if p.Parameters == nil {
			return KeyAlgoUnknown
		}
		arcs, err := p.Parameters.OID()
		if err != nil {
			return KeyAlgoUnknown
		}
		if c, ok := curveByOID(arcs); ok {
			return keyAlgoForCurve(c)
		}
	}
	return KeyAlgoUnknown
}

// Parse reads a PublicKeyCert from a parsed SubjectPublicKeyInfo element.
func (p *PublicKeyCert) Parse(e *der.Element) error {
	if !e.Is(der.TagSequence) || len(e.Children()) != 2 {
		return makeError(ErrInvalidPublicKey, "SubjectPublicKeyInfo must be a two-element SEQUENCE")
	}
	algID := e.Children()[0]
	pubBits := e.Children()[1]

	if !algID.Is(der.TagSequence) || len(algID.Children()) < 1 || len(algID.Children()) > 2 {
		return makeError(ErrInvalidPublicKey, "AlgorithmIdentifier must be a one- or two-element SEQUENCE")
	}
	oid, err := algID.Children()[0].OID()
	if err != nil {
		return makeError(ErrInvalidPublicKey, "AlgorithmIdentifier.algorithm is not an OID: "+err.Error())
	}
	p.AlgorithmOID = oid
	p.Parameters = nil
	if len(algID.Children()) == 2 {
		param := algID.Children()[1]
		if !param.IsNull() {
			// Re-parse dump-and-reparse style so Parameters is a
			// structurally self-contained element that doesn't alias the
			// outer AlgorithmIdentifier's backing bytes.
			raw, err := param.Dump()
			if err != nil {
				return err
			}
			reparsed, _, err := der.ParseElement(raw, 0)
			if err != nil {
				return err
			}
			p.Parameters = reparsed
		}
	}

	bits, err := pubBits.OctetAlignedBitString()
	if err != nil {
		return makeError(ErrInvalidPublicKey, "subjectPublicKey is not an octet-aligned BIT STRING: "+err.Error())
	}
	p.PublicKey = bits
	return nil
}

// Dump serializes p to a SubjectPublicKeyInfo element.
func (p *PublicKeyCert) Dump() (*der.Element, error) {
	oidElem, err := der.NewOID(p.AlgorithmOID)
	if err != nil {
		return nil, err
	}
	var algChildren []*der.Element
	algChildren = append(algChildren, oidElem)
	if p.Parameters != nil {
		algChildren = append(algChildren, p.Parameters)
	} else if oidEqual(p.AlgorithmOID, oidRSAEncryption) {
		algChildren = append(algChildren, der.NewNull())
	}
	algID := der.NewSequence(algChildren...)
	pubBits := der.NewBitString(p.PublicKey, len(p.PublicKey)*8)
	return der.NewSequence(algID, pubBits), nil
}

// SetECPoint sets p to carry an uncompressed EC point for the given
// algorithm, which must be one of the five EC variants.
func (p *PublicKeyCert) SetECPoint(alg KeyAlgoType, point *ecc.Point) error {
	c, ok := alg.Curve()
	if !ok {
		return makeError(ErrUnknownKeyAlgorithm, "algorithm is not an EC curve variant")
	}
	oid, ok := curveOIDs[c]
	if !ok {
		return makeError(ErrUnknownKeyAlgorithm, "no OID registered for this curve")
	}
	paramOID, err := der.NewOID(oid)
	if err != nil {
		return err
	}
	p.AlgorithmOID = oidECPublicKey
	p.Parameters = paramOID
	p.PublicKey = point.Encode()
	return nil
}

// ECPoint decodes p's public key as an EC point on alg's curve. It is an
// error if p.Type() isn't an EC variant.
func (p *PublicKeyCert) ECPoint() (*ecc.Point, error) {
	alg := p.Type()
	c, ok := alg.Curve()
	if !ok {
		return nil, makeError(ErrUnknownKeyAlgorithm, "public key algorithm is not a recognized EC curve")
	}
	pt, err := ecc.Decode(c, p.PublicKey)
	if err != nil {
		return nil, makeError(ErrInvalidPublicKey, "subjectPublicKey is not a valid point on the named curve: "+err.Error())
	}
	return pt, nil
}
