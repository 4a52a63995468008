// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x509cert

import (
	"github.com/ModChain/x509kit/bigint"
	"github.com/ModChain/x509kit/der"
	"github.com/ModChain/x509kit/ecc"
)

// EcParametersCert codecs RFC 3279 §2.3.5's EcpkParameters CHOICE,
// restricted to the namedCurve alternative:
//
//	EcpkParameters ::= CHOICE {
//	    ecParameters  ECParameters,
//	    namedCurve    OBJECT IDENTIFIER,
//	    implicitlyCA  NULL }
//
// Only namedCurve is supported; ecParameters and implicitlyCA are rejected.
type EcParametersCert struct{}

// Parse reads a named-curve OID element and resolves it to a KeyAlgoType.
func (EcParametersCert) Parse(e *der.Element) (KeyAlgoType, error) {
	arcs, err := e.OID()
	if err != nil {
		return KeyAlgoUnknown, makeError(ErrUnknownKeyAlgorithm, "EcpkParameters: only the namedCurve OID alternative is supported")
	}
	c, ok := curveByOID(arcs)
	if !ok {
		return KeyAlgoUnknown, nil
	}
	return keyAlgoForCurve(c), nil
}

// Dump serializes alg's curve OID. alg must be one of the EC variants.
func (EcParametersCert) Dump(alg KeyAlgoType) (*der.Element, error) {
	c, ok := alg.Curve()
	if !ok {
		return nil, makeError(ErrUnknownKeyAlgorithm, "algorithm is not an EC curve variant")
	}
	return der.NewOID(curveOIDs[c])
}

// EcPublicKeyCert codecs the uncompressed SEC1 point encoding RFC 5480
// §2.2 maps onto subjectPublicKey.
type EcPublicKeyCert struct{}

// Parse decodes bits as an uncompressed point on alg's curve.
func (EcPublicKeyCert) Parse(bits []byte, alg KeyAlgoType) (*ecc.Point, error) {
	c, ok := alg.Curve()
	if !ok {
		return nil, makeError(ErrUnknownKeyAlgorithm, "algorithm is not an EC curve variant")
	}
	pt, err := ecc.Decode(c, bits)
	if err != nil {
		return nil, makeError(ErrInvalidPublicKey, "not a valid uncompressed point for this curve: "+err.Error())
	}
	return pt, nil
}

// Dump returns point's uncompressed SEC1 encoding.
func (EcPublicKeyCert) Dump(point *ecc.Point) []byte {
	return point.Encode()
}

// EcPrivateKeyCert codecs RFC 5915's ECPrivateKey:
//
//	ECPrivateKey ::= SEQUENCE {
//	    version        INTEGER { ecPrivkeyVer1(1) },
//	    privateKey     OCTET STRING,
//	    parameters [0] ECParameters {{ NamedCurve }} OPTIONAL,
//	    publicKey  [1] BIT STRING OPTIONAL }
//
// This package requires parameters and publicKey to be present, matching
// the source this model is grounded on ("recommended, so this
// implementation will require them").
type EcPrivateKeyCert struct{}

// Parse reads an ECPrivateKey element, returning the private scalar, the
// curve it names, and the public point.
func (EcPrivateKeyCert) Parse(e *der.Element) (priv *bigint.Int, alg KeyAlgoType, pub *ecc.Point, err error) {
	if !e.Is(der.TagSequence) || len(e.Children()) != 4 {
		return nil, KeyAlgoUnknown, nil, makeError(ErrInvalidPrivateKey, "ECPrivateKey must be a four-element SEQUENCE with parameters and publicKey present")
	}
	c := e.Children()
	version, err := c[0].Integer()
	if err != nil || version.Cmp(bigint.NewInt(1)) != 0 {
		return nil, KeyAlgoUnknown, nil, makeError(ErrInvalidPrivateKey, "ECPrivateKey.version must be 1")
	}
	privBytes, err := c[1].OctetString()
	if err != nil {
		return nil, KeyAlgoUnknown, nil, makeError(ErrInvalidPrivateKey, "ECPrivateKey.privateKey: "+err.Error())
	}
	paramElem, err := der.UnwrapExplicit(c[2], 0)
	if err != nil {
		return nil, KeyAlgoUnknown, nil, makeError(ErrInvalidPrivateKey, "ECPrivateKey.parameters: "+err.Error())
	}
	alg, err = EcParametersCert{}.Parse(paramElem)
	if err != nil {
		return nil, KeyAlgoUnknown, nil, err
	}
	curve, ok := alg.Curve()
	if !ok {
		return nil, KeyAlgoUnknown, nil, makeError(ErrUnknownKeyAlgorithm, "ECPrivateKey names an unrecognized curve")
	}
	pubElem, err := der.UnwrapExplicit(c[3], 1)
	if err != nil {
		return nil, KeyAlgoUnknown, nil, makeError(ErrInvalidPrivateKey, "ECPrivateKey.publicKey: "+err.Error())
	}
	pubBits, err := pubElem.OctetAlignedBitString()
	if err != nil {
		return nil, KeyAlgoUnknown, nil, makeError(ErrInvalidPrivateKey, "ECPrivateKey.publicKey is not an octet-aligned BIT STRING: "+err.Error())
	}
	pub, err = EcPublicKeyCert{}.Parse(pubBits, alg)
	if err != nil {
		return nil, KeyAlgoUnknown, nil, err
	}

	priv = new(bigint.Int).SetUnsigned(privBytes)
	if !ecc.ValidPrivateScalar(curve, priv) {
		return nil, KeyAlgoUnknown, nil, makeError(ErrInvalidPrivateKey, "private scalar is out of range for this curve")
	}
	return priv, alg, pub, nil
}

// Dump serializes priv/alg/pub to an ECPrivateKey element. priv is
// left-padded to ceil(log2(n)/8) bytes, the order's byte width.
func (EcPrivateKeyCert) Dump(priv *bigint.Int, alg KeyAlgoType, pub *ecc.Point) (*der.Element, error) {
	curve, ok := alg.Curve()
	if !ok {
		return nil, makeError(ErrUnknownKeyAlgorithm, "algorithm is not an EC curve variant")
	}
	paramOID, err := EcParametersCert{}.Dump(alg)
	if err != nil {
		return nil, err
	}
	privBytes, err := priv.Unsigned()
	if err != nil {
		return nil, err
	}
	width := curve.ByteSize()
	padded := make([]byte, width)
	copy(padded[width-len(privBytes):], privBytes)

	pubBits := EcPublicKeyCert{}.Dump(pub)
	return der.NewSequence(
		der.NewInteger(bigint.NewInt(1)),
		der.NewOctetString(padded),
		der.WrapExplicit(0, paramOID),
		der.WrapExplicit(1, der.NewBitString(pubBits, len(pubBits)*8)),
	), nil
}
