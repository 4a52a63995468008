// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package x509cert implements the certificate model built on top of this
toolkit's der, bigint, rsakey and ecc packages: SubjectPublicKeyInfo,
RSA/EC key codecs, directory strings, relative distinguished names,
general names, the X.509 v3 extension family, the certificate itself, and
PEM certificate bundles.

This is the one package that exercises every other package in the module
at once: a Cert's signature is verified by hashing its TBS bytes with
hashalgo and checking the result with rsakey or ecc, its keys and
extensions are read and written through der, and the bignums threading
through it all — serial numbers, RSA moduli, EC scalars — are bigint.Ints.
*/
package x509cert

import (
	"bytes"
	"time"

	"github.com/ModChain/x509kit/bigint"
	"github.com/ModChain/x509kit/csprng"
	"github.com/ModChain/x509kit/der"
	"github.com/ModChain/x509kit/ecc"
	"github.com/ModChain/x509kit/hashalgo"
	"github.com/ModChain/x509kit/rsakey"
)

// X509SignatureAlgo identifies the signature algorithm a certificate was
// (or will be) signed with. Algorithms outside this set parse as Unknown.
type X509SignatureAlgo int

const (
	SigUnknown X509SignatureAlgo = iota
	SigRsaMD5
	SigRsaSHA1
	SigRsaSHA224
	SigRsaSHA256
	SigRsaSHA384
	SigRsaSHA512
	SigEcdsaSHA1
	SigEcdsaSHA224
	SigEcdsaSHA256
	SigEcdsaSHA384
	SigEcdsaSHA512
)

var sigAlgoOIDs = map[X509SignatureAlgo][]uint32{
	SigRsaMD5:      oidRsaMD5,
	SigRsaSHA1:     oidRsaSHA1,
	SigRsaSHA224:   oidRsaSHA224,
	SigRsaSHA256:   oidRsaSHA256,
	SigRsaSHA384:   oidRsaSHA384,
	SigRsaSHA512:   oidRsaSHA512,
	SigEcdsaSHA1:   oidEcdsaSHA1,
	SigEcdsaSHA224: oidEcdsaSHA224,
	SigEcdsaSHA256: oidEcdsaSHA256,
	SigEcdsaSHA384: oidEcdsaSHA384,
	SigEcdsaSHA512: oidEcdsaSHA512,
}

func sigAlgoByOID(oid []uint32) X509SignatureAlgo {
	for a, want := range sigAlgoOIDs {
		if oidEqual(want, oid) {
			return a
		}
	}
	return SigUnknown
}

func (a X509SignatureAlgo) hash() (hashalgo.Algorithm, bool) {
	switch a {
	case SigRsaMD5:
		return hashalgo.MD5, true
	case SigRsaSHA1, SigEcdsaSHA1:
		return hashalgo.SHA1, true
	case SigRsaSHA224, SigEcdsaSHA224:
		return hashalgo.SHA224, true
	case SigRsaSHA256, SigEcdsaSHA256:
		return hashalgo.SHA256, true
	case SigRsaSHA384, SigEcdsaSHA384:
		return hashalgo.SHA384, true
	case SigRsaSHA512, SigEcdsaSHA512:
		return hashalgo.SHA512, true
	default:
		return 0, false
	}
}

func (a X509SignatureAlgo) isRSA() bool {
	switch a {
	case SigRsaMD5, SigRsaSHA1, SigRsaSHA224, SigRsaSHA256, SigRsaSHA384, SigRsaSHA512:
		return true
	default:
		return false
	}
}

func (a X509SignatureAlgo) isECDSA() bool {
	switch a {
	case SigEcdsaSHA1, SigEcdsaSHA224, SigEcdsaSHA256, SigEcdsaSHA384, SigEcdsaSHA512:
		return true
	default:
		return false
	}
}

// Cert is an X.509 v3 certificate, restricted to version 3 (earlier
// versions fail to parse):
//
//	Certificate ::= SEQUENCE {
//	    tbsCertificate       TBSCertificate,
//	    signatureAlgorithm   AlgorithmIdentifier,
//	    signatureValue       BIT STRING }
//
//	TBSCertificate ::= SEQUENCE {
//	    version         [0] EXPLICIT Version DEFAULT v1,
//	    serialNumber        CertificateSerialNumber,
//	    signature           AlgorithmIdentifier,
//	    issuer              Name,
//	    validity            Validity,
//	    subject             Name,
//	    subjectPublicKeyInfo SubjectPublicKeyInfo,
//	    issuerUniqueID  [1] IMPLICIT UniqueIdentifier OPTIONAL,
//	    subjectUniqueID [2] IMPLICIT UniqueIdentifier OPTIONAL,
//	    extensions      [3] EXPLICIT Extensions OPTIONAL }
type Cert struct {
	SerialNumber *bigint.Int
	Issuer       RDNSequence
	ValidStart   time.Time
	ValidEnd     time.Time
	Subject      RDNSequence
	PublicKey    PublicKeyCert

	IssuerUniqueID  []byte // nil if absent
	SubjectUniqueID []byte // nil if absent
	Extensions      []Extension

	// CertBin is the exact TBSCertificate bytes most recently parsed or
	// dumped: the range the signature is computed over.
	CertBin []byte

	SigAlgoOID    []uint32
	SigAlgoParams *der.Element // nil if absent
	Signature     []byte       // raw signatureValue octets
}

// FindExtension returns the first extension with the given OID, if any.
func (c *Cert) FindExtension(oid []uint32) (Extension, bool) {
	for _, e := range c.Extensions {
		if oidEqual(e.OID, oid) {
			return e, true
		}
	}
	return Extension{}, false
}

// SigAlgo returns the signature algorithm sig_algo_oid names, or
// SigUnknown if it isn't one of the recognized RSA/ECDSA algorithms.
func (c *Cert) SigAlgo() X509SignatureAlgo {
	return sigAlgoByOID(c.SigAlgoOID)
}

// Parse reads a Cert from a parsed top-level Certificate element, per
// RFC 5280's outer Certificate/TBSCertificate layout.
func Parse(root *der.Element) (*Cert, error) {
	if !root.Is(der.TagSequence) || len(root.Children()) != 3 {
		return nil, makeError(ErrUnsupportedVersion, "Certificate must be a three-element SEQUENCE")
	}
	tbs := root.Children()[0]
	sigAlgID := root.Children()[1]
	sigValue := root.Children()[2]

	c := &Cert{}

	tbsBin, err := tbs.Dump()
	if err != nil {
		return nil, err
	}
	c.CertBin = tbsBin

	if !sigAlgID.Is(der.TagSequence) || len(sigAlgID.Children()) < 1 {
		return nil, makeError(ErrUnsupportedVersion, "Certificate.signatureAlgorithm is malformed")
	}
	oid, err := sigAlgID.Children()[0].OID()
	if err != nil {
		return nil, makeError(ErrUnsupportedVersion, "Certificate.signatureAlgorithm.algorithm is not an OID")
	}
	c.SigAlgoOID = oid
	if len(sigAlgID.Children()) == 2 {
		c.SigAlgoParams = sigAlgID.Children()[1]
	}

	if err := c.parseTBS(tbs, sigAlgID); err != nil {
		return nil, err
	}

	sigBits, err := sigValue.OctetAlignedBitString()
	if err != nil {
		return nil, makeError(ErrUnsupportedVersion, "Certificate.signatureValue is not an octet-aligned BIT STRING: "+err.Error())
	}
	c.Signature = sigBits

	return c, nil
}

// parseTBS parses tbs into c, checking its embedded signature
// AlgorithmIdentifier against outerSigAlgID (the Certificate-level
// signatureAlgorithm already parsed by Parse).
func (c *Cert) parseTBS(tbs *der.Element, outerSigAlgID *der.Element) error {
	if !tbs.Is(der.TagSequence) {
		return makeError(ErrUnsupportedVersion, "TBSCertificate must be a SEQUENCE")
	}
	fields := tbs.Children()
	if len(fields) == 0 {
		return makeError(ErrUnsupportedVersion, "TBSCertificate is empty")
	}

	idx := 0
	if fields[idx].IsContextTag(0) {
		verElem, err := der.UnwrapExplicit(fields[idx], 0)
		if err != nil {
			return makeError(ErrUnsupportedVersion, err.Error())
		}
		version, err := verElem.Integer()
		if err != nil {
			return makeError(ErrUnsupportedVersion, "version is not an INTEGER")
		}
		if version.Cmp(bigint.NewInt(2)) != 0 {
			return makeError(ErrUnsupportedVersion, "only version 3 (value 2) certificates are supported")
		}
		idx++
	} else {
		// No explicit [0] version tag means a v1 certificate (the
		// DEFAULT), which this package also rejects.
		return makeError(ErrUnsupportedVersion, "only version 3 (value 2) certificates are supported")
	}

	if idx >= len(fields) {
		return makeError(ErrUnsupportedVersion, "TBSCertificate is missing serialNumber")
	}
	serial, err := fields[idx].Integer()
	if err != nil {
		return makeError(ErrUnsupportedVersion, "serialNumber is not an INTEGER")
	}
	c.SerialNumber = serial
	idx++

	if idx >= len(fields) || !fields[idx].Is(der.TagSequence) {
		return makeError(ErrUnsupportedVersion, "TBSCertificate is missing signature AlgorithmIdentifier")
	}
	if !algorithmIdentifiersEqual(fields[idx], outerSigAlgID) {
		return makeError(ErrSignatureAlgorithmMismatch, "TBSCertificate.signature does not match Certificate.signatureAlgorithm")
	}
	idx++

	if idx >= len(fields) {
		return makeError(ErrUnsupportedVersion, "TBSCertificate is missing issuer")
	}
	issuer, err := ParseRDNSequence(fields[idx])
	if err != nil {
		return err
	}
	c.Issuer = issuer
	idx++

	if idx >= len(fields) || !fields[idx].Is(der.TagSequence) || len(fields[idx].Children()) != 2 {
		return makeError(ErrUnsupportedVersion, "TBSCertificate.validity must be a two-element SEQUENCE")
	}
	start, err := parseTime(fields[idx].Children()[0])
	if err != nil {
		return err
	}
	end, err := parseTime(fields[idx].Children()[1])
	if err != nil {
		return err
	}
	c.ValidStart, c.ValidEnd = start, end
	idx++

	if idx >= len(fields) {
		return makeError(ErrUnsupportedVersion, "TBSCertificate is missing subject")
	}
	subject, err := ParseRDNSequence(fields[idx])
	if err != nil {
		return err
	}
	c.Subject = subject
	idx++

	if idx >= len(fields) {
		return makeError(ErrUnsupportedVersion, "TBSCertificate is missing subjectPublicKeyInfo")
	}
	if err := c.PublicKey.Parse(fields[idx]); err != nil {
		return err
	}
	idx++

	for idx < len(fields) && fields[idx].IsContextTag(1) {
		b, err := der.UnwrapImplicit(fields[idx], 1, der.TagBitString)
		if err != nil {
			return makeError(ErrUnsupportedVersion, "issuerUniqueID: "+err.Error())
		}
		bits, err := b.OctetAlignedBitString()
		if err != nil {
			return makeError(ErrUnsupportedVersion, "issuerUniqueID: "+err.Error())
		}
		c.IssuerUniqueID = bits
		idx++
	}
	for idx < len(fields) && fields[idx].IsContextTag(2) {
		b, err := der.UnwrapImplicit(fields[idx], 2, der.TagBitString)
		if err != nil {
			return makeError(ErrUnsupportedVersion, "subjectUniqueID: "+err.Error())
		}
		bits, err := b.OctetAlignedBitString()
		if err != nil {
			return makeError(ErrUnsupportedVersion, "subjectUniqueID: "+err.Error())
		}
		c.SubjectUniqueID = bits
		idx++
	}
	if idx < len(fields) && fields[idx].IsContextTag(3) {
		extsElem, err := der.UnwrapExplicit(fields[idx], 3)
		if err != nil {
			return makeError(ErrUnsupportedVersion, "extensions: "+err.Error())
		}
		if !extsElem.Is(der.TagSequence) {
			return makeError(ErrUnsupportedVersion, "extensions must be a SEQUENCE")
		}
		for _, e := range extsElem.Children() {
			ext, err := ParseExtension(e)
			if err != nil {
				return err
			}
			c.Extensions = append(c.Extensions, ext)
		}
		idx++
	}

	if idx != len(fields) {
		return makeError(ErrUnsupportedVersion, "TBSCertificate has unrecognized trailing fields")
	}
	return nil
}

func parseTime(e *der.Element) (time.Time, error) {
	switch e.Tag() {
	case der.TagUTCTime:
		return e.UTCTime()
	case der.TagGeneralizedTime:
		return e.GeneralizedTime()
	default:
		return time.Time{}, makeError(ErrUnsupportedVersion, "Time must be a UTCTime or GeneralizedTime")
	}
}

func dumpTime(t time.Time) *der.Element {
	if t.Year() >= 1950 && t.Year() <= 2049 {
		return der.NewUTCTime(t)
	}
	return der.NewGeneralizedTime(t)
}

// sigHash computes the hash of c.CertBin under alg.
func (c *Cert) sigHash(alg hashalgo.Algorithm) ([]byte, error) {
	h, err := hashalgo.Init(alg)
	if err != nil {
		return nil, err
	}
	h.Update(c.CertBin)
	return h.Final(), nil
}

// Validate reports whether issuer's public key validates c's signature:
// the private key associated with issuer's public key was used to sign
// c. A mismatch, an unrecognized signature algorithm, or a signature
// algorithm inconsistent with issuer's key type all report false rather
// than an error, matching every other verify operation in this toolkit.
func (c *Cert) Validate(issuer *Cert) bool {
	alg := c.SigAlgo()
	digest, ok := alg.hash()
	if !ok {
		return false
	}
	hash, err := c.sigHash(digest)
	if err != nil {
		return false
	}

	switch {
	case alg.isRSA():
		if issuer.PublicKey.Type() != KeyAlgoRSA {
			return false
		}
		pub, err := (RsaPublicKeyCert{}).parsePublicKeyInfo(&issuer.PublicKey)
		if err != nil {
			return false
		}
		return rsakey.Pkcs1v15Verify(pub, digest, hash, c.Signature)
	case alg.isECDSA():
		pt, err := issuer.PublicKey.ECPoint()
		if err != nil {
			return false
		}
		sig, err := parseECDSASignature(c.Signature)
		if err != nil {
			return false
		}
		return ecc.Verify(pt, hash, sig)
	default:
		return false
	}
}

// ValidateSelf reports whether c is a self-signed certificate: its own
// public key validates its own signature. Root certificates ("trust
// anchors") are self-signed.
func (c *Cert) ValidateSelf() bool {
	return c.Validate(c)
}

// parsePublicKeyInfo decodes p's subjectPublicKey as an RSA public key.
func (RsaPublicKeyCert) parsePublicKeyInfo(p *PublicKeyCert) (*rsakey.PublicKey, error) {
	e, _, err := der.ParseElement(p.PublicKey, 0)
	if err != nil {
		return nil, err
	}
	return (RsaPublicKeyCert{}).Parse(e)
}

func parseECDSASignature(sig []byte) (*ecc.Signature, error) {
	e, _, err := der.ParseElement(sig, 0)
	if err != nil {
		return nil, err
	}
	if !e.Is(der.TagSequence) || len(e.Children()) != 2 {
		return nil, makeError(ErrInvalidPublicKey, "ECDSA-Sig-Value must be a two-element SEQUENCE")
	}
	r, err := e.Children()[0].Integer()
	if err != nil {
		return nil, err
	}
	s, err := e.Children()[1].Integer()
	if err != nil {
		return nil, err
	}
	return &ecc.Signature{R: r, S: s}, nil
}

func dumpECDSASignature(sig *ecc.Signature) ([]byte, error) {
	return der.NewSequence(der.NewInteger(sig.R), der.NewInteger(sig.S)).Dump()
}

// buildTBS assembles and caches the TBSCertificate bytes for c, using
// sigAlgoOID/sigAlgoParams as the embedded signature AlgorithmIdentifier
// (which must match the outer Certificate.signatureAlgorithm).
func (c *Cert) buildTBS(sigAlgoOID []uint32, sigAlgoParams *der.Element) ([]byte, error) {
	verElem := der.WrapExplicit(0, der.NewInteger(bigint.NewInt(2)))

	var sigAlgChildren []*der.Element
	oidElem, err := der.NewOID(sigAlgoOID)
	if err != nil {
		return nil, err
	}
	sigAlgChildren = append(sigAlgChildren, oidElem)
	if sigAlgoParams != nil {
		sigAlgChildren = append(sigAlgChildren, sigAlgoParams)
	}
	sigAlgID := der.NewSequence(sigAlgChildren...)

	issuer, err := c.Issuer.Dump()
	if err != nil {
		return nil, err
	}
	validity := der.NewSequence(dumpTime(c.ValidStart), dumpTime(c.ValidEnd))
	subject, err := c.Subject.Dump()
	if err != nil {
		return nil, err
	}
	pubKeyInfo, err := c.PublicKey.Dump()
	if err != nil {
		return nil, err
	}

	children := []*der.Element{
		verElem,
		der.NewInteger(c.SerialNumber),
		sigAlgID,
		issuer,
		validity,
		subject,
		pubKeyInfo,
	}
	if c.IssuerUniqueID != nil {
		children = append(children, der.WrapImplicit(1, der.NewBitString(c.IssuerUniqueID, len(c.IssuerUniqueID)*8)))
	}
	if c.SubjectUniqueID != nil {
		children = append(children, der.WrapImplicit(2, der.NewBitString(c.SubjectUniqueID, len(c.SubjectUniqueID)*8)))
	}
	if len(c.Extensions) > 0 {
		extChildren := make([]*der.Element, 0, len(c.Extensions))
		for _, ext := range c.Extensions {
			e, err := ext.Dump()
			if err != nil {
				return nil, err
			}
			extChildren = append(extChildren, e)
		}
		children = append(children, der.WrapExplicit(3, der.NewSequence(extChildren...)))
	}

	return der.NewSequence(children...).Dump()
}

// SignAndDumpRSA signs c using priv under sigAlgo (which must be an RSA
// variant), setting c.SigAlgoOID/CertBin/Signature, and returns the
// complete Certificate element ready to dump or wrap in PEM.
func (c *Cert) SignAndDumpRSA(priv *rsakey.PrivateKey, sigAlgo X509SignatureAlgo) (*der.Element, error) {
	if !sigAlgo.isRSA() {
		return nil, makeError(ErrUnknownSignatureAlgorithm, "sigAlgo is not an RSA signature algorithm")
	}
	digest, _ := sigAlgo.hash()
	oid := sigAlgoOIDs[sigAlgo]

	tbsBin, err := c.buildTBS(oid, der.NewNull())
	if err != nil {
		return nil, err
	}
	c.CertBin = tbsBin
	c.SigAlgoOID = oid
	c.SigAlgoParams = der.NewNull()

	h, err := hashalgo.Init(digest)
	if err != nil {
		return nil, err
	}
	h.Update(tbsBin)
	hash := h.Final()

	sig, err := rsakey.Pkcs1v15Sign(priv, digest, hash)
	if err != nil {
		return nil, err
	}
	c.Signature = sig

	tbsElem, _, err := der.ParseElement(tbsBin, 0)
	if err != nil {
		return nil, err
	}
	sigAlgID := der.NewSequence(mustOID(oid), der.NewNull())
	return der.NewSequence(tbsElem, sigAlgID, der.NewBitString(sig, len(sig)*8)), nil
}

// SignAndDumpECDSA signs c using regPriv (the certificate subject's
// regular private scalar is irrelevant here; regPriv is the issuing
// key) and a fresh ephemeral scalar drawn from rng, under sigAlgo (which
// must be an ECDSA variant on curve), setting
// c.SigAlgoOID/CertBin/Signature, and returns the complete Certificate
// element.
func (c *Cert) SignAndDumpECDSA(rng *csprng.Locker, curve ecc.Curve, regPriv *bigint.Int, sigAlgo X509SignatureAlgo) (*der.Element, error) {
	if !sigAlgo.isECDSA() {
		return nil, makeError(ErrUnknownSignatureAlgorithm, "sigAlgo is not an ECDSA signature algorithm")
	}
	digest, _ := sigAlgo.hash()
	oid := sigAlgoOIDs[sigAlgo]

	tbsBin, err := c.buildTBS(oid, nil)
	if err != nil {
		return nil, err
	}
	c.CertBin = tbsBin
	c.SigAlgoOID = oid
	c.SigAlgoParams = nil

	h, err := hashalgo.Init(digest)
	if err != nil {
		return nil, err
	}
	h.Update(tbsBin)
	hash := h.Final()

	ephemeral, _, err := ecc.GenerateKey(rng, curve)
	if err != nil {
		return nil, err
	}
	if ephemeral.Cmp(regPriv) == 0 {
		return nil, makeError(ErrInconsistentKeys, "drew an ephemeral scalar equal to the regular private scalar; sign again")
	}
	sig, err := ecc.Sign(curve, regPriv, ephemeral, hash)
	if err != nil {
		return nil, makeError(ErrInconsistentKeys, err.Error())
	}
	sigBytes, err := dumpECDSASignature(sig)
	if err != nil {
		return nil, err
	}
	c.Signature = sigBytes

	tbsElem, _, err := der.ParseElement(tbsBin, 0)
	if err != nil {
		return nil, err
	}
	sigAlgID := der.NewSequence(mustOID(oid))
	return der.NewSequence(tbsElem, sigAlgID, der.NewBitString(sigBytes, len(sigBytes)*8)), nil
}

// algorithmIdentifiersEqual compares two parsed AlgorithmIdentifier
// SEQUENCEs by algorithm OID and by raw parameters bytes (DER's one valid
// encoding per value makes a byte comparison exact here).
func algorithmIdentifiersEqual(a, b *der.Element) bool {
	if !a.Is(der.TagSequence) || !b.Is(der.TagSequence) {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) < 1 || len(bc) < 1 {
		return false
	}
	aOID, err := ac[0].OID()
	if err != nil {
		return false
	}
	bOID, err := bc[0].OID()
	if err != nil {
		return false
	}
	if !oidEqual(aOID, bOID) {
		return false
	}
	if len(ac) != len(bc) {
		return false
	}
	if len(ac) == 2 {
		aParams, err := ac[1].Dump()
		if err != nil {
			return false
		}
		bParams, err := bc[1].Dump()
		if err != nil {
			return false
		}
		if !bytes.Equal(aParams, bParams) {
			return false
		}
	}
	return true
}

func mustOID(arcs []uint32) *der.Element {
	e, err := der.NewOID(arcs)
	if err != nil {
		// Every OID this package builds from is a compile-time constant
		// known to have arcs[0] <= 2 and arcs[1] <= 39 for arc0 < 2; a
		// failure here would mean one of this file's own oid.go tables is
		// wrong, not a runtime condition a caller can act on.
		panic(err)
	}
	return e
}
