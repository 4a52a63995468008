// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x509cert

import (
	"github.com/ModChain/x509kit/bigint"
	"github.com/ModChain/x509kit/der"
)

// Extension is the common shape of every X.509 v3 extension:
//
//	Extension ::= SEQUENCE {
//	    extnID      OBJECT IDENTIFIER,
//	    critical    BOOLEAN DEFAULT FALSE,
//	    extnValue   OCTET STRING }
//
// Value holds the extension's parsed, typed contents: one of the typed
// values below (SubjectAlternativeName, IssuerAlternativeName,
// AuthorityKeyIdentifier, SubjectKeyIdentifier, BasicConstraints, KeyUsage,
// ExtendedKeyUsage) for a recognized OID whose extnValue parses, or
// ExtUnknownValue (the raw extnValue octets) otherwise. A critical extension with an unrecognized
// OID still parses successfully — Unknown is true either way a caller
// can check before trusting the certificate.
type Extension struct {
	OID       []uint32
	Critical  bool
	Value     interface{}
	Unknown   bool
	RawValue  []byte // the extnValue octets, always populated
}

// ParseExtension reads one Extension SEQUENCE, interpreting extnValue
// according to extnID when recognized.
func ParseExtension(e *der.Element) (Extension, error) {
	if !e.Is(der.TagSequence) || len(e.Children()) < 2 || len(e.Children()) > 3 {
		return Extension{}, makeError(ErrMalformedExtension, "Extension must be a two- or three-element SEQUENCE")
	}
	c := e.Children()
	oid, err := c[0].OID()
	if err != nil {
		return Extension{}, makeError(ErrMalformedExtension, "Extension.extnID is not an OID: "+err.Error())
	}
	ext := Extension{OID: oid}

	idx := 1
	if len(c) == 3 {
		crit, err := c[1].Bool()
		if err != nil {
			return Extension{}, makeError(ErrMalformedExtension, "Extension.critical: "+err.Error())
		}
		ext.Critical = crit
		idx = 2
	}
	raw, err := c[idx].OctetString()
	if err != nil {
		return Extension{}, makeError(ErrMalformedExtension, "Extension.extnValue: "+err.Error())
	}
	ext.RawValue = raw

	inner, _, parseErr := der.ParseElement(raw, 0)
	switch {
	case oidEqual(oid, oidExtSubjectAlternativeName):
		if parseErr == nil {
			if v, err := parseGeneralNames(inner); err == nil {
				ext.Value = SubjectAlternativeName{Names: v}
				return ext, nil
			}
		}
	case oidEqual(oid, oidExtIssuerAlternativeName):
		if parseErr == nil {
			if v, err := parseGeneralNames(inner); err == nil {
				ext.Value = IssuerAlternativeName{Names: v}
				return ext, nil
			}
		}
	case oidEqual(oid, oidExtAuthorityKeyIdentifier):
		if parseErr == nil {
			if v, err := parseAuthorityKeyIdentifier(inner); err == nil {
				ext.Value = v
				return ext, nil
			}
		}
	case oidEqual(oid, oidExtSubjectKeyIdentifier):
		if parseErr == nil {
			if b, err := inner.OctetString(); err == nil {
				ext.Value = SubjectKeyIdentifier{KeyIdentifier: b}
				return ext, nil
			}
		}
	case oidEqual(oid, oidExtBasicConstraints):
		if parseErr == nil {
			if v, err := parseBasicConstraints(inner); err == nil {
				ext.Value = v
				return ext, nil
			}
		}
	case oidEqual(oid, oidExtKeyUsage):
		if parseErr == nil {
			if v, err := parseKeyUsage(inner); err == nil {
				ext.Value = v
				return ext, nil
			}
		}
	case oidEqual(oid, oidExtExtendedKeyUsage):
		if parseErr == nil {
			if v, err := parseExtendedKeyUsage(inner); err == nil {
				ext.Value = v
				return ext, nil
			}
		}
	}

	// Unrecognized OID, or a recognized OID whose extnValue didn't parse
	// the way RFC 5280 describes: fall back to the raw-octets escape
	// hatch. A critical+unknown extension is still a structurally valid
	// parse; it's the caller's job to decide whether to trust a
	// certificate carrying one.
	ext.Unknown = true
	ext.Value = ExtUnknownValue{Raw: raw}
	return ext, nil
}

// Dump serializes ext back to an Extension SEQUENCE.
func (ext Extension) Dump() (*der.Element, error) {
	oidElem, err := der.NewOID(ext.OID)
	if err != nil {
		return nil, err
	}
	var children []*der.Element
	children = append(children, oidElem)
	if ext.Critical {
		children = append(children, der.NewBoolean(true))
	}
	children = append(children, der.NewOctetString(ext.RawValue))
	return der.NewSequence(children...), nil
}

func parseGeneralNames(e *der.Element) ([]GeneralName, error) {
	if !e.Is(der.TagSequence) {
		return nil, makeError(ErrMalformedExtension, "GeneralNames must be a SEQUENCE")
	}
	names := make([]GeneralName, 0, len(e.Children()))
	for _, c := range e.Children() {
		gn, err := ParseGeneralName(c)
		if err != nil {
			return nil, err
		}
		names = append(names, gn)
	}
	return names, nil
}

func dumpGeneralNames(names []GeneralName) (*der.Element, error) {
	children := make([]*der.Element, 0, len(names))
	for _, n := range names {
		e, err := n.Dump()
		if err != nil {
			return nil, err
		}
		children = append(children, e)
	}
	return der.NewSequence(children...), nil
}

// SubjectAlternativeName is RFC 5280 §4.2.1.6's SubjectAltName extension
// value: SubjectAltName ::= GeneralNames.
type SubjectAlternativeName struct {
	Names []GeneralName
}

// Dump serializes v to the extnValue bytes.
func (v SubjectAlternativeName) Dump() ([]byte, error) {
	e, err := dumpGeneralNames(v.Names)
	if err != nil {
		return nil, err
	}
	return e.Dump()
}

// IssuerAlternativeName is RFC 5280 §4.2.1.7's IssuerAltName extension
// value: IssuerAltName ::= GeneralNames.
type IssuerAlternativeName struct {
	Names []GeneralName
}

// Dump serializes v to the extnValue bytes.
func (v IssuerAlternativeName) Dump() ([]byte, error) {
	e, err := dumpGeneralNames(v.Names)
	if err != nil {
		return nil, err
	}
	return e.Dump()
}

// AuthorityKeyIdentifier is RFC 5280 §4.2.1.1's extension value:
//
//	AuthorityKeyIdentifier ::= SEQUENCE {
//	    keyIdentifier             [0] OCTET STRING           OPTIONAL,
//	    authorityCertIssuer       [1] GeneralNames            OPTIONAL,
//	    authorityCertSerialNumber [2] INTEGER                 OPTIONAL }
type AuthorityKeyIdentifier struct {
	KeyIdentifier             []byte        // nil if absent
	AuthorityCertIssuer       []GeneralName // nil if absent
	AuthorityCertSerialNumber *bigint.Int   // nil if absent
}

func parseAuthorityKeyIdentifier(e *der.Element) (AuthorityKeyIdentifier, error) {
	if !e.Is(der.TagSequence) {
		return AuthorityKeyIdentifier{}, makeError(ErrMalformedExtension, "AuthorityKeyIdentifier must be a SEQUENCE")
	}
	var v AuthorityKeyIdentifier
	for _, c := range e.Children() {
		if c.Class() != der.ClassContext {
			continue
		}
		switch c.Tag() {
		case 0:
			inner, err := der.UnwrapImplicit(c, 0, der.TagOctetString)
			if err != nil {
				return AuthorityKeyIdentifier{}, makeError(ErrMalformedExtension, err.Error())
			}
			b, err := inner.OctetString()
			if err != nil {
				return AuthorityKeyIdentifier{}, makeError(ErrMalformedExtension, err.Error())
			}
			v.KeyIdentifier = b
		case 1:
			seqElem, err := der.UnwrapImplicit(c, 1, der.TagSequence)
			if err != nil {
				return AuthorityKeyIdentifier{}, makeError(ErrMalformedExtension, err.Error())
			}
			names, err := parseGeneralNames(seqElem)
			if err != nil {
				return AuthorityKeyIdentifier{}, err
			}
			v.AuthorityCertIssuer = names
		case 2:
			inner, err := der.UnwrapImplicit(c, 2, der.TagInteger)
			if err != nil {
				return AuthorityKeyIdentifier{}, makeError(ErrMalformedExtension, err.Error())
			}
			n, err := inner.Integer()
			if err != nil {
				return AuthorityKeyIdentifier{}, makeError(ErrMalformedExtension, err.Error())
			}
			v.AuthorityCertSerialNumber = n
		}
	}
	return v, nil
}

// Dump serializes v to the extnValue bytes.
func (v AuthorityKeyIdentifier) Dump() ([]byte, error) {
	var children []*der.Element
	if v.KeyIdentifier != nil {
		children = append(children, der.WrapImplicit(0, der.NewOctetString(v.KeyIdentifier)))
	}
	if v.AuthorityCertIssuer != nil {
		names, err := dumpGeneralNames(v.AuthorityCertIssuer)
		if err != nil {
			return nil, err
		}
		children = append(children, der.WrapImplicit(1, names))
	}
	if v.AuthorityCertSerialNumber != nil {
		children = append(children, der.WrapImplicit(2, der.NewInteger(v.AuthorityCertSerialNumber)))
	}
	return der.NewSequence(children...).Dump()
}

// SubjectKeyIdentifier is RFC 5280 §4.2.1.2's extension value:
// SubjectKeyIdentifier ::= KeyIdentifier (OCTET STRING).
type SubjectKeyIdentifier struct {
	KeyIdentifier []byte
}

// Dump serializes v to the extnValue bytes.
func (v SubjectKeyIdentifier) Dump() ([]byte, error) {
	return der.NewOctetString(v.KeyIdentifier).Dump()
}

// BasicConstraints is RFC 5280 §4.2.1.9's extension value:
//
//	BasicConstraints ::= SEQUENCE {
//	    cA                 BOOLEAN DEFAULT FALSE,
//	    pathLenConstraint  INTEGER (0..MAX) OPTIONAL }
type BasicConstraints struct {
	CA                bool
	PathLenConstraint *bigint.Int // nil if absent
}

func parseBasicConstraints(e *der.Element) (BasicConstraints, error) {
	if !e.Is(der.TagSequence) || len(e.Children()) > 2 {
		return BasicConstraints{}, makeError(ErrMalformedExtension, "BasicConstraints must be a SEQUENCE of at most two elements")
	}
	var v BasicConstraints
	idx := 0
	c := e.Children()
	if idx < len(c) && c[idx].Is(der.TagBoolean) {
		b, err := c[idx].Bool()
		if err != nil {
			return BasicConstraints{}, makeError(ErrMalformedExtension, err.Error())
		}
		v.CA = b
		idx++
	}
	if idx < len(c) {
		n, err := c[idx].Integer()
		if err != nil {
			return BasicConstraints{}, makeError(ErrMalformedExtension, "BasicConstraints.pathLenConstraint: "+err.Error())
		}
		v.PathLenConstraint = n
		idx++
	}
	if idx != len(c) {
		return BasicConstraints{}, makeError(ErrMalformedExtension, "BasicConstraints has unrecognized trailing elements")
	}
	return v, nil
}

// Dump serializes v to the extnValue bytes.
func (v BasicConstraints) Dump() ([]byte, error) {
	var children []*der.Element
	if v.CA {
		children = append(children, der.NewBoolean(true))
	}
	if v.PathLenConstraint != nil {
		children = append(children, der.NewInteger(v.PathLenConstraint))
	}
	return der.NewSequence(children...).Dump()
}

// KeyUsage is RFC 5280 §4.2.1.3's extension value: a BIT STRING of named
// bits 0 through 8.
type KeyUsage struct {
	DigitalSignature bool
	ContentCommitment bool
	KeyEncipherment  bool
	DataEncipherment bool
	KeyAgreement     bool
	KeyCertSign      bool
	CRLSign          bool
	EncipherOnly     bool
	DecipherOnly     bool
}

func parseKeyUsage(e *der.Element) (KeyUsage, error) {
	bits, _, err := e.BitString()
	if err != nil {
		return KeyUsage{}, makeError(ErrMalformedExtension, "KeyUsage: "+err.Error())
	}
	bit := func(n int) bool {
		byteIdx := n / 8
		if byteIdx >= len(bits) {
			return false
		}
		return bits[byteIdx]&(0x80>>uint(n%8)) != 0
	}
	return KeyUsage{
		DigitalSignature:  bit(0),
		ContentCommitment: bit(1),
		KeyEncipherment:   bit(2),
		DataEncipherment:  bit(3),
		KeyAgreement:      bit(4),
		KeyCertSign:       bit(5),
		CRLSign:           bit(6),
		EncipherOnly:      bit(7),
		DecipherOnly:      bit(8),
	}, nil
}

// Dump serializes v to the extnValue bytes, trimming trailing zero bits
// per DER's "unused bits zero and as few significant bits as possible"
// rule.
func (v KeyUsage) Dump() ([]byte, error) {
	flags := []bool{
		v.DigitalSignature, v.ContentCommitment, v.KeyEncipherment,
		v.DataEncipherment, v.KeyAgreement, v.KeyCertSign, v.CRLSign,
		v.EncipherOnly, v.DecipherOnly,
	}
	width := 0
	for i, f := range flags {
		if f {
			width = i + 1
		}
	}
	bytes := make([]byte, (width+7)/8)
	for i := 0; i < width; i++ {
		if flags[i] {
			bytes[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return der.NewBitString(bytes, width).Dump()
}

// ExtendedKeyUsage is RFC 5280 §4.2.1.12's extension value:
// ExtKeyUsageSyntax ::= SEQUENCE SIZE (1..MAX) OF KeyPurposeId.
//
// The well-known purposes RFC 5280 appendix names are exposed as booleans;
// anything else lands in AdditionalUsageIDs.
type ExtendedKeyUsage struct {
	AnyExtendedKeyUsage bool
	ServerAuth          bool
	ClientAuth          bool
	CodeSigning         bool
	EmailProtection     bool
	TimeStamping        bool
	OCSPSigning         bool
	AdditionalUsageIDs  [][]uint32
}

func parseExtendedKeyUsage(e *der.Element) (ExtendedKeyUsage, error) {
	if !e.Is(der.TagSequence) {
		return ExtendedKeyUsage{}, makeError(ErrMalformedExtension, "ExtKeyUsageSyntax must be a SEQUENCE")
	}
	var v ExtendedKeyUsage
	for _, c := range e.Children() {
		oid, err := c.OID()
		if err != nil {
			return ExtendedKeyUsage{}, makeError(ErrMalformedExtension, "KeyPurposeId is not an OID: "+err.Error())
		}
		switch {
		case oidEqual(oid, oidAnyExtendedKeyUsage):
			v.AnyExtendedKeyUsage = true
		case oidEqual(oid, oidKpServerAuth):
			v.ServerAuth = true
		case oidEqual(oid, oidKpClientAuth):
			v.ClientAuth = true
		case oidEqual(oid, oidKpCodeSigning):
			v.CodeSigning = true
		case oidEqual(oid, oidKpEmailProtection):
			v.EmailProtection = true
		case oidEqual(oid, oidKpTimeStamping):
			v.TimeStamping = true
		case oidEqual(oid, oidKpOCSPSigning):
			v.OCSPSigning = true
		default:
			v.AdditionalUsageIDs = append(v.AdditionalUsageIDs, oid)
		}
	}
	return v, nil
}

// Dump serializes v to the extnValue bytes.
func (v ExtendedKeyUsage) Dump() ([]byte, error) {
	var oids [][]uint32
	if v.AnyExtendedKeyUsage {
		oids = append(oids, oidAnyExtendedKeyUsage)
	}
	if v.ServerAuth {
		oids = append(oids, oidKpServerAuth)
	}
	if v.ClientAuth {
		oids = append(oids, oidKpClientAuth)
	}
	if v.CodeSigning {
		oids = append(oids, oidKpCodeSigning)
	}
	if v.EmailProtection {
		oids = append(oids, oidKpEmailProtection)
	}
	if v.TimeStamping {
		oids = append(oids, oidKpTimeStamping)
	}
	if v.OCSPSigning {
		oids = append(oids, oidKpOCSPSigning)
	}
	oids = append(oids, v.AdditionalUsageIDs...)

	children := make([]*der.Element, 0, len(oids))
	for _, oid := range oids {
		e, err := der.NewOID(oid)
		if err != nil {
			return nil, err
		}
		children = append(children, e)
	}
	return der.NewSequence(children...).Dump()
}

// ExtUnknownValue is the escape hatch for an extension whose OID this
// package doesn't recognize, or whose extnValue didn't parse the way its
// OID's RFC 5280 definition expects: the raw, uninterpreted extnValue
// octets.
type ExtUnknownValue struct {
	Raw []byte
}
