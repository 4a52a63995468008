// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x509cert

import "github.com/ModChain/x509kit/der"

// GeneralNameType identifies which of GeneralName's nine CHOICE
// alternatives a value holds.
type GeneralNameType int

const (
	GNOtherName GeneralNameType = iota
	GNRfc822Name
	GNDNSName
	GNX400Address
	GNDirectoryName
	GNEdiPartyName
	GNUniformResourceIdentifier
	GNIPAddress
	GNRegisteredID
)

// GeneralName is RFC 5280 §4.2.1.6's CHOICE:
//
//	GeneralName ::= CHOICE {
//	    otherName                 [0] OtherName,
//	    rfc822Name                [1] IA5String,
//	    dNSName                   [2] IA5String,
//	    x400Address               [3] ORAddress,
//	    directoryName             [4] Name,
//	    ediPartyName              [5] EDIPartyName,
//	    uniformResourceIdentifier [6] IA5String,
//	    iPAddress                 [7] OCTET STRING,
//	    registeredID              [8] OBJECT IDENTIFIER }
//
// The four string-shaped alternatives (1, 2, 6, 7) decode to String;
// directoryName decodes to Name; registeredID decodes to OID. otherName,
// x400Address and ediPartyName are retained uninterpreted in Raw, since
// their content depends on context this package doesn't model.
type GeneralName struct {
	Type   GeneralNameType
	String string
	Name   RDNSequence
	OID    []uint32
	Raw    *der.Element // populated for otherName, x400Address, ediPartyName
}

// ParseGeneralName reads a GeneralName from its IMPLICIT or EXPLICIT
// context-tagged encoding.
func ParseGeneralName(e *der.Element) (GeneralName, error) {
	if e.Class() != der.ClassContext {
		return GeneralName{}, makeError(ErrInvalidGeneralName, "GeneralName element must be context-tagged")
	}
	switch e.Tag() {
	case 0:
		return GeneralName{Type: GNOtherName, Raw: e}, nil
	case 1, 2, 6:
		inner, err := der.UnwrapImplicit(e, e.Tag(), der.TagIA5String)
		if err != nil {
			return GeneralName{}, makeError(ErrInvalidGeneralName, err.Error())
		}
		s, err := inner.StringValue()
		if err != nil {
			return GeneralName{}, makeError(ErrInvalidGeneralName, err.Error())
		}
		t := map[uint32]GeneralNameType{1: GNRfc822Name, 2: GNDNSName, 6: GNUniformResourceIdentifier}[e.Tag()]
		return GeneralName{Type: t, String: s}, nil
	case 3:
		return GeneralName{Type: GNX400Address, Raw: e}, nil
	case 4:
		inner, err := der.UnwrapExplicit(e, 4)
		if err != nil {
			return GeneralName{}, makeError(ErrInvalidGeneralName, err.Error())
		}
		name, err := ParseRDNSequence(inner)
		if err != nil {
			return GeneralName{}, err
		}
		return GeneralName{Type: GNDirectoryName, Name: name}, nil
	case 5:
		return GeneralName{Type: GNEdiPartyName, Raw: e}, nil
	case 7:
		inner, err := der.UnwrapImplicit(e, 7, der.TagOctetString)
		if err != nil {
			return GeneralName{}, makeError(ErrInvalidGeneralName, err.Error())
		}
		b, err := inner.OctetString()
		if err != nil {
			return GeneralName{}, makeError(ErrInvalidGeneralName, err.Error())
		}
		return GeneralName{Type: GNIPAddress, String: string(b)}, nil
	case 8:
		inner, err := der.UnwrapImplicit(e, 8, der.TagOID)
		if err != nil {
			return GeneralName{}, makeError(ErrInvalidGeneralName, err.Error())
		}
		oid, err := inner.OID()
		if err != nil {
			return GeneralName{}, makeError(ErrInvalidGeneralName, err.Error())
		}
		return GeneralName{Type: GNRegisteredID, OID: oid}, nil
	default:
		return GeneralName{}, makeError(ErrInvalidGeneralName, "unrecognized GeneralName tag")
	}
}

// Dump serializes g back to its context-tagged element.
func (g GeneralName) Dump() (*der.Element, error) {
	switch g.Type {
	case GNOtherName, GNX400Address, GNEdiPartyName:
		if g.Raw == nil {
			return nil, makeError(ErrInvalidGeneralName, "uninterpreted GeneralName alternative has no raw element to dump")
		}
		return g.Raw, nil
	case GNRfc822Name:
		return der.WrapImplicit(1, der.NewIA5String(g.String)), nil
	case GNDNSName:
		return der.WrapImplicit(2, der.NewIA5String(g.String)), nil
	case GNUniformResourceIdentifier:
		return der.WrapImplicit(6, der.NewIA5String(g.String)), nil
	case GNDirectoryName:
		name, err := g.Name.Dump()
		if err != nil {
			return nil, err
		}
		return der.WrapExplicit(4, name), nil
	case GNIPAddress:
		return der.WrapImplicit(7, der.NewOctetString([]byte(g.String))), nil
	case GNRegisteredID:
		oidElem, err := der.NewOID(g.OID)
		if err != nil {
			return nil, err
		}
		return der.WrapImplicit(8, oidElem), nil
	default:
		return nil, makeError(ErrInvalidGeneralName, "unrecognized GeneralName type")
	}
}

// Equal compares two GeneralNames, matching the source's own comparison
// rule: otherName/x400Address/ediPartyName are never equal (their raw
// content isn't interpreted), even to themselves.
func (g GeneralName) Equal(other GeneralName) bool {
	if g.Type != other.Type {
		return false
	}
	switch g.Type {
	case GNRegisteredID:
		return oidEqual(g.OID, other.OID)
	case GNRfc822Name, GNDNSName, GNUniformResourceIdentifier, GNIPAddress:
		return g.String == other.String
	case GNDirectoryName:
		return g.Name.Equal(other.Name)
	default:
		return false
	}
}
