// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x509cert

import (
	"github.com/ModChain/x509kit/der"
	"golang.org/x/exp/slices"
)

// AttributeType identifies a well-known X.509 RDN attribute OID.
type AttributeType int

const (
	AttrUnknown AttributeType = iota
	AttrName
	AttrSurname
	AttrGivenName
	AttrGenerationQualifier
	AttrCommonName
	AttrLocalityName
	AttrStateOrProvinceName
	AttrOrganizationName
	AttrOrganizationalUnitName
	AttrTitle
	AttrDnQualifier
	AttrCountryName
	AttrSerialNumber
	AttrPseudonym
	AttrOrganizationID
	AttrStreetAddress
	AttrDomainComponent
	AttrEmailAddress
)

var attributeOIDs = map[AttributeType][]uint32{
	AttrName:                   oidAttrName,
	AttrSurname:                oidAttrSurname,
	AttrGivenName:              oidAttrGivenName,
	AttrGenerationQualifier:    oidAttrGenerationQualifier,
	AttrCommonName:             oidAttrCommonName,
	AttrLocalityName:           oidAttrLocalityName,
	AttrStateOrProvinceName:    oidAttrStateOrProvinceName,
	AttrOrganizationName:       oidAttrOrganizationName,
	AttrOrganizationalUnitName: oidAttrOrganizationalUnitName,
	AttrTitle:                  oidAttrTitle,
	AttrDnQualifier:            oidAttrDnQualifier,
	AttrCountryName:            oidAttrCountryName,
	AttrSerialNumber:           oidAttrSerialNumber,
	AttrPseudonym:              oidAttrPseudonym,
	AttrOrganizationID:         oidAttrOrganizationID,
	AttrStreetAddress:          oidAttrStreetAddress,
	AttrDomainComponent:        oidAttrDomainComponent,
	AttrEmailAddress:           oidAttrEmailAddress,
}

// AttributeTypeOf returns the AttributeType a given OID names, or
// AttrUnknown if it isn't one of the recognized attribute OIDs.
func AttributeTypeOf(oid []uint32) AttributeType {
	for a, want := range attributeOIDs {
		if oidEqual(want, oid) {
			return a
		}
	}
	return AttrUnknown
}

// rdnAttribute is one AttributeTypeAndValue pair:
//
//	AttributeTypeAndValue ::= SEQUENCE {
//	    type     AttributeType,   -- OBJECT IDENTIFIER
//	    value    AttributeValue } -- DirectoryString, in this package
type rdnAttribute struct {
	OID   []uint32
	Value DirectoryString
}

// RelativeDistinguishedName is X.509's RDN:
//
//	RelativeDistinguishedName ::= SET SIZE (1..MAX) OF AttributeTypeAndValue
//
// Attributes are kept ordered by OID (ascending, arc by arc) so that two
// RDNs built from the same attribute set compare and dump identically
// regardless of insertion order.
type RelativeDistinguishedName struct {
	attrs []rdnAttribute
}

// Set adds or replaces the value for the given attribute OID, keeping
// attrs sorted by OID.
func (r *RelativeDistinguishedName) Set(oid []uint32, value DirectoryString) {
	for i := range r.attrs {
		if oidEqual(r.attrs[i].OID, oid) {
			r.attrs[i].Value = value
			return
		}
	}
	r.attrs = append(r.attrs, rdnAttribute{OID: oid, Value: value})
	slices.SortFunc(r.attrs, func(a, b rdnAttribute) int {
		return oidCompare(a.OID, b.OID)
	})
}

// SetAttr is a convenience wrapper over Set for a known AttributeType.
func (r *RelativeDistinguishedName) SetAttr(a AttributeType, value DirectoryString) {
	oid, ok := attributeOIDs[a]
	if !ok {
		return
	}
	r.Set(oid, value)
}

// Get returns the value stored for oid, if present.
func (r *RelativeDistinguishedName) Get(oid []uint32) (DirectoryString, bool) {
	for _, a := range r.attrs {
		if oidEqual(a.OID, oid) {
			return a.Value, true
		}
	}
	return DirectoryString{}, false
}

// GetAttr is a convenience wrapper over Get for a known AttributeType.
func (r *RelativeDistinguishedName) GetAttr(a AttributeType) (DirectoryString, bool) {
	oid, ok := attributeOIDs[a]
	if !ok {
		return DirectoryString{}, false
	}
	return r.Get(oid)
}

// Len returns the number of attributes in the RDN.
func (r *RelativeDistinguishedName) Len() int { return len(r.attrs) }

// oidCompare orders two OIDs arc by arc, returning -1, 0 or 1, for use
// with slices.SortFunc's three-way comparator signature.
func oidCompare(a, b []uint32) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// ParseRDN reads a RelativeDistinguishedName from a SET of
// AttributeTypeAndValue elements.
func ParseRDN(e *der.Element) (*RelativeDistinguishedName, error) {
	if !e.IsSet() {
		return nil, makeError(ErrInvalidName, "RelativeDistinguishedName must be a SET")
	}
	r := &RelativeDistinguishedName{}
	for _, atv := range e.Children() {
		if !atv.Is(der.TagSequence) || len(atv.Children()) != 2 {
			return nil, makeError(ErrInvalidName, "AttributeTypeAndValue must be a two-element SEQUENCE")
		}
		oid, err := atv.Children()[0].OID()
		if err != nil {
			return nil, makeError(ErrInvalidName, "AttributeTypeAndValue.type is not an OID: "+err.Error())
		}
		val, err := ParseDirectoryString(atv.Children()[1])
		if err != nil {
			return nil, err
		}
		r.Set(oid, val)
	}
	if len(r.attrs) == 0 {
		return nil, makeError(ErrInvalidName, "RelativeDistinguishedName must contain at least one attribute")
	}
	return r, nil
}

// Dump serializes r to a SET of AttributeTypeAndValue elements.
func (r *RelativeDistinguishedName) Dump() (*der.Element, error) {
	var children []*der.Element
	for _, a := range r.attrs {
		oidElem, err := der.NewOID(a.OID)
		if err != nil {
			return nil, err
		}
		children = append(children, der.NewSequence(oidElem, a.Value.Dump()))
	}
	return der.NewSet(children...), nil
}

// RDNSequence is X.509's Name, restricted to the rdnSequence CHOICE
// alternative (the only one any real certificate uses):
//
//	Name ::= CHOICE { rdnSequence RDNSequence }
//	RDNSequence ::= SEQUENCE OF RelativeDistinguishedName
type RDNSequence []*RelativeDistinguishedName

// ParseRDNSequence reads an RDNSequence from a SEQUENCE of RDN SETs.
func ParseRDNSequence(e *der.Element) (RDNSequence, error) {
	if !e.Is(der.TagSequence) {
		return nil, makeError(ErrInvalidName, "Name must be a SEQUENCE (rdnSequence)")
	}
	seq := make(RDNSequence, 0, len(e.Children()))
	for _, child := range e.Children() {
		rdn, err := ParseRDN(child)
		if err != nil {
			return nil, err
		}
		seq = append(seq, rdn)
	}
	return seq, nil
}

// Dump serializes seq to an RDNSequence element.
func (seq RDNSequence) Dump() (*der.Element, error) {
	children := make([]*der.Element, 0, len(seq))
	for _, rdn := range seq {
		e, err := rdn.Dump()
		if err != nil {
			return nil, err
		}
		children = append(children, e)
	}
	return der.NewSequence(children...), nil
}

// Equal compares two RDNSequences attribute-set by attribute-set.
func (seq RDNSequence) Equal(other RDNSequence) bool {
	if len(seq) != len(other) {
		return false
	}
	for i := range seq {
		if seq[i].Len() != other[i].Len() {
			return false
		}
		for _, a := range seq[i].attrs {
			v, ok := other[i].Get(a.OID)
			if !ok || !v.Equal(a.Value) {
				return false
			}
		}
	}
	return true
}
