// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x509cert

import "github.com/ModChain/x509kit/der"

// DirectoryStringType identifies which of DirectoryString's seven ASN.1
// string CHOICE alternatives a value was read from or should be written
// as.
type DirectoryStringType int

const (
	DirPrintable DirectoryStringType = iota
	DirUTF8
	DirUniversal
	DirBMP
	DirTeletex
	DirIA5
	DirVisible
)

// DirectoryString is X.509's generic name-holding CHOICE:
//
//	DirectoryString ::= CHOICE {
//	    teletexString    TeletexString (SIZE (1..MAX)),
//	    printableString  PrintableString (SIZE (1..MAX)),
//	    universalString  UniversalString (SIZE (1..MAX)),
//	    utf8String       UTF8String (SIZE (1..MAX)),
//	    bmpString        BMPString (SIZE (1..MAX)) }
//
// ia5String and visibleString are also accepted, for backwards
// compatibility with certificates that use them outside their strict
// X.509 role (ia5 shows up in some root certificates).
type DirectoryString struct {
	Value string
	Type  DirectoryStringType
}

// Equal compares two DirectoryStrings byte for byte. This does not perform
// the RFC 4518 string-prep normalization (case folding, whitespace
// collapsing, Unicode normalization) a strict X.500 comparison would
// require; it is a plain value comparison, independent of Type.
func (d DirectoryString) Equal(other DirectoryString) bool {
	return d.Value == other.Value
}

// ParseDirectoryString reads a DirectoryString from e, whose tag must be one of the
// seven recognized string types.
func ParseDirectoryString(e *der.Element) (DirectoryString, error) {
	var t DirectoryStringType
	switch e.Tag() {
	case der.TagPrintableString:
		t = DirPrintable
	case der.TagUTF8String:
		t = DirUTF8
	case der.TagUniversalString:
		t = DirUniversal
	case der.TagBMPString:
		t = DirBMP
	case der.TagTeletexString:
		t = DirTeletex
	case der.TagIA5String:
		t = DirIA5
	case der.TagVisibleString:
		t = DirVisible
	default:
		return DirectoryString{}, makeError(ErrInvalidDirectoryString, "element is not one of DirectoryString's recognized string types")
	}
	s, err := e.StringValue()
	if err != nil {
		return DirectoryString{}, makeError(ErrInvalidDirectoryString, err.Error())
	}
	return DirectoryString{Value: s, Type: t}, nil
}

// Dump serializes d as its declared string type.
func (d DirectoryString) Dump() *der.Element {
	switch d.Type {
	case DirUTF8:
		return der.NewUTF8String(d.Value)
	case DirUniversal:
		return der.NewUniversalString(d.Value)
	case DirBMP:
		return der.NewBMPString(d.Value)
	case DirTeletex:
		return der.NewTeletexString(d.Value)
	case DirIA5:
		return der.NewIA5String(d.Value)
	case DirVisible:
		return der.NewVisibleString(d.Value)
	default:
		return der.NewPrintableString(d.Value)
	}
}
