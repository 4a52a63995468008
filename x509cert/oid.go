// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x509cert

import "github.com/ModChain/x509kit/ecc"

// Algorithm identifier OIDs, RFC 3279/RFC 8017 §9.
var (
	oidRSAEncryption = []uint32{1, 2, 840, 113549, 1, 1, 1}
	oidECPublicKey   = []uint32{1, 2, 840, 10045, 2, 1}
)

// Named curve OIDs, RFC 3279/5480.
var curveOIDs = map[ecc.Curve][]uint32{
	ecc.P192R1: {1, 2, 840, 10045, 3, 1, 1},
	ecc.P224R1: {1, 3, 132, 0, 33},
	ecc.P256R1: {1, 2, 840, 10045, 3, 1, 7},
	ecc.P384R1: {1, 3, 132, 0, 34},
	ecc.P521R1: {1, 3, 132, 0, 35},
}

// curveByOID finds the ecc.Curve matching the given OID arcs, if any.
func curveByOID(arcs []uint32) (ecc.Curve, bool) {
	for c, oid := range curveOIDs {
		if oidEqual(oid, arcs) {
			return c, true
		}
	}
	return 0, false
}

func oidEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RSA and ECDSA signature algorithm OIDs (RFC 3279, RFC 4055).
var (
	oidRsaMD5     = []uint32{1, 2, 840, 113549, 1, 1, 4}
	oidRsaSHA1    = []uint32{1, 2, 840, 113549, 1, 1, 5}
	oidRsaSHA224  = []uint32{1, 2, 840, 113549, 1, 1, 14}
	oidRsaSHA256  = []uint32{1, 2, 840, 113549, 1, 1, 11}
	oidRsaSHA384  = []uint32{1, 2, 840, 113549, 1, 1, 12}
	oidRsaSHA512  = []uint32{1, 2, 840, 113549, 1, 1, 13}
	oidEcdsaSHA1  = []uint32{1, 2, 840, 10045, 4, 1}
	oidEcdsaSHA224 = []uint32{1, 2, 840, 10045, 4, 3, 1}
	oidEcdsaSHA256 = []uint32{1, 2, 840, 10045, 4, 3, 2}
	oidEcdsaSHA384 = []uint32{1, 2, 840, 10045, 4, 3, 3}
	oidEcdsaSHA512 = []uint32{1, 2, 840, 10045, 4, 3, 4}
)

// Attribute type OIDs, RFC 5280 §4.1.2.4/appendix.
var (
	oidAttrName                   = []uint32{2, 5, 4, 41}
	oidAttrSurname                = []uint32{2, 5, 4, 4}
	oidAttrGivenName              = []uint32{2, 5, 4, 42}
	oidAttrGenerationQualifier    = []uint32{2, 5, 4, 44}
	oidAttrCommonName             = []uint32{2, 5, 4, 3}
	oidAttrLocalityName           = []uint32{2, 5, 4, 7}
	oidAttrStateOrProvinceName    = []uint32{2, 5, 4, 8}
	oidAttrOrganizationName       = []uint32{2, 5, 4, 10}
	oidAttrOrganizationalUnitName = []uint32{2, 5, 4, 11}
	oidAttrTitle                  = []uint32{2, 5, 4, 12}
	oidAttrDnQualifier            = []uint32{2, 5, 4, 46}
	oidAttrCountryName            = []uint32{2, 5, 4, 6}
	oidAttrSerialNumber           = []uint32{2, 5, 4, 5}
	oidAttrPseudonym              = []uint32{2, 5, 4, 65}
	oidAttrOrganizationID         = []uint32{2, 5, 4, 97}
	oidAttrStreetAddress          = []uint32{2, 5, 4, 9}
	oidAttrDomainComponent        = []uint32{0, 9, 2342, 19200300, 100, 1, 25}
	oidAttrEmailAddress           = []uint32{1, 2, 840, 113549, 1, 9, 1}
)

// Extension OIDs, under the id-ce arc 2.5.29.
var (
	oidExtSubjectAlternativeName = []uint32{2, 5, 29, 17}
	oidExtAuthorityKeyIdentifier = []uint32{2, 5, 29, 35}
	oidExtSubjectKeyIdentifier   = []uint32{2, 5, 29, 14}
	oidExtIssuerAlternativeName  = []uint32{2, 5, 29, 18}
	oidExtBasicConstraints       = []uint32{2, 5, 29, 19}
	oidExtKeyUsage               = []uint32{2, 5, 29, 15}
	oidExtExtendedKeyUsage       = []uint32{2, 5, 29, 37}
)

// Extended key usage key-purpose OIDs, RFC 5280 §4.2.1.12.
var (
	oidKpServerAuth      = []uint32{1, 3, 6, 1, 5, 5, 7, 3, 1}
	oidKpClientAuth      = []uint32{1, 3, 6, 1, 5, 5, 7, 3, 2}
	oidKpCodeSigning     = []uint32{1, 3, 6, 1, 5, 5, 7, 3, 3}
	oidKpEmailProtection = []uint32{1, 3, 6, 1, 5, 5, 7, 3, 4}
	oidKpTimeStamping    = []uint32{1, 3, 6, 1, 5, 5, 7, 3, 8}
	oidKpOCSPSigning     = []uint32{1, 3, 6, 1, 5, 5, 7, 3, 9}
	oidAnyExtendedKeyUsage = []uint32{2, 5, 29, 37, 0}
)
