// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x509cert

import "github.com/ModChain/x509kit/der"

const certificateLabel = "CERTIFICATE"

// ParsePEM parses a single PEM "-----BEGIN CERTIFICATE-----" block into a
// Cert.
func ParsePEM(s string) (*Cert, error) {
	doc, err := der.ParsePEM(s)
	if err != nil {
		return nil, err
	}
	root, _, err := der.ParseElement(doc.Bytes, 0)
	if err != nil {
		return nil, err
	}
	return Parse(root)
}

// DumpPEM renders root (the element returned by SignAndDumpRSA or
// SignAndDumpECDSA) as a "-----BEGIN CERTIFICATE-----" PEM block.
func DumpPEM(root *der.Element) (string, error) {
	b, err := root.Dump()
	if err != nil {
		return "", err
	}
	return der.NewPemDocument(certificateLabel, b).Dump(), nil
}

// Bundle is a list of certificates read from a PEM-concatenated input:
//
//	-----BEGIN CERTIFICATE-----
//	<cert 1>
//	-----END CERTIFICATE-----
//	-----BEGIN CERTIFICATE-----
//	<cert 2>
//	-----END CERTIFICATE-----
//
// Useful for building up a set of trusted root certificates.
type Bundle []*Cert

// ParseBundle reads every PEM "CERTIFICATE" block in s, in order, failing
// on the first parse error other than a clean end of input.
func ParseBundle(s string) (Bundle, error) {
	docs, err := der.ParsePEMAll(s)
	if err != nil {
		return nil, err
	}
	bundle := make(Bundle, 0, len(docs))
	for _, doc := range docs {
		root, _, err := der.ParseElement(doc.Bytes, 0)
		if err != nil {
			return nil, err
		}
		c, err := Parse(root)
		if err != nil {
			return nil, err
		}
		bundle = append(bundle, c)
	}
	return bundle, nil
}
