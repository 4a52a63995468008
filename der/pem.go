// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package der

import (
	"encoding/base64"
	"strings"
)

const pemLineWidth = 64

// PemDocument is an RFC 7468 textual encoding of a single DER document: a
// "-----BEGIN <label>-----" / "-----END <label>-----" pair wrapping a
// base64 body. Base64 itself is treated as an external service this
// package defers to encoding/base64 for, the same way every example
// repository with PEM-ish code does.
type PemDocument struct {
	Label string
	Bytes []byte
}

// NewPemDocument wraps der bytes under the given label ("CERTIFICATE",
// "RSA PRIVATE KEY", "EC PRIVATE KEY", and so on).
func NewPemDocument(label string, der []byte) *PemDocument {
	return &PemDocument{Label: label, Bytes: der}
}

// Dump renders p in canonical PEM form: base64 body wrapped at 64
// characters per line, with a trailing newline.
func (p *PemDocument) Dump() string {
	var b strings.Builder
	b.WriteString("-----BEGIN " + p.Label + "-----\n")
	enc := base64.StdEncoding.EncodeToString(p.Bytes)
	for i := 0; i < len(enc); i += pemLineWidth {
		end := i + pemLineWidth
		if end > len(enc) {
			end = len(enc)
		}
		b.WriteString(enc[i:end])
		b.WriteByte('\n')
	}
	b.WriteString("-----END " + p.Label + "-----\n")
	return b.String()
}

// Scrub overwrites p's decoded bytes with zeroes, for use after a PEM body
// holding private key material has served its purpose.
func (p *PemDocument) Scrub() {
	for i := range p.Bytes {
		p.Bytes[i] = 0
	}
}

// ParsePEM parses exactly one PEM block from s, failing if the BEGIN and
// END labels don't match or if the body doesn't decode as base64.
func ParsePEM(s string) (*PemDocument, error) {
	docs, rest, err := parseOnePEM(s)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, makeError(ErrBadPemFraming, "trailing data after the PEM block")
	}
	return docs, nil
}

// ParsePEMAll parses every PEM block in s in order, as CertBundle's
// PEM-concatenated format requires.
func ParsePEMAll(s string) ([]*PemDocument, error) {
	var out []*PemDocument
	rest := s
	for strings.TrimSpace(rest) != "" {
		doc, tail, err := parseOnePEM(rest)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
		rest = tail
	}
	return out, nil
}

func parseOnePEM(s string) (doc *PemDocument, rest string, err error) {
	const beginPrefix = "-----BEGIN "
	const endMarker = "-----"

	start := strings.Index(s, beginPrefix)
	if start < 0 {
		return nil, "", makeError(ErrBadPemFraming, "no BEGIN line found")
	}
	afterBegin := start + len(beginPrefix)
	labelEnd := strings.Index(s[afterBegin:], endMarker)
	if labelEnd < 0 {
		return nil, "", makeError(ErrBadPemFraming, "malformed BEGIN line")
	}
	label := s[afterBegin : afterBegin+labelEnd]
	bodyStart := afterBegin + labelEnd + len(endMarker)

	endLine := "-----END " + label + "-----"
	endIdx := strings.Index(s[bodyStart:], endLine)
	if endIdx < 0 {
		return nil, "", makeError(ErrBadPemFraming, "BEGIN/END label mismatch or missing END line")
	}
	body := s[bodyStart : bodyStart+endIdx]
	rest = s[bodyStart+endIdx+len(endLine):]

	decoded, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(body), ""))
	if err != nil {
		return nil, "", makeError(ErrBadPemFraming, "malformed base64 body: "+err.Error())
	}
	return &PemDocument{Label: label, Bytes: decoded}, rest, nil
}
