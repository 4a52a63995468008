// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package der

import (
	"bytes"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/ModChain/x509kit/bigint"
	"github.com/ModChain/x509kit/internal/testutil"
)

func TestRoundTripShortSequence(t *testing.T) {
	in := []byte{0x30, 0x06, 0x02, 0x01, 0x00, 0x02, 0x01, 0x7F}
	e, next, err := ParseElement(in, 0)
	if err != nil {
		t.Fatal(err)
	}
	if next != len(in) {
		t.Fatalf("consumed %d bytes, want %d", next, len(in))
	}
	if !e.IsSequence() {
		t.Fatal("expected a SEQUENCE")
	}
	children := e.Children()
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	v0, err := children[0].Integer()
	if err != nil {
		t.Fatal(err)
	}
	v1, err := children[1].Integer()
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertIntsEqual(t, "first child", bigint.NewInt(0), v0)
	testutil.AssertIntsEqual(t, "second child", bigint.NewInt(127), v1)

	out, err := e.Dump()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("dump = % x, want % x\n%s", out, in, spew.Sdump(e))
	}
}

// boundary: a 300-byte content block forces long-form length encoding.
func TestMultiByteLength(t *testing.T) {
	content := bytes.Repeat([]byte{0x02, 0x01, 0x01}, 100) // 300 bytes
	header := encodeHeader(ClassUniversal, true, TagSequence, len(content))
	if !bytes.Equal(header[1:], []byte{0x82, 0x01, 0x2C}) {
		t.Fatalf("length bytes = % x, want 82 01 2c", header[1:])
	}

	buf := append(header, content...)
	e, next, err := ParseElement(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if next != len(buf) {
		t.Fatal("did not consume the whole buffer")
	}
	out, err := e.Dump()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, buf) {
		t.Fatal("round trip mismatch")
	}
}

// boundary: a tag number above 30 spills into the high-tag-number form.
func TestHighTagID(t *testing.T) {
	buf := []byte{0x9F, 0x81, 0x01, 0x00}
	e, next, err := ParseElement(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if next != len(buf) {
		t.Fatal("did not consume the whole buffer")
	}
	if e.Class() != ClassContext {
		t.Fatalf("class = %s, want context", e.Class())
	}
	if e.Tag() != 129 {
		t.Fatalf("tag = %d, want 129", e.Tag())
	}
	out, err := e.Dump()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, buf) {
		t.Fatalf("dump = % x, want % x", out, buf)
	}
}

// boundary: OID {1,2,840,113549} encodes to 2a 86 48 86 f7 0d.
func TestOIDEncoding(t *testing.T) {
	e, err := NewOID([]uint32{1, 2, 840, 113549})
	if err != nil {
		t.Fatal(err)
	}
	out, err := e.Dump()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x06, 0x06, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d}
	if !bytes.Equal(out, want) {
		t.Fatalf("dump = % x, want % x", out, want)
	}

	parsed, _, err := ParseElement(out, 0)
	if err != nil {
		t.Fatal(err)
	}
	arcs, err := parsed.OID()
	if err != nil {
		t.Fatal(err)
	}
	want2 := []uint32{1, 2, 840, 113549}
	if len(arcs) != len(want2) {
		t.Fatalf("got %v, want %v", arcs, want2)
	}
	for i := range arcs {
		if arcs[i] != want2[i] {
			t.Fatalf("got %v, want %v", arcs, want2)
		}
	}
}

// boundary: INTEGER two's-complement content bytes.
func TestIntegerContentBytes(t *testing.T) {
	tests := []struct {
		v    int64
		want []byte
	}{
		{128, []byte{0x00, 0x80}},
		{-128, []byte{0x80}},
		{-129, []byte{0xFF, 0x7F}},
		{0, []byte{0x00}},
	}
	for _, test := range tests {
		e := NewInteger(bigint.NewInt(test.v))
		content, err := e.RawContent()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(content, test.want) {
			t.Errorf("%d: content = % x, want % x", test.v, content, test.want)
		}
	}
}

// boundary: BIT STRING of width 18.
func TestBitStringWidth18(t *testing.T) {
	bits := []byte{0x6E, 0x5D, 0xC0}
	e := NewBitString(bits, 18)
	content, err := e.RawContent()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x06, 0x6E, 0x5D, 0xC0}
	if !bytes.Equal(content, want) {
		t.Fatalf("content = % x, want % x", content, want)
	}

	out, err := e.Dump()
	if err != nil {
		t.Fatal(err)
	}
	parsed, _, err := ParseElement(out, 0)
	if err != nil {
		t.Fatal(err)
	}
	gotBits, width, err := parsed.BitString()
	if err != nil {
		t.Fatal(err)
	}
	if width != 18 {
		t.Fatalf("width = %d, want 18", width)
	}
	if !bytes.Equal(gotBits, bits) {
		t.Fatalf("bits = % x, want % x", gotBits, bits)
	}
}

// boundary: a DER element with length 257 uses long-form 82 01 01.
func TestLength257LongForm(t *testing.T) {
	header := encodeHeader(ClassUniversal, false, TagOctetString, 257)
	if !bytes.Equal(header[1:], []byte{0x82, 0x01, 0x01}) {
		t.Fatalf("length bytes = % x, want 82 01 01", header[1:])
	}
}

// boundary: UTCTime year-window.
func TestUTCTimeYearWindow(t *testing.T) {
	tests := []struct {
		in       string
		wantYear int
	}{
		{"500101000000Z", 2050},
		{"700101000000Z", 1970},
	}
	for _, test := range tests {
		got, err := parseUTCTime([]byte(test.in))
		if err != nil {
			t.Fatalf("%s: %v", test.in, err)
		}
		if got.Year() != test.wantYear {
			t.Errorf("%s: year = %d, want %d", test.in, got.Year(), test.wantYear)
		}
	}
}

// boundary: UTCTime has no local-time alternative in its grammar, so a
// suffix-less value must fail rather than default to Z.
func TestUTCTimeMissingTimezoneFails(t *testing.T) {
	if _, err := parseUTCTime([]byte("500101000000")); err == nil {
		t.Fatal("expected an error for UTCTime with no timezone suffix")
	}
}

// boundary: unlike UTCTime, GeneralizedTime may omit the timezone suffix,
// and such a value is read as UTC.
func TestGeneralizedTimeMissingTimezoneDefaultsUTC(t *testing.T) {
	got, err := parseGeneralizedTime([]byte("20300615010203"))
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2030, 6, 15, 1, 2, 3, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestUTCTimeRoundTrip(t *testing.T) {
	ref := time.Date(2030, 6, 15, 1, 2, 3, 0, time.UTC)
	e := NewUTCTime(ref)
	got, err := e.UTCTime()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(ref) {
		t.Fatalf("got %s, want %s", got, ref)
	}
}

func TestGeneralizedTimeRoundTrip(t *testing.T) {
	ref := time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC)
	e := NewGeneralizedTime(ref)
	got, err := e.GeneralizedTime()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(ref) {
		t.Fatalf("got %s, want %s", got, ref)
	}
}

// boundary: a PEM document with mismatched BEGIN/END labels parses-fails.
func TestPemLabelMismatchFails(t *testing.T) {
	bad := "-----BEGIN CERTIFICATE-----\nAAAA\n-----END RSA PRIVATE KEY-----\n"
	if _, err := ParsePEM(bad); err == nil {
		t.Fatal("expected an error for mismatched BEGIN/END labels")
	}
}

func TestPemRoundTrip(t *testing.T) {
	payload := []byte("hello der world, this is a longer payload to force line wrapping across more than one base64 line")
	doc := NewPemDocument("CERTIFICATE", payload)
	encoded := doc.Dump()

	parsed, err := ParsePEM(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Label != "CERTIFICATE" {
		t.Fatalf("label = %q, want CERTIFICATE", parsed.Label)
	}
	if !bytes.Equal(parsed.Bytes, payload) {
		t.Fatal("round trip payload mismatch")
	}
}

func TestPemBundle(t *testing.T) {
	doc1 := NewPemDocument("CERTIFICATE", []byte("first cert bytes"))
	doc2 := NewPemDocument("CERTIFICATE", []byte("second cert bytes"))
	bundle := doc1.Dump() + doc2.Dump()

	docs, err := ParsePEMAll(bundle)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if string(docs[0].Bytes) != "first cert bytes" || string(docs[1].Bytes) != "second cert bytes" {
		t.Fatal("bundle contents mismatch")
	}
}

// universal invariant: parse(dump(x)) == x, dump(parse(dump(x))) == dump(x).
func TestParseDumpInvariant(t *testing.T) {
	inner := NewSequence(
		NewInteger(bigint.NewInt(42)),
		NewOctetString([]byte{0xDE, 0xAD, 0xBE, 0xEF}),
		NewBoolean(true),
		NewNull(),
	)
	d1, err := inner.Dump()
	if err != nil {
		t.Fatal(err)
	}
	parsed, next, err := ParseElement(d1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if next != len(d1) {
		t.Fatal("did not consume the whole buffer")
	}
	d2, err := parsed.Dump()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(d1, d2) {
		t.Fatalf("dump(parse(dump(x))) != dump(x): % x vs % x", d2, d1)
	}
}

func TestContextTagExplicitWrap(t *testing.T) {
	inner := NewInteger(bigint.NewInt(7))
	wrapped := WrapExplicit(0, inner)
	out, err := wrapped.Dump()
	if err != nil {
		t.Fatal(err)
	}
	parsed, _, err := ParseElement(out, 0)
	if err != nil {
		t.Fatal(err)
	}
	unwrapped, err := UnwrapExplicit(parsed, 0)
	if err != nil {
		t.Fatal(err)
	}
	v, err := unwrapped.Integer()
	if err != nil {
		t.Fatal(err)
	}
	if v.Cmp(bigint.NewInt(7)) != 0 {
		t.Fatalf("got %s, want 7", v)
	}
}

func TestContextTagImplicitWrap(t *testing.T) {
	inner := NewOctetString([]byte{1, 2, 3})
	wrapped := WrapImplicit(2, inner)
	out, err := wrapped.Dump()
	if err != nil {
		t.Fatal(err)
	}
	parsed, _, err := ParseElement(out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Class() != ClassContext || parsed.Tag() != 2 {
		t.Fatal("implicit tag not preserved")
	}
	back, err := UnwrapImplicit(parsed, 2, TagOctetString)
	if err != nil {
		t.Fatal(err)
	}
	content, err := back.OctetString()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(content, []byte{1, 2, 3}) {
		t.Fatal("implicit round trip content mismatch")
	}
}

func TestEmptyDocument(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Root(); err == nil {
		t.Fatal("expected ErrEmptyDocument from an empty document's Root()")
	}
	out, err := doc.Dump()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatal("expected an empty dump for an empty document")
	}
}

func TestSequenceMustBeConstructed(t *testing.T) {
	// tag 0x30 constructed bit clear would be 0x10; force a primitive
	// SEQUENCE tag byte to trigger the parse-time invariant check.
	buf := []byte{0x10, 0x00}
	if _, _, err := ParseElement(buf, 0); err == nil {
		t.Fatal("expected an error for a non-constructed SEQUENCE")
	}
}
