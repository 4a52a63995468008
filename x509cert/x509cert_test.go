// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x509cert

import (
	"testing"
	"time"

	"github.com/ModChain/x509kit/bigint"
	"github.com/ModChain/x509kit/csprng"
	"github.com/ModChain/x509kit/der"
	"github.com/ModChain/x509kit/ecc"
	"github.com/ModChain/x509kit/internal/testutil"
	"github.com/ModChain/x509kit/rsakey"
	"github.com/davecgh/go-spew/spew"
)

func minimalCert(serial int64, subjectCN string, pub PublicKeyCert) *Cert {
	issuer := &RelativeDistinguishedName{}
	issuer.SetAttr(AttrCommonName, DirectoryString{Value: subjectCN, Type: DirUTF8})
	subject := &RelativeDistinguishedName{}
	subject.SetAttr(AttrCommonName, DirectoryString{Value: subjectCN, Type: DirUTF8})

	return &Cert{
		SerialNumber: bigint.NewInt(serial),
		Issuer:       RDNSequence{issuer},
		ValidStart:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidEnd:     time.Date(2036, 1, 1, 0, 0, 0, 0, time.UTC),
		Subject:      RDNSequence{subject},
		PublicKey:    pub,
	}
}

// Self-signed EC certificate round trip: generate, sign, PEM-encode,
// re-parse, validate, then confirm tampering breaks validation.
func TestSelfSignedECCertRoundTrip(t *testing.T) {
	rng := csprng.Default()
	priv, pub, err := ecc.GenerateKey(rng, ecc.P256R1)
	if err != nil {
		t.Fatal(err)
	}

	var pkc PublicKeyCert
	if err := pkc.SetECPoint(KeyAlgoECP256R1, pub); err != nil {
		t.Fatal(err)
	}
	cert := minimalCert(1, "root.example", pkc)

	root, err := cert.SignAndDumpECDSA(rng, ecc.P256R1, priv, SigEcdsaSHA256)
	if err != nil {
		t.Fatal(err)
	}
	der, err := DumpPEM(root)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParsePEM(der)
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.ValidateSelf() {
		t.Fatalf("expected a freshly signed self-signed certificate to validate\n%s", spew.Sdump(parsed))
	}
	if parsed.SigAlgo() != SigEcdsaSHA256 {
		t.Fatalf("sig_algo = %v, want SigEcdsaSHA256", parsed.SigAlgo())
	}
	cn, ok := parsed.Subject[0].GetAttr(AttrCommonName)
	testutil.AssertBoolsEqual(t, "subject CN present", true, ok)
	testutil.AssertStringsEqual(t, "subject CN", "root.example", cn.Value)

	// Flipping a byte in cert_bin must break validation.
	tampered := append([]byte(nil), parsed.CertBin...)
	tampered[0] ^= 0x01
	parsed.CertBin = tampered
	if parsed.ValidateSelf() {
		t.Fatal("expected validation to fail after tampering with cert_bin")
	}
}

// A leaf signed by a known CA validates against that CA's public key, and
// not against its own (different) key.
func TestLeafValidatesAgainstCA(t *testing.T) {
	rng := csprng.Default()

	caPriv, caPub, err := ecc.GenerateKey(rng, ecc.P256R1)
	if err != nil {
		t.Fatal(err)
	}
	var caPKC PublicKeyCert
	if err := caPKC.SetECPoint(KeyAlgoECP256R1, caPub); err != nil {
		t.Fatal(err)
	}
	ca := minimalCert(1, "ca.example", caPKC)
	if _, err := ca.SignAndDumpECDSA(rng, ecc.P256R1, caPriv, SigEcdsaSHA256); err != nil {
		t.Fatal(err)
	}

	_, leafPub, err := ecc.GenerateKey(rng, ecc.P256R1)
	if err != nil {
		t.Fatal(err)
	}
	var leafPKC PublicKeyCert
	if err := leafPKC.SetECPoint(KeyAlgoECP256R1, leafPub); err != nil {
		t.Fatal(err)
	}
	leaf := minimalCert(2, "leaf.example", leafPKC)
	leaf.Issuer = ca.Subject
	if _, err := leaf.SignAndDumpECDSA(rng, ecc.P256R1, caPriv, SigEcdsaSHA256); err != nil {
		t.Fatal(err)
	}

	if !leaf.Validate(ca) {
		t.Fatal("expected the leaf to validate against its issuing CA")
	}
	if leaf.ValidateSelf() {
		t.Fatal("expected the leaf to NOT validate against its own (different) public key")
	}
}

func TestSelfSignedRSACertRoundTrip(t *testing.T) {
	rng := csprng.Default()
	priv, err := rsakey.Generate(rng, 1024)
	if err != nil {
		t.Fatal(err)
	}

	var pkc PublicKeyCert
	rsaPubElem := (RsaPublicKeyCert{}).Dump(&priv.PublicKey)
	pubBytes, err := rsaPubElem.Dump()
	if err != nil {
		t.Fatal(err)
	}
	pkc.AlgorithmOID = oidRSAEncryption
	pkc.PublicKey = pubBytes

	cert := minimalCert(7, "rsa-root.example", pkc)
	root, err := cert.SignAndDumpRSA(priv, SigRsaSHA256)
	if err != nil {
		t.Fatal(err)
	}
	pem, err := DumpPEM(root)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParsePEM(pem)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.PublicKey.Type() != KeyAlgoRSA {
		t.Fatalf("public key type = %v, want KeyAlgoRSA", parsed.PublicKey.Type())
	}
	if !parsed.ValidateSelf() {
		t.Fatal("expected a freshly signed self-signed RSA certificate to validate")
	}
}

func TestParseRejectsNonV3Certificate(t *testing.T) {
	// A TBSCertificate with no explicit [0] version tag is an implicit v1
	// certificate, which this package must reject.
	serial := der.NewInteger(bigint.NewInt(1))
	sigAlg := der.NewSequence(mustOID(oidRsaSHA256), der.NewNull())
	issuer := der.NewSequence()
	validity := der.NewSequence(
		der.NewUTCTime(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		der.NewUTCTime(time.Date(2036, 1, 1, 0, 0, 0, 0, time.UTC)),
	)
	subject := der.NewSequence()
	spki := der.NewSequence(
		der.NewSequence(mustOID(oidRSAEncryption), der.NewNull()),
		der.NewBitString([]byte{0x00}, 0),
	)
	tbs := der.NewSequence(serial, sigAlg, issuer, validity, subject, spki)
	root := der.NewSequence(tbs, sigAlg, der.NewBitString([]byte{0x00}, 0))

	if _, err := Parse(root); err == nil {
		t.Fatal("expected parse to reject a certificate without an explicit v3 version tag")
	}
}

func TestKeyUsageBitStringRoundTrip(t *testing.T) {
	ku := KeyUsage{DigitalSignature: true, KeyCertSign: true}
	raw, err := ku.Dump()
	if err != nil {
		t.Fatal(err)
	}
	e, _, err := der.ParseElement(raw, 0)
	if err != nil {
		t.Fatal(err)
	}
	got, err := parseKeyUsage(e)
	if err != nil {
		t.Fatal(err)
	}
	if !got.DigitalSignature || !got.KeyCertSign {
		t.Fatalf("got %+v", got)
	}
	if got.KeyEncipherment || got.CRLSign {
		t.Fatalf("unexpected bits set: %+v", got)
	}
}

func TestBasicConstraintsRoundTrip(t *testing.T) {
	bc := BasicConstraints{CA: true, PathLenConstraint: bigint.NewInt(3)}
	raw, err := bc.Dump()
	if err != nil {
		t.Fatal(err)
	}
	e, _, err := der.ParseElement(raw, 0)
	if err != nil {
		t.Fatal(err)
	}
	got, err := parseBasicConstraints(e)
	if err != nil {
		t.Fatal(err)
	}
	if !got.CA || got.PathLenConstraint.Cmp(bigint.NewInt(3)) != 0 {
		t.Fatalf("got %+v", got)
	}
}
