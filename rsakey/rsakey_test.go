// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rsakey

import (
	"bytes"
	"testing"

	"github.com/ModChain/x509kit/csprng"
	"github.com/ModChain/x509kit/hashalgo"
	"github.com/ModChain/x509kit/internal/testutil"
)

func TestGenerateWidthAndValidate(t *testing.T) {
	rng := csprng.Default()
	const width = 2048
	priv, err := Generate(rng, width)
	if err != nil {
		t.Fatal(err)
	}
	if priv.Width() != width {
		t.Fatalf("width = %d, want %d", priv.Width(), width)
	}
	if !Validate(priv, &priv.PublicKey) {
		t.Fatal("Validate failed for a freshly generated key")
	}
}

func TestGenerateRejectsBadWidth(t *testing.T) {
	rng := csprng.Default()
	if _, err := Generate(rng, 0); err == nil {
		t.Fatal("expected an error for width 0")
	}
	if _, err := Generate(rng, 17); err == nil {
		t.Fatal("expected an error for an odd width")
	}
}

// OAEP round-trip, including a flipped-byte failure.
func TestOAEPRoundTrip(t *testing.T) {
	rng := csprng.Default()
	priv, err := Generate(rng, 2048)
	if err != nil {
		t.Fatal(err)
	}
	msg := make([]byte, 32)
	if _, err := rng.Read(msg); err != nil {
		t.Fatal(err)
	}

	opts := OaepOptions{Hash: hashalgo.SHA256}
	ct, err := OaepEncrypt(rng, &priv.PublicKey, opts, msg)
	if err != nil {
		t.Fatal(err)
	}

	pt, ok := OaepDecrypt(priv, opts, ct)
	if !ok {
		t.Fatal("expected successful decrypt")
	}
	testutil.AssertBytesEqual(t, "OAEP round trip plaintext", msg, pt)

	tampered := append([]byte(nil), ct...)
	tampered[0] ^= 0x01
	if _, ok := OaepDecrypt(priv, opts, tampered); ok {
		t.Fatal("expected decrypt of a tampered ciphertext to fail")
	}
}

func TestOAEPRejectsOversizedMessage(t *testing.T) {
	rng := csprng.Default()
	priv, err := Generate(rng, 1024)
	if err != nil {
		t.Fatal(err)
	}
	opts := OaepOptions{Hash: hashalgo.SHA256}
	maxLen := MaxMessageLen(1024, hashalgo.SHA256)
	tooBig := make([]byte, maxLen+1)
	if _, err := OaepEncrypt(rng, &priv.PublicKey, opts, tooBig); err == nil {
		t.Fatal("expected an error for a message longer than the OAEP maximum")
	}
}

func TestPkcs1v15SignVerify(t *testing.T) {
	rng := csprng.Default()
	priv, err := Generate(rng, 2048)
	if err != nil {
		t.Fatal(err)
	}
	h, _ := hashalgo.Init(hashalgo.SHA256)
	h.Update([]byte("message to sign"))
	digest := h.Final()

	sig, err := Pkcs1v15Sign(priv, hashalgo.SHA256, digest)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig) != priv.Width()/8 {
		t.Fatalf("signature length %d, want %d", len(sig), priv.Width()/8)
	}
	if !Pkcs1v15Verify(&priv.PublicKey, hashalgo.SHA256, digest, sig) {
		t.Fatal("expected a valid signature to verify")
	}

	badDigest := append([]byte(nil), digest...)
	badDigest[0] ^= 0x01
	if Pkcs1v15Verify(&priv.PublicKey, hashalgo.SHA256, badDigest, sig) {
		t.Fatal("expected verify to fail against a different digest")
	}
}

func TestPSSSignVerify(t *testing.T) {
	rng := csprng.Default()
	priv, err := Generate(rng, 2048)
	if err != nil {
		t.Fatal(err)
	}
	h, _ := hashalgo.Init(hashalgo.SHA256)
	h.Update([]byte("message to sign"))
	digest := h.Final()

	sig, err := PssSign(rng, priv, hashalgo.SHA256, digest, 32)
	if err != nil {
		t.Fatal(err)
	}
	if !PssVerify(&priv.PublicKey, hashalgo.SHA256, digest, sig, 32) {
		t.Fatal("expected a valid PSS signature to verify")
	}

	badDigest := append([]byte(nil), digest...)
	badDigest[0] ^= 0x01
	if PssVerify(&priv.PublicKey, hashalgo.SHA256, badDigest, sig, 32) {
		t.Fatal("expected PSS verify to fail against a different digest")
	}

	// PSS is probabilistic: signing the same digest twice should produce
	// different signatures (different random salts), both verifying.
	sig2, err := PssSign(rng, priv, hashalgo.SHA256, digest, 32)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(sig, sig2) {
		t.Fatal("expected two PSS signatures over the same digest to differ")
	}
	if !PssVerify(&priv.PublicKey, hashalgo.SHA256, digest, sig2, 32) {
		t.Fatal("expected the second valid PSS signature to verify")
	}
}
