// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/ModChain/x509kit/bigint"
	"github.com/ModChain/x509kit/csprng"
	"github.com/ModChain/x509kit/internal/testutil"
)

var allCurves = []Curve{P192R1, P224R1, P256R1, P384R1, P521R1, P256SM2}

func TestBasePointOnCurve(t *testing.T) {
	for _, c := range allCurves {
		p, err := c.Params()
		if err != nil {
			t.Fatalf("%s: Params: %v", c, err)
		}
		if !c.IsOnCurve(p.Gx, p.Gy) {
			t.Errorf("%s: base point is not on curve", c)
		}
	}
}

func TestPointEncodeDecodeRoundTrip(t *testing.T) {
	rng := csprng.Default()
	for _, c := range allCurves {
		_, q, err := GenerateKey(rng, c)
		if err != nil {
			t.Fatalf("%s: GenerateKey: %v", c, err)
		}
		enc := q.Encode()
		if len(enc) != 1+2*c.ByteSize() {
			t.Errorf("%s: encoded length %d, want %d", c, len(enc), 1+2*c.ByteSize())
		}
		if enc[0] != 0x04 {
			t.Errorf("%s: expected uncompressed leading byte 0x04", c)
		}
		rt, err := Decode(c, enc)
		if err != nil {
			t.Fatalf("%s: Decode: %v", c, err)
		}
		if !rt.Equal(q) {
			t.Errorf("%s: round trip produced a different point", c)
		}
		if !rt.Valid() {
			t.Errorf("%s: decoded point is not on curve", c)
		}
	}
}

func TestInfinityEncodeDecode(t *testing.T) {
	for _, c := range allCurves {
		inf := Infinity(c)
		enc := inf.Encode()
		if !bytes.Equal(enc, []byte{0x00}) {
			t.Errorf("%s: infinity encoding = %x, want 00", c, enc)
		}
		rt, err := Decode(c, enc)
		if err != nil {
			t.Fatal(err)
		}
		if !rt.IsInfinity() {
			t.Errorf("%s: decoded point should be infinity", c)
		}
	}
}

func TestPointEqualityIsCurveAgnostic(t *testing.T) {
	p1, _ := P256R1.Params()
	p2 := NewPoint(P256R1, p1.Gx, p1.Gy)
	p3 := NewPoint(P384R1, p1.Gx, p1.Gy)
	if !p2.Equal(p3) {
		t.Fatal("expected points with the same coordinates on different curves to compare equal")
	}
}

// TestECDSASignVerify checks the fundamental ECDSA property for every
// curve: for a random scalar d with public point Q, sign(msg, d) then
// verify(msg, Q) is true, and verifying a single flipped bit in the digest
// is false.
func TestECDSASignVerify(t *testing.T) {
	rng := csprng.Default()
	msg := []byte("the quick brown fox jumps over the lazy dog")
	digest := sha256.Sum256(msg)

	for _, c := range allCurves {
		priv, pub, err := GenerateKey(rng, c)
		if err != nil {
			t.Fatalf("%s: GenerateKey: %v", c, err)
		}
		_, k, err := GenerateKey(rng, c)
		if err != nil {
			t.Fatalf("%s: ephemeral GenerateKey: %v", c, err)
		}

		sig, err := Sign(c, priv, k, digest[:])
		if err != nil {
			t.Fatalf("%s: Sign: %v", c, err)
		}
		if !Verify(pub, digest[:], sig) {
			t.Errorf("%s: Verify returned false for a valid signature", c)
		}

		flipped := append([]byte(nil), digest[:]...)
		flipped[0] ^= 0x01
		if Verify(pub, flipped, sig) {
			t.Errorf("%s: Verify returned true for a tampered digest", c)
		}
	}
}

func TestECDSARejectsEqualScalars(t *testing.T) {
	_, _, err := GenerateKey(csprng.Default(), P256R1)
	if err != nil {
		t.Fatal(err)
	}
	d := bigint.NewInt(7)
	digest := sha256.Sum256([]byte("x"))
	if _, err := Sign(P256R1, d, d, digest[:]); err == nil {
		t.Fatal("expected error when regular and ephemeral scalars are equal")
	}
}

// TestECDH checks that both parties derive the same shared x-coordinate.
func TestECDH(t *testing.T) {
	rng := csprng.Default()
	for _, c := range allCurves {
		dA, qA, err := GenerateKey(rng, c)
		if err != nil {
			t.Fatalf("%s: GenerateKey: %v", c, err)
		}
		dB, qB, err := GenerateKey(rng, c)
		if err != nil {
			t.Fatalf("%s: GenerateKey: %v", c, err)
		}

		secretA, err := GenerateSharedSecret(dA, qB)
		if err != nil {
			t.Fatalf("%s: GenerateSharedSecret (A): %v", c, err)
		}
		secretB, err := GenerateSharedSecret(dB, qA)
		if err != nil {
			t.Fatalf("%s: GenerateSharedSecret (B): %v", c, err)
		}
		testutil.AssertIntsEqual(t, c.String()+": shared secret", secretA, secretB)
	}
}

func TestValidPrivateScalar(t *testing.T) {
	n := P256R1.N()
	if ValidPrivateScalar(P256R1, bigint.NewInt(0)) {
		t.Fatal("0 should be an invalid private scalar")
	}
	if ValidPrivateScalar(P256R1, new(bigint.Int).FromBig(n)) {
		t.Fatal("n should be an invalid private scalar")
	}
	if !ValidPrivateScalar(P256R1, bigint.NewInt(1)) {
		t.Fatal("1 should be a valid private scalar")
	}
}
