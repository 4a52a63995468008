// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bigint

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ModChain/x509kit/csprng"
)

// TestSignedEncoding exercises the minimal two's-complement boundary cases:
// 128 -> 00 80, -128 -> 80, -129 -> FF 7F, 0 -> 00.
func TestSignedEncoding(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x01}},
		{"neg one", -1, []byte{0xFF}},
		{"127", 127, []byte{0x7F}},
		{"128", 128, []byte{0x00, 0x80}},
		{"neg128", -128, []byte{0x80}},
		{"neg129", -129, []byte{0xFF, 0x7F}},
		{"255", 255, []byte{0x00, 0xFF}},
	}

	for _, test := range tests {
		i := NewInt(test.in)
		got := i.Signed()
		if !bytes.Equal(got, test.want) {
			t.Errorf("%s: Signed() = %x, want %x", test.name, got, test.want)
		}
		if i.SignedLen() != len(test.want) {
			t.Errorf("%s: SignedLen() = %d, want %d", test.name, i.SignedLen(), len(test.want))
		}

		rt := new(Int).SetSigned(got)
		if rt.Cmp(i) != 0 {
			t.Errorf("%s: round trip got %s, want %s", test.name, rt, i)
		}
	}
}

// TestSignedRoundTripProperty checks that for a spread of signed values,
// SetSigned(Signed(n)) == n.
func TestSignedRoundTripProperty(t *testing.T) {
	vals := []int64{
		0, 1, -1, 2, -2, 1000000, -1000000,
		1<<31 - 1, -(1 << 31), 1 << 40, -(1 << 40),
	}
	for _, v := range vals {
		i := NewInt(v)
		rt := new(Int).SetSigned(i.Signed())
		if rt.Cmp(i) != 0 {
			t.Errorf("round trip failed for %d: got %s", v, rt)
		}
	}

	// Also check a large value derived from math/big directly.
	big1 := new(big.Int)
	big1.SetString("123456789012345678901234567890", 10)
	i := new(Int).FromBig(big1)
	rt := new(Int).SetSigned(i.Signed())
	if rt.Cmp(i) != 0 {
		t.Errorf("round trip failed for large positive value")
	}
	i.Neg()
	rt = new(Int).SetSigned(i.Signed())
	if rt.Cmp(i) != 0 {
		t.Errorf("round trip failed for large negative value")
	}
}

func TestUnsignedRejectsNegative(t *testing.T) {
	i := NewInt(-5)
	if _, err := i.Unsigned(); err == nil {
		t.Fatal("expected error emitting a negative Int as unsigned")
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		in   int64
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{127, 7},
		{128, 8},
		{255, 8},
		{256, 9},
	}
	for _, test := range tests {
		i := NewInt(test.in)
		if got := i.Width(); got != test.want {
			t.Errorf("Width(%d) = %d, want %d", test.in, got, test.want)
		}
	}
}

func TestBitOps(t *testing.T) {
	i := NewInt(0)
	i.SetBit(3, true)
	if !i.Bit(3) {
		t.Fatal("expected bit 3 to be set")
	}
	if i.Cmp(NewInt(8)) != 0 {
		t.Fatalf("got %s, want 8", i)
	}
	i.ClearBit(3)
	if i.Cmp(NewInt(0)) != 0 {
		t.Fatalf("got %s, want 0", i)
	}
}

func TestArithmetic(t *testing.T) {
	a, b := NewInt(17), NewInt(5)
	sum := new(Int).Add(a, b)
	if sum.Cmp(NewInt(22)) != 0 {
		t.Fatalf("Add: got %s, want 22", sum)
	}

	q, r, err := new(Int).DivMod(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if q.Cmp(NewInt(3)) != 0 || r.Cmp(NewInt(2)) != 0 {
		t.Fatalf("DivMod: got q=%s r=%s, want 3, 2", q, r)
	}

	if _, _, err := new(Int).DivMod(a, NewInt(0)); err == nil {
		t.Fatal("expected divide-by-zero error")
	}

	g := new(Int).Gcd(NewInt(48), NewInt(18))
	if g.Cmp(NewInt(6)) != 0 {
		t.Fatalf("Gcd: got %s, want 6", g)
	}

	exp := new(Int).Exp(NewInt(2), NewInt(10))
	if exp.Cmp(NewInt(1024)) != 0 {
		t.Fatalf("Exp: got %s, want 1024", exp)
	}

	expMod := new(Int).ExpMod(NewInt(4), NewInt(13), NewInt(497))
	if expMod.Cmp(NewInt(445)) != 0 {
		t.Fatalf("ExpMod: got %s, want 445", expMod)
	}
}

func TestGeneratePrime(t *testing.T) {
	rng := csprng.Default()
	i := new(Int)
	if err := i.GeneratePrime(rng, 128); err != nil {
		t.Fatal(err)
	}
	if !i.IsProbablyPrime() {
		t.Fatal("generated value does not pass primality test")
	}
	if i.Width() != 128 {
		t.Fatalf("got width %d, want 128", i.Width())
	}
	if i.Bit(0) != true {
		t.Fatal("expected generated prime to be odd")
	}
}
