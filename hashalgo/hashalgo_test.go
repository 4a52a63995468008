// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashalgo

import (
	"bytes"
	"testing"
)

func TestHasherFinalMatchesSize(t *testing.T) {
	algs := []Algorithm{MD5, SHA1, SHA224, SHA256, SHA384, SHA512, SHA512_224, SHA512_256, SM3}
	for _, alg := range algs {
		h, err := Init(alg)
		if err != nil {
			t.Fatalf("%s: Init: %v", alg, err)
		}
		h.Update([]byte("the quick brown fox"))
		digest := h.Final()
		if len(digest) != alg.Size() {
			t.Errorf("%s: digest length %d, want %d", alg, len(digest), alg.Size())
		}
	}
}

func TestGetTagIsNonDestructive(t *testing.T) {
	h, err := Init(SHA256)
	if err != nil {
		t.Fatal(err)
	}
	h.Update([]byte("hello"))
	tag1 := h.GetTag(8)
	h.Update([]byte(" world"))
	full := h.Final()

	// GetTag must not have consumed or reset state: appending " world" after
	// it should still change the final digest from what GetTag saw.
	if bytes.Equal(tag1, full[:8]) {
		t.Fatal("expected digest to change after further Update following GetTag")
	}

	// The final digest must cover both writes, i.e. match a fresh hash of
	// the whole message.
	ref, err := Init(SHA256)
	if err != nil {
		t.Fatal(err)
	}
	ref.Update([]byte("hello world"))
	if !bytes.Equal(full, ref.Final()) {
		t.Fatal("expected GetTag to leave the running hash state intact")
	}
}

func TestFinalResetsState(t *testing.T) {
	h, err := Init(SHA256)
	if err != nil {
		t.Fatal(err)
	}
	h.Update([]byte("message one"))
	d1 := h.Final()

	h.Update([]byte("message one"))
	d2 := h.Final()

	if !bytes.Equal(d1, d2) {
		t.Fatal("expected Final to reset the hasher to its initial state")
	}
}

func TestHmacResetRestoresKey(t *testing.T) {
	key := []byte("secret-key")
	m, err := InitHmac(key, SHA256)
	if err != nil {
		t.Fatal(err)
	}
	m.Update([]byte("message"))
	tag1 := m.Final()

	m.Reset()
	m.Update([]byte("message"))
	tag2 := m.Final()

	if !bytes.Equal(tag1, tag2) {
		t.Fatal("expected Reset to restore HMAC to its post-init state")
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	if _, err := Init(Algorithm(999)); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
	if _, err := InitHmac([]byte("k"), Algorithm(999)); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}
