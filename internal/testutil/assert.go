// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package testutil holds small assertion helpers shared by this module's
// package tests, so a failing comparison reports both sides instead of a
// bare boolean.
package testutil

import (
	"fmt"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/ModChain/x509kit/bigint"
)

// AssertIntNonZero reports a test failure if actual is the zero Int.
func AssertIntNonZero(t *testing.T, description string, actual *bigint.Int) {
	t.Helper()
	if actual.Sign() == 0 {
		t.Errorf("expected %s to be non-zero", description)
	}
}

// AssertIntsEqual reports a test failure if expected and actual don't
// compare equal.
func AssertIntsEqual(t *testing.T, description string, expected, actual *bigint.Int) {
	t.Helper()
	if expected.Cmp(actual) != 0 {
		t.Errorf("unexpected %s\nexpected: %s\nactual:   %s\n", description, expected, actual)
	}
}

// AssertBytesEqual reports a test failure if expected and actual differ,
// naming the number of differing byte positions.
func AssertBytesEqual(t *testing.T, description string, expected, actual []byte) {
	t.Helper()
	if err := bytesEqual(expected, actual); err != nil {
		t.Errorf("unexpected %s: %v", description, err)
	}
}

func bytesEqual(expected, actual []byte) error {
	minLen := len(expected)
	if len(actual) < minLen {
		minLen = len(actual)
	}
	diff := 0
	for i := 0; i < minLen; i++ {
		if expected[i] != actual[i] {
			diff++
		}
	}
	diff += len(expected) - minLen
	diff += len(actual) - minLen
	if diff != 0 {
		return fmt.Errorf("byte slices differ in %d place(s)\nexpected: % x\nactual:   % x", diff, expected, actual)
	}
	return nil
}

// AssertStringsEqual reports a test failure if expected and actual differ.
func AssertStringsEqual(t *testing.T, description string, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("unexpected %s\nexpected: %s\nactual:   %s\n", description, expected, actual)
	}
}

// AssertBoolsEqual reports a test failure if expected and actual differ.
func AssertBoolsEqual(t *testing.T, description string, expected, actual bool) {
	t.Helper()
	if expected != actual {
		t.Errorf("unexpected %s\nexpected: %v\nactual:   %v\n", description, expected, actual)
	}
}

// AssertUint32SlicesEqual reports a test failure if expected and actual
// don't hold the same sequence of OID arcs (or any other uint32 slice).
func AssertUint32SlicesEqual(t *testing.T, description string, expected, actual []uint32) {
	t.Helper()
	if !slices.Equal(expected, actual) {
		t.Errorf("unexpected %s\nexpected: %v\nactual:   %v\n", description, expected, actual)
	}
}
