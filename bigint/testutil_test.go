// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// This file lives in the bigint_test package, not bigint, because
// internal/testutil imports bigint itself; a white-box test file can't
// import it back without a cycle.
package bigint_test

import (
	"testing"

	"github.com/ModChain/x509kit/bigint"
	"github.com/ModChain/x509kit/internal/testutil"
)

func TestSharedAssertHelpersAgainstInt(t *testing.T) {
	a := bigint.NewInt(12345)
	b := new(bigint.Int).SetSigned(a.Signed())
	testutil.AssertIntsEqual(t, "round-tripped value", a, b)
	testutil.AssertIntNonZero(t, "round-tripped value", b)
}
