// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package der implements a DER (Distinguished Encoding Rules) codec: a
recursive tag/length/value reader and writer covering the ASN.1 universal
types X.509 certificates use, plus an opaque escape hatch for
application/context/private-class elements this toolkit doesn't need to
interpret. It also implements RFC 7468 PEM framing on top.

An Element is a tagged union: its Class and Tag identify what kind of
value it holds, and typed accessor methods (Integer, OID, BitString, and
so on) validate and decode the element's content octets on demand rather
than eagerly populating a dozen mutually-exclusive struct fields. This is
the generalization of the fixed-offset SEQUENCE{r,s} reader
ModChain-secp256k1's signature.go hand-rolls for exactly one shape: the
same tag/length/value walk, recursive and with typed handling for the
seventeen universal types listed in tag.go rather than one.

PemDocument has a Scrub method that overwrites its decoded body with
zeroes. The codec does not call it itself: parsed and decoded buffers,
including PEM bodies and OCTET STRING payloads, are left as they are.
*/
package der
