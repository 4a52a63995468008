// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package der

import (
	"fmt"

	"github.com/ModChain/x509kit/bigint"
)

// validateUniversal checks DER's per-type content invariants (ITU-T X.690)
// for the universal types this package interprets, so malformed content
// fails at parse time instead of surfacing later as a confusing accessor
// error. Universal tags outside the recognized set pass through
// unvalidated.
func validateUniversal(e *Element) error {
	switch e.tag {
	case TagBoolean:
		if len(e.content) != 1 {
			return makeErrorAt(ErrInvalidBoolean, "BOOLEAN content must be exactly one byte", e.diag.Offset)
		}
	case TagInteger:
		if len(e.content) == 0 {
			return makeErrorAt(ErrEmptyInteger, "INTEGER content must not be empty", e.diag.Offset)
		}
	case TagBitString:
		if len(e.content) == 0 {
			return makeErrorAt(ErrInvalidBitString, "BIT STRING content must not be empty", e.diag.Offset)
		}
		unused := e.content[0]
		if unused > 7 {
			return makeErrorAt(ErrInvalidBitString, "BIT STRING unused-bits count must be 0-7", e.diag.Offset)
		}
		if len(e.content) == 1 && unused != 0 {
			return makeErrorAt(ErrInvalidBitString, "an empty BIT STRING must declare zero unused bits", e.diag.Offset)
		}
		if unused > 0 && e.content[len(e.content)-1]&(byte(1)<<unused-1) != 0 {
			return makeErrorAt(ErrNonZeroPadding, "BIT STRING padding bits must be zero", e.diag.Offset)
		}
	case TagOID:
		if len(e.content) == 0 {
			return makeErrorAt(ErrEmptyOID, "OBJECT IDENTIFIER content must not be empty", e.diag.Offset)
		}
		if _, err := decodeOID(e.content); err != nil {
			return err
		}
	case TagNull:
		if len(e.content) != 0 {
			return makeErrorAt(ErrInvalidBitString, "NULL content must be empty", e.diag.Offset)
		}
	case TagSequence, TagSet:
		if !e.constructed {
			return makeErrorAt(ErrNotConstructed, fmt.Sprintf("%s must be constructed", universalTagName(e.tag)), e.diag.Offset)
		}
	case TagUTCTime:
		if _, err := parseUTCTime(e.content); err != nil {
			return err
		}
	case TagGeneralizedTime:
		if _, err := parseGeneralizedTime(e.content); err != nil {
			return err
		}
	}
	return nil
}

// ---- BOOLEAN ----

// NewBoolean returns a BOOLEAN element.
func NewBoolean(v bool) *Element {
	b := byte(0x00)
	if v {
		b = 0xFF
	}
	return newPrimitive(ClassUniversal, TagBoolean, []byte{b})
}

// Bool decodes a BOOLEAN element. Per DER, only 0x00 (false) and 0xFF
// (true) are canonical, but this accepts any nonzero byte as true since
// that is what BER producers in the wild sometimes emit.
func (e *Element) Bool() (bool, error) {
	if !e.Is(TagBoolean) {
		return false, makeError(ErrTypeMismatch, "element is not a BOOLEAN")
	}
	return e.content[0] != 0x00, nil
}

// ---- INTEGER ----

// NewInteger returns an INTEGER element encoding v in minimal two's
// complement form.
func NewInteger(v *bigint.Int) *Element {
	return newPrimitive(ClassUniversal, TagInteger, v.Signed())
}

// Integer decodes an INTEGER element.
func (e *Element) Integer() (*bigint.Int, error) {
	if !e.Is(TagInteger) {
		return nil, makeError(ErrTypeMismatch, "element is not an INTEGER")
	}
	return new(bigint.Int).SetSigned(e.content), nil
}

// ---- BIT STRING ----

// NewBitString returns a BIT STRING element holding the first widthBits
// bits of bits (most significant bit first), zero-padding the final byte.
func NewBitString(bits []byte, widthBits int) *Element {
	nbytes := (widthBits + 7) / 8
	unused := nbytes*8 - widthBits
	content := make([]byte, 1+nbytes)
	content[0] = byte(unused)
	copy(content[1:], bits[:nbytes])
	if unused > 0 {
		content[len(content)-1] &= 0xFF << uint(unused)
	}
	return newPrimitive(ClassUniversal, TagBitString, content)
}

// BitString decodes a BIT STRING element, returning its bit payload (with
// any trailing pad bits zeroed) and its width in bits.
func (e *Element) BitString() (bits []byte, width int, err error) {
	if !e.Is(TagBitString) {
		return nil, 0, makeError(ErrTypeMismatch, "element is not a BIT STRING")
	}
	unused := int(e.content[0])
	payload := e.content[1:]
	width = len(payload)*8 - unused
	return payload, width, nil
}

// OctetAlignedBitString decodes a BIT STRING that is required to be a
// whole number of bytes (zero unused bits), as X.509's SubjectPublicKeyInfo
// and signature fields always are.
func (e *Element) OctetAlignedBitString() ([]byte, error) {
	bits, width, err := e.BitString()
	if err != nil {
		return nil, err
	}
	if width%8 != 0 {
		return nil, makeError(ErrBitStringNotOctetAligned, "BIT STRING is not a whole number of bytes")
	}
	return bits, nil
}

// ---- OCTET STRING ----

// NewOctetString returns an OCTET STRING element.
func NewOctetString(b []byte) *Element {
	return newPrimitive(ClassUniversal, TagOctetString, append([]byte(nil), b...))
}

// OctetString decodes an OCTET STRING element.
func (e *Element) OctetString() ([]byte, error) {
	if !e.Is(TagOctetString) {
		return nil, makeError(ErrTypeMismatch, "element is not an OCTET STRING")
	}
	return e.content, nil
}

// ---- NULL ----

// NewNull returns a NULL element.
func NewNull() *Element {
	return newPrimitive(ClassUniversal, TagNull, nil)
}

// IsNull reports whether e is a NULL element.
func (e *Element) IsNull() bool {
	return e.Is(TagNull)
}

// ---- strings ----

// newStringElement returns a universal string-type element of the given
// tag holding the raw bytes of s. This package does not validate any
// charset restriction its tag nominally implies (PrintableString's
// alphabet, BMPString's UCS-2 alignment, and so on); it stores and returns
// content bytes as given.
func newStringElement(tag uint32, s string) *Element {
	return newPrimitive(ClassUniversal, tag, []byte(s))
}

// NewUTF8String returns a UTF8String element.
func NewUTF8String(s string) *Element { return newStringElement(TagUTF8String, s) }

// NewPrintableString returns a PrintableString element.
func NewPrintableString(s string) *Element { return newStringElement(TagPrintableString, s) }

// NewTeletexString returns a TeletexString element.
func NewTeletexString(s string) *Element { return newStringElement(TagTeletexString, s) }

// NewIA5String returns an IA5String element.
func NewIA5String(s string) *Element { return newStringElement(TagIA5String, s) }

// NewVisibleString returns a VisibleString element.
func NewVisibleString(s string) *Element { return newStringElement(TagVisibleString, s) }

// NewUniversalString returns a UniversalString element.
func NewUniversalString(s string) *Element { return newStringElement(TagUniversalString, s) }

// NewBMPString returns a BMPString element.
func NewBMPString(s string) *Element { return newStringElement(TagBMPString, s) }

// StringValue returns the raw content bytes of any of the string-typed
// universal elements, converted to a Go string with no charset
// translation.
func (e *Element) StringValue() (string, error) {
	switch e.tag {
	case TagUTF8String, TagPrintableString, TagTeletexString, TagIA5String,
		TagVisibleString, TagUniversalString, TagBMPString:
		if !e.IsUniversal() {
			return "", makeError(ErrTypeMismatch, "element is not a universal string type")
		}
		return string(e.content), nil
	default:
		return "", makeError(ErrTypeMismatch, "element is not a string type")
	}
}

// ---- SEQUENCE / SET ----

// NewSequence returns a SEQUENCE element with the given children.
func NewSequence(children ...*Element) *Element {
	return newConstructed(ClassUniversal, TagSequence, children)
}

// NewSet returns a SET element with the given children.
func NewSet(children ...*Element) *Element {
	return newConstructed(ClassUniversal, TagSet, children)
}

// IsSequence reports whether e is a SEQUENCE.
func (e *Element) IsSequence() bool { return e.Is(TagSequence) }

// IsSet reports whether e is a SET.
func (e *Element) IsSet() bool { return e.Is(TagSet) }
