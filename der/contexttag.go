// Copyright (c) 2024 The ModChain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package der

// X.509 makes heavy use of context-tagged fields (AuthorityKeyIdentifier's
// [0]/[1]/[2], EC private keys' [0] curve / [1] public key, GeneralName's
// tag-per-choice encoding, and so on), in both their EXPLICIT form (the
// context tag wraps a normal, independently-taggable inner element) and
// IMPLICIT form (the context tag simply replaces the inner element's own
// tag, carrying its constructed bit and content through unchanged). These
// helpers convert between a context-tagged element and the
// universal-class element it stands in for.

// WrapExplicit wraps inner in an EXPLICIT context-class tag: a constructed
// element of the given tag number whose sole child is inner, unchanged.
func WrapExplicit(tag uint32, inner *Element) *Element {
	return newConstructed(ClassContext, tag, []*Element{inner})
}

// UnwrapExplicit reverses WrapExplicit: e must be a constructed
// context-class element with tag number `tag` and exactly one child, which
// is returned.
func UnwrapExplicit(e *Element, tag uint32) (*Element, error) {
	if e.class != ClassContext || e.tag != tag {
		return nil, makeError(ErrTypeMismatch, "element is not the expected EXPLICIT context tag")
	}
	if !e.constructed || len(e.children) != 1 {
		return nil, makeError(ErrTypeMismatch, "EXPLICIT context tag must wrap exactly one child")
	}
	return e.children[0], nil
}

// WrapImplicit re-tags inner as an IMPLICIT context-class element: the
// context tag and class replace inner's own class and tag, but its
// constructed bit and content (or children) pass through unchanged.
func WrapImplicit(tag uint32, inner *Element) *Element {
	out := &Element{
		class:       ClassContext,
		constructed: inner.constructed,
		tag:         tag,
		content:     inner.content,
		contentValid: inner.contentValid,
		children:    inner.children,
	}
	return out
}

// UnwrapImplicit reverses WrapImplicit, re-tagging e as a universal element
// with the given universal tag number so its typed accessors (Integer,
// BitString, and so on) apply. e's constructed bit and content pass
// through unchanged; the caller asserts which universal type the content
// actually holds.
func UnwrapImplicit(e *Element, tag uint32, universalTag uint32) (*Element, error) {
	if e.class != ClassContext || e.tag != tag {
		return nil, makeError(ErrTypeMismatch, "element is not the expected IMPLICIT context tag")
	}
	out := &Element{
		class:        ClassUniversal,
		constructed:  e.constructed,
		tag:          universalTag,
		content:      e.content,
		contentValid: e.contentValid,
		children:     e.children,
		diag:         e.diag,
	}
	if err := validateUniversal(out); err != nil {
		return nil, err
	}
	return out, nil
}

// IsContextTag reports whether e is a context-class element with the
// given tag number.
func (e *Element) IsContextTag(tag uint32) bool {
	return e.class == ClassContext && e.tag == tag
}
