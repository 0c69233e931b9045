// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xmlstream

// Element is a node of the input stream. Elements are ephemeral: they
// are owned by the Reader that produced them and recycled on Release,
// so no component may retain a reference past the handling of the
// element's Close event.
type Element struct {
	// Tag is the element's local name.
	Tag string

	owner    *Reader
	attrs    map[string]string
	text     []byte
	hasChild bool
}

// Attr returns the value of the named attribute, or "" if the
// attribute is absent.
func (e *Element) Attr(name string) string {
	return e.attrs[name]
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// Text returns the element's character data. Only the text preceding
// the first child element is retained; trailing data between or after
// child elements is discarded, which is sufficient for the leaf
// elements whose text carries meaning.
//
// Text is only complete once the element's Close event has been seen.
func (e *Element) Text() string {
	return string(e.text)
}

// SetText replaces the element's character data. Stream transforms use
// this to rewrite an element's text in place before it reaches the
// downstream consumer.
func (e *Element) SetText(s string) {
	e.text = append(e.text[:0], s...)
}

// Release returns the element to its Reader for reuse. It is safe to
// call more than once; only the first call has an effect. After
// Release the element's contents are gone and the pointer must not be
// used again.
func (e *Element) Release() {
	r := e.owner
	if r == nil {
		return
	}
	e.owner = nil
	e.Tag = ""
	clear(e.attrs)
	e.text = e.text[:0]
	e.hasChild = false
	r.stats.Released++
	r.stats.Live--
	r.free = append(r.free, e)
}
