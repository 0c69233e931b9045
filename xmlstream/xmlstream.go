// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package xmlstream provides a pull-style event source over an XML
// document. A Reader yields (phase, element) pairs in document order
// without ever materializing the document: the caller sees each
// element once when it opens and once when it closes, and is expected
// to release the element after handling its Close event. Released
// elements are recycled, so the number of live elements is bounded by
// the nesting depth of the document rather than its size.
package xmlstream

// Phase distinguishes the two events produced for every element.
type Phase uint8

const (
	// Open is emitted when an element's start tag has been read. The
	// element's attributes are populated; its text is not yet complete.
	Open Phase = iota
	// Close is emitted when an element's end tag has been read. The
	// element is fully populated and must be released by the consumer
	// once it has been handled.
	Close
)

// Event is one step of the stream: the phase and the element it
// applies to. The same *Element is delivered for an element's Open and
// Close events.
type Event struct {
	Phase Phase
	Elem  *Element
}

// Iterator is the pull interface implemented by Reader and by stream
// transforms wrapping it. Next returns the next event, or an Event
// with a nil Elem once the stream is exhausted. Errors are terminal:
// after a non-nil error the iterator must not be advanced again.
type Iterator interface {
	Next() (Event, error)
}
