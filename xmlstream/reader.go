// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xmlstream

import (
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"
)

// Stats counts element traffic through a Reader. Live never exceeds
// MaxLive, and MaxLive stays proportional to document depth as long as
// consumers release every element after its Close event.
type Stats struct {
	Created  int64
	Released int64
	Live     int64
	MaxLive  int64
}

// Reader produces the event stream for one document. It is not safe
// for concurrent use; a single ingestion pulls from it sequentially.
type Reader struct {
	name   string
	dec    *xml.Decoder
	closer io.Closer
	stack  []*Element
	free   []*Element
	stats  Stats
	err    error
	done   bool
}

func newReader(name string, r io.Reader, c io.Closer) *Reader {
	return &Reader{
		name:   name,
		dec:    xml.NewDecoder(r),
		closer: c,
	}
}

// Name returns the identity of the source this Reader was opened from.
func (r *Reader) Name() string { return r.name }

// Stats returns a snapshot of the Reader's element accounting.
func (r *Reader) Stats() Stats { return r.stats }

// Next implements Iterator. It advances the tokenizer until the next
// element boundary and returns the corresponding event. At end of
// input it returns an Event with a nil Elem. A tokenizer error is
// terminal and is returned for every subsequent call.
func (r *Reader) Next() (Event, error) {
	if r.err != nil {
		return Event{}, r.err
	}
	if r.done {
		return Event{}, nil
	}
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.done = true
				if len(r.stack) > 0 {
					r.err = errors.Newf("unexpected end of document inside <%s>", r.stack[len(r.stack)-1].Tag)
					return Event{}, r.err
				}
				return Event{}, nil
			}
			r.err = err
			return Event{}, r.err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if n := len(r.stack); n > 0 {
				r.stack[n-1].hasChild = true
			}
			e := r.alloc()
			e.Tag = tok.Name.Local
			for _, a := range tok.Attr {
				e.attrs[a.Name.Local] = a.Value
			}
			r.stack = append(r.stack, e)
			return Event{Phase: Open, Elem: e}, nil
		case xml.CharData:
			if n := len(r.stack); n > 0 && !r.stack[n-1].hasChild {
				e := r.stack[n-1]
				e.text = append(e.text, tok...)
			}
		case xml.EndElement:
			n := len(r.stack)
			e := r.stack[n-1]
			r.stack[n-1] = nil
			r.stack = r.stack[:n-1]
			return Event{Phase: Close, Elem: e}, nil
		}
		// Comments, directives and processing instructions are skipped.
	}
}

func (r *Reader) alloc() *Element {
	r.stats.Created++
	r.stats.Live++
	if r.stats.Live > r.stats.MaxLive {
		r.stats.MaxLive = r.stats.Live
	}
	if n := len(r.free); n > 0 {
		e := r.free[n-1]
		r.free[n-1] = nil
		r.free = r.free[:n-1]
		e.owner = r
		return e
	}
	return &Element{owner: r, attrs: make(map[string]string, 4)}
}

// Close releases the underlying resource, if the Reader owns one, and
// releases any elements still open. Close is idempotent.
func (r *Reader) Close() error {
	for i := len(r.stack) - 1; i >= 0; i-- {
		r.stack[i].Release()
	}
	r.stack = r.stack[:0]
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}
