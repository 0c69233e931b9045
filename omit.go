// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package execlog

import "github.com/execlog/execlog/xmlstream"

// omitIterator drops entire kw/for/if subtrees from the event stream.
// Teardown subtrees are not omitted here so that suite teardown status
// can still be checked after the parse; when detail is excluded they
// are removed from the built tree by model.RemoveDetail.
//
// Note that while/try/iter subtrees are not omitted on their own; they
// only disappear when nested inside an omitted subtree.
type omitIterator struct {
	it      xmlstream.Iterator
	omitted int
}

func newOmitIterator(it xmlstream.Iterator) *omitIterator {
	return &omitIterator{it: it}
}

// Next implements xmlstream.Iterator. Suppressed elements are released
// on their Close event; the downstream consumer never sees them.
func (o *omitIterator) Next() (xmlstream.Event, error) {
	for {
		ev, err := o.it.Next()
		if err != nil || ev.Elem == nil {
			return ev, err
		}
		tag := ev.Elem.Tag
		omit := (tag == "kw" || tag == "for" || tag == "if") &&
			ev.Elem.Attr("type") != "TEARDOWN"
		open := ev.Phase == xmlstream.Open
		if omit && open {
			o.omitted++
		}
		if o.omitted == 0 {
			return ev, nil
		}
		if !open {
			if omit {
				o.omitted--
			}
			ev.Elem.Release()
		}
	}
}
