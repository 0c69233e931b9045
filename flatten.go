// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package execlog

import (
	"html"
	"strings"

	"github.com/execlog/execlog/xmlstream"
)

// Container tags: element kinds that can nest executable steps and are
// candidates for flattening.
func isContainer(tag string) bool {
	switch tag {
	case "kw", "for", "while", "iter", "if", "try":
		return true
	}
	return false
}

// flattenIterator collapses matched container subtrees into a single
// summary status message while letting msg events through, so log
// messages inside the collapsed region are preserved.
//
// The matching and counter handling is performance sensitive: the
// iterator runs on every event of potentially very large documents,
// so inactive matchers are never evaluated.
type flattenIterator struct {
	it     xmlstream.Iterator
	byName flattenByName
	byType flattenByType
	byTags flattenByTags

	// started is -1 while not flattening; once a container matches it
	// counts nested container entries so only the outermost match
	// rewrites its status and the region's end can be recognized.
	started int
	// inside counts containment within containers so that accumulated
	// <tag> elements are known to belong to the current test, not one
	// of its steps.
	inside int
	tags   []string
}

func newFlattenIterator(it xmlstream.Iterator, specs []FlattenSpec) (*flattenIterator, error) {
	byName, err := newFlattenByName(specs)
	if err != nil {
		return nil, err
	}
	byType, err := newFlattenByType(specs)
	if err != nil {
		return nil, err
	}
	byTags, err := newFlattenByTags(specs)
	if err != nil {
		return nil, err
	}
	return &flattenIterator{
		it:      it,
		byName:  byName,
		byType:  byType,
		byTags:  byTags,
		started: -1,
	}, nil
}

// Next implements xmlstream.Iterator.
func (f *flattenIterator) Next() (xmlstream.Event, error) {
	for {
		ev, err := f.it.Next()
		if err != nil || ev.Elem == nil {
			return ev, err
		}
		elem := ev.Elem
		tag := elem.Tag
		if ev.Phase == xmlstream.Open {
			if isContainer(tag) {
				f.inside++
				switch {
				case f.started >= 0:
					f.started++
				case f.byName.active() && f.byName.match(elem.Attr("name"), ownerOf(elem)):
					f.started = 0
				case f.byType.active() && f.byType.match(tag):
					f.started = 0
				}
				f.tags = f.tags[:0]
			}
		} else {
			switch {
			case isContainer(tag):
				f.inside--
			case f.byTags.active() && f.inside > 0 && f.started < 0 && tag == "tag":
				f.tags = append(f.tags, elem.Text())
				if f.byTags.match(f.tags) {
					f.started = 0
				}
			case f.started == 0 && tag == "status":
				elem.SetText(flattenedMessage(elem.Text()))
			}
		}
		forward := f.started <= 0 || tag == "msg"
		if f.started >= 0 && ev.Phase == xmlstream.Close && isContainer(tag) {
			f.started--
		}
		if forward {
			return ev, nil
		}
		// Suppressed elements are still owned by the source until
		// their Close event; only then can they be released.
		if ev.Phase == xmlstream.Close {
			elem.Release()
		}
	}
}

func ownerOf(elem *xmlstream.Element) string {
	if owner := elem.Attr("owner"); owner != "" {
		return owner
	}
	return elem.Attr("library")
}

const htmlMarker = "*HTML*"

// flattenedMessage rewrites a status message to note that the contents
// below it were flattened. Already HTML-formatted messages keep their
// markup; plain text is escaped.
func flattenedMessage(original string) string {
	var body string
	switch {
	case original == "":
	case strings.HasPrefix(original, htmlMarker):
		body = strings.TrimSpace(original[len(htmlMarker):]) + "<hr>"
	default:
		body = html.EscapeString(original) + "<hr>"
	}
	return htmlMarker + " " + body + "<i>Content flattened.</i>"
}
