// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package execlog

import (
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"

	"github.com/execlog/execlog/model"
	"github.com/execlog/execlog/xmlstream"
)

// Builder runs one or more ingestions with a fixed configuration:
// event source, optional omission or flattening transform, tree
// construction, and the post-build normalization passes.
type Builder struct {
	opts *Options
}

// NewBuilder returns a Builder using the given options.
func NewBuilder(opts *Options) *Builder {
	return &Builder{opts: opts.EnsureDefaults()}
}

// Build ingests the document from src into result and returns the same
// result populated. On failure no partial tree is returned: the source
// is identified in the error together with the underlying cause, and
// the caller keeps nothing of the aborted parse. Build holds no state
// across calls; independent ingestions may run in parallel on separate
// Results.
func (b *Builder) Build(src xmlstream.Source, result *model.Result) (*model.Result, error) {
	start := crtime.NowMono()
	err := b.build(src, result)
	if b.opts.ParseLatency != nil {
		b.opts.ParseLatency.Observe(start.Elapsed().Seconds())
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading XML source '%s' failed", redact.Safe(src.Name()))
	}
	if n := len(result.Errors); n > 0 {
		b.opts.Logger.Infof("%s: %d execution error(s) recorded in the document", src.Name(), n)
	}
	return result, nil
}

func (b *Builder) build(src xmlstream.Source, result *model.Result) error {
	rd, err := src.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rd.Close() }()

	var it xmlstream.Iterator = rd
	if b.opts.OmitDetail {
		it = newOmitIterator(it)
	} else if len(b.opts.Flatten) > 0 {
		if it, err = newFlattenIterator(it, b.opts.Flatten); err != nil {
			return err
		}
	}

	h := newTreeHandler(result)
	for {
		ev, err := it.Next()
		if err != nil {
			return err
		}
		if ev.Elem == nil {
			break
		}
		if ev.Phase == xmlstream.Open {
			err = h.start(ev.Elem)
		} else {
			err = h.end(ev.Elem)
			ev.Elem.Release()
		}
		if err != nil {
			return err
		}
	}

	result.HandleTeardownFailures()
	if b.opts.OmitDetail {
		result.Suite.Visit(model.RemoveDetail{})
	}
	return nil
}
