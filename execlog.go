// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package execlog materializes execution-log documents into in-memory
// result trees usable for reporting, merging and re-analysis.
//
// Ingestion is a single-pass, constant-memory pipeline: a pull-style
// event source yields element open/close events, optional stream
// transforms drop or collapse subtrees on the way past, and a tree
// builder constructs the result while releasing every element as soon
// as it closes. Memory use is proportional to document depth, not
// document size, so multi-gigabyte logs can be ingested.
//
// Typical use:
//
//	result, err := execlog.Parse(xmlstream.FilePath("output.xml"), nil)
//
// Several documents can be combined, and re-executed runs merged into
// an original run, with ParseFiles and MergeFiles.
package execlog

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/execlog/execlog/model"
	"github.com/execlog/execlog/xmlstream"
)

// Parse ingests a single document and returns its result tree.
// A nil opts keeps all execution detail.
func Parse(src xmlstream.Source, opts *Options) (*model.Result, error) {
	return NewBuilder(opts).Build(src, model.NewResult(src.Name()))
}

// ParseFiles ingests the documents at the given paths. One path yields
// that document's result; several are parsed in parallel and combined
// under a synthetic root suite.
func ParseFiles(opts *Options, paths ...string) (*model.Result, error) {
	if len(paths) == 0 {
		return nil, errors.New("one or more data source needed")
	}
	if len(paths) == 1 {
		return Parse(xmlstream.FilePath(paths[0]), opts)
	}
	results, err := parseAll(opts, paths)
	if err != nil {
		return nil, err
	}
	return model.Combine(results...)
}

// MergeFiles ingests the original document and the re-executed runs,
// then folds the re-runs into the original so that re-executed tests
// replace their earlier results.
func MergeFiles(opts *Options, original string, reruns ...string) (*model.Result, error) {
	if len(reruns) == 0 {
		return nil, errors.New("one or more re-executed source needed")
	}
	sources := append([]string{original}, reruns...)
	results, err := parseAll(opts, sources)
	if err != nil {
		return nil, err
	}
	m := model.NewMerger(results[0])
	for _, r := range results[1:] {
		if err := m.Merge(r); err != nil {
			return nil, err
		}
	}
	return m.Result(), nil
}

// parseAll ingests each path concurrently. Each ingestion has its own
// source handle and filter state, so there is no shared mutable state
// between them.
func parseAll(opts *Options, paths []string) ([]*model.Result, error) {
	results := make([]*model.Result, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			r, err := Parse(xmlstream.FilePath(path), opts)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
