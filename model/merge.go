// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package model

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Combine nests the root suites of the given results under a new
// synthetic root. The inputs must agree on execution mode; results
// that did not record a mode adopt the others'.
func Combine(results ...*Result) (*Result, error) {
	if len(results) == 0 {
		return nil, errors.New("one or more results needed")
	}
	combined := NewResult(results[0].Source)
	names := make([]string, 0, len(results))
	for _, r := range results {
		if err := reconcileRPA(combined, r); err != nil {
			return nil, err
		}
		combined.Suite.Suites = append(combined.Suite.Suites, r.Suite)
		combined.Errors = append(combined.Errors, r.Errors...)
		names = append(names, r.Suite.Name)
	}
	combined.Suite.Name = strings.Join(names, " & ")
	return combined, nil
}

func reconcileRPA(dst, src *Result) error {
	rpa, known := src.RPA()
	if !known {
		return nil
	}
	if prev, prevKnown := dst.RPA(); prevKnown && prev != rpa {
		return errors.Newf(
			"conflicting execution modes: %s is in %s mode", src.Source, modeName(rpa))
	}
	dst.SetRPA(rpa)
	return nil
}

func modeName(rpa bool) string {
	if rpa {
		return "task"
	}
	return "test"
}

const mergeNote = "Test has been re-executed and results merged."

// Merger folds re-executed results into an original result. Tests and
// suites present in a merged result replace the same-named originals;
// new ones are appended.
type Merger struct {
	result *Result
}

// NewMerger returns a Merger accumulating into result.
func NewMerger(result *Result) *Merger {
	return &Merger{result: result}
}

// Result returns the accumulated result.
func (m *Merger) Result() *Result { return m.result }

// Merge folds other into the accumulated result. Root suite names must
// match; execution modes must not conflict.
func (m *Merger) Merge(other *Result) error {
	if err := reconcileRPA(m.result, other); err != nil {
		return err
	}
	if m.result.Suite.Name != other.Suite.Name {
		return errors.Newf(
			"cannot merge suite %q into suite %q", other.Suite.Name, m.result.Suite.Name)
	}
	mergeSuite(m.result.Suite, other.Suite)
	return nil
}

func mergeSuite(into, from *Suite) {
	into.Status = from.Status
	for _, sub := range from.Suites {
		if orig := findSuite(into.Suites, sub.Name); orig != nil {
			mergeSuite(orig, sub)
		} else {
			into.Suites = append(into.Suites, sub)
		}
	}
	for _, t := range from.Tests {
		note := mergeNote
		if t.Status.Message != "" {
			note = t.Status.Message + "\n\n" + mergeNote
		}
		t.Status.Message = note
		if i := findTest(into.Tests, t.Name); i >= 0 {
			into.Tests[i] = t
		} else {
			into.Tests = append(into.Tests, t)
		}
	}
}

func findSuite(suites []*Suite, name string) *Suite {
	for _, s := range suites {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func findTest(tests []*Test, name string) int {
	for i, t := range tests {
		if t.Name == name {
			return i
		}
	}
	return -1
}
