// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package model

// HandleTeardownFailures propagates suite teardown failures to the
// tests under the failing suite. A failed teardown can leave shared
// state corrupted for every test in that suite, so all of them are
// marked failed regardless of their own recorded outcome. Must be run
// once, after the tree is fully built.
func (r *Result) HandleTeardownFailures() {
	if r.Suite != nil {
		r.Suite.handleTeardownFailures()
	}
}

func (s *Suite) handleTeardownFailures() {
	for _, sub := range s.Suites {
		sub.handleTeardownFailures()
	}
	if s.Teardown != nil && s.Teardown.Status.Failed() {
		s.suiteTeardownFailed(s.Teardown.Status.Message)
	}
}

func (s *Suite) suiteTeardownFailed(message string) {
	for _, sub := range s.Suites {
		sub.suiteTeardownFailed(message)
	}
	for _, t := range s.Tests {
		t.Status.Status = StatusFail
		note := "Parent suite teardown failed:\n" + message
		if t.Status.Message != "" {
			note = t.Status.Message + "\n\nAlso parent suite teardown failed:\n" + message
		}
		t.Status.Message = note
	}
}

// RemoveDetail is a Visitor that strips execution detail from an
// already-built tree: suite setup and teardown keywords are dropped
// and every test's body is emptied. Used when the caller excluded
// detail globally; teardown keywords survive the streaming omission
// filter only so their outcome can be propagated first.
type RemoveDetail struct{}

// StartSuite implements Visitor.
func (RemoveDetail) StartSuite(s *Suite) bool {
	s.Setup = nil
	s.Teardown = nil
	return true
}

// EndSuite implements Visitor.
func (RemoveDetail) EndSuite(*Suite) {}

// VisitTest implements Visitor.
func (RemoveDetail) VisitTest(t *Test) {
	t.Body = nil
}
