// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package model holds the result tree an ingestion produces: a
// hierarchy of suites containing tests, which in turn contain keyword
// calls and control structures, each carrying a terminal status. The
// tree is plain data owned by the caller once built; nothing in this
// package refers back to the parse that produced it.
package model

import "time"

// Outcome values carried by Status.Status.
const (
	StatusPass   = "PASS"
	StatusFail   = "FAIL"
	StatusSkip   = "SKIP"
	StatusNotRun = "NOT RUN"
)

// Keyword type values carried by Keyword.Type.
const (
	KeywordType  = "KEYWORD"
	SetupType    = "SETUP"
	TeardownType = "TEARDOWN"
)

// Status is the terminal outcome of a suite, test, keyword or control
// structure.
type Status struct {
	Status  string
	Message string
	Start   time.Time
	Elapsed time.Duration
}

// Passed reports whether the status is PASS.
func (s Status) Passed() bool { return s.Status == StatusPass }

// Failed reports whether the status is FAIL.
func (s Status) Failed() bool { return s.Status == StatusFail }

// Skipped reports whether the status is SKIP.
func (s Status) Skipped() bool { return s.Status == StatusSkip }

// BodyItem is implemented by the node kinds that can appear in an
// executable body: *Keyword, *Control and *Message.
type BodyItem interface {
	bodyItem()
}

func (*Keyword) bodyItem() {}
func (*Control) bodyItem() {}
func (*Message) bodyItem() {}

// Message is a log message emitted during execution, or a document
// level execution error.
type Message struct {
	Timestamp time.Time
	Level     string
	HTML      bool
	Text      string
}

// Keyword is one keyword call. Type distinguishes ordinary calls from
// setup and teardown.
type Keyword struct {
	Name    string
	Owner   string
	Type    string
	Doc     string
	Timeout string
	Args    []string
	Vars    []string
	Tags    []string
	Body    []BodyItem
	Status  Status
}

// FullName returns "owner.name" when the owner is known, otherwise the
// bare name.
func (k *Keyword) FullName() string {
	if k.Owner != "" {
		return k.Owner + "." + k.Name
	}
	return k.Name
}

// Teardown reports whether the keyword is a teardown.
func (k *Keyword) Teardown() bool { return k.Type == TeardownType }

// Control is a control structure: FOR, WHILE, IF, TRY, one of their
// iterations, or a branch of IF/TRY.
type Control struct {
	Kind      string // FOR, WHILE, IF, TRY, ITERATION, BRANCH
	Type      string // branch type: IF, ELSE IF, ELSE, TRY, EXCEPT, ...
	Condition string
	Flavor    string
	Variables []string
	Body      []BodyItem
	Status    Status
}

// Test is one test (or RPA task).
type Test struct {
	Name    string
	Doc     string
	Line    int
	Timeout string
	Tags    []string
	Body    []BodyItem
	Status  Status
}

// Suite is one suite: nested suites, tests, and optional setup and
// teardown keywords.
type Suite struct {
	Name     string
	Doc      string
	Source   string
	Metadata map[string]string
	Setup    *Keyword
	Teardown *Keyword
	Suites   []*Suite
	Tests    []*Test
	Status   Status
}

// TestCount summarizes test outcomes under a suite.
type TestCount struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// Count tallies the tests in the suite and all its descendants.
func (s *Suite) Count() TestCount {
	var c TestCount
	s.Visit(countVisitor{c: &c})
	return c
}

type countVisitor struct{ c *TestCount }

func (countVisitor) StartSuite(*Suite) bool { return true }
func (countVisitor) EndSuite(*Suite)        {}

func (v countVisitor) VisitTest(t *Test) {
	v.c.Total++
	switch t.Status.Status {
	case StatusPass:
		v.c.Passed++
	case StatusFail:
		v.c.Failed++
	case StatusSkip:
		v.c.Skipped++
	}
}

// Result is the root of one ingested document.
type Result struct {
	// Source identifies where the document came from.
	Source    string
	Generator string
	Generated time.Time
	Suite     *Suite
	// Errors holds document level execution errors (parsing problems
	// the producing run logged, not ingestion failures).
	Errors []*Message

	rpa      bool
	rpaKnown bool
}

// NewResult returns an empty Result for the named source, ready to be
// populated by a tree builder.
func NewResult(source string) *Result {
	return &Result{Source: source, Suite: &Suite{}}
}

// RPA reports the execution mode recorded in the document: task
// automation (true) or test automation (false). The second return is
// false when the document did not state a mode.
func (r *Result) RPA() (rpa, known bool) { return r.rpa, r.rpaKnown }

// SetRPA records the execution mode.
func (r *Result) SetRPA(rpa bool) {
	r.rpa = rpa
	r.rpaKnown = true
}
