// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombine(t *testing.T) {
	a := NewResult("a.xml")
	a.Suite.Name = "A"
	b := NewResult("b.xml")
	b.Suite.Name = "B"

	c, err := Combine(a, b)
	require.NoError(t, err)
	require.Equal(t, "A & B", c.Suite.Name)
	require.Len(t, c.Suite.Suites, 2)
	require.Same(t, a.Suite, c.Suite.Suites[0])
	require.Same(t, b.Suite, c.Suite.Suites[1])
}

func TestCombineEmpty(t *testing.T) {
	_, err := Combine()
	require.Error(t, err)
}

func TestCombineModeConflict(t *testing.T) {
	a := NewResult("a.xml")
	a.SetRPA(false)
	b := NewResult("b.xml")
	b.SetRPA(true)

	_, err := Combine(a, b)
	require.ErrorContains(t, err, "conflicting execution modes")
}

func TestCombineAdoptsKnownMode(t *testing.T) {
	a := NewResult("a.xml")
	b := NewResult("b.xml")
	b.SetRPA(true)

	c, err := Combine(a, b)
	require.NoError(t, err)
	rpa, known := c.RPA()
	require.True(t, known)
	require.True(t, rpa)
}

func mergeFixture(status, msg string) *Result {
	r := NewResult("x.xml")
	r.Suite = &Suite{
		Name: "Root",
		Tests: []*Test{
			{Name: "T1", Status: Status{Status: status, Message: msg}},
		},
	}
	return r
}

func TestMergeReplacesTest(t *testing.T) {
	orig := mergeFixture(StatusFail, "first failure")
	rerun := mergeFixture(StatusPass, "")

	m := NewMerger(orig)
	require.NoError(t, m.Merge(rerun))

	got := m.Result().Suite.Tests
	require.Len(t, got, 1)
	require.Equal(t, StatusPass, got[0].Status.Status)
	require.Equal(t, "Test has been re-executed and results merged.", got[0].Status.Message)
}

func TestMergeKeepsRerunMessage(t *testing.T) {
	orig := mergeFixture(StatusFail, "first failure")
	rerun := mergeFixture(StatusFail, "still broken")

	m := NewMerger(orig)
	require.NoError(t, m.Merge(rerun))
	require.Equal(t,
		"still broken\n\nTest has been re-executed and results merged.",
		m.Result().Suite.Tests[0].Status.Message)
}

func TestMergeAppendsNewTestsAndSuites(t *testing.T) {
	orig := mergeFixture(StatusPass, "")
	rerun := NewResult("y.xml")
	rerun.Suite = &Suite{
		Name:   "Root",
		Tests:  []*Test{{Name: "T2", Status: Status{Status: StatusPass}}},
		Suites: []*Suite{{Name: "New Child"}},
	}

	m := NewMerger(orig)
	require.NoError(t, m.Merge(rerun))

	s := m.Result().Suite
	require.Len(t, s.Tests, 2)
	require.Equal(t, "T2", s.Tests[1].Name)
	require.Len(t, s.Suites, 1)
	require.Equal(t, "New Child", s.Suites[0].Name)
}

func TestMergeSuiteNameMismatch(t *testing.T) {
	orig := mergeFixture(StatusPass, "")
	other := NewResult("y.xml")
	other.Suite = &Suite{Name: "Different"}

	m := NewMerger(orig)
	require.ErrorContains(t, m.Merge(other), "cannot merge suite")
}
