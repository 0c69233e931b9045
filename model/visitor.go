// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package model

// Visitor walks a suite hierarchy. StartSuite returning false skips
// the suite's children (but EndSuite is still called).
type Visitor interface {
	StartSuite(*Suite) bool
	EndSuite(*Suite)
	VisitTest(*Test)
}

// Visit walks the suite and its descendants depth first, suites before
// their tests.
func (s *Suite) Visit(v Visitor) {
	if v.StartSuite(s) {
		for _, sub := range s.Suites {
			sub.Visit(v)
		}
		for _, t := range s.Tests {
			v.VisitTest(t)
		}
	}
	v.EndSuite(s)
}
