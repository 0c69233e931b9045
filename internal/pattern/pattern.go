// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package pattern implements the glob matching used to select keywords
// and control structures by name or tag. Matching is insensitive to
// case, spaces and underscores on both sides, so the pattern
// "My Keyword" matches the candidate "my_keyword".
package pattern

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// Matcher matches candidate strings against a set of glob patterns
// ('*', '?' and '[...]' syntax). The zero Matcher matches nothing.
type Matcher struct {
	patterns []string
}

// New builds a Matcher from the given patterns. Patterns are
// normalized once at construction; invalid glob syntax is reported as
// an error.
func New(patterns ...string) (Matcher, error) {
	m := Matcher{patterns: make([]string, 0, len(patterns))}
	for _, p := range patterns {
		p = Normalize(p)
		if !doublestar.ValidatePattern(p) {
			return Matcher{}, errors.Newf("invalid pattern %q", p)
		}
		m.patterns = append(m.patterns, p)
	}
	return m, nil
}

// IsEmpty reports whether the Matcher has no patterns. Callers on hot
// paths are expected to check this and skip matching entirely.
func (m Matcher) IsEmpty() bool { return len(m.patterns) == 0 }

// Match reports whether the candidate matches any configured pattern.
func (m Matcher) Match(candidate string) bool {
	candidate = Normalize(candidate)
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, candidate); ok {
			return true
		}
	}
	return false
}

// MatchAny reports whether any of the candidates matches any pattern.
func (m Matcher) MatchAny(candidates []string) bool {
	for _, c := range candidates {
		if m.Match(c) {
			return true
		}
	}
	return false
}

// Normalize lowercases the string and removes spaces and underscores.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
