// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package execlog

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/execlog/execlog/internal/pattern"
)

// FlattenSpec selects container subtrees to flatten. Exactly one of
// the fields must be set:
//
//   - Name: a glob pattern matched against the container's full name,
//     "owner.name" when the owner is known and the bare name otherwise.
//   - Type: a control-structure type; one of "for", "while",
//     "iteration" (alias "foritem").
//   - Tags: glob patterns matched against the tags accumulated for the
//     container.
type FlattenSpec struct {
	Name string
	Type string
	Tags []string
}

// ParseFlattenSpec parses the textual form of a flatten selector:
// "name:<pattern>", "tag:<pattern>", or a bare control-structure type.
func ParseFlattenSpec(s string) (FlattenSpec, error) {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "name:"):
		return FlattenSpec{Name: s[len("name:"):]}, nil
	case strings.HasPrefix(lower, "tag:"):
		return FlattenSpec{Tags: []string{s[len("tag:"):]}}, nil
	case lower == "for" || lower == "while" || lower == "iteration" || lower == "foritem":
		return FlattenSpec{Type: lower}, nil
	}
	return FlattenSpec{}, errors.Newf("invalid flatten selector %q", s)
}

// ParseFlattenSpecs parses a list of textual flatten selectors.
func ParseFlattenSpecs(specs []string) ([]FlattenSpec, error) {
	parsed := make([]FlattenSpec, 0, len(specs))
	for _, s := range specs {
		spec, err := ParseFlattenSpec(s)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, spec)
	}
	return parsed, nil
}

// flattenByName matches containers by their full name.
type flattenByName struct {
	m pattern.Matcher
}

func newFlattenByName(specs []FlattenSpec) (flattenByName, error) {
	var patterns []string
	for _, s := range specs {
		if s.Name != "" {
			patterns = append(patterns, s.Name)
		}
	}
	m, err := pattern.New(patterns...)
	return flattenByName{m: m}, err
}

func (f flattenByName) active() bool { return !f.m.IsEmpty() }

func (f flattenByName) match(name, owner string) bool {
	if owner != "" {
		name = owner + "." + name
	}
	return f.m.Match(name)
}

// flattenByType matches containers by tag. The configured type names
// are resolved to the tags they cover at construction so the per-event
// check is a set lookup.
type flattenByType struct {
	tags map[string]struct{}
}

func newFlattenByType(specs []FlattenSpec) (flattenByType, error) {
	f := flattenByType{}
	for _, s := range specs {
		if s.Type == "" {
			continue
		}
		if f.tags == nil {
			f.tags = make(map[string]struct{}, 3)
		}
		switch strings.ToLower(s.Type) {
		case "for":
			f.tags["for"] = struct{}{}
		case "while":
			f.tags["while"] = struct{}{}
		case "iteration", "foritem":
			f.tags["iter"] = struct{}{}
		default:
			return flattenByType{}, errors.Newf("invalid flatten type %q", s.Type)
		}
	}
	return f, nil
}

func (f flattenByType) active() bool { return len(f.tags) > 0 }

func (f flattenByType) match(tag string) bool {
	_, ok := f.tags[tag]
	return ok
}

// flattenByTags matches containers by the tags accumulated from their
// sibling <tag> elements.
type flattenByTags struct {
	m pattern.Matcher
}

func newFlattenByTags(specs []FlattenSpec) (flattenByTags, error) {
	var patterns []string
	for _, s := range specs {
		patterns = append(patterns, s.Tags...)
	}
	m, err := pattern.New(patterns...)
	return flattenByTags{m: m}, err
}

func (f flattenByTags) active() bool { return !f.m.IsEmpty() }

func (f flattenByTags) match(tags []string) bool {
	return f.m.MatchAny(tags)
}
