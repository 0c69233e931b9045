// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package execlog

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"

	"github.com/execlog/execlog/model"
	"github.com/execlog/execlog/xmlstream"
)

// parseString ingests an in-memory document with the given options.
func parseString(t *testing.T, doc string, opts *Options) *model.Result {
	t.Helper()
	result, err := Parse(xmlstream.FromString("test", doc), opts)
	require.NoError(t, err)
	return result
}

// dump renders a result tree in a compact single-line-per-node form
// for the datadriven tests.
func dump(r *model.Result) string {
	var b strings.Builder
	dumpSuite(&b, r.Suite, 0)
	for _, m := range r.Errors {
		fmt.Fprintf(&b, "error: %s\n", m.Text)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func dumpStatus(b *strings.Builder, st model.Status) {
	fmt.Fprintf(b, " [%s]", st.Status)
	if st.Message != "" {
		fmt.Fprintf(b, " msg=%q", st.Message)
	}
	b.WriteByte('\n')
}

func dumpSuite(b *strings.Builder, s *model.Suite, depth int) {
	indent(b, depth)
	fmt.Fprintf(b, "suite: %s", s.Name)
	dumpStatus(b, s.Status)
	if s.Setup != nil {
		dumpKeyword(b, s.Setup, depth+1)
	}
	for _, sub := range s.Suites {
		dumpSuite(b, sub, depth+1)
	}
	for _, t := range s.Tests {
		dumpTest(b, t, depth+1)
	}
	if s.Teardown != nil {
		dumpKeyword(b, s.Teardown, depth+1)
	}
}

func dumpTest(b *strings.Builder, t *model.Test, depth int) {
	indent(b, depth)
	fmt.Fprintf(b, "test: %s", t.Name)
	dumpStatus(b, t.Status)
	dumpBody(b, t.Body, depth+1)
}

func dumpKeyword(b *strings.Builder, k *model.Keyword, depth int) {
	indent(b, depth)
	label := "kw"
	switch k.Type {
	case model.SetupType:
		label = "setup"
	case model.TeardownType:
		label = "teardown"
	}
	fmt.Fprintf(b, "%s: %s", label, k.FullName())
	dumpStatus(b, k.Status)
	dumpBody(b, k.Body, depth+1)
}

func dumpControl(b *strings.Builder, c *model.Control, depth int) {
	indent(b, depth)
	fmt.Fprintf(b, "control: %s", c.Kind)
	if c.Type != "" {
		fmt.Fprintf(b, " %s", c.Type)
	}
	dumpStatus(b, c.Status)
	dumpBody(b, c.Body, depth+1)
}

func dumpBody(b *strings.Builder, body []model.BodyItem, depth int) {
	for _, item := range body {
		switch item := item.(type) {
		case *model.Keyword:
			dumpKeyword(b, item, depth)
		case *model.Control:
			dumpControl(b, item, depth)
		case *model.Message:
			indent(b, depth)
			fmt.Fprintf(b, "msg: %s %s\n", item.Level, item.Text)
		}
	}
}

func TestBuildDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		datadriven.RunTest(t, path, func(t *testing.T, td *datadriven.TestData) string {
			switch td.Cmd {
			case "build":
				opts := &Options{}
				opts.OmitDetail = td.HasArg("omit")
				var rawSpecs []string
				td.MaybeScanArgs(t, "flatten", &rawSpecs)
				specs, err := ParseFlattenSpecs(rawSpecs)
				if err != nil {
					return fmt.Sprintf("error: %v", err)
				}
				opts.Flatten = specs
				result, err := Parse(xmlstream.FromString("test", td.Input), opts)
				if err != nil {
					return fmt.Sprintf("error: %v", err)
				}
				return dump(result)
			default:
				td.Fatalf(t, "unknown command: %s", td.Cmd)
				return ""
			}
		})
	})
}

func TestBuildIncompatibleRoot(t *testing.T) {
	_, err := Parse(xmlstream.FromString("bad", `<html></html>`), nil)
	require.ErrorContains(t, err, "incompatible root element 'html'")
	require.ErrorContains(t, err, "reading XML source 'bad' failed")
}

func TestBuildTruncatedDocument(t *testing.T) {
	doc := `<robot><suite name="Root"><test name="T">`
	result, err := Parse(xmlstream.FromString("trunc", doc), nil)
	require.Error(t, err)
	require.Nil(t, result)
	require.ErrorContains(t, err, "reading XML source 'trunc' failed")
}

func TestBuildMalformedDocument(t *testing.T) {
	doc := `<robot><suite name="Root"></robot></suite>`
	result, err := Parse(xmlstream.FromString("bad", doc), nil)
	require.Error(t, err)
	require.Nil(t, result)
}

func TestBuildMissingFile(t *testing.T) {
	_, err := ParseFiles(nil, "/nonexistent/output.xml")
	require.Error(t, err)
	require.ErrorContains(t, err, "failed")
}

func TestBuildNoSources(t *testing.T) {
	_, err := ParseFiles(nil)
	require.ErrorContains(t, err, "one or more data source needed")
}

func TestBuildMetadataAndDoc(t *testing.T) {
	doc := `<robot generator="Robot 6.1" generated="2023-01-17T21:11:40.123456" rpa="true">
<suite name="Root" source="/tmp/root.robot">
<doc>Suite documentation.</doc>
<meta name="Version">1.2</meta>
<test name="T1">
<doc>Test documentation.</doc>
<timeout value="1 minute"/>
<status status="PASS" start="2023-01-17T21:11:40.123460" elapsed="1.5"/>
</test>
<status status="PASS"/>
</suite>
</robot>`
	result := parseString(t, doc, nil)

	require.Equal(t, "Robot 6.1", result.Generator)
	require.False(t, result.Generated.IsZero())
	rpa, known := result.RPA()
	require.True(t, known)
	require.True(t, rpa)

	s := result.Suite
	require.Equal(t, "Root", s.Name)
	require.Equal(t, "/tmp/root.robot", s.Source)
	require.Equal(t, "Suite documentation.", s.Doc)
	require.Equal(t, map[string]string{"Version": "1.2"}, s.Metadata)

	tc := s.Tests[0]
	require.Equal(t, "Test documentation.", tc.Doc)
	require.Equal(t, "1 minute", tc.Timeout)
	require.Equal(t, 1500*time.Millisecond, tc.Status.Elapsed)
	require.False(t, tc.Status.Start.IsZero())
}

func TestBuildLegacyTimestamps(t *testing.T) {
	doc := `<robot generator="Robot 3.2.2" generated="20210121 17:04:44.625">
<suite name="Root">
<test name="T1">
<status status="PASS" starttime="20210121 17:04:45.000" endtime="20210121 17:04:47.500"/>
</test>
<status status="PASS"/>
</suite>
</robot>`
	result := parseString(t, doc, nil)
	require.Equal(t, 2500*time.Millisecond, result.Suite.Tests[0].Status.Elapsed)
}

func TestBuilderReuse(t *testing.T) {
	// A Builder holds no per-ingestion state and can run several
	// ingestions, including concurrently on separate results.
	doc := `<robot><suite name="Root"><test name="T"><status status="PASS"/></test><status status="PASS"/></suite></robot>`
	b := NewBuilder(nil)
	for i := 0; i < 3; i++ {
		result, err := b.Build(xmlstream.FromString("mem", doc), model.NewResult("mem"))
		require.NoError(t, err)
		require.Equal(t, 1, result.Suite.Count().Total)
	}
}
