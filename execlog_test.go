// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package execlog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/execlog/execlog/model"
)

func writeDoc(t *testing.T, dir, name, suiteName, testName, status, msg string) string {
	t.Helper()
	doc := fmt.Sprintf(`<robot generator="g" generated="2023-01-17T21:11:40.123456" rpa="false">
<suite name="%s">
<test name="%s">
<status status="%s">%s</status>
</test>
<status status="PASS"/>
</suite>
</robot>`, suiteName, testName, status, msg)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestParseFilesSingle(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "out.xml", "Suite", "T1", "PASS", "")

	result, err := ParseFiles(nil, path)
	require.NoError(t, err)
	require.Equal(t, path, result.Source)
	require.Equal(t, "Suite", result.Suite.Name)
	require.Equal(t, 1, result.Suite.Count().Total)
}

func TestParseFilesCombines(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "a.xml", "A", "T1", "PASS", "")
	b := writeDoc(t, dir, "b.xml", "B", "T1", "FAIL", "boom")

	result, err := ParseFiles(nil, a, b)
	require.NoError(t, err)
	require.Equal(t, "A & B", result.Suite.Name)
	require.Len(t, result.Suite.Suites, 2)
	require.Equal(t, model.TestCount{Total: 2, Passed: 1, Failed: 1}, result.Suite.Count())
}

func TestParseFilesCombineOrderStable(t *testing.T) {
	// Parallel parsing must not reorder the combined suites.
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		paths = append(paths,
			writeDoc(t, dir, fmt.Sprintf("o%d.xml", i), fmt.Sprintf("S%d", i), "T", "PASS", ""))
	}
	result, err := ParseFiles(nil, paths...)
	require.NoError(t, err)
	for i, sub := range result.Suite.Suites {
		require.Equal(t, fmt.Sprintf("S%d", i), sub.Name)
	}
}

func TestParseFilesFailureIsTotal(t *testing.T) {
	dir := t.TempDir()
	good := writeDoc(t, dir, "good.xml", "G", "T1", "PASS", "")
	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte(`<robot><suite`), 0o644))

	result, err := ParseFiles(nil, good, bad)
	require.Error(t, err)
	require.Nil(t, result)
}

func TestMergeFiles(t *testing.T) {
	dir := t.TempDir()
	orig := writeDoc(t, dir, "orig.xml", "Suite", "T1", "FAIL", "flaky")
	rerun := writeDoc(t, dir, "rerun.xml", "Suite", "T1", "PASS", "")

	result, err := MergeFiles(nil, orig, rerun)
	require.NoError(t, err)
	tests := result.Suite.Tests
	require.Len(t, tests, 1)
	require.Equal(t, model.StatusPass, tests[0].Status.Status)
	require.Contains(t, tests[0].Status.Message, "re-executed and results merged")
}

func TestMergeFilesNoReruns(t *testing.T) {
	_, err := MergeFiles(nil, "orig.xml")
	require.ErrorContains(t, err, "one or more re-executed source needed")
}

func TestParseLatencyObserved(t *testing.T) {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "ingest_seconds",
	})
	dir := t.TempDir()
	path := writeDoc(t, dir, "out.xml", "Suite", "T1", "PASS", "")

	_, err := ParseFiles(&Options{ParseLatency: h}, path)
	require.NoError(t, err)

	var m dto.Metric
	require.NoError(t, h.Write(&m))
	require.Equal(t, uint64(1), m.Histogram.GetSampleCount())
}

func TestEnsureDefaults(t *testing.T) {
	var o *Options
	o = o.EnsureDefaults()
	require.NotNil(t, o)
	require.NotNil(t, o.Logger)
	require.False(t, o.OmitDetail)
}
