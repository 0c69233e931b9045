// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/execlog/execlog"
	"github.com/execlog/execlog/model"
)

var reportCmd = &cobra.Command{
	Use:   "report <output.xml> [output.xml ...]",
	Short: "summarize suite and test outcomes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions()
		if err != nil {
			return err
		}
		result, err := execlog.ParseFiles(opts, args...)
		if err != nil {
			return err
		}
		report(result)
		if c := result.Suite.Count(); c.Failed > 0 {
			return fmt.Errorf("%d of %d test(s) failed", c.Failed, c.Total)
		}
		return nil
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <original.xml> <rerun.xml> [rerun.xml ...]",
	Short: "fold re-executed runs into an original run and summarize",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions()
		if err != nil {
			return err
		}
		result, err := execlog.MergeFiles(opts, args[0], args[1:]...)
		if err != nil {
			return err
		}
		report(result)
		return nil
	},
}

func buildOptions() (*execlog.Options, error) {
	specs, err := execlog.ParseFlattenSpecs(flattenSpecs)
	if err != nil {
		return nil, err
	}
	return &execlog.Options{
		OmitDetail: excludeDetail,
		Flatten:    specs,
	}, nil
}

func report(result *model.Result) {
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"Suite", "Test", "Status", "Elapsed", "Message"})
	appendSuite(tbl, result.Suite)
	tbl.Render()

	c := result.Suite.Count()
	fmt.Printf("%d tests, %d passed, %d failed, %d skipped\n",
		c.Total, c.Passed, c.Failed, c.Skipped)
	for _, m := range result.Errors {
		fmt.Printf("[ ERROR ] %s\n", m.Text)
	}
}

func appendSuite(tbl *tablewriter.Table, s *model.Suite) {
	if len(s.Tests) == 0 && len(s.Suites) == 0 {
		tbl.Append([]string{s.Name, "", s.Status.Status, s.Status.Elapsed.String(), ""})
	}
	for _, t := range s.Tests {
		msg := t.Status.Message
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		tbl.Append([]string{s.Name, t.Name, t.Status.Status, t.Status.Elapsed.String(), msg})
	}
	for _, sub := range s.Suites {
		appendSuite(tbl, sub)
	}
}
